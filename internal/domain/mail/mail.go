package mail

import "errors"

var ErrQueueFull = errors.New("mail queue is full")

type Message struct {
	To       string
	Subject  string
	HTMLBody string
	TextBody string
}

// Dispatcher hands messages to a background sender without waiting for delivery.
type Dispatcher interface {
	Dispatch(msg Message) error
}
