package newsletter

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
)

var ErrAlreadySubscribed = errors.New("email is already subscribed")

type Subscriber struct {
	ID           uuid.UUID
	Email        string
	IsActive     bool
	SubscribedAt time.Time
}

type ContactMessage struct {
	ID        uuid.UUID
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

type Repository interface {
	// Subscribe fails with ErrAlreadySubscribed for a known email.
	Subscribe(ctx context.Context, subscriber *Subscriber) error
	CreateContactMessage(ctx context.Context, message *ContactMessage) error
}
