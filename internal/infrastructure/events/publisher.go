// Package events publishes domain events to the MQTT broker.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/logger"
	"jobboard/pkg/mqtt"

	"go.uber.org/zap"
)

// Envelope wraps every payload published on the broker.
type Envelope struct {
	Event      string      `json:"event"`
	OccurredAt time.Time   `json:"occurred_at"`
	Data       interface{} `json:"data"`
}

type Publisher interface {
	Publish(ctx context.Context, event string, data interface{}) error
	Close()
}

// brokerClient is the subset of *mqtt.Client the publisher needs.
type brokerClient interface {
	Publish(topic string, qos byte, retained bool, payload []byte) error
	Disconnect()
}

type MQTTPublisher struct {
	client brokerClient
	prefix string
}

func NewMQTTPublisher(cfg *config.MQTTConfig) (*MQTTPublisher, error) {
	client := mqtt.NewClient(&mqtt.Config{
		Broker:               cfg.Broker,
		ClientID:             cfg.ClientID,
		Username:             cfg.Username,
		Password:             cfg.Password,
		CleanSession:         true,
		KeepAlive:            30,
		ConnectTimeout:       10,
		AutoReconnect:        true,
		MaxReconnectInterval: time.Minute,
	}, logger.Logger)

	if err := client.Connect(); err != nil {
		return nil, err
	}

	return newMQTTPublisher(client, cfg.TopicPrefix), nil
}

func newMQTTPublisher(client brokerClient, prefix string) *MQTTPublisher {
	return &MQTTPublisher{client: client, prefix: strings.TrimSuffix(prefix, "/")}
}

// Topic maps "application.submitted" to "<prefix>/application/submitted".
func (p *MQTTPublisher) Topic(event string) string {
	topic := strings.ReplaceAll(event, ".", "/")
	if p.prefix == "" {
		return topic
	}
	return p.prefix + "/" + topic
}

func (p *MQTTPublisher) Publish(_ context.Context, event string, data interface{}) error {
	payload, err := json.Marshal(Envelope{
		Event:      event,
		OccurredAt: time.Now().UTC(),
		Data:       data,
	})
	if err != nil {
		return fmt.Errorf("failed to encode event %s: %w", event, err)
	}

	if err := p.client.Publish(p.Topic(event), 1, false, payload); err != nil {
		return fmt.Errorf("failed to publish event %s: %w", event, err)
	}

	logger.Debug("Event published",
		zap.String("event", event),
		zap.String("topic", p.Topic(event)),
	)
	return nil
}

func (p *MQTTPublisher) Close() {
	p.client.Disconnect()
}

// NopPublisher drops every event. Used when no broker is configured.
type NopPublisher struct{}

func (NopPublisher) Publish(context.Context, string, interface{}) error { return nil }

func (NopPublisher) Close() {}

// NewPublisher connects to MQTT when a broker is configured.
func NewPublisher(cfg *config.MQTTConfig) (Publisher, error) {
	if cfg.Broker == "" {
		return NopPublisher{}, nil
	}
	return NewMQTTPublisher(cfg)
}
