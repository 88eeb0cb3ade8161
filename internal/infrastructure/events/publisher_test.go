package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"jobboard/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockBroker struct {
	mock.Mock
}

func (m *mockBroker) Publish(topic string, qos byte, retained bool, payload []byte) error {
	args := m.Called(topic, qos, retained, payload)
	return args.Error(0)
}

func (m *mockBroker) Disconnect() {
	m.Called()
}

func TestMQTTPublisherTopic(t *testing.T) {
	p := newMQTTPublisher(&mockBroker{}, "jobboard/")
	assert.Equal(t, "jobboard/application/submitted", p.Topic("application.submitted"))

	bare := newMQTTPublisher(&mockBroker{}, "")
	assert.Equal(t, "job/created", bare.Topic("job.created"))
}

func TestMQTTPublisherPublishesEnvelope(t *testing.T) {
	broker := &mockBroker{}
	var captured []byte
	broker.On("Publish", "jobboard/job/created", byte(1), false, mock.Anything).
		Run(func(args mock.Arguments) { captured = args.Get(3).([]byte) }).
		Return(nil)

	p := newMQTTPublisher(broker, "jobboard")
	require.NoError(t, p.Publish(context.Background(), "job.created", map[string]string{"job_id": "42"}))
	broker.AssertExpectations(t)

	var env struct {
		Event string            `json:"event"`
		Data  map[string]string `json:"data"`
	}
	require.NoError(t, json.Unmarshal(captured, &env))
	assert.Equal(t, "job.created", env.Event)
	assert.Equal(t, "42", env.Data["job_id"])
}

func TestMQTTPublisherWrapsBrokerError(t *testing.T) {
	broker := &mockBroker{}
	broker.On("Publish", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(errors.New("offline"))

	p := newMQTTPublisher(broker, "jobboard")
	err := p.Publish(context.Background(), "job.updated", nil)
	assert.ErrorContains(t, err, "offline")
}

func TestNewPublisherWithoutBroker(t *testing.T) {
	p, err := NewPublisher(&config.MQTTConfig{})
	require.NoError(t, err)
	assert.IsType(t, NopPublisher{}, p)
	assert.NoError(t, p.Publish(context.Background(), "job.created", nil))
}
