package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/Novip1906/join/internal/config"
	"github.com/Novip1906/join/internal/models"
)

type messageSender interface {
	SendMessage(ctx context.Context, topic string, key, value []byte) error
	Close() error
}

// EventProducer publishes board events. Messages are keyed by task id so all
// events of one task land on the same partition in order.
type EventProducer struct {
	producer    messageSender
	eventsTopic string
}

func NewEventProducer(kafkaCfg *config.Kafka) *EventProducer {
	return &EventProducer{
		producer:    newProducer(kafkaCfg),
		eventsTopic: kafkaCfg.EventsTopic,
	}
}

func (e *EventProducer) SendEvent(ctx context.Context, message *models.EventMessage) error {
	jsonData, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("failed to marshal board event: %w", err)
	}

	err = e.producer.SendMessage(ctx, e.eventsTopic, eventKey(message), jsonData)
	if err != nil {
		return fmt.Errorf("failed to send board event: %w", err)
	}

	return nil
}

func (e *EventProducer) Close() error {
	return e.producer.Close()
}

func eventKey(message *models.EventMessage) []byte {
	if message.TaskId != 0 {
		return []byte(strconv.FormatInt(message.TaskId, 10))
	}
	return []byte(message.ContactId)
}

// NopProducer drops every event. It is used when no brokers are configured.
type NopProducer struct{}

func (NopProducer) SendEvent(ctx context.Context, message *models.EventMessage) error { return nil }

func (NopProducer) Close() error { return nil }
