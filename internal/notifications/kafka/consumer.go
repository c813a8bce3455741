package kafka

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/segmentio/kafka-go"

	"github.com/Novip1906/join/internal/notifications/config"
	"github.com/Novip1906/join/pkg/logging"
)

const maxRetries = 3

type Consumer struct {
	readers  map[string]*kafka.Reader
	handlers map[string]MessageHandler
	config   config.Kafka
	wg       sync.WaitGroup
	log      *slog.Logger
	backoff  func(attempt int) time.Duration
}

type MessageHandler interface {
	HandleMessage(ctx context.Context, message []byte) error
}

func NewConsumer(config config.Kafka, mailer Mailer, log *slog.Logger) *Consumer {
	return &Consumer{
		readers: make(map[string]*kafka.Reader),
		handlers: map[string]MessageHandler{
			config.EventsTopic: &eventsHandler{mailer: mailer, log: log},
		},
		config:  config,
		log:     log,
		backoff: func(attempt int) time.Duration { return time.Duration(attempt) * time.Second },
	}
}

func (c *Consumer) Start(ctx context.Context) error {
	c.log.Info("Starting Kafka consumers")

	for topic, handler := range c.handlers {
		c.log.Debug("Creating reader for topic", "topic", topic)
		reader := c.createReader(topic)
		c.readers[topic] = reader

		c.wg.Add(1)
		go c.consumeTopic(ctx, topic, reader, handler)
	}

	c.log.Info("Kafka consumers started successfully")
	return nil
}

func (c *Consumer) createReader(topic string) *kafka.Reader {
	return kafka.NewReader(kafka.ReaderConfig{
		Brokers:     c.config.Brokers,
		GroupID:     c.config.GroupId,
		Topic:       topic,
		MaxAttempts: maxRetries,
		MaxWait:     10 * time.Second,
		Logger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			c.log.Debug("[KAFKA] " + fmtKafka(msg, args...))
		}),
		ErrorLogger: kafka.LoggerFunc(func(msg string, args ...interface{}) {
			c.log.Error("[KAFKA-ERROR] " + fmtKafka(msg, args...))
		}),
	})
}

func (c *Consumer) consumeTopic(ctx context.Context, topic string, reader *kafka.Reader, handler MessageHandler) {
	defer c.wg.Done()

	c.log.Info("Starting consumer for topic", "topic", topic)
	for {
		msg, err := reader.ReadMessage(ctx)
		if err != nil {
			if ctx.Err() != nil {
				c.log.Info("Stopping consumer for topic", "topic", topic)
				return
			}

			c.log.Error("Error reading message from Kafka",
				"topic", topic,
				logging.Err(err))
			continue
		}

		c.handleMessageWithRetry(ctx, topic, msg, handler)
	}
}

func (c *Consumer) handleMessageWithRetry(ctx context.Context, topic string, msg kafka.Message, handler MessageHandler) bool {
	var lastErr error

	for attempt := 1; attempt <= maxRetries; attempt++ {
		err := handler.HandleMessage(ctx, msg.Value)
		if err == nil {
			c.log.Info("Successfully processed message",
				"topic", topic,
				"partition", msg.Partition,
				"offset", msg.Offset)
			return true
		}

		lastErr = err
		if isPermanent(err) {
			break
		}
		c.log.Warn("Failed to process message, retrying",
			"topic", topic,
			"attempt", attempt,
			"maxRetries", maxRetries,
			logging.Err(err))

		if attempt < maxRetries {
			select {
			case <-ctx.Done():
				return false
			case <-time.After(c.backoff(attempt)):
			}
		}
	}

	c.log.Error("Failed to process message",
		"topic", topic,
		"partition", msg.Partition,
		"offset", msg.Offset,
		logging.Err(lastErr))
	return false
}

func (c *Consumer) Stop() error {
	c.log.Info("Stopping Kafka consumers...")

	var lastErr error
	for topic, reader := range c.readers {
		if err := reader.Close(); err != nil {
			c.log.Error("Error closing Kafka reader",
				"topic", topic,
				logging.Err(err))
			lastErr = err
		}
	}

	c.wg.Wait()

	c.log.Info("Kafka consumers stopped")
	return lastErr
}

func fmtKafka(msg string, args ...interface{}) string {
	return fmt.Sprintf(msg, args...)
}
