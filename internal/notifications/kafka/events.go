package kafka

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/Novip1906/join/internal/models"
)

type Mailer interface {
	SendTaskEmail(msg models.EventMessage) error
}

// errPermanent marks messages that will never succeed, so they are not retried.
var errPermanent = errors.New("permanent failure")

func isPermanent(err error) bool {
	return errors.Is(err, errPermanent)
}

type eventsHandler struct {
	mailer Mailer
	log    *slog.Logger
}

// HandleMessage mails assignees of created or newly assigned tasks. Other
// board events are acknowledged without action.
func (h *eventsHandler) HandleMessage(ctx context.Context, message []byte) error {
	var eventMsg models.EventMessage
	if err := json.Unmarshal(message, &eventMsg); err != nil {
		return fmt.Errorf("%w: unmarshal event message: %v", errPermanent, err)
	}

	switch eventMsg.Type {
	case models.EventTaskCreated, models.EventTaskAssigned:
	default:
		h.log.Debug("Ignoring event", "type", eventMsg.Type)
		return nil
	}

	if eventMsg.Email == "" {
		h.log.Debug("Event without recipient", "type", eventMsg.Type, "task_id", eventMsg.TaskId)
		return nil
	}

	h.log.Info("Received task event", "type", eventMsg.Type, "email", eventMsg.Email)
	return h.mailer.SendTaskEmail(eventMsg)
}
