// Package service holds the board's use cases: auth, contacts and tasks. Every
// operation reads from and writes to the Database directly; nothing is cached
// between calls, and concurrent writers follow last-write-wins.
package service

import (
	"context"
	"errors"
	"log/slog"
	"sort"
	"time"

	"github.com/Novip1906/join/internal/models"
	"github.com/Novip1906/join/internal/storage"
	"github.com/Novip1906/join/pkg/logging"
)

const (
	tasksPath    = "tasks"
	contactsPath = "contacts"
	usersPath    = "users"
)

// Database is the REST-shaped document store behind every service. It is
// implemented by the Firebase client and by the storage backends.
type Database interface {
	Get(ctx context.Context, path string, out any) error
	Post(ctx context.Context, path string, v any) (string, error)
	Put(ctx context.Context, path string, v any) error
	Patch(ctx context.Context, path string, v any) error
	Delete(ctx context.Context, path string) error
}

type EventSender interface {
	SendEvent(ctx context.Context, message *models.EventMessage) error
}

type TaskIndex interface {
	IndexTask(ctx context.Context, task *models.Task) error
	DeleteTask(ctx context.Context, taskId int64) error
	Search(ctx context.Context, query string) ([]int64, error)
}

func loadTasks(ctx context.Context, db Database) ([]*models.Task, error) {
	raw := map[string]*models.Task{}
	err := db.Get(ctx, tasksPath, &raw)
	if errors.Is(err, storage.ErrNotFound) {
		return []*models.Task{}, nil
	}
	if err != nil {
		return nil, err
	}

	keys := make([]string, 0, len(raw))
	for k, t := range raw {
		if t != nil {
			keys = append(keys, k)
		}
	}
	// push keys sort in creation order
	sort.Strings(keys)

	tasks := make([]*models.Task, 0, len(keys))
	for _, k := range keys {
		t := raw[k]
		t.Key = k
		tasks = append(tasks, t)
	}
	return tasks, nil
}

func loadContacts(ctx context.Context, db Database) ([]*models.Contact, error) {
	raw := map[string]*models.Contact{}
	err := db.Get(ctx, contactsPath, &raw)
	if errors.Is(err, storage.ErrNotFound) {
		return []*models.Contact{}, nil
	}
	if err != nil {
		return nil, err
	}

	contacts := make([]*models.Contact, 0, len(raw))
	for k, c := range raw {
		if c == nil {
			continue
		}
		c.Key = k
		contacts = append(contacts, c)
	}
	sortContacts(contacts)
	return contacts, nil
}

func loadUsers(ctx context.Context, db Database) ([]*models.User, error) {
	raw := map[string]*models.User{}
	err := db.Get(ctx, usersPath, &raw)
	if errors.Is(err, storage.ErrNotFound) {
		return []*models.User{}, nil
	}
	if err != nil {
		return nil, err
	}

	users := make([]*models.User, 0, len(raw))
	for k, u := range raw {
		if u == nil {
			continue
		}
		u.Key = k
		users = append(users, u)
	}
	return users, nil
}

// publish sends an event when a sender is configured. Failures never fail the
// calling operation.
func publish(ctx context.Context, log *slog.Logger, sender EventSender, msg *models.EventMessage) {
	if sender == nil {
		return
	}

	asyncCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 5*time.Second)
	defer cancel()

	if err := sender.SendEvent(asyncCtx, msg); err != nil {
		log.Error("kafka error", slog.String("event-type", msg.Type), logging.Err(err))
		return
	}
	log.Debug("kafka event message sent", slog.String("event-type", msg.Type))
}
