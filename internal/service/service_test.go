package service

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/Novip1906/join/internal/config"
	"github.com/Novip1906/join/internal/models"
	"github.com/Novip1906/join/internal/storage"
	"github.com/Novip1906/join/pkg/logging"
)

type fakeEvents struct {
	mu   sync.Mutex
	sent []*models.EventMessage
	err  error
}

func (f *fakeEvents) SendEvent(ctx context.Context, msg *models.EventMessage) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.err != nil {
		return f.err
	}
	f.sent = append(f.sent, msg)
	return nil
}

func (f *fakeEvents) ofType(eventType string) []*models.EventMessage {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*models.EventMessage
	for _, m := range f.sent {
		if m.Type == eventType {
			out = append(out, m)
		}
	}
	return out
}

type fakeIndex struct {
	indexed map[int64]*models.Task
	deleted []int64
	hits    []int64
	err     error
}

func newFakeIndex() *fakeIndex {
	return &fakeIndex{indexed: map[int64]*models.Task{}}
}

func (f *fakeIndex) IndexTask(ctx context.Context, task *models.Task) error {
	f.indexed[task.Id] = task
	return nil
}

func (f *fakeIndex) DeleteTask(ctx context.Context, id int64) error {
	f.deleted = append(f.deleted, id)
	delete(f.indexed, id)
	return nil
}

func (f *fakeIndex) Search(ctx context.Context, query string) ([]int64, error) {
	return f.hits, f.err
}

var errIndexDown = errors.New("index unavailable")

type fixture struct {
	db       *storage.MemoryStorage
	events   *fakeEvents
	index    *fakeIndex
	board    *BoardService
	contacts *ContactsService
}

// fixedNow is a Monday; due dates in tests are relative to it.
var fixedNow = time.Date(2026, 3, 2, 9, 30, 0, 0, time.UTC)

func newFixture(t *testing.T) *fixture {
	t.Helper()

	db := storage.NewMemoryStorage()
	events := &fakeEvents{}
	index := newFakeIndex()
	log := logging.Discard()

	board := NewBoardService(config.DefaultParams(), log, db, events, index)
	board.now = func() time.Time { return fixedNow }

	contacts := NewContactsService(config.DefaultParams(), log, db, events)
	contacts.now = func() time.Time { return fixedNow }
	contacts.pickInt = func(n int) int { return 0 }

	return &fixture{db: db, events: events, index: index, board: board, contacts: contacts}
}

func (f *fixture) contact(t *testing.T, name, email string) *models.Contact {
	t.Helper()
	c, err := f.contacts.CreateContact(context.Background(), ContactInput{Name: name, Email: email})
	require.NoError(t, err)
	return c
}

func (f *fixture) task(t *testing.T, in TaskInput) *models.Task {
	t.Helper()
	if in.DueDate == "" {
		in.DueDate = "2026-03-10"
	}
	if in.Category == "" {
		in.Category = models.CategoryUserStory
	}
	task, err := f.board.CreateTask(context.Background(), in)
	require.NoError(t, err)
	return task
}
