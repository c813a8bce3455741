package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Novip1906/join/internal/config"
	"github.com/Novip1906/join/internal/contextkeys"
	"github.com/Novip1906/join/internal/models"
	"github.com/Novip1906/join/pkg/logging"
)

type Column struct {
	Status   models.Status  `json:"status"`
	ColumnId string         `json:"column_id"`
	Title    string         `json:"title"`
	Tasks    []*models.Task `json:"tasks"`
}

type Board struct {
	Columns []Column `json:"columns"`
}

type Summary struct {
	ToDo             int    `json:"to_do"`
	InProgress       int    `json:"in_progress"`
	AwaitFeedback    int    `json:"await_feedback"`
	Done             int    `json:"done"`
	Total            int    `json:"total"`
	Urgent           int    `json:"urgent"`
	UpcomingDeadline string `json:"upcoming_deadline"`
}

type BoardService struct {
	params config.Params
	log    *slog.Logger
	db     Database
	events EventSender
	index  TaskIndex
	now    func() time.Time
	newID  func() string

	mu     sync.Mutex
	lastId int64
}

func NewBoardService(params config.Params, log *slog.Logger, db Database, events EventSender, index TaskIndex) *BoardService {
	return &BoardService{
		params: params,
		log:    log,
		db:     db,
		events: events,
		index:  index,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// logger prefers the request logger and falls back to the one the service was
// built with.
func (s *BoardService) logger(ctx context.Context) *slog.Logger {
	return contextkeys.GetLoggerOr(ctx, s.log)
}

func (s *BoardService) ListTasks(ctx context.Context) ([]*models.Task, error) {
	tasks, err := loadTasks(ctx, s.db)
	if err != nil {
		s.logger(ctx).Error("db error", logging.DbErr("loadTasks", err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}
	return tasks, nil
}

func (s *BoardService) Board(ctx context.Context) (*Board, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return BuildBoard(contextkeys.WithLogger(ctx, s.logger(ctx)), tasks), nil
}

// BuildBoard distributes tasks over the four columns, keeping their order.
// Every column is present even when empty. Tasks with an unknown status are
// left off the board.
func BuildBoard(ctx context.Context, tasks []*models.Task) *Board {
	log := contextkeys.GetLogger(ctx)

	board := &Board{Columns: make([]Column, len(models.Columns))}
	pos := make(map[models.Status]int, len(models.Columns))
	for i, st := range models.Columns {
		board.Columns[i] = Column{Status: st, ColumnId: st.ColumnID(), Title: st.Title(), Tasks: []*models.Task{}}
		pos[st] = i
	}

	for _, t := range tasks {
		i, ok := pos[t.Status]
		if !ok {
			log.Warn("task with unknown status skipped", slog.Int64("task_id", t.Id), slog.String("status", string(t.Status)))
			continue
		}
		board.Columns[i].Tasks = append(board.Columns[i].Tasks, t)
	}
	return board
}

func (s *BoardService) GetTask(ctx context.Context, id int64) (*models.Task, error) {
	log := s.logger(ctx).With(slog.Int64("task_id", id))

	tasks, err := loadTasks(ctx, s.db)
	if err != nil {
		log.Error("db error", logging.DbErr("loadTasks", err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}
	for _, t := range tasks {
		if t.Id == id {
			return t, nil
		}
	}
	log.Error("task not found")
	return nil, status.Error(codes.NotFound, ErrTaskNotFoundMessage)
}

func (s *BoardService) Summary(ctx context.Context) (*Summary, error) {
	tasks, err := s.ListTasks(ctx)
	if err != nil {
		return nil, err
	}
	return Summarize(tasks), nil
}

// Summarize counts tasks per column and finds the earliest due date among
// urgent tasks that are not done yet.
func Summarize(tasks []*models.Task) *Summary {
	sum := &Summary{}
	var upcoming time.Time

	for _, t := range tasks {
		switch t.Status {
		case models.StatusToDo:
			sum.ToDo++
		case models.StatusInProgress:
			sum.InProgress++
		case models.StatusAwaitFeedback:
			sum.AwaitFeedback++
		case models.StatusDone:
			sum.Done++
		}
		sum.Total++

		if t.Prio != models.PriorityUrgent {
			continue
		}
		sum.Urgent++
		if t.Status == models.StatusDone {
			continue
		}
		due, ok := parseDueDate(t.DueDate)
		if !ok {
			continue
		}
		if upcoming.IsZero() || due.Before(upcoming) {
			upcoming = due
		}
	}

	if !upcoming.IsZero() {
		sum.UpcomingDeadline = upcoming.Format(dueDateLayout)
	}
	return sum
}

// nextTaskId returns the current epoch millisecond, bumped past the last id
// handed out so two tasks created within one millisecond stay distinct.
func (s *BoardService) nextTaskId() int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	id := s.now().UnixMilli()
	if id <= s.lastId {
		id = s.lastId + 1
	}
	s.lastId = id
	return id
}

func (s *BoardService) indexTask(ctx context.Context, task *models.Task) {
	if s.index == nil {
		return
	}
	if err := s.index.IndexTask(ctx, task); err != nil {
		s.logger(ctx).Error("search index error", slog.Int64("task_id", task.Id), logging.Err(err))
	}
}
