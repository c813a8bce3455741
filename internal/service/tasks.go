package service

import (
	"context"
	"log/slog"
	"time"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Novip1906/join/internal/firebase"
	"github.com/Novip1906/join/internal/models"
	"github.com/Novip1906/join/pkg/logging"
)

type SubtaskInput struct {
	Id          string `json:"id,omitempty"`
	Description string `json:"description"`
}

// TaskInput is the add-task form and the edit popup. AssignedTo holds contact
// ids.
type TaskInput struct {
	Title       string         `json:"title"`
	Description string         `json:"description"`
	DueDate     string         `json:"due_date"`
	Prio        string         `json:"prio"`
	Category    string         `json:"category"`
	Status      string         `json:"status"`
	AssignedTo  []string       `json:"assigned_to"`
	Subtasks    []SubtaskInput `json:"subtasks"`
}

type taskFields struct {
	title       string
	description string
	dueDate     string
	prio        models.Priority
	category    string
	status      models.Status
}

func (s *BoardService) CreateTask(ctx context.Context, in TaskInput) (*models.Task, error) {
	log := s.logger(ctx)
	log.Debug("attempt")

	fields, err := s.validateTask(in, true)
	if err != nil {
		log.Error("invalid task", logging.Err(err))
		return nil, err
	}

	assignees, emails, err := s.resolveAssignees(ctx, in.AssignedTo)
	if err != nil {
		return nil, err
	}

	subtasks, err := s.buildSubtasks(in.Subtasks, nil)
	if err != nil {
		return nil, err
	}

	id := s.nextTaskId()
	task := &models.Task{
		Id:          id,
		Title:       fields.title,
		Description: fields.description,
		AssignedTo:  assignees,
		DueDate:     fields.dueDate,
		Prio:        fields.prio,
		Category:    fields.category,
		Subtasks:    subtasks,
		Status:      fields.status,
		Timestamp:   id,
	}

	key, err := s.db.Post(ctx, tasksPath, task)
	if err != nil {
		log.Error("db error", logging.DbErr("Post tasks", err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}
	task.Key = key
	log.Info("task created", slog.Int64("task_id", task.Id), slog.String("status", string(task.Status)))

	s.indexTask(ctx, task)
	s.notifyAssignees(ctx, models.EventTaskCreated, task, assignees, emails)

	return task, nil
}

// UpdateTask applies the edit popup. Status, id and timestamp are not
// editable; subtasks sent with their id keep the checked state.
func (s *BoardService) UpdateTask(ctx context.Context, id int64, in TaskInput) (*models.Task, error) {
	log := s.logger(ctx).With(slog.Int64("task_id", id))
	log.Debug("attempt")

	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}

	in.Status = string(task.Status)
	fields, err := s.validateTask(in, false)
	if err != nil {
		log.Error("invalid task", logging.Err(err))
		return nil, err
	}

	assignees, emails, err := s.resolveAssignees(ctx, in.AssignedTo)
	if err != nil {
		return nil, err
	}

	subtasks, err := s.buildSubtasks(in.Subtasks, task.Subtasks)
	if err != nil {
		return nil, err
	}

	added := map[string]models.Assignee{}
	for cid, a := range assignees {
		if _, ok := task.AssignedTo[cid]; !ok {
			added[cid] = a
		}
	}

	task.Title = fields.title
	task.Description = fields.description
	task.DueDate = fields.dueDate
	task.Prio = fields.prio
	task.Category = fields.category
	task.AssignedTo = assignees
	task.Subtasks = subtasks

	if err := s.db.Put(ctx, firebase.Join(tasksPath, task.Key), task); err != nil {
		log.Error("db error", logging.DbErr("Put task", err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}
	log.Info("task updated")

	s.indexTask(ctx, task)
	publish(ctx, s.logger(ctx), s.events, s.taskEvent(models.EventTaskUpdated, task))
	s.notifyAssignees(ctx, models.EventTaskAssigned, task, added, emails)

	return task, nil
}

// MoveTask is the drag-and-drop: one PATCH of the Status field. Dropping a
// task on its own column changes nothing.
func (s *BoardService) MoveTask(ctx context.Context, id int64, rawStatus string) (*models.Task, error) {
	log := s.logger(ctx).With(slog.Int64("task_id", id))
	log.Debug("attempt", slog.String("status", rawStatus))

	target, ok := models.ParseStatus(rawStatus)
	if !ok {
		log.Error("invalid status", slog.String("status", rawStatus))
		return nil, status.Error(codes.InvalidArgument, ErrInvalidStatusMessage)
	}

	task, err := s.GetTask(ctx, id)
	if err != nil {
		return nil, err
	}
	if task.Status == target {
		log.Debug("task already in column")
		return task, nil
	}

	patch := map[string]any{"Status": target}
	if err := s.db.Patch(ctx, firebase.Join(tasksPath, task.Key), patch); err != nil {
		log.Error("db error", logging.DbErr("Patch task status", err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}

	old := task.Status
	task.Status = target
	log.Info("task moved", slog.String("from", string(old)), slog.String("to", string(target)))

	s.indexTask(ctx, task)
	msg := s.taskEvent(models.EventTaskMoved, task)
	msg.OldStatus = string(old)
	publish(ctx, s.logger(ctx), s.events, msg)

	return task, nil
}

func (s *BoardService) DeleteTask(ctx context.Context, id int64) error {
	log := s.logger(ctx).With(slog.Int64("task_id", id))
	log.Debug("attempt")

	task, err := s.GetTask(ctx, id)
	if err != nil {
		return err
	}

	if err := s.db.Delete(ctx, firebase.Join(tasksPath, task.Key)); err != nil {
		log.Error("db error", logging.DbErr("Delete task", err))
		return status.Error(codes.Internal, ErrInternalMessage)
	}
	log.Info("task deleted")

	if s.index != nil {
		if err := s.index.DeleteTask(ctx, id); err != nil {
			log.Error("search index error", logging.Err(err))
		}
	}
	publish(ctx, s.logger(ctx), s.events, s.taskEvent(models.EventTaskDeleted, task))
	return nil
}

func (s *BoardService) validateTask(in TaskInput, create bool) (taskFields, error) {
	f := taskFields{
		title:       processText(in.Title),
		description: processText(in.Description),
		dueDate:     processText(in.DueDate),
	}

	if !lenIsValid(f.title, s.params.Title) {
		return f, status.Error(codes.InvalidArgument, ErrInvalidTitleMessage)
	}

	due, ok := parseDueDate(f.dueDate)
	if !ok {
		return f, status.Error(codes.InvalidArgument, ErrInvalidDueDateMessage)
	}
	if create {
		y, m, d := s.now().Date()
		if due.Before(time.Date(y, m, d, 0, 0, 0, 0, time.UTC)) {
			return f, status.Error(codes.InvalidArgument, ErrDueDateInPastMessage)
		}
	}

	if f.prio, ok = models.ParsePriority(in.Prio); !ok {
		return f, status.Error(codes.InvalidArgument, ErrInvalidPrioMessage)
	}

	if f.category, ok = canonicalCategory(in.Category); !ok {
		return f, status.Error(codes.InvalidArgument, ErrInvalidCategoryMessage)
	}

	f.status = models.StatusToDo
	if processText(in.Status) != "" {
		if f.status, ok = models.ParseStatus(in.Status); !ok {
			return f, status.Error(codes.InvalidArgument, ErrInvalidStatusMessage)
		}
	}
	return f, nil
}

// resolveAssignees looks the contact ids up and returns the denormalised
// assignee map along with each contact's email.
func (s *BoardService) resolveAssignees(ctx context.Context, ids []string) (map[string]models.Assignee, map[string]string, error) {
	log := s.logger(ctx)
	if len(ids) == 0 {
		return nil, nil, nil
	}

	contacts, err := loadContacts(ctx, s.db)
	if err != nil {
		log.Error("db error", logging.DbErr("loadContacts", err))
		return nil, nil, status.Error(codes.Internal, ErrInternalMessage)
	}
	byId := make(map[string]*models.Contact, len(contacts))
	for _, c := range contacts {
		byId[c.Id] = c
	}

	assignees := make(map[string]models.Assignee, len(ids))
	emails := make(map[string]string, len(ids))
	for _, id := range ids {
		c, ok := byId[id]
		if !ok {
			log.Error("unknown assignee", slog.String("contact_id", id))
			return nil, nil, status.Error(codes.InvalidArgument, ErrUnknownAssigneeMessage)
		}
		assignees[id] = c.Assignee()
		emails[id] = c.Email
	}
	return assignees, emails, nil
}

// buildSubtasks turns the form's subtask list into the stored map. Entries
// whose id exists in current keep their checked state; the rest get new ids.
func (s *BoardService) buildSubtasks(in []SubtaskInput, current map[string]models.Subtask) (map[string]models.Subtask, error) {
	if len(in) == 0 {
		return nil, nil
	}
	out := make(map[string]models.Subtask, len(in))
	for _, st := range in {
		desc := processText(st.Description)
		if desc == "" {
			return nil, status.Error(codes.InvalidArgument, ErrInvalidSubtaskMessage)
		}
		sub := models.Subtask{Id: st.Id, Description: desc}
		if prev, ok := current[st.Id]; ok && st.Id != "" {
			sub.IsChecked = prev.IsChecked
		} else {
			sub.Id = s.newID()
		}
		out[sub.Id] = sub
	}
	return out, nil
}

func (s *BoardService) taskEvent(eventType string, task *models.Task) *models.EventMessage {
	return &models.EventMessage{
		Type:       eventType,
		TaskId:     task.Id,
		TaskTitle:  task.Title,
		Status:     string(task.Status),
		DueDate:    task.DueDate,
		Prio:       string(task.Prio),
		OccurredAt: s.now().UnixMilli(),
	}
}

func (s *BoardService) notifyAssignees(ctx context.Context, eventType string, task *models.Task, assignees map[string]models.Assignee, emails map[string]string) {
	for cid, a := range assignees {
		email := emails[cid]
		if email == "" {
			continue
		}
		msg := s.taskEvent(eventType, task)
		msg.ContactId = cid
		msg.Email = email
		msg.Username = a.Name
		publish(ctx, s.logger(ctx), s.events, msg)
	}
}
