package service

import (
	"context"
	"log/slog"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/Novip1906/join/internal/firebase"
	"github.com/Novip1906/join/internal/models"
	"github.com/Novip1906/join/pkg/logging"
)

func subtaskPath(task *models.Task, subtaskId string) string {
	return firebase.Join(tasksPath, task.Key, "Subtasks", subtaskId)
}

func (s *BoardService) AddSubtask(ctx context.Context, taskId int64, description string) (*models.Subtask, error) {
	log := s.logger(ctx).With(slog.Int64("task_id", taskId))
	log.Debug("attempt")

	description = processText(description)
	if description == "" {
		return nil, status.Error(codes.InvalidArgument, ErrInvalidSubtaskMessage)
	}

	task, err := s.GetTask(ctx, taskId)
	if err != nil {
		return nil, err
	}

	sub := &models.Subtask{Id: s.newID(), Description: description}
	if err := s.db.Put(ctx, subtaskPath(task, sub.Id), sub); err != nil {
		log.Error("db error", logging.DbErr("Put subtask", err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}

	log.Info("subtask added", slog.String("subtask_id", sub.Id))
	return sub, nil
}

func (s *BoardService) EditSubtask(ctx context.Context, taskId int64, subtaskId, description string) (*models.Subtask, error) {
	log := s.logger(ctx).With(slog.Int64("task_id", taskId), slog.String("subtask_id", subtaskId))
	log.Debug("attempt")

	description = processText(description)
	if description == "" {
		return nil, status.Error(codes.InvalidArgument, ErrInvalidSubtaskMessage)
	}

	task, sub, err := s.getSubtask(ctx, taskId, subtaskId)
	if err != nil {
		return nil, err
	}

	if err := s.db.Patch(ctx, subtaskPath(task, subtaskId), map[string]any{"description": description}); err != nil {
		log.Error("db error", logging.DbErr("Patch subtask", err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}

	sub.Description = description
	log.Info("subtask edited")
	return &sub, nil
}

func (s *BoardService) ToggleSubtask(ctx context.Context, taskId int64, subtaskId string) (*models.Subtask, error) {
	log := s.logger(ctx).With(slog.Int64("task_id", taskId), slog.String("subtask_id", subtaskId))
	log.Debug("attempt")

	task, sub, err := s.getSubtask(ctx, taskId, subtaskId)
	if err != nil {
		return nil, err
	}

	sub.IsChecked = !sub.IsChecked
	if err := s.db.Patch(ctx, subtaskPath(task, subtaskId), map[string]any{"isChecked": sub.IsChecked}); err != nil {
		log.Error("db error", logging.DbErr("Patch subtask", err))
		return nil, status.Error(codes.Internal, ErrInternalMessage)
	}

	log.Info("subtask toggled", slog.Bool("checked", sub.IsChecked))
	return &sub, nil
}

func (s *BoardService) DeleteSubtask(ctx context.Context, taskId int64, subtaskId string) error {
	log := s.logger(ctx).With(slog.Int64("task_id", taskId), slog.String("subtask_id", subtaskId))
	log.Debug("attempt")

	task, _, err := s.getSubtask(ctx, taskId, subtaskId)
	if err != nil {
		return err
	}

	if err := s.db.Delete(ctx, subtaskPath(task, subtaskId)); err != nil {
		log.Error("db error", logging.DbErr("Delete subtask", err))
		return status.Error(codes.Internal, ErrInternalMessage)
	}
	log.Info("subtask deleted")
	return nil
}

func (s *BoardService) getSubtask(ctx context.Context, taskId int64, subtaskId string) (*models.Task, models.Subtask, error) {
	task, err := s.GetTask(ctx, taskId)
	if err != nil {
		return nil, models.Subtask{}, err
	}
	sub, ok := task.Subtasks[subtaskId]
	if !ok {
		s.logger(ctx).Error("subtask not found", slog.String("subtask_id", subtaskId))
		return nil, models.Subtask{}, status.Error(codes.NotFound, ErrSubtaskNotFoundMessage)
	}
	return task, sub, nil
}
