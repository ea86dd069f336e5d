package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/dtroode/taskkeeper/internal/logger"
	"github.com/dtroode/taskkeeper/internal/model"
	"github.com/dtroode/taskkeeper/internal/validation"
)

type titleInput struct {
	Title string `json:"title" validate:"required,max=255"`
}

type Task struct {
	store     model.TaskStore
	validator *validation.Validator
	logger    *logger.Logger
}

func NewTask(store model.TaskStore, validator *validation.Validator, logger *logger.Logger) *Task {
	return &Task{
		store:     store,
		validator: validator,
		logger:    logger,
	}
}

func (s *Task) ListTasks(ctx context.Context, userID int64, order model.SortOrder) ([]model.Task, error) {
	tasks, err := s.store.GetByUserID(ctx, userID, order)
	if err != nil {
		s.logger.Error("Task service: failed to list tasks",
			"user_id", userID,
			"error", err.Error())
		return nil, fmt.Errorf("failed to list tasks: %w", err)
	}
	return tasks, nil
}

func (s *Task) GetTask(ctx context.Context, userID, taskID int64) (model.Task, error) {
	return s.findOwned(ctx, userID, taskID)
}

// CreateTask stores a new incomplete task for userID. A supplied completed
// value is ignored.
func (s *Task) CreateTask(ctx context.Context, userID int64, fields model.TaskFields) (model.Task, error) {
	errs := model.FieldErrors{}
	errs.Merge(fields.DecodeErrors)

	var title string
	if _, invalid := errs["title"]; !invalid {
		if fields.Title != nil {
			title = strings.TrimSpace(*fields.Title)
		}
		titleErrs, err := s.validator.Struct(titleInput{Title: title})
		if err != nil {
			return model.Task{}, err
		}
		errs.Merge(titleErrs)
	}
	delete(errs, "completed")

	if len(errs) > 0 {
		return model.Task{}, model.NewValidationError(errs)
	}

	task, err := s.store.Create(ctx, model.Task{
		UserID: userID,
		Title:  title,
	})
	if err != nil {
		s.logger.Error("Task service: failed to create task",
			"user_id", userID,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	s.logger.Debug("Task service: task created",
		"user_id", userID,
		"task_id", task.ID)

	return task, nil
}

// UpdateTask applies the supplied fields to a task owned by userID.
// Ownership is checked before any input is validated.
func (s *Task) UpdateTask(ctx context.Context, userID, taskID int64, fields model.TaskFields) (model.Task, error) {
	task, err := s.findOwned(ctx, userID, taskID)
	if err != nil {
		return model.Task{}, err
	}

	errs := model.FieldErrors{}
	errs.Merge(fields.DecodeErrors)

	if _, invalid := errs["title"]; !invalid && fields.Title != nil {
		title := strings.TrimSpace(*fields.Title)
		titleErrs, err := s.validator.Struct(titleInput{Title: title})
		if err != nil {
			return model.Task{}, err
		}
		errs.Merge(titleErrs)
		task.Title = title
	}

	if len(errs) > 0 {
		return model.Task{}, model.NewValidationError(errs)
	}

	if fields.Title == nil && fields.Completed == nil {
		return task, nil
	}

	if fields.Completed != nil {
		task.Completed = *fields.Completed
	}

	updated, err := s.store.Update(ctx, task)
	if errors.Is(err, model.ErrNotFound) {
		return model.Task{}, err
	}
	if err != nil {
		s.logger.Error("Task service: failed to update task",
			"task_id", taskID,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return updated, nil
}

func (s *Task) DeleteTask(ctx context.Context, userID, taskID int64) error {
	if _, err := s.findOwned(ctx, userID, taskID); err != nil {
		return err
	}

	err := s.store.Delete(ctx, taskID)
	if errors.Is(err, model.ErrNotFound) {
		return err
	}
	if err != nil {
		s.logger.Error("Task service: failed to delete task",
			"task_id", taskID,
			"error", err.Error())
		return fmt.Errorf("failed to delete task: %w", err)
	}

	s.logger.Debug("Task service: task deleted",
		"user_id", userID,
		"task_id", taskID)

	return nil
}

func (s *Task) findOwned(ctx context.Context, userID, taskID int64) (model.Task, error) {
	task, err := s.store.GetByID(ctx, taskID)
	if errors.Is(err, model.ErrNotFound) {
		return model.Task{}, err
	}
	if err != nil {
		s.logger.Error("Task service: failed to get task",
			"task_id", taskID,
			"error", err.Error())
		return model.Task{}, fmt.Errorf("failed to get task: %w", err)
	}

	if err := authorize(task, userID); err != nil {
		s.logger.Info("Task service: access denied",
			"user_id", userID,
			"task_id", taskID)
		return model.Task{}, err
	}

	return task, nil
}

// authorize rejects access to a task owned by someone other than userID.
func authorize(task model.Task, userID int64) error {
	if task.UserID != userID {
		return model.ErrForbidden
	}
	return nil
}
