package handler

import (
	"context"

	"github.com/gofiber/fiber/v2"

	"github.com/dtroode/taskkeeper/internal/logger"
	"github.com/dtroode/taskkeeper/internal/model"
)

// TaskService defines ownership-scoped task operations.
type TaskService interface {
	ListTasks(ctx context.Context, userID int64, order model.SortOrder) ([]model.Task, error)
	GetTask(ctx context.Context, userID, taskID int64) (model.Task, error)
	CreateTask(ctx context.Context, userID int64, fields model.TaskFields) (model.Task, error)
	UpdateTask(ctx context.Context, userID, taskID int64, fields model.TaskFields) (model.Task, error)
	DeleteTask(ctx context.Context, userID, taskID int64) error
}

// Task handles the JSON task endpoints.
type Task struct {
	taskService    TaskService
	contextManager model.ContextManager
	logger         *logger.Logger
}

// NewTask creates a new Task handler.
func NewTask(taskService TaskService, contextManager model.ContextManager, logger *logger.Logger) *Task {
	return &Task{
		taskService:    taskService,
		contextManager: contextManager,
		logger:         logger,
	}
}

// List answers with the user's tasks, oldest first.
func (h *Task) List(c *fiber.Ctx) error {
	identity, err := identityFrom(h.contextManager, c)
	if err != nil {
		return err
	}

	tasks, err := h.taskService.ListTasks(c.UserContext(), identity.User.ID, model.OldestFirst)
	if err != nil {
		return err
	}

	return c.JSON(newTaskListResponse(tasks))
}

func (h *Task) Get(c *fiber.Ctx) error {
	identity, err := identityFrom(h.contextManager, c)
	if err != nil {
		return err
	}

	id, ok := taskID(c)
	if !ok {
		return model.ErrForbidden
	}

	task, err := h.taskService.GetTask(c.UserContext(), identity.User.ID, id)
	if err != nil {
		return err
	}

	return c.JSON(newTaskResponse(task))
}

func (h *Task) Create(c *fiber.Ctx) error {
	identity, err := identityFrom(h.contextManager, c)
	if err != nil {
		return err
	}

	in, err := readInput(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.CreateTask(c.UserContext(), identity.User.ID, in.taskFields())
	if err != nil {
		return err
	}

	h.logger.Debug("Task handler: task created",
		"user_id", identity.User.ID,
		"task_id", task.ID)

	return c.Status(fiber.StatusCreated).JSON(newTaskResponse(task))
}

// Update applies title and completed when present.
func (h *Task) Update(c *fiber.Ctx) error {
	identity, err := identityFrom(h.contextManager, c)
	if err != nil {
		return err
	}

	id, ok := taskID(c)
	if !ok {
		return model.ErrForbidden
	}

	in, err := readInput(c)
	if err != nil {
		return err
	}

	task, err := h.taskService.UpdateTask(c.UserContext(), identity.User.ID, id, in.taskFields())
	if err != nil {
		return err
	}

	return c.JSON(newTaskResponse(task))
}

// Delete removes the task and answers with a bare true.
func (h *Task) Delete(c *fiber.Ctx) error {
	identity, err := identityFrom(h.contextManager, c)
	if err != nil {
		return err
	}

	id, ok := taskID(c)
	if !ok {
		return model.ErrForbidden
	}

	if err := h.taskService.DeleteTask(c.UserContext(), identity.User.ID, id); err != nil {
		return err
	}

	return c.JSON(true)
}

func taskID(c *fiber.Ctx) (int64, bool) {
	id, err := c.ParamsInt("id")
	if err != nil || id <= 0 {
		return 0, false
	}
	return int64(id), true
}
