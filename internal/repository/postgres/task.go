package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/taskkeeper/internal/model"
)

var _ model.TaskStore = (*TaskRepository)(nil)

const taskColumns = `id, user_id, title, completed, created_at, updated_at`

type TaskRepository struct {
	db *Connection
}

func NewTaskRepository(db *Connection) *TaskRepository {
	return &TaskRepository{
		db: db,
	}
}

func (r *TaskRepository) GetByID(ctx context.Context, id int64) (model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = $1`

	task, err := scanTask(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to get task by id: %w", err)
	}

	return task, nil
}

// GetByUserID lists the tasks of userID by creation time, ties broken by id.
func (r *TaskRepository) GetByUserID(ctx context.Context, userID int64, order model.SortOrder) ([]model.Task, error) {
	query := `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at ASC, id ASC`
	if order == model.NewestFirst {
		query = `SELECT ` + taskColumns + ` FROM tasks WHERE user_id = $1 ORDER BY created_at DESC, id DESC`
	}

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query tasks by user id: %w", err)
	}
	defer rows.Close()

	tasks := make([]model.Task, 0)
	for rows.Next() {
		task, err := scanTask(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan task: %w", err)
		}
		tasks = append(tasks, task)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate tasks: %w", err)
	}

	return tasks, nil
}

func (r *TaskRepository) Create(ctx context.Context, task model.Task) (model.Task, error) {
	query := `INSERT INTO tasks (user_id, title, completed)
			  VALUES ($1, $2, $3)
			  RETURNING ` + taskColumns

	saved, err := scanTask(r.db.QueryRow(ctx, query, task.UserID, task.Title, task.Completed))
	if err != nil {
		return model.Task{}, fmt.Errorf("failed to create task: %w", err)
	}

	return saved, nil
}

// Update writes title and completed of task. The owner is never changed.
func (r *TaskRepository) Update(ctx context.Context, task model.Task) (model.Task, error) {
	query := `UPDATE tasks SET title = $2, completed = $3, updated_at = NOW()
			  WHERE id = $1
			  RETURNING ` + taskColumns

	saved, err := scanTask(r.db.QueryRow(ctx, query, task.ID, task.Title, task.Completed))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return model.Task{}, model.ErrNotFound
		}
		return model.Task{}, fmt.Errorf("failed to update task: %w", err)
	}

	return saved, nil
}

func (r *TaskRepository) Delete(ctx context.Context, id int64) error {
	const query = `DELETE FROM tasks WHERE id = $1`

	cmd, err := r.db.Exec(ctx, query, id)
	if err != nil {
		return fmt.Errorf("failed to delete task: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return model.ErrNotFound
	}

	return nil
}

func scanTask(row pgx.Row) (model.Task, error) {
	var task model.Task
	err := row.Scan(&task.ID, &task.UserID, &task.Title, &task.Completed, &task.CreatedAt, &task.UpdatedAt)
	return task, err
}
