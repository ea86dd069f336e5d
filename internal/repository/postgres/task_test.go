package postgres

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dtroode/taskkeeper/internal/model"
)

var taskColumnNames = []string{"id", "user_id", "title", "completed", "created_at", "updated_at"}

func TestTaskRepository_GetByID(t *testing.T) {
	conn, pool := newMockConnection(t)
	repo := NewTaskRepository(conn)
	now := time.Now()

	pool.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE id = $1")).
		WithArgs(int64(1)).
		WillReturnRows(pgxmock.NewRows(taskColumnNames).AddRow(int64(1), int64(2), "Buy milk", false, now, now))

	task, err := repo.GetByID(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, model.Task{ID: 1, UserID: 2, Title: "Buy milk", CreatedAt: now, UpdatedAt: now}, task)
}

func TestTaskRepository_GetByID_NotFound(t *testing.T) {
	conn, pool := newMockConnection(t)
	repo := NewTaskRepository(conn)

	pool.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE id = $1")).
		WithArgs(int64(9)).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.GetByID(context.Background(), 9)
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTaskRepository_GetByUserID_Order(t *testing.T) {
	tests := []struct {
		name  string
		order model.SortOrder
		sql   string
	}{
		{name: "oldest first", order: model.OldestFirst, sql: "ORDER BY created_at ASC, id ASC"},
		{name: "newest first", order: model.NewestFirst, sql: "ORDER BY created_at DESC, id DESC"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, pool := newMockConnection(t)
			repo := NewTaskRepository(conn)
			now := time.Now()

			pool.ExpectQuery(regexp.QuoteMeta(tt.sql)).
				WithArgs(int64(2)).
				WillReturnRows(pgxmock.NewRows(taskColumnNames).
					AddRow(int64(1), int64(2), "a", false, now, now).
					AddRow(int64(2), int64(2), "b", true, now, now))

			tasks, err := repo.GetByUserID(context.Background(), 2, tt.order)
			require.NoError(t, err)
			require.Len(t, tasks, 2)
			assert.Equal(t, "a", tasks[0].Title)
			assert.True(t, tasks[1].Completed)
		})
	}
}

func TestTaskRepository_GetByUserID_Empty(t *testing.T) {
	conn, pool := newMockConnection(t)
	repo := NewTaskRepository(conn)

	pool.ExpectQuery(regexp.QuoteMeta("FROM tasks WHERE user_id = $1")).
		WithArgs(int64(3)).
		WillReturnRows(pgxmock.NewRows(taskColumnNames))

	tasks, err := repo.GetByUserID(context.Background(), 3, model.OldestFirst)
	require.NoError(t, err)
	assert.NotNil(t, tasks)
	assert.Empty(t, tasks)
}

func TestTaskRepository_Create(t *testing.T) {
	conn, pool := newMockConnection(t)
	repo := NewTaskRepository(conn)
	now := time.Now()

	pool.ExpectQuery(regexp.QuoteMeta("INSERT INTO tasks (user_id, title, completed)")).
		WithArgs(int64(2), "Write report", false).
		WillReturnRows(pgxmock.NewRows(taskColumnNames).AddRow(int64(1), int64(2), "Write report", false, now, now))

	task, err := repo.Create(context.Background(), model.Task{UserID: 2, Title: "Write report"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), task.ID)
}

func TestTaskRepository_Update(t *testing.T) {
	conn, pool := newMockConnection(t)
	repo := NewTaskRepository(conn)
	now := time.Now()

	pool.ExpectQuery(regexp.QuoteMeta("UPDATE tasks SET title = $2, completed = $3, updated_at = NOW()")).
		WithArgs(int64(1), "Write report", true).
		WillReturnRows(pgxmock.NewRows(taskColumnNames).AddRow(int64(1), int64(2), "Write report", true, now, now))

	task, err := repo.Update(context.Background(), model.Task{ID: 1, UserID: 2, Title: "Write report", Completed: true})
	require.NoError(t, err)
	assert.True(t, task.Completed)
}

func TestTaskRepository_Update_NotFound(t *testing.T) {
	conn, pool := newMockConnection(t)
	repo := NewTaskRepository(conn)

	pool.ExpectQuery(regexp.QuoteMeta("UPDATE tasks")).
		WithArgs(int64(1), "t", false).
		WillReturnError(pgx.ErrNoRows)

	_, err := repo.Update(context.Background(), model.Task{ID: 1, Title: "t"})
	assert.ErrorIs(t, err, model.ErrNotFound)
}

func TestTaskRepository_Delete(t *testing.T) {
	tests := []struct {
		name     string
		affected int64
		dbErr    error
		wantErr  error
	}{
		{name: "deleted", affected: 1},
		{name: "missing row", affected: 0, wantErr: model.ErrNotFound},
		{name: "db error", dbErr: errors.New("boom")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, pool := newMockConnection(t)
			repo := NewTaskRepository(conn)

			exp := pool.ExpectExec(regexp.QuoteMeta("DELETE FROM tasks WHERE id = $1")).WithArgs(int64(4))
			if tt.dbErr != nil {
				exp.WillReturnError(tt.dbErr)
			} else {
				exp.WillReturnResult(pgxmock.NewResult("DELETE", tt.affected))
			}

			err := repo.Delete(context.Background(), 4)
			switch {
			case tt.wantErr != nil:
				assert.ErrorIs(t, err, tt.wantErr)
			case tt.dbErr != nil:
				require.Error(t, err)
				assert.NotErrorIs(t, err, model.ErrNotFound)
			default:
				assert.NoError(t, err)
			}
		})
	}
}
