package router

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/dtroode/taskkeeper/internal/model"
)

// memDB backs the in-memory stores used by the router tests.
type memDB struct {
	mu       sync.Mutex
	users    map[int64]model.User
	tasks    map[int64]model.Task
	tokens   map[uuid.UUID]model.AuthToken
	lastUser int64
	lastTask int64
	clock    time.Time
}

func newMemDB() *memDB {
	return &memDB{
		users:  map[int64]model.User{},
		tasks:  map[int64]model.Task{},
		tokens: map[uuid.UUID]model.AuthToken{},
		clock:  time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

func (db *memDB) tick() time.Time {
	db.clock = db.clock.Add(time.Second)
	return db.clock
}

type memUsers struct{ db *memDB }

func (s memUsers) GetByEmail(_ context.Context, email string) (model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if strings.EqualFold(u.Email, email) {
			return u, nil
		}
	}
	return model.User{}, model.ErrNotFound
}

func (s memUsers) GetByID(_ context.Context, id int64) (model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	u, ok := s.db.users[id]
	if !ok {
		return model.User{}, model.ErrNotFound
	}
	return u, nil
}

func (s memUsers) Create(_ context.Context, user model.User) (model.User, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	for _, u := range s.db.users {
		if strings.EqualFold(u.Email, user.Email) {
			return model.User{}, model.ErrEmailTaken
		}
	}
	s.db.lastUser++
	user.ID = s.db.lastUser
	user.CreatedAt = s.db.tick()
	user.UpdatedAt = user.CreatedAt
	s.db.users[user.ID] = user
	return user, nil
}

type memTasks struct{ db *memDB }

func (s memTasks) GetByID(_ context.Context, id int64) (model.Task, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tasks[id]
	if !ok {
		return model.Task{}, model.ErrNotFound
	}
	return t, nil
}

func (s memTasks) GetByUserID(_ context.Context, userID int64, order model.SortOrder) ([]model.Task, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	tasks := []model.Task{}
	for _, t := range s.db.tasks {
		if t.UserID == userID {
			tasks = append(tasks, t)
		}
	}
	sort.Slice(tasks, func(i, j int) bool {
		a, b := tasks[i], tasks[j]
		if order == model.NewestFirst {
			a, b = b, a
		}
		if a.CreatedAt.Equal(b.CreatedAt) {
			return a.ID < b.ID
		}
		return a.CreatedAt.Before(b.CreatedAt)
	})
	return tasks, nil
}

func (s memTasks) Create(_ context.Context, task model.Task) (model.Task, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.lastTask++
	task.ID = s.db.lastTask
	task.CreatedAt = s.db.tick()
	task.UpdatedAt = task.CreatedAt
	s.db.tasks[task.ID] = task
	return task, nil
}

func (s memTasks) Update(_ context.Context, task model.Task) (model.Task, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	stored, ok := s.db.tasks[task.ID]
	if !ok {
		return model.Task{}, model.ErrNotFound
	}
	stored.Title = task.Title
	stored.Completed = task.Completed
	stored.UpdatedAt = s.db.tick()
	s.db.tasks[task.ID] = stored
	return stored, nil
}

func (s memTasks) Delete(_ context.Context, id int64) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	if _, ok := s.db.tasks[id]; !ok {
		return model.ErrNotFound
	}
	delete(s.db.tasks, id)
	return nil
}

type memTokens struct{ db *memDB }

func (s memTokens) Create(_ context.Context, token model.AuthToken) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	s.db.tokens[token.ID] = token
	return nil
}

func (s memTokens) GetByID(_ context.Context, id uuid.UUID) (model.AuthToken, error) {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tokens[id]
	if !ok {
		return model.AuthToken{}, model.ErrNotFound
	}
	return t, nil
}

func (s memTokens) Revoke(_ context.Context, id uuid.UUID) error {
	s.db.mu.Lock()
	defer s.db.mu.Unlock()
	t, ok := s.db.tokens[id]
	if !ok || t.RevokedAt != nil {
		return nil
	}
	now := time.Now()
	t.RevokedAt = &now
	s.db.tokens[id] = t
	return nil
}

type okPinger struct{}

func (okPinger) Ping(context.Context) error { return nil }
