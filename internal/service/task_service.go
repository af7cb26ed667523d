package service

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskbox/internal/cache"
	"taskbox/internal/errors"
	"taskbox/internal/model"
	"taskbox/internal/repository"
)

const taskCacheTTL = 5 * time.Minute

// TaskService handles task operations.
type TaskService interface {
	Create(ctx context.Context, userID, content string) (*model.Task, error)
	List(ctx context.Context, userID string) ([]model.Task, error)
}

type taskService struct {
	userRepo repository.UserRepository
	taskRepo repository.TaskRepository
	cache    *cache.Client
}

// NewTaskService creates a new task service.
func NewTaskService(userRepo repository.UserRepository, taskRepo repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{
		userRepo: userRepo,
		taskRepo: taskRepo,
		cache:    cache,
	}
}

func (s *taskService) cacheKey(userID uuid.UUID) string {
	return fmt.Sprintf("tasks:%s", userID)
}

// Create stores a task owned by the given user and evicts the user's cached
// task list.
func (s *taskService) Create(ctx context.Context, userID, content string) (*model.Task, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, errors.ErrUserNotFound
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	task := &model.Task{
		Content: content,
		UserID:  id,
	}
	if err := s.taskRepo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	_ = s.cache.Delete(ctx, s.cacheKey(id))
	return task, nil
}

// List returns all tasks owned by the given user, serving repeated reads from
// cache until the next task creation or TTL expiry.
func (s *taskService) List(ctx context.Context, userID string) ([]model.Task, error) {
	id, err := uuid.Parse(userID)
	if err != nil {
		return nil, errors.ErrUserNotFound
	}

	if data, _ := s.cache.Get(ctx, s.cacheKey(id)); data != nil {
		var cached []model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	if _, err := s.userRepo.FindByID(ctx, id); err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	tasks, err := s.taskRepo.ListByUser(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}

	if payload, err := json.Marshal(tasks); err == nil {
		_ = s.cache.Set(ctx, s.cacheKey(id), payload, taskCacheTTL)
	}

	return tasks, nil
}
