package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"taskmarket/internal/cache"
	"taskmarket/internal/errors"
	"taskmarket/internal/model"
	"taskmarket/internal/repository"
)

const taskListCacheTTL = 5 * time.Minute

// CreateTaskInput carries the validated fields for a new task.
type CreateTaskInput struct {
	Title       string
	Description string
	Location    string
	Budget      decimal.Decimal
	Date        string
	Image       string
	OwnerID     uuid.UUID
}

// TaskService handles task lifecycle operations.
type TaskService interface {
	Create(ctx context.Context, in CreateTaskInput) (*model.Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	Search(ctx context.Context, query string) ([]model.Task, error)
	Complete(ctx context.Context, taskID, requesterID uuid.UUID) (*model.Task, error)
	AddBid(ctx context.Context, taskID uuid.UUID) (*model.Task, error)
}

type taskService struct {
	repo  repository.TaskRepository
	cache *cache.Client
}

// NewTaskService creates a new task service.
func NewTaskService(repo repository.TaskRepository, cache *cache.Client) TaskService {
	return &taskService{
		repo:  repo,
		cache: cache,
	}
}

func (s *taskService) ownerCacheKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("tasks:owner:%s", ownerID.String())
}

// Create validates the input and persists a new Pending task owned by the caller.
// The owner is set here, once, and never reassigned.
func (s *taskService) Create(ctx context.Context, in CreateTaskInput) (*model.Task, error) {
	if strings.TrimSpace(in.Title) == "" ||
		strings.TrimSpace(in.Description) == "" ||
		strings.TrimSpace(in.Location) == "" ||
		strings.TrimSpace(in.Date) == "" {
		return nil, errors.ErrMissingFields
	}
	if !in.Budget.IsPositive() {
		return nil, errors.ErrInvalidBudget
	}

	task := &model.Task{
		ID:          uuid.New(),
		Title:       in.Title,
		Description: in.Description,
		Location:    in.Location,
		Budget:      in.Budget,
		Date:        in.Date,
		Status:      model.TaskStatusPending,
		Bids:        0,
		Image:       in.Image,
		UserID:      in.OwnerID,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		return nil, fmt.Errorf("create task: %w", err)
	}

	_ = s.cache.Delete(ctx, s.ownerCacheKey(in.OwnerID))
	return task, nil
}

// ListByOwner returns all tasks owned by the given user, cached briefly.
func (s *taskService) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	if data, _ := s.cache.Get(ctx, s.ownerCacheKey(ownerID)); data != nil {
		var cached []model.Task
		if err := json.Unmarshal(data, &cached); err == nil {
			return cached, nil
		}
	}

	tasks, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, err
	}

	if payload, err := json.Marshal(tasks); err == nil {
		_ = s.cache.Set(ctx, s.ownerCacheKey(ownerID), payload, taskListCacheTTL)
	}
	return tasks, nil
}

// Search returns tasks whose title contains the query, case-insensitively,
// across all owners.
func (s *taskService) Search(ctx context.Context, query string) ([]model.Task, error) {
	if strings.TrimSpace(query) == "" {
		return nil, errors.ErrMissingQuery
	}
	return s.repo.SearchByTitle(ctx, query)
}

// Complete transitions a task to Completed. Only the owner may complete a
// task; for anyone else the task does not exist. Completing an already
// completed task is a no-op that succeeds.
func (s *taskService) Complete(ctx context.Context, taskID, requesterID uuid.UUID) (*model.Task, error) {
	task, err := s.repo.FindByIDAndOwner(ctx, taskID, requesterID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	if task.Status == model.TaskStatusCompleted {
		return task, nil
	}

	task.Status = model.TaskStatusCompleted
	if err := s.repo.Save(ctx, task); err != nil {
		return nil, fmt.Errorf("complete task: %w", err)
	}

	_ = s.cache.Delete(ctx, s.ownerCacheKey(task.UserID))
	return task, nil
}

// AddBid increments the task's bid counter by one and returns the task.
func (s *taskService) AddBid(ctx context.Context, taskID uuid.UUID) (*model.Task, error) {
	rows, err := s.repo.IncrementBids(ctx, taskID)
	if err != nil {
		return nil, fmt.Errorf("increment bids: %w", err)
	}
	if rows == 0 {
		return nil, errors.ErrTaskNotFound
	}

	task, err := s.repo.FindByID(ctx, taskID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, errors.ErrTaskNotFound
		}
		return nil, fmt.Errorf("find task: %w", err)
	}

	_ = s.cache.Delete(ctx, s.ownerCacheKey(task.UserID))
	return task, nil
}
