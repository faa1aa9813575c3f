package repository

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"taskmarket/internal/model"
)

// TaskRepository defines task persistence operations.
type TaskRepository interface {
	Create(ctx context.Context, task *model.Task) error
	Save(ctx context.Context, task *model.Task) error
	FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error)
	FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error)
	SearchByTitle(ctx context.Context, query string) ([]model.Task, error)
	IncrementBids(ctx context.Context, id uuid.UUID) (int64, error)
}

type taskRepository struct {
	db *gorm.DB
}

// NewTaskRepository creates a new task repository.
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return &taskRepository{db: db}
}

// Create creates a new task.
func (r *taskRepository) Create(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Create(task).Error
}

// Save persists changes to an existing task.
func (r *taskRepository) Save(ctx context.Context, task *model.Task) error {
	return r.db.WithContext(ctx).Save(task).Error
}

// FindByID finds a task by ID.
func (r *taskRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// FindByIDAndOwner finds a task by ID scoped to its owner. A task owned
// by someone else is indistinguishable from a missing one.
func (r *taskRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	var task model.Task
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, ownerID).First(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// ListByOwner lists all tasks owned by the given user in insertion order.
func (r *taskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	var tasks []model.Task
	if err := r.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("created_at ASC").Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// SearchByTitle performs a case-insensitive substring match on the title
// across all owners.
func (r *taskRepository) SearchByTitle(ctx context.Context, query string) ([]model.Task, error) {
	var tasks []model.Task
	pattern := "%" + strings.ToLower(query) + "%"
	if err := r.db.WithContext(ctx).Where("LOWER(title) LIKE ?", pattern).Find(&tasks).Error; err != nil {
		return nil, err
	}
	return tasks, nil
}

// IncrementBids atomically increments the bid counter at the store and
// returns the number of rows touched. The increment must happen in SQL,
// not read-modify-write, so concurrent bids are never lost.
func (r *taskRepository) IncrementBids(ctx context.Context, id uuid.UUID) (int64, error) {
	res := r.db.WithContext(ctx).Model(&model.Task{}).
		Where("id = ?", id).
		UpdateColumn("bids", gorm.Expr("bids + ?", 1))
	return res.RowsAffected, res.Error
}
