package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/gorm"

	"taskmarket/internal/errors"
	"taskmarket/internal/model"
)

// MockTaskRepository is a mock implementation of TaskRepository.
type MockTaskRepository struct {
	mock.Mock
}

func (m *MockTaskRepository) Create(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) Save(ctx context.Context, task *model.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *MockTaskRepository) FindByID(ctx context.Context, id uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) FindByIDAndOwner(ctx context.Context, id, ownerID uuid.UUID) (*model.Task, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Task, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) SearchByTitle(ctx context.Context, query string) ([]model.Task, error) {
	args := m.Called(ctx, query)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func (m *MockTaskRepository) IncrementBids(ctx context.Context, id uuid.UUID) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func validInput(ownerID uuid.UUID) CreateTaskInput {
	return CreateTaskInput{
		Title:       "Assemble wardrobe",
		Description: "Two-door wardrobe, tools provided.",
		Location:    "Berlin",
		Budget:      decimal.NewFromInt(45),
		Date:        "2026-09-12",
		OwnerID:     ownerID,
	}
}

func TestTaskService_Create(t *testing.T) {
	ownerID := uuid.New()

	t.Run("successful creation", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("Create", mock.Anything, mock.AnythingOfType("*model.Task")).Return(nil)

		service := NewTaskService(mockRepo, noCache)
		task, err := service.Create(context.Background(), validInput(ownerID))

		assert.NoError(t, err)
		assert.NotNil(t, task)
		assert.Equal(t, model.TaskStatusPending, task.Status)
		assert.Equal(t, uint(0), task.Bids)
		assert.Equal(t, ownerID, task.UserID)
		mockRepo.AssertExpectations(t)
	})

	t.Run("missing fields", func(t *testing.T) {
		for _, mutate := range []func(*CreateTaskInput){
			func(in *CreateTaskInput) { in.Title = "" },
			func(in *CreateTaskInput) { in.Description = "  " },
			func(in *CreateTaskInput) { in.Location = "" },
			func(in *CreateTaskInput) { in.Date = "" },
		} {
			mockRepo := new(MockTaskRepository)
			service := NewTaskService(mockRepo, noCache)

			in := validInput(ownerID)
			mutate(&in)

			task, err := service.Create(context.Background(), in)

			assert.Nil(t, task)
			assert.ErrorIs(t, err, errors.ErrMissingFields)
			mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
		}
	})

	t.Run("non-positive budget", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		service := NewTaskService(mockRepo, noCache)

		in := validInput(ownerID)
		in.Budget = decimal.Zero

		task, err := service.Create(context.Background(), in)

		assert.Nil(t, task)
		assert.ErrorIs(t, err, errors.ErrInvalidBudget)
		mockRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})
}

func TestTaskService_Complete(t *testing.T) {
	taskID := uuid.New()
	ownerID := uuid.New()
	strangerID := uuid.New()

	t.Run("owner completes pending task", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, taskID, ownerID).Return(&model.Task{
			ID:     taskID,
			UserID: ownerID,
			Status: model.TaskStatusPending,
		}, nil)
		mockRepo.On("Save", mock.Anything, mock.MatchedBy(func(task *model.Task) bool {
			return task.Status == model.TaskStatusCompleted
		})).Return(nil)

		service := NewTaskService(mockRepo, noCache)
		task, err := service.Complete(context.Background(), taskID, ownerID)

		assert.NoError(t, err)
		assert.Equal(t, model.TaskStatusCompleted, task.Status)
		mockRepo.AssertExpectations(t)
	})

	t.Run("non-owner gets not found", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, taskID, strangerID).Return(nil, gorm.ErrRecordNotFound)

		service := NewTaskService(mockRepo, noCache)
		task, err := service.Complete(context.Background(), taskID, strangerID)

		assert.Nil(t, task)
		assert.ErrorIs(t, err, errors.ErrTaskNotFound)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("repeat completion is a no-op", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("FindByIDAndOwner", mock.Anything, taskID, ownerID).Return(&model.Task{
			ID:     taskID,
			UserID: ownerID,
			Status: model.TaskStatusCompleted,
		}, nil)

		service := NewTaskService(mockRepo, noCache)
		task, err := service.Complete(context.Background(), taskID, ownerID)

		assert.NoError(t, err)
		assert.Equal(t, model.TaskStatusCompleted, task.Status)
		mockRepo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})
}

func TestTaskService_AddBid(t *testing.T) {
	taskID := uuid.New()

	t.Run("successful bid", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("IncrementBids", mock.Anything, taskID).Return(int64(1), nil)
		mockRepo.On("FindByID", mock.Anything, taskID).Return(&model.Task{
			ID:     taskID,
			UserID: uuid.New(),
			Bids:   3,
		}, nil)

		service := NewTaskService(mockRepo, noCache)
		task, err := service.AddBid(context.Background(), taskID)

		assert.NoError(t, err)
		assert.Equal(t, uint(3), task.Bids)
		mockRepo.AssertExpectations(t)
	})

	t.Run("unknown task", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("IncrementBids", mock.Anything, taskID).Return(int64(0), nil)

		service := NewTaskService(mockRepo, noCache)
		task, err := service.AddBid(context.Background(), taskID)

		assert.Nil(t, task)
		assert.ErrorIs(t, err, errors.ErrTaskNotFound)
		mockRepo.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})
}

func TestTaskService_Search(t *testing.T) {
	t.Run("empty query rejected", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		service := NewTaskService(mockRepo, noCache)

		tasks, err := service.Search(context.Background(), "   ")

		assert.Nil(t, tasks)
		assert.ErrorIs(t, err, errors.ErrMissingQuery)
		mockRepo.AssertNotCalled(t, "SearchByTitle", mock.Anything, mock.Anything)
	})

	t.Run("query passed to store", func(t *testing.T) {
		mockRepo := new(MockTaskRepository)
		mockRepo.On("SearchByTitle", mock.Anything, "gig").Return([]model.Task{
			{Title: "Weekend Gig"},
			{Title: "GIGS wanted"},
		}, nil)

		service := NewTaskService(mockRepo, noCache)
		tasks, err := service.Search(context.Background(), "gig")

		assert.NoError(t, err)
		assert.Len(t, tasks, 2)
		mockRepo.AssertExpectations(t)
	})
}

func TestTaskService_ListByOwner(t *testing.T) {
	ownerID := uuid.New()
	otherID := uuid.New()

	mockRepo := new(MockTaskRepository)
	mockRepo.On("ListByOwner", mock.Anything, ownerID).Return([]model.Task{
		{Title: "Mine", UserID: ownerID},
	}, nil)
	mockRepo.On("ListByOwner", mock.Anything, otherID).Return([]model.Task{}, nil)

	service := NewTaskService(mockRepo, noCache)

	mine, err := service.ListByOwner(context.Background(), ownerID)
	assert.NoError(t, err)
	assert.Len(t, mine, 1)

	others, err := service.ListByOwner(context.Background(), otherID)
	assert.NoError(t, err)
	assert.Empty(t, others)

	mockRepo.AssertExpectations(t)
}
