package handler

import (
	"context"
	"net/http"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"taskbox/internal/auth"
	"taskbox/internal/errors"
	"taskbox/internal/model"
)

// MockTaskService is a mock implementation of service.TaskService.
type MockTaskService struct {
	mock.Mock
}

func (m *MockTaskService) Create(ctx context.Context, userID, content string) (*model.Task, error) {
	args := m.Called(ctx, userID, content)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Task), args.Error(1)
}

func (m *MockTaskService) List(ctx context.Context, userID string) ([]model.Task, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Task), args.Error(1)
}

func TestTaskHandler_CreateTask(t *testing.T) {
	subject := uuid.New().String()

	t.Run("creates for the authenticated subject", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("Create", mock.Anything, subject, "buy groceries").
			Return(&model.Task{Content: "buy groceries"}, nil)
		h := NewTaskHandler(mockSvc)

		c, rec := newTestContext(http.MethodPost, "/task", `{"content":"buy groceries"}`)
		c.Set(auth.UserIDContextKey, subject)
		assert.NoError(t, h.CreateTask(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "added successfully")
		mockSvc.AssertExpectations(t)
	})

	t.Run("conflicting body user id is rejected", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		h := NewTaskHandler(mockSvc)

		c, rec := newTestContext(http.MethodPost, "/task", `{"content":"buy groceries","userId":"`+uuid.New().String()+`"}`)
		c.Set(auth.UserIDContextKey, subject)
		assert.NoError(t, h.CreateTask(c))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		mockSvc.AssertNotCalled(t, "Create", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("unknown user", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("Create", mock.Anything, subject, "buy groceries").
			Return(nil, errors.ErrUserNotFound)
		h := NewTaskHandler(mockSvc)

		c, rec := newTestContext(http.MethodPost, "/task", `{"content":"buy groceries"}`)
		c.Set(auth.UserIDContextKey, subject)
		assert.NoError(t, h.CreateTask(c))

		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Contains(t, rec.Body.String(), "user not found")
	})
}

func TestTaskHandler_ListTasks(t *testing.T) {
	subject := uuid.New().String()

	t.Run("empty list", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("List", mock.Anything, subject).Return([]model.Task{}, nil)
		h := NewTaskHandler(mockSvc)

		c, rec := newTestContext(http.MethodGet, "/tasks", "")
		c.Set(auth.UserIDContextKey, subject)
		assert.NoError(t, h.ListTasks(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]\n", rec.Body.String())
	})

	t.Run("single task", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("List", mock.Anything, subject).Return([]model.Task{
			{ID: uuid.New(), Content: "buy groceries"},
		}, nil)
		h := NewTaskHandler(mockSvc)

		c, rec := newTestContext(http.MethodGet, "/tasks", "")
		c.Set(auth.UserIDContextKey, subject)
		assert.NoError(t, h.ListTasks(c))

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, rec.Body.String(), "buy groceries")
	})

	t.Run("matching query user id is allowed", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		mockSvc.On("List", mock.Anything, subject).Return([]model.Task{}, nil)
		h := NewTaskHandler(mockSvc)

		c, rec := newTestContext(http.MethodGet, "/tasks?userId="+subject, "")
		c.Set(auth.UserIDContextKey, subject)
		assert.NoError(t, h.ListTasks(c))

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("conflicting query user id is rejected", func(t *testing.T) {
		mockSvc := new(MockTaskService)
		h := NewTaskHandler(mockSvc)

		c, rec := newTestContext(http.MethodGet, "/tasks?userId="+uuid.New().String(), "")
		c.Set(auth.UserIDContextKey, subject)
		assert.NoError(t, h.ListTasks(c))

		assert.Equal(t, http.StatusForbidden, rec.Code)
		mockSvc.AssertNotCalled(t, "List", mock.Anything, mock.Anything)
	})
}
