package commands

import (
	"context"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	"github.com/stretchr/testify/mock"
)

type mockTaskRepo struct {
	mock.Mock
}

func (m *mockTaskRepo) Save(ctx context.Context, task *domain.Task) error {
	args := m.Called(ctx, task)
	return args.Error(0)
}

func (m *mockTaskRepo) FindByID(ctx context.Context, userID, scheduleID, taskID string) (*domain.Task, error) {
	args := m.Called(ctx, userID, scheduleID, taskID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Task), args.Error(1)
}

func (m *mockTaskRepo) ListBySchedule(ctx context.Context, userID, scheduleID string) ([]*domain.Task, error) {
	args := m.Called(ctx, userID, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Task), args.Error(1)
}

func (m *mockTaskRepo) UpdateTimes(ctx context.Context, userID, scheduleID, taskID string, start, end time.Time) error {
	args := m.Called(ctx, userID, scheduleID, taskID, start, end)
	return args.Error(0)
}

func (m *mockTaskRepo) ClearTimes(ctx context.Context, userID, scheduleID, taskID string) error {
	args := m.Called(ctx, userID, scheduleID, taskID)
	return args.Error(0)
}

func (m *mockTaskRepo) Delete(ctx context.Context, userID, scheduleID, taskID string) error {
	args := m.Called(ctx, userID, scheduleID, taskID)
	return args.Error(0)
}

type mockSlotRepo struct {
	mock.Mock
}

func (m *mockSlotRepo) Save(ctx context.Context, slot *domain.FreeTimeSlot) error {
	args := m.Called(ctx, slot)
	return args.Error(0)
}

func (m *mockSlotRepo) ListByUser(ctx context.Context, userID string) ([]*domain.FreeTimeSlot, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.FreeTimeSlot), args.Error(1)
}

func (m *mockSlotRepo) Delete(ctx context.Context, userID, slotID string) error {
	args := m.Called(ctx, userID, slotID)
	return args.Error(0)
}

type mockEventRepo struct {
	mock.Mock
}

func (m *mockEventRepo) Save(ctx context.Context, event *domain.Event) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

func (m *mockEventRepo) ListBySchedule(ctx context.Context, userID, scheduleID string) ([]*domain.Event, error) {
	args := m.Called(ctx, userID, scheduleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

func (m *mockEventRepo) Delete(ctx context.Context, userID, scheduleID, eventID string) error {
	args := m.Called(ctx, userID, scheduleID, eventID)
	return args.Error(0)
}

type mockPublisher struct {
	mock.Mock
}

func (m *mockPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	args := m.Called(ctx, routingKey, payload)
	return args.Error(0)
}

func (m *mockPublisher) Close() error {
	return nil
}

type mockUnitOfWork struct {
	mock.Mock
}

func (m *mockUnitOfWork) Begin(ctx context.Context) (context.Context, error) {
	args := m.Called(ctx)
	return args.Get(0).(context.Context), args.Error(1)
}

func (m *mockUnitOfWork) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *mockUnitOfWork) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockRecorder struct {
	mock.Mock
}

func (m *mockRecorder) ObserveRun(outcome string, assigned int, reasons []string, duration time.Duration) {
	m.Called(outcome, assigned, reasons, duration)
}

type mockEventSource struct {
	mock.Mock
}

func (m *mockEventSource) FetchEvents(ctx context.Context, userID, scheduleID string, from, to time.Time) ([]*domain.Event, error) {
	args := m.Called(ctx, userID, scheduleID, from, to)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Event), args.Error(1)
}

// passthroughUnitOfWork expects one successful transaction.
func passthroughUnitOfWork() *mockUnitOfWork {
	uow := new(mockUnitOfWork)
	uow.On("Begin", mock.Anything).Return(context.Background(), nil)
	uow.On("Commit", mock.Anything).Return(nil)
	return uow
}
