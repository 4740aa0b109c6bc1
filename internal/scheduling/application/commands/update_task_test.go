package commands

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/eventbus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateTaskHandler_Handle(t *testing.T) {
	repo := new(mockTaskRepo)
	publisher := new(mockPublisher)
	handler := NewUpdateTaskHandler(repo, publisher, nil)
	ctx := context.Background()

	stored := newTask(t, "report", 3, 1)
	nine := time.Date(2024, 6, 5, 9, 0, 0, 0, time.UTC)
	require.NoError(t, stored.AssignTimes(nine, nine.Add(time.Hour)))
	repo.On("FindByID", ctx, testUserID, testScheduleID, "report").Return(stored, nil)

	var saved *domain.Task
	repo.On("Save", ctx, mock.AnythingOfType("*domain.Task")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(*domain.Task) }).
		Return(nil)

	var envelope *eventbus.ConsumedEvent
	publisher.On("Publish", ctx, domain.RoutingKeyTaskUpdated, mock.Anything).
		Run(func(args mock.Arguments) {
			var err error
			envelope, err = eventbus.Decode(args.Get(2).([]byte), "")
			require.NoError(t, err)
		}).
		Return(nil)

	title := "Final report"
	hours := 2.0
	err := handler.Handle(ctx, UpdateTaskCommand{
		UserID:        testUserID,
		ScheduleID:    testScheduleID,
		TaskID:        "report",
		Title:         &title,
		DurationHours: &hours,
	})

	require.NoError(t, err)
	require.NotNil(t, saved)
	assert.Equal(t, "Final report", saved.Title())
	assert.Equal(t, 120, saved.DurationMinutes())
	assert.Equal(t, 3, saved.Priority())
	assert.True(t, saved.DueDate().Equal(friday))
	assert.False(t, saved.IsScheduled())

	require.NotNil(t, envelope)
	assert.Equal(t, "report", envelope.AggregateID)
	var payload domain.TaskUpdated
	require.NoError(t, json.Unmarshal(envelope.Payload, &payload))
	assert.Equal(t, testScheduleID, payload.ScheduleID)
	assert.Equal(t, "Final report", payload.Title)
}

func TestUpdateTaskHandler_Errors(t *testing.T) {
	t.Run("unknown task", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewUpdateTaskHandler(repo, nil, nil)
		repo.On("FindByID", mock.Anything, testUserID, testScheduleID, "gone").Return(nil, domain.ErrTaskNotFound)

		err := handler.Handle(context.Background(), UpdateTaskCommand{UserID: testUserID, ScheduleID: testScheduleID, TaskID: "gone"})

		assert.ErrorIs(t, err, domain.ErrTaskNotFound)
	})

	t.Run("invalid edit", func(t *testing.T) {
		repo := new(mockTaskRepo)
		handler := NewUpdateTaskHandler(repo, nil, nil)
		repo.On("FindByID", mock.Anything, testUserID, testScheduleID, "a").Return(newTask(t, "a", 1, 1), nil)

		hours := -1.0
		err := handler.Handle(context.Background(), UpdateTaskCommand{
			UserID: testUserID, ScheduleID: testScheduleID, TaskID: "a", DurationHours: &hours,
		})

		assert.ErrorIs(t, err, domain.ErrInvalidDuration)
		repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("save failure", func(t *testing.T) {
		repo := new(mockTaskRepo)
		publisher := new(mockPublisher)
		handler := NewUpdateTaskHandler(repo, publisher, nil)
		saveErr := errors.New("readonly database")
		repo.On("FindByID", mock.Anything, testUserID, testScheduleID, "a").Return(newTask(t, "a", 1, 1), nil)
		repo.On("Save", mock.Anything, mock.Anything).Return(saveErr)

		err := handler.Handle(context.Background(), UpdateTaskCommand{UserID: testUserID, ScheduleID: testScheduleID, TaskID: "a"})

		assert.ErrorIs(t, err, saveErr)
		publisher.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestRemoveTaskHandler_Handle(t *testing.T) {
	repo := new(mockTaskRepo)
	publisher := new(mockPublisher)
	handler := NewRemoveTaskHandler(repo, publisher, nil)
	ctx := context.Background()

	repo.On("Delete", ctx, testUserID, testScheduleID, "report").Return(nil)
	repo.On("Delete", ctx, testUserID, testScheduleID, "gone").Return(domain.ErrTaskNotFound)
	publisher.On("Publish", ctx, domain.RoutingKeyTaskRemoved, mock.Anything).Return(nil).Once()

	require.NoError(t, handler.Handle(ctx, RemoveTaskCommand{UserID: testUserID, ScheduleID: testScheduleID, TaskID: "report"}))
	assert.ErrorIs(t,
		handler.Handle(ctx, RemoveTaskCommand{UserID: testUserID, ScheduleID: testScheduleID, TaskID: "gone"}),
		domain.ErrTaskNotFound,
	)
	publisher.AssertNumberOfCalls(t, "Publish", 1)
}

func TestRemoveTaskHandler_PublishFailureIsNotFatal(t *testing.T) {
	repo := new(mockTaskRepo)
	publisher := new(mockPublisher)
	handler := NewRemoveTaskHandler(repo, publisher, nil)

	repo.On("Delete", mock.Anything, testUserID, testScheduleID, "a").Return(nil)
	publisher.On("Publish", mock.Anything, mock.Anything, mock.Anything).Return(errors.New("broker down"))

	assert.NoError(t, handler.Handle(context.Background(), RemoveTaskCommand{UserID: testUserID, ScheduleID: testScheduleID, TaskID: "a"}))
}
