package subscribers

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/application/commands"
	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	"github.com/akaash02/TaskMaster/internal/shared/infrastructure/eventbus"
	"github.com/akaash02/TaskMaster/pkg/observability"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockRunner struct {
	mock.Mock
}

func (m *mockRunner) Handle(ctx context.Context, cmd commands.RunScheduleCommand) (*commands.RunScheduleResult, error) {
	args := m.Called(ctx, cmd)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*commands.RunScheduleResult), args.Error(1)
}

func fridayNoon() time.Time {
	return time.Date(2024, 6, 7, 12, 0, 0, 0, time.UTC)
}

func TestTaskChangedSubscriber_EventTypes(t *testing.T) {
	s := NewTaskChangedSubscriber(new(mockRunner), nil)
	assert.Equal(t, []string{
		domain.RoutingKeyTaskCreated,
		domain.RoutingKeyTaskUpdated,
		domain.RoutingKeyTaskRemoved,
	}, s.EventTypes())
}

func TestTaskChangedSubscriber_RunsScheduler(t *testing.T) {
	runner := new(mockRunner)
	s := NewTaskChangedSubscriber(runner, nil)

	task, err := domain.NewTask("t1", "u1", "s1", "Read", fridayNoon(), 1, 1, 1)
	require.NoError(t, err)
	created := domain.NewTaskCreated(task)
	body, err := eventbus.Encode(&created)
	require.NoError(t, err)
	event, err := eventbus.Decode(body, "")
	require.NoError(t, err)
	event.Metadata.CorrelationID = "corr-9"

	runner.On("Handle",
		mock.MatchedBy(func(ctx context.Context) bool {
			return observability.CorrelationIDFromContext(ctx) == "corr-9"
		}),
		commands.RunScheduleCommand{UserID: "u1", ScheduleID: "s1"},
	).Return(&commands.RunScheduleResult{}, nil)

	require.NoError(t, s.Handle(context.Background(), event))
	runner.AssertExpectations(t)
}

func TestTaskChangedSubscriber_RunsSchedulerOnRemoval(t *testing.T) {
	runner := new(mockRunner)
	s := NewTaskChangedSubscriber(runner, nil)

	removed := domain.NewTaskRemoved("u1", "s1", "t1")
	body, err := eventbus.Encode(&removed)
	require.NoError(t, err)
	event, err := eventbus.Decode(body, "")
	require.NoError(t, err)

	runner.On("Handle", mock.Anything, commands.RunScheduleCommand{UserID: "u1", ScheduleID: "s1"}).
		Return(&commands.RunScheduleResult{}, nil)

	require.NoError(t, s.Handle(context.Background(), event))
	runner.AssertExpectations(t)
}

func TestTaskChangedSubscriber_FallsBackToMetadata(t *testing.T) {
	runner := new(mockRunner)
	s := NewTaskChangedSubscriber(runner, nil)

	payload, err := json.Marshal(map[string]string{"task_id": "t1"})
	require.NoError(t, err)
	event := &eventbus.ConsumedEvent{
		RoutingKey: domain.RoutingKeyTaskCreated,
		Payload:    payload,
	}
	event.Metadata.UserID = "u2"
	event.Metadata.ScheduleID = "s2"

	runner.On("Handle", mock.Anything, commands.RunScheduleCommand{UserID: "u2", ScheduleID: "s2"}).
		Return(&commands.RunScheduleResult{}, nil)

	require.NoError(t, s.Handle(context.Background(), event))
	runner.AssertExpectations(t)
}

func TestTaskChangedSubscriber_Errors(t *testing.T) {
	t.Run("missing scope", func(t *testing.T) {
		runner := new(mockRunner)
		s := NewTaskChangedSubscriber(runner, nil)

		err := s.Handle(context.Background(), &eventbus.ConsumedEvent{RoutingKey: domain.RoutingKeyTaskCreated})

		assert.ErrorIs(t, err, ErrMissingScope)
		runner.AssertNotCalled(t, "Handle", mock.Anything, mock.Anything)
	})

	t.Run("bad payload", func(t *testing.T) {
		s := NewTaskChangedSubscriber(new(mockRunner), nil)

		err := s.Handle(context.Background(), &eventbus.ConsumedEvent{Payload: json.RawMessage(`"oops"`)})

		assert.ErrorContains(t, err, "decode task event payload")
	})

	t.Run("run failure", func(t *testing.T) {
		runner := new(mockRunner)
		s := NewTaskChangedSubscriber(runner, nil)
		runErr := errors.New("load tasks: db down")
		runner.On("Handle", mock.Anything, mock.Anything).Return(nil, runErr)

		err := s.Handle(context.Background(), &eventbus.ConsumedEvent{
			Payload: json.RawMessage(`{"user_id":"u1","schedule_id":"s1"}`),
		})

		assert.ErrorIs(t, err, runErr)
	})
}
