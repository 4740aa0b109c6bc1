package commands

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/akaash02/TaskMaster/internal/scheduling/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestAddEventHandler_Handle(t *testing.T) {
	repo := new(mockEventRepo)
	handler := NewAddEventHandler(repo)
	start := time.Date(2024, 6, 5, 9, 30, 0, 0, time.UTC)

	repo.On("Save", mock.Anything, mock.MatchedBy(func(e *domain.Event) bool {
		return e.Title() == "Dentist" &&
			e.Location() == "Main St" &&
			e.ScheduleID() == testScheduleID &&
			e.StartTime().Equal(start)
	})).Return(nil)

	result, err := handler.Handle(context.Background(), AddEventCommand{
		UserID:     testUserID,
		ScheduleID: testScheduleID,
		Title:      "Dentist",
		Location:   "Main St",
		StartTime:  start,
		EndTime:    start.Add(45 * time.Minute),
	})

	require.NoError(t, err)
	assert.NotEmpty(t, result.EventID)
	repo.AssertExpectations(t)
}

func TestAddEventHandler_InvalidRange(t *testing.T) {
	repo := new(mockEventRepo)
	handler := NewAddEventHandler(repo)

	_, err := handler.Handle(context.Background(), AddEventCommand{
		UserID:     testUserID,
		ScheduleID: testScheduleID,
		StartTime:  friday,
		EndTime:    friday.Add(-time.Minute),
	})

	assert.ErrorIs(t, err, domain.ErrInvalidEventRange)
	repo.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestAddEventHandler_SaveError(t *testing.T) {
	repo := new(mockEventRepo)
	handler := NewAddEventHandler(repo)
	saveErr := errors.New("readonly database")

	repo.On("Save", mock.Anything, mock.Anything).Return(saveErr)

	_, err := handler.Handle(context.Background(), AddEventCommand{
		UserID:    testUserID,
		StartTime: friday,
		EndTime:   friday.Add(time.Hour),
	})

	assert.ErrorIs(t, err, saveErr)
}

func TestRemoveEventHandler_Handle(t *testing.T) {
	repo := new(mockEventRepo)
	handler := NewRemoveEventHandler(repo)

	repo.On("Delete", mock.Anything, testUserID, testScheduleID, "ev-1").Return(domain.ErrEventNotFound)

	err := handler.Handle(context.Background(), RemoveEventCommand{
		UserID:     testUserID,
		ScheduleID: testScheduleID,
		EventID:    "ev-1",
	})

	assert.ErrorIs(t, err, domain.ErrEventNotFound)
}
