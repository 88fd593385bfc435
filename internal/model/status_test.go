package model_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iliyamo/hotel-table-reservation/internal/model"
)

func TestSeatStatus_Codes(t *testing.T) {
	// The numeric codes are part of the storage format and must not
	// drift.
	assert.Equal(t, model.SeatStatus(1), model.SeatBooked)
	assert.Equal(t, model.SeatStatus(2), model.SeatCancel)
	assert.Equal(t, model.SeatStatus(3), model.SeatCleaning)
	assert.Equal(t, model.SeatStatus(4), model.SeatAvailable)
}

func TestSeatStatus_ParseRoundTrip(t *testing.T) {
	for _, s := range []model.SeatStatus{model.SeatBooked, model.SeatCancel, model.SeatCleaning, model.SeatAvailable} {
		parsed, ok := model.ParseSeatStatus(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
	}
	_, ok := model.ParseSeatStatus("FREE")
	assert.False(t, ok)
	assert.False(t, model.SeatStatus(0).Valid())
	assert.False(t, model.SeatStatus(5).Valid())
}

func TestDiningStatus_Transitions(t *testing.T) {
	cases := []struct {
		from, to model.DiningStatus
		allowed  bool
	}{
		{model.DiningPending, model.DiningConfirmed, true},
		{model.DiningConfirmed, model.DiningSeated, true},
		{model.DiningSeated, model.DiningCompleted, true},
		{model.DiningPending, model.DiningSeated, false},
		{model.DiningConfirmed, model.DiningPending, false},
		{model.DiningPending, model.DiningCancelled, true},
		{model.DiningConfirmed, model.DiningCancelled, true},
		{model.DiningSeated, model.DiningCancelled, true},
		{model.DiningCompleted, model.DiningCancelled, false},
		{model.DiningCancelled, model.DiningConfirmed, false},
		{model.DiningCancelled, model.DiningCancelled, false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.allowed, tc.from.CanTransition(tc.to),
			"%s -> %s", tc.from, tc.to)
	}
}

func TestDiningStatus_Terminal(t *testing.T) {
	assert.False(t, model.DiningPending.Terminal())
	assert.False(t, model.DiningSeated.Terminal())
	assert.True(t, model.DiningCompleted.Terminal())
	assert.True(t, model.DiningCancelled.Terminal())
}

func TestDiningStatus_ParseRoundTrip(t *testing.T) {
	for _, s := range []model.DiningStatus{model.DiningPending, model.DiningConfirmed, model.DiningSeated, model.DiningCompleted, model.DiningCancelled} {
		parsed, ok := model.ParseDiningStatus(s.String())
		assert.True(t, ok)
		assert.Equal(t, s, parsed)
	}
	_, ok := model.ParseDiningStatus("DONE")
	assert.False(t, ok)
}
