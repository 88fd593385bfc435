package handler

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-table-reservation/internal/service"
)

func newTestContext(t *testing.T) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestGetUserID(t *testing.T) {
	c, _ := newTestContext(t)

	// JWT numeric claims decode as float64.
	c.Set("user_id", float64(42))
	id, ok := getUserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint64(42), id)

	c.Set("user_id", "17")
	id, ok = getUserID(c)
	assert.True(t, ok)
	assert.Equal(t, uint64(17), id)

	c.Set("user_id", "not-a-number")
	_, ok = getUserID(c)
	assert.False(t, ok)

	c.Set("user_id", nil)
	_, ok = getUserID(c)
	assert.False(t, ok)

	c.Set("user_id", float64(0))
	_, ok = getUserID(c)
	assert.False(t, ok)
}

func TestParseIDParam(t *testing.T) {
	c, _ := newTestContext(t)
	c.SetParamNames("id")
	c.SetParamValues("123")
	id, ok := parseIDParam(c, "id")
	assert.True(t, ok)
	assert.Equal(t, uint64(123), id)

	for _, bad := range []string{"0", "-1", "abc", ""} {
		c.SetParamValues(bad)
		_, ok := parseIDParam(c, "id")
		assert.False(t, ok, "value %q", bad)
	}
}

func TestWriteReservationError(t *testing.T) {
	cases := []struct {
		err    error
		status int
		body   string
	}{
		{&service.SeatConflictError{Unavailable: []uint64{5, 6}}, http.StatusConflict, "unavailable_seats"},
		{service.ErrSeatConflict, http.StatusConflict, "seat conflict"},
		{service.ErrOwnershipMismatch, http.StatusConflict, "not owned"},
		{service.ErrNotFound, http.StatusNotFound, "not found"},
		{service.ErrUnauthorized, http.StatusUnauthorized, "unauthorized"},
		{service.ErrInvalidPayload, http.StatusBadRequest, "invalid payload"},
		{service.ErrInvalidRequest, http.StatusBadRequest, "cancel"},
		{errors.New("connection reset"), http.StatusInternalServerError, "storage error"},
	}
	for _, tc := range cases {
		c, rec := newTestContext(t)
		require.NoError(t, writeReservationError(c, tc.err))
		assert.Equal(t, tc.status, rec.Code, "error %v", tc.err)
		assert.True(t, strings.Contains(rec.Body.String(), tc.body),
			"error %v: body %s should mention %q", tc.err, rec.Body.String(), tc.body)
	}
}

func TestWriteReservationError_ConflictListsSeats(t *testing.T) {
	c, rec := newTestContext(t)
	err := writeReservationError(c, &service.SeatConflictError{Unavailable: []uint64{9}})
	require.NoError(t, err)
	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.JSONEq(t, `{"error":"seat conflict","unavailable_seats":[9]}`, rec.Body.String())
}
