package service_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iliyamo/hotel-table-reservation/internal/model"
	"github.com/iliyamo/hotel-table-reservation/internal/service"
)

// memStore is an in-memory service.Store. Each transaction holds the
// store mutex for its whole lifetime and restores a snapshot on error,
// which mirrors the row-locked, all-or-nothing behavior of the SQL
// implementation closely enough to exercise the coordinator.
type memStore struct {
	mu           sync.Mutex
	seats        map[uint64]model.Seat
	reservations map[uint64]model.Reservation
	audit        []model.CancellationRecord
	nextResID    uint64
	nextAuditID  uint64
}

func newMemStore(seatIDs ...uint64) *memStore {
	s := &memStore{
		seats:        make(map[uint64]model.Seat),
		reservations: make(map[uint64]model.Reservation),
	}
	for _, id := range seatIDs {
		s.seats[id] = model.Seat{ID: id, Status: model.SeatAvailable}
	}
	return s
}

func (s *memStore) snapshot() (map[uint64]model.Seat, map[uint64]model.Reservation, []model.CancellationRecord) {
	seats := make(map[uint64]model.Seat, len(s.seats))
	for k, v := range s.seats {
		seats[k] = v
	}
	reservations := make(map[uint64]model.Reservation, len(s.reservations))
	for k, v := range s.reservations {
		reservations[k] = v
	}
	audit := append([]model.CancellationRecord(nil), s.audit...)
	return seats, reservations, audit
}

func (s *memStore) WithinTx(ctx context.Context, fn func(tx service.Tx) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	seats, reservations, audit := s.snapshot()
	if err := fn(&memTx{s: s}); err != nil {
		s.seats, s.reservations, s.audit = seats, reservations, audit
		return err
	}
	return nil
}

func (s *memStore) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return getReservation(s, id)
}

func (s *memStore) SetDiningStatus(ctx context.Context, id uint64, status model.DiningStatus) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	res, ok := s.reservations[id]
	if !ok {
		return service.ErrNotFound
	}
	res.DiningStatus = status
	s.reservations[id] = res
	return nil
}

func getReservation(s *memStore, id uint64) (*model.Reservation, error) {
	res, ok := s.reservations[id]
	if !ok {
		return nil, service.ErrNotFound
	}
	copied := res
	return &copied, nil
}

type memTx struct {
	s *memStore
}

func (t *memTx) FindAvailableSeats(ctx context.Context, seatIDs []uint64) ([]model.Seat, error) {
	var out []model.Seat
	for _, id := range seatIDs {
		if seat, ok := t.s.seats[id]; ok && seat.Status == model.SeatAvailable {
			out = append(out, seat)
		}
	}
	return out, nil
}

func (t *memTx) LockOwnedSeats(ctx context.Context, seatIDs []uint64, reservationID uint64) ([]model.Seat, error) {
	var out []model.Seat
	for _, id := range seatIDs {
		seat, ok := t.s.seats[id]
		if ok && seat.Status == model.SeatBooked && seat.ReservationID != nil && *seat.ReservationID == reservationID {
			out = append(out, seat)
		}
	}
	return out, nil
}

func (t *memTx) MarkSeatsBooked(ctx context.Context, seatIDs []uint64, reservationID uint64) error {
	for _, id := range seatIDs {
		seat := t.s.seats[id]
		rid := reservationID
		seat.Status = model.SeatBooked
		seat.ReservationID = &rid
		t.s.seats[id] = seat
	}
	return nil
}

func (t *memTx) MarkSeatsAvailable(ctx context.Context, seatIDs []uint64, reservationID uint64) error {
	for _, id := range seatIDs {
		seat := t.s.seats[id]
		if seat.ReservationID == nil || *seat.ReservationID != reservationID {
			continue
		}
		seat.Status = model.SeatAvailable
		seat.ReservationID = nil
		t.s.seats[id] = seat
	}
	return nil
}

func (t *memTx) ReleaseSeatsByReservation(ctx context.Context, reservationID uint64) ([]uint64, error) {
	var released []uint64
	for id, seat := range t.s.seats {
		if seat.ReservationID != nil && *seat.ReservationID == reservationID {
			seat.Status = model.SeatAvailable
			seat.ReservationID = nil
			t.s.seats[id] = seat
			released = append(released, id)
		}
	}
	return released, nil
}

func (t *memTx) CreateReservation(ctx context.Context, res *model.Reservation) error {
	t.s.nextResID++
	res.ID = t.s.nextResID
	t.s.reservations[res.ID] = *res
	return nil
}

func (t *memTx) GetReservation(ctx context.Context, id uint64) (*model.Reservation, error) {
	return getReservation(t.s, id)
}

func (t *memTx) UpdateManifest(ctx context.Context, id uint64, m model.SeatManifest) error {
	res, ok := t.s.reservations[id]
	if !ok {
		return service.ErrNotFound
	}
	res.Manifest = m
	t.s.reservations[id] = res
	return nil
}

func (t *memTx) SetDiningStatus(ctx context.Context, id uint64, status model.DiningStatus) error {
	res, ok := t.s.reservations[id]
	if !ok {
		return service.ErrNotFound
	}
	res.DiningStatus = status
	t.s.reservations[id] = res
	return nil
}

func (t *memTx) AppendCancellation(ctx context.Context, rec *model.CancellationRecord) error {
	t.s.nextAuditID++
	rec.ID = t.s.nextAuditID
	t.s.audit = append(t.s.audit, *rec)
	return nil
}

func validInput(manifest model.SeatManifest) service.CreateReservationInput {
	return service.CreateReservationInput{
		UserID:         7,
		HotelID:        1,
		FloorID:        2,
		Manifest:       manifest,
		CustomerName:   "Dana",
		CustomerMobile: "09120000000",
		DiningDate:     "2026-09-01",
		StartTime:      "19:30",
	}
}

func TestCreateReservation_Success(t *testing.T) {
	store := newMemStore(1, 2, 3, 4)
	coord := service.NewCoordinator(store)

	res, err := coord.CreateReservation(context.Background(), validInput(model.SeatManifest{
		{TableID: 10, SeatIDs: []uint64{1, 2}},
		{TableID: 11, SeatIDs: []uint64{3}},
	}))
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.NotZero(t, res.ID)
	assert.Equal(t, model.DiningConfirmed, res.DiningStatus)
	assert.ElementsMatch(t, []uint64{1, 2, 3}, res.Manifest.Flatten())

	for _, id := range []uint64{1, 2, 3} {
		seat := store.seats[id]
		assert.Equal(t, model.SeatBooked, seat.Status)
		require.NotNil(t, seat.ReservationID)
		assert.Equal(t, res.ID, *seat.ReservationID)
	}
	assert.Equal(t, model.SeatAvailable, store.seats[4].Status)
}

func TestCreateReservation_SeatConflict(t *testing.T) {
	store := newMemStore(1, 2, 3)
	coord := service.NewCoordinator(store)

	first, err := coord.CreateReservation(context.Background(), validInput(model.SeatManifest{
		{TableID: 10, SeatIDs: []uint64{2}},
	}))
	require.NoError(t, err)

	_, err = coord.CreateReservation(context.Background(), validInput(model.SeatManifest{
		{TableID: 10, SeatIDs: []uint64{1, 2, 3}},
	}))
	require.Error(t, err)
	assert.ErrorIs(t, err, service.ErrSeatConflict)

	var conflict *service.SeatConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, []uint64{2}, conflict.Unavailable)

	// The losing claim must not leave any seat behind: 1 and 3 stay
	// AVAILABLE and no second reservation exists.
	assert.Equal(t, model.SeatAvailable, store.seats[1].Status)
	assert.Equal(t, model.SeatAvailable, store.seats[3].Status)
	assert.Len(t, store.reservations, 1)
	require.NotNil(t, store.seats[2].ReservationID)
	assert.Equal(t, first.ID, *store.seats[2].ReservationID)
}

func TestCreateReservation_Validation(t *testing.T) {
	store := newMemStore(1)
	coord := service.NewCoordinator(store)
	ctx := context.Background()

	in := validInput(model.SeatManifest{{TableID: 10, SeatIDs: []uint64{1}}})
	in.UserID = 0
	_, err := coord.CreateReservation(ctx, in)
	assert.ErrorIs(t, err, service.ErrUnauthorized)

	in = validInput(nil)
	_, err = coord.CreateReservation(ctx, in)
	assert.ErrorIs(t, err, service.ErrInvalidPayload)

	in = validInput(model.SeatManifest{{TableID: 10, SeatIDs: nil}})
	_, err = coord.CreateReservation(ctx, in)
	assert.ErrorIs(t, err, service.ErrInvalidPayload)

	in = validInput(model.SeatManifest{{TableID: 10, SeatIDs: []uint64{1}}})
	in.DiningDate = "  "
	_, err = coord.CreateReservation(ctx, in)
	assert.ErrorIs(t, err, service.ErrInvalidPayload)
}

func TestCreateReservation_ConcurrentClaims(t *testing.T) {
	store := newMemStore(1, 2)
	coord := service.NewCoordinator(store)

	const claimers = 16
	var wg sync.WaitGroup
	errs := make([]error, claimers)
	for i := 0; i < claimers; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			in := validInput(model.SeatManifest{{TableID: 10, SeatIDs: []uint64{1, 2}}})
			in.UserID = uint64(n + 1)
			_, errs[n] = coord.CreateReservation(context.Background(), in)
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		} else {
			assert.ErrorIs(t, err, service.ErrSeatConflict)
		}
	}
	assert.Equal(t, 1, winners, "exactly one claim may win")
	assert.Len(t, store.reservations, 1)
}

func TestCancelSeats_Partial(t *testing.T) {
	store := newMemStore(1, 2, 3)
	coord := service.NewCoordinator(store)
	ctx := context.Background()

	res, err := coord.CreateReservation(ctx, validInput(model.SeatManifest{
		{TableID: 10, SeatIDs: []uint64{1, 2}},
		{TableID: 11, SeatIDs: []uint64{3}},
	}))
	require.NoError(t, err)

	released, err := coord.CancelSeats(ctx, res.ID, model.SeatManifest{
		{TableID: 10, SeatIDs: []uint64{2}},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{2}, released)

	assert.Equal(t, model.SeatAvailable, store.seats[2].Status)
	assert.Nil(t, store.seats[2].ReservationID)
	assert.Equal(t, model.SeatBooked, store.seats[1].Status)
	assert.Equal(t, model.SeatBooked, store.seats[3].Status)

	kept := store.reservations[res.ID].Manifest
	assert.ElementsMatch(t, []uint64{1, 3}, kept.Flatten())

	require.Len(t, store.audit, 1)
	assert.Equal(t, res.ID, store.audit[0].ReservationID)
	assert.Equal(t, []uint64{2}, store.audit[0].Snapshot.Flatten())
}

func TestCancelSeats_UnknownSeatsIgnored(t *testing.T) {
	store := newMemStore(1, 2)
	coord := service.NewCoordinator(store)
	ctx := context.Background()

	res, err := coord.CreateReservation(ctx, validInput(model.SeatManifest{
		{TableID: 10, SeatIDs: []uint64{1, 2}},
	}))
	require.NoError(t, err)

	// 99 is not part of the reservation; only 1 matches and is released.
	released, err := coord.CancelSeats(ctx, res.ID, model.SeatManifest{
		{TableID: 10, SeatIDs: []uint64{1, 99}},
	})
	require.NoError(t, err)
	assert.Equal(t, []uint64{1}, released)
}

func TestCancelSeats_NothingMatches(t *testing.T) {
	store := newMemStore(1)
	coord := service.NewCoordinator(store)
	ctx := context.Background()

	res, err := coord.CreateReservation(ctx, validInput(model.SeatManifest{
		{TableID: 10, SeatIDs: []uint64{1}},
	}))
	require.NoError(t, err)

	_, err = coord.CancelSeats(ctx, res.ID, model.SeatManifest{
		{TableID: 10, SeatIDs: []uint64{42}},
	})
	assert.ErrorIs(t, err, service.ErrInvalidRequest)

	_, err = coord.CancelSeats(ctx, res.ID, nil)
	assert.ErrorIs(t, err, service.ErrInvalidRequest)

	// The failed cancellations must leave no audit rows behind.
	assert.Empty(t, store.audit)
}

func TestCancelSeats_OwnershipMismatch(t *testing.T) {
	store := newMemStore(1, 2)
	coord := service.NewCoordinator(store)
	ctx := context.Background()

	res, err := coord.CreateReservation(ctx, validInput(model.SeatManifest{
		{TableID: 10, SeatIDs: []uint64{1, 2}},
	}))
	require.NoError(t, err)

	// Simulate ledger drift: seat 2 was reassigned behind the
	// reservation's back while the manifest still names it.
	store.mu.Lock()
	other := uint64(999)
	seat := store.seats[2]
	seat.ReservationID = &other
	store.seats[2] = seat
	store.mu.Unlock()

	_, err = coord.CancelSeats(ctx, res.ID, model.SeatManifest{
		{TableID: 10, SeatIDs: []uint64{2}},
	})
	assert.ErrorIs(t, err, service.ErrOwnershipMismatch)

	// Rolled back: the manifest still names both seats.
	assert.ElementsMatch(t, []uint64{1, 2}, store.reservations[res.ID].Manifest.Flatten())
	assert.Empty(t, store.audit)
}

func TestCancelSeats_NotFound(t *testing.T) {
	coord := service.NewCoordinator(newMemStore(1))
	_, err := coord.CancelSeats(context.Background(), 123, model.SeatManifest{
		{TableID: 10, SeatIDs: []uint64{1}},
	})
	assert.ErrorIs(t, err, service.ErrNotFound)
}

func TestCancelReservation_Full(t *testing.T) {
	store := newMemStore(1, 2, 3)
	coord := service.NewCoordinator(store)
	ctx := context.Background()

	res, err := coord.CreateReservation(ctx, validInput(model.SeatManifest{
		{TableID: 10, SeatIDs: []uint64{1, 2, 3}},
	}))
	require.NoError(t, err)

	require.NoError(t, coord.CancelReservation(ctx, res.ID))

	for _, id := range []uint64{1, 2, 3} {
		assert.Equal(t, model.SeatAvailable, store.seats[id].Status)
		assert.Nil(t, store.seats[id].ReservationID)
	}
	after := store.reservations[res.ID]
	assert.Equal(t, model.DiningCancelled, after.DiningStatus)
	// The manifest is retained as the historical record of what was
	// reserved.
	assert.ElementsMatch(t, []uint64{1, 2, 3}, after.Manifest.Flatten())

	require.Len(t, store.audit, 1)
	assert.ElementsMatch(t, []uint64{1, 2, 3}, store.audit[0].Snapshot.Flatten())
}

func TestCancelReservation_Idempotent(t *testing.T) {
	store := newMemStore(1)
	coord := service.NewCoordinator(store)
	ctx := context.Background()

	res, err := coord.CreateReservation(ctx, validInput(model.SeatManifest{
		{TableID: 10, SeatIDs: []uint64{1}},
	}))
	require.NoError(t, err)

	require.NoError(t, coord.CancelReservation(ctx, res.ID))
	require.NoError(t, coord.CancelReservation(ctx, res.ID))

	// One audit row per successful cancellation, not per attempt.
	assert.Len(t, store.audit, 1)
}

func TestCancelReservation_ReleasesNonBookedSeats(t *testing.T) {
	store := newMemStore(1, 2)
	coord := service.NewCoordinator(store)
	ctx := context.Background()

	res, err := coord.CreateReservation(ctx, validInput(model.SeatManifest{
		{TableID: 10, SeatIDs: []uint64{1, 2}},
	}))
	require.NoError(t, err)

	// Staff flipped seat 2 to CLEANING while it was still owned by the
	// reservation. Full cancellation releases it regardless of status.
	store.mu.Lock()
	seat := store.seats[2]
	seat.Status = model.SeatCleaning
	store.seats[2] = seat
	store.mu.Unlock()

	require.NoError(t, coord.CancelReservation(ctx, res.ID))
	assert.Equal(t, model.SeatAvailable, store.seats[2].Status)
	assert.Nil(t, store.seats[2].ReservationID)
}

func TestUpdateDiningStatus_Transitions(t *testing.T) {
	store := newMemStore(1)
	coord := service.NewCoordinator(store)
	ctx := context.Background()

	res, err := coord.CreateReservation(ctx, validInput(model.SeatManifest{
		{TableID: 10, SeatIDs: []uint64{1}},
	}))
	require.NoError(t, err)

	applied, err := coord.UpdateDiningStatus(ctx, res.ID, model.DiningSeated)
	require.NoError(t, err)
	assert.Equal(t, model.DiningSeated, applied)

	// Skipping ahead is not allowed once seated only COMPLETED or
	// CANCELLED remain.
	_, err = coord.UpdateDiningStatus(ctx, res.ID, model.DiningPending)
	assert.ErrorIs(t, err, service.ErrInvalidRequest)

	applied, err = coord.UpdateDiningStatus(ctx, res.ID, model.DiningCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.DiningCompleted, applied)

	// COMPLETED is terminal.
	_, err = coord.UpdateDiningStatus(ctx, res.ID, model.DiningCancelled)
	assert.ErrorIs(t, err, service.ErrInvalidRequest)

	// Setting the current status again is a no-op.
	applied, err = coord.UpdateDiningStatus(ctx, res.ID, model.DiningCompleted)
	require.NoError(t, err)
	assert.Equal(t, model.DiningCompleted, applied)
}

func TestUpdateDiningStatus_Invalid(t *testing.T) {
	coord := service.NewCoordinator(newMemStore())
	_, err := coord.UpdateDiningStatus(context.Background(), 1, model.DiningStatus(42))
	assert.ErrorIs(t, err, service.ErrInvalidPayload)

	_, err = coord.UpdateDiningStatus(context.Background(), 1, model.DiningSeated)
	assert.ErrorIs(t, err, service.ErrNotFound)
}
