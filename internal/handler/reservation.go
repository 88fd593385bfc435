package handler

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-table-reservation/internal/model"
	"github.com/iliyamo/hotel-table-reservation/internal/queue"
	"github.com/iliyamo/hotel-table-reservation/internal/repository"
	"github.com/iliyamo/hotel-table-reservation/internal/service"
)

// ReservationHandler exposes the seat-claim and cancellation endpoints.
// All seat mutations go through the coordinator; the repositories here
// serve only reads (listings, audit history, ownership checks).
type ReservationHandler struct {
	Coordinator   *service.Coordinator
	Reservations  *repository.ReservationRepo
	Cancellations *repository.CancellationRepo
	Hotels        *repository.HotelRepo
	Floors        *repository.FloorRepo
}

func NewReservationHandler(coord *service.Coordinator, reservations *repository.ReservationRepo, cancellations *repository.CancellationRepo, hotels *repository.HotelRepo, floors *repository.FloorRepo) *ReservationHandler {
	return &ReservationHandler{
		Coordinator:   coord,
		Reservations:  reservations,
		Cancellations: cancellations,
		Hotels:        hotels,
		Floors:        floors,
	}
}

type createReservationReq struct {
	HotelID        uint64             `json:"hotel_id"`
	FloorID        uint64             `json:"floor_id"`
	Manifest       model.SeatManifest `json:"manifest"`
	CustomerName   string             `json:"customer_name"`
	CustomerMobile string             `json:"customer_mobile"`
	DiningDate     string             `json:"dining_date"` // YYYY-MM-DD
	StartTime      string             `json:"start_time"`  // HH:MM
	EndTime        *string            `json:"end_time,omitempty"`
}

// CreateReservation claims every seat in the request manifest in one
// transaction. 201 on success; 409 with the unavailable seat ids when
// any seat is already taken.
//
// POST /v1/reservations
func (h *ReservationHandler) CreateReservation(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req createReservationReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	if req.HotelID != 0 && req.FloorID != 0 {
		ok, err := h.Floors.ExistsInHotel(c.Request().Context(), req.FloorID, req.HotelID)
		if err != nil {
			return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
		}
		if !ok {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "floor does not belong to hotel"})
		}
	}

	res, err := h.Coordinator.CreateReservation(c.Request().Context(), service.CreateReservationInput{
		UserID:         userID,
		HotelID:        req.HotelID,
		FloorID:        req.FloorID,
		Manifest:       req.Manifest,
		CustomerName:   req.CustomerName,
		CustomerMobile: req.CustomerMobile,
		DiningDate:     req.DiningDate,
		StartTime:      req.StartTime,
		EndTime:        req.EndTime,
	})
	if err != nil {
		return writeReservationError(c, err)
	}

	go publishConfirmed(res)

	return c.JSON(http.StatusCreated, echo.Map{
		"reservation_id": res.ID,
		"dining_status":  res.DiningStatus.String(),
		"seats":          res.Manifest,
	})
}

type cancelSeatsReq struct {
	CancelSeats model.SeatManifest `json:"cancel_seats"`
}

// CancelSeats releases a subset of a reservation's seats. The response
// lists the seat ids actually released.
//
// PUT /v1/reservations/:id/seats/cancel
func (h *ReservationHandler) CancelSeats(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req cancelSeatsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}

	res, err := h.Reservations.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeReservationError(c, service.ErrNotFound)
	}
	if !callerMayModify(c, userID, res.UserID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}

	released, err := h.Coordinator.CancelSeats(c.Request().Context(), id, req.CancelSeats)
	if err != nil {
		return writeReservationError(c, err)
	}

	go publishCancelled(res, true, released)

	return c.JSON(http.StatusOK, echo.Map{
		"reservation_id":     id,
		"cancelled_seat_ids": released,
	})
}

// CancelReservation cancels the whole reservation: all owned seats are
// released and the dining status becomes CANCELLED. Cancelling twice
// is a no-op.
//
// PUT /v1/reservations/:id/cancel
func (h *ReservationHandler) CancelReservation(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}

	res, err := h.Reservations.GetByID(c.Request().Context(), id)
	if err != nil {
		return writeReservationError(c, service.ErrNotFound)
	}
	if !callerMayModify(c, userID, res.UserID) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "forbidden"})
	}
	alreadyCancelled := res.DiningStatus == model.DiningCancelled

	if err := h.Coordinator.CancelReservation(c.Request().Context(), id); err != nil {
		return writeReservationError(c, err)
	}

	if !alreadyCancelled {
		go publishCancelled(res, false, res.Manifest.Flatten())
	}

	return c.NoContent(http.StatusNoContent)
}

type updateStatusReq struct {
	Status string `json:"status"`
}

// UpdateDiningStatus moves a reservation through its lifecycle
// (PENDING, CONFIRMED, SEATED, COMPLETED, CANCELLED). Staff only.
//
// PATCH /v1/reservations/:id/status
func (h *ReservationHandler) UpdateDiningStatus(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	var req updateStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	next, ok := model.ParseDiningStatus(req.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown dining status"})
	}

	applied, err := h.Coordinator.UpdateDiningStatus(c.Request().Context(), id, next)
	if err != nil {
		return writeReservationError(c, err)
	}
	return c.JSON(http.StatusOK, echo.Map{
		"reservation_id": id,
		"dining_status":  applied.String(),
	})
}

// ListByHotel returns every reservation recorded for a hotel, newest
// dining date first. Staff only.
//
// GET /v1/hotels/:id/reservations
func (h *ReservationHandler) ListByHotel(c echo.Context) error {
	hotelID, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	if _, err := h.Hotels.GetByID(c.Request().Context(), hotelID); err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}

	list, err := h.Reservations.ListByHotel(c.Request().Context(), hotelID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	out := make([]echo.Map, 0, len(list))
	for _, r := range list {
		out = append(out, echo.Map{
			"reservation_id":  r.ID,
			"floor_id":        r.FloorID,
			"customer_name":   r.CustomerName,
			"customer_mobile": r.CustomerMobile,
			"dining_date":     r.DiningDate,
			"start_time":      r.StartTime,
			"end_time":        r.EndTime,
			"dining_status":   r.DiningStatus.String(),
			"manifest":        r.Manifest,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"hotel_id": hotelID, "reservations": out})
}

// ListMine returns the authenticated customer's reservations with
// hotel and floor names resolved.
//
// GET /v1/my-reservations
func (h *ReservationHandler) ListMine(c echo.Context) error {
	userID, ok := getUserID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	list, err := h.Reservations.ListByUser(c.Request().Context(), userID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservations": list})
}

// ListCancellations returns the append-only cancellation history of a
// reservation, oldest first. Staff only.
//
// GET /v1/reservations/:id/cancellations
func (h *ReservationHandler) ListCancellations(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid reservation id"})
	}
	if _, err := h.Reservations.GetByID(c.Request().Context(), id); err != nil {
		return writeReservationError(c, service.ErrNotFound)
	}
	records, err := h.Cancellations.ListByReservation(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	out := make([]echo.Map, 0, len(records))
	for _, rec := range records {
		out = append(out, echo.Map{
			"id":           rec.ID,
			"seats":        rec.Snapshot,
			"cancelled_at": rec.CancelledAt,
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"reservation_id": id, "cancellations": out})
}

// callerMayModify allows staff to act on any reservation and customers
// only on their own.
func callerMayModify(c echo.Context, callerID, ownerID uint64) bool {
	if role, _ := c.Get("role").(string); role == model.RoleStaff {
		return true
	}
	return callerID == ownerID
}

// writeReservationError maps coordinator errors onto HTTP responses.
func writeReservationError(c echo.Context, err error) error {
	var conflict *service.SeatConflictError
	switch {
	case errors.As(err, &conflict):
		return c.JSON(http.StatusConflict, echo.Map{
			"error":             "seat conflict",
			"unavailable_seats": conflict.Unavailable,
		})
	case errors.Is(err, service.ErrSeatConflict):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seat conflict"})
	case errors.Is(err, service.ErrOwnershipMismatch):
		return c.JSON(http.StatusConflict, echo.Map{"error": "seats not owned by reservation"})
	case errors.Is(err, service.ErrNotFound):
		return c.JSON(http.StatusNotFound, echo.Map{"error": "reservation not found"})
	case errors.Is(err, service.ErrUnauthorized):
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	case errors.Is(err, service.ErrInvalidPayload):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	case errors.Is(err, service.ErrInvalidRequest):
		return c.JSON(http.StatusBadRequest, echo.Map{"error": err.Error()})
	default:
		c.Logger().Errorf("reservation operation failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
}

// publishConfirmed emits the confirmation event on a background
// context so a slow broker never delays the HTTP response. The
// publisher logs its own failures.
func publishConfirmed(res *model.Reservation) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = service.PublishReservationConfirmed(ctx, queue.ReservationConfirmedEvent{
		EventID:        uuid.NewString(),
		ReservationID:  res.ID,
		UserID:         res.UserID,
		HotelID:        res.HotelID,
		FloorID:        res.FloorID,
		CustomerName:   res.CustomerName,
		CustomerMobile: res.CustomerMobile,
		DiningDate:     res.DiningDate,
		StartTime:      res.StartTime,
		SeatIDs:        res.Manifest.Flatten(),
		ConfirmedAt:    time.Now().UTC().Format(time.RFC3339),
	})
}

func publishCancelled(res *model.Reservation, partial bool, seatIDs []uint64) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = service.PublishReservationCancelled(ctx, queue.ReservationCancelledEvent{
		EventID:       uuid.NewString(),
		ReservationID: res.ID,
		HotelID:       res.HotelID,
		Partial:       partial,
		SeatIDs:       seatIDs,
		CancelledAt:   time.Now().UTC().Format(time.RFC3339),
	})
}
