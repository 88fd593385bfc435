package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-table-reservation/internal/model"
	"github.com/iliyamo/hotel-table-reservation/internal/repository"
)

// HotelHandler serves the catalog: hotels, floor availability, tables
// and seats, plus the staff-side seat administration endpoints.
type HotelHandler struct {
	Hotels *repository.HotelRepo
	Floors *repository.FloorRepo
	Tables *repository.TableRepo
	Seats  *repository.SeatRepo
}

func NewHotelHandler(hotels *repository.HotelRepo, floors *repository.FloorRepo, tables *repository.TableRepo, seats *repository.SeatRepo) *HotelHandler {
	return &HotelHandler{Hotels: hotels, Floors: floors, Tables: tables, Seats: seats}
}

// ListHotels returns the hotel catalog, optionally filtered by a
// search term matched against hotel and location names.
//
// GET /v1/hotels?search=
func (h *HotelHandler) ListHotels(c echo.Context) error {
	list, err := h.Hotels.List(c.Request().Context(), c.QueryParam("search"))
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"hotels": list})
}

// GetHotel returns one hotel with its per-floor seat availability.
//
// GET /v1/hotels/:id
func (h *HotelHandler) GetHotel(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid hotel id"})
	}
	hotel, err := h.Hotels.GetByID(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrHotelNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "hotel not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	floors, err := h.Floors.AvailabilityByHotel(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	return c.JSON(http.StatusOK, echo.Map{
		"id":          hotel.ID,
		"name":        hotel.Name,
		"address":     hotel.Address,
		"floor_count": hotel.FloorCount,
		"floors":      floors,
	})
}

// ListFloorTables returns the tables on a floor.
//
// GET /v1/floors/:id/tables
func (h *HotelHandler) ListFloorTables(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid floor id"})
	}
	if _, err := h.Floors.GetByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrFloorNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "floor not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	tables, err := h.Tables.ListByFloor(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	out := make([]echo.Map, 0, len(tables))
	for _, t := range tables {
		out = append(out, echo.Map{"id": t.ID, "table_number": t.TableNumber})
	}
	return c.JSON(http.StatusOK, echo.Map{"floor_id": id, "tables": out})
}

// ListTableSeats returns every seat at a table with its live status,
// the view a client uses to build a seat-picking manifest.
//
// GET /v1/tables/:id/seats
func (h *HotelHandler) ListTableSeats(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	if _, err := h.Tables.GetByID(c.Request().Context(), id); err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	seats, err := h.Seats.GetByTable(c.Request().Context(), id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	out := make([]echo.Map, 0, len(seats))
	for _, s := range seats {
		out = append(out, echo.Map{
			"id":          s.ID,
			"seat_number": s.SeatNumber,
			"status":      s.Status.String(),
		})
	}
	return c.JSON(http.StatusOK, echo.Map{"table_id": id, "seats": out})
}

type addSeatsReq struct {
	Count int `json:"count"`
}

// AddSeats grows a table by count seats, numbered after the current
// maximum. Staff only.
//
// POST /v1/tables/:id/seats
func (h *HotelHandler) AddSeats(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	var req addSeatsReq
	if err := c.Bind(&req); err != nil || req.Count < 1 || req.Count > 100 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "count must be between 1 and 100"})
	}
	ctx := c.Request().Context()
	if _, err := h.Tables.GetByID(ctx, id); err != nil {
		if errors.Is(err, repository.ErrTableNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "table not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	next, err := h.Tables.NextSeatNumber(ctx, id)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	if err := h.Seats.CreateBulk(ctx, id, next, req.Count); err != nil {
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	return c.JSON(http.StatusCreated, echo.Map{"table_id": id, "added": req.Count})
}

type removeSeatsReq struct {
	SeatIDs []uint64 `json:"seat_ids"`
}

// RemoveSeats deletes seats from a table. Only AVAILABLE seats may be
// removed; a single booked or transitional seat rejects the whole
// request. Staff only.
//
// DELETE /v1/tables/:id/seats
func (h *HotelHandler) RemoveSeats(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid table id"})
	}
	var req removeSeatsReq
	if err := c.Bind(&req); err != nil || len(req.SeatIDs) == 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "seat_ids required"})
	}
	if err := h.Seats.DeleteAvailable(c.Request().Context(), id, req.SeatIDs); err != nil {
		if errors.Is(err, repository.ErrSeatNotAvailable) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "only available seats can be removed"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	return c.NoContent(http.StatusNoContent)
}

type seatStatusReq struct {
	Status string `json:"status"`
}

// UpdateSeatStatus applies an administrative seat status (AVAILABLE,
// CLEANING, CANCEL). BOOKED is owned by the reservation flow and is
// rejected here. Staff only.
//
// PATCH /v1/seats/:id/status
func (h *HotelHandler) UpdateSeatStatus(c echo.Context) error {
	id, ok := parseIDParam(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid seat id"})
	}
	var req seatStatusReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid payload"})
	}
	status, ok := model.ParseSeatStatus(req.Status)
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "unknown seat status"})
	}
	if status == model.SeatBooked {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "BOOKED is set only by reservations"})
	}
	if err := h.Seats.UpdateStatus(c.Request().Context(), id, status); err != nil {
		if errors.Is(err, repository.ErrSeatNotFound) {
			return c.JSON(http.StatusConflict, echo.Map{"error": "seat is booked or does not exist"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "storage error"})
	}
	return c.JSON(http.StatusOK, echo.Map{"seat_id": id, "status": status.String()})
}
