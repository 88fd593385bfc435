package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-table-reservation/internal/handler"
	"github.com/iliyamo/hotel-table-reservation/internal/middleware"
	"github.com/iliyamo/hotel-table-reservation/internal/model"
)

// RegisterStaff registers STAFF-scoped endpoints: the reservation
// lifecycle, per-hotel listings, cancellation audit history and seat
// administration (status overrides, adding and removing seats).
func RegisterStaff(e *echo.Echo, r *handler.ReservationHandler, h *handler.HotelHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleStaff),
	)

	g.PATCH("/reservations/:id/status", r.UpdateDiningStatus)
	g.GET("/reservations/:id/cancellations", r.ListCancellations)
	g.GET("/hotels/:id/reservations", r.ListByHotel)

	g.PATCH("/seats/:id/status", h.UpdateSeatStatus)
	g.POST("/tables/:id/seats", h.AddSeats)
	g.DELETE("/tables/:id/seats", h.RemoveSeats)
}
