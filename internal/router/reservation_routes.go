package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-table-reservation/internal/handler"
	"github.com/iliyamo/hotel-table-reservation/internal/middleware"
	"github.com/iliyamo/hotel-table-reservation/internal/model"
)

// RegisterReservations registers the seat-claim and cancellation
// endpoints. Both roles may create and cancel reservations; handlers
// restrict customers to reservations they own.
func RegisterReservations(e *echo.Echo, h *handler.ReservationHandler, jwtSecret string) {
	g := e.Group(
		"/v1",
		middleware.JWTAuth(jwtSecret),
		middleware.RequireRole(model.RoleCustomer, model.RoleStaff),
	)
	g.POST("/reservations", h.CreateReservation)
	g.PUT("/reservations/:id/seats/cancel", h.CancelSeats)
	g.PUT("/reservations/:id/cancel", h.CancelReservation)
	g.GET("/my-reservations", h.ListMine)
}
