package router

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/hotel-table-reservation/internal/handler"
)

// RegisterPublic registers the unauthenticated catalog endpoints:
// browsing hotels, floor availability, tables and live seat status.
// Guests use these to pick seats before signing in to reserve them.
func RegisterPublic(e *echo.Echo, h *handler.HotelHandler, mws ...echo.MiddlewareFunc) {
	g := e.Group("/v1", mws...)
	g.GET("/hotels", h.ListHotels)
	g.GET("/hotels/:id", h.GetHotel)
	g.GET("/floors/:id/tables", h.ListFloorTables)
	g.GET("/tables/:id/seats", h.ListTableSeats)
}
