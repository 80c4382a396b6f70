package router // package router defines how HTTP routes are registered for the API

import (
	"github.com/labstack/echo/v4"

	"github.com/iliyamo/film-rental-api/internal/handler"
)

// Handlers groups the endpoint implementations mounted by RegisterRoutes.
type Handlers struct {
	Films   *handler.FilmHandler
	Rentals *handler.RentalHandler
	Stores  *handler.StoreHandler
	Lookups *handler.LookupHandler
	Health  echo.HandlerFunc
}

// RegisterRoutes mounts every read-only endpoint on e. All routes are GET
// and unauthenticated.
func RegisterRoutes(e *echo.Echo, h Handlers) {
	// Liveness plus a database ping, for load balancers and monitoring.
	e.GET("/healthz", h.Health)

	// Static segments win over :id in echo's router, so filter-options
	// never reaches the detail handler.
	films := e.Group("/films")
	films.GET("", h.Films.List)
	films.GET("/filter-options", h.Films.FilterOptions)
	films.GET("/:id", h.Films.Get)

	rentals := e.Group("/rentals")
	rentals.GET("", h.Rentals.List)
	rentals.GET("/filter-options", h.Rentals.FilterOptions)
	rentals.GET("/:id", h.Rentals.Get)

	stores := e.Group("/stores")
	stores.GET("", h.Stores.List)
	stores.GET("/:id", h.Stores.Get)
	stores.GET("/:id/staff", h.Stores.Staff)
	stores.GET("/:id/rentals", h.Stores.Rentals)

	e.GET("/actors", h.Lookups.Actors)
	e.GET("/categories", h.Lookups.Categories)
	e.GET("/languages", h.Lookups.Languages)
}
