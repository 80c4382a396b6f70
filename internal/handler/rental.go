package handler

import (
    "context"
    "errors"
    "net/http"

    "github.com/hashicorp/go-hclog"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/film-rental-api/internal/model"
    "github.com/iliyamo/film-rental-api/internal/query"
    "github.com/iliyamo/film-rental-api/internal/repository"
)

// RentalReader is the rental repository as seen by the handlers.
type RentalReader interface {
    List(ctx context.Context, f query.RentalFilter, s *query.Sort, p query.Page) ([]model.Rental, int64, error)
    GetByID(ctx context.Context, id int64) (*model.Rental, error)
}

// RentalHandler serves /rentals.
type RentalHandler struct {
    rentals RentalReader
    options FilterOptionsProvider
    log     hclog.Logger
}

// NewRentalHandler wires the rental endpoints. It panics if a dependency is nil.
func NewRentalHandler(rentals RentalReader, options FilterOptionsProvider, log hclog.Logger) *RentalHandler {
    if rentals == nil || options == nil {
        panic("nil dependency passed to NewRentalHandler")
    }
    return &RentalHandler{rentals: rentals, options: options, log: orNull(log)}
}

// List handles GET /rentals with start_date, end_date, store_id,
// customer_id, film_id, sort_field, sort_order, page and limit.
func (h *RentalHandler) List(c echo.Context) error {
    filter, err := query.ParseRentalFilter(c.QueryParams())
    if err != nil {
        return badRequest(c, err)
    }
    sort, err := query.ParseSort(c.QueryParam("sort_field"), c.QueryParam("sort_order"), repository.RentalSortFields)
    if err != nil {
        return badRequest(c, err)
    }
    page := query.ParsePage(c.QueryParam("page"), c.QueryParam("limit"))

    rentals, total, err := h.rentals.List(c.Request().Context(), filter, sort, page)
    if err != nil {
        return serverError(c, h.log, "list rentals", err, "An error occurred while fetching rentals.")
    }
    return c.JSON(http.StatusOK, query.NewResult(rentals, total, page))
}

// Get handles GET /rentals/:id.
func (h *RentalHandler) Get(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return badRequest(c, err)
    }
    rental, err := h.rentals.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrRentalNotFound) {
            return notFound(c, "Rental not found")
        }
        return serverError(c, h.log, "get rental", err, "An error occurred while fetching the rental.")
    }
    return c.JSON(http.StatusOK, rental)
}

// FilterOptions handles GET /rentals/filter-options.
func (h *RentalHandler) FilterOptions(c echo.Context) error {
    opts, err := h.options.Rentals(c.Request().Context())
    if err != nil {
        return serverError(c, h.log, "rental filter options", err, "An error occurred while fetching filter options.")
    }
    return c.JSON(http.StatusOK, opts)
}
