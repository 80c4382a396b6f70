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

// StoreReader is the store repository as seen by the handlers.
type StoreReader interface {
    List(ctx context.Context, f query.StoreFilter, s *query.Sort, p query.Page) ([]model.Store, int64, error)
    GetByID(ctx context.Context, id int64) (*model.Store, error)
    Staff(ctx context.Context, storeID int64, p query.Page) ([]model.Staff, int64, error)
}

// StoreHandler serves /stores and its sub-resources. Store rentals are read
// through the rental repository with a store filter.
type StoreHandler struct {
    stores  StoreReader
    rentals RentalReader
    log     hclog.Logger
}

// NewStoreHandler wires the store endpoints. It panics if a dependency is nil.
func NewStoreHandler(stores StoreReader, rentals RentalReader, log hclog.Logger) *StoreHandler {
    if stores == nil || rentals == nil {
        panic("nil dependency passed to NewStoreHandler")
    }
    return &StoreHandler{stores: stores, rentals: rentals, log: orNull(log)}
}

// List handles GET /stores with city, zip_code, staff_count_{gt,lt,eq},
// sort_field, sort_order, page and limit.
func (h *StoreHandler) List(c echo.Context) error {
    filter := query.ParseStoreFilter(c.QueryParams())
    sort, err := query.ParseSort(c.QueryParam("sort_field"), c.QueryParam("sort_order"), repository.StoreSortFields)
    if err != nil {
        return badRequest(c, err)
    }
    page := query.ParsePage(c.QueryParam("page"), c.QueryParam("limit"))

    stores, total, err := h.stores.List(c.Request().Context(), filter, sort, page)
    if err != nil {
        return serverError(c, h.log, "list stores", err, "An error occurred while fetching stores.")
    }
    return c.JSON(http.StatusOK, query.NewResult(stores, total, page))
}

// Get handles GET /stores/:id.
func (h *StoreHandler) Get(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return badRequest(c, err)
    }
    store, err := h.stores.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrStoreNotFound) {
            return notFound(c, "Store not found")
        }
        return serverError(c, h.log, "get store", err, "An error occurred while fetching the store.")
    }
    return c.JSON(http.StatusOK, store)
}

// Staff handles GET /stores/:id/staff.
func (h *StoreHandler) Staff(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return badRequest(c, err)
    }
    page := query.ParsePage(c.QueryParam("page"), c.QueryParam("limit"))
    staff, total, err := h.stores.Staff(c.Request().Context(), id, page)
    if err != nil {
        return serverError(c, h.log, "store staff", err, "An error occurred while fetching store staff.")
    }
    return c.JSON(http.StatusOK, query.NewResult(staff, total, page))
}

// Rentals handles GET /stores/:id/rentals.
func (h *StoreHandler) Rentals(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return badRequest(c, err)
    }
    page := query.ParsePage(c.QueryParam("page"), c.QueryParam("limit"))
    rentals, total, err := h.rentals.List(c.Request().Context(), query.RentalFilter{StoreID: &id}, nil, page)
    if err != nil {
        return serverError(c, h.log, "store rentals", err, "An error occurred while fetching store rentals.")
    }
    return c.JSON(http.StatusOK, query.NewResult(rentals, total, page))
}
