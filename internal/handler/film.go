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

// FilmReader is the film repository as seen by the handlers.
type FilmReader interface {
    List(ctx context.Context, f query.FilmFilter, s *query.Sort, p query.Page) ([]model.FilmDetail, int64, error)
    GetByID(ctx context.Context, id int64) (*model.FilmDetail, error)
}

// FilterOptionsProvider builds the option lists of the filter widgets.
type FilterOptionsProvider interface {
    Films(ctx context.Context) (*model.FilmFilterOptions, error)
    Rentals(ctx context.Context) (*model.RentalFilterOptions, error)
}

// FilmHandler serves /films.
type FilmHandler struct {
    films   FilmReader
    options FilterOptionsProvider
    log     hclog.Logger
}

// NewFilmHandler wires the film endpoints. It panics if a dependency is nil.
func NewFilmHandler(films FilmReader, options FilterOptionsProvider, log hclog.Logger) *FilmHandler {
    if films == nil || options == nil {
        panic("nil dependency passed to NewFilmHandler")
    }
    return &FilmHandler{films: films, options: options, log: orNull(log)}
}

// List handles GET /films. The filter comes as JSON in ?filter= or as
// bracketed parameters; sort_field, sort_order, page and limit are optional.
func (h *FilmHandler) List(c echo.Context) error {
    filter, err := query.ParseFilmFilter(c.QueryParams())
    if err != nil {
        return badRequest(c, err)
    }
    sort, err := query.ParseSort(c.QueryParam("sort_field"), c.QueryParam("sort_order"), repository.FilmSortFields)
    if err != nil {
        return badRequest(c, err)
    }
    page := query.ParsePage(c.QueryParam("page"), c.QueryParam("limit"))

    films, total, err := h.films.List(c.Request().Context(), filter, sort, page)
    if err != nil {
        return serverError(c, h.log, "list films", err, "An error occurred while fetching films")
    }
    return c.JSON(http.StatusOK, query.NewResult(films, total, page))
}

// Get handles GET /films/:id.
func (h *FilmHandler) Get(c echo.Context) error {
    id, err := pathID(c)
    if err != nil {
        return badRequest(c, err)
    }
    film, err := h.films.GetByID(c.Request().Context(), id)
    if err != nil {
        if errors.Is(err, repository.ErrFilmNotFound) {
            return notFound(c, "Film not found")
        }
        return serverError(c, h.log, "get film", err, "An error occurred while fetching the film")
    }
    return c.JSON(http.StatusOK, film)
}

// FilterOptions handles GET /films/filter-options.
func (h *FilmHandler) FilterOptions(c echo.Context) error {
    opts, err := h.options.Films(c.Request().Context())
    if err != nil {
        return serverError(c, h.log, "film filter options", err, "An error occurred while fetching filter options")
    }
    return c.JSON(http.StatusOK, opts)
}
