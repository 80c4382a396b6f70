package handler

import (
    "context"
    "net/http"

    "github.com/hashicorp/go-hclog"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/film-rental-api/internal/model"
    "github.com/iliyamo/film-rental-api/internal/query"
)

// LookupReader serves the reference lists.
type LookupReader interface {
    Actors(ctx context.Context) ([]model.Actor, error)
    Categories(ctx context.Context) ([]model.Category, error)
    Languages(ctx context.Context) ([]model.Language, error)
}

// LookupHandler serves /actors, /categories and /languages as {data, total}.
type LookupHandler struct {
    lookups LookupReader
    log     hclog.Logger
}

func NewLookupHandler(lookups LookupReader, log hclog.Logger) *LookupHandler {
    if lookups == nil {
        panic("nil lookups passed to NewLookupHandler")
    }
    return &LookupHandler{lookups: lookups, log: orNull(log)}
}

func (h *LookupHandler) Actors(c echo.Context) error {
    actors, err := h.lookups.Actors(c.Request().Context())
    if err != nil {
        return serverError(c, h.log, "list actors", err, "An error occurred while fetching actors.")
    }
    return c.JSON(http.StatusOK, query.NewList(actors))
}

func (h *LookupHandler) Categories(c echo.Context) error {
    categories, err := h.lookups.Categories(c.Request().Context())
    if err != nil {
        return serverError(c, h.log, "list categories", err, "An error occurred while fetching categories.")
    }
    return c.JSON(http.StatusOK, query.NewList(categories))
}

func (h *LookupHandler) Languages(c echo.Context) error {
    languages, err := h.lookups.Languages(c.Request().Context())
    if err != nil {
        return serverError(c, h.log, "list languages", err, "An error occurred while fetching languages.")
    }
    return c.JSON(http.StatusOK, query.NewList(languages))
}
