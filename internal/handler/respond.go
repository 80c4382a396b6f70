// Package handler exposes the HTTP handlers of the read-only rental API.
// Handlers parse query parameters into typed requests, call the
// repositories and translate their errors into status codes: client
// mistakes answer 400, missing rows 404 and everything else a generic 500.
package handler

import (
    "errors"
    "net/http"
    "strconv"

    "github.com/hashicorp/go-hclog"
    "github.com/labstack/echo/v4"

    "github.com/iliyamo/film-rental-api/internal/query"
)

// errorBody is the JSON shape of 400 and 500 responses.
type errorBody struct {
    Error   string `json:"error"`
    Message string `json:"message"`
}

// messageBody is the JSON shape of 404 responses.
type messageBody struct {
    Message string `json:"message"`
}

var errInvalidID = &query.Error{Message: "Invalid ID"}

// badRequest answers a client mistake. Only *query.Error messages reach the
// client; anything else gets a generic text.
func badRequest(c echo.Context, err error) error {
    msg := "Invalid request"
    var qe *query.Error
    if errors.As(err, &qe) {
        msg = qe.Message
    }
    return c.JSON(http.StatusBadRequest, errorBody{Error: "Bad Request", Message: msg})
}

func notFound(c echo.Context, msg string) error {
    return c.JSON(http.StatusNotFound, messageBody{Message: msg})
}

// serverError logs err with the operation name and answers a 500 that hides
// the cause.
func serverError(c echo.Context, log hclog.Logger, op string, err error, msg string) error {
    log.Error("request failed", "op", op, "path", c.Request().URL.Path, "error", err)
    return c.JSON(http.StatusInternalServerError, errorBody{Error: "Internal Server Error", Message: msg})
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
    id, err := strconv.ParseInt(c.Param("id"), 10, 64)
    if err != nil {
        return 0, errInvalidID
    }
    return id, nil
}

func orNull(log hclog.Logger) hclog.Logger {
    if log == nil {
        return hclog.NewNullLogger()
    }
    return log
}
