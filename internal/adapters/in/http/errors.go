package http

import (
	"errors"
	"fmt"
	"net/http"

	"pharmacy/internal/core/application/usecases/commands"
	"pharmacy/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// errorResponse is the JSON body every failed request gets.
type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// respondError translates domain errors into HTTP status codes. Conflicts
// (stock, state machine, concurrent writes) map to 409 so clients can
// retry or re-read; validation failures map to 400, lookups to 404.
func respondError(ctx echo.Context, err error) error {
	var stockErr *errs.InsufficientStockError
	if errors.As(err, &stockErr) {
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code: http.StatusConflict,
			Message: fmt.Sprintf("insufficient stock for item %s: requested %d, available %d",
				stockErr.ItemID, stockErr.Requested, stockErr.Available),
		})
	}

	switch {
	case errors.Is(err, commands.ErrCartIsEmpty):
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: "cart is empty: add at least one item before checking out",
		})
	case errors.Is(err, commands.ErrDriverIsNotAvailable):
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: "driver is not available: pick a driver who is on shift",
		})
	case errors.Is(err, commands.ErrDriverIsOverloaded):
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: "driver has reached the active delivery limit: pick another driver",
		})
	case errors.Is(err, errs.ErrInvalidTransition),
		errors.Is(err, errs.ErrVersionIsInvalid):
		return ctx.JSON(http.StatusConflict, errorResponse{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, errorResponse{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, errorResponse{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		return ctx.JSON(http.StatusInternalServerError, errorResponse{
			Code:    http.StatusInternalServerError,
			Message: "internal error",
		})
	}
}

// respondBadRequest is for malformed input caught before a command exists.
func respondBadRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, errorResponse{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
