package http

import (
	"errors"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/zone"
	"fulfillment/internal/generated/servers"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// statusFor maps a use-case error onto an HTTP status. The order of the checks
// matters: a SyncFailedError also unwraps to its cause.
func statusFor(err error) (int, bool) {
	switch {
	case errors.Is(err, commands.ErrSyncFailed):
		return http.StatusBadGateway, false
	case errors.Is(err, errs.ErrConcurrentModification):
		return http.StatusConflict, true
	case errors.Is(err, order.ErrInvalidTransition),
		errors.Is(err, order.ErrExternalRefConflict),
		errors.Is(err, order.ErrDeliveryNotAttached),
		errors.Is(err, commands.ErrOrderNotSyncable):
		return http.StatusConflict, false
	case errors.Is(err, zone.ErrNotCovered),
		errors.Is(err, commands.ErrMinOrderNotMet):
		return http.StatusUnprocessableEntity, false
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound, false
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return http.StatusBadRequest, false
	default:
		return http.StatusInternalServerError, false
	}
}

// fail renders err. Business errors are returned verbatim; unexpected ones are
// logged with the operation and order id and hidden behind a generic message.
func (s *Server) fail(ctx echo.Context, operation, orderID string, err error) error {
	status, retryable := statusFor(err)
	body := servers.Error{Code: status, Message: err.Error()}
	if retryable {
		body.Retryable = &retryable
	}

	if status == http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed",
			"operation", operation, "order_id", orderID, "error", err)
		body.Message = "Internal server error"
	} else if status == http.StatusBadGateway {
		s.logger.WarnContext(ctx.Request().Context(), "External sync failed",
			"operation", operation, "order_id", orderID, "error", err)
	}

	return ctx.JSON(status, body)
}

func badRequest(ctx echo.Context, message string) error {
	return ctx.JSON(http.StatusBadRequest, servers.Error{
		Code:    http.StatusBadRequest,
		Message: message,
	})
}
