package handlers

import (
	"errors"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/event-tickets/internal/tickets"
	"go.uber.org/zap"
)

// apiError maps domain errors onto HTTP problems. Anything unknown is logged
// and reported as a 500 without details.
func apiError(log *zap.Logger, err error) error {
	switch {
	case errors.Is(err, tickets.ErrEventNotFound),
		errors.Is(err, tickets.ErrAttendeeNotFound),
		errors.Is(err, tickets.ErrFieldNotFound):
		return huma.Error404NotFound(err.Error())
	case errors.Is(err, tickets.ErrTicketsClosed):
		return huma.Error403Forbidden(err.Error())
	case errors.Is(err, tickets.ErrAlreadyCheckedIn),
		errors.Is(err, tickets.ErrDuplicateFieldName):
		return huma.Error409Conflict(err.Error())
	case errors.Is(err, tickets.ErrInvalidAttendee),
		errors.Is(err, tickets.ErrUnknownFieldType),
		errors.Is(err, tickets.ErrFieldLocked):
		return huma.Error422UnprocessableEntity(err.Error())
	}
	log.Error("request failed", zap.Error(err))
	return huma.Error500InternalServerError("Internal server error")
}
