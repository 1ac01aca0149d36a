package tickets

import "errors"

var (
	ErrEventNotFound      = errors.New("event not found")
	ErrFieldNotFound      = errors.New("attendee field not found")
	ErrAttendeeNotFound   = errors.New("attendee not found")
	ErrAlreadyCheckedIn   = errors.New("attendee already checked in")
	ErrTicketsClosed      = errors.New("event has no upcoming date, tickets cannot be created")
	ErrInvalidAttendee    = errors.New("invalid attendee")
	ErrUnknownFieldType   = errors.New("unknown field type")
	ErrDuplicateFieldName = errors.New("field name already used for this event")
	ErrFieldLocked        = errors.New("field name and type of a non-editable field cannot change")
)
