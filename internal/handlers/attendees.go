package handlers

import (
	"context"
	"net/url"
	"strings"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/event-tickets/internal/auth"
	"github.com/gdg-garage/event-tickets/internal/models"
	"github.com/gdg-garage/event-tickets/internal/notifier"
	"github.com/gdg-garage/event-tickets/internal/tickets"
	"github.com/skip2/go-qrcode"
	"go.uber.org/zap"
)

const qrCodeSize = 256

type AttendeeHandler struct {
	svc         *tickets.Service
	authHandler *auth.AuthHandler
	notifier    notifier.Notifier
	log         *zap.Logger
	baseURL     string
}

func NewAttendeeHandler(svc *tickets.Service, authHandler *auth.AuthHandler, n notifier.Notifier, log *zap.Logger, baseURL string) *AttendeeHandler {
	return &AttendeeHandler{
		svc:         svc,
		authHandler: authHandler,
		notifier:    n,
		log:         log,
		baseURL:     strings.TrimRight(baseURL, "/"),
	}
}

type ListAttendeesOutput struct {
	Body []models.Attendee
}

func (h *AttendeeHandler) HandleList(ctx context.Context, input *EventIDInput) (*ListAttendeesOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	event, err := h.svc.FindEvent(ctx, input.ID)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	attendees, err := h.svc.Extend(event).Attendees(ctx)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	return &ListAttendeesOutput{Body: nonNil(attendees)}, nil
}

type CreateAttendeeInput struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		TicketID      *uint             `json:"ticket_id,omitempty"`
		ReservationID *uint             `json:"reservation_id,omitempty"`
		Values        map[string]string `json:"values" doc:"Attendee field values keyed by field name"`
	}
}

type AttendeeOutput struct {
	Body models.Attendee
}

func (h *AttendeeHandler) HandleCreate(ctx context.Context, input *CreateAttendeeInput) (*AttendeeOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	event, err := h.svc.FindEvent(ctx, input.ID)
	if err != nil {
		return nil, apiError(h.log, err)
	}

	attendee := models.Attendee{
		TicketID:      input.Body.TicketID,
		ReservationID: input.Body.ReservationID,
		Values:        input.Body.Values,
	}
	if err := h.svc.AddAttendee(ctx, event, &attendee); err != nil {
		return nil, apiError(h.log, err)
	}

	h.notify(ctx, event, attendee)
	return &AttendeeOutput{Body: attendee}, nil
}

// notify announces the attendee to the organisers. Failures only get logged.
func (h *AttendeeHandler) notify(ctx context.Context, event *models.Event, attendee models.Attendee) {
	if h.notifier == nil {
		return
	}
	availability, err := h.svc.Extend(event).Availability(ctx)
	if err != nil {
		h.log.Warn("failed to compute availability", zap.Uint("event_id", event.ID), zap.Error(err))
		return
	}
	if err := h.notifier.NotifyAttendee(*event, attendee, availability); err != nil {
		h.log.Warn("failed to send attendee notification",
			zap.Uint("event_id", event.ID),
			zap.Uint("attendee_id", attendee.ID),
			zap.Error(err),
		)
	}
}

type AttendeeQRInput struct {
	auth.AuthInput
	ID         uint `path:"id"`
	AttendeeID uint `path:"attendeeID"`
}

type QRCodeOutput struct {
	ContentType string `header:"Content-Type"`
	Body        []byte
}

// CheckInURL is the absolute check-in link encoded in an attendee's QR code.
func (h *AttendeeHandler) CheckInURL(event *models.Event, attendee *models.Attendee) string {
	link := h.svc.Extend(event).Controller().Link("checkin")
	return h.baseURL + link + "?code=" + url.QueryEscape(attendee.TicketCode)
}

func (h *AttendeeHandler) HandleQRCode(ctx context.Context, input *AttendeeQRInput) (*QRCodeOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	event, err := h.svc.FindEvent(ctx, input.ID)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	attendee, err := h.svc.FindAttendee(ctx, event, input.AttendeeID)
	if err != nil {
		return nil, apiError(h.log, err)
	}

	png, err := qrcode.Encode(h.CheckInURL(event, attendee), qrcode.Medium, qrCodeSize)
	if err != nil {
		h.log.Error("failed to encode qr code", zap.Uint("attendee_id", attendee.ID), zap.Error(err))
		return nil, huma.Error500InternalServerError("Failed to generate QR code")
	}
	return &QRCodeOutput{ContentType: "image/png", Body: png}, nil
}

type EventSegmentInput struct {
	Segment string `path:"segment"`
}

type CheckInOverviewInput struct {
	auth.AuthInput
	EventSegmentInput
}

type CheckInOverviewOutput struct {
	Body *tickets.CheckInOverview
}

func (h *AttendeeHandler) HandleCheckInOverview(ctx context.Context, input *CheckInOverviewInput) (*CheckInOverviewOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	event, err := h.svc.FindEventBySegment(ctx, input.Segment)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	overview, err := h.svc.CheckInOverview(ctx, event)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	overview.Attendees = nonNil(overview.Attendees)
	return &CheckInOverviewOutput{Body: overview}, nil
}

type CheckInInput struct {
	auth.AuthInput
	EventSegmentInput
	Body struct {
		Code string `json:"code" minLength:"1" doc:"Ticket code read from the attendee's QR code"`
	}
}

func (h *AttendeeHandler) HandleCheckIn(ctx context.Context, input *CheckInInput) (*AttendeeOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}
	event, err := h.svc.FindEventBySegment(ctx, input.Segment)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	attendee, err := h.svc.CheckIn(ctx, event, strings.TrimSpace(input.Body.Code))
	if err != nil {
		return nil, apiError(h.log, err)
	}
	h.log.Debug("ticket scanned", zap.Uint("attendee_id", attendee.ID), zap.Uint("admin_user_id", userID))
	return &AttendeeOutput{Body: *attendee}, nil
}
