package handlers

import (
	"context"
	"time"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/event-tickets/internal/auth"
	"github.com/gdg-garage/event-tickets/internal/cms"
	"github.com/gdg-garage/event-tickets/internal/models"
	"github.com/gdg-garage/event-tickets/internal/tickets"
	"go.uber.org/zap"
)

type EventHandler struct {
	svc         *tickets.Service
	authHandler *auth.AuthHandler
	log         *zap.Logger
}

func NewEventHandler(svc *tickets.Service, authHandler *auth.AuthHandler, log *zap.Logger) *EventHandler {
	return &EventHandler{svc: svc, authHandler: authHandler, log: log}
}

type EventDateBody struct {
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	AllDay    bool      `json:"all_day,omitempty"`
}

type EventBody struct {
	Title              string          `json:"title" minLength:"1"`
	URLSegment         string          `json:"url_segment,omitempty"`
	Capacity           int             `json:"capacity,omitempty" doc:"Maximum number of attendees"`
	OrderMin           int             `json:"order_min,omitempty" doc:"Minimum amount of tickets required per reservation"`
	OrderMax           int             `json:"order_max,omitempty" doc:"Maximum amount of tickets allowed per reservation"`
	SuccessMessage     string          `json:"success_message,omitempty"`
	SuccessMessageMail string          `json:"success_message_mail,omitempty"`
	Dates              []EventDateBody `json:"dates,omitempty" doc:"Replaces all occurrences when present"`
}

func (b EventBody) apply(event *models.Event) {
	event.Title = b.Title
	event.URLSegment = b.URLSegment
	event.Capacity = b.Capacity
	event.OrderMin = b.OrderMin
	event.OrderMax = b.OrderMax
	event.SuccessMessage = models.HTMLText(b.SuccessMessage)
	event.SuccessMessageMail = models.HTMLText(b.SuccessMessageMail)
}

// dates is nil when the body carries no dates, which keeps the stored ones.
func (b EventBody) dates() []models.EventDate {
	if b.Dates == nil {
		return nil
	}
	dates := make([]models.EventDate, 0, len(b.Dates))
	for _, d := range b.Dates {
		dates = append(dates, models.EventDate{StartDate: d.StartDate, EndDate: d.EndDate, AllDay: d.AllDay})
	}
	return dates
}

type EventResponse struct {
	ID                 uint               `json:"id"`
	Title              string             `json:"title"`
	URLSegment         string             `json:"url_segment"`
	Capacity           int                `json:"capacity"`
	OrderMin           int                `json:"order_min"`
	OrderMax           int                `json:"order_max"`
	SuccessMessage     string             `json:"success_message"`
	SuccessMessageMail string             `json:"success_message_mail"`
	Dates              []models.EventDate `json:"dates"`
	Availability       int                `json:"availability" doc:"Capacity left, negative when overbooked"`
	CanCreateTickets   bool               `json:"can_create_tickets"`
	CheckInLink        string             `json:"check_in_link"`
}

func (h *EventHandler) describe(ctx context.Context, event *models.Event) (EventResponse, error) {
	ext := h.svc.Extend(event)
	availability, err := ext.Availability(ctx)
	if err != nil {
		return EventResponse{}, err
	}
	canCreate, err := ext.CanCreateTickets(ctx)
	if err != nil {
		return EventResponse{}, err
	}
	dates, err := ext.Controller().Dates(ctx)
	if err != nil {
		return EventResponse{}, err
	}
	return EventResponse{
		ID:                 event.ID,
		Title:              event.Title,
		URLSegment:         event.URLSegment,
		Capacity:           event.Capacity,
		OrderMin:           event.OrderMin,
		OrderMax:           event.OrderMax,
		SuccessMessage:     string(event.SuccessMessage),
		SuccessMessageMail: string(event.SuccessMessageMail),
		Dates:              dates,
		Availability:       availability,
		CanCreateTickets:   canCreate,
		CheckInLink:        ext.Controller().Link("checkin"),
	}, nil
}

func validationError(err error) error {
	return huma.Error422UnprocessableEntity("Invalid event", err)
}

type ListEventsInput struct {
	auth.AuthInput
}

type ListEventsOutput struct {
	Body []EventResponse
}

func (h *EventHandler) HandleList(ctx context.Context, input *ListEventsInput) (*ListEventsOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}

	events, err := h.svc.ListEvents(ctx)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	out := &ListEventsOutput{Body: make([]EventResponse, 0, len(events))}
	for i := range events {
		resp, err := h.describe(ctx, &events[i])
		if err != nil {
			return nil, apiError(h.log, err)
		}
		out.Body = append(out.Body, resp)
	}
	return out, nil
}

type CreateEventInput struct {
	auth.AuthInput
	Body EventBody
}

type EventOutput struct {
	Body EventResponse
}

func (h *EventHandler) HandleCreate(ctx context.Context, input *CreateEventInput) (*EventOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}

	event := &models.Event{}
	input.Body.apply(event)
	event.ApplyDefaults()
	if err := event.Validate(); err != nil {
		return nil, validationError(err)
	}

	if err := h.svc.SaveEventWithDates(ctx, event, input.Body.dates()); err != nil {
		return nil, apiError(h.log, err)
	}
	h.log.Info("event created", zap.Uint("event_id", event.ID), zap.Uint("admin_user_id", userID))

	resp, err := h.describe(ctx, event)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	return &EventOutput{Body: resp}, nil
}

type EventIDInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

func (h *EventHandler) HandleGet(ctx context.Context, input *EventIDInput) (*EventOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	event, err := h.svc.FindEvent(ctx, input.ID)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	resp, err := h.describe(ctx, event)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	return &EventOutput{Body: resp}, nil
}

type UpdateEventInput struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body EventBody
}

func (h *EventHandler) HandleUpdate(ctx context.Context, input *UpdateEventInput) (*EventOutput, error) {
	userID, err := h.authHandler.Authorize(ctx, input.AuthInput)
	if err != nil {
		return nil, err
	}
	event, err := h.svc.FindEvent(ctx, input.ID)
	if err != nil {
		return nil, apiError(h.log, err)
	}

	input.Body.apply(event)
	if err := event.Validate(); err != nil {
		return nil, validationError(err)
	}
	if err := h.svc.SaveEventWithDates(ctx, event, input.Body.dates()); err != nil {
		return nil, apiError(h.log, err)
	}
	h.log.Info("event updated", zap.Uint("event_id", event.ID), zap.Uint("admin_user_id", userID))

	resp, err := h.describe(ctx, event)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	return &EventOutput{Body: resp}, nil
}

type FieldListOutput struct {
	Body *cms.FieldList
}

// HandleCMSFields returns the editing panel of the event.
func (h *EventHandler) HandleCMSFields(ctx context.Context, input *EventIDInput) (*FieldListOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	event, err := h.svc.FindEvent(ctx, input.ID)
	if err != nil {
		return nil, apiError(h.log, err)
	}

	fields := cms.NewFieldList()
	if err := h.svc.Extend(event).UpdateCMSFields(ctx, fields); err != nil {
		return nil, apiError(h.log, err)
	}
	return &FieldListOutput{Body: fields}, nil
}

func (h *EventHandler) HandleCMSActions(ctx context.Context, input *EventIDInput) (*FieldListOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	event, err := h.svc.FindEvent(ctx, input.ID)
	if err != nil {
		return nil, apiError(h.log, err)
	}

	actions := cms.NewFieldList()
	if err := h.svc.Extend(event).UpdateCMSActions(ctx, actions); err != nil {
		return nil, apiError(h.log, err)
	}
	return &FieldListOutput{Body: actions}, nil
}

type ListTicketsOutput struct {
	Body []models.Ticket
}

func (h *EventHandler) HandleListTickets(ctx context.Context, input *EventIDInput) (*ListTicketsOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	event, err := h.svc.FindEvent(ctx, input.ID)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	ticketList, err := h.svc.Extend(event).Tickets(ctx)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	return &ListTicketsOutput{Body: nonNil(ticketList)}, nil
}

type CreateTicketInput struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body struct {
		Title             string     `json:"title" minLength:"1"`
		Price             int64      `json:"price" minimum:"0" doc:"Price in cents"`
		AvailableFromDate *time.Time `json:"available_from_date,omitempty"`
		AvailableTillDate *time.Time `json:"available_till_date,omitempty"`
		Sort              int        `json:"sort,omitempty"`
	}
}

type TicketOutput struct {
	Body models.Ticket
}

func (h *EventHandler) HandleCreateTicket(ctx context.Context, input *CreateTicketInput) (*TicketOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	event, err := h.svc.FindEvent(ctx, input.ID)
	if err != nil {
		return nil, apiError(h.log, err)
	}

	ticket := models.Ticket{
		Title:             input.Body.Title,
		Price:             input.Body.Price,
		AvailableFromDate: input.Body.AvailableFromDate,
		AvailableTillDate: input.Body.AvailableTillDate,
		Sort:              input.Body.Sort,
	}
	if err := h.svc.AddTicket(ctx, event, &ticket); err != nil {
		return nil, apiError(h.log, err)
	}
	return &TicketOutput{Body: ticket}, nil
}

type ListReservationsOutput struct {
	Body []models.Reservation
}

func (h *EventHandler) HandleListReservations(ctx context.Context, input *EventIDInput) (*ListReservationsOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	event, err := h.svc.FindEvent(ctx, input.ID)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	reservations, err := h.svc.Extend(event).Reservations(ctx)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	return &ListReservationsOutput{Body: nonNil(reservations)}, nil
}

type ListWaitingListOutput struct {
	Body []models.WaitingListRegistration
}

func (h *EventHandler) HandleListWaitingList(ctx context.Context, input *EventIDInput) (*ListWaitingListOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	event, err := h.svc.FindEvent(ctx, input.ID)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	waitingList, err := h.svc.Extend(event).WaitingList(ctx)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	return &ListWaitingListOutput{Body: nonNil(waitingList)}, nil
}

// nonNil keeps empty relations serialised as [] rather than null.
func nonNil[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
