package handlers

import (
	"context"

	"github.com/danielgtaylor/huma/v2"
	"github.com/gdg-garage/event-tickets/internal/auth"
	"github.com/gdg-garage/event-tickets/internal/models"
	"github.com/gdg-garage/event-tickets/internal/tickets"
	"github.com/gdg-garage/event-tickets/internal/userfields"
	"go.uber.org/zap"
)

type FieldHandler struct {
	svc         *tickets.Service
	authHandler *auth.AuthHandler
	log         *zap.Logger
}

func NewFieldHandler(svc *tickets.Service, authHandler *auth.AuthHandler, log *zap.Logger) *FieldHandler {
	return &FieldHandler{svc: svc, authHandler: authHandler, log: log}
}

type FieldBody struct {
	Title      string         `json:"title" minLength:"1"`
	FieldName  string         `json:"field_name" minLength:"1" pattern:"^[A-Za-z][A-Za-z0-9_]*$"`
	FieldType  string         `json:"field_type" enum:"UserTextField,UserEmailField,UserCheckboxField,UserDateField"`
	Required   bool           `json:"required,omitempty"`
	Editable   bool           `json:"editable,omitempty"`
	Sort       int            `json:"sort,omitempty"`
	MinDate    string         `json:"min_date,omitempty" doc:"Earliest accepted date (YYYY-MM-DD), date fields only"`
	MaxDate    string         `json:"max_date,omitempty" doc:"Latest accepted date (YYYY-MM-DD), date fields only"`
	Properties map[string]any `json:"properties,omitempty"`
}

func (b FieldBody) apply(f *models.AttendeeExtraField) error {
	f.Title = b.Title
	f.FieldName = b.FieldName
	f.FieldType = b.FieldType
	f.Required = b.Required
	f.Editable = b.Editable
	f.Sort = b.Sort
	f.Properties = b.Properties
	if err := f.SetField("MinDate", b.MinDate); err != nil {
		return err
	}
	return f.SetField("MaxDate", b.MaxDate)
}

type ListFieldsOutput struct {
	Body []models.AttendeeExtraField
}

func (h *FieldHandler) HandleList(ctx context.Context, input *EventIDInput) (*ListFieldsOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	event, err := h.svc.FindEvent(ctx, input.ID)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	fields, err := h.svc.Extend(event).Fields(ctx)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	return &ListFieldsOutput{Body: nonNil(fields)}, nil
}

type CreateFieldInput struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body FieldBody
}

type FieldOutput struct {
	Body models.AttendeeExtraField
}

func (h *FieldHandler) HandleCreate(ctx context.Context, input *CreateFieldInput) (*FieldOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	event, err := h.svc.FindEvent(ctx, input.ID)
	if err != nil {
		return nil, apiError(h.log, err)
	}

	var field models.AttendeeExtraField
	if err := input.Body.apply(&field); err != nil {
		return nil, huma.Error422UnprocessableEntity("Invalid field", err)
	}
	if err := h.svc.AddField(ctx, event, &field); err != nil {
		return nil, apiError(h.log, err)
	}
	return &FieldOutput{Body: field}, nil
}

type UpdateFieldInput struct {
	auth.AuthInput
	ID   uint `path:"id"`
	Body FieldBody
}

func (h *FieldHandler) HandleUpdate(ctx context.Context, input *UpdateFieldInput) (*FieldOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	field, err := h.svc.FindField(ctx, input.ID)
	if err != nil {
		return nil, apiError(h.log, err)
	}

	// Non-editable fields keep their name and type; attendee values are
	// stored under them.
	if !field.Editable && (input.Body.FieldName != field.FieldName || input.Body.FieldType != field.FieldType) {
		return nil, apiError(h.log, tickets.ErrFieldLocked)
	}
	sort, editable := field.Sort, field.Editable
	if err := input.Body.apply(field); err != nil {
		return nil, huma.Error422UnprocessableEntity("Invalid field", err)
	}
	if input.Body.Sort == 0 {
		field.Sort = sort
	}
	if !editable {
		field.Editable = false
	}
	if err := h.svc.SaveField(ctx, field); err != nil {
		return nil, apiError(h.log, err)
	}
	return &FieldOutput{Body: *field}, nil
}

type FieldIDInput struct {
	auth.AuthInput
	ID uint `path:"id"`
}

// HandleCMSFields returns the admin form of a single attendee field. Date
// fields get an extra validation tab.
func (h *FieldHandler) HandleCMSFields(ctx context.Context, input *FieldIDInput) (*FieldListOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	field, err := h.svc.FindField(ctx, input.ID)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	return &FieldListOutput{Body: userfields.Lookup(field.FieldType).CMSFields(field)}, nil
}
