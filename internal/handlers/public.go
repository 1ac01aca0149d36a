package handlers

import (
	"context"

	"github.com/gdg-garage/event-tickets/internal/auth"
	"github.com/gdg-garage/event-tickets/internal/cms"
	"github.com/gdg-garage/event-tickets/internal/models"
	"github.com/gdg-garage/event-tickets/internal/tickets"
	"go.uber.org/zap"
)

// PublicHandler serves what guests see while ordering. No login required.
type PublicHandler struct {
	svc *tickets.Service
	log *zap.Logger
}

func NewPublicHandler(svc *tickets.Service, log *zap.Logger) *PublicHandler {
	return &PublicHandler{svc: svc, log: log}
}

type AttendeeFormOutput struct {
	Body struct {
		Event  string      `json:"event"`
		Fields []cms.Field `json:"fields"`
	}
}

func (h *PublicHandler) HandleAttendeeForm(ctx context.Context, input *EventSegmentInput) (*AttendeeFormOutput, error) {
	event, err := h.svc.FindEventBySegment(ctx, input.Segment)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	fields, err := h.svc.AttendeeForm(ctx, event)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	out := &AttendeeFormOutput{}
	out.Body.Event = event.Title
	out.Body.Fields = nonNil(fields)
	return out, nil
}

type ContentBody struct {
	HTML string `json:"html"`
	Text string `json:"text" doc:"Plain text rendition of html"`
}

func contentBody(content models.HTMLText) ContentBody {
	return ContentBody{HTML: string(content), Text: content.Plain()}
}

type SuccessOutput struct {
	Body ContentBody
}

func (h *PublicHandler) HandleSuccess(ctx context.Context, input *EventSegmentInput) (*SuccessOutput, error) {
	event, err := h.svc.FindEventBySegment(ctx, input.Segment)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	content, err := h.svc.Extend(event).SuccessContent(ctx)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	return &SuccessOutput{Body: contentBody(content)}, nil
}

type MailOutput struct {
	Body struct {
		ContentBody
		Logo models.Image `json:"logo"`
	}
}

func (h *PublicHandler) HandleMail(ctx context.Context, input *EventSegmentInput) (*MailOutput, error) {
	event, err := h.svc.FindEventBySegment(ctx, input.Segment)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	ext := h.svc.Extend(event)
	content, err := ext.MailContent(ctx)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	logo, err := ext.MailLogo(ctx)
	if err != nil {
		return nil, apiError(h.log, err)
	}

	out := &MailOutput{}
	out.Body.ContentBody = contentBody(content)
	out.Body.Logo = logo
	return out, nil
}

type SiteConfigHandler struct {
	svc         *tickets.Service
	authHandler *auth.AuthHandler
	log         *zap.Logger
}

func NewSiteConfigHandler(svc *tickets.Service, authHandler *auth.AuthHandler, log *zap.Logger) *SiteConfigHandler {
	return &SiteConfigHandler{svc: svc, authHandler: authHandler, log: log}
}

type SiteConfigInput struct {
	auth.AuthInput
}

type SiteConfigOutput struct {
	Body models.SiteConfig
}

func (h *SiteConfigHandler) HandleGet(ctx context.Context, input *SiteConfigInput) (*SiteConfigOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	sc, err := h.svc.SiteConfig(ctx)
	if err != nil {
		return nil, apiError(h.log, err)
	}
	return &SiteConfigOutput{Body: *sc}, nil
}

type UpdateSiteConfigInput struct {
	auth.AuthInput
	Body struct {
		Title              string       `json:"title,omitempty"`
		SuccessMessage     string       `json:"success_message,omitempty"`
		SuccessMessageMail string       `json:"success_message_mail,omitempty"`
		TicketLogo         models.Image `json:"ticket_logo,omitempty"`
	}
}

func (h *SiteConfigHandler) HandleUpdate(ctx context.Context, input *UpdateSiteConfigInput) (*SiteConfigOutput, error) {
	if _, err := h.authHandler.Authorize(ctx, input.AuthInput); err != nil {
		return nil, err
	}
	sc, err := h.svc.SiteConfig(ctx)
	if err != nil {
		return nil, apiError(h.log, err)
	}

	sc.Title = input.Body.Title
	sc.SuccessMessage = models.HTMLText(input.Body.SuccessMessage)
	sc.SuccessMessageMail = models.HTMLText(input.Body.SuccessMessageMail)
	sc.TicketLogo = input.Body.TicketLogo
	if err := h.svc.SaveSiteConfig(ctx, sc); err != nil {
		return nil, apiError(h.log, err)
	}
	return &SiteConfigOutput{Body: *sc}, nil
}
