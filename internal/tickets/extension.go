package tickets

import (
	"context"
	"sort"

	"github.com/gdg-garage/event-tickets/internal/calendar"
	"github.com/gdg-garage/event-tickets/internal/clock"
	"github.com/gdg-garage/event-tickets/internal/cms"
	"github.com/gdg-garage/event-tickets/internal/config"
	"github.com/gdg-garage/event-tickets/internal/i18n"
	"github.com/gdg-garage/event-tickets/internal/models"
	"gorm.io/gorm"
)

// Extension adds ticketing behaviour to one event record.
type Extension struct {
	owner         *models.Event
	db            *gorm.DB
	clock         clock.Clock
	defaultFields []config.DefaultField
	controller    *calendar.Controller
}

func (e *Extension) Owner() *models.Event {
	return e.owner
}

// Controller returns the calendar controller of the event, creating it on
// first use.
func (e *Extension) Controller() *calendar.Controller {
	if e.controller == nil {
		e.controller = calendar.NewController(e.db, e.owner, e.clock)
	}
	return e.controller
}

// UpdateCMSFields adds the ticketing tabs to the event's editing panel.
func (e *Extension) UpdateCMSFields(ctx context.Context, fields *cms.FieldList) error {
	canCreate, err := e.CanCreateTickets(ctx)
	if err != nil {
		return err
	}

	// Past events lose the add button on every grid below: tickets,
	// reservations, attendees and waiting list alike.
	gridConfig := cms.NewTicketsGridConfig(canCreate)

	tickets, err := e.Tickets(ctx)
	if err != nil {
		return err
	}

	capacity := cms.NewNumericField("Capacity", i18n.T("TicketExtension.Capacity", "Capacity"))
	capacity.Value = e.owner.Capacity
	orderMin := cms.NewNumericField("OrderMin", i18n.T("TicketExtension.OrderMin", "Minimum amount of tickets required per reservation"))
	orderMin.Value = e.owner.OrderMin
	orderMax := cms.NewNumericField("OrderMax", i18n.T("TicketExtension.OrderMax", "Maximum amount of tickets allowed per reservation"))
	orderMax.Value = e.owner.OrderMax
	successMessage := cms.NewHTMLEditorField("SuccessMessage", i18n.T("TicketExtension.SuccessMessage", "Success message")).SetRows(4)
	successMessage.Value = string(e.owner.SuccessMessage)
	mailMessage := cms.NewHTMLEditorField("SuccessMessageMail", i18n.T("TicketExtension.MailMessage", "Mail message")).SetRows(4)
	mailMessage.Value = string(e.owner.SuccessMessageMail)

	ticketLabel := i18n.T("TicketExtension.Tickets", "Tickets")
	fields.AddFieldsToTab("Root."+ticketLabel,
		cms.NewGridField("Tickets", ticketLabel, tickets, gridConfig),
		capacity,
		orderMin,
		orderMax,
		successMessage,
		mailMessage,
	)

	reservations, err := e.Reservations(ctx)
	if err != nil {
		return err
	}
	if len(reservations) > 0 {
		label := i18n.T("TicketExtension.Reservations", "Reservations")
		fields.AddFieldToTab("Root."+label, cms.NewGridField("Reservations", label, reservations, gridConfig))
	}

	attendees, err := e.Attendees(ctx)
	if err != nil {
		return err
	}
	if len(attendees) > 0 {
		label := i18n.T("TicketExtension.GuestList", "GuestList")
		fields.AddFieldToTab("Root."+label, cms.NewGridField("Attendees", label, attendees, gridConfig))
	}

	waitingList, err := e.WaitingList(ctx)
	if err != nil {
		return err
	}
	if len(waitingList) > 0 {
		label := i18n.T("TicketExtension.WaitingList", "WaitingList")
		fields.AddFieldToTab("Root."+label, cms.NewGridField("WaitingList", label, waitingList, gridConfig))
	}

	extraFields, err := e.Fields(ctx)
	if err != nil {
		return err
	}
	extraFieldsLabel := i18n.T("TicketExtension.ExtraFields", "Attendee fields")
	fields.AddFieldToTab("Root."+extraFieldsLabel,
		cms.NewGridField("Fields", extraFieldsLabel, extraFields, cms.NewFieldsGridConfig()))

	return nil
}

// UpdateCMSActions adds the check-in button once there are attendees to
// check in.
func (e *Extension) UpdateCMSActions(ctx context.Context, actions *cms.FieldList) error {
	hasAttendees, err := e.exists(ctx, &models.Attendee{})
	if err != nil {
		return err
	}
	if !hasAttendees {
		return nil
	}

	checkIn := cms.NewLinkAction("StartCheckIn",
		i18n.T("TicketExtension.StartCheckIn", "Start check in"),
		e.Controller().Link("checkin"),
	).SetTarget("_blank")
	actions.Push(checkIn)
	return nil
}

// OnAfterWrite runs after every save of the event.
func (e *Extension) OnAfterWrite(ctx context.Context) error {
	return e.CreateDefaultFields(ctx)
}

// CreateDefaultFields seeds the configured attendee fields. Nothing happens
// when the event already has any field.
func (e *Extension) CreateDefaultFields(ctx context.Context) error {
	hasFields, err := e.exists(ctx, &models.AttendeeExtraField{})
	if err != nil {
		return err
	}
	if hasFields {
		return nil
	}

	fields := make([]models.AttendeeExtraField, 0, len(e.defaultFields))
	for i, def := range e.defaultFields {
		field := models.AttendeeExtraField{
			EventID:   e.owner.ID,
			Title:     i18n.T("AttendeeField."+def.Name, def.Name),
			FieldName: def.Name,
			Required:  true,
			Editable:  false,
			Sort:      i + 1,
		}

		if len(def.Properties) > 0 {
			properties := make([]string, 0, len(def.Properties))
			for property := range def.Properties {
				properties = append(properties, property)
			}
			sort.Strings(properties)
			for _, property := range properties {
				if err := field.SetField(property, def.Properties[property]); err != nil {
					return err
				}
			}
		} else {
			field.FieldType = def.Type
		}

		fields = append(fields, field)
	}

	if len(fields) == 0 {
		return nil
	}
	return e.db.WithContext(ctx).Create(&fields).Error
}

// CanCreateTickets reports whether the event's current occurrence still
// lies ahead. Events without one cannot get new tickets.
func (e *Extension) CanCreateTickets(ctx context.Context) (bool, error) {
	current, err := e.Controller().CurrentDate(ctx)
	if err != nil {
		return false, err
	}
	if current == nil {
		return false, nil
	}
	return current.StartDate.After(e.clock.Now()), nil
}

// Availability is the capacity left. Overbooked events report a negative
// number.
func (e *Extension) Availability(ctx context.Context) (int, error) {
	count, err := e.count(ctx, &models.Attendee{})
	if err != nil {
		return 0, err
	}
	return e.owner.Capacity - int(count), nil
}

// SuccessContent is shown after a completed order.
func (e *Extension) SuccessContent(ctx context.Context) (models.HTMLText, error) {
	if !e.owner.SuccessMessage.IsEmpty() {
		return e.owner.SuccessMessage, nil
	}
	sc, err := models.CurrentSiteConfig(e.db.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return sc.SuccessMessage, nil
}

// MailContent is the body of the order confirmation mail.
func (e *Extension) MailContent(ctx context.Context) (models.HTMLText, error) {
	if !e.owner.SuccessMessageMail.IsEmpty() {
		return e.owner.SuccessMessageMail, nil
	}
	sc, err := models.CurrentSiteConfig(e.db.WithContext(ctx))
	if err != nil {
		return "", err
	}
	return sc.SuccessMessageMail, nil
}

func (e *Extension) MailLogo(ctx context.Context) (models.Image, error) {
	sc, err := models.CurrentSiteConfig(e.db.WithContext(ctx))
	if err != nil {
		return models.Image{}, err
	}
	return sc.TicketLogo, nil
}

func (e *Extension) Tickets(ctx context.Context) ([]models.Ticket, error) {
	var out []models.Ticket
	err := e.relation(ctx).Order("sort, id").Find(&out).Error
	return out, err
}

func (e *Extension) Reservations(ctx context.Context) ([]models.Reservation, error) {
	var out []models.Reservation
	err := e.relation(ctx).Order("id").Find(&out).Error
	return out, err
}

func (e *Extension) Attendees(ctx context.Context) ([]models.Attendee, error) {
	var out []models.Attendee
	err := e.relation(ctx).Order("id").Find(&out).Error
	return out, err
}

func (e *Extension) WaitingList(ctx context.Context) ([]models.WaitingListRegistration, error) {
	var out []models.WaitingListRegistration
	err := e.relation(ctx).Order("id").Find(&out).Error
	return out, err
}

func (e *Extension) Fields(ctx context.Context) ([]models.AttendeeExtraField, error) {
	var out []models.AttendeeExtraField
	err := e.relation(ctx).Order("sort, id").Find(&out).Error
	return out, err
}

func (e *Extension) relation(ctx context.Context) *gorm.DB {
	return e.db.WithContext(ctx).Where("event_id = ?", e.owner.ID)
}

func (e *Extension) count(ctx context.Context, model any) (int64, error) {
	var n int64
	err := e.relation(ctx).Model(model).Count(&n).Error
	return n, err
}

func (e *Extension) exists(ctx context.Context, model any) (bool, error) {
	n, err := e.count(ctx, model)
	return n > 0, err
}
