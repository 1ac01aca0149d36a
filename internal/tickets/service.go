package tickets

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gdg-garage/event-tickets/internal/clock"
	"github.com/gdg-garage/event-tickets/internal/cms"
	"github.com/gdg-garage/event-tickets/internal/config"
	"github.com/gdg-garage/event-tickets/internal/models"
	"github.com/gdg-garage/event-tickets/internal/userfields"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Service struct {
	db            *gorm.DB
	log           *zap.Logger
	clock         clock.Clock
	defaultFields []config.DefaultField
}

func NewService(db *gorm.DB, log *zap.Logger, c clock.Clock, defaultFields []config.DefaultField) *Service {
	if log == nil {
		log = zap.NewNop()
	}
	if c == nil {
		c = clock.NewSystem()
	}
	return &Service{db: db, log: log, clock: c, defaultFields: defaultFields}
}

// Extend binds the ticketing extension to event.
func (s *Service) Extend(event *models.Event) *Extension {
	return s.extend(s.db, event)
}

func (s *Service) extend(db *gorm.DB, event *models.Event) *Extension {
	return &Extension{owner: event, db: db, clock: s.clock, defaultFields: s.defaultFields}
}

func (s *Service) ListEvents(ctx context.Context) ([]models.Event, error) {
	var events []models.Event
	err := s.db.WithContext(ctx).Preload("DateTimes").Order("id").Find(&events).Error
	return events, err
}

func (s *Service) FindEvent(ctx context.Context, id uint) (*models.Event, error) {
	var event models.Event
	if err := s.db.WithContext(ctx).Preload("DateTimes").First(&event, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrEventNotFound
		}
		return nil, fmt.Errorf("find event %d: %w", id, err)
	}
	return &event, nil
}

// FindEventBySegment resolves an event from its URL segment, accepting the
// numeric ID for events without one.
func (s *Service) FindEventBySegment(ctx context.Context, segment string) (*models.Event, error) {
	var event models.Event
	err := s.db.WithContext(ctx).Preload("DateTimes").Where("url_segment = ?", segment).First(&event).Error
	if err == nil {
		return &event, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("find event %q: %w", segment, err)
	}
	id, convErr := strconv.ParseUint(segment, 10, 64)
	if convErr != nil {
		return nil, ErrEventNotFound
	}
	return s.FindEvent(ctx, uint(id))
}

// SaveEvent writes the event and runs its after-write hooks in the same
// transaction.
func (s *Service) SaveEvent(ctx context.Context, event *models.Event) error {
	return s.SaveEventWithDates(ctx, event, nil)
}

// SaveEventWithDates is SaveEvent that also replaces the occurrences of the
// event, all in one transaction. Nil dates leave the stored ones untouched.
func (s *Service) SaveEventWithDates(ctx context.Context, event *models.Event, dates []models.EventDate) error {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("DateTimes", "Tickets", "Reservations", "Attendees", "WaitingList", "Fields").Save(event).Error; err != nil {
			return err
		}
		if err := s.extend(tx, event).OnAfterWrite(ctx); err != nil {
			return err
		}
		if dates == nil {
			return nil
		}
		return replaceDates(tx, event, dates)
	})
	if err != nil {
		return fmt.Errorf("save event: %w", err)
	}
	s.log.Info("event saved", zap.Uint("event_id", event.ID), zap.String("segment", event.Segment()))
	return nil
}

// ReplaceDates swaps all occurrences of the event for dates.
func (s *Service) ReplaceDates(ctx context.Context, event *models.Event, dates []models.EventDate) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return replaceDates(tx, event, dates)
	})
}

func replaceDates(tx *gorm.DB, event *models.Event, dates []models.EventDate) error {
	if err := tx.Where("event_id = ?", event.ID).Delete(&models.EventDate{}).Error; err != nil {
		return err
	}
	for i := range dates {
		dates[i].ID = 0
		dates[i].EventID = event.ID
	}
	if len(dates) > 0 {
		if err := tx.Create(&dates).Error; err != nil {
			return err
		}
	}
	event.DateTimes = dates
	return nil
}

func (s *Service) AddTicket(ctx context.Context, event *models.Event, ticket *models.Ticket) error {
	ok, err := s.Extend(event).CanCreateTickets(ctx)
	if err != nil {
		return err
	}
	if !ok {
		return ErrTicketsClosed
	}
	ticket.EventID = event.ID
	if err := s.db.WithContext(ctx).Create(ticket).Error; err != nil {
		return fmt.Errorf("create ticket: %w", err)
	}
	return nil
}

// AddAttendee validates the attendee's values against the event's fields
// and stores it with a fresh ticket code.
func (s *Service) AddAttendee(ctx context.Context, event *models.Event, attendee *models.Attendee) error {
	fields, err := s.Extend(event).Fields(ctx)
	if err != nil {
		return err
	}

	var errs []error
	for i := range fields {
		f := &fields[i]
		if err := userfields.Lookup(f.FieldType).Validate(f, attendee.Values[f.FieldName]); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidAttendee, errors.Join(errs...))
	}

	attendee.EventID = event.ID
	attendee.TicketCode = uuid.NewString()
	if attendee.Title == "" {
		attendee.Title = strings.TrimSpace(attendee.Values["FirstName"] + " " + attendee.Values["Surname"])
	}
	if attendee.Email == "" {
		attendee.Email = attendee.Values["Email"]
	}

	if err := s.db.WithContext(ctx).Create(attendee).Error; err != nil {
		return fmt.Errorf("create attendee: %w", err)
	}
	s.log.Info("attendee added",
		zap.Uint("event_id", event.ID),
		zap.Uint("attendee_id", attendee.ID),
	)
	return nil
}

func (s *Service) FindAttendee(ctx context.Context, event *models.Event, id uint) (*models.Attendee, error) {
	var attendee models.Attendee
	err := s.db.WithContext(ctx).Where("event_id = ?", event.ID).First(&attendee, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAttendeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find attendee %d: %w", id, err)
	}
	return &attendee, nil
}

// CheckIn marks the attendee holding code as present.
func (s *Service) CheckIn(ctx context.Context, event *models.Event, code string) (*models.Attendee, error) {
	var attendee models.Attendee
	err := s.db.WithContext(ctx).Where("event_id = ? AND ticket_code = ?", event.ID, code).First(&attendee).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrAttendeeNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find ticket code: %w", err)
	}
	if attendee.CheckedIn {
		return &attendee, ErrAlreadyCheckedIn
	}

	now := s.clock.Now()
	res := s.db.WithContext(ctx).Model(&models.Attendee{}).
		Where("id = ? AND checked_in = ?", attendee.ID, false).
		Updates(map[string]any{"checked_in": true, "checked_in_at": now})
	if res.Error != nil {
		return nil, fmt.Errorf("check in: %w", res.Error)
	}
	if res.RowsAffected == 0 {
		return &attendee, ErrAlreadyCheckedIn
	}

	attendee.CheckedIn = true
	attendee.CheckedInAt = &now
	s.log.Info("attendee checked in", zap.Uint("event_id", event.ID), zap.Uint("attendee_id", attendee.ID))
	return &attendee, nil
}

type CheckInOverview struct {
	Attendees []models.Attendee `json:"attendees"`
	Total     int               `json:"total"`
	CheckedIn int               `json:"checked_in"`
}

func (s *Service) CheckInOverview(ctx context.Context, event *models.Event) (*CheckInOverview, error) {
	attendees, err := s.Extend(event).Attendees(ctx)
	if err != nil {
		return nil, err
	}
	overview := &CheckInOverview{Attendees: attendees, Total: len(attendees)}
	for _, a := range attendees {
		if a.CheckedIn {
			overview.CheckedIn++
		}
	}
	return overview, nil
}

func (s *Service) FindField(ctx context.Context, id uint) (*models.AttendeeExtraField, error) {
	var field models.AttendeeExtraField
	err := s.db.WithContext(ctx).First(&field, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrFieldNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find field %d: %w", id, err)
	}
	return &field, nil
}

// AddField appends a custom attendee field to the event.
func (s *Service) AddField(ctx context.Context, event *models.Event, field *models.AttendeeExtraField) error {
	if !userfields.Known(field.FieldType) {
		return fmt.Errorf("%w: %q", ErrUnknownFieldType, field.FieldType)
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkFieldName(tx, event.ID, field); err != nil {
			return err
		}

		var maxSort int
		if err := tx.Model(&models.AttendeeExtraField{}).
			Where("event_id = ?", event.ID).
			Select("COALESCE(MAX(sort), 0)").
			Scan(&maxSort).Error; err != nil {
			return err
		}

		field.EventID = event.ID
		if field.Sort == 0 {
			field.Sort = maxSort + 1
		}
		return tx.Create(field).Error
	})
}

func (s *Service) SaveField(ctx context.Context, field *models.AttendeeExtraField) error {
	if !userfields.Known(field.FieldType) {
		return fmt.Errorf("%w: %q", ErrUnknownFieldType, field.FieldType)
	}
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := checkFieldName(tx, field.EventID, field); err != nil {
			return err
		}
		return tx.Save(field).Error
	})
}

// checkFieldName fails when another field of the event already uses the
// name of field. Attendee values are keyed by field name.
func checkFieldName(tx *gorm.DB, eventID uint, field *models.AttendeeExtraField) error {
	var taken int64
	if err := tx.Model(&models.AttendeeExtraField{}).
		Where("event_id = ? AND field_name = ? AND id <> ?", eventID, field.FieldName, field.ID).
		Count(&taken).Error; err != nil {
		return err
	}
	if taken > 0 {
		return fmt.Errorf("%w: %q", ErrDuplicateFieldName, field.FieldName)
	}
	return nil
}

// AttendeeForm renders the controls collecting each attendee field of the
// event, in display order.
func (s *Service) AttendeeForm(ctx context.Context, event *models.Event) ([]cms.Field, error) {
	fields, err := s.Extend(event).Fields(ctx)
	if err != nil {
		return nil, err
	}
	controls := make([]cms.Field, 0, len(fields))
	for i := range fields {
		f := &fields[i]
		defaultValue, _ := f.Property("DefaultValue").(string)
		controls = append(controls, userfields.Lookup(f.FieldType).CreateField(f, f.FieldName, defaultValue))
	}
	return controls, nil
}

func (s *Service) SiteConfig(ctx context.Context) (*models.SiteConfig, error) {
	return models.CurrentSiteConfig(s.db.WithContext(ctx))
}

func (s *Service) SaveSiteConfig(ctx context.Context, sc *models.SiteConfig) error {
	return s.db.WithContext(ctx).Save(sc).Error
}
