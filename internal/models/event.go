package models

import (
	"errors"
	"strconv"
	"time"

	"gorm.io/gorm"
)

const (
	DefaultCapacity = 50
	DefaultOrderMin = 1
	DefaultOrderMax = 5
)

var (
	ErrOrderBounds      = errors.New("order minimum exceeds order maximum")
	ErrNegativeCapacity = errors.New("capacity cannot be negative")
	ErrNegativeOrderMin = errors.New("order minimum cannot be negative")
)

// Event is a calendar event extended with ticketing settings.
type Event struct {
	gorm.Model
	Title              string   `json:"title"`
	URLSegment         string   `json:"url_segment" gorm:"index"`
	Capacity           int      `json:"capacity"`
	OrderMin           int      `json:"order_min"`
	OrderMax           int      `json:"order_max"`
	SuccessMessage     HTMLText `json:"success_message"`
	SuccessMessageMail HTMLText `json:"success_message_mail"`

	DateTimes    []EventDate               `json:"date_times,omitempty"`
	Tickets      []Ticket                  `json:"-"`
	Reservations []Reservation             `json:"-"`
	Attendees    []Attendee                `json:"-"`
	WaitingList  []WaitingListRegistration `json:"-"`
	Fields       []AttendeeExtraField      `json:"-"`
}

// EventDate is one occurrence of an event.
type EventDate struct {
	gorm.Model
	EventID   uint      `json:"event_id" gorm:"index"`
	StartDate time.Time `json:"start_date"`
	EndDate   time.Time `json:"end_date"`
	AllDay    bool      `json:"all_day"`
}

// ApplyDefaults fills unset ticketing settings on a new record.
func (e *Event) ApplyDefaults() {
	if e.Capacity == 0 {
		e.Capacity = DefaultCapacity
	}
	if e.OrderMin == 0 {
		e.OrderMin = DefaultOrderMin
	}
	if e.OrderMax == 0 {
		e.OrderMax = DefaultOrderMax
	}
}

func (e *Event) BeforeCreate(tx *gorm.DB) error {
	e.ApplyDefaults()
	return nil
}

func (e *Event) Validate() error {
	var errs []error
	if e.Capacity < 0 {
		errs = append(errs, ErrNegativeCapacity)
	}
	if e.OrderMin < 0 {
		errs = append(errs, ErrNegativeOrderMin)
	}
	if e.OrderMin > e.OrderMax {
		errs = append(errs, ErrOrderBounds)
	}
	return errors.Join(errs...)
}

// Segment is the URL segment used in links, falling back to the ID.
func (e *Event) Segment() string {
	if e.URLSegment != "" {
		return e.URLSegment
	}
	return strconv.FormatUint(uint64(e.ID), 10)
}
