package models

import (
	"time"

	"gorm.io/gorm"
)

type Attendee struct {
	gorm.Model
	EventID       uint              `json:"event_id" gorm:"index"`
	TicketID      *uint             `json:"ticket_id"`
	ReservationID *uint             `json:"reservation_id"`
	TicketCode    string            `json:"ticket_code" gorm:"index"`
	Title         string            `json:"title"`
	Email         string            `json:"email"`
	Values        map[string]string `json:"values" gorm:"serializer:json"`
	CheckedIn     bool              `json:"checked_in"`
	CheckedInAt   *time.Time        `json:"checked_in_at"`
}
