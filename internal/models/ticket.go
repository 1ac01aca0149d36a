package models

import (
	"time"

	"gorm.io/gorm"
)

type Ticket struct {
	gorm.Model
	EventID           uint       `json:"event_id" gorm:"index"`
	Title             string     `json:"title"`
	Price             int64      `json:"price"`
	AvailableFromDate *time.Time `json:"available_from_date"`
	AvailableTillDate *time.Time `json:"available_till_date"`
	Sort              int        `json:"sort"`
}

type ReservationStatus string

const (
	ReservationCart     ReservationStatus = "CART"
	ReservationPending  ReservationStatus = "PENDING"
	ReservationPaid     ReservationStatus = "PAID"
	ReservationCanceled ReservationStatus = "CANCELED"
)

type Reservation struct {
	gorm.Model
	EventID         uint              `json:"event_id" gorm:"index"`
	Status          ReservationStatus `json:"status"`
	ReservationCode string            `json:"reservation_code" gorm:"index"`
	FullName        string            `json:"full_name"`
	Email           string            `json:"email"`
	Total           int64             `json:"total"`
}

type WaitingListRegistration struct {
	gorm.Model
	EventID   uint   `json:"event_id" gorm:"index"`
	Title     string `json:"title"`
	Email     string `json:"email"`
	Telephone string `json:"telephone"`
}
