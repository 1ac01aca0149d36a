// Package calendar serves calendar events and resolves which occurrence of
// an event is current.
package calendar

import (
	"context"
	"path"
	"sort"
	"time"

	"github.com/gdg-garage/event-tickets/internal/clock"
	"github.com/gdg-garage/event-tickets/internal/models"
	"gorm.io/gorm"
)

// Controller is bound to a single event record.
type Controller struct {
	db    *gorm.DB
	event *models.Event
	clock clock.Clock
}

func NewController(db *gorm.DB, event *models.Event, c clock.Clock) *Controller {
	if c == nil {
		c = clock.NewSystem()
	}
	return &Controller{db: db, event: event, clock: c}
}

func (c *Controller) Event() *models.Event {
	return c.event
}

// Dates returns all occurrences of the event ordered by start.
func (c *Controller) Dates(ctx context.Context) ([]models.EventDate, error) {
	var dates []models.EventDate
	if err := c.db.WithContext(ctx).Where("event_id = ?", c.event.ID).Find(&dates).Error; err != nil {
		return nil, err
	}
	sort.SliceStable(dates, func(i, j int) bool {
		return dates[i].StartDate.Before(dates[j].StartDate)
	})
	return dates, nil
}

// CurrentDate returns the first occurrence starting today or later, or nil
// when the event has no such occurrence.
func (c *Controller) CurrentDate(ctx context.Context) (*models.EventDate, error) {
	dates, err := c.Dates(ctx)
	if err != nil {
		return nil, err
	}
	now := c.clock.Now()
	y, m, d := now.Date()
	today := time.Date(y, m, d, 0, 0, 0, 0, now.Location())
	for i := range dates {
		if !dates[i].StartDate.Before(today) {
			return &dates[i], nil
		}
	}
	return nil, nil
}

// Link returns the URL of an action on the event page.
func (c *Controller) Link(action string) string {
	return path.Join("/events", c.event.Segment(), action)
}
