package calendar

import (
	"context"
	"testing"
	"time"

	"github.com/gdg-garage/event-tickets/internal/clock"
	"github.com/gdg-garage/event-tickets/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Event{}, &models.EventDate{}))
	return db
}

func TestController_CurrentDate(t *testing.T) {
	db := setupDB(t)
	now := time.Date(2026, 5, 10, 15, 0, 0, 0, time.UTC)

	event := models.Event{Title: "Fest", URLSegment: "fest"}
	require.NoError(t, db.Create(&event).Error)

	c := NewController(db, &event, clock.NewFixed(now))

	current, err := c.CurrentDate(context.Background())
	require.NoError(t, err)
	assert.Nil(t, current, "no dates means no current date")

	past := models.EventDate{EventID: event.ID, StartDate: now.AddDate(0, 0, -3)}
	later := models.EventDate{EventID: event.ID, StartDate: now.AddDate(0, 1, 0)}
	sooner := models.EventDate{EventID: event.ID, StartDate: now.AddDate(0, 0, 7)}
	require.NoError(t, db.Create(&past).Error)
	require.NoError(t, db.Create(&later).Error)
	require.NoError(t, db.Create(&sooner).Error)

	current, err = c.CurrentDate(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, sooner.ID, current.ID)

	// Earlier today still counts as the current occurrence.
	today := models.EventDate{EventID: event.ID, StartDate: time.Date(2026, 5, 10, 9, 0, 0, 0, time.UTC)}
	require.NoError(t, db.Create(&today).Error)

	current, err = c.CurrentDate(context.Background())
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, today.ID, current.ID)
}

func TestController_Link(t *testing.T) {
	event := models.Event{URLSegment: "summer-fest"}
	c := NewController(nil, &event, nil)
	assert.Equal(t, "/events/summer-fest/checkin", c.Link("checkin"))

	event.URLSegment = ""
	event.ID = 7
	assert.Equal(t, "/events/7/checkin", c.Link("checkin"))
}
