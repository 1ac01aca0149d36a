package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func TestEvent_DefaultsOnCreate(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&Event{}))

	event := Event{Title: "Summer Fest"}
	require.NoError(t, db.Create(&event).Error)

	var stored Event
	require.NoError(t, db.First(&stored, event.ID).Error)
	assert.Equal(t, DefaultCapacity, stored.Capacity)
	assert.Equal(t, DefaultOrderMin, stored.OrderMin)
	assert.Equal(t, DefaultOrderMax, stored.OrderMax)

	custom := Event{Title: "Small", Capacity: 10, OrderMax: 2}
	require.NoError(t, db.Create(&custom).Error)
	assert.Equal(t, 10, custom.Capacity)
	assert.Equal(t, 1, custom.OrderMin)
	assert.Equal(t, 2, custom.OrderMax)
}

func TestEvent_Validate(t *testing.T) {
	e := Event{Capacity: 10, OrderMin: 1, OrderMax: 5}
	assert.NoError(t, e.Validate())

	e.OrderMin = 6
	assert.ErrorIs(t, e.Validate(), ErrOrderBounds)

	e = Event{Capacity: -1, OrderMin: -1, OrderMax: 1}
	err := e.Validate()
	assert.ErrorIs(t, err, ErrNegativeCapacity)
	assert.ErrorIs(t, err, ErrNegativeOrderMin)
}

func TestEvent_Segment(t *testing.T) {
	e := Event{URLSegment: "summer-fest"}
	assert.Equal(t, "summer-fest", e.Segment())

	e = Event{}
	e.ID = 42
	assert.Equal(t, "42", e.Segment())
}

func TestCurrentSiteConfig(t *testing.T) {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&SiteConfig{}))

	first, err := CurrentSiteConfig(db)
	require.NoError(t, err)
	second, err := CurrentSiteConfig(db)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	db.Model(&SiteConfig{}).Count(&count)
	assert.Equal(t, int64(1), count)
}
