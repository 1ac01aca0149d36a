package tickets

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/gdg-garage/event-tickets/internal/cms"
	"github.com/gdg-garage/event-tickets/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestService_SaveEvent(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	event := &models.Event{Title: "Summer Fest", URLSegment: "summer-fest"}
	require.NoError(t, svc.SaveEvent(ctx, event))

	assert.NotZero(t, event.ID)
	assert.Equal(t, models.DefaultCapacity, event.Capacity)
	assert.Equal(t, models.DefaultOrderMin, event.OrderMin)
	assert.Equal(t, models.DefaultOrderMax, event.OrderMax)

	event.Capacity = 120
	require.NoError(t, svc.SaveEvent(ctx, event))

	var count int64
	db.Model(&models.AttendeeExtraField{}).Where("event_id = ?", event.ID).Count(&count)
	assert.Equal(t, int64(3), count, "default fields are seeded once")

	stored, err := svc.FindEventBySegment(ctx, "summer-fest")
	require.NoError(t, err)
	assert.Equal(t, 120, stored.Capacity)
}

func TestService_FindEvent(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	event := createEvent(t, db, models.Event{Title: "No segment"})

	found, err := svc.FindEventBySegment(ctx, "1")
	require.NoError(t, err)
	assert.Equal(t, event.ID, found.ID)

	_, err = svc.FindEvent(ctx, 999)
	assert.ErrorIs(t, err, ErrEventNotFound)

	_, err = svc.FindEventBySegment(ctx, "missing")
	assert.ErrorIs(t, err, ErrEventNotFound)
}

func TestService_ReplaceDates(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	event := createEvent(t, db, models.Event{Title: "Fest"}, now.AddDate(0, 0, -1))

	require.NoError(t, svc.ReplaceDates(ctx, event, []models.EventDate{
		{StartDate: now.AddDate(0, 0, 3)},
		{StartDate: now.AddDate(0, 0, 4)},
	}))

	dates, err := svc.Extend(event).Controller().Dates(ctx)
	require.NoError(t, err)
	require.Len(t, dates, 2)
	assert.True(t, dates[0].StartDate.Equal(now.AddDate(0, 0, 3)))
}

func TestService_SaveEventWithDates(t *testing.T) {
	t.Run("KeepsDatesWhenNil", func(t *testing.T) {
		svc, db := newService(t)
		ctx := context.Background()
		event := createEvent(t, db, models.Event{Title: "Fest"}, now.AddDate(0, 0, 5))

		event.Capacity = 40
		require.NoError(t, svc.SaveEventWithDates(ctx, event, nil))

		dates, err := svc.Extend(event).Controller().Dates(ctx)
		require.NoError(t, err)
		assert.Len(t, dates, 1)
	})

	t.Run("RollsBackWhenDatesFail", func(t *testing.T) {
		svc, db := newService(t)
		ctx := context.Background()
		require.NoError(t, db.Callback().Create().Before("gorm:create").Register("test:reject_dates", func(tx *gorm.DB) {
			if tx.Statement.Table == "event_dates" {
				tx.AddError(errors.New("dates rejected"))
			}
		}))

		event := &models.Event{Title: "Half saved", URLSegment: "half-saved"}
		err := svc.SaveEventWithDates(ctx, event, []models.EventDate{{StartDate: now.AddDate(0, 0, 3)}})
		require.Error(t, err)

		var events, fields int64
		db.Model(&models.Event{}).Count(&events)
		db.Model(&models.AttendeeExtraField{}).Count(&fields)
		assert.Zero(t, events, "the event must not be stored without its dates")
		assert.Zero(t, fields)
	})
}

func TestService_AddTicket(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()

	past := createEvent(t, db, models.Event{Title: "Past"}, now.AddDate(0, 0, -1))
	err := svc.AddTicket(ctx, past, &models.Ticket{Title: "Early bird", Price: 1500})
	assert.ErrorIs(t, err, ErrTicketsClosed)

	future := createEvent(t, db, models.Event{Title: "Future"}, now.AddDate(0, 0, 5))
	ticket := &models.Ticket{Title: "Regular", Price: 2500}
	require.NoError(t, svc.AddTicket(ctx, future, ticket))
	assert.Equal(t, future.ID, ticket.EventID)

	tickets, err := svc.Extend(future).Tickets(ctx)
	require.NoError(t, err)
	assert.Len(t, tickets, 1)
}

func TestService_AddAttendee(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	event := &models.Event{Title: "Fest", URLSegment: "fest"}
	require.NoError(t, svc.SaveEvent(ctx, event))

	t.Run("MissingRequired", func(t *testing.T) {
		err := svc.AddAttendee(ctx, event, &models.Attendee{Values: map[string]string{"FirstName": "Ada"}})
		assert.ErrorIs(t, err, ErrInvalidAttendee)
	})

	t.Run("InvalidEmail", func(t *testing.T) {
		err := svc.AddAttendee(ctx, event, &models.Attendee{Values: map[string]string{
			"FirstName": "Ada", "Surname": "Lovelace", "Email": "nope",
		}})
		assert.ErrorIs(t, err, ErrInvalidAttendee)
	})

	t.Run("Valid", func(t *testing.T) {
		attendee := &models.Attendee{Values: map[string]string{
			"FirstName": "Ada", "Surname": "Lovelace", "Email": "ada@example.com",
		}}
		require.NoError(t, svc.AddAttendee(ctx, event, attendee))

		assert.NotEmpty(t, attendee.TicketCode)
		assert.Equal(t, "Ada Lovelace", attendee.Title)
		assert.Equal(t, "ada@example.com", attendee.Email)

		found, err := svc.FindAttendee(ctx, event, attendee.ID)
		require.NoError(t, err)
		assert.Equal(t, "Lovelace", found.Values["Surname"])
	})
}

func TestService_CheckIn(t *testing.T) {
	svc, db := newService(t)
	ctx := context.Background()
	event := createEvent(t, db, models.Event{Title: "Fest"})
	other := createEvent(t, db, models.Event{Title: "Other"})

	require.NoError(t, db.Create(&models.Attendee{EventID: event.ID, TicketCode: "code-1", Title: "Ada"}).Error)
	require.NoError(t, db.Create(&models.Attendee{EventID: event.ID, TicketCode: "code-2", Title: "Grace"}).Error)

	_, err := svc.CheckIn(ctx, other, "code-1")
	assert.ErrorIs(t, err, ErrAttendeeNotFound, "codes are scoped to their event")

	attendee, err := svc.CheckIn(ctx, event, "code-1")
	require.NoError(t, err)
	assert.True(t, attendee.CheckedIn)
	require.NotNil(t, attendee.CheckedInAt)
	assert.True(t, attendee.CheckedInAt.Equal(now))

	_, err = svc.CheckIn(ctx, event, "code-1")
	assert.ErrorIs(t, err, ErrAlreadyCheckedIn)

	_, err = svc.CheckIn(ctx, event, "unknown")
	assert.ErrorIs(t, err, ErrAttendeeNotFound)

	overview, err := svc.CheckInOverview(ctx, event)
	require.NoError(t, err)
	assert.Equal(t, 2, overview.Total)
	assert.Equal(t, 1, overview.CheckedIn)
}

func TestService_Fields(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	event := &models.Event{Title: "Fest"}
	require.NoError(t, svc.SaveEvent(ctx, event))

	err := svc.AddField(ctx, event, &models.AttendeeExtraField{FieldName: "Shoe", FieldType: "UserShoeField"})
	assert.ErrorIs(t, err, ErrUnknownFieldType)

	err = svc.AddField(ctx, event, &models.AttendeeExtraField{FieldName: "Email", FieldType: "UserTextField"})
	assert.ErrorIs(t, err, ErrDuplicateFieldName)

	maxDate := time.Date(2010, 12, 31, 0, 0, 0, 0, time.UTC)
	birthday := &models.AttendeeExtraField{
		Title:     "Birthday",
		FieldName: "Birthday",
		FieldType: "UserDateField",
		MaxDate:   &maxDate,
	}
	require.NoError(t, svc.AddField(ctx, event, birthday))
	assert.Equal(t, 4, birthday.Sort)

	found, err := svc.FindField(ctx, birthday.ID)
	require.NoError(t, err)
	found.Title = "Date of birth"
	require.NoError(t, svc.SaveField(ctx, found))

	_, err = svc.FindField(ctx, 999)
	assert.ErrorIs(t, err, ErrFieldNotFound)

	found.FieldName = "Email"
	assert.ErrorIs(t, svc.SaveField(ctx, found), ErrDuplicateFieldName, "a rename must not collide with a sibling")
	found.FieldName = "Birthday"

	form, err := svc.AttendeeForm(ctx, event)
	require.NoError(t, err)
	require.Len(t, form, 4)
	assert.Equal(t, "FirstName", form[0].Name())
	assert.Equal(t, "EmailField", form[2].Type())

	date := form[3].(*cms.DateField)
	assert.Equal(t, "Date of birth", date.Title)
	assert.Equal(t, "2010-12-31", date.GetConfig("max"))
}

func TestService_SiteConfig(t *testing.T) {
	svc, _ := newService(t)
	ctx := context.Background()

	sc, err := svc.SiteConfig(ctx)
	require.NoError(t, err)
	sc.SuccessMessage = "<p>Thanks!</p>"
	require.NoError(t, svc.SaveSiteConfig(ctx, sc))

	again, err := svc.SiteConfig(ctx)
	require.NoError(t, err)
	assert.Equal(t, sc.ID, again.ID)
	assert.Equal(t, models.HTMLText("<p>Thanks!</p>"), again.SuccessMessage)
}
