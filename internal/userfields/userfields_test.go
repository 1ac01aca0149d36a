package userfields

import (
	"testing"
	"time"

	"github.com/gdg-garage/event-tickets/internal/cms"
	"github.com/gdg-garage/event-tickets/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(s string) *time.Time {
	t, err := time.Parse(models.DateLayout, s)
	if err != nil {
		panic(err)
	}
	return &t
}

func TestUserDateField_CreateField(t *testing.T) {
	kind := Lookup("UserDateField")

	t.Run("WithBounds", func(t *testing.T) {
		f := &models.AttendeeExtraField{
			Title:     "Birthday",
			FieldName: "Birthday",
			FieldType: "UserDateField",
			Required:  true,
			MinDate:   date("1920-01-01"),
			MaxDate:   date("2010-12-31"),
		}

		control, ok := kind.CreateField(f, "Birthday[1]", "2030-01-01").(*cms.DateField)
		require.True(t, ok, "date kind must produce a DateField")

		assert.Equal(t, "Birthday[1]", control.Name())
		assert.Equal(t, "Birthday", control.Title)
		assert.Equal(t, "1920-01-01", control.GetConfig("min"))
		assert.Equal(t, "2010-12-31", control.GetConfig("max"))
		assert.True(t, control.Required)
		// The default is passed through even when outside the bounds.
		assert.Equal(t, "2030-01-01", control.Value)
	})

	t.Run("WithoutBounds", func(t *testing.T) {
		f := &models.AttendeeExtraField{Title: "Arrival", FieldName: "Arrival", FieldType: "UserDateField"}

		control := kind.CreateField(f, "Arrival", "").(*cms.DateField)
		assert.Empty(t, control.GetConfig("min"))
		assert.Empty(t, control.GetConfig("max"))
		assert.Nil(t, control.Value)
	})
}

func TestUserDateField_CMSFields(t *testing.T) {
	f := &models.AttendeeExtraField{Title: "Birthday", FieldName: "Birthday", MinDate: date("2000-02-03")}

	fields := Lookup("UserDateField").CMSFields(f)

	validation := fields.Tab("Root.Validation")
	require.NotNil(t, validation)
	require.Len(t, validation.Fields(), 2)

	minDate := validation.Fields()[0].(*cms.DateField)
	maxDate := validation.Fields()[1].(*cms.DateField)
	assert.Equal(t, "MinDate", minDate.Name())
	assert.Equal(t, "true", minDate.GetConfig("showcalendar"))
	assert.Equal(t, "2000-02-03", minDate.Value)
	assert.Equal(t, "MaxDate", maxDate.Name())
	assert.Equal(t, "true", maxDate.GetConfig("showcalendar"))
	assert.Nil(t, maxDate.Value)

	// The base form is still there.
	assert.NotNil(t, fields.FieldByName("Title"))
	assert.NotNil(t, fields.FieldByName("Required"))
}

func TestLookup(t *testing.T) {
	assert.Equal(t, "UserEmailField", Lookup("UserEmailField").FieldType())
	assert.Equal(t, "UserTextField", Lookup("SomethingElse").FieldType())
	assert.True(t, Known("UserCheckboxField"))
	assert.False(t, Known("SomethingElse"))

	f := &models.AttendeeExtraField{Title: "Email", FieldName: "Email"}
	_, ok := Lookup("UserEmailField").CreateField(f, "Email", "").(*cms.EmailField)
	assert.True(t, ok)
}

func TestValidate(t *testing.T) {
	required := &models.AttendeeExtraField{FieldName: "FirstName", Required: true}
	assert.ErrorIs(t, Lookup("UserTextField").Validate(required, "  "), ErrRequired)
	assert.NoError(t, Lookup("UserTextField").Validate(required, "Ada"))

	optional := &models.AttendeeExtraField{FieldName: "Nickname"}
	assert.NoError(t, Lookup("UserTextField").Validate(optional, ""))

	email := &models.AttendeeExtraField{FieldName: "Email", Required: true}
	assert.NoError(t, Lookup("UserEmailField").Validate(email, "ada@example.com"))
	assert.Error(t, Lookup("UserEmailField").Validate(email, "not-an-email"))

	birthday := &models.AttendeeExtraField{FieldName: "Birthday", MaxDate: date("2010-12-31")}
	assert.NoError(t, Lookup("UserDateField").Validate(birthday, "2001-05-05"))
	assert.Error(t, Lookup("UserDateField").Validate(birthday, "2011-05-05"))
	assert.Error(t, Lookup("UserDateField").Validate(birthday, "yesterday"))
}
