package userfields

import (
	"github.com/gdg-garage/event-tickets/internal/cms"
	"github.com/gdg-garage/event-tickets/internal/i18n"
	"github.com/gdg-garage/event-tickets/internal/models"
)

// UserDateField collects a date, optionally bounded by MinDate and MaxDate.
type UserDateField struct {
	UserField
}

func NewUserDateField() UserDateField {
	return UserDateField{UserField{fieldType: "UserDateField", newControl: func(name, title string) cms.Field {
		return cms.NewDateField(name, title)
	}}}
}

func (d UserDateField) CMSFields(f *models.AttendeeExtraField) *cms.FieldList {
	fields := d.UserField.CMSFields(f)

	minDate := cms.NewDateField("MinDate", i18n.T("UserDateField.MinDate", "Minimum required date")).
		SetConfig("showcalendar", "true")
	maxDate := cms.NewDateField("MaxDate", i18n.T("UserDateField.MaxDate", "Maximum required date")).
		SetConfig("showcalendar", "true")
	if f.MinDate != nil {
		minDate.Value = f.MinDate.Format(models.DateLayout)
	}
	if f.MaxDate != nil {
		maxDate.Value = f.MaxDate.Format(models.DateLayout)
	}

	fields.AddFieldsToTab("Root.Validation", minDate, maxDate)
	return fields
}

// CreateField does not check defaultValue against the bounds.
func (d UserDateField) CreateField(f *models.AttendeeExtraField, name string, defaultValue string) cms.Field {
	dateField := d.UserField.CreateField(f, name, defaultValue).(*cms.DateField)

	if f.MinDate != nil {
		dateField.SetConfig("min", f.MinDate.Format(models.DateLayout))
	}
	if f.MaxDate != nil {
		dateField.SetConfig("max", f.MaxDate.Format(models.DateLayout))
	}

	return dateField
}

func (d UserDateField) Validate(f *models.AttendeeExtraField, value string) error {
	if err := d.UserField.Validate(f, value); err != nil {
		return err
	}
	return d.CreateField(f, f.FieldName, "").(*cms.DateField).Validate(value)
}
