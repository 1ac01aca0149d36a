// Package userfields turns attendee field definitions into form controls.
package userfields

import (
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"sync"

	"github.com/gdg-garage/event-tickets/internal/cms"
	"github.com/gdg-garage/event-tickets/internal/i18n"
	"github.com/gdg-garage/event-tickets/internal/models"
)

var ErrRequired = errors.New("field is required")

// Kind renders and validates one type of attendee field.
type Kind interface {
	FieldType() string
	// CreateField builds the control collecting the value of f.
	CreateField(f *models.AttendeeExtraField, name string, defaultValue string) cms.Field
	// CMSFields builds the admin form that edits f itself.
	CMSFields(f *models.AttendeeExtraField) *cms.FieldList
	Validate(f *models.AttendeeExtraField, value string) error
}

type baser interface {
	Base() *cms.BaseField
}

// UserField is the behaviour shared by all kinds.
type UserField struct {
	fieldType  string
	newControl func(name, title string) cms.Field
}

func (u UserField) FieldType() string {
	return u.fieldType
}

func (u UserField) CreateField(f *models.AttendeeExtraField, name string, defaultValue string) cms.Field {
	control := u.newControl(name, f.Title)
	if b, ok := control.(baser); ok {
		base := b.Base()
		base.Required = f.Required
		if defaultValue != "" {
			base.Value = defaultValue
		}
	}
	return control
}

func (u UserField) CMSFields(f *models.AttendeeExtraField) *cms.FieldList {
	title := cms.NewTextField("Title", i18n.T("UserField.Title", "Title"))
	title.Value = f.Title
	fieldName := cms.NewTextField("FieldName", i18n.T("UserField.FieldName", "Field name"))
	fieldName.Value = f.FieldName
	required := cms.NewCheckboxField("Required", i18n.T("UserField.Required", "Required"))
	required.Value = f.Required
	editable := cms.NewCheckboxField("Editable", i18n.T("UserField.Editable", "Editable"))
	editable.Value = f.Editable

	fields := cms.NewFieldList()
	fields.AddFieldsToTab("Root.Main", title, fieldName, required, editable)
	return fields
}

func (u UserField) Validate(f *models.AttendeeExtraField, value string) error {
	if f.Required && strings.TrimSpace(value) == "" {
		return fmt.Errorf("%s: %w", f.FieldName, ErrRequired)
	}
	return nil
}

type UserTextField struct {
	UserField
}

type UserCheckboxField struct {
	UserField
}

type UserEmailField struct {
	UserField
}

func (e UserEmailField) Validate(f *models.AttendeeExtraField, value string) error {
	if err := e.UserField.Validate(f, value); err != nil {
		return err
	}
	if value == "" {
		return nil
	}
	if _, err := mail.ParseAddress(value); err != nil {
		return fmt.Errorf("%s: %q is not a valid email address", f.FieldName, value)
	}
	return nil
}

var (
	mu    sync.RWMutex
	kinds = map[string]Kind{}
)

func init() {
	Register(UserTextField{UserField{fieldType: "UserTextField", newControl: func(name, title string) cms.Field {
		return cms.NewTextField(name, title)
	}}})
	Register(UserEmailField{UserField{fieldType: "UserEmailField", newControl: func(name, title string) cms.Field {
		return cms.NewEmailField(name, title)
	}}})
	Register(UserCheckboxField{UserField{fieldType: "UserCheckboxField", newControl: func(name, title string) cms.Field {
		return cms.NewCheckboxField(name, title)
	}}})
	Register(NewUserDateField())
}

// Register makes a kind available by its field type.
func Register(k Kind) {
	mu.Lock()
	defer mu.Unlock()
	kinds[k.FieldType()] = k
}

// Lookup returns the kind for fieldType. Unknown types render as text.
func Lookup(fieldType string) Kind {
	mu.RLock()
	defer mu.RUnlock()
	if k, ok := kinds[fieldType]; ok {
		return k
	}
	return kinds["UserTextField"]
}

// Known reports whether fieldType has a registered kind.
func Known(fieldType string) bool {
	mu.RLock()
	defer mu.RUnlock()
	_, ok := kinds[fieldType]
	return ok
}
