// Package cms describes admin editing panels: ordered field lists grouped in
// tabs, serialised to JSON for the admin frontend.
package cms

import (
	"fmt"
	"time"
)

// Field is a single control in an editing panel.
type Field interface {
	Name() string
	Type() string
}

type BaseField struct {
	FieldType string `json:"type"`
	FieldName string `json:"name"`
	Title     string `json:"title"`
	Value     any    `json:"value,omitempty"`
	Required  bool   `json:"required,omitempty"`
}

func (b *BaseField) Name() string { return b.FieldName }
func (b *BaseField) Type() string { return b.FieldType }

func (b *BaseField) Base() *BaseField { return b }

type TextField struct {
	BaseField
	MaxLength int `json:"max_length,omitempty"`
}

func NewTextField(name, title string) *TextField {
	return &TextField{BaseField: BaseField{FieldType: "TextField", FieldName: name, Title: title}}
}

type EmailField struct {
	BaseField
}

func NewEmailField(name, title string) *EmailField {
	return &EmailField{BaseField: BaseField{FieldType: "EmailField", FieldName: name, Title: title}}
}

type NumericField struct {
	BaseField
}

func NewNumericField(name, title string) *NumericField {
	return &NumericField{BaseField: BaseField{FieldType: "NumericField", FieldName: name, Title: title}}
}

type CheckboxField struct {
	BaseField
}

func NewCheckboxField(name, title string) *CheckboxField {
	return &CheckboxField{BaseField: BaseField{FieldType: "CheckboxField", FieldName: name, Title: title}}
}

type HTMLEditorField struct {
	BaseField
	Rows int `json:"rows"`
}

func NewHTMLEditorField(name, title string) *HTMLEditorField {
	return &HTMLEditorField{BaseField: BaseField{FieldType: "HTMLEditorField", FieldName: name, Title: title}, Rows: 30}
}

func (f *HTMLEditorField) SetRows(rows int) *HTMLEditorField {
	f.Rows = rows
	return f
}

// LiteralField renders Content verbatim.
type LiteralField struct {
	BaseField
	Content string `json:"content"`
}

func NewLiteralField(name, content string) *LiteralField {
	return &LiteralField{BaseField: BaseField{FieldType: "LiteralField", FieldName: name}, Content: content}
}

// LinkAction is a button in a record's action bar that navigates to Link.
type LinkAction struct {
	BaseField
	Link   string `json:"link"`
	Target string `json:"target,omitempty"`
}

func NewLinkAction(name, title, link string) *LinkAction {
	return &LinkAction{BaseField: BaseField{FieldType: "LinkAction", FieldName: name, Title: title}, Link: link}
}

func (a *LinkAction) SetTarget(target string) *LinkAction {
	a.Target = target
	return a
}

// DateField is a calendar date input. Config carries presentation and
// constraint options such as "showcalendar", "min" and "max".
type DateField struct {
	BaseField
	Config map[string]string `json:"config,omitempty"`
}

func NewDateField(name, title string) *DateField {
	return &DateField{BaseField: BaseField{FieldType: "DateField", FieldName: name, Title: title}}
}

func (f *DateField) SetConfig(key, value string) *DateField {
	if f.Config == nil {
		f.Config = map[string]string{}
	}
	f.Config[key] = value
	return f
}

func (f *DateField) GetConfig(key string) string {
	return f.Config[key]
}

// Validate checks that value is a date within the configured min and max.
// An empty value passes.
func (f *DateField) Validate(value string) error {
	if value == "" {
		return nil
	}
	d, err := time.Parse(dateLayout, value)
	if err != nil {
		return fmt.Errorf("%s: %q is not a date in YYYY-MM-DD format", f.FieldName, value)
	}
	if lo := f.GetConfig("min"); lo != "" {
		if m, err := time.Parse(dateLayout, lo); err == nil && d.Before(m) {
			return fmt.Errorf("%s: date must be on or after %s", f.FieldName, lo)
		}
	}
	if hi := f.GetConfig("max"); hi != "" {
		if m, err := time.Parse(dateLayout, hi); err == nil && d.After(m) {
			return fmt.Errorf("%s: date must be on or before %s", f.FieldName, hi)
		}
	}
	return nil
}

const dateLayout = "2006-01-02"
