package models

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"
)

// DateLayout is the wire and storage format of calendar dates.
const DateLayout = "2006-01-02"

// AttendeeExtraField defines one piece of information collected per attendee
// of an event. FieldType selects the user field kind that renders it; the
// kind-specific columns (MinDate, MaxDate) are shared on this table.
type AttendeeExtraField struct {
	gorm.Model
	EventID    uint           `json:"event_id" gorm:"index"`
	Title      string         `json:"title"`
	FieldName  string         `json:"field_name"`
	Required   bool           `json:"required"`
	Editable   bool           `json:"editable"`
	FieldType  string         `json:"field_type"`
	Sort       int            `json:"sort"`
	MinDate    *time.Time     `json:"min_date"`
	MaxDate    *time.Time     `json:"max_date"`
	Properties map[string]any `json:"properties,omitempty" gorm:"serializer:json"`
}

// canonicalProperties spells the free-form properties read elsewhere. Config
// loaders may hand them over lowercased.
var canonicalProperties = map[string]string{
	"defaultvalue": "DefaultValue",
	"placeholder":  "Placeholder",
}

// SetField assigns a property by its field name, ignoring case. Names that
// are not columns are kept in Properties.
func (f *AttendeeExtraField) SetField(property string, value any) error {
	switch strings.ToLower(property) {
	case "title":
		f.Title = fmt.Sprint(value)
	case "fieldname":
		f.FieldName = fmt.Sprint(value)
	case "fieldtype":
		f.FieldType = fmt.Sprint(value)
	case "required":
		b, err := toBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", property, err)
		}
		f.Required = b
	case "editable":
		b, err := toBool(value)
		if err != nil {
			return fmt.Errorf("%s: %w", property, err)
		}
		f.Editable = b
	case "sort":
		n, err := strconv.Atoi(fmt.Sprint(value))
		if err != nil {
			return fmt.Errorf("%s: %w", property, err)
		}
		f.Sort = n
	case "mindate", "maxdate":
		d, err := toDate(value)
		if err != nil {
			return fmt.Errorf("%s: %w", property, err)
		}
		if strings.EqualFold(property, "MinDate") {
			f.MinDate = d
		} else {
			f.MaxDate = d
		}
	default:
		if f.Properties == nil {
			f.Properties = map[string]any{}
		}
		if name, ok := canonicalProperties[strings.ToLower(property)]; ok {
			property = name
		}
		f.Properties[property] = value
	}
	return nil
}

// Property returns the free-form property name, matched without regard to case
// when no exact key exists.
func (f *AttendeeExtraField) Property(name string) any {
	if v, ok := f.Properties[name]; ok {
		return v
	}
	for k, v := range f.Properties {
		if strings.EqualFold(k, name) {
			return v
		}
	}
	return nil
}

func toBool(value any) (bool, error) {
	switch v := value.(type) {
	case bool:
		return v, nil
	case int:
		return v != 0, nil
	case string:
		return strconv.ParseBool(strings.TrimSpace(v))
	default:
		return strconv.ParseBool(fmt.Sprint(v))
	}
}

func toDate(value any) (*time.Time, error) {
	switch v := value.(type) {
	case nil:
		return nil, nil
	case time.Time:
		return &v, nil
	case *time.Time:
		return v, nil
	case string:
		if strings.TrimSpace(v) == "" {
			return nil, nil
		}
		t, err := time.Parse(DateLayout, strings.TrimSpace(v))
		if err != nil {
			return nil, err
		}
		return &t, nil
	default:
		return nil, fmt.Errorf("unsupported date value %T", value)
	}
}
