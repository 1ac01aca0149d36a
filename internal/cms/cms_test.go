package cms

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFieldList_AddFieldsToTab(t *testing.T) {
	fields := NewFieldList()
	fields.AddFieldsToTab("Root.Tickets",
		NewNumericField("Capacity", "Capacity"),
		NewNumericField("OrderMin", "Minimum"),
	)
	fields.AddFieldToTab("Root.Tickets", NewNumericField("OrderMax", "Maximum"))
	fields.AddFieldToTab("Root.Validation", NewDateField("MinDate", "Minimum date"))

	require.Equal(t, 1, fields.Len(), "tabs share a single Root tab set")

	tickets := fields.Tab("Root.Tickets")
	require.NotNil(t, tickets)
	assert.Len(t, tickets.Fields(), 3)
	assert.Equal(t, "OrderMax", tickets.Fields()[2].Name())

	assert.NotNil(t, fields.Tab("Root.Validation"))
	assert.Nil(t, fields.Tab("Root.Missing"))
	assert.Nil(t, fields.Tab("Other.Tickets"))

	f := fields.FieldByName("MinDate")
	require.NotNil(t, f)
	assert.Equal(t, "DateField", f.Type())
	assert.Nil(t, fields.FieldByName("Nope"))
}

func TestFieldList_MarshalJSON(t *testing.T) {
	fields := NewFieldList()
	fields.AddFieldToTab("Root.Main", NewHTMLEditorField("SuccessMessage", "Success message").SetRows(4))

	raw, err := json.Marshal(fields)
	require.NoError(t, err)

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "TabSet", decoded[0]["type"])

	tabs := decoded[0]["children"].([]any)
	main := tabs[0].(map[string]any)
	assert.Equal(t, "Main", main["name"])
	editor := main["children"].([]any)[0].(map[string]any)
	assert.Equal(t, "HTMLEditorField", editor["type"])
	assert.EqualValues(t, 4, editor["rows"])

	empty, err := json.Marshal(NewFieldList())
	require.NoError(t, err)
	assert.JSONEq(t, "[]", string(empty))
}

func TestGridFieldConfig(t *testing.T) {
	editable := NewTicketsGridConfig(true)
	assert.True(t, editable.HasComponent(ComponentAddNewButton))

	closed := NewTicketsGridConfig(false)
	assert.False(t, closed.HasComponent(ComponentAddNewButton))
	assert.True(t, closed.HasComponent(ComponentEditButton))

	fields := NewFieldsGridConfig()
	assert.True(t, fields.HasComponent(ComponentOrderableRows))
	fields.AddComponent(ComponentOrderableRows)
	count := 0
	for _, c := range fields.Components {
		if c == ComponentOrderableRows {
			count++
		}
	}
	assert.Equal(t, 1, count)

	grid := NewGridField("Tickets", "Tickets", []string{}, nil)
	assert.True(t, grid.Config.HasComponent(ComponentAddNewButton))
}

func TestDateField_Validate(t *testing.T) {
	f := NewDateField("Birthday", "Birthday").
		SetConfig("min", "2000-01-01").
		SetConfig("max", "2010-12-31")

	assert.NoError(t, f.Validate(""))
	assert.NoError(t, f.Validate("2005-06-15"))
	assert.NoError(t, f.Validate("2000-01-01"))
	assert.Error(t, f.Validate("1999-12-31"))
	assert.Error(t, f.Validate("2011-01-01"))
	assert.Error(t, f.Validate("15-06-2005"))
}

func TestLiteralField_MarshalJSON(t *testing.T) {
	fields := NewFieldList(NewLiteralField("Intro", "<p>Scan the code at the door</p>"))

	out, err := json.Marshal(fields)
	require.NoError(t, err)
	assert.JSONEq(t, `[{"type":"LiteralField","name":"Intro","title":"","content":"<p>Scan the code at the door</p>"}]`, string(out))
}
