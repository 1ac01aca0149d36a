package cms

import "slices"

// GridComponent identifies a feature of a record grid.
type GridComponent string

const (
	ComponentToolbarHeader  GridComponent = "ToolbarHeader"
	ComponentAddNewButton   GridComponent = "AddNewButton"
	ComponentSortableHeader GridComponent = "SortableHeader"
	ComponentFilterHeader   GridComponent = "FilterHeader"
	ComponentDataColumns    GridComponent = "DataColumns"
	ComponentEditButton     GridComponent = "EditButton"
	ComponentDeleteAction   GridComponent = "DeleteAction"
	ComponentPaginator      GridComponent = "Paginator"
	ComponentDetailForm     GridComponent = "DetailForm"
	ComponentOrderableRows  GridComponent = "OrderableRows"
)

type GridFieldConfig struct {
	Components   []GridComponent `json:"components"`
	ItemsPerPage int             `json:"items_per_page"`
}

const defaultItemsPerPage = 20

// NewRecordEditorConfig returns the config for a grid that can list, add,
// edit and delete records.
func NewRecordEditorConfig() *GridFieldConfig {
	return &GridFieldConfig{
		Components: []GridComponent{
			ComponentToolbarHeader,
			ComponentAddNewButton,
			ComponentSortableHeader,
			ComponentFilterHeader,
			ComponentDataColumns,
			ComponentEditButton,
			ComponentDeleteAction,
			ComponentPaginator,
			ComponentDetailForm,
		},
		ItemsPerPage: defaultItemsPerPage,
	}
}

// NewTicketsGridConfig is a record editor without the add button when the
// grid is not editable.
func NewTicketsGridConfig(editable bool) *GridFieldConfig {
	c := NewRecordEditorConfig()
	if !editable {
		c.RemoveComponentsByType(ComponentAddNewButton)
	}
	return c
}

// NewFieldsGridConfig is a record editor whose rows can be reordered.
func NewFieldsGridConfig() *GridFieldConfig {
	c := NewRecordEditorConfig()
	c.AddComponent(ComponentOrderableRows)
	return c
}

func (c *GridFieldConfig) AddComponent(component GridComponent) *GridFieldConfig {
	if !c.HasComponent(component) {
		c.Components = append(c.Components, component)
	}
	return c
}

func (c *GridFieldConfig) RemoveComponentsByType(components ...GridComponent) *GridFieldConfig {
	c.Components = slices.DeleteFunc(c.Components, func(have GridComponent) bool {
		return slices.Contains(components, have)
	})
	return c
}

func (c *GridFieldConfig) HasComponent(component GridComponent) bool {
	return slices.Contains(c.Components, component)
}

// GridField lists the records of a relation.
type GridField struct {
	BaseField
	Records any              `json:"records"`
	Config  *GridFieldConfig `json:"config"`
}

func NewGridField(name, title string, records any, config *GridFieldConfig) *GridField {
	if config == nil {
		config = NewRecordEditorConfig()
	}
	return &GridField{
		BaseField: BaseField{FieldType: "GridField", FieldName: name, Title: title},
		Records:   records,
		Config:    config,
	}
}
