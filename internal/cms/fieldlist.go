package cms

import (
	"encoding/json"
	"strings"
)

// Tab groups fields under a label. A TabSet is a Tab whose children are
// tabs.
type Tab struct {
	BaseField
	Children []Field `json:"children"`
}

func NewTab(name string) *Tab {
	return &Tab{BaseField: BaseField{FieldType: "Tab", FieldName: name, Title: name}}
}

func NewTabSet(name string) *Tab {
	return &Tab{BaseField: BaseField{FieldType: "TabSet", FieldName: name, Title: name}}
}

func (t *Tab) child(name string) *Tab {
	for _, f := range t.Children {
		if tab, ok := f.(*Tab); ok && tab.FieldName == name {
			return tab
		}
	}
	return nil
}

// Fields returns the direct children of the tab.
func (t *Tab) Fields() []Field {
	return t.Children
}

// FieldList is an ordered, mutable collection of fields.
type FieldList struct {
	items []Field
}

func NewFieldList(fields ...Field) *FieldList {
	return &FieldList{items: fields}
}

func (l *FieldList) Push(f Field) {
	l.items = append(l.items, f)
}

func (l *FieldList) Len() int {
	return len(l.items)
}

func (l *FieldList) Fields() []Field {
	return l.items
}

// AddFieldToTab appends f to the tab at path, e.g. "Root.Tickets", creating
// the tab set and tabs as needed.
func (l *FieldList) AddFieldToTab(path string, f Field) {
	l.AddFieldsToTab(path, f)
}

func (l *FieldList) AddFieldsToTab(path string, fields ...Field) {
	tab := l.findOrMakeTab(path)
	tab.Children = append(tab.Children, fields...)
}

// Tab returns the tab at path, or nil.
func (l *FieldList) Tab(path string) *Tab {
	parts := strings.Split(path, ".")
	var current *Tab
	for _, f := range l.items {
		if tab, ok := f.(*Tab); ok && tab.FieldName == parts[0] {
			current = tab
			break
		}
	}
	for _, name := range parts[1:] {
		if current == nil {
			return nil
		}
		current = current.child(name)
	}
	return current
}

// FieldByName searches the list and all tabs depth-first.
func (l *FieldList) FieldByName(name string) Field {
	return findField(l.items, name)
}

func findField(fields []Field, name string) Field {
	for _, f := range fields {
		if tab, ok := f.(*Tab); ok {
			if found := findField(tab.Children, name); found != nil {
				return found
			}
			continue
		}
		if f.Name() == name {
			return f
		}
	}
	return nil
}

func (l *FieldList) findOrMakeTab(path string) *Tab {
	parts := strings.Split(path, ".")
	var current *Tab
	for _, f := range l.items {
		if tab, ok := f.(*Tab); ok && tab.FieldName == parts[0] {
			current = tab
			break
		}
	}
	if current == nil {
		if len(parts) == 1 {
			current = NewTab(parts[0])
		} else {
			current = NewTabSet(parts[0])
		}
		l.items = append(l.items, current)
	}
	for i, name := range parts[1:] {
		next := current.child(name)
		if next == nil {
			if i == len(parts)-2 {
				next = NewTab(name)
			} else {
				next = NewTabSet(name)
			}
			current.Children = append(current.Children, next)
		}
		current = next
	}
	return current
}

func (l *FieldList) MarshalJSON() ([]byte, error) {
	if l.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}
