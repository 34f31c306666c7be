package domain

// FieldBlueprint describes a field inside a template. Blueprint IDs are
// stable catalog identifiers; instantiation assigns fresh field IDs.
type FieldBlueprint struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// Template is an immutable blueprint used to seed a new custom object with
// predefined fields. Templates come from a static catalog and are never
// mutated at runtime.
type Template struct {
	ID     string           `json:"id"`
	Name   string           `json:"name"`
	Fields []FieldBlueprint `json:"fields"`
}
