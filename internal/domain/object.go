package domain

// FieldType enumerates the value types a custom object field can hold.
type FieldType string

// Known field types.
const (
	FieldText      FieldType = "text"
	FieldNumber    FieldType = "number"
	FieldBoolean   FieldType = "boolean"
	FieldDate      FieldType = "date"
	FieldEnum      FieldType = "enum"
	FieldReference FieldType = "reference"
)

// ValidFieldType reports whether t is one of the known field types.
func ValidFieldType(t FieldType) bool {
	switch t {
	case FieldText, FieldNumber, FieldBoolean, FieldDate, FieldEnum, FieldReference:
		return true
	}
	return false
}

// Field is a single named field on a custom object. A field's ID is unique
// within its owning object only.
type Field struct {
	ID       string    `json:"id"`
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// CustomObject is a user-defined business entity such as "Loan Application".
// The apiName is derived from the label and is unique across all objects.
type CustomObject struct {
	ID        string  `json:"id"`
	Label     string  `json:"label"`
	APIName   string  `json:"apiName"`
	Fields    []Field `json:"fields"`
	CreatedAt string  `json:"createdAt"`
	UpdatedAt string  `json:"updatedAt"`
}

// CreateObjectInput holds the data needed to create a new custom object.
type CreateObjectInput struct {
	Label  string       `json:"label"`
	Fields []FieldInput `json:"fields"`
}

// FieldInput describes a field at creation time, before an ID is assigned.
type FieldInput struct {
	Name     string    `json:"name"`
	Type     FieldType `json:"type"`
	Required bool      `json:"required"`
	Options  []string  `json:"options,omitempty"`
}

// ObjectPatch is a partial update of a custom object. Nil members are left
// unchanged. A non-nil Fields slice replaces the object's field set; entries
// with an empty ID are treated as new fields and assigned fresh IDs.
type ObjectPatch struct {
	Label  *string  `json:"label,omitempty"`
	Fields *[]Field `json:"fields,omitempty"`
}
