package domain

// Cardinality enumerates the relationship shapes an association can take.
type Cardinality string

// Known cardinalities.
const (
	OneToOne   Cardinality = "one-to-one"
	OneToMany  Cardinality = "one-to-many"
	ManyToMany Cardinality = "many-to-many"
)

// ValidCardinality reports whether c is one of the known cardinalities.
func ValidCardinality(c Cardinality) bool {
	switch c {
	case OneToOne, OneToMany, ManyToMany:
		return true
	}
	return false
}

// Association is a typed relationship between two custom objects. It is
// directionless for integrity purposes but labeled for display. Both
// endpoints must reference live custom objects.
type Association struct {
	ID             string      `json:"id"`
	SourceObjectID string      `json:"sourceObjectId"`
	TargetObjectID string      `json:"targetObjectId"`
	Cardinality    Cardinality `json:"cardinality"`
	Label          string      `json:"label"`
	CreatedAt      string      `json:"createdAt"`
}

// CreateAssociationInput holds the data needed to create an association.
type CreateAssociationInput struct {
	SourceObjectID string      `json:"sourceObjectId"`
	TargetObjectID string      `json:"targetObjectId"`
	Cardinality    Cardinality `json:"cardinality"`
	Label          string      `json:"label"`
}
