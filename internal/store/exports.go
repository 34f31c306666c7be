package store

import (
	"context"
	"fmt"

	"schemaforge/internal/domain"
)

// SchemaSnapshot is the export shape for the full data model. It carries
// exactly what Create and Add need to reconstruct the model, so an exported
// snapshot round-trips through ImportSchema.
type SchemaSnapshot struct {
	Objects      []domain.CustomObject `json:"objects"`
	Associations []domain.Association  `json:"associations"`
}

// ExportSchema captures all objects and associations.
func (s *Store) ExportSchema(ctx context.Context) (*SchemaSnapshot, error) {
	objects, err := s.Objects.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("export objects: %w", err)
	}
	assocs, err := s.Associations.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("export associations: %w", err)
	}
	return &SchemaSnapshot{Objects: objects, Associations: assocs}, nil
}

// ImportSchema reconstructs a snapshot through the regular creation paths,
// so every imported object and association passes the same validation as
// interactive creation. Imported entities receive fresh IDs; association
// endpoints are remapped from snapshot IDs to the new ones.
func (s *Store) ImportSchema(ctx context.Context, snap *SchemaSnapshot) error {
	idMap := make(map[string]string, len(snap.Objects))

	for _, obj := range snap.Objects {
		input := domain.CreateObjectInput{Label: obj.Label}
		for _, f := range obj.Fields {
			input.Fields = append(input.Fields, domain.FieldInput{
				Name:     f.Name,
				Type:     f.Type,
				Required: f.Required,
				Options:  append([]string(nil), f.Options...),
			})
		}
		created, err := s.Objects.Create(ctx, input)
		if err != nil {
			return fmt.Errorf("import object %q: %w", obj.Label, err)
		}
		idMap[obj.ID] = created.ID
	}

	for _, a := range snap.Associations {
		sourceID, ok := idMap[a.SourceObjectID]
		if !ok {
			return domain.Validationf("association %q references unknown source object %q", a.ID, a.SourceObjectID)
		}
		targetID, ok := idMap[a.TargetObjectID]
		if !ok {
			return domain.Validationf("association %q references unknown target object %q", a.ID, a.TargetObjectID)
		}
		if _, err := s.Associations.Add(ctx, domain.CreateAssociationInput{
			SourceObjectID: sourceID,
			TargetObjectID: targetID,
			Cardinality:    a.Cardinality,
			Label:          a.Label,
		}); err != nil {
			return fmt.Errorf("import association %q: %w", a.ID, err)
		}
	}

	return nil
}
