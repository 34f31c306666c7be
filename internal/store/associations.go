package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"schemaforge/internal/domain"
)

// AssociationStore defines the interface for association persistence. It
// enforces referential integrity against the custom object collection:
// dangling endpoint references are never persisted.
type AssociationStore interface {
	Add(ctx context.Context, input domain.CreateAssociationInput) (*domain.Association, error)
	Remove(ctx context.Context, id string) error
	Get(ctx context.Context, id string) (*domain.Association, error)
	ForObject(ctx context.Context, objectID string) ([]domain.Association, error)
	List(ctx context.Context) ([]domain.Association, error)
}

// SQLiteAssociationStore implements AssociationStore backed by SQLite.
type SQLiteAssociationStore struct {
	db *sql.DB
}

// NewSQLiteAssociationStore creates a new SQLiteAssociationStore.
func NewSQLiteAssociationStore(db *sql.DB) *SQLiteAssociationStore {
	return &SQLiteAssociationStore{db: db}
}

func (s *SQLiteAssociationStore) objectExists(ctx context.Context, objectID string) error {
	var one int
	err := s.db.QueryRowContext(ctx,
		`SELECT 1 FROM custom_objects WHERE id = ?`, objectID,
	).Scan(&one)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("object %q: %w", objectID, domain.ErrNotFound)
		}
		return fmt.Errorf("check object: %w", err)
	}
	return nil
}

// Add creates a new association between two live objects. An association
// with the same unordered endpoint pair and cardinality may exist only once.
func (s *SQLiteAssociationStore) Add(ctx context.Context, input domain.CreateAssociationInput) (*domain.Association, error) {
	if !domain.ValidCardinality(input.Cardinality) {
		return nil, domain.Validationf("unknown cardinality %q", input.Cardinality)
	}
	if err := s.objectExists(ctx, input.SourceObjectID); err != nil {
		return nil, err
	}
	if err := s.objectExists(ctx, input.TargetObjectID); err != nil {
		return nil, err
	}

	lo, hi := pairKey(input.SourceObjectID, input.TargetObjectID)

	var existing string
	err := s.db.QueryRowContext(ctx,
		`SELECT id FROM associations WHERE pair_lo = ? AND pair_hi = ? AND cardinality = ?`,
		lo, hi, input.Cardinality,
	).Scan(&existing)
	if err == nil {
		return nil, &domain.DuplicateError{
			Msg: fmt.Sprintf("association between these objects with cardinality %q already exists", input.Cardinality),
		}
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("check duplicate association: %w", err)
	}

	a := &domain.Association{
		ID:             newID(),
		SourceObjectID: input.SourceObjectID,
		TargetObjectID: input.TargetObjectID,
		Cardinality:    input.Cardinality,
		Label:          input.Label,
		CreatedAt:      now(),
	}

	_, err = s.db.ExecContext(ctx,
		`INSERT INTO associations (id, source_object_id, target_object_id, cardinality, label, pair_lo, pair_hi, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		a.ID, a.SourceObjectID, a.TargetObjectID, a.Cardinality, a.Label, lo, hi, a.CreatedAt,
	)
	if err != nil {
		// The unique constraint backs up the explicit check above.
		if strings.Contains(err.Error(), "UNIQUE constraint failed") {
			return nil, &domain.DuplicateError{
				Msg: fmt.Sprintf("association between these objects with cardinality %q already exists", input.Cardinality),
			}
		}
		return nil, fmt.Errorf("insert association: %w", err)
	}

	return a, nil
}

// Remove deletes an association by ID.
func (s *SQLiteAssociationStore) Remove(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM associations WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete association: %w", err)
	}
	rows, _ := res.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("association %q: %w", id, domain.ErrNotFound)
	}
	return nil
}

// Get retrieves a single association by ID.
func (s *SQLiteAssociationStore) Get(ctx context.Context, id string) (*domain.Association, error) {
	var a domain.Association
	var label sql.NullString
	err := s.db.QueryRowContext(ctx,
		`SELECT id, source_object_id, target_object_id, cardinality, label, created_at
		 FROM associations WHERE id = ?`, id,
	).Scan(&a.ID, &a.SourceObjectID, &a.TargetObjectID, &a.Cardinality, &label, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("association %q: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("get association: %w", err)
	}
	a.Label = label.String
	return &a, nil
}

// ForObject returns all associations where the object is source or target,
// in creation order. Used by the delete guard.
func (s *SQLiteAssociationStore) ForObject(ctx context.Context, objectID string) ([]domain.Association, error) {
	return s.query(ctx,
		`SELECT id, source_object_id, target_object_id, cardinality, label, created_at
		 FROM associations WHERE source_object_id = ? OR target_object_id = ?
		 ORDER BY created_at, id`, objectID, objectID)
}

// List returns every association in creation order.
func (s *SQLiteAssociationStore) List(ctx context.Context) ([]domain.Association, error) {
	return s.query(ctx,
		`SELECT id, source_object_id, target_object_id, cardinality, label, created_at
		 FROM associations ORDER BY created_at, id`)
}

func (s *SQLiteAssociationStore) query(ctx context.Context, q string, args ...any) ([]domain.Association, error) {
	rows, err := s.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, fmt.Errorf("query associations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	assocs := []domain.Association{}
	for rows.Next() {
		var a domain.Association
		var label sql.NullString
		if err := rows.Scan(&a.ID, &a.SourceObjectID, &a.TargetObjectID, &a.Cardinality, &label, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan association: %w", err)
		}
		a.Label = label.String
		assocs = append(assocs, a)
	}
	return assocs, rows.Err()
}
