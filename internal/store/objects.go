package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"schemaforge/internal/catalog"
	"schemaforge/internal/domain"
)

// ObjectStore defines the interface for custom object persistence.
type ObjectStore interface {
	Create(ctx context.Context, input domain.CreateObjectInput) (*domain.CustomObject, error)
	CreateFromTemplate(ctx context.Context, templateID string) (*domain.CustomObject, error)
	Get(ctx context.Context, id string) (*domain.CustomObject, error)
	List(ctx context.Context) ([]domain.CustomObject, error)
	Update(ctx context.Context, id string, patch domain.ObjectPatch) (*domain.CustomObject, error)
	Duplicate(ctx context.Context, id string) (*domain.CustomObject, error)
	Delete(ctx context.Context, id string) error
	Rekey(ctx context.Context, oldID, newID string) error
}

// SQLiteObjectStore implements ObjectStore backed by SQLite.
type SQLiteObjectStore struct {
	db *sql.DB
}

// NewSQLiteObjectStore creates a new SQLiteObjectStore.
func NewSQLiteObjectStore(db *sql.DB) *SQLiteObjectStore {
	return &SQLiteObjectStore{db: db}
}

// validateFields checks field inputs at the construction boundary: known
// types only, non-empty names, unique field IDs, and options present exactly
// when the type is an enumeration.
func validateFields(fields []domain.Field) error {
	seen := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		if f.ID != "" {
			if _, dup := seen[f.ID]; dup {
				return domain.Validationf("duplicate field id %q", f.ID)
			}
			seen[f.ID] = struct{}{}
		}
		if f.Name == "" {
			return domain.Validationf("field name is required")
		}
		if !domain.ValidFieldType(f.Type) {
			return domain.Validationf("unknown field type %q for field %q", f.Type, f.Name)
		}
		if f.Type == domain.FieldEnum && len(f.Options) == 0 {
			return domain.Validationf("enum field %q requires at least one option", f.Name)
		}
		if f.Type != domain.FieldEnum && len(f.Options) > 0 {
			return domain.Validationf("field %q of type %q cannot have options", f.Name, f.Type)
		}
	}
	return nil
}

// apiNameTaken reports whether an API name is already in use, optionally
// excluding one object (for relabel checks). API names are stored lowercase
// so the comparison is case-insensitive by construction.
func (s *SQLiteObjectStore) apiNameTaken(ctx context.Context, apiName, excludeID string) (bool, error) {
	var count int
	err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM custom_objects WHERE api_name = ? AND id != ?`,
		apiName, excludeID,
	).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("check api name: %w", err)
	}
	return count > 0, nil
}

func (s *SQLiteObjectStore) insertFields(ctx context.Context, tx *sql.Tx, objectID string, fields []domain.Field) error {
	for i, f := range fields {
		opts, err := encodeOptions(f.Options)
		if err != nil {
			return err
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO fields (object_id, id, name, type, required, options, display_order)
			 VALUES (?, ?, ?, ?, ?, ?, ?)`,
			objectID, f.ID, f.Name, f.Type, f.Required, opts, i,
		); err != nil {
			return fmt.Errorf("insert field %q: %w", f.Name, err)
		}
	}
	return nil
}

// loadObject builds a full CustomObject from its row plus fields.
func (s *SQLiteObjectStore) loadObject(ctx context.Context, id string) (*domain.CustomObject, error) {
	var obj domain.CustomObject
	err := s.db.QueryRowContext(ctx,
		`SELECT id, label, api_name, created_at, updated_at FROM custom_objects WHERE id = ?`, id,
	).Scan(&obj.ID, &obj.Label, &obj.APIName, &obj.CreatedAt, &obj.UpdatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("object %q: %w", id, domain.ErrNotFound)
		}
		return nil, fmt.Errorf("load object: %w", err)
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, name, type, required, options FROM fields
		 WHERE object_id = ? ORDER BY display_order, name`, id)
	if err != nil {
		return nil, fmt.Errorf("load fields: %w", err)
	}
	defer func() { _ = rows.Close() }()

	obj.Fields = []domain.Field{}
	for rows.Next() {
		var f domain.Field
		var opts sql.NullString
		if err := rows.Scan(&f.ID, &f.Name, &f.Type, &f.Required, &opts); err != nil {
			return nil, fmt.Errorf("scan field: %w", err)
		}
		if opts.Valid {
			f.Options, err = decodeOptions(opts.String)
			if err != nil {
				return nil, err
			}
		}
		obj.Fields = append(obj.Fields, f)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &obj, nil
}

// create inserts an object with the given identity and fields after the
// apiName uniqueness check. Shared by Create, CreateFromTemplate, and
// Duplicate.
func (s *SQLiteObjectStore) create(ctx context.Context, label, apiName string, fields []domain.Field) (*domain.CustomObject, error) {
	if apiName == "" {
		return nil, domain.Validationf("label %q does not yield a usable API name", label)
	}
	taken, err := s.apiNameTaken(ctx, apiName, "")
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, domain.Validationf("an object with API name %q already exists", apiName)
	}

	id := newID()
	ts := now()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin create: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO custom_objects (id, label, api_name, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?)`,
		id, label, apiName, ts, ts,
	); err != nil {
		return nil, fmt.Errorf("insert object: %w", err)
	}

	if err := s.insertFields(ctx, tx, id, fields); err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit create: %w", err)
	}

	return s.loadObject(ctx, id)
}

// Create inserts a new custom object with a derived, collision-checked
// API name.
func (s *SQLiteObjectStore) Create(ctx context.Context, input domain.CreateObjectInput) (*domain.CustomObject, error) {
	if input.Label == "" {
		return nil, domain.Validationf("object label is required")
	}

	fields := make([]domain.Field, len(input.Fields))
	for i, in := range input.Fields {
		fields[i] = domain.Field{
			ID:       newID(),
			Name:     in.Name,
			Type:     in.Type,
			Required: in.Required,
			Options:  in.Options,
		}
	}
	if err := validateFields(fields); err != nil {
		return nil, err
	}

	return s.create(ctx, input.Label, DeriveAPIName(input.Label), fields)
}

// CreateFromTemplate instantiates a template from the static catalog:
// blueprint fields are deep-copied into fresh Field entries with freshly
// generated IDs, then creation proceeds exactly as Create.
func (s *SQLiteObjectStore) CreateFromTemplate(ctx context.Context, templateID string) (*domain.CustomObject, error) {
	tpl, ok := catalog.FindTemplate(templateID)
	if !ok {
		return nil, fmt.Errorf("template %q: %w", templateID, domain.ErrNotFound)
	}

	input := domain.CreateObjectInput{Label: tpl.Name}
	for _, bp := range tpl.Fields {
		input.Fields = append(input.Fields, domain.FieldInput{
			Name:     bp.Name,
			Type:     bp.Type,
			Required: bp.Required,
			Options:  append([]string(nil), bp.Options...),
		})
	}
	return s.Create(ctx, input)
}

// Get retrieves a single custom object by ID.
func (s *SQLiteObjectStore) Get(ctx context.Context, id string) (*domain.CustomObject, error) {
	return s.loadObject(ctx, id)
}

// List returns all custom objects in creation order.
func (s *SQLiteObjectStore) List(ctx context.Context) ([]domain.CustomObject, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM custom_objects ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list objects: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan object id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	objects := []domain.CustomObject{}
	for _, id := range ids {
		obj, err := s.loadObject(ctx, id)
		if err != nil {
			return nil, err
		}
		objects = append(objects, *obj)
	}
	return objects, nil
}

// Update applies a partial patch to an object. A label change re-derives the
// API name and re-validates its uniqueness. A fields patch replaces the
// field set; entries with empty IDs get fresh ones.
func (s *SQLiteObjectStore) Update(ctx context.Context, id string, patch domain.ObjectPatch) (*domain.CustomObject, error) {
	obj, err := s.loadObject(ctx, id)
	if err != nil {
		return nil, err
	}

	label := obj.Label
	apiName := obj.APIName
	if patch.Label != nil {
		if *patch.Label == "" {
			return nil, domain.Validationf("object label is required")
		}
		label = *patch.Label
		apiName = DeriveAPIName(label)
		if apiName == "" {
			return nil, domain.Validationf("label %q does not yield a usable API name", label)
		}
		taken, err := s.apiNameTaken(ctx, apiName, id)
		if err != nil {
			return nil, err
		}
		if taken {
			return nil, domain.Validationf("an object with API name %q already exists", apiName)
		}
	}

	var fields []domain.Field
	if patch.Fields != nil {
		fields = make([]domain.Field, len(*patch.Fields))
		copy(fields, *patch.Fields)
		for i := range fields {
			if fields[i].ID == "" {
				fields[i].ID = newID()
			}
		}
		if err := validateFields(fields); err != nil {
			return nil, err
		}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`UPDATE custom_objects SET label = ?, api_name = ?, updated_at = ? WHERE id = ?`,
		label, apiName, now(), id,
	); err != nil {
		return nil, fmt.Errorf("update object: %w", err)
	}

	if patch.Fields != nil {
		if _, err := tx.ExecContext(ctx, `DELETE FROM fields WHERE object_id = ?`, id); err != nil {
			return nil, fmt.Errorf("clear fields: %w", err)
		}
		if err := s.insertFields(ctx, tx, id, fields); err != nil {
			return nil, err
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}

	return s.loadObject(ctx, id)
}

// Duplicate deep-copies an object: fresh object ID, fresh field IDs, label
// suffixed to signal duplication, and the API name disambiguated to satisfy
// uniqueness. The source object is left untouched.
func (s *SQLiteObjectStore) Duplicate(ctx context.Context, id string) (*domain.CustomObject, error) {
	src, err := s.loadObject(ctx, id)
	if err != nil {
		return nil, err
	}

	apiName := src.APIName + "_copy"
	for n := 2; ; n++ {
		taken, err := s.apiNameTaken(ctx, apiName, "")
		if err != nil {
			return nil, err
		}
		if !taken {
			break
		}
		apiName = fmt.Sprintf("%s_copy_%d", src.APIName, n)
	}

	fields := make([]domain.Field, len(src.Fields))
	for i, f := range src.Fields {
		fields[i] = domain.Field{
			ID:       newID(),
			Name:     f.Name,
			Type:     f.Type,
			Required: f.Required,
			Options:  append([]string(nil), f.Options...),
		}
	}

	return s.create(ctx, src.Label+" (Copy)", apiName, fields)
}

// Delete removes an object and its fields. The delete is rejected while any
// association still references the object; callers remove those first.
func (s *SQLiteObjectStore) Delete(ctx context.Context, id string) error {
	if _, err := s.loadObject(ctx, id); err != nil {
		return err
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id FROM associations WHERE source_object_id = ? OR target_object_id = ? ORDER BY created_at, id`,
		id, id)
	if err != nil {
		return fmt.Errorf("check associations: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var blocking []string
	for rows.Next() {
		var assocID string
		if err := rows.Scan(&assocID); err != nil {
			return fmt.Errorf("scan association id: %w", err)
		}
		blocking = append(blocking, assocID)
	}
	if err := rows.Err(); err != nil {
		return err
	}
	if len(blocking) > 0 {
		return &domain.ReferentialIntegrityError{ObjectID: id, AssociationIDs: blocking}
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin delete: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, `DELETE FROM fields WHERE object_id = ?`, id); err != nil {
		return fmt.Errorf("delete fields: %w", err)
	}
	if _, err := tx.ExecContext(ctx, `DELETE FROM custom_objects WHERE id = ?`, id); err != nil {
		return fmt.Errorf("delete object: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit delete: %w", err)
	}
	return nil
}

// Rekey replaces an object's ID with a canonical server-assigned one,
// carrying fields and association endpoints along. Used by the mutation
// coordinator when reconciling an optimistic duplicate.
func (s *SQLiteObjectStore) Rekey(ctx context.Context, oldID, newID string) error {
	if oldID == newID {
		return nil
	}
	if _, err := s.loadObject(ctx, oldID); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin rekey: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	// Parent and child rows change in separate statements, so foreign key
	// checks must wait until commit.
	if _, err := tx.ExecContext(ctx, `PRAGMA defer_foreign_keys = ON`); err != nil {
		return fmt.Errorf("defer foreign keys: %w", err)
	}

	stmts := []struct {
		query string
		args  []any
	}{
		{`UPDATE custom_objects SET id = ? WHERE id = ?`, []any{newID, oldID}},
		{`UPDATE fields SET object_id = ? WHERE object_id = ?`, []any{newID, oldID}},
		{`UPDATE associations SET source_object_id = ? WHERE source_object_id = ?`, []any{newID, oldID}},
		{`UPDATE associations SET target_object_id = ? WHERE target_object_id = ?`, []any{newID, oldID}},
	}
	for _, st := range stmts {
		if _, err := tx.ExecContext(ctx, st.query, st.args...); err != nil {
			return fmt.Errorf("rekey object: %w", err)
		}
	}

	// Recompute canonical pair keys on touched associations.
	if _, err := tx.ExecContext(ctx,
		`UPDATE associations
		 SET pair_lo = MIN(source_object_id, target_object_id),
		     pair_hi = MAX(source_object_id, target_object_id)
		 WHERE source_object_id = ? OR target_object_id = ?`,
		newID, newID,
	); err != nil {
		return fmt.Errorf("rekey pair keys: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit rekey: %w", err)
	}
	return nil
}
