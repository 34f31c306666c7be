package database

// migrations is an ordered list of SQL migration groups. Each entry is a slice
// of SQL statements that are executed together in a single transaction. The
// version number is the 1-based index into this slice.
var migrations = [][]string{
	// Migration 1: core schema tables
	{
		`CREATE TABLE custom_objects (
			id TEXT PRIMARY KEY,
			label TEXT NOT NULL,
			api_name TEXT UNIQUE NOT NULL,
			created_at TEXT NOT NULL,
			updated_at TEXT NOT NULL
		)`,
		`CREATE INDEX idx_custom_objects_created ON custom_objects(created_at)`,

		`CREATE TABLE fields (
			object_id TEXT NOT NULL,
			id TEXT NOT NULL,
			name TEXT NOT NULL,
			type TEXT NOT NULL,
			required BOOLEAN NOT NULL DEFAULT FALSE,
			options TEXT,
			display_order INTEGER NOT NULL DEFAULT 0,
			PRIMARY KEY (object_id, id),
			FOREIGN KEY (object_id) REFERENCES custom_objects(id)
		)`,

		`CREATE TABLE associations (
			id TEXT PRIMARY KEY,
			source_object_id TEXT NOT NULL,
			target_object_id TEXT NOT NULL,
			cardinality TEXT NOT NULL,
			label TEXT,
			pair_lo TEXT NOT NULL,
			pair_hi TEXT NOT NULL,
			created_at TEXT NOT NULL,
			UNIQUE (pair_lo, pair_hi, cardinality),
			FOREIGN KEY (source_object_id) REFERENCES custom_objects(id),
			FOREIGN KEY (target_object_id) REFERENCES custom_objects(id)
		)`,
		`CREATE INDEX idx_assoc_source ON associations(source_object_id)`,
		`CREATE INDEX idx_assoc_target ON associations(target_object_id)`,
	},
}
