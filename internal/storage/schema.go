// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Answers and profiles are stored as JSON next to a few queryable columns.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS assessments (
		id TEXT PRIMARY KEY,
		user_id TEXT NOT NULL,
		schema_version TEXT NOT NULL DEFAULT '',
		goal TEXT NOT NULL DEFAULT '',
		target_calories REAL NOT NULL,
		answers TEXT NOT NULL,
		profile TEXT NOT NULL,
		completed_at DATETIME NOT NULL,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_assessments_completed ON assessments(completed_at DESC);
	CREATE INDEX IF NOT EXISTS idx_assessments_user_completed ON assessments(user_id, completed_at DESC);
	`

	_, err := d.db.Exec(schema)
	return err
}
