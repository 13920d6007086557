// ABOUTME: SQLite schema definition and initialization.
// ABOUTME: Defines tables for athletes, test results, observations, and measurements.
package storage

// initSchema creates or updates the database schema.
func (d *DB) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS athletes (
		id TEXT PRIMARY KEY,
		first_name TEXT NOT NULL,
		last_name TEXT NOT NULL,
		dob TEXT,
		gender TEXT,
		contact TEXT,
		language TEXT NOT NULL DEFAULT 'en',
		sport TEXT,
		role_in_sport TEXT,
		created_at DATETIME NOT NULL
	);

	CREATE TABLE IF NOT EXISTS test_results (
		athlete_id TEXT NOT NULL,
		test_id TEXT NOT NULL,
		latest_score REAL NOT NULL DEFAULT 0,
		benchmark REAL NOT NULL DEFAULT 0,
		percentile INTEGER NOT NULL DEFAULT 0,
		PRIMARY KEY (athlete_id, test_id),
		FOREIGN KEY (athlete_id) REFERENCES athletes(id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS observations (
		athlete_id TEXT NOT NULL,
		test_id TEXT NOT NULL,
		seq INTEGER NOT NULL,
		observed_at DATETIME NOT NULL,
		value REAL NOT NULL,
		PRIMARY KEY (athlete_id, test_id, seq),
		FOREIGN KEY (athlete_id, test_id) REFERENCES test_results(athlete_id, test_id) ON DELETE CASCADE
	);

	CREATE TABLE IF NOT EXISTS body_measurements (
		athlete_id TEXT PRIMARY KEY,
		height REAL NOT NULL,
		height_unit TEXT NOT NULL,
		weight REAL NOT NULL,
		weight_unit TEXT NOT NULL,
		height_video TEXT,
		weight_video TEXT,
		submitted_at DATETIME NOT NULL,
		FOREIGN KEY (athlete_id) REFERENCES athletes(id) ON DELETE CASCADE
	);

	CREATE INDEX IF NOT EXISTS idx_athletes_sport ON athletes(sport);
	CREATE INDEX IF NOT EXISTS idx_athletes_name ON athletes(last_name, first_name);
	`

	_, err := d.db.Exec(schema)
	return err
}
