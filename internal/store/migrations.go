package store

// runMigrations executes all database migrations.
func (s *Store) runMigrations() error {
	migrations := []string{
		// Recordings table - one row per recorder session
		`CREATE TABLE IF NOT EXISTS recordings (
			id TEXT PRIMARY KEY,
			color TEXT NOT NULL,
			path TEXT NOT NULL,
			backend TEXT NOT NULL,
			fps REAL NOT NULL,
			width INTEGER NOT NULL,
			height INTEGER NOT NULL,
			frames INTEGER NOT NULL DEFAULT 0,
			started_at DATETIME NOT NULL,
			ended_at DATETIME
		)`,

		// Indexes for better query performance
		`CREATE INDEX IF NOT EXISTS idx_recordings_color ON recordings(color)`,
		`CREATE INDEX IF NOT EXISTS idx_recordings_started_at ON recordings(started_at)`,
	}

	for _, migration := range migrations {
		if _, err := s.db.Exec(migration); err != nil {
			return err
		}
	}

	return nil
}
