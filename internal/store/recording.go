package store

import (
	"database/sql"
	"errors"
	"time"
)

// ErrNotFound is returned when a requested resource does not exist.
var ErrNotFound = errors.New("not found")

// Recording describes one recorder session.
type Recording struct {
	ID        string
	Color     string
	Path      string
	Backend   string
	FPS       float64
	Width     int
	Height    int
	Frames    int
	StartedAt time.Time
	// EndedAt is nil while the recorder is still open.
	EndedAt *time.Time
}

// RecordingRepository provides CRUD operations for recordings.
type RecordingRepository struct {
	db *sql.DB
}

// Recordings returns the recording repository for this store.
func (s *Store) Recordings() *RecordingRepository {
	return &RecordingRepository{db: s.db}
}

const recordingColumns = `id, color, path, backend, fps, width, height, frames, started_at, ended_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanRecording(row rowScanner) (*Recording, error) {
	rec := &Recording{}
	var ended sql.NullTime

	err := row.Scan(&rec.ID, &rec.Color, &rec.Path, &rec.Backend, &rec.FPS,
		&rec.Width, &rec.Height, &rec.Frames, &rec.StartedAt, &ended)
	if err != nil {
		return nil, err
	}

	if ended.Valid {
		t := ended.Time
		rec.EndedAt = &t
	}
	return rec, nil
}

// Create inserts a new recording. StartedAt defaults to now.
func (r *RecordingRepository) Create(rec *Recording) error {
	if rec.StartedAt.IsZero() {
		rec.StartedAt = time.Now()
	}

	_, err := r.db.Exec(
		`INSERT INTO recordings (id, color, path, backend, fps, width, height, frames, started_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Color, rec.Path, rec.Backend, rec.FPS, rec.Width, rec.Height, rec.Frames, rec.StartedAt,
	)
	return err
}

// Finish stores the final frame count and end time of a recording.
func (r *RecordingRepository) Finish(id string, frames int, endedAt time.Time) error {
	result, err := r.db.Exec(
		`UPDATE recordings SET frames = ?, ended_at = ? WHERE id = ?`,
		frames, endedAt, id,
	)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}

// GetByID retrieves a recording by its ID.
func (r *RecordingRepository) GetByID(id string) (*Recording, error) {
	rec, err := scanRecording(r.db.QueryRow(
		`SELECT `+recordingColumns+` FROM recordings WHERE id = ?`, id,
	))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return rec, nil
}

// List retrieves recordings, newest first. An empty color lists all of them.
func (r *RecordingRepository) List(color string) ([]*Recording, error) {
	query := `SELECT ` + recordingColumns + ` FROM recordings`
	var args []any
	if color != "" {
		query += ` WHERE color = ?`
		args = append(args, color)
	}
	query += ` ORDER BY started_at DESC`

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recordings []*Recording
	for rows.Next() {
		rec, err := scanRecording(rows)
		if err != nil {
			return nil, err
		}
		recordings = append(recordings, rec)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return recordings, nil
}

// Delete removes a recording row by its ID. The video file is left alone.
func (r *RecordingRepository) Delete(id string) error {
	result, err := r.db.Exec(`DELETE FROM recordings WHERE id = ?`, id)
	if err != nil {
		return err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return err
	}

	if rowsAffected == 0 {
		return ErrNotFound
	}

	return nil
}
