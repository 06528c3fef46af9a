package database

import (
	"fmt"
	"time"

	"github.com/hexlab/tacboard/internal/geometry"
)

// Session is one overlay run, from launch to shutdown.
type Session struct {
	ID        int64
	Game      string
	StartedAt time.Time
	EndedAt   *time.Time
	Crop      geometry.Rect
}

// Alert is a stored analysis result row.
type Alert struct {
	ID        int64
	SessionID int64
	Severity  string
	Message   string
	CreatedAt time.Time
}

// BeginSession records a new session and returns its id.
func (db *DB) BeginSession(game string, crop geometry.Rect) (int64, error) {
	res, err := db.conn.Exec(`
		INSERT INTO sessions (game, started_at, crop_x, crop_y, crop_width, crop_height)
		VALUES (?, ?, ?, ?, ?, ?)
	`, game, time.Now(), crop.X, crop.Y, crop.Width, crop.Height)
	if err != nil {
		return 0, fmt.Errorf("failed to create session: %w", err)
	}
	return res.LastInsertId()
}

// EndSession stamps the session's end time.
func (db *DB) EndSession(id int64) error {
	_, err := db.conn.Exec(`UPDATE sessions SET ended_at = ? WHERE id = ?`, time.Now(), id)
	if err != nil {
		return fmt.Errorf("failed to end session: %w", err)
	}
	return nil
}

// UpdateSessionCrop records a crop region change mid-session.
func (db *DB) UpdateSessionCrop(id int64, crop geometry.Rect) error {
	_, err := db.conn.Exec(`
		UPDATE sessions SET crop_x = ?, crop_y = ?, crop_width = ?, crop_height = ?
		WHERE id = ?
	`, crop.X, crop.Y, crop.Width, crop.Height, id)
	if err != nil {
		return fmt.Errorf("failed to update session crop: %w", err)
	}
	return nil
}

// GetSession fetches a session by id.
func (db *DB) GetSession(id int64) (*Session, error) {
	s := &Session{}
	err := db.conn.QueryRow(`
		SELECT id, game, started_at, ended_at, crop_x, crop_y, crop_width, crop_height
		FROM sessions WHERE id = ?
	`, id).Scan(&s.ID, &s.Game, &s.StartedAt, &s.EndedAt,
		&s.Crop.X, &s.Crop.Y, &s.Crop.Width, &s.Crop.Height)
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	return s, nil
}

// RecordAnalysis stores one alert produced by the analysis pipeline.
func (db *DB) RecordAnalysis(sessionID int64, severity, message string) error {
	_, err := db.conn.Exec(`
		INSERT INTO analysis_results (session_id, severity, message, created_at)
		VALUES (?, ?, ?, ?)
	`, sessionID, severity, message, time.Now())
	if err != nil {
		return fmt.Errorf("failed to record analysis result: %w", err)
	}
	return nil
}

// RecentAlerts returns the latest alerts for a session, newest first.
func (db *DB) RecentAlerts(sessionID int64, limit int) ([]Alert, error) {
	rows, err := db.conn.Query(`
		SELECT id, session_id, severity, message, created_at
		FROM analysis_results
		WHERE session_id = ?
		ORDER BY created_at DESC, id DESC
		LIMIT ?
	`, sessionID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query alerts: %w", err)
	}
	defer rows.Close()

	var alerts []Alert
	for rows.Next() {
		var a Alert
		if err := rows.Scan(&a.ID, &a.SessionID, &a.Severity, &a.Message, &a.CreatedAt); err != nil {
			return nil, err
		}
		alerts = append(alerts, a)
	}
	return alerts, rows.Err()
}
