package database

import (
	"database/sql"
	"encoding/json"
	"errors"
	"time"

	"skirmish/internal/game"
)

// SessionStatus represents the current status of a session.
type SessionStatus string

const (
	SessionRunning  SessionStatus = "running"  // Game in progress
	SessionFinished SessionStatus = "finished" // Game reached Game Over
)

// Session contains the stored record of one game.
type Session struct {
	ID           string
	PlayerName   string
	OpponentName string
	MapSize      string
	Seed         int64
	Settings     game.Settings
	Status       SessionStatus
	WinnerID     string
	IsDraw       bool
	FinalTurn    int
	CreatedAt    time.Time
	EndedAt      *time.Time
}

// ErrSessionNotFound is returned when a session is not found.
var ErrSessionNotFound = errors.New("session not found")

// CreateSession records the start of a game.
func (db *DB) CreateSession(id string, settings game.Settings) (*Session, error) {
	settingsJSON, err := json.Marshal(settings)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	_, err = db.conn.Exec(`
		INSERT INTO sessions (id, player_name, opponent_name, map_size, seed, settings_json, status, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, id, settings.PlayerName, settings.OpponentName, settings.MapSize.String(), settings.Seed,
		string(settingsJSON), SessionRunning, now)
	if err != nil {
		return nil, err
	}

	return &Session{
		ID:           id,
		PlayerName:   settings.PlayerName,
		OpponentName: settings.OpponentName,
		MapSize:      settings.MapSize.String(),
		Seed:         settings.Seed,
		Settings:     settings,
		Status:       SessionRunning,
		CreatedAt:    now,
	}, nil
}

// GetSession retrieves a session by ID.
func (db *DB) GetSession(id string) (*Session, error) {
	var s Session
	var settingsJSON string
	var winnerID sql.NullString
	var finalTurn sql.NullInt64
	var endedAt sql.NullTime

	err := db.conn.QueryRow(`
		SELECT id, player_name, opponent_name, map_size, seed, settings_json,
		       status, winner_id, is_draw, final_turn, created_at, ended_at
		FROM sessions WHERE id = ?
	`, id).Scan(&s.ID, &s.PlayerName, &s.OpponentName, &s.MapSize, &s.Seed, &settingsJSON,
		&s.Status, &winnerID, &s.IsDraw, &finalTurn, &s.CreatedAt, &endedAt)

	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, err
	}

	if winnerID.Valid {
		s.WinnerID = winnerID.String
	}
	if finalTurn.Valid {
		s.FinalTurn = int(finalTurn.Int64)
	}
	if endedAt.Valid {
		s.EndedAt = &endedAt.Time
	}

	if err := json.Unmarshal([]byte(settingsJSON), &s.Settings); err != nil {
		return nil, err
	}
	return &s, nil
}

// EndSession marks a session as finished with its outcome.
func (db *DB) EndSession(id string, outcome game.Outcome) error {
	var winner sql.NullString
	if outcome.WinnerID != "" {
		winner = sql.NullString{String: outcome.WinnerID, Valid: true}
	}

	res, err := db.conn.Exec(`
		UPDATE sessions SET status = ?, winner_id = ?, is_draw = ?, final_turn = ?, ended_at = ?
		WHERE id = ?
	`, SessionFinished, winner, outcome.Draw, outcome.Turn, time.Now(), id)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return ErrSessionNotFound
	}
	return nil
}

// ListSessions returns the most recent sessions first.
func (db *DB) ListSessions(limit int) ([]*Session, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := db.conn.Query(`
		SELECT id FROM sessions ORDER BY created_at DESC, rowid DESC LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return nil, err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// SetMaxOpenConns(1): the cursor above must be closed before these lookups
	sessions := make([]*Session, 0, len(ids))
	for _, id := range ids {
		s, err := db.GetSession(id)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	return sessions, nil
}

// DeleteSession permanently deletes a session and all associated data.
func (db *DB) DeleteSession(id string) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	// Delete in order of dependencies
	if _, err := tx.Exec(`DELETE FROM game_actions WHERE game_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM game_history WHERE game_id = ?`, id); err != nil {
		return err
	}
	if _, err := tx.Exec(`DELETE FROM sessions WHERE id = ?`, id); err != nil {
		return err
	}

	return tx.Commit()
}
