package database

import (
	"time"

	"skirmish/internal/game"
)

// HistoryEvent represents a single game event in the history log.
type HistoryEvent struct {
	ID         int64
	GameID     string
	Turn       int
	Phase      string
	PlayerID   string
	PlayerName string
	EventType  string
	Message    string
	CreatedAt  time.Time
}

// AddHistoryEvent adds a new event to the game history.
func (db *DB) AddHistoryEvent(gameID string, turn int, phase string, playerID, playerName, eventType, message string) error {
	_, err := db.conn.Exec(`
		INSERT INTO game_history (game_id, turn, phase, player_id, player_name, event_type, message, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, gameID, turn, phase, playerID, playerName, eventType, message, time.Now())
	return err
}

// HistoryRecorder returns a recorder that appends engine events to a session's history.
func (db *DB) HistoryRecorder(gameID string) game.Recorder {
	return game.RecorderFunc(func(e game.Event) error {
		return db.AddHistoryEvent(gameID, e.Turn, e.Phase.String(), e.PlayerID, e.PlayerName, string(e.Type), e.Message)
	})
}

// GetGameHistory retrieves all history events for a game, ordered chronologically.
func (db *DB) GetGameHistory(gameID string) ([]*HistoryEvent, error) {
	return db.GetGameHistorySince(gameID, 0)
}

// GetGameHistorySince retrieves history events after a given ID (for incremental reads).
func (db *DB) GetGameHistorySince(gameID string, afterID int64) ([]*HistoryEvent, error) {
	rows, err := db.conn.Query(`
		SELECT id, game_id, turn, phase, player_id, player_name, event_type, message, created_at
		FROM game_history
		WHERE game_id = ? AND id > ?
		ORDER BY id ASC
	`, gameID, afterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var events []*HistoryEvent
	for rows.Next() {
		e := &HistoryEvent{}
		if err := rows.Scan(&e.ID, &e.GameID, &e.Turn, &e.Phase, &e.PlayerID, &e.PlayerName, &e.EventType, &e.Message, &e.CreatedAt); err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	return events, rows.Err()
}
