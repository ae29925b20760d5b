package database

import "time"

// Action is one logged command and its result.
type Action struct {
	ID         int64
	GameID     string
	PlayerID   string
	ActionType string
	ActionJSON string
	ResultJSON string
	Success    bool
	CreatedAt  time.Time
}

// LogAction logs a game action.
func (db *DB) LogAction(gameID, playerID, actionType, actionJSON, resultJSON string, success bool) error {
	_, err := db.conn.Exec(`
		INSERT INTO game_actions (game_id, player_id, action_type, action_json, result_json, success, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, gameID, playerID, actionType, actionJSON, resultJSON, success, time.Now())
	return err
}

// GetActions retrieves the command log of a game in order.
func (db *DB) GetActions(gameID string) ([]*Action, error) {
	rows, err := db.conn.Query(`
		SELECT id, game_id, COALESCE(player_id, ''), action_type, action_json,
		       COALESCE(result_json, ''), success, created_at
		FROM game_actions
		WHERE game_id = ?
		ORDER BY id ASC
	`, gameID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var actions []*Action
	for rows.Next() {
		a := &Action{}
		if err := rows.Scan(&a.ID, &a.GameID, &a.PlayerID, &a.ActionType, &a.ActionJSON, &a.ResultJSON, &a.Success, &a.CreatedAt); err != nil {
			return nil, err
		}
		actions = append(actions, a)
	}
	return actions, rows.Err()
}
