package database

// schemaStep is one forward-only change. Its version is its position plus one,
// stored in the file's user_version.
type schemaStep struct {
	name string
	sql  string
}

var schema = []schemaStep{
	{
		name: "initial_schema",
		sql: `
			-- Sessions: one row per game, closed when the game ends
			CREATE TABLE sessions (
				id TEXT PRIMARY KEY,
				player_name TEXT NOT NULL,
				opponent_name TEXT NOT NULL,
				map_size TEXT NOT NULL,
				seed INTEGER NOT NULL,
				settings_json TEXT NOT NULL,
				status TEXT NOT NULL DEFAULT 'running',
				winner_id TEXT,
				is_draw BOOLEAN DEFAULT FALSE,
				final_turn INTEGER,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				ended_at DATETIME
			);
			CREATE INDEX idx_sessions_status ON sessions(status);

			-- Game history: every engine event, in order
			CREATE TABLE game_history (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				game_id TEXT NOT NULL,
				turn INTEGER NOT NULL,
				phase TEXT NOT NULL,
				player_id TEXT,
				player_name TEXT,
				event_type TEXT NOT NULL,
				message TEXT NOT NULL,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (game_id) REFERENCES sessions(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_game_history_game ON game_history(game_id);

			-- Game actions: log of all commands for replay/debugging
			CREATE TABLE game_actions (
				id INTEGER PRIMARY KEY AUTOINCREMENT,
				game_id TEXT NOT NULL,
				player_id TEXT,
				action_type TEXT NOT NULL,
				action_json TEXT NOT NULL,
				result_json TEXT,
				success BOOLEAN NOT NULL DEFAULT TRUE,
				created_at DATETIME DEFAULT CURRENT_TIMESTAMP,
				FOREIGN KEY (game_id) REFERENCES sessions(id) ON DELETE CASCADE
			);
			CREATE INDEX idx_game_actions_game ON game_actions(game_id);
		`,
	},
}
