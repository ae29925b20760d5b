package protocol

import "encoding/json"

// ==================== Action Payloads ====================

// MoveUnitPayload moves a unit to a tile.
type MoveUnitPayload struct {
	UnitID string `json:"unit_id"`
	X      int    `json:"x"`
	Y      int    `json:"y"`
}

// AttackPayload makes one unit attack another.
type AttackPayload struct {
	AttackerID string `json:"attacker_id"`
	DefenderID string `json:"defender_id"`
}

// AttackBuildingPayload makes a unit attack a building.
type AttackBuildingPayload struct {
	AttackerID string `json:"attacker_id"`
	BuildingID string `json:"building_id"`
}

// BuildPayload starts construction of a building.
type BuildPayload struct {
	PlayerID string `json:"player_id"`
	Building string `json:"building"` // "farm", "mine", "sawmill", "training_camp", "command_center"
	X        int    `json:"x"`
	Y        int    `json:"y"`
}

// RecruitPayload trains a unit at a training camp.
type RecruitPayload struct {
	CampID string `json:"camp_id"`
	Unit   string `json:"unit"` // "soldier", "archer", "cavalry"
}

// UnitSpecialPayload triggers a unit's special action.
type UnitSpecialPayload struct {
	UnitID   string `json:"unit_id"`
	TargetID string `json:"target_id,omitempty"` // Not needed for Shield Wall
}

// BuildingSpecialPayload triggers a building's special action.
type BuildingSpecialPayload struct {
	BuildingID string `json:"building_id"`
}

// EndTurnPayload ends the player phase.
type EndTurnPayload struct{}

// QueryOddsPayload asks for an advisory win estimate.
type QueryOddsPayload struct {
	AttackerID string `json:"attacker_id"`
	DefenderID string `json:"defender_id"`
	Trials     int    `json:"trials,omitempty"`
}

// ==================== Game Flow Payloads ====================

// ActionResultPayload is the result of a command.
type ActionResultPayload struct {
	ActionID string          `json:"action_id"`
	Action   MessageType     `json:"action"`
	Success  bool            `json:"success"`
	Error    *ErrorPayload   `json:"error,omitempty"`
	Result   json.RawMessage `json:"result,omitempty"`
}

// CombatOddsPayload reports an advisory win estimate.
type CombatOddsPayload struct {
	AttackerID string  `json:"attacker_id"`
	DefenderID string  `json:"defender_id"`
	WinRate    float64 `json:"win_rate"`
}

// GameStatePayload contains a snapshot of the game.
type GameStatePayload struct {
	GameID  string      `json:"game_id"`
	Turn    int         `json:"turn"`
	Phase   string      `json:"phase"`
	Players interface{} `json:"players"`
	Outcome interface{} `json:"outcome"`
	Map     string      `json:"map,omitempty"`
}

// GameEndedPayload is sent when the game concludes.
type GameEndedPayload struct {
	WinnerID   string `json:"winner_id,omitempty"`
	WinnerName string `json:"winner_name,omitempty"`
	Draw       bool   `json:"draw"`
	Turn       int    `json:"turn"`
}
