package game

import (
	"fmt"

	"go.uber.org/zap"
)

// EventType identifies a kind of game event.
type EventType string

// Event types for game history
const (
	EventTurnStart         EventType = "turn_start"
	EventMove              EventType = "move"
	EventAttack            EventType = "attack"
	EventCounterAttack     EventType = "counter_attack"
	EventUnitKilled        EventType = "unit_killed"
	EventBuildingAttacked  EventType = "building_attacked"
	EventBuildingDestroyed EventType = "building_destroyed"
	EventConstructionStart EventType = "construction_start"
	EventConstructionDone  EventType = "construction_done"
	EventRecruit           EventType = "recruit"
	EventProduction        EventType = "production"
	EventSpecial           EventType = "special"
	EventGameEnd           EventType = "game_end"
)

// Event is a single entry of the game's history.
type Event struct {
	Turn       int       `json:"turn"`
	Phase      Phase     `json:"phase"`
	PlayerID   string    `json:"playerId,omitempty"`
	PlayerName string    `json:"playerName,omitempty"`
	Type       EventType `json:"type"`
	Message    string    `json:"message"`
}

// Recorder receives every event the engine emits.
type Recorder interface {
	Record(e Event) error
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(e Event) error

// Record calls f(e).
func (f RecorderFunc) Record(e Event) error {
	return f(e)
}

// emit logs an event and forwards it to the recorder.
// Recorder failures are logged, never returned: history must not stop the game.
func (g *Game) emit(playerID string, typ EventType, format string, args ...interface{}) {
	e := Event{
		Turn:     g.turn,
		Phase:    g.phase,
		PlayerID: playerID,
		Type:     typ,
		Message:  fmt.Sprintf(format, args...),
	}
	if p := g.players[playerID]; p != nil {
		e.PlayerName = p.Name
	}

	g.log.Debug(e.Message,
		zap.String("event", string(typ)),
		zap.Int("turn", e.Turn),
		zap.Stringer("phase", e.Phase),
		zap.String("player", e.PlayerName),
	)

	if g.recorder == nil {
		return
	}
	if err := g.recorder.Record(e); err != nil {
		g.log.Warn("failed to record event", zap.String("event", string(typ)), zap.Error(err))
	}
}
