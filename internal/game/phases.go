package game

import "go.uber.org/zap"

// Phase represents the current stage of a turn.
type Phase int

const (
	PhasePlayer Phase = iota
	PhaseVictoryCheckPlayer
	PhaseOpponent
	PhaseVictoryCheckOpponent
	PhaseProduction
	PhaseReset
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhasePlayer:
		return "Player"
	case PhaseVictoryCheckPlayer:
		return "Victory Check (player)"
	case PhaseOpponent:
		return "Opponent"
	case PhaseVictoryCheckOpponent:
		return "Victory Check (opponent)"
	case PhaseProduction:
		return "Production"
	case PhaseReset:
		return "Reset"
	case PhaseGameOver:
		return "Game Over"
	default:
		return "Unknown"
	}
}

// Opponent scripts the actions of a faction during its phase.
type Opponent interface {
	Act(g *Game, playerID string)
}

// TurnReport summarizes one EndTurn cycle.
type TurnReport struct {
	Turn       int               `json:"turn"`
	Phases     []Phase           `json:"phases"`
	Production map[string]Bundle `json:"production"` // Player ID -> resources credited
	Completed  []string          `json:"completed"`  // Buildings finished this turn
	Outcome    Outcome           `json:"outcome"`
}

// EndTurn closes the player phase and drives the turn controller through
// one full cycle: victory check, opponent actions, victory check,
// production and reset. It stops early if the game ends.
func (g *Game) EndTurn() (TurnReport, error) {
	if g.phase == PhaseGameOver {
		return TurnReport{}, ErrGameOver
	}
	if g.phase != PhasePlayer {
		return TurnReport{}, ErrInvalidAction
	}

	report := TurnReport{
		Turn:       g.turn,
		Production: make(map[string]Bundle),
	}

	for {
		g.nextPhase(&report)
		report.Phases = append(report.Phases, g.phase)
		if g.phase == PhasePlayer || g.phase == PhaseGameOver {
			break
		}
	}

	report.Outcome = g.outcome
	return report, nil
}

// nextPhase advances the state machine by one transition.
func (g *Game) nextPhase(report *TurnReport) {
	switch g.phase {
	case PhasePlayer:
		g.phase = PhaseVictoryCheckPlayer

	case PhaseVictoryCheckPlayer:
		if g.evaluateVictory() {
			return
		}
		g.phase = PhaseOpponent

	case PhaseOpponent:
		g.runOpponent()
		// A building kill during the opponent's actions may already have ended the game
		if g.phase == PhaseGameOver {
			return
		}
		g.phase = PhaseVictoryCheckOpponent

	case PhaseVictoryCheckOpponent:
		if g.evaluateVictory() {
			return
		}
		g.phase = PhaseProduction

	case PhaseProduction:
		g.processProduction(report)
		g.phase = PhaseReset

	case PhaseReset:
		g.resetPlayerTurns()
		g.turn++
		g.phase = PhasePlayer
		g.emit("", EventTurnStart, "turn %d begins", g.turn)
	}
}

// runOpponent lets the scripted opponent act.
func (g *Game) runOpponent() {
	if g.opponent == nil {
		return
	}
	g.opponent.Act(g, g.playerOrder[1])
}

// processProduction advances construction and collects resources, once per building.
func (g *Game) processProduction(report *TurnReport) {
	for _, pid := range g.playerOrder {
		player := g.players[pid]
		total := Bundle{}

		ids := append([]string(nil), player.BuildingIDs...)
		for _, id := range ids {
			b := g.buildings[id]
			if b == nil {
				continue
			}

			if b.AdvanceConstruction() == ConstructionCompleted {
				report.Completed = append(report.Completed, b.ID)
				g.emit(pid, EventConstructionDone, "%s at (%d, %d) is now operational", b.Kind, b.X, b.Y)
			}

			for kind, amount := range b.produce(player.Stockpile) {
				total[kind] += amount
			}
		}

		report.Production[pid] = total
		if len(total) > 0 {
			g.emit(pid, EventProduction, "produced %s", total.String())
		}
	}

	g.log.Debug("production complete", zap.Int("turn", g.turn))
}

// resetPlayerTurns clears per-turn action flags on every surviving entity.
func (g *Game) resetPlayerTurns() {
	for _, pid := range g.playerOrder {
		p := g.players[pid]
		for _, id := range p.UnitIDs {
			if u := g.units[id]; u != nil {
				u.resetTurn()
			}
		}
		for _, id := range p.BuildingIDs {
			if b := g.buildings[id]; b != nil {
				b.UsedSpecial = false
			}
		}
	}
}
