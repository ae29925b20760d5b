// Package game contains the core simulation engine: map grid, entities,
// resource economy, construction, combat and the turn controller.
package game

import (
	"math/rand"

	"go.uber.org/zap"

	"skirmish/pkg/maps"
)

// Game is the complete state of one session.
// A Game is not safe for concurrent use.
type Game struct {
	ID       string
	Settings Settings

	turn    int
	phase   Phase
	outcome Outcome

	grid        *Grid
	players     map[string]*Player
	playerOrder []string // [0] is the human side, [1] the opponent
	units       map[string]*Unit
	buildings   map[string]*Building

	rng      *rand.Rand // Authoritative stream: terrain, damage, criticals
	oddsRng  *rand.Rand // Advisory stream for combat odds only
	log      *zap.Logger
	recorder Recorder
	opponent Opponent
}

// Settings contains the parameters chosen at session start.
type Settings struct {
	PlayerName   string    `json:"playerName"`
	OpponentName string    `json:"opponentName"`
	MapSize      maps.Size `json:"mapSize"`
	Seed         int64     `json:"seed"`
}

// Options carries the collaborators injected into a Game.
// Zero values fall back to defaults.
type Options struct {
	ID       string // Session ID; generated when empty
	Rand     *rand.Rand
	OddsRand *rand.Rand // Combat odds stream; seeded from Seed+1 when nil
	Logger   *zap.Logger
	Recorder Recorder
	Opponent Opponent
}

// Outcome describes how a game ended.
type Outcome struct {
	Over     bool   `json:"over"`
	WinnerID string `json:"winnerId,omitempty"`
	Draw     bool   `json:"draw"`
	Turn     int    `json:"turn"`
}

// Turn returns the current turn number, starting at 1.
func (g *Game) Turn() int {
	return g.turn
}

// Phase returns the current turn phase.
func (g *Game) Phase() Phase {
	return g.phase
}

// Outcome returns the terminal outcome, zero while the game runs.
func (g *Game) Outcome() Outcome {
	return g.outcome
}

// IsOver returns true once the game reached GameOver.
func (g *Game) IsOver() bool {
	return g.phase == PhaseGameOver
}

// Grid returns the map grid for read-only queries.
func (g *Game) Grid() *Grid {
	return g.grid
}

// HumanID returns the ID of the player acting in the player phase.
func (g *Game) HumanID() string {
	return g.playerOrder[0]
}

// OpponentID returns the ID of the scripted opponent.
func (g *Game) OpponentID() string {
	return g.playerOrder[1]
}

// OpponentOf returns the other faction's ID, or empty if playerID is unknown.
func (g *Game) OpponentOf(playerID string) string {
	switch playerID {
	case g.playerOrder[0]:
		return g.playerOrder[1]
	case g.playerOrder[1]:
		return g.playerOrder[0]
	default:
		return ""
	}
}

// activePlayerID returns the player allowed to act in the current phase.
func (g *Game) activePlayerID() string {
	switch g.phase {
	case PhasePlayer:
		return g.playerOrder[0]
	case PhaseOpponent:
		return g.playerOrder[1]
	default:
		return ""
	}
}

// checkActor validates that playerID may issue commands right now.
func (g *Game) checkActor(playerID string) error {
	if g.phase == PhaseGameOver {
		return ErrGameOver
	}
	if playerID == "" || g.activePlayerID() != playerID {
		return ErrNotYourTurn
	}
	return nil
}

// HasLivingCommandCenter checks if a player still owns a command center with health left.
func (g *Game) HasLivingCommandCenter(playerID string) bool {
	p := g.players[playerID]
	if p == nil {
		return false
	}
	for _, id := range p.BuildingIDs {
		b := g.buildings[id]
		if b != nil && b.Kind == BuildingCommandCenter && b.Health > 0 {
			return true
		}
	}
	return false
}

// evaluateVictory checks both factions and moves to GameOver if either lost
// its command center. Returns true if the game ended.
func (g *Game) evaluateVictory() bool {
	if g.phase == PhaseGameOver {
		return true
	}

	human, opp := g.playerOrder[0], g.playerOrder[1]
	humanAlive := g.HasLivingCommandCenter(human)
	oppAlive := g.HasLivingCommandCenter(opp)

	if humanAlive && oppAlive {
		return false
	}

	out := Outcome{Over: true, Turn: g.turn}
	switch {
	case !humanAlive && !oppAlive:
		out.Draw = true
	case !oppAlive:
		out.WinnerID = human
	default:
		out.WinnerID = opp
	}

	for _, id := range g.playerOrder {
		if id != out.WinnerID {
			g.players[id].Alive = false
		}
	}
	g.outcome = out
	g.phase = PhaseGameOver

	if out.Draw {
		g.emit("", EventGameEnd, "both command centers destroyed, draw")
	} else {
		g.emit(out.WinnerID, EventGameEnd, "%s wins on turn %d", g.players[out.WinnerID].Name, g.turn)
	}
	return true
}

// placeUnit puts a new unit into the arena, its owner and its tile.
func (g *Game) placeUnit(owner string, kind UnitKind, x, y int) (*Unit, error) {
	p := g.players[owner]
	if p == nil {
		return nil, ErrInvalidTarget
	}
	t, err := g.grid.tile(x, y)
	if err != nil {
		return nil, err
	}
	if t.HasUnit() {
		return nil, ErrTileUnavailable
	}
	u, ok := newUnit(kind, owner, x, y)
	if !ok {
		return nil, ErrInvalidAction
	}

	g.units[u.ID] = u
	p.addUnit(u.ID)
	g.occupy(t, u)
	return u, nil
}

// placeBuilding puts a new, unbuilt building into the arena, its owner and its tile.
func (g *Game) placeBuilding(owner string, kind BuildingKind, x, y int) (*Building, error) {
	p := g.players[owner]
	if p == nil {
		return nil, ErrInvalidTarget
	}
	t, err := g.grid.tile(x, y)
	if err != nil {
		return nil, err
	}
	if t.HasBuilding() {
		return nil, ErrTileUnavailable
	}
	b, ok := newBuilding(kind, owner, x, y)
	if !ok {
		return nil, ErrInvalidAction
	}

	g.buildings[b.ID] = b
	p.addBuilding(b.ID)
	t.BuildingID = b.ID
	return b, nil
}

// occupy attaches a unit to a tile and marks it explored for the human side.
func (g *Game) occupy(t *Tile, u *Unit) {
	t.UnitID = u.ID
	if u.Owner == g.playerOrder[0] {
		t.Explored = true
	}
}

// damageUnit applies damage and performs destruction bookkeeping.
// Returns true if the unit died.
func (g *Game) damageUnit(u *Unit, amount int) bool {
	if !u.takeDamage(amount) {
		return false
	}

	if p := g.players[u.Owner]; p != nil {
		p.removeUnit(u.ID)
	}
	if t, err := g.grid.tile(u.X, u.Y); err == nil && t.UnitID == u.ID {
		t.UnitID = ""
	}
	delete(g.units, u.ID)

	g.emit(u.Owner, EventUnitKilled, "%s at (%d, %d) was killed", u.Kind, u.X, u.Y)
	return true
}

// damageBuilding applies damage, performs destruction bookkeeping and
// re-evaluates victory. Returns true if the building was destroyed.
func (g *Game) damageBuilding(b *Building, amount int) bool {
	if !b.takeDamage(amount) {
		return false
	}

	p := g.players[b.Owner]
	if p != nil {
		p.removeBuilding(b.ID)
		if b.Kind == BuildingCommandCenter {
			p.LostCommand = true
		}
	}
	if t, err := g.grid.tile(b.X, b.Y); err == nil && t.BuildingID == b.ID {
		t.BuildingID = ""
	}
	delete(g.buildings, b.ID)

	g.emit(b.Owner, EventBuildingDestroyed, "%s at (%d, %d) was destroyed", b.Kind, b.X, b.Y)
	g.evaluateVictory()
	return true
}
