package game

import (
	"fmt"
	"math/rand"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const (
	defaultPlayerName   = "Player"
	defaultOpponentName = "AI"
	baseInset           = 2 // Distance of each base from its map corner
)

// NewGame creates a session on a freshly generated map with both starting bases.
func NewGame(settings Settings, opts Options) (*Game, error) {
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(settings.Seed))
	}
	width, height := settings.MapSize.Dimensions()
	opts.Rand = rng
	return NewGameOnGrid(settings, GenerateGrid(width, height, rng), opts)
}

// NewGameOnGrid creates a session on a prepared grid. The grid must fit both bases.
func NewGameOnGrid(settings Settings, grid *Grid, opts Options) (*Game, error) {
	if grid == nil || grid.Width() < 2*baseInset+2 || grid.Height() < 2*baseInset+2 {
		return nil, fmt.Errorf("grid too small for two bases")
	}

	g := newEmptyGame(settings, grid, opts)

	humanX, humanY := baseInset, baseInset
	oppX, oppY := grid.Width()-1-baseInset, grid.Height()-1-baseInset
	if err := g.setupBase(g.playerOrder[0], humanX, humanY); err != nil {
		return nil, fmt.Errorf("player base: %w", err)
	}
	if err := g.setupBase(g.playerOrder[1], oppX, oppY); err != nil {
		return nil, fmt.Errorf("opponent base: %w", err)
	}

	g.log.Info("game created",
		zap.String("game", g.ID),
		zap.Stringer("size", settings.MapSize),
		zap.Int("width", grid.Width()),
		zap.Int("height", grid.Height()),
		zap.Int64("seed", settings.Seed),
	)
	g.emit("", EventTurnStart, "turn %d begins", g.turn)
	return g, nil
}

// newEmptyGame wires defaults and the two players onto a grid, with no entities.
func newEmptyGame(settings Settings, grid *Grid, opts Options) *Game {
	if settings.PlayerName == "" {
		settings.PlayerName = defaultPlayerName
	}
	if settings.OpponentName == "" {
		settings.OpponentName = defaultOpponentName
	}

	g := &Game{
		ID:        opts.ID,
		Settings:  settings,
		turn:      1,
		phase:     PhasePlayer,
		grid:      grid,
		players:   make(map[string]*Player),
		units:     make(map[string]*Unit),
		buildings: make(map[string]*Building),
		rng:       opts.Rand,
		oddsRng:   opts.OddsRand,
		log:       opts.Logger,
		recorder:  opts.Recorder,
		opponent:  opts.Opponent,
	}
	if g.ID == "" {
		g.ID = uuid.New().String()
	}
	if g.rng == nil {
		g.rng = rand.New(rand.NewSource(settings.Seed))
	}
	if g.oddsRng == nil {
		g.oddsRng = rand.New(rand.NewSource(settings.Seed + 1))
	}
	if g.log == nil {
		g.log = zap.NewNop()
	}
	if g.opponent == nil {
		g.opponent = GreedyAI{}
	}

	human := NewPlayer(settings.PlayerName)
	opp := NewAIPlayer(settings.OpponentName)
	for _, p := range []*Player{human, opp} {
		g.players[p.ID] = p
		g.playerOrder = append(g.playerOrder, p.ID)
	}
	return g
}

// setupBase gives a player a finished command center at (x, y) with a soldier
// to its right and an archer below it. Starting positions ignore terrain.
func (g *Game) setupBase(playerID string, x, y int) error {
	cc, err := g.placeBuilding(playerID, BuildingCommandCenter, x, y)
	if err != nil {
		return err
	}
	cc.completeConstruction()

	if _, err := g.placeUnit(playerID, UnitSoldier, x+1, y); err != nil {
		return err
	}
	if _, err := g.placeUnit(playerID, UnitArcher, x, y+1); err != nil {
		return err
	}
	return nil
}
