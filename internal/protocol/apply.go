package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"skirmish/internal/game"
)

// ErrMalformed is returned for messages that cannot be decoded into a command.
var ErrMalformed = errors.New("malformed message")

var buildingNames = map[string]game.BuildingKind{
	"command_center": game.BuildingCommandCenter,
	"farm":           game.BuildingFarm,
	"mine":           game.BuildingMine,
	"sawmill":        game.BuildingSawmill,
	"training_camp":  game.BuildingTrainingCamp,
}

var unitNames = map[string]game.UnitKind{
	"soldier": game.UnitSoldier,
	"archer":  game.UnitArcher,
	"cavalry": game.UnitCavalry,
}

// ParseBuilding converts a wire name into a building kind.
func ParseBuilding(name string) (game.BuildingKind, error) {
	k, ok := buildingNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown building %q: %w", name, ErrMalformed)
	}
	return k, nil
}

// ParseUnit converts a wire name into a unit kind.
func ParseUnit(name string) (game.UnitKind, error) {
	k, ok := unitNames[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return 0, fmt.Errorf("unknown unit %q: %w", name, ErrMalformed)
	}
	return k, nil
}

// CodeFor maps an engine error onto its wire error code.
func CodeFor(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrMalformed):
		return ErrCodeMalformed
	case errors.Is(err, game.ErrInsufficientResources):
		return ErrCodeInsufficientResources
	case errors.Is(err, game.ErrOutOfRange):
		return ErrCodeOutOfRange
	case errors.Is(err, game.ErrAlreadyActed):
		return ErrCodeAlreadyActed
	case errors.Is(err, game.ErrInvalidTarget):
		return ErrCodeInvalidTarget
	case errors.Is(err, game.ErrTileUnavailable):
		return ErrCodeTileUnavailable
	case errors.Is(err, game.ErrOutOfBounds):
		return ErrCodeOutOfBounds
	case errors.Is(err, game.ErrNotYourTurn):
		return ErrCodeNotYourTurn
	case errors.Is(err, game.ErrNotBuilt):
		return ErrCodeNotBuilt
	case errors.Is(err, game.ErrGameOver):
		return ErrCodeGameOver
	case errors.Is(err, game.ErrInvalidAction):
		return ErrCodeInvalidAction
	default:
		return ErrCodeInternalError
	}
}

// Apply executes a command message against a game and returns the action_result
// reply. The returned error is the command's failure, also carried in the reply.
func Apply(g *game.Game, msg *Message) (*Message, error) {
	result, err := dispatch(g, msg)

	reply := ActionResultPayload{
		ActionID: msg.ID,
		Action:   msg.Type,
		Success:  err == nil,
	}
	if err != nil {
		reply.Error = &ErrorPayload{Code: CodeFor(err), Message: err.Error()}
	} else if result != nil {
		data, merr := json.Marshal(result)
		if merr != nil {
			return nil, merr
		}
		reply.Result = data
	}

	out, merr := NewMessage(TypeActionResult, reply)
	if merr != nil {
		return nil, merr
	}
	return out, err
}

func dispatch(g *game.Game, msg *Message) (interface{}, error) {
	switch msg.Type {
	case TypeMoveUnit:
		var p MoveUnitPayload
		if err := parse(msg, &p); err != nil {
			return nil, err
		}
		if err := g.MoveUnit(p.UnitID, p.X, p.Y); err != nil {
			return nil, err
		}
		u, _ := g.Unit(p.UnitID)
		return u, nil

	case TypeAttack:
		var p AttackPayload
		if err := parse(msg, &p); err != nil {
			return nil, err
		}
		return g.Attack(p.AttackerID, p.DefenderID)

	case TypeAttackBuilding:
		var p AttackBuildingPayload
		if err := parse(msg, &p); err != nil {
			return nil, err
		}
		return g.AttackBuilding(p.AttackerID, p.BuildingID)

	case TypeBuild:
		var p BuildPayload
		if err := parse(msg, &p); err != nil {
			return nil, err
		}
		kind, err := ParseBuilding(p.Building)
		if err != nil {
			return nil, err
		}
		playerID := p.PlayerID
		if playerID == "" {
			playerID = g.HumanID()
		}
		return g.Construct(playerID, kind, p.X, p.Y)

	case TypeRecruit:
		var p RecruitPayload
		if err := parse(msg, &p); err != nil {
			return nil, err
		}
		kind, err := ParseUnit(p.Unit)
		if err != nil {
			return nil, err
		}
		return g.Recruit(p.CampID, kind)

	case TypeUnitSpecial:
		var p UnitSpecialPayload
		if err := parse(msg, &p); err != nil {
			return nil, err
		}
		return g.UnitSpecial(p.UnitID, p.TargetID)

	case TypeBuildingSpecial:
		var p BuildingSpecialPayload
		if err := parse(msg, &p); err != nil {
			return nil, err
		}
		return g.BuildingSpecial(p.BuildingID)

	case TypeEndTurn:
		return g.EndTurn()

	case TypeQueryOdds:
		var p QueryOddsPayload
		if err := parse(msg, &p); err != nil {
			return nil, err
		}
		rate, err := g.CombatOdds(p.AttackerID, p.DefenderID, p.Trials)
		if err != nil {
			return nil, err
		}
		return CombatOddsPayload{AttackerID: p.AttackerID, DefenderID: p.DefenderID, WinRate: rate}, nil

	default:
		return nil, fmt.Errorf("unknown message type %q: %w", msg.Type, ErrMalformed)
	}
}

func parse(msg *Message, v interface{}) error {
	if len(msg.Payload) == 0 {
		return fmt.Errorf("%s: empty payload: %w", msg.Type, ErrMalformed)
	}
	if err := msg.ParsePayload(v); err != nil {
		return fmt.Errorf("%s: %v: %w", msg.Type, err, ErrMalformed)
	}
	return nil
}

// StateOf builds a game_state payload from the engine's query surface.
func StateOf(g *game.Game) GameStatePayload {
	return GameStatePayload{
		GameID:  g.ID,
		Turn:    g.Turn(),
		Phase:   g.Phase().String(),
		Players: g.Players(),
		Outcome: g.Outcome(),
		Map:     g.RenderMap(),
	}
}

// EndedOf builds a game_ended payload, or false while the game runs.
func EndedOf(g *game.Game) (GameEndedPayload, bool) {
	out := g.Outcome()
	if !out.Over {
		return GameEndedPayload{}, false
	}
	p := GameEndedPayload{WinnerID: out.WinnerID, Draw: out.Draw, Turn: out.Turn}
	if winner, ok := g.Player(out.WinnerID); ok {
		p.WinnerName = winner.Name
	}
	return p, true
}
