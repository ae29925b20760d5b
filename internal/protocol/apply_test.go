package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
	"testing"

	"skirmish/internal/game"
	"skirmish/pkg/maps"
)

type passive struct{}

func (passive) Act(*game.Game, string) {}

func createTestGame(t *testing.T) *game.Game {
	t.Helper()
	grid := game.NewGrid(maps.Uniform(10, 10, maps.TerrainGrass))
	g, err := game.NewGameOnGrid(game.Settings{Seed: 5}, grid, game.Options{Opponent: passive{}})
	if err != nil {
		t.Fatalf("NewGameOnGrid failed: %v", err)
	}
	return g
}

func mustMessage(t *testing.T, typ MessageType, payload interface{}) *Message {
	t.Helper()
	msg, err := NewMessage(typ, payload)
	if err != nil {
		t.Fatalf("NewMessage failed: %v", err)
	}
	return msg
}

func decodeResult(t *testing.T, reply *Message) ActionResultPayload {
	t.Helper()
	if reply.Type != TypeActionResult {
		t.Fatalf("Expected action_result, got %s", reply.Type)
	}
	var res ActionResultPayload
	if err := reply.ParsePayload(&res); err != nil {
		t.Fatalf("ParsePayload failed: %v", err)
	}
	return res
}

func TestApply_MoveUnit(t *testing.T) {
	g := createTestGame(t)
	soldier := g.Units(g.HumanID())[0]

	msg := mustMessage(t, TypeMoveUnit, MoveUnitPayload{UnitID: soldier.ID, X: soldier.X + 1, Y: soldier.Y})
	reply, err := Apply(g, msg)
	if err != nil {
		t.Fatalf("Apply failed: %v", err)
	}

	res := decodeResult(t, reply)
	if !res.Success || res.ActionID != msg.ID || res.Action != TypeMoveUnit {
		t.Errorf("Unexpected result %+v", res)
	}
	var moved game.UnitView
	if err := json.Unmarshal(res.Result, &moved); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if moved.X != soldier.X+1 || !moved.HasActed {
		t.Errorf("Expected moved unit in result, got %+v", moved)
	}
}

func TestApply_BuildAndRecruitErrors(t *testing.T) {
	g := createTestGame(t)

	reply, err := Apply(g, mustMessage(t, TypeBuild, BuildPayload{Building: "farm", X: 5, Y: 5}))
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	var farm game.BuildingView
	if err := json.Unmarshal(decodeResult(t, reply).Result, &farm); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if farm.Kind != game.BuildingFarm || farm.Built {
		t.Errorf("Expected an unbuilt farm, got %+v", farm)
	}

	reply, err = Apply(g, mustMessage(t, TypeRecruit, RecruitPayload{CampID: farm.ID, Unit: "soldier"}))
	if !errors.Is(err, game.ErrInvalidAction) {
		t.Errorf("Expected ErrInvalidAction, got %v", err)
	}
	res := decodeResult(t, reply)
	if res.Success || res.Error == nil || res.Error.Code != ErrCodeInvalidAction {
		t.Errorf("Expected invalid_action error, got %+v", res)
	}
}

func TestApply_Malformed(t *testing.T) {
	g := createTestGame(t)

	_, err := Apply(g, mustMessage(t, TypeBuild, BuildPayload{Building: "castle"}))
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed for unknown building, got %v", err)
	}

	msg := &Message{Type: "dance", ID: "x"}
	reply, err := Apply(g, msg)
	if !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed for unknown type, got %v", err)
	}
	if res := decodeResult(t, reply); res.Error.Code != ErrCodeMalformed {
		t.Errorf("Expected malformed code, got %+v", res.Error)
	}

	msg = &Message{Type: TypeAttack, ID: "y", Payload: json.RawMessage(`{"attacker_id": 3}`)}
	if _, err := Apply(g, msg); !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed for bad payload, got %v", err)
	}
}

func TestApply_EndTurn(t *testing.T) {
	g := createTestGame(t)

	reply, err := Apply(g, mustMessage(t, TypeEndTurn, EndTurnPayload{}))
	if err != nil {
		t.Fatalf("EndTurn failed: %v", err)
	}
	var report game.TurnReport
	if err := json.Unmarshal(decodeResult(t, reply).Result, &report); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if report.Turn != 1 || g.Turn() != 2 {
		t.Errorf("Expected turn 1 report and turn 2 game, got %d / %d", report.Turn, g.Turn())
	}
}

func TestApply_QueryOdds(t *testing.T) {
	g := createTestGame(t)
	mine := g.Units(g.HumanID())[0]
	theirs := g.Units(g.OpponentID())[0]

	reply, err := Apply(g, mustMessage(t, TypeQueryOdds, QueryOddsPayload{AttackerID: mine.ID, DefenderID: theirs.ID, Trials: 200}))
	if err != nil {
		t.Fatalf("QueryOdds failed: %v", err)
	}
	var odds CombatOddsPayload
	if err := json.Unmarshal(decodeResult(t, reply).Result, &odds); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}
	if odds.WinRate < 0 || odds.WinRate > 1 {
		t.Errorf("Expected a rate in [0,1], got %f", odds.WinRate)
	}
}

func TestCodeFor(t *testing.T) {
	cases := map[error]ErrorCode{
		game.ErrInsufficientResources: ErrCodeInsufficientResources,
		game.ErrOutOfRange:            ErrCodeOutOfRange,
		game.ErrAlreadyActed:          ErrCodeAlreadyActed,
		game.ErrInvalidTarget:         ErrCodeInvalidTarget,
		game.ErrTileUnavailable:       ErrCodeTileUnavailable,
		game.ErrOutOfBounds:           ErrCodeOutOfBounds,
		game.ErrNotYourTurn:           ErrCodeNotYourTurn,
		game.ErrNotBuilt:              ErrCodeNotBuilt,
		game.ErrGameOver:              ErrCodeGameOver,
		game.ErrInvalidAction:         ErrCodeInvalidAction,
		errors.New("boom"):            ErrCodeInternalError,
	}
	for err, want := range cases {
		wrapped := fmt.Errorf("context: %w", err)
		if got := CodeFor(wrapped); got != want {
			t.Errorf("CodeFor(%v) = %s, want %s", err, got, want)
		}
	}
	if CodeFor(nil) != "" {
		t.Error("Expected empty code for nil")
	}
}

func TestParseUnit(t *testing.T) {
	if k, err := ParseUnit(" Cavalry "); err != nil || k != game.UnitCavalry {
		t.Errorf("Expected cavalry, got %v %v", k, err)
	}
	if _, err := ParseUnit("dragon"); !errors.Is(err, ErrMalformed) {
		t.Errorf("Expected ErrMalformed, got %v", err)
	}
}

func TestEndedOf(t *testing.T) {
	g := createTestGame(t)
	if _, over := EndedOf(g); over {
		t.Error("Expected a running game")
	}
	if state := StateOf(g); state.Turn != 1 || state.Phase != game.PhasePlayer.String() {
		t.Errorf("Unexpected state %+v", state)
	}
}
