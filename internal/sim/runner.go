// Package sim drives a session to completion: scripted commands first, then the
// built-in heuristic for the human side, with every command logged to the store.
package sim

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"skirmish/internal/database"
	"skirmish/internal/game"
	"skirmish/internal/protocol"
)

// Config contains runner configuration.
type Config struct {
	MaxTurns int       // Stop after this many turns; 0 means no limit
	Script   io.Reader // Optional stream of JSON command messages
}

// Runner plays one game.
type Runner struct {
	game     *game.Game
	db       *database.DB // May be nil
	log      *zap.Logger
	maxTurns int
	script   []*protocol.Message
	human    game.Opponent
}

// New creates a runner for g. The script, if any, is read fully up front.
func New(g *game.Game, db *database.DB, log *zap.Logger, cfg Config) (*Runner, error) {
	if log == nil {
		log = zap.NewNop()
	}
	r := &Runner{
		game:     g,
		db:       db,
		log:      log,
		maxTurns: cfg.MaxTurns,
		human:    game.GreedyAI{},
	}
	if cfg.Script != nil {
		script, err := LoadScript(cfg.Script)
		if err != nil {
			return nil, err
		}
		r.script = script
	}
	return r, nil
}

// LoadScript decodes a stream of command messages. Missing IDs are generated.
func LoadScript(src io.Reader) ([]*protocol.Message, error) {
	dec := json.NewDecoder(src)
	var out []*protocol.Message
	for {
		var msg protocol.Message
		err := dec.Decode(&msg)
		if errors.Is(err, io.EOF) {
			return out, nil
		}
		if err != nil {
			return nil, fmt.Errorf("script message %d: %w", len(out)+1, err)
		}
		if msg.ID == "" {
			msg.ID = uuid.New().String()
		}
		if msg.Timestamp == 0 {
			msg.Timestamp = time.Now().UnixMilli()
		}
		out = append(out, &msg)
	}
}

// Run plays until the game ends, the turn limit is hit or ctx is cancelled.
func (r *Runner) Run(ctx context.Context) (game.Outcome, error) {
	g := r.game
	for !g.IsOver() {
		if err := ctx.Err(); err != nil {
			return g.Outcome(), err
		}
		if r.maxTurns > 0 && g.Turn() > r.maxTurns {
			r.log.Info("turn limit reached", zap.Int("turns", r.maxTurns))
			break
		}

		if len(r.script) > 0 {
			msg := r.script[0]
			r.script = r.script[1:]
			r.apply(msg)
			continue
		}

		r.human.Act(g, g.HumanID())
		msg, err := protocol.NewMessage(protocol.TypeEndTurn, protocol.EndTurnPayload{})
		if err != nil {
			return g.Outcome(), err
		}
		r.apply(msg)
	}

	out := g.Outcome()
	if !out.Over {
		out.Turn = g.Turn()
	}
	r.record(protocol.TypeGameState, protocol.StateOf(g))
	if ended, ok := protocol.EndedOf(g); ok {
		r.record(protocol.TypeGameEnded, ended)
	}
	if r.db != nil {
		if err := r.db.EndSession(g.ID, out); err != nil {
			r.log.Warn("failed to close session", zap.String("game", g.ID), zap.Error(err))
		}
	}
	r.log.Info("game finished",
		zap.Bool("over", out.Over),
		zap.String("winner", out.WinnerID),
		zap.Bool("draw", out.Draw),
		zap.Int("turn", out.Turn),
	)
	return out, nil
}

// apply runs one command and writes it to the action log. Rejected commands
// are logged and skipped.
func (r *Runner) apply(msg *protocol.Message) {
	reply, err := protocol.Apply(r.game, msg)
	if err != nil {
		r.log.Info("command rejected",
			zap.String("type", string(msg.Type)),
			zap.String("code", string(protocol.CodeFor(err))),
			zap.Error(err),
		)
	}
	if r.db == nil {
		return
	}

	actionJSON, mErr := json.Marshal(msg)
	if mErr != nil {
		r.log.Warn("failed to encode command", zap.Error(mErr))
		return
	}
	var resultJSON string
	if reply != nil {
		resultJSON = string(reply.Payload)
	}
	if lErr := r.db.LogAction(r.game.ID, r.game.HumanID(), string(msg.Type), string(actionJSON), resultJSON, err == nil); lErr != nil {
		r.log.Warn("failed to log action", zap.Error(lErr))
	}
}

// record writes an engine-side message to the action log.
func (r *Runner) record(typ protocol.MessageType, payload interface{}) {
	if r.db == nil {
		return
	}
	msg, err := protocol.NewMessage(typ, payload)
	if err != nil {
		r.log.Warn("failed to encode message", zap.String("type", string(typ)), zap.Error(err))
		return
	}
	if err := r.db.LogAction(r.game.ID, "", string(typ), string(msg.Payload), "", true); err != nil {
		r.log.Warn("failed to log action", zap.Error(err))
	}
}
