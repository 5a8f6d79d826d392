// Package facade exposes the engine as a small set of direct function
// calls — new_game, load_position, make_move, get_bot_move, and
// get_legal_moves — the same operations a UCI-style command loop or an
// HTTP handler would drive, minus any particular wire protocol.
package facade

import (
	"context"
	"fmt"

	"github.com/go-logr/logr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"

	"github.com/sagiri-no/minishogi/internal/engine"
	"github.com/sagiri-no/minishogi/internal/game"
	"github.com/sagiri-no/minishogi/internal/shogi"
	"github.com/sagiri-no/minishogi/internal/store"
)

var (
	tracer = otel.Tracer("github.com/sagiri-no/minishogi/internal/facade")
	meter  = otel.Meter("github.com/sagiri-no/minishogi/internal/facade")
)

// botMoveCounter counts get_bot_move calls by bot type, giving an
// operator a cheap signal of which strategies are actually in play.
var botMoveCounter, _ = meter.Int64Counter(
	"minishogi.bot_move_requests",
	metric.WithDescription("number of get_bot_move calls by bot type"),
)

// Engine holds one game in progress plus the saved-game store, and
// logs/traces every operation it performs.
type Engine struct {
	state *game.GameState
	store *store.Store
	log   logr.Logger
}

// New constructs an Engine with a fresh opening position. st may be nil,
// in which case SaveGame/LoadGame/ListGames return an error.
func New(st *store.Store, log logr.Logger) *Engine {
	return &Engine{state: game.NewGame(), store: st, log: log}
}

// MoveResult reports the outcome of a single move application.
type MoveResult struct {
	Accepted bool
	Reason   string
	Result   game.Result
}

// LegalMove is the USI-notation form of one legal move, suitable for
// serialization by a caller that doesn't want the packed shogi.Move
// representation.
type LegalMove struct {
	Notation string
}

// NewGame resets the engine to the starting position.
func (e *Engine) NewGame(ctx context.Context) {
	_, span := tracer.Start(ctx, "facade.NewGame")
	defer span.End()

	e.state = game.NewGame()
	e.log.V(1).Info("new game started")
}

// LoadPosition replaces the current game with the position encoded by
// sfen, discarding move history.
func (e *Engine) LoadPosition(ctx context.Context, sfen string) error {
	_, span := tracer.Start(ctx, "facade.LoadPosition", trace.WithAttributes(
		attribute.String("minishogi.sfen", sfen),
	))
	defer span.End()

	state, err := game.LoadSFEN(sfen)
	if err != nil {
		span.RecordError(err)
		e.log.Error(err, "failed to load position", "sfen", sfen)
		return fmt.Errorf("facade: loading position: %w", err)
	}
	e.state = state
	return nil
}

// MakeMove applies the move given in USI-style notation to the current
// game.
func (e *Engine) MakeMove(ctx context.Context, notation string) MoveResult {
	_, span := tracer.Start(ctx, "facade.MakeMove", trace.WithAttributes(
		attribute.String("minishogi.move", notation),
	))
	defer span.End()

	ok, reason := e.state.MakeMoveNotation(notation)
	if !ok {
		span.SetAttributes(attribute.Bool("minishogi.accepted", false))
		e.log.V(1).Info("move rejected", "move", notation, "reason", reason)
		return MoveResult{Accepted: false, Reason: reason, Result: e.state.Result}
	}

	span.SetAttributes(
		attribute.Bool("minishogi.accepted", true),
		attribute.String("minishogi.result", string(e.state.Result)),
	)
	return MoveResult{Accepted: true, Result: e.state.Result}
}

// GetBotMove asks botType to choose and apply a move for the side to
// move, seeded with seed. It returns the move's notation and the
// resulting game state, or ok=false if the game already has no legal
// moves.
func (e *Engine) GetBotMove(ctx context.Context, botType engine.BotType, seed uint64) (string, MoveResult, bool) {
	_, span := tracer.Start(ctx, "facade.GetBotMove", trace.WithAttributes(
		attribute.String("minishogi.bot_type", string(botType)),
	))
	defer span.End()

	botMoveCounter.Add(ctx, 1, metric.WithAttributes(attribute.String("bot_type", string(botType))))

	agent, ok := engine.NewAgent(botType, seed)
	if !ok {
		err := fmt.Errorf("facade: unknown bot type %q", botType)
		span.RecordError(err)
		e.log.Error(err, "unknown bot type", "bot_type", botType)
		return "", MoveResult{}, false
	}

	move, ok := agent.ChooseMove(e.state.Position)
	if !ok {
		return "", MoveResult{Result: e.state.Result}, false
	}

	notation := shogi.FormatMoveNotation(move)
	accepted, reason := e.state.MakeMoveNotation(notation)
	if !accepted {
		err := fmt.Errorf("facade: bot chose an illegal move %s (%s)", notation, reason)
		span.RecordError(err)
		e.log.Error(err, "bot produced illegal move", "move", notation)
		return "", MoveResult{}, false
	}

	return notation, MoveResult{Accepted: true, Result: e.state.Result}, true
}

// GetLegalMoves lists every legal move for the side to move, in USI
// notation.
func (e *Engine) GetLegalMoves(ctx context.Context) []LegalMove {
	_, span := tracer.Start(ctx, "facade.GetLegalMoves")
	defer span.End()

	moves := e.state.LegalMoves().Moves()
	out := make([]LegalMove, len(moves))
	for i, m := range moves {
		out[i] = LegalMove{Notation: shogi.FormatMoveNotation(m)}
	}
	span.SetAttributes(attribute.Int("minishogi.legal_move_count", len(out)))
	return out
}

// State returns the current game state directly, for callers that need
// more than the facade's narrow return types expose (e.g. rendering a
// board).
func (e *Engine) State() *game.GameState { return e.state }

// SaveGame persists the current game under name.
func (e *Engine) SaveGame(ctx context.Context, name string) error {
	_, span := tracer.Start(ctx, "facade.SaveGame", trace.WithAttributes(
		attribute.String("minishogi.save_name", name),
	))
	defer span.End()

	if e.store == nil {
		return fmt.Errorf("facade: no save store configured")
	}

	moves := make([]string, len(e.state.History))
	for i, rec := range e.state.History {
		moves[i] = shogi.FormatMoveNotation(rec.Move)
	}

	return e.store.Save(name, store.SavedGame{
		SFEN:  e.state.Position.SFEN(),
		Moves: moves,
	})
}

// LoadGame replaces the current game with the one saved under name,
// replaying its move history so undo and repetition detection work as
// if the game had been played live.
func (e *Engine) LoadGame(ctx context.Context, name string) error {
	_, span := tracer.Start(ctx, "facade.LoadGame", trace.WithAttributes(
		attribute.String("minishogi.save_name", name),
	))
	defer span.End()

	if e.store == nil {
		return fmt.Errorf("facade: no save store configured")
	}

	saved, err := e.store.Load(name)
	if err != nil {
		span.RecordError(err)
		return fmt.Errorf("facade: loading saved game %q: %w", name, err)
	}

	state := game.NewGame()
	for _, notation := range saved.Moves {
		if ok, reason := state.MakeMoveNotation(notation); !ok {
			return fmt.Errorf("facade: replaying saved move %q: %s", notation, reason)
		}
	}

	if state.Position.SFEN() != saved.SFEN {
		err := fmt.Errorf("facade: saved game %q: replayed position does not match stored SFEN", name)
		span.RecordError(err)
		return err
	}

	e.state = state
	return nil
}

// ListGames returns the names of every saved game.
func (e *Engine) ListGames(ctx context.Context) ([]string, error) {
	_, span := tracer.Start(ctx, "facade.ListGames")
	defer span.End()

	if e.store == nil {
		return nil, fmt.Errorf("facade: no save store configured")
	}
	return e.store.List()
}
