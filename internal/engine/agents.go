package engine

import (
	"math/rand/v2"

	"github.com/sagiri-no/minishogi/internal/shogi"
)

// BotType names the available move-choosing strategies, matching the
// engine facade's bot_type parameter.
type BotType string

const (
	BotRandom       BotType = "random"
	BotGreedy       BotType = "greedy"
	BotMinimax      BotType = "minimax"
	BotEasyMinimax  BotType = "easy_minimax"
)

// Search depths for the two minimax bot tiers (specification §4.10).
const (
	MinimaxDepth     = 5
	EasyMinimaxDepth = 3
)

// Agent chooses a move for the side to move in pos. It returns false
// if the position has no legal moves.
type Agent interface {
	ChooseMove(pos *shogi.Position) (shogi.Move, bool)
}

// RandomAgent picks uniformly among the legal moves using its own
// seeded RNG, independent of any other agent's randomness.
type RandomAgent struct {
	rng *rand.Rand
}

// NewRandomAgent returns a RandomAgent seeded with seed.
func NewRandomAgent(seed uint64) *RandomAgent {
	return &RandomAgent{rng: rand.New(rand.NewPCG(seed, seed^0xA5A5A5A5))}
}

func (a *RandomAgent) ChooseMove(pos *shogi.Position) (shogi.Move, bool) {
	moves := pos.GenerateLegalMoves().Moves()
	if len(moves) == 0 {
		return 0, false
	}
	return moves[a.rng.IntN(len(moves))], true
}

// GreedyAgent prefers the highest-value capture available; with no
// captures it plays a uniformly random non-capture.
type GreedyAgent struct {
	rng *rand.Rand
}

// NewGreedyAgent returns a GreedyAgent seeded with seed.
func NewGreedyAgent(seed uint64) *GreedyAgent {
	return &GreedyAgent{rng: rand.New(rand.NewPCG(seed, seed^0x5A5A5A5A))}
}

func (a *GreedyAgent) ChooseMove(pos *shogi.Position) (shogi.Move, bool) {
	moves := pos.GenerateLegalMoves().Moves()
	if len(moves) == 0 {
		return 0, false
	}

	var captures, quiet []shogi.Move
	for _, m := range moves {
		if m.IsCapture() {
			captures = append(captures, m)
		} else {
			quiet = append(quiet, m)
		}
	}

	if len(captures) > 0 {
		best := captures[0]
		bestValue := shogi.PieceValue[best.Captured()]
		for _, m := range captures[1:] {
			if v := shogi.PieceValue[m.Captured()]; v > bestValue {
				best, bestValue = m, v
			}
		}
		return best, true
	}

	return quiet[a.rng.IntN(len(quiet))], true
}

// MinimaxAgent plays the move found by a fixed-depth alpha-beta
// search.
type MinimaxAgent struct {
	Depth int
}

// NewMinimaxAgent returns a MinimaxAgent searching to depth.
func NewMinimaxAgent(depth int) *MinimaxAgent {
	return &MinimaxAgent{Depth: depth}
}

func (a *MinimaxAgent) ChooseMove(pos *shogi.Position) (shogi.Move, bool) {
	if !pos.HasLegalMoves() {
		return 0, false
	}
	move, _ := Search(pos, a.Depth)
	return move, true
}

// NewAgent constructs the Agent named by botType, seeding any
// randomized agent with seed.
func NewAgent(botType BotType, seed uint64) (Agent, bool) {
	switch botType {
	case BotRandom:
		return NewRandomAgent(seed), true
	case BotGreedy:
		return NewGreedyAgent(seed), true
	case BotMinimax:
		return NewMinimaxAgent(MinimaxDepth), true
	case BotEasyMinimax:
		return NewMinimaxAgent(EasyMinimaxDepth), true
	default:
		return nil, false
	}
}
