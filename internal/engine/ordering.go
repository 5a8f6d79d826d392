package engine

import (
	"sort"

	"github.com/sagiri-no/minishogi/internal/shogi"
)

// Move ordering score bands (specification §4.9).
const (
	captureBase     = 10000
	promotionBonus  = 5000
	centerDropBonus = 100
)

// scoreMove assigns m its ordering heuristic score.
func scoreMove(m shogi.Move) int {
	score := 0
	if m.IsCapture() {
		score += captureBase + shogi.PieceValue[m.Captured()]
	}
	if m.IsPromotion() {
		score += promotionBonus
	}
	if m.IsDrop() && m.To() == centerSquare {
		score += centerDropBonus
	}
	return score
}

type scoredMove struct {
	move  shogi.Move
	score int
}

// orderMoves returns moves sorted by descending heuristic score. The
// sort is stable so moves with equal scores keep their generation
// order, which keeps search output deterministic.
func orderMoves(moves []shogi.Move) []shogi.Move {
	scored := make([]scoredMove, len(moves))
	for i, m := range moves {
		scored[i] = scoredMove{move: m, score: scoreMove(m)}
	}
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].score > scored[j].score
	})
	ordered := make([]shogi.Move, len(scored))
	for i, sm := range scored {
		ordered[i] = sm.move
	}
	return ordered
}
