// Package engine implements move ordering, alpha-beta search, and the
// random/greedy/minimax agents that choose moves for a side.
package engine

import "github.com/sagiri-no/minishogi/internal/shogi"

// centerSquare is rank 3, file 3 (specification §4.9's index 13 under
// the spec's 1-based numbering); internally this is square 12 since
// squares here are 0-based.
const centerSquare = shogi.Square(12)

const centerBonus = 30

// handValueMultiplier reflects a captured piece's extra flexibility
// while sitting in hand, over its value on the board.
const handValueMultiplier = 1.1

// Color is an alias so engine callers need not import shogi just to
// name a side.
type Color = shogi.Color

var handSlots = []shogi.PieceType{
	shogi.Pawn, shogi.Lance, shogi.Knight, shogi.Silver,
	shogi.Gold, shogi.Bishop, shogi.Rook,
}

// Evaluate scores board from the perspective of color c: positive
// favors c. Material on the board and in hand both count, plus a
// small bonus for holding the center square.
func Evaluate(pos *shogi.Position, c Color) int {
	opp := c.Opposite()
	score := 0

	for pt := shogi.PieceType(0); pt < shogi.NoPieceType; pt++ {
		own := pos.Pieces[c][pt].PopCount()
		theirs := pos.Pieces[opp][pt].PopCount()
		score += shogi.PieceValue[pt] * (own - theirs)
	}

	for _, pt := range handSlots {
		own := pos.Hands[c].Count(pt)
		theirs := pos.Hands[opp].Count(pt)
		handValue := int(float64(shogi.PieceValue[pt])*handValueMultiplier + 0.5)
		score += handValue * (own - theirs)
	}

	if holder := pos.PieceAt(centerSquare); !holder.IsNone() {
		if holder.Color == c {
			score += centerBonus
		} else {
			score -= centerBonus
		}
	}

	return score
}
