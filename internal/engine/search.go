package engine

import "github.com/sagiri-no/minishogi/internal/shogi"

// Mate and draw scores (specification §4.9). There is no iterative
// deepening or transposition table here — search always runs to a
// fixed depth, per the engine's Non-goals.
const (
	mateScoreBase = 100000
	mateDepthBias = 10
	infScore      = 1 << 30
)

// Search runs a fixed-depth alpha-beta minimax search rooted at pos's
// side to move (the "agent color"), returning the best move found and
// its score from that side's own perspective. Every node's evaluation
// is taken relative to agentColor, never flipped — an explicit
// maximizing flag, not a negamax sign trick, tracks whose turn a node
// represents. Root moves are tried in orderMoves' heuristic order, and
// ties among equally scored root moves go to the first move in that
// order to reach the score (generation order among moves with equal
// heuristic scores).
func Search(pos *shogi.Position, depth int) (shogi.Move, int) {
	agentColor := pos.SideToMove
	moves := orderMoves(pos.GenerateLegalMoves().Moves())

	var best shogi.Move
	bestScore := -infScore
	alpha, beta := -infScore, infScore

	for _, m := range moves {
		undo := pos.ApplyMove(m)
		score := searchNode(pos, depth-1, alpha, beta, agentColor, false)
		pos.UndoMove(m, undo)

		if score > bestScore {
			bestScore = score
			best = m
		}
		if score > alpha {
			alpha = score
		}
	}

	return best, bestScore
}

// searchNode evaluates one node of the tree, maximizing indicating
// whether this node is agentColor's own move (true) or the
// opponent's (false).
func searchNode(pos *shogi.Position, depth, alpha, beta int, agentColor shogi.Color, maximizing bool) int {
	if depth == 0 {
		return Evaluate(pos, agentColor)
	}

	moves := pos.GenerateLegalMoves().Moves()
	if len(moves) == 0 {
		if pos.InCheck() {
			if maximizing {
				return -mateScoreBase + (mateDepthBias - depth)
			}
			return mateScoreBase - (mateDepthBias - depth)
		}
		return 0
	}

	ordered := orderMoves(moves)

	if maximizing {
		best := -infScore
		for _, m := range ordered {
			undo := pos.ApplyMove(m)
			score := searchNode(pos, depth-1, alpha, beta, agentColor, false)
			pos.UndoMove(m, undo)

			if score > best {
				best = score
			}
			if score > alpha {
				alpha = score
			}
			if alpha >= beta {
				break
			}
		}
		return best
	}

	best := infScore
	for _, m := range ordered {
		undo := pos.ApplyMove(m)
		score := searchNode(pos, depth-1, alpha, beta, agentColor, true)
		pos.UndoMove(m, undo)

		if score < best {
			best = score
		}
		if score < beta {
			beta = score
		}
		if beta <= alpha {
			break
		}
	}
	return best
}
