package engine

import (
	"testing"

	"github.com/sagiri-no/minishogi/internal/shogi"
)

func TestRandomAgentIsDeterministicPerSeed(t *testing.T) {
	pos := mustParseSFEN(t, shogi.StartSFEN)

	a := NewRandomAgent(42)
	b := NewRandomAgent(42)

	moveA, okA := a.ChooseMove(pos)
	moveB, okB := b.ChooseMove(pos)
	if !okA || !okB {
		t.Fatal("ChooseMove reported no legal moves at the starting position")
	}
	if moveA != moveB {
		t.Errorf("two RandomAgents seeded identically chose different moves: %v != %v", moveA, moveB)
	}
}

func TestRandomAgentReturnsFalseWithNoLegalMoves(t *testing.T) {
	pos := mustParseSFEN(t, "2G1k/2G2/3S1/5/K4 w - 1")
	a := NewRandomAgent(1)
	if _, ok := a.ChooseMove(pos); ok {
		t.Error("ChooseMove reported a move in a stalemate position")
	}
}

func TestGreedyAgentPrefersHighestValueCapture(t *testing.T) {
	// Black's rook at 2e can capture either a pawn at 4e (along its
	// rank) or the enemy rook at 2c (along its file); greedy must take
	// the rook.
	pos := mustParseSFEN(t, "4k/5/1r3/5/1R1pK b - 1")

	capture := shogi.NewMove(shogi.NewSquare(1, 4), shogi.NewSquare(1, 2), shogi.Rook, false, shogi.Rook)

	a := NewGreedyAgent(1)
	best, ok := a.ChooseMove(pos)
	if !ok {
		t.Fatal("ChooseMove reported no legal moves")
	}
	if best != capture {
		t.Errorf("GreedyAgent chose %v, want the rook-winning capture %v", best, capture)
	}
}

func TestGreedyAgentPlaysRandomQuietMoveWithNoCaptures(t *testing.T) {
	pos := mustParseSFEN(t, "4k/5/5/5/4K b - 1")
	a := NewGreedyAgent(7)
	move, ok := a.ChooseMove(pos)
	if !ok {
		t.Fatal("ChooseMove reported no legal moves")
	}
	if move.IsCapture() {
		t.Error("GreedyAgent played a capture where none exists")
	}
}

func TestMinimaxAgentPlaysTheMateInOne(t *testing.T) {
	pos := mustParseSFEN(t, "2G1k/2G2/3SR/5/K4 b - 1")
	matingMove := shogi.NewMove(shogi.NewSquare(4, 2), shogi.NewSquare(4, 1), shogi.Rook, false, shogi.NoPieceType)

	a := NewMinimaxAgent(2)
	move, ok := a.ChooseMove(pos)
	if !ok {
		t.Fatal("ChooseMove reported no legal moves")
	}
	if move != matingMove {
		t.Errorf("MinimaxAgent chose %v, want the mating move %v", move, matingMove)
	}
}

func TestNewAgentConstructsEachBotType(t *testing.T) {
	for _, bt := range []BotType{BotRandom, BotGreedy, BotMinimax, BotEasyMinimax} {
		if _, ok := NewAgent(bt, 1); !ok {
			t.Errorf("NewAgent(%v) reported unknown bot type", bt)
		}
	}
	if _, ok := NewAgent(BotType("nonsense"), 1); ok {
		t.Error("NewAgent accepted an unknown bot type")
	}
}
