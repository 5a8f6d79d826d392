package game

import (
	"testing"

	"github.com/sagiri-no/minishogi/internal/shogi"
)

func TestNewGameStartsOngoing(t *testing.T) {
	g := NewGame()
	if g.Result != Ongoing {
		t.Fatalf("Result = %v, want Ongoing", g.Result)
	}
	if g.SideToMove() != shogi.Black {
		t.Fatalf("SideToMove = %v, want Black", g.SideToMove())
	}
	if g.Ply != 0 || g.MoveNumber != 1 {
		t.Fatalf("Ply=%d MoveNumber=%d, want 0,1", g.Ply, g.MoveNumber)
	}
	if len(g.HashHistory) != 1 || g.HashHistory[0] != g.Position.Hash {
		t.Fatalf("HashHistory should seed with the starting hash")
	}
}

func TestLoadSFENRejectsMalformedInput(t *testing.T) {
	if _, err := LoadSFEN("not a position"); err == nil {
		t.Error("LoadSFEN accepted malformed input")
	}
}

func TestMakeMoveNotationAppliesAndAdvancesPly(t *testing.T) {
	g := NewGame()
	moves := g.LegalMoves().Moves()
	if len(moves) == 0 {
		t.Fatal("starting position has no legal moves")
	}
	notation := shogi.FormatMoveNotation(moves[0])

	ok, reason := g.MakeMoveNotation(notation)
	if !ok {
		t.Fatalf("MakeMoveNotation(%q) rejected: %s", notation, reason)
	}
	if g.Ply != 1 {
		t.Errorf("Ply = %d, want 1", g.Ply)
	}
	if g.SideToMove() != shogi.White {
		t.Errorf("SideToMove = %v, want White after Black's move", g.SideToMove())
	}
	if len(g.History) != 1 || g.History[0].Move != moves[0] {
		t.Error("History was not extended with the applied move")
	}
}

func TestMakeMoveRejectsIllegalMoveWithoutMutatingState(t *testing.T) {
	g := NewGame()
	before := g.Position.SFEN()
	beforePly := g.Ply

	illegal := shogi.NewMove(shogi.NewSquare(0, 4), shogi.NewSquare(4, 0), shogi.King, false, shogi.NoPieceType)
	ok, reason := g.MakeMove(illegal)
	if ok {
		t.Fatal("MakeMove accepted an illegal king move")
	}
	if reason == "" {
		t.Error("expected a non-empty rejection reason")
	}
	if g.Position.SFEN() != before || g.Ply != beforePly {
		t.Error("MakeMove mutated state despite rejecting the move")
	}
}

func TestUndoMoveRestoresStateExactly(t *testing.T) {
	g := NewGame()
	before := g.Position.SFEN()
	beforeHash := g.Position.Hash
	beforeResult := g.Result

	moves := g.LegalMoves().Moves()
	ok, reason := g.MakeMove(moves[0])
	if !ok {
		t.Fatalf("MakeMove rejected a legal move: %s", reason)
	}

	g.UndoMove()

	if g.Position.SFEN() != before {
		t.Errorf("SFEN after undo = %q, want %q", g.Position.SFEN(), before)
	}
	if g.Position.Hash != beforeHash {
		t.Errorf("Hash after undo = %x, want %x", g.Position.Hash, beforeHash)
	}
	if g.Ply != 0 {
		t.Errorf("Ply after undo = %d, want 0", g.Ply)
	}
	if g.MoveNumber != 1 {
		t.Errorf("MoveNumber after undo = %d, want 1", g.MoveNumber)
	}
	if g.Result != beforeResult {
		t.Errorf("Result after undo = %v, want %v", g.Result, beforeResult)
	}
	if len(g.History) != 0 || len(g.HashHistory) != 1 {
		t.Error("History/HashHistory were not trimmed back by undo")
	}
}

func TestUndoMoveOnEmptyHistoryIsNoOp(t *testing.T) {
	g := NewGame()
	before := g.Position.SFEN()
	g.UndoMove()
	if g.Position.SFEN() != before || g.Ply != 0 {
		t.Error("UndoMove with no history should be a no-op")
	}
}

// TestFourfoldRepetitionDrawsTheGame shuffles two lone kings back and
// forth. Each four-ply cycle returns the position to exactly its
// starting state; the fourth occurrence of that hash (specification
// §4.8) must end the game in a repetition draw.
func TestFourfoldRepetitionDrawsTheGame(t *testing.T) {
	g, err := LoadSFEN("4k/5/5/5/4K b - 1")
	if err != nil {
		t.Fatalf("LoadSFEN: %v", err)
	}

	blackHome := shogi.NewSquare(4, 4) // 5e
	blackAway := shogi.NewSquare(3, 4) // 4e
	whiteHome := shogi.NewSquare(4, 0) // 5a
	whiteAway := shogi.NewSquare(3, 0) // 4a

	cycle := []shogi.Move{
		shogi.NewMove(blackHome, blackAway, shogi.King, false, shogi.NoPieceType),
		shogi.NewMove(whiteHome, whiteAway, shogi.King, false, shogi.NoPieceType),
		shogi.NewMove(blackAway, blackHome, shogi.King, false, shogi.NoPieceType),
		shogi.NewMove(whiteAway, whiteHome, shogi.King, false, shogi.NoPieceType),
	}

	for cycleNum := 1; cycleNum <= 3; cycleNum++ {
		for _, m := range cycle {
			ok, reason := g.MakeMove(m)
			if !ok {
				t.Fatalf("cycle %d: MakeMove(%v) rejected: %s", cycleNum, m, reason)
			}
		}
		if cycleNum < 3 {
			if g.Result != Ongoing {
				t.Fatalf("after cycle %d: Result = %v, want Ongoing", cycleNum, g.Result)
			}
		}
	}

	if g.Result != DrawRepetition {
		t.Errorf("Result after the third full cycle = %v, want DrawRepetition", g.Result)
	}
}

// TestImpasseBothKingsEnteredDrawsTheGame checks the simplified
// nyugyoku rule: once both kings sit in their respective promotion
// zones and each side holds enough material in hand, the position is
// an immediate draw (specification §4.8).
func TestImpasseBothKingsEnteredDrawsTheGame(t *testing.T) {
	g, err := LoadSFEN("4K/5/5/5/4k b RBrb 1")
	if err != nil {
		t.Fatalf("LoadSFEN: %v", err)
	}
	if g.Result != DrawImpasse {
		t.Errorf("Result = %v, want DrawImpasse", g.Result)
	}
}

func TestImpasseRequiresSufficientMaterial(t *testing.T) {
	g, err := LoadSFEN("4K/5/5/5/4k b Rr 1")
	if err != nil {
		t.Fatalf("LoadSFEN: %v", err)
	}
	if g.Result != Ongoing {
		t.Errorf("Result = %v, want Ongoing (insufficient jishogi points for impasse)", g.Result)
	}
}

// TestCheckmateEndsTheGame builds a corner mate: White's king at 5a has
// its three escape squares (4a, 5b, 4b) each covered by a Black gold or
// silver, and a Black rook slides up file 5 to deliver check on a
// defended square. White has no legal reply.
func TestCheckmateEndsTheGame(t *testing.T) {
	g, err := LoadSFEN("2G1k/2G2/3SR/5/K4 b - 1")
	if err != nil {
		t.Fatalf("LoadSFEN: %v", err)
	}

	m := shogi.NewMove(shogi.NewSquare(4, 2), shogi.NewSquare(4, 1), shogi.Rook, false, shogi.NoPieceType)
	ok, reason := g.MakeMove(m)
	if !ok {
		t.Fatalf("MakeMove(%v) rejected: %s", m, reason)
	}
	if g.Result != BlackWins {
		t.Errorf("Result = %v, want BlackWins", g.Result)
	}
}

// TestStalemateEndsTheGame is the same king box without the checking
// rook: White's king has no legal moves and is not in check.
func TestStalemateEndsTheGame(t *testing.T) {
	g, err := LoadSFEN("2G1k/2G2/3S1/5/K4 w - 1")
	if err != nil {
		t.Fatalf("LoadSFEN: %v", err)
	}
	if g.Result != DrawStalemate {
		t.Errorf("Result = %v, want DrawStalemate", g.Result)
	}
}
