package shogi

import "testing"

func TestStartingPositionLegalMoveCount(t *testing.T) {
	pos, err := ParseSFEN(StartSFEN)
	if err != nil {
		t.Fatalf("ParseSFEN: %v", err)
	}
	moves := pos.GenerateLegalMoves().Moves()
	if len(moves) == 0 {
		t.Fatal("starting position must have legal moves")
	}
	for _, m := range moves {
		if ok, reason := ValidateMove(pos, m, Black); !ok {
			t.Errorf("generated legal move %v failed ValidateMove: %s", m, reason)
		}
	}
}

// TestPawnMustPromoteOnLastRank sets up a lone Black pawn one step from
// its last rank; the only legal move for that pawn must be the
// promoting one (specification §4.4).
func TestPawnMustPromoteOnLastRank(t *testing.T) {
	pos, err := ParseSFEN("5/2P2/5/5/K3k b - 1")
	if err != nil {
		t.Fatalf("ParseSFEN: %v", err)
	}

	from := NewSquare(2, 1)
	to := NewSquare(2, 0)

	var sawPromoting, sawNonPromoting bool
	for _, m := range pos.GenerateLegalMoves().Moves() {
		if m.IsDrop() || m.From() != from || m.To() != to {
			continue
		}
		if m.IsPromotion() {
			sawPromoting = true
		} else {
			sawNonPromoting = true
		}
	}
	if !sawPromoting {
		t.Error("expected the forced-promotion pawn move to be legal")
	}
	if sawNonPromoting {
		t.Error("expected no non-promoting version of a forced promotion")
	}

	nonPromoting := NewMove(from, to, Pawn, false, NoPieceType)
	if ok, reason := ValidateMove(pos, nonPromoting, Black); ok {
		t.Error("ValidateMove accepted a non-promoting move onto the forced-promotion rank")
	} else if reason != ReasonPromotionMandatory {
		t.Errorf("ValidateMove reason = %q, want %q", reason, ReasonPromotionMandatory)
	}
}

// TestNifuForbidsSecondUnpromotedPawnOnFile checks that a pawn cannot
// be dropped onto a file already holding one of the color's unpromoted
// pawns (specification §4.6).
func TestNifuForbidsSecondUnpromotedPawnOnFile(t *testing.T) {
	pos, err := ParseSFEN("5/5/5/2P2/K3k b P 1")
	if err != nil {
		t.Fatalf("ParseSFEN: %v", err)
	}

	dropSquare := NewSquare(2, 1) // same file (3) as the existing pawn
	if pos.dropAllowed(Pawn, Black, dropSquare) {
		t.Error("dropAllowed should forbid a nifu drop")
	}

	m := NewDrop(dropSquare, Pawn)
	for _, legal := range pos.GenerateLegalMoves().Moves() {
		if legal == m {
			t.Error("nifu drop appeared in GenerateLegalMoves")
		}
	}

	if ok, reason := ValidateMove(pos, m, Black); ok {
		t.Error("ValidateMove accepted a nifu drop")
	} else if reason != ReasonNifu {
		t.Errorf("ValidateMove reason = %q, want %q", reason, ReasonNifu)
	}
}

// TestUchifuzumeForbidsMatingPawnDrop builds a corner mate where a
// Black pawn dropped on 5b checks White's king at 5a, the pawn is
// defended (so the king cannot simply capture it), and both remaining
// king moves are covered. Specification §4.7 forbids delivering
// checkmate this way, even though the same drop would be fine if it
// merely checked without mating.
func TestUchifuzumeForbidsMatingPawnDrop(t *testing.T) {
	pos, err := ParseSFEN("2G1k/2G2/3S1/5/K4 b P 1")
	if err != nil {
		t.Fatalf("ParseSFEN: %v", err)
	}

	dropSquare := NewSquare(4, 1) // 5b
	m := NewDrop(dropSquare, Pawn)

	ownKingSafe, uchifuzume := pos.legalityDetail(m)
	if !ownKingSafe {
		t.Fatal("dropping the mating pawn should not endanger Black's own king")
	}
	if !uchifuzume {
		t.Fatal("expected this pawn drop to be flagged as uchifuzume")
	}
	if pos.IsLegal(m) {
		t.Error("IsLegal accepted an uchifuzume pawn drop")
	}

	if ok, reason := ValidateMove(pos, m, Black); ok {
		t.Error("ValidateMove accepted an uchifuzume pawn drop")
	} else if reason != ReasonUchifuzume {
		t.Errorf("ValidateMove reason = %q, want %q", reason, ReasonUchifuzume)
	}
}

// TestPawnDropCheckWithoutMateIsLegal is the same shape as the
// uchifuzume test but without the defending silver, so White's king
// can simply capture the checking pawn — a legal check, not mate.
func TestPawnDropCheckWithoutMateIsLegal(t *testing.T) {
	pos, err := ParseSFEN("2G1k/2G2/5/5/K4 b P 1")
	if err != nil {
		t.Fatalf("ParseSFEN: %v", err)
	}

	dropSquare := NewSquare(4, 1) // 5b
	m := NewDrop(dropSquare, Pawn)

	ownKingSafe, uchifuzume := pos.legalityDetail(m)
	if !ownKingSafe {
		t.Fatal("dropping should not endanger Black's own king")
	}
	if uchifuzume {
		t.Error("expected this pawn drop not to be uchifuzume: the king can capture it")
	}
	if !pos.IsLegal(m) {
		t.Error("IsLegal rejected a legal checking pawn drop")
	}
}

// TestKnightForbiddenOnLastTwoRanks checks the knight-specific
// forced-promotion/placement rule (specification §4.4/§4.6): a knight
// cannot be dropped where it would have no subsequent move.
func TestKnightForbiddenOnLastTwoRanks(t *testing.T) {
	pos, err := ParseSFEN("5/5/5/5/K3k b N 1")
	if err != nil {
		t.Fatalf("ParseSFEN: %v", err)
	}

	for _, rank0 := range []int{0, 1} {
		sq := NewSquare(2, rank0)
		if pos.dropAllowed(Knight, Black, sq) {
			t.Errorf("dropAllowed allowed a knight drop on rank0=%d", rank0)
		}
	}
	sq := NewSquare(2, 2)
	if !pos.dropAllowed(Knight, Black, sq) {
		t.Errorf("dropAllowed forbade a knight drop on rank0=2, which has a legal subsequent move")
	}
}

func TestApplyUndoRestoresPositionExactly(t *testing.T) {
	pos, err := ParseSFEN(StartSFEN)
	if err != nil {
		t.Fatalf("ParseSFEN: %v", err)
	}

	before := pos.SFEN()
	beforeHash := pos.Hash
	beforeChk := pos.Checkers

	for _, m := range pos.GenerateLegalMoves().Moves() {
		undo := pos.ApplyMove(m)
		pos.UndoMove(m, undo)

		if got := pos.SFEN(); got != before {
			t.Fatalf("move %v: SFEN after undo = %q, want %q", m, got, before)
		}
		if pos.Hash != beforeHash {
			t.Fatalf("move %v: Hash after undo = %x, want %x", m, pos.Hash, beforeHash)
		}
		if pos.Checkers != beforeChk {
			t.Fatalf("move %v: Checkers after undo = %v, want %v", m, pos.Checkers, beforeChk)
		}
	}
}

func TestZobristHashMatchesFromScratchRecomputation(t *testing.T) {
	pos, err := ParseSFEN(StartSFEN)
	if err != nil {
		t.Fatalf("ParseSFEN: %v", err)
	}

	moves := pos.GenerateLegalMoves().Moves()
	if len(moves) == 0 {
		t.Fatal("no legal moves from the starting position")
	}
	pos.ApplyMove(moves[0])

	incremental := pos.Hash
	fromScratch := computeZobristHash(pos)
	if incremental != fromScratch {
		t.Errorf("incremental hash %x != recomputed hash %x", incremental, fromScratch)
	}
}
