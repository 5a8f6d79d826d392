package shogi

// attacksOf returns the squares a piece of type pt and color c, sitting
// on sq, attacks given the board occupancy occ. It dispatches sliders
// to the magic tables and everything else to the precomputed step
// tables, treating every promoted non-slider as a gold general.
func attacksOf(pt PieceType, c Color, sq Square, occ Bitboard) Bitboard {
	switch pt {
	case Pawn:
		return PawnAttacks(sq, c)
	case Lance:
		return LanceAttacks(sq, c, occ)
	case Knight:
		return KnightAttacks(sq, c)
	case Silver:
		return SilverAttacks(sq, c)
	case Gold, PromotedPawn, PromotedLance, PromotedKnight, PromotedSilver:
		return GoldAttacks(sq, c)
	case Bishop:
		return BishopAttacks(sq, occ)
	case Rook:
		return RookAttacks(sq, occ)
	case King:
		return KingAttacks(sq)
	case PromotedBishop:
		return HorseAttacks(sq, occ)
	case PromotedRook:
		return DragonAttacks(sq, occ)
	default:
		return 0
	}
}

// attackersTo returns every piece of color byColor attacking sq on the
// given position.
func attackersTo(p *Position, sq Square, byColor Color) Bitboard {
	var attackers Bitboard
	occ := p.AllOccupied
	for pt := PieceType(0); pt < NoPieceType; pt++ {
		pieces := p.Pieces[byColor][pt]
		for pieces != 0 {
			from := pieces.PopLSB()
			if attacksOf(pt, byColor, from, occ)&SquareBB[sq] != 0 {
				attackers = attackers.Set(from)
			}
		}
	}
	return attackers
}

// IsAttackedBy reports whether any byColor piece attacks sq.
func (p *Position) IsAttackedBy(sq Square, byColor Color) bool {
	return attackersTo(p, sq, byColor) != 0
}

// promotionZone returns the bitboard of ranks a move into, out of, or
// within which makes promotion available (specification §4.6: ranks
// {1,2} for Black, ranks {4,5} for White).
func promotionZone(c Color) Bitboard {
	if c == Black {
		return RankBB[0] | RankBB[1]
	}
	return RankBB[boardSize-2] | RankBB[boardSize-1]
}

// mustPromote reports whether a piece of type pt and color c landing
// on to would have no legal move left unpromoted (specification §4.4:
// pawn/lance on the far rank, knight on the far two ranks).
func mustPromote(pt PieceType, c Color, to Square) bool {
	rank0 := to.Rank0()
	lastRank := boardSize - 1
	switch pt {
	case Pawn, Lance:
		if c == Black {
			return rank0 == 0
		}
		return rank0 == lastRank
	case Knight:
		if c == Black {
			return rank0 <= 1
		}
		return rank0 >= lastRank-1
	default:
		return false
	}
}

// canPromote reports whether moving pt from `from` to `to` crosses or
// sits in the promotion zone, making promotion an available choice.
func canPromote(pt PieceType, c Color, from, to Square) bool {
	if !pt.Promotable() {
		return false
	}
	zone := promotionZone(c)
	return zone.IsSet(from) || zone.IsSet(to)
}

// MoveList is a growable, reusable slice of moves.
type MoveList struct {
	moves []Move
}

// NewMoveList returns an empty move list.
func NewMoveList() *MoveList { return &MoveList{moves: make([]Move, 0, 64)} }

// Add appends m.
func (ml *MoveList) Add(m Move) { ml.moves = append(ml.moves, m) }

// Len returns the number of moves.
func (ml *MoveList) Len() int { return len(ml.moves) }

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move { return ml.moves[i] }

// Moves returns the underlying slice (read-only by convention).
func (ml *MoveList) Moves() []Move { return ml.moves }

// GeneratePseudoLegalMoves generates every board move and drop that
// respects piece movement and the always-applicable placement
// restrictions (nifu, forced promotion squares), but does not check
// whether the mover's own king ends up in check, nor uchifuzume.
func (p *Position) GeneratePseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	us := p.SideToMove
	p.generateBoardMoves(ml, us)
	p.generateDrops(ml, us)
	return ml
}

// GenerateLegalMoves generates every legal move in the position.
func (p *Position) GenerateLegalMoves() *MoveList {
	pseudo := p.GeneratePseudoLegalMoves()
	legal := NewMoveList()
	for _, m := range pseudo.Moves() {
		if p.IsLegal(m) {
			legal.Add(m)
		}
	}
	return legal
}

// HasLegalMoves reports whether the side to move has at least one
// legal move, without materializing the full list.
func (p *Position) HasLegalMoves() bool {
	pseudo := p.GeneratePseudoLegalMoves()
	for _, m := range pseudo.Moves() {
		if p.IsLegal(m) {
			return true
		}
	}
	return false
}

func (p *Position) generateBoardMoves(ml *MoveList, us Color) {
	occ := p.AllOccupied
	own := p.Occupied[us]

	for pt := PieceType(0); pt < NoPieceType; pt++ {
		pieces := p.Pieces[us][pt]
		for pieces != 0 {
			from := pieces.PopLSB()
			targets := attacksOf(pt, us, from, occ) &^ own
			for targets != 0 {
				to := targets.PopLSB()
				captured := NoPieceType
				if cp := p.PieceAt(to); !cp.IsNone() {
					captured = cp.Type
				}

				forced := mustPromote(pt, us, to)
				if forced {
					ml.Add(NewMove(from, to, pt, true, captured))
					continue
				}
				if canPromote(pt, us, from, to) {
					ml.Add(NewMove(from, to, pt, true, captured))
				}
				ml.Add(NewMove(from, to, pt, false, captured))
			}
		}
	}
}

func (p *Position) generateDrops(ml *MoveList, us Color) {
	empty := ^p.AllOccupied & FullBB
	for _, pt := range handSlots {
		if !p.Hands[us].Has(pt) {
			continue
		}
		targets := empty
		for targets != 0 {
			to := targets.PopLSB()
			if !p.dropAllowed(pt, us, to) {
				continue
			}
			ml.Add(NewDrop(to, pt))
		}
	}
}

// dropAllowed checks the placement-only restrictions on a drop: a
// pawn or lance may not be dropped on its last rank, a knight not on
// its last two ranks, and a pawn may not be dropped onto a file that
// already holds one of the color's unpromoted pawns (nifu). It does
// not check uchifuzume, which requires simulating the resulting
// position and is handled in IsLegal.
func (p *Position) dropAllowed(pt PieceType, c Color, to Square) bool {
	if mustPromote(pt, c, to) {
		return false
	}
	if pt == Pawn {
		file := to.File0()
		pawnsOnFile := p.Pieces[c][Pawn] & FileBB[file]
		if pawnsOnFile != 0 {
			return false
		}
	}
	return true
}

// IsLegal reports whether m, already pseudo-legal, is fully legal:
// it must not leave the mover's own king in check, and a pawn drop
// must not deliver checkmate (uchifuzume).
func (p *Position) IsLegal(m Move) bool {
	ownKingSafe, uchifuzume := p.legalityDetail(m)
	return ownKingSafe && !uchifuzume
}

// legalityDetail simulates m and reports, separately, whether the
// mover's own king ends up safe and whether the move is an illegal
// uchifuzume pawn drop — distinguished so callers can surface the
// correct reason string for each failure.
func (p *Position) legalityDetail(m Move) (ownKingSafe, uchifuzume bool) {
	us := p.SideToMove
	them := us.Opposite()

	undo := p.ApplyMove(m)
	ownKingSafe = !p.IsAttackedBy(p.KingSquare[us], them)

	if ownKingSafe && m.IsDrop() && m.Piece() == Pawn {
		if p.InCheck() && !p.HasLegalMoves() {
			uchifuzume = true
		}
	}

	p.UndoMove(m, undo)
	return ownKingSafe, uchifuzume
}

// UndoInfo carries the state ApplyMove cannot reconstruct from the
// move alone, so UndoMove can restore the position exactly.
type UndoInfo struct {
	Hash     uint64
	Checkers Bitboard
}

// ApplyMove plays m on p in place, returning the information UndoMove
// needs to reverse it. Drops remove a piece from hand and place it;
// board moves move (and possibly promote) the piece, returning any
// captured piece to the mover's hand.
func (p *Position) ApplyMove(m Move) UndoInfo {
	undo := UndoInfo{Hash: p.Hash, Checkers: p.Checkers}
	us := p.SideToMove
	them := us.Opposite()
	to := m.To()

	p.Hash ^= zobristSideToMove

	if m.IsDrop() {
		pt := m.Piece()
		p.Hands[us].Remove(pt)
		p.Hash ^= zobristHand[us][handSlotIndex(pt)][handZobristCount(p.Hands[us].Count(pt)+1)]
		p.Hash ^= zobristHand[us][handSlotIndex(pt)][handZobristCount(p.Hands[us].Count(pt))]
		p.PlacePiece(Piece{Type: pt, Color: us}, to)
		p.Hash ^= zobristPiece[us][pt][to]
	} else {
		from := m.From()
		pt := m.Piece()

		if captured := m.Captured(); captured != NoPieceType {
			p.RemovePiece(to)
			p.Hash ^= zobristPiece[them][captured][to]
			base := captured.Demote()
			if slot := handSlotIndex(base); slot >= 0 {
				p.Hands[us].Add(base)
				p.Hash ^= zobristHand[us][slot][handZobristCount(p.Hands[us].Count(base)-1)]
				p.Hash ^= zobristHand[us][slot][handZobristCount(p.Hands[us].Count(base))]
			}
		}

		p.MovePiece(from, to)
		p.Hash ^= zobristPiece[us][pt][from]

		finalType := pt
		if m.IsPromotion() {
			finalType = pt.Promote()
			p.Pieces[us][pt] &^= SquareBB[to]
			p.Pieces[us][finalType] |= SquareBB[to]
		}
		p.Hash ^= zobristPiece[us][finalType][to]
	}

	p.SideToMove = them
	p.Checkers = attackersTo(p, p.KingSquare[them], us)
	return undo
}

// UndoMove reverses an ApplyMove call. m and undo must be exactly
// those from the matching ApplyMove.
func (p *Position) UndoMove(m Move, undo UndoInfo) {
	them := p.SideToMove
	us := them.Opposite()
	to := m.To()

	p.SideToMove = us
	p.Hash = undo.Hash
	p.Checkers = undo.Checkers

	if m.IsDrop() {
		pt := m.Piece()
		p.RemovePiece(to)
		p.Hands[us].Add(pt)
		return
	}

	from := m.From()
	pt := m.Piece()

	if m.IsPromotion() {
		promoted := pt.Promote()
		p.Pieces[us][promoted] &^= SquareBB[to]
		p.Pieces[us][pt] |= SquareBB[to]
	}
	p.MovePiece(to, from)

	if captured := m.Captured(); captured != NoPieceType {
		p.Hands[us].Remove(captured.Demote())
		p.PlacePiece(Piece{Type: captured, Color: them}, to)
	}
}

// IsCheckmate reports whether the side to move is checkmated.
func (p *Position) IsCheckmate() bool { return p.InCheck() && !p.HasLegalMoves() }

// IsStalemate reports whether the side to move has no legal moves
// while not in check. The game layer (internal/game) reports such a
// position as DRAW_STALEMATE.
func (p *Position) IsStalemate() bool { return !p.InCheck() && !p.HasLegalMoves() }
