package shogi

import (
	"fmt"
	"strings"
)

// Fixed, testable illegal-move reason strings (specification §7). An
// external caller may assert on these verbatim, so they must not
// change casually.
const (
	ReasonInvalidDestSquare        = "Invalid dest square"
	ReasonInvalidSourceSquare      = "Invalid source square"
	ReasonNoPieceAtSource          = "No piece at source square"
	ReasonPieceTypeMismatch        = "Piece type mismatch"
	ReasonCannotCaptureOwnPiece    = "Cannot capture own piece"
	ReasonCannotReachDestination   = "Piece cannot reach destination"
	ReasonCannotPromote            = "This piece cannot promote"
	ReasonAlreadyPromoted          = "This piece is already promoted"
	ReasonNotInPromotionZone       = "Not in promotion zone"
	ReasonPromotionMandatory       = "Promotion is mandatory for this move"
	ReasonLeavesKingInCheck        = "Move leaves king in check"
	ReasonDestinationOccupied      = "Destination square is occupied"
	ReasonPawnLastRank             = "Cannot drop pawn on last rank"
	ReasonNifu                     = "Nifu, two pawns already on file"
	ReasonLanceLastRank            = "Cannot drop lance on last rank"
	ReasonKnightLastTwoRanks       = "Cannot drop knight on last two ranks"
	ReasonUchifuzume               = "drop pawn makes illegal checkmate"
)

// ReasonNoPieceInHand formats the "No <PT> in hand" reason for pt.
func ReasonNoPieceInHand(pt PieceType) string {
	return fmt.Sprintf("No %s in hand", strings.ToUpper(string(pt.Char())))
}

var dropPieceChars = map[byte]PieceType{
	'P': Pawn, 'L': Lance, 'N': Knight, 'S': Silver, 'G': Gold, 'B': Bishop, 'R': Rook,
}

// ParseMoveNotation parses a USI-style move string against state for
// side, returning the encoded Move. It validates syntax, looks up the
// source piece and its ownership, and (for drops) hand membership; it
// does not apply legality checks beyond that — use ValidateMove or
// IsLegal for the full check.
func ParseMoveNotation(notation string, state *Position, side Color) (Move, error) {
	if strings.Contains(notation, "*") {
		return parseDropNotation(notation, state, side)
	}
	return parseBoardMoveNotation(notation, state, side)
}

func parseBoardMoveNotation(notation string, state *Position, side Color) (Move, error) {
	promote := strings.HasSuffix(notation, "+")
	body := strings.TrimSuffix(notation, "+")
	if len(body) != 4 {
		return 0, fmt.Errorf("shogi: malformed move notation %q", notation)
	}

	from, err := ParseSquareNotation(body[:2])
	if err != nil {
		return 0, fmt.Errorf("shogi: %s", ReasonInvalidSourceSquare)
	}
	to, err := ParseSquareNotation(body[2:])
	if err != nil {
		return 0, fmt.Errorf("shogi: %s", ReasonInvalidDestSquare)
	}

	piece := state.PieceAt(from)
	if piece.IsNone() {
		return 0, fmt.Errorf("shogi: %s", ReasonNoPieceAtSource)
	}
	if piece.Color != side {
		return 0, fmt.Errorf("shogi: %s", ReasonPieceTypeMismatch)
	}

	captured := NoPieceType
	if target := state.PieceAt(to); !target.IsNone() {
		if target.Color == side {
			return 0, fmt.Errorf("shogi: %s", ReasonCannotCaptureOwnPiece)
		}
		captured = target.Type
	}

	return NewMove(from, to, piece.Type, promote, captured), nil
}

func parseDropNotation(notation string, state *Position, side Color) (Move, error) {
	parts := strings.SplitN(notation, "*", 2)
	if len(parts) != 2 || len(parts[0]) != 1 {
		return 0, fmt.Errorf("shogi: malformed drop notation %q", notation)
	}
	pt, ok := dropPieceChars[parts[0][0]]
	if !ok {
		return 0, fmt.Errorf("shogi: unknown drop piece %q", parts[0])
	}
	to, err := ParseSquareNotation(parts[1])
	if err != nil {
		return 0, fmt.Errorf("shogi: %s", ReasonInvalidDestSquare)
	}
	if !state.Hands[side].Has(pt) {
		return 0, fmt.Errorf("shogi: %s", ReasonNoPieceInHand(pt))
	}
	return NewDrop(to, pt), nil
}

// FormatMoveNotation renders m in USI-style notation.
func FormatMoveNotation(m Move) string {
	if m.IsDrop() {
		return fmt.Sprintf("%c*%s", m.Piece().Char(), m.To().Notation())
	}
	s := m.From().Notation() + m.To().Notation()
	if m.IsPromotion() {
		s += "+"
	}
	return s
}

// ValidateMove re-derives, from scratch, whether m is legal in state
// for side, checking in the order specification §4.7 fixes: square
// bounds, source identity/ownership, own-piece capture, reachability,
// promotion legality, check safety, and (for pawn drops) nifu and
// uchifuzume. It returns a distinct reason string on the first check
// that fails.
func ValidateMove(state *Position, m Move, side Color) (bool, string) {
	to := m.To()
	if !to.IsValid() {
		return false, ReasonInvalidDestSquare
	}

	if m.IsDrop() {
		return validateDrop(state, m, side)
	}

	from := m.From()
	if !from.IsValid() {
		return false, ReasonInvalidSourceSquare
	}

	piece := state.PieceAt(from)
	if piece.IsNone() {
		return false, ReasonNoPieceAtSource
	}
	if piece.Type != m.Piece() || piece.Color != side {
		return false, ReasonPieceTypeMismatch
	}

	target := state.PieceAt(to)
	if !target.IsNone() {
		if target.Color == side {
			return false, ReasonCannotCaptureOwnPiece
		}
	}

	reach := attacksOf(piece.Type, side, from, state.AllOccupied) &^ state.Occupied[side]
	if !reach.IsSet(to) {
		return false, ReasonCannotReachDestination
	}

	if reason, ok := validatePromotion(piece.Type, side, from, to, m.IsPromotion()); !ok {
		return false, reason
	}

	if !state.IsLegal(m) {
		return false, ReasonLeavesKingInCheck
	}

	return true, ""
}

func validatePromotion(pt PieceType, c Color, from, to Square, promote bool) (string, bool) {
	if !promote {
		if mustPromote(pt, c, to) {
			return ReasonPromotionMandatory, false
		}
		return "", true
	}
	if pt.IsPromoted() {
		return ReasonAlreadyPromoted, false
	}
	if !pt.Promotable() {
		return ReasonCannotPromote, false
	}
	if !canPromote(pt, c, from, to) {
		return ReasonNotInPromotionZone, false
	}
	return "", true
}

func validateDrop(state *Position, m Move, side Color) (bool, string) {
	pt := m.Piece()
	to := m.To()

	if !state.IsEmpty(to) {
		return false, ReasonDestinationOccupied
	}
	if !state.Hands[side].Has(pt) {
		return false, ReasonNoPieceInHand(pt)
	}

	switch pt {
	case Pawn:
		if mustPromote(Pawn, side, to) {
			return false, ReasonPawnLastRank
		}
		if state.Pieces[side][Pawn]&FileBB[to.File0()] != 0 {
			return false, ReasonNifu
		}
	case Lance:
		if mustPromote(Lance, side, to) {
			return false, ReasonLanceLastRank
		}
	case Knight:
		if mustPromote(Knight, side, to) {
			return false, ReasonKnightLastTwoRanks
		}
	}

	ownKingSafe, uchifuzume := state.legalityDetail(m)
	if !ownKingSafe {
		return false, ReasonLeavesKingInCheck
	}
	if uchifuzume {
		return false, ReasonUchifuzume
	}

	return true, ""
}
