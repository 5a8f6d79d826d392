// Package game wraps a shogi board position with history, repetition
// detection, and terminal-state evaluation.
package game

import (
	"fmt"

	"github.com/sagiri-no/minishogi/internal/shogi"
)

// Result is the fixed set of outcome tags a GameState can report
// (specification §6.3). External callers accept any of these verbatim.
type Result string

const (
	Ongoing        Result = "ONGOING"
	BlackWins      Result = "BLACK_WINS"
	WhiteWins      Result = "WHITE_WINS"
	DrawStalemate  Result = "DRAW_STALEMATE"
	DrawRepetition Result = "DRAW_REPETITION"
	DrawImpasse    Result = "DRAW_IMPASSE"
)

// MoveRecord is one entry of a GameState's history: the move played,
// the hash immediately before it, and the undo information needed to
// reverse it.
type MoveRecord struct {
	Move       shogi.Move
	HashBefore uint64
	Undo       shogi.UndoInfo
}

// GameState is a board position plus the bookkeeping required for
// undo, repetition, and terminal detection.
type GameState struct {
	Position *shogi.Position

	Ply        int
	MoveNumber int

	History     []MoveRecord
	HashHistory []uint64

	Result Result
}

// NewGame returns a GameState initialized to the minishogi starting
// position.
func NewGame() *GameState {
	pos := shogi.NewPosition()
	g := &GameState{
		Position:    pos,
		Ply:         0,
		MoveNumber:  pos.MoveNumber,
		History:     make([]MoveRecord, 0, 32),
		HashHistory: []uint64{pos.Hash},
		Result:      Ongoing,
	}
	g.Result = g.checkGameOver()
	return g
}

// LoadSFEN builds a GameState from an SFEN string, rebuilding the hash
// from scratch (specification §4.8).
func LoadSFEN(sfen string) (*GameState, error) {
	pos, err := shogi.ParseSFEN(sfen)
	if err != nil {
		return nil, fmt.Errorf("game: %w", err)
	}
	g := &GameState{
		Position:    pos,
		Ply:         0,
		MoveNumber:  pos.MoveNumber,
		History:     make([]MoveRecord, 0, 32),
		HashHistory: []uint64{pos.Hash},
		Result:      Ongoing,
	}
	g.Result = g.checkGameOver()
	return g, nil
}

// SideToMove returns whose turn it is.
func (g *GameState) SideToMove() shogi.Color { return g.Position.SideToMove }

// InCheck reports whether the side to move is in check.
func (g *GameState) InCheck() bool { return g.Position.InCheck() }

// LegalMoves returns every legal move in the current position.
func (g *GameState) LegalMoves() *shogi.MoveList { return g.Position.GenerateLegalMoves() }

// MakeMove validates m against the current position and, if legal,
// applies it, extends history, and recomputes the terminal result. It
// returns false without mutating state if m is illegal.
func (g *GameState) MakeMove(m shogi.Move) (bool, string) {
	side := g.Position.SideToMove
	ok, reason := shogi.ValidateMove(g.Position, m, side)
	if !ok {
		return false, reason
	}

	hashBefore := g.Position.Hash
	undo := g.Position.ApplyMove(m)

	g.History = append(g.History, MoveRecord{Move: m, HashBefore: hashBefore, Undo: undo})
	g.HashHistory = append(g.HashHistory, g.Position.Hash)

	g.Ply++
	if side == shogi.White {
		g.MoveNumber++
		g.Position.MoveNumber = g.MoveNumber
	}

	g.Result = g.checkGameOver()
	return true, ""
}

// MakeMoveNotation parses notation as a USI-style move for the side to
// move and, if it parses and validates, applies it.
func (g *GameState) MakeMoveNotation(notation string) (bool, string) {
	side := g.Position.SideToMove
	m, err := shogi.ParseMoveNotation(notation, g.Position, side)
	if err != nil {
		return false, err.Error()
	}
	return g.MakeMove(m)
}

// UndoMove pops the most recent move and restores the preceding
// state. It is a no-op if there is no history.
func (g *GameState) UndoMove() {
	if len(g.History) == 0 {
		return
	}
	last := g.History[len(g.History)-1]
	g.History = g.History[:len(g.History)-1]
	g.HashHistory = g.HashHistory[:len(g.HashHistory)-1]

	g.Position.UndoMove(last.Move, last.Undo)
	g.Ply--
	if g.Position.SideToMove == shogi.White {
		g.MoveNumber--
		g.Position.MoveNumber = g.MoveNumber
	}
	g.Result = Ongoing
}

// checkGameOver implements get_game_result followed by the repetition
// and impasse overrides (specification §4.8).
func (g *GameState) checkGameOver() Result {
	pos := g.Position
	side := pos.SideToMove

	if pos.InCheck() {
		if !pos.HasLegalMoves() {
			if side == shogi.Black {
				return WhiteWins
			}
			return BlackWins
		}
	} else if !pos.HasLegalMoves() {
		return DrawStalemate
	}

	if countOccurrences(g.HashHistory, pos.Hash) >= repetitionThreshold {
		return DrawRepetition
	}

	if checkImpasse(pos) {
		return DrawImpasse
	}

	return Ongoing
}

// impasseEntryValue is the minimum material (board pieces plus hand,
// king excluded) a side must hold, in points where a pawn or promoted
// pawn is 1 and every other piece is 5 (see jishogiPoints), to count
// as having successfully escaped into the opponent's camp.
const impasseEntryValue = 10

// checkImpasse implements a simplified entering-kings (nyugyoku) rule:
// when both kings have reached their respective promotion zones and
// neither side is in check, and both sides hold enough material to
// count as a genuine escape rather than a bare king wandering in, the
// game is a draw. This is a deliberate simplification of full jishogi
// scoring, which additionally awards a win to whichever side clears a
// higher point threshold — minishogi's small board makes that scoring
// split rarely decisive, so both engines here treat a mutual entry as
// a draw.
func checkImpasse(pos *shogi.Position) bool {
	if pos.InCheck() {
		return false
	}

	blackZone := promotionZoneSquares(shogi.Black)
	whiteZone := promotionZoneSquares(shogi.White)

	if !blackZone.IsSet(pos.KingSquare[shogi.Black]) {
		return false
	}
	if !whiteZone.IsSet(pos.KingSquare[shogi.White]) {
		return false
	}

	return jishogiPoints(pos, shogi.Black) >= impasseEntryValue &&
		jishogiPoints(pos, shogi.White) >= impasseEntryValue
}

func promotionZoneSquares(c shogi.Color) shogi.Bitboard {
	if c == shogi.Black {
		return shogi.RankBB[0] | shogi.RankBB[1]
	}
	return shogi.RankBB[3] | shogi.RankBB[4]
}

// jishogiPoints scores c's material under the standard jishogi table:
// 5 points per non-pawn piece (board or hand), 1 per pawn, king
// excluded.
func jishogiPoints(pos *shogi.Position, c shogi.Color) int {
	points := 0
	for pt := shogi.PieceType(0); pt < shogi.NoPieceType; pt++ {
		if pt == shogi.King {
			continue
		}
		n := pos.Pieces[c][pt].PopCount()
		if n == 0 {
			continue
		}
		if pt.Demote() == shogi.Pawn {
			points += n
		} else {
			points += n * 5
		}
	}
	if pos.Hands[c].Count(shogi.Pawn) > 0 {
		points += pos.Hands[c].Count(shogi.Pawn)
	}
	for _, pt := range []shogi.PieceType{shogi.Lance, shogi.Knight, shogi.Silver, shogi.Gold, shogi.Bishop, shogi.Rook} {
		if n := pos.Hands[c].Count(pt); n > 0 {
			points += n * 5
		}
	}
	return points
}
