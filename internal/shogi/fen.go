package shogi

import (
	"fmt"
	"strconv"
	"strings"
)

// StartSFEN is minishogi's standard starting position in SFEN notation.
const StartSFEN = "rbsgk/4p/5/P4/KGSBR b - 1"

var sfenPieceTypes = map[byte]PieceType{
	'p': Pawn, 'l': Lance, 'n': Knight, 's': Silver, 'g': Gold,
	'b': Bishop, 'r': Rook, 'k': King,
}

// ParseSFEN parses a minishogi position from SFEN notation:
// "<board> <side> <hand> <movenum>".
func ParseSFEN(sfen string) (*Position, error) {
	fields := strings.Fields(sfen)
	if len(fields) != 4 {
		return nil, fmt.Errorf("shogi: sfen must have 4 fields, got %d", len(fields))
	}

	p := &Position{}
	p.Clear()

	if err := parseSFENBoard(p, fields[0]); err != nil {
		return nil, err
	}

	switch fields[1] {
	case "b":
		p.SideToMove = Black
	case "w":
		p.SideToMove = White
	default:
		return nil, fmt.Errorf("shogi: invalid side to move %q", fields[1])
	}

	if err := parseSFENHand(p, fields[2]); err != nil {
		return nil, err
	}

	n, err := strconv.Atoi(fields[3])
	if err != nil {
		return nil, fmt.Errorf("shogi: invalid move number %q: %w", fields[3], err)
	}
	p.MoveNumber = n

	p.UpdateOccupied()
	p.findKings()
	p.Hash = computeZobristHash(p)
	p.Checkers = attackersTo(p, p.KingSquare[p.SideToMove], p.SideToMove.Opposite())

	return p, nil
}

func parseSFENBoard(p *Position, board string) error {
	ranks := strings.Split(board, "/")
	if len(ranks) != boardSize {
		return fmt.Errorf("shogi: sfen board must have %d ranks, got %d", boardSize, len(ranks))
	}

	for rank0, row := range ranks {
		file := 0 // leftmost board character is file 1 (specification §3)
		promoted := false
		for i := 0; i < len(row); i++ {
			ch := row[i]
			switch {
			case ch == '+':
				promoted = true
			case ch >= '1' && ch <= '9':
				file += int(ch - '0')
				promoted = false
			default:
				if file >= boardSize {
					return fmt.Errorf("shogi: sfen rank %q overflows the board", row)
				}
				base, ok := sfenPieceTypes[lowerByte(ch)]
				if !ok {
					return fmt.Errorf("shogi: invalid sfen piece %q", string(ch))
				}
				pt := base
				if promoted {
					if !pt.Promotable() {
						return fmt.Errorf("shogi: sfen piece %q cannot be promoted", string(ch))
					}
					pt = pt.Promote()
				}
				color := Black
				if ch >= 'a' && ch <= 'z' {
					color = White
				}
				sq := NewSquare(file, rank0)
				p.PlacePiece(Piece{Type: pt, Color: color}, sq)
				file++
				promoted = false
			}
		}
	}
	return nil
}

func parseSFENHand(p *Position, hand string) error {
	if hand == "-" {
		return nil
	}
	count := 0
	for i := 0; i < len(hand); i++ {
		ch := hand[i]
		if ch >= '0' && ch <= '9' {
			count = count*10 + int(ch-'0')
			continue
		}
		base, ok := sfenPieceTypes[lowerByte(ch)]
		if !ok || base == King {
			return fmt.Errorf("shogi: invalid sfen hand piece %q", string(ch))
		}
		color := Black
		if ch >= 'a' && ch <= 'z' {
			color = White
		}
		n := count
		if n == 0 {
			n = 1
		}
		for k := 0; k < n; k++ {
			p.Hands[color].Add(base)
		}
		count = 0
	}
	return nil
}

func lowerByte(b byte) byte {
	if b >= 'A' && b <= 'Z' {
		return b - 'A' + 'a'
	}
	return b
}

// SFEN renders p in SFEN notation.
func (p *Position) SFEN() string {
	var board strings.Builder
	for rank0 := 0; rank0 < boardSize; rank0++ {
		empty := 0
		for file0 := 0; file0 < boardSize; file0++ {
			piece := p.PieceAt(NewSquare(file0, rank0))
			if piece.IsNone() {
				empty++
				continue
			}
			if empty > 0 {
				board.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			board.WriteString(piece.Char())
		}
		if empty > 0 {
			board.WriteString(strconv.Itoa(empty))
		}
		if rank0 != boardSize-1 {
			board.WriteByte('/')
		}
	}

	side := "b"
	if p.SideToMove == White {
		side = "w"
	}

	hand := sfenHandString(p)

	return fmt.Sprintf("%s %s %s %d", board.String(), side, hand, p.MoveNumber)
}

func sfenHandString(p *Position) string {
	var sb strings.Builder
	// SFEN hand order: Black's pieces (rook, bishop, gold, silver, knight,
	// lance, pawn) then White's, each high-to-low value.
	order := []PieceType{Rook, Bishop, Gold, Silver, Knight, Lance, Pawn}
	for _, color := range []Color{Black, White} {
		for _, pt := range order {
			n := p.Hands[color].Count(pt)
			if n == 0 {
				continue
			}
			if n > 1 {
				sb.WriteString(strconv.Itoa(n))
			}
			ch := pt.Char()
			if color == White {
				ch = lowerByte(ch)
			}
			sb.WriteByte(ch)
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
