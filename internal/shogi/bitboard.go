package shogi

import "math/bits"

// Bitboard is a 25-bit set of squares, one bit per square (bit i = square i).
// Bits 25..31 are always zero.
type Bitboard uint32

// FullBB is the bitboard with all 25 squares set.
const FullBB Bitboard = (1 << 25) - 1

// File masks, indexed 0 (file 1) .. 4 (file 5).
var FileBB = [boardSize]Bitboard{}

// Rank masks, indexed 0 (rank a) .. 4 (rank e).
var RankBB = [boardSize]Bitboard{}

// SquareBB, one bit set per square, indexed by Square.
var SquareBB [25]Bitboard

// The masks are filled by a package-level variable initializer rather
// than an init function: Go finishes every variable initializer before
// running any init function, so the step-attack tables built in
// attacks.go's init always see filled masks.
var _ = func() bool {
	for f := 0; f < boardSize; f++ {
		var m Bitboard
		for r := 0; r < boardSize; r++ {
			m = m.Set(NewSquare(f, r))
		}
		FileBB[f] = m
	}
	for r := 0; r < boardSize; r++ {
		var m Bitboard
		for f := 0; f < boardSize; f++ {
			m = m.Set(NewSquare(f, r))
		}
		RankBB[r] = m
	}
	for sq := Square(0); sq < 25; sq++ {
		SquareBB[sq] = 1 << sq
	}
	return true
}()

// Set returns b with sq set.
func (b Bitboard) Set(sq Square) Bitboard { return b | (1 << sq) }

// Clear returns b with sq cleared.
func (b Bitboard) Clear(sq Square) Bitboard { return b &^ (1 << sq) }

// Toggle returns b with sq flipped.
func (b Bitboard) Toggle(sq Square) Bitboard { return b ^ (1 << sq) }

// IsSet reports whether sq is set in b.
func (b Bitboard) IsSet(sq Square) bool { return b&(1<<sq) != 0 }

// PopCount returns the number of set bits.
func (b Bitboard) PopCount() int { return bits.OnesCount32(uint32(b)) }

// LSB returns the lowest-indexed set square, or NoSquare if b is empty.
func (b Bitboard) LSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(bits.TrailingZeros32(uint32(b)))
}

// PopLSB clears and returns the lowest-indexed set square.
func (b *Bitboard) PopLSB() Square {
	sq := b.LSB()
	*b &= *b - 1
	return sq
}

// MSB returns the highest-indexed set square, or NoSquare if b is empty.
func (b Bitboard) MSB() Square {
	if b == 0 {
		return NoSquare
	}
	return Square(31 - bits.LeadingZeros32(uint32(b)))
}

// Empty reports whether no bit is set.
func (b Bitboard) Empty() bool { return b == 0 }

// Squares returns the set squares in ascending order. The slice is a
// fresh, finite, non-restartable snapshot — it does not alias b.
func (b Bitboard) Squares() []Square {
	sqs := make([]Square, 0, b.PopCount())
	for b != 0 {
		sqs = append(sqs, b.PopLSB())
	}
	return sqs
}

// North shifts every set bit one rank toward rank a (bit index decreases
// by the board width). Squares on rank a fall off the board.
func (b Bitboard) North() Bitboard { return (b >> boardSize) & FullBB }

// South shifts every set bit one rank toward rank e.
func (b Bitboard) South() Bitboard { return (b << boardSize) & FullBB }

// East shifts every set bit one file toward file 5, masking off file 5
// first so no bit wraps onto the next rank's file 1.
func (b Bitboard) East() Bitboard { return (b &^ FileBB[4] << 1) & FullBB }

// West shifts every set bit one file toward file 1.
func (b Bitboard) West() Bitboard { return (b &^ FileBB[0] >> 1) & FullBB }

// NorthEast composes North and East.
func (b Bitboard) NorthEast() Bitboard { return (b &^ FileBB[4] >> (boardSize - 1)) & FullBB }

// NorthWest composes North and West.
func (b Bitboard) NorthWest() Bitboard { return (b &^ FileBB[0] >> (boardSize + 1)) & FullBB }

// SouthEast composes South and East.
func (b Bitboard) SouthEast() Bitboard { return (b &^ FileBB[4] << (boardSize + 1)) & FullBB }

// SouthWest composes South and West.
func (b Bitboard) SouthWest() Bitboard { return (b &^ FileBB[0] << (boardSize - 1)) & FullBB }

// String renders the bitboard as a 5x5 grid, rank a at the top.
func (b Bitboard) String() string {
	s := make([]byte, 0, 40)
	for r := 0; r < boardSize; r++ {
		for f := 0; f < boardSize; f++ {
			if b.IsSet(NewSquare(f, r)) {
				s = append(s, '1', ' ')
			} else {
				s = append(s, '.', ' ')
			}
		}
		s = append(s, '\n')
	}
	return string(s)
}
