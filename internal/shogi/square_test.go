package shogi

import "testing"

func TestSquareNotationRoundTrip(t *testing.T) {
	for f := 0; f < boardSize; f++ {
		for r := 0; r < boardSize; r++ {
			sq := NewSquare(f, r)
			got, err := ParseSquareNotation(sq.Notation())
			if err != nil {
				t.Fatalf("ParseSquareNotation(%q): %v", sq.Notation(), err)
			}
			if got != sq {
				t.Errorf("round trip %v -> %q -> %v, want %v", sq, sq.Notation(), got, sq)
			}
		}
	}
}

func TestSquareNotationExamples(t *testing.T) {
	tests := []struct {
		notation string
		file     int
		rank     int
	}{
		{"1a", 1, 1},
		{"5a", 5, 1},
		{"1e", 1, 5},
		{"5e", 5, 5},
		{"3c", 3, 3},
	}
	for _, tc := range tests {
		sq, err := ParseSquareNotation(tc.notation)
		if err != nil {
			t.Fatalf("ParseSquareNotation(%q): %v", tc.notation, err)
		}
		if sq.File() != tc.file || sq.Rank() != tc.rank {
			t.Errorf("%q -> file=%d rank=%d, want file=%d rank=%d", tc.notation, sq.File(), sq.Rank(), tc.file, tc.rank)
		}
	}
}

func TestParseSquareNotationInvalid(t *testing.T) {
	for _, bad := range []string{"", "0a", "6a", "1f", "11", "aa", "123"} {
		if _, err := ParseSquareNotation(bad); err == nil {
			t.Errorf("ParseSquareNotation(%q) = nil error, want error", bad)
		}
	}
}

func TestSquareIndexMatchesSquareIndexHelper(t *testing.T) {
	for rank := 1; rank <= boardSize; rank++ {
		for file := 1; file <= boardSize; file++ {
			sq := squareIndex(rank, file)
			if sq.File() != file || sq.Rank() != rank {
				t.Errorf("squareIndex(%d,%d) = %v, file=%d rank=%d", rank, file, sq, sq.File(), sq.Rank())
			}
		}
	}
}
