// Package board implements the rules of chess and a family of variants
// on top of a 64-bit bitboard representation.
package board

import "fmt"

// Square indexes one of the 64 board squares, rank-major from White's
// side of the board: sq>>3 is the rank and sq&7 the file, so a1 maps
// to 0 and h8 to 63.
type Square uint8

// NoSquare marks the absence of a square, e.g. no en passant target.
const NoSquare Square = 64

const (
	A1, B1, C1, D1, E1, F1, G1, H1 Square = 0, 1, 2, 3, 4, 5, 6, 7
	A2, B2, C2, D2, E2, F2, G2, H2 Square = 8, 9, 10, 11, 12, 13, 14, 15
	A3, B3, C3, D3, E3, F3, G3, H3 Square = 16, 17, 18, 19, 20, 21, 22, 23
	A4, B4, C4, D4, E4, F4, G4, H4 Square = 24, 25, 26, 27, 28, 29, 30, 31
	A5, B5, C5, D5, E5, F5, G5, H5 Square = 32, 33, 34, 35, 36, 37, 38, 39
	A6, B6, C6, D6, E6, F6, G6, H6 Square = 40, 41, 42, 43, 44, 45, 46, 47
	A7, B7, C7, D7, E7, F7, G7, H7 Square = 48, 49, 50, 51, 52, 53, 54, 55
	A8, B8, C8, D8, E8, F8, G8, H8 Square = 56, 57, 58, 59, 60, 61, 62, 63
)

// NewSquare builds a square from zero-based file and rank indices.
func NewSquare(file, rank int) Square {
	return Square(rank<<3 | file)
}

// ParseSquare reads coordinate notation such as "e4".
func ParseSquare(s string) (Square, error) {
	if len(s) == 2 && 'a' <= s[0] && s[0] <= 'h' && '1' <= s[1] && s[1] <= '8' {
		return NewSquare(int(s[0]-'a'), int(s[1]-'1')), nil
	}
	return NoSquare, fmt.Errorf("invalid square: %q", s)
}

// File returns the zero-based file, 0 for the a-file through 7 for h.
func (sq Square) File() int {
	return int(sq & 7)
}

// Rank returns the zero-based rank, 0 for rank 1 through 7 for rank 8.
func (sq Square) Rank() int {
	return int(sq >> 3)
}

// IsValid reports whether sq lies on the board.
func (sq Square) IsValid() bool {
	return sq < NoSquare
}

// Mirror flips the square to the same file on the opposite half of the
// board, a1 becoming a8. Flipping the three rank bits does exactly that.
func (sq Square) Mirror() Square {
	return sq ^ 56
}

// RelativeRank is the rank as seen by c: both sides count their own
// back rank as 0.
func (sq Square) RelativeRank(c Color) int {
	if c == Black {
		return 7 - sq.Rank()
	}
	return sq.Rank()
}

// Forward steps one rank toward the opponent's side. The caller is
// responsible for staying on the board.
func (sq Square) Forward(c Color) Square {
	if c == Black {
		return sq - 8
	}
	return sq + 8
}

// String renders coordinate notation, or "-" off the board.
func (sq Square) String() string {
	if !sq.IsValid() {
		return "-"
	}
	return string([]byte{byte('a' + sq.File()), byte('1' + sq.Rank())})
}
