package board

import (
	"strings"
)

// Move encodes a move in the low bits of a uint32:
// bits 0-5:   from square (0-63; unused for drops)
// bits 6-11:  to square (0-63)
// bits 12-14: auxiliary piece type (promotion piece, or dropped piece)
// bits 15-17: flags
//
// Castling moves are encoded king-takes-rook: From is the king's square and
// To is the castling rook's square. This form is unambiguous for every
// starting setup, classical or not.
type Move uint32

// Move flags
const (
	FlagNormal    uint32 = 0 << 15
	FlagPromotion uint32 = 1 << 15
	FlagEnPassant uint32 = 2 << 15
	FlagCastling  uint32 = 3 << 15
	FlagDrop      uint32 = 4 << 15
)

// NoMove represents an invalid or null move.
const NoMove Move = 0

// NewMove creates a normal move.
func NewMove(from, to Square) Move {
	return Move(from) | Move(to)<<6
}

// NewPromotion creates a promotion move. King promotions are reachable in
// games where promotion to king is allowed.
func NewPromotion(from, to Square, promo PieceType) Move {
	return Move(from) | Move(to)<<6 | Move(promo)<<12 | Move(FlagPromotion)
}

// NewEnPassant creates an en passant capture move.
func NewEnPassant(from, to Square) Move {
	return Move(from) | Move(to)<<6 | Move(FlagEnPassant)
}

// NewCastling creates a castling move from the king's square to the castling
// rook's square.
func NewCastling(kingSq, rookSq Square) Move {
	return Move(kingSq) | Move(rookSq)<<6 | Move(FlagCastling)
}

// NewDrop creates a pocket drop of the given piece type onto an empty square.
func NewDrop(pt PieceType, to Square) Move {
	return Move(to)<<6 | Move(pt)<<12 | Move(FlagDrop)
}

// From returns the origin square, or NoSquare for drops.
func (m Move) From() Square {
	if m.IsDrop() {
		return NoSquare
	}
	return Square(m & 0x3F)
}

// To returns the destination square. For castling this is the rook's square.
func (m Move) To() Square {
	return Square((m >> 6) & 0x3F)
}

// Flag returns the move flag.
func (m Move) Flag() uint32 {
	return uint32(m) & (7 << 15)
}

// Promotion returns the promotion piece type (valid only if IsPromotion).
func (m Move) Promotion() PieceType {
	return PieceType((m >> 12) & 7)
}

// DropPiece returns the dropped piece type (valid only if IsDrop).
func (m Move) DropPiece() PieceType {
	return PieceType((m >> 12) & 7)
}

// IsPromotion returns true if this is a promotion move.
func (m Move) IsPromotion() bool {
	return m.Flag() == FlagPromotion
}

// IsCastling returns true if this is a castling move.
func (m Move) IsCastling() bool {
	return m.Flag() == FlagCastling
}

// IsEnPassant returns true if this is an en passant capture.
func (m Move) IsEnPassant() bool {
	return m.Flag() == FlagEnPassant
}

// IsDrop returns true if this is a pocket drop.
func (m Move) IsDrop() bool {
	return m.Flag() == FlagDrop
}

// IsCapture returns true if this move captures a piece.
func (m Move) IsCapture(pos *Position) bool {
	if m.IsEnPassant() {
		return true
	}
	if m.IsDrop() || m.IsCastling() {
		return false
	}
	return !pos.IsEmpty(m.To())
}

// String returns the raw UCI form of the move. Castling renders as the
// king-takes-rook pair; use Position.UCI for the variant-aware form. Drops
// render in the "P@e4" crazyhouse form.
func (m Move) String() string {
	if m == NoMove {
		return "0000"
	}

	if m.IsDrop() {
		return strings.ToUpper(string(m.DropPiece().Char())) + "@" + m.To().String()
	}

	s := m.From().String() + m.To().String()
	if m.IsPromotion() {
		s += string(m.Promotion().Char())
	}
	return s
}

// MoveList is a fixed-size list of moves to avoid allocations.
type MoveList struct {
	moves [256]Move
	count int
}

// NewMoveList creates an empty move list.
func NewMoveList() *MoveList {
	return &MoveList{}
}

// Add adds a move to the list.
func (ml *MoveList) Add(m Move) {
	ml.moves[ml.count] = m
	ml.count++
}

// Len returns the number of moves in the list.
func (ml *MoveList) Len() int {
	return ml.count
}

// Get returns the move at index i.
func (ml *MoveList) Get(i int) Move {
	return ml.moves[i]
}

// Clear clears the list.
func (ml *MoveList) Clear() {
	ml.count = 0
}

// Contains returns true if the list contains the move.
func (ml *MoveList) Contains(m Move) bool {
	for i := 0; i < ml.count; i++ {
		if ml.moves[i] == m {
			return true
		}
	}
	return false
}

// Slice returns the moves as a slice backed by the list.
func (ml *MoveList) Slice() []Move {
	return ml.moves[:ml.count]
}
