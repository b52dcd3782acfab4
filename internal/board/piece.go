package board

import "strings"

// Color identifies a side. The zero value is White so that arrays
// indexed by color put White first.
type Color uint8

const (
	White Color = iota
	Black
	NoColor
)

// Other flips the side.
func (c Color) Other() Color {
	return c ^ 1
}

func (c Color) String() string {
	switch c {
	case White:
		return "White"
	case Black:
		return "Black"
	}
	return "NoColor"
}

// PieceType is a piece kind without a color attached.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType
)

// typeChars holds the FEN letters in PieceType order.
const typeChars = "pnbrqk"

var typeNames = [...]string{"Pawn", "Knight", "Bishop", "Rook", "Queen", "King"}

func (pt PieceType) String() string {
	if pt >= NoPieceType {
		return "None"
	}
	return typeNames[pt]
}

// Char returns the lowercase FEN letter, or a space for NoPieceType.
func (pt PieceType) Char() byte {
	if pt >= NoPieceType {
		return ' '
	}
	return typeChars[pt]
}

// PieceTypeFromChar is the inverse of Char. Unknown letters map to
// NoPieceType.
func PieceTypeFromChar(c byte) PieceType {
	if i := strings.IndexByte(typeChars, c); i >= 0 {
		return PieceType(i)
	}
	return NoPieceType
}

// Piece is a colored piece, packed as type + 6*color so that a piece
// splits back into its parts with a division and a remainder.
type Piece uint8

const (
	WhitePawn Piece = iota
	WhiteKnight
	WhiteBishop
	WhiteRook
	WhiteQueen
	WhiteKing
	BlackPawn
	BlackKnight
	BlackBishop
	BlackRook
	BlackQueen
	BlackKing
	NoPiece
)

// pieceChars holds the FEN letters in Piece order, White first.
const pieceChars = "PNBRQKpnbrqk"

// NewPiece packs a type and color into a Piece.
func NewPiece(pt PieceType, c Color) Piece {
	if c >= NoColor || pt >= NoPieceType {
		return NoPiece
	}
	return Piece(pt) + 6*Piece(c)
}

// PieceFromChar reads a FEN letter, uppercase for White and lowercase
// for Black. Unknown letters map to NoPiece.
func PieceFromChar(c byte) Piece {
	if i := strings.IndexByte(pieceChars, c); i >= 0 {
		return Piece(i)
	}
	return NoPiece
}

func (p Piece) Type() PieceType {
	if p >= NoPiece {
		return NoPieceType
	}
	return PieceType(p % 6)
}

func (p Piece) Color() Color {
	if p >= NoPiece {
		return NoColor
	}
	return Color(p / 6)
}

// String returns the piece's FEN letter, or a space for NoPiece.
func (p Piece) String() string {
	if p >= NoPiece {
		return " "
	}
	return pieceChars[p : p+1]
}
