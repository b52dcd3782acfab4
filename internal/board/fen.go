package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the classical starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// ParseFEN parses a FEN string under the given variant and returns a
// Position. Accepts X-FEN castling (KQkq plus rook file letters for
// non-classical setups), the bracketed crazyhouse pocket with "~" promotion
// markers, and the three-check "+W+B" check-count field.
func ParseFEN(fen string, v Variant) (*Position, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("%w: need at least 4 FEN fields, got %d", ErrInvalidPosition, len(parts))
	}

	pos := &Position{
		Variant:        v,
		EnPassant:      NoSquare,
		FullMoveNumber: 1,
	}
	pos.KingSquare[White] = NoSquare
	pos.KingSquare[Black] = NoSquare

	if err := parsePiecePlacement(pos, parts[0]); err != nil {
		return nil, err
	}

	switch parts[1] {
	case "w":
		pos.SideToMove = White
	case "b":
		pos.SideToMove = Black
	default:
		return nil, fmt.Errorf("%w: bad side to move %q", ErrInvalidPosition, parts[1])
	}

	pos.updateOccupied()
	pos.findKings()

	if err := parseCastling(pos, parts[2]); err != nil {
		return nil, err
	}

	if parts[3] != "-" {
		sq, err := ParseSquare(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: bad en passant square %q", ErrInvalidPosition, parts[3])
		}
		pos.EnPassant = sq
	}

	if len(parts) > 4 {
		hmc, err := strconv.Atoi(parts[4])
		if err != nil || hmc < 0 {
			return nil, fmt.Errorf("%w: bad half-move clock %q", ErrInvalidPosition, parts[4])
		}
		pos.HalfMoveClock = hmc
	}

	if len(parts) > 5 {
		fmn, err := strconv.Atoi(parts[5])
		if err != nil || fmn < 1 {
			return nil, fmt.Errorf("%w: bad full-move number %q", ErrInvalidPosition, parts[5])
		}
		pos.FullMoveNumber = fmn
	}

	if len(parts) > 6 && v.TracksChecks() {
		if err := parseCheckCounts(pos, parts[6]); err != nil {
			return nil, err
		}
	}

	pos.UpdateCheckers()
	if err := pos.Validate(); err != nil {
		return nil, err
	}

	// Drop an en passant square nobody can use so equal positions hash and
	// render equal.
	if pos.EnPassant != NoSquare && !pos.hasLegalEnPassant() {
		pos.EnPassant = NoSquare
	}

	pos.Hash = pos.computeHash()
	pos.hashHistory = []byte{byte(pos.Hash), byte(pos.Hash >> 8), byte(pos.Hash >> 16)}

	return pos, nil
}

// parsePiecePlacement fills the piece bitboards from the board field,
// including "~" promotion markers and a trailing "[...]" crazyhouse pocket.
func parsePiecePlacement(pos *Position, placement string) error {
	if i := strings.IndexByte(placement, '['); i >= 0 {
		if !strings.HasSuffix(placement, "]") {
			return fmt.Errorf("%w: unterminated pocket", ErrInvalidPosition)
		}
		if err := parsePocket(pos, placement[i+1:len(placement)-1]); err != nil {
			return err
		}
		placement = placement[:i]
	}

	ranks := strings.Split(placement, "/")
	if len(ranks) != 8 {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidPosition, len(ranks))
	}

	for i, rankStr := range ranks {
		rank := 7 - i
		file := 0

		for _, c := range rankStr {
			switch {
			case c >= '1' && c <= '8':
				file += int(c - '0')
			case c == '~':
				if file == 0 {
					return fmt.Errorf("%w: dangling promotion marker", ErrInvalidPosition)
				}
				pos.Promoted |= SquareBB(NewSquare(file-1, rank))
			default:
				if file > 7 {
					return fmt.Errorf("%w: rank %d overflows", ErrInvalidPosition, rank+1)
				}
				piece := PieceFromChar(byte(c))
				if piece == NoPiece {
					return fmt.Errorf("%w: bad piece character %q", ErrInvalidPosition, c)
				}
				pos.setPiece(piece, NewSquare(file, rank))
				file++
			}
		}

		if file != 8 {
			return fmt.Errorf("%w: rank %d has %d files", ErrInvalidPosition, rank+1, file)
		}
	}

	return nil
}

func parsePocket(pos *Position, pocket string) error {
	for i := 0; i < len(pocket); i++ {
		piece := PieceFromChar(pocket[i])
		if piece == NoPiece || piece.Type() == King {
			return fmt.Errorf("%w: bad pocket character %q", ErrInvalidPosition, pocket[i])
		}
		pos.Pockets[piece.Color()][piece.Type()]++
	}
	return nil
}

// parseCastling resolves the castling field to unmoved-rook squares. "K" and
// "Q" bind to the outermost rook on the king's wing; a file letter names the
// rook directly, as Shredder FEN does for non-classical setups.
func parseCastling(pos *Position, castling string) error {
	if castling == "-" {
		return nil
	}
	for _, c := range castling {
		var color Color
		lower := c
		if c >= 'A' && c <= 'Z' {
			color = White
			lower = c - 'A' + 'a'
		} else if c >= 'a' && c <= 'z' {
			color = Black
		} else {
			return fmt.Errorf("%w: bad castling character %q", ErrInvalidPosition, c)
		}

		ksq := pos.KingSquare[color]
		if ksq == NoSquare {
			return fmt.Errorf("%w: castling right without king", ErrInvalidPosition)
		}
		rooks := pos.Pieces[color][Rook] & RankMask[ksq.Rank()]

		var rsq Square
		switch {
		case lower == 'k':
			rsq = NoSquare
			for b := rooks; b != 0; {
				sq := b.PopLSB()
				if sq.File() > ksq.File() {
					rsq = sq
				}
			}
		case lower == 'q':
			rsq = NoSquare
			for b := rooks; b != 0; {
				sq := b.PopLSB()
				if sq.File() < ksq.File() {
					rsq = sq
					break
				}
			}
		case lower >= 'a' && lower <= 'h':
			rsq = NewSquare(int(lower-'a'), ksq.Rank())
			if rooks&SquareBB(rsq) == 0 {
				rsq = NoSquare
			}
		default:
			return fmt.Errorf("%w: bad castling character %q", ErrInvalidPosition, c)
		}

		if rsq == NoSquare {
			return fmt.Errorf("%w: castling right %q names no rook", ErrInvalidPosition, c)
		}
		pos.UnmovedRooks |= SquareBB(rsq)
	}
	return nil
}

func parseCheckCounts(pos *Position, field string) error {
	if len(field) < 4 || field[0] != '+' {
		return fmt.Errorf("%w: bad check-count field %q", ErrInvalidPosition, field)
	}
	rest := field[1:]
	j := strings.IndexByte(rest, '+')
	if j < 0 {
		return fmt.Errorf("%w: bad check-count field %q", ErrInvalidPosition, field)
	}
	w, err1 := strconv.Atoi(rest[:j])
	b, err2 := strconv.Atoi(rest[j+1:])
	if err1 != nil || err2 != nil || w < 0 || b < 0 || w > 3 || b > 3 {
		return fmt.Errorf("%w: bad check-count field %q", ErrInvalidPosition, field)
	}
	pos.CheckCount[White] = uint8(w)
	pos.CheckCount[Black] = uint8(b)
	return nil
}

// FEN returns the FEN representation of the position, with the variant's
// extra fields where they apply.
func (p *Position) FEN() string {
	var sb strings.Builder

	for rank := 7; rank >= 0; rank-- {
		empty := 0
		for file := 0; file < 8; file++ {
			sq := NewSquare(file, rank)
			piece := p.PieceAt(sq)
			if piece == NoPiece {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(piece.String())
			if p.Promoted&SquareBB(sq) != 0 {
				sb.WriteByte('~')
			}
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if rank > 0 {
			sb.WriteByte('/')
		}
	}

	if p.Variant.HasDrops() {
		sb.WriteByte('[')
		for c := White; c <= Black; c++ {
			for pt := Queen; ; pt-- {
				for i := uint8(0); i < p.Pockets[c][pt]; i++ {
					sb.WriteString(NewPiece(pt, c).String())
				}
				if pt == Pawn {
					break
				}
			}
		}
		sb.WriteByte(']')
	}

	sb.WriteByte(' ')
	if p.SideToMove == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	sb.WriteByte(' ')
	sb.WriteString(p.castlingString())

	sb.WriteByte(' ')
	if p.EnPassant == NoSquare {
		sb.WriteByte('-')
	} else {
		sb.WriteString(p.EnPassant.String())
	}

	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.HalfMoveClock))
	sb.WriteByte(' ')
	sb.WriteString(strconv.Itoa(p.FullMoveNumber))

	if p.Variant.TracksChecks() {
		fmt.Fprintf(&sb, " +%d+%d", p.CheckCount[White], p.CheckCount[Black])
	}

	return sb.String()
}

// castlingString renders the unmoved rooks as X-FEN: the outermost rook on a
// wing prints as K or Q, an inner rook prints as its file letter.
func (p *Position) castlingString() string {
	var sb strings.Builder
	for c := White; c <= Black; c++ {
		ksq := p.KingSquare[c]
		if ksq == NoSquare {
			continue
		}
		onRank := p.Pieces[c][Rook] & RankMask[ksq.Rank()]
		rights := p.CastlingRooks(c) & onRank

		emit := func(rsq Square, kingside bool) {
			outer := true
			for b := onRank &^ SquareBB(rsq); b != 0; {
				sq := b.PopLSB()
				if kingside == (sq.File() > rsq.File()) && kingside == (sq.File() > ksq.File()) {
					outer = false
				}
			}
			var ch byte
			switch {
			case !outer:
				ch = 'A' + byte(rsq.File())
			case kingside:
				ch = 'K'
			default:
				ch = 'Q'
			}
			if c == Black {
				ch += 'a' - 'A'
			}
			sb.WriteByte(ch)
		}

		// Kingside first, outermost first.
		for file := 7; file > ksq.File(); file-- {
			sq := NewSquare(file, ksq.Rank())
			if rights&SquareBB(sq) != 0 {
				emit(sq, true)
			}
		}
		for file := 0; file < ksq.File(); file++ {
			sq := NewSquare(file, ksq.Rank())
			if rights&SquareBB(sq) != 0 {
				emit(sq, false)
			}
		}
	}
	if sb.Len() == 0 {
		return "-"
	}
	return sb.String()
}
