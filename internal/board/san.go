package board

import (
	"fmt"
	"strings"

	"golang.org/x/exp/slices"
)

// UCI renders a move in the engine-wire form the variant expects. Classical
// setups print castling as the king's two-square hop; Chess960 keeps the
// king-takes-rook form, which stays unambiguous for shuffled back ranks.
func (p *Position) UCI(m Move) string {
	if m.IsCastling() && p.Variant != Chess960 {
		kTo, _ := castleTargets(m.From(), m.To())
		return m.From().String() + kTo.String()
	}
	return m.String()
}

// SAN renders a move in Standard Algebraic Notation, with "O-O"/"O-O-O" for
// castling, "@" drops, minimal disambiguation and check markers.
func (p *Position) SAN(m Move) string {
	if m == NoMove {
		return "-"
	}

	var sb strings.Builder

	switch {
	case m.IsCastling():
		if m.To().File() > m.From().File() {
			sb.WriteString("O-O")
		} else {
			sb.WriteString("O-O-O")
		}

	case m.IsDrop():
		pt := m.DropPiece()
		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
		}
		sb.WriteByte('@')
		sb.WriteString(m.To().String())

	default:
		from, to := m.From(), m.To()
		pt := p.PieceAt(from).Type()

		if pt != Pawn {
			sb.WriteByte("PNBRQK"[pt])
			sb.WriteString(p.disambiguation(m, pt))
		}

		if m.IsCapture(p) {
			if pt == Pawn {
				sb.WriteByte('a' + byte(from.File()))
			}
			sb.WriteByte('x')
		}

		sb.WriteString(to.String())

		if m.IsPromotion() {
			sb.WriteByte('=')
			sb.WriteByte("PNBRQK"[m.Promotion()])
		}
	}

	child := p.applyUnchecked(m)
	if child.Status() == Checkmate {
		sb.WriteByte('#')
	} else if child.InCheck() {
		sb.WriteByte('+')
	}

	return sb.String()
}

// disambiguation returns the origin hint needed when several pieces of the
// same type can legally reach the destination.
func (p *Position) disambiguation(m Move, pt PieceType) string {
	from, to := m.From(), m.To()

	var rivals []Square
	moves := p.LegalMoves()
	for i := 0; i < moves.Len(); i++ {
		o := moves.Get(i)
		if o.IsDrop() || o.IsCastling() || o.To() != to || o.From() == from {
			continue
		}
		if p.PieceAt(o.From()).Type() != pt {
			continue
		}
		if !slices.Contains(rivals, o.From()) {
			rivals = append(rivals, o.From())
		}
	}
	if len(rivals) == 0 {
		return ""
	}

	sameFile := slices.ContainsFunc(rivals, func(sq Square) bool { return sq.File() == from.File() })
	sameRank := slices.ContainsFunc(rivals, func(sq Square) bool { return sq.Rank() == from.Rank() })

	switch {
	case !sameFile:
		return string(rune('a' + from.File()))
	case !sameRank:
		return string(rune('1' + from.Rank()))
	default:
		return from.String()
	}
}

// VariationSAN renders a sequence of moves from this position, applying each
// in turn. Stops at the first illegal move.
func (p *Position) VariationSAN(moves []Move) []string {
	out := make([]string, 0, len(moves))
	cur := p
	for _, m := range moves {
		if !cur.IsMoveLegal(m) {
			break
		}
		out = append(out, cur.SAN(m))
		cur = cur.applyUnchecked(m)
	}
	return out
}

// ParseMove resolves a move string against the current position. Accepts UCI
// ("e2e4", "e7e8q", "e1g1", king-takes-rook castling, "N@f3" drops) and SAN.
func (p *Position) ParseMove(s string) (Move, error) {
	if m, ok := p.parseUCI(s); ok {
		return m, nil
	}
	if m, ok := p.parseSAN(s); ok {
		return m, nil
	}
	return NoMove, fmt.Errorf("%w: cannot play %q", ErrIllegalMove, s)
}

func (p *Position) parseUCI(s string) (Move, bool) {
	if i := strings.IndexByte(s, '@'); i >= 0 && len(s) == i+3 {
		pt := Pawn
		if i == 1 {
			pt = PieceTypeFromChar(s[0] | 0x20)
			if pt == NoPieceType {
				return NoMove, false
			}
		} else if i != 0 {
			return NoMove, false
		}
		to, err := ParseSquare(s[i+1:])
		if err != nil {
			return NoMove, false
		}
		m := NewDrop(pt, to)
		return m, p.IsMoveLegal(m)
	}

	if len(s) < 4 || len(s) > 5 {
		return NoMove, false
	}
	from, err1 := ParseSquare(s[:2])
	to, err2 := ParseSquare(s[2:4])
	if err1 != nil || err2 != nil {
		return NoMove, false
	}

	var m Move
	switch {
	case len(s) == 5:
		promo := PieceTypeFromChar(s[4])
		if promo == NoPieceType {
			return NoMove, false
		}
		m = NewPromotion(from, to, promo)
	case p.isCastlingInput(from, to):
		m = p.castlingFromUCI(from, to)
	case p.PieceAt(from).Type() == Pawn && to == p.EnPassant && from.File() != to.File():
		m = NewEnPassant(from, to)
	default:
		m = NewMove(from, to)
	}

	return m, m != NoMove && p.IsMoveLegal(m)
}

// isCastlingInput recognizes both castling encodings: the king landing on
// its own rook, or the classical two-file king hop.
func (p *Position) isCastlingInput(from, to Square) bool {
	piece := p.PieceAt(from)
	if piece.Type() != King || piece.Color() != p.SideToMove {
		return false
	}
	if p.Pieces[p.SideToMove][Rook]&SquareBB(to) != 0 {
		return true
	}
	fd := from.File() - to.File()
	return (fd == 2 || fd == -2) && from.Rank() == to.Rank()
}

func (p *Position) castlingFromUCI(from, to Square) Move {
	us := p.SideToMove
	if p.Pieces[us][Rook]&SquareBB(to) != 0 {
		return NewCastling(from, to)
	}
	kingside := to.File() > from.File()
	rooks := p.CastlingRooks(us)
	for rooks != 0 {
		rsq := rooks.PopLSB()
		if rsq.Rank() == from.Rank() && kingside == (rsq.File() > from.File()) {
			return NewCastling(from, rsq)
		}
	}
	return NoMove
}

// parseSAN matches the input against the SAN of every legal move. Check and
// mate suffixes and "!?" annotations are ignored on both sides.
func (p *Position) parseSAN(s string) (Move, bool) {
	want := normalizeSAN(s)
	if want == "" {
		return NoMove, false
	}
	moves := p.LegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		if normalizeSAN(p.SAN(m)) == want {
			return m, true
		}
	}
	return NoMove, false
}

func normalizeSAN(s string) string {
	s = strings.TrimRight(s, "+#!?")
	s = strings.ReplaceAll(s, "0", "O")
	return s
}
