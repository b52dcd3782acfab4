package board

import "fmt"

// Apply plays a move and returns the resulting position. The receiver is not
// modified. Returns ErrIllegalMove if the move is not legal in this position.
func (p *Position) Apply(m Move) (*Position, error) {
	if !p.IsMoveLegal(m) {
		return nil, fmt.Errorf("%w: %s", ErrIllegalMove, m)
	}
	return p.applyUnchecked(m), nil
}

// applyUnchecked plays a move assumed to come from LegalMoves.
func (p *Position) applyUnchecked(m Move) *Position {
	child := *p
	child.hashHistory = append([]byte(nil), p.hashHistory...)
	child.doMove(m)
	return &child
}

// doMove mutates the position in place, then refreshes the hash and extends
// the repetition history.
func (p *Position) doMove(m Move) {
	p.doMoveNoHistory(m)
	p.Hash = p.computeHash()
	p.hashHistory = append(p.hashHistory, byte(p.Hash), byte(p.Hash>>8), byte(p.Hash>>16))
}

// doMoveNoHistory applies the board-state effects of a move without touching
// the hash or history. Used directly by the simulation-based legality filters,
// which only need the resulting occupancy and checkers.
func (p *Position) doMoveNoHistory(m Move) {
	us := p.SideToMove
	them := us.Other()

	p.EnPassant = NoSquare
	resetClock := false

	switch m.Flag() {
	case FlagDrop:
		pt := m.DropPiece()
		p.setPiece(NewPiece(pt, us), m.To())
		if p.Pockets[us][pt] > 0 {
			p.Pockets[us][pt]--
		}
		if pt == Pawn {
			resetClock = true
		}

	case FlagCastling:
		ksq, rsq := m.From(), m.To()
		usRooks := p.Pieces[us][Rook]
		kTo, rTo := castleTargets(ksq, rsq)
		p.removePiece(ksq)
		p.removePiece(rsq)
		p.setPiece(NewPiece(King, us), kTo)
		p.setPiece(NewPiece(Rook, us), rTo)
		p.UnmovedRooks &^= usRooks

	default:
		from, to := m.From(), m.To()
		pt := p.PieceAt(from).Type()

		capSq := to
		if m.IsEnPassant() {
			capSq = to.Forward(them)
		}
		captured := p.PieceAt(capSq)
		if captured != NoPiece {
			p.removePiece(capSq)
			p.UnmovedRooks &^= SquareBB(capSq)
			resetClock = true
			if p.Variant.HasDrops() {
				ct := captured.Type()
				if p.Promoted&SquareBB(capSq) != 0 {
					ct = Pawn
				}
				p.Pockets[us][ct]++
			}
			p.Promoted &^= SquareBB(capSq)
		}

		if pt == Pawn {
			resetClock = true
		}

		switch pt {
		case King:
			p.UnmovedRooks &^= p.Pieces[us][Rook]
		case Rook:
			p.UnmovedRooks &^= SquareBB(from)
		}

		if m.IsPromotion() {
			p.removePiece(from)
			p.setPiece(NewPiece(m.Promotion(), us), to)
			if p.Variant.HasDrops() {
				p.Promoted |= SquareBB(to)
			}
		} else {
			p.movePiece(from, to)
			if p.Promoted&SquareBB(from) != 0 {
				p.Promoted &^= SquareBB(from)
				p.Promoted |= SquareBB(to)
			}
		}

		// A double push offers en passant only when an enemy pawn stands
		// ready to take it.
		if pt == Pawn && from.RelativeRank(us) == 1 && to == from.Forward(us).Forward(us) {
			ep := from.Forward(us)
			if pawnAttacks[us][ep]&p.Pieces[them][Pawn] != 0 {
				p.EnPassant = ep
			}
		}

		if p.Variant == Atomic && captured != NoPiece {
			p.explode(to)
		}
	}

	if resetClock {
		p.HalfMoveClock = 0
	} else {
		p.HalfMoveClock++
	}
	if us == Black {
		p.FullMoveNumber++
	}
	p.SideToMove = them
	p.LastMove = m
	p.UpdateCheckers()

	if p.Variant.TracksChecks() && p.Checkers != 0 && p.CheckCount[us] < 3 {
		p.CheckCount[us]++
	}
}

// explode removes the capturing piece and every non-pawn piece adjacent to
// the capture square. Pawns other than the captured one are spared.
func (p *Position) explode(sq Square) {
	p.removePiece(sq)
	p.UnmovedRooks &^= SquareBB(sq)
	ring := kingAttacks[sq] & p.AllOccupied
	for ring != 0 {
		s := ring.PopLSB()
		if p.PieceAt(s).Type() != Pawn {
			p.removePiece(s)
			p.UnmovedRooks &^= SquareBB(s)
			p.Promoted &^= SquareBB(s)
		}
	}
}
