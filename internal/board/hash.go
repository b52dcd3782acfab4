package board

import "bytes"

// computeHash rebuilds the Zobrist hash of the position from scratch. The en
// passant file is hashed only when the capture is actually playable, so
// transpositions that differ only by a dead en passant square hash equal.
func (p *Position) computeHash() uint64 {
	var h uint64

	for c := White; c <= Black; c++ {
		for pt := Pawn; pt <= King; pt++ {
			for b := p.Pieces[c][pt]; b != 0; {
				h ^= zobristPiece[c][pt][b.PopLSB()]
			}
		}
	}

	if p.SideToMove == Black {
		h ^= zobristSideToMove
	}

	h ^= ZobristCastling(p.UnmovedRooks)

	if p.hasLegalEnPassant() {
		h ^= zobristEnPassant[p.EnPassant.File()]
	}

	if p.Variant.HasDrops() {
		for c := White; c <= Black; c++ {
			for pt := Pawn; pt <= Queen; pt++ {
				h ^= zobristPocket[c][pt][p.Pockets[c][pt]]
			}
		}
		for b := p.Promoted; b != 0; {
			h ^= zobristPromoted[b.PopLSB()]
		}
	}

	if p.Variant.TracksChecks() {
		for c := White; c <= Black; c++ {
			n := p.CheckCount[c]
			if n > 3 {
				n = 3
			}
			h ^= zobristChecks[c][n]
		}
	}

	return h
}

// hasLegalEnPassant reports whether the side to move has at least one legal
// en passant capture.
func (p *Position) hasLegalEnPassant() bool {
	if p.EnPassant == NoSquare {
		return false
	}
	us := p.SideToMove
	cands := pawnAttacks[us.Other()][p.EnPassant] & p.Pieces[us][Pawn]
	for cands != 0 {
		from := cands.PopLSB()
		m := NewEnPassant(from, p.EnPassant)
		switch p.Variant {
		case Atomic:
			child := *p
			child.hashHistory = nil
			child.doMoveNoHistory(m)
			if p.atomicMoveOK(p, &child) {
				return true
			}
		case Antichess:
			// Captures are never filtered out, only prioritized.
			return true
		default:
			ksq := p.KingSquare[us]
			if ksq == NoSquare || p.isLegalEnPassant(m, ksq) {
				return true
			}
		}
	}
	return false
}

// repetitionCount counts how often the current position has occurred,
// including the current occurrence. Only positions within the half-move
// clock window can repeat, and only those with the same side to move.
func (p *Position) repetitionCount() int {
	n := len(p.hashHistory) / 3
	if n == 0 {
		return 1
	}
	cur := p.hashHistory[(n-1)*3 : n*3]
	limit := n - 1 - p.HalfMoveClock
	if limit < 0 {
		limit = 0
	}
	count := 1
	for i := n - 3; i >= limit; i -= 2 {
		if bytes.Equal(p.hashHistory[i*3:i*3+3], cur) {
			count++
		}
	}
	return count
}

// IsThreefoldRepetition reports whether the current position has now occurred
// at least three times.
func (p *Position) IsThreefoldRepetition() bool {
	return p.repetitionCount() >= 3
}

// IsFivefoldRepetition reports whether the current position has now occurred
// at least five times. Unlike threefold, this ends the game without a claim.
func (p *Position) IsFivefoldRepetition() bool {
	return p.repetitionCount() >= 5
}
