package board

// LegalMoves generates every legal move for the side to move under the
// position's variant.
func (p *Position) LegalMoves() *MoveList {
	ml := NewMoveList()
	p.generatePseudoLegal(ml)

	switch p.Variant {
	case Antichess:
		return p.filterAntichess(ml)
	case Atomic:
		return p.filterBySimulation(ml, p.atomicMoveOK)
	case RacingKings:
		return p.filterBySimulation(ml, p.racingMoveOK)
	default:
		return p.filterStandard(ml)
	}
}

// PseudoLegalMoves generates all pseudo-legal moves (may leave the king in
// check).
func (p *Position) PseudoLegalMoves() *MoveList {
	ml := NewMoveList()
	p.generatePseudoLegal(ml)
	return ml
}

// HasLegalMoves returns true if the side to move has at least one legal move.
func (p *Position) HasLegalMoves() bool {
	return p.LegalMoves().Len() > 0
}

// IsMoveLegal reports whether m is in the legal move set.
func (p *Position) IsMoveLegal(m Move) bool {
	return p.LegalMoves().Contains(m)
}

func (p *Position) generatePseudoLegal(ml *MoveList) {
	us := p.SideToMove
	occupied := p.AllOccupied
	enemies := p.Occupied[us.Other()]

	p.generatePawnMoves(ml, us, enemies, occupied)

	knights := p.Pieces[us][Knight]
	for knights != 0 {
		from := knights.PopLSB()
		attacks := KnightAttacks(from) & ^p.Occupied[us]
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}

	bishops := p.Pieces[us][Bishop]
	for bishops != 0 {
		from := bishops.PopLSB()
		attacks := BishopAttacks(from, occupied) & ^p.Occupied[us]
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}

	rooks := p.Pieces[us][Rook]
	for rooks != 0 {
		from := rooks.PopLSB()
		attacks := RookAttacks(from, occupied) & ^p.Occupied[us]
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}

	queens := p.Pieces[us][Queen]
	for queens != 0 {
		from := queens.PopLSB()
		attacks := QueenAttacks(from, occupied) & ^p.Occupied[us]
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}

	// Kings iterate over the bitboard: games where promotion to king is
	// allowed can hold several.
	kings := p.Pieces[us][King]
	for kings != 0 {
		from := kings.PopLSB()
		attacks := KingAttacks(from) & ^p.Occupied[us]
		if p.Variant == Atomic {
			// Kings never capture: a capture would explode the capturer.
			attacks &= ^p.AllOccupied
		}
		for attacks != 0 {
			ml.Add(NewMove(from, attacks.PopLSB()))
		}
	}

	p.generateCastlingMoves(ml, us)

	if p.Variant.HasDrops() {
		p.generateDrops(ml, us)
	}
}

// generatePawnMoves generates pushes, captures, promotions and en passant.
func (p *Position) generatePawnMoves(ml *MoveList, us Color, enemies, occupied Bitboard) {
	pawns := p.Pieces[us][Pawn]
	if pawns == 0 {
		return
	}

	empty := ^occupied
	promos := p.Variant.PromotionTypes()

	up := 8
	lastRank := Rank8
	stepRank := Rank3 // a single push landing here may continue one more square
	west, east := Bitboard.NorthWest, Bitboard.NorthEast
	if us == Black {
		up = -8
		lastRank = Rank1
		stepRank = Rank6
		west, east = Bitboard.SouthWest, Bitboard.SouthEast
	}
	if p.Variant == Horde {
		// Back-rank pawns keep the double-step privilege.
		if us == White {
			stepRank |= Rank2
		} else {
			stepRank |= Rank7
		}
	}

	// emit pops each target square, recovers the origin from the shift
	// delta, and fans out into promotions on the last rank.
	emit := func(targets Bitboard, delta int) {
		for targets != 0 {
			to := targets.PopLSB()
			from := Square(int(to) - delta)
			if lastRank.IsSet(to) {
				for _, pt := range promos {
					ml.Add(NewPromotion(from, to, pt))
				}
			} else {
				ml.Add(NewMove(from, to))
			}
		}
	}

	single := pawns.Forward(us) & empty
	emit(single, up)
	emit((single&stepRank).Forward(us)&empty, 2*up)
	emit(west(pawns)&enemies, up-1)
	emit(east(pawns)&enemies, up+1)

	if p.EnPassant != NoSquare {
		epAttackers := pawnAttacks[us.Other()][p.EnPassant] & pawns
		for epAttackers != 0 {
			ml.Add(NewEnPassant(epAttackers.PopLSB(), p.EnPassant))
		}
	}
}

// generateCastlingMoves emits king-takes-rook castling moves for every
// remaining right. Works for any starting file arrangement.
func (p *Position) generateCastlingMoves(ml *MoveList, us Color) {
	if !p.Variant.AllowsCastling() || p.Checkers != 0 {
		return
	}
	ksq := p.KingSquare[us]
	if ksq == NoSquare {
		return
	}
	them := us.Other()

	rooks := p.CastlingRooks(us)
	for rooks != 0 {
		rsq := rooks.PopLSB()
		if rsq.Rank() != ksq.Rank() {
			continue
		}
		kTo, rTo := castleTargets(ksq, rsq)

		// Both travel paths must be empty apart from the two movers.
		occ := p.AllOccupied &^ SquareBB(ksq) &^ SquareBB(rsq)
		kingPath := Between(ksq, kTo) | SquareBB(kTo)
		rookPath := Between(rsq, rTo) | SquareBB(rTo)
		if (kingPath|rookPath)&occ != 0 {
			continue
		}

		// No square the king crosses may be attacked. The king is lifted
		// off its origin so sliders see through it.
		attacked := false
		xrayOcc := p.AllOccupied &^ SquareBB(ksq)
		for path := kingPath; path != 0; {
			sq := path.PopLSB()
			if p.AttackersByColor(sq, them, xrayOcc) != 0 {
				attacked = true
				break
			}
		}
		if attacked {
			continue
		}

		ml.Add(NewCastling(ksq, rsq))
	}
}

// castleTargets returns the king and rook destination squares for a castling
// move: kingside lands on the g- and f-files, queenside on the c- and d-files.
func castleTargets(ksq, rsq Square) (kTo, rTo Square) {
	rank := ksq.Rank()
	if rsq.File() > ksq.File() {
		return NewSquare(6, rank), NewSquare(5, rank)
	}
	return NewSquare(2, rank), NewSquare(3, rank)
}

// generateDrops emits pocket drops onto empty squares. While in check only
// blocking drops are available; a double check admits none.
func (p *Position) generateDrops(ml *MoveList, us Color) {
	targets := ^p.AllOccupied

	if p.Checkers != 0 {
		if p.Checkers.MoreThanOne() {
			return
		}
		ksq := p.KingSquare[us]
		targets &= Between(p.Checkers.LSB(), ksq)
		if targets == 0 {
			return
		}
	}

	for pt := Pawn; pt <= Queen; pt++ {
		if p.Pockets[us][pt] == 0 {
			continue
		}
		sqs := targets
		if pt == Pawn {
			sqs &= ^BackRanks
		}
		for sqs != 0 {
			ml.Add(NewDrop(pt, sqs.PopLSB()))
		}
	}
}

// filterStandard keeps the moves that do not leave our king in check. Pins
// and check evasion make almost every verdict table-driven; only king steps
// and en passant need deeper inspection.
func (p *Position) filterStandard(ml *MoveList) *MoveList {
	result := NewMoveList()
	pinned := p.ComputePinned()
	ksq := p.KingSquare[p.SideToMove]

	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		if p.isLegalStandard(m, pinned, ksq) {
			result.Add(m)
		}
	}
	return result
}

func (p *Position) isLegalStandard(m Move, pinned Bitboard, ksq Square) bool {
	// A side without a king has nothing to defend.
	if ksq == NoSquare {
		return true
	}

	us := p.SideToMove
	them := us.Other()
	from := m.From()
	to := m.To()
	checkers := p.Checkers

	if m.IsCastling() {
		// Generation already verified path safety, and castling is never
		// generated while in check.
		return true
	}

	if m.IsDrop() {
		// Drop targets were restricted to blocking squares during
		// generation; a drop cannot expose the king.
		return true
	}

	// King steps: the destination must be safe once the king has left its
	// square, so sliders are x-rayed through the origin.
	if from == ksq && p.PieceAt(from).Type() == King {
		occ := p.AllOccupied &^ SquareBB(from)
		return p.AttackersByColor(to, them, occ) == 0
	}

	if checkers != 0 {
		if checkers.MoreThanOne() {
			return false
		}

		checker := checkers.LSB()

		if m.IsEnPassant() {
			// En passant can answer a check only by capturing the
			// checking pawn.
			if to.Forward(them) != checker {
				return false
			}
			return p.isLegalEnPassant(m, ksq)
		}

		validTargets := SquareBB(checker) | Between(checker, ksq)
		if !validTargets.IsSet(to) {
			return false
		}
		if pinned.IsSet(from) && !Aligned(from, to, ksq) {
			return false
		}
		return true
	}

	if m.IsEnPassant() {
		return p.isLegalEnPassant(m, ksq)
	}

	if !pinned.IsSet(from) {
		return true
	}
	return Aligned(from, to, ksq)
}

// isLegalEnPassant simulates the double removal an en passant capture
// performs. Lifting both pawns at once can uncover a rook or queen on the
// king's rank that no pin scan sees.
func (p *Position) isLegalEnPassant(m Move, ksq Square) bool {
	us := p.SideToMove
	them := us.Other()
	capSq := m.To().Forward(them)

	occ := (p.AllOccupied &^ SquareBB(m.From()) &^ SquareBB(capSq)) | SquareBB(m.To())

	if RookAttacks(ksq, occ)&(p.Pieces[them][Rook]|p.Pieces[them][Queen]) != 0 {
		return false
	}
	if BishopAttacks(ksq, occ)&(p.Pieces[them][Bishop]|p.Pieces[them][Queen]) != 0 {
		return false
	}
	if knightAttacks[ksq]&p.Pieces[them][Knight] != 0 {
		return false
	}
	if pawnAttacks[us][ksq]&(p.Pieces[them][Pawn]&^SquareBB(capSq)) != 0 {
		return false
	}
	if p.KingSquare[them] != NoSquare && kingAttacks[ksq].IsSet(p.KingSquare[them]) {
		return false
	}
	return true
}

// filterAntichess enforces mandatory captures. There is no king safety, so
// every pseudo-legal move is playable; when any capture exists, only
// captures remain.
func (p *Position) filterAntichess(ml *MoveList) *MoveList {
	captures := NewMoveList()
	for i := 0; i < ml.Len(); i++ {
		if m := ml.Get(i); m.IsCapture(p) {
			captures.Add(m)
		}
	}
	if captures.Len() > 0 {
		return captures
	}
	return ml
}

// filterBySimulation applies each candidate to a scratch copy and keeps
// those the verdict function approves.
func (p *Position) filterBySimulation(ml *MoveList, ok func(parent, child *Position) bool) *MoveList {
	result := NewMoveList()
	for i := 0; i < ml.Len(); i++ {
		m := ml.Get(i)
		child := *p
		child.hashHistory = nil
		child.doMoveNoHistory(m)
		if ok(p, &child) {
			result.Add(m)
		}
	}
	return result
}

// atomicMoveOK validates a move under explosion rules: our own king must
// survive, and unless the enemy king was blown up it must not be left in
// check. Adjacent kings shield each other.
func (p *Position) atomicMoveOK(parent, child *Position) bool {
	us := parent.SideToMove
	if child.KingSquare[us] == NoSquare {
		return false
	}
	if child.KingSquare[us.Other()] == NoSquare {
		return true
	}
	return !child.colorInCheck(us)
}

// racingMoveOK rejects any move that gives or permits check: the race allows
// no checks on either side.
func (p *Position) racingMoveOK(parent, child *Position) bool {
	return !child.colorInCheck(White) && !child.colorInCheck(Black)
}

// colorInCheck reports whether the given color's king is attacked, honoring
// the atomic kings-adjacency shield.
func (p *Position) colorInCheck(c Color) bool {
	ksq := p.KingSquare[c]
	if ksq == NoSquare || !p.Variant.HasKingSafety() {
		return false
	}
	if p.Variant == Atomic {
		other := p.KingSquare[c.Other()]
		if other != NoSquare && kingAttacks[ksq].IsSet(other) {
			return false
		}
	}
	return p.AttackersByColor(ksq, c.Other(), p.AllOccupied) != 0
}
