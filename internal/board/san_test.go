package board

import "testing"

func mustParseMove(t *testing.T, pos *Position, s string) Move {
	t.Helper()
	m, err := pos.ParseMove(s)
	if err != nil {
		t.Fatalf("Failed to parse %q: %v", s, err)
	}
	return m
}

func TestSANBasicMoves(t *testing.T) {
	pos := NewPosition(Standard)

	tests := []struct {
		uci string
		san string
	}{
		{"e2e4", "e4"},
		{"g1f3", "Nf3"},
		{"b1c3", "Nc3"},
	}
	for _, tc := range tests {
		m := mustParseMove(t, pos, tc.uci)
		if got := pos.SAN(m); got != tc.san {
			t.Errorf("SAN(%s) = %q, want %q", tc.uci, got, tc.san)
		}
	}
}

func TestSANCaptureAndCheck(t *testing.T) {
	pos := playSAN(t, Standard, "e4", "d5")

	m := mustParseMove(t, pos, "e4d5")
	if got := pos.SAN(m); got != "exd5" {
		t.Errorf("Pawn capture SAN = %q, want %q", got, "exd5")
	}

	check := playSAN(t, Standard, "e4", "e5", "Qh5", "Nc6")
	qf7 := mustParseMove(t, check, "h5f7")
	if got := check.SAN(qf7); got != "Qxf7+" {
		t.Errorf("Check SAN = %q, want %q", got, "Qxf7+")
	}
}

func TestSANCheckmateSuffix(t *testing.T) {
	pos := playSAN(t, Standard, "f3", "e5", "g4")

	m := mustParseMove(t, pos, "d8h4")
	if got := pos.SAN(m); got != "Qh4#" {
		t.Errorf("Mate SAN = %q, want %q", got, "Qh4#")
	}
}

func TestSANCastling(t *testing.T) {
	pos, err := ParseFEN("r3k2r/8/8/8/8/8/8/R3K2R w KQkq - 0 1", Standard)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	short := mustParseMove(t, pos, "O-O")
	if got := pos.SAN(short); got != "O-O" {
		t.Errorf("Kingside SAN = %q, want %q", got, "O-O")
	}
	if got := pos.UCI(short); got != "e1g1" {
		t.Errorf("Kingside UCI = %q, want %q", got, "e1g1")
	}

	long := mustParseMove(t, pos, "O-O-O")
	if got := pos.SAN(long); got != "O-O-O" {
		t.Errorf("Queenside SAN = %q, want %q", got, "O-O-O")
	}
	if got := pos.UCI(long); got != "e1c1" {
		t.Errorf("Queenside UCI = %q, want %q", got, "e1c1")
	}
}

func TestUCIChess960CastlingKeepsRookTarget(t *testing.T) {
	pos, err := ParseFEN("rk2r3/4p3/8/8/8/8/8/RK2R3 w KQkq - 0 1", Chess960)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	m := NewCastling(B1, E1)
	if !pos.IsMoveLegal(m) {
		t.Fatal("Kingside castle should be legal")
	}
	if got := pos.UCI(m); got != "b1e1" {
		t.Errorf("Chess960 castle UCI = %q, want king-takes-rook %q", got, "b1e1")
	}
}

func TestSANDisambiguation(t *testing.T) {
	// Two rooks share the first rank: file letters disambiguate.
	pos, err := ParseFEN("4k3/8/8/8/8/8/4K3/R6R w - - 0 1", Standard)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	ad1 := mustParseMove(t, pos, "a1d1")
	if got := pos.SAN(ad1); got != "Rad1" {
		t.Errorf("SAN = %q, want %q", got, "Rad1")
	}
	hd1 := mustParseMove(t, pos, "h1d1")
	if got := pos.SAN(hd1); got != "Rhd1" {
		t.Errorf("SAN = %q, want %q", got, "Rhd1")
	}

	// Knights on the same file disambiguate by rank.
	kn, err := ParseFEN("4k3/8/8/8/8/3N4/8/3NK3 w - - 0 1", Standard)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	low := mustParseMove(t, kn, "d1f2")
	if got := kn.SAN(low); got != "N1f2" {
		t.Errorf("SAN = %q, want %q", got, "N1f2")
	}

	// Round trip through the parser.
	if back := mustParseMove(t, pos, "Rad1"); back != ad1 {
		t.Errorf("Rad1 parsed to %s", pos.UCI(back))
	}
	if back := mustParseMove(t, kn, "N1f2"); back != low {
		t.Errorf("N1f2 parsed to %s", kn.UCI(back))
	}
}

func TestSANPromotion(t *testing.T) {
	pos, err := ParseFEN("4k3/P7/8/8/8/8/8/4K3 w - - 0 1", Standard)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	m := mustParseMove(t, pos, "a8=Q")
	if !m.IsPromotion() || m.Promotion() != Queen {
		t.Fatalf("a8=Q should be a queen promotion, got %s", pos.UCI(m))
	}
	if got := pos.SAN(m); got != "a8=Q+" {
		t.Errorf("SAN = %q, want %q", got, "a8=Q+")
	}
	if got := pos.UCI(m); got != "a7a8q" {
		t.Errorf("UCI = %q, want %q", got, "a7a8q")
	}
}

func TestSANDrop(t *testing.T) {
	pos, err := ParseFEN("4k3/8/8/8/8/8/8/4K3[Np] w - - 0 1", Crazyhouse)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	m := mustParseMove(t, pos, "N@f3")
	if !m.IsDrop() || m.DropPiece() != Knight {
		t.Fatalf("N@f3 should be a knight drop, got %s", pos.UCI(m))
	}
	if got := pos.SAN(m); got != "N@f3" {
		t.Errorf("SAN = %q, want %q", got, "N@f3")
	}
}

func TestVariationSAN(t *testing.T) {
	pos := NewPosition(Standard)
	moves := make([]Move, 0, 4)
	cur := pos
	for _, s := range []string{"e4", "e5", "Nf3", "Nc6"} {
		m := mustParseMove(t, cur, s)
		moves = append(moves, m)
		next, err := cur.Apply(m)
		if err != nil {
			t.Fatalf("Failed to apply %q: %v", s, err)
		}
		cur = next
	}

	want := []string{"e4", "e5", "Nf3", "Nc6"}
	got := pos.VariationSAN(moves)
	if len(got) != len(want) {
		t.Fatalf("VariationSAN = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("VariationSAN[%d] = %q, want %q", i, got[i], want[i])
		}
	}

	// An illegal continuation truncates the rendering.
	bogus := append(append([]Move{}, moves...), NewMove(A1, A8))
	if got := pos.VariationSAN(bogus); len(got) != len(moves) {
		t.Errorf("Expected truncation at the illegal move, got %v", got)
	}
}

func TestParseMoveRejectsGarbage(t *testing.T) {
	pos := NewPosition(Standard)

	for _, s := range []string{"", "e9", "e2e9", "Qd4", "O-O", "xx", "P@e4"} {
		if _, err := pos.ParseMove(s); err == nil {
			t.Errorf("Expected error for %q", s)
		}
	}
}

func TestParseMoveUCIAndSANAgree(t *testing.T) {
	pos := playSAN(t, Standard, "e4", "e5")

	a := mustParseMove(t, pos, "g1f3")
	b := mustParseMove(t, pos, "Nf3")
	if a != b {
		t.Errorf("UCI and SAN forms disagree: %s vs %s", pos.UCI(a), pos.UCI(b))
	}
}
