package board

import (
	"errors"
	"testing"
)

func TestFENRoundTripStartingPositions(t *testing.T) {
	for _, v := range Variants() {
		t.Run(v.String(), func(t *testing.T) {
			pos, err := ParseFEN(v.StartingFEN(), v)
			if err != nil {
				t.Fatalf("Failed to parse starting FEN: %v", err)
			}
			if got := pos.FEN(); got != v.StartingFEN() {
				t.Errorf("Round trip changed FEN:\n got  %s\n want %s", got, v.StartingFEN())
			}
		})
	}
}

func TestFENRoundTrip(t *testing.T) {
	tests := []struct {
		variant Variant
		fen     string
	}{
		{Standard, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1"},
		{Standard, "8/2p5/3p4/KP5r/1R3p1k/8/4P1P1/8 w - - 0 1"},
		{Standard, "4k3/8/8/8/8/8/8/R3K2R b KQ - 11 42"},
		{Crazyhouse, "r1bqkbnr/pppp1ppp/2n5/4p3/4P3/5N2/PPPP1PPP/RNBQKB1R[Pp] w KQkq - 4 3"},
		{Crazyhouse, "rnbqkb1r/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR[Nn] b KQkq - 0 3"},
		{ThreeCheck, "rnbqkbnr/pppp1ppp/8/4p3/4P3/8/PPPP1PPP/RNBQKBNR w KQkq - 0 2 +1+2"},
		{Horde, "rnbqkbnr/pppppppp/8/1PP2PP1/PPPPPPPP/PPPPPPPP/PPPPPPPP/PPPPPPPP b kq - 3 7"},
	}

	for _, tc := range tests {
		pos, err := ParseFEN(tc.fen, tc.variant)
		if err != nil {
			t.Fatalf("Failed to parse %q: %v", tc.fen, err)
		}
		if got := pos.FEN(); got != tc.fen {
			t.Errorf("Round trip changed FEN:\n got  %s\n want %s", got, tc.fen)
		}
	}
}

func TestFENPromotedMarker(t *testing.T) {
	fen := "rnbqkbnr/ppppppp1/8/8/8/8/PPPPPPPP/RNBQKBNQ~[Rp] b Qq - 0 9"
	pos, err := ParseFEN(fen, Crazyhouse)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if pos.Promoted&SquareBB(H1) == 0 {
		t.Error("Expected h1 to be marked promoted")
	}
	if got := pos.FEN(); got != fen {
		t.Errorf("Round trip changed FEN:\n got  %s\n want %s", got, fen)
	}
}

func TestFENShredderCastling(t *testing.T) {
	// Chess960 setup with the king on b1/b8 and rooks on a and e files.
	fen := "rk2r3/8/8/8/8/8/8/RK2R3 w KQkq - 0 1"
	pos, err := ParseFEN(fen, Chess960)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}

	if pos.UnmovedRooks != SquareBB(A1)|SquareBB(E1)|SquareBB(A8)|SquareBB(E8) {
		t.Errorf("Wrong unmoved rooks: %v", pos.UnmovedRooks)
	}
	if !pos.CanCastle(White, true) || !pos.CanCastle(White, false) {
		t.Error("Expected white to retain both castling rights")
	}

	// File letters name the same rooks explicitly.
	explicit, err := ParseFEN("rk2r3/8/8/8/8/8/8/RK2R3 w EAea - 0 1", Chess960)
	if err != nil {
		t.Fatalf("Failed to parse Shredder form: %v", err)
	}
	if explicit.UnmovedRooks != pos.UnmovedRooks {
		t.Error("Shredder letters should resolve to the same rooks")
	}
}

func TestParseFENErrors(t *testing.T) {
	tests := []struct {
		name    string
		fen     string
		variant Variant
	}{
		{"too few fields", "8/8/8/8/8/8/8/8 w", Standard},
		{"bad rank count", "8/8/8/8/8/8/8 w - - 0 1", Standard},
		{"bad piece char", "8/8/8/8/3x4/8/8/8 w - - 0 1", Standard},
		{"bad side", "4k3/8/8/8/8/8/8/4K3 x - - 0 1", Standard},
		{"no kings", "8/8/8/8/8/8/8/8 w - - 0 1", Standard},
		{"two white kings", "4k3/8/8/8/8/8/8/3KK3 w - - 0 1", Standard},
		{"pawn on back rank", "4k3/8/8/8/8/8/8/P3K3 w - - 0 1", Standard},
		{"castling without rook", "4k3/8/8/8/8/8/8/4K3 w K - 0 1", Standard},
		{"side not to move in check", "4k3/4R3/8/8/8/8/8/4K3 w - - 0 1", Standard},
		{"horde with white king", "rnbqkbnr/pppppppp/8/8/8/8/8/4K3 w - - 0 1", Horde},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseFEN(tc.fen, tc.variant)
			if err == nil {
				t.Fatalf("Expected error for %q", tc.fen)
			}
			if !errors.Is(err, ErrInvalidPosition) {
				t.Errorf("Expected ErrInvalidPosition, got %v", err)
			}
		})
	}
}

func TestFENDropsDeadEnPassant(t *testing.T) {
	// The en passant square is kept only when a capture is actually playable.
	pos, err := ParseFEN("rnbqkbnr/pppppppp/8/8/4P3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 1", Standard)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if pos.EnPassant != NoSquare {
		t.Errorf("Expected dead en passant square to be dropped, got %s", pos.EnPassant)
	}

	live, err := ParseFEN("rnbqkbnr/ppp1pppp/8/8/3pP3/8/PPPP1PPP/RNBQKBNR b KQkq e3 0 2", Standard)
	if err != nil {
		t.Fatalf("Failed to parse: %v", err)
	}
	if live.EnPassant != E3 {
		t.Errorf("Expected live en passant square e3, got %s", live.EnPassant)
	}
}
