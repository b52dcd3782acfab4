package storage

import (
	"testing"
	"time"
)

func TestStoreRoundTrip(t *testing.T) {
	store, err := Open(t.TempDir())
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	defer store.Close()

	t.Run("PerftResult", func(t *testing.T) {
		r := PerftResult{
			Variant: "standard",
			FEN:     "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1",
			Depth:   5,
			Nodes:   4865609,
			Elapsed: 120 * time.Millisecond,
		}
		if err := store.SavePerft(r); err != nil {
			t.Fatalf("SavePerft: %v", err)
		}

		got, found, err := store.LoadPerft(r.Variant, r.FEN, r.Depth)
		if err != nil {
			t.Fatalf("LoadPerft: %v", err)
		}
		if !found {
			t.Fatal("Expected stored perft result to be found")
		}
		if got.Nodes != r.Nodes {
			t.Errorf("Expected %d nodes, got %d", r.Nodes, got.Nodes)
		}
		if got.ComputedAt.IsZero() {
			t.Error("Expected ComputedAt to be stamped on save")
		}
	})

	t.Run("PerftMiss", func(t *testing.T) {
		_, found, err := store.LoadPerft("atomic", "nope", 3)
		if err != nil {
			t.Fatalf("LoadPerft: %v", err)
		}
		if found {
			t.Error("Expected miss for unknown key")
		}
	})

	t.Run("Games", func(t *testing.T) {
		games := []GameRecord{
			{Variant: "standard", Moves: []string{"e2e4", "e7e5"}, Status: "ongoing", PlayedAt: time.Unix(1000, 0)},
			{Variant: "atomic", Moves: []string{"e2e4", "f7f5", "d1h5", "g7g6", "h5g6"}, Status: "kingExploded", Winner: "White", PlayedAt: time.Unix(2000, 0)},
		}
		for _, g := range games {
			if err := store.SaveGame(g); err != nil {
				t.Fatalf("SaveGame: %v", err)
			}
		}

		got, err := store.Games()
		if err != nil {
			t.Fatalf("Games: %v", err)
		}
		if len(got) != len(games) {
			t.Fatalf("Expected %d games, got %d", len(games), len(got))
		}
		if got[0].Variant != "standard" || got[1].Variant != "atomic" {
			t.Errorf("Expected games oldest first, got %q then %q", got[0].Variant, got[1].Variant)
		}
		if got[1].Winner != "White" {
			t.Errorf("Expected White winner, got %q", got[1].Winner)
		}
	})
}
