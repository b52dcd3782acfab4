package main

import (
	"log"
	"sort"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/M-DinhHoangViet/scalachess/internal/board"
	"github.com/M-DinhHoangViet/scalachess/internal/storage"
)

func perft(pos *board.Position, depth int, divide, parallel, store bool) error {
	log.Printf("============ perft(%d): %s %s\n", depth, pos.Variant, pos.FEN())

	start := time.Now()
	var nodes uint64
	switch {
	case divide:
		nodes = runPerftDivide(pos, depth)
	case parallel:
		nodes = runPerftParallel(pos, depth)
	default:
		nodes = board.Perft(pos, depth)
	}
	elapsed := time.Since(start)

	log.Println(message.NewPrinter(language.English).
		Sprintf("d=%d nodes=%d rate=%dn/s (%.3fs elapsed)",
			depth, nodes, int(float64(nodes)/elapsed.Seconds()), elapsed.Seconds()))

	if store {
		db, err := storage.OpenDefault()
		if err != nil {
			return err
		}
		defer db.Close()
		return db.SavePerft(storage.PerftResult{
			Variant: pos.Variant.String(),
			FEN:     pos.FEN(),
			Depth:   depth,
			Nodes:   nodes,
			Elapsed: elapsed,
		})
	}
	return nil
}

// runPerftParallel splits the root moves across goroutines. Positions are
// immutable, so every worker branches off the shared root without locking.
func runPerftParallel(pos *board.Position, depth int) uint64 {
	if depth <= 1 {
		return board.Perft(pos, depth)
	}

	var nodes uint64
	var wg sync.WaitGroup
	moves := pos.LegalMoves()
	for i := 0; i < moves.Len(); i++ {
		m := moves.Get(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			child, err := pos.Apply(m)
			if err != nil {
				return
			}
			atomic.AddUint64(&nodes, board.Perft(child, depth-1))
		}()
	}
	wg.Wait()
	return nodes
}

func runPerftDivide(pos *board.Position, depth int) uint64 {
	counts := board.Divide(pos, depth)

	lines := make([]string, 0, len(counts))
	byLine := make(map[string]uint64, len(counts))
	for m, n := range counts {
		u := pos.UCI(m)
		lines = append(lines, u)
		byLine[u] = n
	}
	sort.Strings(lines)

	var nodes uint64
	for _, u := range lines {
		log.Printf("%s: %d\n", u, byLine[u])
		nodes += byLine[u]
	}
	return nodes
}
