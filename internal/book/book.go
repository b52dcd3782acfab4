// Package book reads Polyglot-format opening books and resolves their
// entries against a position's legal moves.
package book

import (
	"encoding/binary"
	"fmt"
	"io"
	"math/rand"
	"os"
	"sort"

	"github.com/M-DinhHoangViet/scalachess/internal/board"
)

// Entry is a single weighted book move.
type Entry struct {
	Move   board.Move
	Weight uint16
}

// Book maps Polyglot position keys to their candidate moves.
type Book struct {
	entries map[uint64][]Entry
}

// New returns an empty book.
func New() *Book {
	return &Book{entries: make(map[uint64][]Entry)}
}

// Load reads a Polyglot book from a file.
func Load(path string) (*Book, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	b, err := LoadReader(f)
	if err != nil {
		return nil, fmt.Errorf("reading book %s: %w", path, err)
	}
	return b, nil
}

// LoadReader reads Polyglot entries until EOF. Each entry is 16 bytes:
// key (8), move (2), weight (2) and learn data (4, ignored), all big-endian.
func LoadReader(r io.Reader) (*Book, error) {
	b := New()

	var raw [16]byte
	for {
		if _, err := io.ReadFull(r, raw[:]); err == io.EOF {
			break
		} else if err != nil {
			return nil, err
		}

		key := binary.BigEndian.Uint64(raw[0:8])
		move := decodeMove(binary.BigEndian.Uint16(raw[8:10]))
		weight := binary.BigEndian.Uint16(raw[10:12])
		if move != board.NoMove {
			b.entries[key] = append(b.entries[key], Entry{Move: move, Weight: weight})
		}
	}

	return b, nil
}

// decodeMove unpacks the Polyglot move word: bits 0-5 hold the target, bits
// 6-11 the origin, bits 12-14 the promotion kind. Castling arrives as
// king-takes-rook, which matches the engine's native encoding and is resolved
// against the legal move list at probe time.
func decodeMove(data uint16) board.Move {
	to := board.NewSquare(int(data&7), int(data>>3&7))
	from := board.NewSquare(int(data>>6&7), int(data>>9&7))

	if promo := data >> 12 & 7; promo > 0 {
		kinds := [5]board.PieceType{board.NoPieceType, board.Knight, board.Bishop, board.Rook, board.Queen}
		if promo > 4 {
			return board.NoMove
		}
		return board.NewPromotion(from, to, kinds[promo])
	}
	return board.NewMove(from, to)
}

// Probe picks a book move for the position by weighted random selection.
// Returns false when the position is out of book.
func (b *Book) Probe(pos *board.Position) (board.Move, bool) {
	entries := b.ProbeAll(pos)
	if len(entries) == 0 {
		return board.NoMove, false
	}

	var total uint32
	for _, e := range entries {
		total += uint32(e.Weight)
	}
	if total == 0 {
		return entries[0].Move, true
	}

	r := rand.Uint32() % total
	var cum uint32
	for _, e := range entries {
		cum += uint32(e.Weight)
		if r < cum {
			return e.Move, true
		}
	}
	return entries[0].Move, true
}

// ProbeAll returns every legal book move for the position, heaviest first.
// Raw entries whose move is not legal in the position are dropped.
func (b *Book) ProbeAll(pos *board.Position) []Entry {
	if b == nil {
		return nil
	}

	raw := b.entries[pos.PolyglotHash()]
	out := make([]Entry, 0, len(raw))
	for _, e := range raw {
		if m := resolve(pos, e.Move); m != board.NoMove {
			out = append(out, Entry{Move: m, Weight: e.Weight})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Weight > out[j].Weight })
	return out
}

// resolve matches a decoded book move against the legal move list so the
// returned move carries the right flags.
func resolve(pos *board.Position, m board.Move) board.Move {
	moves := pos.LegalMoves()
	for i := 0; i < moves.Len(); i++ {
		lm := moves.Get(i)
		if lm.From() != m.From() || lm.To() != m.To() {
			continue
		}
		if lm.IsPromotion() != m.IsPromotion() {
			continue
		}
		if lm.IsPromotion() && lm.Promotion() != m.Promotion() {
			continue
		}
		return lm
	}
	return board.NoMove
}

// Size returns the number of distinct positions in the book.
func (b *Book) Size() int {
	if b == nil {
		return 0
	}
	return len(b.entries)
}
