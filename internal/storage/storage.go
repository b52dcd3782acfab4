package storage

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/dgraph-io/badger/v4"
)

// Key prefixes
const (
	prefixPerft = "perft/"
	prefixGame  = "game/"
)

// PerftResult records one computed perft figure, keyed by variant, position
// and depth so repeated runs can be answered from the store.
type PerftResult struct {
	Variant    string        `json:"variant"`
	FEN        string        `json:"fen"`
	Depth      int           `json:"depth"`
	Nodes      uint64        `json:"nodes"`
	Elapsed    time.Duration `json:"elapsed"`
	ComputedAt time.Time     `json:"computed_at"`
}

// GameRecord stores a finished game as its move list plus the final verdict.
type GameRecord struct {
	Variant  string    `json:"variant"`
	Moves    []string  `json:"moves"`
	Status   string    `json:"status"`
	Winner   string    `json:"winner,omitempty"`
	FinalFEN string    `json:"final_fen"`
	PlayedAt time.Time `json:"played_at"`
}

// Store wraps BadgerDB for persistent storage.
type Store struct {
	db *badger.DB
}

// Open opens (or creates) a store in the given directory.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil // Disable logging

	db, err := badger.Open(opts)
	if err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// OpenDefault opens the store in the platform data directory.
func OpenDefault() (*Store, error) {
	dir, err := DatabaseDir()
	if err != nil {
		return nil, err
	}
	return Open(dir)
}

// Close closes the database.
func (s *Store) Close() error {
	if s.db != nil {
		return s.db.Close()
	}
	return nil
}

func perftKey(variant, fen string, depth int) []byte {
	return []byte(fmt.Sprintf("%s%s/%d/%s", prefixPerft, variant, depth, fen))
}

// SavePerft stores a perft result, overwriting any previous figure for the
// same variant, position and depth.
func (s *Store) SavePerft(r PerftResult) error {
	if r.ComputedAt.IsZero() {
		r.ComputedAt = time.Now()
	}

	data, err := json.Marshal(r)
	if err != nil {
		return err
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(perftKey(r.Variant, r.FEN, r.Depth), data)
	})
}

// LoadPerft retrieves a stored perft result. The second return value is
// false when the store holds no figure for this query.
func (s *Store) LoadPerft(variant, fen string, depth int) (PerftResult, bool, error) {
	var r PerftResult
	found := false

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(perftKey(variant, fen, depth))
		if err == badger.ErrKeyNotFound {
			return nil
		}
		if err != nil {
			return err
		}
		found = true
		return item.Value(func(val []byte) error {
			return json.Unmarshal(val, &r)
		})
	})

	return r, found, err
}

// SaveGame appends a finished game to the store.
func (s *Store) SaveGame(g GameRecord) error {
	if g.PlayedAt.IsZero() {
		g.PlayedAt = time.Now()
	}

	data, err := json.Marshal(g)
	if err != nil {
		return err
	}

	key := []byte(fmt.Sprintf("%s%d", prefixGame, g.PlayedAt.UnixNano()))
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(key, data)
	})
}

// Games returns every stored game, oldest first.
func (s *Store) Games() ([]GameRecord, error) {
	var games []GameRecord

	err := s.db.View(func(txn *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = []byte(prefixGame)
		it := txn.NewIterator(opts)
		defer it.Close()

		for it.Rewind(); it.Valid(); it.Next() {
			var g GameRecord
			err := it.Item().Value(func(val []byte) error {
				return json.Unmarshal(val, &g)
			})
			if err != nil {
				return err
			}
			games = append(games, g)
		}
		return nil
	})

	return games, err
}
