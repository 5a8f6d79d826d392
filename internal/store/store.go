// Package store persists saved games to a local BadgerDB database,
// the same embedded-KV approach the original desktop client used for
// user preferences, repurposed here for game snapshots.
package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"

	"github.com/dgraph-io/badger/v4"
)

const appName = "minishogi"

const savedGamePrefix = "game/"

// SavedGame is a single persisted snapshot: the position, notation
// history, and metadata needed to list and restore it.
type SavedGame struct {
	Name      string    `json:"name"`
	SFEN      string     `json:"sfen"`
	Moves     []string  `json:"moves"`
	SavedAt   time.Time `json:"saved_at"`
}

// Store wraps a BadgerDB instance dedicated to saved games.
type Store struct {
	db *badger.DB
}

// DataDir returns the platform-specific data directory for persisted
// games: XDG_DATA_HOME (or its per-OS equivalent) joined with the
// application name.
func DataDir() (string, error) {
	var baseDir string

	switch runtime.GOOS {
	case "darwin":
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return "", err
		}
		baseDir = filepath.Join(homeDir, "Library", "Application Support")

	case "windows":
		baseDir = os.Getenv("APPDATA")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, "AppData", "Roaming")
		}

	default:
		baseDir = os.Getenv("XDG_DATA_HOME")
		if baseDir == "" {
			homeDir, err := os.UserHomeDir()
			if err != nil {
				return "", err
			}
			baseDir = filepath.Join(homeDir, ".local", "share")
		}
	}

	dataDir := filepath.Join(baseDir, appName, "games")
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return "", err
	}
	return dataDir, nil
}

// Open opens (creating if necessary) the saved-game database at dir.
func Open(dir string) (*Store, error) {
	opts := badger.DefaultOptions(dir)
	opts.Logger = nil

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("store: opening database at %s: %w", dir, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database.
func (s *Store) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func gameKey(name string) []byte { return []byte(savedGamePrefix + name) }

// Save persists game under name, overwriting any existing entry.
func (s *Store) Save(name string, game SavedGame) error {
	game.Name = name
	game.SavedAt = time.Now()

	blob, err := encodeSavedGame(game)
	if err != nil {
		return fmt.Errorf("store: encoding game %q: %w", name, err)
	}

	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Set(gameKey(name), blob)
	})
}

// Load retrieves the saved game named name.
func (s *Store) Load(name string) (SavedGame, error) {
	var game SavedGame

	err := s.db.View(func(txn *badger.Txn) error {
		item, err := txn.Get(gameKey(name))
		if err != nil {
			if err == badger.ErrKeyNotFound {
				return fmt.Errorf("store: no saved game named %q", name)
			}
			return err
		}
		return item.Value(func(val []byte) error {
			decoded, err := decodeSavedGame(val)
			if err != nil {
				return err
			}
			game = decoded
			return nil
		})
	})

	return game, err
}

// Delete removes the saved game named name.
func (s *Store) Delete(name string) error {
	return s.db.Update(func(txn *badger.Txn) error {
		return txn.Delete(gameKey(name))
	})
}

// List returns the names of every saved game, sorted by BadgerDB's key
// order (lexicographic over the save name).
func (s *Store) List() ([]string, error) {
	var names []string

	err := s.db.View(func(txn *badger.Txn) error {
		it := txn.NewIterator(badger.DefaultIteratorOptions)
		defer it.Close()

		prefix := []byte(savedGamePrefix)
		for it.Seek(prefix); it.ValidForPrefix(prefix); it.Next() {
			key := it.Item().KeyCopy(nil)
			names = append(names, string(key[len(prefix):]))
		}
		return nil
	})

	return names, err
}

// jsonMarshalGame is factored out so export.go's compression wrapper
// can reuse the same on-disk representation.
func jsonMarshalGame(game SavedGame) ([]byte, error) { return json.Marshal(game) }
func jsonUnmarshalGame(data []byte) (SavedGame, error) {
	var game SavedGame
	err := json.Unmarshal(data, &game)
	return game, err
}
