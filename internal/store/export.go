package store

import (
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/klauspost/compress/zstd"
)

// encodeSavedGame serializes game to JSON and zstd-compresses it
// before it is written to BadgerDB — saved games accumulate move
// history indefinitely, and zstd gives a meaningful size reduction on
// the repetitive USI move strings for little CPU cost.
func encodeSavedGame(game SavedGame) ([]byte, error) {
	raw, err := jsonMarshalGame(game)
	if err != nil {
		return nil, err
	}

	enc, err := zstd.NewWriter(nil)
	if err != nil {
		return nil, fmt.Errorf("store: building zstd encoder: %w", err)
	}
	defer enc.Close()

	return enc.EncodeAll(raw, nil), nil
}

// decodeSavedGame reverses encodeSavedGame.
func decodeSavedGame(blob []byte) (SavedGame, error) {
	dec, err := zstd.NewReader(nil)
	if err != nil {
		return SavedGame{}, fmt.Errorf("store: building zstd decoder: %w", err)
	}
	defer dec.Close()

	raw, err := dec.DecodeAll(blob, nil)
	if err != nil {
		return SavedGame{}, fmt.Errorf("store: decompressing saved game: %w", err)
	}

	return jsonUnmarshalGame(raw)
}

// ExportToFile writes the saved game named name to path as a
// self-contained zstd-compressed JSON blob, suitable for sharing
// outside the local database.
func (s *Store) ExportToFile(name, path string) error {
	game, err := s.Load(name)
	if err != nil {
		return err
	}
	blob, err := encodeSavedGame(game)
	if err != nil {
		return err
	}
	return os.WriteFile(path, blob, 0644)
}

// ImportFromFile reads a file produced by ExportToFile and saves it
// under name.
func (s *Store) ImportFromFile(path, name string) error {
	blob, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("store: reading %s: %w", path, err)
	}
	game, err := decodeSavedGame(blob)
	if err != nil {
		return err
	}
	return s.Save(name, game)
}

// Stats summarizes the saved-game database for diagnostics.
type Stats struct {
	GameCount    int
	OnDiskBytes  int64
	HumanSize    string
}

// CollectStats walks the database directory to report its footprint,
// formatted in human-readable units (e.g. "128 kB").
func (s *Store) CollectStats(dir string) (Stats, error) {
	names, err := s.List()
	if err != nil {
		return Stats{}, err
	}

	var size int64
	err = filepathWalk(dir, func(n int64) { size += n })
	if err != nil {
		return Stats{}, err
	}

	return Stats{
		GameCount:   len(names),
		OnDiskBytes: size,
		HumanSize:   humanize.Bytes(uint64(size)),
	}, nil
}

// filepathWalk sums the sizes of every regular file under dir, calling
// add for each one. It is factored out as a narrow helper so
// CollectStats stays focused on formatting.
func filepathWalk(dir string, add func(int64)) error {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return err
	}
	for _, entry := range entries {
		full := dir + string(os.PathSeparator) + entry.Name()
		if entry.IsDir() {
			if err := filepathWalk(full, add); err != nil {
				return err
			}
			continue
		}
		info, err := entry.Info()
		if err != nil {
			return err
		}
		add(info.Size())
	}
	return nil
}
