// Package store persists the movie collection to a single CSV file. The
// file is the database: one row per record, a fixed column set, and
// list-valued columns stored as comma-joined text. The store does not
// enforce uniqueness; callers check Exists before Append.
package store

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"movietracker/models"

	"github.com/jszwec/csvutil"
)

// Store reads and writes the collection CSV file.
type Store struct {
	path string
}

// New creates a store backed by the CSV file at path. The file is created
// on first write; a missing file reads as an empty collection.
func New(path string) *Store {
	return &Store{path: path}
}

// Load returns every record in the collection, in file order.
func (s *Store) Load() ([]models.MovieRecord, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read collection file: %w", err)
	}
	if len(data) == 0 {
		return nil, nil
	}

	var records []models.MovieRecord
	if err := csvutil.Unmarshal(data, &records); err != nil {
		return nil, fmt.Errorf("failed to parse collection file: %w", err)
	}
	return records, nil
}

// Append adds one record to the collection.
func (s *Store) Append(record models.MovieRecord) error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	return s.save(append(records, record))
}

// Exists reports whether a record with the same normalized (title, year)
// pair is already stored.
func (s *Store) Exists(title, year string) (bool, error) {
	records, err := s.Load()
	if err != nil {
		return false, err
	}
	key := models.Key(title, year)
	for _, record := range records {
		if record.Key() == key {
			return true, nil
		}
	}
	return false, nil
}

// Clear removes every record, leaving a header-only file.
func (s *Store) Clear() error {
	return s.save([]models.MovieRecord{})
}

// SetRank sets or clears (rank == nil) the rank of the record with the
// given title. Returns an error when no record matches.
func (s *Store) SetRank(title string, rank *int) error {
	records, err := s.Load()
	if err != nil {
		return err
	}

	normalized := strings.ToLower(strings.TrimSpace(title))
	found := false
	for i := range records {
		if strings.ToLower(strings.TrimSpace(records[i].Title)) == normalized {
			records[i].Rank = rank
			found = true
		}
	}
	if !found {
		return fmt.Errorf("movie %q not found in collection", title)
	}
	return s.save(records)
}

// ClearRanks removes the rank from every record.
func (s *Store) ClearRanks() error {
	records, err := s.Load()
	if err != nil {
		return err
	}
	for i := range records {
		records[i].Rank = nil
	}
	return s.save(records)
}

// Top returns the ranked subset of the collection, sorted by rank
// ascending.
func (s *Store) Top() ([]models.MovieRecord, error) {
	records, err := s.Load()
	if err != nil {
		return nil, err
	}

	var ranked []models.MovieRecord
	for _, record := range records {
		if record.Rank != nil {
			ranked = append(ranked, record)
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].Rank < *ranked[j].Rank
	})
	return ranked, nil
}

// ReplaceTop swaps the ranked subset: previously ranked records are
// dropped and the given ranked records appended, leaving unranked records
// untouched.
func (s *Store) ReplaceTop(ranked []models.MovieRecord) error {
	records, err := s.Load()
	if err != nil {
		return err
	}

	kept := records[:0]
	for _, record := range records {
		if record.Rank == nil {
			kept = append(kept, record)
		}
	}
	return s.save(append(kept, ranked...))
}

func (s *Store) save(records []models.MovieRecord) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create data directory: %w", err)
		}
	}

	data, err := csvutil.Marshal(records)
	if err != nil {
		return fmt.Errorf("failed to encode collection: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write collection file: %w", err)
	}
	return nil
}
