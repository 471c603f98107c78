package library

import (
	"context"
	"errors"
	"testing"

	"movietracker/models"
	"movietracker/resolver"

	"github.com/stretchr/testify/assert"
)

type stubResolver struct {
	records map[string]*models.MovieRecord
	err     error
	calls   []string
}

func (s *stubResolver) Resolve(_ context.Context, title, _ string) (*models.MovieRecord, error) {
	s.calls = append(s.calls, title)
	if s.err != nil {
		return nil, s.err
	}
	record, ok := s.records[title]
	if !ok {
		return nil, resolver.ErrNotFound
	}
	copied := *record
	return &copied, nil
}

type memoryStore struct {
	records []models.MovieRecord
}

func (m *memoryStore) Exists(title, year string) (bool, error) {
	key := models.Key(title, year)
	for _, record := range m.records {
		if record.Key() == key {
			return true, nil
		}
	}
	return false, nil
}

func (m *memoryStore) Append(record models.MovieRecord) error {
	m.records = append(m.records, record)
	return nil
}

func (m *memoryStore) ReplaceTop(ranked []models.MovieRecord) error {
	kept := m.records[:0]
	for _, record := range m.records {
		if record.Rank == nil {
			kept = append(kept, record)
		}
	}
	m.records = append(kept, ranked...)
	return nil
}

type memoryCache struct {
	entries map[string]models.MovieRecord
}

func (m *memoryCache) Get(query, yearHint string) (*models.MovieRecord, bool, error) {
	record, ok := m.entries[query+"|"+yearHint]
	if !ok {
		return nil, false, nil
	}
	copied := record
	return &copied, true, nil
}

func (m *memoryCache) Put(query, yearHint string, record models.MovieRecord) error {
	if m.entries == nil {
		m.entries = map[string]models.MovieRecord{}
	}
	m.entries[query+"|"+yearHint] = record
	return nil
}

func heatRecord() *models.MovieRecord {
	return &models.MovieRecord{
		Title:     "Heat",
		Year:      "1995",
		Director:  "Michael Mann",
		DateAdded: "2026-09-01",
	}
}

func TestAddMoviesOutcomes(t *testing.T) {
	res := &stubResolver{records: map[string]*models.MovieRecord{
		"Heat": heatRecord(),
	}}
	store := &memoryStore{}
	lib := New(res, store, nil)

	summary, err := lib.AddMovies(context.Background(), []string{"Heat", "Zzzznonexistentmovie123", "", "  "})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Heat"}, summary.Added)
	assert.Equal(t, []string{"Zzzznonexistentmovie123"}, summary.NotFound)
	assert.Empty(t, summary.Skipped)
	assert.Empty(t, summary.Failed)
	assert.Len(t, store.records, 1)
}

func TestAddMoviesSkipsDuplicates(t *testing.T) {
	res := &stubResolver{records: map[string]*models.MovieRecord{
		"Heat": heatRecord(),
		"heat": heatRecord(),
	}}
	store := &memoryStore{}
	lib := New(res, store, nil)

	summary, err := lib.AddMovies(context.Background(), []string{"Heat", "heat"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Heat"}, summary.Added)
	assert.Equal(t, []string{"heat"}, summary.Skipped)
	assert.Len(t, store.records, 1)
}

func TestAddMoviesUpstreamFailureContinuesBatch(t *testing.T) {
	res := &stubResolver{err: &resolver.UpstreamError{Op: "search", Err: errors.New("connection refused")}}
	store := &memoryStore{}
	lib := New(res, store, nil)

	summary, err := lib.AddMovies(context.Background(), []string{"Heat", "Collateral"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Heat", "Collateral"}, summary.Failed)
	assert.Len(t, res.calls, 2)
	assert.Empty(t, store.records)
}

func TestAddMoviesUsesCache(t *testing.T) {
	res := &stubResolver{records: map[string]*models.MovieRecord{}}
	cache := &memoryCache{}
	stale := *heatRecord()
	stale.DateAdded = "2001-01-01"
	assert.NoError(t, cache.Put("Heat", "", stale))

	store := &memoryStore{}
	lib := New(res, store, cache)

	summary, err := lib.AddMovies(context.Background(), []string{"Heat"})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Heat"}, summary.Added)

	// The resolver must not be consulted on a cache hit.
	assert.Empty(t, res.calls)

	// The cached copy carries a stale add date; a fresh one is stamped.
	assert.NotEqual(t, "2001-01-01", store.records[0].DateAdded)
	assert.NotEmpty(t, store.records[0].DateAdded)
}

func TestAddMoviesPopulatesCache(t *testing.T) {
	res := &stubResolver{records: map[string]*models.MovieRecord{
		"Heat": heatRecord(),
	}}
	cache := &memoryCache{}
	lib := New(res, &memoryStore{}, cache)

	_, err := lib.AddMovies(context.Background(), []string{"Heat"})
	assert.NoError(t, err)

	_, ok, err := cache.Get("Heat", "")
	assert.NoError(t, err)
	assert.True(t, ok)
}

func TestImportTopReplacesRankedSubset(t *testing.T) {
	res := &stubResolver{records: map[string]*models.MovieRecord{
		"Heat":  heatRecord(),
		"Thief": {Title: "Thief", Year: "1981"},
	}}
	store := &memoryStore{}

	oldRank := 1
	store.records = append(store.records,
		models.MovieRecord{Title: "Collateral", Year: "2004"},
		models.MovieRecord{Title: "Old Favorite", Year: "1990", Rank: &oldRank},
	)

	lib := New(res, store, nil)
	summary, err := lib.ImportTop(context.Background(), []TopEntry{
		{Rank: 1, Title: "Heat"},
		{Rank: 2, Title: "Thief"},
		{Rank: 3, Title: "Zzzznonexistentmovie123"},
	})
	assert.NoError(t, err)
	assert.Equal(t, []string{"Heat", "Thief"}, summary.Added)
	assert.Equal(t, []string{"Zzzznonexistentmovie123"}, summary.NotFound)

	assert.Len(t, store.records, 3)
	titles := []string{store.records[0].Title, store.records[1].Title, store.records[2].Title}
	assert.Equal(t, []string{"Collateral", "Heat", "Thief"}, titles)
	assert.NotNil(t, store.records[1].Rank)
	assert.Equal(t, 1, *store.records[1].Rank)
}
