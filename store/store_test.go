package store

import (
	"os"
	"path/filepath"
	"testing"

	"movietracker/models"

	"github.com/stretchr/testify/assert"
)

func setupTestStore(t *testing.T) *Store {
	return New(filepath.Join(t.TempDir(), "movies.csv"))
}

func sampleRecord(title, year string) models.MovieRecord {
	rating := 7.9
	runtime := 170
	boxOffice := int64(187436818)
	return models.MovieRecord{
		Title:          title,
		Year:           year,
		Genres:         models.StringList{"Action", "Crime"},
		Director:       "Michael Mann",
		Cast:           models.StringList{"Al Pacino", "Robert De Niro"},
		RatingIMDB:     &rating,
		RuntimeMinutes: &runtime,
		Language:       "EN",
		Overview:       "A master thief and a detective collide.",
		BoxOfficeUSD:   &boxOffice,
		DateAdded:      "2026-09-01",
	}
}

func TestLoadMissingFile(t *testing.T) {
	s := setupTestStore(t)

	records, err := s.Load()
	assert.NoError(t, err)
	assert.Empty(t, records)
}

func TestAppendAndLoadRoundTrip(t *testing.T) {
	s := setupTestStore(t)

	err := s.Append(sampleRecord("Heat", "1995"))
	assert.NoError(t, err)

	records, err := s.Load()
	assert.NoError(t, err)
	assert.Len(t, records, 1)

	got := records[0]
	assert.Equal(t, "Heat", got.Title)
	assert.Equal(t, "1995", got.Year)
	assert.Equal(t, models.StringList{"Action", "Crime"}, got.Genres)
	assert.Equal(t, models.StringList{"Al Pacino", "Robert De Niro"}, got.Cast)
	assert.NotNil(t, got.RatingIMDB)
	assert.InDelta(t, 7.9, *got.RatingIMDB, 0.001)
	assert.NotNil(t, got.BoxOfficeUSD)
	assert.Equal(t, int64(187436818), *got.BoxOfficeUSD)
	assert.Nil(t, got.Rank)
	assert.Nil(t, got.RatingRottenTomatoes)
	assert.Equal(t, "2026-09-01", got.DateAdded)
}

func TestExistsNormalizesTitle(t *testing.T) {
	s := setupTestStore(t)
	assert.NoError(t, s.Append(sampleRecord("Heat", "1995")))

	exists, err := s.Exists("  heat ", "1995")
	assert.NoError(t, err)
	assert.True(t, exists)

	exists, err = s.Exists("Heat", "2013")
	assert.NoError(t, err)
	assert.False(t, exists)

	exists, err = s.Exists("Collateral", "2004")
	assert.NoError(t, err)
	assert.False(t, exists)
}

func TestDuplicateCheckBeforeAppendIsIdempotent(t *testing.T) {
	s := setupTestStore(t)

	for i := 0; i < 2; i++ {
		record := sampleRecord("Heat", "1995")
		exists, err := s.Exists(record.Title, record.Year)
		assert.NoError(t, err)
		if !exists {
			assert.NoError(t, s.Append(record))
		}
	}

	records, err := s.Load()
	assert.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestClear(t *testing.T) {
	s := setupTestStore(t)
	assert.NoError(t, s.Append(sampleRecord("Heat", "1995")))
	assert.NoError(t, s.Clear())

	records, err := s.Load()
	assert.NoError(t, err)
	assert.Empty(t, records)

	// Clearing writes a header-only file rather than deleting it.
	_, err = os.Stat(s.path)
	assert.NoError(t, err)
}

func TestSetRank(t *testing.T) {
	s := setupTestStore(t)
	assert.NoError(t, s.Append(sampleRecord("Heat", "1995")))

	rank := 3
	assert.NoError(t, s.SetRank("heat", &rank))

	records, err := s.Load()
	assert.NoError(t, err)
	assert.NotNil(t, records[0].Rank)
	assert.Equal(t, 3, *records[0].Rank)

	// Clearing a single rank.
	assert.NoError(t, s.SetRank("Heat", nil))
	records, err = s.Load()
	assert.NoError(t, err)
	assert.Nil(t, records[0].Rank)
}

func TestSetRankUnknownTitle(t *testing.T) {
	s := setupTestStore(t)
	assert.NoError(t, s.Append(sampleRecord("Heat", "1995")))

	rank := 1
	err := s.SetRank("Collateral", &rank)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "not found")
}

func TestTopSortsByRank(t *testing.T) {
	s := setupTestStore(t)

	first := sampleRecord("Heat", "1995")
	second := sampleRecord("Collateral", "2004")
	third := sampleRecord("Thief", "1981")
	rank2, rank5 := 2, 5
	first.Rank = &rank5
	third.Rank = &rank2

	assert.NoError(t, s.Append(first))
	assert.NoError(t, s.Append(second))
	assert.NoError(t, s.Append(third))

	top, err := s.Top()
	assert.NoError(t, err)
	assert.Len(t, top, 2)
	assert.Equal(t, "Thief", top[0].Title)
	assert.Equal(t, "Heat", top[1].Title)
}

func TestReplaceTopKeepsUnranked(t *testing.T) {
	s := setupTestStore(t)

	old := sampleRecord("Heat", "1995")
	oldRank := 1
	old.Rank = &oldRank
	unranked := sampleRecord("Collateral", "2004")
	assert.NoError(t, s.Append(old))
	assert.NoError(t, s.Append(unranked))

	replacement := sampleRecord("Thief", "1981")
	newRank := 1
	replacement.Rank = &newRank
	assert.NoError(t, s.ReplaceTop([]models.MovieRecord{replacement}))

	records, err := s.Load()
	assert.NoError(t, err)
	assert.Len(t, records, 2)

	top, err := s.Top()
	assert.NoError(t, err)
	assert.Len(t, top, 1)
	assert.Equal(t, "Thief", top[0].Title)
}

func TestClearRanks(t *testing.T) {
	s := setupTestStore(t)

	record := sampleRecord("Heat", "1995")
	rank := 1
	record.Rank = &rank
	assert.NoError(t, s.Append(record))
	assert.NoError(t, s.ClearRanks())

	records, err := s.Load()
	assert.NoError(t, err)
	assert.Len(t, records, 1)
	assert.Nil(t, records[0].Rank)
}
