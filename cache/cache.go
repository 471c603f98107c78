// Package cache stores prior resolutions in a local sqlite database so
// repeated adds of the same title do not hit the metadata service again.
// The cache is keyed by the normalized (query, year hint) pair and is
// strictly optional: every miss or failure falls through to a live lookup.
package cache

import (
	"database/sql"
	"fmt"
	"strings"

	"movietracker/models"

	_ "github.com/mattn/go-sqlite3" // Import sqlite3 driver
)

// Cache wraps the sqlite connection holding resolved records.
type Cache struct {
	db *sql.DB
}

// Open opens (or creates) the cache database at path and initializes the
// schema. Use ":memory:" for an ephemeral cache.
func Open(path string) (*Cache, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping cache database: %w", err)
	}

	schema := `
	CREATE TABLE IF NOT EXISTS resolved_movies (
		query TEXT NOT NULL,
		year_hint TEXT NOT NULL,
		title TEXT NOT NULL,
		year TEXT,
		genres TEXT,
		director TEXT,
		movie_cast TEXT,
		rating_imdb REAL,
		rating_rotten_tomatoes INTEGER,
		rating_metacritic INTEGER,
		awards_text TEXT,
		runtime_minutes INTEGER,
		language TEXT,
		overview TEXT,
		box_office_usd INTEGER,
		budget_usd INTEGER,
		box_office_usd_adjusted INTEGER,
		budget_usd_adjusted INTEGER,
		resolved_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (query, year_hint)
	);
	`
	if _, err := db.Exec(schema); err != nil {
		return nil, fmt.Errorf("failed to create cache schema: %w", err)
	}

	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error {
	return c.db.Close()
}

// Get looks up a previously resolved record. The second return value is
// false on a miss. Rank and DateAdded are not cached; callers stamp them
// at add time.
func (c *Cache) Get(query, yearHint string) (*models.MovieRecord, bool, error) {
	row := c.db.QueryRow(`
		SELECT title, year, genres, director, movie_cast, rating_imdb,
			   rating_rotten_tomatoes, rating_metacritic, awards_text,
			   runtime_minutes, language, overview, box_office_usd,
			   budget_usd, box_office_usd_adjusted, budget_usd_adjusted
		FROM resolved_movies
		WHERE query = ? AND year_hint = ?
	`, normalizeQuery(query), strings.TrimSpace(yearHint))

	var record models.MovieRecord
	var year, genres, director, cast, awards, language, overview sql.NullString
	var ratingIMDB sql.NullFloat64
	var ratingRT, ratingMeta, runtime sql.NullInt64
	var boxOffice, budget, boxOfficeAdj, budgetAdj sql.NullInt64

	err := row.Scan(
		&record.Title, &year, &genres, &director, &cast, &ratingIMDB,
		&ratingRT, &ratingMeta, &awards,
		&runtime, &language, &overview, &boxOffice,
		&budget, &boxOfficeAdj, &budgetAdj,
	)
	if err == sql.ErrNoRows {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("failed to read cache: %w", err)
	}

	record.Year = year.String
	record.Genres = splitList(genres.String)
	record.Director = director.String
	record.Cast = splitList(cast.String)
	record.AwardsText = awards.String
	record.Language = language.String
	record.Overview = overview.String
	if ratingIMDB.Valid {
		v := ratingIMDB.Float64
		record.RatingIMDB = &v
	}
	if ratingRT.Valid {
		v := int(ratingRT.Int64)
		record.RatingRottenTomatoes = &v
	}
	if ratingMeta.Valid {
		v := int(ratingMeta.Int64)
		record.RatingMetacritic = &v
	}
	if runtime.Valid {
		v := int(runtime.Int64)
		record.RuntimeMinutes = &v
	}
	if boxOffice.Valid {
		v := boxOffice.Int64
		record.BoxOfficeUSD = &v
	}
	if budget.Valid {
		v := budget.Int64
		record.BudgetUSD = &v
	}
	if boxOfficeAdj.Valid {
		v := boxOfficeAdj.Int64
		record.BoxOfficeUSDAdjusted = &v
	}
	if budgetAdj.Valid {
		v := budgetAdj.Int64
		record.BudgetUSDAdjusted = &v
	}

	return &record, true, nil
}

// Put stores a resolved record under the normalized query key, replacing
// any earlier entry.
func (c *Cache) Put(query, yearHint string, record models.MovieRecord) error {
	_, err := c.db.Exec(`
		INSERT OR REPLACE INTO resolved_movies (
			query, year_hint, title, year, genres, director, movie_cast,
			rating_imdb, rating_rotten_tomatoes, rating_metacritic,
			awards_text, runtime_minutes, language, overview,
			box_office_usd, budget_usd, box_office_usd_adjusted,
			budget_usd_adjusted
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		normalizeQuery(query), strings.TrimSpace(yearHint),
		record.Title, nullString(record.Year),
		nullString(strings.Join(record.Genres, ", ")),
		nullString(record.Director),
		nullString(strings.Join(record.Cast, ", ")),
		nullFloatPtr(record.RatingIMDB),
		nullIntPtr(record.RatingRottenTomatoes),
		nullIntPtr(record.RatingMetacritic),
		nullString(record.AwardsText),
		nullIntPtr(record.RuntimeMinutes),
		nullString(record.Language),
		nullString(record.Overview),
		nullInt64Ptr(record.BoxOfficeUSD),
		nullInt64Ptr(record.BudgetUSD),
		nullInt64Ptr(record.BoxOfficeUSDAdjusted),
		nullInt64Ptr(record.BudgetUSDAdjusted),
	)
	if err != nil {
		return fmt.Errorf("failed to write cache: %w", err)
	}
	return nil
}

func normalizeQuery(query string) string {
	return strings.ToLower(strings.TrimSpace(query))
}

func splitList(s string) models.StringList {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make(models.StringList, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// Helper functions for handling null values
func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{Valid: false}
	}
	return sql.NullString{String: s, Valid: true}
}

func nullFloatPtr(f *float64) sql.NullFloat64 {
	if f == nil {
		return sql.NullFloat64{Valid: false}
	}
	return sql.NullFloat64{Float64: *f, Valid: true}
}

func nullIntPtr(i *int) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: int64(*i), Valid: true}
}

func nullInt64Ptr(i *int64) sql.NullInt64 {
	if i == nil {
		return sql.NullInt64{Valid: false}
	}
	return sql.NullInt64{Int64: *i, Valid: true}
}
