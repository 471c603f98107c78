// Package library orchestrates the add-movies workflow: resolve each
// title, deduplicate against the collection, persist, and report per-title
// outcomes. Batches run strictly sequentially; the collection file has a
// single writer.
package library

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"movietracker/models"
	"movietracker/resolver"
)

// Resolver resolves one title to a canonical record.
type Resolver interface {
	Resolve(ctx context.Context, title, yearHint string) (*models.MovieRecord, error)
}

// Collection is the persistence surface the library needs.
type Collection interface {
	Exists(title, year string) (bool, error)
	Append(record models.MovieRecord) error
	ReplaceTop(ranked []models.MovieRecord) error
}

// ResolveCache caches resolutions across batches. May be absent.
type ResolveCache interface {
	Get(query, yearHint string) (*models.MovieRecord, bool, error)
	Put(query, yearHint string, record models.MovieRecord) error
}

// Summary reports per-title outcomes of a batch.
type Summary struct {
	Added    []string `json:"added"`
	Skipped  []string `json:"skipped"`
	NotFound []string `json:"not_found"`
	Failed   []string `json:"failed"`
}

// TopEntry is one row of a ranked import.
type TopEntry struct {
	Rank  int    `json:"rank"`
	Title string `json:"title"`
}

// Library wires the resolver, store, and cache together.
type Library struct {
	resolver Resolver
	store    Collection
	cache    ResolveCache
	now      func() time.Time
}

// New creates a Library. cache may be nil to disable resolution caching.
func New(res Resolver, store Collection, cache ResolveCache) *Library {
	return &Library{
		resolver: res,
		store:    store,
		cache:    cache,
		now:      time.Now,
	}
}

// AddMovies resolves and stores each title in order. Resolution failures
// are captured per-title and never abort the batch; store write failures
// do, since nothing later in the batch could persist either.
func (l *Library) AddMovies(ctx context.Context, titles []string) (*Summary, error) {
	summary := &Summary{}

	for _, raw := range titles {
		title := strings.TrimSpace(raw)
		if title == "" {
			continue
		}

		record, err := l.resolveCached(ctx, title, "")
		if err != nil {
			if errors.Is(err, resolver.ErrNotFound) {
				summary.NotFound = append(summary.NotFound, title)
			} else {
				log.Printf("Failed to resolve %q: %v", title, err)
				summary.Failed = append(summary.Failed, title)
			}
			continue
		}

		exists, err := l.store.Exists(record.Title, record.Year)
		if err != nil {
			return nil, fmt.Errorf("failed to check for duplicate of %q: %w", title, err)
		}
		if exists {
			summary.Skipped = append(summary.Skipped, title)
			continue
		}

		if err := l.store.Append(*record); err != nil {
			return nil, fmt.Errorf("failed to store %q: %w", title, err)
		}
		summary.Added = append(summary.Added, title)
	}

	return summary, nil
}

// ImportTop resolves a ranked list of titles and replaces the collection's
// ranked subset with it. Titles that fail to resolve are reported and left
// out of the new ranking.
func (l *Library) ImportTop(ctx context.Context, entries []TopEntry) (*Summary, error) {
	summary := &Summary{}
	var ranked []models.MovieRecord

	for _, entry := range entries {
		title := strings.TrimSpace(entry.Title)
		if title == "" {
			continue
		}

		record, err := l.resolveCached(ctx, title, "")
		if err != nil {
			if errors.Is(err, resolver.ErrNotFound) {
				summary.NotFound = append(summary.NotFound, title)
			} else {
				log.Printf("Failed to resolve %q: %v", title, err)
				summary.Failed = append(summary.Failed, title)
			}
			continue
		}

		rank := entry.Rank
		record.Rank = &rank
		ranked = append(ranked, *record)
		summary.Added = append(summary.Added, title)
	}

	if err := l.store.ReplaceTop(ranked); err != nil {
		return nil, fmt.Errorf("failed to replace ranked subset: %w", err)
	}
	return summary, nil
}

// resolveCached consults the cache before the live resolver. Cache errors
// are logged and treated as misses; a fresh DateAdded is stamped on every
// cache hit since the cached copy carries the original add date.
func (l *Library) resolveCached(ctx context.Context, title, yearHint string) (*models.MovieRecord, error) {
	if l.cache != nil {
		record, ok, err := l.cache.Get(title, yearHint)
		if err != nil {
			log.Printf("Cache lookup failed for %q: %v", title, err)
		} else if ok {
			record.DateAdded = l.now().Format("2006-01-02")
			return record, nil
		}
	}

	record, err := l.resolver.Resolve(ctx, title, yearHint)
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Put(title, yearHint, *record); err != nil {
			log.Printf("Cache write failed for %q: %v", title, err)
		}
	}
	return record, nil
}
