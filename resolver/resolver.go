// Package resolver maps free-text movie titles to canonical collection
// records using the TMDB search, detail, and credit endpoints, with
// best-effort rating enrichment from a secondary source.
package resolver

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"strings"
	"sync"
	"time"

	"movietracker/models"
	"movietracker/services"

	"github.com/adrg/strutil"
	"github.com/adrg/strutil/metrics"
)

// maxCastEntries caps the stored cast list at the top billed entries.
const maxCastEntries = 10

// ErrNotFound reports that the search returned nothing, or that no
// candidate cleared the similarity threshold.
var ErrNotFound = errors.New("no matching movie found")

// UpstreamError wraps a transport-level failure from a required metadata
// call. Callers report it per-title and continue the batch.
type UpstreamError struct {
	Op  string
	Err error
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("metadata service unavailable during %s: %v", e.Op, e.Err)
}

func (e *UpstreamError) Unwrap() error {
	return e.Err
}

// MetadataSource is the primary movie metadata service. All three calls
// are required for a successful resolution.
type MetadataSource interface {
	Search(ctx context.Context, query, yearHint string) ([]services.SearchResult, error)
	Details(ctx context.Context, movieID int) (*services.MovieDetails, error)
	Credits(ctx context.Context, movieID int) (*services.MovieCredits, error)
}

// RatingSource is the optional secondary rating service. Failures degrade
// to empty enrichment fields.
type RatingSource interface {
	Lookup(ctx context.Context, title, year string) (*services.RatingReport, error)
}

// Resolver turns a user-supplied title into one canonical record.
type Resolver struct {
	metadata  MetadataSource
	ratings   RatingSource
	threshold int
	now       func() time.Time
}

// New creates a Resolver. ratings may be nil to disable enrichment. A
// threshold of 0 accepts the top search result without scoring.
func New(metadata MetadataSource, ratings RatingSource, threshold int) *Resolver {
	return &Resolver{
		metadata:  metadata,
		ratings:   ratings,
		threshold: threshold,
		now:       time.Now,
	}
}

// Resolve maps a title (and optional year hint) to a fully populated
// record. It returns ErrNotFound when nothing matches well enough, or an
// *UpstreamError when a required metadata call fails. It never returns a
// partially populated record.
func (r *Resolver) Resolve(ctx context.Context, title, yearHint string) (*models.MovieRecord, error) {
	results, err := r.metadata.Search(ctx, title, yearHint)
	if err != nil {
		return nil, &UpstreamError{Op: "search", Err: err}
	}
	if len(results) == 0 {
		return nil, ErrNotFound
	}

	candidate, ok := r.selectCandidate(title, results)
	if !ok {
		return nil, ErrNotFound
	}

	var (
		details    *services.MovieDetails
		credits    *services.MovieCredits
		detailsErr error
		creditsErr error
		wg         sync.WaitGroup
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		details, detailsErr = r.metadata.Details(ctx, candidate.ID)
	}()
	go func() {
		defer wg.Done()
		credits, creditsErr = r.metadata.Credits(ctx, candidate.ID)
	}()
	wg.Wait()

	if detailsErr != nil {
		return nil, &UpstreamError{Op: "details", Err: detailsErr}
	}
	if creditsErr != nil {
		return nil, &UpstreamError{Op: "credits", Err: creditsErr}
	}

	record := buildRecord(details, credits)
	r.enrich(ctx, record)
	record.DateAdded = r.now().Format("2006-01-02")
	return record, nil
}

// selectCandidate picks the best-scoring candidate. The first candidate in
// search order wins ties, since the endpoint's relevance ordering is
// authoritative. With a zero threshold the top result is accepted as-is.
func (r *Resolver) selectCandidate(title string, results []services.SearchResult) (services.SearchResult, bool) {
	if r.threshold <= 0 {
		return results[0], true
	}

	bestScore := -1
	bestIndex := 0
	for i, candidate := range results {
		if score := titleScore(title, candidate.Title); score > bestScore {
			bestScore = score
			bestIndex = i
		}
	}
	if bestScore < r.threshold {
		return services.SearchResult{}, false
	}
	return results[bestIndex], true
}

// titleScore computes a case-insensitive 0-100 similarity between the
// input title and a candidate title.
func titleScore(input, candidate string) int {
	score := strutil.Similarity(
		strings.ToLower(strings.TrimSpace(input)),
		strings.ToLower(strings.TrimSpace(candidate)),
		metrics.NewLevenshtein(),
	)
	return int(math.Round(score * 100))
}

// buildRecord extracts every schema field from the detail and credit
// payloads. Missing upstream data degrades to empty values.
func buildRecord(details *services.MovieDetails, credits *services.MovieCredits) *models.MovieRecord {
	record := &models.MovieRecord{
		Title:    details.Title,
		Year:     releaseYear(details.ReleaseDate),
		Language: strings.ToUpper(details.OriginalLanguage),
		Overview: details.Overview,
	}

	for _, genre := range details.Genres {
		record.Genres = append(record.Genres, genre.Name)
	}

	for _, member := range credits.Crew {
		if member.Job == "Director" {
			record.Director = member.Name
			break
		}
	}

	for i, member := range credits.Cast {
		if i == maxCastEntries {
			break
		}
		record.Cast = append(record.Cast, member.Name)
	}

	if details.Runtime > 0 {
		runtime := details.Runtime
		record.RuntimeMinutes = &runtime
	}
	if details.VoteAverage > 0 {
		rating := details.VoteAverage
		record.RatingIMDB = &rating
	}
	if details.Revenue > 0 {
		revenue := details.Revenue
		adjusted := AdjustForInflation(revenue, record.Year)
		record.BoxOfficeUSD = &revenue
		record.BoxOfficeUSDAdjusted = &adjusted
	}
	if details.Budget > 0 {
		budget := details.Budget
		adjusted := AdjustForInflation(budget, record.Year)
		record.BudgetUSD = &budget
		record.BudgetUSDAdjusted = &adjusted
	}

	return record
}

// enrich fills rating fields from the secondary source. Any failure leaves
// the fields empty; enrichment never aborts a resolution.
func (r *Resolver) enrich(ctx context.Context, record *models.MovieRecord) {
	if r.ratings == nil {
		return
	}

	report, err := r.ratings.Lookup(ctx, record.Title, record.Year)
	if err != nil {
		log.Printf("Rating lookup failed for %q: %v", record.Title, err)
		return
	}
	if report == nil || !report.Found {
		return
	}

	for _, rating := range report.Ratings {
		switch rating.Source {
		case "Rotten Tomatoes":
			record.RatingRottenTomatoes = ParsePercent(rating.Value)
		case "Metacritic":
			record.RatingMetacritic = ParseFraction(rating.Value)
		}
	}
	if report.Awards != "N/A" {
		record.AwardsText = report.Awards
	}

	// The primary source sometimes reports zero revenue for films the
	// rating service knows the gross of.
	if record.BoxOfficeUSD == nil {
		if amount := ParseCurrency(report.BoxOffice); amount != nil {
			adjusted := AdjustForInflation(*amount, record.Year)
			record.BoxOfficeUSD = amount
			record.BoxOfficeUSDAdjusted = &adjusted
		}
	}
}
