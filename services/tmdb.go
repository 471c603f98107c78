// Package services provides external service integrations.
package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"time"
)

// TMDBClient handles interactions with The Movie Database API.
type TMDBClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// SearchResult is a single candidate returned by the TMDB search endpoint.
type SearchResult struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

// searchResponse models the paginated TMDB search payload.
type searchResponse struct {
	Results []SearchResult `json:"results"`
}

// Genre represents a movie genre from TMDB.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// MovieDetails is the full TMDB detail record for one movie.
type MovieDetails struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	ReleaseDate      string  `json:"release_date"`
	Runtime          int     `json:"runtime"`
	Genres           []Genre `json:"genres"`
	Revenue          int64   `json:"revenue"`
	Budget           int64   `json:"budget"`
	VoteAverage      float64 `json:"vote_average"`
	Overview         string  `json:"overview"`
	OriginalLanguage string  `json:"original_language"`
}

// CrewMember represents a crew member in a movie.
type CrewMember struct {
	Name string `json:"name"`
	Job  string `json:"job"`
}

// CastMember represents a billed cast member in a movie.
type CastMember struct {
	Name  string `json:"name"`
	Order int    `json:"order"`
}

// MovieCredits contains the crew and cast lists for one movie.
type MovieCredits struct {
	Crew []CrewMember `json:"crew"`
	Cast []CastMember `json:"cast"`
}

// NewTMDBClient creates a new TMDB client.
func NewTMDBClient(apiKey, baseURL string, timeout time.Duration) *TMDBClient {
	return &TMDBClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Search queries the TMDB movie search endpoint. Results come back in the
// endpoint's relevance order. A non-empty yearHint is forwarded as the
// year parameter to narrow the search.
func (t *TMDBClient) Search(ctx context.Context, query, yearHint string) ([]SearchResult, error) {
	params := url.Values{}
	params.Set("api_key", t.apiKey)
	params.Set("query", query)
	if yearHint != "" {
		params.Set("year", yearHint)
	}

	var resp searchResponse
	if err := t.getJSON(ctx, fmt.Sprintf("%s/search/movie?%s", t.baseURL, params.Encode()), &resp); err != nil {
		return nil, fmt.Errorf("failed to search TMDB: %w", err)
	}
	return resp.Results, nil
}

// Details fetches the full detail record for a movie by TMDB ID.
func (t *TMDBClient) Details(ctx context.Context, movieID int) (*MovieDetails, error) {
	params := url.Values{}
	params.Set("api_key", t.apiKey)

	var details MovieDetails
	if err := t.getJSON(ctx, fmt.Sprintf("%s/movie/%d?%s", t.baseURL, movieID, params.Encode()), &details); err != nil {
		return nil, fmt.Errorf("failed to fetch movie details from TMDB: %w", err)
	}
	return &details, nil
}

// Credits fetches the crew and cast lists for a movie by TMDB ID.
func (t *TMDBClient) Credits(ctx context.Context, movieID int) (*MovieCredits, error) {
	params := url.Values{}
	params.Set("api_key", t.apiKey)

	var credits MovieCredits
	if err := t.getJSON(ctx, fmt.Sprintf("%s/movie/%d/credits?%s", t.baseURL, movieID, params.Encode()), &credits); err != nil {
		return nil, fmt.Errorf("failed to fetch movie credits from TMDB: %w", err)
	}
	return &credits, nil
}

func (t *TMDBClient) getJSON(ctx context.Context, requestURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return err
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("TMDB API returned status %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode TMDB response: %w", err)
	}
	return nil
}
