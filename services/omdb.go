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

// OMDBClient handles interactions with the OMDb rating service. The
// integration is best-effort: callers treat every failure as missing data.
type OMDBClient struct {
	apiKey  string
	baseURL string
	client  *http.Client
}

// SourceRating is one rating entry tagged by its source name, e.g.
// {"Rotten Tomatoes", "87%"} or {"Metacritic", "74/100"}.
type SourceRating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// RatingReport is the lookup result for one title. Found is false when the
// service had no entry for the title.
type RatingReport struct {
	Found     bool
	Ratings   []SourceRating
	Awards    string
	BoxOffice string
}

// omdbResponse models the raw OMDb lookup payload.
type omdbResponse struct {
	Response  string         `json:"Response"`
	Ratings   []SourceRating `json:"Ratings"`
	Awards    string         `json:"Awards"`
	BoxOffice string         `json:"BoxOffice"`
}

// NewOMDBClient creates a new OMDb client.
func NewOMDBClient(apiKey, baseURL string, timeout time.Duration) *OMDBClient {
	return &OMDBClient{
		apiKey:  apiKey,
		baseURL: baseURL,
		client: &http.Client{
			Timeout: timeout,
		},
	}
}

// Lookup queries OMDb by exact title, narrowed by year when available.
func (o *OMDBClient) Lookup(ctx context.Context, title, year string) (*RatingReport, error) {
	params := url.Values{}
	params.Set("apikey", o.apiKey)
	params.Set("t", title)
	if year != "" {
		params.Set("y", year)
	}

	requestURL := fmt.Sprintf("%s/?%s", o.baseURL, params.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, requestURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := o.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to query OMDb: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			log.Printf("Failed to close response body: %v", err)
		}
	}()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("OMDb API returned status %d", resp.StatusCode)
	}

	var payload omdbResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode OMDb response: %w", err)
	}

	if payload.Response != "True" {
		return &RatingReport{Found: false}, nil
	}

	return &RatingReport{
		Found:     true,
		Ratings:   payload.Ratings,
		Awards:    payload.Awards,
		BoxOffice: payload.BoxOffice,
	}, nil
}
