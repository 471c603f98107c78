// Package models defines the data structures used throughout the application.
package models

import "strings"

// MovieRecord is the canonical representation of a movie in the collection.
// Every field is always present; unknown values are the empty string or a
// nil pointer, never an absent column. The CSV tags define the on-disk
// column set, which is identical for every row.
type MovieRecord struct {
	Title                string     `csv:"title" json:"title"`
	Year                 string     `csv:"year" json:"year"`
	Genres               StringList `csv:"genres" json:"genres"`
	Director             string     `csv:"director" json:"director"`
	Cast                 StringList `csv:"cast" json:"cast"`
	RatingIMDB           *float64   `csv:"rating_imdb" json:"rating_imdb"`
	RatingRottenTomatoes *int       `csv:"rating_rotten_tomatoes" json:"rating_rotten_tomatoes"`
	RatingMetacritic     *int       `csv:"rating_metacritic" json:"rating_metacritic"`
	AwardsText           string     `csv:"awards_text" json:"awards_text"`
	RuntimeMinutes       *int       `csv:"runtime_minutes" json:"runtime_minutes"`
	Language             string     `csv:"language" json:"language"`
	Overview             string     `csv:"overview" json:"overview"`
	BoxOfficeUSD         *int64     `csv:"box_office_usd" json:"box_office_usd"`
	BudgetUSD            *int64     `csv:"budget_usd" json:"budget_usd"`
	BoxOfficeUSDAdjusted *int64     `csv:"box_office_usd_adjusted" json:"box_office_usd_adjusted"`
	BudgetUSDAdjusted    *int64     `csv:"budget_usd_adjusted" json:"budget_usd_adjusted"`
	Rank                 *int       `csv:"rank" json:"rank"`
	DateAdded            string     `csv:"date_added" json:"date_added"`
}

// Key returns the deduplication key for the record. The collection treats
// the normalized (title, year) pair as unique.
func (m MovieRecord) Key() string {
	return Key(m.Title, m.Year)
}

// Key builds the normalized deduplication key for a (title, year) pair.
func Key(title, year string) string {
	return strings.ToLower(strings.TrimSpace(title)) + "|" + strings.TrimSpace(year)
}

// StringList is an ordered list of strings. Lists keep the order the
// upstream returned them in. In CSV the list is stored as a single
// comma-joined cell ("Action, Drama"); JSON uses a plain array.
type StringList []string

// MarshalCSV encodes the list as a comma-joined string.
func (l StringList) MarshalCSV() ([]byte, error) {
	return []byte(strings.Join(l, ", ")), nil
}

// UnmarshalCSV decodes a comma-joined string back into a list. An empty
// cell decodes to a nil list.
func (l *StringList) UnmarshalCSV(data []byte) error {
	value := strings.TrimSpace(string(data))
	if value == "" {
		*l = nil
		return nil
	}
	parts := strings.Split(value, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	*l = out
	return nil
}
