// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines shared data structures for movie-grid: the movie
// records returned by the search source, the decoded search page, and the
// configuration for every component.
package types

import (
	"bytes"
	"encoding/json"
)

// Movie is one search result item as returned by the OMDb search API.
// Records are treated as an unvalidated contract: no field is required and
// IMDbID is not deduplicated.
type Movie struct {
	// Title is the primary filterable attribute.
	Title string `json:"Title" yaml:"title"`

	// Year is passed through as text. OMDb sends strings such as "2012" or
	// "2012–2015"; a JSON number is kept as its decimal text.
	Year string `json:"Year" yaml:"year"`

	// Type is the OMDb result type (movie, series, episode, game).
	Type string `json:"Type" yaml:"type"`

	// IMDbID is the external identifier of the title (e.g. "tt0848228").
	IMDbID string `json:"imdbID" yaml:"imdb_id"`

	// Poster is the poster URL or "N/A".
	Poster string `json:"Poster,omitempty" yaml:"poster,omitempty"`

	// HasTitle is false when the source omitted Title or sent a non-string value.
	HasTitle bool `json:"-" yaml:"-"`
}

// UnmarshalJSON decodes a search item leniently. Unknown fields are ignored,
// a missing or non-string Title leaves HasTitle false, and Year may be a
// string or a number.
func (m *Movie) UnmarshalJSON(data []byte) error {
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*m = Movie{}
	if v, ok := raw["Title"]; ok {
		if err := json.Unmarshal(v, &m.Title); err == nil && !isNull(v) {
			m.HasTitle = true
		} else {
			m.Title = ""
		}
	}
	if v, ok := raw["Year"]; ok {
		m.Year = passthroughText(v)
	}
	m.Type = stringField(raw, "Type")
	m.IMDbID = stringField(raw, "imdbID")
	m.Poster = stringField(raw, "Poster")
	return nil
}

// passthroughText returns a JSON string or number as plain text. Any other
// JSON value yields "".
func passthroughText(v json.RawMessage) string {
	var s string
	if err := json.Unmarshal(v, &s); err == nil {
		return s
	}
	var n json.Number
	if err := json.Unmarshal(v, &n); err == nil {
		return n.String()
	}
	return ""
}

func stringField(raw map[string]json.RawMessage, key string) string {
	var s string
	if v, ok := raw[key]; ok {
		_ = json.Unmarshal(v, &s)
	}
	return s
}

func isNull(v json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(v), []byte("null"))
}

// SearchPage is the decoded body of one page request.
type SearchPage struct {
	// Results holds the page's records in API order.
	Results []Movie

	// HasResults reports whether the response carried a non-null Search field.
	// A page with HasResults false is an error page.
	HasResults bool

	// Error is the source's error message, if any (e.g. "Movie not found!").
	Error string

	// TotalResults is the source's reported match count, 0 when absent.
	TotalResults int
}
