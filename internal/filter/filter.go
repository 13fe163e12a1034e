// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package filter narrows a result set by a title substring query.
package filter

import (
	"strings"

	"golang.org/x/text/cases"

	"github.com/pdiddy/movie-grid/pkg/types"
)

// ByTitle returns the movies in baseline whose title contains query,
// ignoring case. A query that is empty after trimming returns baseline
// itself. Otherwise the query is folded as given, surrounding spaces
// included, and matched against each folded title. Order is preserved.
//
// Movies without a string title never match.
func ByTitle(baseline []types.Movie, query string) []types.Movie {
	if strings.TrimSpace(query) == "" {
		return baseline
	}

	fold := cases.Fold()
	needle := fold.String(query)

	matched := make([]types.Movie, 0)
	for _, m := range baseline {
		if !m.HasTitle {
			continue
		}
		if strings.Contains(fold.String(m.Title), needle) {
			matched = append(matched, m)
		}
	}
	return matched
}

// Matches reports whether m would be kept by ByTitle for a non-blank query.
func Matches(m types.Movie, query string) bool {
	if !m.HasTitle {
		return false
	}
	fold := cases.Fold()
	return strings.Contains(fold.String(m.Title), fold.String(query))
}
