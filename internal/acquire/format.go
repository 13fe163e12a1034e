// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/movie-grid/pkg/types"
)

// FormatTable writes movies as a human-readable table to w.
func FormatTable(movies []types.Movie, w io.Writer) {
	if len(movies) == 0 {
		fmt.Fprintln(w, "No results found.")
		return
	}

	fmt.Fprintf(w, "%-4s  %-50s  %-11s  %-8s  %s\n",
		"#", "Title", "Year", "Type", "IMDB ID")
	fmt.Fprintln(w, strings.Repeat("-", 90))

	for i, m := range movies {
		fmt.Fprintf(w, "%-4d  %-50s  %-11s  %-8s  %s\n",
			i+1, truncate(m.Title, 50), m.Year, m.Type, m.IMDbID)
	}

	fmt.Fprintf(w, "\n%d results\n", len(movies))
}

// FormatSummary writes a one-line account of an acquisition run to w,
// including the reason when the run stopped early.
func FormatSummary(res Result, w io.Writer) {
	fmt.Fprintf(w, "acquired %d of %d records for %q in %d/%d requests",
		len(res.Movies), res.Target, res.Keyword, res.Requests, res.Pages)
	if res.Err != nil {
		fmt.Fprintf(w, " (stopped: %v)", res.Err)
	}
	fmt.Fprintln(w)
}

// FormatJSON writes movies as indented JSON to w, using the source's field
// names so the output can be fed back to the grid.
func FormatJSON(movies []types.Movie, w io.Writer) error {
	if movies == nil {
		movies = []types.Movie{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(movies)
}

func truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-3]) + "..."
}
