// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/movie-grid/pkg/types"
)

func TestFormatTable(t *testing.T) {
	movies := []types.Movie{
		{Title: "The Avengers", Year: "2012", Type: "movie", IMDbID: "tt0848228", HasTitle: true},
		{Title: strings.Repeat("Long Title ", 10), Year: "2015", Type: "movie", IMDbID: "tt2395427", HasTitle: true},
	}

	var buf bytes.Buffer
	FormatTable(movies, &buf)
	out := buf.String()

	assert.Contains(t, out, "IMDB ID")
	assert.Contains(t, out, "The Avengers")
	assert.Contains(t, out, "tt0848228")
	assert.Contains(t, out, "...")
	assert.Contains(t, out, "2 results")
}

func TestFormatTable_Empty(t *testing.T) {
	var buf bytes.Buffer
	FormatTable(nil, &buf)
	assert.Equal(t, "No results found.\n", buf.String())
}

func TestFormatSummary(t *testing.T) {
	var buf bytes.Buffer
	FormatSummary(Result{
		Keyword:  "avengers",
		Target:   50,
		Pages:    5,
		Requests: 3,
		Movies:   make([]types.Movie, 20),
		Err:      &SourceError{Page: 3, Message: "Too many results."},
	}, &buf)

	assert.Equal(t,
		"acquired 20 of 50 records for \"avengers\" in 3/5 requests (stopped: page 3: source error: Too many results.)\n",
		buf.String())
}

func TestFormatJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, FormatJSON([]types.Movie{
		{Title: "Hulk", Year: "2003", Type: "movie", IMDbID: "tt0286716", HasTitle: true},
	}, &buf))

	var decoded []map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "Hulk", decoded[0]["Title"])
	assert.Equal(t, "tt0286716", decoded[0]["imdbID"])
	assert.NotContains(t, decoded[0], "HasTitle")

	buf.Reset()
	require.NoError(t, FormatJSON(nil, &buf))
	assert.Equal(t, "[]\n", buf.String())
}
