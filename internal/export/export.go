// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package export writes an acquired result set to disk as YAML, JSON, or a
// SQLite database.
package export

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/movie-grid/pkg/types"
)

// Format names an export encoding.
type Format string

const (
	FormatYAML   Format = "yaml"
	FormatJSON   Format = "json"
	FormatSQLite Format = "sqlite"
)

// Formats lists the accepted --format values.
var Formats = []Format{FormatYAML, FormatJSON, FormatSQLite}

// ParseFormat maps a flag value to a Format. Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	switch f {
	case FormatYAML, FormatJSON, FormatSQLite:
		return f, nil
	}
	return "", fmt.Errorf("unknown export format %q (want yaml, json, or sqlite)", s)
}

// Write dispatches to the writer for f.
func Write(ctx context.Context, path string, f Format, movies []types.Movie) error {
	switch f {
	case FormatYAML:
		return WriteYAML(path, movies)
	case FormatJSON:
		return WriteJSON(path, movies)
	case FormatSQLite:
		return WriteSQLite(ctx, path, movies)
	}
	return fmt.Errorf("unknown export format %q", f)
}

// WriteYAML writes movies as a YAML sequence. An empty set is written as [].
func WriteYAML(path string, movies []types.Movie) error {
	data, err := yaml.Marshal(nonNil(movies))
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	return writeFile(path, data)
}

// WriteJSON writes movies as an indented JSON array.
func WriteJSON(path string, movies []types.Movie) error {
	data, err := json.MarshalIndent(nonNil(movies), "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling JSON: %w", err)
	}
	return writeFile(path, append(data, '\n'))
}

func writeFile(path string, data []byte) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating export directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	return nil
}

func nonNil(movies []types.Movie) []types.Movie {
	if movies == nil {
		return []types.Movie{}
	}
	return movies
}
