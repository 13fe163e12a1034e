// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package grid

import (
	"fmt"
	"slices"

	"github.com/pdiddy/movie-grid/pkg/types"
)

// Grid filter types understood by the widget.
const (
	TextFilter   = "agTextColumnFilter"
	NumberFilter = "agNumberColumnFilter"
)

// ActionRenderer names the per-row button component registered by the page script.
const ActionRenderer = "actionButton"

// ColumnDef maps one grid column to a Movie field.
type ColumnDef struct {
	Field              string            `json:"field"`
	HeaderName         string            `json:"headerName,omitempty"`
	Filter             string            `json:"filter,omitempty"`
	CellRenderer       string            `json:"cellRenderer,omitempty"`
	CellRendererParams map[string]string `json:"cellRendererParams,omitempty"`
	Flex               int               `json:"flex,omitempty"`
}

// DefaultColDef holds the behavior shared by every column.
type DefaultColDef struct {
	Filter    bool `json:"filter"`
	Sortable  bool `json:"sortable"`
	Resizable bool `json:"resizable"`
}

// RowSelection configures row selection.
type RowSelection struct {
	Mode           string `json:"mode"`
	HeaderCheckbox bool   `json:"headerCheckbox"`
}

// Options is the grid configuration sent to the page as JSON.
type Options struct {
	ColumnDefs                 []ColumnDef   `json:"columnDefs"`
	DefaultColDef              DefaultColDef `json:"defaultColDef"`
	Pagination                 bool          `json:"pagination"`
	PaginationPageSize         int           `json:"paginationPageSize"`
	PaginationPageSizeSelector []int         `json:"paginationPageSizeSelector"`
	RowSelection               RowSelection  `json:"rowSelection"`
}

// Columns returns the movie columns and the action column.
func Columns() []ColumnDef {
	return []ColumnDef{
		{Field: "Title", HeaderName: "Title", Filter: TextFilter},
		{Field: "Year", HeaderName: "Year", Filter: NumberFilter},
		{Field: "Type", HeaderName: "Type", Filter: TextFilter},
		{Field: "imdbID", HeaderName: "IMDB ID", Filter: TextFilter},
		{
			Field:              "button",
			CellRenderer:       ActionRenderer,
			CellRendererParams: map[string]string{"label": "Push Me!"},
			Flex:               1,
		},
	}
}

// NewOptions builds the grid options for cfg. The page size must be one of
// the selector options.
func NewOptions(cfg types.GridConfig) (Options, error) {
	if cfg.PageSize < 1 {
		return Options{}, fmt.Errorf("grid page size must be positive, got %d", cfg.PageSize)
	}
	if !slices.Contains(cfg.PageSizeOptions, cfg.PageSize) {
		return Options{}, fmt.Errorf("grid page size %d is not one of the page size options %v", cfg.PageSize, cfg.PageSizeOptions)
	}

	selector := slices.Clone(cfg.PageSizeOptions)
	slices.Sort(selector)
	selector = slices.Compact(selector)

	return Options{
		ColumnDefs:                 Columns(),
		DefaultColDef:              DefaultColDef{Filter: true, Sortable: true, Resizable: true},
		Pagination:                 true,
		PaginationPageSize:         cfg.PageSize,
		PaginationPageSizeSelector: selector,
		RowSelection:               RowSelection{Mode: "multiRow", HeaderCheckbox: true},
	}, nil
}
