// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package grid holds the two result snapshots shown by the data grid and the
// options that configure the grid widget.
//
// The baseline is written once, when acquisition finishes, and never changes
// afterwards. The view is derived from the baseline by the title filter and
// is replaced wholesale on every search.
package grid

import (
	"errors"
	"sync"
	"time"

	"github.com/pdiddy/movie-grid/internal/acquire"
	"github.com/pdiddy/movie-grid/internal/filter"
	"github.com/pdiddy/movie-grid/internal/metrics"
	"github.com/pdiddy/movie-grid/pkg/types"
)

// ErrAlreadyPublished is returned when a second baseline is published.
var ErrAlreadyPublished = errors.New("baseline already published")

// View is the set of rows currently handed to the grid.
type View struct {
	Rows  []types.Movie `json:"rows"`
	Query string        `json:"query"`
	// Ready is false until the baseline has been published.
	Ready bool `json:"ready"`
}

// Outcome summarizes the acquisition run that produced the baseline.
type Outcome struct {
	RunID    string        `json:"run_id"`
	Keyword  string        `json:"keyword"`
	Target   int           `json:"target"`
	Pages    int           `json:"pages"`
	Requests int           `json:"requests"`
	Records  int           `json:"records"`
	Complete bool          `json:"complete"`
	Error    string        `json:"error,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

// OutcomeOf converts an acquisition result into its summary.
func OutcomeOf(res acquire.Result) Outcome {
	o := Outcome{
		RunID:    res.RunID,
		Keyword:  res.Keyword,
		Target:   res.Target,
		Pages:    res.Pages,
		Requests: res.Requests,
		Records:  len(res.Movies),
		Complete: res.Complete(),
		Duration: res.Duration,
	}
	if res.Err != nil {
		o.Error = res.Err.Error()
	}
	return o
}

// State owns the baseline and the view. It is safe for concurrent use.
type State struct {
	mu        sync.RWMutex
	baseline  []types.Movie
	view      View
	outcome   Outcome
	published bool

	metrics *metrics.Metrics
}

// NewState returns an empty, unpublished State. m may be nil.
func NewState(m *metrics.Metrics) *State {
	return &State{metrics: m}
}

// Publish stores res.Movies as the baseline and as the initial view.
// It succeeds once; later calls return ErrAlreadyPublished and change nothing.
func (s *State) Publish(res acquire.Result) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.published {
		return ErrAlreadyPublished
	}
	s.baseline = res.Movies
	s.view = View{Rows: s.baseline, Ready: true}
	s.outcome = OutcomeOf(res)
	s.published = true
	s.metrics.BaselinePublished(len(s.baseline))
	return nil
}

// Search replaces the view with the baseline rows whose title contains
// query. A blank query restores the full baseline. Every search starts from
// the baseline, never from the previous view.
func (s *State) Search(query string) View {
	s.mu.Lock()
	rows := filter.ByTitle(s.baseline, query)
	s.view = View{Rows: rows, Query: query, Ready: s.published}
	next := s.view
	s.mu.Unlock()

	s.metrics.FilterApplied(len(rows))
	return next.normalized()
}

// Reset restores the full baseline as the view.
func (s *State) Reset() View {
	return s.Search("")
}

// View returns the current view.
func (s *State) View() View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.normalized()
}

// normalized replaces nil rows with an empty slice so the view encodes as [].
func (v View) normalized() View {
	if v.Rows == nil {
		v.Rows = []types.Movie{}
	}
	return v
}

// Baseline returns the published baseline. Callers must not modify it.
func (s *State) Baseline() []types.Movie {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.baseline
}

// Outcome returns the summary of the acquisition run and whether the
// baseline has been published.
func (s *State) Outcome() (Outcome, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.outcome, s.published
}
