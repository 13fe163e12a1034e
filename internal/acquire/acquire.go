// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package acquire runs the paginated search that builds the baseline result
// set. Pages are requested one at a time; the first failed page halts the
// run and the records gathered so far are kept.
package acquire

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/pdiddy/movie-grid/internal/metrics"
	"github.com/pdiddy/movie-grid/pkg/types"
)

// PageFetcher retrieves one page of search results. The OMDb client
// implements it; tests substitute fakes.
type PageFetcher interface {
	// PageSize is the number of results the source returns per full page.
	// It is a property of the source, not something callers choose.
	PageSize() int

	// FetchPage requests the 1-based page for keyword. A non-nil error means
	// the request or decode failed; an error payload from the source is
	// reported through SearchPage.HasResults and SearchPage.Error instead.
	FetchPage(ctx context.Context, keyword string, page int) (types.SearchPage, error)
}

// Result holds the outcome of one acquisition run.
type Result struct {
	// RunID correlates the log lines of one run.
	RunID string

	// Keyword and Target echo the run's parameters.
	Keyword string
	Target  int

	// Pages is the number of pages planned: ceil(Target / page size).
	Pages int

	// Requests is the number of page requests actually issued.
	Requests int

	// Movies holds at most Target records in page order.
	Movies []types.Movie

	// Err is the reason the run stopped early: a *SourceError, a
	// *TransportError, or a cancellation error. Nil when every planned page
	// was fetched.
	Err error

	// Duration is the wall time of the run.
	Duration time.Duration
}

// Complete reports whether every planned page was fetched.
func (r Result) Complete() bool {
	return r.Err == nil
}

// Pipeline fetches pages sequentially from Fetcher.
type Pipeline struct {
	Fetcher PageFetcher
	Logger  *zap.Logger
	Metrics *metrics.Metrics
}

// PageCount returns ceil(target / pageSize). A non-positive target needs no
// pages; a page size below 1 is treated as 1.
func PageCount(target, pageSize int) int {
	if target <= 0 {
		return 0
	}
	if pageSize < 1 {
		pageSize = 1
	}
	return (target + pageSize - 1) / pageSize
}

// Run requests pages 1..PageCount(cfg.TargetRecords, PageSize) for
// cfg.Keyword, waiting for each response before issuing the next request and
// sleeping cfg.PageDelay between them. It never returns an error: a failed
// page ends the run and the reason is kept in Result.Err alongside the
// records accumulated before it. The records are truncated to
// cfg.TargetRecords.
func (p *Pipeline) Run(ctx context.Context, cfg types.SourceConfig) Result {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	start := time.Now()
	res := Result{
		RunID:   uuid.NewString(),
		Keyword: cfg.Keyword,
		Target:  cfg.TargetRecords,
		Pages:   PageCount(cfg.TargetRecords, p.Fetcher.PageSize()),
	}
	logger = logger.With(zap.String("run_id", res.RunID))
	logger.Info("acquisition started",
		zap.String("keyword", cfg.Keyword),
		zap.Int("target", cfg.TargetRecords),
		zap.Int("pages", res.Pages),
	)

	var all []types.Movie
	for page := 1; page <= res.Pages; page++ {
		if page > 1 && cfg.PageDelay > 0 {
			select {
			case <-ctx.Done():
			case <-time.After(cfg.PageDelay):
			}
		}
		if err := ctx.Err(); err != nil {
			res.Err = fmt.Errorf("acquisition cancelled before page %d: %w", page, err)
			break
		}

		res.Requests++
		sp, err := p.Fetcher.FetchPage(ctx, cfg.Keyword, page)
		if err != nil {
			p.Metrics.PageFetched(metrics.OutcomeTransportError)
			res.Err = &TransportError{Page: page, Err: err}
			break
		}
		if !sp.HasResults {
			p.Metrics.PageFetched(metrics.OutcomeSourceError)
			res.Err = &SourceError{Page: page, Message: sp.Error}
			break
		}

		p.Metrics.PageFetched(metrics.OutcomeOK)
		all = append(all, sp.Results...)
		logger.Debug("page fetched",
			zap.Int("page", page),
			zap.Int("results", len(sp.Results)),
			zap.Int("accumulated", len(all)),
		)
	}

	if len(all) > cfg.TargetRecords {
		all = all[:max(cfg.TargetRecords, 0)]
	}
	res.Movies = slices.Clip(all)
	res.Duration = time.Since(start)

	if res.Err != nil {
		logger.Warn("acquisition halted",
			zap.Error(res.Err),
			zap.Int("requests", res.Requests),
			zap.Int("kept", len(res.Movies)),
			zap.Bool("source_error", IsSourceError(res.Err)),
		)
	}
	logger.Info("acquisition finished",
		zap.Int("requests", res.Requests),
		zap.Int("records", len(res.Movies)),
		zap.Duration("duration", res.Duration),
	)
	return res
}

// IsSourceError reports whether err is or wraps a *SourceError.
func IsSourceError(err error) bool {
	var se *SourceError
	return errors.As(err, &se)
}

// IsTransportError reports whether err is or wraps a *TransportError.
func IsTransportError(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}
