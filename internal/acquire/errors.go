// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package acquire

import "fmt"

// SourceError reports a page whose response carried an error payload instead
// of results. Acquisition stops at that page and keeps what it already had.
type SourceError struct {
	Page    int
	Message string
}

func (e *SourceError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("page %d: source returned no results", e.Page)
	}
	return fmt.Sprintf("page %d: source error: %s", e.Page, e.Message)
}

// TransportError reports a page whose request or decode step failed.
// Acquisition stops at that page and keeps what it already had.
type TransportError struct {
	Page int
	Err  error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("page %d: %v", e.Page, e.Err)
}

func (e *TransportError) Unwrap() error { return e.Err }
