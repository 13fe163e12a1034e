// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"encoding/json"
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pdiddy/movie-grid/internal/grid"
)

const maxSearchBody = 64 << 10

// searchRequest is the JSON body of POST /api/search.
type searchRequest struct {
	Query string `json:"query"`
}

// actionResponse is returned by the per-row action.
type actionResponse struct {
	Message string `json:"message"`
}

// statusResponse reports whether acquisition has finished and how it went.
type statusResponse struct {
	Ready   bool          `json:"ready"`
	Outcome *grid.Outcome `json:"outcome,omitempty"`
}

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	data := PageData{
		Title:      "Movie Grid",
		Version:    s.version,
		GridScript: gridScript,
	}
	if err := s.renderer.renderIndex(w, data); err != nil {
		writeError(w, s.logger, err)
	}
}

func (s *Server) handleGridOptions(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, s.options)
}

func (s *Server) handleRows(w http.ResponseWriter, r *http.Request) {
	renderJSON(w, http.StatusOK, s.state.View())
}

// handleSearch accepts {"query": "..."} or a form-encoded query field and
// replaces the view with the filtered baseline.
func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query, err := readQuery(w, r)
	if err != nil {
		writeError(w, s.logger, err)
		return
	}

	view := s.state.Search(query)
	s.logger.Debug("search applied",
		zap.String("query", query),
		zap.Int("rows", len(view.Rows)),
		zap.Bool("ready", view.Ready),
	)
	renderJSON(w, http.StatusOK, view)
}

func readQuery(w http.ResponseWriter, r *http.Request) (string, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxSearchBody)

	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	switch mediaType {
	case "application/json":
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			return "", &APIError{Code: "invalid_request", Status: http.StatusBadRequest, Message: "malformed JSON body: " + err.Error()}
		}
		return req.Query, nil
	case "application/x-www-form-urlencoded", "":
		if err := r.ParseForm(); err != nil {
			return "", &APIError{Code: "invalid_request", Status: http.StatusBadRequest, Message: "malformed form body: " + err.Error()}
		}
		return r.PostForm.Get("query"), nil
	default:
		return "", &APIError{Code: "unsupported_media_type", Status: http.StatusUnsupportedMediaType, Message: "unsupported content type " + mediaType}
	}
}

// handleRowAction is the per-row button. It only acknowledges the click.
func (s *Server) handleRowAction(w http.ResponseWriter, r *http.Request) {
	s.logger.Info("row action",
		zap.String("imdb_id", chi.URLParam(r, "imdbID")),
		zap.String("request_id", middleware.GetReqID(r.Context())),
	)
	renderJSON(w, http.StatusOK, actionResponse{Message: "clicked"})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	outcome, ok := s.state.Outcome()
	resp := statusResponse{Ready: ok}
	if ok {
		resp.Outcome = &outcome
	}
	renderJSON(w, http.StatusOK, resp)
}
