// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package web

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"

	"go.uber.org/zap"
)

// gridCDN is the origin the page loads AG Grid from.
const gridCDN = "https://cdn.jsdelivr.net"

// gridScript is the AG Grid community bundle.
const gridScript = gridCDN + "/npm/ag-grid-community@33.0.3/dist/ag-grid-community.min.js"

// PageData is the template data for the grid page.
type PageData struct {
	Title      string
	Version    string
	GridScript string
}

// Renderer holds the parsed page templates.
type Renderer struct {
	index *template.Template
}

// NewRenderer parses the templates in templateFS.
func NewRenderer(templateFS fs.FS) (*Renderer, error) {
	t, err := template.ParseFS(templateFS, "index.html")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &Renderer{index: t}, nil
}

// renderIndex writes the grid page. The template is executed into a buffer
// so that a failure still yields a clean 500.
func (r *Renderer) renderIndex(w http.ResponseWriter, data PageData) error {
	var buf bytes.Buffer
	if err := r.index.Execute(&buf, data); err != nil {
		return fmt.Errorf("executing index template: %w", err)
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	return nil
}

// APIError is the error payload of every JSON endpoint.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Status  int    `json:"status"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// writeError renders err as {"error": {...}}. Errors that are not an
// *APIError become a 500 whose detail is logged but not returned.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		logger.Error("internal error", zap.Error(err))
		apiErr = &APIError{Code: "internal", Status: http.StatusInternalServerError, Message: "internal server error"}
	}
	renderJSON(w, apiErr.Status, map[string]*APIError{"error": apiErr})
}

// renderJSON writes data as a JSON response.
func renderJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}
