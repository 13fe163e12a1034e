// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the per-request timeout applied by the HTTP client.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "movie-grid/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// SourceConfig holds settings for acquiring results from the search source.
type SourceConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// BaseURL is the OMDb endpoint (default "http://www.omdbapi.com/").
	BaseURL string `json:"base_url" yaml:"base_url" mapstructure:"base_url" validate:"required,url"`

	// APIKey is the OMDb credential sent as the apikey parameter.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key" validate:"required"`

	// Keyword is the search term sent as the s parameter (default "avengers").
	Keyword string `json:"keyword" yaml:"keyword" mapstructure:"keyword" validate:"required"`

	// TargetRecords is the number of records to keep after acquisition (default 50).
	TargetRecords int `json:"target_records" yaml:"target_records" mapstructure:"target_records" validate:"gte=1"`

	// PageDelay is the delay between consecutive page requests (default 0).
	PageDelay time.Duration `json:"page_delay" yaml:"page_delay" mapstructure:"page_delay" validate:"gte=0"`

	// MaxRetries is the number of 429 retries per page. Zero disables retries,
	// so any failed page halts acquisition immediately.
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries" validate:"gte=0"`
}

// GridConfig holds the presentation settings handed to the data grid.
type GridConfig struct {
	// PageSize is the number of rows per grid page (default 10).
	PageSize int `json:"page_size" yaml:"page_size" mapstructure:"page_size" validate:"gte=1"`

	// PageSizeOptions are the page sizes offered by the grid's selector
	// (default [10, 25, 50]). PageSize must be one of them.
	PageSizeOptions []int `json:"page_size_options" yaml:"page_size_options" mapstructure:"page_size_options" validate:"required,min=1,dive,gte=1"`
}

// ServerConfig holds settings for the web surface.
type ServerConfig struct {
	// Addr is the listen address (default "127.0.0.1:8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr" validate:"required,hostname_port"`

	// AllowedOrigins enables CORS on /api for the listed origins. Empty
	// (the default) serves the API same-origin only.
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty" mapstructure:"allowed_origins" validate:"dive,required"`
}

// LogConfig selects the logger's level and encoding.
type LogConfig struct {
	// Level is one of debug, info, warn, error (default info).
	Level string `json:"level" yaml:"level" mapstructure:"level" validate:"oneof=debug info warn error"`

	// Development switches to the human-readable console encoder.
	Development bool `json:"development" yaml:"development" mapstructure:"development"`
}

// Config groups the configuration of every component.
type Config struct {
	Source SourceConfig `json:"source" yaml:"source" mapstructure:"source"`
	Grid   GridConfig   `json:"grid" yaml:"grid" mapstructure:"grid"`
	Server ServerConfig `json:"server" yaml:"server" mapstructure:"server"`
	Log    LogConfig    `json:"log" yaml:"log" mapstructure:"log"`
}
