// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package config registers movie-grid's defaults on a viper instance and
// decodes and validates the merged configuration.
package config

import (
	"errors"
	"fmt"
	"reflect"
	"slices"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/pdiddy/movie-grid/internal/secrets"
	"github.com/pdiddy/movie-grid/pkg/types"
)

// EnvPrefix is the prefix of environment overrides, e.g.
// MOVIE_GRID_SOURCE_KEYWORD for source.keyword.
const EnvPrefix = "MOVIE_GRID"

// Defaults mirror the values the grid page was first built around.
const (
	DefaultBaseURL       = "http://www.omdbapi.com/"
	DefaultKeyword       = "avengers"
	DefaultTargetRecords = 50
	DefaultTimeout       = 30 * time.Second
	DefaultUserAgent     = "movie-grid/0.1"
	DefaultGridPageSize  = 10
	DefaultAddr          = "127.0.0.1:8080"
	DefaultLogLevel      = "info"
)

// DefaultPageSizeOptions are the page sizes offered by the grid's selector.
var DefaultPageSizeOptions = []int{10, 25, 50}

// SetDefaults registers every key with its default so that environment
// variables are picked up for all of them.
func SetDefaults(v *viper.Viper) {
	v.SetDefault("source.base_url", DefaultBaseURL)
	v.SetDefault("source.api_key", "")
	v.SetDefault("source.keyword", DefaultKeyword)
	v.SetDefault("source.target_records", DefaultTargetRecords)
	v.SetDefault("source.timeout", DefaultTimeout)
	v.SetDefault("source.user_agent", DefaultUserAgent)
	v.SetDefault("source.page_delay", time.Duration(0))
	v.SetDefault("source.max_retries", 0)

	v.SetDefault("grid.page_size", DefaultGridPageSize)
	v.SetDefault("grid.page_size_options", DefaultPageSizeOptions)

	v.SetDefault("server.addr", DefaultAddr)
	v.SetDefault("server.allowed_origins", []string{})

	v.SetDefault("log.level", DefaultLogLevel)
	v.SetDefault("log.development", false)
}

// BindEnv makes v read MOVIE_GRID_* variables, mapping "." in keys to "_".
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
}

// Load decodes v into a Config, fills the API key from s when the
// configuration leaves it empty, and validates the result.
func Load(v *viper.Viper, s secrets.Secrets) (types.Config, error) {
	var cfg types.Config
	if err := v.Unmarshal(&cfg); err != nil {
		return types.Config{}, fmt.Errorf("decoding configuration: %w", err)
	}

	cfg.Source.APIKey = s.Or(strings.TrimSpace(cfg.Source.APIKey), secrets.OMDbAPIKey)

	if err := Validate(cfg); err != nil {
		return types.Config{}, err
	}
	return cfg, nil
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	// Report fields by their configuration key rather than the Go name.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("mapstructure"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// Validate checks field constraints and the cross-field rule that the grid
// page size is one of the selector options.
func Validate(cfg types.Config) error {
	if err := validate.Struct(cfg); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			msgs := make([]string, 0, len(verrs))
			for _, fe := range verrs {
				msgs = append(msgs, describe(fe))
			}
			return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
		}
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if !slices.Contains(cfg.Grid.PageSizeOptions, cfg.Grid.PageSize) {
		return fmt.Errorf("invalid configuration: grid.page_size %d must be one of grid.page_size_options %v",
			cfg.Grid.PageSize, cfg.Grid.PageSizeOptions)
	}
	return nil
}

// describe renders one validation failure using the dotted config key.
func describe(fe validator.FieldError) string {
	key := strings.ToLower(fe.Namespace())
	if _, rest, ok := strings.Cut(key, "."); ok {
		key = rest
	}
	// The squashed HTTP settings live directly under source.
	key = strings.Replace(key, "httpconfig.", "", 1)

	switch fe.Tag() {
	case "required":
		if key == "source.api_key" {
			return "source.api_key is required (set it in the config file, MOVIE_GRID_SOURCE_API_KEY, or .secrets/omdb-api-key)"
		}
		return key + " is required"
	case "oneof":
		return fmt.Sprintf("%s must be one of [%s]", key, fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be >= %s", key, fe.Param())
	default:
		return fmt.Sprintf("%s failed %q validation", key, fe.Tag())
	}
}
