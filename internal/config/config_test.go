// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/movie-grid/internal/secrets"
	"github.com/pdiddy/movie-grid/pkg/types"
)

func newViper() *viper.Viper {
	v := viper.New()
	SetDefaults(v)
	BindEnv(v)
	return v
}

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load(newViper(), secrets.Secrets{secrets.OMDbAPIKey: "from-file"})
	require.NoError(t, err)

	assert.Equal(t, DefaultBaseURL, cfg.Source.BaseURL)
	assert.Equal(t, "from-file", cfg.Source.APIKey)
	assert.Equal(t, "avengers", cfg.Source.Keyword)
	assert.Equal(t, 50, cfg.Source.TargetRecords)
	assert.Equal(t, 30*time.Second, cfg.Source.Timeout)
	assert.Equal(t, DefaultUserAgent, cfg.Source.UserAgent)
	assert.Zero(t, cfg.Source.PageDelay)
	assert.Zero(t, cfg.Source.MaxRetries)
	assert.Equal(t, 10, cfg.Grid.PageSize)
	assert.Equal(t, []int{10, 25, 50}, cfg.Grid.PageSizeOptions)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.False(t, cfg.Log.Development)
}

func TestLoad_ConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movie-grid.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
source:
  api_key: from-config
  keyword: batman
  target_records: 25
  timeout: 5s
  page_delay: 250ms
grid:
  page_size: 25
log:
  level: debug
`), 0o644))

	v := newViper()
	v.SetConfigFile(path)
	require.NoError(t, v.ReadInConfig())

	cfg, err := Load(v, secrets.Secrets{secrets.OMDbAPIKey: "from-file"})
	require.NoError(t, err)

	assert.Equal(t, "from-config", cfg.Source.APIKey, "explicit configuration wins over the secrets directory")
	assert.Equal(t, "batman", cfg.Source.Keyword)
	assert.Equal(t, 25, cfg.Source.TargetRecords)
	assert.Equal(t, 5*time.Second, cfg.Source.Timeout)
	assert.Equal(t, 250*time.Millisecond, cfg.Source.PageDelay)
	assert.Equal(t, 25, cfg.Grid.PageSize)
	assert.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_EnvironmentOverrides(t *testing.T) {
	t.Setenv("MOVIE_GRID_SOURCE_API_KEY", "from-env")
	t.Setenv("MOVIE_GRID_SOURCE_KEYWORD", "hulk")
	t.Setenv("MOVIE_GRID_SOURCE_MAX_RETRIES", "3")
	t.Setenv("MOVIE_GRID_SERVER_ADDR", "0.0.0.0:9000")

	cfg, err := Load(newViper(), nil)
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Source.APIKey)
	assert.Equal(t, "hulk", cfg.Source.Keyword)
	assert.Equal(t, 3, cfg.Source.MaxRetries)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
}

func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		set     map[string]any
		secrets secrets.Secrets
		wantErr string
	}{
		{
			name:    "missing api key",
			wantErr: "source.api_key is required",
		},
		{
			name:    "blank api key with no secret",
			set:     map[string]any{"source.api_key": "   "},
			wantErr: "source.api_key is required",
		},
		{
			name:    "zero target",
			set:     map[string]any{"source.target_records": 0},
			secrets: secrets.Secrets{secrets.OMDbAPIKey: "k"},
			wantErr: "source.target_records must be >= 1",
		},
		{
			name:    "bad base url",
			set:     map[string]any{"source.base_url": "not a url"},
			secrets: secrets.Secrets{secrets.OMDbAPIKey: "k"},
			wantErr: "source.base_url",
		},
		{
			name:    "negative timeout",
			set:     map[string]any{"source.timeout": -time.Second},
			secrets: secrets.Secrets{secrets.OMDbAPIKey: "k"},
			wantErr: "source.timeout must be >= 0",
		},
		{
			name:    "unknown log level",
			set:     map[string]any{"log.level": "loud"},
			secrets: secrets.Secrets{secrets.OMDbAPIKey: "k"},
			wantErr: "log.level must be one of [debug info warn error]",
		},
		{
			name:    "page size outside options",
			set:     map[string]any{"grid.page_size": 20},
			secrets: secrets.Secrets{secrets.OMDbAPIKey: "k"},
			wantErr: "grid.page_size 20 must be one of grid.page_size_options",
		},
		{
			name:    "address without port",
			set:     map[string]any{"server.addr": "localhost"},
			secrets: secrets.Secrets{secrets.OMDbAPIKey: "k"},
			wantErr: "server.addr",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := newViper()
			for k, val := range tt.set {
				v.Set(k, val)
			}
			_, err := Load(v, tt.secrets)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestValidate_ReportsEveryField(t *testing.T) {
	err := Validate(types.Config{})
	require.Error(t, err)
	for _, key := range []string{"source.base_url", "source.api_key", "source.keyword", "grid.page_size", "server.addr"} {
		assert.Contains(t, err.Error(), key)
	}
}
