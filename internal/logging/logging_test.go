// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package logging

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/pdiddy/movie-grid/pkg/types"
)

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		cfg   types.LogConfig
		debug bool
	}{
		{name: "production info", cfg: types.LogConfig{Level: "info"}, debug: false},
		{name: "development debug", cfg: types.LogConfig{Level: "debug", Development: true}, debug: true},
		{name: "warn", cfg: types.LogConfig{Level: "warn"}, debug: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg)
			require.NoError(t, err)
			assert.Equal(t, tt.debug, logger.Core().Enabled(zap.DebugLevel))
			assert.True(t, logger.Core().Enabled(zap.ErrorLevel))
		})
	}
}

func TestNew_BadLevel(t *testing.T) {
	_, err := New(types.LogConfig{Level: "loud"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `"loud"`)
}
