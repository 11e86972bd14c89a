package config

import (
	"os"
	"testing"
	"time"

	"github.com/dmitrijs2005/landgrab/internal/client/models"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
		preset      time.Duration
	}{
		{
			name: "all flags",
			args: []string{"cmd", "-r", "http://127.0.0.1:8545", "-k", "key.json", "-d", "x.db",
				"-g", "http://geo", "-i", "10", "-m", ":9100", "-l", "debug", "-p", "-33.86,151.2"},
			expected: &Config{
				RPCURL: "http://127.0.0.1:8545", KeystorePath: "key.json", DBPath: "x.db",
				GeocoderURL: "http://geo", OnlineCheckInterval: 10 * time.Second, MetricsAddr: ":9100",
				LogLevel: "debug", Position: &models.Coordinates{Lat: -33.86, Lng: 151.2},
			},
		},
		{
			name:     "unknown flags ignored",
			args:     []string{"cmd", "-x", "1", "-i", "4", "-config", "file.json"},
			expected: &Config{OnlineCheckInterval: 4 * time.Second},
		},
		{
			name:     "interval kept when flag absent",
			args:     []string{"cmd", "-l", "warn"},
			preset:   500 * time.Millisecond,
			expected: &Config{OnlineCheckInterval: 500 * time.Millisecond, LogLevel: "warn"},
		},
		{name: "incorrect check interval", args: []string{"cmd", "-i", "abc"}, expectPanic: true},
		{name: "incorrect position", args: []string{"cmd", "-p", "north"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })
			os.Args = tt.args

			config := &Config{OnlineCheckInterval: tt.preset}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(tt.expected, config))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}
