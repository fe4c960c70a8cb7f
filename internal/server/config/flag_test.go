package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{
			name: "all flags set",
			args: []string{"cmd", "-d", "db", "-s", "secret", "-v", "60", "-r", "15"},
			expected: &Config{
				DatabaseDSN:                       "db",
				SecretKey:                         "secret",
				VerificationTokenValidityDuration: 60 * time.Minute,
				ResetTokenValidityDuration:        15 * time.Minute,
			},
		},
		{
			name:        "non-numeric duration panics",
			args:        []string{"cmd", "-v", "soon"},
			expectPanic: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			origArgs := os.Args
			t.Cleanup(func() { os.Args = origArgs })

			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)
			os.Args = tt.args

			config := &Config{}

			if tt.expectPanic {
				require.Panics(t, func() { parseFlags(config) })
				return
			}

			require.NotPanics(t, func() { parseFlags(config) })
			assert.Equal(t, tt.expected, config)
		})
	}
}
