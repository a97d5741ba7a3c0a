package config

import (
	"flag"
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		expected    *Config
		name        string
		args        []string
		expectPanic bool
	}{
		{name: "all flags", args: []string{"cmd",
			"-a", "127.0.0.1:9090", "-g", "127.0.0.1:9091", "-k", "postgres", "-d", "db",
			"-s", "secret", "-x", "s3://keys/jwt", "-t", "5", "-p", "/api/login, /health",
			"-l", "debug", "-hasher", "argon2id", "-seed-identifier", "a@x.com", "-seed-secret", "pw",
			"-r", "us-west-1", "-e", "http://endpoint", "-u", "user", "-w", "password",
		}, expectPanic: false,
			expected: &Config{
				HTTPAddr:       "127.0.0.1:9090",
				GRPCAddr:       "127.0.0.1:9091",
				DatabaseDriver: "postgres",
				DatabaseDSN:    "db",
				SecretKey:      "secret",
				SecretKeyURI:   "s3://keys/jwt",
				TokenLifetime:  5 * time.Minute,
				PublicPaths:    []string{"/api/login", "/health"},
				LogLevel:       "debug",
				PasswordHasher: "argon2id",
				SeedIdentifier: "a@x.com",
				SeedSecret:     "pw",
				S3Region:       "us-west-1",
				S3BaseEndpoint: "http://endpoint",
				S3AccessKey:    "user",
				S3SecretKey:    "password",
			}},
		{name: "bad lifetime", args: []string{"cmd", "-t", "soon"}, expectPanic: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flag.CommandLine = flag.NewFlagSet(os.Args[0], flag.PanicOnError)

			os.Args = tt.args

			config := &Config{}

			if !tt.expectPanic {
				require.NotPanics(t, func() { parseFlags(config) })
				assert.Empty(t, cmp.Diff(config, tt.expected))
			} else {
				require.Panics(t, func() { parseFlags(config) })
			}
		})
	}
}

func TestParseFlags_KeepsDefaultsWhenAbsent(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })
	os.Args = []string{"cmd", "-unrelated", "x"}

	var c Config
	c.LoadDefaults()
	parseFlags(&c)

	var want Config
	want.LoadDefaults()
	assert.Empty(t, cmp.Diff(&want, &c))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, splitList(" a ,, b ,"))
	assert.Empty(t, splitList(""))
}
