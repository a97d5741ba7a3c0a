package flagx

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFilterArgs(t *testing.T) {
	serverFlags := []string{"-a", "-g", "-d", "-seed-identifier"}

	tests := []struct {
		name    string
		args    []string
		allowed []string
		want    []string
	}{
		{
			name:    "separate value",
			args:    []string{"-a", ":8080", "-c", "conf.json"},
			allowed: serverFlags,
			want:    []string{"-a", ":8080"},
		},
		{
			name:    "equals form",
			args:    []string{"-d=file:bank.db", "-z=1"},
			allowed: serverFlags,
			want:    []string{"-d=file:bank.db"},
		},
		{
			name:    "double dash matches single dash name",
			args:    []string{"--seed-identifier", "admin@bank.test", "--g=:9090"},
			allowed: serverFlags,
			want:    []string{"--seed-identifier", "admin@bank.test", "--g=:9090"},
		},
		{
			name:    "unknown flags and positionals dropped",
			args:    []string{"-x", "1", "positional", "--y=2"},
			allowed: serverFlags,
			want:    []string{},
		},
		{
			name:    "flag without value at end",
			args:    []string{"-a"},
			allowed: serverFlags,
			want:    []string{"-a"},
		},
		{
			name:    "next flag is not taken as value",
			args:    []string{"-a", "-g", ":9090"},
			allowed: serverFlags,
			want:    []string{"-a", "-g", ":9090"},
		},
		{
			name:    "repeated flag keeps order",
			args:    []string{"-a", ":1", "-a", ":2"},
			allowed: serverFlags,
			want:    []string{"-a", ":1", "-a", ":2"},
		},
		{
			name:    "empty",
			args:    nil,
			allowed: serverFlags,
			want:    []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowed)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}

func TestConfigPath(t *testing.T) {
	t.Run("short", func(t *testing.T) {
		assert.Equal(t, "/etc/bank/short.json", ConfigPath([]string{"-c", "/etc/bank/short.json", "-a", ":8080"}))
	})

	t.Run("long", func(t *testing.T) {
		assert.Equal(t, "/etc/bank/long.json", ConfigPath([]string{"-config", "/etc/bank/long.json"}))
	})

	t.Run("double dash with equals", func(t *testing.T) {
		assert.Equal(t, "cfg.json", ConfigPath([]string{"--config=cfg.json"}))
	})

	t.Run("absent", func(t *testing.T) {
		assert.Empty(t, ConfigPath([]string{"-a", ":8080", "-s", "secret"}))
	})

	t.Run("last wins", func(t *testing.T) {
		assert.Equal(t, "2.json", ConfigPath([]string{"-c", "1.json", "-config", "2.json"}))
	})
}
