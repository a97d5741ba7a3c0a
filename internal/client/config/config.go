package config

import "time"

// Config holds runtime settings for the bankaccounts CLI.
//
// Fields:
//   - ServerURL: base URL of the bankaccounts HTTP API.
//   - RequestTimeout: upper bound for a single API call.
//   - SessionDB: path of the local SQLite file holding the current session.
type Config struct {
	ServerURL      string
	RequestTimeout time.Duration
	SessionDB      string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://127.0.0.1:8080"
	c.RequestTimeout = 10 * time.Second
	c.SessionDB = "bankaccounts-session.db"
}

// LoadConfig constructs a Config from defaults, then overlays the JSON file
// at path when path is not empty. Command-line flags are applied on top by
// the CLI.
func LoadConfig(path string) (*Config, error) {
	cfg := &Config{}
	cfg.LoadDefaults()
	if path == "" {
		return cfg, nil
	}
	if err := parseJson(cfg, path); err != nil {
		return nil, err
	}
	return cfg, nil
}
