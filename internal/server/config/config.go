// Package config handles configuration for the server component,
// including defaults, JSON overlay, and command-line flags.
package config

import (
	"errors"
	"fmt"
	"time"
)

// Supported values for Config.DatabaseDriver.
const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

// Supported values for Config.PasswordHasher.
const (
	HasherBcrypt   = "bcrypt"
	HasherArgon2id = "argon2id"
)

// Config holds runtime settings for the bankaccounts server. It is built once
// at start-up and passed by pointer to the components that need it.
//
// Fields:
//   - HTTPAddr / GRPCAddr: bind addresses of the HTTP API and the gRPC endpoint.
//   - DatabaseDriver / DatabaseDSN: "sqlite" (modernc) or "postgres" (pgx) and its DSN.
//   - SecretKey: HMAC secret for signing tokens (HS256), at least 32 bytes.
//   - SecretKeyURI: optional file:// or s3:// location the key is loaded from instead.
//   - TokenLifetime / Issuer: token validity and "iss" claim.
//   - PublicPaths: request paths admitted without a token; a trailing "*" makes a prefix.
//   - PasswordHasher: "bcrypt" or "argon2id".
//   - SeedIdentifier / SeedSecret: principal created at start-up when absent; empty disables.
//   - S3*: settings for the S3-compatible backend used by s3:// key URIs.
type Config struct {
	HTTPAddr       string
	GRPCAddr       string
	DatabaseDriver string
	DatabaseDSN    string
	SecretKey      string
	SecretKeyURI   string
	TokenLifetime  time.Duration
	Issuer         string
	PublicPaths    []string
	PasswordHasher string
	SeedIdentifier string
	SeedSecret     string
	LogLevel       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
}

// DefaultPublicPaths lists the HTTP paths reachable without a token.
// /metrics is not among them: its counters break rejections down by cause.
func DefaultPublicPaths() []string {
	return []string{
		"/api/login",
		"/api/register",
		"/health",
		"/openapi.yaml",
		"/docs*",
	}
}

// LoadDefaults populates Config with development defaults.
// NOTE: the secret key and seed principal are insecure for production and should be overridden.
func (c *Config) LoadDefaults() {
	c.HTTPAddr = ":8080"
	c.GRPCAddr = ":50051"
	c.DatabaseDriver = DriverSQLite
	c.DatabaseDSN = "file:bankaccounts.db?_pragma=busy_timeout(5000)"
	c.SecretKey = "dev-only-secret-key-change-me-0123456789"
	c.SecretKeyURI = ""
	c.TokenLifetime = 15 * time.Minute
	c.Issuer = "bankaccounts"
	c.PublicPaths = DefaultPublicPaths()
	c.PasswordHasher = HasherBcrypt
	c.SeedIdentifier = "user@ejemplo.com"
	c.SeedSecret = "mi-password"
	c.LogLevel = "info"
	c.S3Region = "us-east-1"
	c.S3BaseEndpoint = ""
	c.S3AccessKey = ""
	c.S3SecretKey = ""
}

// Validate reports settings the server cannot start with.
func (c *Config) Validate() error {
	var errs []error

	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http address is empty"))
	}
	switch c.DatabaseDriver {
	case DriverSQLite, DriverPostgres:
	default:
		errs = append(errs, fmt.Errorf("unsupported database driver %q", c.DatabaseDriver))
	}
	if c.DatabaseDSN == "" {
		errs = append(errs, errors.New("database DSN is empty"))
	}
	switch c.PasswordHasher {
	case HasherBcrypt, HasherArgon2id:
	default:
		errs = append(errs, fmt.Errorf("unsupported password hasher %q", c.PasswordHasher))
	}
	if c.TokenLifetime <= 0 {
		errs = append(errs, errors.New("token lifetime must be positive"))
	}
	if c.SecretKeyURI == "" && c.SecretKey == "" {
		errs = append(errs, errors.New("either secret key or secret key URI must be set"))
	}
	if c.SeedIdentifier != "" && c.SeedSecret == "" {
		errs = append(errs, errors.New("seed secret is empty"))
	}

	return errors.Join(errs...)
}

// LoadConfig builds a Config by applying defaults, then overlaying values
// from an optional JSON file and finally from command-line flags.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
