package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/bankaccounts/internal/flagx"
	"github.com/dmitrijs2005/bankaccounts/internal/timex"
)

// JsonConfig defines a configuration structure tailored for JSON unmarshalling.
// It uses timex.Duration for interval fields, which allows parsing both
// string values such as "15m" and integer nanoseconds.
//
// After unmarshalling, non-empty fields are copied into the runtime Config;
// keys absent from the file keep their current (default) values.
type JsonConfig struct {
	HTTPAddr       string         `json:"http_addr"`
	GRPCAddr       string         `json:"grpc_addr"`
	DatabaseDriver string         `json:"database_driver"`
	DatabaseDSN    string         `json:"database_dsn"`
	SecretKey      string         `json:"secret_key"`
	SecretKeyURI   string         `json:"secret_key_uri"`
	TokenLifetime  timex.Duration `json:"token_lifetime"`
	Issuer         string         `json:"issuer"`
	PublicPaths    []string       `json:"public_paths"`
	PasswordHasher string         `json:"password_hasher"`
	SeedIdentifier *string        `json:"seed_identifier"`
	SeedSecret     string         `json:"seed_secret"`
	LogLevel       string         `json:"log_level"`
	S3Region       string         `json:"s3_region"`
	S3BaseEndpoint string         `json:"s3_base_endpoint"`
	S3AccessKey    string         `json:"s3_access_key"`
	S3SecretKey    string         `json:"s3_secret_key"`
}

// parseJson loads configuration values from a JSON file into the provided
// Config instance.
//
// The file path comes from the -c or -config command-line flags. If neither
// is set, no JSON file is loaded. If the file cannot be read or contains
// invalid JSON, the function panics.
//
// seed_identifier is a pointer so that an explicit "" disables seeding.
func parseJson(config *Config) {
	jsonConfigFile := flagx.ConfigPath(os.Args[1:])

	// nothing to load
	if jsonConfigFile == "" {
		return
	}

	c := &JsonConfig{}

	file, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	err = json.Unmarshal(file, c)
	if err != nil {
		panic(err)
	}

	setString(&config.HTTPAddr, c.HTTPAddr)
	setString(&config.GRPCAddr, c.GRPCAddr)
	setString(&config.DatabaseDriver, c.DatabaseDriver)
	setString(&config.DatabaseDSN, c.DatabaseDSN)
	setString(&config.SecretKey, c.SecretKey)
	setString(&config.SecretKeyURI, c.SecretKeyURI)
	if c.TokenLifetime.Duration != 0 {
		config.TokenLifetime = c.TokenLifetime.Duration
	}
	setString(&config.Issuer, c.Issuer)
	if len(c.PublicPaths) > 0 {
		config.PublicPaths = c.PublicPaths
	}
	setString(&config.PasswordHasher, c.PasswordHasher)
	if c.SeedIdentifier != nil {
		config.SeedIdentifier = *c.SeedIdentifier
	}
	setString(&config.SeedSecret, c.SeedSecret)
	setString(&config.LogLevel, c.LogLevel)
	setString(&config.S3Region, c.S3Region)
	setString(&config.S3BaseEndpoint, c.S3BaseEndpoint)
	setString(&config.S3AccessKey, c.S3AccessKey)
	setString(&config.S3SecretKey, c.S3SecretKey)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
