package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/bankaccounts/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags:
//
//	-a string   HTTP bind address (e.g., ":8080")
//	-g string   gRPC bind address (e.g., ":50051")
//	-k string   database driver: sqlite | postgres
//	-d string   database DSN
//	-s string   token HMAC secret key
//	-x string   secret key URI (file:///path or s3://bucket/key)
//	-t int      token lifetime, minutes
//	-p string   comma-separated public paths
//	-l string   log level
//	-hasher string           password hasher: bcrypt | argon2id
//	-seed-identifier string  seed principal identifier ("" disables seeding)
//	-seed-secret string      seed principal secret
//	-r string   S3 region
//	-e string   S3 base endpoint (e.g., "http://127.0.0.1:9000/")
//	-u string   S3 access key
//	-w string   S3 secret key
//
// The function first filters os.Args to only the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with other components. The token
// lifetime is accepted as an integer number of minutes.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{
		"-a", "-g", "-k", "-d", "-s", "-x", "-t", "-p", "-l",
		"-hasher", "-seed-identifier", "-seed-secret",
		"-r", "-e", "-u", "-w",
	})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.HTTPAddr, "a", config.HTTPAddr, "HTTP address and port to run server")
	fs.StringVar(&config.GRPCAddr, "g", config.GRPCAddr, "gRPC address and port")
	fs.StringVar(&config.DatabaseDriver, "k", config.DatabaseDriver, "database driver (sqlite|postgres)")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.SecretKey, "s", config.SecretKey, "token secret key")
	fs.StringVar(&config.SecretKeyURI, "x", config.SecretKeyURI, "token secret key URI (file:// or s3://)")

	tokenLifetime := fs.Int("t", int(config.TokenLifetime.Minutes()), "token lifetime (in minutes)")
	publicPaths := fs.String("p", strings.Join(config.PublicPaths, ","), "comma-separated public paths")

	fs.StringVar(&config.LogLevel, "l", config.LogLevel, "log level")
	fs.StringVar(&config.PasswordHasher, "hasher", config.PasswordHasher, "password hasher (bcrypt|argon2id)")
	fs.StringVar(&config.SeedIdentifier, "seed-identifier", config.SeedIdentifier, "seed principal identifier")
	fs.StringVar(&config.SeedSecret, "seed-secret", config.SeedSecret, "seed principal secret")

	fs.StringVar(&config.S3Region, "r", config.S3Region, "S3 region")
	fs.StringVar(&config.S3BaseEndpoint, "e", config.S3BaseEndpoint, "S3 base endpoint")
	fs.StringVar(&config.S3AccessKey, "u", config.S3AccessKey, "S3 access key")
	fs.StringVar(&config.S3SecretKey, "w", config.S3SecretKey, "S3 secret key")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenLifetime = time.Duration(*tokenLifetime) * time.Minute
	config.PublicPaths = splitList(*publicPaths)
}

func splitList(s string) []string {
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
