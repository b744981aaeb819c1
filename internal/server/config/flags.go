package config

import (
	"flag"
	"os"
	"strings"
	"time"

	"github.com/edusys/eduauth/internal/flagx"
)

// parseFlags populates selected server Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-a string   REST bind address (e.g., "127.0.0.1:4000")
//	-d string   PostgreSQL DSN
//	-s string   token signing secret
//	-p string   password salt
//	-t int      token validity, seconds
//	-k string   comma-separated authorized API keys
//	-v          debug logging
//
// The function first filters os.Args to the flags it recognizes using
// flagx.FilterArgs, avoiding collisions with the config-file flags.
func parseFlags(config *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-d", "-s", "-p", "-t", "-k", "-v"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&config.EndpointAddr, "a", config.EndpointAddr, "address and port to run server")
	fs.StringVar(&config.DatabaseDSN, "d", config.DatabaseDSN, "database DSN")
	fs.StringVar(&config.TokenSecret, "s", config.TokenSecret, "token signing secret")
	fs.StringVar(&config.PasswordSalt, "p", config.PasswordSalt, "password salt")
	fs.BoolVar(&config.Debug, "v", config.Debug, "debug logging")

	tokenTTL := fs.Int("t", int(config.TokenTTL.Seconds()), "token validity (in seconds)")
	apiKeys := fs.String("k", "", "comma-separated authorized API keys")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	config.TokenTTL = time.Duration(*tokenTTL) * time.Second

	if *apiKeys != "" {
		keys := []string{}
		for _, k := range strings.Split(*apiKeys, ",") {
			if k = strings.TrimSpace(k); k != "" {
				keys = append(keys, k)
			}
		}
		config.AuthorizedAPIKeys = keys
	}
}
