// Package config holds the settings of the authctl command line tool.
package config

import (
	"flag"
	"os"
)

type Config struct {
	ServerEndpointAddr string
	APIKey             string
}

func LoadDefaults() *Config {
	cfg := &Config{
		ServerEndpointAddr: "http://127.0.0.1:4000",
		APIKey:             "",
	}
	if key := os.Getenv("EDUAUTH_API_KEY"); key != "" {
		cfg.APIKey = key
	}
	return cfg
}

// LoadConfig reads flags from args up to the first non-flag argument and
// returns the remaining arguments (the subcommand and its operands).
func LoadConfig(args []string) (*Config, []string, error) {
	cfg := LoadDefaults()

	fs := flag.NewFlagSet("authctl", flag.ContinueOnError)
	fs.StringVar(&cfg.ServerEndpointAddr, "s", cfg.ServerEndpointAddr, "auth service base URL")
	fs.StringVar(&cfg.APIKey, "k", cfg.APIKey, "service API key (defaults to EDUAUTH_API_KEY)")

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	return cfg, fs.Args(), nil
}
