package config

import (
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/edusys/eduauth/internal/flagx"
)

// YamlConfig is the intermediate DTO used only for reading YAML
// configuration files. token_ttl is expressed in seconds. Fields absent
// from the file keep their current (default) values.
type YamlConfig struct {
	EndpointAddr      *string  `yaml:"endpoint_addr"`
	DatabaseDSN       *string  `yaml:"db_connection_string"`
	Debug             *bool    `yaml:"debug"`
	PasswordSalt      *string  `yaml:"salt"`
	TokenSecret       *string  `yaml:"token_secret"`
	TokenTTLSeconds   *int     `yaml:"token_ttl"`
	AuthorizedAPIKeys []string `yaml:"authorized_api_keys"`
}

// parseYaml loads configuration values from a YAML file into the provided
// Config instance. The file path comes from the -c or -config command-line
// flags; without them no file is loaded. An unreadable or invalid file
// panics: a deployment that points at a broken config must not start.
func parseYaml(config *Config) {
	yamlConfigFile := flagx.ConfigFileFlags()
	if yamlConfigFile == "" {
		return
	}

	c := &YamlConfig{}

	file, err := os.ReadFile(yamlConfigFile)
	if err != nil {
		panic(err)
	}

	if err := yaml.Unmarshal(file, c); err != nil {
		panic(err)
	}

	if c.EndpointAddr != nil {
		config.EndpointAddr = *c.EndpointAddr
	}
	if c.DatabaseDSN != nil {
		config.DatabaseDSN = *c.DatabaseDSN
	}
	if c.Debug != nil {
		config.Debug = *c.Debug
	}
	if c.PasswordSalt != nil {
		config.PasswordSalt = *c.PasswordSalt
	}
	if c.TokenSecret != nil {
		config.TokenSecret = *c.TokenSecret
	}
	if c.TokenTTLSeconds != nil {
		config.TokenTTL = time.Duration(*c.TokenTTLSeconds) * time.Second
	}
	if c.AuthorizedAPIKeys != nil {
		config.AuthorizedAPIKeys = c.AuthorizedAPIKeys
	}
}
