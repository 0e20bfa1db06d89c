package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix prefixes environment overrides. Nested keys are separated by "__", like PICKER_CATALOG__RETRIES.
const EnvPrefix = "PICKER_"

type Config struct {
	Catalog CatalogConfig   `json:"catalog"`
	Season  string          `json:"season"`
	Courses []string        `json:"courses"`
	Blocked []BlockedConfig `json:"blocked"`
	Logging LoggingConfig   `json:"logging"`
}

// Load reads the configuration file (YAML or JSON, chosen by extension) and applies environment overrides.
// An empty path loads the environment only.
func Load(path string) (*Config, error) {
	k := koanf.New(".")
	if path != "" {
		var parser koanf.Parser
		switch ext := strings.ToLower(filepath.Ext(path)); ext {
		case ".yaml", ".yml":
			parser = yaml.Parser()
		case ".json":
			parser = json.Parser()
		default:
			return nil, fmt.Errorf("unsupported config format: %s", ext)
		}
		if err := k.Load(file.Provider(path), parser); err != nil {
			return nil, err
		}
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", func(s string) string {
		s = strings.TrimPrefix(strings.ToLower(s), strings.ToLower(EnvPrefix))
		return strings.ReplaceAll(s, "__", ".")
	}), nil); err != nil {
		return nil, err
	}

	var cfg Config
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "json"}); err != nil {
		return nil, err
	}
	cfg.SetDefaults()
	if err := cfg.Catalog.loadAccessToken(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) SetDefaults() {
	c.Catalog.SetDefaults()
	c.Logging.SetDefaults()
}

func (c Config) Validate() error {
	if err := c.Catalog.Validate(); err != nil {
		return fmt.Errorf("catalog: %w", err)
	}
	for i, blocked := range c.Blocked {
		if err := blocked.Validate(); err != nil {
			return fmt.Errorf("blocked[%d]: %w", i, err)
		}
	}
	return c.Logging.Validate()
}

// loadAccessToken reads the access token from its file when it isn't given inline
func (c *CatalogConfig) loadAccessToken() error {
	if c.AccessToken != "" || c.AccessTokenFile == "" {
		return nil
	}
	bytes, err := os.ReadFile(c.AccessTokenFile)
	if err != nil {
		return fmt.Errorf("cannot read access token: %w", err)
	}
	c.AccessToken = strings.TrimSpace(string(bytes))
	if c.AccessToken == "" {
		return errors.New("access token file is empty")
	}
	return nil
}
