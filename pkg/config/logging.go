package config

import (
	"fmt"

	"github.com/rs/zerolog"
)

type LoggingConfig struct {
	// Level is one of "trace", "debug", "info", "warn", "error".
	Level string `json:"level"`
}

func (c *LoggingConfig) SetDefaults() {
	if c.Level == "" {
		c.Level = "info"
	}
}

func (c LoggingConfig) Validate() error {
	if _, err := zerolog.ParseLevel(c.Level); err != nil {
		return fmt.Errorf("unknown logging level %s", c.Level)
	}
	return nil
}
