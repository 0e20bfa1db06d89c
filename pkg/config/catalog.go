package config

import (
	"errors"
	"path/filepath"
	"time"

	"github.com/samber/lo"
)

// CatalogConfig configures access to the class and building APIs.
type CatalogConfig struct {
	ClassURL    string `json:"class_url"`
	BuildingURL string `json:"building_url"`
	// AccessToken is sent verbatim as the Authorization header, like "Bearer abcdef1234567890".
	AccessToken string `json:"access_token"`
	// AccessTokenFile is read when AccessToken is empty.
	AccessTokenFile string `json:"access_token_file"`
	// CacheDir holds the response caches. Empty disables caching on disk.
	CacheDir string `json:"cache_dir"`
	// Retries is how many times a failed request is retried. Unset means 2; 0 disables retrying.
	Retries           *int `json:"retries"`
	RetryWaitSeconds  int  `json:"retry_wait_seconds"`
	RequestsPerWindow int  `json:"requests_per_window"`
	WindowSeconds     int  `json:"window_seconds"`
}

const (
	defaultClassURL    = "http://api-gw.it.umich.edu/Curriculum/SOC/v1"
	defaultBuildingURL = "http://api-gw.it.umich.edu/Facilities/Buildings/v1"
)

// SetDefaults applies the limits of the public API.
func (c *CatalogConfig) SetDefaults() {
	if c.ClassURL == "" {
		c.ClassURL = defaultClassURL
	}
	if c.BuildingURL == "" {
		c.BuildingURL = defaultBuildingURL
	}
	if c.Retries == nil {
		c.Retries = lo.ToPtr(2)
	}
	if c.RetryWaitSeconds == 0 {
		c.RetryWaitSeconds = 60
	}
	if c.RequestsPerWindow == 0 {
		c.RequestsPerWindow = 59
	}
	if c.WindowSeconds == 0 {
		c.WindowSeconds = 60
	}
}

func (c CatalogConfig) Validate() error {
	if lo.FromPtr(c.Retries) < 0 {
		return errors.New("retries must not be negative")
	}
	if c.RetryWaitSeconds < 0 {
		return errors.New("retry_wait_seconds must not be negative")
	}
	if c.RequestsPerWindow < 1 {
		return errors.New("requests_per_window must be positive")
	}
	if c.WindowSeconds < 1 {
		return errors.New("window_seconds must be positive")
	}
	return nil
}

// RetryCount returns the configured retries, or 0 before defaults are applied
func (c CatalogConfig) RetryCount() int {
	return lo.FromPtr(c.Retries)
}

func (c CatalogConfig) RetryWait() time.Duration {
	return time.Duration(c.RetryWaitSeconds) * time.Second
}

func (c CatalogConfig) Window() time.Duration {
	return time.Duration(c.WindowSeconds) * time.Second
}

// CacheFile returns the path of a cache file, or "" when caching on disk is disabled
func (c CatalogConfig) CacheFile(name string) string {
	if c.CacheDir == "" {
		return ""
	}
	return filepath.Join(c.CacheDir, name)
}
