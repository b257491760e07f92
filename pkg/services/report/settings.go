package report

import (
	"fmt"

	"github.com/spf13/viper"
)

// Settings is the server-side report configuration file.
type Settings struct {
	DefaultWindowDays int    `mapstructure:"default_window_days"`
	PageSizes         []int  `mapstructure:"page_sizes"`
	DefaultPageSize   int    `mapstructure:"default_page_size"`
	Currency          string `mapstructure:"currency"`
}

// DefaultSettings mirror the page-size choices the report screens offer.
func DefaultSettings() Settings {
	return Settings{
		DefaultWindowDays: 7,
		PageSizes:         []int{10, 25, 50, 100},
		DefaultPageSize:   10,
		Currency:          "INR",
	}
}

func LoadSettings(path string) (*Settings, error) {
	v := viper.New()
	v.SetConfigFile(path)

	defaults := DefaultSettings()
	v.SetDefault("default_window_days", defaults.DefaultWindowDays)
	v.SetDefault("page_sizes", defaults.PageSizes)
	v.SetDefault("default_page_size", defaults.DefaultPageSize)
	v.SetDefault("currency", defaults.Currency)

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read settings file: %w", err)
	}

	var settings Settings
	if err := v.Unmarshal(&settings); err != nil {
		return nil, fmt.Errorf("failed to parse report settings: %w", err)
	}
	return &settings, nil
}

// NormalizePageSize snaps a requested page size to the configured choices,
// falling back to the default for anything off the list.
func (s Settings) NormalizePageSize(size int) int {
	for _, choice := range s.PageSizes {
		if size == choice {
			return size
		}
	}
	return s.DefaultPageSize
}
