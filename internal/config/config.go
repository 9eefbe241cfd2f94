// Package config handles boutique configuration loading and management.
package config

import (
	"path/filepath"
	"strings"
)

// Config holds all boutique settings.
type Config struct {
	Data    DataConfig    `yaml:"data"`
	Storage StorageConfig `yaml:"storage"`
	Preview PreviewConfig `yaml:"preview"`
	UI      UIConfig      `yaml:"ui"`
	Logging LoggingConfig `yaml:"logging"`
}

// DataConfig holds game data locations. An empty IconRoot disables icons.
type DataConfig struct {
	ItemsPath     string `yaml:"items_path" env:"BOUTIQUE_ITEMS_PATH" validate:"required"`
	IconRoot      string `yaml:"icon_root" env:"BOUTIQUE_ICON_ROOT"`
	SheetEncoding string `yaml:"sheet_encoding" env:"BOUTIQUE_SHEET_ENCODING" validate:"oneof=utf-8 euc-kr shift-jis"`
}

// StorageConfig holds where saved outfits live.
type StorageConfig struct {
	Driver string `yaml:"driver" env:"BOUTIQUE_STORAGE_DRIVER" validate:"oneof=yaml sqlite"`
	Path   string `yaml:"path" env:"BOUTIQUE_STORAGE_PATH"` // Empty = config dir
}

// PreviewConfig holds try-on integration settings.
type PreviewConfig struct {
	Integration        string `yaml:"integration" env:"BOUTIQUE_PREVIEW_INTEGRATION" validate:"oneof=none echo"`
	PrintStatusOnStart bool   `yaml:"print_status_on_start" env:"BOUTIQUE_PREVIEW_STATUS"`
}

// UIConfig holds browsing window settings.
type UIConfig struct {
	OpenOnLogin  bool `yaml:"open_on_login" env:"BOUTIQUE_OPEN_ON_LOGIN"`
	ItemsPerPage int  `yaml:"items_per_page" env:"BOUTIQUE_ITEMS_PER_PAGE" validate:"gte=1,lte=200"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level" env:"BOUTIQUE_LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFile string `yaml:"log_file" env:"BOUTIQUE_LOG_FILE"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Data: DataConfig{
			ItemsPath:     "items.yaml",
			IconRoot:      "",
			SheetEncoding: "utf-8",
		},
		Storage: StorageConfig{
			Driver: "yaml",
		},
		Preview: PreviewConfig{
			Integration:        "none",
			PrintStatusOnStart: true,
		},
		UI: UIConfig{
			OpenOnLogin:  false,
			ItemsPerPage: 18,
		},
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
	}
}

// StoragePath returns the outfit storage location, defaulting to a file in
// the config directory named after the driver.
func (c *Config) StoragePath() string {
	if strings.TrimSpace(c.Storage.Path) != "" {
		return c.Storage.Path
	}
	name := "outfits.yaml"
	if c.Storage.Driver == "sqlite" {
		name = "outfits.db"
	}
	return filepath.Join(ConfigDir(), name)
}
