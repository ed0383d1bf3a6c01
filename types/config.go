package types

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config bundles everything needed to bring the engine up.
type Config struct {
	// LibraryPath points at the engine shared library. Empty means discover it.
	LibraryPath string          `yaml:"library_path"`
	LogLevel    string          `yaml:"log_level"`
	StartURL    string          `yaml:"start_url"`
	WindowTitle string          `yaml:"window_title"`
	Settings    Settings        `yaml:"settings"`
	Browser     BrowserSettings `yaml:"browser"`
}

// DefaultConfig returns a Config with NewSettings applied.
func DefaultConfig() Config {
	return Config{
		LogLevel:    "info",
		StartURL:    "https://www.example.com",
		WindowTitle: "cef",
		Settings:    NewSettings(),
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig.
func LoadConfig(path string) (Config, error) {
	config := DefaultConfig()
	bz, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("could not read config: %w", err)
	}
	if err := yaml.Unmarshal(bz, &config); err != nil {
		return Config{}, fmt.Errorf("could not parse config %s: %w", path, err)
	}
	return config, nil
}
