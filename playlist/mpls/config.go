package mpls

import (
	"strings"

	"github.com/dphoyes/phototimeshift/playlist/common"
)

// Config holds configuration for playlist processing
type Config struct {
	Scanner  *ScannerConfig  `json:"scanner"`
	Walker   *WalkerConfig   `json:"walker"`
	Timezone *TimezoneConfig `json:"timezone"`
}

// ScannerConfig holds configuration for candidate file selection
type ScannerConfig struct {
	// Suffix is the case-sensitive filename suffix accepted by the scanner
	Suffix string `json:"suffix"`
}

// WalkerConfig holds configuration for the descriptor walk
type WalkerConfig struct {
	// StrictMode additionally verifies the per-descriptor trailing marker
	// and ASCII date copy, and rejects timestamp bytes that are not valid
	// packed BCD
	StrictMode bool `json:"strict_mode"`
}

// TimezoneConfig holds configuration for the timezone sidecar
type TimezoneConfig struct {
	// EnableSidecar controls whether <playlist>.timezone.json files are
	// consulted when decoding timestamps
	EnableSidecar bool `json:"enable_sidecar"`
}

// DefaultConfig returns the default playlist configuration
func DefaultConfig() *Config {
	return &Config{
		Scanner: &ScannerConfig{
			Suffix: ".MPL",
		},
		Walker: &WalkerConfig{
			StrictMode: false,
		},
		Timezone: &TimezoneConfig{
			EnableSidecar: true,
		},
	}
}

// ConfigFromMap creates a playlist config from a map (useful for testing and
// for embedding this library under an application-level config layer)
func ConfigFromMap(configMap map[string]any) *Config {
	config := DefaultConfig()

	if scannerCfg, exists := configMap["scanner"].(map[string]any); exists {
		if suffix, ok := scannerCfg["suffix"].(string); ok && suffix != "" {
			config.Scanner.Suffix = suffix
		}
	}

	if walkerCfg, exists := configMap["walker"].(map[string]any); exists {
		if strict, ok := walkerCfg["strict_mode"].(bool); ok {
			config.Walker.StrictMode = strict
		}
	}

	if tzCfg, exists := configMap["timezone"].(map[string]any); exists {
		if enable, ok := tzCfg["enable_sidecar"].(bool); ok {
			config.Timezone.EnableSidecar = enable
		}
	}

	return config
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Scanner == nil || c.Walker == nil || c.Timezone == nil {
		return common.NewPlaylistError(common.FormatTypeMPLS, "",
			common.ErrCodeUnsupported, "config sections must not be nil", nil)
	}
	if c.Scanner.Suffix == "" {
		return common.NewPlaylistError(common.FormatTypeMPLS, "",
			common.ErrCodeUnsupported, "scanner suffix must not be empty", nil)
	}
	if !strings.HasPrefix(c.Scanner.Suffix, ".") {
		return common.NewPlaylistError(common.FormatTypeMPLS, "",
			common.ErrCodeUnsupported, "scanner suffix must start with a dot", nil)
	}
	return nil
}
