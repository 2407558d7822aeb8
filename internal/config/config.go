package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/watson-tui/watson-tui/internal/model"
)

// Config holds the resolved settings for a run of the UI.
type Config struct {
	// WatsonBin is the watson executable to invoke.
	WatsonBin string
	// StartAt is the default start-at mode: "now" or "last-stop".
	StartAt string
}

// Load initializes viper from an optional config file, the environment
// and defaults. Settings resolve flag > env > file > default.
func Load(cfgFile string) {
	// explicit .env loading; missing file is fine
	_ = godotenv.Load()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			viper.AddConfigPath(filepath.Join(home, ".watson-tui"))
		}
		viper.SetConfigType("yaml")
		viper.SetConfigName("config")
	}

	viper.SetEnvPrefix("WATSON_TUI")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	viper.SetDefault("watson_bin", "watson")
	viper.SetDefault("start_at", "now")

	// A missing config file just means defaults.
	_ = viper.ReadInConfig()
}

// FromViper materializes the current viper state into a Config.
func FromViper() *Config {
	return &Config{
		WatsonBin: viper.GetString("watson_bin"),
		StartAt:   viper.GetString("start_at"),
	}
}

// DefaultStartMode returns the configured start-at mode.
func (c *Config) DefaultStartMode() model.StartMode {
	return model.ParseStartMode(c.StartAt)
}
