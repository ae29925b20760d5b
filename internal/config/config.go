// Package config loads driver settings from defaults, an optional YAML file
// and SKIRMISH_* environment variables.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "SKIRMISH"

// Config is the complete driver configuration.
type Config struct {
	Game     GameConfig     `mapstructure:"game"`
	Database DatabaseConfig `mapstructure:"database"`
	Log      LogConfig      `mapstructure:"log"`
}

// GameConfig holds session parameters.
type GameConfig struct {
	PlayerName   string `mapstructure:"player_name"`
	OpponentName string `mapstructure:"opponent_name"`
	MapSize      string `mapstructure:"map_size"` // small, medium, large
	Seed         int64  `mapstructure:"seed"`     // 0 picks a time-based seed
	MaxTurns     int    `mapstructure:"max_turns"`
}

// DatabaseConfig points at the history store. An empty path disables it.
type DatabaseConfig struct {
	Path        string `mapstructure:"path"`         // ":memory:" keeps history in process
	JournalMode string `mapstructure:"journal_mode"` // wal, delete, memory
	BusyTimeout int    `mapstructure:"busy_timeout"` // Milliseconds
}

// LogConfig controls the console and rotated file loggers.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"` // Empty disables the file sink
	MaxSize    int    `mapstructure:"max_size"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAge     int    `mapstructure:"max_age"`
	Compress   bool   `mapstructure:"compress"`
	Dev        bool   `mapstructure:"dev"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("game.player_name", "Player")
	v.SetDefault("game.opponent_name", "AI")
	v.SetDefault("game.map_size", "medium")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.max_turns", 200)

	v.SetDefault("database.path", "data/skirmish.db")
	v.SetDefault("database.journal_mode", "wal")
	v.SetDefault("database.busy_timeout", 5000)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size", 10)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age", 28)
	v.SetDefault("log.compress", false)
	v.SetDefault("log.dev", false)
}

// Load reads the configuration. path may be empty to use defaults and the
// environment only; a named file must exist.
func Load(path string) (Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	// Short names kept for scripts
	_ = v.BindEnv("database.path", EnvPrefix+"_DB_PATH", EnvPrefix+"_DATABASE_PATH")
	_ = v.BindEnv("game.seed", EnvPrefix+"_SEED", EnvPrefix+"_GAME_SEED")

	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return Config{}, fmt.Errorf("config file %s: %w", path, err)
		}
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("failed to decode config: %w", err)
	}
	return cfg, nil
}
