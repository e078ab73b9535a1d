package bootstrap

import (
	"fmt"
	"os"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"go_engine/internal/domain/sgf"
	"go_engine/internal/engine/score"
)

// cfgFile is looked up in the XDG config dirs when no explicit file exists.
const cfgFile = "go_engine/config.env"

type Config struct {
	ServerPort       string        `mapstructure:"SERVER_PORT"`
	RpcPort          string        `mapstructure:"RPC_PORT"`
	RedisUrl         string        `mapstructure:"REDIS_URL"`
	MongoUri         string        `mapstructure:"MONGO_URI"`
	MongoDatabase    string        `mapstructure:"MONGO_DATABASE"`
	IsLocalCors      bool          `mapstructure:"LOCAL_CORS"`
	DefaultBoardSize int           `mapstructure:"DEFAULT_BOARD_SIZE"`
	MaxBoardSize     int           `mapstructure:"MAX_BOARD_SIZE"`
	DefaultKomi      float64       `mapstructure:"DEFAULT_KOMI"`
	SnapshotTTL      time.Duration `mapstructure:"SNAPSHOT_TTL"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("SERVER_PORT", "8080")
	v.SetDefault("RPC_PORT", "8082")
	v.SetDefault("REDIS_URL", "localhost:6379")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "go_engine")
	v.SetDefault("LOCAL_CORS", false)
	v.SetDefault("DEFAULT_BOARD_SIZE", 19)
	v.SetDefault("MAX_BOARD_SIZE", 25)
	v.SetDefault("DEFAULT_KOMI", 6.5)
	v.SetDefault("SNAPSHOT_TTL", 24*time.Hour)
}

// Setup reads cfgPath, or go_engine/config.env from the XDG config dirs
// when cfgPath is empty or missing. Environment variables override the
// file and defaults fill whatever neither sets.
func Setup(cfgPath string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if path := resolvePath(cfgPath); path != "" {
		v.SetConfigFile(path)
		v.SetConfigType("env")
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func resolvePath(cfgPath string) string {
	if cfgPath != "" {
		if _, err := os.Stat(cfgPath); err == nil {
			return cfgPath
		}
	}
	found, err := xdg.SearchConfigFile(cfgFile)
	if err != nil {
		return ""
	}
	return found
}

func (c *Config) Validate() error {
	if c.ServerPort == "" {
		return fmt.Errorf("SERVER_PORT is empty")
	}
	if c.MaxBoardSize < 1 || c.MaxBoardSize > sgf.MaxSize {
		return fmt.Errorf("MAX_BOARD_SIZE must be between 1 and %d, got %d", sgf.MaxSize, c.MaxBoardSize)
	}
	if c.DefaultBoardSize < 1 || c.DefaultBoardSize > c.MaxBoardSize {
		return fmt.Errorf("DEFAULT_BOARD_SIZE must be between 1 and MAX_BOARD_SIZE, got %d", c.DefaultBoardSize)
	}
	if err := score.ValidateKomi(c.DefaultKomi); err != nil {
		return fmt.Errorf("DEFAULT_KOMI: %w", err)
	}
	if c.SnapshotTTL < 0 {
		return fmt.Errorf("SNAPSHOT_TTL must not be negative")
	}
	return nil
}
