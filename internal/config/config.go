package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

const DefaultPath = "configs/config.toml"

type Config struct {
	Server struct {
		Host                 string
		GRPCHost             string `toml:"grpc_host"`
		ReadTimeout          time.Duration
		WriteTimeout         time.Duration
		ReadHeaderTimeout    time.Duration
		StrReadTimeout       string `toml:"read_timeout"`
		StrWriteTimeout      string `toml:"write_timeout"`
		StrReadHeaderTimeout string `toml:"read_header_timeout"`
	}
	Database struct {
		Host     string
		User     string
		Password string
		Database string
		MaxConns int32 `toml:"max_conns"`
	}
	Log struct {
		File  string
		Level string
	}
}

// GetConfig reads the TOML config at CONFIG_PATH (DefaultPath when unset).
// Values from the environment, including a .env file, take precedence.
func GetConfig(logger *slog.Logger) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		logger.Warn("Error loading .env file", slog.String("error", err.Error()))
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = DefaultPath
	}

	data, err := os.ReadFile(path)
	if err != nil {
		logger.Error("Error read config file", slog.String("path", path), slog.String("error", err.Error()))
		return nil, err
	}

	var cfg Config
	if _, tomlErr := toml.Decode(string(data), &cfg); tomlErr != nil {
		logger.Error("Error decode config file", slog.String("path", path), slog.String("error", tomlErr.Error()))
		return nil, tomlErr
	}

	if err = cfg.parseDurations(); err != nil {
		return nil, err
	}

	cfg.applyEnv()

	if cfg.Server.Host == "" {
		return nil, errors.New("server host is required")
	}

	if cfg.Database.Database == "" {
		return nil, errors.New("database name is required")
	}

	logger.Info("Config is loaded", slog.String("path", path))
	return &cfg, nil
}

func (c *Config) parseDurations() error {
	var err error

	if c.Server.ReadTimeout, err = parseDuration(c.Server.StrReadTimeout, 10*time.Second); err != nil {
		return fmt.Errorf("invalid read_timeout: %w", err)
	}
	if c.Server.WriteTimeout, err = parseDuration(c.Server.StrWriteTimeout, 10*time.Second); err != nil {
		return fmt.Errorf("invalid write_timeout: %w", err)
	}
	if c.Server.ReadHeaderTimeout, err = parseDuration(c.Server.StrReadHeaderTimeout, 5*time.Second); err != nil {
		return fmt.Errorf("invalid read_header_timeout: %w", err)
	}

	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("DB_PASSWORD"); v != "" {
		c.Database.Password = v
	}
	if v := os.Getenv("DB_NAME"); v != "" {
		c.Database.Database = v
	}

	// Tests run against a separate database.
	if strings.EqualFold(os.Getenv("ENV"), "test") && !strings.HasSuffix(c.Database.Database, "_test") {
		c.Database.Database += "_test"
	}
}

func parseDuration(s string, fallback time.Duration) (time.Duration, error) {
	if s == "" {
		return fallback, nil
	}
	return time.ParseDuration(s)
}
