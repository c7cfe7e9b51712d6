package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mirrorsync/internal/logger"
	"mirrorsync/internal/pathmap"

	"github.com/spf13/viper"
)

type Config struct {
	SourceRoot      string   `mapstructure:"source_root"`
	DestinationRoot string   `mapstructure:"destination_root"`
	LogLevel        string   `mapstructure:"log_level"`
	LogFile         string   `mapstructure:"log_file"`
	DBPath          string   `mapstructure:"db_path"`
	DaemonPort      int      `mapstructure:"daemon_port"`
	BufferSize      int      `mapstructure:"buffer_size"`
	IgnoreList      []string `mapstructure:"ignore_list"`
	InitialSync     bool     `mapstructure:"initial_sync"`
}

var Default = Config{
	LogLevel:   "INFO",
	LogFile:    "mirrorsync.log",
	DBPath:     "mirrorsync.db",
	DaemonPort: 9101,
	BufferSize: 100,
	IgnoreList: []string{},
}

// Dir is where the default config and database live.
func Dir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home dir: %w", err)
	}

	return filepath.Join(home, ".mirrorsync"), nil
}

// Load reads the config into v. An explicit file must exist; otherwise
// config.{yaml,json,toml} is looked up in the working directory and in Dir,
// and its absence is not an error.
func Load(v *viper.Viper, file string) (*Config, error) {
	configDir, err := Dir()
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(configDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create config dir: %w", err)
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		v.AddConfigPath(configDir)
	}

	v.SetDefault("log_level", Default.LogLevel)
	v.SetDefault("log_file", Default.LogFile)
	v.SetDefault("db_path", filepath.Join(configDir, Default.DBPath))
	v.SetDefault("daemon_port", Default.DaemonPort)
	v.SetDefault("buffer_size", Default.BufferSize)
	v.SetDefault("ignore_list", Default.IgnoreList)
	v.SetDefault("initial_sync", Default.InitialSync)

	v.SetEnvPrefix("MIRRORSYNC")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	// AutomaticEnv only covers keys viper already knows about
	_ = v.BindEnv("source_root")
	_ = v.BindEnv("destination_root")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := errors.AsType[viper.ConfigFileNotFoundError](err); !ok || file != "" {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// Validate normalizes both roots to absolute paths and checks that they
// can be mirrored. The destination is created when missing.
func (c *Config) Validate() error {
	if c.SourceRoot == "" {
		return errors.New("source_root is required")
	}
	if c.DestinationRoot == "" {
		return errors.New("destination_root is required")
	}

	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	if c.BufferSize <= 0 {
		c.BufferSize = Default.BufferSize
	}

	src, err := filepath.Abs(c.SourceRoot)
	if err != nil {
		return fmt.Errorf("invalid source_root: %w", err)
	}
	dst, err := filepath.Abs(c.DestinationRoot)
	if err != nil {
		return fmt.Errorf("invalid destination_root: %w", err)
	}

	info, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("source directory not found: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("source_root %s is not a directory", src)
	}

	if _, err := pathmap.New(src, dst).Rel(dst); err == nil {
		return fmt.Errorf("destination_root %s must not be inside source_root %s", dst, src)
	}

	if err := os.MkdirAll(dst, 0755); err != nil {
		return fmt.Errorf("failed to create destination dir: %w", err)
	}

	c.SourceRoot = src
	c.DestinationRoot = dst
	return nil
}
