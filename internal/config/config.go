package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"codeberg.org/mutker/nvstat/internal/errors"
	"codeberg.org/mutker/nvstat/internal/logger"
)

const (
	DefaultInterval = 2 // seconds
	DefaultLogLevel = "warning"

	configName       = "nvstat"
	configType       = "toml"
	systemConfigPath = "/etc"
	envConfigFile    = "NVSTAT_CONFIG"
)

type Config struct {
	Interval int    `mapstructure:"interval"`
	LogLevel string `mapstructure:"log_level"`
	NoColor  bool   `mapstructure:"no_color"`
	ForceSMI bool   `mapstructure:"smi"`
	Record   bool   `mapstructure:"record"`
	Database string `mapstructure:"database"`
}

// Load merges configuration sources in ascending precedence: flag
// defaults, an optional TOML config file, then explicitly set flags.
func Load(args []string) (*Config, error) {
	errFactory := errors.New()

	fs := pflag.NewFlagSet(configName, pflag.ContinueOnError)
	fs.Int("interval", DefaultInterval, "Seconds between dashboard refreshes")
	fs.String("log-level", DefaultLogLevel, "Log level (debug, info, warning, error)")
	fs.Bool("no-color", false, "Disable colored output")
	fs.Bool("smi", false, "Query GPUs with nvidia-smi instead of NVML")
	fs.Bool("record", false, "Record samples to a local metrics database")
	fs.String("database", "", "Path to the metrics database")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()

	// Config file keys use underscores while flags use dashes
	flagKeys := map[string]string{
		"interval":  "interval",
		"log_level": "log-level",
		"no_color":  "no-color",
		"smi":       "smi",
		"record":    "record",
		"database":  "database",
	}
	for key, name := range flagKeys {
		if err := v.BindPFlag(key, fs.Lookup(name)); err != nil {
			return nil, errFactory.Wrap(errors.ErrBindFlags, err)
		}
	}

	if path := os.Getenv(envConfigFile); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, errFactory.Wrap(errors.ErrReadConfig, err)
		}
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(systemConfigPath)
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, errFactory.Wrap(errors.ErrReadConfig, err)
			}
		}
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, errFactory.Wrap(errors.ErrInvalidConfig, err)
	}

	if config.Record && config.Database == "" {
		config.Database = defaultDatabasePath()
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) Validate() error {
	errFactory := errors.New()

	if c.Interval < 1 {
		return errFactory.New(errors.ErrInvalidInterval).WithData(c.Interval)
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return err
	}

	return nil
}

func defaultDatabasePath() string {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, configName, "metrics.db")
	}

	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(os.TempDir(), configName, "metrics.db")
	}

	return filepath.Join(home, ".local", "share", configName, "metrics.db")
}
