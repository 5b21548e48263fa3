// Package config loads converter settings.
//
// Sources, lowest precedence first: built-in defaults, an optional
// converter.yaml (./ or ~/.currency-converter/) or the file given with
// --config, a .env file in the working directory, CONVERTER_* variables.
// With none of them present the converter uses the built-in PKR table.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"go-currency-converter/domain"
	"go-currency-converter/rates"
)

const envPrefix = "CONVERTER"

// Config represents the complete application configuration.
type Config struct {
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
	Rates   RatesConfig   `mapstructure:"rates"   yaml:"rates"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"  yaml:"level"`  // "debug", "info", "warn", "error", "none"
	Format string `mapstructure:"format" yaml:"format"` // "logfmt" or "json"
}

// RatesConfig the exchange rate table
type RatesConfig struct {
	Base  string      `mapstructure:"base"  yaml:"base"`
	Table []RateEntry `mapstructure:"table" yaml:"table"` // display order is list order
}

// RateEntry one currency of the table
type RateEntry struct {
	Code string  `mapstructure:"code" yaml:"code"`
	Rate float64 `mapstructure:"rate" yaml:"rate"`
}

// Load reads defaults, the optional config file and the environment.
// path, when set, must name a readable config file.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error reading .env: %w", err)
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("converter")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(filepath.Join(homeDir(), ".currency-converter"))
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	return &cfg, nil
}

// RateTable builds the validated table described by c
func (c *Config) RateTable() (*rates.Table, error) {
	entries := make([]rates.Entry, 0, len(c.Rates.Table))
	for _, e := range c.Rates.Table {
		entries = append(entries, rates.Entry{Code: domain.Currency(e.Code), Rate: domain.Rate(e.Rate)})
	}
	t, err := rates.NewTable(domain.Currency(c.Rates.Base), entries)
	if err != nil {
		return nil, fmt.Errorf("rate table: %w", err)
	}
	return t, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("logging.level", "warn")
	v.SetDefault("logging.format", "logfmt")

	v.SetDefault("rates.base", string(rates.DefaultBase))
	table := make([]map[string]any, 0, len(rates.DefaultEntries()))
	for _, e := range rates.DefaultEntries() {
		table = append(table, map[string]any{"code": string(e.Code), "rate": float64(e.Rate)})
	}
	v.SetDefault("rates.table", table)
}

// homeDir returns the user's home directory.
func homeDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "."
	}
	return home
}
