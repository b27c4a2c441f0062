package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/ravenfield/recview/internal/format"
)

// Config holds application configuration.
type Config struct {
	Database DatabaseConfig
	Display  DisplayConfig
	UI       UIConfig
}

// DatabaseConfig holds sqlite settings.
type DatabaseConfig struct {
	Path string
}

// DisplayConfig is the system-wide tier of the display preference
// resolution. Empty strings and zero values mean "not configured here";
// resolution then falls through to the built-in defaults per option.
type DisplayConfig struct {
	NumberGroupingSeparator string `mapstructure:"number_grouping_separator"`
	DecimalSeparator        string `mapstructure:"decimal_separator"`
	DateFormat              string `mapstructure:"date_format"`
	TimeFormat              string `mapstructure:"time_format"`

	// CurrencyID selects from Currencies; when empty, DefaultCurrency (if
	// set) is used as an embedded payload instead.
	CurrencyID                string            `mapstructure:"currency_id"`
	DefaultCurrency           *format.Currency  `mapstructure:"default_currency"`
	Currencies                []format.Currency `mapstructure:"currencies"`
	CurrencySignificantDigits int               `mapstructure:"currency_significant_digits"`
}

// UIConfig holds presentation settings.
type UIConfig struct {
	PageSize   int
	MaxColumns int
}

// Load reads configuration from file and env. Env var overrides use prefix RECVIEW_.
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("database.path", filepath.Join(os.Getenv("HOME"), ".local", "share", "recview", "recview.db"))
	v.SetDefault("display.number_grouping_separator", "")
	v.SetDefault("display.decimal_separator", "")
	v.SetDefault("display.date_format", "dd.MM.yyyy")
	v.SetDefault("display.time_format", "HH:mm:ss")
	v.SetDefault("display.currency_id", "")
	v.SetDefault("display.currency_significant_digits", 0)
	v.SetDefault("ui.page_size", 20)
	v.SetDefault("ui.max_columns", 0)

	v.SetConfigType("toml")

	cfgPath := os.Getenv("RECVIEW_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "recview"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("RECVIEW")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Used for persisting system-wide display settings changed at runtime.
func Save(c Config) error {
	path := os.Getenv("RECVIEW_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "recview", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("database.path", c.Database.Path)
	v.Set("display.number_grouping_separator", c.Display.NumberGroupingSeparator)
	v.Set("display.decimal_separator", c.Display.DecimalSeparator)
	v.Set("display.date_format", c.Display.DateFormat)
	v.Set("display.time_format", c.Display.TimeFormat)
	v.Set("display.currency_id", c.Display.CurrencyID)
	v.Set("display.currency_significant_digits", c.Display.CurrencySignificantDigits)
	v.Set("ui.page_size", c.UI.PageSize)
	v.Set("ui.max_columns", c.UI.MaxColumns)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

// SystemSettings maps the loaded display configuration onto the
// system-wide tier consumed by the preference resolver.
func (c Config) SystemSettings() format.SystemSettings {
	d := c.Display
	return format.SystemSettings{
		NumberGroupingSeparator:   optional(d.NumberGroupingSeparator),
		DecimalSeparator:          optional(d.DecimalSeparator),
		DateFormat:                optional(d.DateFormat),
		TimeFormat:                optional(d.TimeFormat),
		CurrencySignificantDigits: optionalInt(d.CurrencySignificantDigits),
		Currency: format.SystemCurrency{
			ID:        d.CurrencyID,
			Embedded:  d.DefaultCurrency,
			Available: d.Currencies,
		},
	}
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func optionalInt(n int) *int {
	if n == 0 {
		return nil
	}
	return &n
}
