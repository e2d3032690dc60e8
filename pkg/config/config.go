package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/subosito/gotenv"

	"github.com/yurifrl/burnrate/pkg/models"
	"github.com/yurifrl/burnrate/pkg/report"
)

const (
	EnvPrefix   = "BURNRATE"
	DotEnvFile  = ".env"
	DefaultName = "burnrate"
)

type Config struct {
	OutputDir    string   `mapstructure:"output_dir"`
	OutputFile   string   `mapstructure:"output_file"`
	TemplateDir  string   `mapstructure:"template_dir"`
	TemplateName string   `mapstructure:"template_name"`
	Title        string   `mapstructure:"title"`
	Currency     string   `mapstructure:"currency"`
	Chart        bool     `mapstructure:"chart"`
	DateLayouts  []string `mapstructure:"date_layouts"`
	LogLevel     string   `mapstructure:"log_level"`
}

// flagKeys maps command line flags to config keys.
var flagKeys = map[string]string{
	"out-dir":      "output_dir",
	"template-dir": "template_dir",
	"title":        "title",
	"currency":     "currency",
	"chart":        "chart",
	"date-layout":  "date_layouts",
	"log-level":    "log_level",
}

// Build loads configuration from, lowest to highest precedence: defaults,
// the config file, BURNRATE_* environment variables (a .env file in the
// working directory is loaded first) and flags that were set explicitly.
// An empty cfgFile looks for burnrate.yaml in the working directory and
// ~/.config/burnrate, and tolerates its absence.
func Build(cfgFile string, flags *pflag.FlagSet) (*Config, error) {
	if _, err := os.Stat(DotEnvFile); err == nil {
		if err := gotenv.Load(DotEnvFile); err != nil {
			return nil, fmt.Errorf("failed to load %s: %w", DotEnvFile, err)
		}
	}

	v := viper.New()
	v.SetDefault("output_dir", report.DefaultOutputDir)
	v.SetDefault("output_file", report.DefaultFile)
	v.SetDefault("template_name", report.DefaultTemplate)
	v.SetDefault("currency", report.DefaultCurrency)
	v.SetDefault("chart", false)
	v.SetDefault("date_layouts", models.DefaultDateLayouts)
	v.SetDefault("log_level", "info")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName(DefaultName)
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.config/burnrate")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if cfgFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("failed to bind flag %s: %w", name, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) Validate() error {
	if _, err := log.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log_level %q: %w", c.LogLevel, err)
	}
	if len(c.DateLayouts) == 0 {
		return errors.New("date_layouts cannot be empty")
	}
	return nil
}

// Level returns the configured log level. Validate guarantees it parses.
func (c *Config) Level() log.Level {
	lvl, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return log.InfoLevel
	}
	return lvl
}

// Renderer returns the report renderer settings.
func (c *Config) Renderer() report.Config {
	return report.Config{
		TemplateDir:  c.TemplateDir,
		TemplateName: c.TemplateName,
		OutputDir:    c.OutputDir,
		OutputFile:   c.OutputFile,
		Currency:     c.Currency,
		Title:        c.Title,
		Chart:        c.Chart,
	}
}
