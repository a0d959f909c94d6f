package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

type Config struct {
	Figma    FigmaConfig    `mapstructure:"figma"`
	HTTP     HTTPConfig     `mapstructure:"http"`
	Log      LogConfig      `mapstructure:"log"`
	Manifest ManifestConfig `mapstructure:"manifest"`
}

type FigmaConfig struct {
	APIKey  string        `mapstructure:"api_key"`
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

type HTTPConfig struct {
	Port            int           `mapstructure:"port"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

type ManifestConfig struct {
	Path string `mapstructure:"path"`
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.HTTP.Port)
}

var defaults = map[string]any{
	"figma.api_key":         "",
	"figma.base_url":        "https://api.figma.com/v1",
	"figma.timeout":         time.Duration(0),
	"http.port":             3000,
	"http.shutdown_timeout": 10 * time.Second,
	"log.level":             "info",
	"log.format":            "text",
	"manifest.path":         "",
}

// flagKeys maps command-line flags onto configuration keys.
var flagKeys = map[string]string{
	"port":           "http.port",
	"figma-base-url": "figma.base_url",
	"log-level":      "log.level",
	"log-format":     "log.format",
	"manifest":       "manifest.path",
}

// LoadDotEnv reads variables from the given .env files into the process
// environment without overriding values that are already set. Missing
// files are ignored.
func LoadDotEnv(files ...string) error {
	if len(files) == 0 {
		files = []string{".env"}
	}
	for _, f := range files {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return fmt.Errorf("failed to load %s: %w", f, err)
		}
	}
	return nil
}

// Load reads configs/settings.yml when present, then environment variables,
// then any flags that were explicitly set. FIGMA_API_KEY and PORT are
// honored under their conventional names.
func Load(flags *pflag.FlagSet) (*Config, error) {
	v := viper.New()
	v.AddConfigPath("./configs")
	v.AddConfigPath("/configs")
	v.SetConfigName("settings")
	v.SetConfigType("yml")

	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	if err := v.BindEnv("http.port", "PORT", "HTTP_PORT"); err != nil {
		return nil, err
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, err
				}
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	if cfg.HTTP.Port <= 0 || cfg.HTTP.Port > 65535 {
		return nil, fmt.Errorf("invalid http port %d", cfg.HTTP.Port)
	}
	if cfg.HTTP.ShutdownTimeout <= 0 {
		return nil, fmt.Errorf("invalid http shutdown timeout %s: must be positive", cfg.HTTP.ShutdownTimeout)
	}
	if cfg.Figma.Timeout < 0 {
		return nil, fmt.Errorf("invalid figma timeout %s", cfg.Figma.Timeout)
	}

	return &cfg, nil
}
