package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"

	"quire-cli/internal/status"
)

// Config holds runtime configuration.
// Values come from .quire.yaml, QUIRE_* env vars and CLI flags (highest wins).
type Config struct {
	Dir           string                     `mapstructure:"dir"`
	Format        string                     `mapstructure:"format"`
	Pretty        bool                       `mapstructure:"pretty"`
	Glyphs        string                     `mapstructure:"glyphs"`
	WatchDebounce time.Duration              `mapstructure:"watch_debounce"`
	Status        map[string]status.Override `mapstructure:"status"`
}

// New returns a viper instance with defaults, env binding and config search paths applied.
func New() *viper.Viper {
	v := viper.New()
	v.SetDefault("dir", "")
	v.SetDefault("format", "json")
	v.SetDefault("pretty", false)
	v.SetDefault("glyphs", "unicode")
	v.SetDefault("watch_debounce", 150*time.Millisecond)

	v.SetConfigName(".quire") // .yaml is implicit
	v.SetEnvPrefix("QUIRE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if override := os.Getenv("QUIRE_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	return v
}

// Load reads the config file (a missing file is fine) and decodes everything into Config.
func Load(v *viper.Viper) (Config, error) {
	if err := v.ReadInConfig(); err != nil {
		var nf viper.ConfigFileNotFoundError
		if !errors.As(err, &nf) {
			return Config{}, err
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	cfg.Glyphs = strings.ToLower(strings.TrimSpace(cfg.Glyphs))
	if cfg.WatchDebounce <= 0 {
		cfg.WatchDebounce = 150 * time.Millisecond
	}
	return cfg, nil
}

// StatusTable builds the descriptor table with configured label/icon overrides.
func (c Config) StatusTable() (*status.Table, error) {
	return status.NewTable(c.Status)
}
