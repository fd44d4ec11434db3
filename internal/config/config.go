// Package config loads rollcall settings with viper.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix for environment overrides, e.g. ROLLCALL_LOG_LEVEL.
const EnvPrefix = "ROLLCALL"

// Config holds rollcall's runtime settings.
type Config struct {
	Profile     string        `mapstructure:"profile"`
	LogFile     string        `mapstructure:"log_file"`
	LogLevel    string        `mapstructure:"log_level"`
	SaveTimeout time.Duration `mapstructure:"save_timeout"`
	SaveDelay   time.Duration `mapstructure:"save_delay"`
	CardWidth   int           `mapstructure:"card_width"`
}

// Load reads configuration from defaults, an optional YAML file, ROLLCALL_*
// env vars and the given flag set, in increasing order of precedence.
// cfgFile may be empty, in which case ~/.config/rollcall/config.yaml is tried.
// Only flags that were explicitly set override lower layers.
func Load(cfgFile string, flags *pflag.FlagSet) (Config, error) {
	v := viper.New()

	home, _ := os.UserHomeDir()
	v.SetDefault("profile", filepath.Join(home, ".local", "share", "rollcall", "profile.yaml"))
	v.SetDefault("log_file", "")
	v.SetDefault("log_level", "info")
	v.SetDefault("save_timeout", 5*time.Second)
	v.SetDefault("save_delay", 300*time.Millisecond)
	v.SetDefault("card_width", 72)

	v.SetConfigType("yaml")
	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.AddConfigPath(filepath.Join(home, ".config", "rollcall"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if flags != nil {
		for _, name := range []string{"profile", "log-file", "log-level", "save-timeout", "card-width"} {
			f := flags.Lookup(name)
			if f == nil {
				continue
			}
			if err := v.BindPFlag(strings.ReplaceAll(name, "-", "_"), f); err != nil {
				return Config{}, fmt.Errorf("bind flag %s: %w", name, err)
			}
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.CardWidth < 20 {
		c.CardWidth = 20
	}
	return c, nil
}
