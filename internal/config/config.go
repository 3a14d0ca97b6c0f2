// Package config loads calleditor settings from YAML, environment and
// defaults.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/gookit/validate"
	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"
)

type DatabaseConfig struct {
	Path string `mapstructure:"path" validate:"required"`
}

type FetchConfig struct {
	Limit int `mapstructure:"limit" validate:"required|int|min:1|max:500"`
}

type LoggerConfig struct {
	Level string `mapstructure:"level" validate:"required|in:trace,debug,info,warn,error"`
	File  string `mapstructure:"file"`
}

type DaemonConfig struct {
	Socket string `mapstructure:"socket" validate:"required"`
	Remote bool   `mapstructure:"remote"`
}

type MetricsConfig struct {
	Addr string `mapstructure:"addr"`
}

type Config struct {
	Path     string
	Database DatabaseConfig `mapstructure:"database"`
	Fetch    FetchConfig    `mapstructure:"fetch"`
	Logger   LoggerConfig   `mapstructure:"logger"`
	Daemon   DaemonConfig   `mapstructure:"daemon"`
	Metrics  MetricsConfig  `mapstructure:"metrics"`
	Location string         `mapstructure:"location"`
}

// Load reads configuration. An explicit path must exist; otherwise
// .calleditor.yaml is looked up in the working and home directories and
// is optional. CALLEDITOR_* variables override file values.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix("CALLEDITOR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		expanded, err := homedir.Expand(path)
		if err != nil {
			return nil, fmt.Errorf("expand config path: %w", err)
		}
		v.SetConfigFile(expanded)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", expanded, err)
		}
	} else {
		v.SetConfigName(".calleditor")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := homedir.Dir(); err == nil {
			v.AddConfigPath(home)
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	var conf Config
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("unable to decode into config struct: %w", err)
	}
	conf.Path = v.ConfigFileUsed()

	if err := conf.expandPaths(); err != nil {
		return nil, err
	}
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &conf, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("database.path", "~/.calleditor/calllog.sqlite")
	v.SetDefault("fetch.limit", 50)
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.file", "~/.calleditor/calleditor.log")
	v.SetDefault("daemon.socket", "~/.calleditor/calleditor.sock")
	v.SetDefault("daemon.remote", false)
	v.SetDefault("metrics.addr", "")
	v.SetDefault("location", "")
}

func (c *Config) expandPaths() error {
	for _, p := range []*string{&c.Database.Path, &c.Logger.File, &c.Daemon.Socket} {
		expanded, err := homedir.Expand(*p)
		if err != nil {
			return fmt.Errorf("expand %q: %w", *p, err)
		}
		*p = expanded
	}
	return nil
}

// Validate checks the struct tags and the time zone name.
func (c *Config) Validate() error {
	v := validate.Struct(c)
	if !v.Validate() {
		return fmt.Errorf("invalid config: %w", v.Errors)
	}
	if _, err := c.TimeLocation(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// TimeLocation resolves the zone used for date/time strings. Empty means
// the machine's local zone.
func (c *Config) TimeLocation() (*time.Location, error) {
	if c.Location == "" || strings.EqualFold(c.Location, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Location)
	if err != nil {
		return nil, fmt.Errorf("load location %q: %w", c.Location, err)
	}
	return loc, nil
}
