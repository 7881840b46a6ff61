// Package config loads process configuration from defaults, an optional YAML
// file and NOVACANA_* environment variables.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix is prepended to every environment override, e.g. NOVACANA_SERVER_ADDR.
const EnvPrefix = "NOVACANA"

type Config struct {
	Server    ServerConfig    `mapstructure:"server"`
	Game      GameConfig      `mapstructure:"game"`
	Pacing    PacingConfig    `mapstructure:"pacing"`
	Logging   LoggingConfig   `mapstructure:"logging"`
	Redis     RedisConfig     `mapstructure:"redis"`
	Telemetry TelemetryConfig `mapstructure:"telemetry"`
}

type ServerConfig struct {
	Addr string `mapstructure:"addr"`
}

type GameConfig struct {
	Seed       int64  `mapstructure:"seed"`
	Strict     bool   `mapstructure:"strict"`
	Transcript string `mapstructure:"transcript"` // append the game log here when set
}

// PacingConfig sets the pauses a session inserts while a chain resolves.
type PacingConfig struct {
	ResolveDelay time.Duration `mapstructure:"resolve_delay"`
	DrainDelay   time.Duration `mapstructure:"drain_delay"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // "json" or "console"
}

// RedisConfig enables snapshot fan-out when Addr is set.
type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	Channel  string `mapstructure:"channel"`
}

func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

// TelemetryConfig enables OTLP trace export when Endpoint is set.
type TelemetryConfig struct {
	Endpoint    string `mapstructure:"endpoint"`
	ServiceName string `mapstructure:"service_name"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":9000")
	v.SetDefault("game.seed", 0)
	v.SetDefault("game.strict", false)
	v.SetDefault("game.transcript", "")
	v.SetDefault("pacing.resolve_delay", 2500*time.Millisecond)
	v.SetDefault("pacing.drain_delay", 1500*time.Millisecond)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("redis.addr", "")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("redis.channel", "novacana:snapshots")
	v.SetDefault("telemetry.endpoint", "")
	v.SetDefault("telemetry.service_name", "novacana")
}

// Load reads the config file at path, if any, and applies environment
// overrides on top. An empty path uses defaults and environment only.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate rejects values no component can run with.
func (c *Config) Validate() error {
	var errs []error
	if c.Server.Addr == "" {
		errs = append(errs, errors.New("server.addr must not be empty"))
	}
	if c.Pacing.ResolveDelay < 0 || c.Pacing.DrainDelay < 0 {
		errs = append(errs, errors.New("pacing delays must not be negative"))
	}
	if c.Redis.Enabled() && c.Redis.Channel == "" {
		errs = append(errs, errors.New("redis.channel must be set when redis.addr is"))
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}
