// Package config loads process configuration from an optional YAML file
// and DEVCONNECT_* environment variables.
package config

import (
	"strings"
	"time"

	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"

	"github.com/goliatone/go-devconnect"
	"github.com/goliatone/go-devconnect/persistence"
)

// EnvPrefix namespaces environment overrides, e.g. DEVCONNECT_AUTH_SIGNING_KEY
const EnvPrefix = "DEVCONNECT"

type Config struct {
	Server   ServerConfig   `mapstructure:"server" json:"server"`
	Database DatabaseConfig `mapstructure:"database" json:"database"`
	Auth     AuthConfig     `mapstructure:"auth" json:"auth"`
	Log      LogConfig      `mapstructure:"log" json:"log"`
}

type ServerConfig struct {
	Addr            string        `mapstructure:"addr" json:"addr"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" json:"shutdown_timeout"`
	AccessLog       bool          `mapstructure:"access_log" json:"access_log"`
}

type DatabaseConfig struct {
	Driver       string `mapstructure:"driver" json:"driver"`
	DSN          string `mapstructure:"dsn" json:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns" json:"max_open_conns"`
}

type AuthConfig struct {
	SigningKey string        `mapstructure:"signing_key" json:"signing_key"`
	TokenTTL   time.Duration `mapstructure:"token_ttl" json:"token_ttl"`
	Issuer     string        `mapstructure:"issuer" json:"issuer"`
	HashCost   int           `mapstructure:"hash_cost" json:"hash_cost"`
	UseHashid  bool          `mapstructure:"use_hashid" json:"use_hashid"`
}

type LogConfig struct {
	Level  string `mapstructure:"level" json:"level"`
	Format string `mapstructure:"format" json:"format"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":5000")
	v.SetDefault("server.shutdown_timeout", 10*time.Second)
	v.SetDefault("server.access_log", true)

	v.SetDefault("database.driver", persistence.DriverSQLite)
	v.SetDefault("database.dsn", "file:devconnect.db?cache=shared&_pragma=foreign_keys(1)")
	v.SetDefault("database.max_open_conns", 10)

	v.SetDefault("auth.signing_key", "")
	v.SetDefault("auth.token_ttl", devconnect.DefaultTokenTTL)
	v.SetDefault("auth.issuer", "devconnect")
	v.SetDefault("auth.hash_cost", devconnect.DefaultHashCost)
	v.SetDefault("auth.use_hashid", false)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Load reads path (when not empty) and applies environment overrides
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate will validate the loaded values
func (c Config) Validate() error {
	if err := validation.ValidateStruct(&c.Server,
		validation.Field(&c.Server.Addr, validation.Required),
	); err != nil {
		return err
	}

	if err := validation.ValidateStruct(&c.Database,
		validation.Field(&c.Database.Driver,
			validation.Required,
			validation.In(persistence.DriverSQLite, persistence.DriverPostgres),
		),
		validation.Field(&c.Database.DSN, validation.Required),
	); err != nil {
		return err
	}

	return validation.ValidateStruct(&c.Auth,
		validation.Field(&c.Auth.SigningKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.Auth.TokenTTL, validation.Required),
		validation.Field(&c.Auth.HashCost, validation.Min(4), validation.Max(31)),
	)
}

// AuthOptions is the immutable auth configuration injected into services
func (c Config) AuthOptions() devconnect.Options {
	return devconnect.Options{
		SigningKey: c.Auth.SigningKey,
		TokenTTL:   c.Auth.TokenTTL,
		Issuer:     c.Auth.Issuer,
		HashCost:   c.Auth.HashCost,
		UseHashid:  c.Auth.UseHashid,
	}
}

func (c Config) PersistenceConfig() persistence.Config {
	return persistence.Config{
		Driver:       c.Database.Driver,
		DSN:          c.Database.DSN,
		MaxOpenConns: c.Database.MaxOpenConns,
	}
}

// Redacted returns a copy safe to print
func (c Config) Redacted() Config {
	if c.Auth.SigningKey != "" {
		c.Auth.SigningKey = "********"
	}
	if c.Database.DSN != "" && c.Database.Driver == persistence.DriverPostgres {
		c.Database.DSN = "********"
	}
	return c
}
