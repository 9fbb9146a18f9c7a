package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const envPrefix = "ADMIN_PANEL"

// DefaultMembersURL is the employee feed the directory reads at startup.
const DefaultMembersURL = "https://geektrust.s3-ap-southeast-1.amazonaws.com/adminui-problem/members.json"

type Config struct {
	Server    ServerConfig
	Directory DirectoryConfig
	Database  DatabaseConfig
	Auth      AuthConfig
	Log       LogConfig
}

type ServerConfig struct {
	Addr            string
	ShutdownTimeout time.Duration
}

type DirectoryConfig struct {
	URL string
	// Timeout of zero leaves the fetch unbounded.
	Timeout time.Duration
}

type DatabaseConfig struct {
	Path string
}

type AuthConfig struct {
	Secret   string
	TokenTTL time.Duration
}

type LogConfig struct {
	Level string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.shutdown_timeout", "10s")
	v.SetDefault("directory.url", DefaultMembersURL)
	v.SetDefault("directory.timeout", "0s")
	v.SetDefault("database.path", "admin_panel.db")
	v.SetDefault("auth.secret", "change-me")
	v.SetDefault("auth.token_ttl", "72h")
	v.SetDefault("log.level", "info")
}

// Load reads configuration from defaults, an optional file and ADMIN_PANEL_*
// environment variables, in increasing priority.
func Load(path string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	return FromViper(v)
}

func FromViper(v *viper.Viper) (*Config, error) {
	cfg := &Config{
		Server: ServerConfig{
			Addr:            v.GetString("server.addr"),
			ShutdownTimeout: v.GetDuration("server.shutdown_timeout"),
		},
		Directory: DirectoryConfig{
			URL:     v.GetString("directory.url"),
			Timeout: v.GetDuration("directory.timeout"),
		},
		Database: DatabaseConfig{
			Path: v.GetString("database.path"),
		},
		Auth: AuthConfig{
			Secret:   v.GetString("auth.secret"),
			TokenTTL: v.GetDuration("auth.token_ttl"),
		},
		Log: LogConfig{
			Level: v.GetString("log.level"),
		},
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) validate() error {
	var errs []error
	if c.Directory.URL == "" {
		errs = append(errs, errors.New("directory.url is required"))
	}
	if c.Database.Path == "" {
		errs = append(errs, errors.New("database.path is required"))
	}
	if c.Auth.Secret == "" {
		errs = append(errs, errors.New("auth.secret is required"))
	}
	if c.Auth.TokenTTL <= 0 {
		errs = append(errs, errors.New("auth.token_ttl must be positive"))
	}
	if c.Directory.Timeout < 0 {
		errs = append(errs, errors.New("directory.timeout must not be negative"))
	}
	return errors.Join(errs...)
}
