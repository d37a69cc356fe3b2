// Package config loads application settings from YAML and the environment.
package config

import "time"

// Config is the root application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Auth     AuthConfig     `yaml:"auth"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Addr            string        `yaml:"addr"             env:"ADDR"                    env-default:":8080"`
	WebDir          string        `yaml:"web_dir"          env:"WEB_DIR"                 env-default:"web"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// DatabaseConfig holds PostgreSQL connection settings. An empty URL selects
// the in-memory store.
type DatabaseConfig struct {
	URL             string        `yaml:"url"               env:"DATABASE_URL"`
	MaxOpenConns    int           `yaml:"max_open_conns"    env:"DATABASE_MAX_OPEN_CONNS"    env-default:"10"`
	MaxIdleConns    int           `yaml:"max_idle_conns"    env:"DATABASE_MAX_IDLE_CONNS"    env-default:"5"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env:"DATABASE_CONN_MAX_LIFETIME" env-default:"5m"`
}

// AuthConfig holds session and SSO settings.
type AuthConfig struct {
	SessionTTL       time.Duration `yaml:"session_ttl"        env:"AUTH_SESSION_TTL"        env-default:"24h"`
	AdminUsername    string        `yaml:"admin_username"     env:"AUTH_ADMIN_USERNAME"`
	AdminPassword    string        `yaml:"admin_password"     env:"AUTH_ADMIN_PASSWORD"`
	OIDCIssuer       string        `yaml:"oidc_issuer"        env:"AUTH_OIDC_ISSUER"`
	OIDCClientID     string        `yaml:"oidc_client_id"     env:"AUTH_OIDC_CLIENT_ID"`
	OIDCClientSecret string        `yaml:"oidc_client_secret" env:"AUTH_OIDC_CLIENT_SECRET"`
	OIDCRedirectURL  string        `yaml:"oidc_redirect_url"  env:"AUTH_OIDC_REDIRECT_URL"`
	Disabled         bool          `yaml:"disabled"           env:"AUTH_DISABLED"           env-default:"false"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// SSOEnabled reports whether OIDC single sign-on is configured.
func (c AuthConfig) SSOEnabled() bool {
	return c.OIDCIssuer != "" && c.OIDCClientID != ""
}

// UseMemory reports whether the in-memory store should be used.
func (c DatabaseConfig) UseMemory() bool {
	return c.URL == ""
}
