package config

import (
	"fmt"
	"strings"
)

// Validate checks cross-field rules that struct tags cannot express.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("server.shutdown_timeout must be > 0 (got %s)", c.Server.ShutdownTimeout)
	}
	if !c.Database.UseMemory() {
		if c.Database.MaxOpenConns <= 0 {
			return fmt.Errorf("database.max_open_conns must be > 0 (got %d)", c.Database.MaxOpenConns)
		}
		if c.Database.MaxIdleConns < 0 || c.Database.MaxIdleConns > c.Database.MaxOpenConns {
			return fmt.Errorf("database.max_idle_conns must be within [0, %d] (got %d)", c.Database.MaxOpenConns, c.Database.MaxIdleConns)
		}
	}
	if c.Auth.SessionTTL <= 0 {
		return fmt.Errorf("auth.session_ttl must be > 0 (got %s)", c.Auth.SessionTTL)
	}
	if (c.Auth.AdminUsername == "") != (c.Auth.AdminPassword == "") {
		return fmt.Errorf("auth.admin_username and auth.admin_password must be set together")
	}
	if c.Auth.SSOEnabled() && (c.Auth.OIDCClientSecret == "" || c.Auth.OIDCRedirectURL == "") {
		return fmt.Errorf("auth: oidc_client_secret and oidc_redirect_url are required when OIDC is configured")
	}
	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		return fmt.Errorf("log.format must be json or text (got %q)", c.Log.Format)
	}
	return nil
}
