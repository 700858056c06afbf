package config

import (
	"fmt"
	"time"
)

type DevServerConfig interface {
	GetPort() string
	GetJWTSecret() string
	GetAccessTokenExpiry() time.Duration
	GetRefreshTokenExpiry() time.Duration
	GetAdminLoginID() string
	GetAdminPassword() string
}

var _ DevServerConfig = mainConfig{}

func (c mainConfig) GetPort() string {
	port := c.v.GetString("devserver.port")
	if port == "" {
		port = "8080"
	}
	if port[0] != ':' {
		port = fmt.Sprintf(":%s", port)
	}
	return port
}

func (c mainConfig) GetJWTSecret() string {
	return c.v.GetString("devserver.jwt_secret")
}

func (c mainConfig) GetAccessTokenExpiry() time.Duration {
	return positiveDuration(c.v.GetDuration("devserver.access_token_expiry"), 15*time.Minute)
}

func (c mainConfig) GetRefreshTokenExpiry() time.Duration {
	return positiveDuration(c.v.GetDuration("devserver.refresh_token_expiry"), 7*24*time.Hour)
}

func (c mainConfig) GetAdminLoginID() string {
	return c.v.GetString("devserver.admin_login_id")
}

func (c mainConfig) GetAdminPassword() string {
	return c.v.GetString("devserver.admin_password")
}
