package config_test

import (
	"testing"
	"time"

	"github.com/jrsteele09/isp-console/internal/config"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	c := config.FromViper(viper.New())

	require.Equal(t, "DEV", c.GetEnv())
	require.Equal(t, "http://localhost:8080/api/v1", c.GetBaseURL())
	require.Equal(t, 15*time.Second, c.GetRequestTimeout())
	require.Equal(t, 2*time.Second, c.GetSlowRequestThreshold())
	require.Equal(t, 3, c.GetQueryAttempts())
	require.Equal(t, 2, c.GetMutationAttempts())
	require.Equal(t, "sqlite", c.GetStorageDriver())
	require.Equal(t, ":8080", c.GetPort())
	require.Equal(t, "admin", c.GetAdminLoginID())
}

func TestOverrides(t *testing.T) {
	v := viper.New()
	v.Set("env", "prod")
	v.Set("api.base_url", "https://billing.example.net/api/v1/")
	v.Set("api.timeout", "5s")
	v.Set("api.query_attempts", 0)
	v.Set("devserver.port", ":9090")
	c := config.FromViper(v)

	require.Equal(t, "PROD", c.GetEnv())
	require.Equal(t, "https://billing.example.net/api/v1", c.GetBaseURL())
	require.Equal(t, 5*time.Second, c.GetRequestTimeout())
	require.Equal(t, 3, c.GetQueryAttempts(), "non-positive attempts fall back to the default")
	require.Equal(t, ":9090", c.GetPort())
}

func TestEnvironmentVariables(t *testing.T) {
	t.Setenv("ISP_CONSOLE_STORAGE_DRIVER", "MEMORY")
	t.Setenv("ISP_CONSOLE_API_SLOW_THRESHOLD", "750ms")
	c := config.New()

	require.Equal(t, "memory", c.GetStorageDriver())
	require.Equal(t, 750*time.Millisecond, c.GetSlowRequestThreshold())
}
