package config

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	envPrefix      = "ISP_CONSOLE"
	configFileName = "console"
	appDirName     = "isp-console"
)

type Config interface {
	EnvConfig
	APIConfig
	StorageConfig
	DevServerConfig
}

type EnvConfig interface {
	GetEnv() string
	GetAppName() string
	GetLogLevel() string
}

type StorageConfig interface {
	GetStorageDriver() string
	GetStoragePath() string
}

type mainConfig struct {
	v *viper.Viper
}

// New resolves configuration from ISP_CONSOLE_* environment variables and an
// optional console.yaml in the working directory or $HOME/.config/isp-console.
func New() Config {
	v := viper.New()
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	v.SetConfigName(configFileName)
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir := defaultConfigDir(); dir != "" {
		v.AddConfigPath(dir)
	}
	_ = v.ReadInConfig() // optional file

	return mainConfig{v: v}
}

// FromViper wraps an already populated viper instance. Defaults are applied
// for any key it leaves unset.
func FromViper(v *viper.Viper) Config {
	setDefaults(v)
	return mainConfig{v: v}
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("env", "DEV")
	v.SetDefault("app_name", "ISP Console")
	v.SetDefault("log_level", "info")

	v.SetDefault("api.base_url", "http://localhost:8080/api/v1")
	v.SetDefault("api.timeout", 15*time.Second)
	v.SetDefault("api.slow_threshold", 2*time.Second)
	v.SetDefault("api.query_attempts", 3)
	v.SetDefault("api.mutation_attempts", 2)
	v.SetDefault("api.startup_delay", 100*time.Millisecond)

	v.SetDefault("storage.driver", "sqlite")
	v.SetDefault("storage.path", filepath.Join(defaultConfigDir(), "console.db"))

	v.SetDefault("devserver.port", "8080")
	v.SetDefault("devserver.jwt_secret", "")
	v.SetDefault("devserver.access_token_expiry", 15*time.Minute)
	v.SetDefault("devserver.refresh_token_expiry", 7*24*time.Hour)
	v.SetDefault("devserver.admin_login_id", "admin")
	v.SetDefault("devserver.admin_password", "")
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".config", appDirName)
}

func (c mainConfig) GetEnv() string {
	return strings.ToUpper(c.v.GetString("env"))
}

func (c mainConfig) GetAppName() string {
	return c.v.GetString("app_name")
}

func (c mainConfig) GetLogLevel() string {
	return c.v.GetString("log_level")
}

func (c mainConfig) GetStorageDriver() string {
	return strings.ToLower(c.v.GetString("storage.driver"))
}

func (c mainConfig) GetStoragePath() string {
	return c.v.GetString("storage.path")
}
