package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "toml"
	configDir  = ".mfimport"
	envPrefix  = "MFI"

	KeyAppID         = "app.id"
	KeyAppKey        = "app.key"
	KeyHost          = "api.host"
	KeyBaseURL       = "api.base_url"
	KeyAPIVersion    = "api.version"
	KeyTokenVersion  = "api.token_version"
	KeyPoolSize      = "api.pool_size"
	KeyForceRelative = "api.force_relative"
	KeyTimeout       = "api.timeout"
	KeyRenewInterval = "api.renew_interval"
	KeyHistoryPath   = "history.path"
	KeyLogLevel      = "log.level"
)

var ErrMissingAppID = errors.New("application id is required (set app.id in config.toml or MFI_APP_ID)")

type Config struct {
	AppID         string
	AppKey        string
	Host          string
	BaseURL       string
	APIVersion    string
	TokenVersion  int
	PoolSize      int
	ForceRelative bool
	Timeout       time.Duration
	RenewInterval time.Duration
	LogLevel      string
}

// Load reads ~/.mfimport/config.toml, or path when set, into v and applies
// MFI_* environment overrides. A missing default config file is not an error.
func Load(v *viper.Viper, path string) (Config, error) {
	if v == nil {
		v = viper.New()
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("resolve home directory: %w", err)
	}

	setDefaults(v, homeDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(configName)
		v.SetConfigType(configType)
		v.AddConfigPath(filepath.Join(homeDir, configDir))
	}

	if err := v.ReadInConfig(); err != nil {
		var configNotFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &configNotFound) {
			return Config{}, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		AppID:         strings.TrimSpace(v.GetString(KeyAppID)),
		AppKey:        v.GetString(KeyAppKey),
		Host:          strings.TrimSpace(v.GetString(KeyHost)),
		BaseURL:       strings.TrimSpace(v.GetString(KeyBaseURL)),
		APIVersion:    strings.TrimSpace(v.GetString(KeyAPIVersion)),
		TokenVersion:  v.GetInt(KeyTokenVersion),
		PoolSize:      v.GetInt(KeyPoolSize),
		ForceRelative: v.GetBool(KeyForceRelative),
		Timeout:       v.GetDuration(KeyTimeout),
		RenewInterval: v.GetDuration(KeyRenewInterval),
		LogLevel:      v.GetString(KeyLogLevel),
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper, homeDir string) {
	v.SetDefault(KeyAppID, "")
	v.SetDefault(KeyAppKey, "")
	v.SetDefault(KeyHost, "www.mediafire.com")
	v.SetDefault(KeyBaseURL, "")
	v.SetDefault(KeyAPIVersion, "1.5")
	v.SetDefault(KeyTokenVersion, 2)
	v.SetDefault(KeyPoolSize, 3)
	v.SetDefault(KeyForceRelative, true)
	v.SetDefault(KeyTimeout, 30*time.Second)
	v.SetDefault(KeyRenewInterval, 8*time.Minute)
	v.SetDefault(KeyHistoryPath, filepath.Join(homeDir, configDir, "history.toml"))
	v.SetDefault(KeyLogLevel, "warn")
}

func (c Config) Validate() error {
	if c.Host == "" {
		return errors.New("api.host must not be empty")
	}
	if c.TokenVersion != 1 && c.TokenVersion != 2 {
		return fmt.Errorf("api.token_version must be 1 or 2, got %d", c.TokenVersion)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("api.timeout must be positive, got %s", c.Timeout)
	}
	if c.RenewInterval <= 0 {
		return fmt.Errorf("api.renew_interval must be positive, got %s", c.RenewInterval)
	}
	return nil
}

// RequireAppID fails for commands that talk to the API without an app id.
func (c Config) RequireAppID() error {
	if c.AppID == "" {
		return ErrMissingAppID
	}
	return nil
}
