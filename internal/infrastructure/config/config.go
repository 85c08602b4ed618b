package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	sharedConfig "github.com/fixora-app/fixora/internal/shared/config"
	"github.com/fixora-app/fixora/internal/shared/constants"
)

const envPrefix = "FIXORA"

const insecureJWTSecret = "change-me-in-production"

type Config struct {
	Environment string                       `mapstructure:"environment"`
	Server      sharedConfig.ServerConfig    `mapstructure:"server"`
	Database    sharedConfig.DatabaseConfig  `mapstructure:"database"`
	Logger      sharedConfig.LoggerConfig    `mapstructure:"logger"`
	Auth        sharedConfig.AuthConfig      `mapstructure:"auth"`
	Redis       sharedConfig.RedisConfig     `mapstructure:"redis"`
	Storage     sharedConfig.StorageConfig   `mapstructure:"storage"`
	Complaint   sharedConfig.ComplaintConfig `mapstructure:"complaint"`
}

var (
	appConfig   *Config
	appConfigMu sync.RWMutex
)

// Load reads configs/config.yaml (if any), then .env (if any), then
// FIXORA_* environment variables, later sources winning. A non-empty env
// overrides the configured environment.
func Load(env string) (*Config, error) {
	return LoadFrom(env, "./configs", "../configs", "../../configs")
}

// LoadFrom is Load with explicit config search paths.
func LoadFrom(env string, paths ...string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, p := range paths {
		v.AddConfigPath(p)
	}

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if env != "" && env != "default" {
		v.Set("environment", env)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}

	appConfigMu.Lock()
	appConfig = &config
	appConfigMu.Unlock()

	return &config, nil
}

// Validate rejects settings that are unsafe in production.
func (c *Config) Validate() error {
	switch c.Environment {
	case constants.EnvDevelopment, constants.EnvTest, constants.EnvProduction:
	default:
		return fmt.Errorf("unknown environment %q", c.Environment)
	}
	if c.IsProduction() && (c.Auth.JWT.Secret == "" || c.Auth.JWT.Secret == insecureJWTSecret) {
		return fmt.Errorf("auth.jwt.secret must be set in production")
	}
	if !c.Database.IsSQLite() && !strings.EqualFold(c.Database.Driver, "mysql") {
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == constants.EnvProduction
}

// Get returns the last loaded configuration
func Get() *Config {
	appConfigMu.RLock()
	defer appConfigMu.RUnlock()
	return appConfig
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("environment", constants.EnvDevelopment)

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.mode", "debug")
	v.SetDefault("server.base_url", "http://localhost:8080")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173"})

	v.SetDefault("database.driver", "mysql")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 3306)
	v.SetDefault("database.username", "root")
	v.SetDefault("database.password", "password")
	v.SetDefault("database.database", "fixora_dev")
	v.SetDefault("database.path", "fixora.db")
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.conn_max_lifetime", 60)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.output_path", "stdout")

	v.SetDefault("auth.password.bcrypt_cost", 12)
	v.SetDefault("auth.jwt.secret", insecureJWTSecret)
	v.SetDefault("auth.jwt.access_exp_minutes", 60*24)
	v.SetDefault("auth.jwt.issuer", "fixora")
	v.SetDefault("auth.rate_limit.requests", 20)
	v.SetDefault("auth.rate_limit.window_seconds", 60)

	v.SetDefault("redis.host", "localhost")
	v.SetDefault("redis.port", 6379)
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)

	v.SetDefault("storage.region", "auto")
	v.SetDefault("storage.max_image_bytes", 5<<20)
	v.SetDefault("storage.force_path_style", false)

	v.SetDefault("complaint.feed_cache_ttl_minutes", 24*60)
	v.SetDefault("complaint.event_channel", constants.RedisChannelComplaints)
	v.SetDefault("complaint.max_streams_per_user", 5)
}
