package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config is built once at startup and passed explicitly; it is never mutated
// afterwards.
type Config struct {
	App      AppConfig      `mapstructure:"app"`
	DB       DBConfig       `mapstructure:"db"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	RabbitMQ RabbitMQConfig `mapstructure:"rabbitmq"`
	Orders   OrdersConfig   `mapstructure:"orders"`
	Admin    AdminConfig    `mapstructure:"admin"`
}

type AppConfig struct {
	Port        string `mapstructure:"port"`
	CORSOrigins string `mapstructure:"cors_origins"`
}

type DBConfig struct {
	Driver       string `mapstructure:"driver"`
	DSN          string `mapstructure:"dsn"`
	MaxOpenConns int    `mapstructure:"max_open_conns"`
}

type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// RabbitMQConfig leaves order events disabled when URL is empty.
type RabbitMQConfig struct {
	URL string `mapstructure:"url"`
}

type OrdersConfig struct {
	TransitionPolicy string `mapstructure:"transition_policy"`
}

// AdminConfig seeds an ADMIN account at startup when both fields are set.
type AdminConfig struct {
	Email    string `mapstructure:"email"`
	Password string `mapstructure:"password"`
}

// Options tells Load where to look besides the environment.
type Options struct {
	// ConfigFile is an explicit config file path. When empty, config.yaml is
	// looked up in the working directory and ./deploy and may be absent.
	ConfigFile string
	// EnvFile is a dotenv file loaded into the environment if it exists.
	EnvFile string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.port", ":8080")
	v.SetDefault("app.cors_origins", "*")
	v.SetDefault("db.driver", "sqlite")
	v.SetDefault("db.dsn", "marketplace.db")
	v.SetDefault("db.max_open_conns", 10)
	v.SetDefault("jwt.secret", "")
	v.SetDefault("rabbitmq.url", "")
	v.SetDefault("orders.transition_policy", "permissive")
	v.SetDefault("admin.email", "")
	v.SetDefault("admin.password", "")
}

// Load reads configuration from defaults, an optional config file and the
// environment, in increasing order of precedence. Environment variables use
// the upper-cased key with dots replaced by underscores, e.g. DB_DSN.
func Load(opts Options) (*Config, error) {
	if opts.EnvFile != "" {
		if err := godotenv.Load(opts.EnvFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to load env file %s: %w", opts.EnvFile, err)
		}
	}

	v := viper.New()
	setDefaults(v)

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath("./deploy/")
		v.AddConfigPath("./")
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if opts.ConfigFile != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate reports settings the service cannot start with.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("jwt.secret (JWT_SECRET) must be set")
	}
	switch c.DB.Driver {
	case "sqlite", "postgres":
	default:
		return fmt.Errorf("unsupported db.driver %q", c.DB.Driver)
	}
	if c.DB.DSN == "" {
		return errors.New("db.dsn (DB_DSN) must be set")
	}
	return nil
}
