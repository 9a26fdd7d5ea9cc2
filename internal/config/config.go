package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env       string    `yaml:"env" env:"ENV" env-default:"local"`
	Postgres  Postgres  `yaml:"postgres"`
	Server    Server    `yaml:"server"`
	Issues    Issues    `yaml:"issues"`
	Notifier  Notifier  `yaml:"notifier"`
	RateLimit RateLimit `yaml:"rate_limit"`
}

type Postgres struct {
	Username        string        `yaml:"username" env:"POSTGRES_USER" env-required:"true"`
	Password        string        `yaml:"password" env:"POSTGRES_PASSWORD" env-required:"true"`
	Host            string        `yaml:"host" env:"POSTGRES_HOST" env-required:"true"`
	Port            string        `yaml:"port" env:"POSTGRES_PORT" env-required:"true"`
	Database        string        `yaml:"database" env:"POSTGRES_DB" env-required:"true"`
	MaxOpenConns    int           `yaml:"max_open_conns" env-default:"50"`
	MaxIdleConns    int           `yaml:"max_idle_conns" env-default:"10"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime" env-default:"5m"`
	ConnMaxIdleTime time.Duration `yaml:"conn_max_idle_time" env-default:"1m"`
}

type Server struct {
	Host    string        `yaml:"host" env-default:"localhost"`
	Port    string        `yaml:"port" env-default:"8080"`
	Timeout time.Duration `yaml:"timeout" env-default:"5s"`
}

// Issues holds the moderation thresholds of the issue lifecycle.
type Issues struct {
	MaxPhotos       int     `yaml:"max_photos" env:"ISSUES_MAX_PHOTOS" env-default:"3"`
	FlagThreshold   int     `yaml:"flag_threshold" env:"ISSUES_FLAG_THRESHOLD" env-default:"5"`
	DefaultRadiusKm float64 `yaml:"default_radius_km" env:"ISSUES_DEFAULT_RADIUS_KM" env-default:"5"`
}

type Notifier struct {
	// Kind is either "log" or "rabbitmq".
	Kind     string   `yaml:"kind" env:"NOTIFIER_KIND" env-default:"log"`
	RabbitMQ RabbitMQ `yaml:"rabbitmq"`
}

type RabbitMQ struct {
	URL            string        `yaml:"url" env:"RABBITMQ_URL"`
	Queue          string        `yaml:"queue" env-default:"issue-notifications"`
	QueueDurable   bool          `yaml:"queue_durable" env-default:"true"`
	PublishTimeout time.Duration `yaml:"publish_timeout" env-default:"2s"`
}

type RateLimit struct {
	Enabled bool          `yaml:"enabled" env:"RATE_LIMIT_ENABLED" env-default:"false"`
	Limit   int64         `yaml:"limit" env-default:"10"`
	Window  time.Duration `yaml:"window" env-default:"24h"`
	Prefix  string        `yaml:"prefix" env-default:"issue-report-limit"`
	Redis   Redis         `yaml:"redis"`
}

type Redis struct {
	Addr     string `yaml:"addr" env:"REDIS_ADDRESS" env-default:"localhost:6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env-default:"0"`
}

func Load() (*Config, error) {
	configPath := os.Getenv("CONFIG_PATH")
	if configPath == "" {
		return nil, errors.New("CONFIG_PATH is not set")
	}

	return LoadPath(configPath)
}

func LoadPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); err != nil {
		return nil, fmt.Errorf("config file does not exist: %w", err)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read config: %w", err)
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(err)
	}

	return cfg
}

func (c *Config) validate() error {
	if c.Issues.MaxPhotos < 0 {
		return fmt.Errorf("issues.max_photos must not be negative, got %d", c.Issues.MaxPhotos)
	}

	if c.Issues.FlagThreshold < 1 {
		return fmt.Errorf("issues.flag_threshold must be positive, got %d", c.Issues.FlagThreshold)
	}

	if c.Issues.DefaultRadiusKm <= 0 {
		return fmt.Errorf("issues.default_radius_km must be positive, got %v", c.Issues.DefaultRadiusKm)
	}

	switch c.Notifier.Kind {
	case "log":
	case "rabbitmq":
		if c.Notifier.RabbitMQ.URL == "" {
			return errors.New("notifier.rabbitmq.url is required for rabbitmq notifier")
		}
	default:
		return fmt.Errorf("unknown notifier kind '%s'", c.Notifier.Kind)
	}

	return nil
}

// ConnString builds a postgres URL without query parameters.
func (p Postgres) ConnString() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%s/%s",
		p.Username, p.Password, p.Host, p.Port, p.Database,
	)
}
