package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

var (
	// ErrReadConfig возвращается, когда файл конфигурации не удалось прочитать или разобрать
	ErrReadConfig = errors.New("config: failed to read config")

	// ErrInvalidConfig возвращается, когда конфигурация не прошла валидацию
	ErrInvalidConfig = errors.New("config: invalid config")
)

// Config конфигурация сервиса
type Config struct {
	Server         ServerConfig         `toml:"server"`
	Logs           LogsConfig           `toml:"logs"`
	Metrics        MetricsConfig        `toml:"metrics"`
	Database       DatabaseConfig       `toml:"database"`
	Redis          RedisConfig          `toml:"redis"`
	ListingService ListingServiceConfig `toml:"listing_service"`
	Sessions       SessionsConfig       `toml:"sessions"`
	Drafts         DraftsConfig         `toml:"drafts"`
	Intents        IntentsConfig        `toml:"intents"`
	Auth           AuthConfig           `toml:"auth"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"`
}

// DSN строка подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
}

type ListingServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"`
}

type SessionsConfig struct {
	// IdleTTL через сколько секунд бездействия сессия удаляется
	IdleTTL int `toml:"idle_ttl"`
	// SweepInterval период запуска очистки, в секундах
	SweepInterval int `toml:"sweep_interval"`
	// LoadTimeout таймаут фоновой загрузки доступности, в секундах
	LoadTimeout int `toml:"load_timeout"`
	// GestureWindowMs окно подавления повторного жеста, в миллисекундах
	GestureWindowMs int `toml:"gesture_window_ms"`
}

func (s SessionsConfig) IdleTTLDuration() time.Duration {
	return time.Duration(s.IdleTTL) * time.Second
}

func (s SessionsConfig) SweepIntervalDuration() time.Duration {
	return time.Duration(s.SweepInterval) * time.Second
}

func (s SessionsConfig) LoadTimeoutDuration() time.Duration {
	return time.Duration(s.LoadTimeout) * time.Second
}

func (s SessionsConfig) GestureWindow() time.Duration {
	return time.Duration(s.GestureWindowMs) * time.Millisecond
}

type DraftsConfig struct {
	// Store "redis" или "memory"
	Store string `toml:"store"`
	// TTL время жизни черновика, в секундах
	TTL       int    `toml:"ttl"`
	KeyPrefix string `toml:"key_prefix"`
}

func (d DraftsConfig) TTLDuration() time.Duration {
	return time.Duration(d.TTL) * time.Second
}

type IntentsConfig struct {
	// Publisher "kafka", "rabbitmq" или "log"
	Publisher string       `toml:"publisher"`
	Kafka     KafkaConfig  `toml:"kafka"`
	RabbitMQ  RabbitConfig `toml:"rabbitmq"`
}

type KafkaConfig struct {
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type RabbitConfig struct {
	URL      string `toml:"url"`
	Exchange string `toml:"exchange"`
}

type AuthConfig struct {
	// LoginURL куда отправлять неаутентифицированного пользователя
	LoginURL string `toml:"login_url"`
}

// Load загружает конфигурацию из TOML-файла, применяет значения по умолчанию и валидирует
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}
	return Parse(string(data))
}

// Parse разбирает конфигурацию из строки
func Parse(data string) (*Config, error) {
	var cfg Config
	if _, err := toml.Decode(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrReadConfig, err)
	}

	cfg.applyDefaults()

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 10
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 10
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 15
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "gear-booking-service"
	}
	if c.Database.Port == 0 {
		c.Database.Port = 5432
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.ListingService.Timeout == 0 {
		c.ListingService.Timeout = 5
	}
	if c.Sessions.IdleTTL == 0 {
		c.Sessions.IdleTTL = 1800
	}
	if c.Sessions.SweepInterval == 0 {
		c.Sessions.SweepInterval = 60
	}
	if c.Sessions.LoadTimeout == 0 {
		c.Sessions.LoadTimeout = 10
	}
	if c.Sessions.GestureWindowMs == 0 {
		c.Sessions.GestureWindowMs = 800
	}
	if c.Drafts.Store == "" {
		c.Drafts.Store = "memory"
	}
	if c.Drafts.TTL == 0 {
		c.Drafts.TTL = 1800
	}
	if c.Drafts.KeyPrefix == "" {
		c.Drafts.KeyPrefix = "booking_draft"
	}
	if c.Intents.Publisher == "" {
		c.Intents.Publisher = "log"
	}
	if c.Intents.Kafka.Topic == "" {
		c.Intents.Kafka.Topic = "booking-intents"
	}
	if c.Intents.RabbitMQ.Exchange == "" {
		c.Intents.RabbitMQ.Exchange = "booking.intents"
	}
	if c.Auth.LoginURL == "" {
		c.Auth.LoginURL = "/auth/login"
	}
}

func (c *Config) validate() error {
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.ListingService.URL == "" {
		return fmt.Errorf("%w: listing_service.url is required", ErrInvalidConfig)
	}

	switch c.Drafts.Store {
	case "memory":
	case "redis":
		if c.Redis.Addr == "" {
			return fmt.Errorf("%w: redis.addr is required for drafts.store=redis", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown drafts.store %q", ErrInvalidConfig, c.Drafts.Store)
	}

	switch c.Intents.Publisher {
	case "log":
	case "kafka":
		if len(c.Intents.Kafka.Brokers) == 0 {
			return fmt.Errorf("%w: intents.kafka.brokers is required for intents.publisher=kafka", ErrInvalidConfig)
		}
	case "rabbitmq":
		if c.Intents.RabbitMQ.URL == "" {
			return fmt.Errorf("%w: intents.rabbitmq.url is required for intents.publisher=rabbitmq", ErrInvalidConfig)
		}
	default:
		return fmt.Errorf("%w: unknown intents.publisher %q", ErrInvalidConfig, c.Intents.Publisher)
	}

	return nil
}
