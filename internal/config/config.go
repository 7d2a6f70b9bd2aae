package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-ArtisanBookingService/internal/domain"
)

// Config конфигурация сервиса
// Значения читаются из config.toml, затем переопределяются переменными окружения
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Database  DatabaseConfig  `toml:"database"`
	Logs      LogsConfig      `toml:"logs"`
	Metrics   MetricsConfig   `toml:"metrics"`
	Booking   BookingConfig   `toml:"booking"`
	Auth      AuthConfig      `toml:"auth"`
	RateLimit RateLimitConfig `toml:"rate_limit"`
	Cache     CacheConfig     `toml:"cache"`
	Events    EventsConfig    `toml:"events"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port" env:"SERVER_HTTP_PORT"`
	ReadTimeout     int `toml:"read_timeout" env:"SERVER_READ_TIMEOUT"`         // секунды
	WriteTimeout    int `toml:"write_timeout" env:"SERVER_WRITE_TIMEOUT"`       // секунды
	IdleTimeout     int `toml:"idle_timeout" env:"SERVER_IDLE_TIMEOUT"`         // секунды
	ShutdownTimeout int `toml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT"` // секунды
}

type DatabaseConfig struct {
	Host            string `toml:"host" env:"DB_HOST"`
	Port            int    `toml:"port" env:"DB_PORT"`
	User            string `toml:"user" env:"DB_USER"`
	Password        string `toml:"password" env:"DB_PASSWORD"`
	DBName          string `toml:"dbname" env:"DB_NAME"`
	SSLMode         string `toml:"sslmode" env:"DB_SSLMODE"`
	MaxOpenConns    int    `toml:"max_open_conns" env:"DB_MAX_OPEN_CONNS"`
	MaxIdleConns    int    `toml:"max_idle_conns" env:"DB_MAX_IDLE_CONNS"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime" env:"DB_CONN_MAX_LIFETIME"` // секунды
	AutoMigrate     bool   `toml:"auto_migrate" env:"DB_AUTO_MIGRATE"`
}

// DSN строка подключения для lib/pq
func (c DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

// URL строка подключения для golang-migrate
func (c DatabaseConfig) URL() string {
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode)
}

type LogsConfig struct {
	Level string `toml:"level" env:"LOG_LEVEL"`
	File  string `toml:"file" env:"LOG_FILE"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled" env:"METRICS_ENABLED"`
	Path        string `toml:"path" env:"METRICS_PATH"`
	ServiceName string `toml:"service_name" env:"METRICS_SERVICE_NAME"`
}

type BookingConfig struct {
	// pending_and_accepted или accepted_only
	BlockingPolicy string `toml:"blocking_policy" env:"BOOKING_BLOCKING_POLICY"`
	TimeZone       string `toml:"time_zone" env:"BOOKING_TIME_ZONE"`
}

// Policy разобранная политика блокировки
func (c BookingConfig) Policy() domain.BlockingPolicy {
	p, err := domain.ParseBlockingPolicy(c.BlockingPolicy)
	if err != nil {
		return domain.BlockPendingAndAccepted
	}
	return p
}

// Location часовой пояс, в котором определяется "сегодня"
func (c BookingConfig) Location() *time.Location {
	if c.TimeZone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(c.TimeZone)
	if err != nil {
		return time.Local
	}
	return loc
}

type AuthConfig struct {
	JWTSecret string `toml:"jwt_secret" env:"AUTH_JWT_SECRET"`
	Issuer    string `toml:"issuer" env:"AUTH_ISSUER"`
}

type RateLimitConfig struct {
	Enabled       bool   `toml:"enabled" env:"RATE_LIMIT_ENABLED"`
	Requests      int    `toml:"requests" env:"RATE_LIMIT_REQUESTS"`
	WindowSeconds int    `toml:"window_seconds" env:"RATE_LIMIT_WINDOW_SECONDS"`
	RedisAddr     string `toml:"redis_addr" env:"RATE_LIMIT_REDIS_ADDR"` // пусто = лимитер в памяти
	RedisPassword string `toml:"redis_password" env:"RATE_LIMIT_REDIS_PASSWORD"`
	RedisDB       int    `toml:"redis_db" env:"RATE_LIMIT_REDIS_DB"`
}

type CacheConfig struct {
	Enabled    bool `toml:"enabled" env:"CACHE_ENABLED"`
	Size       int  `toml:"size" env:"CACHE_SIZE"`
	TTLSeconds int  `toml:"ttl_seconds" env:"CACHE_TTL_SECONDS"`
}

type EventsConfig struct {
	Enabled  bool   `toml:"enabled" env:"EVENTS_ENABLED"`
	URL      string `toml:"url" env:"EVENTS_RABBITMQ_URL"`
	Exchange string `toml:"exchange" env:"EVENTS_EXCHANGE"`
}

// Load читает конфигурацию из файла и переменных окружения
// Если рядом лежит .env, он загружается до разбора окружения
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	cfg := defaults()
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config file %s: %w", path, err)
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Server: ServerConfig{
			HTTPPort:        8080,
			ReadTimeout:     15,
			WriteTimeout:    15,
			IdleTimeout:     60,
			ShutdownTimeout: 10,
		},
		Database: DatabaseConfig{
			Host:            "localhost",
			Port:            5432,
			SSLMode:         "disable",
			MaxOpenConns:    25,
			MaxIdleConns:    5,
			ConnMaxLifetime: 300,
		},
		Logs: LogsConfig{Level: "info"},
		Metrics: MetricsConfig{
			Path:        "/metrics",
			ServiceName: "artisan-booking-service",
		},
		Booking: BookingConfig{BlockingPolicy: string(domain.BlockPendingAndAccepted)},
		RateLimit: RateLimitConfig{
			Requests:      60,
			WindowSeconds: 60,
		},
		Cache: CacheConfig{
			Size:       1000,
			TTLSeconds: 30,
		},
		Events: EventsConfig{Exchange: "bookings"},
	}
}

// Validate проверяет значения конфигурации
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("server.http_port must be in 1..65535, got %d", c.Server.HTTPPort)
	}
	if c.Database.Host == "" || c.Database.DBName == "" {
		return errors.New("database.host and database.dbname are required")
	}
	if _, err := domain.ParseBlockingPolicy(c.Booking.BlockingPolicy); err != nil {
		return fmt.Errorf("booking.blocking_policy: %w", err)
	}
	if c.Booking.TimeZone != "" {
		if _, err := time.LoadLocation(c.Booking.TimeZone); err != nil {
			return fmt.Errorf("booking.time_zone: %w", err)
		}
	}
	if c.RateLimit.Enabled && (c.RateLimit.Requests <= 0 || c.RateLimit.WindowSeconds <= 0) {
		return errors.New("rate_limit.requests and rate_limit.window_seconds must be positive")
	}
	if c.Cache.Enabled && (c.Cache.Size <= 0 || c.Cache.TTLSeconds <= 0) {
		return errors.New("cache.size and cache.ttl_seconds must be positive")
	}
	if c.Events.Enabled && c.Events.URL == "" {
		return errors.New("events.url is required when events are enabled")
	}
	return nil
}
