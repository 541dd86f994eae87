package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/m04kA/SMC-AvailabilityService/pkg/ptr"
)

// ErrInvalidConfig возвращается, когда значения конфигурации некорректны
var ErrInvalidConfig = errors.New("config: invalid configuration")

// Config конфигурация сервиса
type Config struct {
	Server          ServerConfig          `toml:"server"`
	Database        DatabaseConfig        `toml:"database"`
	Logs            LogsConfig            `toml:"logs"`
	Metrics         MetricsConfig         `toml:"metrics"`
	ProviderService ProviderServiceConfig `toml:"provider_service"`
	Redis           RedisConfig           `toml:"redis"`
	Availability    AvailabilityConfig    `toml:"availability"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	TxMaxRetries    int    `toml:"tx_max_retries"`    // повторы SERIALIZABLE транзакций
}

// LogsConfig настройки логирования
type LogsConfig struct {
	Level string `toml:"level"`
	File  string `toml:"file"`
}

// MetricsConfig настройки prometheus метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// ProviderServiceConfig настройки клиента ProviderService
// Пустой URL отключает интеграцию
type ProviderServiceConfig struct {
	URL     string `toml:"url"`
	Timeout int    `toml:"timeout"` // секунды
}

// RedisConfig настройки кэша результатов поиска слотов
type RedisConfig struct {
	Enabled  bool   `toml:"enabled"`
	Addr     string `toml:"addr"`
	Password string `toml:"password"`
	DB       int    `toml:"db"`
	TTL      int    `toml:"ttl"` // секунды
}

// AvailabilityConfig бизнес-настройки окон доступности
type AvailabilityConfig struct {
	// ValidateOnUpdate включает проверку пересечений при обновлении окна
	ValidateOnUpdate *bool `toml:"validate_on_update"`
}

// Load читает конфигурацию из TOML файла
// Перед чтением загружается .env (если есть), затем переменные окружения
// перекрывают значения из файла
func Load(path string) (*Config, error) {
	_ = godotenv.Load(".env")

	cfg := &Config{}
	if _, err := toml.DecodeFile(path, cfg); err != nil {
		return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
	}

	cfg.applyEnv()
	cfg.setDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) applyEnv() {
	setString(&c.Database.Host, "DB_HOST")
	setInt(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASSWORD")
	setString(&c.Database.DBName, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")
	setInt(&c.Server.HTTPPort, "HTTP_PORT")
	setString(&c.Logs.Level, "LOG_LEVEL")
	setString(&c.ProviderService.URL, "PROVIDER_SERVICE_URL")
	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASSWORD")
}

func (c *Config) setDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
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
	if c.Database.TxMaxRetries == 0 {
		c.Database.TxMaxRetries = 3
	}

	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}

	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "availability_service"
	}

	if c.ProviderService.Timeout == 0 {
		c.ProviderService.Timeout = 5
	}

	if c.Redis.TTL == 0 {
		c.Redis.TTL = 30
	}

	if c.Availability.ValidateOnUpdate == nil {
		c.Availability.ValidateOnUpdate = ptr.Ptr(true)
	}
}

// Validate проверяет обязательные поля и диапазоны значений
func (c *Config) Validate() error {
	if c.Server.HTTPPort <= 0 || c.Server.HTTPPort > 65535 {
		return fmt.Errorf("%w: server.http_port %d out of range", ErrInvalidConfig, c.Server.HTTPPort)
	}
	if c.Database.Host == "" {
		return fmt.Errorf("%w: database.host is required", ErrInvalidConfig)
	}
	if c.Database.DBName == "" {
		return fmt.Errorf("%w: database.dbname is required", ErrInvalidConfig)
	}
	if c.Database.TxMaxRetries < 0 {
		return fmt.Errorf("%w: database.tx_max_retries must not be negative", ErrInvalidConfig)
	}
	if c.Database.MaxIdleConns > c.Database.MaxOpenConns {
		return fmt.Errorf("%w: database.max_idle_conns exceeds max_open_conns", ErrInvalidConfig)
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return fmt.Errorf("%w: redis.addr is required when redis is enabled", ErrInvalidConfig)
	}
	return nil
}

// DSN возвращает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// ConnMaxLifetimeDuration время жизни соединения в пуле
func (d DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

// TTLDuration время жизни записи кэша
func (r RedisConfig) TTLDuration() time.Duration {
	return time.Duration(r.TTL) * time.Second
}

// ShouldValidateOnUpdate возвращает значение флага с учетом дефолта
func (a AvailabilityConfig) ShouldValidateOnUpdate() bool {
	return a.ValidateOnUpdate == nil || *a.ValidateOnUpdate
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return
	}
	if n, err := strconv.Atoi(v); err == nil {
		*dst = n
	}
}
