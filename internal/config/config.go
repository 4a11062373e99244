package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/SMC-ReservationService/pkg/types"
)

// ErrInvalidConfig возвращается, когда конфигурация не проходит валидацию
var ErrInvalidConfig = errors.New("config: invalid configuration")

const (
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
	DriverMemory   = "memory"
)

// Config конфигурация сервиса
type Config struct {
	Server    ServerConfig     `toml:"server"`
	Database  DatabaseConfig   `toml:"database"`
	Logs      LogsConfig       `toml:"logs"`
	Metrics   MetricsConfig    `toml:"metrics"`
	Policy    PolicyConfig     `toml:"policy"`
	Auth      AuthConfig       `toml:"auth"`
	Events    EventsConfig     `toml:"events"`
	Retention RetentionConfig  `toml:"retention"`
	Resources []ResourceConfig `toml:"resources"`
}

type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`  // секунды
	WriteTimeout    int `toml:"write_timeout"` // секунды
	IdleTimeout     int `toml:"idle_timeout"`  // секунды
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

type DatabaseConfig struct {
	Driver          string `toml:"driver"`
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	Path            string `toml:"path"` // файл SQLite
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
	TxMaxRetries    int    `toml:"tx_max_retries"`
}

// DSN строка подключения для выбранного драйвера
func (c DatabaseConfig) DSN() string {
	switch c.Driver {
	case DriverSQLite:
		// WAL и busy_timeout для конкурентных записей, immediate берёт RESERVED lock на BEGIN
		return fmt.Sprintf("file:%s?_journal_mode=WAL&_busy_timeout=5000&_foreign_keys=on&_txlock=immediate", c.Path)
	default:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(c.User, c.Password),
			Host:     fmt.Sprintf("%s:%d", c.Host, c.Port),
			Path:     c.DBName,
			RawQuery: "sslmode=" + c.SSLMode,
		}
		return u.String()
	}
}

// SQLDriverName имя драйвера database/sql
func (c DatabaseConfig) SQLDriverName() string {
	if c.Driver == DriverSQLite {
		return "sqlite3"
	}
	return "postgres"
}

type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

type PolicyConfig struct {
	OpeningStart         types.TimeString `toml:"opening_start"`
	OpeningEnd           types.TimeString `toml:"opening_end"`
	LockThresholdMinutes int              `toml:"lock_threshold_minutes"`
	Location             string           `toml:"location"`
	RetainCancelled      bool             `toml:"retain_cancelled"`
	LockRescheduledStart bool             `toml:"lock_rescheduled_start"`
}

// LoadLocation часовой пояс, в котором интерпретируются даты и время бронирований
func (c PolicyConfig) LoadLocation() (*time.Location, error) {
	if c.Location == "" || c.Location == "Local" {
		return time.Local, nil
	}
	return time.LoadLocation(c.Location)
}

type AuthConfig struct {
	UserHeader       string   `toml:"user_header"`
	Admins           []string `toml:"admins"`
	DirectoryURL     string   `toml:"directory_url"`
	DirectoryTimeout int      `toml:"directory_timeout"` // секунды
}

type EventsConfig struct {
	Enabled bool     `toml:"enabled"`
	Brokers []string `toml:"brokers"`
	Topic   string   `toml:"topic"`
}

type RetentionConfig struct {
	Enabled  bool   `toml:"enabled"`
	Schedule string `toml:"schedule"` // cron выражение
	MaxAge   int    `toml:"max_age_days"`
}

type ResourceConfig struct {
	ID       string `toml:"id"`
	Name     string `toml:"name"`
	Category string `toml:"category"`
}

// Load читает конфигурацию из TOML файла поверх значений по умолчанию.
// Если файла нет, используются значения по умолчанию.
func Load(path string) (*Config, error) {
	cfg := Default()

	if _, err := os.Stat(path); err == nil {
		// Каталог из файла полностью заменяет каталог по умолчанию
		defaultResources := cfg.Resources
		cfg.Resources = nil

		meta, err := toml.DecodeFile(path, cfg)
		if err != nil {
			return nil, fmt.Errorf("config: failed to decode %s: %w", path, err)
		}
		if !meta.IsDefined("resources") {
			cfg.Resources = defaultResources
		}
	} else if !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: failed to stat %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate проверяет согласованность значений
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case DriverPostgres, DriverSQLite, DriverMemory:
	default:
		return fmt.Errorf("%w: unknown database driver %q", ErrInvalidConfig, c.Database.Driver)
	}
	if c.Database.Driver == DriverSQLite && c.Database.Path == "" {
		return fmt.Errorf("%w: database.path is required for sqlite", ErrInvalidConfig)
	}
	// у каждого соединения пула своя in-memory база: миграции и данные не видны другим соединениям
	if c.Database.Driver == DriverSQLite && isSQLiteMemoryPath(c.Database.Path) {
		return fmt.Errorf("%w: database.path %q is per-connection, use driver = \"memory\"", ErrInvalidConfig, c.Database.Path)
	}
	if c.Database.TxMaxRetries < 0 {
		return fmt.Errorf("%w: database.tx_max_retries must not be negative", ErrInvalidConfig)
	}

	if err := c.Policy.OpeningStart.Validate(); err != nil {
		return fmt.Errorf("%w: policy.opening_start: %v", ErrInvalidConfig, err)
	}
	if err := c.Policy.OpeningEnd.Validate(); err != nil {
		return fmt.Errorf("%w: policy.opening_end: %v", ErrInvalidConfig, err)
	}
	if !c.Policy.OpeningStart.IsBefore(c.Policy.OpeningEnd) {
		return fmt.Errorf("%w: policy.opening_start must be before policy.opening_end", ErrInvalidConfig)
	}
	if c.Policy.LockThresholdMinutes < 0 {
		return fmt.Errorf("%w: policy.lock_threshold_minutes must not be negative", ErrInvalidConfig)
	}
	if _, err := c.Policy.LoadLocation(); err != nil {
		return fmt.Errorf("%w: policy.location: %v", ErrInvalidConfig, err)
	}

	if c.Auth.UserHeader == "" {
		return fmt.Errorf("%w: auth.user_header is required", ErrInvalidConfig)
	}

	if c.Events.Enabled && (len(c.Events.Brokers) == 0 || c.Events.Topic == "") {
		return fmt.Errorf("%w: events.brokers and events.topic are required when events are enabled", ErrInvalidConfig)
	}

	if c.Retention.Enabled && c.Retention.MaxAge <= 0 {
		return fmt.Errorf("%w: retention.max_age_days must be positive", ErrInvalidConfig)
	}

	seen := make(map[string]struct{}, len(c.Resources))
	for _, r := range c.Resources {
		if r.ID == "" {
			return fmt.Errorf("%w: resource id is required", ErrInvalidConfig)
		}
		if _, ok := seen[r.ID]; ok {
			return fmt.Errorf("%w: duplicate resource id %q", ErrInvalidConfig, r.ID)
		}
		seen[r.ID] = struct{}{}
	}

	return nil
}

func isSQLiteMemoryPath(path string) bool {
	return strings.HasPrefix(strings.TrimSpace(path), ":memory:")
}
