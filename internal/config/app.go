package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const defaultConfigPath = "config.yaml"

type App struct {
	Name string `mapstructure:"name"`
	Env  string `mapstructure:"env"`
}

type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text | json
}

type HTTPServer struct {
	Port string `mapstructure:"port"`
	// RegistrationRatePerMinute limits registration requests per client IP.
	RegistrationRatePerMinute int `mapstructure:"registration_rate_per_minute"`
	ShutdownTimeoutSec        int `mapstructure:"shutdown_timeout_seconds"`
}

type DbServer struct {
	Host           string `mapstructure:"host"`
	Port           string `mapstructure:"port"`
	User           string `mapstructure:"user"`
	Pass           string `mapstructure:"pass"`
	Name           string `mapstructure:"name"`
	MaxConns       int32  `mapstructure:"max_conns"`
	LockTimeoutMs  int    `mapstructure:"lock_timeout_ms"`
	MigrateOnStart bool   `mapstructure:"migrate_on_start"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

func (config *DbServer) LockTimeout() time.Duration {
	return time.Duration(config.LockTimeoutMs) * time.Millisecond
}

type Redis struct {
	URL string `mapstructure:"url"`
}

type Cache struct {
	Driver string `mapstructure:"driver"` // redis | memory
}

type RateAPI struct {
	URL            string `mapstructure:"url"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

func (config *RateAPI) Timeout() time.Duration {
	return time.Duration(config.TimeoutSeconds) * time.Second
}

type RateRefresh struct {
	Enabled         bool `mapstructure:"enabled"`
	IntervalSeconds int  `mapstructure:"interval_seconds"`
}

type Jobs struct {
	Workers             int     `mapstructure:"workers"`
	MaxAttempts         int     `mapstructure:"max_attempts"`
	InitialIntervalMs   int     `mapstructure:"initial_interval_ms"`
	MaxIntervalSeconds  int     `mapstructure:"max_interval_seconds"`
	Multiplier          float64 `mapstructure:"multiplier"`
	RandomizationFactor float64 `mapstructure:"randomization_factor"`
	TimeoutSeconds      int     `mapstructure:"timeout_seconds"`
	PollIntervalMs      int     `mapstructure:"poll_interval_ms"`
}

func (config *Jobs) PollInterval() time.Duration {
	return time.Duration(config.PollIntervalMs) * time.Millisecond
}

type Session struct {
	Name          string `mapstructure:"name"`
	AuthKey       string `mapstructure:"auth_key"`
	MaxAgeSeconds int    `mapstructure:"max_age_seconds"`
	Secure        bool   `mapstructure:"secure"`
}

type AppConfig struct {
	App         App         `mapstructure:"app"`
	Logging     Logging     `mapstructure:"logging"`
	HTTPServer  HTTPServer  `mapstructure:"http_server"`
	DbServer    DbServer    `mapstructure:"db_server"`
	Redis       Redis       `mapstructure:"redis"`
	Cache       Cache       `mapstructure:"cache"`
	RateAPI     RateAPI     `mapstructure:"rate_api"`
	RateRefresh RateRefresh `mapstructure:"rate_refresh"`
	Jobs        Jobs        `mapstructure:"jobs"`
	Session     Session     `mapstructure:"session"`
}

// Init loads .env (if present) and the YAML file named by CONFIG_PATH, falling back to config.yaml.
func Init() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("error loading .env file: %w", err)
	}

	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = defaultConfigPath
	}
	return Load(path)
}

// Load reads the config file at path. A missing file is not an error: defaults and env vars still apply.
func Load(path string) (*AppConfig, error) {
	var cfg AppConfig

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	setDefaults(v)
	bindEnv(v)

	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("app.name", "parcels")
	v.SetDefault("app.env", "local")

	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "text")

	v.SetDefault("http_server.port", "8080")
	v.SetDefault("http_server.registration_rate_per_minute", 60)
	v.SetDefault("http_server.shutdown_timeout_seconds", 10)

	v.SetDefault("db_server.port", "5432")
	v.SetDefault("db_server.max_conns", 20)
	v.SetDefault("db_server.lock_timeout_ms", 5000)
	v.SetDefault("db_server.migrate_on_start", true)

	v.SetDefault("redis.url", "redis://localhost:6379/0")
	v.SetDefault("cache.driver", "redis")

	v.SetDefault("rate_api.url", "https://www.cbr-xml-daily.ru/daily_json.js")
	v.SetDefault("rate_api.timeout_seconds", 5)

	v.SetDefault("rate_refresh.enabled", true)
	v.SetDefault("rate_refresh.interval_seconds", 300)

	v.SetDefault("jobs.workers", 2)
	v.SetDefault("jobs.max_attempts", 5)
	v.SetDefault("jobs.initial_interval_ms", 500)
	v.SetDefault("jobs.max_interval_seconds", 30)
	v.SetDefault("jobs.multiplier", 2.0)
	v.SetDefault("jobs.randomization_factor", 0.5)
	v.SetDefault("jobs.timeout_seconds", 30)
	v.SetDefault("jobs.poll_interval_ms", 1000)

	v.SetDefault("session.name", "parcels_session")
	v.SetDefault("session.max_age_seconds", 30*24*60*60)
}

func bindEnv(v *viper.Viper) {
	_ = v.BindEnv("logging.level", "LOG_LEVEL")
	_ = v.BindEnv("logging.format", "LOG_FORMAT")

	_ = v.BindEnv("http_server.port", "HTTP_PORT")

	// db server env vars
	_ = v.BindEnv("db_server.host", "DB_HOST")
	_ = v.BindEnv("db_server.port", "DB_PORT")
	_ = v.BindEnv("db_server.user", "DB_USER")
	_ = v.BindEnv("db_server.pass", "DB_PASS")
	_ = v.BindEnv("db_server.name", "DB_NAME")
	_ = v.BindEnv("db_server.max_conns", "DB_MAX_CONNS")
	_ = v.BindEnv("db_server.migrate_on_start", "DB_MIGRATE_ON_START")

	_ = v.BindEnv("redis.url", "REDIS_URL")
	_ = v.BindEnv("cache.driver", "CACHE_DRIVER")

	_ = v.BindEnv("rate_api.url", "RATE_API_URL")
	_ = v.BindEnv("rate_api.timeout_seconds", "RATE_API_TIMEOUT_SECONDS")

	_ = v.BindEnv("jobs.workers", "JOBS_WORKERS")
	_ = v.BindEnv("jobs.max_attempts", "JOBS_MAX_ATTEMPTS")

	_ = v.BindEnv("session.auth_key", "SESSION_AUTH_KEY")
	_ = v.BindEnv("session.secure", "SESSION_SECURE")
}

func (cfg *AppConfig) validate() error {
	var errs []error
	switch strings.ToLower(cfg.Cache.Driver) {
	case "redis", "memory":
	default:
		errs = append(errs, fmt.Errorf("cache.driver must be redis or memory, got %q", cfg.Cache.Driver))
	}
	if cfg.Jobs.Workers <= 0 {
		errs = append(errs, errors.New("jobs.workers must be positive"))
	}
	if cfg.Jobs.PollIntervalMs <= 0 {
		errs = append(errs, errors.New("jobs.poll_interval_ms must be positive"))
	}
	if cfg.Jobs.MaxAttempts <= 0 {
		errs = append(errs, errors.New("jobs.max_attempts must be positive"))
	}
	if cfg.RateRefresh.IntervalSeconds <= 0 {
		errs = append(errs, errors.New("rate_refresh.interval_seconds must be positive"))
	}
	if cfg.Session.AuthKey != "" && len(cfg.Session.AuthKey) < 32 {
		errs = append(errs, errors.New("session.auth_key must be at least 32 bytes"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}
