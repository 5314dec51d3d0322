package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type ServerConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Env      string `yaml:"env"`
	LogLevel string `yaml:"log_level"`
	Debug    bool   `yaml:"debug"`
}

type DatabaseConfig struct {
	Driver          string        `yaml:"driver"` // postgres, mysql, sqlite
	DSN             string        `yaml:"url"`
	MaxOpenConns    int           `yaml:"max_open_conns"`
	MaxIdleConns    int           `yaml:"max_idle_conns"`
	ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
}

type EmailConfig struct {
	Enabled      bool          `yaml:"enabled"`
	SMTPHost     string        `yaml:"smtp_host"`
	SMTPPort     int           `yaml:"smtp_port"`
	SMTPUsername string        `yaml:"smtp_user"`
	SMTPPassword string        `yaml:"smtp_password"`
	FromEmail    string        `yaml:"from_email"`
	FromName     string        `yaml:"from_name"`
	UseTLS       bool          `yaml:"use_tls"`
	Timeout      time.Duration `yaml:"timeout"`
	AppURL       string        `yaml:"app_url"`
}

type JWTConfig struct {
	Secret     string `yaml:"secret"`
	TTL        int    `yaml:"ttl"`         // minutes
	RefreshTTL int    `yaml:"refresh_ttl"` // hours
}

type StorageConfig struct {
	Type       string `yaml:"type"` // local, s3, cloudflare_r2
	BasePath   string `yaml:"base_path"`
	BaseURL    string `yaml:"base_url"`
	Bucket     string `yaml:"bucket"`
	Region     string `yaml:"region"`
	AccessKey  string `yaml:"access_key"`
	SecretKey  string `yaml:"secret_key"`
	Endpoint   string `yaml:"endpoint"`
	UseSSL     bool   `yaml:"use_ssl"`
	PublicRead bool   `yaml:"public_read"`
}

type UploadConfig struct {
	MaxSize      int64    `yaml:"max_size"`
	AllowedTypes []string `yaml:"allowed_types"`
	ImageQuality int      `yaml:"image_quality"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	Channel  string `yaml:"channel"`
}

type OutboxConfig struct {
	PollInterval time.Duration `yaml:"poll_interval"`
	BatchSize    int           `yaml:"batch_size"`
	MaxAttempts  int           `yaml:"max_attempts"`
	BaseBackoff  time.Duration `yaml:"base_backoff"`
	MaxBackoff   time.Duration `yaml:"max_backoff"`
}

type VerificationConfig struct {
	LiveCheck         bool          `yaml:"live_check"`
	Timeout           time.Duration `yaml:"timeout"`
	RequestsPerSecond float64       `yaml:"requests_per_second"`
	Burst             int           `yaml:"burst"`
}

type CORSConfig struct {
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type Config struct {
	Server       ServerConfig       `yaml:"server"`
	Database     DatabaseConfig     `yaml:"database"`
	Email        EmailConfig        `yaml:"email"`
	JWT          JWTConfig          `yaml:"jwt"`
	Storage      StorageConfig      `yaml:"storage"`
	Upload       UploadConfig       `yaml:"upload"`
	Redis        RedisConfig        `yaml:"redis"`
	Outbox       OutboxConfig       `yaml:"outbox"`
	Verification VerificationConfig `yaml:"verification"`
	CORS         CORSConfig         `yaml:"cors"`
}

var AppConfig *Config

// Load reads the YAML file at path (when it exists), applies environment
// overrides and fills defaults. A .env file in the working directory is
// loaded first.
func Load(path string) (*Config, error) {
	_ = godotenv.Load()

	var cfg Config
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case err == nil:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return nil, fmt.Errorf("parse config %s: %w", path, err)
			}
		case os.IsNotExist(err):
			// env-only configuration
		default:
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	applyEnv(&cfg)
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadConfig loads the global configuration from CONFIG_PATH or
// config/config.yaml and exits on failure.
func LoadConfig() *Config {
	path := os.Getenv("CONFIG_PATH")
	if path == "" {
		path = "config/config.yaml"
	}

	cfg, err := Load(path)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}
	AppConfig = cfg
	return cfg
}

func GetConfig() *Config {
	if AppConfig == nil {
		LoadConfig()
	}
	return AppConfig
}

func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.DSN == "" {
		return fmt.Errorf("database url is required")
	}
	if c.JWT.Secret == "" {
		return fmt.Errorf("jwt secret is required")
	}
	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.Env == "development"
}

func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

// ============================================================================
// Environment overrides
// ============================================================================

func applyEnv(cfg *Config) {
	setString(&cfg.Server.Env, "APP_ENV")
	setString(&cfg.Server.Host, "SERVER_HOST")
	setInt(&cfg.Server.Port, "PORT")
	setString(&cfg.Server.LogLevel, "LOG_LEVEL")

	setString(&cfg.Database.Driver, "DATABASE_DRIVER")
	setString(&cfg.Database.DSN, "DATABASE_URL")

	setString(&cfg.JWT.Secret, "JWT_SECRET")

	setString(&cfg.Email.SMTPHost, "SMTP_HOST")
	setInt(&cfg.Email.SMTPPort, "SMTP_PORT")
	setString(&cfg.Email.SMTPUsername, "SMTP_USER")
	setString(&cfg.Email.SMTPPassword, "SMTP_PASSWORD")
	setString(&cfg.Email.FromEmail, "SMTP_FROM")
	setBool(&cfg.Email.Enabled, "EMAIL_ENABLED")

	setString(&cfg.Storage.Type, "STORAGE_TYPE")
	setString(&cfg.Storage.Bucket, "STORAGE_BUCKET")
	setString(&cfg.Storage.AccessKey, "STORAGE_ACCESS_KEY")
	setString(&cfg.Storage.SecretKey, "STORAGE_SECRET_KEY")
	setString(&cfg.Storage.Endpoint, "STORAGE_ENDPOINT")

	setString(&cfg.Redis.Addr, "REDIS_ADDR")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setBool(&cfg.Redis.Enabled, "REDIS_ENABLED")

	setBool(&cfg.Verification.LiveCheck, "VERIFICATION_LIVE_CHECK")

	if origins := os.Getenv("CORS_ALLOWED_ORIGINS"); origins != "" {
		cfg.CORS.AllowedOrigins = strings.Split(origins, ",")
	}
}

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Database.Driver == "" {
		cfg.Database.Driver = "postgres"
	}
	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30 * time.Minute
	}
	if cfg.JWT.TTL == 0 {
		cfg.JWT.TTL = 60
	}
	if cfg.JWT.RefreshTTL == 0 {
		cfg.JWT.RefreshTTL = 24 * 30
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "CollabEx"
	}
	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Email.Timeout == 0 {
		cfg.Email.Timeout = 10 * time.Second
	}
	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/uploads"
	}
	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = 10 * 1024 * 1024
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = []string{"image/jpeg", "image/png", "image/gif", "image/webp"}
	}
	if cfg.Upload.ImageQuality == 0 {
		cfg.Upload.ImageQuality = 85
	}
	if cfg.Redis.Channel == "" {
		cfg.Redis.Channel = "collabex:realtime"
	}
	if cfg.Outbox.PollInterval == 0 {
		cfg.Outbox.PollInterval = 2 * time.Second
	}
	if cfg.Outbox.BatchSize == 0 {
		cfg.Outbox.BatchSize = 20
	}
	if cfg.Outbox.MaxAttempts == 0 {
		cfg.Outbox.MaxAttempts = 8
	}
	if cfg.Outbox.BaseBackoff == 0 {
		cfg.Outbox.BaseBackoff = 5 * time.Second
	}
	if cfg.Outbox.MaxBackoff == 0 {
		cfg.Outbox.MaxBackoff = 30 * time.Minute
	}
	if cfg.Verification.Timeout == 0 {
		cfg.Verification.Timeout = 10 * time.Second
	}
	if cfg.Verification.RequestsPerSecond == 0 {
		cfg.Verification.RequestsPerSecond = 2
	}
	if cfg.Verification.Burst == 0 {
		cfg.Verification.Burst = 4
	}
	if len(cfg.CORS.AllowedOrigins) == 0 {
		cfg.CORS.AllowedOrigins = []string{"*"}
	}
}
