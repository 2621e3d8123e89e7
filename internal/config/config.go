package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

type AppConfig struct {
	API      *APIConfig      `mapstructure:"api"`
	Gin      *GinConfig      `mapstructure:"gin"`
	Postgres *PostgresConfig `mapstructure:"postgres"`
	Redis    *RedisConfig    `mapstructure:"redis"`
	Session  *SessionConfig  `mapstructure:"session"`
	QR       *QRConfig       `mapstructure:"qr"`
}

type APIConfig struct {
	Environment        string        `mapstructure:"environment"`
	LogLevel           string        `mapstructure:"log_level"`
	Port               string        `mapstructure:"port"`
	BaseURL            string        `mapstructure:"base_url"`
	AllowedCORSDomains []string      `mapstructure:"allowed_cors_domains"`
	JWTSigningKey      string        `mapstructure:"jwt_signing_key"`
	JWTTTL             time.Duration `mapstructure:"jwt_ttl"`
}

type GinConfig struct {
	Mode string `mapstructure:"mode"`
}

type PostgresConfig struct {
	Host     string `mapstructure:"host"`
	Port     int    `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	DB       string `mapstructure:"db"`
	SSLMode  string `mapstructure:"sslmode"`
}

func (c *PostgresConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DB, c.SSLMode)
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// SessionConfig controls the diner seat session. TTL is the session lifetime:
// after it a diner has to scan again before ordering.
type SessionConfig struct {
	TTL          time.Duration `mapstructure:"ttl"`
	CookieName   string        `mapstructure:"cookie_name"`
	CookieSecure bool          `mapstructure:"cookie_secure"`
}

type QRConfig struct {
	ScanBaseURL string `mapstructure:"scan_base_url"`
	OutputDir   string `mapstructure:"output_dir"`
	Size        int    `mapstructure:"size"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("api.environment", "development")
	v.SetDefault("api.log_level", "info")
	v.SetDefault("api.port", "8080")
	v.SetDefault("api.base_url", "localhost:8080")
	v.SetDefault("api.allowed_cors_domains", []string{"*"})
	v.SetDefault("api.jwt_signing_key", "")
	v.SetDefault("api.jwt_ttl", 12*time.Hour)
	v.SetDefault("gin.mode", "debug")
	v.SetDefault("postgres.host", "localhost")
	v.SetDefault("postgres.port", 5432)
	v.SetDefault("postgres.user", "postgres")
	v.SetDefault("postgres.password", "postgres")
	v.SetDefault("postgres.db", "canteen")
	v.SetDefault("postgres.sslmode", "disable")
	v.SetDefault("redis.addr", "localhost:6379")
	v.SetDefault("redis.password", "")
	v.SetDefault("redis.db", 0)
	v.SetDefault("session.ttl", 2*time.Hour)
	v.SetDefault("session.cookie_name", "seat_session")
	v.SetDefault("session.cookie_secure", false)
	v.SetDefault("qr.scan_base_url", "http://localhost:8080/api/v1/scan")
	v.SetDefault("qr.output_dir", "qr_codes")
	v.SetDefault("qr.size", 256)
}

func newViper(path string) *viper.Viper {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return v
}

// Load reads the yaml file at path. Every key can be overridden from the
// environment, eg API_PORT or SESSION_TTL.
func Load(path string) (*AppConfig, error) {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	return decode(v)
}

// Watch calls onChange with the reloaded configuration whenever the file at path is written.
func Watch(path string, onChange func(*AppConfig)) error {
	v := newViper(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("v.ReadInConfig -> %w", err)
	}

	v.OnConfigChange(func(e fsnotify.Event) {
		if !e.Has(fsnotify.Write) && !e.Has(fsnotify.Create) {
			return
		}

		conf, err := decode(v)
		if err != nil {
			zap.L().Warn("ignoring invalid config change", zap.String("file", e.Name), zap.Error(err))
			return
		}

		onChange(conf)
	})
	v.WatchConfig()

	return nil
}

func decode(v *viper.Viper) (*AppConfig, error) {
	var conf AppConfig
	if err := v.Unmarshal(&conf); err != nil {
		return nil, fmt.Errorf("v.Unmarshal -> %w", err)
	}

	if err := conf.Validate(); err != nil {
		return nil, fmt.Errorf("conf.Validate -> %w", err)
	}

	return &conf, nil
}

func (c *AppConfig) Validate() error {
	if err := validation.ValidateStruct(c,
		validation.Field(&c.API, validation.Required),
		validation.Field(&c.Gin, validation.Required),
		validation.Field(&c.Postgres, validation.Required),
		validation.Field(&c.Redis, validation.Required),
		validation.Field(&c.Session, validation.Required),
		validation.Field(&c.QR, validation.Required),
	); err != nil {
		return err
	}

	if err := validation.ValidateStruct(c.API,
		validation.Field(&c.API.Port, validation.Required),
		validation.Field(&c.API.JWTSigningKey, validation.Required, validation.Length(16, 0)),
		validation.Field(&c.API.JWTTTL, validation.Required, validation.Min(time.Minute)),
		validation.Field(&c.API.LogLevel, validation.In("debug", "info", "warn", "error")),
	); err != nil {
		return fmt.Errorf("api: %w", err)
	}

	if err := validation.ValidateStruct(c.Gin,
		validation.Field(&c.Gin.Mode, validation.In("debug", "release", "test")),
	); err != nil {
		return fmt.Errorf("gin: %w", err)
	}

	if err := validation.ValidateStruct(c.Session,
		validation.Field(&c.Session.TTL, validation.Required, validation.Min(time.Minute)),
		validation.Field(&c.Session.CookieName, validation.Required),
	); err != nil {
		return fmt.Errorf("session: %w", err)
	}

	return nil
}
