package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

type AppConfig struct {
	Port         int      `yaml:"port"`
	GinMode      string   `yaml:"gin_mode"`
	CORSOrigins  []string `yaml:"cors_origins"`
	CookieSecure bool     `yaml:"cookie_secure"`
}

type MongoConfig struct {
	URI      string `yaml:"uri"`
	Database string `yaml:"database"`
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type JWTConfig struct {
	Secret string `yaml:"secret"`
	Issuer string `yaml:"issuer"`
	TTL    string `yaml:"ttl"`
}

type OTPConfig struct {
	RegisterTTL string `yaml:"register_ttl"`
	ResetTTL    string `yaml:"reset_ttl"`
}

type LoginLimitConfig struct {
	MaxAttempts int    `yaml:"max_attempts"`
	Window      string `yaml:"window"`
}

type SendGridConfig struct {
	APIKey    string `yaml:"api_key"`
	FromName  string `yaml:"from_name"`
	FromEmail string `yaml:"from_email"`
}

type ConfigFile struct {
	App        AppConfig        `yaml:"app"`
	Mongo      MongoConfig      `yaml:"mongo"`
	Redis      RedisConfig      `yaml:"redis"`
	JWT        JWTConfig        `yaml:"jwt"`
	OTP        OTPConfig        `yaml:"otp"`
	LoginLimit LoginLimitConfig `yaml:"login_limit"`
	SendGrid   SendGridConfig   `yaml:"sendgrid"`
}

type Config struct {
	Port              string
	GinMode           string
	CORSOrigins       []string
	CookieSecure      bool
	MongoURI          string
	MongoDatabase     string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int
	JWTSecret         string
	JWTIssuer         string
	TokenTTL          time.Duration
	OTPRegisterTTL    time.Duration
	OTPResetTTL       time.Duration
	LoginMaxAttempts  int
	LoginWindow       time.Duration
	SendGridAPIKey    string
	SendGridFromName  string
	SendGridFromEmail string
}

func env(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// Load reads config/config.yml and applies environment overrides for
// the secrets that should not live in the file.
func Load() (*Config, error) {
	return LoadFrom("config/config.yml")
}

func LoadFrom(path string) (*Config, error) {
	file, err := loadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load config file: %w", err)
	}

	tokenTTL, err := time.ParseDuration(file.JWT.TTL)
	if err != nil {
		return nil, fmt.Errorf("invalid JWT TTL: %w", err)
	}

	registerTTL, err := time.ParseDuration(file.OTP.RegisterTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP register TTL: %w", err)
	}

	resetTTL, err := time.ParseDuration(file.OTP.ResetTTL)
	if err != nil {
		return nil, fmt.Errorf("invalid OTP reset TTL: %w", err)
	}

	window, err := time.ParseDuration(file.LoginLimit.Window)
	if err != nil {
		return nil, fmt.Errorf("invalid login limit window: %w", err)
	}

	return &Config{
		Port:              fmt.Sprintf("%d", file.App.Port),
		GinMode:           file.App.GinMode,
		CORSOrigins:       file.App.CORSOrigins,
		CookieSecure:      file.App.CookieSecure,
		MongoURI:          env("MONGO_URI", file.Mongo.URI),
		MongoDatabase:     file.Mongo.Database,
		RedisAddr:         env("REDIS_ADDR", file.Redis.Addr),
		RedisPassword:     env("REDIS_PASSWORD", file.Redis.Password),
		RedisDB:           file.Redis.DB,
		JWTSecret:         env("JWT_SECRET", file.JWT.Secret),
		JWTIssuer:         file.JWT.Issuer,
		TokenTTL:          tokenTTL,
		OTPRegisterTTL:    registerTTL,
		OTPResetTTL:       resetTTL,
		LoginMaxAttempts:  file.LoginLimit.MaxAttempts,
		LoginWindow:       window,
		SendGridAPIKey:    env("SENDGRID_API_KEY", file.SendGrid.APIKey),
		SendGridFromName:  file.SendGrid.FromName,
		SendGridFromEmail: env("SENDGRID_FROM_EMAIL", file.SendGrid.FromEmail),
	}, nil
}

func loadConfigFile(path string) (*ConfigFile, error) {
	bytes, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("could not read config file at %s: %w", path, err)
	}

	var config ConfigFile
	if err := yaml.Unmarshal(bytes, &config); err != nil {
		return nil, fmt.Errorf("could not parse config yaml: %w", err)
	}

	return &config, nil
}
