package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server        ServerConfig
	Database      DatabaseConfig
	Redis         RedisConfig
	JWT           JWTConfig
	SMTP          SMTPConfig
	PasswordReset PasswordResetConfig
	RateLimit     RateLimitConfig
	CORS          CORSConfig
	MQTT          MQTTConfig
	AI            AIConfig
	Sentry        SentryConfig
	Scheduler     SchedulerConfig
}

type ServerConfig struct {
	Port        string
	Host        string
	Environment string
}

type DatabaseConfig struct {
	Driver   string // postgres or memory
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Driver string // redis or memory
	URL    string
}

type JWTConfig struct {
	Secret             string
	ExpiryHours        int
	RefreshExpiryHours int
}

type SMTPConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	From     string
}

type PasswordResetConfig struct {
	TokenTTL        time.Duration
	MinLength       int
	ResetURL        string
	MailWorkers     int
	MailQueueSize   int
	MailSendTimeout time.Duration
}

type RateLimitConfig struct {
	GeneralRPS   float64 // Requests per second for general endpoints
	GeneralBurst int     // Burst size for general endpoints
	AuthRPS      float64
	AuthBurst    int
}

type CORSConfig struct {
	AllowedOrigins   []string
	AllowedMethods   []string
	AllowedHeaders   []string
	ExposedHeaders   []string
	AllowCredentials bool
	MaxAge           int
}

type MQTTConfig struct {
	Broker      string
	ClientID    string
	Username    string
	Password    string
	TopicPrefix string
}

type AIConfig struct {
	GeminiAPIKey string
	Model        string
}

type SentryConfig struct {
	DSN string
}

type SchedulerConfig struct {
	TokenCleanupSpec string
}

func setDefaults() {
	viper.SetDefault("SERVER_PORT", "8080")
	viper.SetDefault("SERVER_HOST", "0.0.0.0")
	viper.SetDefault("ENVIRONMENT", "development")

	viper.SetDefault("STORAGE_DRIVER", "postgres")
	viper.SetDefault("DB_PORT", "5432")
	viper.SetDefault("DB_SSLMODE", "disable")

	viper.SetDefault("CACHE_DRIVER", "redis")
	viper.SetDefault("REDIS_URL", "redis://localhost:6379/0")

	viper.SetDefault("JWT_EXPIRY_HOURS", 1)
	viper.SetDefault("JWT_REFRESH_EXPIRY_HOURS", 24*7)

	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("SMTP_FROM", "no-reply@jobboard.local")

	viper.SetDefault("PASSWORD_RESET_TTL", "1h")
	viper.SetDefault("PASSWORD_RESET_MIN_LENGTH", 6)
	viper.SetDefault("PASSWORD_RESET_URL", "http://localhost:3000/reset-password")
	viper.SetDefault("MAIL_WORKERS", 2)
	viper.SetDefault("MAIL_QUEUE_SIZE", 100)
	viper.SetDefault("MAIL_SEND_TIMEOUT", "15s")

	viper.SetDefault("RATE_LIMIT_GENERAL_RPS", 20)
	viper.SetDefault("RATE_LIMIT_GENERAL_BURST", 40)
	viper.SetDefault("RATE_LIMIT_AUTH_RPS", 1)
	viper.SetDefault("RATE_LIMIT_AUTH_BURST", 5)

	viper.SetDefault("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"})
	viper.SetDefault("CORS_ALLOWED_METHODS", []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"})
	viper.SetDefault("CORS_ALLOWED_HEADERS", []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"})
	viper.SetDefault("CORS_EXPOSED_HEADERS", []string{"X-Request-ID"})
	viper.SetDefault("CORS_MAX_AGE", int((12 * time.Hour).Seconds()))

	viper.SetDefault("MQTT_CLIENT_ID", "jobboard-api")
	viper.SetDefault("MQTT_TOPIC_PREFIX", "jobboard")

	viper.SetDefault("AI_MODEL", "gemini-2.5-flash")

	viper.SetDefault("TOKEN_CLEANUP_SPEC", "@every 1h")
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AddConfigPath(".")
	if homeDir, err := os.UserHomeDir(); err == nil {
		viper.AddConfigPath(homeDir)
	}
	viper.AutomaticEnv()
	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		log.Printf("Warning: config file not found: %v. Falling back to environment variables only.", err)
	}

	config := &Config{
		Server: ServerConfig{
			Port:        viper.GetString("SERVER_PORT"),
			Host:        viper.GetString("SERVER_HOST"),
			Environment: viper.GetString("ENVIRONMENT"),
		},
		Database: DatabaseConfig{
			Driver:   viper.GetString("STORAGE_DRIVER"),
			Host:     viper.GetString("DB_HOST"),
			Port:     viper.GetString("DB_PORT"),
			User:     viper.GetString("DB_USER"),
			Password: viper.GetString("DB_PASSWORD"),
			DBName:   viper.GetString("DB_NAME"),
			SSLMode:  viper.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{
			Driver: viper.GetString("CACHE_DRIVER"),
			URL:    viper.GetString("REDIS_URL"),
		},
		JWT: JWTConfig{
			Secret:             viper.GetString("JWT_SECRET"),
			ExpiryHours:        viper.GetInt("JWT_EXPIRY_HOURS"),
			RefreshExpiryHours: viper.GetInt("JWT_REFRESH_EXPIRY_HOURS"),
		},
		SMTP: SMTPConfig{
			Host:     viper.GetString("SMTP_HOST"),
			Port:     viper.GetInt("SMTP_PORT"),
			User:     viper.GetString("SMTP_USER"),
			Password: viper.GetString("SMTP_PASSWORD"),
			From:     viper.GetString("SMTP_FROM"),
		},
		PasswordReset: PasswordResetConfig{
			TokenTTL:        viper.GetDuration("PASSWORD_RESET_TTL"),
			MinLength:       viper.GetInt("PASSWORD_RESET_MIN_LENGTH"),
			ResetURL:        viper.GetString("PASSWORD_RESET_URL"),
			MailWorkers:     viper.GetInt("MAIL_WORKERS"),
			MailQueueSize:   viper.GetInt("MAIL_QUEUE_SIZE"),
			MailSendTimeout: viper.GetDuration("MAIL_SEND_TIMEOUT"),
		},
		RateLimit: RateLimitConfig{
			GeneralRPS:   viper.GetFloat64("RATE_LIMIT_GENERAL_RPS"),
			GeneralBurst: viper.GetInt("RATE_LIMIT_GENERAL_BURST"),
			AuthRPS:      viper.GetFloat64("RATE_LIMIT_AUTH_RPS"),
			AuthBurst:    viper.GetInt("RATE_LIMIT_AUTH_BURST"),
		},
		CORS: CORSConfig{
			AllowedOrigins:   viper.GetStringSlice("CORS_ALLOWED_ORIGINS"),
			AllowedMethods:   viper.GetStringSlice("CORS_ALLOWED_METHODS"),
			AllowedHeaders:   viper.GetStringSlice("CORS_ALLOWED_HEADERS"),
			ExposedHeaders:   viper.GetStringSlice("CORS_EXPOSED_HEADERS"),
			AllowCredentials: viper.GetBool("CORS_ALLOW_CREDENTIALS"),
			MaxAge:           viper.GetInt("CORS_MAX_AGE"),
		},
		MQTT: MQTTConfig{
			Broker:      viper.GetString("MQTT_BROKER"),
			ClientID:    viper.GetString("MQTT_CLIENT_ID"),
			Username:    viper.GetString("MQTT_USERNAME"),
			Password:    viper.GetString("MQTT_PASSWORD"),
			TopicPrefix: viper.GetString("MQTT_TOPIC_PREFIX"),
		},
		AI: AIConfig{
			GeminiAPIKey: viper.GetString("GEMINI_API_KEY"),
			Model:        viper.GetString("AI_MODEL"),
		},
		Sentry: SentryConfig{
			DSN: viper.GetString("SENTRY_DSN"),
		},
		Scheduler: SchedulerConfig{
			TokenCleanupSpec: viper.GetString("TOKEN_CLEANUP_SPEC"),
		},
	}

	return config, nil
}

// Validate reports configuration that would make the server unusable.
func (c *Config) Validate() error {
	if c.JWT.Secret == "" {
		return errors.New("JWT secret is missing, set JWT_SECRET")
	}
	if c.Database.Driver == "postgres" && (c.Database.Host == "" || c.Database.DBName == "") {
		return errors.New("database configuration is missing, set DB_HOST and DB_NAME")
	}
	if c.PasswordReset.TokenTTL <= 0 {
		return errors.New("PASSWORD_RESET_TTL must be positive")
	}
	if c.PasswordReset.MinLength <= 0 {
		return errors.New("PASSWORD_RESET_MIN_LENGTH must be positive")
	}
	return nil
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode,
	)
}
