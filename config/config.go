package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	RunMode           string `mapstructure:"RUN_MODE"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`

	// MongoDB.
	DatabaseURL  string `mapstructure:"DATABASE_URL"`
	DatabaseName string `mapstructure:"DATABASE_NAME"`

	// JWT.
	JWTSecret       string `mapstructure:"JWT_SECRET"`
	JWTAccessTTLMin int    `mapstructure:"JWT_ACCESS_TTL_MIN"`
	JWTRefreshTTLHr int    `mapstructure:"JWT_REFRESH_TTL_HR"`

	// Redis configuration.
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB   int    `mapstructure:"REDIS_AUTH_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Booking and reminder policy.
	BookingLeadMinutes  int    `mapstructure:"BOOKING_LEAD_MINUTES"`
	ReminderLeadMinutes int    `mapstructure:"REMINDER_LEAD_MINUTES"`
	ReminderQueue       string `mapstructure:"REMINDER_QUEUE"`
	WorkerConcurrency   int    `mapstructure:"WORKER_CONCURRENCY"`
	JobRetentionHours   int    `mapstructure:"JOB_RETENTION_HOURS"`

	// Firebase service account for FCM pushes. Empty disables FCM.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
}

var AppConfig Config

func setDefaults() {
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("RUN_MODE", "all")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "bookwise")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_ACCESS_TTL_MIN", 60)
	viper.SetDefault("JWT_REFRESH_TTL_HR", 168)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("BOOKING_LEAD_MINUTES", 15)
	viper.SetDefault("REMINDER_LEAD_MINUTES", 10)
	viper.SetDefault("REMINDER_QUEUE", "booking-jobs")
	viper.SetDefault("WORKER_CONCURRENCY", 10)
	viper.SetDefault("JOB_RETENTION_HOURS", 24)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "")
}

// LoadConfig reads config.yaml (if present) from "." or "./config", lets environment
// variables override it, and unmarshals the result into AppConfig.
func LoadConfig() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	viper.AutomaticEnv()

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if AppConfig.JWTSecret == "" {
		if IsProduction() {
			log.Fatal("JWT_SECRET must be set in production")
		}
		AppConfig.JWTSecret = "bookwise-dev-secret"
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}

// BookingLead is the minimum distance between creation time and a booking's start.
func BookingLead() time.Duration {
	return time.Duration(AppConfig.BookingLeadMinutes) * time.Minute
}

// ReminderLead is how long before a booking's start its reminder fires.
func ReminderLead() time.Duration {
	return time.Duration(AppConfig.ReminderLeadMinutes) * time.Minute
}

func AccessTokenTTL() time.Duration {
	return time.Duration(AppConfig.JWTAccessTTLMin) * time.Minute
}

func RefreshTokenTTL() time.Duration {
	return time.Duration(AppConfig.JWTRefreshTTLHr) * time.Hour
}

func JobRetention() time.Duration {
	return time.Duration(AppConfig.JobRetentionHours) * time.Hour
}

// AllowedOrigins splits CORS_ORIGINS on commas.
func AllowedOrigins() []string {
	var out []string
	for _, o := range strings.Split(AppConfig.CORSOrigins, ",") {
		o = strings.TrimSpace(o)
		if o != "" {
			out = append(out, o)
		}
	}
	return out
}

// RunsAPI reports whether this process serves HTTP.
func RunsAPI() bool {
	return AppConfig.RunMode == "all" || AppConfig.RunMode == "api"
}

// RunsWorker reports whether this process consumes reminder jobs.
func RunsWorker() bool {
	return AppConfig.RunMode == "all" || AppConfig.RunMode == "worker"
}
