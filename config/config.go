package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	DatabaseName      string `mapstructure:"DATABASE_NAME"`
	Env               string `mapstructure:"ENV"`
	JWTSecret         string `mapstructure:"JWT_SECRET"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Redis configuration.
	RedisAddr       string `mapstructure:"REDIS_ADDR"`
	RedisPassword   string `mapstructure:"REDIS_PASSWORD"`
	RedisAuthDB     int    `mapstructure:"REDIS_AUTH_DB"`
	RedisReminderDB int    `mapstructure:"REDIS_REMINDER_DB"`

	// Slot computation.
	DefaultSlotStepMin int `mapstructure:"DEFAULT_SLOT_STEP_MIN"`

	// Reminder job. Reminders fire for confirmed reservations exactly
	// ReminderLeadDays ahead (any time that day) and for reservations within
	// ReminderLeadHours ± ReminderToleranceMin of now.
	ReminderLeadDays     int    `mapstructure:"REMINDER_LEAD_DAYS"`
	ReminderLeadHours    int    `mapstructure:"REMINDER_LEAD_HOURS"`
	ReminderToleranceMin int    `mapstructure:"REMINDER_TOLERANCE_MIN"`
	ReminderCronSpec     string `mapstructure:"REMINDER_CRON_SPEC"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_REMINDER_DB", 3)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "clinibook")
	viper.SetDefault("DEFAULT_SLOT_STEP_MIN", 30)
	viper.SetDefault("REMINDER_LEAD_DAYS", 2)
	viper.SetDefault("REMINDER_LEAD_HOURS", 4)
	viper.SetDefault("REMINDER_TOLERANCE_MIN", 15)
	viper.SetDefault("REMINDER_CRON_SPEC", "*/15 * * * *")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
