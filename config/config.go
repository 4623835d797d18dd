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
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	AllowedOrigins    string `mapstructure:"ALLOWED_ORIGINS"`

	// Google integrations. Leaving the credentials file empty runs the
	// system on generated sample data.
	GoogleCredentialsFile string `mapstructure:"GOOGLE_CREDENTIALS_FILE"`
	CalendarID            string `mapstructure:"CALENDAR_ID"`
	SpreadsheetID         string `mapstructure:"SPREADSHEET_ID"`
	SheetName             string `mapstructure:"SHEET_NAME"`

	// Sync behavior.
	SyncSchedule       string `mapstructure:"SYNC_SCHEDULE"`
	SyncTimeoutSeconds int    `mapstructure:"SYNC_TIMEOUT_SECONDS"`
	SyncWindowDays     int    `mapstructure:"SYNC_WINDOW_DAYS"`

	// How many concurrent options a grid cell shows before collapsing.
	GroupThreshold int `mapstructure:"GROUP_THRESHOLD"`
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
	viper.SetDefault("ALLOWED_ORIGINS", "*")
	viper.SetDefault("GOOGLE_CREDENTIALS_FILE", "")
	viper.SetDefault("CALENDAR_ID", "primary")
	viper.SetDefault("SPREADSHEET_ID", "")
	viper.SetDefault("SHEET_NAME", "Clients")
	viper.SetDefault("SYNC_SCHEDULE", "@every 15m")
	viper.SetDefault("SYNC_TIMEOUT_SECONDS", 30)
	viper.SetDefault("SYNC_WINDOW_DAYS", 30)
	viper.SetDefault("GROUP_THRESHOLD", 3)

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

// SyncTimeout returns the per-sync deadline as a duration.
func SyncTimeout() time.Duration {
	return time.Duration(AppConfig.SyncTimeoutSeconds) * time.Second
}

// Origins splits the comma-separated origin list for the CORS layer.
func Origins() []string {
	parts := strings.Split(AppConfig.AllowedOrigins, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
