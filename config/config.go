package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort  string `mapstructure:"APP_PORT"`
	Env      string `mapstructure:"ENV"`
	LogLevel string `mapstructure:"LOG_LEVEL"`

	// Telegram transport.
	BotToken    string `mapstructure:"BOT_TOKEN"`
	GroupChatID int64  `mapstructure:"GROUP_CHAT_ID"`

	// Reservation store backend: "file", "redis" or "mongo".
	StoreBackend string `mapstructure:"STORE_BACKEND"`
	DBFile       string `mapstructure:"DB_FILE"`
	DatabaseURL  string `mapstructure:"DATABASE_URL"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisBookingDB int    `mapstructure:"REDIS_BOOKING_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Schedule policy.
	Timezone          string `mapstructure:"TIMEZONE"`
	OpeningTime       string `mapstructure:"OPENING_TIME"`
	ClosingTime       string `mapstructure:"CLOSING_TIME"`
	SlotMinutes       int    `mapstructure:"SLOT_MINUTES"`
	SiestaStart       string `mapstructure:"SIESTA_START"`
	SiestaEnd         string `mapstructure:"SIESTA_END"`
	BookingLeadDays   int    `mapstructure:"BOOKING_LEAD_DAYS"`
	SweepGraceMinutes int    `mapstructure:"SWEEP_GRACE_MINUTES"`
	SweepEveryMinutes int    `mapstructure:"SWEEP_EVERY_MINUTES"`
	EnableSiesta      bool   `mapstructure:"ENABLE_SIESTA"`
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
	viper.SetDefault("BOT_TOKEN", "")
	viper.SetDefault("GROUP_CHAT_ID", 0)
	viper.SetDefault("STORE_BACKEND", "file")
	viper.SetDefault("DB_FILE", "bookings.json")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_BOOKING_DB", 0)
	viper.SetDefault("REDIS_QUEUE_DB", 1)
	viper.SetDefault("TIMEZONE", "Europe/Madrid")
	viper.SetDefault("OPENING_TIME", "08:00")
	viper.SetDefault("CLOSING_TIME", "21:30")
	viper.SetDefault("SLOT_MINUTES", 90)
	viper.SetDefault("SIESTA_START", "14:30")
	viper.SetDefault("SIESTA_END", "17:30")
	viper.SetDefault("BOOKING_LEAD_DAYS", 2)
	viper.SetDefault("SWEEP_GRACE_MINUTES", 30)
	viper.SetDefault("SWEEP_EVERY_MINUTES", 60)
	viper.SetDefault("ENABLE_SIESTA", false)

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
