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
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisOTPDB    int    `mapstructure:"REDIS_OTP_DB"`
	RedisQueueDB  int    `mapstructure:"REDIS_QUEUE_DB"`

	// Razorpay credentials.
	RazorpayKeyID  string `mapstructure:"RAZORPAY_KEY_ID"`
	RazorpaySecret string `mapstructure:"RAZORPAY_KEY_SECRET"`

	// SMTP credentials for booking confirmation mail.
	SMTPHost string `mapstructure:"SMTP_HOST"`
	SMTPPort int    `mapstructure:"SMTP_PORT"`
	SMTPUser string `mapstructure:"SMTP_USER"`
	SMTPPass string `mapstructure:"SMTP_PASS"`
	MailFrom string `mapstructure:"MAIL_FROM"`

	// WhatsApp Cloud API credentials.
	WhatsAppToken   string `mapstructure:"WHATSAPP_TOKEN"`
	WhatsAppPhoneID string `mapstructure:"WHATSAPP_PHONE_ID"`
	WhatsAppAPIBase string `mapstructure:"WHATSAPP_API_BASE"`

	// Cloudinary credentials.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`

	// Bookings may only be cancelled this many hours before start.
	CancelCutoffHours int `mapstructure:"CANCEL_CUTOFF_HOURS"`
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
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_OTP_DB", 1)
	viper.SetDefault("REDIS_QUEUE_DB", 2)
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("DATABASE_NAME", "motoclub")
	viper.SetDefault("WHATSAPP_API_BASE", "https://graph.facebook.com/v19.0")
	viper.SetDefault("SMTP_PORT", 587)
	viper.SetDefault("CANCEL_CUTOFF_HOURS", 24)

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// Optional integrations degrade with a warning rather than a crash.
	if AppConfig.CloudinaryCloudName == "" || AppConfig.CloudinaryAPIKey == "" {
		log.Println("Cloudinary credentials not set, image uploads disabled")
	}
	if AppConfig.WhatsAppToken == "" || AppConfig.WhatsAppPhoneID == "" {
		log.Println("WhatsApp credentials not set, WhatsApp notifications disabled")
	}
	if AppConfig.SMTPHost == "" || AppConfig.SMTPUser == "" {
		log.Println("SMTP credentials not set, email notifications disabled")
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
