package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Port      string `mapstructure:"PORT"`
	GinMode   string `mapstructure:"GIN_MODE"`
	LogLevel  string `mapstructure:"LOG_LEVEL"`
	JWTSecret string `mapstructure:"JWT_SECRET"`

	DBHost     string `mapstructure:"DB_HOST"`
	DBUser     string `mapstructure:"DB_USER"`
	DBPassword string `mapstructure:"DB_PASSWORD"`
	DBName     string `mapstructure:"DB_NAME"`
	DBPort     string `mapstructure:"DB_PORT"`

	AWSRegion string `mapstructure:"AWS_REGION"`
	S3Bucket  string `mapstructure:"S3_BUCKET"`
	SESSender string `mapstructure:"SES_EMAIL"`
	SNSFCMArn string `mapstructure:"SNS_FCM_ARN"`

	HFToken string `mapstructure:"HUGGINGFACE_TOKEN"`
	HFModel string `mapstructure:"HUGGINGFACE_MODEL"`
}

var App *Config

// Load reads .env (if present) and the process environment into App.
func Load() (*Config, error) {
	// .env is optional; real deployments set env vars directly
	_ = godotenv.Load()

	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("HUGGINGFACE_MODEL", "google/flan-t5-small")

	// AutomaticEnv alone does not populate Unmarshal; bind each key explicitly.
	for _, key := range []string{
		"PORT", "GIN_MODE", "LOG_LEVEL", "JWT_SECRET",
		"DB_HOST", "DB_USER", "DB_PASSWORD", "DB_NAME", "DB_PORT",
		"AWS_REGION", "S3_BUCKET", "SES_EMAIL", "SNS_FCM_ARN",
		"HUGGINGFACE_TOKEN", "HUGGINGFACE_MODEL",
	} {
		_ = v.BindEnv(key)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if c.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	App = &c
	return App, nil
}

func (c *Config) DSN() string {
	return fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=disable",
		c.DBHost, c.DBUser, c.DBPassword, c.DBName, c.DBPort)
}
