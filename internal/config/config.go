package config

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Env      string
	LogLevel string
	Database DatabaseConfig
	AWS      AWSConfig
	Plot     PlotConfig
}

// DatabaseConfig holds database configuration. An empty URL disables the run ledger.
type DatabaseConfig struct {
	URL string
}

// AWSConfig holds AWS/S3 configuration. An empty bucket disables artifact upload.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	S3Bucket        string
	S3Endpoint      string
}

// PlotConfig holds figure output configuration
type PlotConfig struct {
	Output   string  // empty means next to the input file
	WidthIn  float64 // inches
	HeightIn float64 // inches
}

// Load loads configuration from environment variables and .env files
func Load() (*Config, error) {
	// Set defaults
	viper.SetDefault("ENVIRONMENT", "dev")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("DATABASE_URL", "")
	viper.SetDefault("AWS_REGION", "us-east-1")
	viper.SetDefault("AWS_ACCESS_KEY_ID", "")
	viper.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	viper.SetDefault("S3_BUCKET", "")
	viper.SetDefault("S3_ENDPOINT", "")
	viper.SetDefault("PLOT_OUTPUT", "")
	viper.SetDefault("PLOT_WIDTH_IN", 8.0)
	viper.SetDefault("PLOT_HEIGHT_IN", 5.0)

	// Environment variables override .env file values
	viper.AutomaticEnv()

	// Read from .env files based on environment
	env := viper.GetString("ENVIRONMENT")
	if env == "" {
		env = "dev" // Use "dev" to match .env.dev filename
	}

	viper.SetConfigName(".env." + env)
	viper.SetConfigType("env")
	viper.AddConfigPath(".")

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, err
		}
	}

	viper.BindEnv("ENVIRONMENT")
	viper.BindEnv("LOG_LEVEL")
	viper.BindEnv("DATABASE_URL")
	viper.BindEnv("AWS_REGION")
	viper.BindEnv("AWS_ACCESS_KEY_ID")
	viper.BindEnv("AWS_SECRET_ACCESS_KEY")
	viper.BindEnv("S3_BUCKET")
	viper.BindEnv("S3_ENDPOINT")
	viper.BindEnv("PLOT_OUTPUT")
	viper.BindEnv("PLOT_WIDTH_IN")
	viper.BindEnv("PLOT_HEIGHT_IN")

	var config Config
	config.Env = env
	config.LogLevel = viper.GetString("LOG_LEVEL")
	config.Database.URL = viper.GetString("DATABASE_URL")
	config.AWS.Region = viper.GetString("AWS_REGION")
	config.AWS.AccessKeyID = viper.GetString("AWS_ACCESS_KEY_ID")
	config.AWS.SecretAccessKey = viper.GetString("AWS_SECRET_ACCESS_KEY")
	config.AWS.S3Bucket = viper.GetString("S3_BUCKET")
	config.AWS.S3Endpoint = viper.GetString("S3_ENDPOINT")
	config.Plot.Output = viper.GetString("PLOT_OUTPUT")
	config.Plot.WidthIn = viper.GetFloat64("PLOT_WIDTH_IN")
	config.Plot.HeightIn = viper.GetFloat64("PLOT_HEIGHT_IN")

	log.Debug().
		Str("env", config.Env).
		Bool("ledger_enabled", config.Database.URL != "").
		Bool("upload_enabled", config.AWS.S3Bucket != "").
		Msg("Configuration loaded")

	return &config, nil
}

// Level parses LogLevel, falling back to info
func (c *Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil || level == zerolog.NoLevel {
		return zerolog.InfoLevel
	}
	return level
}
