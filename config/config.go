package config

import (
	"errors"
	"log"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	DatabaseURL       string `mapstructure:"DATABASE_URL"`
	MongoDatabase     string `mapstructure:"MONGO_DATABASE"`
	PostgresURL       string `mapstructure:"POSTGRES_URL"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`
	CORSOrigins       string `mapstructure:"CORS_ORIGINS"`
	AdminToken        string `mapstructure:"ADMIN_TOKEN"`

	// Redis configuration.
	RedisAddr         string        `mapstructure:"REDIS_ADDR"`
	RedisPassword     string        `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB      int           `mapstructure:"REDIS_CACHE_DB"`
	LocationsCacheTTL time.Duration `mapstructure:"LOCATIONS_CACHE_TTL"`

	// Upstream dining API.
	DiningAPIURL       string `mapstructure:"DINING_API_URL"`
	DiningPollSchedule string `mapstructure:"DINING_POLL_SCHEDULE"`
	DiningTimezone     string `mapstructure:"DINING_TIMEZONE"`

	// MapKit JS token signing.
	MapKitTeamID     string        `mapstructure:"MAPKIT_TEAM_ID"`
	MapKitKeyID      string        `mapstructure:"MAPKIT_KEY_ID"`
	MapKitPrivateKey string        `mapstructure:"MAPKIT_PRIVATE_KEY"`
	MapKitOrigin     string        `mapstructure:"MAPKIT_ORIGIN"`
	MapKitTokenTTL   time.Duration `mapstructure:"MAPKIT_TOKEN_TTL"`

	// MQTT status publishing.
	MQTTEnabled     bool   `mapstructure:"MQTT_ENABLED"`
	MQTTBroker      string `mapstructure:"MQTT_BROKER"`
	MQTTUsername    string `mapstructure:"MQTT_USERNAME"`
	MQTTPassword    string `mapstructure:"MQTT_PASSWORD"`
	MQTTTopicPrefix string `mapstructure:"MQTT_TOPIC_PREFIX"`
}

var AppConfig Config

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_PORT", "8080")
	v.SetDefault("ENV", "development")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	v.SetDefault("MONGO_DATABASE", "cmueats")
	v.SetDefault("CORS_ORIGINS", "http://localhost:5173")
	v.SetDefault("REDIS_ADDR", "localhost:6379")
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_CACHE_DB", 0)
	v.SetDefault("LOCATIONS_CACHE_TTL", 5*time.Minute)
	v.SetDefault("DINING_API_URL", "https://dining.apps.scottylabs.org")
	v.SetDefault("DINING_POLL_SCHEDULE", "@every 1m")
	v.SetDefault("DINING_TIMEZONE", "America/New_York")
	v.SetDefault("MAPKIT_TOKEN_TTL", 30*time.Minute)
	v.SetDefault("MQTT_ENABLED", false)
	v.SetDefault("MQTT_TOPIC_PREFIX", "cmueats")

	// Keys without a default still need registering so Unmarshal sees env values.
	for _, key := range []string{
		"DATABASE_URL", "POSTGRES_URL", "ADMIN_TOKEN",
		"MAPKIT_TEAM_ID", "MAPKIT_KEY_ID", "MAPKIT_PRIVATE_KEY", "MAPKIT_ORIGIN",
		"MQTT_BROKER", "MQTT_USERNAME", "MQTT_PASSWORD",
	} {
		v.SetDefault(key, "")
	}
}

// Load reads configuration from an optional config.yaml and the environment.
func Load(v *viper.Viper) (Config, error) {
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, err
		}
		log.Println("No config file found, using environment variables only")
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, err
	}
	cfg.DatabaseURL = strings.TrimSpace(cfg.DatabaseURL)
	cfg.PostgresURL = strings.TrimSpace(cfg.PostgresURL)
	return cfg, nil
}

// Validate reports configuration the server cannot start without.
func (c Config) Validate() error {
	var missing []string
	if c.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	if c.PostgresURL == "" {
		missing = append(missing, "POSTGRES_URL")
	}
	if len(missing) > 0 {
		return errors.New("missing required configuration: " + strings.Join(missing, ", "))
	}
	return nil
}

// LoadConfig populates AppConfig and exits when required values are missing.
func LoadConfig() {
	// A local .env is optional; real environment variables take precedence.
	if err := godotenv.Load(); err == nil {
		log.Println("Loaded environment from .env")
	}
	cfg, err := Load(viper.GetViper())
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid config: %v", err)
	}
	AppConfig = cfg
}

// CORSOriginList splits CORS_ORIGINS on commas.
func (c Config) CORSOriginList() []string {
	var out []string
	for _, part := range strings.Split(c.CORSOrigins, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
