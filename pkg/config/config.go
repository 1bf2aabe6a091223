package config

import (
	"errors"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"
)

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
)

type Config struct {
	Env  string
	Host string
	Port int

	Database   DatabaseConfig
	Redis      RedisConfig
	CORS       CORSConfig
	Log        LogConfig
	Seed       SeedConfig
	Statistics StatisticsConfig
}

type DatabaseConfig struct {
	Driver       string
	Path         string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SeedConfig holds the default account created at startup when missing.
type SeedConfig struct {
	Username string
	Password string
}

// StatisticsConfig governs the optional cache in front of the statistics query.
type StatisticsConfig struct {
	CacheEnabled bool
	CacheTTL     time.Duration
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Host = v.GetString("HOST")
	cfg.Port = v.GetInt("PORT")

	cfg.Database = DatabaseConfig{
		Driver:       strings.ToLower(v.GetString("DB_DRIVER")),
		Path:         v.GetString("DB_PATH"),
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Seed = SeedConfig{
		Username: v.GetString("SEED_USERNAME"),
		Password: v.GetString("SEED_PASSWORD"),
	}

	cfg.Statistics = StatisticsConfig{
		CacheEnabled: v.GetBool("ENABLE_STATISTICS_CACHE"),
		CacheTTL:     parseDuration(v.GetString("STATISTICS_CACHE_TTL"), 5*time.Minute),
	}

	if cfg.Database.Driver != DriverSQLite && cfg.Database.Driver != DriverPostgres {
		return nil, errors.New("DB_DRIVER must be sqlite or postgres")
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("HOST", "0.0.0.0")
	v.SetDefault("PORT", 3000)

	v.SetDefault("DB_DRIVER", DriverSQLite)
	v.SetDefault("DB_PATH", "./database.db")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "tutoring")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SEED_USERNAME", "Ricardo")
	v.SetDefault("SEED_PASSWORD", "R1c@rd0")

	v.SetDefault("ENABLE_STATISTICS_CACHE", false)
	v.SetDefault("STATISTICS_CACHE_TTL", "5m")
}

// SetConfigFile bypasses the search path, so a missing .env surfaces as a raw fs error.
func isMissingFile(err error) bool {
	return errors.Is(err, fs.ErrNotExist)
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
