package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Postgres PostgresConfig
	Redis    RedisConfig
	Cors     CorsConfig
	Logger   LoggerConfig
	Jaeger   JaegerConfig
	Sentry   SentryConfig
	Auth     AuthConfig
	Cleanup  CleanupConfig
	Events   EventsConfig
}

type ServerConfig struct {
	InternalPort string
	ExternalPort string
	RunMode      string
	Domain       string
}

type LoggerConfig struct {
	FilePath string
	Encoding string
	Level    string
}

type PostgresConfig struct {
	Host            string
	Port            string
	User            string
	Password        string
	DbName          string
	SSLMode         string
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime time.Duration
}

type RedisConfig struct {
	Host         string
	Port         string
	Password     string
	Db           int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	PoolTimeout  time.Duration
}

type CorsConfig struct {
	AllowOrigins string
}

type JaegerConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	// Exporter selects "jaeger" (collector endpoint) or "otlp" (OTLP over HTTP).
	Exporter string
}

type SentryConfig struct {
	Dsn            string
	Debug          bool
	SendDefaultPII bool
}

type AuthConfig struct {
	JwtSecret string
	TokenTTL  time.Duration
}

type CleanupConfig struct {
	Interval time.Duration
}

type EventsConfig struct {
	BufferSize int
	AmqpURL    string
	Exchange   string
}

func GetConfig() *Config {
	return GetConfigForEnv(os.Getenv("APP_ENV"))
}

func GetConfigForEnv(env string) *Config {
	cfgPath := getConfigPath(env)
	v, err := LoadConfig(cfgPath, "yml")
	if err != nil {
		log.Fatalf("Error in load config %v", err)
	}

	cfg, err := ParseConfig(v)
	if err != nil {
		log.Fatalf("Error in parse config %v", err)
	}

	if envPort := os.Getenv("PORT"); envPort != "" {
		cfg.Server.ExternalPort = envPort
		log.Printf("Set external port from environment -> %s", cfg.Server.ExternalPort)
	} else {
		log.Printf("Using external port from config -> %s", cfg.Server.ExternalPort)
	}

	if err := cfg.Validate(); err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	return cfg
}

func ParseConfig(v *viper.Viper) (*Config, error) {
	var cfg Config
	err := v.Unmarshal(&cfg)
	if err != nil {
		log.Printf("Unable to parse config: %v", err)
		return nil, err
	}
	cfg.applyDefaults()
	return &cfg, nil
}

// LoadConfig reads filename from the first of extraPaths or the usual
// locations that contains it. Environment variables override file values,
// with "." in keys replaced by "_" (POSTGRES_PASSWORD, AUTH_JWTSECRET).
func LoadConfig(filename string, fileType string, extraPaths ...string) (*viper.Viper, error) {
	v := viper.New()
	v.SetConfigType(fileType)
	v.SetConfigName(filename)

	for _, p := range extraPaths {
		v.AddConfigPath(p)
	}

	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("../config")
	v.AddConfigPath("../../config")

	if wd, err := os.Getwd(); err == nil {
		v.AddConfigPath(filepath.Join(wd, "config"))
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	err := v.ReadInConfig()
	if err != nil {
		log.Printf("Unable to read config: %v", err)
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if errors.As(err, &configFileNotFoundError) {
			return nil, errors.New("config file not found")
		}
		return nil, err
	}

	log.Printf("Using config file: %s", v.ConfigFileUsed())
	return v, nil
}

func getConfigPath(env string) string {
	switch env {
	case "docker":
		return "config-docker"
	case "production":
		return "config-production"
	default:
		return "config-development"
	}
}

func (c *Config) applyDefaults() {
	if c.Auth.TokenTTL == 0 {
		c.Auth.TokenTTL = 7 * 24 * time.Hour
	}
	if c.Cleanup.Interval == 0 {
		c.Cleanup.Interval = time.Minute
	}
	if c.Events.BufferSize == 0 {
		c.Events.BufferSize = 256
	}
	if c.Events.Exchange == "" {
		c.Events.Exchange = "roomly.events"
	}
	if c.Postgres.SSLMode == "" {
		c.Postgres.SSLMode = "disable"
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.InternalPort == "" {
		return errors.New("server.internalPort is required")
	}
	if c.Server.ExternalPort == "" {
		return errors.New("server.externalPort is required")
	}

	if c.Postgres.Host == "" {
		return errors.New("postgres.host is required")
	}
	if c.Postgres.Port == "" {
		return errors.New("postgres.port is required")
	}
	if c.Postgres.DbName == "" {
		return errors.New("postgres.dbName is required")
	}

	if c.Redis.Host == "" {
		return errors.New("redis.host is required")
	}
	if c.Redis.Port == "" {
		return errors.New("redis.port is required")
	}

	if c.Auth.JwtSecret == "" {
		return errors.New("auth.jwtSecret is required")
	}
	if c.IsProduction() && len(c.Auth.JwtSecret) < 32 {
		return errors.New("auth.jwtSecret must be at least 32 characters in production")
	}

	if c.Cleanup.Interval <= 0 {
		return errors.New("cleanup.interval must be positive")
	}

	return nil
}

func (c *Config) IsDevelopment() bool {
	return c.Server.RunMode == "debug" || c.Server.RunMode == "development"
}

func (c *Config) IsProduction() bool {
	return c.Server.RunMode == "release" || c.Server.RunMode == "production"
}

func (c *Config) GetPostgresConnectionString() string {
	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=UTC",
		c.Postgres.Host,
		c.Postgres.Port,
		c.Postgres.User,
		c.Postgres.Password,
		c.Postgres.DbName,
		c.Postgres.SSLMode,
	)
}

func (c *Config) GetRedisAddress() string {
	return fmt.Sprintf("%s:%s", c.Redis.Host, c.Redis.Port)
}

func (c *Config) GetServerAddress() string {
	return fmt.Sprintf(":%s", c.Server.InternalPort)
}
