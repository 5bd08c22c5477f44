package internal

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	Server        ServerConfig        `mapstructure:"http_server"`
	Database      DatabaseConfig      `mapstructure:"database"`
	Merchant      MerchantConfig      `mapstructure:"merchant"`
	Gateway       GatewayConfig       `mapstructure:"gateway"`
	Observability ObservabilityConfig `mapstructure:"observability"`
}

type ServerConfig struct {
	Port              int           `mapstructure:"port"`
	BaseURL           string        `mapstructure:"base_url"`
	AllowedOrigins    string        `mapstructure:"allowed_origins"`
	ReadHeaderTimeout time.Duration `mapstructure:"read_header_timeout"`
	ReadTimeout       time.Duration `mapstructure:"read_timeout"`
	IdleTimeout       time.Duration `mapstructure:"idle_timeout"`
	WriteTimeout      time.Duration `mapstructure:"write_timeout"`
}

type DatabaseConfig struct {
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"`
	Source          string        `mapstructure:"source"`
}

// MerchantConfig carries the credentials issued by the gateway. The key is
// base64 and must decode to exactly 32 bytes.
type MerchantConfig struct {
	MerchantID    string `mapstructure:"merchant_id"`
	AggregatorID  string `mapstructure:"aggregator_id"`
	EncryptionKey string `mapstructure:"encryption_key"`
}

type GatewayConfig struct {
	Environment    string        `mapstructure:"environment"`
	Timeout        time.Duration `mapstructure:"timeout"`
	IncludeAPIHash bool          `mapstructure:"include_api_hash"`
}

type ObservabilityConfig struct {
	Logging LoggingConfig `mapstructure:"logging"`
}

type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ----------------- HELPERS -----------------

func getEnv(key, defaultVal string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return defaultVal
}

// LoadConfigFromEnv builds the configuration from environment variables for
// container deployments.
func LoadConfigFromEnv() *Config {
	return &Config{
		Server: ServerConfig{
			Port:              getEnvAsInt("SERVER_PORT", 8080),
			BaseURL:           getEnv("SERVER_BASE_URL", "http://localhost:8080"),
			AllowedOrigins:    getEnv("SERVER_ALLOWED_ORIGINS", "*"),
			ReadHeaderTimeout: 5 * time.Second,
			ReadTimeout:       15 * time.Second,
			IdleTimeout:       60 * time.Second,
			WriteTimeout:      15 * time.Second,
		},
		Database: DatabaseConfig{
			MaxOpenConns:    getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvAsInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: 30 * time.Minute,
			ConnMaxIdleTime: 5 * time.Minute,
			Source:          getEnv("DATABASE_URL", ""),
		},
		Merchant: MerchantConfig{
			MerchantID:    getEnv("MERCHANT_ID", ""),
			AggregatorID:  getEnv("AGGREGATOR_ID", "yagout"),
			EncryptionKey: getEnv("MERCHANT_ENCRYPTION_KEY", ""),
		},
		Gateway: GatewayConfig{
			Environment:    getEnv("GATEWAY_ENVIRONMENT", "uat"),
			Timeout:        time.Duration(getEnvAsInt("GATEWAY_TIMEOUT_SECONDS", 30)) * time.Second,
			IncludeAPIHash: getEnvAsBool("GATEWAY_INCLUDE_API_HASH", true),
		},
		Observability: ObservabilityConfig{
			Logging: LoggingConfig{
				Level:  getEnv("LOG_LEVEL", "info"),
				Format: getEnv("LOG_FORMAT", "json"),
			},
		},
	}
}

// ----------------- VALIDATION -----------------

func (c *Config) Validate() error {
	var errs []string

	if err := c.Server.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("server config: %v", err))
	}

	if err := c.Database.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("database config: %v", err))
	}

	if err := c.Merchant.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("merchant config: %v", err))
	}

	if err := c.Gateway.Validate(); err != nil {
		errs = append(errs, fmt.Sprintf("gateway config: %v", err))
	}

	if len(errs) > 0 {
		return errors.New(strings.Join(errs, "; "))
	}

	return nil
}

func (c *ServerConfig) Validate() error {
	if c.AllowedOrigins != "" {
		origins := strings.Split(c.AllowedOrigins, ",")
		for _, origin := range origins {
			origin = strings.TrimSpace(origin)
			if origin == "*" {
				continue
			}
			if _, err := url.Parse(origin); err != nil {
				return fmt.Errorf("invalid allowed origin %s: %w", origin, err)
			}
		}
	}
	if c.ReadTimeout < c.ReadHeaderTimeout {
		return errors.New("read_timeout must be >= read_header_timeout")
	}
	return nil
}

func (c *DatabaseConfig) Validate() error {
	if c.MaxIdleConns > c.MaxOpenConns {
		return errors.New("max_idle_conns cannot be greater than max_open_conns")
	}
	return nil
}

func (c *DatabaseConfig) GetDSN() string {
	return c.Source
}

func (c *MerchantConfig) Validate() error {
	if c.MerchantID == "" {
		return errors.New("merchant_id is required")
	}
	if c.EncryptionKey == "" {
		return errors.New("encryption_key is required")
	}
	key, err := base64.StdEncoding.DecodeString(c.EncryptionKey)
	if err != nil {
		return fmt.Errorf("encryption_key is not valid base64: %w", err)
	}
	if len(key) != 32 {
		return fmt.Errorf("encryption_key must decode to 32 bytes, got %d", len(key))
	}
	return nil
}

func (c *GatewayConfig) Validate() error {
	switch c.Environment {
	case "", "uat", "prod":
	default:
		return fmt.Errorf("unknown gateway environment %q", c.Environment)
	}
	return nil
}
