package config

import (
	"errors"
	"fmt"
	"io/fs"
	"net"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

const (
	defaultEnvLabel  = "dev"
	defaultHost      = "0.0.0.0"
	defaultPort      = 8080
	defaultLogLevel  = "info"
	defaultLogFormat = "text"

	maxPort = 65535
)

var (
	ErrInvalidPort      = errors.New("invalid port")
	ErrInvalidLogLevel  = errors.New("invalid log level")
	ErrInvalidLogFormat = errors.New("invalid log format")
)

type Config struct {
	EnvLabel  string
	Host      string
	Port      int
	LogLevel  log.Level
	LogFormat string
}

func Load() (*Config, error) {
	cfg := &Config{
		EnvLabel:  getEnvOrDefault("APP_ENV", defaultEnvLabel),
		Host:      getEnvOrDefault("HOST", defaultHost),
		LogFormat: strings.ToLower(getEnvOrDefault("LOG_FORMAT", defaultLogFormat)),
	}

	port, err := parsePort(getEnvOrDefault("PORT", strconv.Itoa(defaultPort)))
	if err != nil {
		return nil, err
	}
	cfg.Port = port

	level, err := log.ParseLevel(getEnvOrDefault("LOG_LEVEL", defaultLogLevel))
	if err != nil {
		return nil, fmt.Errorf("%w: LOG_LEVEL: %v", ErrInvalidLogLevel, err)
	}
	cfg.LogLevel = level

	if cfg.LogFormat != "text" && cfg.LogFormat != "json" {
		return nil, fmt.Errorf("%w: LOG_FORMAT=%q, want text or json", ErrInvalidLogFormat, cfg.LogFormat)
	}

	return cfg, nil
}

// LoadDotEnv seeds the process environment from a dotenv file. Variables
// already present in the environment are left untouched.
func LoadDotEnv(path string) error {
	if err := godotenv.Load(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("loading %s: %w", path, err)
	}
	return nil
}

func (c *Config) ListenAddress() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

func (c *Config) ConfigureLogger(logger *log.Logger) {
	logger.SetLevel(c.LogLevel)
	if c.LogFormat == "json" {
		logger.SetFormatter(&log.JSONFormatter{})
		return
	}
	logger.SetFormatter(&log.TextFormatter{FullTimestamp: true})
}

func parsePort(value string) (int, error) {
	port, err := strconv.Atoi(strings.TrimSpace(value))
	if err != nil {
		return 0, fmt.Errorf("%w: PORT=%q is not an integer", ErrInvalidPort, value)
	}
	if port < 0 || port > maxPort {
		return 0, fmt.Errorf("%w: PORT=%d out of range 0-%d", ErrInvalidPort, port, maxPort)
	}
	return port, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
