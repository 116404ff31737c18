// Package config handles application configuration loading and validation.
//
// Configuration is read once from environment variables with defaults
// (APP_ENV, HOST, PORT, LOG_LEVEL, LOG_FORMAT), optionally seeded from a
// dotenv file. Invalid values fail fast at startup.
package config
