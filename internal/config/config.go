// Package config also loads .env files and exposes the process-wide logger
// used before a Container exists.
package config

import (
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var (
	once sync.Once
	// Logger is the process-wide logger used during startup.
	Logger = logrus.New()
)

// ConfigureLogging sets up the startup logger from ISO20022_LOG_LEVEL and
// ISO20022_LOG_FORMAT, falling back to the unprefixed LOG_LEVEL and
// LOG_FORMAT.
func ConfigureLogging() *logrus.Logger {
	logLevelStr := GetEnv(EnvPrefix+"_LOG_LEVEL", GetEnv("LOG_LEVEL", "info"))

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		Logger.Warnf("Invalid log level '%s', using 'info'", logLevelStr)
		logLevel = logrus.InfoLevel
	}
	Logger.SetLevel(logLevel)

	if strings.ToLower(GetEnv(EnvPrefix+"_LOG_FORMAT", GetEnv("LOG_FORMAT", "text"))) == "json" {
		Logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		Logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return Logger
}

// LoadEnv loads the first .env file found in the current directory, its
// parent or $HOME/.iso20022-gen, once per process. Variables already set
// in the environment are not overridden.
func LoadEnv() {
	once.Do(func() {
		envFile, ok := findEnvFile()
		if !ok {
			Logger.Debug("No .env file found, using environment variables")
			return
		}

		if err := godotenv.Load(envFile); err != nil {
			Logger.Warnf("Error loading .env file %s: %v", envFile, err)
			return
		}
		Logger.Debugf("Loaded environment variables from %s", envFile)

		ConfigureLogging()
	})
}

func findEnvFile() (string, bool) {
	candidates := []string{".env", filepath.Join("..", ".env")}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, "."+AppName, ".env"))
	}
	for _, c := range candidates {
		if info, err := os.Stat(c); err == nil && !info.IsDir() {
			return c, true
		}
	}
	return "", false
}

// GetEnv retrieves an environment variable with a fallback value if not set
func GetEnv(key, fallback string) string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	return value
}
