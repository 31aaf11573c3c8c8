// Package config provides Viper-based hierarchical configuration management
package config

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable the configuration reads.
const EnvPrefix = "ISO20022"

// AppName names the per-user configuration directory ($HOME/.iso20022-gen).
const AppName = "iso20022-gen"

var routingNumberPattern = regexp.MustCompile(`^[0-9]{9}$`)

// Config represents the complete application configuration
type Config struct {
	Log struct {
		Level  string `mapstructure:"level" yaml:"level"`
		Format string `mapstructure:"format" yaml:"format"`
	} `mapstructure:"log" yaml:"log"`

	Fedwire struct {
		RoutingNumber          string `mapstructure:"routing_number" yaml:"routing_number"`
		BusinessService        string `mapstructure:"business_service" yaml:"business_service"`
		MarketPracticeRegistry string `mapstructure:"market_practice_registry" yaml:"market_practice_registry"`
		MarketPracticeID       string `mapstructure:"market_practice_id" yaml:"market_practice_id"`
	} `mapstructure:"fedwire" yaml:"fedwire"`

	Schemas struct {
		Directory string `mapstructure:"directory" yaml:"directory"`
		Validate  bool   `mapstructure:"validate" yaml:"validate"`
	} `mapstructure:"schemas" yaml:"schemas"`

	Output struct {
		Directory     string `mapstructure:"directory" yaml:"directory"`
		PayloadFormat string `mapstructure:"payload_format" yaml:"payload_format"`
	} `mapstructure:"output" yaml:"output"`

	Server struct {
		Host        string `mapstructure:"host" yaml:"host"`
		Port        int    `mapstructure:"port" yaml:"port"`
		MaxUploadMB int    `mapstructure:"max_upload_mb" yaml:"max_upload_mb"`
	} `mapstructure:"server" yaml:"server"`
}

// InitializeConfig initializes Viper configuration with hierarchical loading
func InitializeConfig() (*Config, error) {
	v := viper.New()

	// 1. Set defaults
	setDefaults(v)

	// 2. Config file locations
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("$HOME/." + AppName)
	v.AddConfigPath("." + AppName)
	v.AddConfigPath(".")

	// 3. Environment variables
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// 4. Read config file (optional)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			Logger.Warnf("Error reading config file %s: %v", v.ConfigFileUsed(), err)
		}
	}

	// 5. Unprefixed names used by existing deployments
	bindLegacyEnv(v)

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// 6. Validate configuration
	if err := validateConfig(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	v.SetDefault("fedwire.routing_number", "021151080")
	v.SetDefault("fedwire.business_service", "TEST")
	v.SetDefault("fedwire.market_practice_registry", "www2.swift.com/mystandards/#/group/Federal_Reserve_Financial_Services/Fedwire_Funds_Service")
	v.SetDefault("fedwire.market_practice_id", "frb.fedwire.01")

	v.SetDefault("schemas.directory", "schemas")
	v.SetDefault("schemas.validate", false)

	v.SetDefault("output.directory", "")
	v.SetDefault("output.payload_format", "json")

	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8888)
	v.SetDefault("server.max_upload_mb", 16)
}

// legacyEnv maps configuration keys to the unprefixed variable names the
// first releases read.
var legacyEnv = map[string]string{
	"fedwire.routing_number":           "ROUTING_NUMBER",
	"fedwire.business_service":         "BUSINESS_SERVICE",
	"fedwire.market_practice_registry": "MARKET_PRACTICE_REGY",
	"fedwire.market_practice_id":       "MARKET_PRACTICE_ID",
	"schemas.directory":                "XSD_PATH",
}

func bindLegacyEnv(v *viper.Viper) {
	for key, name := range legacyEnv {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		// the prefixed name is listed first so it wins when both are set
		if err := v.BindEnv(key, prefixed, name); err != nil {
			Logger.Warnf("Failed to bind %s environment variable: %v", name, err)
		}
	}
}

// validateConfig validates the configuration values
func validateConfig(config *Config) error {
	if _, err := logrus.ParseLevel(config.Log.Level); err != nil {
		return fmt.Errorf("invalid log level: %s", config.Log.Level)
	}

	if config.Log.Format != "text" && config.Log.Format != "json" {
		return fmt.Errorf("invalid log format: %s (must be 'text' or 'json')", config.Log.Format)
	}

	if !routingNumberPattern.MatchString(config.Fedwire.RoutingNumber) {
		return fmt.Errorf("fedwire.routing_number must be 9 digits, got: %s", config.Fedwire.RoutingNumber)
	}

	if strings.TrimSpace(config.Fedwire.BusinessService) == "" {
		return fmt.Errorf("fedwire.business_service must not be empty")
	}

	switch config.Output.PayloadFormat {
	case "json", "yaml":
	default:
		return fmt.Errorf("invalid payload format: %s (must be 'json' or 'yaml')", config.Output.PayloadFormat)
	}

	if config.Server.Port < 1 || config.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got: %d", config.Server.Port)
	}

	if config.Server.MaxUploadMB < 1 {
		return fmt.Errorf("server.max_upload_mb must be positive, got: %d", config.Server.MaxUploadMB)
	}

	return nil
}

// ValidRoutingNumber reports whether s is a 9-digit ABA routing number.
func ValidRoutingNumber(s string) bool {
	return routingNumberPattern.MatchString(s)
}

// ConfigureLoggingFromConfig configures logging based on the Config struct
func ConfigureLoggingFromConfig(config *Config) *logrus.Logger {
	logger := logrus.New()

	logLevel, err := logrus.ParseLevel(strings.ToLower(config.Log.Level))
	if err != nil {
		logger.Warnf("Invalid log level '%s', using 'info'", config.Log.Level)
		logLevel = logrus.InfoLevel
	}
	logger.SetLevel(logLevel)

	if strings.ToLower(config.Log.Format) == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logger.SetFormatter(&logrus.TextFormatter{
			FullTimestamp: true,
		})
	}

	return logger
}
