package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

var ErrInvalidLogLevel = errors.New("invalid log level")

// Config holds application configuration loaded from files and environment variables.
type Config struct {
	Env           string `mapstructure:"env"`            // current application environment (local, dev, production)
	QuestionsPath string `mapstructure:"questions_path"` // path to the JSON file with questions
	SchemaPath    string `mapstructure:"schema_path"`    // path to the JSON schema, empty for the embedded one
	LogLevel      string `mapstructure:"log_level"`      // zap level name: debug, info, warn, error
	NoColor       bool   `mapstructure:"no_color"`       // disable styled console output
}

// Load reads configuration from the optional config file, an optional .env
// file and environment variables.
func Load() (*Config, error) {
	return load("./config")
}

func load(configDir string) (*Config, error) {
	// A missing .env file is fine; real environment variables win over it.
	_ = godotenv.Load()

	// Initialize Viper instance and base config options.
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(configDir)

	// Set default values for configuration keys.
	v.SetDefault("env", "local")
	v.SetDefault("questions_path", "questions.json")
	v.SetDefault("schema_path", "json_schema.json")
	v.SetDefault("log_level", "error")
	v.SetDefault("no_color", false)

	// Bind explicit environment variables to configuration keys.
	_ = v.BindEnv("env", "APP_ENV")
	_ = v.BindEnv("questions_path", "QUIZ_QUESTIONS_PATH")
	_ = v.BindEnv("schema_path", "QUIZ_SCHEMA_PATH")
	_ = v.BindEnv("log_level", "QUIZ_LOG_LEVEL")
	_ = v.BindEnv("no_color", "QUIZ_NO_COLOR")

	// Try to read configuration file if present.
	if err := v.ReadInConfig(); err != nil {
		var fileLookupErr viper.ConfigFileNotFoundError
		if !errors.As(err, &fileLookupErr) {
			return nil, fmt.Errorf("error loading config file: %w", err)
		}
	}

	// Unmarshal configuration into strongly typed struct.
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))
	if _, err := zap.ParseAtomicLevel(cfg.LogLevel); err != nil {
		return nil, fmt.Errorf("%w: %q", ErrInvalidLogLevel, cfg.LogLevel)
	}

	return &cfg, nil
}
