package config

import (
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

// Config holds everything the process needs at startup. Values come from
// TELLER_-prefixed environment variables with an optional config.yaml
// alongside the binary.
type Config struct {
	Addr       string        `mapstructure:"ADDR" validate:"required"`
	Variant    string        `mapstructure:"VARIANT" validate:"oneof=atm bank"`
	LogLevel   string        `mapstructure:"LOG_LEVEL" validate:"oneof=debug info warn error"`
	LogFormat  string        `mapstructure:"LOG_FORMAT" validate:"oneof=console json"`
	SessionTTL time.Duration `mapstructure:"SESSION_TTL" validate:"min=1m"`

	// Seed identities for the bank variant's pre-provisioned staff
	// accounts. Ignored by the atm variant.
	ManagerName     string `mapstructure:"MANAGER_NAME"`
	ManagerEmail    string `mapstructure:"MANAGER_EMAIL"`
	ManagerPassword string `mapstructure:"MANAGER_PASSWORD"`
	ClerkName       string `mapstructure:"CLERK_NAME"`
	ClerkEmail      string `mapstructure:"CLERK_EMAIL"`
	ClerkPassword   string `mapstructure:"CLERK_PASSWORD"`
}

// Load reads configuration from the environment and an optional
// config.yaml, applies defaults, and validates the result.
func Load(logger *zap.Logger) (*Config, error) {
	viper.SetEnvPrefix("teller")
	viper.AutomaticEnv()

	viper.SetDefault("ADDR", ":8080")
	viper.SetDefault("VARIANT", "bank")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("LOG_FORMAT", "console")
	viper.SetDefault("SESSION_TTL", "1h")
	viper.SetDefault("MANAGER_NAME", "Bank Manager")
	viper.SetDefault("MANAGER_EMAIL", "manager@manager.com")
	viper.SetDefault("MANAGER_PASSWORD", "manager@manager.com")
	viper.SetDefault("CLERK_NAME", "Bank Clerk")
	viper.SetDefault("CLERK_EMAIL", "clerk@clerk.com")
	viper.SetDefault("CLERK_PASSWORD", "clerk@clerk.com")

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if err := viper.ReadInConfig(); err != nil {
		logger.Debug("no config file, using environment and defaults")
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}
	if err := validator.New().Struct(&cfg); err != nil {
		logger.Error("invalid configuration", zap.Error(err))
		return nil, err
	}
	return &cfg, nil
}
