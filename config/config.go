package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config for the whole application
type Config struct {
	App        AppConfig        `mapstructure:"app"`
	API        APIConfig        `mapstructure:"api"`
	Kafka      KafkaConfig      `mapstructure:"kafka"`
	Simulation SimulationConfig `mapstructure:"simulation"`
	Metrics    MetricsConfig    `mapstructure:"metrics"`
}

// General application configuration
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"log_level"`
}

// Configuration for the API server
type APIConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`
}

// Configuration for Kafka
type KafkaConfig struct {
	Brokers []string          `mapstructure:"brokers"`
	GroupID string            `mapstructure:"group_id"`
	Topics  KafkaTopicsConfig `mapstructure:"topics"`
}

// Kafka topics configuration
type KafkaTopicsConfig struct {
	SimRequests string `mapstructure:"sim_requests"`
	SimResults  string `mapstructure:"sim_results"`
}

// Configuration for the path simulator
type SimulationConfig struct {
	DefaultSteps int `mapstructure:"default_steps"`
	MaxSteps     int `mapstructure:"max_steps"`
}

// Configuration for metrics
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads the configuration from config/config.yaml and environment
// variables prefixed with OPTION_.
func Load() (*Config, error) {
	setDefaults()

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")

	if err := viper.ReadInConfig(); err != nil {
		// A missing file is fine: defaults plus env cover everything.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	viper.SetEnvPrefix("OPTION")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	var config Config
	if err := viper.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &config, nil
}

func setDefaults() {
	// App defaults
	viper.SetDefault("app.name", "option-engine")
	viper.SetDefault("app.environment", "development")
	viper.SetDefault("app.log_level", "info")

	// API defaults
	viper.SetDefault("api.host", "0.0.0.0")
	viper.SetDefault("api.port", 8080)
	viper.SetDefault("api.read_timeout", "10s")
	viper.SetDefault("api.write_timeout", "10s")
	viper.SetDefault("api.shutdown_timeout", "30s")

	// Kafka defaults
	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})
	viper.SetDefault("kafka.group_id", "option-engine")
	viper.SetDefault("kafka.topics.sim_requests", "sim.requests")
	viper.SetDefault("kafka.topics.sim_results", "sim.results")

	// Simulation defaults
	viper.SetDefault("simulation.default_steps", 20)
	viper.SetDefault("simulation.max_steps", 100000)

	// Metrics defaults
	viper.SetDefault("metrics.enabled", true)
}
