package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App        App        `mapstructure:"app"`
	AI         AI         `mapstructure:"ai"`
	Generation Generation `mapstructure:"generation"`
	Server     Server     `mapstructure:"server"`
	Store      Store      `mapstructure:"store"`
	Logging    Logging    `mapstructure:"logging"`
}

// App holds general application configuration
type App struct {
	Debug      bool   `mapstructure:"debug"`
	ConfigFile string `mapstructure:"config_file"`
}

// AI holds AI/LLM configuration
type AI struct {
	Gemini GeminiConfig `mapstructure:"gemini"`
}

// GeminiConfig holds Google Gemini configuration
type GeminiConfig struct {
	APIKey      string  `mapstructure:"api_key"`
	Model       string  `mapstructure:"model"`
	Timeout     string  `mapstructure:"timeout"`
	MaxTokens   int32   `mapstructure:"max_tokens"`
	Temperature float32 `mapstructure:"temperature"`
}

// Generation controls the bounded call to the model during plan creation
type Generation struct {
	Enabled bool   `mapstructure:"enabled"`
	Timeout string `mapstructure:"timeout"`
}

// Server holds HTTP server configuration
type Server struct {
	Host            string `mapstructure:"host"`
	Port            int    `mapstructure:"port"`
	ReadTimeout     string `mapstructure:"read_timeout"`
	WriteTimeout    string `mapstructure:"write_timeout"`
	ShutdownTimeout string `mapstructure:"shutdown_timeout"`
	CORS            CORS   `mapstructure:"cors"`
}

// CORS holds cross-origin settings for the API
type CORS struct {
	Enabled        bool     `mapstructure:"enabled"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// Store selects and configures the plan store backend
type Store struct {
	Driver   string         `mapstructure:"driver"`
	SQLite   SQLiteConfig   `mapstructure:"sqlite"`
	Postgres PostgresConfig `mapstructure:"postgres"`
	Redis    RedisConfig    `mapstructure:"redis"`
}

// SQLiteConfig holds the sqlite data directory
type SQLiteConfig struct {
	DataDir string `mapstructure:"data_dir"`
}

// PostgresConfig holds postgres connection settings
type PostgresConfig struct {
	ConnectionString string `mapstructure:"connection_string"`
	MaxOpenConns     int    `mapstructure:"max_open_conns"`
	MaxIdleConns     int    `mapstructure:"max_idle_conns"`
}

// RedisConfig holds redis connection settings
type RedisConfig struct {
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	TTL      string `mapstructure:"ttl"`
}

// Logging holds logging configuration
type Logging struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Supported store drivers
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
)

var globalConfig *Config

// Load loads the configuration from various sources
func Load(configFile string) (*Config, error) {
	if globalConfig != nil {
		return globalConfig, nil
	}

	// Load .env file if it exists
	if _, err := os.Stat(".env"); err == nil {
		if err := godotenv.Load(".env"); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: Error loading .env file: %v\n", err)
		}
	}

	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else {
		viper.AddConfigPath(".")
		viper.AddConfigPath("$HOME")
		viper.SetConfigName(".bizplan")
		viper.SetConfigType("yaml")
	}

	setDefaults()
	bindEnvironmentVariables()

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	config := &Config{}
	if err := viper.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := postProcessConfig(config); err != nil {
		return nil, fmt.Errorf("error post-processing config: %w", err)
	}

	if err := validateConfig(config); err != nil {
		return nil, err
	}

	globalConfig = config
	return config, nil
}

// Get returns the global configuration, loading it if necessary
func Get() *Config {
	if globalConfig == nil {
		config, err := Load("")
		if err != nil {
			panic(fmt.Sprintf("Failed to load configuration: %v", err))
		}
		return config
	}
	return globalConfig
}

// setDefaults sets default configuration values
func setDefaults() {
	viper.SetDefault("app.debug", false)

	// AI defaults
	viper.SetDefault("ai.gemini.model", "gemini-1.5-flash")
	viper.SetDefault("ai.gemini.timeout", "30s")
	viper.SetDefault("ai.gemini.max_tokens", 4096)
	viper.SetDefault("ai.gemini.temperature", 0.7)

	viper.SetDefault("generation.enabled", true)
	viper.SetDefault("generation.timeout", "8s")

	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", "15s")
	viper.SetDefault("server.write_timeout", "30s")
	viper.SetDefault("server.shutdown_timeout", "10s")
	viper.SetDefault("server.cors.enabled", true)
	viper.SetDefault("server.cors.allowed_origins", []string{"*"})

	// Store defaults
	viper.SetDefault("store.driver", DriverMemory)
	viper.SetDefault("store.sqlite.data_dir", ".bizplan-data")
	viper.SetDefault("store.postgres.max_open_conns", 25)
	viper.SetDefault("store.postgres.max_idle_conns", 5)
	viper.SetDefault("store.redis.address", "localhost:6379")
	viper.SetDefault("store.redis.db", 0)
	viper.SetDefault("store.redis.ttl", "168h")

	viper.SetDefault("logging.level", "info")
	viper.SetDefault("logging.format", "text")
}

// bindEnvironmentVariables sets up flexible environment variable binding
func bindEnvironmentVariables() {
	// Gemini API key - support multiple formats
	bindEnvKeys("ai.gemini.api_key", []string{
		"GEMINI_API_KEY",
		"GOOGLE_GEMINI_API_KEY",
		"GOOGLE_AI_API_KEY",
		"GOOGLE_API_KEY",
	})

	bindEnvKeys("store.postgres.connection_string", []string{
		"DATABASE_URL",
		"POSTGRES_URL",
	})

	bindEnvKeys("store.redis.address", []string{
		"REDIS_ADDR",
		"REDIS_URL",
	})

	bindEnvKeys("store.redis.password", []string{
		"REDIS_PASSWORD",
	})

	bindEnvKeys("server.port", []string{
		"PORT",
	})
}

// bindEnvKeys binds the first found environment variable to a viper key
func bindEnvKeys(viperKey string, envKeys []string) {
	for _, envKey := range envKeys {
		if value := os.Getenv(envKey); value != "" {
			viper.Set(viperKey, value)
			return
		}
	}
}

// postProcessConfig applies post-processing to configuration values
func postProcessConfig(config *Config) error {
	if config.Store.SQLite.DataDir != "" {
		config.Store.SQLite.DataDir = expandPath(config.Store.SQLite.DataDir)
	}
	config.Store.Driver = strings.ToLower(strings.TrimSpace(config.Store.Driver))

	// Validate durations
	durations := map[string]string{
		"ai.gemini.timeout":       config.AI.Gemini.Timeout,
		"generation.timeout":      config.Generation.Timeout,
		"server.read_timeout":     config.Server.ReadTimeout,
		"server.write_timeout":    config.Server.WriteTimeout,
		"server.shutdown_timeout": config.Server.ShutdownTimeout,
		"store.redis.ttl":         config.Store.Redis.TTL,
	}

	for key, duration := range durations {
		if duration != "" {
			if _, err := time.ParseDuration(duration); err != nil {
				return fmt.Errorf("invalid duration for %s: %s", key, duration)
			}
		}
	}

	return nil
}

// expandPath expands ~ and environment variables in paths
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return os.ExpandEnv(path)
}

// validateConfig ensures required configuration is present. A missing Gemini
// key is not an error here; plan generation degrades without it.
func validateConfig(config *Config) error {
	var errors []string

	switch config.Store.Driver {
	case DriverMemory, DriverSQLite, DriverRedis:
	case DriverPostgres:
		if config.Store.Postgres.ConnectionString == "" {
			errors = append(errors, "Postgres store requires a connection string. Set DATABASE_URL or store.postgres.connection_string")
		}
	default:
		errors = append(errors, fmt.Sprintf("Unknown store driver: %s. Supported: memory, sqlite, postgres, redis", config.Store.Driver))
	}

	if config.Server.Port < 0 || config.Server.Port > 65535 {
		errors = append(errors, fmt.Sprintf("Invalid server port: %d", config.Server.Port))
	}

	switch strings.ToLower(config.Logging.Format) {
	case "", "text", "json":
	default:
		errors = append(errors, fmt.Sprintf("Unknown logging format: %s. Supported: text, json", config.Logging.Format))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration errors:\n- %s", strings.Join(errors, "\n- "))
	}

	return nil
}

// Convenience getters for commonly used configuration values
func GetAI() AI                 { return Get().AI }
func GetGeneration() Generation { return Get().Generation }
func GetServer() Server         { return Get().Server }
func GetStore() Store           { return Get().Store }
func GetLogging() Logging       { return Get().Logging }
func IsDebugMode() bool         { return Get().App.Debug }

// HasValidGemini returns true if a usable Gemini API key is configured
func HasValidGemini() bool {
	return Get().AI.Gemini.HasValidKey()
}

// HasValidKey reports whether the key is set and not a placeholder
func (g GeminiConfig) HasValidKey() bool {
	return isValidAPIKey(g.APIKey)
}

// Duration parses a duration validated by postProcessConfig, falling back
// to def when the value is empty.
func Duration(value string, def time.Duration) time.Duration {
	if value == "" {
		return def
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return def
	}
	return d
}

// Addr returns the listen address for the HTTP server
func (s Server) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// isValidAPIKey checks if an API key is valid (not empty and not a placeholder)
func isValidAPIKey(apiKey string) bool {
	if apiKey == "" {
		return false
	}

	placeholders := []string{
		"your-api-key", "your-gemini-key", "your-gemini-api-key",
		"YOUR_API_KEY", "PLACEHOLDER", "TODO", "CHANGE_ME",
	}

	for _, placeholder := range placeholders {
		if apiKey == placeholder {
			return false
		}
	}

	return true
}

// Reset clears the global configuration (useful for testing)
func Reset() {
	globalConfig = nil
	viper.Reset()
}
