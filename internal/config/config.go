package config

import (
	"errors"
	"fmt"
	"io/fs"
	"runtime"
	"strings"
	"time"

	"github.com/spf13/viper"
	"github.com/subosito/gotenv"
)

// EnvPrefix is prepended to every automatically bound environment variable
const EnvPrefix = "TALLY"

// Config holds all application configuration
type Config struct {
	Server     ServerConfig     `mapstructure:"server"`
	Upload     UploadConfig     `mapstructure:"upload"`
	Processing ProcessingConfig `mapstructure:"processing"`
	Extractor  ExtractorConfig  `mapstructure:"extractor"`
	RateLimit  RateLimitConfig  `mapstructure:"ratelimit"`
	Logger     LoggerConfig     `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string        `mapstructure:"host"`
	Port           int           `mapstructure:"port"`
	ReadTimeout    time.Duration `mapstructure:"read_timeout"`
	WriteTimeout   time.Duration `mapstructure:"write_timeout"`
	AllowedOrigins []string      `mapstructure:"allowed_origins"`
	StaticDir      string        `mapstructure:"static_dir"`
}

// UploadConfig holds upload validation limits
type UploadConfig struct {
	MaxFileSize      int64 `mapstructure:"max_file_size"`
	MaxFiles         int   `mapstructure:"max_files"`
	StrictValidation bool  `mapstructure:"strict_validation"` // run full PDF structure validation
}

// ProcessingConfig holds batch pipeline settings
type ProcessingConfig struct {
	Workers                 int     `mapstructure:"workers"`
	ReconciliationTolerance float64 `mapstructure:"reconciliation_tolerance"`
}

// ExtractorConfig selects the PDF text engine
type ExtractorConfig struct {
	Engine   string `mapstructure:"engine"` // fitz or pdf
	Fallback bool   `mapstructure:"fallback"`
}

// RateLimitConfig holds per-client request limits, in requests per minute
type RateLimitConfig struct {
	Enabled        bool `mapstructure:"enabled"`
	ProcessPerMin  int  `mapstructure:"process_per_minute"`
	ExportPerMin   int  `mapstructure:"export_per_minute"`
	DebugPerMin    int  `mapstructure:"debug_per_minute"`
	BurstPerClient int  `mapstructure:"burst"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Supported extractor engines
const (
	EngineFitz = "fitz"
	EnginePDF  = "pdf"
)

// Load loads configuration from an optional YAML file, a .env file in the
// working directory and environment variables. An empty configPath uses
// defaults and the environment only.
func Load(configPath string) (*Config, error) {
	if err := gotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	v := viper.New()
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults
	setDefaults(v)

	// Read config file
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// Override with environment variables
	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8000)
	v.SetDefault("server.read_timeout", 60*time.Second)
	v.SetDefault("server.write_timeout", 120*time.Second)
	v.SetDefault("server.allowed_origins", []string{"http://localhost:5173", "http://localhost:3000"})
	v.SetDefault("server.static_dir", "")

	// Upload defaults
	v.SetDefault("upload.max_file_size", 50*1024*1024)
	v.SetDefault("upload.max_files", 100)
	v.SetDefault("upload.strict_validation", false)

	// Processing defaults
	v.SetDefault("processing.workers", runtime.NumCPU())
	v.SetDefault("processing.reconciliation_tolerance", 0.01)

	// Extractor defaults
	v.SetDefault("extractor.engine", EngineFitz)
	v.SetDefault("extractor.fallback", true)

	// Rate limit defaults
	v.SetDefault("ratelimit.enabled", true)
	v.SetDefault("ratelimit.process_per_minute", 30)
	v.SetDefault("ratelimit.export_per_minute", 20)
	v.SetDefault("ratelimit.debug_per_minute", 10)
	v.SetDefault("ratelimit.burst", 5)

	// Logger defaults
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.output_path", "stdout")
	v.SetDefault("logger.format", "json")
}

// bindEnvVars binds the conventional deployment variables that do not
// follow the TALLY_ prefix
func bindEnvVars(v *viper.Viper) {
	_ = v.BindEnv("server.port", EnvPrefix+"_SERVER_PORT", "PORT")
	_ = v.BindEnv("server.static_dir", EnvPrefix+"_SERVER_STATIC_DIR", "STATIC_DIR")
	_ = v.BindEnv("logger.level", EnvPrefix+"_LOGGER_LEVEL", "LOG_LEVEL")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", c.Server.Port)
	}

	if c.Upload.MaxFileSize <= 0 {
		return fmt.Errorf("upload.max_file_size must be positive")
	}
	if c.Upload.MaxFiles <= 0 {
		return fmt.Errorf("upload.max_files must be positive")
	}

	if c.Processing.Workers <= 0 {
		return fmt.Errorf("processing.workers must be positive")
	}
	if c.Processing.ReconciliationTolerance < 0 {
		return fmt.Errorf("processing.reconciliation_tolerance must not be negative")
	}

	switch c.Extractor.Engine {
	case EngineFitz, EnginePDF:
	default:
		return fmt.Errorf("extractor.engine must be %q or %q, got %q", EngineFitz, EnginePDF, c.Extractor.Engine)
	}

	if c.RateLimit.Enabled {
		if c.RateLimit.ProcessPerMin <= 0 || c.RateLimit.ExportPerMin <= 0 || c.RateLimit.DebugPerMin <= 0 {
			return fmt.Errorf("ratelimit per-minute limits must be positive when enabled")
		}
	}

	return nil
}

// Address returns the host:port the HTTP server listens on
func (c *ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}
