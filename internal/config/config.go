package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Schema   SchemaConfig   `mapstructure:"schema"`
	Form     FormConfig     `mapstructure:"form"`
	Email    EmailConfig    `mapstructure:"email"`
	Database DatabaseConfig `mapstructure:"database"`
	Logger   LoggerConfig   `mapstructure:"logger"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string        `mapstructure:"host"`
	Port         int           `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// SchemaConfig holds form schema source configuration
type SchemaConfig struct {
	Source        string        `mapstructure:"source"` // sheet, workbook or static
	SpreadsheetID string        `mapstructure:"spreadsheet_id"`
	WorkbookPath  string        `mapstructure:"workbook_path"`
	WorkbookSheet string        `mapstructure:"workbook_sheet"`
	FetchTimeout  time.Duration `mapstructure:"fetch_timeout"`
}

// FormConfig holds form behavior configuration
type FormConfig struct {
	StrictPeriod        bool   `mapstructure:"strict_period"`
	PeriodMode          string `mapstructure:"period_mode"` // next or previous
	EnableApplicability bool   `mapstructure:"enable_applicability"`
	EnableRemarks       bool   `mapstructure:"enable_remarks"`
	IncludeRemarks      bool   `mapstructure:"include_remarks"`
}

// EmailConfig holds mail delivery configuration
type EmailConfig struct {
	SMTPHost   string `mapstructure:"smtp_host"`
	SMTPPort   int    `mapstructure:"smtp_port"`
	Username   string `mapstructure:"username"`
	Password   string `mapstructure:"password"`
	From       string `mapstructure:"from"`
	To         string `mapstructure:"to"`
	SenderName string `mapstructure:"sender_name"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Path            string        `mapstructure:"path"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
}

// LoggerConfig holds logger configuration
type LoggerConfig struct {
	Level      string `mapstructure:"level"`
	OutputPath string `mapstructure:"output_path"`
	Format     string `mapstructure:"format"`
}

// Load loads configuration from file and environment variables
func Load(configPath string) (*Config, error) {
	viper.SetConfigFile(configPath)
	viper.SetConfigType("yaml")
	viper.AutomaticEnv()

	// Set defaults
	setDefaults()

	// Read config file
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Override with environment variables
	bindEnvVars()

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate configuration
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults() {
	// Server defaults
	viper.SetDefault("server.host", "0.0.0.0")
	viper.SetDefault("server.port", 8080)
	viper.SetDefault("server.read_timeout", 30*time.Second)
	viper.SetDefault("server.write_timeout", 60*time.Second)

	// Schema defaults
	viper.SetDefault("schema.source", "static")
	viper.SetDefault("schema.workbook_sheet", "Sheet1")
	viper.SetDefault("schema.fetch_timeout", 15*time.Second)

	// Form defaults
	viper.SetDefault("form.strict_period", true)
	viper.SetDefault("form.period_mode", "next")
	viper.SetDefault("form.enable_applicability", true)
	viper.SetDefault("form.enable_remarks", true)
	viper.SetDefault("form.include_remarks", true)

	// Email defaults
	viper.SetDefault("email.smtp_host", "smtp.gmail.com")
	viper.SetDefault("email.smtp_port", 587)
	viper.SetDefault("email.sender_name", "Document Request Form")

	// Database defaults
	viper.SetDefault("database.path", "data/submissions.db")
	viper.SetDefault("database.max_open_conns", 25)
	viper.SetDefault("database.max_idle_conns", 5)
	viper.SetDefault("database.conn_max_lifetime", 5*time.Minute)

	// Logger defaults
	viper.SetDefault("logger.level", "info")
	viper.SetDefault("logger.output_path", "stdout")
	viper.SetDefault("logger.format", "json")
}

// bindEnvVars binds environment variables to configuration
func bindEnvVars() {
	// Sensitive credentials from environment
	viper.BindEnv("email.username", "SMTP_USERNAME")
	viper.BindEnv("email.password", "SMTP_PASSWORD")
	viper.BindEnv("email.from", "SENDER_EMAIL")
	viper.BindEnv("email.to", "TO_EMAIL")
	viper.BindEnv("schema.spreadsheet_id", "FORM_SPREADSHEET_ID")
}

// Validate validates the configuration
func (c *Config) Validate() error {
	switch c.Schema.Source {
	case "sheet":
		if c.Schema.SpreadsheetID == "" {
			return fmt.Errorf("schema.spreadsheet_id is required for sheet source")
		}
	case "workbook":
		if c.Schema.WorkbookPath == "" {
			return fmt.Errorf("schema.workbook_path is required for workbook source")
		}
	case "static":
	default:
		return fmt.Errorf("schema.source must be sheet, workbook or static")
	}

	if c.Form.PeriodMode != "next" && c.Form.PeriodMode != "previous" {
		return fmt.Errorf("form.period_mode must be next or previous")
	}

	// Validate email delivery settings
	if c.Email.From == "" {
		return fmt.Errorf("email.from is required")
	}
	if c.Email.To == "" {
		return fmt.Errorf("email.to is required")
	}

	return nil
}
