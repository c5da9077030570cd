package model

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// DatabaseConfig holds the location of the SQLite database.
type DatabaseConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// ServerConfig holds HTTP listener settings.
type ServerConfig struct {
	Addr string `mapstructure:"addr" yaml:"addr"`
}

// StorageConfig holds the S3-compatible bucket used for checklist uploads.
// The secret key is read from the system keyring, never from this file.
type StorageConfig struct {
	Bucket    string `mapstructure:"bucket" yaml:"bucket"`
	Region    string `mapstructure:"region" yaml:"region"`
	Endpoint  string `mapstructure:"endpoint" yaml:"endpoint"`
	PublicURL string `mapstructure:"public_url" yaml:"public_url"`
	AccessKey string `mapstructure:"access_key" yaml:"access_key"`
}

// SMTPConfig holds outbound mail settings for borrower emails.
// The password is read from the system keyring.
type SMTPConfig struct {
	Host     string `mapstructure:"host" yaml:"host"`
	Port     string `mapstructure:"port" yaml:"port"`
	Username string `mapstructure:"username" yaml:"username"`
	From     string `mapstructure:"from" yaml:"from"`
	TLS      bool   `mapstructure:"tls" yaml:"tls"`
}

// AppSettings holds settings that shape user-facing links.
type AppSettings struct {
	BaseURL string `mapstructure:"base_url" yaml:"base_url"`
}

// LogConfig holds logging preferences.
type LogConfig struct {
	Level string `mapstructure:"level" yaml:"level"`
}

// TemplatesConfig points at an optional checklist catalog override.
type TemplatesConfig struct {
	Path string `mapstructure:"path" yaml:"path"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Storage   StorageConfig   `mapstructure:"storage" yaml:"storage"`
	SMTP      SMTPConfig      `mapstructure:"smtp" yaml:"smtp"`
	App       AppSettings     `mapstructure:"app" yaml:"app"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	Templates TemplatesConfig `mapstructure:"templates" yaml:"templates"`
}

// DefaultConfigPath returns the default path for the configuration file,
// located at ~/.config/loanchecklist/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "loanchecklist", "config.yaml")
}

// defaultDatabasePath places the database next to the default config.
func defaultDatabasePath() string {
	return filepath.Join(filepath.Dir(DefaultConfigPath()), "checklist.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Database: DatabaseConfig{Path: defaultDatabasePath()},
		Server:   ServerConfig{Addr: ":8080"},
		Storage:  StorageConfig{Region: "us-east-1"},
		SMTP:     SMTPConfig{Port: "587"},
		App:      AppSettings{BaseURL: "http://localhost:8080"},
		Log:      LogConfig{Level: "info"},
	}
}

// LoadConfig reads configuration from the given YAML file path using Viper.
// Environment variables prefixed with LOANCHECKLIST_ override file values
// (e.g. LOANCHECKLIST_SERVER_ADDR). If the file does not exist, defaults
// plus environment overrides are returned.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("loanchecklist")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set defaults so missing keys resolve to sensible values and
	// AutomaticEnv can see every key during Unmarshal.
	def := defaultAppConfig()
	v.SetDefault("database.path", def.Database.Path)
	v.SetDefault("server.addr", def.Server.Addr)
	v.SetDefault("storage.bucket", "")
	v.SetDefault("storage.region", def.Storage.Region)
	v.SetDefault("storage.endpoint", "")
	v.SetDefault("storage.public_url", "")
	v.SetDefault("storage.access_key", "")
	v.SetDefault("smtp.host", "")
	v.SetDefault("smtp.port", def.SMTP.Port)
	v.SetDefault("smtp.username", "")
	v.SetDefault("smtp.from", "")
	v.SetDefault("smtp.tls", false)
	v.SetDefault("app.base_url", def.App.BaseURL)
	v.SetDefault("log.level", def.Log.Level)
	v.SetDefault("templates.path", "")

	if err := v.ReadInConfig(); err != nil {
		_, missingFile := err.(*os.PathError)
		_, notFound := err.(viper.ConfigFileNotFoundError)
		if !missingFile && !notFound {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	if cfg.SMTP.From == "" {
		cfg.SMTP.From = cfg.SMTP.Username
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("database", cfg.Database)
	v.Set("server", cfg.Server)
	v.Set("storage", cfg.Storage)
	v.Set("smtp", cfg.SMTP)
	v.Set("app", cfg.App)
	v.Set("log", cfg.Log)
	v.Set("templates", cfg.Templates)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
