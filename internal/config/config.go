// Package config loads application configuration from file and
// environment.
package config

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/sells-group/ple-import/internal/model"
)

// Config holds the full application configuration.
type Config struct {
	Store  StoreConfig  `yaml:"store" mapstructure:"store"`
	Import ImportConfig `yaml:"import" mapstructure:"import"`
	Intake IntakeConfig `yaml:"intake" mapstructure:"intake"`
	Log    LogConfig    `yaml:"log" mapstructure:"log"`
}

// StoreConfig configures the database backend.
type StoreConfig struct {
	DatabaseURL string `yaml:"database_url" mapstructure:"database_url"`
}

// ImportConfig configures extract download and staging.
type ImportConfig struct {
	// ExtractURLs maps form kinds to their extract archive URLs.
	// Supports http(s) and ftp schemes.
	ExtractURLs map[string]string `yaml:"extract_urls" mapstructure:"extract_urls"`

	UserAgent   string `yaml:"user_agent" mapstructure:"user_agent"`
	BatchSize   int    `yaml:"batch_size" mapstructure:"batch_size"`
	MaxRetries  int    `yaml:"max_retries" mapstructure:"max_retries"`
	TimeoutSecs int    `yaml:"timeout_secs" mapstructure:"timeout_secs"`
}

// IntakeConfig configures company validation at the intake boundary.
type IntakeConfig struct {
	MinEmployees int `yaml:"min_employees" mapstructure:"min_employees"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// ExtractURL returns the configured URL for one form kind, or "".
func (c ImportConfig) ExtractURL(form model.FormKind) string {
	return c.ExtractURLs[string(form)]
}

// Load reads configuration from file and environment.
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix("PLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("import.user_agent", "ple-import/1.0")
	v.SetDefault("import.batch_size", 5000)
	v.SetDefault("import.max_retries", 3)
	v.SetDefault("import.timeout_secs", 600)
	v.SetDefault("import.extract_urls", map[string]string{
		"form5500":   "https://askebsa.dol.gov/FOIA%20Files/2023/Latest/F_5500_2023_Latest.zip",
		"form5500sf": "https://askebsa.dol.gov/FOIA%20Files/2023/Latest/F_5500_SF_2023_Latest.zip",
		"schedule_a": "https://askebsa.dol.gov/FOIA%20Files/2023/Latest/F_SCH_A_2023_Latest.zip",
	})
	v.SetDefault("intake.min_employees", model.DefaultMinEmployees)

	// Config file is optional; env and defaults are enough to run.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger initializes the global zap logger.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
