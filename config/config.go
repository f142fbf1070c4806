// Package config provides configuration loading and validation for tssplit.
package config

import (
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Sentinel validation errors.
var (
	ErrNoExtensions     = errors.New("at least one source extension is required")
	ErrInvalidExtension = errors.New("source extension must start with a dot")
	ErrInvalidIndexName = errors.New("index name must be a plain file name")
	ErrInvalidLogFormat = errors.New("log format must be console or json")
)

// Default configuration values.
const (
	defaultIndexName = "index"
	defaultLogFormat = "console"
	defaultLogLevel  = "info"
	envPrefix        = "TSSPLIT"
	configName       = ".tssplit"
)

// DefaultExtensions lists source extensions picked up in directory mode
var DefaultExtensions = []string{".ts", ".tsx", ".mts", ".cts", ".js", ".jsx", ".mjs", ".cjs"}

// Config holds all configuration for a migration run.
type Config struct {
	Extensions           []string  `mapstructure:"extensions" yaml:"extensions"`
	SkipTests            bool      `mapstructure:"skip_tests" yaml:"skipTests"`
	SkipDeclarationFiles bool      `mapstructure:"skip_declaration_files" yaml:"skipDeclarationFiles"`
	RespectGitignore     bool      `mapstructure:"respect_gitignore" yaml:"respectGitignore"`
	IndexName            string    `mapstructure:"index_name" yaml:"indexName"`
	Overwrite            bool      `mapstructure:"overwrite" yaml:"overwrite"`
	NoColor              bool      `mapstructure:"no_color" yaml:"noColor"`
	Log                  LogConfig `mapstructure:"log" yaml:"log"`
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Format string `mapstructure:"format" yaml:"format"`
	Level  string `mapstructure:"level" yaml:"level"`
}

// FlagKeys maps command line flag names to configuration keys
var FlagKeys = map[string]string{
	"extensions":             "extensions",
	"skip-tests":             "skip_tests",
	"skip-declaration-files": "skip_declaration_files",
	"respect-gitignore":      "respect_gitignore",
	"index-name":             "index_name",
	"overwrite":              "overwrite",
	"no-color":               "no_color",
	"log-format":             "log.format",
	"log-level":              "log.level",
}

// Load loads configuration from defaults, an optional file, TSSPLIT_ environment variables and flags, in increasing priority.
func Load(configPath string, flags *pflag.FlagSet) (*Config, error) {
	viperCfg := viper.New()
	setDefaults(viperCfg)

	if configPath != "" {
		viperCfg.SetConfigFile(configPath)
	} else {
		viperCfg.SetConfigName(configName)
		viperCfg.SetConfigType("yaml")
		viperCfg.AddConfigPath(".")
		viperCfg.AddConfigPath("$HOME")
	}

	viperCfg.SetEnvPrefix(envPrefix)
	viperCfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viperCfg.AutomaticEnv()

	if flags != nil {
		for name, key := range FlagKeys {
			if flag := flags.Lookup(name); flag != nil {
				if err := viperCfg.BindPFlag(key, flag); err != nil {
					return nil, errors.Wrapf(err, "failed to bind flag %s", name)
				}
			}
		}
	}

	if err := viperCfg.ReadInConfig(); err != nil {
		var notFoundErr viper.ConfigFileNotFoundError
		if !errors.As(err, &notFoundErr) {
			return nil, errors.Wrap(err, "failed to read config file")
		}
	}

	var config Config
	if err := viperCfg.Unmarshal(&config); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal config")
	}
	config.normalize()
	if err := config.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid configuration")
	}
	return &config, nil
}

// Default returns the configuration used when nothing is supplied
func Default() *Config {
	config := &Config{
		Extensions:           append([]string{}, DefaultExtensions...),
		SkipTests:            true,
		SkipDeclarationFiles: true,
		RespectGitignore:     true,
		IndexName:            defaultIndexName,
		Log:                  LogConfig{Format: defaultLogFormat, Level: defaultLogLevel},
	}
	return config
}

func setDefaults(viperCfg *viper.Viper) {
	defaults := Default()
	viperCfg.SetDefault("extensions", defaults.Extensions)
	viperCfg.SetDefault("skip_tests", defaults.SkipTests)
	viperCfg.SetDefault("skip_declaration_files", defaults.SkipDeclarationFiles)
	viperCfg.SetDefault("respect_gitignore", defaults.RespectGitignore)
	viperCfg.SetDefault("index_name", defaults.IndexName)
	viperCfg.SetDefault("overwrite", false)
	viperCfg.SetDefault("no_color", false)
	viperCfg.SetDefault("log.format", defaults.Log.Format)
	viperCfg.SetDefault("log.level", defaults.Log.Level)
}

// normalize splits comma separated extensions coming from the environment
func (c *Config) normalize() {
	var extensions []string
	for _, item := range c.Extensions {
		for _, ext := range strings.Split(item, ",") {
			if ext = strings.TrimSpace(ext); ext != "" {
				extensions = append(extensions, strings.ToLower(ext))
			}
		}
	}
	c.Extensions = extensions
}

// Validate checks configuration values
func (c *Config) Validate() error {
	if len(c.Extensions) == 0 {
		return ErrNoExtensions
	}
	for _, ext := range c.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return errors.Wrapf(ErrInvalidExtension, "%q", ext)
		}
	}
	if c.IndexName == "" || strings.ContainsAny(c.IndexName, `/\.`) {
		return errors.Wrapf(ErrInvalidIndexName, "%q", c.IndexName)
	}
	switch c.Log.Format {
	case "console", "json":
	default:
		return errors.Wrapf(ErrInvalidLogFormat, "%q", c.Log.Format)
	}
	return nil
}
