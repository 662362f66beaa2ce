// Package config loads extraction settings from a YAML file, SHEETREPORT_*
// environment variables and built-in defaults, in that order of precedence
// (environment first).
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v2"

	"github.com/ukaji3/sheetreport-go/pkg/sheetreport"
	"github.com/ukaji3/sheetreport-go/pkg/sheetreport/parser"
)

// EnvPrefix prefixes every environment override, e.g. SHEETREPORT_STRICT.
const EnvPrefix = "SHEETREPORT"

// Config is the on-disk form of the extraction options.
type Config struct {
	Sheet               string `mapstructure:"sheet" yaml:"sheet"`
	Strict              bool   `mapstructure:"strict" yaml:"strict"`
	RawValues           bool   `mapstructure:"raw_values" yaml:"raw_values"`
	FallbackToDirectory bool   `mapstructure:"fallback_to_directory" yaml:"fallback_to_directory"`
	TopWindow           int    `mapstructure:"top_window" yaml:"top_window" validate:"gte=0"`

	Vocabulary parser.Vocabulary       `mapstructure:"vocabulary" yaml:"vocabulary"`
	Indicators []parser.IndicatorRule `mapstructure:"indicators" yaml:"indicators" validate:"dive"`
	Lists      []parser.ListRule      `mapstructure:"lists" yaml:"lists" validate:"dive"`
	Tables     []parser.TableRule     `mapstructure:"tables" yaml:"tables" validate:"dive"`

	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// LoggingConfig selects the CLI log output.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level" validate:"oneof=debug info warn error"`
	Format string `mapstructure:"format" yaml:"format" validate:"oneof=text json"`
}

// DefaultConfig returns the configuration matching sheetreport.DefaultOptions.
func DefaultConfig() *Config {
	opts := sheetreport.DefaultOptions()
	return &Config{
		FallbackToDirectory: true,
		TopWindow:           opts.TopWindow,
		Vocabulary:          opts.Vocabulary,
		Indicators:          opts.Indicators,
		Lists:               opts.Lists,
		Tables:              opts.Tables,
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads configuration from cfgFile, or from sheetreport.yaml in the
// working directory when cfgFile is empty. A missing default file is not an error.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v, DefaultConfig())

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
	} else {
		v.SetConfigName("sheetreport")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
	}

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// setDefaults registers every leaf key so environment variables can override it.
func setDefaults(v *viper.Viper, d *Config) {
	v.SetDefault("sheet", d.Sheet)
	v.SetDefault("strict", d.Strict)
	v.SetDefault("raw_values", d.RawValues)
	v.SetDefault("fallback_to_directory", d.FallbackToDirectory)
	v.SetDefault("top_window", d.TopWindow)

	v.SetDefault("vocabulary.type_marker", d.Vocabulary.TypeMarker)
	v.SetDefault("vocabulary.key_marker", d.Vocabulary.KeyMarker)
	v.SetDefault("vocabulary.header_scan_width", d.Vocabulary.HeaderScanWidth)
	v.SetDefault("vocabulary.name_lookback", d.Vocabulary.NameLookback)
	v.SetDefault("vocabulary.name_columns", d.Vocabulary.NameColumns)
	v.SetDefault("vocabulary.placeholders", d.Vocabulary.Placeholders)
	v.SetDefault("vocabulary.end_margin", d.Vocabulary.EndMargin)
	v.SetDefault("vocabulary.value_markers", d.Vocabulary.ValueMarkers)
	v.SetDefault("vocabulary.pnl_markers", d.Vocabulary.PnLMarkers)
	v.SetDefault("vocabulary.mtm_markers", d.Vocabulary.MTMMarkers)

	v.SetDefault("indicators", d.Indicators)
	v.SetDefault("lists", d.Lists)
	v.SetDefault("tables", d.Tables)

	v.SetDefault("logging.level", d.Logging.Level)
	v.SetDefault("logging.format", d.Logging.Format)
}

// Validate checks field constraints and reports every violation.
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msg := fmt.Sprintf("%s failed %q", fe.Namespace(), fe.Tag())
		if fe.Param() != "" {
			msg += " (" + fe.Param() + ")"
		}
		msgs = append(msgs, msg)
	}
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}

// ToOptions converts the configuration to extraction options.
func (c *Config) ToOptions() sheetreport.Options {
	return sheetreport.Options{
		Sheet:               c.Sheet,
		RawValues:           c.RawValues,
		FallbackToDirectory: c.FallbackToDirectory,
		Strict:              c.Strict,
		TopWindow:           c.TopWindow,
		Vocabulary:          c.Vocabulary,
		Indicators:          c.Indicators,
		Lists:               c.Lists,
		Tables:              c.Tables,
	}
}

// WriteDefault writes the default configuration to the specified path.
func WriteDefault(path string) error {
	data, err := yaml.Marshal(DefaultConfig())
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	header := []byte(`# sheetreport configuration
# Every key can be overridden with a SHEETREPORT_ environment variable,
# nested keys joined by "_": SHEETREPORT_VOCABULARY_KEY_MARKER=STR

`)
	return os.WriteFile(path, append(header, data...), 0o644)
}
