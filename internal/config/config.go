package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"slices"

	"github.com/adrg/xdg"
	"github.com/goccy/go-yaml"
	"github.com/inoxlang/seqwatch/internal/utils"
	"github.com/rs/zerolog"
)

const (
	APP_NAME = "seqwatch"

	CONFIG_FILE_NAME    = "config.yaml"
	CONFIG_FILE_RELPATH = APP_NAME + "/" + CONFIG_FILE_NAME
	CONFIG_FILE_PERM    = 0o600

	TEXT_OUTPUT = "text"
	JSON_OUTPUT = "json"

	DEFAULT_LOG_LEVEL  = "info"
	DEFAULT_OUTPUT     = TEXT_OUTPUT
	DEFAULT_COMPARATOR = "native"
)

var (
	OUTPUT_FORMATS = []string{TEXT_OUTPUT, JSON_OUTPUT}

	ErrInvalidOutputFormat = errors.New("invalid output format")

	// set by targetSpecificInit.
	FORCE_COLOR           bool
	TRUECOLOR_COLORTERM   bool
	TERM_256COLOR_CAPABLE bool
	NO_COLOR              bool
	STDOUT_IS_TERMINAL    bool
	SHOULD_COLORIZE       bool
)

func init() {
	targetSpecificInit()
}

// Config is the configuration of the seqwatch command, it is read from the file seqwatch/config.yaml in one of
// the XDG configuration directories. Command line flags take precedence over the file.
type Config struct {
	LogLevel   string `yaml:"log_level,omitempty"`
	Output     string `yaml:"output,omitempty"`
	Comparator string `yaml:"comparator,omitempty"`

	// if not set colorization depends on the environment (NO_COLOR, FORCE_COLOR, COLORTERM, TERM).
	Color *bool `yaml:"color,omitempty"`
}

func Default() Config {
	return Config{
		LogLevel:   DEFAULT_LOG_LEVEL,
		Output:     DEFAULT_OUTPUT,
		Comparator: DEFAULT_COMPARATOR,
	}
}

// Load searches for the configuration file and reads it, the default configuration is returned if there is no
// configuration file. The path of the file is returned if it has been found.
func Load() (Config, string, error) {
	path, err := xdg.SearchConfigFile(CONFIG_FILE_RELPATH)
	if err != nil {
		return Default(), "", nil
	}

	config, err := LoadFile(path)
	return config, path, err
}

func LoadFile(path string) (Config, error) {
	config := Default()

	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return config, fmt.Errorf("failed to read configuration file: %w", err)
	}

	if err := yaml.UnmarshalWithOptions(data, &config, yaml.DisallowUnknownField()); err != nil {
		return config, fmt.Errorf("invalid configuration file %s: %s", path, yaml.FormatError(err, false, true))
	}

	return config, config.Validate()
}

// WriteDefault writes the default configuration to the file seqwatch/config.yaml in the XDG configuration home
// and returns its path. An existing file is not overwritten.
func WriteDefault() (string, error) {
	path, err := xdg.ConfigFile(CONFIG_FILE_RELPATH)
	if err != nil {
		return "", err
	}

	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	data := utils.Must(yaml.Marshal(Default()))

	if err := os.WriteFile(path, data, CONFIG_FILE_PERM); err != nil {
		return "", err
	}
	return path, nil
}

func (c Config) Validate() error {
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level: %w", err)
	}
	if !slices.Contains(OUTPUT_FORMATS, c.Output) {
		return fmt.Errorf("%w: %q", ErrInvalidOutputFormat, c.Output)
	}
	return nil
}

func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}

func (c Config) ShouldColorize() bool {
	if c.Color != nil {
		return *c.Color
	}
	return SHOULD_COLORIZE
}
