// Package config loads quire's settings through viper: defaults, an optional
// YAML file and QUIRE_* environment variables, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/iw2rmb/quire/document"
)

// Config represents the complete quire configuration
type Config struct {
	Editor  EditorConfig  `mapstructure:"editor" yaml:"editor"`
	UI      UIConfig      `mapstructure:"ui" yaml:"ui"`
	Logging LoggingConfig `mapstructure:"logging" yaml:"logging"`
}

// EditorConfig holds the extension fields pushed onto the editor on every
// render.
type EditorConfig struct {
	ReadOnly    bool   `mapstructure:"read_only" yaml:"read_only"`
	Placeholder string `mapstructure:"placeholder" yaml:"placeholder"`
	Autofocus   bool   `mapstructure:"autofocus" yaml:"autofocus"`
}

// UIConfig controls the terminal program.
type UIConfig struct {
	LineNumbers bool `mapstructure:"line_numbers" yaml:"line_numbers"`
	Help        bool `mapstructure:"help" yaml:"help"`
	AltScreen   bool `mapstructure:"alt_screen" yaml:"alt_screen"`
	Mouse       bool `mapstructure:"mouse" yaml:"mouse"`
}

// LoggingConfig controls the log file.
type LoggingConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`
	File   string `mapstructure:"file" yaml:"file"`
	Pretty bool   `mapstructure:"pretty" yaml:"pretty"`
}

// ErrExists is returned by WriteDefault when the target file is present.
var ErrExists = errors.New("config: file already exists")

// Default returns a Config with sensible default values
func Default() *Config {
	return &Config{
		Editor: EditorConfig{
			Placeholder: "Start typing…",
			Autofocus:   true,
		},
		UI: UIConfig{
			Help:      true,
			AltScreen: true,
			Mouse:     true,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// SetDefaults registers default values with viper
func SetDefaults() {
	defaults := Default()

	viper.SetDefault("editor.read_only", defaults.Editor.ReadOnly)
	viper.SetDefault("editor.placeholder", defaults.Editor.Placeholder)
	viper.SetDefault("editor.autofocus", defaults.Editor.Autofocus)

	viper.SetDefault("ui.line_numbers", defaults.UI.LineNumbers)
	viper.SetDefault("ui.help", defaults.UI.Help)
	viper.SetDefault("ui.alt_screen", defaults.UI.AltScreen)
	viper.SetDefault("ui.mouse", defaults.UI.Mouse)

	viper.SetDefault("logging.level", defaults.Logging.Level)
	viper.SetDefault("logging.file", defaults.Logging.File)
	viper.SetDefault("logging.pretty", defaults.Logging.Pretty)
}

// Setup wires viper to the config file and the environment. cfgFile
// overrides the search path. A missing config file is not an error.
func Setup(cfgFile string) error {
	SetDefaults()

	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(ConfigDir())
	}

	viper.SetEnvPrefix("QUIRE")
	// QUIRE_EDITOR_READ_ONLY for editor.read_only
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("config: read: %w", err)
	}
	log.Debug().Str("file", viper.ConfigFileUsed()).Msg("config loaded")
	return nil
}

// Load reads the configuration from viper into a Config struct and validates it
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("config: unmarshal: %w", err)
	}
	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, ValidationErrors(errs)
	}
	return &cfg, nil
}

// Get returns the current configuration, falling back to defaults when it
// does not load.
func Get() *Config {
	cfg, err := Load()
	if err != nil {
		log.Warn().Err(err).Msg("config: using defaults")
		return Default()
	}
	return cfg
}

// Watch calls fn with the reloaded configuration every time the config file
// in use changes. It is a no-op when no file was read.
func Watch(fn func(*Config, error)) {
	if viper.ConfigFileUsed() == "" {
		return
	}
	viper.OnConfigChange(func(e fsnotify.Event) {
		log.Debug().Str("file", e.Name).Str("op", e.Op.String()).Msg("config changed")
		fn(Load())
	})
	viper.WatchConfig()
}

// Fields converts the editor section into the extension fields the bridge
// applies. Every field is supplied.
func (c *Config) Fields() document.Fields {
	return document.Fields{
		ReadOnly:    document.Ptr(c.Editor.ReadOnly),
		Placeholder: document.Ptr(c.Editor.Placeholder),
		Autofocus:   document.Ptr(c.Editor.Autofocus),
	}
}

// ConfigDir returns the path to the user's config directory
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "quire")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".quire"
	}
	return filepath.Join(home, ".config", "quire")
}

// ConfigFile returns the path to the config file
func ConfigFile() string {
	return filepath.Join(ConfigDir(), "config.yaml")
}

// WriteDefault writes the default configuration as YAML to path. It refuses
// to overwrite an existing file.
func WriteDefault(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%w: %s", ErrExists, path)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("config: create directory: %w", err)
	}

	data, err := yaml.Marshal(Default())
	if err != nil {
		return fmt.Errorf("config: marshal: %w", err)
	}
	header := "# quire configuration\n# Environment variables QUIRE_* override these values.\n\n"
	if err := os.WriteFile(path, append([]byte(header), data...), 0o644); err != nil {
		return fmt.Errorf("config: write: %w", err)
	}
	return nil
}
