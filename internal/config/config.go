// Package config loads cratemover settings.
//
// Settings are layered with github.com/spf13/viper, lowest precedence first:
//
//  1. built-in defaults (DefaultConfig)
//  2. a config file: --config, else ./cratemover.<ext> in the working
//     directory, else $XDG_CONFIG_HOME/cratemover/config.<ext>
//  3. CRATEMOVER_* environment variables
//  4. command-line flags that were explicitly set
//
// Config files may be YAML, TOML, JSON or JSONC (JSON with comments, read
// through github.com/tidwall/jsonc). The format is picked from the file
// extension.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"github.com/adrg/xdg"
	"github.com/pelletier/go-toml/v2"
	"github.com/shinji-kodama/cratemover/internal/cargo"
	"github.com/shinji-kodama/cratemover/internal/model"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

const (
	// AppName names the config file and the XDG config directory.
	AppName = "cratemover"

	// EnvPrefix is prepended to every environment variable override,
	// e.g. CRATEMOVER_STRICT=true.
	EnvPrefix = "CRATEMOVER"
)

// Keys of the settings, shared by config files, environment variables and
// flags.
const (
	KeyPlaceholder = "placeholder"
	KeyStrict      = "strict"
	KeyPitch       = "pitch"
	KeyOutput      = "output"
)

// Extensions lists the supported config file extensions in discovery order.
var Extensions = []string{"yaml", "yml", "toml", "json", "jsonc"}

// Config holds the effective settings of one invocation.
type Config struct {
	// Placeholder is printed for the top of an empty stack. Exactly one
	// character.
	Placeholder string `mapstructure:"placeholder" json:"placeholder" yaml:"placeholder"`

	// Strict rejects moves that ask for more crates than the source holds
	// instead of moving what is there.
	Strict bool `mapstructure:"strict" json:"strict" yaml:"strict"`

	// Pitch forces the diagram column width. Zero derives it from the
	// footer line.
	Pitch int `mapstructure:"pitch" json:"pitch" yaml:"pitch"`

	// Output is the default output format: text, json or yaml.
	Output string `mapstructure:"output" json:"output" yaml:"output"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() *Config {
	return &Config{
		Placeholder: string(cargo.DefaultPlaceholder),
		Strict:      false,
		Pitch:       0,
		Output:      model.FormatText.String(),
	}
}

// PlaceholderRune returns the placeholder as a rune. Call after Validate.
func (c *Config) PlaceholderRune() rune {
	r, _ := utf8.DecodeRuneInString(c.Placeholder)
	return r
}

// Policy returns the crane policy selected by Strict.
func (c *Config) Policy() cargo.Policy {
	if c.Strict {
		return cargo.StrictPolicy
	}
	return cargo.TruncatePolicy
}

// OutputFormat returns Output as a model.OutputFormat, falling back to text
// for unknown values.
func (c *Config) OutputFormat() model.OutputFormat {
	f, err := model.ParseOutputFormat(c.Output)
	if err != nil {
		return model.FormatText
	}
	return f
}

// CargoOptions translates the settings into simulation options.
func (c *Config) CargoOptions() []cargo.Option {
	opts := []cargo.Option{cargo.WithPolicy(c.Policy())}
	if c.Pitch > 0 {
		opts = append(opts, cargo.WithLayout(cargo.Layout{Pitch: c.Pitch}))
	}
	return opts
}

// LoadOptions controls where Load looks for settings.
type LoadOptions struct {
	// ConfigFilePath is an explicit config file. It must exist.
	ConfigFilePath string

	// WorkDir is searched for cratemover.<ext>. Defaults to ".".
	WorkDir string

	// Flags, when set, are bound to the matching keys. Only flags the user
	// changed override the lower layers.
	Flags *pflag.FlagSet
}

// Load resolves the effective configuration and returns it together with
// the path of the config file that was read ("" when none was found).
//
// Returns a CLIError with ExitInvalidConfig when the file cannot be read or
// the resulting settings fail validation.
func Load(opts LoadOptions) (*Config, string, error) {
	v := viper.New()

	// Step 1: defaults.
	defaults := DefaultConfig()
	v.SetDefault(KeyPlaceholder, defaults.Placeholder)
	v.SetDefault(KeyStrict, defaults.Strict)
	v.SetDefault(KeyPitch, defaults.Pitch)
	v.SetDefault(KeyOutput, defaults.Output)

	// Step 2: config file.
	path := opts.ConfigFilePath
	if path != "" {
		if !fileExists(path) {
			return nil, "", model.NewCLIError(model.ExitInvalidConfig,
				fmt.Sprintf("config file not found: %s", path))
		}
	} else {
		path = Discover(opts.WorkDir)
	}
	if path != "" {
		values, err := ReadFile(path)
		if err != nil {
			return nil, "", model.WrapCLIError(model.ExitInvalidConfig,
				fmt.Sprintf("failed to read config file %s", path), err)
		}
		if err := v.MergeConfigMap(values); err != nil {
			return nil, "", model.WrapCLIError(model.ExitInvalidConfig,
				fmt.Sprintf("failed to merge config file %s", path), err)
		}
	}

	// Step 3: environment.
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	// Step 4: flags.
	if opts.Flags != nil {
		for _, key := range []string{KeyPlaceholder, KeyStrict, KeyPitch, KeyOutput} {
			if f := opts.Flags.Lookup(key); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, "", fmt.Errorf("failed to bind flag --%s: %w", key, err)
				}
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, "", model.WrapCLIError(model.ExitInvalidConfig, "failed to parse configuration", err)
	}

	if errs := Validate(&cfg); len(errs) > 0 {
		joined := make([]error, len(errs))
		for i := range errs {
			joined[i] = &errs[i]
		}
		return nil, "", model.WrapCLIError(model.ExitInvalidConfig, "invalid configuration", errors.Join(joined...))
	}

	return &cfg, path, nil
}

// Discover returns the first config file found in workDir, then in the XDG
// config directories, or "" when there is none.
func Discover(workDir string) string {
	if workDir == "" {
		workDir = "."
	}
	for _, ext := range Extensions {
		p := filepath.Join(workDir, AppName+"."+ext)
		if fileExists(p) {
			return p
		}
	}
	for _, ext := range Extensions {
		if p, err := xdg.SearchConfigFile(filepath.Join(AppName, "config."+ext)); err == nil {
			return p
		}
	}
	return ""
}

// ReadFile parses a config file into a generic map, choosing the decoder
// from the file extension.
func ReadFile(path string) (map[string]any, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	values := map[string]any{}
	switch ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(path), ".")); ext {
	case "yaml", "yml":
		err = yaml.Unmarshal(data, &values)
	case "toml":
		err = toml.Unmarshal(data, &values)
	case "json", "jsonc":
		// Strip comments and trailing commas first.
		err = json.Unmarshal(jsonc.ToJSON(data), &values)
	default:
		return nil, fmt.Errorf("unsupported config file extension %q (valid: %s)", ext, strings.Join(Extensions, ", "))
	}
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	// An empty YAML document decodes to a nil map.
	if values == nil {
		values = map[string]any{}
	}
	return values, nil
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
