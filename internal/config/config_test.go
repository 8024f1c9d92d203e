package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/adrg/xdg"
	"github.com/shinji-kodama/cratemover/internal/cargo"
	"github.com/shinji-kodama/cratemover/internal/model"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// isolate points the XDG config lookup at an empty directory and clears
// environment overrides so the host setup cannot leak into a test.
func isolate(t *testing.T) string {
	t.Helper()
	xdgHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", xdgHome)
	t.Setenv("XDG_CONFIG_DIRS", filepath.Join(xdgHome, "none"))
	for _, key := range []string{"PLACEHOLDER", "STRICT", "PITCH", "OUTPUT"} {
		t.Setenv(EnvPrefix+"_"+key, "")
		os.Unsetenv(EnvPrefix + "_" + key)
	}
	xdg.Reload()
	t.Cleanup(xdg.Reload)
	return xdgHome
}

func writeFile(t *testing.T, path, content string) string {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// newFlags builds a flag set shaped like the CLI's global flags.
func newFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String(KeyPlaceholder, "-", "")
	fs.Bool(KeyStrict, false, "")
	fs.Int(KeyPitch, 0, "")
	fs.String(KeyOutput, "text", "")
	return fs
}

// TestLoad_Defaults verifies the built-in settings when nothing is configured.
func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, path, err := Load(LoadOptions{WorkDir: t.TempDir()})
	require.NoError(t, err)
	assert.Empty(t, path)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.Equal(t, '-', cfg.PlaceholderRune())
	assert.Equal(t, cargo.TruncatePolicy, cfg.Policy())
	assert.Equal(t, model.FormatText, cfg.OutputFormat())
}

// TestLoad_FileFormats verifies every supported config file format.
func TestLoad_FileFormats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"yaml", "cratemover.yaml", "placeholder: '*'\nstrict: true\npitch: 5\noutput: json\n"},
		{"yml", "cratemover.yml", "placeholder: '*'\nstrict: true\npitch: 5\noutput: json\n"},
		{"toml", "cratemover.toml", "placeholder = \"*\"\nstrict = true\npitch = 5\noutput = \"json\"\n"},
		{"json", "cratemover.json", `{"placeholder": "*", "strict": true, "pitch": 5, "output": "json"}`},
		{"jsonc", "cratemover.jsonc", "{\n  // empty stacks\n  \"placeholder\": \"*\",\n  \"strict\": true,\n  \"pitch\": 5,\n  \"output\": \"json\", /* trailing comma */\n}\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			dir := t.TempDir()
			want := writeFile(t, filepath.Join(dir, tt.file), tt.content)

			cfg, path, err := Load(LoadOptions{WorkDir: dir})
			require.NoError(t, err)
			assert.Equal(t, want, path)
			assert.Equal(t, &Config{Placeholder: "*", Strict: true, Pitch: 5, Output: "json"}, cfg)
			assert.Equal(t, cargo.StrictPolicy, cfg.Policy())
			assert.Len(t, cfg.CargoOptions(), 2)
		})
	}
}

// TestLoad_XDG verifies discovery in the XDG config directory.
func TestLoad_XDG(t *testing.T) {
	xdgHome := isolate(t)
	want := writeFile(t, filepath.Join(xdgHome, AppName, "config.toml"), "placeholder = \"_\"\n")
	xdg.Reload()

	cfg, path, err := Load(LoadOptions{WorkDir: t.TempDir()})
	require.NoError(t, err)
	assert.Equal(t, want, path)
	assert.Equal(t, "_", cfg.Placeholder)
}

// TestLoad_WorkDirBeatsXDG verifies discovery order.
func TestLoad_WorkDirBeatsXDG(t *testing.T) {
	xdgHome := isolate(t)
	writeFile(t, filepath.Join(xdgHome, AppName, "config.yaml"), "placeholder: x\n")
	xdg.Reload()
	dir := t.TempDir()
	want := writeFile(t, filepath.Join(dir, "cratemover.yaml"), "placeholder: y\n")

	cfg, path, err := Load(LoadOptions{WorkDir: dir})
	require.NoError(t, err)
	assert.Equal(t, want, path)
	assert.Equal(t, "y", cfg.Placeholder)
}

// TestLoad_Precedence verifies file < environment < changed flags.
func TestLoad_Precedence(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "cratemover.yaml"), "placeholder: a\npitch: 6\nstrict: false\n")
	t.Setenv("CRATEMOVER_PLACEHOLDER", "b")
	t.Setenv("CRATEMOVER_STRICT", "true")

	flags := newFlags()
	require.NoError(t, flags.Parse([]string{"--placeholder", "c"}))

	cfg, _, err := Load(LoadOptions{WorkDir: dir, Flags: flags})
	require.NoError(t, err)
	assert.Equal(t, "c", cfg.Placeholder, "changed flag wins")
	assert.True(t, cfg.Strict, "environment beats file")
	assert.Equal(t, 6, cfg.Pitch, "file beats default and unchanged flag")
}

// TestLoad_ExplicitPath verifies --config handling.
func TestLoad_ExplicitPath(t *testing.T) {
	isolate(t)
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "cratemover.yaml"), "placeholder: a\n")
	explicit := writeFile(t, filepath.Join(t.TempDir(), "custom.yaml"), "placeholder: z\n")

	cfg, path, err := Load(LoadOptions{ConfigFilePath: explicit, WorkDir: dir})
	require.NoError(t, err)
	assert.Equal(t, explicit, path)
	assert.Equal(t, "z", cfg.Placeholder)

	_, _, err = Load(LoadOptions{ConfigFilePath: filepath.Join(dir, "missing.yaml")})
	var cliErr *model.CLIError
	require.True(t, errors.As(err, &cliErr))
	assert.Equal(t, model.ExitInvalidConfig, cliErr.Code)
}

// TestLoad_Invalid verifies that bad files and values become config errors.
func TestLoad_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{"long placeholder", "c.yaml", "placeholder: abc\n"},
		{"narrow pitch", "c.yaml", "pitch: 2\n"},
		{"unknown output", "c.yaml", "output: xml\n"},
		{"broken yaml", "c.yaml", "placeholder: [\n"},
		{"broken toml", "c.toml", "placeholder = \n"},
		{"unknown extension", "c.ini", "placeholder=x\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			isolate(t)
			path := writeFile(t, filepath.Join(t.TempDir(), tt.file), tt.content)

			_, _, err := Load(LoadOptions{ConfigFilePath: path})
			require.Error(t, err)

			var cliErr *model.CLIError
			require.True(t, errors.As(err, &cliErr))
			assert.Equal(t, model.ExitInvalidConfig, cliErr.Code)
		})
	}
}

// TestValidate checks each rule separately and that all problems are
// reported at once.
func TestValidate(t *testing.T) {
	assert.Empty(t, Validate(DefaultConfig()))
	assert.Empty(t, Validate(&Config{Placeholder: "É", Pitch: 3, Output: "yaml"}))

	errs := Validate(&Config{Placeholder: "", Pitch: 1, Output: "csv"})
	require.Len(t, errs, 3)
	assert.Equal(t, KeyPlaceholder, errs[0].Field)
	assert.Equal(t, KeyPitch, errs[1].Field)
	assert.Equal(t, KeyOutput, errs[2].Field)
	assert.Contains(t, errs[0].Error(), "config validation error: placeholder")
}

// TestConfig_CargoOptions verifies the pitch override is only passed on when set.
func TestConfig_CargoOptions(t *testing.T) {
	cfg := DefaultConfig()
	assert.Len(t, cfg.CargoOptions(), 1)

	cfg.Pitch = 4
	assert.Len(t, cfg.CargoOptions(), 2)
}
