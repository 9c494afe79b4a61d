package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/loomstack-labs/specloom/pkg/check"
)

// writeConfigFile writes a specloom.yaml into a temp dir and returns its path.
func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	tmpDir := t.TempDir()
	cfgPath := filepath.Join(tmpDir, "specloom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0600))
	return cfgPath
}

func TestLoadConfig_Defaults(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, "verbose: false\n")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.False(t, cfg.Verbose)
	assert.Equal(t, DefaultOutput, cfg.OutputFormat)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)

	// The default state path resolves against the config file's directory.
	assert.Equal(t, filepath.Join(filepath.Dir(cfgPath), DefaultStateFile), cfg.StatePath)
}

func TestLoadConfig_FileValues(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, `state_path: data/specs.db
output: markdown
server:
  addr: "0.0.0.0:9000"
validate:
  disabled: [OR01, SC01]
  severity:
    duplicate-label: error
`)

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(filepath.Dir(cfgPath), "data/specs.db"), cfg.StatePath)
	assert.Equal(t, "markdown", cfg.OutputFormat)
	assert.Equal(t, "0.0.0.0:9000", cfg.Server.Addr)
	assert.Equal(t, []string{"OR01", "SC01"}, cfg.Checks.Disabled)
	assert.Equal(t, "error", cfg.Checks.Severity["duplicate-label"])
}

func TestLoadConfig_EnvPrecedenceOverFile(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, "output: markdown\n")

	require.NoError(t, os.Setenv("SPECLOOM_OUTPUT", "json"))
	defer func() { _ = os.Unsetenv("SPECLOOM_OUTPUT") }()
	require.NoError(t, os.Setenv("SPECLOOM_SERVER__ADDR", "127.0.0.1:9999"))
	defer func() { _ = os.Unsetenv("SPECLOOM_SERVER__ADDR") }()

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat, "env var should override config file")
	assert.Equal(t, "127.0.0.1:9999", cfg.Server.Addr, "double underscore maps to nested key")
}

func TestLoadConfig_FlagPrecedence(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, "output: markdown\n")

	require.NoError(t, os.Setenv("SPECLOOM_OUTPUT", "json"))
	defer func() { _ = os.Unsetenv("SPECLOOM_OUTPUT") }()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "output format")
	require.NoError(t, flags.Set("output", "text"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "text", cfg.OutputFormat, "flag should override env var and file")
}

func TestLoadConfig_FlagNotSetUsesEnv(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, "output: markdown\n")

	require.NoError(t, os.Setenv("SPECLOOM_OUTPUT", "json"))
	defer func() { _ = os.Unsetenv("SPECLOOM_OUTPUT") }()

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("output", "", "output format")
	// Note: not calling flags.Set(), so Changed is false

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	assert.Equal(t, "json", cfg.OutputFormat)
}

func TestLoadConfig_StateFlagResolvesAgainstCWD(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, "state_path: data/specs.db\n")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.String("state", "", "state database path")
	require.NoError(t, flags.Set("state", "local.db"))

	cfg, err := LoadConfig(cfgPath, flags)
	require.NoError(t, err)

	cwd, err := os.Getwd()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(cwd, "local.db"), cfg.StatePath,
		"flag paths are relative to CWD, not the project root")
}

func TestLoadConfig_MemoryStatePathNotResolved(t *testing.T) {
	ResetConfig()

	cfgPath := writeConfigFile(t, "state_path: \":memory:\"\n")

	cfg, err := LoadConfig(cfgPath, nil)
	require.NoError(t, err)
	assert.Equal(t, ":memory:", cfg.StatePath)
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		cfg       Config
		wantErr   bool
		errSubstr string
	}{
		{
			name: "valid",
			cfg:  Config{OutputFormat: "markdown"},
		},
		{
			name: "empty output format is valid",
			cfg:  Config{},
		},
		{
			name:      "unknown output format",
			cfg:       Config{OutputFormat: "xml"},
			wantErr:   true,
			errSubstr: "invalid output format",
		},
		{
			name: "valid severity override",
			cfg: Config{
				Checks: ValidateConfig{Severity: map[string]string{"orphan-node": "info"}},
			},
		},
		{
			name: "unknown severity",
			cfg: Config{
				Checks: ValidateConfig{Severity: map[string]string{"orphan-node": "fatal"}},
			},
			wantErr:   true,
			errSubstr: "unknown severity",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errSubstr)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestConfig_CheckConfig(t *testing.T) {
	cfg := Config{
		Checks: ValidateConfig{
			Disabled: []string{"OR01", "sc01"},
			Severity: map[string]string{"duplicate-label": "error"},
		},
	}

	cc, err := cfg.CheckConfig()
	require.NoError(t, err)

	assert.True(t, cc.IsDisabled("OR01"))
	assert.Equal(t, check.SeverityError,
		cc.GetSeverity(check.ViolationDuplicateLabel, check.SeverityWarning))
	assert.Equal(t, check.SeverityInfo,
		cc.GetSeverity(check.ViolationEmptyScreen, check.SeverityInfo),
		"violations without overrides keep their classified severity")
}

func TestConfig_CheckConfigRejectsBadSeverity(t *testing.T) {
	cfg := Config{
		Checks: ValidateConfig{Severity: map[string]string{"orphan-node": "critical"}},
	}

	_, err := cfg.CheckConfig()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown severity")
}
