package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yurifrl/burnrate/pkg/models"
	"github.com/yurifrl/burnrate/pkg/report"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "burnrate.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testFlags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.String("out-dir", "", "")
	fs.String("currency", "", "")
	fs.Bool("chart", false, "")
	fs.String("log-level", "", "")
	return fs
}

func TestBuild_Defaults(t *testing.T) {
	cfg, err := Build("", nil)
	require.NoError(t, err)

	assert.Equal(t, report.DefaultOutputDir, cfg.OutputDir)
	assert.Equal(t, report.DefaultFile, cfg.OutputFile)
	assert.Equal(t, report.DefaultCurrency, cfg.Currency)
	assert.Equal(t, models.DefaultDateLayouts, cfg.DateLayouts)
	assert.False(t, cfg.Chart)
	assert.Equal(t, log.InfoLevel, cfg.Level())
}

func TestBuild_ConfigFile(t *testing.T) {
	path := writeConfig(t, `
output_dir: reports
title: Household burn
currency: "€"
chart: true
date_layouts:
  - "02.01.2006"
log_level: debug
`)

	cfg, err := Build(path, nil)
	require.NoError(t, err)

	assert.Equal(t, "reports", cfg.OutputDir)
	assert.Equal(t, "Household burn", cfg.Title)
	assert.Equal(t, "€", cfg.Currency)
	assert.True(t, cfg.Chart)
	assert.Equal(t, []string{"02.01.2006"}, cfg.DateLayouts)
	assert.Equal(t, log.DebugLevel, cfg.Level())

	rc := cfg.Renderer()
	assert.Equal(t, "reports", rc.OutputDir)
	assert.True(t, rc.Chart)
}

func TestBuild_Precedence(t *testing.T) {
	path := writeConfig(t, "output_dir: from-file\ncurrency: \"£\"\nchart: false\n")
	t.Setenv("BURNRATE_OUTPUT_DIR", "from-env")
	t.Setenv("BURNRATE_CURRENCY", "CHF ")

	flags := testFlags()
	require.NoError(t, flags.Parse([]string{"--out-dir", "from-flag", "--chart"}))

	cfg, err := Build(path, flags)
	require.NoError(t, err)

	assert.Equal(t, "from-flag", cfg.OutputDir)
	assert.Equal(t, "CHF ", cfg.Currency)
	assert.True(t, cfg.Chart)
}

func TestBuild_UnsetFlagsKeepConfig(t *testing.T) {
	path := writeConfig(t, "output_dir: from-file\n")

	flags := testFlags()
	require.NoError(t, flags.Parse(nil))

	cfg, err := Build(path, flags)
	require.NoError(t, err)
	assert.Equal(t, "from-file", cfg.OutputDir)
	assert.Equal(t, report.DefaultCurrency, cfg.Currency)
}

func TestBuild_InvalidFile(t *testing.T) {
	cfg, err := Build("nonexistent.yaml", nil)
	assert.Error(t, err)
	assert.Nil(t, cfg)
	assert.Contains(t, err.Error(), "failed to read config file")
}

func TestBuild_InvalidLogLevel(t *testing.T) {
	path := writeConfig(t, "log_level: loud\n")

	_, err := Build(path, nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid log_level")
}
