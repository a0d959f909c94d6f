package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"
)

// chdir moves the test into an empty directory so no settings.yml from the
// working tree is picked up.
func chdir(t *testing.T, dir string) {
	t.Helper()
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FIGMA_API_KEY", "")
	t.Setenv("PORT", "")

	cfg, err := Load(nil)

	require.NoError(t, err)
	require.Empty(t, cfg.Figma.APIKey)
	require.Equal(t, "https://api.figma.com/v1", cfg.Figma.BaseURL)
	require.Zero(t, cfg.Figma.Timeout)
	require.Equal(t, 3000, cfg.HTTP.Port)
	require.Equal(t, ":3000", cfg.Addr())
	require.Equal(t, 10*time.Second, cfg.HTTP.ShutdownTimeout)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "text", cfg.Log.Format)
}

func TestLoad_Environment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("FIGMA_API_KEY", "figd_secret")
	t.Setenv("PORT", "8081")
	t.Setenv("FIGMA_TIMEOUT", "15s")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := Load(nil)

	require.NoError(t, err)
	require.Equal(t, "figd_secret", cfg.Figma.APIKey)
	require.Equal(t, 8081, cfg.HTTP.Port)
	require.Equal(t, 15*time.Second, cfg.Figma.Timeout)
	require.Equal(t, "json", cfg.Log.Format)
}

func TestLoad_SettingsFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
	settings := "figma:\n  base_url: http://figma.local/v1\nhttp:\n  port: 4000\nmanifest:\n  path: /etc/mcp.json\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "settings.yml"), []byte(settings), 0o644))
	chdir(t, dir)
	t.Setenv("PORT", "")

	cfg, err := Load(nil)

	require.NoError(t, err)
	require.Equal(t, "http://figma.local/v1", cfg.Figma.BaseURL)
	require.Equal(t, 4000, cfg.HTTP.Port)
	require.Equal(t, "/etc/mcp.json", cfg.Manifest.Path)
}

func TestLoad_FlagsOverrideEnvironment(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "8081")

	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	flags.Int("port", 3000, "")
	flags.String("log-level", "info", "")
	require.NoError(t, flags.Parse([]string{"--port", "9090", "--log-level", "debug"}))

	cfg, err := Load(flags)

	require.NoError(t, err)
	require.Equal(t, 9090, cfg.HTTP.Port)
	require.Equal(t, "debug", cfg.Log.Level)
}

func TestLoad_InvalidPort(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "70000")

	_, err := Load(nil)
	require.Error(t, err)
}

func TestLoad_InvalidDurations(t *testing.T) {
	tests := []struct {
		name     string
		settings string
		env      map[string]string
	}{
		{name: "zero shutdown timeout in settings", settings: "http:\n  shutdown_timeout: 0s\n"},
		{name: "negative shutdown timeout from env", env: map[string]string{"HTTP_SHUTDOWN_TIMEOUT": "-1s"}},
		{name: "negative figma timeout", env: map[string]string{"FIGMA_TIMEOUT": "-5s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			if tt.settings != "" {
				require.NoError(t, os.MkdirAll(filepath.Join(dir, "configs"), 0o755))
				require.NoError(t, os.WriteFile(filepath.Join(dir, "configs", "settings.yml"), []byte(tt.settings), 0o644))
			}
			chdir(t, dir)
			t.Setenv("PORT", "")
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			_, err := Load(nil)
			require.Error(t, err)
		})
	}
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("FIGMA_DOTENV_MARKER=loaded\n"), 0o644))
	t.Setenv("FIGMA_DOTENV_MARKER", "")
	os.Unsetenv("FIGMA_DOTENV_MARKER")

	require.NoError(t, LoadDotEnv(envFile))
	require.Equal(t, "loaded", os.Getenv("FIGMA_DOTENV_MARKER"))

	require.NoError(t, LoadDotEnv(filepath.Join(dir, "missing.env")))
}
