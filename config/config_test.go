package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fwojciec/emoscope/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// envMap returns a getenv func backed by m.
func envMap(m map[string]string) func(string) string {
	return func(k string) string { return m[k] }
}

func writeFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDefaults(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()

	assert.Equal(t, config.BackendHuggingFace, cfg.Backend)
	assert.Equal(t, 32, cfg.MaxBatchSize)
	assert.Equal(t, "dark", cfg.Theme)
	assert.Equal(t, "127.0.0.1:8080", cfg.Server.Addr())
	assert.NoError(t, cfg.Validate())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Parallel()

	path := writeFile(t, `
backend: gemini
model: gemini-2.5-pro
timeout: 10s
max_batch_size: 8
retry: true
theme: matrix
server:
  port: 9090
log:
  level: debug
  format: json
`)

	cfg, err := config.LoadWithEnv(path, envMap(nil))

	require.NoError(t, err)
	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, config.BackendGemini, cfg.Backend)
	assert.Equal(t, "gemini-2.5-pro", cfg.Model)
	assert.Equal(t, 10*time.Second, cfg.TimeoutDuration)
	assert.Equal(t, 8, cfg.MaxBatchSize)
	assert.True(t, cfg.Retry)
	assert.Equal(t, "matrix", cfg.Theme)
	assert.Equal(t, "127.0.0.1", cfg.Server.Host)
	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "json", cfg.Log.Format)
	assert.Equal(t, 4, cfg.Concurrency)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Parallel()

	path := writeFile(t, "backend: gemini\nmodel: from-file\n")

	cfg, err := config.LoadWithEnv(path, envMap(map[string]string{
		"EMOSCOPE_BACKEND":   "openai",
		"EMOSCOPE_MODEL":     "from-env",
		"EMOSCOPE_PORT":      "7000",
		"EMOSCOPE_RETRY":     "1",
		"EMOSCOPE_TIMEOUT":   "off",
		"EMOSCOPE_LOG_LEVEL": "warn",
	}))

	require.NoError(t, err)
	assert.Equal(t, config.BackendOpenAI, cfg.Backend)
	assert.Equal(t, "from-env", cfg.Model)
	assert.Equal(t, 7000, cfg.Server.Port)
	assert.True(t, cfg.Retry)
	assert.Zero(t, cfg.TimeoutDuration)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoad_APIKeyFallbacks(t *testing.T) {
	t.Parallel()

	tests := []struct {
		backend string
		env     map[string]string
		want    string
	}{
		{backend: "huggingface", env: map[string]string{"HF_TOKEN": "hf"}, want: "hf"},
		{backend: "gemini", env: map[string]string{"GEMINI_API_KEY": "gm", "OPENAI_API_KEY": "oa"}, want: "gm"},
		{backend: "gemini", env: map[string]string{"GOOGLE_API_KEY": "gg"}, want: "gg"},
		{backend: "openai", env: map[string]string{"OPENAI_API_KEY": "oa", "ANTHROPIC_API_KEY": "an"}, want: "oa"},
		{backend: "anthropic", env: map[string]string{"ANTHROPIC_API_KEY": "an"}, want: "an"},
		{backend: "anthropic", env: map[string]string{"EMOSCOPE_API_KEY": "explicit", "ANTHROPIC_API_KEY": "an"}, want: "explicit"},
	}
	for _, tt := range tests {
		t.Run(tt.backend+"/"+tt.want, func(t *testing.T) {
			t.Parallel()

			path := writeFile(t, "backend: "+tt.backend+"\n")

			cfg, err := config.LoadWithEnv(path, envMap(tt.env))

			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.APIKey)
		})
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		content string
		wantErr string
	}{
		{name: "unknown backend", content: "backend: watson\n", wantErr: "unknown backend"},
		{name: "bad log format", content: "log:\n  format: xml\n", wantErr: "unknown log format"},
		{name: "bad timeout", content: "timeout: soon\n", wantErr: "invalid timeout"},
		{name: "bad yaml", content: "backend: [\n", wantErr: "parsing config file"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := config.LoadWithEnv(writeFile(t, tt.content), envMap(nil))

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingExplicitFile(t *testing.T) {
	t.Parallel()

	_, err := config.LoadWithEnv(filepath.Join(t.TempDir(), "nope.yaml"), envMap(nil))

	assert.Error(t, err)
}

func TestConfig_Reparse(t *testing.T) {
	t.Parallel()

	cfg := config.Defaults()
	cfg.Timeout = "2s"

	require.NoError(t, cfg.Reparse())
	assert.Equal(t, 2*time.Second, cfg.TimeoutDuration)
	assert.Equal(t, 5*time.Minute, cfg.LoadTimeoutDuration)
}

func TestConfig_ReparseResolvesKeyForChangedBackend(t *testing.T) {
	t.Parallel()

	env := map[string]string{"HF_TOKEN": "hf_secret", "OPENAI_API_KEY": "sk_openai"}

	t.Run("fallback key follows backend", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.LoadWithEnv(writeFile(t, "backend: huggingface\n"), envMap(env))
		require.NoError(t, err)
		require.Equal(t, "hf_secret", cfg.APIKey)

		cfg.Backend = config.BackendOpenAI
		require.NoError(t, cfg.Reparse())

		assert.Equal(t, "sk_openai", cfg.APIKey)
	})

	t.Run("no key for new backend", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.LoadWithEnv(writeFile(t, "backend: huggingface\n"), envMap(env))
		require.NoError(t, err)

		cfg.Backend = config.BackendAnthropic
		require.NoError(t, cfg.Reparse())

		assert.Empty(t, cfg.APIKey)
	})

	t.Run("file key is kept", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.LoadWithEnv(writeFile(t, "backend: huggingface\napi_key: from_file\n"), envMap(env))
		require.NoError(t, err)

		cfg.Backend = config.BackendOpenAI
		require.NoError(t, cfg.Reparse())

		assert.Equal(t, "from_file", cfg.APIKey)
	})

	t.Run("explicit key is kept", func(t *testing.T) {
		t.Parallel()

		cfg, err := config.LoadWithEnv(writeFile(t, "backend: huggingface\n"), envMap(env))
		require.NoError(t, err)

		cfg.SetAPIKey("from_flag")
		cfg.Backend = config.BackendOpenAI
		require.NoError(t, cfg.Reparse())

		assert.Equal(t, "from_flag", cfg.APIKey)
	})
}
