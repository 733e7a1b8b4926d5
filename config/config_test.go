package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var envKeys = []string{
	"CONFIG_FILE", "PORT", "GIN_MODE", "LOG_LEVEL", "LOG_ENCODING", "LOG_OUTPUTS",
	"LLM_PROVIDER", "LLM_TIMEOUT", "GEMINI_API_KEY", "GEMINI_MODEL",
	"VERTEX_PROJECT", "VERTEX_REGION", "VERTEX_MODEL",
	"OPENAI_API_KEY", "OPENAI_BASE_URL", "OPENAI_MODEL",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envKeys {
		t.Setenv(k, "")
	}
}

func missingEnvFile(t *testing.T) string {
	return filepath.Join(t.TempDir(), "absent.env")
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)

	assert.Equal(t, 8000, cfg.Server.Port)
	assert.Equal(t, ":8000", cfg.Addr())
	assert.Equal(t, 5*time.Second, cfg.Server.ShutdownTimeout)
	assert.Equal(t, "gemini", cfg.LLM.Provider)
	assert.Equal(t, "gemini-2.5-flash", cfg.LLM.GeminiModel)
	assert.Equal(t, 120*time.Second, cfg.LLM.Timeout)
	assert.Equal(t, []string{"stdout"}, cfg.Log.Outputs)
}

func TestLoadRequiresCredentials(t *testing.T) {
	clearEnv(t)

	_, err := Load(missingEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "GEMINI_API_KEY")

	t.Setenv("LLM_PROVIDER", "vertex")
	t.Setenv("VERTEX_PROJECT", "p")
	_, err = Load(missingEnvFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "VERTEX_REGION")

	t.Setenv("LLM_PROVIDER", "palm")
	_, err = Load(missingEnvFile(t))
	assert.EqualError(t, err, "unsupported llm provider: palm")
}

func TestLoadEnvFile(t *testing.T) {
	clearEnv(t)
	envFile := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(envFile, []byte("OPENAI_API_KEY=sk-test\nLLM_PROVIDER=openai\n"), 0o600))
	// godotenv never overrides variables that are already present
	os.Unsetenv("OPENAI_API_KEY")
	os.Unsetenv("LLM_PROVIDER")

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "openai", cfg.LLM.Provider)
	assert.Equal(t, "sk-test", cfg.LLM.OpenAIAPIKey)
	assert.Equal(t, "gpt-4o-mini", cfg.LLM.Model().OpenAIModel)
}

func TestEnvOverridesYAML(t *testing.T) {
	clearEnv(t)
	yamlFile := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(yamlFile, []byte(`
server:
  port: 9000
log:
  level: debug
  outputs: [stdout, logs/app.log]
llm:
  provider: gemini
  gemini_api_key: from-yaml
  timeout: 30s
`), 0o600))

	t.Setenv("CONFIG_FILE", yamlFile)
	t.Setenv("PORT", "9100")
	t.Setenv("LLM_TIMEOUT", "0")

	cfg, err := Load(missingEnvFile(t))
	require.NoError(t, err)
	assert.Equal(t, 9100, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, []string{"stdout", "logs/app.log"}, cfg.Log.Outputs)
	assert.Equal(t, "from-yaml", cfg.LLM.GeminiAPIKey)
	assert.Equal(t, time.Duration(0), cfg.LLM.Timeout)
}

func TestLoadRejectsBadValues(t *testing.T) {
	clearEnv(t)
	t.Setenv("GEMINI_API_KEY", "key")

	t.Setenv("PORT", "eighty")
	_, err := Load(missingEnvFile(t))
	assert.Error(t, err)

	t.Setenv("PORT", "")
	t.Setenv("LLM_TIMEOUT", "soon")
	_, err = Load(missingEnvFile(t))
	assert.Error(t, err)

	t.Setenv("LLM_TIMEOUT", "")
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = Load(missingEnvFile(t))
	assert.Error(t, err)
}
