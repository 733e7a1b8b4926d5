package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/feichai0017/document-qa/internal/agent/llm"
)

type Config struct {
	Server ServerConfig `yaml:"server"`
	Log    LogConfig    `yaml:"log"`
	LLM    LLMConfig    `yaml:"llm"`
}

type ServerConfig struct {
	Port            int           `yaml:"port"`
	Mode            string        `yaml:"mode"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`
}

type LogConfig struct {
	Level    string   `yaml:"level"`
	Encoding string   `yaml:"encoding"`
	Outputs  []string `yaml:"outputs"`
}

type LLMConfig struct {
	Provider      string        `yaml:"provider"`
	Timeout       time.Duration `yaml:"timeout"`
	GeminiAPIKey  string        `yaml:"gemini_api_key"`
	GeminiModel   string        `yaml:"gemini_model"`
	VertexProject string        `yaml:"vertex_project"`
	VertexRegion  string        `yaml:"vertex_region"`
	VertexModel   string        `yaml:"vertex_model"`
	OpenAIAPIKey  string        `yaml:"openai_api_key"`
	OpenAIBaseURL string        `yaml:"openai_base_url"`
	OpenAIModel   string        `yaml:"openai_model"`
}

// Model converts the section into the backend factory's config.
func (c LLMConfig) Model() llm.Config {
	return llm.Config{
		Provider:      c.Provider,
		GeminiAPIKey:  c.GeminiAPIKey,
		GeminiModel:   c.GeminiModel,
		VertexProject: c.VertexProject,
		VertexRegion:  c.VertexRegion,
		VertexModel:   c.VertexModel,
		OpenAIAPIKey:  c.OpenAIAPIKey,
		OpenAIBaseURL: c.OpenAIBaseURL,
		OpenAIModel:   c.OpenAIModel,
	}
}

func Default() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            8000,
			Mode:            "release",
			ShutdownTimeout: 5 * time.Second,
		},
		Log: LogConfig{
			Level:    "info",
			Encoding: "json",
			Outputs:  []string{"stdout"},
		},
		LLM: LLMConfig{
			Provider:    llm.ProviderGemini,
			Timeout:     120 * time.Second,
			GeminiModel: llm.DefaultGeminiModel,
			VertexModel: llm.DefaultVertexModel,
			OpenAIModel: llm.DefaultOpenAIModel,
		},
	}
}

// Load 加载配置: 默认值 -> CONFIG_FILE 指定的 YAML -> 环境变量
func Load(envFiles ...string) (*Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{".env"}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			log.Printf("Warning: %s not loaded, falling back to environment variables", f)
		}
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}

	return cfg, cfg.Validate()
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PORT %q: %w", v, err)
		}
		c.Server.Port = port
	}
	setString(&c.Server.Mode, "GIN_MODE")

	setString(&c.Log.Level, "LOG_LEVEL")
	setString(&c.Log.Encoding, "LOG_ENCODING")
	if v := os.Getenv("LOG_OUTPUTS"); v != "" {
		c.Log.Outputs = splitList(v)
	}

	setString(&c.LLM.Provider, "LLM_PROVIDER")
	setString(&c.LLM.GeminiAPIKey, "GEMINI_API_KEY")
	setString(&c.LLM.GeminiModel, "GEMINI_MODEL")
	setString(&c.LLM.VertexProject, "VERTEX_PROJECT")
	setString(&c.LLM.VertexRegion, "VERTEX_REGION")
	setString(&c.LLM.VertexModel, "VERTEX_MODEL")
	setString(&c.LLM.OpenAIAPIKey, "OPENAI_API_KEY")
	setString(&c.LLM.OpenAIBaseURL, "OPENAI_BASE_URL")
	setString(&c.LLM.OpenAIModel, "OPENAI_MODEL")
	if v := os.Getenv("LLM_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid LLM_TIMEOUT %q: %w", v, err)
		}
		c.LLM.Timeout = d
	}
	return nil
}

// Validate rejects configurations the server cannot start with.
func (c *Config) Validate() error {
	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid port: %d", c.Server.Port)
	}
	if c.LLM.Timeout < 0 {
		return errors.New("llm timeout cannot be negative")
	}

	switch strings.ToLower(c.LLM.Provider) {
	case "", llm.ProviderGemini:
		if c.LLM.GeminiAPIKey == "" {
			return errors.New("GEMINI_API_KEY is required for the gemini provider")
		}
	case llm.ProviderVertex:
		if c.LLM.VertexProject == "" || c.LLM.VertexRegion == "" {
			return errors.New("VERTEX_PROJECT and VERTEX_REGION are required for the vertex provider")
		}
	case llm.ProviderOpenAI:
		if c.LLM.OpenAIAPIKey == "" {
			return errors.New("OPENAI_API_KEY is required for the openai provider")
		}
	default:
		return fmt.Errorf("unsupported llm provider: %s", c.LLM.Provider)
	}
	return nil
}

func (c *Config) Addr() string {
	return fmt.Sprintf(":%d", c.Server.Port)
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func splitList(v string) []string {
	var out []string
	for _, part := range strings.Split(v, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
