package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	ProviderOpenAI = "openai"
	ProviderOllama = "ollama"

	StoreChromem  = "chromem"
	StorePostgres = "postgres"

	defaultChunkSize    = 900
	defaultChunkOverlap = 150
	defaultTopK         = 5
	defaultDimension    = 1536
)

// ConfigError reports invalid or missing configuration. It is raised eagerly
// at load/validate time, never deferred into a request path.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config: %s: %s", e.Field, e.Reason)
}

type ChunkingConfig struct {
	ChunkSize    int `yaml:"chunk_size"`
	ChunkOverlap int `yaml:"chunk_overlap"`
}

type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

type OpenAIConfig struct {
	ChatModel       string `yaml:"chat_model"`
	EmbeddingsModel string `yaml:"embeddings_model"`
}

type OllamaConfig struct {
	BaseURL         string `yaml:"base_url"`
	ChatModel       string `yaml:"chat_model"`
	EmbeddingsModel string `yaml:"embeddings_model"`
}

type ModelsConfig struct {
	Provider  string       `yaml:"provider"`
	Dimension int          `yaml:"dimension"`
	OpenAI    OpenAIConfig `yaml:"openai"`
	Ollama    OllamaConfig `yaml:"ollama"`
}

type VectorStoreConfig struct {
	Type       string `yaml:"type"`
	PersistDir string `yaml:"persist_dir"`
	Collection string `yaml:"collection"`
	DSN        string `yaml:"dsn"`
	Debug      bool   `yaml:"debug"`
}

type FeaturesConfig struct {
	Citations bool `yaml:"citations"`
}

type Config struct {
	ProjectName string            `yaml:"project_name"`
	StorageDir  string            `yaml:"storage_dir"`
	VectorStore VectorStoreConfig `yaml:"vectorstore"`
	Chunking    ChunkingConfig    `yaml:"chunking"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Models      ModelsConfig      `yaml:"models"`
	Features    FeaturesConfig    `yaml:"features"`

	// OpenAIAPIKey comes from the environment, not the YAML file.
	OpenAIAPIKey string `yaml:"-"`
}

// LoadConfig reads the YAML file at path, pulls credentials from the
// environment (a .env file is honored when present) and applies defaults.
func LoadConfig(path string) (*Config, error) {
	// Missing .env is fine, real environments set variables directly.
	_ = godotenv.Load()

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	// Preset so an absent features block keeps citations on.
	cfg := Config{Features: FeaturesConfig{Citations: true}}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	cfg.OpenAIAPIKey = os.Getenv("OPENAI_API_KEY")
	cfg.applyDefaults()
	return &cfg, nil
}

// Default returns a configuration with all defaults applied and credentials
// read from the environment. Used when no config file is given.
func Default() *Config {
	_ = godotenv.Load()
	cfg := &Config{
		Features:     FeaturesConfig{Citations: true},
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
	}
	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.ProjectName == "" {
		c.ProjectName = "Document Chatbot"
	}
	if c.StorageDir == "" {
		c.StorageDir = "./data"
	}
	if c.VectorStore.Type == "" {
		c.VectorStore.Type = StoreChromem
	}
	if c.VectorStore.PersistDir == "" {
		c.VectorStore.PersistDir = "./data/chromem"
	}
	if c.VectorStore.Collection == "" {
		c.VectorStore.Collection = "documents"
	}
	if c.Chunking.ChunkSize == 0 {
		c.Chunking.ChunkSize = defaultChunkSize
	}
	if c.Chunking.ChunkOverlap == 0 {
		c.Chunking.ChunkOverlap = defaultChunkOverlap
	}
	if c.Retrieval.TopK == 0 {
		c.Retrieval.TopK = defaultTopK
	}
	if c.Models.Provider == "" {
		c.Models.Provider = ProviderOpenAI
	}
	if c.Models.Dimension == 0 {
		c.Models.Dimension = defaultDimension
	}
	if c.Models.OpenAI.ChatModel == "" {
		c.Models.OpenAI.ChatModel = "gpt-4o-mini"
	}
	if c.Models.OpenAI.EmbeddingsModel == "" {
		c.Models.OpenAI.EmbeddingsModel = "text-embedding-3-small"
	}
	if c.Models.Ollama.BaseURL == "" {
		c.Models.Ollama.BaseURL = "http://localhost:11434"
	}
	if c.Models.Ollama.ChatModel == "" {
		c.Models.Ollama.ChatModel = "llama3"
	}
	if c.Models.Ollama.EmbeddingsModel == "" {
		c.Models.Ollama.EmbeddingsModel = "nomic-embed-text"
	}
}

// Validate checks the configuration before any component is constructed.
// A missing API key for the selected provider is a startup error, not a
// runtime fallback trigger.
func (c *Config) Validate() error {
	switch c.Models.Provider {
	case ProviderOpenAI:
		if c.OpenAIAPIKey == "" {
			return &ConfigError{
				Field:  "OPENAI_API_KEY",
				Reason: "environment variable is required when using the openai provider",
			}
		}
	case ProviderOllama:
		// Local provider, no credentials.
	default:
		return &ConfigError{
			Field:  "models.provider",
			Reason: fmt.Sprintf("unsupported provider %q", c.Models.Provider),
		}
	}

	switch c.VectorStore.Type {
	case StoreChromem:
	case StorePostgres:
		if c.VectorStore.DSN == "" {
			return &ConfigError{
				Field:  "vectorstore.dsn",
				Reason: "required for the postgres vector store",
			}
		}
	default:
		return &ConfigError{
			Field:  "vectorstore.type",
			Reason: fmt.Sprintf("unsupported store %q", c.VectorStore.Type),
		}
	}

	if c.Chunking.ChunkOverlap >= c.Chunking.ChunkSize {
		return &ConfigError{
			Field:  "chunking.chunk_overlap",
			Reason: "must be smaller than chunk_size",
		}
	}
	return nil
}
