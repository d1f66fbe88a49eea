// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.


package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/poiesic/asha/ai"
	"gopkg.in/yaml.v3"
)

// Embedder types
const (
	EmbedderTFIDF  = "tfidf"
	EmbedderOpenAI = "openai"
)

var (
	ErrConfigRequired   = errors.New("config is required")
	ErrUnknownEmbedder  = errors.New("unknown embedder type")
	ErrCacheDirRequired = errors.New("cache directory is required when the cache is enabled")
)

// OpenAIEmbedderConfig holds configuration for the OpenAI-compatible embedder.
type OpenAIEmbedderConfig struct {
	Host      string `yaml:"host"`
	Model     string `yaml:"model"`
	APIKeyEnv string `yaml:"api_key_env"`
	BatchSize int    `yaml:"batch_size"`
}

// EmbedderConfig selects and configures the text embedder implementation.
type EmbedderConfig struct {
	Type   string                `yaml:"type"`
	OpenAI *OpenAIEmbedderConfig `yaml:"openai,omitempty"`
}

// CacheConfig controls the on-disk embedding cache.
type CacheConfig struct {
	Enabled bool   `yaml:"enabled"`
	Dir     string `yaml:"dir"`
}

// KnowledgeBaseConfig locates the knowledge base. An empty path selects the
// built-in dataset.
type KnowledgeBaseConfig struct {
	Path string `yaml:"path,omitempty"`
}

// AssistantConfig holds the names used in replies.
type AssistantConfig struct {
	Name         string `yaml:"name"`
	Platform     string `yaml:"platform"`
	Organization string `yaml:"organization"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Embedder      EmbedderConfig      `yaml:"embedder"`
	Cache         CacheConfig         `yaml:"cache"`
	KnowledgeBase KnowledgeBaseConfig `yaml:"knowledge_base"`
	Assistant     AssistantConfig     `yaml:"assistant"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Default(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}
	applyDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/asha/config.yaml.
// If neither exists, it writes defaults to ~/.config/asha/config.yaml and returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := Default()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if cfg == nil {
		return ErrConfigRequired
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Default returns the default configuration: the offline TF-IDF embedder
// with the embedding cache disabled.
func Default() *AppConfig {
	cfg := &AppConfig{
		Embedder: EmbedderConfig{Type: EmbedderTFIDF},
	}
	applyDefaults(cfg)
	return cfg
}

// Bootstrap prepares the environment described by cfg. It validates the
// embedder section and creates the cache directory. Calling it more than
// once is harmless.
func Bootstrap(cfg *AppConfig) error {
	if cfg == nil {
		return ErrConfigRequired
	}

	switch cfg.Embedder.Type {
	case EmbedderTFIDF:
	case EmbedderOpenAI:
		if err := cfg.Embedder.AIConfig().Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("%w: %q", ErrUnknownEmbedder, cfg.Embedder.Type)
	}

	if cfg.Cache.Enabled {
		if cfg.Cache.Dir == "" {
			return ErrCacheDirRequired
		}
		if err := os.MkdirAll(cfg.Cache.Dir, 0o755); err != nil {
			return fmt.Errorf("creating cache directory: %w", err)
		}
	}
	return nil
}

// AIConfig converts the OpenAI section into a client configuration. The API
// key is read from the environment variable named by APIKeyEnv.
func (e *EmbedderConfig) AIConfig() *ai.Config {
	oc := e.OpenAI
	if oc == nil {
		oc = defaultOpenAI()
	}
	opts := []ai.ConfigOption{
		ai.WithEmbeddingHost(oc.Host),
		ai.WithEmbeddingModel(oc.Model),
		ai.WithBatchSize(oc.BatchSize),
	}
	if oc.APIKeyEnv != "" {
		opts = append(opts, ai.WithAPIKey(os.Getenv(oc.APIKeyEnv)))
	}
	return ai.NewConfig(opts...)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "asha", "config.yaml"), nil
}

func defaultCacheDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".asha", "cache")
	}
	return filepath.Join(home, ".config", "asha", "cache")
}

func defaultOpenAI() *OpenAIEmbedderConfig {
	defaults := ai.DefaultConfig()
	return &OpenAIEmbedderConfig{
		Host:      defaults.EmbeddingHost,
		Model:     defaults.EmbeddingModel,
		APIKeyEnv: "OPENAI_API_KEY",
		BatchSize: defaults.BatchSize,
	}
}

func applyDefaults(cfg *AppConfig) {
	if cfg.Embedder.Type == "" {
		cfg.Embedder.Type = EmbedderTFIDF
	}
	if cfg.Embedder.Type == EmbedderOpenAI {
		defaults := defaultOpenAI()
		if cfg.Embedder.OpenAI == nil {
			cfg.Embedder.OpenAI = defaults
		}
		oc := cfg.Embedder.OpenAI
		if oc.Host == "" {
			oc.Host = defaults.Host
		}
		if oc.Model == "" {
			oc.Model = defaults.Model
		}
		if oc.APIKeyEnv == "" {
			oc.APIKeyEnv = defaults.APIKeyEnv
		}
		if oc.BatchSize == 0 {
			oc.BatchSize = defaults.BatchSize
		}
	}
	if cfg.Cache.Dir == "" {
		cfg.Cache.Dir = defaultCacheDir()
	}
	if cfg.Assistant.Name == "" {
		cfg.Assistant.Name = "Asha"
	}
	if cfg.Assistant.Platform == "" {
		cfg.Assistant.Platform = "JobsForHer"
	}
	if cfg.Assistant.Organization == "" {
		cfg.Assistant.Organization = "JobsForHer Foundation"
	}
}
