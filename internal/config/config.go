package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Telegram  TelegramConfig
	Database  DatabaseConfig
	Ai        AIConfig
	Assistant AssistantConfig
}

type AppConfig struct {
	Environment string
	LogFilePath string
	DataDir     string
	IndexPath   string
}

type TelegramConfig struct {
	BotToken string
}

type DatabaseConfig struct {
	Connection string
}

type AIConfig struct {
	OpenAIKey         string
	OpenAIBaseURL     string
	LLMModel          string
	Temperature       float64
	MaxTokens         int
	EmbeddingProvider string // "gemini" or "ollama"
	GeminiKey         string
	OllamaBaseURL     string
	OllamaModel       string
	VectorStore       string // "memory" or "pgvector"
}

type AssistantConfig struct {
	SessionTimeoutMinutes int
	SessionMaxTurns       int
	CacheTTLSeconds       int
	RetrievalTopK         int
	RetrievalMemoTTLHours int
	ChunkMaxLength        int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Environment: getEnv("GO_ENV", "development"),
			LogFilePath: getEnv("LOG_FILE_PATH", "assistant.log"),
			DataDir:     getEnv("DATA_DIR", "data"),
			IndexPath:   getEnv("INDEX_PATH", "data/vector_index.json"),
		},
		Telegram: TelegramConfig{
			BotToken: getEnv("BOT_TOKEN", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Ai: AIConfig{
			OpenAIKey:         getEnv("OPENAI_API_KEY", ""),
			OpenAIBaseURL:     getEnv("OPENAI_BASE_URL", "https://api.openai.com/v1"),
			LLMModel:          getEnv("LLM_MODEL", "gpt-4o-mini"),
			Temperature:       getEnvAsFloat("LLM_TEMPERATURE", 0.5),
			MaxTokens:         getEnvAsInt("LLM_MAX_TOKENS", 1000),
			EmbeddingProvider: getEnv("EMBEDDING_PROVIDER", "ollama"),
			GeminiKey:         getEnv("GOOGLE_GEMINI_API_KEY", ""),
			OllamaBaseURL:     getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
			OllamaModel:       getEnv("OLLAMA_EMBEDDING_MODEL", "nomic-embed-text"),
			VectorStore:       getEnv("VECTOR_STORE", "memory"),
		},
		Assistant: AssistantConfig{
			SessionTimeoutMinutes: getEnvAsInt("SESSION_TIMEOUT_MINUTES", 30),
			SessionMaxTurns:       getEnvAsInt("SESSION_MAX_TURNS", 30),
			CacheTTLSeconds:       getEnvAsInt("CACHE_TTL_SECONDS", 3600),
			RetrievalTopK:         getEnvAsInt("RETRIEVAL_TOP_K", 5),
			RetrievalMemoTTLHours: getEnvAsInt("RETRIEVAL_MEMO_TTL_HOURS", 24),
			ChunkMaxLength:        getEnvAsInt("CHUNK_MAX_LENGTH", 4000),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
