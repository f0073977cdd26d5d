package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App       AppConfig
	Ai        AIConfig
	Assistant AssistantConfig
	Speech    SpeechConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	JWTSecret          string
}

type AIConfig struct {
	LLMProvider string // "groq" or "ollama"
	LLMModel    string // e.g. "llama-3.3-70b-versatile"
	GroqAPIKey  string
	GroqBaseURL string
	OllamaURL   string
}

type AssistantConfig struct {
	SessionTTLMinutes  int
	VoiceWindowSeconds int
	DefaultTopicType   string
}

type SpeechConfig struct {
	LanguageCode string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			JWTSecret:          getEnv("JWT_SECRET", ""),
		},
		Ai: AIConfig{
			LLMProvider: getEnv("LLM_PROVIDER", "groq"),
			LLMModel:    getEnv("LLM_MODEL", "llama-3.3-70b-versatile"),
			GroqAPIKey:  getEnv("GROQ_API_KEY", ""),
			GroqBaseURL: getEnv("GROQ_BASE_URL", ""),
			OllamaURL:   getEnv("OLLAMA_BASE_URL", "http://localhost:11434"),
		},
		Assistant: AssistantConfig{
			SessionTTLMinutes:  getEnvAsInt("SESSION_TTL_MINUTES", 60),
			VoiceWindowSeconds: getEnvAsInt("VOICE_WINDOW_SECONDS", 5),
			DefaultTopicType:   getEnv("DEFAULT_TOPIC_TYPE", "General"),
		},
		Speech: SpeechConfig{
			LanguageCode: getEnv("SPEECH_LANGUAGE_CODE", "en-US"),
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
