package bootstrap

import (
	"context"
	"log"
	"time"

	"ai-study-assistant-be/internal/config"
	"ai-study-assistant-be/internal/controller"
	"ai-study-assistant-be/internal/pkg/logger"
	"ai-study-assistant-be/internal/repository/memory"
	"ai-study-assistant-be/internal/service"
	"ai-study-assistant-be/pkg/extract/ocr"
	"ai-study-assistant-be/pkg/extract/speech"
	"ai-study-assistant-be/pkg/llm/factory"
)

type Container struct {
	// Controllers
	SessionController   controller.ISessionController
	AssistantController controller.IAssistantController

	// Held for shutdown
	Logger logger.ILogger
}

func NewContainer(cfg *config.Config) *Container {
	// 1. Core Facades
	sysLogger := logger.NewZapLogger(cfg.App.LogFilePath, cfg.App.Environment == "production")

	// 2. LLM Provider
	var baseURL string
	if cfg.Ai.LLMProvider == "ollama" {
		baseURL = cfg.Ai.OllamaURL
	} else {
		baseURL = cfg.Ai.GroqBaseURL
	}
	llmProvider, err := factory.NewProvider(
		cfg.Ai.LLMProvider,
		cfg.Ai.LLMModel,
		baseURL,
		cfg.Ai.GroqAPIKey,
	)
	if err != nil {
		log.Fatalf("[FATAL] Failed to initialize LLM Provider: %v", err)
	}
	log.Printf("[INFO] Using LLM Provider: %s (%s)", cfg.Ai.LLMProvider, cfg.Ai.LLMModel)

	// 3. Extraction Backends
	// A failed client init degrades that modality to "unreachable" rather
	// than preventing startup; text and pdf input keep working.
	ctx := context.Background()

	ocrReader, err := ocr.NewVisionReader(ctx)
	if err != nil {
		log.Printf("[WARN] Vision OCR unavailable: %v", err)
		ocrReader = ocr.UnavailableReader(err)
	}

	transcriber, err := speech.NewGoogleTranscriber(ctx, cfg.Speech.LanguageCode)
	if err != nil {
		log.Printf("[WARN] Speech-to-text unavailable: %v", err)
		transcriber = speech.UnavailableTranscriber(err)
	}

	// 4. In-Memory Session Storage
	sessionRepo := memory.NewSessionRepository(time.Duration(cfg.Assistant.SessionTTLMinutes) * time.Minute)

	// 5. Services
	sessionService := service.NewSessionService(sessionRepo, cfg, sysLogger)
	assistantService := service.NewAssistantService(
		sessionRepo,
		llmProvider,
		ocrReader,
		transcriber,
		sysLogger,
		cfg.Assistant.VoiceWindowSeconds,
	)

	// 6. Controllers
	return &Container{
		SessionController:   controller.NewSessionController(sessionService),
		AssistantController: controller.NewAssistantController(assistantService, sessionService),
		Logger:              sysLogger,
	}
}
