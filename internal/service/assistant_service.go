package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"

	"ai-study-assistant-be/internal/constant"
	"ai-study-assistant-be/internal/dto"
	"ai-study-assistant-be/internal/pkg/logger"
	"ai-study-assistant-be/internal/pkg/serverutils"
	"ai-study-assistant-be/internal/repository/memory"
	"ai-study-assistant-be/pkg/extract"
	"ai-study-assistant-be/pkg/extract/document"
	"ai-study-assistant-be/pkg/extract/ocr"
	"ai-study-assistant-be/pkg/extract/speech"
	"ai-study-assistant-be/pkg/llm"
	"ai-study-assistant-be/pkg/prompt"
	"ai-study-assistant-be/pkg/store"
)

// IAssistantService runs the hint pipeline: acquire text from one of the
// four modalities, assemble the system instruction, invoke the model, and
// append the (input, hint) pair to the session's list for that modality.
type IAssistantService interface {
	HintFromText(ctx context.Context, sessionID string, request *dto.TextHintRequest) (*dto.HintResponse, error)
	HintFromImage(ctx context.Context, sessionID string, img []byte) (*dto.HintResponse, error)
	HintFromPDF(ctx context.Context, sessionID string, doc []byte) (*dto.HintResponse, error)
	HintFromVoice(ctx context.Context, sessionID string, audio []byte, mimeType string) (*dto.HintResponse, error)
}

type assistantService struct {
	sessionRepo *memory.SessionRepository
	llmProvider llm.Provider
	ocrReader   ocr.Reader
	transcriber speech.Transcriber
	log         logger.ILogger

	voiceByteCap int
}

func NewAssistantService(
	sessionRepo *memory.SessionRepository,
	llmProvider llm.Provider,
	ocrReader ocr.Reader,
	transcriber speech.Transcriber,
	log logger.ILogger,
	voiceWindowSeconds int,
) IAssistantService {
	if voiceWindowSeconds <= 0 {
		voiceWindowSeconds = 5
	}
	return &assistantService{
		sessionRepo:  sessionRepo,
		llmProvider:  llmProvider,
		ocrReader:    ocrReader,
		transcriber:  transcriber,
		log:          log,
		voiceByteCap: voiceWindowSeconds * constant.VoiceBytesPerSecond,
	}
}

func (s *assistantService) HintFromText(ctx context.Context, sessionID string, request *dto.TextHintRequest) (*dto.HintResponse, error) {
	return s.hint(ctx, sessionID, store.ModalityText, request.Question)
}

func (s *assistantService) HintFromImage(ctx context.Context, sessionID string, img []byte) (*dto.HintResponse, error) {
	text, err := s.ocrReader.Text(ctx, img)
	if err != nil {
		s.log.Warn(constant.ModuleAssistant, "image extraction failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}
	return s.hint(ctx, sessionID, store.ModalityImage, text)
}

func (s *assistantService) HintFromPDF(ctx context.Context, sessionID string, doc []byte) (*dto.HintResponse, error) {
	text, err := document.ExtractPDF(doc)
	if err != nil {
		s.log.Warn(constant.ModuleAssistant, "pdf extraction failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}
	return s.hint(ctx, sessionID, store.ModalityPDF, text)
}

func (s *assistantService) HintFromVoice(ctx context.Context, sessionID string, audio []byte, mimeType string) (*dto.HintResponse, error) {
	if len(audio) > s.voiceByteCap {
		return nil, fiber.NewError(fiber.StatusRequestEntityTooLarge, "Audio clip exceeds the capture window.")
	}

	text, err := s.transcriber.Transcribe(ctx, audio, mimeType)
	if err != nil {
		s.log.Warn(constant.ModuleAssistant, "voice transcription failed", map[string]interface{}{
			"session_id": sessionID,
			"error":      err.Error(),
		})
		return nil, err
	}
	return s.hint(ctx, sessionID, store.ModalityVoice, text)
}

// hint is the shared tail of the pipeline. The flow is strictly linear:
// no retries, no branching beyond the keyword veto, and a failure at any
// step leaves the session's lists untouched.
func (s *assistantService) hint(ctx context.Context, sessionID string, modality store.Modality, input string) (*dto.HintResponse, error) {
	input = strings.TrimSpace(input)
	if input == "" {
		return nil, extract.ErrEmptyInput
	}

	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		return nil, serverutils.ErrUnknownSession
	}

	var hintText string
	if prompt.Vetoed(input) {
		// Local policy veto: the model is never called.
		s.log.Info(constant.ModuleAssistant, "refusal veto triggered", map[string]interface{}{
			"session_id": sessionID,
			"modality":   string(modality),
		})
		hintText = prompt.RefusalMessage
	} else {
		system := prompt.NewHintBuilder(session.Topic()).Build()
		messages := []llm.Message{
			{Role: "system", Content: system},
			{Role: "user", Content: input},
		}

		reply, err := s.llmProvider.Chat(ctx, messages)
		if err != nil {
			if errors.Is(err, llm.ErrEmptyCompletion) {
				return nil, err
			}
			s.log.Error(constant.ModuleLLM, "chat completion failed", map[string]interface{}{
				"session_id": sessionID,
				"modality":   string(modality),
				"error":      err.Error(),
			})
			return nil, fmt.Errorf("%w: %v", llm.ErrUnavailable, err)
		}
		hintText = reply
	}

	entry := session.Append(modality, input, hintText)
	s.sessionRepo.Save(session)

	return &dto.HintResponse{
		Modality:  string(modality),
		Input:     store.Preview(entry.Input),
		Hint:      entry.Hint,
		CreatedAt: entry.CreatedAt,
	}, nil
}
