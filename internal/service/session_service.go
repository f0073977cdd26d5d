package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"ai-study-assistant-be/internal/config"
	"ai-study-assistant-be/internal/constant"
	"ai-study-assistant-be/internal/dto"
	"ai-study-assistant-be/internal/pkg/logger"
	"ai-study-assistant-be/internal/pkg/serverutils"
	"ai-study-assistant-be/internal/repository/memory"
	"ai-study-assistant-be/pkg/store"
)

// ISessionService manages the lifecycle of anonymous study sessions.
type ISessionService interface {
	Create(ctx context.Context) (*dto.CreateSessionResponse, error)
	SetTopic(ctx context.Context, sessionID string, request *dto.SetTopicRequest) error
	Delete(ctx context.Context, sessionID string) error
	History(ctx context.Context, sessionID string, modality store.Modality) ([]*dto.HistoryEntryResponse, error)
}

type sessionService struct {
	sessionRepo *memory.SessionRepository
	cfg         *config.Config
	log         logger.ILogger
}

func NewSessionService(sessionRepo *memory.SessionRepository, cfg *config.Config, log logger.ILogger) ISessionService {
	return &sessionService{
		sessionRepo: sessionRepo,
		cfg:         cfg,
		log:         log,
	}
}

func (s *sessionService) Create(ctx context.Context) (*dto.CreateSessionResponse, error) {
	id := uuid.New()
	session := store.NewSession(id.String(), s.cfg.Assistant.DefaultTopicType)
	s.sessionRepo.Save(session)

	ttl := time.Duration(s.cfg.Assistant.SessionTTLMinutes) * time.Minute
	token, err := serverutils.IssueSessionToken(session.ID, ttl)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	s.log.Info(constant.ModuleSession, "session created", map[string]interface{}{
		"session_id": session.ID,
	})

	return &dto.CreateSessionResponse{
		Id:        id,
		Token:     token,
		TopicType: session.TopicType,
	}, nil
}

func (s *sessionService) SetTopic(ctx context.Context, sessionID string, request *dto.SetTopicRequest) error {
	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		return serverutils.ErrUnknownSession
	}

	session.SetTopic(request.TopicType)
	s.sessionRepo.Save(session)

	s.log.Info(constant.ModuleSession, "topic type selected", map[string]interface{}{
		"session_id": sessionID,
		"topic_type": request.TopicType,
	})
	return nil
}

func (s *sessionService) Delete(ctx context.Context, sessionID string) error {
	if _, found := s.sessionRepo.Get(sessionID); !found {
		return serverutils.ErrUnknownSession
	}
	s.sessionRepo.Delete(sessionID)
	return nil
}

func (s *sessionService) History(ctx context.Context, sessionID string, modality store.Modality) ([]*dto.HistoryEntryResponse, error) {
	session, found := s.sessionRepo.Get(sessionID)
	if !found {
		return nil, serverutils.ErrUnknownSession
	}

	entries := session.History(modality)
	response := make([]*dto.HistoryEntryResponse, 0, len(entries))
	for _, e := range entries {
		response = append(response, &dto.HistoryEntryResponse{
			Input:     store.Preview(e.Input),
			Hint:      e.Hint,
			CreatedAt: e.CreatedAt,
		})
	}
	return response, nil
}
