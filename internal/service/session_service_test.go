package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-study-assistant-be/internal/config"
	"ai-study-assistant-be/internal/dto"
	"ai-study-assistant-be/internal/pkg/serverutils"
	"ai-study-assistant-be/internal/repository/memory"
	"ai-study-assistant-be/pkg/prompt"
	"ai-study-assistant-be/pkg/store"
)

func newSessionService(t *testing.T) (ISessionService, *memory.SessionRepository) {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	cfg := &config.Config{}
	cfg.Assistant.SessionTTLMinutes = 60
	cfg.Assistant.DefaultTopicType = prompt.TopicGeneral

	repo := memory.NewSessionRepository(time.Hour)
	return NewSessionService(repo, cfg, noopLogger{}), repo
}

func TestSessionCreate(t *testing.T) {
	svc, repo := newSessionService(t)

	resp, err := svc.Create(context.Background())
	require.NoError(t, err)

	assert.NotEmpty(t, resp.Token)
	assert.Equal(t, prompt.TopicGeneral, resp.TopicType)

	session, found := repo.Get(resp.Id.String())
	require.True(t, found, "created session must be retrievable")
	assert.Equal(t, prompt.TopicGeneral, session.TopicType)

	// Every modality list starts empty.
	for _, m := range store.Modalities {
		assert.Empty(t, session.Responses[m])
	}
}

func TestSessionSetTopic(t *testing.T) {
	svc, repo := newSessionService(t)

	created, err := svc.Create(context.Background())
	require.NoError(t, err)

	err = svc.SetTopic(context.Background(), created.Id.String(), &dto.SetTopicRequest{TopicType: prompt.TopicMath})
	require.NoError(t, err)

	session, _ := repo.Get(created.Id.String())
	assert.Equal(t, prompt.TopicMath, session.TopicType)
}

func TestSessionSetTopicUnknownSession(t *testing.T) {
	svc, _ := newSessionService(t)

	err := svc.SetTopic(context.Background(), "missing", &dto.SetTopicRequest{TopicType: prompt.TopicMath})
	require.ErrorIs(t, err, serverutils.ErrUnknownSession)
}

func TestSessionDelete(t *testing.T) {
	svc, repo := newSessionService(t)

	created, err := svc.Create(context.Background())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), created.Id.String()))

	_, found := repo.Get(created.Id.String())
	assert.False(t, found)

	// Deleting again reports the session as gone.
	err = svc.Delete(context.Background(), created.Id.String())
	require.ErrorIs(t, err, serverutils.ErrUnknownSession)
}

func TestSessionHistoryPreviewsLongInputs(t *testing.T) {
	svc, repo := newSessionService(t)

	created, err := svc.Create(context.Background())
	require.NoError(t, err)

	long := make([]rune, store.PreviewLimit+50)
	for i := range long {
		long[i] = 'x'
	}

	session, _ := repo.Get(created.Id.String())
	session.Append(store.ModalityPDF, string(long), "hint one")
	session.Append(store.ModalityPDF, "short question", "hint two")
	repo.Save(session)

	entries, err := svc.History(context.Background(), created.Id.String(), store.ModalityPDF)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Most recent first, long inputs truncated for display.
	assert.Equal(t, "short question", entries[0].Input)
	assert.Len(t, []rune(entries[1].Input), store.PreviewLimit+3)
	assert.Equal(t, "hint one", entries[1].Hint)
}

func TestSessionHistoryUnknownSession(t *testing.T) {
	svc, _ := newSessionService(t)

	_, err := svc.History(context.Background(), "missing", store.ModalityText)
	require.ErrorIs(t, err, serverutils.ErrUnknownSession)
}
