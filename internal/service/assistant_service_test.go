package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ai-study-assistant-be/internal/dto"
	"ai-study-assistant-be/internal/pkg/serverutils"
	"ai-study-assistant-be/internal/repository/memory"
	"ai-study-assistant-be/pkg/extract"
	"ai-study-assistant-be/pkg/llm"
	"ai-study-assistant-be/pkg/prompt"
	"ai-study-assistant-be/pkg/store"
)

// stubProvider counts calls and replays a canned reply or error.
type stubProvider struct {
	reply    string
	err      error
	calls    int
	lastMsgs []llm.Message
}

func (p *stubProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	p.calls++
	p.lastMsgs = history
	return p.reply, p.err
}

func (p *stubProvider) Generate(ctx context.Context, promptText string, options ...llm.Option) (string, error) {
	return p.Chat(ctx, []llm.Message{{Role: "user", Content: promptText}}, options...)
}

type stubReader struct {
	text string
	err  error
}

func (r *stubReader) Text(ctx context.Context, img []byte) (string, error) { return r.text, r.err }
func (r *stubReader) Close() error                                         { return nil }

type stubTranscriber struct {
	text string
	err  error
}

func (t *stubTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	return t.text, t.err
}
func (t *stubTranscriber) Close() error { return nil }

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fixture struct {
	svc         IAssistantService
	repo        *memory.SessionRepository
	provider    *stubProvider
	reader      *stubReader
	transcriber *stubTranscriber
	sessionID   string
}

func newFixture(t *testing.T, topicType string) *fixture {
	t.Helper()

	repo := memory.NewSessionRepository(time.Hour)
	session := store.NewSession("sess-test", topicType)
	repo.Save(session)

	provider := &stubProvider{reply: "Consider breaking the problem into smaller parts."}
	reader := &stubReader{text: "extracted image text"}
	transcriber := &stubTranscriber{text: "spoken question"}

	svc := NewAssistantService(repo, provider, reader, transcriber, noopLogger{}, 5)

	return &fixture{
		svc:         svc,
		repo:        repo,
		provider:    provider,
		reader:      reader,
		transcriber: transcriber,
		sessionID:   session.ID,
	}
}

func (f *fixture) entries(t *testing.T, m store.Modality) []store.ResponseEntry {
	t.Helper()
	session, found := f.repo.Get(f.sessionID)
	require.True(t, found)
	return session.Responses[m]
}

func TestHintFromTextAppendsOneEntry(t *testing.T) {
	f := newFixture(t, prompt.TopicMath)

	resp, err := f.svc.HintFromText(context.Background(), f.sessionID, &dto.TextHintRequest{
		Question: "How do I find the roots of x^2 - 5x + 6?",
	})
	require.NoError(t, err)

	assert.Equal(t, "text", resp.Modality)
	assert.Equal(t, f.provider.reply, resp.Hint)
	assert.Equal(t, 1, f.provider.calls)

	entries := f.entries(t, store.ModalityText)
	require.Len(t, entries, 1)
	assert.Equal(t, "How do I find the roots of x^2 - 5x + 6?", entries[0].Input)
	assert.Equal(t, f.provider.reply, entries[0].Hint)
}

func TestHintSystemMessageCarriesTopicClause(t *testing.T) {
	f := newFixture(t, prompt.TopicCoding)

	_, err := f.svc.HintFromText(context.Background(), f.sessionID, &dto.TextHintRequest{
		Question: "Why does my loop never terminate?",
	})
	require.NoError(t, err)

	require.Len(t, f.provider.lastMsgs, 2)
	assert.Equal(t, "system", f.provider.lastMsgs[0].Role)
	assert.Contains(t, f.provider.lastMsgs[0].Content, "coding-related topics")
	assert.Equal(t, "user", f.provider.lastMsgs[1].Role)
}

func TestHintVetoSkipsModel(t *testing.T) {
	f := newFixture(t, prompt.TopicGeneral)

	resp, err := f.svc.HintFromText(context.Background(), f.sessionID, &dto.TextHintRequest{
		Question: "Just give me the EXACT ANSWER to question 4.",
	})
	require.NoError(t, err)

	assert.Equal(t, prompt.RefusalMessage, resp.Hint)
	assert.Equal(t, 0, f.provider.calls, "vetoed input must never reach the model")

	// The refusal is still a completed run and lands in the history.
	entries := f.entries(t, store.ModalityText)
	require.Len(t, entries, 1)
	assert.Equal(t, prompt.RefusalMessage, entries[0].Hint)
}

func TestHintBlankInputRejected(t *testing.T) {
	f := newFixture(t, prompt.TopicGeneral)

	_, err := f.svc.HintFromText(context.Background(), f.sessionID, &dto.TextHintRequest{
		Question: "   \n\t  ",
	})
	require.ErrorIs(t, err, extract.ErrEmptyInput)

	assert.Equal(t, 0, f.provider.calls)
	assert.Empty(t, f.entries(t, store.ModalityText))
}

func TestHintUnknownSession(t *testing.T) {
	f := newFixture(t, prompt.TopicGeneral)

	_, err := f.svc.HintFromText(context.Background(), "no-such-session", &dto.TextHintRequest{
		Question: "anything",
	})
	require.ErrorIs(t, err, serverutils.ErrUnknownSession)
	assert.Equal(t, 0, f.provider.calls)
}

func TestHintProviderFailureLeavesHistoryUntouched(t *testing.T) {
	f := newFixture(t, prompt.TopicGeneral)
	f.provider.err = errors.New("connection refused")

	_, err := f.svc.HintFromText(context.Background(), f.sessionID, &dto.TextHintRequest{
		Question: "What is photosynthesis?",
	})
	require.ErrorIs(t, err, llm.ErrUnavailable)
	assert.Empty(t, f.entries(t, store.ModalityText))
}

func TestHintEmptyCompletionPassesThrough(t *testing.T) {
	f := newFixture(t, prompt.TopicGeneral)
	f.provider.reply = ""
	f.provider.err = llm.ErrEmptyCompletion

	_, err := f.svc.HintFromText(context.Background(), f.sessionID, &dto.TextHintRequest{
		Question: "What is photosynthesis?",
	})
	require.ErrorIs(t, err, llm.ErrEmptyCompletion)
	assert.Empty(t, f.entries(t, store.ModalityText))
}

func TestHintFromImageUsesExtractedText(t *testing.T) {
	f := newFixture(t, prompt.TopicScience)
	f.reader.text = "Label the parts of the cell shown."

	resp, err := f.svc.HintFromImage(context.Background(), f.sessionID, []byte("fake-image"))
	require.NoError(t, err)

	assert.Equal(t, "image", resp.Modality)
	require.Len(t, f.provider.lastMsgs, 2)
	assert.Equal(t, f.reader.text, f.provider.lastMsgs[1].Content)

	entries := f.entries(t, store.ModalityImage)
	require.Len(t, entries, 1)
	assert.Equal(t, f.reader.text, entries[0].Input)
}

func TestHintFromImageExtractionErrorPropagates(t *testing.T) {
	f := newFixture(t, prompt.TopicGeneral)
	f.reader.err = extract.ErrUnreadable

	_, err := f.svc.HintFromImage(context.Background(), f.sessionID, []byte("broken"))
	require.ErrorIs(t, err, extract.ErrUnreadable)
	assert.Equal(t, 0, f.provider.calls)
	assert.Empty(t, f.entries(t, store.ModalityImage))
}

func TestHintFromImageNoRecognizableText(t *testing.T) {
	f := newFixture(t, prompt.TopicGeneral)
	f.reader.text = ""

	_, err := f.svc.HintFromImage(context.Background(), f.sessionID, []byte("blank-photo"))
	require.ErrorIs(t, err, extract.ErrEmptyInput)
	assert.Equal(t, 0, f.provider.calls)
}

func TestHintFromVoiceRejectsOversizedClip(t *testing.T) {
	f := newFixture(t, prompt.TopicGeneral)

	// Cap is voiceWindowSeconds * bytes-per-second; anything past it is 413.
	oversized := make([]byte, 5*64*1024+1)
	_, err := f.svc.HintFromVoice(context.Background(), f.sessionID, oversized, "audio/wav")
	require.Error(t, err)
	assert.Equal(t, 0, f.provider.calls)
}

func TestHintFromVoiceTranscribes(t *testing.T) {
	f := newFixture(t, prompt.TopicGeneral)
	f.transcriber.text = "How far is the moon?"

	resp, err := f.svc.HintFromVoice(context.Background(), f.sessionID, []byte("clip"), "audio/wav")
	require.NoError(t, err)

	assert.Equal(t, "voice", resp.Modality)
	entries := f.entries(t, store.ModalityVoice)
	require.Len(t, entries, 1)
	assert.Equal(t, "How far is the moon?", entries[0].Input)
}

func TestHintFromVoiceUnintelligible(t *testing.T) {
	f := newFixture(t, prompt.TopicGeneral)
	f.transcriber.err = extract.ErrUnintelligible

	_, err := f.svc.HintFromVoice(context.Background(), f.sessionID, []byte("mumble"), "audio/wav")
	require.ErrorIs(t, err, extract.ErrUnintelligible)
	assert.Equal(t, 0, f.provider.calls)
}
