package store

import (
	"sync"
	"time"
)

// Modality identifies one of the four input channels a question can arrive on.
type Modality string

const (
	ModalityText  Modality = "text"
	ModalityImage Modality = "image"
	ModalityPDF   Modality = "pdf"
	ModalityVoice Modality = "voice"
)

// Modalities lists every valid channel, in display order.
var Modalities = []Modality{ModalityText, ModalityImage, ModalityPDF, ModalityVoice}

// ValidModality reports whether m names a known input channel.
func ValidModality(m Modality) bool {
	switch m {
	case ModalityText, ModalityImage, ModalityPDF, ModalityVoice:
		return true
	}
	return false
}

// PreviewLimit is the maximum number of runes of an input shown back to the
// user. The full text is always kept in the session.
const PreviewLimit = 500

// ResponseEntry is one (input, hint) pair. Entries are immutable once
// appended; the session holds them append-only per modality.
type ResponseEntry struct {
	Input     string    `json:"input"`
	Hint      string    `json:"hint"`
	CreatedAt time.Time `json:"created_at"`
}

// Session is the active study session state, held only in process memory.
// The cache hands the same pointer to every request carrying the session's
// token, and the server handles those requests concurrently, so all access
// to the mutable fields goes through the locked methods below.
type Session struct {
	ID        string    `json:"id"`
	TopicType string    `json:"topic_type"`
	CreatedAt time.Time `json:"created_at"`

	// Per-modality response histories, append-only.
	Responses map[Modality][]ResponseEntry `json:"responses"`

	mu sync.RWMutex
}

// NewSession returns an empty session with all modality lists initialized.
func NewSession(id, topicType string) *Session {
	responses := make(map[Modality][]ResponseEntry, len(Modalities))
	for _, m := range Modalities {
		responses[m] = []ResponseEntry{}
	}
	return &Session{
		ID:        id,
		TopicType: topicType,
		CreatedAt: time.Now(),
		Responses: responses,
	}
}

// Append records a finished pipeline run and returns the stored entry. It
// is the only mutation the response lists support.
func (s *Session) Append(m Modality, input, hint string) ResponseEntry {
	entry := ResponseEntry{
		Input:     input,
		Hint:      hint,
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	s.Responses[m] = append(s.Responses[m], entry)
	s.mu.Unlock()

	return entry
}

// SetTopic changes the topic focus for subsequent hints.
func (s *Session) SetTopic(topicType string) {
	s.mu.Lock()
	s.TopicType = topicType
	s.mu.Unlock()
}

// Topic returns the current topic focus.
func (s *Session) Topic() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.TopicType
}

// History returns the modality's entries most-recent first. The returned
// slice is a copy; callers cannot mutate stored entries through it.
func (s *Session) History(m Modality) []ResponseEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	src := s.Responses[m]
	out := make([]ResponseEntry, 0, len(src))
	for i := len(src) - 1; i >= 0; i-- {
		out = append(out, src[i])
	}
	return out
}

// Preview truncates long inputs for display: anything beyond PreviewLimit
// runes is cut and marked with an ellipsis, shorter strings pass unchanged.
func Preview(input string) string {
	runes := []rune(input)
	if len(runes) <= PreviewLimit {
		return input
	}
	return string(runes[:PreviewLimit]) + "..."
}
