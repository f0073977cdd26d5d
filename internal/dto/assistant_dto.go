package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateSessionResponse struct {
	Id        uuid.UUID `json:"id"`
	Token     string    `json:"token"`
	TopicType string    `json:"topic_type"`
}

type SetTopicRequest struct {
	TopicType string `json:"topic_type" validate:"required,oneof=General Coding Math Science"`
}

type TextHintRequest struct {
	Question string `json:"question" validate:"required"`
}

// HintResponse is one finished pipeline run. Input carries the display
// preview; the full text stays in the session store.
type HintResponse struct {
	Modality  string    `json:"modality"`
	Input     string    `json:"input"`
	Hint      string    `json:"hint"`
	CreatedAt time.Time `json:"created_at"`
}

type HistoryEntryResponse struct {
	Input     string    `json:"input"`
	Hint      string    `json:"hint"`
	CreatedAt time.Time `json:"created_at"`
}
