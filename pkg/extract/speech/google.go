package speech

import (
	"context"
	"fmt"
	"strings"
	"time"

	speech "cloud.google.com/go/speech/apiv1"
	speechpb "cloud.google.com/go/speech/apiv1/speechpb"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"ai-study-assistant-be/pkg/extract"
)

// Transcriber converts a short captured audio clip to text.
type Transcriber interface {
	Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error)
	Close() error
}

type googleTranscriber struct {
	client       *speech.Client
	languageCode string
}

// NewGoogleTranscriber builds a Transcriber backed by Google Cloud
// Speech-to-Text. The synchronous Recognize RPC is used; clips are bounded
// to a few seconds so the async path is never needed.
func NewGoogleTranscriber(ctx context.Context, languageCode string, opts ...option.ClientOption) (Transcriber, error) {
	if languageCode == "" {
		languageCode = "en-US"
	}
	c, err := speech.NewClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("speech client: %w", err)
	}
	return &googleTranscriber{client: c, languageCode: languageCode}, nil
}

func (t *googleTranscriber) Close() error {
	if t == nil || t.client == nil {
		return nil
	}
	return t.client.Close()
}

func (t *googleTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	if len(audio) == 0 {
		return "", extract.ErrEmptyInput
	}

	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	req := &speechpb.RecognizeRequest{
		Config: &speechpb.RecognitionConfig{
			Encoding:                   inferEncoding(mimeType),
			LanguageCode:               t.languageCode,
			EnableAutomaticPunctuation: true,
		},
		Audio: &speechpb.RecognitionAudio{
			AudioSource: &speechpb.RecognitionAudio_Content{Content: audio},
		},
	}

	resp, err := t.client.Recognize(ctx, req)
	if err != nil {
		return "", classifyRecognizeErr(err)
	}

	transcript := joinTranscripts(resp)
	if transcript == "" {
		return "", extract.ErrUnintelligible
	}
	return transcript, nil
}

// classifyRecognizeErr keeps the failure classes disjoint: audio the
// service rejected as malformed is "unreadable", transport problems and
// anything else are "unreachable". An answered-but-empty result never
// reaches here; that is "unintelligible".
func classifyRecognizeErr(err error) error {
	switch status.Code(err) {
	case codes.InvalidArgument, codes.OutOfRange:
		return fmt.Errorf("%w: %v", extract.ErrUnreadable, err)
	default:
		return fmt.Errorf("%w: recognize: %v", extract.ErrUnreachable, err)
	}
}

func joinTranscripts(resp *speechpb.RecognizeResponse) string {
	if resp == nil || len(resp.Results) == 0 {
		return ""
	}
	var full strings.Builder
	for _, r := range resp.Results {
		if r == nil || len(r.Alternatives) == 0 || r.Alternatives[0] == nil {
			continue
		}
		alt := strings.TrimSpace(r.Alternatives[0].Transcript)
		if alt == "" {
			continue
		}
		if full.Len() > 0 {
			full.WriteString(" ")
		}
		full.WriteString(alt)
	}
	return full.String()
}

type unavailableTranscriber struct {
	err error
}

// UnavailableTranscriber is a stand-in used when the Speech client could
// not be initialized. Every call fails with the unreachable class instead
// of crashing the server.
func UnavailableTranscriber(err error) Transcriber {
	return &unavailableTranscriber{err: err}
}

func (t *unavailableTranscriber) Transcribe(ctx context.Context, audio []byte, mimeType string) (string, error) {
	return "", fmt.Errorf("%w: %v", extract.ErrUnreachable, t.err)
}

func (t *unavailableTranscriber) Close() error { return nil }

func inferEncoding(mimeType string) speechpb.RecognitionConfig_AudioEncoding {
	m := strings.ToLower(strings.TrimSpace(mimeType))
	switch {
	case strings.Contains(m, "wav"):
		return speechpb.RecognitionConfig_LINEAR16
	case strings.Contains(m, "flac"):
		return speechpb.RecognitionConfig_FLAC
	case strings.Contains(m, "mp3") || strings.Contains(m, "mpeg"):
		return speechpb.RecognitionConfig_MP3
	case strings.Contains(m, "ogg") || strings.Contains(m, "opus"):
		return speechpb.RecognitionConfig_OGG_OPUS
	default:
		return speechpb.RecognitionConfig_ENCODING_UNSPECIFIED
	}
}
