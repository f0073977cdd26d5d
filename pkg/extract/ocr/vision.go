package ocr

import (
	"context"
	"fmt"
	"strings"
	"time"

	vision "cloud.google.com/go/vision/v2/apiv1"
	visionpb "cloud.google.com/go/vision/v2/apiv1/visionpb"
	"google.golang.org/api/option"

	"ai-study-assistant-be/pkg/extract"
)

// Reader recognizes text in an uploaded image.
type Reader interface {
	Text(ctx context.Context, img []byte) (string, error)
	Close() error
}

type visionReader struct {
	client *vision.ImageAnnotatorClient
}

// NewVisionReader builds a Reader backed by Google Cloud Vision. Credentials
// come from the usual GOOGLE_APPLICATION_CREDENTIALS lookup unless explicit
// client options are passed.
func NewVisionReader(ctx context.Context, opts ...option.ClientOption) (Reader, error) {
	c, err := vision.NewImageAnnotatorClient(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("vision client: %w", err)
	}
	return &visionReader{client: c}, nil
}

func (r *visionReader) Close() error {
	if r == nil || r.client == nil {
		return nil
	}
	return r.client.Close()
}

// Text runs document text detection over the image bytes and returns the
// recognized fragments joined with single spaces.
func (r *visionReader) Text(ctx context.Context, img []byte) (string, error) {
	if len(img) == 0 {
		return "", extract.ErrEmptyInput
	}

	ctx, cancel := context.WithTimeout(ctx, 60*time.Second)
	defer cancel()

	req := &visionpb.BatchAnnotateImagesRequest{
		Requests: []*visionpb.AnnotateImageRequest{
			{
				Image: &visionpb.Image{Content: img},
				Features: []*visionpb.Feature{
					{Type: visionpb.Feature_DOCUMENT_TEXT_DETECTION},
				},
			},
		},
	}

	resp, err := r.client.BatchAnnotateImages(ctx, req)
	if err != nil {
		return "", fmt.Errorf("%w: vision annotate: %v", extract.ErrUnreachable, err)
	}
	if resp == nil || len(resp.Responses) == 0 || resp.Responses[0] == nil {
		return "", nil
	}

	r0 := resp.Responses[0]
	if r0.Error != nil && r0.Error.Message != "" {
		// Vision reports undecodable images here, not as a transport error.
		return "", fmt.Errorf("%w: %s", extract.ErrUnreadable, r0.Error.Message)
	}

	fta := r0.FullTextAnnotation
	if fta == nil || strings.TrimSpace(fta.Text) == "" {
		return "", nil
	}

	return collapseWhitespace(fta.Text), nil
}

// collapseWhitespace joins recognized fragments with single spaces.
func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

type unavailableReader struct {
	err error
}

// UnavailableReader is a stand-in used when the Vision client could not be
// initialized (e.g. no credentials in local development). Every call fails
// with the unreachable class instead of crashing the server.
func UnavailableReader(err error) Reader {
	return &unavailableReader{err: err}
}

func (r *unavailableReader) Text(ctx context.Context, img []byte) (string, error) {
	return "", fmt.Errorf("%w: %v", extract.ErrUnreachable, r.err)
}

func (r *unavailableReader) Close() error { return nil }
