package document

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"ai-study-assistant-be/pkg/extract"
)

// ExtractPDF opens the byte stream as a paginated document and returns the
// per-page plain text concatenated strictly in page order.
func ExtractPDF(data []byte) (string, error) {
	if len(data) == 0 {
		return "", extract.ErrEmptyInput
	}

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", fmt.Errorf("%w: open pdf: %v", extract.ErrUnreadable, err)
	}

	pages := make([]string, 0, reader.NumPage())
	for i := 1; i <= reader.NumPage(); i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return "", fmt.Errorf("%w: page %d: %v", extract.ErrUnreadable, i, err)
		}
		pages = append(pages, text)
	}

	return joinPages(pages), nil
}

// joinPages concatenates page texts in the order given. Page boundaries are
// not marked; the original viewer showed the stream as one block.
func joinPages(pages []string) string {
	var sb strings.Builder
	for _, p := range pages {
		sb.WriteString(p)
	}
	return sb.String()
}
