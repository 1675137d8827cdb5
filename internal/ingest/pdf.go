package ingest

// PDF text extraction via github.com/ledongthuc/pdf. Only the embedded text
// layer is extracted; scanned (image-only) PDFs yield empty text rather than
// an error.

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// AutoSubmitThreshold is the minimum extracted-text length (in bytes) above
// which the capture flow forwards the text straight to structuring. At or
// below it the text only populates the buffer for manual review.
const AutoSubmitThreshold = 50

// ExtractText extracts the text layer of a PDF, page order preserved. Runs on
// a page are joined with single spaces; pages are joined with newlines.
func ExtractText(data []byte) (text string, err error) {
	// The parser panics on some malformed cross-reference tables; a corrupt
	// upload must surface as ExtractionError, not kill the session.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = &ExtractionError{Message: fmt.Sprintf("PDF parser panic: %v", r)}
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", &ExtractionError{Message: "failed to parse PDF", Cause: err}
	}

	numPages := reader.NumPage()
	pages := make([]string, 0, numPages)

	for i := 1; i <= numPages; i++ {
		p := reader.Page(i)
		if p.V.IsNull() {
			continue
		}

		rows, pageErr := p.GetTextByRow()
		if pageErr != nil {
			return "", &ExtractionError{Message: fmt.Sprintf("failed to read page %d", i), Cause: pageErr}
		}

		var tokens []string
		for _, row := range rows {
			for _, word := range row.Content {
				if s := strings.TrimSpace(word.S); s != "" {
					tokens = append(tokens, s)
				}
			}
		}
		pages = append(pages, strings.Join(tokens, " "))
	}

	return strings.Join(pages, "\n"), nil
}
