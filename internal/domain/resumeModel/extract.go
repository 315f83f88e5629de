package resumeModel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/dslipak/pdf"
	"github.com/lu4p/cat"
)

const pageExtractTimeout = 10 * time.Second

// textResume is what gets rendered for resumes that only exist as a document.
type textResume struct {
	Name    string `json:"name"`
	RawText string `json:"raw_text"`
}

// ParseDocument builds a resume from a .pdf, .docx, .odt, .rtf or .txt file.
// The first non-empty line is taken as the name.
func ParseDocument(path string) (*Document, error) {
	var text string
	var err error
	if strings.EqualFold(extension(path), ".pdf") {
		text, err = extractPDF(path)
	} else {
		text, err = cat.File(path)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: extract %s: %v", ErrInvalidResume, path, err)
	}

	text = normalizeText(text)
	if text == "" {
		return nil, fmt.Errorf("%w: %s has no extractable text", ErrInvalidResume, path)
	}

	name, _, _ := strings.Cut(text, "\n")
	r := Resume{Name: strings.TrimSpace(name), RawText: text}
	rendered, err := renderJSON(textResume{Name: r.Name, RawText: r.RawText})
	if err != nil {
		return nil, err
	}
	return &Document{Resume: r, rendered: rendered}, nil
}

func extractPDF(path string) (string, error) {
	f, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("failed to open pdf: %w", err)
	}

	var pages []string
	for i := 1; i <= f.NumPage(); i++ {
		page := f.Page(i)
		if page.V.IsNull() {
			continue
		}
		content, err := protectExtract(page)
		if err != nil {
			// skip unreadable pages
			continue
		}
		pages = append(pages, content)
	}
	return strings.Join(pages, "\n"), nil
}

// protectExtract bounds GetPlainText, which can spin on malformed content streams.
func protectExtract(page pdf.Page) (string, error) {
	type result struct {
		content string
		err     error
	}
	resChan := make(chan result, 1)

	go func() {
		content, err := page.GetPlainText(nil)
		resChan <- result{content, err}
	}()
	select {
	case r := <-resChan:
		return r.content, r.err
	case <-time.After(pageExtractTimeout):
		return "", errors.New("page extraction timed out")
	}
}

func normalizeText(text string) string {
	lines := strings.Split(strings.ReplaceAll(text, "\r\n", "\n"), "\n")
	kept := lines[:0]
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			kept = append(kept, line)
		}
	}
	return strings.Join(kept, "\n")
}
