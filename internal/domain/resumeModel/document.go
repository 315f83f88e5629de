package resumeModel

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed default_resume.json
var defaultResume []byte

var ErrInvalidResume = errors.New("invalid resume document")

// Document is the resume loaded once at startup. Rendered never changes after load.
type Document struct {
	Resume   Resume
	rendered string
}

func (d *Document) Rendered() string {
	return d.rendered
}

// Load reads the resume at path, or the embedded default when path is empty.
func Load(path string) (*Document, error) {
	if path == "" {
		return ParseJSON(defaultResume)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read resume %s: %w", path, err)
	}

	switch extension(path) {
	case ".json":
		return ParseJSON(data)
	case ".yaml", ".yml":
		return ParseYAML(data)
	case ".pdf", ".docx", ".odt", ".rtf", ".txt":
		return ParseDocument(path)
	default:
		return nil, fmt.Errorf("%w: unsupported extension %q", ErrInvalidResume, filepath.Ext(path))
	}
}

func extension(path string) string {
	return strings.ToLower(filepath.Ext(path))
}

// ParseJSON keeps the source key order in the rendered text.
func ParseJSON(data []byte) (*Document, error) {
	var r Resume
	if err := json.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResume, err)
	}
	if err := validate(r); err != nil {
		return nil, err
	}

	var compact bytes.Buffer
	if err := json.Compact(&compact, data); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResume, err)
	}
	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResume, err)
	}
	return &Document{Resume: r, rendered: out.String()}, nil
}

func ParseYAML(data []byte) (*Document, error) {
	var r Resume
	if err := yaml.Unmarshal(data, &r); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResume, err)
	}
	if err := validate(r); err != nil {
		return nil, err
	}

	rendered, err := renderJSON(r)
	if err != nil {
		return nil, err
	}
	return &Document{Resume: r, rendered: rendered}, nil
}

func renderJSON(v any) (string, error) {
	var out bytes.Buffer
	enc := json.NewEncoder(&out)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidResume, err)
	}
	return strings.TrimSuffix(out.String(), "\n"), nil
}

func validate(r Resume) error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("%w: name is required", ErrInvalidResume)
	}
	return nil
}
