package document

import (
	"bytes"
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/gridplan/internal/config"
	"github.com/specialistvlad/gridplan/internal/ctxlog"
)

// Loader is the JSON/YAML implementation of the config.Loader interface. The
// format is chosen by file extension.
type Loader struct{}

// NewLoader creates a new document loader.
func NewLoader() *Loader {
	return &Loader{}
}

// Load reads and decodes the input document at path.
func (l *Loader) Load(ctx context.Context, path string) (*config.Document, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Document loader started.", "path", path)

	format, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read input document %s: %w", path, err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	logger.Debug("Document loading complete.", "format", string(format), "workflows", len(doc.Workflows), "tasks", doc.TaskCount())
	return doc, nil
}

// WriteFile encodes the output document into path, choosing the format by
// file extension. The file is replaced if it exists.
func WriteFile(path string, out *Output) error {
	format, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	var buf bytes.Buffer
	if err := Encode(&buf, out, format); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write output document %s: %w", path, err)
	}
	return nil
}
