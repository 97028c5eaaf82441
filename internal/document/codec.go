package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"
	"github.com/specialistvlad/gridplan/internal/config"
	"gopkg.in/yaml.v3"
)

// Format is a supported document encoding.
type Format string

const (
	JSON Format = "json"
	YAML Format = "yaml"
)

// ErrUnsupportedFormat is returned for file extensions and format names the
// package does not handle.
var ErrUnsupportedFormat = errors.New("unsupported document format")

// ErrMissingField is matched by every error about an absent required field.
var ErrMissingField = errors.New("missing required field")

// FormatFromPath picks the format by file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return JSON, nil
	case ".yaml", ".yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, filepath.Ext(path))
	}
}

// ParseFormat maps a format name such as "json" or "yml" to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "json":
		return JSON, nil
	case "yaml", "yml":
		return YAML, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnsupportedFormat, name)
	}
}

// Decode parses an input document and translates it into the declaration
// model. Required fields that are absent fail with ErrMissingField.
func Decode(data []byte, format Format) (*config.Document, error) {
	var in Input
	switch format {
	case JSON:
		if err := json.NewDecoder(bytes.NewReader(data)).Decode(&in); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: document is empty", ErrMissingField)
			}
			return nil, fmt.Errorf("failed to parse JSON document: %w", err)
		}
	case YAML:
		if err := yaml.NewDecoder(bytes.NewReader(data)).Decode(&in); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, fmt.Errorf("%w: document is empty", ErrMissingField)
			}
			return nil, fmt.Errorf("failed to parse YAML document: %w", err)
		}
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return in.toConfig()
}

func missing(path string) error {
	return fmt.Errorf("%w: %s", ErrMissingField, path)
}

func (in *Input) toConfig() (*config.Document, error) {
	if in.WorkersCount == nil {
		return nil, missing("workers_count")
	}
	if in.Workflows == nil {
		return nil, missing("workflows")
	}

	doc := &config.Document{
		WorkersCount: *in.WorkersCount,
		Workflows:    make([]*config.Workflow, 0, len(in.Workflows)),
	}
	for i, w := range in.Workflows {
		if w == nil || w.Name == nil {
			return nil, missing(fmt.Sprintf("workflows[%d].name", i))
		}
		wf := &config.Workflow{
			Name:        *w.Name,
			ScheduledAt: w.ScheduledAt,
			Tasks:       make([]*config.Task, 0, len(w.Tasks)),
		}
		for j, t := range w.Tasks {
			if t == nil || t.Name == nil {
				return nil, missing(fmt.Sprintf("workflows[%d].tasks[%d].name", i, j))
			}
			if t.Cost == nil {
				return nil, missing(fmt.Sprintf("workflows[%d].tasks[%d].cost", i, j))
			}
			wf.Tasks = append(wf.Tasks, &config.Task{
				Name:         *t.Name,
				Description:  t.Description,
				Cost:         *t.Cost,
				Dependencies: t.Dependencies,
			})
		}
		doc.Workflows = append(doc.Workflows, wf)
	}
	return doc, nil
}

// Encode writes the output document in the given format. JSON is indented
// with four spaces.
func Encode(w io.Writer, out *Output, format Format) error {
	switch format {
	case JSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "    ")
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode JSON document: %w", err)
		}
		return nil
	case YAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(out); err != nil {
			return fmt.Errorf("failed to encode YAML document: %w", err)
		}
		return enc.Close()
	default:
		return fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
}
