package config

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/gridplan/internal/ctxlog"
)

// ErrInvalidDocument is matched by every *ValidationError.
var ErrInvalidDocument = errors.New("invalid document")

// ValidationError lists every input-shape problem found in a document.
type ValidationError struct {
	Problems []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("document validation failed:\n- %s", strings.Join(e.Problems, "\n- "))
}

// Is reports ErrInvalidDocument as a match.
func (e *ValidationError) Is(target error) bool {
	return target == ErrInvalidDocument
}

// Validate performs the structural checks that do not need a built graph:
// names present and unique within their scope, non-negative costs and worker
// count. Dependency resolution is left to the builder.
func Validate(ctx context.Context, doc *Document) error {
	logger := ctxlog.FromContext(ctx)
	if doc == nil {
		return &ValidationError{Problems: []string{"document is empty"}}
	}

	var errs []string
	if doc.WorkersCount < 0 {
		errs = append(errs, fmt.Sprintf("workers_count must not be negative, got %d", doc.WorkersCount))
	}

	workflowNames := make(map[string]struct{}, len(doc.Workflows))
	for i, w := range doc.Workflows {
		if w == nil {
			errs = append(errs, fmt.Sprintf("workflow #%d: declaration is empty", i))
			continue
		}
		if w.Name == "" {
			errs = append(errs, fmt.Sprintf("workflow #%d: name is required", i))
		} else if _, dup := workflowNames[w.Name]; dup {
			errs = append(errs, fmt.Sprintf("workflow '%s': declared more than once", w.Name))
		}
		workflowNames[w.Name] = struct{}{}

		taskNames := make(map[string]struct{}, len(w.Tasks))
		for j, t := range w.Tasks {
			if t == nil {
				errs = append(errs, fmt.Sprintf("workflow '%s', task #%d: declaration is empty", w.Name, j))
				continue
			}
			if t.Name == "" {
				errs = append(errs, fmt.Sprintf("workflow '%s', task #%d: name is required", w.Name, j))
			} else if _, dup := taskNames[t.Name]; dup {
				errs = append(errs, fmt.Sprintf("workflow '%s', task '%s': declared more than once", w.Name, t.Name))
			}
			taskNames[t.Name] = struct{}{}

			if t.Cost < 0 {
				errs = append(errs, fmt.Sprintf("workflow '%s', task '%s': cost must not be negative, got %d", w.Name, t.Name, t.Cost))
			}
		}
	}

	if len(errs) > 0 {
		return &ValidationError{Problems: errs}
	}

	if doc.WorkersCount == 0 && doc.TaskCount() > 0 {
		logger.Warn("workers_count is 0; no task can be scheduled.", "tasks", doc.TaskCount())
	}
	logger.Debug("Document validation passed.", "workflows", len(doc.Workflows), "tasks", doc.TaskCount())
	return nil
}
