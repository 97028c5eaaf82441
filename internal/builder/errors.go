package builder

import (
	"errors"
	"fmt"
)

var (
	// ErrUnresolvedDependency is matched by *UnresolvedDependencyError.
	ErrUnresolvedDependency = errors.New("unresolved dependency")
	// ErrCyclicDependency is matched by *CyclicDependencyError.
	ErrCyclicDependency = errors.New("cyclic dependency")
)

// UnresolvedDependencyError is returned when a task depends on a name that
// is not declared in its workflow.
type UnresolvedDependencyError struct {
	Workflow   string
	Task       string
	Dependency string
}

func (e *UnresolvedDependencyError) Error() string {
	return fmt.Sprintf("workflow '%s', task '%s': dependency '%s' is not a task of this workflow", e.Workflow, e.Task, e.Dependency)
}

// Is reports ErrUnresolvedDependency as a match.
func (e *UnresolvedDependencyError) Is(target error) bool {
	return target == ErrUnresolvedDependency
}

// CyclicDependencyError is returned when the dependencies of a workflow form
// a cycle. Task is one task on the cycle.
type CyclicDependencyError struct {
	Workflow string
	Task     string
}

func (e *CyclicDependencyError) Error() string {
	return fmt.Sprintf("workflow '%s': dependency cycle through task '%s'", e.Workflow, e.Task)
}

// Is reports ErrCyclicDependency as a match.
func (e *CyclicDependencyError) Is(target error) bool {
	return target == ErrCyclicDependency
}
