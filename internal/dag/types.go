package dag

import "fmt"

// Graph is a collection of nodes and their dependencies.
// It is not safe for concurrent use; the builder owns it for a single pass.
type Graph[K comparable] struct {
	// nodes stores all nodes in the graph, keyed by their unique ID.
	nodes map[K]*node[K]
	// order holds node IDs in insertion order.
	order []K
}

// node represents a single vertex in the graph. It is un-exported to
// enforce interaction with the graph via the public API (using IDs),
// not by direct struct manipulation.
type node[K comparable] struct {
	id K
	// deps holds the nodes that this node depends on (predecessors).
	deps []K
	// dependents holds the nodes that depend on this node (successors).
	dependents []K
}

// CycleError reports a dependency cycle. Node is the first node found on the
// cycle while walking the graph in insertion order.
type CycleError[K comparable] struct {
	Node K
}

func (e *CycleError[K]) Error() string {
	return fmt.Sprintf("cycle detected involving node '%v'", e.Node)
}
