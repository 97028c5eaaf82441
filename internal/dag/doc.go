// Package dag provides a small, generic directed graph used to validate the
// dependency structure of a plan before it is scheduled.
//
// Nodes are kept in insertion order and so are the edges leaving each node,
// which makes every traversal (and therefore every reported cycle)
// deterministic for a given input.
package dag
