// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model holds the in-memory representation of a scheduling run: the
// workflows, their tasks and the dependency edges between them.
//
// # Core Concepts
//
//   - Task: the atomic unit of work. It carries a fixed cost and, once the
//     scheduler has processed it, a worker assignment and start/completion
//     timestamps. Tasks are mutated in place, first by the builder (indegree,
//     readiness) and then by the scheduler (assignment, timing).
//
//   - Workflow: an ordered collection of tasks sharing one earliest start time.
//     Workflows own their tasks; a task never belongs to two workflows.
//
//   - Plan: the result of building declarations. It owns the workflows, the
//     adjacency list of dependency edges and the name tables used to render
//     the final report. Every run builds its own Plan, so nothing is shared
//     between independent scheduling runs.
//
// Edges never cross workflows. A NodeKey addresses a task by the pair of dense
// integer ids assigned at load time.
package model
