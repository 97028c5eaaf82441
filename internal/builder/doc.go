/*
Package builder is responsible for the construction of the schedulable plan.
It acts as the bridge between the static declaration model (defined in the
'config' package) and the scheduler (the 'scheduler' package).

The primary artifact produced by this package is a validated *model.Plan.

The plan construction is a multi-phase process:

 1. Node Creation: The builder iterates through the declared workflows and
    their tasks, assigning dense ids in declaration order. Every task starts
    with no unmet dependencies and becomes ready at its workflow's scheduled
    time. This phase populates the plan with its vertices but does not yet
    establish their relationships.

 2. Dependency Linking: For every task, each dependency name is resolved to a
    sibling task of the same workflow. The dependent's indegree is incremented
    and an edge from the dependency to the dependent is registered. A name
    that does not resolve aborts the build.

 3. Validation: The same edges are mirrored into a generic `dag` graph and
    checked for cycles, so that a cyclic declaration is rejected up front
    rather than silently leaving tasks unscheduled.

Upon successful completion, the builder hands the plan to the scheduler,
which mutates its tasks in place.
*/
package builder
