package builder

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/gridplan/internal/config"
	"github.com/specialistvlad/gridplan/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func diamond() *config.Document {
	return &config.Document{
		WorkersCount: 3,
		Workflows: []*config.Workflow{
			{
				Name:        "diamond",
				ScheduledAt: 4,
				Tasks: []*config.Task{
					{Name: "top", Description: "fan out", Cost: 1},
					{Name: "left", Cost: 2, Dependencies: []string{"top"}},
					{Name: "right", Cost: 3, Dependencies: []string{"top"}},
					{Name: "bottom", Cost: 1, Dependencies: []string{"left", "right"}},
				},
			},
			{
				Name: "single",
				Tasks: []*config.Task{
					{Name: "only", Cost: 5},
				},
			},
		},
	}
}

func TestBuild_AssignsDenseIDsAndInitialState(t *testing.T) {
	plan, err := Build(context.Background(), diamond(), Options{})
	require.NoError(t, err)

	assert.Equal(t, int64(3), plan.Workers)
	require.Len(t, plan.Workflows, 2)

	w := plan.Workflows[0]
	assert.Equal(t, 0, w.ID)
	assert.Equal(t, "diamond", w.Name)
	require.Len(t, w.Tasks, 4)
	for i, task := range w.Tasks {
		assert.Equal(t, i, task.ID)
		assert.Equal(t, 0, task.WorkflowID)
		assert.Equal(t, int64(4), task.ReadyAt, "ready_at starts at the workflow's scheduled time")
		assert.Equal(t, model.Unassigned, task.WorkerID)
	}
	assert.Equal(t, "fan out", w.Tasks[0].Description)

	indegrees := []int64{0, 1, 1, 2}
	for i, want := range indegrees {
		assert.Equal(t, want, w.Tasks[i].Indegree, "task %s", w.Tasks[i].Name)
	}

	single := plan.Workflows[1]
	assert.Equal(t, 1, single.ID)
	assert.Equal(t, int64(0), single.Tasks[0].ReadyAt)

	id, ok := plan.WorkflowID("single")
	require.True(t, ok)
	assert.Equal(t, 1, id)
}

func TestBuild_RegistersEdgesFromDependencyToDependent(t *testing.T) {
	plan, err := Build(context.Background(), diamond(), Options{})
	require.NoError(t, err)

	key := func(task int) model.NodeKey { return model.NodeKey{Workflow: 0, Task: task} }
	assert.Equal(t, []model.NodeKey{key(1), key(2)}, plan.Successors(key(0)))
	assert.Equal(t, []model.NodeKey{key(3)}, plan.Successors(key(1)))
	assert.Equal(t, []model.NodeKey{key(3)}, plan.Successors(key(2)))
	assert.Empty(t, plan.Successors(key(3)))
	assert.Equal(t, 4, plan.EdgeCount())
}

func TestBuild_UnresolvedDependency(t *testing.T) {
	doc := diamond()
	doc.Workflows[1].Tasks[0].Dependencies = []string{"top"} // lives in another workflow

	_, err := Build(context.Background(), doc, Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrUnresolvedDependency))

	var depErr *UnresolvedDependencyError
	require.True(t, errors.As(err, &depErr))
	assert.Equal(t, "single", depErr.Workflow)
	assert.Equal(t, "only", depErr.Task)
	assert.Equal(t, "top", depErr.Dependency)
}

func TestBuild_CycleDetection(t *testing.T) {
	t.Parallel()

	cyclic := func() *config.Document {
		return &config.Document{
			WorkersCount: 1,
			Workflows: []*config.Workflow{{
				Name: "loop",
				Tasks: []*config.Task{
					{Name: "a", Cost: 1, Dependencies: []string{"b"}},
					{Name: "b", Cost: 1, Dependencies: []string{"a"}},
					{Name: "c", Cost: 1},
				},
			}},
		}
	}

	t.Run("rejected by default", func(t *testing.T) {
		_, err := Build(context.Background(), cyclic(), Options{})
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrCyclicDependency))
		assert.ErrorContains(t, err, "dependency cycle through task 'a'")
	})

	t.Run("self dependency is a cycle", func(t *testing.T) {
		doc := cyclic()
		doc.Workflows[0].Tasks = []*config.Task{{Name: "self", Cost: 1, Dependencies: []string{"self"}}}

		_, err := Build(context.Background(), doc, Options{})
		var cycleErr *CyclicDependencyError
		require.True(t, errors.As(err, &cycleErr))
		assert.Equal(t, "self", cycleErr.Task)
	})

	t.Run("allowed when requested", func(t *testing.T) {
		plan, err := Build(context.Background(), cyclic(), Options{AllowCycles: true})
		require.NoError(t, err)
		assert.Equal(t, int64(1), plan.Workflows[0].Tasks[0].Indegree)
		assert.Equal(t, int64(1), plan.Workflows[0].Tasks[1].Indegree)
	})
}

func TestBuild_ValidationErrorsFailFast(t *testing.T) {
	doc := diamond()
	doc.Workflows[0].Tasks[2].Cost = -1

	_, err := Build(context.Background(), doc, Options{})
	assert.ErrorIs(t, err, config.ErrInvalidDocument)
}

func TestBuild_DuplicateDependencyCountsTwice(t *testing.T) {
	doc := &config.Document{
		WorkersCount: 1,
		Workflows: []*config.Workflow{{
			Name: "dup",
			Tasks: []*config.Task{
				{Name: "a", Cost: 1},
				{Name: "b", Cost: 1, Dependencies: []string{"a", "a"}},
			},
		}},
	}

	plan, err := Build(context.Background(), doc, Options{})
	require.NoError(t, err)
	assert.Equal(t, int64(2), plan.Workflows[0].Tasks[1].Indegree)
	assert.Len(t, plan.Successors(model.NodeKey{Workflow: 0, Task: 0}), 2)
}
