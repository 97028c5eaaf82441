package scheduler

import (
	"container/heap"

	"github.com/google/btree"
	"github.com/specialistvlad/gridplan/internal/model"
)

// readyQueue is a min-heap of tasks ordered by (ReadyAt, Cost) with the
// task's position in the plan as the final tie-break.
type readyQueue []*model.Task

func (q readyQueue) Len() int { return len(q) }

func (q readyQueue) Less(i, j int) bool {
	a, b := q[i], q[j]
	if a.ReadyAt != b.ReadyAt {
		return a.ReadyAt < b.ReadyAt
	}
	if a.Cost != b.Cost {
		return a.Cost < b.Cost
	}
	if a.WorkflowID != b.WorkflowID {
		return a.WorkflowID < b.WorkflowID
	}
	return a.ID < b.ID
}

func (q readyQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *readyQueue) Push(x any) { *q = append(*q, x.(*model.Task)) }

func (q *readyQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	*q = old[:n-1]
	return item
}

// enqueue marks t with the Enqueued sentinel and pushes it.
func (q *readyQueue) enqueue(t *model.Task) {
	t.Indegree = model.Enqueued
	heap.Push(q, t)
}

func (q *readyQueue) next() *model.Task {
	return heap.Pop(q).(*model.Task)
}

// busyWorker is a worker running a task until the given time.
type busyWorker struct {
	id    int64
	until int64
}

// busyQueue is a min-heap of busy workers ordered by completion time.
type busyQueue []busyWorker

func (q busyQueue) Len() int { return len(q) }

func (q busyQueue) Less(i, j int) bool {
	if q[i].until != q[j].until {
		return q[i].until < q[j].until
	}
	return q[i].id < q[j].id
}

func (q busyQueue) Swap(i, j int) { q[i], q[j] = q[j], q[i] }

func (q *busyQueue) Push(x any) { *q = append(*q, x.(busyWorker)) }

func (q *busyQueue) Pop() any {
	old := *q
	n := len(old)
	item := old[n-1]
	*q = old[:n-1]
	return item
}

func (q busyQueue) peek() busyWorker { return q[0] }

// workerPool tracks the free workers among ids [1, size]. Ids that were
// never handed out are represented by a cursor so a large pool costs nothing
// up front; released ids live in an ordered set.
type workerPool struct {
	size     int64
	fresh    int64
	released *btree.BTreeG[int64]
}

func newWorkerPool(size int64) *workerPool {
	return &workerPool{
		size:     size,
		fresh:    1,
		released: btree.NewOrderedG[int64](8),
	}
}

// free returns the number of workers available right now.
func (p *workerPool) free() int64 {
	return int64(p.released.Len()) + (p.size - p.fresh + 1)
}

// take removes and returns the smallest free worker id. Released ids are
// always below the cursor, so they win over fresh ones.
func (p *workerPool) take() (int64, bool) {
	if id, ok := p.released.DeleteMin(); ok {
		return id, true
	}
	if p.fresh <= p.size {
		id := p.fresh
		p.fresh++
		return id, true
	}
	return 0, false
}

// release returns a worker to the pool.
func (p *workerPool) release(id int64) {
	p.released.ReplaceOrInsert(id)
}
