package gantt

import "github.com/tdao/ganttboard/internal/model"

// SortTasks returns tasks in render order: every group task immediately
// followed by its descendants depth-first, siblings keeping their input
// order. Root tasks (no parent, or a parent id not present in the set)
// are top-level siblings in input order. The sort is stable and
// idempotent, and assigns Rank sequentially on the returned copies.
//
// Parent-pointer cycles are tolerated: a visited set guarantees each
// task is emitted exactly once and the walk always terminates.
func SortTasks(tasks []model.GanttTask) []model.GanttTask {
	if len(tasks) == 0 {
		return nil
	}

	known := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		known[t.ID] = struct{}{}
	}

	// Child indexes grouped by parent id, preserving input order.
	children := make(map[string][]int)
	var roots []int
	for i, t := range tasks {
		_, parentKnown := known[t.ParentID]
		if t.ParentID == "" || !parentKnown {
			roots = append(roots, i)
			continue
		}
		children[t.ParentID] = append(children[t.ParentID], i)
	}

	visited := make(map[string]struct{}, len(tasks))
	out := make([]model.GanttTask, 0, len(tasks))

	var visit func(i int)
	visit = func(i int) {
		t := tasks[i]
		if _, dup := visited[t.ID]; dup {
			return
		}
		visited[t.ID] = struct{}{}
		out = append(out, t)
		for _, ci := range children[t.ID] {
			visit(ci)
		}
	}

	for _, i := range roots {
		visit(i)
	}

	// Tasks still unvisited sit inside a parent cycle and are reachable
	// from no root; emit them in input order, breaking the cycle at the
	// first task encountered.
	for i, t := range tasks {
		if _, ok := visited[t.ID]; !ok {
			visit(i)
		}
	}

	for i := range out {
		out[i].Rank = i
	}
	return out
}
