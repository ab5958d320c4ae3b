package gantt

import "github.com/tdao/ganttboard/internal/model"

// Dependency is a directed edge meaning the From task must render or
// visually connect before the To task. Edges are used only for drawing
// connectors; they impose no ordering on the task list itself.
type Dependency struct {
	From string
	To   string
}

// ExtractDependencies walks normalized tasks and produces a deduplicated
// edge list. A task declaring depends_on=[A] yields the edge A→task.
// Self references and references to ids outside the task set are skipped.
func ExtractDependencies(tasks []model.GanttTask) []Dependency {
	known := make(map[string]struct{}, len(tasks))
	for _, t := range tasks {
		known[t.ID] = struct{}{}
	}

	seen := make(map[Dependency]struct{})
	var edges []Dependency
	for _, t := range tasks {
		for _, from := range t.DependsOn {
			if from == t.ID {
				continue
			}
			if _, ok := known[from]; !ok {
				continue
			}
			edge := Dependency{From: from, To: t.ID}
			if _, dup := seen[edge]; dup {
				continue
			}
			seen[edge] = struct{}{}
			edges = append(edges, edge)
		}
	}
	return edges
}
