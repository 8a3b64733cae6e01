package lifecycle

import (
	"context"
	"fmt"
	"sort"

	"mcp-chat-client/pkg/log"
)

// scheduler holds the prioritized cleanup task list. Not safe for
// concurrent use; the manager serializes access.
type scheduler struct {
	tasks []CleanupTask
}

func newScheduler() *scheduler {
	return &scheduler{}
}

// add appends a task and re-sorts high first. Registration order is
// preserved within a priority.
func (s *scheduler) add(task CleanupTask) {
	s.tasks = append(s.tasks, task)
	sort.SliceStable(s.tasks, func(i, j int) bool {
		return s.tasks[i].Priority > s.tasks[j].Priority
	})
}

// snapshot returns the tasks at or above the inclusive priority floor,
// in execution order.
func (s *scheduler) snapshot(min Priority) []CleanupTask {
	var out []CleanupTask
	for _, t := range s.tasks {
		if t.Priority >= min {
			out = append(out, t)
		}
	}
	return out
}

func (s *scheduler) clear() {
	s.tasks = nil
}

// runTasks executes tasks in order. A failing or panicking task is
// logged and does not prevent the rest from running.
func runTasks(ctx context.Context, l log.Logger, tasks []CleanupTask) {
	for _, task := range tasks {
		if task.Execute == nil {
			continue
		}
		if err := runTask(ctx, task); err != nil {
			l.Warn(ctx, "cleanup task failed",
				"task", task.Description,
				"priority", task.Priority.String(),
				"error", err.Error(),
			)
		}
	}
}

func runTask(ctx context.Context, task CleanupTask) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("cleanup task panicked: %v", r)
		}
	}()
	return task.Execute(ctx)
}
