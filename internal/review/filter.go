package review

import (
	"time"

	"github.com/lewinnovation/asana-update-summarizer/internal/asana"
)

// DefaultWindow is the trailing window a task must have been modified within
// to be offered for review. Fixed policy, not user-configurable.
const DefaultWindow = 7 * 24 * time.Hour

// FilterRecent returns the subsequence of tasks whose modification timestamp
// is set and not earlier than cutoff, preserving the original order. A task
// without a modification timestamp counts as not recently touched.
func FilterRecent(tasks []asana.Task, cutoff time.Time) []asana.Task {
	filtered := make([]asana.Task, 0, len(tasks))
	for _, task := range tasks {
		if task.ModifiedAt.IsZero() {
			continue
		}
		if task.ModifiedAt.Before(cutoff) {
			continue
		}
		filtered = append(filtered, task)
	}
	return filtered
}
