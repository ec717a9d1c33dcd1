package review

import (
	"context"

	"github.com/lewinnovation/asana-update-summarizer/internal/asana"
)

// Decision records one reviewed task: the task itself (kept whole for
// rendering), the user's free-text status and comment, and whether the
// comment was delivered to Asana. Immutable once appended.
type Decision struct {
	Task    asana.Task
	Status  string
	Comment string
	Posted  bool
	PostErr error
}

// Phase tags the workflow state. Each phase carries its data in State; the
// cursor is only meaningful while reviewing.
type Phase int

const (
	PhaseSelectingWorkspace Phase = iota
	PhaseFetchingTasks
	PhaseReviewingTask
	PhaseSummarizing
	PhaseExporting
	PhaseDone
)

func (p Phase) String() string {
	switch p {
	case PhaseSelectingWorkspace:
		return "selecting-workspace"
	case PhaseFetchingTasks:
		return "fetching-tasks"
	case PhaseReviewingTask:
		return "reviewing-task"
	case PhaseSummarizing:
		return "summarizing"
	case PhaseExporting:
		return "exporting"
	case PhaseDone:
		return "done"
	default:
		return "unknown"
	}
}

// State is the single mutable value a run owns: the current phase, the
// filtered task list, a cursor over it, and the decisions accumulated so far.
// Only the owning workflow mutates it, by advancing the cursor or appending
// a decision.
type State struct {
	Phase     Phase
	Workspace asana.Workspace
	Tasks     []asana.Task
	Cursor    int
	Decisions []Decision
}

// Strategy selects how task inclusion is asked.
type Strategy string

const (
	// StrategySequential confirms inclusion one task at a time.
	StrategySequential Strategy = "sequential"
	// StrategyBatch multi-selects the included tasks up front, then iterates
	// over the chosen ones.
	StrategyBatch Strategy = "batch"
)

// Gateway is the slice of the Asana API the workflow consumes.
type Gateway interface {
	GetCurrentUser(ctx context.Context) (asana.User, error)
	ListWorkspaces(ctx context.Context) ([]asana.Workspace, error)
	ListTasks(ctx context.Context, workspaceGID, assigneeGID string) ([]asana.Task, error)
	PostComment(ctx context.Context, taskGID, text string) error
}

// Prompter is the blocking terminal interaction surface. Every call waits
// indefinitely for the user.
type Prompter interface {
	Input(label string) (string, error)
	Confirm(label string) (bool, error)
	Select(label string, options []string) (int, error)
	MultiSelect(label string, options []string) ([]int, error)
}

// Presenter renders non-interactive output around the prompts.
type Presenter interface {
	ShowTask(position, total int, name, project, section string)
	ShowSummary(markdown string) error
	Infof(format string, args ...any)
	Warnf(format string, args ...any)
}

// Exporter delivers the final summary somewhere outside the terminal.
// Best-effort; failures are reported but never abort the run.
type Exporter interface {
	Export(text string) error
}
