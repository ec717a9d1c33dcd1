package review

import (
	"context"
	"fmt"
	"time"

	"github.com/lewinnovation/asana-update-summarizer/internal/asana"
	"github.com/lewinnovation/asana-update-summarizer/internal/logging"
)

// Options tune a single workflow run.
type Options struct {
	// Strategy defaults to StrategySequential.
	Strategy Strategy
	// FailFastPost aborts the whole run when a comment post fails instead of
	// recording the decision and continuing.
	FailFastPost bool
	// Window defaults to DefaultWindow.
	Window time.Duration
	// Now is overridable for tests.
	Now func() time.Time
}

// Workflow drives one review run: resolve the user, pick a workspace, fetch
// and filter tasks, collect one decision per included task, render the
// summary and export it. Strictly sequential; one outstanding prompt or
// request at a time.
type Workflow struct {
	gateway   Gateway
	prompter  Prompter
	presenter Presenter
	exporter  Exporter
	log       logging.Logger
	opts      Options
	state     State
}

// New wires a workflow. exporter may be nil to skip the export phase.
func New(gateway Gateway, prompter Prompter, presenter Presenter, exporter Exporter, log logging.Logger, opts Options) *Workflow {
	if opts.Strategy == "" {
		opts.Strategy = StrategySequential
	}
	if opts.Window <= 0 {
		opts.Window = DefaultWindow
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Workflow{
		gateway:   gateway,
		prompter:  prompter,
		presenter: presenter,
		exporter:  exporter,
		log:       logging.OrNop(log),
		opts:      opts,
	}
}

// State exposes a copy of the run state, mainly for tests.
func (w *Workflow) State() State {
	return w.state
}

// Run executes the whole workflow and returns the rendered summary table.
// The first fetch error aborts the run; there are no retries.
func (w *Workflow) Run(ctx context.Context) (string, error) {
	user, err := w.gateway.GetCurrentUser(ctx)
	if err != nil {
		return "", err
	}
	w.log.Info("authenticated as %s (%s)", user.Name, user.GID)

	w.state.Phase = PhaseSelectingWorkspace
	workspace, err := w.selectWorkspace(ctx)
	if err != nil {
		return "", err
	}
	w.state.Workspace = workspace

	w.state.Phase = PhaseFetchingTasks
	tasks, err := w.gateway.ListTasks(ctx, workspace.GID, user.GID)
	if err != nil {
		return "", err
	}
	cutoff := w.opts.Now().Add(-w.opts.Window)
	w.state.Tasks = FilterRecent(tasks, cutoff)
	w.log.Info("fetched %d tasks, %d modified since %s", len(tasks), len(w.state.Tasks), cutoff.Format(time.RFC3339))

	if err := w.reviewTasks(ctx); err != nil {
		return "", err
	}

	w.state.Phase = PhaseSummarizing
	table := RenderSummary(w.state.Decisions)
	if err := w.presenter.ShowSummary(table); err != nil {
		return "", fmt.Errorf("render summary: %w", err)
	}

	w.state.Phase = PhaseExporting
	w.export(table)

	w.state.Phase = PhaseDone
	return table, nil
}

func (w *Workflow) selectWorkspace(ctx context.Context) (asana.Workspace, error) {
	workspaces, err := w.gateway.ListWorkspaces(ctx)
	if err != nil {
		return asana.Workspace{}, err
	}
	switch len(workspaces) {
	case 0:
		return asana.Workspace{}, fmt.Errorf("fetch workspaces: no workspaces available")
	case 1:
		w.presenter.Infof("Using workspace %s", workspaces[0].Name)
		return workspaces[0], nil
	}
	names := make([]string, len(workspaces))
	for i, workspace := range workspaces {
		names[i] = workspace.Name
	}
	idx, err := w.prompter.Select("Select a workspace", names)
	if err != nil {
		return asana.Workspace{}, err
	}
	return workspaces[idx], nil
}

// reviewTasks walks the filtered list in order. With zero tasks it falls
// straight through to summarizing.
func (w *Workflow) reviewTasks(ctx context.Context) error {
	included, err := w.includedTasks()
	if err != nil {
		return err
	}
	total := len(w.state.Tasks)
	for i, task := range w.state.Tasks {
		w.state.Phase = PhaseReviewingTask
		w.state.Cursor = i
		if !included[i] {
			continue
		}
		project, section := promptMembership(task)
		w.presenter.ShowTask(i+1, total, task.Name, project, section)
		if w.opts.Strategy == StrategySequential {
			include, err := w.prompter.Confirm("Include this task in today's update")
			if err != nil {
				return err
			}
			if !include {
				continue
			}
		}
		if err := w.reviewTask(ctx, task); err != nil {
			return err
		}
	}
	return nil
}

// includedTasks resolves the inclusion set up front. Sequential mode includes
// everything here and asks per task instead; batch mode asks once with a
// multi-select.
func (w *Workflow) includedTasks() ([]bool, error) {
	included := make([]bool, len(w.state.Tasks))
	if w.opts.Strategy != StrategyBatch || len(w.state.Tasks) == 0 {
		for i := range included {
			included[i] = true
		}
		return included, nil
	}
	options := make([]string, len(w.state.Tasks))
	for i, task := range w.state.Tasks {
		project, section := promptMembership(task)
		options[i] = fmt.Sprintf("%s (%s / %s)", task.Name, project, section)
	}
	chosen, err := w.prompter.MultiSelect("Select the tasks you worked on today", options)
	if err != nil {
		return nil, err
	}
	for _, idx := range chosen {
		if idx >= 0 && idx < len(included) {
			included[idx] = true
		}
	}
	return included, nil
}

// reviewTask collects status and comment, optionally posts the comment, and
// appends the decision. The decision is recorded whether or not the post
// succeeded, except in fail-fast mode where a post failure aborts the run.
func (w *Workflow) reviewTask(ctx context.Context, task asana.Task) error {
	status, err := w.prompter.Input("Status")
	if err != nil {
		return err
	}
	comment, err := w.prompter.Input("Comment")
	if err != nil {
		return err
	}
	post, err := w.prompter.Confirm("Post this comment to the task")
	if err != nil {
		return err
	}

	decision := Decision{Task: task, Status: status, Comment: comment}
	if post {
		if err := w.gateway.PostComment(ctx, task.GID, comment); err != nil {
			if w.opts.FailFastPost {
				return err
			}
			decision.PostErr = err
			w.log.Warn("post comment on task %s failed: %v", task.GID, err)
			w.presenter.Warnf("Comment not posted: %v", err)
		} else {
			decision.Posted = true
		}
	}
	w.state.Decisions = append(w.state.Decisions, decision)
	return nil
}

// export copies the table out via the exporter after a confirmation.
// Export failures are warnings, never fatal.
func (w *Workflow) export(table string) {
	if w.exporter == nil {
		return
	}
	copyIt, err := w.prompter.Confirm("Copy summary to clipboard")
	if err != nil || !copyIt {
		return
	}
	if err := w.exporter.Export(table); err != nil {
		w.log.Warn("export summary: %v", err)
		w.presenter.Warnf("Could not copy to clipboard: %v", err)
		return
	}
	w.presenter.Infof("Summary copied to clipboard")
}
