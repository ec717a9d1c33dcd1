package review

import (
	"fmt"
	"strings"

	"github.com/lewinnovation/asana-update-summarizer/internal/asana"
)

// Prompt-time fallback labels for a task without memberships. The rendered
// table intentionally uses empty cells instead; the two stages differ on
// purpose and must stay that way.
const (
	promptNoProject = "No Project"
	promptNoSection = "No Section"
)

const summaryHeader = "| Project | Section | Name | URL | Status | Comment |"
const summarySeparator = "| --- | --- | --- | --- | --- | --- |"

// TaskURL builds the Asana deep link for a task, degrading to the zero
// placeholder when no project identifier is available.
func TaskURL(projectGID, taskGID string) string {
	if projectGID == "" {
		projectGID = "0"
	}
	return fmt.Sprintf("https://app.asana.com/0/%s/%s", projectGID, taskGID)
}

// RenderSummary projects decisions into a fixed six-column Markdown table:
// header row, dash separator, one row per decision, in decision order. Cell
// values are inserted verbatim; a `|` inside a comment corrupts the row and
// that is accepted.
func RenderSummary(decisions []Decision) string {
	rows := make([]string, 0, len(decisions)+2)
	rows = append(rows, summaryHeader, summarySeparator)
	for _, decision := range decisions {
		project, section, projectGID := renderMembership(decision.Task)
		rows = append(rows, fmt.Sprintf("| %s | %s | %s | %s | %s | %s |",
			project,
			section,
			decision.Task.Name,
			TaskURL(projectGID, decision.Task.GID),
			decision.Status,
			decision.Comment,
		))
	}
	return strings.Join(rows, "\n")
}

// renderMembership reads only the first membership entry, with empty-string
// fallbacks for the table.
func renderMembership(task asana.Task) (project, section, projectGID string) {
	if len(task.Memberships) == 0 {
		return "", "", ""
	}
	first := task.Memberships[0]
	if first.Project != nil {
		project = first.Project.Name
		projectGID = first.Project.GID
	}
	if first.Section != nil {
		section = first.Section.Name
	}
	return project, section, projectGID
}

// promptMembership reads only the first membership entry, with the verbose
// fallback labels shown while prompting.
func promptMembership(task asana.Task) (project, section string) {
	project, section, _ = renderMembership(task)
	if project == "" {
		project = promptNoProject
	}
	if section == "" {
		section = promptNoSection
	}
	return project, section
}
