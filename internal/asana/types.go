package asana

import "time"

// User is the authenticated Asana account.
type User struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// Workspace is a top-level organizational container scoping tasks, projects
// and users.
type Workspace struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// Project identifies the project side of a task membership.
type Project struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// Section identifies the section side of a task membership.
type Section struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// Membership is a task's association with a project and, within it, a section.
type Membership struct {
	Project *Project `json:"project"`
	Section *Section `json:"section"`
}

// Tag is a label attached to a task.
type Tag struct {
	GID  string `json:"gid"`
	Name string `json:"name"`
}

// Task is a unit of work tracked by Asana. GID is required for any task
// entering the workflow; an empty GID in a payload is a fetch-layer error.
// A zero ModifiedAt means the service omitted the field.
type Task struct {
	GID         string       `json:"gid"`
	Name        string       `json:"name"`
	Notes       string       `json:"notes,omitempty"`
	Completed   bool         `json:"completed"`
	DueOn       string       `json:"due_on,omitempty"`
	CreatedAt   time.Time    `json:"created_at"`
	ModifiedAt  time.Time    `json:"modified_at"`
	Tags        []Tag        `json:"tags,omitempty"`
	Memberships []Membership `json:"memberships,omitempty"`
}
