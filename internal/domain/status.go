package domain

// TaskStatus is the workflow state of a task. There is no ordering between
// states: any member may move a task between any two of them.
type TaskStatus string

const (
	StatusTodo       TaskStatus = "todo"
	StatusInProgress TaskStatus = "in_progress"
	StatusDone       TaskStatus = "done"
)

// Valid reports whether s is one of the three known statuses.
func (s TaskStatus) Valid() bool {
	switch s {
	case StatusTodo, StatusInProgress, StatusDone:
		return true
	}
	return false
}

// Role is the authorization level required for a project-scoped operation.
type Role string

const (
	RoleMember Role = "member"
	RoleOwner  Role = "owner"
)
