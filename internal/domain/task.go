package domain

import "time"

type Status string

const (
	StatusPending    Status = "pending"
	StatusInProgress Status = "in-progress"
	StatusCompleted  Status = "completed"
)

func (s Status) Valid() bool {
	return s == StatusPending || s == StatusInProgress || s == StatusCompleted
}

type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
	PriorityUrgent Priority = "urgent"
)

func (p Priority) Valid() bool {
	return p == PriorityLow || p == PriorityMedium || p == PriorityHigh || p == PriorityUrgent
}

type Task struct {
	ID          int64     `db:"id"`
	Title       string    `db:"title"`
	Description string    `db:"description"`
	DueDate     time.Time `db:"due_date"`
	Priority    Priority  `db:"priority"`
	Status      Status    `db:"status"`
	AssignedTo  int64     `db:"assigned_to"`
	CreatedBy   int64     `db:"created_by"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

// ResolvedTask is a task with its user references expanded to summaries.
type ResolvedTask struct {
	ID          int64       `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description"`
	DueDate     time.Time   `json:"due_date"`
	Priority    Priority    `json:"priority"`
	Status      Status      `json:"status"`
	AssignedTo  UserSummary `json:"assigned_to"`
	CreatedBy   UserSummary `json:"created_by"`
	CreatedAt   time.Time   `json:"created_at"`
	UpdatedAt   time.Time   `json:"updated_at"`
}

// TaskDraft is the input to task creation. DueDate stays a string until the
// service validates it so a malformed date is reported alongside the other
// field errors instead of failing JSON binding first.
type TaskDraft struct {
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     string   `json:"due_date"`
	Priority    Priority `json:"priority"`
	AssignedTo  int64    `json:"assigned_to"`
}

// TaskPatch is a partial update. A nil pointer means the field was not in
// the request. A present-but-empty value (empty string, zero id) is also
// skipped: the original system treated falsy fields as absent and clearing a
// field was never a supported operation.
type TaskPatch struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description"`
	DueDate     *string   `json:"due_date"`
	Priority    *Priority `json:"priority"`
	Status      *Status   `json:"status"`
	AssignedTo  *int64    `json:"assigned_to"`
}

// Reassigns reports whether the patch moves the task to another user.
func (p TaskPatch) Reassigns() bool {
	return p.AssignedTo != nil && *p.AssignedTo != 0
}

// TaskFilter selects tasks for listing and counting. Zero values mean no
// constraint on that column.
type TaskFilter struct {
	AssignedTo int64
	Status     Status
	Priority   Priority
}
