package project

import "time"

// Status is a project lifecycle status.
type Status string

const (
	StatusOngoing  Status = "ONGOING"
	StatusComplete Status = "COMPLETE"
	StatusOnHold   Status = "ONHOLD"
)

// TaskStatus is a task completion state.
type TaskStatus string

const (
	TaskTodo       TaskStatus = "TODO"
	TaskInProgress TaskStatus = "INPROGRESS"
	TaskCompleted  TaskStatus = "COMPLETED"
)

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s TaskStatus) bool {
	switch s {
	case TaskTodo, TaskInProgress, TaskCompleted:
		return true
	}
	return false
}

// Member is a contributor granted read/comment access.
type Member struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Role string `json:"role"`
}

// Task is a unit of work inside a module.
type Task struct {
	ID     string     `json:"id"`
	Title  string     `json:"title"`
	Status TaskStatus `json:"status"`
}

// Module groups tasks under a named work stream.
type Module struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Tasks []Task `json:"tasks"`
}

// Invoice is an amount billed against the project.
type Invoice struct {
	ID      string    `json:"id"`
	Amount  float64   `json:"amount"`
	Status  string    `json:"status"`
	DueDate time.Time `json:"due_date"`
}

// Payment is an amount received against the project.
type Payment struct {
	ID     string    `json:"id"`
	Amount float64   `json:"amount"`
	Date   time.Time `json:"date"`
}

// Comment is a discussion entry on the project.
type Comment struct {
	ID         string    `json:"id"`
	Content    string    `json:"content"`
	AuthorName string    `json:"author_name"`
	CreatedAt  time.Time `json:"created_at"`
}

// Aggregate is the full project snapshot the analytics engine consumes.
// It is read-only to the core; the entity provider owns it.
type Aggregate struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Status      Status     `json:"status"`
	Budget      float64    `json:"budget"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty"`
	OwnerID     string     `json:"owner_id"`
	ClientID    string     `json:"client_id"`
	Members     []Member   `json:"members"`
	Modules     []Module   `json:"modules"`
	Invoices    []Invoice  `json:"invoices"`
	Payments    []Payment  `json:"payments"`
	Comments    []Comment  `json:"comments"`
	CreatedAt   time.Time  `json:"created_at"`
}

// Tasks flattens all tasks across modules.
func (a *Aggregate) Tasks() []Task {
	var tasks []Task
	for _, m := range a.Modules {
		tasks = append(tasks, m.Tasks...)
	}
	return tasks
}

// PeriodStat is a per-project row for period statistics.
type PeriodStat struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Status    Status    `json:"status"`
	Budget    float64   `json:"budget"`
	CreatedAt time.Time `json:"created_at"`
}
