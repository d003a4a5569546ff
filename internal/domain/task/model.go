package task

import (
	"github.com/rpggio/bizpilot/internal/domain/civil"
	"github.com/rpggio/bizpilot/internal/resource"
)

// Priority ranks a task.
type Priority string

const (
	PriorityHigh   Priority = "high"
	PriorityMedium Priority = "medium"
	PriorityLow    Priority = "low"
)

// Status is the workflow state of a task.
type Status string

const (
	StatusPending    Status = "pending"
	StatusCompleted  Status = "completed"
	StatusInProgress Status = "in-progress"
	StatusScheduled  Status = "scheduled"
	StatusWaiting    Status = "waiting"
)

// Statuses lists every status in display order.
var Statuses = []Status{StatusPending, StatusInProgress, StatusScheduled, StatusWaiting, StatusCompleted}

// NextStatus is the status a toggle moves to: pending completes, anything
// else goes back to pending.
func NextStatus(s Status) Status {
	if s == StatusPending {
		return StatusCompleted
	}
	return StatusPending
}

// Task is a unit of work tracked by the remote tasks collection.
type Task struct {
	ID          resource.ID `json:"id"`
	Title       string      `json:"title"`
	Description string      `json:"description,omitempty"`
	DueDate     *civil.Date `json:"dueDate,omitempty"`
	Priority    Priority    `json:"priority"`
	Status      Status      `json:"status"`
}

func (t Task) EntityID() resource.ID {
	return t.ID
}

// Draft is the create payload.
type Draft struct {
	Title       string      `json:"title" validate:"notblank"`
	Description string      `json:"description,omitempty"`
	DueDate     *civil.Date `json:"dueDate,omitempty"`
	Priority    Priority    `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	Status      Status      `json:"status,omitempty" validate:"omitempty,oneof=pending completed in-progress scheduled waiting"`
}

func (d Draft) Validate() error {
	return ValidateDraft(d)
}

func (d Draft) Placeholder(id resource.ID) Task {
	return Task{
		ID:          id,
		Title:       d.Title,
		Description: d.Description,
		DueDate:     d.DueDate,
		Priority:    d.Priority,
		Status:      d.Status,
	}
}

// Patch is a partial update; only non-nil fields are sent.
type Patch struct {
	Title       *string     `json:"title,omitempty" validate:"omitempty,notblank"`
	Description *string     `json:"description,omitempty"`
	DueDate     *civil.Date `json:"dueDate,omitempty"`
	Priority    *Priority   `json:"priority,omitempty" validate:"omitempty,oneof=high medium low"`
	Status      *Status     `json:"status,omitempty" validate:"omitempty,oneof=pending completed in-progress scheduled waiting"`
}

func (p Patch) Validate() error {
	return ValidatePatch(p)
}

func (p Patch) Apply(t Task) Task {
	if p.Title != nil {
		t.Title = *p.Title
	}
	if p.Description != nil {
		t.Description = *p.Description
	}
	if p.DueDate != nil {
		due := *p.DueDate
		t.DueDate = &due
	}
	if p.Priority != nil {
		t.Priority = *p.Priority
	}
	if p.Status != nil {
		t.Status = *p.Status
	}
	return t
}
