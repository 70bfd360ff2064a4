package models

import (
	"time"
)

type TaskStatus string

const (
	TaskStatusUnassigned TaskStatus = "unassigned"
	TaskStatusAssigned   TaskStatus = "assigned"
	TaskStatusInProgress TaskStatus = "in_progress"
	TaskStatusCompleted  TaskStatus = "completed"
)

type TaskPriority string

const (
	PriorityLow      TaskPriority = "low"
	PriorityMedium   TaskPriority = "medium"
	PriorityHigh     TaskPriority = "high"
	PriorityCritical TaskPriority = "critical"
)

// statusRank orders the forward-only task lifecycle.
var statusRank = map[TaskStatus]int{
	TaskStatusUnassigned: 0,
	TaskStatusAssigned:   1,
	TaskStatusInProgress: 2,
	TaskStatusCompleted:  3,
}

// ValidTaskStatus reports whether s is a known task status.
func ValidTaskStatus(s TaskStatus) bool {
	_, ok := statusRank[s]
	return ok
}

// ValidTaskPriority reports whether p is a known priority.
func ValidTaskPriority(p TaskPriority) bool {
	switch p {
	case PriorityLow, PriorityMedium, PriorityHigh, PriorityCritical:
		return true
	}
	return false
}

// CanTransition reports whether a task may move from one status to
// another. The lifecycle only ever moves forward; completed is terminal.
func CanTransition(from, to TaskStatus) bool {
	fromRank, ok := statusRank[from]
	if !ok {
		return false
	}
	toRank, ok := statusRank[to]
	if !ok {
		return false
	}
	return toRank > fromRank
}

// IsActiveStatus reports whether a task in this status counts toward an
// employee's workload.
func IsActiveStatus(s TaskStatus) bool {
	return s == TaskStatusAssigned || s == TaskStatusInProgress
}

// Task belongs to exactly one organization. CompletedAt is set exactly
// once when the task transitions into completed and is non-nil iff the
// status is completed.
type Task struct {
	ID             uint64       `gorm:"primarykey" json:"id"`
	OrganizationID uint64       `gorm:"not null;index" json:"organization_id"`
	Title          string       `gorm:"type:varchar(255);not null" json:"title"`
	Description    string       `gorm:"type:text" json:"description"`
	AssigneeID     *uint64      `gorm:"index" json:"assignee_id"`
	Status         TaskStatus   `gorm:"type:varchar(20);not null" json:"status"`
	Priority       TaskPriority `gorm:"type:varchar(20);not null" json:"priority"`
	RequiredSkills SkillList    `gorm:"type:text" json:"required_skills"`
	Deadline       *time.Time   `json:"deadline"`
	CompletedAt    *time.Time   `json:"completed_at"`
	CreatedAt      time.Time    `json:"created_at"`
	UpdatedAt      time.Time    `json:"updated_at"`

	// Relations
	Organization Organization `gorm:"foreignKey:OrganizationID" json:"organization,omitempty"`
	Assignee     *Employee    `gorm:"foreignKey:AssigneeID" json:"assignee,omitempty"`
}

// NewTask builds a task with explicit defaults applied: status
// unassigned, priority medium, skills never nil.
func NewTask(orgID uint64, title, description string, priority TaskPriority, requiredSkills SkillList, deadline *time.Time) *Task {
	if priority == "" {
		priority = PriorityMedium
	}
	if requiredSkills == nil {
		requiredSkills = SkillList{}
	}
	return &Task{
		OrganizationID: orgID,
		Title:          title,
		Description:    description,
		Status:         TaskStatusUnassigned,
		Priority:       priority,
		RequiredSkills: requiredSkills,
		Deadline:       deadline,
	}
}
