package models

// RoleType defines the account role type
type RoleType string

const (
	RoleAdmin   RoleType = "admin"
	RoleFaculty RoleType = "faculty"
	RoleStudent RoleType = "student"
)

// EntityStatus is the lifecycle status shared by toggleable entities
type EntityStatus string

const (
	StatusActive   EntityStatus = "active"
	StatusInactive EntityStatus = "inactive"
)

// Opposite returns the flipped status. Toggling has no precondition
// beyond entity existence, so this is always defined.
func (s EntityStatus) Opposite() EntityStatus {
	if s == StatusActive {
		return StatusInactive
	}
	return StatusActive
}

// DurationUnit is the unit a course duration is expressed in
type DurationUnit string

const (
	DurationYear     DurationUnit = "year"
	DurationSemester DurationUnit = "semester"
)

// SubjectType classifies a subject
type SubjectType string

const (
	SubjectTheory    SubjectType = "theory"
	SubjectPractical SubjectType = "practical"
	SubjectElective  SubjectType = "elective"
)

// NoticeAudience is the audience a notice targets
type NoticeAudience string

const (
	AudienceAll      NoticeAudience = "all"
	AudienceFaculty  NoticeAudience = "faculty"
	AudienceStudents NoticeAudience = "students"
)

// NoticePriority ranks a notice
type NoticePriority string

const (
	PriorityLow    NoticePriority = "low"
	PriorityMedium NoticePriority = "medium"
	PriorityHigh   NoticePriority = "high"
	PriorityUrgent NoticePriority = "urgent"
)

// LeaveStatus is the workflow state of a leave request
type LeaveStatus string

const (
	LeavePending  LeaveStatus = "pending"
	LeaveApproved LeaveStatus = "approved"
	LeaveRejected LeaveStatus = "rejected"
)

// IsTerminal reports whether no further transition is permitted.
func (s LeaveStatus) IsTerminal() bool {
	return s == LeaveApproved || s == LeaveRejected
}
