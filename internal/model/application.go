package model

import "github.com/deppfellow/jobly/internal/validation"

// ApplicationStatus is the state of a job application. Any status may move
// to any other.
type ApplicationStatus string

const (
	StatusInterested ApplicationStatus = "interested"
	StatusApplied    ApplicationStatus = "applied"
	StatusAccepted   ApplicationStatus = "accepted"
	StatusRejected   ApplicationStatus = "rejected"
)

// ApplicationStatuses lists every valid status.
var ApplicationStatuses = []ApplicationStatus{
	StatusInterested,
	StatusApplied,
	StatusAccepted,
	StatusRejected,
}

// Valid reports whether s is one of ApplicationStatuses.
func (s ApplicationStatus) Valid() bool {
	for _, status := range ApplicationStatuses {
		if s == status {
			return true
		}
	}
	return false
}

// Application links a user to a job. (Username, JobID) is unique.
type Application struct {
	Username string            `json:"username" db:"username"`
	JobID    int               `json:"jobId" db:"job_id"`
	Status   ApplicationStatus `json:"status" db:"status"`
}

// StatusUpdate is the input of a status change.
type StatusUpdate struct {
	Status ApplicationStatus `json:"status" validate:"required,oneof=interested applied accepted rejected"`
}

func (s StatusUpdate) Validate() error {
	return validation.Struct(s)
}
