package domain

import (
	"slices"
	"time"
)

type InterviewType string

const (
	InterviewInPerson  InterviewType = "IN_PERSON"
	InterviewVideoCall InterviewType = "VIDEO_CALL"
	InterviewPhone     InterviewType = "PHONE"
)

func KnownInterviewType(t InterviewType) bool {
	return slices.Contains([]InterviewType{InterviewInPerson, InterviewVideoCall, InterviewPhone}, t)
}

type InterviewStatus string

const (
	InterviewScheduled InterviewStatus = "SCHEDULED"
	InterviewCompleted InterviewStatus = "COMPLETED"
	InterviewCancelled InterviewStatus = "CANCELLED"
	InterviewNoShow    InterviewStatus = "NO_SHOW"
)

// Interview records are created only by the schedule-interview transition on
// a job application. At most one SCHEDULED row per application is maintained
// by that path; older rows stay behind as history.
type Interview struct {
	ID            int64           `json:"id"`
	ApplicationID int64           `json:"applicationId"`
	JobPostingID  int64           `json:"jobPostingId"`
	EmployerID    int64           `json:"employerId"`
	ApplicantID   int64           `json:"applicantId"`
	ScheduledAt   time.Time       `json:"scheduledAt"`
	Location      string          `json:"location"` // physical address or meeting link
	InterviewType InterviewType   `json:"interviewType"`
	Notes         string          `json:"notes,omitempty"`
	Status        InterviewStatus `json:"status"`
	CreatedAt     time.Time       `json:"createdAt"`
}
