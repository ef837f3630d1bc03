package domain

import (
	"slices"
	"strings"
	"time"
)

type JobApplicationStatus string

const (
	ApplicationReceived           JobApplicationStatus = "RECEIVED"
	ApplicationUnderReview        JobApplicationStatus = "UNDER_REVIEW"
	ApplicationInterviewScheduled JobApplicationStatus = "INTERVIEW_SCHEDULED"
	ApplicationOffered            JobApplicationStatus = "OFFERED"
	ApplicationRejected           JobApplicationStatus = "REJECTED"
	ApplicationWithdrawn          JobApplicationStatus = "WITHDRAWN"
)

// AllApplicationStatuses is ordered the way the lifecycle advances; handlers
// expose it for status dropdowns.
var AllApplicationStatuses = []JobApplicationStatus{
	ApplicationReceived,
	ApplicationUnderReview,
	ApplicationInterviewScheduled,
	ApplicationOffered,
	ApplicationRejected,
	ApplicationWithdrawn,
}

// applicationTransitions is the recommended lifecycle path. Status updates by
// employers and staff are not hard-blocked by this table (staff may need to
// reopen a rejected application), but CanTransition lets callers tighten the
// policy without restructuring anything.
var applicationTransitions = map[JobApplicationStatus][]JobApplicationStatus{
	ApplicationReceived:           {ApplicationUnderReview, ApplicationInterviewScheduled, ApplicationOffered, ApplicationRejected, ApplicationWithdrawn},
	ApplicationUnderReview:        {ApplicationInterviewScheduled, ApplicationOffered, ApplicationRejected, ApplicationWithdrawn},
	ApplicationInterviewScheduled: {ApplicationOffered, ApplicationRejected, ApplicationWithdrawn},
}

func KnownApplicationStatus(s JobApplicationStatus) bool {
	return slices.Contains(AllApplicationStatuses, s)
}

func CanTransition(from, to JobApplicationStatus) bool {
	return slices.Contains(applicationTransitions[from], to)
}

// Open reports whether the application is still in flight. OFFERED, REJECTED
// and WITHDRAWN are terminal from the applicant's perspective.
func (s JobApplicationStatus) Open() bool {
	switch s {
	case ApplicationReceived, ApplicationUnderReview, ApplicationInterviewScheduled:
		return true
	default:
		return false
	}
}

// StatusChangeError marks a status update that violates the lifecycle rules,
// as opposed to a storage failure.
type StatusChangeError struct {
	Reason string
}

func (e *StatusChangeError) Error() string {
	return e.Reason
}

type JobApplication struct {
	ID              int64                `json:"id"`
	UserID          int64                `json:"userId"` // applicant
	JobPostingID    int64                `json:"jobPostingId"`
	ApplicationDate time.Time            `json:"applicationDate"`
	Status          JobApplicationStatus `json:"status"`
	RejectReason    string               `json:"rejectReason,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	Version         int32                `json:"-"`
}

// ChangeStatus moves the application to the given status. A rejection must
// carry a non-blank reason; moving to any other status clears a previously
// stored reason.
func (a *JobApplication) ChangeStatus(to JobApplicationStatus, rejectReason string) error {
	if !KnownApplicationStatus(to) {
		return &StatusChangeError{Reason: "unknown application status"}
	}

	if to == ApplicationRejected {
		reason := strings.TrimSpace(rejectReason)
		if reason == "" {
			return &StatusChangeError{Reason: "a rejection reason is required when rejecting an application"}
		}
		a.Status = ApplicationRejected
		a.RejectReason = reason
		return nil
	}

	a.Status = to
	a.RejectReason = ""
	return nil
}

// Withdraw is the applicant-side exit. Unlike ChangeStatus it does hard-block
// terminal states: an applicant cannot withdraw an offer or a rejection.
func (a *JobApplication) Withdraw() error {
	if !a.Status.Open() {
		return &StatusChangeError{Reason: "only an open application can be withdrawn"}
	}
	a.Status = ApplicationWithdrawn
	a.RejectReason = ""
	return nil
}
