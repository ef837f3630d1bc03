package domain

import (
	"time"
)

type JobType string

const (
	JobTypeFullTime       JobType = "FULL_TIME"
	JobTypePartTime       JobType = "PART_TIME"
	JobTypeContract       JobType = "CONTRACT"
	JobTypeTemporary      JobType = "TEMPORARY"
	JobTypeIntern         JobType = "INTERN"
	JobTypeApprenticeship JobType = "APPRENTICESHIP"
)

type JobStatus string

const (
	JobStatusActive   JobStatus = "ACTIVE"
	JobStatusInactive JobStatus = "INACTIVE"
	JobStatusHold     JobStatus = "HOLD"
)

type JobPosting struct {
	ID               int64     `json:"id"`
	EmployerID       int64     `json:"employerId"`
	Title            string    `json:"title"`
	CompanyName      string    `json:"companyName"`
	Location         string    `json:"location"`
	JobType          JobType   `json:"jobType"`
	Description      string    `json:"description"`
	MinSalary        float64   `json:"minSalary"`
	MaxSalary        float64   `json:"maxSalary"`
	RequiredSkills   []string  `json:"requiredSkills"`
	Status           JobStatus `json:"status"`
	AnonymousPosting bool      `json:"anonymousPosting"`
	PostedDate       time.Time `json:"postedDate"`
	Version          int32     `json:"-"`
}
