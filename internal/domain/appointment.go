package domain

import (
	"time"
)

type AppointmentType string

const (
	AppointmentCareerCounseling AppointmentType = "CAREER_COUNSELING"
	AppointmentSkillsAssessment AppointmentType = "SKILLS_ASSESSMENT"
	AppointmentJobFair          AppointmentType = "JOB_FAIR"
	AppointmentWorkshop         AppointmentType = "WORKSHOP"
	AppointmentOther            AppointmentType = "OTHER"
)

type AppointmentStatus string

const (
	AppointmentScheduled AppointmentStatus = "SCHEDULED"
	AppointmentCancelled AppointmentStatus = "CANCELLED"
	AppointmentCompleted AppointmentStatus = "COMPLETED"
)

// A user can hold at most one appointment per slot start; the store enforces
// the (user_id, slot_start) pair.
type Appointment struct {
	ID              int64             `json:"id"`
	UserID          int64             `json:"userId"`
	AppointmentType AppointmentType   `json:"appointmentType"`
	SlotStart       time.Time         `json:"slotStart"`
	Location        string            `json:"location"`
	Notes           string            `json:"notes,omitempty"`
	Status          AppointmentStatus `json:"status"`
	CreatedAt       time.Time         `json:"createdAt"`
}
