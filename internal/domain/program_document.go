package domain

import (
	"slices"
	"time"
)

type ProgramType string

const (
	ProgramResume         ProgramType = "RESUME"
	ProgramCoverLetter    ProgramType = "COVER_LETTER"
	ProgramProfilePicture ProgramType = "PROFILE_PICTURE"
	ProgramSnapEnT        ProgramType = "SNAP_ENT"
	ProgramWTTanf         ProgramType = "WT_TANF"
	ProgramWIOA           ProgramType = "WIOA"
	ProgramOther          ProgramType = "OTHER"
)

var allProgramTypes = []ProgramType{
	ProgramResume, ProgramCoverLetter, ProgramProfilePicture,
	ProgramSnapEnT, ProgramWTTanf, ProgramWIOA, ProgramOther,
}

func ParseProgramType(s string) (ProgramType, bool) {
	pt := ProgramType(s)
	if slices.Contains(allProgramTypes, pt) {
		return pt, true
	}
	return "", false
}

type DocumentStatus string

const (
	DocumentSubmitted         DocumentStatus = "SUBMITTED"
	DocumentApproved          DocumentStatus = "APPROVED"
	DocumentRejected          DocumentStatus = "REJECTED"
	DocumentResubmitRequested DocumentStatus = "RESUBMIT_REQUESTED"
)

// ProgramDocument rows are append-only per (user, program type): every upload
// inserts a new row and the latest one wins by creation time.
type ProgramDocument struct {
	ID              int64          `json:"id"`
	UserID          int64          `json:"userId"`
	ProgramType     ProgramType    `json:"programType"`
	Description     string         `json:"description"`
	FileID          string         `json:"fileId"` // relative path in the file store
	FileSizeBytes   int64          `json:"fileSizeBytes"`
	FileContentType string         `json:"fileContentType"`
	Status          DocumentStatus `json:"status"`
	CreatedAt       time.Time      `json:"createdAt"`
}
