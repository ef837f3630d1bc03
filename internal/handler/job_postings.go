package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"path"
	"strings"
	"time"

	"github.com/wits-dev/workforce-services/backend/internal/domain"
)

func (h *Handler) GetAllJobPostings(w http.ResponseWriter, r *http.Request) {
	postings, err := h.repository.GetAllJobPostings()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "job postings retrieved", postings)
}

func (h *Handler) CreateJobPosting(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)

	var req struct {
		Title            string   `json:"title" validate:"required"`
		CompanyName      string   `json:"companyName" validate:"required"`
		Location         string   `json:"location" validate:"required"`
		JobType          string   `json:"jobType" validate:"required,oneof=FULL_TIME PART_TIME CONTRACT TEMPORARY INTERN APPRENTICESHIP"`
		Description      string   `json:"description" validate:"required"`
		MinSalary        float64  `json:"minSalary" validate:"gte=0"`
		MaxSalary        float64  `json:"maxSalary" validate:"gtefield=MinSalary"`
		RequiredSkills   []string `json:"requiredSkills"`
		AnonymousPosting bool     `json:"anonymousPosting"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	posting := &domain.JobPosting{
		EmployerID:       principal.UserID,
		Title:            req.Title,
		CompanyName:      req.CompanyName,
		Location:         req.Location,
		JobType:          domain.JobType(req.JobType),
		Description:      req.Description,
		MinSalary:        req.MinSalary,
		MaxSalary:        req.MaxSalary,
		RequiredSkills:   req.RequiredSkills,
		Status:           domain.JobStatusActive,
		AnonymousPosting: req.AnonymousPosting,
		PostedDate:       time.Now(),
	}

	if err := h.repository.CreateJobPosting(posting); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "job posting created", posting)
}

func (h *Handler) GetMyJobPostings(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)

	postings, err := h.repository.GetJobPostingsByEmployer(principal.UserID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "job postings retrieved", postings)
}

func (h *Handler) GetJobPosting(w http.ResponseWriter, r *http.Request) {
	posting := r.Context().Value(JobPostingCtx).(*domain.JobPosting)
	h.successResponse(w, r, "job posting retrieved", posting)
}

func (h *Handler) UpdateJobPosting(w http.ResponseWriter, r *http.Request) {
	posting := r.Context().Value(JobPostingCtx).(*domain.JobPosting)

	var req struct {
		Title            *string  `json:"title" validate:"omitempty,min=1"`
		CompanyName      *string  `json:"companyName" validate:"omitempty,min=1"`
		Location         *string  `json:"location" validate:"omitempty,min=1"`
		JobType          *string  `json:"jobType" validate:"omitempty,oneof=FULL_TIME PART_TIME CONTRACT TEMPORARY INTERN APPRENTICESHIP"`
		Description      *string  `json:"description" validate:"omitempty,min=1"`
		MinSalary        *float64 `json:"minSalary" validate:"omitempty,gte=0"`
		MaxSalary        *float64 `json:"maxSalary" validate:"omitempty,gte=0"`
		RequiredSkills   []string `json:"requiredSkills"`
		Status           *string  `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE HOLD"`
		AnonymousPosting *bool    `json:"anonymousPosting"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Title != nil {
		posting.Title = *req.Title
	}
	if req.CompanyName != nil {
		posting.CompanyName = *req.CompanyName
	}
	if req.Location != nil {
		posting.Location = *req.Location
	}
	if req.JobType != nil {
		posting.JobType = domain.JobType(*req.JobType)
	}
	if req.Description != nil {
		posting.Description = *req.Description
	}
	if req.MinSalary != nil {
		posting.MinSalary = *req.MinSalary
	}
	if req.MaxSalary != nil {
		posting.MaxSalary = *req.MaxSalary
	}
	if req.RequiredSkills != nil {
		posting.RequiredSkills = req.RequiredSkills
	}
	if req.Status != nil {
		posting.Status = domain.JobStatus(*req.Status)
	}
	if req.AnonymousPosting != nil {
		posting.AnonymousPosting = *req.AnonymousPosting
	}

	if posting.MaxSalary < posting.MinSalary {
		h.badRequest(w, r, errors.New("maxSalary must not be lower than minSalary"))
		return
	}

	if err := h.repository.UpdateJobPosting(posting); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "job posting was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "job posting updated", posting)
}

func (h *Handler) DeleteJobPosting(w http.ResponseWriter, r *http.Request) {
	posting := r.Context().Value(JobPostingCtx).(*domain.JobPosting)

	if err := h.repository.DeleteJobPosting(posting.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "job posting not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "job posting deleted", nil)
}

func (h *Handler) GetApplicationsForPosting(w http.ResponseWriter, r *http.Request) {
	posting := r.Context().Value(JobPostingCtx).(*domain.JobPosting)

	applications, err := h.repository.GetJobApplicationsByPosting(posting.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "applications retrieved", applications)
}

// MatchPostingsForMyResume ranks job postings against the caller's most
// recent resume upload.
func (h *Handler) MatchPostingsForMyResume(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)

	doc, err := h.repository.GetLatestProgramDocument(principal.UserID, domain.ProgramResume)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.badRequest(w, r, errors.New("upload a resume before requesting matches"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	file, err := h.files.Open(doc.FileID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	defer file.Close()

	matches, err := h.matcher.ResumeToPostings(r.Context(), path.Base(doc.FileID), file)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "matches retrieved", matches)
}

// MatchResumesForPosting ranks uploaded resumes against one job posting,
// sending the posting description as the match document.
func (h *Handler) MatchResumesForPosting(w http.ResponseWriter, r *http.Request) {
	posting := r.Context().Value(JobPostingCtx).(*domain.JobPosting)

	description := posting.Title + "\n" + posting.Description
	matches, err := h.matcher.PostingToResumes(r.Context(), "posting.txt", strings.NewReader(description))
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "matches retrieved", matches)
}
