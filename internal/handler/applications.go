package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"time"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wits-dev/workforce-services/backend/internal/domain"
	"github.com/wits-dev/workforce-services/backend/internal/utils"
)

func (h *Handler) GetApplicationStatuses(w http.ResponseWriter, r *http.Request) {
	h.successResponse(w, r, "application statuses retrieved", domain.AllApplicationStatuses)
}

func (h *Handler) Apply(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)

	var req struct {
		JobPostingID int64  `json:"jobPostingId" validate:"required"`
		Notes        string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if _, err := h.repository.GetJobPostingByID(req.JobPostingID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "job posting not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	application := &domain.JobApplication{
		UserID:          principal.UserID,
		JobPostingID:    req.JobPostingID,
		ApplicationDate: time.Now(),
		Status:          domain.ApplicationReceived,
		Notes:           req.Notes,
	}

	if err := h.repository.CreateJobApplication(application); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "job_applications_user_id_job_posting_id_key":
			h.conflict(w, r, "you have already applied to this job posting")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "application submitted", application)
}

func (h *Handler) GetMyApplications(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)

	applications, err := h.repository.GetJobApplicationsByUser(principal.UserID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "applications retrieved", applications)
}

func (h *Handler) UpdateApplicationStatus(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	application := r.Context().Value(ApplicationCtx).(*domain.JobApplication)

	var req struct {
		Status       string `json:"status" validate:"required"`
		RejectReason string `json:"rejectReason"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if ok, err := h.canManageApplication(principal, application); err != nil {
		h.internalServerError(w, r, err)
		return
	} else if !ok {
		h.forbidden(w, r)
		return
	}

	if err := application.ChangeStatus(domain.JobApplicationStatus(req.Status), req.RejectReason); err != nil {
		var statusErr *domain.StatusChangeError
		switch {
		case errors.As(err, &statusErr):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.UpdateJobApplication(application); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "application was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "application status updated", application)
}

func (h *Handler) WithdrawApplication(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	application := r.Context().Value(ApplicationCtx).(*domain.JobApplication)

	if application.UserID != principal.UserID {
		h.forbidden(w, r)
		return
	}

	if err := application.Withdraw(); err != nil {
		var statusErr *domain.StatusChangeError
		switch {
		case errors.As(err, &statusErr):
			h.badRequest(w, r, err)
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if err := h.repository.UpdateJobApplication(application); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "application was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "application withdrawn", application)
}

// ScheduleInterview creates the interview record first and only then moves
// the application to INTERVIEW_SCHEDULED, so a failed insert never leaves an
// application claiming an interview that does not exist.
func (h *Handler) ScheduleInterview(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	application := r.Context().Value(ApplicationCtx).(*domain.JobApplication)

	var req struct {
		JobPostingID  int64  `json:"jobPostingId" validate:"required"`
		ScheduledAt   string `json:"scheduledAt" validate:"required"`
		Location      string `json:"location" validate:"required"`
		InterviewType string `json:"interviewType" validate:"required,oneof=IN_PERSON VIDEO_CALL PHONE"`
		Notes         string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.JobPostingID != application.JobPostingID {
		h.badRequest(w, r, errors.New("jobPostingId does not match this application"))
		return
	}

	posting, err := h.repository.GetJobPostingByID(application.JobPostingID)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "job posting not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if !principal.HasAnyRole(domain.RoleStaff) && posting.EmployerID != principal.UserID {
		h.forbidden(w, r)
		return
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		h.badRequest(w, r, errors.New("scheduledAt must be an RFC 3339 timestamp"))
		return
	}
	if err := utils.ValidateFutureTime(scheduledAt, "scheduledAt"); err != nil {
		h.badRequest(w, r, err)
		return
	}

	interview := &domain.Interview{
		ApplicationID: application.ID,
		JobPostingID:  application.JobPostingID,
		EmployerID:    posting.EmployerID,
		ApplicantID:   application.UserID,
		ScheduledAt:   scheduledAt,
		Location:      req.Location,
		InterviewType: domain.InterviewType(req.InterviewType),
		Notes:         req.Notes,
		Status:        domain.InterviewScheduled,
	}

	if err := h.repository.CreateInterview(interview); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	// an application carries at most one live interview; older SCHEDULED rows
	// are cancelled only once the replacement exists, so a failed insert
	// leaves the previous interview live. Lookups order by creation time, so
	// the new row wins during the brief overlap.
	if err := h.repository.MarkInterviewsSuperseded(application.ID, interview.ID); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	if err := application.ChangeStatus(domain.ApplicationInterviewScheduled, ""); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	if err := h.repository.UpdateJobApplication(application); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "interview scheduled", interview)
}

func (h *Handler) GetInterview(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	application := r.Context().Value(ApplicationCtx).(*domain.JobApplication)

	interview, err := h.repository.GetInterviewByApplicationAndStatus(application.ID, domain.InterviewScheduled)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "no scheduled interview for this application")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	isParticipant := principal.UserID == interview.ApplicantID || principal.UserID == interview.EmployerID
	if !principal.HasAnyRole(domain.RoleStaff) && !isParticipant {
		h.forbidden(w, r)
		return
	}

	h.successResponse(w, r, "interview retrieved", interview)
}

// GetInterviewHistory lists every interview ever created for an application,
// newest first, including superseded ones.
func (h *Handler) GetInterviewHistory(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)
	application := r.Context().Value(ApplicationCtx).(*domain.JobApplication)

	if application.UserID != principal.UserID {
		if ok, err := h.canManageApplication(principal, application); err != nil {
			h.internalServerError(w, r, err)
			return
		} else if !ok {
			h.forbidden(w, r)
			return
		}
	}

	interviews, err := h.repository.GetInterviewsByApplication(application.ID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "interviews retrieved", interviews)
}

// canManageApplication reports whether the principal may act on an
// application from the hiring side: staff always, an employer only for
// applications to their own postings.
func (h *Handler) canManageApplication(principal *domain.Principal, application *domain.JobApplication) (bool, error) {
	if principal.HasAnyRole(domain.RoleStaff) {
		return true, nil
	}

	posting, err := h.repository.GetJobPostingByID(application.JobPostingID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, err
	}

	return posting.EmployerID == principal.UserID, nil
}
