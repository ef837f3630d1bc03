package repository

import (
	"github.com/wits-dev/workforce-services/backend/internal/domain"
)

func (r *Repository) CreateInterview(interview *domain.Interview) error {
	query := `
		INSERT INTO interviews (application_id, job_posting_id, employer_id, applicant_id, scheduled_at, location, interview_type, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{interview.ApplicationID, interview.JobPostingID, interview.EmployerID, interview.ApplicantID, interview.ScheduledAt, interview.Location, interview.InterviewType, interview.Notes, interview.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&interview.ID, &interview.CreatedAt); err != nil {
		return err
	}

	return nil
}

// GetInterviewByApplicationAndStatus returns the most recent interview in the
// given status for an application. "At most one SCHEDULED interview" is a
// soft invariant maintained by the scheduling path, so newest-first keeps the
// lookup deterministic even if history accumulates.
func (r *Repository) GetInterviewByApplicationAndStatus(applicationID int64, status domain.InterviewStatus) (*domain.Interview, error) {
	query := `
		SELECT id, job_posting_id, employer_id, applicant_id, scheduled_at, location, interview_type, notes, created_at
		FROM interviews WHERE application_id = $1 AND status = $2
		ORDER BY created_at DESC, id DESC LIMIT 1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	interview := &domain.Interview{
		ApplicationID: applicationID,
		Status:        status,
	}

	dst := []any{&interview.ID, &interview.JobPostingID, &interview.EmployerID, &interview.ApplicantID, &interview.ScheduledAt, &interview.Location, &interview.InterviewType, &interview.Notes, &interview.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, applicationID, status).Scan(dst...); err != nil {
		return nil, err
	}

	return interview, nil
}

func (r *Repository) GetInterviewsByApplication(applicationID int64) ([]*domain.Interview, error) {
	query := `
		SELECT id, job_posting_id, employer_id, applicant_id, scheduled_at, location, interview_type, notes, status, created_at
		FROM interviews WHERE application_id = $1 ORDER BY created_at DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, applicationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	interviews := make([]*domain.Interview, 0)
	for rows.Next() {
		interview := &domain.Interview{
			ApplicationID: applicationID,
		}
		dst := []any{&interview.ID, &interview.JobPostingID, &interview.EmployerID, &interview.ApplicantID, &interview.ScheduledAt, &interview.Location, &interview.InterviewType, &interview.Notes, &interview.Status, &interview.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		interviews = append(interviews, interview)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return interviews, nil
}

// MarkInterviewsSuperseded moves an application's still-SCHEDULED interviews
// to CANCELLED, sparing the freshly inserted replacement identified by
// keepID. Runs after the replacement insert so a failed insert never cancels
// the interview that is still live.
func (r *Repository) MarkInterviewsSuperseded(applicationID int64, keepID int64) error {
	query := `
		UPDATE interviews SET status = $1 WHERE application_id = $2 AND status = $3 AND id <> $4
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, domain.InterviewCancelled, applicationID, domain.InterviewScheduled, keepID)
	if err != nil {
		return err
	}

	return nil
}
