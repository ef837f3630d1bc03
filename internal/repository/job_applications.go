package repository

import (
	"github.com/wits-dev/workforce-services/backend/internal/domain"
)

// CreateJobApplication inserts a new application. The unique
// (user_id, job_posting_id) pair is enforced by the store; a second apply for
// the same pair fails with the job_applications_user_id_job_posting_id_key
// constraint, which the handler maps to a conflict.
func (r *Repository) CreateJobApplication(app *domain.JobApplication) error {
	query := `
		INSERT INTO job_applications (user_id, job_posting_id, application_date, status, notes)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{app.UserID, app.JobPostingID, app.ApplicationDate, app.Status, app.Notes}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&app.ID, &app.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetJobApplicationByID(id int64) (*domain.JobApplication, error) {
	query := `
		SELECT user_id, job_posting_id, application_date, status, COALESCE(reject_reason, ''), notes, version
		FROM job_applications WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	app := &domain.JobApplication{
		ID: id,
	}

	dst := []any{&app.UserID, &app.JobPostingID, &app.ApplicationDate, &app.Status, &app.RejectReason, &app.Notes, &app.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return app, nil
}

func (r *Repository) GetJobApplicationsByUser(userID int64) ([]*domain.JobApplication, error) {
	query := `
		SELECT id, job_posting_id, application_date, status, COALESCE(reject_reason, ''), notes, version
		FROM job_applications WHERE user_id = $1 ORDER BY application_date DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*domain.JobApplication, 0)
	for rows.Next() {
		app := &domain.JobApplication{
			UserID: userID,
		}
		dst := []any{&app.ID, &app.JobPostingID, &app.ApplicationDate, &app.Status, &app.RejectReason, &app.Notes, &app.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *Repository) GetJobApplicationsByPosting(jobPostingID int64) ([]*domain.JobApplication, error) {
	query := `
		SELECT id, user_id, application_date, status, COALESCE(reject_reason, ''), notes, version
		FROM job_applications WHERE job_posting_id = $1 ORDER BY application_date DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, jobPostingID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	apps := make([]*domain.JobApplication, 0)
	for rows.Next() {
		app := &domain.JobApplication{
			JobPostingID: jobPostingID,
		}
		dst := []any{&app.ID, &app.UserID, &app.ApplicationDate, &app.Status, &app.RejectReason, &app.Notes, &app.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		apps = append(apps, app)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return apps, nil
}

func (r *Repository) UpdateJobApplication(app *domain.JobApplication) error {
	query := `
		UPDATE job_applications
		SET
			status = $1,
			reject_reason = NULLIF($2, ''),
			notes = $3,
			version = version + 1
		WHERE id = $4 AND version = $5
		RETURNING version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{app.Status, app.RejectReason, app.Notes, app.ID, app.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&app.Version); err != nil {
		return err
	}

	return nil
}
