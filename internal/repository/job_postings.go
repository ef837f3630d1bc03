package repository

import (
	"encoding/json"

	"github.com/wits-dev/workforce-services/backend/internal/domain"
)

func (r *Repository) CreateJobPosting(posting *domain.JobPosting) error {
	query := `
		INSERT INTO job_postings (employer_id, title, company_name, location, job_type, description, min_salary, max_salary, required_skills, status, anonymous_posting)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, posted_date, version
	`

	skillsJSON, err := json.Marshal(posting.RequiredSkills)
	if err != nil {
		return err
	}

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{posting.EmployerID, posting.Title, posting.CompanyName, posting.Location, posting.JobType, posting.Description, posting.MinSalary, posting.MaxSalary, skillsJSON, posting.Status, posting.AnonymousPosting}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&posting.ID, &posting.PostedDate, &posting.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetJobPostingByID(id int64) (*domain.JobPosting, error) {
	query := `
		SELECT employer_id, title, company_name, location, job_type, description, min_salary, max_salary, required_skills, status, anonymous_posting, posted_date, version
		FROM job_postings WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	posting := &domain.JobPosting{
		ID: id,
	}

	var skillsJSON []byte
	dst := []any{&posting.EmployerID, &posting.Title, &posting.CompanyName, &posting.Location, &posting.JobType, &posting.Description, &posting.MinSalary, &posting.MaxSalary, &skillsJSON, &posting.Status, &posting.AnonymousPosting, &posting.PostedDate, &posting.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if len(skillsJSON) > 0 {
		if err := json.Unmarshal(skillsJSON, &posting.RequiredSkills); err != nil {
			return nil, err
		}
	}

	return posting, nil
}

func (r *Repository) GetAllJobPostings() ([]*domain.JobPosting, error) {
	query := `
		SELECT id, employer_id, title, company_name, location, job_type, description, min_salary, max_salary, required_skills, status, anonymous_posting, posted_date, version
		FROM job_postings ORDER BY posted_date DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	postings := make([]*domain.JobPosting, 0)
	for rows.Next() {
		posting := &domain.JobPosting{}
		var skillsJSON []byte
		dst := []any{&posting.ID, &posting.EmployerID, &posting.Title, &posting.CompanyName, &posting.Location, &posting.JobType, &posting.Description, &posting.MinSalary, &posting.MaxSalary, &skillsJSON, &posting.Status, &posting.AnonymousPosting, &posting.PostedDate, &posting.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if len(skillsJSON) > 0 {
			if err := json.Unmarshal(skillsJSON, &posting.RequiredSkills); err != nil {
				return nil, err
			}
		}
		postings = append(postings, posting)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return postings, nil
}

func (r *Repository) GetJobPostingsByEmployer(employerID int64) ([]*domain.JobPosting, error) {
	query := `
		SELECT id, title, company_name, location, job_type, description, min_salary, max_salary, required_skills, status, anonymous_posting, posted_date, version
		FROM job_postings WHERE employer_id = $1 ORDER BY posted_date DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, employerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	postings := make([]*domain.JobPosting, 0)
	for rows.Next() {
		posting := &domain.JobPosting{
			EmployerID: employerID,
		}
		var skillsJSON []byte
		dst := []any{&posting.ID, &posting.Title, &posting.CompanyName, &posting.Location, &posting.JobType, &posting.Description, &posting.MinSalary, &posting.MaxSalary, &skillsJSON, &posting.Status, &posting.AnonymousPosting, &posting.PostedDate, &posting.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if len(skillsJSON) > 0 {
			if err := json.Unmarshal(skillsJSON, &posting.RequiredSkills); err != nil {
				return nil, err
			}
		}
		postings = append(postings, posting)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return postings, nil
}

func (r *Repository) UpdateJobPosting(posting *domain.JobPosting) error {
	query := `
		UPDATE job_postings
		SET
			title = $1,
			company_name = $2,
			location = $3,
			job_type = $4,
			description = $5,
			min_salary = $6,
			max_salary = $7,
			required_skills = $8,
			status = $9,
			anonymous_posting = $10,
			version = version + 1
		WHERE id = $11 AND version = $12
		RETURNING posted_date, version
	`

	skillsJSON, err := json.Marshal(posting.RequiredSkills)
	if err != nil {
		return err
	}

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{posting.Title, posting.CompanyName, posting.Location, posting.JobType, posting.Description, posting.MinSalary, posting.MaxSalary, skillsJSON, posting.Status, posting.AnonymousPosting, posting.ID, posting.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&posting.PostedDate, &posting.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteJobPosting(id int64) error {
	query := `
		DELETE FROM job_postings WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
