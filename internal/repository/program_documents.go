package repository

import (
	"github.com/wits-dev/workforce-services/backend/internal/domain"
)

// CreateProgramDocument always inserts: uploads never update an existing row,
// so the full history per (user, program type) stays queryable.
func (r *Repository) CreateProgramDocument(doc *domain.ProgramDocument) error {
	query := `
		INSERT INTO program_documents (user_id, program_type, description, file_id, file_size_bytes, file_content_type, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{doc.UserID, doc.ProgramType, doc.Description, doc.FileID, doc.FileSizeBytes, doc.FileContentType, doc.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&doc.ID, &doc.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetProgramDocumentByID(id int64) (*domain.ProgramDocument, error) {
	query := `
		SELECT user_id, program_type, description, file_id, file_size_bytes, file_content_type, status, created_at
		FROM program_documents WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	doc := &domain.ProgramDocument{
		ID: id,
	}

	dst := []any{&doc.UserID, &doc.ProgramType, &doc.Description, &doc.FileID, &doc.FileSizeBytes, &doc.FileContentType, &doc.Status, &doc.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return doc, nil
}

// GetLatestProgramDocument selects the newest upload for the key. The id
// tiebreak keeps the choice stable when two uploads land in the same instant.
func (r *Repository) GetLatestProgramDocument(userID int64, programType domain.ProgramType) (*domain.ProgramDocument, error) {
	query := `
		SELECT id, description, file_id, file_size_bytes, file_content_type, status, created_at
		FROM program_documents WHERE user_id = $1 AND program_type = $2
		ORDER BY created_at DESC, id DESC LIMIT 1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	doc := &domain.ProgramDocument{
		UserID:      userID,
		ProgramType: programType,
	}

	dst := []any{&doc.ID, &doc.Description, &doc.FileID, &doc.FileSizeBytes, &doc.FileContentType, &doc.Status, &doc.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, userID, programType).Scan(dst...); err != nil {
		return nil, err
	}

	return doc, nil
}

func (r *Repository) GetProgramDocumentsByUser(userID int64) ([]*domain.ProgramDocument, error) {
	query := `
		SELECT id, program_type, description, file_id, file_size_bytes, file_content_type, status, created_at
		FROM program_documents WHERE user_id = $1 ORDER BY created_at DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	docs := make([]*domain.ProgramDocument, 0)
	for rows.Next() {
		doc := &domain.ProgramDocument{
			UserID: userID,
		}
		dst := []any{&doc.ID, &doc.ProgramType, &doc.Description, &doc.FileID, &doc.FileSizeBytes, &doc.FileContentType, &doc.Status, &doc.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return docs, nil
}

func (r *Repository) DeleteProgramDocument(id int64) error {
	query := `
		DELETE FROM program_documents WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
