package repository

import (
	"github.com/wits-dev/workforce-services/backend/internal/domain"
)

func (r *Repository) CreateProviderService(svc *domain.ProviderService) error {
	query := `
		INSERT INTO provider_services (provider_id, name, category, description, location, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{svc.ProviderID, svc.Name, svc.Category, svc.Description, svc.Location, svc.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&svc.ID, &svc.CreatedAt, &svc.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetProviderServiceByID(id int64) (*domain.ProviderService, error) {
	query := `
		SELECT provider_id, name, category, description, location, status, created_at, version
		FROM provider_services WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	svc := &domain.ProviderService{
		ID: id,
	}

	dst := []any{&svc.ProviderID, &svc.Name, &svc.Category, &svc.Description, &svc.Location, &svc.Status, &svc.CreatedAt, &svc.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return svc, nil
}

func (r *Repository) GetAllProviderServices() ([]*domain.ProviderService, error) {
	query := `
		SELECT id, provider_id, name, category, description, location, status, created_at, version
		FROM provider_services ORDER BY created_at DESC
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	services := make([]*domain.ProviderService, 0)
	for rows.Next() {
		svc := &domain.ProviderService{}
		dst := []any{&svc.ID, &svc.ProviderID, &svc.Name, &svc.Category, &svc.Description, &svc.Location, &svc.Status, &svc.CreatedAt, &svc.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		services = append(services, svc)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return services, nil
}

func (r *Repository) UpdateProviderService(svc *domain.ProviderService) error {
	query := `
		UPDATE provider_services
		SET
			name = $1,
			category = $2,
			description = $3,
			location = $4,
			status = $5,
			version = version + 1
		WHERE id = $6 AND version = $7
		RETURNING created_at, version
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{svc.Name, svc.Category, svc.Description, svc.Location, svc.Status, svc.ID, svc.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&svc.CreatedAt, &svc.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) DeleteProviderService(id int64) error {
	query := `
		DELETE FROM provider_services WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}

	return nil
}
