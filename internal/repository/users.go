package repository

import (
	"encoding/json"

	"github.com/wits-dev/workforce-services/backend/internal/domain"
)

// roles and skills live in jsonb columns; database/sql has no native array
// scanning, so both sides go through encoding/json.

func (r *Repository) CreateUser(user *domain.User) error {
	query := `
		INSERT INTO users (username, password_hash, first_name, last_name, email, phone_number, address, education, skills, veteran, roles)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id, is_active, created_at, version
	`

	rolesJSON, err := json.Marshal(user.Roles)
	if err != nil {
		return err
	}
	skillsJSON, err := json.Marshal(user.Skills)
	if err != nil {
		return err
	}

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{user.Username, user.PasswordHash, user.FirstName, user.LastName, user.Email, user.PhoneNumber, user.Address, user.Education, skillsJSON, user.Veteran, rolesJSON}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.ID, &user.IsActive, &user.CreatedAt, &user.Version); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetUserByID(id int64) (*domain.User, error) {
	query := `
		SELECT username, password_hash, first_name, last_name, email, phone_number, address, education, skills, veteran, roles, is_active, created_at, version
		FROM users WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	user := &domain.User{
		ID: id,
	}

	var skillsJSON, rolesJSON []byte
	dst := []any{&user.Username, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Email, &user.PhoneNumber, &user.Address, &user.Education, &skillsJSON, &user.Veteran, &rolesJSON, &user.IsActive, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}
	if err := unmarshalUserColumns(user, skillsJSON, rolesJSON); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetUserByUsername(username string) (*domain.User, error) {
	query := `
		SELECT id, password_hash, first_name, last_name, email, phone_number, address, education, skills, veteran, roles, is_active, created_at, version
		FROM users WHERE username = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	user := &domain.User{
		Username: username,
	}

	var skillsJSON, rolesJSON []byte
	dst := []any{&user.ID, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Email, &user.PhoneNumber, &user.Address, &user.Education, &skillsJSON, &user.Veteran, &rolesJSON, &user.IsActive, &user.CreatedAt, &user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, username).Scan(dst...); err != nil {
		return nil, err
	}
	if err := unmarshalUserColumns(user, skillsJSON, rolesJSON); err != nil {
		return nil, err
	}

	return user, nil
}

func (r *Repository) GetAllUsers() ([]*domain.User, error) {
	query := `
		SELECT id, username, password_hash, first_name, last_name, email, phone_number, address, education, skills, veteran, roles, is_active, created_at, version
		FROM users ORDER BY id
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0)
	for rows.Next() {
		user := &domain.User{}
		var skillsJSON, rolesJSON []byte
		dst := []any{&user.ID, &user.Username, &user.PasswordHash, &user.FirstName, &user.LastName, &user.Email, &user.PhoneNumber, &user.Address, &user.Education, &skillsJSON, &user.Veteran, &rolesJSON, &user.IsActive, &user.CreatedAt, &user.Version}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		if err := unmarshalUserColumns(user, skillsJSON, rolesJSON); err != nil {
			return nil, err
		}
		users = append(users, user)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return users, nil
}

func (r *Repository) UpdateUser(user *domain.User) error {
	query := `
		UPDATE users
		SET
			password_hash = $1,
			first_name = $2,
			last_name = $3,
			email = $4,
			phone_number = $5,
			address = $6,
			education = $7,
			skills = $8,
			veteran = $9,
			roles = $10,
			is_active = $11,
			version = version + 1
		WHERE id = $12 AND version = $13
		RETURNING username, created_at, version
	`

	rolesJSON, err := json.Marshal(user.Roles)
	if err != nil {
		return err
	}
	skillsJSON, err := json.Marshal(user.Skills)
	if err != nil {
		return err
	}

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{user.PasswordHash, user.FirstName, user.LastName, user.Email, user.PhoneNumber, user.Address, user.Education, skillsJSON, user.Veteran, rolesJSON, user.IsActive, user.ID, user.Version}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&user.Username, &user.CreatedAt, &user.Version); err != nil {
		return err
	}

	return nil
}

func unmarshalUserColumns(user *domain.User, skillsJSON, rolesJSON []byte) error {
	if len(skillsJSON) > 0 {
		if err := json.Unmarshal(skillsJSON, &user.Skills); err != nil {
			return err
		}
	}
	if len(rolesJSON) > 0 {
		if err := json.Unmarshal(rolesJSON, &user.Roles); err != nil {
			return err
		}
	}
	return nil
}
