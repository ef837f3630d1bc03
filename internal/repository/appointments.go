package repository

import (
	"github.com/wits-dev/workforce-services/backend/internal/domain"
)

// CreateAppointment relies on the appointments_user_id_slot_start_key
// constraint: two bookings for the same user and slot race at the store, not
// in process.
func (r *Repository) CreateAppointment(appt *domain.Appointment) error {
	query := `
		INSERT INTO appointments (user_id, appointment_type, slot_start, location, notes, status)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	args := []any{appt.UserID, appt.AppointmentType, appt.SlotStart, appt.Location, appt.Notes, appt.Status}
	if err := r.dbpool.QueryRowContext(ctx, query, args...).Scan(&appt.ID, &appt.CreatedAt); err != nil {
		return err
	}

	return nil
}

func (r *Repository) GetAppointmentByID(id int64) (*domain.Appointment, error) {
	query := `
		SELECT user_id, appointment_type, slot_start, location, notes, status, created_at
		FROM appointments WHERE id = $1
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	appt := &domain.Appointment{
		ID: id,
	}

	dst := []any{&appt.UserID, &appt.AppointmentType, &appt.SlotStart, &appt.Location, &appt.Notes, &appt.Status, &appt.CreatedAt}
	if err := r.dbpool.QueryRowContext(ctx, query, id).Scan(dst...); err != nil {
		return nil, err
	}

	return appt, nil
}

func (r *Repository) GetAppointmentsByUser(userID int64) ([]*domain.Appointment, error) {
	query := `
		SELECT id, appointment_type, slot_start, location, notes, status, created_at
		FROM appointments WHERE user_id = $1 ORDER BY slot_start
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	rows, err := r.dbpool.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	appts := make([]*domain.Appointment, 0)
	for rows.Next() {
		appt := &domain.Appointment{
			UserID: userID,
		}
		dst := []any{&appt.ID, &appt.AppointmentType, &appt.SlotStart, &appt.Location, &appt.Notes, &appt.Status, &appt.CreatedAt}
		if err := rows.Scan(dst...); err != nil {
			return nil, err
		}
		appts = append(appts, appt)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return appts, nil
}

func (r *Repository) UpdateAppointmentStatus(id int64, status domain.AppointmentStatus) error {
	query := `
		UPDATE appointments SET status = $1 WHERE id = $2
	`

	ctx, cancel := r.queryContext()
	defer cancel()

	_, err := r.dbpool.ExecContext(ctx, query, status, id)
	if err != nil {
		return err
	}

	return nil
}
