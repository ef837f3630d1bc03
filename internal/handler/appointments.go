package handler

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/wits-dev/workforce-services/backend/internal/domain"
	"github.com/wits-dev/workforce-services/backend/internal/utils"
)

func (h *Handler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)

	var req struct {
		AppointmentType string `json:"appointmentType" validate:"required,oneof=CAREER_COUNSELING SKILLS_ASSESSMENT JOB_FAIR WORKSHOP OTHER"`
		SlotStart       string `json:"slotStart" validate:"required"`
		Location        string `json:"location" validate:"required"`
		Notes           string `json:"notes"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	slotStart, err := time.Parse(time.RFC3339, req.SlotStart)
	if err != nil {
		h.badRequest(w, r, errors.New("slotStart must be an RFC 3339 timestamp"))
		return
	}
	if err := utils.ValidateFutureTime(slotStart, "slotStart"); err != nil {
		h.badRequest(w, r, err)
		return
	}

	appointment := &domain.Appointment{
		UserID:          principal.UserID,
		AppointmentType: domain.AppointmentType(req.AppointmentType),
		SlotStart:       slotStart,
		Location:        req.Location,
		Notes:           req.Notes,
		Status:          domain.AppointmentScheduled,
	}

	if err := h.repository.CreateAppointment(appointment); err != nil {
		var pgErr *pgconn.PgError
		switch {
		case errors.As(err, &pgErr) && pgErr.ConstraintName == "appointments_user_id_slot_start_key":
			h.conflict(w, r, "you already have an appointment at this time")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "appointment booked", appointment)
}

func (h *Handler) GetMyAppointments(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)

	appointments, err := h.repository.GetAppointmentsByUser(principal.UserID)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "appointments retrieved", appointments)
}

func (h *Handler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		h.badRequest(w, r, errors.New("invalid appointment id"))
		return
	}

	appointment, err := h.repository.GetAppointmentByID(id)
	if err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "appointment not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	if appointment.UserID != principal.UserID && !principal.HasAnyRole(domain.RoleStaff) {
		h.forbidden(w, r)
		return
	}

	if appointment.Status != domain.AppointmentScheduled {
		h.badRequest(w, r, errors.New("only scheduled appointments can be cancelled"))
		return
	}

	if err := h.repository.UpdateAppointmentStatus(appointment.ID, domain.AppointmentCancelled); err != nil {
		h.internalServerError(w, r, err)
		return
	}
	appointment.Status = domain.AppointmentCancelled

	h.successResponse(w, r, "appointment cancelled", appointment)
}
