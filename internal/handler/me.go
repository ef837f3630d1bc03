package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/wits-dev/workforce-services/backend/internal/domain"
	"golang.org/x/crypto/bcrypt"
)

func (h *Handler) GetMyInfo(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(MyInfoCtx).(*domain.User)
	h.successResponse(w, r, "profile retrieved", user)
}

func (h *Handler) UpdateMyPassword(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		OldPassword string `json:"oldPassword" validate:"required"`
		NewPassword string `json:"newPassword" validate:"required,min=8"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.OldPassword)); err != nil {
		switch {
		case errors.Is(err, bcrypt.ErrMismatchedHashAndPassword):
			h.badRequest(w, r, errors.New("current password is incorrect"))
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.NewPassword), bcrypt.DefaultCost)
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}
	user.PasswordHash = string(hashedPassword)

	if err := h.repository.UpdateUser(user); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "profile was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "password updated", nil)
}

func (h *Handler) UpdateMyProfile(w http.ResponseWriter, r *http.Request) {
	user := r.Context().Value(MyInfoCtx).(*domain.User)

	var req struct {
		FirstName   *string  `json:"firstName" validate:"omitempty,min=1"`
		LastName    *string  `json:"lastName" validate:"omitempty,min=1"`
		Email       *string  `json:"email" validate:"omitempty,email"`
		PhoneNumber *string  `json:"phoneNumber"`
		Address     *string  `json:"address"`
		Education   *string  `json:"education"`
		Skills      []string `json:"skills"`
		Veteran     *bool    `json:"veteran"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.FirstName != nil {
		user.FirstName = *req.FirstName
	}
	if req.LastName != nil {
		user.LastName = *req.LastName
	}
	if req.Email != nil {
		user.Email = *req.Email
	}
	if req.PhoneNumber != nil {
		user.PhoneNumber = *req.PhoneNumber
	}
	if req.Address != nil {
		user.Address = *req.Address
	}
	if req.Education != nil {
		user.Education = *req.Education
	}
	if req.Skills != nil {
		user.Skills = req.Skills
	}
	if req.Veteran != nil {
		user.Veteran = *req.Veteran
	}

	if err := h.repository.UpdateUser(user); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "profile was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "profile updated", user)
}
