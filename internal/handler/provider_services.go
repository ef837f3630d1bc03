package handler

import (
	"database/sql"
	"errors"
	"net/http"

	"github.com/wits-dev/workforce-services/backend/internal/domain"
)

func (h *Handler) GetAllProviderServices(w http.ResponseWriter, r *http.Request) {
	services, err := h.repository.GetAllProviderServices()
	if err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "provider services retrieved", services)
}

func (h *Handler) CreateProviderService(w http.ResponseWriter, r *http.Request) {
	principal := principalFrom(r)

	var req struct {
		Name        string `json:"name" validate:"required"`
		Category    string `json:"category" validate:"required"`
		Description string `json:"description" validate:"required"`
		Location    string `json:"location" validate:"required"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	service := &domain.ProviderService{
		ProviderID:  principal.UserID,
		Name:        req.Name,
		Category:    req.Category,
		Description: req.Description,
		Location:    req.Location,
		Status:      domain.ProviderServiceActive,
	}

	if err := h.repository.CreateProviderService(service); err != nil {
		h.internalServerError(w, r, err)
		return
	}

	h.successResponse(w, r, "provider service created", service)
}

func (h *Handler) GetProviderService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(ProviderServiceCtx).(*domain.ProviderService)
	h.successResponse(w, r, "provider service retrieved", service)
}

func (h *Handler) UpdateProviderService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(ProviderServiceCtx).(*domain.ProviderService)

	var req struct {
		Name        *string `json:"name" validate:"omitempty,min=1"`
		Category    *string `json:"category" validate:"omitempty,min=1"`
		Description *string `json:"description" validate:"omitempty,min=1"`
		Location    *string `json:"location" validate:"omitempty,min=1"`
		Status      *string `json:"status" validate:"omitempty,oneof=ACTIVE INACTIVE"`
	}

	if err := h.readJSON(r, &req); err != nil {
		h.badRequest(w, r, err)
		return
	}
	if err := h.validate.Struct(req); err != nil {
		h.badRequest(w, r, err)
		return
	}

	if req.Name != nil {
		service.Name = *req.Name
	}
	if req.Category != nil {
		service.Category = *req.Category
	}
	if req.Description != nil {
		service.Description = *req.Description
	}
	if req.Location != nil {
		service.Location = *req.Location
	}
	if req.Status != nil {
		service.Status = domain.ProviderServiceStatus(*req.Status)
	}

	if err := h.repository.UpdateProviderService(service); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.conflict(w, r, "provider service was modified concurrently, please retry")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "provider service updated", service)
}

func (h *Handler) DeleteProviderService(w http.ResponseWriter, r *http.Request) {
	service := r.Context().Value(ProviderServiceCtx).(*domain.ProviderService)

	if err := h.repository.DeleteProviderService(service.ID); err != nil {
		switch {
		case errors.Is(err, sql.ErrNoRows):
			h.notFound(w, r, "provider service not found")
		default:
			h.internalServerError(w, r, err)
		}
		return
	}

	h.successResponse(w, r, "provider service deleted", nil)
}
