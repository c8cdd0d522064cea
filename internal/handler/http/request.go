package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/leave"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/handler/http/response"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
)

type RequestHandler interface {
	ValidateVacation(w http.ResponseWriter, r *http.Request)
	CreateVacation(w http.ResponseWriter, r *http.Request)
	UpdateVacation(w http.ResponseWriter, r *http.Request)
	CreateLicense(w http.ResponseWriter, r *http.Request)
	CreateOvertime(w http.ResponseWriter, r *http.Request)
	CreateResignation(w http.ResponseWriter, r *http.Request)

	Get(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Reactivate(w http.ResponseWriter, r *http.Request)
}

type RequestHandlerImpl struct {
	requestService leave.RequestService
}

// ValidateVacation implements RequestHandler. A conflict is a normal
// answer here, reported with 200 and valid=false.
func (h *RequestHandlerImpl) ValidateVacation(w http.ResponseWriter, r *http.Request) {
	var req leave.ValidateVacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("ValidateVacation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.requestService.ValidateVacation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// CreateVacation implements RequestHandler.
func (h *RequestHandlerImpl) CreateVacation(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateVacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateVacation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.requestService.CreateVacation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Vacation request created successfully", created)
}

// UpdateVacation implements RequestHandler.
func (h *RequestHandlerImpl) UpdateVacation(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateVacationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateVacation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.requestService.UpdateVacation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Vacation request updated successfully", updated)
}

// CreateLicense implements RequestHandler.
func (h *RequestHandlerImpl) CreateLicense(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLicenseRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateLicense decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.requestService.CreateLicense(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "License request created successfully", created)
}

// CreateOvertime implements RequestHandler.
func (h *RequestHandlerImpl) CreateOvertime(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateOvertimeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateOvertime decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.requestService.CreateOvertime(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Overtime request created successfully", created)
}

// CreateResignation implements RequestHandler.
func (h *RequestHandlerImpl) CreateResignation(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateResignationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateResignation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.requestService.CreateResignation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Resignation created successfully", created)
}

// Get implements RequestHandler.
func (h *RequestHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	req, err := h.requestService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, req)
}

// Approve implements RequestHandler.
func (h *RequestHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	approved, err := h.requestService.Approve(r.Context(), leave.ApproveRequestRequest{
		ID:         chi.URLParam(r, "id"),
		ApprovedBy: identity.UserID,
	})
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request approved successfully", approved)
}

// Reject implements RequestHandler.
func (h *RequestHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	identity, err := jwt.IdentityFromContext(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	var req leave.RejectRequestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("RejectRequest decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")
	req.RejectedBy = identity.UserID

	rejected, err := h.requestService.Reject(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request rejected successfully", rejected)
}

// Deactivate implements RequestHandler.
func (h *RequestHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.requestService.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request deactivated successfully", nil)
}

// Reactivate implements RequestHandler.
func (h *RequestHandlerImpl) Reactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.requestService.Reactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Request reactivated successfully", nil)
}

func NewRequestHandler(requestService leave.RequestService) RequestHandler {
	return &RequestHandlerImpl{requestService: requestService}
}
