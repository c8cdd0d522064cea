package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/contract"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/leave"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type ContractHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Reactivate(w http.ResponseWriter, r *http.Request)
	BulkDeactivate(w http.ResponseWriter, r *http.Request)
	ListRequests(w http.ResponseWriter, r *http.Request)
}

type ContractHandlerImpl struct {
	contractService contract.ContractService
	requestService  leave.RequestService
}

// Create implements ContractHandler.
func (h *ContractHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req contract.CreateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateContract decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.contractService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Contract created successfully", created)
}

// List implements ContractHandler.
func (h *ContractHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := contract.ContractFilter{
		EmployeeID:      r.URL.Query().Get("employee_id"),
		IncludeInactive: queryBool(r, "include_inactive"),
	}

	contracts, err := h.contractService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, contracts)
}

// Get implements ContractHandler.
func (h *ContractHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	c, err := h.contractService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, c)
}

// Update implements ContractHandler.
func (h *ContractHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req contract.UpdateContractRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateContract decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.contractService.UpdateDates(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Contract updated successfully", updated)
}

// Deactivate implements ContractHandler.
func (h *ContractHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.contractService.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Contract deactivated successfully", nil)
}

// Reactivate implements ContractHandler.
func (h *ContractHandlerImpl) Reactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.contractService.Reactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Contract reactivated successfully", nil)
}

// BulkDeactivate implements ContractHandler.
func (h *ContractHandlerImpl) BulkDeactivate(w http.ResponseWriter, r *http.Request) {
	var req contract.BulkDeactivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkDeactivateContracts decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.contractService.BulkDeactivate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Contracts deactivated successfully", result)
}

// ListRequests implements ContractHandler.
func (h *ContractHandlerImpl) ListRequests(w http.ResponseWriter, r *http.Request) {
	requests, err := h.requestService.ListByContract(r.Context(), chi.URLParam(r, "id"), queryBool(r, "include_inactive"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, requests)
}

// queryBool reads a boolean query parameter; anything unparseable is false.
func queryBool(r *http.Request, key string) bool {
	v, _ := strconv.ParseBool(r.URL.Query().Get(key))
	return v
}

func NewContractHandler(contractService contract.ContractService, requestService leave.RequestService) ContractHandler {
	return &ContractHandlerImpl{
		contractService: contractService,
		requestService:  requestService,
	}
}
