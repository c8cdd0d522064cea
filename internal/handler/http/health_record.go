package http

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/domain/healthrecord"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

const defaultExportWindowDays = 30

type HealthRecordHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Deactivate(w http.ResponseWriter, r *http.Request)
	Reactivate(w http.ResponseWriter, r *http.Request)
	BulkDeactivate(w http.ResponseWriter, r *http.Request)
	ExportExpiring(w http.ResponseWriter, r *http.Request)
}

type HealthRecordHandlerImpl struct {
	healthRecordService healthrecord.HealthRecordService
}

// Create implements HealthRecordHandler.
func (h *HealthRecordHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req healthrecord.CreateHealthRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("CreateHealthRecord decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	created, err := h.healthRecordService.Create(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Health record created successfully", created)
}

// List implements HealthRecordHandler.
func (h *HealthRecordHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := healthrecord.HealthRecordFilter{
		EmployeeID:      r.URL.Query().Get("employee_id"),
		IncludeInactive: queryBool(r, "include_inactive"),
	}

	records, err := h.healthRecordService.List(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.List(w, records)
}

// Get implements HealthRecordHandler.
func (h *HealthRecordHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	record, err := h.healthRecordService.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, record)
}

// Update implements HealthRecordHandler.
func (h *HealthRecordHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req healthrecord.UpdateHealthRecordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateHealthRecord decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	updated, err := h.healthRecordService.Update(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Health record updated successfully", updated)
}

// Deactivate implements HealthRecordHandler.
func (h *HealthRecordHandlerImpl) Deactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.healthRecordService.Deactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Health record deactivated successfully", nil)
}

// Reactivate implements HealthRecordHandler.
func (h *HealthRecordHandlerImpl) Reactivate(w http.ResponseWriter, r *http.Request) {
	if err := h.healthRecordService.Reactivate(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Health record reactivated successfully", nil)
}

// BulkDeactivate implements HealthRecordHandler.
func (h *HealthRecordHandlerImpl) BulkDeactivate(w http.ResponseWriter, r *http.Request) {
	var req healthrecord.BulkDeactivateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("BulkDeactivateHealthRecords decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.healthRecordService.BulkDeactivate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Health records deactivated successfully", result)
}

// ExportExpiring implements HealthRecordHandler.
func (h *HealthRecordHandlerImpl) ExportExpiring(w http.ResponseWriter, r *http.Request) {
	within := defaultExportWindowDays
	if v := r.URL.Query().Get("within_days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			response.BadRequest(w, "within_days must be an integer", nil)
			return
		}
		within = n
	}

	buf, err := h.healthRecordService.ExportExpiring(r.Context(), within)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	filename := fmt.Sprintf("health_records_expiring_%s.xlsx", time.Now().Format("20060102"))
	response.XLSX(w, filename, buf)
}

func NewHealthRecordHandler(healthRecordService healthrecord.HealthRecordService) HealthRecordHandler {
	return &HealthRecordHandlerImpl{healthRecordService: healthRecordService}
}
