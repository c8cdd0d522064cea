package healthrecord

import (
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/validator"
)

// CreateHealthRecordRequest - WorkspaceID is taken from the caller's
// workspace scope when there is one.
type CreateHealthRecordRequest struct {
	WorkspaceID    string `json:"workspace_id"`
	EmployeeID     string `json:"employee_id"`
	ExamType       string `json:"exam_type"`
	Result         string `json:"result"`
	PerformedDate  string `json:"performed_date"`
	ExpirationDate string `json:"expiration_date"`
}

func (r *CreateHealthRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkspaceID) {
		errs.Add("workspace_id", "workspace_id is required")
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	validateFields(&errs, r.ExamType, r.Result, r.PerformedDate, r.ExpirationDate)

	return errs.Err()
}

type UpdateHealthRecordRequest struct {
	ID             string `json:"id"`
	ExamType       string `json:"exam_type"`
	Result         string `json:"result"`
	PerformedDate  string `json:"performed_date"`
	ExpirationDate string `json:"expiration_date"`
}

func (r *UpdateHealthRecordRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	validateFields(&errs, r.ExamType, r.Result, r.PerformedDate, r.ExpirationDate)

	return errs.Err()
}

func validateFields(errs *validator.ValidationErrors, examType, result, performed, expiration string) {
	if !validator.IsInSlice(examType, ExamTypes) {
		errs.Add("exam_type", "exam_type is invalid")
	}
	if !validator.IsInSlice(result, Results) {
		errs.Add("result", "result is invalid")
	}

	performedDate, ok := validator.IsValidDate(performed)
	if !ok {
		errs.Add("performed_date", "performed_date must be a valid date (YYYY-MM-DD)")
	}
	expirationDate, expOK := validator.IsValidDate(expiration)
	if !expOK {
		errs.Add("expiration_date", "expiration_date must be a valid date (YYYY-MM-DD)")
	}
	if ok && expOK && expirationDate.Before(performedDate) {
		errs.Add("expiration_date", "expiration_date must not be before performed_date")
	}
}

type BulkDeactivateRequest struct {
	IDs []string `json:"ids"`
}

func (r *BulkDeactivateRequest) Validate() error {
	var errs validator.ValidationErrors
	validator.ValidateIDs(&errs, "ids", r.IDs)
	return errs.Err()
}

type BulkDeactivateResponse struct {
	Deactivated int64 `json:"deactivated"`
}

type HealthRecordResponse struct {
	ID             string    `json:"id"`
	WorkspaceID    string    `json:"workspace_id"`
	EmployeeID     string    `json:"employee_id"`
	ExamType       string    `json:"exam_type"`
	Result         string    `json:"result"`
	PerformedDate  string    `json:"performed_date"`
	ExpirationDate string    `json:"expiration_date"`
	Current        bool      `json:"current"`
	Active         bool      `json:"active"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func NewHealthRecordResponse(r HealthRecord) HealthRecordResponse {
	return HealthRecordResponse{
		ID:             r.ID,
		WorkspaceID:    r.WorkspaceID,
		EmployeeID:     r.EmployeeID,
		ExamType:       string(r.ExamType),
		Result:         string(r.Result),
		PerformedDate:  r.PerformedDate.Format("2006-01-02"),
		ExpirationDate: r.ExpirationDate.Format("2006-01-02"),
		Current:        r.Current,
		Active:         r.Active,
		CreatedAt:      r.CreatedAt,
		UpdatedAt:      r.UpdatedAt,
	}
}
