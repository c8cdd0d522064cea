package contract

import (
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/validator"
)

// CreateContractRequest - WorkspaceID is taken from the caller's workspace
// scope when there is one.
type CreateContractRequest struct {
	WorkspaceID string  `json:"workspace_id"`
	EmployeeID  string  `json:"employee_id"`
	PositionID  *string `json:"position_id,omitempty"`
	StartDate   string  `json:"start_date"`
	EndDate     *string `json:"end_date,omitempty"`
}

func (r *CreateContractRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.WorkspaceID) {
		errs.Add("workspace_id", "workspace_id is required")
	}
	if validator.IsEmpty(r.EmployeeID) {
		errs.Add("employee_id", "employee_id is required")
	}
	if r.PositionID != nil && validator.IsEmpty(*r.PositionID) {
		errs.Add("position_id", "position_id must not be empty")
	}
	validateDates(&errs, r.StartDate, r.EndDate)

	return errs.Err()
}

type UpdateContractRequest struct {
	ID        string  `json:"id"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
}

func (r *UpdateContractRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	validateDates(&errs, r.StartDate, r.EndDate)

	return errs.Err()
}

func validateDates(errs *validator.ValidationErrors, startStr string, endStr *string) {
	start, ok := validator.IsValidDate(startStr)
	if !ok {
		errs.Add("start_date", "start_date must be a valid date (YYYY-MM-DD)")
	}
	if endStr == nil {
		return
	}
	end, endOK := validator.IsValidDate(*endStr)
	if !endOK {
		errs.Add("end_date", "end_date must be a valid date (YYYY-MM-DD)")
		return
	}
	if ok && end.Before(start) {
		errs.Add("end_date", "end_date must not be before start_date")
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

type ContractResponse struct {
	ID          string     `json:"id"`
	WorkspaceID string     `json:"workspace_id"`
	EmployeeID  string     `json:"employee_id"`
	PositionID  *string    `json:"position_id,omitempty"`
	StartDate   string     `json:"start_date"`
	EndDate     *string    `json:"end_date"`
	Status      string     `json:"status"`
	Active      bool       `json:"active"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at,omitempty"`
}

func NewContractResponse(c Contract) ContractResponse {
	resp := ContractResponse{
		ID:          c.ID,
		WorkspaceID: c.WorkspaceID,
		EmployeeID:  c.EmployeeID,
		PositionID:  c.PositionID,
		StartDate:   c.StartDate.Format("2006-01-02"),
		Status:      string(c.Status),
		Active:      c.Active,
		CreatedAt:   c.CreatedAt,
	}
	if c.EndDate != nil {
		end := c.EndDate.Format("2006-01-02")
		resp.EndDate = &end
	}
	if !c.UpdatedAt.IsZero() {
		updated := c.UpdatedAt
		resp.UpdatedAt = &updated
	}
	return resp
}
