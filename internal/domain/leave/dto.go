package leave

import (
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// maxOvertimeHours bounds a single overtime request.
var maxOvertimeHours = decimal.NewFromInt(24)

type ValidateVacationRequest struct {
	ContractID       string `json:"contract_id"`
	StartDate        string `json:"start_date"`
	EndDate          string `json:"end_date"`
	ExcludeRequestID string `json:"exclude_request_id,omitempty"`
}

func (r *ValidateVacationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ContractID) {
		errs.Add("contract_id", "contract_id is required")
	}
	validateRange(&errs, r.StartDate, r.EndDate)

	return errs.Err()
}

// Period returns the parsed range.
func (r *ValidateVacationRequest) Period() (DateRange, error) {
	return ParseDateRange(r.StartDate, r.EndDate)
}

type CreateVacationRequest struct {
	ContractID string `json:"contract_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
}

func (r *CreateVacationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ContractID) {
		errs.Add("contract_id", "contract_id is required")
	}
	validateRange(&errs, r.StartDate, r.EndDate)

	return errs.Err()
}

func (r *CreateVacationRequest) Period() (DateRange, error) {
	return ParseDateRange(r.StartDate, r.EndDate)
}

type UpdateVacationRequest struct {
	ID        string `json:"id"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}

func (r *UpdateVacationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	validateRange(&errs, r.StartDate, r.EndDate)

	return errs.Err()
}

func (r *UpdateVacationRequest) Period() (DateRange, error) {
	return ParseDateRange(r.StartDate, r.EndDate)
}

type CreateLicenseRequest struct {
	ContractID string `json:"contract_id"`
	StartDate  string `json:"start_date"`
	EndDate    string `json:"end_date"`
	Reason     string `json:"reason"`
}

func (r *CreateLicenseRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ContractID) {
		errs.Add("contract_id", "contract_id is required")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}
	if len(r.Reason) > 500 {
		errs.Add("reason", "reason must not exceed 500 characters")
	}
	validateRange(&errs, r.StartDate, r.EndDate)

	return errs.Err()
}

func (r *CreateLicenseRequest) Period() (DateRange, error) {
	return ParseDateRange(r.StartDate, r.EndDate)
}

type CreateOvertimeRequest struct {
	ContractID string          `json:"contract_id"`
	Date       string          `json:"date"`
	Hours      decimal.Decimal `json:"hours"`
}

func (r *CreateOvertimeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ContractID) {
		errs.Add("contract_id", "contract_id is required")
	}
	if _, ok := validator.IsValidDate(r.Date); !ok {
		errs.Add("date", "date must be a valid date (YYYY-MM-DD)")
	}
	if !r.Hours.IsPositive() {
		errs.Add("hours", "hours must be greater than zero")
	} else if r.Hours.GreaterThan(maxOvertimeHours) {
		errs.Add("hours", "hours must not exceed 24")
	}

	return errs.Err()
}

type CreateResignationRequest struct {
	ContractID    string `json:"contract_id"`
	NoticeDate    string `json:"notice_date"`
	EffectiveDate string `json:"effective_date"`
}

func (r *CreateResignationRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ContractID) {
		errs.Add("contract_id", "contract_id is required")
	}
	notice, ok := validator.IsValidDate(r.NoticeDate)
	if !ok {
		errs.Add("notice_date", "notice_date must be a valid date (YYYY-MM-DD)")
	}
	effective, effOK := validator.IsValidDate(r.EffectiveDate)
	if !effOK {
		errs.Add("effective_date", "effective_date must be a valid date (YYYY-MM-DD)")
	}
	if ok && effOK && effective.Before(notice) {
		errs.Add("effective_date", "effective_date must not be before notice_date")
	}

	return errs.Err()
}

type ApproveRequestRequest struct {
	ID         string `json:"id"`
	ApprovedBy string `json:"-"`
}

func (r *ApproveRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if validator.IsEmpty(r.ApprovedBy) {
		errs.Add("approved_by", "approved_by is required")
	}

	return errs.Err()
}

type RejectRequestRequest struct {
	ID         string `json:"id"`
	Reason     string `json:"reason"`
	RejectedBy string `json:"-"`
}

func (r *RejectRequestRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.ID) {
		errs.Add("id", "id is required")
	}
	if validator.IsEmpty(r.Reason) {
		errs.Add("reason", "reason is required")
	}
	if validator.IsEmpty(r.RejectedBy) {
		errs.Add("rejected_by", "rejected_by is required")
	}

	return errs.Err()
}

func validateRange(errs *validator.ValidationErrors, startStr, endStr string) {
	start, ok := validator.IsValidDate(startStr)
	if !ok {
		errs.Add("start_date", "start_date must be a valid date (YYYY-MM-DD)")
	}
	end, endOK := validator.IsValidDate(endStr)
	if !endOK {
		errs.Add("end_date", "end_date must be a valid date (YYYY-MM-DD)")
	}
	if ok && endOK && end.Before(start) {
		errs.Add("end_date", "end_date must not be before start_date")
	}
}

// ValidationResult is the outcome of the vacation overlap rules. A conflict
// is a normal result, not an error.
type ValidationResult struct {
	Valid    bool         `json:"valid"`
	Conflict ConflictKind `json:"conflict,omitempty"`
	Reason   string       `json:"reason,omitempty"`
}

func Valid() ValidationResult {
	return ValidationResult{Valid: true}
}

func Conflict(kind ConflictKind) ValidationResult {
	return ValidationResult{Conflict: kind, Reason: kind.Reason()}
}

// Err converts a failed result into a *ConflictError, or nil when valid.
func (v ValidationResult) Err() error {
	if v.Valid {
		return nil
	}
	return &ConflictError{Kind: v.Conflict, Reason: v.Reason}
}

type PeriodResponse struct {
	StartDate    string `json:"start_date"`
	EndDate      string `json:"end_date"`
	Days         int    `json:"days"`
	BusinessDays *int   `json:"business_days,omitempty"`
}

type VacationResponse struct {
	PeriodResponse
	Status string `json:"status"`
}

type LicenseResponse struct {
	PeriodResponse
	Reason string `json:"reason"`
	Status string `json:"status"`
}

type OvertimeResponse struct {
	Date   string          `json:"date"`
	Hours  decimal.Decimal `json:"hours"`
	Status string          `json:"status"`
}

type ResignationResponse struct {
	NoticeDate    string `json:"notice_date"`
	EffectiveDate string `json:"effective_date"`
	Status        string `json:"status"`
}

type RequestResponse struct {
	ID         string `json:"id"`
	ContractID string `json:"contract_id"`
	Category   string `json:"category"`
	Status     string `json:"status"`
	Active     bool   `json:"active"`

	Vacation    *VacationResponse    `json:"vacation,omitempty"`
	License     *LicenseResponse     `json:"license,omitempty"`
	Overtime    *OvertimeResponse    `json:"overtime,omitempty"`
	Resignation *ResignationResponse `json:"resignation,omitempty"`

	DecidedBy       *string    `json:"decided_by,omitempty"`
	DecidedAt       *time.Time `json:"decided_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func NewRequestResponse(r Request) RequestResponse {
	resp := RequestResponse{
		ID:              r.ID,
		ContractID:      r.ContractID,
		Category:        string(r.Category),
		Status:          string(r.Status()),
		Active:          r.Active,
		DecidedBy:       r.DecidedBy,
		DecidedAt:       r.DecidedAt,
		RejectionReason: r.RejectionReason,
		CreatedAt:       r.CreatedAt,
		UpdatedAt:       r.UpdatedAt,
	}

	switch {
	case r.Vacation != nil:
		resp.Vacation = &VacationResponse{
			PeriodResponse: newPeriodResponse(r.Vacation.Period),
			Status:         string(r.Vacation.Status),
		}
	case r.License != nil:
		resp.License = &LicenseResponse{
			PeriodResponse: newPeriodResponse(r.License.Period),
			Reason:         r.License.Reason,
			Status:         string(r.License.Status),
		}
	case r.Overtime != nil:
		resp.Overtime = &OvertimeResponse{
			Date:   r.Overtime.Date.Format("2006-01-02"),
			Hours:  r.Overtime.Hours,
			Status: string(r.Overtime.Status),
		}
	case r.Resignation != nil:
		resp.Resignation = &ResignationResponse{
			NoticeDate:    r.Resignation.NoticeDate.Format("2006-01-02"),
			EffectiveDate: r.Resignation.EffectiveDate.Format("2006-01-02"),
			Status:        string(r.Resignation.Status),
		}
	}

	return resp
}

func newPeriodResponse(p DateRange) PeriodResponse {
	return PeriodResponse{
		StartDate: p.Start.Format("2006-01-02"),
		EndDate:   p.End.Format("2006-01-02"),
		Days:      p.Days(),
	}
}
