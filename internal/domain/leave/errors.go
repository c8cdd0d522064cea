package leave

import "errors"

var (
	ErrRequestNotFound         = errors.New("request not found")
	ErrRequestAlreadyProcessed = errors.New("request already processed")
	ErrRequestInactive         = errors.New("request is inactive")
	ErrRequestNotEditable      = errors.New("only pending vacation requests can be edited")
	ErrNotBusinessDay          = errors.New("start date is not a business day")
	ErrResignationExists       = errors.New("contract already has an open resignation")
	ErrValidationConflict      = errors.New("request conflicts with an existing request")
	ErrInvertedRange           = errors.New("end date is before start date")
)

// ConflictKind names the rule a vacation request tripped.
type ConflictKind string

const (
	ConflictPendingVacation  ConflictKind = "pending_vacation"
	ConflictApprovedVacation ConflictKind = "approved_vacation"
	ConflictJustifiedLicense ConflictKind = "justified_license"
	ConflictApprovedOvertime ConflictKind = "approved_overtime"
)

func (k ConflictKind) Reason() string {
	switch k {
	case ConflictPendingVacation:
		return "A pending vacation request already exists for this contract"
	case ConflictApprovedVacation:
		return "The dates overlap an approved vacation"
	case ConflictJustifiedLicense:
		return "The dates overlap a justified license"
	case ConflictApprovedOvertime:
		return "The dates include a day with approved overtime"
	}
	return "The request conflicts with an existing request"
}

// ConflictError carries a validation conflict to the caller. It matches
// ErrValidationConflict with errors.Is.
type ConflictError struct {
	Kind   ConflictKind
	Reason string
}

func (e *ConflictError) Error() string {
	return e.Reason
}

func (e *ConflictError) Is(target error) bool {
	return target == ErrValidationConflict
}
