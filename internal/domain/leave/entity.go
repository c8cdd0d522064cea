package leave

import (
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/calendar"
	"github.com/shopspring/decimal"
)

type Category string

const (
	CategoryVacation    Category = "vacation"
	CategoryLicense     Category = "license"
	CategoryOvertime    Category = "overtime"
	CategoryResignation Category = "resignation"
)

func (c Category) Valid() bool {
	switch c {
	case CategoryVacation, CategoryLicense, CategoryOvertime, CategoryResignation:
		return true
	}
	return false
}

type RequestStatus string

const (
	StatusPending     RequestStatus = "pending"
	StatusApproved    RequestStatus = "approved"    // vacation, overtime
	StatusRejected    RequestStatus = "rejected"    // vacation, overtime, resignation
	StatusJustified   RequestStatus = "justified"   // license
	StatusUnjustified RequestStatus = "unjustified" // license
	StatusAccepted    RequestStatus = "accepted"    // resignation
)

// ApprovedStatus is the status a pending request of this category moves to on approval.
func (c Category) ApprovedStatus() RequestStatus {
	switch c {
	case CategoryLicense:
		return StatusJustified
	case CategoryResignation:
		return StatusAccepted
	default:
		return StatusApproved
	}
}

// RejectedStatus is the status a pending request of this category moves to on rejection.
func (c Category) RejectedStatus() RequestStatus {
	if c == CategoryLicense {
		return StatusUnjustified
	}
	return StatusRejected
}

// DateRange is a closed range of calendar days.
type DateRange struct {
	Start time.Time
	End   time.Time
}

// ParseDateRange parses both ends with calendar.ParseDate and rejects an end
// before the start.
func ParseDateRange(startStr, endStr string) (DateRange, error) {
	start, err := calendar.ParseDate(startStr)
	if err != nil {
		return DateRange{}, err
	}
	end, err := calendar.ParseDate(endStr)
	if err != nil {
		return DateRange{}, err
	}
	if end.Before(start) {
		return DateRange{}, ErrInvertedRange
	}
	return DateRange{Start: start, End: end}, nil
}

func (r DateRange) Overlaps(o DateRange) bool {
	return calendar.Overlaps(r.Start, r.End, o.Start, o.End)
}

func (r DateRange) Contains(d time.Time) bool {
	return calendar.Within(d, r.Start, r.End)
}

// Days counts calendar days in the range.
func (r DateRange) Days() int {
	return calendar.DaysInclusive(r.Start, r.End)
}

type Vacation struct {
	Period DateRange
	Days   int // calendar days
	Status RequestStatus
}

type License struct {
	Period DateRange
	Reason string
	Status RequestStatus
}

type Overtime struct {
	Date   time.Time
	Hours  decimal.Decimal
	Status RequestStatus
}

type Resignation struct {
	NoticeDate    time.Time
	EffectiveDate time.Time // pushed forward when vacations are approved after acceptance
	Status        RequestStatus
}

// Request entity. Exactly one payload matching Category is set.
type Request struct {
	ID         string
	ContractID string
	Category   Category
	Active     bool

	Vacation    *Vacation
	License     *License
	Overtime    *Overtime
	Resignation *Resignation

	DecidedBy       *string
	DecidedAt       *time.Time
	RejectionReason *string

	CreatedAt time.Time
	UpdatedAt time.Time
}

// Status returns the status stored on the category payload.
func (r Request) Status() RequestStatus {
	switch {
	case r.Vacation != nil:
		return r.Vacation.Status
	case r.License != nil:
		return r.License.Status
	case r.Overtime != nil:
		return r.Overtime.Status
	case r.Resignation != nil:
		return r.Resignation.Status
	}
	return ""
}

func (r *Request) setStatus(status RequestStatus) {
	switch {
	case r.Vacation != nil:
		r.Vacation.Status = status
	case r.License != nil:
		r.License.Status = status
	case r.Overtime != nil:
		r.Overtime.Status = status
	case r.Resignation != nil:
		r.Resignation.Status = status
	}
}

// Decide moves a pending request to its category's approved or rejected status.
func (r *Request) Decide(approve bool, decidedBy string, at time.Time) error {
	if r.Status() != StatusPending {
		return ErrRequestAlreadyProcessed
	}
	status := r.Category.RejectedStatus()
	if approve {
		status = r.Category.ApprovedStatus()
	}
	r.setStatus(status)
	r.DecidedBy = &decidedBy
	r.DecidedAt = &at
	return nil
}
