package healthrecord

import "time"

type ExamType string

const (
	ExamTypePreOccupational  ExamType = "pre_occupational"
	ExamTypePeriodic         ExamType = "periodic"
	ExamTypePostOccupational ExamType = "post_occupational"
	ExamTypeReturnToWork     ExamType = "return_to_work"
)

var ExamTypes = []string{
	string(ExamTypePreOccupational),
	string(ExamTypePeriodic),
	string(ExamTypePostOccupational),
	string(ExamTypeReturnToWork),
}

type Result string

const (
	ResultFit                Result = "fit"
	ResultFitWithPreexisting Result = "fit_with_preexisting"
	ResultUnfit              Result = "unfit"
)

var Results = []string{
	string(ResultFit),
	string(ResultFitWithPreexisting),
	string(ResultUnfit),
}

// HealthRecord entity
type HealthRecord struct {
	ID          string
	WorkspaceID string
	EmployeeID  string

	ExamType ExamType
	Result   Result

	PerformedDate  time.Time
	ExpirationDate time.Time

	// Current is cleared by the daily sweep once ExpirationDate has passed;
	// between runs a read may still see it set.
	Current bool
	Active  bool

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCurrentAt reports whether a record expiring on expiration is still valid on today.
func IsCurrentAt(expiration, today time.Time) bool {
	return !expiration.Before(today)
}
