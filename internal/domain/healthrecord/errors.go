package healthrecord

import "errors"

var (
	ErrHealthRecordNotFound = errors.New("health record not found")
	ErrInvalidExportWindow  = errors.New("export window must be between 0 and 365 days")
)
