package healthrecord

import (
	"testing"
	"time"

	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/calendar"
	"github.com/cataratas-rh/cataratasrh-backend-go/internal/pkg/validator"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateHealthRecordRequest_Validate(t *testing.T) {
	req := CreateHealthRecordRequest{
		WorkspaceID:    "ws-1",
		EmployeeID:     "emp-1",
		ExamType:       string(ExamTypePeriodic),
		Result:         string(ResultFit),
		PerformedDate:  "2024-01-10",
		ExpirationDate: "2024-01-10",
	}
	assert.NoError(t, req.Validate(), "same-day expiration is allowed")

	req.ExpirationDate = "2024-01-09"
	err := req.Validate()
	require.Error(t, err)

	var verrs validator.ValidationErrors
	require.ErrorAs(t, err, &verrs)
	assert.Equal(t, "expiration_date must not be before performed_date", verrs.ToMap()["expiration_date"])
}

func TestCreateHealthRecordRequest_ValidateEnums(t *testing.T) {
	req := CreateHealthRecordRequest{
		EmployeeID:     "emp-1",
		ExamType:       "annual",
		Result:         "maybe",
		PerformedDate:  "2024-01-10",
		ExpirationDate: "2025-01-10",
	}

	var verrs validator.ValidationErrors
	require.ErrorAs(t, req.Validate(), &verrs)
	fields := verrs.ToMap()
	assert.Contains(t, fields, "exam_type")
	assert.Contains(t, fields, "result")
	assert.Contains(t, fields, "workspace_id")
}

func TestIsCurrentAt(t *testing.T) {
	exp := mustDate("2024-01-10")
	assert.True(t, IsCurrentAt(exp, mustDate("2024-01-10")))
	assert.False(t, IsCurrentAt(exp, mustDate("2024-01-11")))
}

func mustDate(s string) time.Time {
	d, err := calendar.ParseDate(s)
	if err != nil {
		panic(err)
	}
	return d
}
