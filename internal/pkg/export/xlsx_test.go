package export

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestXLSX(t *testing.T) {
	buf, err := XLSX(Table{
		Sheet:   "Expiring",
		Headers: []string{"Employee", "Expires"},
		Rows: [][]interface{}{
			{"emp-1", "2024-02-01"},
			{"emp-2", "2024-02-20"},
		},
	})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"Expiring"}, f.GetSheetList())

	rows, err := f.GetRows("Expiring")
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Employee", "Expires"},
		{"emp-1", "2024-02-01"},
		{"emp-2", "2024-02-20"},
	}, rows)
}

func TestXLSX_HeaderOnly(t *testing.T) {
	buf, err := XLSX(Table{Headers: []string{"A"}})
	require.NoError(t, err)

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows("Sheet1")
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"A"}}, rows)
}
