package attendance

import (
	"bytes"
	"testing"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func workbook(t *testing.T, rows ...[]interface{}) *bytes.Buffer {
	t.Helper()
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	buf, err := f.WriteToBuffer()
	require.NoError(t, err)
	return buf
}

func TestImportAttendance(t *testing.T) {
	f := newServiceFixture(t)
	book := workbook(t,
		[]interface{}{"Employee Code", "Date", "Check In", "Check Out", "Status"},
		[]interface{}{"EMP-001", "2025-03-10", "09:00", "17:30", ""},
		[]interface{}{"emp-002", "2025-03-10", "", "", "late"},
		[]interface{}{"UNKNOWN", "2025-03-10", "", "", ""},
		[]interface{}{"EMP-001", "2025-13-01", "", "", ""},
		[]interface{}{"EMP-002", "2025-03-09", "18:00", "09:00", ""},
		[]interface{}{"EMP-001", "2025-03-09", "", "", "SICK"},
		[]interface{}{"EMP-001", "2025-03-11", "", "", ""},
	)

	resp, err := f.svc.ImportAttendance(t.Context(), book)
	require.NoError(t, err)

	assert.Equal(t, 2, resp.Imported)
	assert.Equal(t, 5, resp.Skipped)
	rows := make([]int, 0, len(resp.Errors))
	for _, e := range resp.Errors {
		rows = append(rows, e.Row)
	}
	assert.Equal(t, []int{4, 5, 6, 7, 8}, rows)
	assert.Contains(t, resp.Errors[0].Message, "unknown employee code")
	assert.Contains(t, resp.Errors[4].Message, "future")

	day := time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC)
	first, err := f.repo.GetByEmployeeAndDate(t.Context(), "emp-1", day)
	require.NoError(t, err)
	require.NotNil(t, first.CheckIn)
	assert.Equal(t, time.Date(2025, 3, 10, 2, 0, 0, 0, time.UTC), *first.CheckIn)
	require.NotNil(t, first.TotalHours)
	assert.Equal(t, 8.5, *first.TotalHours)
	assert.False(t, first.ManualStatus)

	second, err := f.repo.GetByEmployeeAndDate(t.Context(), "emp-2", day)
	require.NoError(t, err)
	assert.Equal(t, attendance.StatusLate, second.Status)
	assert.True(t, second.ManualStatus)
	assert.Nil(t, second.CheckIn)

	assert.Empty(t, f.reconciler.days)
}

func TestImportAttendance_MissingColumns(t *testing.T) {
	f := newServiceFixture(t)
	book := workbook(t, []interface{}{"Employee Code", "Check In"})

	_, err := f.svc.ImportAttendance(t.Context(), book)
	assert.ErrorIs(t, err, attendance.ErrMissingColumns)
	assert.ErrorContains(t, err, "date")
}

func TestImportAttendance_NotAWorkbook(t *testing.T) {
	f := newServiceFixture(t)

	_, err := f.svc.ImportAttendance(t.Context(), bytes.NewBufferString("employee_code,date\n"))
	assert.ErrorIs(t, err, attendance.ErrInvalidWorkbook)
}

func TestParseImportDate(t *testing.T) {
	got, ok := parseImportDate("2025-03-10")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), got)

	// 45726 is 2025-03-10 in the 1900 date system.
	got, ok = parseImportDate("45726")
	require.True(t, ok)
	assert.Equal(t, time.Date(2025, 3, 10, 0, 0, 0, 0, time.UTC), got)

	for _, bad := range []string{"", "10/03/2025", "-3"} {
		_, ok := parseImportDate(bad)
		assert.False(t, ok, bad)
	}
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "employee_code", normalizeHeader(" Employee Code "))
	assert.Equal(t, "check_out", normalizeHeader("CHECK OUT"))
	assert.Equal(t, "date", normalizeHeader("date"))
}
