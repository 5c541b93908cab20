package attendance

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/validator"
	"github.com/xuri/excelize/v2"
)

const (
	colEmployeeCode = "employee_code"
	colDate         = "date"
	colCheckIn      = "check_in"
	colCheckOut     = "check_out"
	colStatus       = "status"
)

// ImportAttendance implements attendance.AttendanceService. Only the first
// sheet is read; row 1 holds the headers.
func (s *AttendanceServiceImpl) ImportAttendance(ctx context.Context, r io.Reader) (attendance.ImportAttendanceResponse, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return attendance.ImportAttendanceResponse{}, fmt.Errorf("%w: %v", attendance.ErrInvalidWorkbook, err)
	}
	defer func() { _ = f.Close() }()

	sheet := f.GetSheetName(0)
	if sheet == "" {
		return attendance.ImportAttendanceResponse{}, fmt.Errorf("%w: no worksheet found", attendance.ErrInvalidWorkbook)
	}
	rows, err := f.GetRows(sheet)
	if err != nil {
		return attendance.ImportAttendanceResponse{}, fmt.Errorf("%w: %v", attendance.ErrInvalidWorkbook, err)
	}
	if len(rows) == 0 {
		return attendance.ImportAttendanceResponse{}, fmt.Errorf("%w: worksheet is empty", attendance.ErrInvalidWorkbook)
	}

	columns := make(map[string]int)
	for i, header := range rows[0] {
		columns[normalizeHeader(header)] = i
	}
	var missing []string
	for _, required := range []string{colEmployeeCode, colDate} {
		if _, ok := columns[required]; !ok {
			missing = append(missing, required)
		}
	}
	if len(missing) > 0 {
		return attendance.ImportAttendanceResponse{}, fmt.Errorf("%w: %s", attendance.ErrMissingColumns, strings.Join(missing, ", "))
	}

	resp := attendance.ImportAttendanceResponse{Errors: []attendance.ImportRowError{}}
	employees := make(map[string]employee.Employee)

	for i, row := range rows[1:] {
		rowNum := i + 2
		if isBlankRow(row) {
			resp.Skipped++
			continue
		}

		record, err := s.parseImportRow(ctx, row, columns, employees)
		if err == nil {
			_, err = s.AttendanceRepository.UpsertImported(ctx, record)
		}
		if err != nil {
			resp.Skipped++
			resp.Errors = append(resp.Errors, attendance.ImportRowError{Row: rowNum, Message: err.Error()})
			continue
		}
		resp.Imported++
	}

	slog.Info("Attendance workbook imported",
		"imported", resp.Imported,
		"skipped", resp.Skipped,
		"errors", len(resp.Errors),
	)
	return resp, nil
}

func (s *AttendanceServiceImpl) parseImportRow(ctx context.Context, row []string, columns map[string]int, cache map[string]employee.Employee) (attendance.Attendance, error) {
	code := strings.ToUpper(cellValue(row, columns, colEmployeeCode))
	if code == "" {
		return attendance.Attendance{}, errors.New("employee_code is required")
	}
	emp, ok := cache[code]
	if !ok {
		var err error
		emp, err = s.employees.GetByEmployeeCode(ctx, code)
		if err != nil {
			if errors.Is(err, employee.ErrEmployeeNotFound) {
				return attendance.Attendance{}, fmt.Errorf("unknown employee code %q", code)
			}
			return attendance.Attendance{}, err
		}
		cache[code] = emp
	}

	date, ok := parseImportDate(cellValue(row, columns, colDate))
	if !ok {
		return attendance.Attendance{}, errors.New("date must be in YYYY-MM-DD format")
	}
	if _, today := s.today(); date.After(today) {
		return attendance.Attendance{}, errors.New("date must not be in the future")
	}

	record := attendance.Attendance{EmployeeID: emp.ID, Date: date}

	var err error
	if record.CheckIn, err = s.parseImportTime(date, cellValue(row, columns, colCheckIn)); err != nil {
		return attendance.Attendance{}, fmt.Errorf("check_in: %w", err)
	}
	if record.CheckOut, err = s.parseImportTime(date, cellValue(row, columns, colCheckOut)); err != nil {
		return attendance.Attendance{}, fmt.Errorf("check_out: %w", err)
	}
	if record.CheckOut != nil && record.CheckIn == nil {
		return attendance.Attendance{}, errors.New("check_out requires check_in")
	}
	if record.CheckIn != nil && record.CheckOut != nil {
		if record.CheckOut.Before(*record.CheckIn) {
			return attendance.Attendance{}, attendance.ErrCheckOutBeforeCheckIn
		}
		hours := utils.HoursBetween(*record.CheckIn, *record.CheckOut)
		record.TotalHours = &hours
	}

	if raw := cellValue(row, columns, colStatus); raw != "" {
		status := attendance.AttendanceStatus(strings.ToUpper(raw))
		if !status.Valid() {
			return attendance.Attendance{}, fmt.Errorf("unknown status %q", raw)
		}
		record.Status = status
		record.ManualStatus = true
	}

	return record, nil
}

// parseImportTime accepts HH:MM[:SS] wall-clock times on the row's date in
// the business timezone, or full RFC3339 timestamps.
func (s *AttendanceServiceImpl) parseImportTime(date time.Time, value string) (*time.Time, error) {
	if value == "" {
		return nil, nil
	}
	if clock, ok := validator.IsValidClockTime(value); ok {
		t := time.Date(date.Year(), date.Month(), date.Day(), clock.Hour(), clock.Minute(), clock.Second(), 0, s.loc).UTC()
		return &t, nil
	}
	if t, ok := validator.IsValidDateTime(value); ok {
		t = t.UTC()
		return &t, nil
	}
	return nil, fmt.Errorf("%q is neither HH:MM nor RFC3339", value)
}

func parseImportDate(value string) (time.Time, bool) {
	if value == "" {
		return time.Time{}, false
	}
	if t, ok := validator.IsValidDate(value); ok {
		return t, true
	}
	// Unformatted date cells come through as Excel serials.
	if serial, err := strconv.ParseFloat(value, 64); err == nil && serial > 0 {
		if t, err := excelize.ExcelDateToTime(serial, false); err == nil {
			return utils.DateOf(t, time.UTC), true
		}
	}
	return time.Time{}, false
}

func normalizeHeader(header string) string {
	h := strings.ToLower(strings.TrimSpace(header))
	return strings.ReplaceAll(h, " ", "_")
}

func cellValue(row []string, columns map[string]int, name string) string {
	idx, ok := columns[name]
	if !ok || idx >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[idx])
}

func isBlankRow(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return false
		}
	}
	return true
}
