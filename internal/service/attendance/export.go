package attendance

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/utils"
	"github.com/xuri/excelize/v2"
)

const reportSheet = "Attendance"

var reportHeaders = []string{
	"Date", "Employee Code", "Employee Name", "Check In", "Check Out", "Total Hours",
	"Status", "Manual", "Exception", "Work Hours", "Message", "Notes",
}

// WriteReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) WriteReport(ctx context.Context, req attendance.ExportAttendanceRequest, w io.Writer) error {
	f, _, err := s.buildReport(ctx, req)
	if err != nil {
		return err
	}
	defer func() { _ = f.Close() }()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write attendance report: %w", err)
	}
	return nil
}

// ExportReport implements attendance.AttendanceService.
func (s *AttendanceServiceImpl) ExportReport(ctx context.Context, req attendance.ExportAttendanceRequest) (attendance.ExportAttendanceResponse, error) {
	f, rows, err := s.buildReport(ctx, req)
	if err != nil {
		return attendance.ExportAttendanceResponse{}, err
	}
	defer func() { _ = f.Close() }()

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return attendance.ExportAttendanceResponse{}, fmt.Errorf("failed to write attendance report: %w", err)
	}

	key := fmt.Sprintf("exports/attendance_%s_%s_%d.xlsx", req.StartDate, req.EndDate, s.now().Unix())
	path, err := s.storage.Upload(ctx, &buf, key, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if err != nil {
		return attendance.ExportAttendanceResponse{}, fmt.Errorf("failed to store attendance report: %w", err)
	}
	url, err := s.storage.GetURL(ctx, path, 24*time.Hour)
	if err != nil {
		return attendance.ExportAttendanceResponse{}, fmt.Errorf("failed to get report url: %w", err)
	}

	slog.Info("Attendance report exported", "path", path, "rows", rows)
	return attendance.ExportAttendanceResponse{URL: url, Path: path, Rows: rows}, nil
}

func (s *AttendanceServiceImpl) buildReport(ctx context.Context, req attendance.ExportAttendanceRequest) (*excelize.File, int, error) {
	if err := req.Validate(); err != nil {
		return nil, 0, err
	}
	from, _ := utils.ParseDate(req.StartDate)
	to, _ := utils.ParseDate(req.EndDate)

	records, err := s.AttendanceRepository.ListRange(ctx, from, to)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to load attendance range: %w", err)
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", reportSheet); err != nil {
		_ = f.Close()
		return nil, 0, err
	}

	if err := writeReportRows(f, records, s.loc); err != nil {
		_ = f.Close()
		return nil, 0, fmt.Errorf("failed to render attendance report: %w", err)
	}
	return f, len(records), nil
}

func writeReportRows(f *excelize.File, records []attendance.Attendance, loc *time.Location) error {
	header := make([]interface{}, len(reportHeaders))
	for i, h := range reportHeaders {
		header[i] = h
	}
	if err := f.SetSheetRow(reportSheet, "A1", &header); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return err
	}
	lastCol, err := excelize.ColumnNumberToName(len(reportHeaders))
	if err != nil {
		return err
	}
	if err := f.SetCellStyle(reportSheet, "A1", lastCol+"1", bold); err != nil {
		return err
	}
	if err := f.SetColWidth(reportSheet, "A", lastCol, 16); err != nil {
		return err
	}
	if err := f.SetPanes(reportSheet, &excelize.Panes{Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft"}); err != nil {
		return err
	}

	for i, rec := range records {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		row := []interface{}{
			utils.FormatDate(rec.Date),
			deref(rec.EmployeeCode),
			deref(rec.EmployeeName),
			clockOf(rec.CheckIn, loc),
			clockOf(rec.CheckOut, loc),
			hoursOf(rec.TotalHours),
			string(rec.Status),
			yesNo(rec.ManualStatus),
			string(rec.ExceptionType),
			float64(rec.WorkMinutes) / 60,
			StatusMessage(analysisOf(rec)),
			strings.Join(rec.Notes, "; "),
		}
		if err := f.SetSheetRow(reportSheet, cell, &row); err != nil {
			return err
		}
	}
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func clockOf(t *time.Time, loc *time.Location) string {
	if t == nil {
		return ""
	}
	return t.In(loc).Format("15:04")
}

func hoursOf(h *float64) interface{} {
	if h == nil {
		return ""
	}
	return *h
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
