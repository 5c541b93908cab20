package http

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/attendance"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/employee"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/leave"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/jwt"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/perfmon"
	authService "github.com/cmlabs-hris/worktrack-backend-go/internal/service/auth"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

const testSecret = "test-secret-key-for-jwt"

// Stubs embed the service interface; calling an unimplemented method panics.

type stubEmployeeService struct {
	employee.EmployeeService
}

func (s stubEmployeeService) ListEmployees(ctx context.Context, filter employee.EmployeeFilter) (employee.ListEmployeeResponse, error) {
	return employee.ListEmployeeResponse{TotalCount: 1, Page: 1, Limit: 20, TotalPages: 1}, nil
}

func (s stubEmployeeService) DeactivateEmployee(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	callerID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return employee.EmployeeResponse{}, err
	}
	if callerID == id {
		return employee.EmployeeResponse{}, employee.ErrCannotDeactivateSelf
	}
	return employee.EmployeeResponse{ID: id}, nil
}

type stubAttendanceService struct {
	attendance.AttendanceService
	imported []byte
}

func (s *stubAttendanceService) CheckIn(ctx context.Context, req attendance.CheckInRequest) (attendance.AttendanceResponse, error) {
	employeeID, _, err := jwt.FromContext(ctx)
	if err != nil {
		return attendance.AttendanceResponse{}, err
	}
	return attendance.AttendanceResponse{EmployeeID: employeeID, Status: string(attendance.StatusPresent)}, nil
}

func (s *stubAttendanceService) CheckOut(ctx context.Context, req attendance.CheckOutRequest) (attendance.AttendanceResponse, error) {
	return attendance.AttendanceResponse{}, attendance.ErrNotCheckedIn
}

func (s *stubAttendanceService) ImportAttendance(ctx context.Context, r io.Reader) (attendance.ImportAttendanceResponse, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return attendance.ImportAttendanceResponse{}, err
	}
	s.imported = data
	return attendance.ImportAttendanceResponse{Imported: 3, Errors: []attendance.ImportRowError{}}, nil
}

func (s *stubAttendanceService) WriteReport(ctx context.Context, req attendance.ExportAttendanceRequest, w io.Writer) error {
	_, err := w.Write([]byte("xlsx-bytes"))
	return err
}

type stubReconciler struct {
	days  []string
	dates []string
}

func (s *stubReconciler) ReconcileDay(ctx context.Context, employeeID string, date time.Time) (attendance.ReconcileResult, error) {
	s.days = append(s.days, employeeID+"@"+date.Format("2006-01-02"))
	return attendance.ReconcileResult{EmployeeID: employeeID, Date: date.Format("2006-01-02"), StatusPersisted: true}, nil
}

func (s *stubReconciler) ReconcileDate(ctx context.Context, date time.Time) (attendance.ReconcileSummary, error) {
	s.dates = append(s.dates, date.Format("2006-01-02"))
	return attendance.ReconcileSummary{Date: date.Format("2006-01-02"), Total: 2, Reconciled: 2}, nil
}

type stubLeaveService struct {
	leave.LeaveService
	decided *leave.DecideLeaveRequestRequest
}

func (s *stubLeaveService) ApproveLeaveRequest(ctx context.Context, req leave.DecideLeaveRequestRequest) (leave.LeaveRequestResponse, error) {
	s.decided = &req
	return leave.LeaveRequestResponse{ID: req.ID, Status: string(leave.LeaveStatusApproved)}, nil
}

type fakeEmployeeReader map[string]employee.Employee

func (f fakeEmployeeReader) GetByID(ctx context.Context, id string) (employee.Employee, error) {
	for _, e := range f {
		if e.ID == id {
			return e, nil
		}
	}
	return employee.Employee{}, employee.ErrEmployeeNotFound
}

func (f fakeEmployeeReader) GetByEmployeeCode(ctx context.Context, code string) (employee.Employee, error) {
	e, ok := f[code]
	if !ok {
		return employee.Employee{}, employee.ErrEmployeeNotFound
	}
	return e, nil
}

type routerFixture struct {
	router     http.Handler
	jwt        *jwt.JWTService
	monitor    *perfmon.Monitor
	attendance *stubAttendanceService
	reconciler *stubReconciler
	leave      *stubLeaveService
}

func newRouterFixture(t *testing.T) *routerFixture {
	t.Helper()

	hash, err := bcrypt.GenerateFromPassword([]byte("admin-pass"), bcrypt.MinCost)
	require.NoError(t, err)
	hashed := string(hash)
	employees := fakeEmployeeReader{
		"EMP-001": {ID: "emp-1", EmployeeCode: "EMP-001", FullName: "Ana", IsActive: true},
		"ADM-001": {ID: "adm-1", EmployeeCode: "ADM-001", FullName: "Citra", IsAdmin: true, PasswordHash: &hashed, IsActive: true},
	}

	jwtSvc := jwt.NewJWTService(testSecret, time.Hour)
	f := &routerFixture{
		jwt:        jwtSvc,
		monitor:    perfmon.NewMonitor(),
		attendance: &stubAttendanceService{},
		reconciler: &stubReconciler{},
		leave:      &stubLeaveService{},
	}

	attendanceHandler := NewAttendanceHandler(f.attendance, f.reconciler, time.UTC).(*attendanceHandlerImpl)
	attendanceHandler.now = func() time.Time { return time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC) }

	f.router = NewRouter(jwtSvc, f.monitor, RouterOptions{
		Env:         "test",
		Version:     "test",
		LogLevel:    slog.LevelError,
		CORSOrigins: []string{"http://localhost:3000"},
		StorageDir:  t.TempDir(),
	}, Handlers{
		Auth:       NewAuthHandler(authService.NewAuthService(jwtSvc, employees)),
		Employee:   NewEmployeeHandler(stubEmployeeService{}),
		Attendance: attendanceHandler,
		Leave:      NewLeaveHandler(f.leave),

		// unused services stay nil; the handlers are only needed for routing
		WorkLog:      NewWorkLogHandler(nil, nil),
		Tag:          NewTagHandler(nil),
		Warning:      NewWarningHandler(nil),
		Penalty:      NewPenaltyHandler(nil),
		Notification: NewNotificationHandler(nil, jwtSvc),
		Metrics:      NewMetricsHandler(f.monitor),
	})
	return f
}

func (f *routerFixture) token(t *testing.T, employeeID string, isAdmin bool) string {
	t.Helper()
	token, _, err := f.jwt.GenerateAccessToken(employeeID, isAdmin)
	require.NoError(t, err)
	return token
}

func (f *routerFixture) do(t *testing.T, method, path, token string, body io.Reader, contentType string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, body)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	w := httptest.NewRecorder()
	f.router.ServeHTTP(w, req)
	return w
}

func (f *routerFixture) doJSON(t *testing.T, method, path, token string, payload interface{}) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader = http.NoBody
	if payload != nil {
		data, err := json.Marshal(payload)
		require.NoError(t, err)
		body = bytes.NewReader(data)
	}
	return f.do(t, method, path, token, body, "application/json")
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var resp map[string]interface{}
	require.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
	return resp
}

func TestRouter_LoginLogout(t *testing.T) {
	f := newRouterFixture(t)

	w := f.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"employee_code": "emp-001"})
	require.Equal(t, http.StatusCreated, w.Code)
	data := decodeBody(t, w)["data"].(map[string]interface{})
	token := data["access_token"].(string)
	assert.NotEmpty(t, token)
	assert.Equal(t, false, data["is_admin"])

	w = f.doJSON(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Ana", decodeBody(t, w)["data"].(map[string]interface{})["full_name"])

	w = f.doJSON(t, http.MethodPost, "/api/v1/auth/logout", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	// the revoked token no longer gets through
	w = f.doJSON(t, http.MethodGet, "/api/v1/auth/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_LoginErrors(t *testing.T) {
	f := newRouterFixture(t)

	w := f.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"employee_code": "ADM-001", "password": "wrong"})
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.doJSON(t, http.MethodPost, "/api/v1/auth/login", "", map[string]string{"employee_code": ""})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	errDetail := decodeBody(t, w)["error"].(map[string]interface{})
	assert.Equal(t, "VALIDATION_ERROR", errDetail["code"])

	w = f.do(t, http.MethodPost, "/api/v1/auth/login", "", bytes.NewReader([]byte("invalid json")), "application/json")
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_AuthAndAdminGuards(t *testing.T) {
	f := newRouterFixture(t)

	w := f.doJSON(t, http.MethodGet, "/api/v1/employees", "", nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = f.doJSON(t, http.MethodGet, "/api/v1/employees", f.token(t, "emp-1", false), nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.doJSON(t, http.MethodGet, "/api/v1/employees", f.token(t, "adm-1", true), nil)
	assert.Equal(t, http.StatusOK, w.Code)

	// an SSE token is not an access token
	sseToken, _, err := f.jwt.GenerateSSEToken("emp-1")
	require.NoError(t, err)
	w = f.doJSON(t, http.MethodPost, "/api/v1/attendance/check-in", sseToken, nil)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_CheckInCheckOut(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, "emp-1", false)

	w := f.doJSON(t, http.MethodPost, "/api/v1/attendance/check-in", token, nil)
	require.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, "emp-1", decodeBody(t, w)["data"].(map[string]interface{})["employee_id"])

	w = f.doJSON(t, http.MethodPost, "/api/v1/attendance/check-out", token, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestRouter_DeactivateSelfIsForbidden(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, "adm-1", true)

	w := f.doJSON(t, http.MethodPost, "/api/v1/employees/adm-1/deactivate", token, nil)
	assert.Equal(t, http.StatusForbidden, w.Code)

	w = f.doJSON(t, http.MethodPost, "/api/v1/employees/emp-1/deactivate", token, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestRouter_Reconcile(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, "adm-1", true)

	w := f.doJSON(t, http.MethodPost, "/api/v1/attendance/reconcile", token, map[string]string{"date": "2025-03-09"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"2025-03-09"}, f.reconciler.dates)

	w = f.doJSON(t, http.MethodPost, "/api/v1/attendance/reconcile", token, map[string]string{"date": "2025-03-09", "employee_id": "emp-1"})
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []string{"emp-1@2025-03-09"}, f.reconciler.days)

	w = f.doJSON(t, http.MethodPost, "/api/v1/attendance/reconcile", token, map[string]string{"date": "2025-03-11"})
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.doJSON(t, http.MethodPost, "/api/v1/attendance/reconcile", token, map[string]string{"date": "09-03-2025"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = f.doJSON(t, http.MethodPost, "/api/v1/attendance/reconcile", f.token(t, "emp-1", false), map[string]string{"date": "2025-03-09"})
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestRouter_ImportAndExport(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, "adm-1", true)

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile("file", "attendance.xlsx")
	require.NoError(t, err)
	_, err = part.Write([]byte("workbook"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	w := f.do(t, http.MethodPost, "/api/v1/attendance/import", token, &buf, mw.FormDataContentType())
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, []byte("workbook"), f.attendance.imported)

	var empty bytes.Buffer
	mw = multipart.NewWriter(&empty)
	require.NoError(t, mw.Close())
	w = f.do(t, http.MethodPost, "/api/v1/attendance/import", token, &empty, mw.FormDataContentType())
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = f.doJSON(t, http.MethodGet, "/api/v1/attendance/export?start_date=2025-03-01&end_date=2025-03-31", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "attendance_2025-03-01_2025-03-31.xlsx")
	assert.Equal(t, "xlsx-bytes", w.Body.String())

	w = f.doJSON(t, http.MethodGet, "/api/v1/attendance/export?start_date=2025-03-31&end_date=2025-03-01", token, nil)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestRouter_ApproveLeaveWithoutBody(t *testing.T) {
	f := newRouterFixture(t)

	w := f.do(t, http.MethodPost, "/api/v1/leave-requests/lr-1/approve", f.token(t, "adm-1", true), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	require.NotNil(t, f.leave.decided)
	assert.Equal(t, "lr-1", f.leave.decided.ID)
	assert.Nil(t, f.leave.decided.Note)
}

func TestRouter_StreamRequiresToken(t *testing.T) {
	f := newRouterFixture(t)
	handler := NewNotificationHandler(nil, f.jwt)

	r := chi.NewRouter()
	r.Get("/stream", handler.Stream)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stream", nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	// access tokens are rejected on the stream
	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/stream?token="+f.token(t, "emp-1", false), nil))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRouter_MetricsRecordRoutePatterns(t *testing.T) {
	f := newRouterFixture(t)
	token := f.token(t, "adm-1", true)

	f.doJSON(t, http.MethodPost, "/api/v1/employees/emp-1/deactivate", token, nil)
	f.doJSON(t, http.MethodPost, "/api/v1/employees/emp-2/deactivate", token, nil)

	w := f.doJSON(t, http.MethodGet, "/api/v1/metrics", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	var found bool
	for _, m := range f.monitor.Snapshot() {
		if m.Route == "POST /api/v1/employees/{id}/deactivate" {
			found = true
			assert.EqualValues(t, 2, m.Count)
		}
	}
	assert.True(t, found)
}
