package http

import (
	"net/http"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/worklog"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/handler/http/response"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/utils"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/pkg/validator"
)

type WorkLogHandler interface {
	GetDay(w http.ResponseWriter, r *http.Request)
	SaveEntries(w http.ResponseWriter, r *http.Request)
	SubmitDay(w http.ResponseWriter, r *http.Request)
	UnlockDay(w http.ResponseWriter, r *http.Request)
	SyncActivity(w http.ResponseWriter, r *http.Request)
}

type workLogHandlerImpl struct {
	workLogService worklog.WorkLogService
	activitySync   worklog.ActivitySyncService
}

func NewWorkLogHandler(workLogService worklog.WorkLogService, activitySync worklog.ActivitySyncService) WorkLogHandler {
	return &workLogHandlerImpl{
		workLogService: workLogService,
		activitySync:   activitySync,
	}
}

// GetDay implements WorkLogHandler.
func (h *workLogHandlerImpl) GetDay(w http.ResponseWriter, r *http.Request) {
	req := worklog.DayRequest{
		EmployeeID: r.URL.Query().Get("employee_id"),
		Date:       r.URL.Query().Get("date"),
	}

	result, err := h.workLogService.GetDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// SaveEntries implements WorkLogHandler.
func (h *workLogHandlerImpl) SaveEntries(w http.ResponseWriter, r *http.Request) {
	var req worklog.SaveEntriesRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.workLogService.SaveEntries(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work log saved", result)
}

// SubmitDay implements WorkLogHandler.
func (h *workLogHandlerImpl) SubmitDay(w http.ResponseWriter, r *http.Request) {
	var req worklog.DayRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.workLogService.SubmitDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work log submitted", result)
}

// UnlockDay implements WorkLogHandler.
func (h *workLogHandlerImpl) UnlockDay(w http.ResponseWriter, r *http.Request) {
	var req worklog.DayRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.workLogService.UnlockDay(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Work log unlocked", result)
}

// SyncActivity implements WorkLogHandler.
func (h *workLogHandlerImpl) SyncActivity(w http.ResponseWriter, r *http.Request) {
	date, valid := validator.IsValidDate(r.URL.Query().Get("date"))
	if !valid {
		response.HandleError(w, validator.ValidationErrors{{Field: "date", Message: "date must be in YYYY-MM-DD format"}})
		return
	}

	summary, err := h.activitySync.SyncDate(r.Context(), date)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Activity synced for "+utils.FormatDate(date), summary)
}
