package http

import (
	"net/http"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/penalty"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/warning"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type WarningHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Acknowledge(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
}

type warningHandlerImpl struct {
	warningService warning.WarningService
}

func NewWarningHandler(warningService warning.WarningService) WarningHandler {
	return &warningHandlerImpl{warningService: warningService}
}

func parseWarningFilter(r *http.Request) warning.WarningFilter {
	return warning.WarningFilter{
		EmployeeID:   getStringQueryParam(r, "employee_id"),
		Source:       getStringQueryParam(r, "source"),
		StartDate:    getStringQueryParam(r, "start_date"),
		EndDate:      getStringQueryParam(r, "end_date"),
		Acknowledged: getOptionalBoolQueryParam(r, "acknowledged"),
		Page:         getIntQueryParam(r, "page", 1),
		Limit:        getIntQueryParam(r, "limit", 20),
	}
}

// Create implements WarningHandler.
func (h *warningHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req warning.CreateWarningRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.warningService.CreateWarning(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Warning issued", result)
}

// List implements WarningHandler.
func (h *warningHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.warningService.ListWarnings(r.Context(), parseWarningFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMine implements WarningHandler.
func (h *warningHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.warningService.ListMyWarnings(r.Context(), parseWarningFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Acknowledge implements WarningHandler.
func (h *warningHandlerImpl) Acknowledge(w http.ResponseWriter, r *http.Request) {
	result, err := h.warningService.AcknowledgeWarning(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Warning acknowledged", result)
}

// Delete implements WarningHandler.
func (h *warningHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.warningService.DeleteWarning(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Warning deleted", nil)
}

type PenaltyHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	Waive(w http.ResponseWriter, r *http.Request)
}

type penaltyHandlerImpl struct {
	penaltyService penalty.PenaltyService
}

func NewPenaltyHandler(penaltyService penalty.PenaltyService) PenaltyHandler {
	return &penaltyHandlerImpl{penaltyService: penaltyService}
}

func parsePenaltyFilter(r *http.Request) penalty.PenaltyFilter {
	return penalty.PenaltyFilter{
		EmployeeID: getStringQueryParam(r, "employee_id"),
		Status:     getStringQueryParam(r, "status"),
		StartDate:  getStringQueryParam(r, "start_date"),
		EndDate:    getStringQueryParam(r, "end_date"),
		Page:       getIntQueryParam(r, "page", 1),
		Limit:      getIntQueryParam(r, "limit", 20),
	}
}

// Create implements PenaltyHandler.
func (h *penaltyHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req penalty.CreatePenaltyRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.penaltyService.CreatePenalty(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Penalty issued", result)
}

// List implements PenaltyHandler.
func (h *penaltyHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	result, err := h.penaltyService.ListPenalties(r.Context(), parsePenaltyFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// ListMine implements PenaltyHandler.
func (h *penaltyHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	result, err := h.penaltyService.ListMyPenalties(r.Context(), parsePenaltyFilter(r))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Waive implements PenaltyHandler.
func (h *penaltyHandlerImpl) Waive(w http.ResponseWriter, r *http.Request) {
	var req penalty.WaivePenaltyRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.penaltyService.WaivePenalty(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Penalty waived", result)
}
