package http

import (
	"net/http"

	"github.com/cmlabs-hris/worktrack-backend-go/internal/domain/tag"
	"github.com/cmlabs-hris/worktrack-backend-go/internal/handler/http/response"
	"github.com/go-chi/chi/v5"
)

type TagHandler interface {
	List(w http.ResponseWriter, r *http.Request)
	Get(w http.ResponseWriter, r *http.Request)
	Create(w http.ResponseWriter, r *http.Request)
	Update(w http.ResponseWriter, r *http.Request)
	Delete(w http.ResponseWriter, r *http.Request)
	Assign(w http.ResponseWriter, r *http.Request)
	Unassign(w http.ResponseWriter, r *http.Request)
	ListAssigned(w http.ResponseWriter, r *http.Request)
}

type tagHandlerImpl struct {
	tagService tag.TagService
}

func NewTagHandler(tagService tag.TagService) TagHandler {
	return &tagHandlerImpl{
		tagService: tagService,
	}
}

// List implements TagHandler.
func (h *tagHandlerImpl) List(w http.ResponseWriter, r *http.Request) {
	filter := tag.TagFilter{
		Search:   getStringQueryParam(r, "search"),
		IsActive: getOptionalBoolQueryParam(r, "is_active"),
		Page:     getIntQueryParam(r, "page", 1),
		Limit:    getIntQueryParam(r, "limit", 20),
	}

	result, err := h.tagService.ListTags(r.Context(), filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Get implements TagHandler.
func (h *tagHandlerImpl) Get(w http.ResponseWriter, r *http.Request) {
	result, err := h.tagService.GetTag(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// Create implements TagHandler.
func (h *tagHandlerImpl) Create(w http.ResponseWriter, r *http.Request) {
	var req tag.CreateTagRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	result, err := h.tagService.CreateTag(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Tag created successfully", result)
}

// Update implements TagHandler.
func (h *tagHandlerImpl) Update(w http.ResponseWriter, r *http.Request) {
	var req tag.UpdateTagRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	req.ID = chi.URLParam(r, "id")

	result, err := h.tagService.UpdateTag(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tag updated successfully", result)
}

// Delete implements TagHandler.
func (h *tagHandlerImpl) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.tagService.DeleteTag(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tag deactivated successfully", nil)
}

// Assign implements TagHandler.
func (h *tagHandlerImpl) Assign(w http.ResponseWriter, r *http.Request) {
	req := tag.AssignTagRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		TagID:      chi.URLParam(r, "id"),
	}

	result, err := h.tagService.AssignTag(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Created(w, "Tag assigned successfully", result)
}

// Unassign implements TagHandler.
func (h *tagHandlerImpl) Unassign(w http.ResponseWriter, r *http.Request) {
	req := tag.AssignTagRequest{
		EmployeeID: chi.URLParam(r, "employeeID"),
		TagID:      chi.URLParam(r, "id"),
	}

	if err := h.tagService.UnassignTag(r.Context(), req); err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Tag unassigned successfully", nil)
}

// ListAssigned implements TagHandler. Admins may pass employee_id.
func (h *tagHandlerImpl) ListAssigned(w http.ResponseWriter, r *http.Request) {
	result, err := h.tagService.ListAssignedTags(r.Context(), r.URL.Query().Get("employee_id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}
