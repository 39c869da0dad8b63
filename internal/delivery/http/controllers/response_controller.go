package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"datepoll/internal/delivery/http/helpers"
	"datepoll/internal/domain"
)

// SubmitResponseRequest is the request body for POST and PUT under
// /api/events/{slug}/responses. Availability must have one entry per
// candidate date of the event, in the same order.
type SubmitResponseRequest struct {
	Name         string `json:"name"`
	Availability []bool `json:"availability"`
}

// Validate implements Validator. The availability/dates length check needs
// the event and is done by the service.
func (s SubmitResponseRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(s.Name) == "" {
		errs = append(errs, "name is required")
	}
	if len(s.Availability) == 0 {
		errs = append(errs, "availability is required")
	}
	return errs
}

// ResponseSuccessResponse is the success response envelope for response
// submissions and edits.
type ResponseSuccessResponse struct {
	Data  *domain.Response  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type ResponseController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewResponseController(logger *slog.Logger, svc domain.EventService) *ResponseController {
	return &ResponseController{
		Logger:  logger,
		Service: svc,
	}
}

// writeResponseError maps service errors for response submissions to the
// JSON envelope.
func (c *ResponseController) writeResponseError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		helpers.WriteJSONError(w, http.StatusNotFound, helpers.ErrCodeNotFound, "event or response not found")
	case errors.Is(err, domain.ErrDeadlinePassed):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeDeadlinePassed, "response deadline has passed")
	case errors.Is(err, domain.ErrInvalidInput):
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, err.Error())
	default:
		c.Logger.ErrorContext(r.Context(), "request failed", "path", r.URL.Path, "method", r.Method, "err", err)
		helpers.WriteJSONError(w, http.StatusInternalServerError, helpers.ErrCodeInternalError, err.Error())
	}
}

// SubmitResponse godoc
// @Summary Submit an availability response
// @Description Records one invitee's availability for the event's candidate dates. Rejected once the event's deadline has passed. Submitting the same name again creates a new record; use PUT to edit an existing one.
// @Tags responses
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param response body SubmitResponseRequest true "Name and per-date availability"
// @Success 201 {object} controllers.ResponseSuccessResponse "data contains the created response"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or deadline_passed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/responses [post]
func (c *ResponseController) SubmitResponse(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	if slug == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug")
		return
	}
	var req SubmitResponseRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	response, err := c.Service.SubmitResponse(r.Context(), slug, req.Name, req.Availability)
	if err != nil {
		c.writeResponseError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, response)
}

// UpdateResponse godoc
// @Summary Edit an existing availability response
// @Description Replaces the name and availability of the response in place. Subject to the same deadline and validation rules as submission.
// @Tags responses
// @Accept json
// @Produce json
// @Param slug path string true "Event slug"
// @Param responseID path string true "Response ID"
// @Param response body SubmitResponseRequest true "Name and per-date availability"
// @Success 200 {object} controllers.ResponseSuccessResponse "data contains the updated response"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or deadline_passed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{slug}/responses/{responseID} [put]
func (c *ResponseController) UpdateResponse(w http.ResponseWriter, r *http.Request) {
	slug := r.PathValue("slug")
	responseID := r.PathValue("responseID")
	if slug == "" || responseID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing slug or responseID")
		return
	}
	var req SubmitResponseRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	response, err := c.Service.UpdateResponse(r.Context(), slug, responseID, req.Name, req.Availability)
	if err != nil {
		c.writeResponseError(w, r, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, response)
}
