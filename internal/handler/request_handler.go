package handler

import (
	"errors"
	"io"
	"net/http"

	"backend/internal/middleware"
	"backend/internal/service"
	"backend/pkg/response"

	"github.com/gin-gonic/gin"
)

type RequestHandler struct {
	requestService service.RequestService
}

func NewRequestHandler(requestService service.RequestService) *RequestHandler {
	return &RequestHandler{requestService: requestService}
}

// RegisterRoutes binds the request lifecycle endpoints to the gin RouterGroup
func (h *RequestHandler) RegisterRoutes(router *gin.RouterGroup) {
	requests := router.Group("/api/requests", middleware.RequireAuth())
	{
		requests.GET("", h.ListRequests)
		requests.POST("", h.CreateRequest)
		requests.PUT("/:id", h.UpdateRequest)
		requests.PUT("/:id/cancel", h.CancelRequest)
		requests.PUT("/:id/status", middleware.RequireAdmin(), h.ChangeStatus)
		requests.PUT("/:id/status/override", middleware.RequireAdmin(), h.OverrideStatus)
		requests.DELETE("/:id", middleware.RequireAdmin(), h.DeleteRequest)
	}
}

// ListRequests returns requests newest first: all of them for the
// administrator, only the caller's own for an employee
// @Summary      List requests
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  response.Response{data=[]service.RequestResponse}
// @Failure      500  {object}  response.Response
// @Router       /api/requests [get]
func (h *RequestHandler) ListRequests(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	requests, err := h.requestService.List(c.Request.Context(), identity)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, requests))
}

// CreateRequest submits a new supply request for the authenticated employee
// @Summary      Submit a request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        payload  body      service.CreateRequestDTO  true  "New Request"
// @Success      201      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Failure      500      {object}  response.Response
// @Router       /api/requests [post]
func (h *RequestHandler) CreateRequest(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	var req service.CreateRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.requestService.Create(c.Request.Context(), identity, req)
	if err != nil {
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
		return
	}

	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, result))
}

// UpdateRequest edits a pending request owned by the caller
// @Summary      Edit a pending request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Request ID"
// @Param        payload  body      service.UpdateRequestDTO  true  "Updated Fields"
// @Success      200      {object}  response.Response{data=service.RequestResponse}
// @Failure      400      {object}  response.Response
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/requests/{id} [put]
func (h *RequestHandler) UpdateRequest(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	var req service.UpdateRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	result, err := h.requestService.Update(c.Request.Context(), identity, c.Param("id"), req)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// CancelRequest self-cancels a pending request owned by the caller
// @Summary      Cancel a pending request
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                    true  "Request ID"
// @Param        payload  body      service.CancelRequestDTO  false "Optional Comment"
// @Success      200      {object}  response.Response{data=service.RequestResponse}
// @Failure      404      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/requests/{id}/cancel [put]
func (h *RequestHandler) CancelRequest(c *gin.Context) {
	identity, _ := middleware.GetIdentity(c)

	var req service.CancelRequestDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		// An empty body is fine (comment is optional); anything else that
		// fails to parse is a client error, not an implicit no-comment.
		if !errors.Is(err, io.EOF) {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
			return
		}
		req.Comment = ""
	}

	result, err := h.requestService.Cancel(c.Request.Context(), identity, c.Param("id"), req.Comment)
	if err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, result))
}

// ChangeStatus moves a request through the guarded transition table
// @Summary      Change request status
// @Description  Administrator transition restricted to the lifecycle table; a missing request is a silent no-op
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                   true  "Request ID"
// @Param        payload  body      service.ChangeStatusDTO  true  "Target Status"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Failure      409      {object}  response.Response
// @Router       /api/requests/{id}/status [put]
func (h *RequestHandler) ChangeStatus(c *gin.Context) {
	h.changeStatus(c, false)
}

// OverrideStatus applies any status unconditionally (administrator correction)
// @Summary      Override request status
// @Description  Unconditional administrator overwrite, bypassing the transition table
// @Tags         requests
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                   true  "Request ID"
// @Param        payload  body      service.ChangeStatusDTO  true  "Target Status"
// @Success      200      {object}  response.Response
// @Failure      400      {object}  response.Response
// @Router       /api/requests/{id}/status/override [put]
func (h *RequestHandler) OverrideStatus(c *gin.Context) {
	h.changeStatus(c, true)
}

func (h *RequestHandler) changeStatus(c *gin.Context, override bool) {
	var req service.ChangeStatusDTO
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "Invalid request payload: "+err.Error()))
		return
	}

	if err := h.requestService.ChangeStatus(c.Request.Context(), c.Param("id"), req, override); err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "status updated"}))
}

// DeleteRequest removes a finalized request
// @Summary      Delete a finalized request
// @Tags         requests
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Request ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/requests/{id} [delete]
func (h *RequestHandler) DeleteRequest(c *gin.Context) {
	if err := h.requestService.Delete(c.Request.Context(), c.Param("id")); err != nil {
		respondLifecycleError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, gin.H{"message": "request deleted"}))
}

// respondLifecycleError maps the lifecycle precondition outcomes to
// specific HTTP statuses; anything else is a store failure the caller
// should retry manually.
func respondLifecycleError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrRequestNotFound):
		c.JSON(http.StatusNotFound, response.Error(http.StatusNotFound, err.Error()))
	case errors.Is(err, service.ErrRequestNotPending),
		errors.Is(err, service.ErrRequestNotFinalized),
		errors.Is(err, service.ErrIllegalTransition):
		c.JSON(http.StatusConflict, response.Error(http.StatusConflict, err.Error()))
	case errors.Is(err, service.ErrInvalidStatus):
		c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, err.Error()))
	case errors.Is(err, service.ErrForbidden):
		c.JSON(http.StatusForbidden, response.Error(http.StatusForbidden, err.Error()))
	default:
		c.JSON(http.StatusInternalServerError, response.Error(http.StatusInternalServerError, err.Error()))
	}
}
