package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/shopsync/backend/internal/domain/integration"
	"github.com/shopsync/backend/internal/domain/shared"
	"github.com/shopsync/backend/internal/interfaces/http/dto"
	"github.com/shopsync/backend/internal/interfaces/http/middleware"
)

// BaseHandler provides common handler utilities
type BaseHandler struct{}

// getRequestID extracts the request ID from the context
func getRequestID(c *gin.Context) string {
	if id := middleware.GetRequestID(c); id != "" {
		return id
	}
	return c.GetHeader("X-Request-ID")
}

// Success sends a success response
func (h *BaseHandler) Success(c *gin.Context, data any) {
	c.JSON(http.StatusOK, dto.NewSuccessResponse(data))
}

// Accepted sends a 202 accepted response for work that continues
// asynchronously.
func (h *BaseHandler) Accepted(c *gin.Context, data any) {
	c.JSON(http.StatusAccepted, dto.NewSuccessResponse(data))
}

// Error sends an error response with the appropriate status code
func (h *BaseHandler) Error(c *gin.Context, statusCode int, code, message string) {
	c.JSON(statusCode, dto.NewErrorResponseWithRequestID(code, message, getRequestID(c)))
}

// BadRequest sends a 400 bad request response
func (h *BaseHandler) BadRequest(c *gin.Context, message string) {
	h.Error(c, http.StatusBadRequest, dto.ErrCodeBadRequest, message)
}

// NotFound sends a 404 not found response
func (h *BaseHandler) NotFound(c *gin.Context, message string) {
	h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, message)
}

// Unauthorized sends a 401 unauthorized response
func (h *BaseHandler) Unauthorized(c *gin.Context, message string) {
	h.Error(c, http.StatusUnauthorized, dto.ErrCodeUnauthorized, message)
}

// InternalError sends a 500 internal server error response
func (h *BaseHandler) InternalError(c *gin.Context, message string) {
	h.Error(c, http.StatusInternalServerError, dto.ErrCodeInternal, message)
}

// HandleError converts domain and integration errors to HTTP responses
func (h *BaseHandler) HandleError(c *gin.Context, err error) {
	if err == nil {
		return
	}

	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		code := dto.NormalizeErrorCode(domainErr.Code)
		h.Error(c, dto.GetHTTPStatus(code), code, domainErr.Message)
		return
	}

	var unmapped *integration.UnmappedProductsError
	if errors.As(err, &unmapped) {
		h.Error(c, http.StatusUnprocessableEntity, dto.ErrCodeUnmappedProduct, unmapped.Error())
		return
	}

	var rejection *integration.RejectionError
	if errors.As(err, &rejection) {
		h.Error(c, http.StatusUnprocessableEntity, dto.ErrCodeSubmissionRejected, rejection.Error())
		return
	}

	switch {
	case errors.Is(err, shared.ErrNotFound), errors.Is(err, integration.ErrMappingNotFound):
		h.Error(c, http.StatusNotFound, dto.ErrCodeNotFound, err.Error())
	case errors.Is(err, integration.ErrERPUnavailable),
		errors.Is(err, integration.ErrERPRequestFailed),
		errors.Is(err, integration.ErrStorefrontRequestFailed):
		h.Error(c, http.StatusBadGateway, dto.ErrCodeUpstreamUnavailable, err.Error())
	case errors.Is(err, integration.ErrERPNotConfigured),
		errors.Is(err, integration.ErrStorefrontNotConfigured):
		h.Error(c, http.StatusConflict, dto.ErrCodeInvalidState, err.Error())
	default:
		h.InternalError(c, "An unexpected error occurred")
	}
}
