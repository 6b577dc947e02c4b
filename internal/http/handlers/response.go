// Package handlers implements the HTTP endpoints of the buyer intake API.
//
// Success payloads are endpoint-specific; failures always use the
// ErrorResponse envelope with a stable machine-readable code (errors.go) so
// clients can branch without parsing prose:
//
//	HTTP/1.1 404 Not Found
//	{
//	  "request_id": "123e4567-e89b-12d3-a456-426614174000",
//	  "code": "not_found",
//	  "message": "buyer not found"
//	}
package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/leadstack/buyer-intake/internal/http/middleware"
)

// ErrorResponse is the error envelope shared by every endpoint. RequestID
// echoes the X-Request-ID response header so a client-side report can be
// matched to server logs.
type ErrorResponse struct {
	RequestID string `json:"request_id,omitempty" example:"123e4567-e89b-12d3-a456-426614174000"`
	Code      string `json:"code" example:"not_found"`
	Message   string `json:"message" example:"buyer not found"`
}

// fail stops the request with status and a structured envelope. Server-side
// failures (>= 500) are additionally logged through the request-scoped logger.
func fail(c *gin.Context, status int, code, msg string) {
	if status >= http.StatusInternalServerError {
		middleware.LoggerFrom(c).Error().
			Int("status", status).
			Str("code", code).
			Str("message", msg).
			Msg("api error")
	}
	c.AbortWithStatusJSON(status, ErrorResponse{
		RequestID: c.Writer.Header().Get("X-Request-ID"),
		Code:      code,
		Message:   msg,
	})
}

// Fail exposes fail to other packages; the router uses it for NoRoute and
// NoMethod responses.
func Fail(c *gin.Context, status int, code, msg string) { fail(c, status, code, msg) }

// ok writes body as JSON with the given status.
func ok(c *gin.Context, status int, body any) { c.JSON(status, body) }

// noContent answers 204 with an empty body.
func noContent(c *gin.Context) { c.Status(http.StatusNoContent) }
