package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/portoo/portoo-backend/internal/apperr"
)

// ErrorResponse is the failure envelope shared by every JSON endpoint
type ErrorResponse struct {
	Success bool        `json:"success"`
	Error   string      `json:"error"`
	Details interface{} `json:"details,omitempty"`
}

func respondError(c *gin.Context, err error) {
	ae := apperr.From(err)
	c.JSON(ae.Status, ErrorResponse{
		Success: false,
		Error:   ae.Message,
		Details: ae.Details,
	})
}

func badRequest(c *gin.Context, message string) {
	respondError(c, apperr.BadRequest(message, nil))
}
