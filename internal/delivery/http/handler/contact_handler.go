package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portoo/portoo-backend/internal/usecase/contact"
)

type ContactHandler struct {
	contactUseCase *contact.ContactUseCase
}

func NewContactHandler(contactUseCase *contact.ContactUseCase) *ContactHandler {
	return &ContactHandler{
		contactUseCase: contactUseCase,
	}
}

// SendMessage handles POST /api/contact
func (h *ContactHandler) SendMessage(c *gin.Context) {
	var req contact.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	if err := h.contactUseCase.Send(c.Request.Context(), &req); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true})
}
