package handler

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/portoo/portoo-backend/internal/usecase/username"
)

type UsernameHandler struct {
	usernameUseCase *username.UsernameUseCase
}

func NewUsernameHandler(usernameUseCase *username.UsernameUseCase) *UsernameHandler {
	return &UsernameHandler{
		usernameUseCase: usernameUseCase,
	}
}

// CheckUsername handles GET /api/check-username?username=
func (h *UsernameHandler) CheckUsername(c *gin.Context) {
	result, err := h.usernameUseCase.Check(c.Request.Context(), c.Query("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"available": result.Available,
		"error":     result.Error,
	})
}

// SuggestUsername handles GET /api/suggest-username?name=
func (h *UsernameHandler) SuggestUsername(c *gin.Context) {
	name := strings.TrimSpace(c.Query("name"))
	if name == "" {
		badRequest(c, "Name is required")
		return
	}

	suggestion, err := h.usernameUseCase.Suggest(c.Request.Context(), name)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":  true,
		"username": suggestion,
	})
}
