package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portoo/portoo-backend/internal/usecase/bio"
)

type BioHandler struct {
	bioUseCase *bio.BioUseCase
}

func NewBioHandler(bioUseCase *bio.BioUseCase) *BioHandler {
	return &BioHandler{
		bioUseCase: bioUseCase,
	}
}

// Drafts handles POST /api/bio/drafts
func (h *BioHandler) Drafts(c *gin.Context) {
	var req bio.DraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	resp, err := h.bioUseCase.Drafts(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"drafts":    resp.Drafts,
		"generated": resp.Generated,
	})
}
