package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portoo/portoo-backend/internal/usecase/explore"
)

type ExploreHandler struct {
	exploreUseCase *explore.ExploreUseCase
}

func NewExploreHandler(exploreUseCase *explore.ExploreUseCase) *ExploreHandler {
	return &ExploreHandler{
		exploreUseCase: exploreUseCase,
	}
}

// Portfolios handles GET /api/explore?q=&skill=&availability=&sort=&page=
func (h *ExploreHandler) Portfolios(c *gin.Context) {
	var q explore.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.exploreUseCase.Portfolios(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}

// Projects handles GET /api/explore/projects with the same parameters
func (h *ExploreHandler) Projects(c *gin.Context) {
	var q explore.Query
	if err := c.ShouldBindQuery(&q); err != nil {
		badRequest(c, "Invalid query parameters")
		return
	}

	page, err := h.exploreUseCase.Projects(c.Request.Context(), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, page)
}
