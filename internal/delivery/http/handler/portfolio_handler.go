package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portoo/portoo-backend/internal/apperr"
	"github.com/portoo/portoo-backend/internal/usecase/auth"
	"github.com/portoo/portoo-backend/internal/usecase/portfolio"
)

type PortfolioHandler struct {
	portfolioUseCase *portfolio.PortfolioUseCase
}

func NewPortfolioHandler(portfolioUseCase *portfolio.PortfolioUseCase) *PortfolioHandler {
	return &PortfolioHandler{
		portfolioUseCase: portfolioUseCase,
	}
}

// ViewRequest is the body of POST /api/views
type ViewRequest struct {
	Username string `json:"username"`
}

// CreatePortfolio handles POST /api/portfolio
func (h *PortfolioHandler) CreatePortfolio(c *gin.Context) {
	var req portfolio.CreatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	result, err := h.portfolioUseCase.Create(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"success":       true,
		"username":      result.Username,
		"portfolio_url": result.PortfolioURL,
	})
}

// GetPortfolio handles GET /api/portfolio/:username
func (h *PortfolioHandler) GetPortfolio(c *gin.Context) {
	agg, err := h.portfolioUseCase.GetPublic(c.Request.Context(), c.Param("username"))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, agg)
}

// UpdatePortfolio handles PATCH /api/portfolio/:username. Requires auth.
func (h *PortfolioHandler) UpdatePortfolio(c *gin.Context) {
	id, ok := auth.IdentityFrom(c.Request.Context())
	if !ok {
		respondError(c, apperr.Unauthorized("Unauthorized", auth.ErrMissingToken))
		return
	}

	var req portfolio.UpdatePortfolioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	agg, err := h.portfolioUseCase.Update(c.Request.Context(), c.Param("username"), id.Email, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":   true,
		"portfolio": agg,
	})
}

// MyPortfolios handles GET /api/my-portfolios. Requires auth.
func (h *PortfolioHandler) MyPortfolios(c *gin.Context) {
	id, ok := auth.IdentityFrom(c.Request.Context())
	if !ok {
		respondError(c, apperr.Unauthorized("Unauthorized", auth.ErrMissingToken))
		return
	}

	list, err := h.portfolioUseCase.ListMine(c.Request.Context(), id.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"success":    true,
		"portfolios": list,
	})
}

// IncrementViews handles POST /api/views
func (h *PortfolioHandler) IncrementViews(c *gin.Context) {
	var req ViewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	count, err := h.portfolioUseCase.IncrementViews(c.Request.Context(), req.Username)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"count": count})
}
