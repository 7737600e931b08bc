package handler

import (
	"bytes"
	"html/template"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portoo/portoo-backend/internal/apperr"
	"github.com/portoo/portoo-backend/internal/delivery/http/web"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
	"github.com/portoo/portoo-backend/internal/usecase/portfolio"
)

type PageHandler struct {
	portfolioUseCase *portfolio.PortfolioUseCase
	pages            *template.Template
	log              *logger.Logger
}

func NewPageHandler(portfolioUseCase *portfolio.PortfolioUseCase, pages *template.Template, log *logger.Logger) *PageHandler {
	return &PageHandler{
		portfolioUseCase: portfolioUseCase,
		pages:            pages,
		log:              log.With("handler", "page"),
	}
}

// Portfolio handles GET /:username and renders the public page in the owner's template.
func (h *PageHandler) Portfolio(c *gin.Context) {
	username := c.Param("username")

	agg, err := h.portfolioUseCase.GetPublic(c.Request.Context(), username)
	if err != nil {
		status := apperr.From(err).Status
		if status == http.StatusNotFound {
			h.render(c, http.StatusNotFound, web.NotFoundPage, username)
			return
		}
		c.String(status, "Something went wrong")
		return
	}

	h.render(c, http.StatusOK, web.PageFor(agg.Template), agg)
}

func (h *PageHandler) render(c *gin.Context, status int, name string, data interface{}) {
	var buf bytes.Buffer
	if err := h.pages.ExecuteTemplate(&buf, name, data); err != nil {
		h.log.Error("Page render failed", "page", name, "error", err)
		c.String(http.StatusInternalServerError, "Something went wrong")
		return
	}
	c.Data(status, "text/html; charset=utf-8", buf.Bytes())
}
