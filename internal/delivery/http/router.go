package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/portoo/portoo-backend/internal/delivery/http/handler"
	"github.com/portoo/portoo-backend/internal/delivery/http/middleware"
	"github.com/portoo/portoo-backend/internal/infrastructure/logger"
)

// Handlers groups the route handlers. Files is optional and only set for the in-memory object store.
type Handlers struct {
	Username  *handler.UsernameHandler
	Portfolio *handler.PortfolioHandler
	Upload    *handler.UploadHandler
	Contact   *handler.ContactHandler
	Explore   *handler.ExploreHandler
	Bio       *handler.BioHandler
	Page      *handler.PageHandler
	Files     *handler.FileHandler
}

type Router struct {
	handlers       Handlers
	authMiddleware *middleware.AuthMiddleware
	corsOrigins    []string
	log            *logger.Logger
}

func NewRouter(
	handlers Handlers,
	authMiddleware *middleware.AuthMiddleware,
	corsOrigins []string,
	log *logger.Logger,
) *Router {
	return &Router{
		handlers:       handlers,
		authMiddleware: authMiddleware,
		corsOrigins:    corsOrigins,
		log:            log,
	}
}

func (r *Router) Setup() *gin.Engine {
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(r.log))
	router.Use(middleware.CORS(r.corsOrigins))

	// Health check (supports both GET and HEAD)
	healthHandler := func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status": "ok",
		})
	}
	router.GET("/health", healthHandler)
	router.HEAD("/health", healthHandler)

	h := r.handlers
	api := router.Group("/api")
	{
		api.GET("/check-username", h.Username.CheckUsername)
		api.GET("/suggest-username", h.Username.SuggestUsername)

		portfolio := api.Group("/portfolio")
		{
			portfolio.POST("", h.Portfolio.CreatePortfolio)
			portfolio.GET("/:username", h.Portfolio.GetPortfolio)
			portfolio.PATCH("/:username", r.authMiddleware.RequireAuth(), h.Portfolio.UpdatePortfolio)
		}
		api.GET("/my-portfolios", r.authMiddleware.RequireAuth(), h.Portfolio.MyPortfolios)
		api.POST("/views", h.Portfolio.IncrementViews)

		api.POST("/upload", h.Upload.Upload)
		api.POST("/contact", h.Contact.SendMessage)

		api.GET("/explore", h.Explore.Portfolios)
		api.GET("/explore/projects", h.Explore.Projects)

		api.POST("/bio/drafts", h.Bio.Drafts)
	}

	if h.Files != nil {
		router.GET("/files/:bucket/*key", h.Files.Serve)
	}

	// Public portfolio pages
	router.GET("/:username", h.Page.Portfolio)

	return router
}
