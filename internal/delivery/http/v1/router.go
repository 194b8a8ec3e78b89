package v1

import (
	"net/http"

	"go-applicant-intake/config"
	"go-applicant-intake/internal/delivery/http/middleware"
	"go-applicant-intake/internal/delivery/http/response"
	"go-applicant-intake/internal/domain"

	"github.com/gin-gonic/gin"
)

type RouterDeps struct {
	SubmissionUC domain.SubmissionUsecase
	RateLimiter  *middleware.RateLimiter // optional
	Config       *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeadersMiddleware())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())

	// Health Check
	r.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	r.GET("/", func(c *gin.Context) {
		c.String(http.StatusOK, "Welcome to the application intake service!")
	})

	// Public routes - the form endpoint requires no authentication; the
	// rate limiter guards it when configured.
	public := r.Group("")
	if deps.RateLimiter != nil {
		NewSubmissionHandler(public, deps.SubmissionUC, deps.RateLimiter.Middleware())
	} else {
		NewSubmissionHandler(public, deps.SubmissionUC)
	}

	return r
}
