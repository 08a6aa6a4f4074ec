package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"jobspring-backend/config"
	"jobspring-backend/internal/delivery/http/middleware"
	"jobspring-backend/internal/delivery/http/response"
	"jobspring-backend/internal/domain"
)

type RouterDeps struct {
	JobUC         domain.JobUsecase
	ApplicationUC domain.ApplicationUsecase
	UserRepo      domain.UserRepository
	Config        *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.WebBaseURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger())
	r.Use(middleware.SecurityHeaders())
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.GlobalRateLimitMiddleware(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Public routes (board listing and detail)
	public := v1.Group("")

	// Authenticated routes
	authed := v1.Group("")
	authed.Use(middleware.AuthMiddleware(deps.Config, deps.UserRepo))

	jobseeker := authed.Group("/jobseeker")
	jobseeker.Use(middleware.RequireRole(domain.RoleJobseeker))

	hr := authed.Group("/hr")
	hr.Use(middleware.RequireRole(domain.RoleHRUser))

	NewJobHandler(public, hr, deps.JobUC)
	NewApplicationHandler(jobseeker, hr, deps.ApplicationUC)

	return r
}
