package v1

import (
	"context"
	"net/http"
	"time"

	"go-hiring-sync/internal/delivery/http/middleware"
	"go-hiring-sync/internal/delivery/http/response"
	"go-hiring-sync/internal/domain"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// HiringAPI is everything the HTTP surface calls on the domain service.
type HiringAPI interface {
	domain.UserUsecase
	domain.JobUsecase
	domain.CandidateUsecase
	domain.InterviewUsecase
	domain.FeedbackUsecase
	domain.OfferUsecase
	domain.AnalyticsUsecase
	domain.AuditUsecase
}

// HealthChecker reports per-dependency status under /v1/health.
type HealthChecker interface {
	Check(ctx context.Context) map[string]string
}

type RouterDeps struct {
	Service     HiringAPI
	Health      HealthChecker
	UploadGate  middleware.UploadGate
	Log         *zap.Logger
	JWTSecret   string
	FrontendURL string
	Production  bool
	Clock       func() time.Time
}

func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Clock == nil {
		deps.Clock = time.Now
	}
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.FrontendURL, deps.Production)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.RequestLogger(deps.Log))
	r.Use(middleware.SecurityHeadersMiddleware(deps.Production))
	r.Use(middleware.ErrorHandler(deps.Log))

	v1 := r.Group("/v1")

	v1.GET("/health", func(c *gin.Context) {
		if deps.Health == nil {
			response.Success(c, http.StatusOK, "System operational", nil)
			return
		}
		status := deps.Health.Check(c.Request.Context())
		if status["status"] != "ok" {
			response.Error(c, http.StatusServiceUnavailable, "System degraded", status)
			return
		}
		response.Success(c, http.StatusOK, "System operational", status)
	})

	protected := v1.Group("")
	protected.Use(middleware.CSRFMiddleware(deps.Production))
	protected.Use(middleware.AuthMiddleware(deps.JWTSecret, deps.Service))
	{
		NewUserHandler(protected, deps.Service)
		NewJobHandler(protected, deps.Service)
		NewCandidateHandler(protected, deps.Service, middleware.UploadLimit(deps.UploadGate, deps.Log))
		NewInterviewHandler(protected, deps.Service, deps.Clock)
		NewFeedbackHandler(protected, deps.Service)
		NewOfferHandler(protected, deps.Service)
		NewReportHandler(protected, deps.Service, deps.Service, deps.Clock)
	}

	return r
}
