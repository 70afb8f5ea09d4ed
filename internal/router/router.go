package router

import (
	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/servly/pricing-api/internal/handler"
	"github.com/servly/pricing-api/internal/middleware"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type RouterConfig struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	CORSConfig       middleware.CORSConfig
	Timeout          middleware.TimeoutConfig
}

type Router struct {
	engine   *gin.Engine
	auth     *middleware.AuthMiddleware
	pricingH Handler
	unitH    Handler
	auditH   Handler
	h        *handler.Handler
	config   RouterConfig
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	pricingH Handler,
	unitH Handler,
	auditH Handler,
	h *handler.Handler,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	return &Router{
		engine:   gin.New(),
		auth:     auth,
		pricingH: pricingH,
		unitH:    unitH,
		auditH:   auditH,
		h:        h,
		config:   config,
	}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}

func (r *Router) Setup() {
	registerValidations()

	r.engine.Use(
		middleware.RequestID(),
		middleware.Recovery(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		middleware.CORS(r.config.CORSConfig),
		middleware.Timeout(r.config.Timeout),
	)

	if r.config.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  r.config.RateLimit,
			Burst: r.config.RateBurst,
		})
		r.engine.Use(limiter.RateLimit())
	}

	r.engine.GET("/health/live", r.h.LivenessCheck)
	r.engine.GET("/health/ready", r.h.ReadinessCheck)
	r.engine.GET("/metrics", r.h.MetricsHandler)

	api := r.engine.Group("/api/v1")
	api.Use(r.auth.Authenticate())
	{
		r.pricingH.RegisterRoutes(api)
		r.unitH.RegisterRoutes(api)
		r.auditH.RegisterRoutes(api)
	}
}
