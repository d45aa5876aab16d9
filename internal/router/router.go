package router

import (
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	"github.com/healthdesk/clinic-api/internal/handler/feedback"
	"github.com/healthdesk/clinic-api/internal/handler/health"
	"github.com/healthdesk/clinic-api/internal/handler/prometheus"
	"github.com/healthdesk/clinic-api/internal/middleware"
	"github.com/healthdesk/clinic-api/internal/model"
)

type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

type RouterConfig struct {
	RateLimit  rate.Limit
	RateBurst  int
	Timeout    time.Duration
	CORSConfig middleware.CORSConfig
}

type Router struct {
	engine     *gin.Engine
	auth       *middleware.AuthMiddleware
	healthH    *health.Handler
	metricsH   *prometheus.Handler
	authH      Handler
	slotH      Handler
	bindingH   Handler
	accountH   Handler
	recordH    Handler
	feedbackH  *feedback.Handler
	inpatientH Handler
	medcenterH Handler
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	healthH *health.Handler,
	metricsH *prometheus.Handler,
	authH Handler,
	slotH Handler,
	bindingH Handler,
	accountH Handler,
	recordH Handler,
	feedbackH *feedback.Handler,
	inpatientH Handler,
	medcenterH Handler,
	config RouterConfig,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	r := &Router{
		engine:     engine,
		auth:       auth,
		healthH:    healthH,
		metricsH:   metricsH,
		authH:      authH,
		slotH:      slotH,
		bindingH:   bindingH,
		accountH:   accountH,
		recordH:    recordH,
		feedbackH:  feedbackH,
		inpatientH: inpatientH,
		medcenterH: medcenterH,
	}

	if config.Timeout <= 0 {
		config.Timeout = middleware.DefaultTimeoutConfig().Duration
	}

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		metricsH.Middleware(),
		middleware.Timeout(middleware.TimeoutConfig{Duration: config.Timeout}),
	)

	engine.Use(middleware.CORS(config.CORSConfig))

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})
	engine.Use(rateLimiter.RateLimit())

	return r
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	r.healthH.RegisterRoutes(api)
	api.GET("/metrics", r.metricsH.Handler())

	// Public routes
	r.authH.RegisterRoutes(api)

	// Protected routes
	protected := api.Group("")
	protected.Use(r.auth.Authenticate())

	r.slotH.RegisterRoutes(protected)
	r.bindingH.RegisterRoutes(protected)
	r.accountH.RegisterRoutes(protected)
	r.recordH.RegisterRoutes(protected)
	r.inpatientH.RegisterRoutes(protected)
	r.medcenterH.RegisterRoutes(protected)
	r.feedbackH.RegisterRoutes(protected)

	staff := protected.Group("")
	staff.Use(r.auth.RequireRole(model.AccountRoleStaff))
	r.feedbackH.RegisterModerationRoutes(staff)
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
