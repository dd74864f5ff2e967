package handler

import (
	"strings"

	"wallet-service/internal/adapter/http/middleware"
	redisStore "wallet-service/internal/adapter/storage/redis"
	"wallet-service/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
)

// MaxBodyBytes caps every request body.
const MaxBodyBytes = 1 << 20

// RouterDeps holds all dependencies needed to set up routes.
type RouterDeps struct {
	AuthSvc        ports.AuthService
	WalletSvc      ports.WalletService
	RateLimitStore *redisStore.RateLimitStore // nil = rate limiting disabled
	HealthCheckers []ports.HealthChecker
	Metrics        *middleware.HTTPMetrics // nil = request metrics disabled
	Gatherer       prometheus.Gatherer     // nil = no /metrics endpoint
	OpenAPISpec    []byte                  // nil = no /swagger endpoints
	APIPrefix      string
	Logger         zerolog.Logger
}

// SetupRouter initialises the Gin engine with all routes and middleware.
func SetupRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global middleware
	r.Use(middleware.RequestID())
	r.Use(middleware.Recovery(deps.Logger))
	r.Use(middleware.RequestLogger(deps.Logger))
	if deps.Metrics != nil {
		r.Use(deps.Metrics.Middleware())
	}
	r.Use(middleware.MaxBodySize(MaxBodyBytes))

	// Health check (PostgreSQL, plus Redis when enabled)
	r.GET("/health", HealthCheck(deps.HealthCheckers...))

	if deps.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(deps.Gatherer, promhttp.HandlerOpts{})))
	}

	if deps.OpenAPISpec != nil {
		swagger := r.Group("/swagger")
		{
			swagger.GET("", SwaggerUI("/swagger/spec"))
			swagger.GET("/spec", SwaggerSpec(deps.OpenAPISpec))
		}
	}

	// Rate limit rules
	rules := middleware.DefaultRateLimitRules()

	// Helper: return rate limiter middleware if store is available, else noop.
	rl := func(group string) gin.HandlerFunc {
		if deps.RateLimitStore == nil {
			return func(c *gin.Context) { c.Next() }
		}
		rule, ok := rules[group]
		if !ok {
			return func(c *gin.Context) { c.Next() }
		}
		return middleware.RateLimiter(deps.RateLimitStore, group, rule, deps.Logger)
	}

	api := r.Group(strings.TrimSuffix(deps.APIPrefix, "/"))
	jwtAuth := middleware.JWTAuth(deps.AuthSvc, deps.Logger)

	authHandler := NewAuthHandler(deps.AuthSvc)
	auth := api.Group("/auth")
	{
		auth.POST("/login", rl("auth_login"), authHandler.Login)
		auth.POST("/refresh", rl("auth_refresh"), authHandler.Refresh)
		auth.GET("/me", jwtAuth, authHandler.Me)
	}

	walletHandler := NewWalletHandler(deps.WalletSvc)
	wallets := api.Group("/v1/wallets", jwtAuth)
	{
		wallets.POST("", rl("wallets_operation"), walletHandler.Create)
		wallets.GET("/:uuid", rl("wallets_read"), walletHandler.Get)
		wallets.POST("/:uuid/operation", rl("wallets_operation"), walletHandler.Operation)
	}

	return r
}
