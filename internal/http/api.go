package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"garage-api/internal/metrics"
	"garage-api/internal/service"
)

// Handler wires HTTP routes to domain services.
type Handler struct {
	admins   service.AdministratorService
	vehicles service.VehicleService
	auth     service.AuthService
	limiter  *LoginLimiter
	metrics  metrics.Recorder
	scrape   http.Handler
	logger   logrus.FieldLogger
}

// NewHandler builds a Handler. limiter, recorder and scrape may be nil, in
// which case login is not throttled and no metrics are recorded or served.
func NewHandler(
	admins service.AdministratorService,
	vehicles service.VehicleService,
	auth service.AuthService,
	limiter *LoginLimiter,
	recorder metrics.Recorder,
	scrape http.Handler,
	logger logrus.FieldLogger,
) *Handler {
	if logger == nil {
		logger = logrus.New()
	}
	return &Handler{
		admins:   admins,
		vehicles: vehicles,
		auth:     auth,
		limiter:  limiter,
		metrics:  recorder,
		scrape:   scrape,
		logger:   logger,
	}
}

func (h *Handler) RegisterRoutes(router *gin.Engine) {
	router.Use(h.requestLogger(), corsMiddleware())

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "time": time.Now().UTC()})
	})
	if h.scrape != nil {
		router.GET("/metrics", gin.WrapH(h.scrape))
	}

	login := []gin.HandlerFunc{h.login}
	if h.limiter != nil {
		login = append([]gin.HandlerFunc{h.limiter.Middleware(h.recordLogin)}, login...)
	}
	router.POST("/administradores/login", login...)

	authed := router.Group("/", h.authMiddleware())
	{
		authed.POST("/administradores", h.createAdministrator)
		authed.GET("/administradores", h.listAdministrators)
		authed.GET("/administradores/:id", h.getAdministrator)
		authed.PUT("/administradores/:id", h.updateAdministrator)
		authed.DELETE("/administradores/:id", h.deleteAdministrator)

		authed.POST("/veiculos", h.createVehicle)
		authed.GET("/veiculos", h.listVehicles)
		authed.GET("/veiculos/:id", h.getVehicle)
		authed.PUT("/veiculos/:id", h.updateVehicle)
		authed.DELETE("/veiculos/:id", h.deleteVehicle)
	}
}

func corsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Origin, Content-Type, Accept, Authorization")
		c.Writer.Header().Set("Access-Control-Expose-Headers", "Location")
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}

		c.Next()
	}
}

func (h *Handler) recordLogin(outcome string) {
	if h.metrics != nil {
		h.metrics.RecordLogin(outcome)
	}
}
