package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"github.com/byte4ever/employeegw/logger"
	"github.com/byte4ever/employeegw/resilience"
)

// RouterConfig holds the router dependencies.
type RouterConfig struct {
	Service  Service
	Registry *resilience.Registry
	Logger   *logger.Logger
	// ServiceName names the server spans.
	ServiceName string
	// AllowOrigins restricts CORS; empty allows any origin.
	AllowOrigins []string
}

// NewRouter builds the gin engine.
func NewRouter(cfg RouterConfig) *gin.Engine {
	log := cfg.Logger
	if log == nil {
		log = logger.Nop()
	}

	reg := cfg.Registry
	if reg == nil {
		reg = resilience.NewRegistry()
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(cfg.ServiceName))
	r.Use(RequestID())
	r.Use(RequestLogger(log))
	r.Use(CORS(cfg.AllowOrigins))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/readyz", gin.WrapH(resilience.ReadinessHandler(reg)))

	h := NewEmployeeHandler(cfg.Service, log)

	v1 := r.Group("/api/v1")
	{
		v1.GET("/employees", h.ListAll)
		v1.GET("/search", h.Search)
		v1.GET("/employees/:id", h.GetByID)
		v1.GET("/highestSalary", h.HighestSalary)
		v1.GET("/topTenHighestEarningEmployeeNames", h.TopTenNames)
		v1.POST("/employees", h.Create)
		v1.DELETE("/employees/:id", h.DeleteByID)
	}

	return r
}
