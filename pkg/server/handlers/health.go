package handlers

import (
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/thaumlab/aspecter"
)

// Build information - can be set at build time using ldflags
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildTime = "unknown"
	GoVersion = runtime.Version()
)

// HealthHandler handles health check requests
type HealthHandler struct {
	client aspecter.Aspecter
}

// NewHealthHandler creates a new health handler
func NewHealthHandler(client aspecter.Aspecter) *HealthHandler {
	return &HealthHandler{client: client}
}

// HealthCheck handles GET /health - basic liveness check
func (h *HealthHandler) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "healthy",
		"service":   "aspecter",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"version":   Version,
	})
}

// LivenessCheck handles GET /live - Kubernetes liveness probe
func (h *HealthHandler) LivenessCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "alive",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

// ReadinessCheck handles GET /ready - the server is ready once a graph
// snapshot is loaded.
func (h *HealthHandler) ReadinessCheck(c *gin.Context) {
	response := gin.H{
		"status":    "ready",
		"service":   "aspecter",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"checks":    gin.H{},
	}
	checks := response["checks"].(gin.H)

	status := http.StatusOK
	if h.client == nil {
		checks["graph"] = gin.H{"status": "unhealthy", "error": "client not initialized"}
		response["status"] = "not ready"
		status = http.StatusServiceUnavailable
	} else if aspects, err := h.client.Aspects(); err != nil {
		checks["graph"] = gin.H{"status": "unhealthy", "error": err.Error()}
		response["status"] = "not ready"
		status = http.StatusServiceUnavailable
	} else {
		checks["graph"] = gin.H{"status": "healthy", "aspects": len(aspects)}
	}

	c.JSON(status, response)
}

// DetailedHealthCheck handles GET /health/detailed
func (h *HealthHandler) DetailedHealthCheck(c *gin.Context) {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	response := gin.H{
		"status":    "healthy",
		"service":   "aspecter",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
		"build": gin.H{
			"version":    Version,
			"git_commit": GitCommit,
			"build_time": BuildTime,
			"go_version": GoVersion,
		},
		"runtime": gin.H{
			"goroutines":   runtime.NumGoroutine(),
			"memory_alloc": m.Alloc,
			"memory_sys":   m.Sys,
			"gc_runs":      m.NumGC,
		},
	}

	if h.client != nil {
		if aspects, err := h.client.Aspects(); err == nil {
			recipes, _ := h.client.Recipes()
			response["graph"] = gin.H{
				"aspects": len(aspects),
				"recipes": len(recipes),
			}
		}
	}

	c.JSON(http.StatusOK, response)
}
