package handler

import (
	"context"
	"net/http"
	"runtime"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/hris/backend/internal/interfaces/http/dto"
)

// Pinger checks connectivity to a backing dependency.
type Pinger interface {
	Ping(ctx context.Context) error
}

// PingerFunc adapts a function to the Pinger interface.
type PingerFunc func(ctx context.Context) error

// Ping calls the wrapped function.
func (f PingerFunc) Ping(ctx context.Context) error {
	return f(ctx)
}

// SystemHandler handles system-related API endpoints: liveness, readiness
// and basic service info.
type SystemHandler struct {
	BaseHandler
	startTime time.Time
	version   string
	deps      map[string]Pinger
}

// NewSystemHandler creates a new SystemHandler. Dependencies passed in deps
// are checked by the readiness probe; a nil map means the service is always
// ready once it is up.
func NewSystemHandler(version string, deps map[string]Pinger) *SystemHandler {
	return &SystemHandler{
		startTime: time.Now(),
		version:   version,
		deps:      deps,
	}
}

// RegisterProbes registers the health and readiness endpoints on the engine
// root, outside the versioned API group so probes bypass authentication.
func (h *SystemHandler) RegisterProbes(engine *gin.Engine) {
	engine.GET("/health", h.Health)
	engine.GET("/ready", h.Ready)
}

// RegisterRoutes registers system info endpoints on the API group
func (h *SystemHandler) RegisterRoutes(rg *gin.RouterGroup) {
	system := rg.Group("/system")
	{
		system.GET("/info", h.GetSystemInfo)
		system.GET("/ping", h.Ping)
	}
}

// HealthResponse represents the liveness probe response
type HealthResponse struct {
	Status string `json:"status"`
}

// Health is the liveness probe. It only confirms the process serves requests.
func (h *SystemHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, HealthResponse{Status: "ok"})
}

// ReadinessResponse represents the readiness probe response
type ReadinessResponse struct {
	Status string            `json:"status"`
	Checks map[string]string `json:"checks,omitempty"`
}

// Ready is the readiness probe. It pings every registered dependency and
// reports 503 if any of them is unreachable.
func (h *SystemHandler) Ready(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	checks := make(map[string]string, len(h.deps))
	ready := true

	for name, dep := range h.deps {
		if err := dep.Ping(ctx); err != nil {
			checks[name] = "unavailable: " + err.Error()
			ready = false
			continue
		}
		checks[name] = "ok"
	}

	resp := ReadinessResponse{Status: "ready", Checks: checks}
	if !ready {
		resp.Status = "not ready"
		c.JSON(http.StatusServiceUnavailable, resp)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// SystemInfoResponse represents the system information response
type SystemInfoResponse struct {
	Name      string `json:"name"`
	Version   string `json:"version"`
	GoVersion string `json:"go_version"`
	Uptime    string `json:"uptime"`
}

// GetSystemInfo returns basic system information including version and uptime
func (h *SystemHandler) GetSystemInfo(c *gin.Context) {
	info := SystemInfoResponse{
		Name:      "HRIS Backend API",
		Version:   h.version,
		GoVersion: runtime.Version(),
		Uptime:    time.Since(h.startTime).Round(time.Second).String(),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(info))
}

// PingResponse represents the ping response
type PingResponse struct {
	Message   string `json:"message"`
	Timestamp string `json:"timestamp"`
}

// Ping is a simple endpoint to check if the API is responsive
func (h *SystemHandler) Ping(c *gin.Context) {
	response := PingResponse{
		Message:   "pong",
		Timestamp: time.Now().Format(time.RFC3339),
	}

	c.JSON(http.StatusOK, dto.NewSuccessResponse(response))
}
