package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Pinger is a dependency whose reachability is reported by /health.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthResponse struct {
	Status    string            `json:"status"`
	Timestamp time.Time         `json:"timestamp"`
	Service   string            `json:"service"`
	Version   string            `json:"version"`
	Checks    map[string]string `json:"checks,omitempty"`
}

type Health struct {
	serviceName string
	version     string
	deps        map[string]Pinger
}

func NewHealth(serviceName, version string, deps map[string]Pinger) *Health {
	return &Health{serviceName: serviceName, version: version, deps: deps}
}

// Check reports 503 when any dependency is down.
func (h *Health) Check(c *gin.Context) {
	resp := HealthResponse{
		Status:    "healthy",
		Timestamp: time.Now().UTC(),
		Service:   h.serviceName,
		Version:   h.version,
	}
	status := http.StatusOK

	if len(h.deps) > 0 {
		resp.Checks = make(map[string]string, len(h.deps))
		for name, dep := range h.deps {
			pingCtx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
			err := dep.Ping(pingCtx)
			cancel()

			if err != nil {
				resp.Checks[name] = "down"
				resp.Status = "degraded"
				status = http.StatusServiceUnavailable
				continue
			}
			resp.Checks[name] = "up"
		}
	}

	c.JSON(status, resp)
}
