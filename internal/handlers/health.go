package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

type healthResponse struct {
	Status       string            `json:"status"`
	Dependencies map[string]string `json:"dependencies"`
	Environment  string            `json:"environment"`
}

func (h HandlerSet) Health(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	status := "ok"
	deps := make(map[string]string, len(h.checks))
	for _, check := range h.checks {
		deps[check.Name] = "ok"
		if err := check.Ping(ctx); err != nil {
			deps[check.Name] = "error"
			status = "degraded"
			h.log.Error().Err(err).Str("dependency", check.Name).Msg("health check failed")
		}
	}

	code := http.StatusOK
	if status != "ok" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, healthResponse{
		Status:       status,
		Dependencies: deps,
		Environment:  h.cfg.Environment,
	})
}
