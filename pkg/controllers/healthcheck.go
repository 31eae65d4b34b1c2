package controllers

import (
	"context"
	"net/http"
	"sort"
	"time"

	"github.com/M0rdr3d/lisk/pkg/models"
	"github.com/M0rdr3d/lisk/pkg/resources"
	"github.com/gin-gonic/gin"
)

// HealthChecker reports whether a backing dependency of the service is usable.
type HealthChecker func(ctx context.Context) error

const healthCheckTimeout = 2 * time.Second

type hcheckRoute struct {
	info    models.APIServiceInfo
	checks  map[string]HealthChecker
	started time.Time
}

func NewHealthCheckRoute(info models.APIServiceInfo, checks map[string]HealthChecker) *hcheckRoute {
	return &hcheckRoute{
		info:    info,
		checks:  checks,
		started: time.Now(),
	}
}

// HealthCheck answers 503 as soon as one dependency check fails. Every check
// is still run so the body lists all failing dependencies.
func (r *hcheckRoute) HealthCheck(ctx *gin.Context) {
	checkCtx, cancel := context.WithTimeout(ctx.Request.Context(), healthCheckTimeout)
	defer cancel()

	names := make([]string, 0, len(r.checks))
	for name := range r.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	resp := resources.HealthResponse{
		Health:    true,
		Version:   r.info.Version,
		Build:     r.info.BuildSHA,
		BuildTime: r.info.BuildTime,
		Uptime:    time.Since(r.started).Truncate(time.Second).String(),
		Checks:    map[string]string{},
	}

	for _, name := range names {
		if err := r.checks[name](checkCtx); err != nil {
			resp.Health = false
			resp.Checks[name] = err.Error()
			continue
		}
		resp.Checks[name] = "ok"
	}

	status := http.StatusOK
	if !resp.Health {
		status = http.StatusServiceUnavailable
	}
	ctx.JSON(status, resp)
}
