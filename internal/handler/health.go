package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/deppfellow/label-lookup/internal/config"
	"github.com/deppfellow/label-lookup/internal/middleware"
	"github.com/deppfellow/label-lookup/internal/server"
)

const (
	checkDatabase = "database"
	checkRedis    = "redis"

	defaultHealthCheckTimeout = 5 * time.Second
)

// dependencyCheck is one dependency pinged by GET /status. A failing
// required check makes the service unhealthy; an optional one is only
// reported.
type dependencyCheck struct {
	name     string
	required bool
	ping     func(ctx context.Context) error
}

// HealthHandler reports whether the service and its dependencies are reachable.
type HealthHandler struct {
	Handler
	checks  []dependencyCheck
	timeout time.Duration
}

// NewHealthHandler builds the checks enabled in observability.health_checks.
//
// PostgreSQL is always required. Redis is required only when it is the
// label backend.
func NewHealthHandler(s *server.Server) *HealthHandler {
	h := &HealthHandler{
		Handler: NewHandler(s),
		timeout: defaultHealthCheckTimeout,
	}

	obs := s.Config.Observability
	if obs != nil && obs.HealthChecks.Timeout > 0 {
		h.timeout = obs.HealthChecks.Timeout
	}

	enabled := func(name string) bool {
		return obs == nil || obs.HealthCheckEnabled(name)
	}

	if s.DB != nil && enabled(checkDatabase) {
		h.checks = append(h.checks, dependencyCheck{
			name:     checkDatabase,
			required: true,
			ping:     s.DB.Pool.Ping,
		})
	}

	if s.Redis != nil && enabled(checkRedis) {
		h.checks = append(h.checks, dependencyCheck{
			name:     checkRedis,
			required: s.Config.Lookup.Backend == config.BackendRedis,
			ping: func(ctx context.Context) error {
				return s.Redis.Ping(ctx).Err()
			},
		})
	}

	return h
}

// CheckHealth pings every configured dependency and responds 200 when all
// required checks pass, 503 otherwise.
func (h *HealthHandler) CheckHealth(c echo.Context) error {
	start := time.Now()

	logger := middleware.GetLogger(c).With().
		Str("operation", "health_check").
		Logger()

	checks := make(map[string]interface{}, len(h.checks))
	isHealthy := true

	for _, check := range h.checks {
		checkStart := time.Now()
		err := h.ping(c.Request().Context(), check)
		elapsed := time.Since(checkStart)

		if err == nil {
			checks[check.name] = map[string]interface{}{
				"status":        "healthy",
				"response_time": elapsed.String(),
			}
			logger.Debug().
				Str("check", check.name).
				Dur("response_time", elapsed).
				Msg("health check passed")
			continue
		}

		checks[check.name] = map[string]interface{}{
			"status":        "unhealthy",
			"required":      check.required,
			"response_time": elapsed.String(),
			"error":         err.Error(),
		}
		if check.required {
			isHealthy = false
		}

		logger.Error().
			Err(err).
			Str("check", check.name).
			Bool("required", check.required).
			Dur("response_time", elapsed).
			Msg("health check failed")

		h.recordFailure(check.name, check.name+"_unhealthy", elapsed, err)
	}

	response := map[string]interface{}{
		"status":      "healthy",
		"timestamp":   time.Now().UTC(),
		"environment": h.server.Config.Primary.Env,
		"checks":      checks,
	}

	if !isHealthy {
		response["status"] = "unhealthy"

		logger.Warn().
			Dur("total_duration", time.Since(start)).
			Msg("health check failed")

		h.recordFailure("overall", "overall_unhealthy", time.Since(start), nil)

		return c.JSON(http.StatusServiceUnavailable, response)
	}

	return c.JSON(http.StatusOK, response)
}

func (h *HealthHandler) ping(ctx context.Context, check dependencyCheck) error {
	ctx, cancel := context.WithTimeout(ctx, h.timeout)
	defer cancel()

	return check.ping(ctx)
}

// recordFailure sends a HealthCheckError custom event when New Relic is enabled.
func (h *HealthHandler) recordFailure(checkType, errorType string, elapsed time.Duration, err error) {
	app := h.server.LoggerService.GetApplication()
	if app == nil {
		return
	}

	event := map[string]interface{}{
		"check_type":       checkType,
		"operation":        "health_check",
		"error_type":       errorType,
		"response_time_ms": elapsed.Milliseconds(),
	}
	if err != nil {
		event["error_message"] = err.Error()
	}

	app.RecordCustomEvent("HealthCheckError", event)
}
