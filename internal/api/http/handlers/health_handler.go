package handlers

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"

	apperrors "github.com/shopline/catalog-service/pkg/util/errorutil"
)

const codeDependencyUnavailable = "DEPENDENCY_UNAVAILABLE"

// Pinger is implemented by every storage backend handle.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler responds to liveness and readiness checks.
type HealthHandler struct {
	serviceName string
	version     string
	backend     string
	store       Pinger
}

// NewHealthHandler returns a new handler instance.
func NewHealthHandler(serviceName, version, backend string, store Pinger) *HealthHandler {
	return &HealthHandler{serviceName: serviceName, version: version, backend: backend, store: store}
}

// Home responds to GET /.
func (h *HealthHandler) Home(c *fiber.Ctx) error {
	return c.JSON("Home")
}

// Live reports service liveness.
func (h *HealthHandler) Live(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "alive",
		"service": h.serviceName,
		"version": h.version,
	})
}

// Ready reports readiness by pinging the storage backend.
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.UserContext(), 2*time.Second)
	defer cancel()

	if err := h.store.Ping(ctx); err != nil {
		// the middleware logs Err; the body only names the backend
		unavailable := apperrors.NewDomainError(codeDependencyUnavailable, "storage backend unavailable",
			fiber.StatusServiceUnavailable, map[string]any{h.backend: "unreachable"})
		unavailable.Err = err
		return unavailable
	}

	return c.JSON(fiber.Map{
		"status":       "ready",
		"dependencies": fiber.Map{h.backend: "ok"},
	})
}
