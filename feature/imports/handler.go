package imports

import (
	"errors"

	"okta-import/core/importblock"
	"okta-import/core/logger"
	"okta-import/core/reconcile"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler handles HTTP requests for import previews.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the import routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/imports")
	group.Get("/:kind", h.HandleGetImports)
}

// HandleGetImports renders the import blocks of one kind.
func (h *Handler) HandleGetImports(c *fiber.Ctx) error {
	l := logger.WithRayID(h.service.logger, c)

	kinds, err := reconcile.ParseKinds(c.Params("kind"))
	if err == nil && len(kinds) != 1 {
		err = &reconcile.ConfigurationError{Field: "kind", Reason: "exactly one resource type is required"}
	}
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	plan, err := h.service.Preview(c.Context(), kinds[0])
	if err != nil {
		var cfgErr *reconcile.ConfigurationError
		var fetchErr *reconcile.FetchError
		status := fiber.StatusInternalServerError
		switch {
		case errors.As(err, &cfgErr):
			status = fiber.StatusBadRequest
		case errors.As(err, &fetchErr):
			status = fiber.StatusBadGateway
		}
		l.Error("Import preview failed", zap.String("kind", string(kinds[0])), zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}

	if plan.PageErr != nil {
		c.Set("X-Import-Partial", "true")
	}

	if c.Query("format") == "json" {
		return c.JSON(plan)
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextPlainCharsetUTF8)
	return c.SendString(importblock.Render(plan.Directives))
}
