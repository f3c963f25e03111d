package http

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/ANIKETSHETTY47/energy-admin-console/internal/api"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/domain"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/query"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/refresh"
	"github.com/ANIKETSHETTY47/energy-admin-console/internal/service"
)

type HealthChecker interface {
	Health(ctx context.Context) (*api.Health, error)
}

type handler struct {
	svcs    *service.Services
	dash    *service.Dashboard
	backend HealthChecker
	now     func() time.Time
}

// Register mounts the console routes. Responses use the platform's
// {success, data, pagination, message} envelope.
func Register(app *fiber.App, svcs *service.Services, dash *service.Dashboard, backend HealthChecker) {
	h := &handler{svcs: svcs, dash: dash, backend: backend, now: time.Now}

	app.Get("/health", h.health)

	g := app.Group("/api")
	g.Get("/options", func(c *fiber.Ctx) error { return ok(c, domain.OptionCatalog()) })

	g.Get("/alerts", h.listAlerts)
	g.Get("/alerts/statistics", h.alertStatistics)
	g.Post("/alerts/:id/acknowledge", h.acknowledge)
	g.Post("/alerts/:id/resolve", h.resolve)

	g.Get("/equipment", h.listEquipment)
	g.Get("/equipment/:id/maintenance", h.maintenance)
	g.Post("/equipment/export", h.exportEquipment)
	g.Get("/exports", h.listExports)

	g.Get("/analytics", h.analytics)

	g.Get("/dashboard", h.dashboard)
	g.Put("/dashboard/filters", h.setDashboardFilters)

	g.Get("/views", h.listViews)
	g.Post("/views", h.saveView)
	g.Get("/views/:id", h.openView)
	g.Delete("/views/:id", h.deleteView)
}

func (h *handler) health(c *fiber.Ctx) error {
	backend := "ok"
	if _, err := h.backend.Health(c.UserContext()); err != nil {
		log.Warn().Err(err).Msg("backend health check failed")
		backend = "unreachable"
	}
	return ok(c, fiber.Map{"status": "ok", "backend": backend})
}

func (h *handler) listAlerts(c *fiber.Ctx) error {
	page, err := h.svcs.Alerts.List(c.UserContext(), filtersOf(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": page, "pagination": page.Pagination})
}

func (h *handler) alertStatistics(c *fiber.Ctx) error {
	stats, err := h.svcs.Alerts.Statistics(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, stats)
}

func (h *handler) acknowledge(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return fail(c, err)
	}
	row, err := h.svcs.Alerts.Acknowledge(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	h.dash.Refresh()
	return ok(c, row)
}

func (h *handler) resolve(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return fail(c, err)
	}
	var req struct {
		ResolutionNotes string `json:"resolution_notes"`
	}
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return fail(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
		}
	}
	row, err := h.svcs.Alerts.Resolve(c.UserContext(), id, req.ResolutionNotes)
	if err != nil {
		return fail(c, err)
	}
	h.dash.Refresh()
	return ok(c, row)
}

func (h *handler) listEquipment(c *fiber.Ctx) error {
	page, err := h.svcs.Equipment.List(c.UserContext(), filtersOf(c), h.now())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": page, "pagination": page.Pagination})
}

func (h *handler) maintenance(c *fiber.Ctx) error {
	id, err := idParam(c)
	if err != nil {
		return fail(c, err)
	}
	records, err := h.svcs.Equipment.Maintenance(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, records)
}

func (h *handler) exportEquipment(c *fiber.Ctx) error {
	exp, err := h.svcs.Exports.ExportEquipment(c.UserContext(), filtersOf(c), h.now())
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": exp})
}

func (h *handler) listExports(c *fiber.Ctx) error {
	keys, err := h.svcs.Exports.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return ok(c, keys)
}

func (h *handler) analytics(c *fiber.Ctx) error {
	var building *int64
	if raw := strings.TrimSpace(c.Query("buildingId")); raw != "" && raw != "all" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return fail(c, fmt.Errorf("%w: buildingId %q", service.ErrInvalidInput, raw))
		}
		building = &id
	}
	overview, err := h.svcs.Analytics.Overview(c.UserContext(), building, c.Query("period"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, overview)
}

func (h *handler) dashboard(c *fiber.Ctx) error {
	return ok(c, h.dash.Snapshot())
}

func (h *handler) setDashboardFilters(c *fiber.Ctx) error {
	var f query.Filters
	if err := c.BodyParser(&f); err != nil {
		return fail(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
	}
	page, err := h.dash.SetFilters(c.UserContext(), f)
	if errors.Is(err, refresh.ErrSuperseded) {
		return c.Status(fiber.StatusAccepted).JSON(fiber.Map{"success": true, "data": h.dash.Snapshot()})
	}
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"success": true, "data": page, "pagination": page.Pagination})
}

func (h *handler) listViews(c *fiber.Ctx) error {
	views, err := h.svcs.Views.List(c.UserContext(), domain.Resource(c.Query("resource")))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, views)
}

func (h *handler) saveView(c *fiber.Ctx) error {
	var req struct {
		Name     string          `json:"name"`
		Resource domain.Resource `json:"resource"`
		Filters  query.Filters   `json:"filters"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, fmt.Errorf("%w: %v", service.ErrInvalidInput, err))
	}
	v, err := h.svcs.Views.Save(c.UserContext(), req.Name, req.Resource, req.Filters)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"success": true, "data": v})
}

func (h *handler) openView(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fmt.Errorf("%w: view id", service.ErrInvalidInput))
	}
	v, f, err := h.svcs.Views.Open(c.UserContext(), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.Map{"view": v, "filters": f})
}

func (h *handler) deleteView(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fail(c, fmt.Errorf("%w: view id", service.ErrInvalidInput))
	}
	if err := h.svcs.Views.Delete(c.UserContext(), id); err != nil {
		return fail(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func filtersOf(c *fiber.Ctx) query.Filters {
	values, err := url.ParseQuery(string(c.Context().QueryArgs().QueryString()))
	if err != nil {
		log.Debug().Err(err).Msg("partially unreadable query string")
	}
	return query.Parse(values)
}

func idParam(c *fiber.Ctx) (int64, error) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id %q", service.ErrInvalidInput, c.Params("id"))
	}
	return id, nil
}

func ok(c *fiber.Ctx, data any) error {
	return c.JSON(fiber.Map{"success": true, "data": data})
}

// fail maps the error taxonomy onto HTTP statuses.
func fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	msg := err.Error()

	var rej *api.RejectedError
	switch {
	case errors.Is(err, service.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, service.ErrNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, service.ErrDisabled):
		status = fiber.StatusNotImplemented
	case errors.As(err, &rej):
		status = fiber.StatusUnprocessableEntity
		if rej.Message != "" {
			msg = rej.Message
		}
	case errors.Is(err, api.ErrTransport), errors.Is(err, api.ErrMalformed):
		status = fiber.StatusBadGateway
	}

	if status == fiber.StatusInternalServerError || status == fiber.StatusBadGateway {
		log.Error().Err(err).Str("path", c.Path()).Int("status", status).Msg("request failed")
	}
	return c.Status(status).JSON(fiber.Map{"success": false, "message": msg})
}
