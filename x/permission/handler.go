package permission

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/custodia-cloud/custodia/core"
)

type Handler interface {
	Get(c echo.Context) error
	Edit(c echo.Context) error
	List(c echo.Context) error
}

type handler struct {
	service core.PermissionService
}

func NewHandler(service core.PermissionService) Handler {
	return &handler{service: service}
}

func (h handler) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Permission.Handler.Get")
	defer span.End()

	shape := c.Param("shape")
	if shape == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "shape is required"})
	}

	allow, err := h.service.Get(ctx, shape)
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Permission not found"})
		}
		var validation core.ErrorValidation
		if errors.As(err, &validation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": validation.Msg})
		}
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": allow})
}

func (h handler) Edit(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Permission.Handler.Edit")
	defer span.End()

	shape := c.Param("shape")
	if shape == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "shape is required"})
	}

	var patch core.AllowPatch
	if err := c.Bind(&patch); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	allow, err := h.service.Edit(ctx, shape, patch)
	if err != nil {
		var validation core.ErrorValidation
		if errors.As(err, &validation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": validation.Msg})
		}
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": allow})
}

func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Permission.Handler.List")
	defer span.End()

	allows, err := h.service.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": allows})
}
