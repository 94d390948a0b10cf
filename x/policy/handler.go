package policy

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/custodia-cloud/custodia/core"
)

type Handler interface {
	Add(c echo.Context) error
	Edit(c echo.Context) error
	Remove(c echo.Context) error
	Get(c echo.Context) error
	List(c echo.Context) error
}

type handler struct {
	service core.PolicyService
}

func NewHandler(service core.PolicyService) Handler {
	return &handler{service: service}
}

type addRequest struct {
	Name      string               `json:"name"`
	Specifier core.PolicySpecifier `json:"specifier"`
	Rule      core.Rule            `json:"rule"`
}

type editRequest struct {
	Name      *string               `json:"name,omitempty"`
	Specifier *core.PolicySpecifier `json:"specifier,omitempty"`
	Rule      *core.Rule            `json:"rule,omitempty"`
}

func (h handler) Add(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Policy.Handler.Add")
	defer span.End()

	var request addRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	policy, err := h.service.Add(ctx, request.Name, request.Specifier, request.Rule)
	if err != nil {
		var validation core.ErrorValidation
		if errors.As(err, &validation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": validation.Msg})
		}
		return err
	}

	return c.JSON(http.StatusCreated, echo.Map{"status": "ok", "content": policy})
}

func (h handler) Edit(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Policy.Handler.Edit")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	var request editRequest
	if err := c.Bind(&request); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	policy, err := h.service.Edit(ctx, id, request.Name, request.Specifier, request.Rule)
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Policy not found"})
		}
		var validation core.ErrorValidation
		if errors.As(err, &validation) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": validation.Msg})
		}
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": policy})
}

func (h handler) Remove(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Policy.Handler.Remove")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	if err := h.service.Remove(ctx, id); err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Policy not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok"})
}

func (h handler) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Policy.Handler.Get")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	policy, err := h.service.Get(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Policy not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": policy})
}

func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Policy.Handler.List")
	defer span.End()

	policies, err := h.service.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": policies})
}
