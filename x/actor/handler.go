package actor

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/custodia-cloud/custodia/core"
)

type Handler interface {
	Get(c echo.Context) error
	List(c echo.Context) error
	GetGroup(c echo.Context) error
	ListGroups(c echo.Context) error
}

type handler struct {
	service core.ActorService
}

func NewHandler(service core.ActorService) Handler {
	return &handler{service: service}
}

// Get returns an actor by id. A credential address resolves to its actor.
func (h handler) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Actor.Handler.Get")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	var actor core.Actor
	var err error
	if core.IsCredentialAddress(id) {
		actor, err = h.service.GetByCredential(ctx, id)
	} else {
		actor, err = h.service.Get(ctx, id)
	}
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Actor not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": actor})
}

func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Actor.Handler.List")
	defer span.End()

	actors, err := h.service.List(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": actors})
}

func (h handler) GetGroup(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Actor.Handler.GetGroup")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	group, err := h.service.GetGroup(ctx, id)
	if err != nil {
		if errors.Is(err, core.ErrorNotFound{}) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "Group not found"})
		}
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": group})
}

func (h handler) ListGroups(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Actor.Handler.ListGroups")
	defer span.End()

	groups, err := h.service.ListGroups(ctx)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": groups})
}
