package request

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/custodia-cloud/custodia/core"
)

type Handler interface {
	Create(c echo.Context) error
	Get(c echo.Context) error
	List(c echo.Context) error
	Approve(c echo.Context) error
	Cancel(c echo.Context) error
	Complete(c echo.Context) error
}

type handler struct {
	service core.RequestService
}

func NewHandler(service core.RequestService) Handler {
	return &handler{service: service}
}

func requesterFromContext(c echo.Context) core.RequesterContext {
	if requester, ok := c.Get(core.RequesterContextCtxKey).(core.RequesterContext); ok {
		return requester
	}
	return core.RequesterContext{Type: core.Anonymous}
}

type createRequest struct {
	Operation        core.Operation `json:"operation"`
	Title            string         `json:"title"`
	Summary          string         `json:"summary,omitempty"`
	ExecutionPlan    string         `json:"executionPlan,omitempty"`
	ExecutionDT      *time.Time     `json:"executionDT,omitempty"`
	DeduplicationKey *string        `json:"deduplicationKey,omitempty"`
	Tags             []string       `json:"tags,omitempty"`
}

type approveRequest struct {
	Decision string `json:"decision"`
	Reason   string `json:"reason,omitempty"`
}

type cancelRequest struct {
	Reason string `json:"reason,omitempty"`
}

type completeRequest struct {
	Outcome string `json:"outcome"`
	Reason  string `json:"reason,omitempty"`
}

func (h handler) Create(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Request.Handler.Create")
	defer span.End()

	var body createRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	opts := core.CreateRequestOptions{
		Title:            body.Title,
		Summary:          body.Summary,
		Plan:             core.ExecutionPlan(body.ExecutionPlan),
		ExecutionDT:      body.ExecutionDT,
		DeduplicationKey: body.DeduplicationKey,
		Tags:             body.Tags,
	}

	created, err := h.service.Create(ctx, requesterFromContext(c), body.Operation, opts)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusCreated, echo.Map{"status": "ok", "content": created})
}

func (h handler) Get(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Request.Handler.Get")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	request, err := h.service.Get(ctx, requesterFromContext(c), id)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": request})
}

func (h handler) List(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Request.Handler.List")
	defer span.End()

	filter := core.RequestFilter{
		Status:        core.RequestStatus(c.QueryParam("status")),
		RequestedBy:   c.QueryParam("requestedBy"),
		OperationType: core.OperationType(c.QueryParam("operationType")),
		Tag:           c.QueryParam("tag"),
	}
	if limit := c.QueryParam("limit"); limit != "" {
		parsed, err := strconv.Atoi(limit)
		if err != nil || parsed < 0 {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "limit must be a non-negative integer"})
		}
		filter.Limit = parsed
	}

	requests, err := h.service.List(ctx, requesterFromContext(c), filter)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": requests})
}

func (h handler) Approve(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Request.Handler.Approve")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	var body approveRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	decision := core.Decision(body.Decision)
	if decision != core.DecisionApproved && decision != core.DecisionRejected {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "decision must be approved or rejected"})
	}

	request, err := h.service.Approve(ctx, requesterFromContext(c), id, decision, body.Reason)
	if err != nil {
		var configuration core.ErrorConfiguration
		if errors.As(err, &configuration) {
			// The vote is recorded. Surface the broken policy set so the
			// caller knows the request cannot resolve yet.
			return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": request, "warning": configuration.Msg})
		}
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": request})
}

func (h handler) Cancel(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Request.Handler.Cancel")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	var body cancelRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	request, err := h.service.Cancel(ctx, requesterFromContext(c), id, body.Reason)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": request})
}

// Complete is the callback for external executors reporting the outcome of
// an operation they own. The route is restricted to system agents.
func (h handler) Complete(c echo.Context) error {
	ctx, span := tracer.Start(c.Request().Context(), "Request.Handler.Complete")
	defer span.End()

	id := c.Param("id")
	if id == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": "id is required"})
	}

	var body completeRequest
	if err := c.Bind(&body); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": err.Error()})
	}

	request, err := h.service.CompleteExecution(ctx, id, core.ExecutionOutcome(body.Outcome), body.Reason)
	if err != nil {
		return mapError(c, err)
	}

	return c.JSON(http.StatusOK, echo.Map{"status": "ok", "content": request})
}

func mapError(c echo.Context, err error) error {
	if errors.Is(err, core.ErrorNotFound{}) {
		return c.JSON(http.StatusNotFound, echo.Map{"error": "Request not found"})
	}
	if errors.Is(err, core.ErrorUnauthorized{}) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Forbidden"})
	}
	if errors.Is(err, core.ErrorNotEligible{}) {
		return c.JSON(http.StatusForbidden, echo.Map{"error": "Not eligible to vote on this request"})
	}
	if errors.Is(err, core.ErrorAlreadyDecided{}) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "Already decided"})
	}
	var transition core.ErrorInvalidTransition
	if errors.As(err, &transition) {
		return c.JSON(http.StatusConflict, echo.Map{"error": "Invalid transition", "message": transition.Error()})
	}
	var validation core.ErrorValidation
	if errors.As(err, &validation) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "Invalid request", "message": validation.Msg})
	}
	return err
}
