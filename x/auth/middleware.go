package auth

import (
	"encoding/hex"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel/attribute"

	"github.com/custodia-cloud/custodia/core"
)

// IdentifyRequester resolves the caller from the signed request headers.
// Requests without credentials pass through as anonymous; the permission
// layer decides what anonymous callers may do.
func (s *service) IdentifyRequester(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Service.IdentifyRequester")
		defer span.End()

		credential := c.Request().Header.Get(CredentialHeader)
		signature := c.Request().Header.Get(SignatureHeader)
		timestamp := c.Request().Header.Get(TimestampHeader)

		if credential != "" && signature != "" && timestamp != "" {
			issued, err := strconv.ParseInt(timestamp, 10, 64)
			if err != nil {
				span.RecordError(fmt.Errorf("invalid timestamp header"))
				goto skip
			}
			if math.Abs(float64(time.Now().Unix()-issued)) > maxClockSkew {
				span.RecordError(fmt.Errorf("timestamp out of window"))
				goto skip
			}

			if !core.IsCredentialAddress(credential) {
				span.RecordError(fmt.Errorf("malformed credential address"))
				goto skip
			}

			sigBytes, err := hex.DecodeString(signature)
			if err != nil {
				span.RecordError(fmt.Errorf("malformed signature"))
				goto skip
			}

			message := []byte(timestamp + ":" + c.Request().Method + ":" + c.Request().URL.Path)
			if err := core.VerifySignature(message, sigBytes, credential); err != nil {
				span.RecordError(err)
				goto skip
			}

			if s.systemAddress != "" && credential == s.systemAddress {
				requester := core.RequesterContext{
					ActorID: "system",
					Type:    core.SystemAgent,
					Tags:    core.NewTags(),
				}
				setRequester(c, requester)
				span.SetAttributes(attribute.String("RequesterType", core.RequesterTypeString(core.SystemAgent)))
				goto skip
			}

			actor, err := s.actor.GetByCredential(ctx, credential)
			if err != nil {
				span.RecordError(err)
				goto skip
			}

			tags := core.ParseTags(actor.Tag)
			if tags.Has("_block") {
				return c.JSON(http.StatusForbidden, echo.Map{
					"error":  "you are not authorized to perform this action",
					"detail": "you are blocked",
				})
			}

			requester := core.RequesterContext{
				ActorID: actor.ID,
				Type:    core.KnownActor,
				Groups:  actor.Groups,
				Tags:    tags,
			}
			setRequester(c, requester)
			span.SetAttributes(attribute.String("RequesterId", actor.ID))
			span.SetAttributes(attribute.String("RequesterType", core.RequesterTypeString(core.KnownActor)))
		}
	skip:
		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// ReceiveGatewayAuthPropagation accepts a requester identity already
// resolved by a trusting gateway in front of this service.
func ReceiveGatewayAuthPropagation(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		ctx, span := tracer.Start(c.Request().Context(), "Auth.Service.ReceiveGatewayAuthPropagation")
		defer span.End()

		typeHeader := c.Request().Header.Get(core.RequesterTypeHeader)
		idHeader := c.Request().Header.Get(core.RequesterIdHeader)
		tagHeader := c.Request().Header.Get(core.RequesterTagHeader)
		groupsHeader := c.Request().Header.Get(core.RequesterGroupsHeader)

		if typeHeader != "" && idHeader != "" {
			requesterType, err := strconv.Atoi(typeHeader)
			if err == nil {
				requester := core.RequesterContext{
					ActorID: idHeader,
					Type:    requesterType,
					Tags:    core.ParseTags(tagHeader),
				}
				if groupsHeader != "" {
					requester.Groups = strings.Split(groupsHeader, ",")
				}
				setRequester(c, requester)
				span.SetAttributes(attribute.String("RequesterId", idHeader))
				span.SetAttributes(attribute.String("RequesterType", core.RequesterTypeString(requesterType)))
			}
		}

		c.SetRequest(c.Request().WithContext(ctx))
		return next(c)
	}
}

// Restrict rejects callers that do not hold the given principal.
func (s *service) Restrict(principal Principal) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), "Auth.Service.Restrict")
			defer span.End()

			requester, _ := c.Get(core.RequesterContextCtxKey).(core.RequesterContext)

			switch principal {
			case ISADMIN:
				if !requester.Tags.Has("_admin") && !requester.IsSystem() {
					return c.JSON(http.StatusForbidden, echo.Map{
						"error":  "you are not authorized to perform this action",
						"detail": "you are not admin",
					})
				}

			case ISKNOWN:
				if requester.IsAnonymous() {
					return c.JSON(http.StatusForbidden, echo.Map{
						"error":  "you are not authorized to perform this action",
						"detail": "you are not known",
					})
				}

			case ISSYSTEM:
				if !requester.IsSystem() {
					return c.JSON(http.StatusForbidden, echo.Map{
						"error":  "you are not authorized to perform this action",
						"detail": "you are not the system agent",
					})
				}
			}

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

// Authorize gates a route on an explicit resource permission. The resolver
// builds the concrete resource from the route parameters.
func Authorize(permission core.PermissionService, resolve func(c echo.Context) core.Resource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			ctx, span := tracer.Start(c.Request().Context(), "Auth.Service.Authorize")
			defer span.End()

			requester, _ := c.Get(core.RequesterContextCtxKey).(core.RequesterContext)
			resource := resolve(c)

			if !permission.IsAllowed(ctx, requester, resource) {
				span.SetAttributes(attribute.String("DeniedResource", resource.Key()))
				return c.JSON(http.StatusForbidden, echo.Map{
					"error":  "you are not authorized to perform this action",
					"detail": "permission denied for " + resource.Key(),
				})
			}

			c.SetRequest(c.Request().WithContext(ctx))
			return next(c)
		}
	}
}

func setRequester(c echo.Context, requester core.RequesterContext) {
	c.Set(core.RequesterIdCtxKey, requester.ActorID)
	c.Set(core.RequesterTypeCtxKey, requester.Type)
	c.Set(core.RequesterTagCtxKey, requester.Tags)
	c.Set(core.RequesterGroupsCtxKey, requester.Groups)
	c.Set(core.RequesterContextCtxKey, requester)
}
