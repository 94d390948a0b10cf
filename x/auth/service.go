package auth

import (
	"log/slog"

	"github.com/labstack/echo/v4"
	"go.opentelemetry.io/otel"

	"github.com/custodia-cloud/custodia/core"
	"github.com/custodia-cloud/custodia/util"
)

var tracer = otel.Tracer("auth")

// Service resolves caller identity and gates routes.
type Service interface {
	IdentifyRequester(next echo.HandlerFunc) echo.HandlerFunc
	Restrict(principal Principal) echo.MiddlewareFunc
}

type service struct {
	actor         core.ActorService
	config        util.Config
	systemAddress string
}

// NewService creates a new auth service. The platform private key derives
// the address that marks a caller as the system agent.
func NewService(actor core.ActorService, config util.Config) Service {
	systemAddress := ""
	if config.Custodia.PrivateKey != "" {
		addr, err := core.PrivKeyToAddr(config.Custodia.PrivateKey, core.CredentialHRP)
		if err != nil {
			slog.Error("failed to derive system address from configured key",
				slog.String("error", err.Error()),
			)
		} else {
			systemAddress = addr
		}
	}

	return &service{
		actor:         actor,
		config:        config,
		systemAddress: systemAddress,
	}
}
