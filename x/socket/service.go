package socket

import (
	"context"
	"encoding/json"

	"github.com/redis/go-redis/v9"
	"go.opentelemetry.io/otel"

	"github.com/custodia-cloud/custodia/core"
)

var tracer = otel.Tracer("socket")

// eventChannel carries every request lifecycle event. Fanout to
// individual subscriptions happens in the manager.
const eventChannel = "request:events"

type service struct {
	rdb *redis.Client
}

// NewService creates the event publisher backing the websocket feed.
func NewService(rdb *redis.Client) core.EventService {
	return &service{rdb: rdb}
}

func (s *service) Publish(ctx context.Context, event core.Event) error {
	ctx, span := tracer.Start(ctx, "Socket.Service.Publish")
	defer span.End()

	packet, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.rdb.Publish(ctx, eventChannel, packet).Err()
}
