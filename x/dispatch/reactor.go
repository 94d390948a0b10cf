package dispatch

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/custodia-cloud/custodia/core"
	"github.com/custodia-cloud/custodia/util"
)

const reactorLeaseKey = "reactor:lease"

type reactor struct {
	request core.RequestService
	rdb     *redis.Client
	config  util.Config
}

// NewReactor creates the background reactor that expires stale requests
// and promotes scheduled ones whose execution time has arrived.
func NewReactor(
	request core.RequestService,
	rdb *redis.Client,
	config util.Config,
) core.DispatchService {
	return &reactor{
		request: request,
		rdb:     rdb,
		config:  config,
	}
}

// Boot starts the reactor loop.
func (r *reactor) Boot() {
	slog.Info("dispatch reactor start!")

	interval := time.Duration(r.config.Custodia.SweepInterval) * time.Second
	ticker := time.NewTicker(interval)
	go func() {
		for range ticker.C {
			ctx, span := tracer.Start(context.Background(), "Dispatch.Reactor.Tick")
			r.tick(ctx, interval)
			span.End()
		}
	}()
}

// leaseTTL is the lifetime of the sweep lease: just short of the tick
// interval so the lease is free again by the next tick, but never zero,
// which redis would read as no expiry at all.
func leaseTTL(interval time.Duration) time.Duration {
	ttl := interval - time.Second
	if ttl <= 0 {
		ttl = interval
	}
	return ttl
}

// tick runs one sweep. The redis lease keeps replicas from sweeping the
// same window concurrently.
func (r *reactor) tick(ctx context.Context, interval time.Duration) {
	hostname, _ := os.Hostname()
	acquired, err := r.rdb.SetNX(ctx, reactorLeaseKey, hostname, leaseTTL(interval)).Result()
	if err != nil {
		slog.ErrorContext(ctx, "failed to acquire reactor lease",
			slog.String("error", err.Error()),
		)
		return
	}
	if !acquired {
		return
	}

	now := time.Now()

	swept, err := r.request.SweepExpired(ctx, now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to sweep expired requests",
			slog.String("error", err.Error()),
		)
	} else if swept > 0 {
		slog.InfoContext(ctx, "expired requests swept",
			slog.Int("count", swept),
		)
	}

	promoted, err := r.request.PromoteScheduled(ctx, now)
	if err != nil {
		slog.ErrorContext(ctx, "failed to promote scheduled requests",
			slog.String("error", err.Error()),
		)
	} else if promoted > 0 {
		slog.InfoContext(ctx, "scheduled requests promoted",
			slog.Int("count", promoted),
		)
	}
}
