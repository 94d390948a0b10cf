//go:build wireinject

package custodia

import (
	"github.com/bradfitz/gomemcache/memcache"
	"github.com/google/wire"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"github.com/custodia-cloud/custodia/core"
	"github.com/custodia-cloud/custodia/util"

	"github.com/custodia-cloud/custodia/x/actor"
	"github.com/custodia-cloud/custodia/x/auth"
	"github.com/custodia-cloud/custodia/x/dispatch"
	"github.com/custodia-cloud/custodia/x/permission"
	"github.com/custodia-cloud/custodia/x/policy"
	"github.com/custodia-cloud/custodia/x/request"
	"github.com/custodia-cloud/custodia/x/socket"
)

// Lv0
var actorServiceProvider = wire.NewSet(actor.NewService, actor.NewRepository)
var permissionServiceProvider = wire.NewSet(permission.NewService, permission.NewRepository)
var eventServiceProvider = wire.NewSet(socket.NewService)

// Lv1
var policyServiceProvider = wire.NewSet(policy.NewService, policy.NewRepository, SetupActorService, SetupPermissionService)
var authServiceProvider = wire.NewSet(auth.NewService, SetupActorService)

// Lv2
var executorServiceProvider = wire.NewSet(dispatch.NewExecutor, SetupActorService, SetupPermissionService, SetupPolicyService)

// Lv3
var requestServiceProvider = wire.NewSet(
	request.NewService,
	request.NewRepository,
	SetupPermissionService,
	SetupPolicyService,
	SetupExecutorService,
	SetupEventService,
)

// Lv4
var dispatchServiceProvider = wire.NewSet(dispatch.NewReactor, SetupRequestService)

// -----------

func SetupActorService(db *gorm.DB, mc *memcache.Client) core.ActorService {
	wire.Build(actorServiceProvider)
	return nil
}

func SetupPermissionService(db *gorm.DB, rdb *redis.Client) core.PermissionService {
	wire.Build(permissionServiceProvider)
	return nil
}

func SetupPolicyService(db *gorm.DB, rdb *redis.Client, mc *memcache.Client) core.PolicyService {
	wire.Build(policyServiceProvider)
	return nil
}

func SetupExecutorService(db *gorm.DB, rdb *redis.Client, mc *memcache.Client) core.ExecutorService {
	wire.Build(executorServiceProvider)
	return nil
}

func SetupEventService(rdb *redis.Client) core.EventService {
	wire.Build(eventServiceProvider)
	return nil
}

func SetupRequestService(db *gorm.DB, rdb *redis.Client, mc *memcache.Client, config util.Config) core.RequestService {
	wire.Build(requestServiceProvider)
	return nil
}

func SetupDispatchService(db *gorm.DB, rdb *redis.Client, mc *memcache.Client, config util.Config) core.DispatchService {
	wire.Build(dispatchServiceProvider)
	return nil
}

func SetupAuthService(db *gorm.DB, mc *memcache.Client, config util.Config) auth.Service {
	wire.Build(authServiceProvider)
	return nil
}

func SetupSocketManager(rdb *redis.Client) core.SocketManager {
	wire.Build(socket.NewManager)
	return nil
}

func SetupActorHandler(db *gorm.DB, mc *memcache.Client) actor.Handler {
	wire.Build(actor.NewHandler, SetupActorService)
	return nil
}

func SetupPermissionHandler(db *gorm.DB, rdb *redis.Client) permission.Handler {
	wire.Build(permission.NewHandler, SetupPermissionService)
	return nil
}

func SetupPolicyHandler(db *gorm.DB, rdb *redis.Client, mc *memcache.Client) policy.Handler {
	wire.Build(policy.NewHandler, SetupPolicyService)
	return nil
}

func SetupRequestHandler(db *gorm.DB, rdb *redis.Client, mc *memcache.Client, config util.Config) request.Handler {
	wire.Build(request.NewHandler, SetupRequestService)
	return nil
}

func SetupSocketHandler(rdb *redis.Client) socket.Handler {
	wire.Build(socket.NewHandler, SetupSocketManager)
	return nil
}
