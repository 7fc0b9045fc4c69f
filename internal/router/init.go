package router

import (
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"user-access-service/internal/application"
	pginfra "user-access-service/internal/infrastructure/postgres"
	handlers "user-access-service/internal/interface/http"
	"user-access-service/internal/router/modules"
	"user-access-service/pkg/helpers"
)

// Deps are the process-wide singletons the modules are built from.
type Deps struct {
	Pool         *pgxpool.Pool
	Redis        *redis.Client
	JWT          *helpers.JWTManager
	Logger       *logrus.Logger
	Mail         *helpers.RabbitPublisher
	ES           *elasticsearch.Client
	ESUsersIndex string
}

// InitModules builds the per-request unit-of-work factory services and
// registers every feature module with the registry.
func InitModules(r *Registry, deps Deps) {
	store := pginfra.NewStore(deps.Pool)
	search := application.NewSearchIndex(deps.ES, deps.ESUsersIndex, deps.Logger)

	authSvc := application.NewAuthService(store, deps.JWT, deps.Logger, deps.Mail, search)
	userSvc := application.NewUserService(store, deps.Logger, search)

	r.Add(modules.NewAuthModule(handlers.NewAuthHandler(authSvc, deps.Logger), deps.Redis))
	r.Add(modules.NewUserModule(handlers.NewUserHandler(userSvc, deps.Logger), deps.JWT))
}
