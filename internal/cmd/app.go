package cmd

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"golang.org/x/crypto/bcrypt"

	"github.com/studytrack/tracker/internal/api"
	"github.com/studytrack/tracker/internal/api/handler"
	"github.com/studytrack/tracker/internal/core/authz"
	"github.com/studytrack/tracker/internal/core/ports"
	"github.com/studytrack/tracker/internal/core/service"
	"github.com/studytrack/tracker/internal/core/validation"
	"github.com/studytrack/tracker/internal/infrastructure/db/memory"
	mongostore "github.com/studytrack/tracker/internal/infrastructure/db/mongo"
	redisstore "github.com/studytrack/tracker/internal/infrastructure/db/redis"
	"github.com/studytrack/tracker/internal/infrastructure/security"
	"github.com/studytrack/tracker/internal/pkg/config"
)

// repositories is one store's full set of ports.
type repositories struct {
	users         ports.UserRepository
	roles         ports.RoleRepository
	sessions      ports.SessionRepository
	memberships   ports.MembershipRepository
	tasks         ports.TaskRepository
	notifications ports.NotificationRepository
	tx            ports.Transactor
}

// app is the wired server plus the resources to release on shutdown.
type app struct {
	services api.Services
	checks   map[string]handler.Check
	closers  []func(context.Context) error
}

func (a *app) close(ctx context.Context, log zerolog.Logger) {
	for i := len(a.closers) - 1; i >= 0; i-- {
		if err := a.closers[i](ctx); err != nil {
			log.Warn().Err(err).Msg("close failed")
		}
	}
}

func buildApp(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*app, error) {
	a := &app{checks: make(map[string]handler.Check)}

	var repos repositories
	switch cfg.StoreDriver {
	case config.StoreMemory:
		store := memory.New()
		repos = repositories{
			users:         store.Users(),
			roles:         store.Roles(),
			sessions:      store.Sessions(),
			memberships:   store.Memberships(),
			tasks:         store.Tasks(),
			notifications: store.Notifications(),
			tx:            store,
		}
		log.Warn().Msg("using in-memory store; data is lost on restart")
	case config.StoreMongo:
		client, db, err := mongostore.Connect(ctx, mongostore.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, client.Disconnect)
		a.checks["mongodb"] = handler.MongoCheck(db)
		repos = repositories{
			users:         mongostore.NewUserRepository(db),
			roles:         mongostore.NewRoleRepository(db),
			sessions:      mongostore.NewSessionRepository(db),
			memberships:   mongostore.NewMembershipRepository(db),
			tasks:         mongostore.NewTaskRepository(db),
			notifications: mongostore.NewNotificationRepository(db),
			tx:            mongostore.NewTransactor(client, cfg.Mongo.Transactions),
		}
		log.Info().Str("database", cfg.Mongo.Database).Bool("transactions", cfg.Mongo.Transactions).Msg("connected to mongodb")
	default:
		return nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}

	var publisher ports.NotificationPublisher
	if cfg.Redis.Enabled {
		rdb, err := redisstore.Connect(ctx, redisstore.Config{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			a.close(ctx, log)
			return nil, err
		}
		a.closers = append(a.closers, func(context.Context) error { return rdb.Close() })
		a.checks["redis"] = handler.RedisCheck(rdb)
		publisher = redisstore.NewNotifier(rdb, cfg.Redis.ChannelPrefix)
		log.Info().Str("addr", cfg.Redis.Addr).Msg("publishing notifications to redis")
	}

	var gate authz.AdminGate = authz.AllowAll{}
	if cfg.AdminGate == config.GateMembership {
		gate = authz.NewRoleMembershipGate(repos.users, repos.roles)
	}

	validate := validation.New()
	hasher := security.NewBcryptHasher(bcrypt.DefaultCost)

	a.services = api.Services{
		Auth:          service.NewAuthService(repos.users, hasher, cfg.JWTSecret, cfg.TokenTTL, log),
		Users:         service.NewUserService(repos.users, repos.roles, service.UserReferrers{
			Sessions:      repos.sessions,
			Memberships:   repos.memberships,
			Tasks:         repos.tasks,
			Notifications: repos.notifications,
		}, hasher, repos.tx, validate, log),
		Sessions:      service.NewSessionService(repos.sessions, repos.memberships, repos.tasks, repos.users, repos.tx, validate, log),
		Tasks:         service.NewTaskService(repos.tasks, repos.sessions, repos.users, repos.tx, validate, log),
		Roles:         service.NewRoleService(repos.roles, repos.users, gate, repos.tx, validate, log),
		Notifications: service.NewNotificationService(repos.notifications, repos.users, publisher, repos.tx, validate, log),
	}
	return a, nil
}
