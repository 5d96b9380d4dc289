package cmd

import (
	"log/slog"
	"time"

	"parceltrack/internal/adapters/out/label"
	"parceltrack/internal/adapters/out/postgres"
	redissessions "parceltrack/internal/adapters/out/redis/sessionrepo"
	"parceltrack/internal/core/application/usecases/commands"
	"parceltrack/internal/core/application/usecases/queries"
	"parceltrack/internal/core/ports"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	configs    Config
	gormDB     *gorm.DB
	uowFactory postgres.GormUnitOfWorkFactory

	// redisSessions is non-nil when the session backend is redis; parcels
	// always live in postgres.
	redisSessions *redissessions.Store

	logger *slog.Logger
}

func NewCompositionRoot(configs Config, gormDB *gorm.DB, redisClient *redis.Client, logger *slog.Logger) CompositionRoot {
	root := CompositionRoot{
		configs:    configs,
		gormDB:     gormDB,
		uowFactory: *postgres.NewGormUnitOfWorkFactory(gormDB),
		logger:     logger,
	}
	if configs.SessionStore == "redis" {
		root.redisSessions = redissessions.NewStore(redisClient, root.SessionTTL())
	}
	return root
}

// PublicBaseURL returns the externally reachable base used in QR labels.
func (c *CompositionRoot) PublicBaseURL() string {
	return c.configs.PublicBaseURL
}

// SessionTTL returns the configured idle-session lifetime.
func (c *CompositionRoot) SessionTTL() time.Duration {
	return time.Duration(c.configs.SessionTTLMinutes) * time.Minute
}

func (c *CompositionRoot) parcelUoWFactory() commands.ParcelUoWFactory {
	return FuncParcelUoWFactory(func() commands.ParcelUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) sessionUoWFactory() commands.SessionUoWFactory {
	if c.redisSessions != nil {
		return FuncSessionUoWFactory(func() commands.SessionUoW {
			return c.redisSessions.NewUnitOfWork()
		})
	}
	return FuncSessionUoWFactory(func() commands.SessionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) sessionQueryUoWFactory() queries.SessionUoWFactory {
	if c.redisSessions != nil {
		return FuncSessionQueryUoWFactory(func() queries.SessionUoW {
			return c.redisSessions.NewUnitOfWork()
		})
	}
	return FuncSessionQueryUoWFactory(func() queries.SessionUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) CreateCreateParcelCommandHandler() commands.CreateParcelCommandHandler {
	return commands.NewCreateParcelCommandHandler(c.parcelUoWFactory())
}

func (c *CompositionRoot) CreateScanParcelCommandHandler() commands.ScanParcelCommandHandler {
	return commands.NewScanParcelCommandHandler(
		c.parcelUoWFactory(),
		c.sessionUoWFactory(),
		c.configs.StrictTerminalStatuses,
		c.logger,
	)
}

func (c *CompositionRoot) CreateStartSessionCommandHandler() commands.StartSessionCommandHandler {
	return commands.NewStartSessionCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateJoinSessionCommandHandler() commands.JoinSessionCommandHandler {
	return commands.NewJoinSessionCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateConnectSessionCommandHandler() commands.ConnectSessionCommandHandler {
	return commands.NewConnectSessionCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateEndSessionCommandHandler() commands.EndSessionCommandHandler {
	return commands.NewEndSessionCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreatePurgeStaleSessionsCommandHandler() commands.PurgeStaleSessionsCommandHandler {
	return commands.NewPurgeStaleSessionsCommandHandler(c.sessionUoWFactory())
}

func (c *CompositionRoot) CreateGetParcelQueryHandler() queries.GetParcelQueryHandler {
	return queries.NewGetParcelQueryHandler(c.gormDB)
}

func (c *CompositionRoot) CreateGetSessionQueryHandler() queries.GetSessionQueryHandler {
	return queries.NewGetSessionQueryHandler(c.sessionQueryUoWFactory())
}

func (c *CompositionRoot) CreateLabelRenderer() ports.LabelRenderer {
	return label.NewPNGRenderer()
}

type FuncParcelUoWFactory func() commands.ParcelUoW

func (f FuncParcelUoWFactory) Create() commands.ParcelUoW {
	return f()
}

type FuncSessionUoWFactory func() commands.SessionUoW

func (f FuncSessionUoWFactory) Create() commands.SessionUoW {
	return f()
}

type FuncSessionQueryUoWFactory func() queries.SessionUoW

func (f FuncSessionQueryUoWFactory) Create() queries.SessionUoW {
	return f()
}
