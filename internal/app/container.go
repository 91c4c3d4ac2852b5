package app

import (
	"context"
	"errors"
	"fmt"

	"jobboard/internal/config"
	"jobboard/internal/database"
	dbpostgres "jobboard/internal/database/postgres"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/infrastructure/messaging"
	"jobboard/internal/infrastructure/metrics"
	"jobboard/internal/infrastructure/notifier"
	"jobboard/internal/pkg/jwt"
	applog "jobboard/internal/pkg/logger"
	"jobboard/internal/repository"
	"jobboard/internal/usecase"
	"jobboard/internal/ws"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"go.uber.org/zap"
)

// Container owns every long-lived dependency of the process.
type Container struct {
	Config config.Config
	Logger *zap.Logger

	DB    database.DB
	Redis *cache.Redis

	Registry *prometheus.Registry
	Metrics  *metrics.Metrics

	Jobs             repository.JobRepository
	Companies        repository.CompanyRepository
	Skills           repository.SkillRepository
	Applications     repository.ApplicationRepository
	NotificationRepo repository.NotificationRepository

	Hub       *ws.Hub
	Publisher *ws.Publisher
	JWT       *jwt.HMACService

	Notifier      *usecase.NotifierService
	Emitter       usecase.EventEmitter
	Matcher       *usecase.MatcherService
	Notifications usecase.NotificationUsecase

	closers []func() error
}

func NewContainer(ctx context.Context, cfg config.Config, logger *zap.Logger) (*Container, error) {
	logger = applog.OrNop(logger)

	db, err := dbpostgres.Connect(ctx, cfg.Database, logger)
	if err != nil {
		return nil, err
	}
	return NewContainerWithDB(cfg, db, cache.NewRedis(cfg.Redis, logger), logger)
}

// NewContainerWithDB wires everything on top of an open store. The
// container takes ownership of db and rdb.
func NewContainerWithDB(cfg config.Config, db database.DB, rdb *cache.Redis, logger *zap.Logger) (*Container, error) {
	logger = applog.OrNop(logger)
	c := &Container{Config: cfg, Logger: logger, DB: db, Redis: rdb}
	c.closers = append(c.closers, db.Close, rdb.Close)

	c.Registry = prometheus.NewRegistry()
	c.Registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	c.Metrics = metrics.New(c.Registry)

	c.Jobs = repository.NewCachedJobRepository(
		repository.NewPostgresJobRepository(db), rdb, cfg.Redis.JobCacheTTL, logger,
	)
	c.Companies = repository.NewPostgresCompanyRepository(db)
	c.Skills = repository.NewPostgresSkillRepository(db)
	c.Applications = repository.NewPostgresApplicationRepository(db)
	c.NotificationRepo = repository.NewPostgresNotificationRepository(db)

	c.Hub = ws.NewHub(logger.Named("ws"))
	c.Publisher = ws.NewPublisher(rdb, c.Hub, logger.Named("ws"))
	c.JWT = jwt.NewHMACService(cfg.JWT.AccessSecret, cfg.JWT.AccessExpiresIn)

	c.Notifier = usecase.NewNotifier(usecase.NotifierDeps{
		Jobs:          c.Jobs,
		Companies:     c.Companies,
		Skills:        c.Skills,
		Applications:  c.Applications,
		Notifications: c.NotificationRepo,
		Publisher:     c.Publisher,
		Metrics:       c.Metrics,
		Logger:        logger.Named("notifier"),
	})

	emitter, closeEmitter, err := newEmitter(cfg, c.Notifier)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	c.Emitter = emitter
	if closeEmitter != nil {
		c.closers = append(c.closers, closeEmitter)
	}

	c.Matcher = usecase.NewMatcher(usecase.MatcherDeps{
		Skills:    c.Skills,
		Emitter:   c.Emitter,
		Jobs:      c.Jobs,
		Workers:   cfg.Matcher.Workers,
		RateLimit: cfg.Matcher.RateLimit,
		Timeout:   cfg.Matcher.Timeout,
		Metrics:   c.Metrics,
		Logger:    logger.Named("matcher"),
	})
	c.Notifications = usecase.NewNotificationUsecase(c.NotificationRepo)

	return c, nil
}

// newEmitter picks how the matcher reaches the Notifier.
func newEmitter(cfg config.Config, n usecase.Notifier) (usecase.EventEmitter, func() error, error) {
	switch cfg.Notifier.Mode {
	case config.NotifierModeInProcess, "":
		return usecase.NewInProcessEmitter(n), nil, nil
	case config.NotifierModeHTTP:
		e, err := notifier.NewHTTPEmitter(cfg.Notifier)
		if err != nil {
			return nil, nil, err
		}
		return e, nil, nil
	case config.NotifierModeKafka:
		p, err := messaging.NewProducer(cfg.Kafka)
		if err != nil {
			return nil, nil, err
		}
		return p, p.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown notifier mode %q", cfg.Notifier.Mode)
	}
}

// Close waits for detached matcher runs, then releases resources in reverse
// order of acquisition.
func (c *Container) Close() error {
	if c == nil {
		return nil
	}
	if c.Matcher != nil {
		c.Matcher.Wait()
	}

	var errs []error
	for i := len(c.closers) - 1; i >= 0; i-- {
		if err := c.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	c.closers = nil
	return errors.Join(errs...)
}
