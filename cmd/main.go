package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"jobboard/internal/config"
	"jobboard/internal/delivery/http/handler"
	domainAccount "jobboard/internal/domain/account"
	domainCache "jobboard/internal/domain/cache"
	domainJob "jobboard/internal/domain/job"
	domainNewsletter "jobboard/internal/domain/newsletter"
	"jobboard/internal/infrastructure/ai"
	"jobboard/internal/infrastructure/cache"
	"jobboard/internal/infrastructure/database/memory"
	"jobboard/internal/infrastructure/database/postgres"
	"jobboard/internal/infrastructure/events"
	"jobboard/internal/infrastructure/mailer"
	"jobboard/internal/infrastructure/scheduler"
	"jobboard/internal/logger"
	"jobboard/internal/routes"
	"jobboard/internal/usecase/account"
	"jobboard/internal/usecase/application"
	"jobboard/internal/usecase/job"
	"jobboard/internal/usecase/newsletter"
	"jobboard/internal/usecase/passwordreset"
	"jobboard/internal/usecase/profile"
	"jobboard/internal/usecase/resume"

	"github.com/getsentry/sentry-go"
	"go.uber.org/zap"
)

const (
	shutdownTimeout   = 30 * time.Second
	schedulerTimeout  = 5 * time.Minute
	sentryFlushPeriod = 2 * time.Second
)

type repositories struct {
	accounts      domainAccount.Repository
	refreshTokens domainAccount.RefreshTokenRepository
	experience    domainAccount.ExperienceRepository
	education     domainAccount.EducationRepository
	skills        domainAccount.SkillRepository
	jobs          domainJob.Repository
	applications  domainJob.ApplicationRepository
	newsletter    domainNewsletter.Repository
	health        handler.Pinger
	close         func()
}

func openRepositories(cfg *config.Config) (*repositories, error) {
	switch cfg.Database.Driver {
	case "memory":
		logger.Warn("Using in-memory storage, data is lost on restart")
		return &repositories{
			accounts:      memory.NewAccountRepository(),
			refreshTokens: memory.NewRefreshTokenRepository(),
			experience:    memory.NewExperienceRepository(),
			education:     memory.NewEducationRepository(),
			skills:        memory.NewSkillRepository(),
			jobs:          memory.NewJobRepository(),
			applications:  memory.NewApplicationRepository(),
			newsletter:    memory.NewNewsletterRepository(),
			health:        alwaysHealthy{},
			close:         func() {},
		}, nil
	case "postgres":
		db, err := postgres.NewDB(cfg)
		if err != nil {
			return nil, err
		}
		if err := db.Migrate(); err != nil {
			_ = db.Close()
			return nil, err
		}
		return &repositories{
			accounts:      postgres.NewAccountRepository(db),
			refreshTokens: postgres.NewRefreshTokenRepository(db),
			experience:    postgres.NewExperienceRepository(db),
			education:     postgres.NewEducationRepository(db),
			skills:        postgres.NewSkillRepository(db),
			jobs:          postgres.NewJobRepository(db),
			applications:  postgres.NewApplicationRepository(db),
			newsletter:    postgres.NewNewsletterRepository(db),
			health:        db,
			close: func() {
				if err := db.Close(); err != nil {
					logger.Error("Failed to close database connection", zap.Error(err))
				}
			},
		}, nil
	default:
		return nil, fmt.Errorf("unknown STORAGE_DRIVER %q", cfg.Database.Driver)
	}
}

func openCache(ctx context.Context, cfg *config.RedisConfig) (domainCache.Cache, func(), error) {
	switch cfg.Driver {
	case "memory":
		logger.Warn("Using in-memory cache, reset tokens are not shared between instances")
		return cache.NewMemoryCache(), func() {}, nil
	case "redis":
		client, err := cache.NewRedisClient(ctx, cfg.URL)
		if err != nil {
			return nil, nil, err
		}
		c := cache.NewRedisCache(client)
		return c, func() {
			if err := c.Close(); err != nil {
				logger.Error("Failed to close redis connection", zap.Error(err))
			}
		}, nil
	default:
		return nil, nil, fmt.Errorf("unknown CACHE_DRIVER %q", cfg.Driver)
	}
}

type alwaysHealthy struct{}

func (alwaysHealthy) Ping(context.Context) error { return nil }

func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Stderr.WriteString("Failed to load configuration: " + err.Error() + "\n")
		os.Exit(1)
	}

	env := cfg.Server.Environment
	if env == "" {
		env = "development"
	}
	if err := logger.Init(env); err != nil {
		os.Stderr.WriteString("Failed to initialize logger: " + err.Error() + "\n")
		os.Exit(1)
	}
	defer logger.Sync()

	logger.Info("Starting application",
		zap.String("environment", env),
		zap.String("storage_driver", cfg.Database.Driver),
		zap.String("cache_driver", cfg.Redis.Driver),
	)

	if err := cfg.Validate(); err != nil {
		logger.Fatal("Invalid configuration", zap.Error(err))
	}

	if cfg.Sentry.DSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:         cfg.Sentry.DSN,
			Environment: env,
		}); err != nil {
			logger.Error("Failed to initialize sentry", zap.Error(err))
		} else {
			defer sentry.Flush(sentryFlushPeriod)
		}
	}

	startupCtx, cancelStartup := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancelStartup()

	repos, err := openRepositories(cfg)
	if err != nil {
		logger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer repos.close()

	sharedCache, closeCache, err := openCache(startupCtx, &cfg.Redis)
	if err != nil {
		logger.Fatal("Failed to open cache", zap.Error(err))
	}
	defer closeCache()

	sender, err := mailer.NewSender(&cfg.SMTP)
	if err != nil {
		logger.Fatal("Failed to configure mail sender", zap.Error(err))
	}
	dispatcher := mailer.NewDispatcher(sender,
		cfg.PasswordReset.MailWorkers,
		cfg.PasswordReset.MailQueueSize,
		cfg.PasswordReset.MailSendTimeout,
	)
	dispatcher.Start()
	defer dispatcher.Stop()

	publisher, err := events.NewPublisher(&cfg.MQTT)
	if err != nil {
		// Events are best-effort; run without them rather than refuse to start.
		logger.Error("Failed to connect event publisher", zap.Error(err))
		publisher = events.NopPublisher{}
	}
	defer publisher.Close()

	model, err := ai.NewModel(startupCtx, &cfg.AI)
	if err != nil {
		logger.Error("Failed to create AI model, resume scoring disabled", zap.Error(err))
	}

	accountService := account.NewService(repos.accounts, repos.refreshTokens, &cfg.JWT)
	deps := &routes.Dependencies{
		Accounts: accountService,
		PasswordResets: passwordreset.NewService(
			repos.accounts, repos.refreshTokens, sharedCache, dispatcher, &cfg.PasswordReset,
		),
		Jobs:         job.NewService(repos.jobs, sharedCache, publisher),
		Applications: application.NewService(repos.jobs, repos.applications, publisher),
		Profiles:     profile.NewService(repos.accounts, repos.experience, repos.education, repos.skills),
		Newsletter:   newsletter.NewService(repos.newsletter),
		Resumes:      resume.NewService(model, repos.jobs),
		HealthChecks: map[string]handler.Pinger{
			"database": repos.health,
			"cache":    sharedCache,
		},
	}

	jobs := scheduler.New(schedulerTimeout)
	if err := jobs.Register("refresh-token-cleanup", cfg.Scheduler.TokenCleanupSpec, accountService.CleanupExpiredTokens); err != nil {
		logger.Fatal("Failed to schedule token cleanup", zap.Error(err))
	}
	jobs.Start()
	defer jobs.Stop()

	router := routes.SetupRoutes(cfg, deps)

	host := cfg.Server.Host
	if host == "" {
		host = "0.0.0.0"
	}
	port := cfg.Server.Port
	if port == "" {
		port = "8080"
	}
	addr := net.JoinHostPort(host, port)

	server := &http.Server{
		Addr:         addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("Server starting",
			zap.String("address", addr),
		)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Failed to start server", zap.Error(err))
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Info("Shutdown Server ...")

	ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		logger.Error("Failed to shutdown server", zap.Error(err))
	}

	log.Println("Server exited properly")
}
