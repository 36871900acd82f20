package main

import (
	"context"
	"errors"
	"net"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	mongodriver "go.mongodb.org/mongo-driver/mongo"

	"github.com/zerotrace/smart-facility/internal/api"
	"github.com/zerotrace/smart-facility/internal/core/ports"
	"github.com/zerotrace/smart-facility/internal/core/service"
	"github.com/zerotrace/smart-facility/internal/infrastructure/db/mongo"
	"github.com/zerotrace/smart-facility/internal/infrastructure/db/redis"
	"github.com/zerotrace/smart-facility/internal/infrastructure/db/sqldb"
	"github.com/zerotrace/smart-facility/internal/infrastructure/http/handlers"
	"github.com/zerotrace/smart-facility/internal/infrastructure/queue"
	"github.com/zerotrace/smart-facility/internal/infrastructure/scheduler"
	"github.com/zerotrace/smart-facility/internal/infrastructure/storage"
)

const shutdownTimeout = 30 * time.Second

var autoMigrate bool

func newServeCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP server",
		Long:  `Start the facility HTTP API together with the activity log workers and the reminder scheduler.`,
		RunE:  runServe,
	}
	cmd.Flags().BoolVar(&autoMigrate, "auto-migrate", true, "Run GORM AutoMigrate before serving")
	return cmd
}

func runServe(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	b, err := bootstrap(ctx)
	if err != nil {
		return err
	}
	defer b.close()
	cfg, log := b.cfg, b.log

	log.Info().
		Str("env", cfg.Env).
		Str("db_driver", cfg.Database.Driver).
		Bool("auto_migrate", autoMigrate).
		Msg("starting server")

	if autoMigrate {
		if cfg.IsProduction() {
			log.Warn().Msg("auto-migration is enabled in production")
		}
		if err := sqldb.Migrate(b.db); err != nil {
			return err
		}
	}

	health := handlers.NewHealthHandler().
		Require("database", func(ctx context.Context) error { return sqldb.Ping(ctx, b.db) })

	// --- Redis: token revocation ---
	rdb, err := redis.Connect(ctx, redis.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return err
	}
	defer func() {
		if err := rdb.Close(); err != nil {
			log.Error().Err(err).Msg("failed to close redis")
		}
	}()
	health.Require("redis", func(ctx context.Context) error { return rdb.Ping(ctx).Err() })

	// --- MongoDB: activity log (optional) ---
	var (
		recorder    ports.ActivityRecorder
		activitySvc ports.ActivityService
	)
	if cfg.Audit.Enabled {
		client, dispatcher, activity, err := startActivityLog(ctx, b)
		if err != nil {
			log.Warn().Err(err).Msg("activity log unavailable, continuing without it")
		} else {
			defer func() {
				dispatcher.Close()
				disconnectCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := client.Disconnect(disconnectCtx); err != nil {
					log.Error().Err(err).Msg("failed to disconnect mongo")
				}
			}()
			recorder, activitySvc = dispatcher, activity
			health.Observe("mongo", func(ctx context.Context) error { return client.Ping(ctx, nil) })
		}
	}

	files, err := storage.NewLocalFileStore(cfg.UploadDir)
	if err != nil {
		return err
	}

	// --- Services ---
	repos := newRepositories(b.db)
	authSvc := service.NewAuthService(repos.users, redis.NewSessionStore(rdb), repos.tx, cfg.JWTSecret, cfg.TokenTTL, log)
	spaceSvc := service.NewSpaceService(repos.spaces, repos.tx, log)
	bookingSvc := service.NewBookingService(repos.bookings, repos.users, repos.spaces, repos.tx, recorder, log)
	ticketSvc := service.NewTicketService(repos.tickets, repos.users, repos.spaces, repos.attachments, repos.tx, recorder, log)
	attachmentSvc := service.NewAttachmentService(repos.attachments, repos.tickets, files, repos.tx, recorder, log)

	if cfg.SeedData && !cfg.IsProduction() {
		if err := runSeed(ctx, b, repos, authSvc); err != nil {
			return err
		}
	}

	// --- Scheduler ---
	sched, err := scheduler.New(log)
	if err != nil {
		return err
	}
	if err := sched.RegisterDailyReminder(cfg.Reminder.Cron, bookingSvc); err != nil {
		return err
	}
	sched.Start()
	defer func() {
		if err := sched.Shutdown(); err != nil {
			log.Error().Err(err).Msg("failed to stop scheduler")
		}
	}()

	e := api.NewRouter(api.Dependencies{
		Logger:      log,
		Auth:        authSvc,
		Spaces:      spaceSvc,
		Bookings:    bookingSvc,
		Tickets:     ticketSvc,
		Attachments: attachmentSvc,
		Activity:    activitySvc,
		Health:      health,
	})

	srv := &http.Server{
		Addr:              net.JoinHostPort("", cfg.Port),
		Handler:           e,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      30 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	serveErr := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("server listening")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case err := <-serveErr:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		return err
	}

	log.Info().Msg("server exited gracefully")
	return nil
}

// startActivityLog connects to MongoDB and starts the workers that persist
// activity events.
func startActivityLog(ctx context.Context, b *base) (*mongodriver.Client, *queue.Dispatcher, ports.ActivityService, error) {
	client, db, err := mongo.Connect(ctx, mongo.Config{
		URI:      b.cfg.Mongo.URI,
		Database: b.cfg.Mongo.Database,
	})
	if err != nil {
		return nil, nil, nil, err
	}

	repo := mongo.NewActivityRepository(db)
	if err := repo.EnsureIndexes(ctx); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, nil, err
	}

	dispatcher := queue.NewDispatcher(b.cfg.Audit.Workers, repo, b.log.With().Str("component", "activity").Logger())
	dispatcher.Start(context.Background())
	return client, dispatcher, service.NewActivityService(repo), nil
}
