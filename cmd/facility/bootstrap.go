package main

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/zerotrace/smart-facility/internal/core/ports"
	"github.com/zerotrace/smart-facility/internal/core/service"
	"github.com/zerotrace/smart-facility/internal/infrastructure/config"
	"github.com/zerotrace/smart-facility/internal/infrastructure/db/sqldb"
	"github.com/zerotrace/smart-facility/internal/infrastructure/seed"
	"github.com/zerotrace/smart-facility/pkg/logger"
)

const serviceName = "smart-facility"

// base is what every command needs: configuration, a logger and the
// relational database.
type base struct {
	cfg *config.Config
	log zerolog.Logger
	db  *gorm.DB
}

func bootstrap(ctx context.Context) (*base, error) {
	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, err
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})

	db, err := sqldb.Open(ctx, sqldb.Config{
		Driver:       cfg.Database.Driver,
		DSN:          cfg.Database.DSN,
		MaxOpenConns: cfg.Database.MaxOpenConns,
	}, log)
	if err != nil {
		return nil, err
	}

	return &base{cfg: cfg, log: log, db: db}, nil
}

func (b *base) close() {
	if err := sqldb.Close(b.db); err != nil {
		b.log.Error().Err(err).Msg("failed to close database")
	}
}

// repositories are the GORM-backed stores shared by the services.
type repositories struct {
	tx          *sqldb.TransactionManager
	users       *sqldb.UserRepository
	spaces      *sqldb.SpaceRepository
	bookings    *sqldb.BookingRepository
	tickets     *sqldb.TicketRepository
	attachments *sqldb.AttachmentRepository
}

func newRepositories(db *gorm.DB) *repositories {
	return &repositories{
		tx:          sqldb.NewTransactionManager(db),
		users:       sqldb.NewUserRepository(db),
		spaces:      sqldb.NewSpaceRepository(db),
		bookings:    sqldb.NewBookingRepository(db),
		tickets:     sqldb.NewTicketRepository(db),
		attachments: sqldb.NewAttachmentRepository(db),
	}
}

// runSeed fills empty user and space tables with development data.
func runSeed(ctx context.Context, b *base, repos *repositories, auth ports.AuthService) error {
	spaces := service.NewSpaceService(repos.spaces, repos.tx, b.log)
	seeder := seed.NewSeeder(repos.users, repos.spaces, auth, spaces, b.log.With().Str("component", "seed").Logger())
	if err := seeder.Run(ctx); err != nil {
		return fmt.Errorf("seed: %w", err)
	}
	return nil
}
