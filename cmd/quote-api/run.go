package main

import (
	"context"
	"net"
	"os"
	"os/signal"
	"syscall"

	apiserver "github.com/grandupright/quote-intake/internal/api_server"
	"github.com/grandupright/quote-intake/internal/config"
	"github.com/grandupright/quote-intake/internal/mail"
	"github.com/grandupright/quote-intake/internal/service"
	"github.com/grandupright/quote-intake/internal/storage"
	"github.com/grandupright/quote-intake/internal/store"
	"github.com/grandupright/quote-intake/pkg/log"
	"github.com/grandupright/quote-intake/pkg/migrations"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the quote intake api",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.New()
		if err != nil {
			zap.S().Fatalw("reading configuration", "error", err)
		}

		logger := log.InitLog(cfg.Service.LogLevel)
		defer func() { _ = logger.Sync() }()

		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Info("Starting quote intake service")
		defer zap.S().Info("Quote intake service stopped")

		db, err := store.InitDB(cfg)
		if err != nil {
			zap.S().Fatalw("initializing data store", "error", err)
		}

		s := store.NewStore(db)
		defer s.Close()

		if err := migrateDB(s, db, cfg); err != nil {
			zap.S().Fatalw("migrating database", "error", err)
		}

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		objectStore, err := newObjectStore(cfg)
		if err != nil {
			zap.S().Fatalw("initializing object storage", "error", err)
		}
		if err := objectStore.EnsureBucket(ctx); err != nil {
			zap.S().Fatalw("preparing storage bucket", "error", err)
		}

		if cfg.Mail.ApiKey == "" {
			zap.S().Fatalw("mail api key not configured", "env", "QUOTE_INTAKE_MAIL_API_KEY")
		}

		mailer := mail.NewResendMailer(cfg.Mail.ApiKey)
		quoteService := service.NewQuoteService(s, objectStore, mailer, cfg)

		// Acknowledgement emails link the card only when it is published, so
		// a failure here degrades the email rather than blocking startup.
		if _, err := quoteService.PublishContactCard(ctx); err != nil {
			zap.S().Errorw("publishing contact card", "error", err)
		}

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.Address)
			if err != nil {
				zap.S().Fatalw("creating listener", "error", err)
			}

			server := apiserver.New(cfg, quoteService, listener)
			if err := server.Run(ctx); err != nil {
				zap.S().Fatalw("running api server", "error", err)
			}
		}()

		go func() {
			defer cancel()
			listener, err := newListener(cfg.Service.MetricsAddress)
			if err != nil {
				zap.S().Fatalw("creating metrics listener", "error", err)
			}

			metricsServer := apiserver.NewMetricServer(cfg.Service.MetricsAddress, listener, s)
			if err := metricsServer.Run(ctx); err != nil {
				zap.S().Fatalw("running metrics server", "error", err)
			}
		}()

		<-ctx.Done()
		return nil
	},
}

func newListener(address string) (net.Listener, error) {
	if address == "" {
		address = "localhost:0"
	}
	return net.Listen("tcp", address)
}

func newObjectStore(cfg *config.Config) (*storage.MinioStore, error) {
	return storage.NewMinioStore(
		storage.WithEndpoint(cfg.Storage.Endpoint),
		storage.WithBucket(cfg.Storage.Bucket),
		storage.WithAccessKey(cfg.Storage.AccessKey),
		storage.WithSecretKey(cfg.Storage.SecretKey),
		storage.WithSSL(cfg.Storage.UseSSL),
		storage.WithPublicBaseUrl(cfg.Storage.PublicBaseUrl),
	)
}

// migrateDB picks the migration path by database type: goose migrations for
// postgres, gorm auto-migration for sqlite.
func migrateDB(s store.Store, db *gorm.DB, cfg *config.Config) error {
	if cfg.Database.Type == "pgsql" {
		return migrations.MigrateStore(db, cfg)
	}
	return s.InitialMigration()
}
