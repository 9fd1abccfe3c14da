package main

import (
	"bytes"
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/grandupright/quote-intake/internal/config"
	"github.com/grandupright/quote-intake/internal/document"
	"github.com/grandupright/quote-intake/pkg/log"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Provision object storage for the quote intake api",
	RunE: func(cmd *cobra.Command, args []string) error {
		defer zap.S().Info("Storage initialization completed")

		cfg, err := config.New()
		if err != nil {
			zap.S().Fatalw("reading configuration", "error", err)
		}

		logger := log.InitLog(cfg.Service.LogLevel)
		defer func() { _ = logger.Sync() }()

		undo := zap.ReplaceGlobals(logger)
		defer undo()

		zap.S().Info("Starting storage initialization...")

		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGHUP, syscall.SIGTERM, syscall.SIGQUIT)
		defer cancel()

		objectStore, err := newObjectStore(cfg)
		if err != nil {
			zap.S().Fatalw("initializing object storage", "error", err)
		}

		zap.S().Infof("Ensuring bucket %q", cfg.Storage.Bucket)
		if err := objectStore.EnsureBucket(ctx); err != nil {
			zap.S().Fatalw("preparing storage bucket", "error", err)
		}

		card := document.ContactCard()
		url, err := objectStore.Overwrite(ctx, document.ContactCardFilename, bytes.NewReader(card), int64(len(card)), document.ContactCardContentType)
		if err != nil {
			zap.S().Fatalw("publishing contact card", "error", err)
		}
		zap.S().Infof("Contact card published at %s", url)

		return nil
	},
}
