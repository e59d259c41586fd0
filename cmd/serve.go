package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/papusbarbershop/backend/internal/api"
	"github.com/papusbarbershop/backend/internal/blob"
	"github.com/papusbarbershop/backend/internal/config"
	"github.com/papusbarbershop/backend/internal/logger"
	"github.com/papusbarbershop/backend/internal/mailer"
	"github.com/papusbarbershop/backend/internal/scheduler"
	"github.com/papusbarbershop/backend/internal/server"
	"github.com/papusbarbershop/backend/internal/service"
	"github.com/papusbarbershop/backend/internal/storage"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long:  "Start the barbershop HTTP API server with the mail dispatcher and reminder scheduler.",
	RunE:  runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "HTTP server port (overrides PORT env var)")
	serveCmd.Flags().String("data-dir", "", "Data directory (overrides BARBERSHOP_DATA_DIR env var)")
}

func runServe(cmd *cobra.Command, _ []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if cmd.Flags().Changed("port") {
		cfg.Port, _ = cmd.Flags().GetInt("port")
	}
	if cmd.Flags().Changed("data-dir") {
		cfg.DataDir, _ = cmd.Flags().GetString("data-dir")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log, err := logger.NewSystemLogger(cfg.LogDir(), cfg.SlogLevel())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	log.Info("starting barbershop backend", "version", Version, "port", cfg.Port)

	db, fresh, err := storage.NewSQLiteDB(cfg.DatabasePath())
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer db.Close()

	appointmentStore := storage.NewSQLiteAppointmentStore(db)
	catalogStore := storage.NewSQLiteCatalogStore(db)
	notificationStore := storage.NewSQLiteNotificationStore(db)

	if fresh {
		if err := storage.SeedCatalog(ctx, catalogStore); err != nil {
			return fmt.Errorf("seeding catalog: %w", err)
		}
		log.Info("seeded catalog for new database")
	}

	shop, err := config.LoadShopProfile(cfg.ShopProfilePath())
	if err != nil {
		return fmt.Errorf("loading shop profile: %w", err)
	}

	provider, err := selectProvider(cfg)
	if err != nil {
		return err
	}

	executor := mailer.NewExecutor(cfg.MailerWorkers, cfg.MailerQueueSize, log)
	dispatcher := mailer.NewDispatcher(mailer.DispatcherConfig{
		Executor:    executor,
		Provider:    provider,
		Recorder:    notificationStore,
		FromAddress: cfg.FromEmail,
		ShopName:    shop.Name,
		SendTimeout: cfg.MailSendTimeout,
		Logger:      log,
	})

	var signer *blob.Signer
	if cfg.S3Configured() {
		signer, err = blob.New(ctx, blob.Config{
			Region:          cfg.S3Region,
			Bucket:          cfg.S3Bucket,
			AccessKeyID:     cfg.S3AccessKeyID,
			SecretAccessKey: cfg.S3SecretAccessKey,
			Expiry:          cfg.S3PresignExpiry,
		}, log)
		if err != nil {
			return fmt.Errorf("initializing object storage: %w", err)
		}
	} else {
		signer = blob.NewDisabled(log)
	}

	appointmentSvc := service.NewAppointmentService(appointmentStore, catalogStore, dispatcher, shop.Name, log)
	catalogSvc := service.NewCatalogService(catalogStore, log)
	notificationSvc := service.NewNotificationService(notificationStore, dispatcher, shop.Name, log)

	var reminder *scheduler.Reminder
	if cfg.RemindersEnabled {
		reminder, err = scheduler.New(scheduler.Config{
			Appointments: appointmentStore,
			Catalog:      catalogStore,
			Notifier:     dispatcher,
			ShopName:     shop.Name,
			Interval:     cfg.ReminderInterval,
			Window:       cfg.ReminderWindow,
			Logger:       log,
		})
		if err != nil {
			return fmt.Errorf("creating reminder scheduler: %w", err)
		}
		if err := reminder.Start(ctx); err != nil {
			return fmt.Errorf("starting reminder scheduler: %w", err)
		}
	}

	apiSrv := api.New(appointmentSvc, catalogSvc, notificationSvc, signer, shop, log)
	srv := server.New(apiSrv, cfg.Port, log)

	fmt.Fprintf(os.Stderr, "Papus BarberShop API running on http://localhost:%d\n", cfg.Port)

	runErr := srv.Run(ctx)

	// Stop intake first, then drain queued sends before closing the DB.
	if reminder != nil {
		if err := reminder.Stop(); err != nil {
			log.Warn("stopping reminder scheduler", "error", err)
		}
	}
	stopCtx, stopCancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer stopCancel()
	if err := executor.Stop(stopCtx); err != nil {
		log.Warn("mail executor did not drain in time", "error", err)
	}

	return runErr
}

// selectProvider picks the delivery backend from configuration. A nil
// provider puts the dispatcher in degraded mode: requests are accepted and
// logged, nothing is sent.
func selectProvider(cfg *config.AppConfig) (mailer.Provider, error) {
	switch cfg.MailProvider {
	case "ses":
		if !cfg.SESConfigured() {
			return nil, fmt.Errorf("MAIL_PROVIDER=ses but AWS_SES_ACCESS_KEY or AWS_SES_SECRET_KEY is missing")
		}
	case "smtp":
		if !cfg.SMTPConfigured() {
			return nil, fmt.Errorf("MAIL_PROVIDER=smtp but SMTP_HOST is missing")
		}
		return mailer.NewSMTPProvider(mailer.SMTPConfig{
			Host:       cfg.SMTPHost,
			Port:       cfg.SMTPPort,
			Username:   cfg.SMTPUsername,
			Password:   cfg.SMTPPassword,
			Encryption: cfg.SMTPEncryption,
		}), nil
	case "":
		if !cfg.SESConfigured() {
			return nil, nil
		}
	default:
		return nil, fmt.Errorf("unknown MAIL_PROVIDER %q (want \"ses\" or \"smtp\")", cfg.MailProvider)
	}

	return mailer.NewSESProvider(mailer.SESConfig{
		AccessKey: cfg.SESAccessKey,
		SecretKey: cfg.SESSecretKey,
		Region:    cfg.SESRegion,
	})
}
