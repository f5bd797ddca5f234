package main

import (
	"context"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"apgbuilders/internal/audit"
	"apgbuilders/internal/config"
	"apgbuilders/internal/dashboard"
	"apgbuilders/internal/database"
	"apgbuilders/internal/expense"
	"apgbuilders/internal/httpx"
	"apgbuilders/internal/income"
	"apgbuilders/internal/logger"
	"apgbuilders/internal/payment"
	"apgbuilders/internal/repository"
	"apgbuilders/internal/site"
	"apgbuilders/internal/vendors"
	"apgbuilders/internal/worker"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

func serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API (default)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(cmd)
		},
	}
}

func runServe(cmd *cobra.Command) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := database.Open(cfg)
	if err != nil {
		return err
	}

	app := newApp(cfg, db)

	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info().Str("port", cfg.HTTPPort).Msg("http server listening")
		errCh <- app.Listen(":" + cfg.HTTPPort)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return app.ShutdownWithContext(shutdownCtx)
}

func newApp(cfg *config.Config, db *gorm.DB) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:               "apgbuilders",
		ErrorHandler:          httpx.ErrorHandler,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(logger.RequestLogger())
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(cfg.Origins(), ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	repos := repository.New(db)
	journal := audit.NewJournal(db)

	api := app.Group("/api")

	// Dashboard & exports
	api.Get("/dashboard", dashboard.DashboardHandler(repos))
	api.Get("/dashboard/cash-flow", dashboard.CashFlowHandler(repos))
	api.Get("/export/summary.csv", dashboard.ExportHandler(repos, cfg.ExportFilePrefix, dashboard.FormatCSV))
	api.Get("/export/summary.xlsx", dashboard.ExportHandler(repos, cfg.ExportFilePrefix, dashboard.FormatXLSX))

	// Sites
	api.Get("/sites", site.ListSitesHandler(repos))
	api.Get("/sites/options", site.SiteOptionsHandler(repos))
	api.Get("/sites/:id", site.GetSiteHandler(repos))
	api.Post("/sites", site.CreateSiteHandler(repos, journal))
	api.Put("/sites/:id", site.UpdateSiteHandler(repos, journal))

	// Vendors
	api.Get("/vendors", vendors.ListVendorsHandler(repos))
	api.Get("/vendors/options", vendors.VendorOptionsHandler(repos))
	api.Get("/vendors/:id", vendors.GetVendorHandler(repos))
	api.Post("/vendors", vendors.CreateVendorHandler(repos, journal))
	api.Put("/vendors/:id", vendors.UpdateVendorHandler(repos, journal))

	// Workers
	api.Get("/workers", worker.ListWorkersHandler(repos))
	api.Get("/workers/options", worker.WorkerOptionsHandler(repos))
	api.Get("/workers/:id", worker.GetWorkerHandler(repos))
	api.Post("/workers", worker.CreateWorkerHandler(repos, journal))
	api.Put("/workers/:id", worker.UpdateWorkerHandler(repos, journal))

	// Expenses
	api.Get("/expenses", expense.ListExpensesHandler(repos))
	api.Get("/expenses/:id", expense.GetExpenseHandler(repos))
	api.Post("/expenses", expense.CreateExpenseHandler(repos, journal))
	api.Put("/expenses/:id", expense.UpdateExpenseHandler(repos, journal))

	// Worker payments
	api.Get("/worker-payments", payment.ListPaymentsHandler(repos))
	api.Get("/worker-payments/:id", payment.GetPaymentHandler(repos))
	api.Post("/worker-payments", payment.CreatePaymentHandler(repos, journal))
	api.Put("/worker-payments/:id", payment.UpdatePaymentHandler(repos, journal))

	// Site income
	api.Get("/income", income.ListIncomeHandler(repos))
	api.Get("/income/:id", income.GetIncomeHandler(repos))
	api.Post("/income", income.CreateIncomeHandler(repos, journal))
	api.Put("/income/:id", income.UpdateIncomeHandler(repos, journal))
	api.Delete("/income/:id", income.DeleteIncomeHandler(repos, journal))

	// Audit journal
	api.Get("/audit-logs", audit.ListAuditLogsHandler(journal))

	app.Use(httpx.NotFoundHandler())

	return app
}
