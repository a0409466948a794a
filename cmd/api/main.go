package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"

	"github.com/stokmate/stokmate-analytics-be/internal/core/analytics"
	"github.com/stokmate/stokmate-analytics-be/internal/core/datasource"
	"github.com/stokmate/stokmate-analytics-be/internal/core/schedule"
	"github.com/stokmate/stokmate-analytics-be/internal/modules/dashboard/handlers"
	"github.com/stokmate/stokmate-analytics-be/internal/modules/dashboard/services"
	"github.com/stokmate/stokmate-analytics-be/internal/shared/config"
	"github.com/stokmate/stokmate-analytics-be/internal/shared/utils"
)

func main() {
	// Load config
	cfg := config.LoadConfig()
	utils.InitLogger(cfg.Env)
	log.Printf("🚀 Starting analytics-api on port %s", cfg.Port)

	// Init data source client
	sourceClient := datasource.NewClient(cfg.DataSourceURL, cfg.FetchTimeout, cfg.InvoiceLimit)
	log.Printf("🔗 Data source: %s (fetch timeout %s)", cfg.DataSourceURL, cfg.FetchTimeout)

	// Init services
	dashboardService := services.NewDashboardService(sourceClient, cfg.SnapshotTTL)

	// Init handlers
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	healthHandler := handlers.NewHealthHandler(cfg.DataSourceURL)

	// Init refresh scheduler: keep the default view warm on a fixed tick
	scheduler := schedule.NewScheduler()
	if err := scheduler.AddInterval("dashboard-refresh", cfg.RefreshInterval, func() {
		dashboardService.Refresh(context.Background(), analytics.PeriodMonth)
	}); err != nil {
		log.Fatalf("Failed to schedule dashboard refresh: %v", err)
	}
	scheduler.Start()

	// Init Fiber app
	app := fiber.New(fiber.Config{
		AppName: "Stokmate Analytics API",
	})

	// Middleware
	app.Use(cors.New())

	// Health check
	app.Get("/health", healthHandler.GetHealth)

	// Dashboard routes
	app.Get("/dashboard", dashboardHandler.GetDashboard)
	app.Get("/dashboard/invoices", dashboardHandler.GetInvoiceStats)

	// Start server
	go func() {
		log.Printf("✅ analytics-api running at :%s", cfg.Port)
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	// Graceful shutdown: stop the scheduler before the server so no refresh
	// pass runs against a closing app.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down analytics-api...")
	scheduler.Stop()
	if err := app.Shutdown(); err != nil {
		log.Printf("⚠️ Shutdown error: %v", err)
	}
}
