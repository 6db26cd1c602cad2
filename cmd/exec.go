package cmd

import (
	"context"
	"log"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/pocketbase/pocketbase"
	"github.com/pocketbase/pocketbase/apis"
	"github.com/pocketbase/pocketbase/core"
	"github.com/pocketbase/pocketbase/plugins/migratecmd"
	"github.com/redis/go-redis/v9"

	"alumni-portal/config"
	"alumni-portal/handlers"
	_ "alumni-portal/migrations"
	"alumni-portal/monitoring"
	"alumni-portal/security"
	"alumni-portal/services"
	"alumni-portal/utils"
)

func Start() error {
	app := pocketbase.New()

	// Load configuration
	cfg := config.LoadConfig()

	// Development runs get debug logging; everything else stays at info.
	if cfg.Environment == "development" {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Initialize Redis (optional: dashboard cache + rate limiting)
	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		client, err := utils.NewRedisClient(cfg.RedisURL, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			slog.Warn("redis unavailable, cache and rate limiting disabled", "error", err)
		} else {
			redisClient = client
			defer redisClient.Close()
		}
	}

	_, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Initialize services
	imageService := services.NewImageService(cfg)
	reportService := services.NewReportService(app, imageService, cfg)
	dashboardService := services.NewDashboardService(app, redisClient, cfg.DashboardCacheTTL)
	limiter := security.NewRateLimiter(redisClient)

	// Initialize handlers
	reportHandler := handlers.NewReportHandler(reportService, limiter, cfg)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)
	alumniHandler := handlers.NewAlumniHandler(app, reportService)
	photoHandler := handlers.NewPhotoHandler(app, cfg)

	// Enable migrations
	migratecmd.MustRegister(app, app.RootCmd, migratecmd.Config{
		Automigrate: true,
	})

	// Setup graceful shutdown
	go handleShutdown(cancel)

	app.OnServe().BindFunc(func(e *core.ServeEvent) error {
		// Report generation
		e.Router.POST("/api/v1/events/{eventId}/report", reportHandler.Generate).Bind(apis.RequireAuth())

		// Dashboard analytics
		e.Router.GET("/api/v1/dashboard/stats", dashboardHandler.Stats).Bind(apis.RequireAuth())

		// CSV surfaces
		e.Router.GET("/api/v1/events/{eventId}/attendees.csv", alumniHandler.ExportAttendees).Bind(apis.RequireAuth())
		e.Router.GET("/api/v1/alumni/export", alumniHandler.ExportAlumni).Bind(apis.RequireAuth())
		e.Router.POST("/api/v1/alumni/import", alumniHandler.ImportAlumni).Bind(apis.RequireAuth())

		// Event photo gallery
		e.Router.POST("/api/v1/events/{eventId}/photos", photoHandler.Upload).Bind(apis.RequireAuth())

		// Health check
		e.Router.GET("/health", func(e *core.RequestEvent) error {
			if redisClient != nil {
				if err := utils.RedisHealthCheck(redisClient); err != nil {
					return e.JSON(503, map[string]string{
						"status": "degraded",
						"error":  err.Error(),
					})
				}
			}
			return e.JSON(200, map[string]string{"status": "healthy"})
		})

		// Metrics
		if cfg.EnableMetrics {
			e.Router.GET("/metrics", apis.WrapStdHandler(monitoring.Handler()))
		}

		log.Println("Server routes registered")

		setupRecordHooks(app, dashboardService)

		return e.Next()
	})

	// Start server
	if err := app.Start(); err != nil {
		log.Fatal(err)
	}
	return nil
}

func setupRecordHooks(app *pocketbase.PocketBase, dashboard *services.DashboardService) {
	// Report submissions written directly through the records API get the
	// same normalization as the generation pipeline: rating clamped into
	// [1,5], counts never negative.
	app.OnRecordCreate("event_report_data").BindFunc(func(e *core.RecordEvent) error {
		rating := e.Record.GetInt("overall_rating")
		switch {
		case rating < 1:
			e.Record.Set("overall_rating", 1)
		case rating > 5:
			e.Record.Set("overall_rating", 5)
		}
		for _, field := range []string{"students_attended", "external_guests", "alumni_attended"} {
			if e.Record.GetInt(field) < 0 {
				e.Record.Set(field, 0)
			}
		}
		return e.Next()
	})

	// Alumni and event changes invalidate the cached dashboard stats for
	// the affected department (and the global view).
	invalidate := func(e *core.RecordEvent) error {
		dashboard.Invalidate(context.Background(), e.Record.GetString("department"))
		return e.Next()
	}
	for _, collection := range []string{"alumni", "events"} {
		app.OnRecordAfterCreateSuccess(collection).BindFunc(invalidate)
		app.OnRecordAfterUpdateSuccess(collection).BindFunc(invalidate)
		app.OnRecordAfterDeleteSuccess(collection).BindFunc(invalidate)
	}
}

func handleShutdown(cancel context.CancelFunc) {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	log.Println("Shutting down gracefully...")
	cancel()
}
