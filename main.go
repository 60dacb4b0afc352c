package main

import (
	"context"
	"log/slog"

	"github.com/gofiber/contrib/fiberzap/v2"
	"github.com/gofiber/contrib/otelfiber/v2"
	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/hyperdxio/otel-config-go/otelconfig"

	"imgconv/api/rest"
	"imgconv/config"
	"imgconv/converter/image/format"
	"imgconv/service"
	"imgconv/shared/log"
	"imgconv/shared/metrics"
	"imgconv/shared/trace"
	"imgconv/validation"
)

//	@title			Image conversion service
//	@version		1.0
//	@description	Upload an image, pick a target format, download the converted result.

// @BasePath	/
func main() {
	serviceConfig := config.New()

	ctx := context.Background()

	tp := trace.InitTrace(serviceConfig.AppName)
	defer func() {
		if err := tp.Shutdown(ctx); err != nil {
			slog.Error("Error shutting down tracer provider", "error", err)
		}
	}()

	otelShutdown, err := otelconfig.ConfigureOpenTelemetry()
	if err != nil {
		slog.Error("Error configuring OpenTelemetry", "error", err)
	}
	defer otelShutdown()

	logger := log.InitLogger(ctx)
	defer func() {
		if err = logger.Sync(); err != nil {
			slog.Error("Error syncing logger", "error", err)
		}
	}()

	converterStrategy := format.MustStrategy(logger)
	serviceMetrics := metrics.New()

	app := fiber.New(fiber.Config{
		AppName: serviceConfig.AppName,
		// The transport cap sits above the policy ceiling so bodies near the
		// limit still reach the validator; anything beyond the cap is shaped
		// into the same envelope by the error handler.
		BodyLimit:    int(serviceConfig.MaxUploadSizeBytes) + 1<<20,
		ErrorHandler: rest.ErrorHandler(serviceConfig),
	})
	app.Use(
		recover.New(),
		otelfiber.Middleware(),
		fiberzap.New(fiberzap.Config{Logger: logger}),
		compress.New(compress.Config{Level: compress.LevelBestSpeed}),
		etag.New(),
		limiter.New(limiter.Config{
			Next: func(c *fiber.Ctx) bool {
				return c.IP() == "127.0.0.1"
			},
			Max:        serviceConfig.RateLimitMaxRequests,
			Expiration: serviceConfig.RateLimitDuration(),
		}),
		swagger.New(swagger.Config{
			BasePath: "/",
			FilePath: "./docs/swagger.json",
			Path:     "docs",
			Title:    "Image conversion service",
		}),
	)

	app.Get("/metrics", adaptor.HTTPHandler(serviceMetrics.Handler()))

	requestValidator := validation.New(serviceConfig)
	convertService := service.NewConvertService(converterStrategy, requestValidator, serviceConfig, serviceMetrics, logger)

	rest.NewConvertController(app, serviceConfig, convertService, logger)

	if err = app.Listen(":" + serviceConfig.Port); err != nil {
		logger.Panic(err.Error())
		return
	}
}
