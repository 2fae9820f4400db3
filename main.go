package main

import (
	"context"

	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/bootstrap"
	"github.com/minhkhoavo/dashboard_export_sample/exportgateway/internal/logger"
)

func main() {
	ctx := context.Background()

	app := bootstrap.NewApp()
	if err := app.Initialize(ctx); err != nil {
		logger.ErrorLog(ctx, "Failed to initialize application", err)
		panic(err)
	}

	if err := app.Run(); err != nil {
		logger.ErrorLog(ctx, "Application failed", err)
		panic(err)
	}
}
