// Package application assembles the pieces shared by the HTTP server and
// the command line tool.
package application

import (
	"context"
	"fmt"

	"github.com/CalKK/campaignmessaging/internal/config"
	"github.com/CalKK/campaignmessaging/internal/core"
	"github.com/CalKK/campaignmessaging/internal/logging"
	"github.com/CalKK/campaignmessaging/internal/messaging"
	"github.com/CalKK/campaignmessaging/internal/metrics"
	"github.com/CalKK/campaignmessaging/internal/sheet"
	"github.com/CalKK/campaignmessaging/internal/web"
)

// App holds the configured service graph.
type App struct {
	Config  *config.Config
	Service *core.Service
	Linker  *messaging.Linker
	Metrics *metrics.Metrics
}

// New builds the service, linker and metrics from cfg.
func New(cfg *config.Config) (*App, error) {
	m, err := metrics.New(nil)
	if err != nil {
		return nil, fmt.Errorf("metrics: %w", err)
	}

	a := &App{
		Config:  cfg,
		Linker:  messaging.NewLinker(cfg.Messaging.Template, cfg.Messaging.BaseURL),
		Metrics: m,
	}

	a.Service, err = core.NewService(sheet.Resolver, core.ServiceConfig{
		Rule:          cfg.Phone.Rule(),
		MaxConcurrent: cfg.Upload.MaxConcurrent,
		MaxWait:       cfg.Upload.MaxWaitTime,
		Timeout:       cfg.Upload.Timeout,
	}, a.diagnostics)
	if err != nil {
		return nil, err
	}
	return a, nil
}

// Server returns an HTTP server over the app.
func (a *App) Server() *web.Server {
	return web.NewServer(a.Config, a.Service, a.Linker, a.Metrics)
}

// diagnostics sends row events to the request logger and to the counters.
func (a *App) diagnostics(ctx context.Context, uploadID string) core.Diagnostics {
	return core.MultiDiagnostics{logging.UploadDiagnostics(ctx, uploadID), a.Metrics}
}
