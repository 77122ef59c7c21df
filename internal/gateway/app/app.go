package app

import (
	"context"
	"fmt"
	"log"

	"flowlens/internal/classify"
	"flowlens/internal/gateway/config"
	"flowlens/internal/gateway/handler"
	"flowlens/internal/gateway/server"
	dashsvc "flowlens/internal/gateway/service/dashboard"
	"flowlens/internal/layout"
	"flowlens/internal/llm"
)

type App struct {
	server *server.Server
	stores *gatewayStores
}

func New(ctx context.Context) (*App, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	stores, err := initStores(cfg)
	if err != nil {
		return nil, err
	}

	classifier := classify.New(initModel(ctx, cfg))
	svc := dashsvc.New(classifier, layout.DefaultCatalog(), stores.dashboards, stores.artifacts)

	dashboardHandler := handler.NewDashboardHandler(svc)
	watchHandler := handler.NewWatchHandler(svc)

	mux := server.NewMux(dashboardHandler, watchHandler)
	srv := server.New(cfg.Port, mux)

	return &App{
		server: srv,
		stores: stores,
	}, nil
}

// initModel returns the classification model, or nil to run on heuristics.
func initModel(ctx context.Context, cfg *config.Config) llm.Client {
	if cfg.Model.APIKey == "" {
		log.Printf("classifier: no GEMINI_API_KEY, using heuristics")
		return nil
	}
	client, err := llm.NewGeminiClient(ctx, cfg.Model.Name)
	if err != nil {
		log.Printf("classifier: gemini init failed (%v), using heuristics", err)
		return nil
	}
	log.Printf("classifier: model %s", client.Name())
	return client
}

func (a *App) Start() error {
	return a.server.Start()
}

func (a *App) Shutdown(ctx context.Context) error {
	err := a.server.Shutdown(ctx)
	if closeErr := a.stores.dashboards.Close(); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}
