package server

import (
	"net/http"

	"flowlens/internal/gateway/handler"
	"flowlens/internal/gateway/middleware"
)

func NewMux(
	dashboardHandler *handler.DashboardHandler,
	watchHandler *handler.WatchHandler,
) http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/v1/dashboards/generate", dashboardHandler.HandleGenerate)
	mux.HandleFunc("/v1/layout/preview", dashboardHandler.HandlePreview)
	mux.HandleFunc("/v1/dashboards/get", dashboardHandler.HandleGet)
	mux.HandleFunc("/v1/dashboards", dashboardHandler.HandleList)
	mux.HandleFunc("/v1/dashboards/export", dashboardHandler.HandleExport)
	mux.HandleFunc("/v1/dashboards/watch", watchHandler.HandleWatchWS)

	return middleware.CORS(mux)
}
