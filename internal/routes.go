package internal

import (
	"net/http"
	"rollcall/internal/controllers"
	"rollcall/internal/providers"
)

func InitRoutes(catalog *controllers.CatalogController, roster *controllers.RosterController, scan *controllers.ScanController, dashboard *controllers.DashboardController) providers.RouterProviderInterface {
	routers := providers.NewRouterProvider()

	routers.Get("/tracks", http.HandlerFunc(catalog.Tracks))
	routers.Get("/teams", http.HandlerFunc(catalog.Teams))

	routers.Post("/roster", http.HandlerFunc(roster.Open))
	routers.Get("/roster/{id}", http.HandlerFunc(roster.Show))
	routers.Post("/roster/{id}/toggle", http.HandlerFunc(roster.Toggle))
	routers.Post("/roster/{id}/reload", http.HandlerFunc(roster.Reload))
	routers.Post("/roster/{id}/submit", http.HandlerFunc(roster.Submit))
	routers.Post("/roster/{id}/close", http.HandlerFunc(roster.Close))

	routers.Post("/scan", http.HandlerFunc(scan.Open))
	routers.Get("/scan/{id}", http.HandlerFunc(scan.Show))
	routers.Post("/scan/{id}/detect", http.HandlerFunc(scan.Detect))
	routers.Post("/scan/{id}/pause", http.HandlerFunc(scan.Pause))
	routers.Post("/scan/{id}/resume", http.HandlerFunc(scan.Resume))
	routers.Post("/scan/{id}/toggle", http.HandlerFunc(scan.Toggle))
	routers.Post("/scan/{id}/send", http.HandlerFunc(scan.Send))
	routers.Post("/scan/{id}/close", http.HandlerFunc(scan.Close))

	routers.Get("/dashboard/categories", http.HandlerFunc(dashboard.Categories))
	routers.Get("/dashboard/{category}", http.HandlerFunc(dashboard.View))
	return routers
}
