package controllers

import (
	"net/http"
	"rollcall/internal/providers"
	"rollcall/internal/services"
	"strings"
)

type DashboardController struct {
	logger  providers.Logger
	service services.DashboardServiceInterface
	cache   providers.CacheProviderInterface
}

func NewDashboardController(logger providers.Logger, service services.DashboardServiceInterface, cache providers.CacheProviderInterface) *DashboardController {
	return &DashboardController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func (dc *DashboardController) Categories(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, dc.service.Categories())
}

func (dc *DashboardController) View(w http.ResponseWriter, r *http.Request) {
	category := r.PathValue("category")
	// matching is case-insensitive; surrounding spaces are part of the query
	query := strings.ToLower(r.URL.Query().Get("q"))
	serveFromCacheOrCompute(w, dc.cache, dc.logger, "dashboard:"+category+":"+query, func() (any, error) {
		return dc.service.View(r.Context(), category, query)
	})
}
