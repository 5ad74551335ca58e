package controllers

import (
	"net/http"
	"rollcall/internal/models"
	"rollcall/internal/providers"
	"rollcall/internal/services"
)

type trackView struct {
	models.Track
	models.EventDetails
}

type CatalogController struct {
	logger  providers.Logger
	service services.AttendanceServiceInterface
	cache   providers.CacheProviderInterface
}

func NewCatalogController(logger providers.Logger, service services.AttendanceServiceInterface, cache providers.CacheProviderInterface) *CatalogController {
	return &CatalogController{
		logger:  logger,
		service: service,
		cache:   cache,
	}
}

func (cc *CatalogController) Tracks(w http.ResponseWriter, r *http.Request) {
	tracks := cc.service.Tracks()
	out := make([]trackView, 0, len(tracks))
	for _, t := range tracks {
		out = append(out, trackView{Track: t, EventDetails: models.EventDetailsFor(t.Name)})
	}
	writeJSON(w, http.StatusOK, out)
}

// Teams passes the backend team list through for ?track=.
func (cc *CatalogController) Teams(w http.ResponseWriter, r *http.Request) {
	track := r.URL.Query().Get("track")
	if track == "" {
		writeError(w, cc.logger, providers.TypeGet, services.ErrMissingTrack)
		return
	}
	serveFromCacheOrCompute(w, cc.cache, cc.logger, "teams:"+models.CategorySlug(track), func() (any, error) {
		return cc.service.ListTeams(r.Context(), track)
	})
}
