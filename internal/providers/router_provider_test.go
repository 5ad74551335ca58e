package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func textHandler(body string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(body))
	})
}

func TestRouterProvider_GetAddsRoute(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/tracks", textHandler("ok"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)
	assert.Equal(t, "/tracks", routes[0].Url)
}

func TestRouterProvider_KeepsRegistrationOrder(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/a", textHandler("a"))
	rp.Post("/b", textHandler("b"))
	rp.Get("/c", textHandler("c"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 3)
	assert.Equal(t, []string{"/a", "/b", "/c"}, []string{routes[0].Url, routes[1].Url, routes[2].Url})
}

func TestRouterProvider_SharedPatternMergesMethods(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/roster/{id}", textHandler("get"))
	rp.Post("/roster/{id}", textHandler("post"))

	routes := rp.GetRoutes()
	require.Len(t, routes, 1)

	for method, body := range map[string]string{http.MethodGet: "get", http.MethodPost: "post"} {
		rr := httptest.NewRecorder()
		routes[0].Handler.ServeHTTP(rr, httptest.NewRequest(method, "/roster/x", nil))
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, body, rr.Body.String())
	}
}

func TestRouterProvider_WrongMethod(t *testing.T) {
	rp := NewRouterProvider()
	rp.Post("/scan", textHandler("ok"))

	rr := httptest.NewRecorder()
	rp.GetRoutes()[0].Handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/scan", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)
	assert.Equal(t, "POST", rr.Header().Get("Allow"))
}
