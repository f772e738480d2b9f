package providers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dummyHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
}

func TestRouterProvider_RecordsRoutes(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/a", dummyHandler())
	rp.Post("/b", dummyHandler())
	rp.Put("/c/{_id}", dummyHandler())
	rp.Patch("/d/{id}", dummyHandler())

	routes := rp.GetRoutes()
	require.Len(t, routes, 4)
	assert.Equal(t, http.MethodPut, routes[2].Method)
	assert.Equal(t, "/c/{_id}", routes[2].Url)
	assert.Equal(t, http.MethodPatch, routes[3].Method)
}

func TestRouterProvider_HandlerServesMatchingMethod(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/test", dummyHandler())
	h := rp.Handler()

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "ok", rr.Body.String())

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/test", nil))
	assert.Equal(t, http.StatusMethodNotAllowed, rr.Code)

	rr = httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/missing", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestRouterProvider_PathParams(t *testing.T) {
	rp := NewRouterProvider()
	var got string
	rp.Get("/result/{id}", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = chi.URLParam(r, "id")
	}))

	rp.Handler().ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/result/abc123", nil))
	assert.Equal(t, "abc123", got)
}

func TestRouterProvider_AppliesMiddlewares(t *testing.T) {
	rp := NewRouterProvider()
	rp.Get("/test", dummyHandler())

	tag := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Seen", "1")
			next.ServeHTTP(w, r)
		})
	}

	rr := httptest.NewRecorder()
	rp.Handler(tag).ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/test", nil))
	assert.Equal(t, "1", rr.Header().Get("X-Seen"))
}
