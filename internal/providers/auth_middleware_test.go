package providers

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

type stubValidator struct{}

func (stubValidator) ValidateToken(token string) (string, error) {
	if token == "good" {
		return "user-1", nil
	}
	return "", errors.New("token is expired")
}

func authProbe(t *testing.T, header string) (*httptest.ResponseRecorder, string) {
	t.Helper()
	var seen string
	h := AuthMiddleware(stubValidator{}, &cacheTestLogger{})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		seen, _ = UserIDFromContext(r.Context())
	}))

	req := httptest.NewRequest(http.MethodGet, "/fetch-result", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr, seen
}

func TestAuthMiddleware(t *testing.T) {
	rr, user := authProbe(t, "Bearer good")
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, "user-1", user)

	rr, _ = authProbe(t, "")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr, _ = authProbe(t, "Bearer ")
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr, user = authProbe(t, "Bearer stale")
	assert.Equal(t, http.StatusForbidden, rr.Code)
	assert.Empty(t, user)
}
