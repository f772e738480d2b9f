package providers

import (
	"net/http"
	"net/http/httptest"
	"resultsd/internal/models"
	"testing"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubPolicy struct{ allowed map[string]bool }

func (p stubPolicy) IsVersionAllowed(v string) bool { return p.allowed[v] }
func (p stubPolicy) GetAppConfig() models.AppConfig {
	return models.AppConfig{MinimumRequiredVersion: "2.0.0", LatestVersion: "2.1.0", ForceUpdate: true}
}

func versionProbe(path, version string) *httptest.ResponseRecorder {
	policy := stubPolicy{allowed: map[string]bool{"2.0.0": true}}
	h := VersionGateMiddleware(policy, "/api/app-config")(dummyHandler())

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if version != "" {
		req.Header.Set(AppVersionHeader, version)
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func TestVersionGate(t *testing.T) {
	assert.Equal(t, http.StatusOK, versionProbe("/api/fetch-result", "").Code)
	assert.Equal(t, http.StatusOK, versionProbe("/api/fetch-result", "2.0.0").Code)
	assert.Equal(t, http.StatusOK, versionProbe("/api/app-config", "1.0.0").Code)

	rr := versionProbe("/api/fetch-result", "1.9.9")
	require.Equal(t, http.StatusUpgradeRequired, rr.Code)

	var body updateRequiredResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.True(t, body.UpdateRequired)
	assert.Equal(t, "Please update app", body.Message)
	assert.Contains(t, body.Error, "1.9.9")
	assert.Equal(t, "2.1.0", body.Config.LatestVersion)
}
