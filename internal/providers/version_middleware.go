package providers

import (
	"fmt"
	"net/http"
	"resultsd/internal/models"
	"slices"
)

const AppVersionHeader = "x-app-version"

type VersionPolicy interface {
	IsVersionAllowed(version string) bool
	GetAppConfig() models.AppConfig
}

type updateRequiredResponse struct {
	Message        string           `json:"message"`
	Error          string           `json:"error"`
	UpdateRequired bool             `json:"updateRequired"`
	Config         models.AppConfig `json:"config"`
}

// VersionGateMiddleware rejects mobile clients below the minimum version
// with 426. Requests without the version header are not from the mobile
// app and pass through unchecked, as do the exempt paths.
func VersionGateMiddleware(policy VersionPolicy, exempt ...string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			version := r.Header.Get(AppVersionHeader)
			if version == "" || slices.Contains(exempt, r.URL.Path) {
				next.ServeHTTP(w, r)
				return
			}

			if !policy.IsVersionAllowed(version) {
				conf := policy.GetAppConfig()
				WriteJSON(w, http.StatusUpgradeRequired, updateRequiredResponse{
					Message:        "Please update app",
					Error:          fmt.Sprintf("App version %s is not supported. Minimum required: %s", version, conf.MinimumRequiredVersion),
					UpdateRequired: true,
					Config:         conf,
				})
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
