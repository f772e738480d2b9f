package services

import (
	"resultsd/internal/models"
	"resultsd/internal/structures"
	"strconv"
	"strings"
)

type AppConfigServiceInterface interface {
	GetAppConfig() models.AppConfig
	// IsVersionAllowed reports whether a client version meets the minimum.
	// Malformed versions are never allowed.
	IsVersionAllowed(version string) bool
}

type AppConfigService struct {
	config models.AppConfig
}

func NewAppConfigService(conf *structures.Config) AppConfigServiceInterface {
	return &AppConfigService{
		config: models.AppConfig{
			MinimumRequiredVersion: conf.AppVersion.MinimumRequiredVersion,
			LatestVersion:          conf.AppVersion.LatestVersion,
			ForceUpdate:            conf.AppVersion.ForceUpdate,
			ApkURL:                 conf.AppVersion.ApkURL,
		},
	}
}

func (s *AppConfigService) GetAppConfig() models.AppConfig {
	return s.config
}

func (s *AppConfigService) IsVersionAllowed(version string) bool {
	provided, ok := parseVersion(version)
	if !ok {
		return false
	}
	required, _ := parseVersion(s.config.MinimumRequiredVersion)
	return CompareVersions(provided, required) >= 0
}

// parseVersion splits a dotted version into numeric components. An empty
// component counts as 0; anything non-numeric makes the version malformed.
func parseVersion(v string) ([]int, bool) {
	v = strings.TrimPrefix(strings.TrimSpace(v), "v")
	if v == "" {
		return nil, false
	}
	parts := strings.Split(v, ".")
	out := make([]int, len(parts))
	for i, p := range parts {
		if p == "" {
			continue
		}
		n, err := strconv.Atoi(p)
		if err != nil || n < 0 {
			return nil, false
		}
		out[i] = n
	}
	return out, true
}

// CompareVersions compares component-wise, treating missing components as 0.
func CompareVersions(a, b []int) int {
	for i := 0; i < max(len(a), len(b)); i++ {
		var x, y int
		if i < len(a) {
			x = a[i]
		}
		if i < len(b) {
			y = b[i]
		}
		switch {
		case x < y:
			return -1
		case x > y:
			return 1
		}
	}
	return 0
}
