package models

// AppConfig is what mobile clients read to decide whether they must update.
type AppConfig struct {
	MinimumRequiredVersion string `json:"minimumRequiredVersion"`
	LatestVersion          string `json:"latestVersion"`
	ForceUpdate            bool   `json:"forceUpdate"`
	ApkURL                 string `json:"apkUrl"`
}
