package model

// AppConfig holds application-wide preferences and default placement
// settings.
type AppConfig struct {
	// Defaults applied when a placement request leaves them unset
	DefaultKeepAspect         bool   `json:"default_keep_aspect"`
	DefaultDeletePlaceholders bool   `json:"default_delete_placeholders"`
	DefaultBox                string `json:"default_box"` // preset name, empty = auto

	// Application preferences
	RecentManifests []string `json:"recent_manifests"`
}

// DefaultAppConfig returns an AppConfig with the stock defaults:
// preserve the figure's aspect ratio and clear empty placeholders.
func DefaultAppConfig() AppConfig {
	return AppConfig{
		DefaultKeepAspect:         true,
		DefaultDeletePlaceholders: true,
		DefaultBox:                "",
		RecentManifests:           []string{},
	}
}
