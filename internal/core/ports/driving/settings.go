package driving

import "github.com/custodia-labs/docqa/internal/core/domain"

// SettingsService resolves and persists application settings.
type SettingsService interface {
	// Get returns the effective settings: defaults overlaid with the config
	// file and then the environment.
	Get() (domain.Settings, error)

	// Set validates and persists a single setting by its config key.
	Set(key, value string) error

	// Keys returns the config keys that Set accepts.
	Keys() []string
}
