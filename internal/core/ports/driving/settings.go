package driving

import "github.com/custodia-labs/askdocs/internal/core/domain"

// SettingsService manages application settings.
type SettingsService interface {
	// Get retrieves current application settings, with defaults for unset keys.
	Get() (*domain.AppSettings, error)

	// Save persists application settings.
	Save(settings *domain.AppSettings) error

	// Set updates a single setting by config key ("server.port").
	// Returns domain.ErrInvalidInput for unknown keys or malformed values.
	Set(key, value string) error
}
