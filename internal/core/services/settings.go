package services

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/custodia-labs/askdocs/internal/core/domain"
	"github.com/custodia-labs/askdocs/internal/core/ports/driven"
	"github.com/custodia-labs/askdocs/internal/core/ports/driving"
)

// Ensure SettingsService implements the interface.
var _ driving.SettingsService = (*SettingsService)(nil)

// Config keys for settings storage.
const (
	KeyServerHost     = "server.host"
	KeyServerPort     = "server.port"
	KeyFetchTimeout   = "fetch.timeout_seconds"
	KeyFetchRate      = "fetch.rate_per_second"
	KeyFetchBurst     = "fetch.burst"
	KeyHistoryLimit   = "history.limit"
	KeyDocumentsPaths = "documents.paths"
	KeyLogVerbose     = "log.verbose"
)

// SettingKeys returns every recognised config key.
func SettingKeys() []string {
	return []string{
		KeyServerHost, KeyServerPort,
		KeyFetchTimeout, KeyFetchRate, KeyFetchBurst,
		KeyHistoryLimit, KeyDocumentsPaths, KeyLogVerbose,
	}
}

// SettingsService manages application settings.
type SettingsService struct {
	configStore driven.ConfigStore
}

// NewSettingsService creates a new settings service.
func NewSettingsService(configStore driven.ConfigStore) *SettingsService {
	return &SettingsService{configStore: configStore}
}

// Get retrieves current application settings.
// Unset or non-positive values fall back to the defaults.
func (s *SettingsService) Get() (*domain.AppSettings, error) {
	if s.configStore == nil {
		return nil, domain.ErrNotImplemented
	}
	defaults := domain.DefaultAppSettings()

	settings := &domain.AppSettings{
		Server: domain.ServerSettings{
			Host: s.getString(KeyServerHost, defaults.Server.Host),
			Port: s.getInt(KeyServerPort, defaults.Server.Port),
		},
		Fetch: domain.FetchSettings{
			Timeout:       s.getSeconds(KeyFetchTimeout, defaults.Fetch.Timeout),
			RatePerSecond: s.getFloat(KeyFetchRate, defaults.Fetch.RatePerSecond),
			Burst:         s.getInt(KeyFetchBurst, defaults.Fetch.Burst),
		},
		History: domain.HistorySettings{
			Limit: s.getInt(KeyHistoryLimit, defaults.History.Limit),
		},
		Documents: domain.DocumentSettings{
			Paths: s.configStore.GetStringSlice(KeyDocumentsPaths),
		},
		Verbose: s.configStore.GetBool(KeyLogVerbose),
	}

	return settings, nil
}

// Save persists application settings.
func (s *SettingsService) Save(settings *domain.AppSettings) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	values := []struct {
		key   string
		value any
	}{
		{KeyServerHost, settings.Server.Host},
		{KeyServerPort, settings.Server.Port},
		{KeyFetchTimeout, int(settings.Fetch.Timeout / time.Second)},
		{KeyFetchRate, settings.Fetch.RatePerSecond},
		{KeyFetchBurst, settings.Fetch.Burst},
		{KeyHistoryLimit, settings.History.Limit},
		{KeyDocumentsPaths, settings.Documents.Paths},
		{KeyLogVerbose, settings.Verbose},
	}
	for _, v := range values {
		if err := s.configStore.Set(v.key, v.value); err != nil {
			return fmt.Errorf("save %s: %w", v.key, err)
		}
	}
	return s.configStore.Save()
}

// Set parses and stores a single setting, then saves the configuration.
func (s *SettingsService) Set(key, value string) error {
	if s.configStore == nil {
		return domain.ErrNotImplemented
	}
	parsed, err := parseSetting(key, value)
	if err != nil {
		return err
	}
	if err := s.configStore.Set(key, parsed); err != nil {
		return fmt.Errorf("set %s: %w", key, err)
	}
	return s.configStore.Save()
}

func parseSetting(key, value string) (any, error) {
	value = strings.TrimSpace(value)
	switch key {
	case KeyServerHost:
		return value, nil
	case KeyServerPort, KeyFetchTimeout, KeyFetchBurst, KeyHistoryLimit:
		n, err := strconv.Atoi(value)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%s must be a positive integer: %w", key, domain.ErrInvalidInput)
		}
		return n, nil
	case KeyFetchRate:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil || f <= 0 {
			return nil, fmt.Errorf("%s must be a positive number: %w", key, domain.ErrInvalidInput)
		}
		return f, nil
	case KeyLogVerbose:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return nil, fmt.Errorf("%s must be true or false: %w", key, domain.ErrInvalidInput)
		}
		return b, nil
	case KeyDocumentsPaths:
		var paths []string
		for _, p := range strings.Split(value, ",") {
			if p = strings.TrimSpace(p); p != "" {
				paths = append(paths, p)
			}
		}
		return paths, nil
	}
	return nil, fmt.Errorf("unknown setting %q: %w", key, domain.ErrInvalidInput)
}

func (s *SettingsService) getString(key, def string) string {
	if v := s.configStore.GetString(key); v != "" {
		return v
	}
	return def
}

func (s *SettingsService) getInt(key string, def int) int {
	if v := s.configStore.GetInt(key); v > 0 {
		return v
	}
	return def
}

func (s *SettingsService) getFloat(key string, def float64) float64 {
	if v := s.configStore.GetFloat(key); v > 0 {
		return v
	}
	return def
}

func (s *SettingsService) getSeconds(key string, def time.Duration) time.Duration {
	if v := s.configStore.GetInt(key); v > 0 {
		return time.Duration(v) * time.Second
	}
	return def
}
