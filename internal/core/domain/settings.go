package domain

import "time"

// ServerSettings configures the HTTP API.
type ServerSettings struct {
	// Host is the listen address.
	Host string

	// Port is the listen port.
	Port int
}

// FetchSettings configures URL ingestion.
type FetchSettings struct {
	// Timeout bounds a single page fetch.
	Timeout time.Duration

	// RatePerSecond is the sustained fetch rate.
	RatePerSecond float64

	// Burst is how many fetches may start back to back.
	Burst int
}

// HistorySettings configures the answer history.
type HistorySettings struct {
	// Limit is how many answers are kept. Older answers are dropped first.
	Limit int
}

// DocumentSettings configures documents loaded at startup.
type DocumentSettings struct {
	// Paths are files or directories ingested when the process starts.
	Paths []string
}

// AppSettings holds all application settings.
type AppSettings struct {
	Server    ServerSettings
	Fetch     FetchSettings
	History   HistorySettings
	Documents DocumentSettings

	// Verbose enables debug logging.
	Verbose bool
}

// DefaultAppSettings returns settings with sensible defaults.
func DefaultAppSettings() AppSettings {
	return AppSettings{
		Server: ServerSettings{
			Host: "localhost",
			Port: 8080,
		},
		Fetch: FetchSettings{
			Timeout:       30 * time.Second,
			RatePerSecond: 2,
			Burst:         4,
		},
		History: HistorySettings{
			Limit: 100,
		},
	}
}
