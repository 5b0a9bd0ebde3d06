package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make network requests.
type HTTPConfig struct {
	// Timeout is the HTTP request timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "nih-reporter/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent"`
}

// ReporterConfig holds settings for the RePORTER API client.
type ReporterConfig struct {
	HTTPConfig `yaml:",inline"`

	// BaseURL is the API root (default https://api.reporter.nih.gov/v2).
	BaseURL string `json:"base_url" yaml:"base_url"`

	// MaxRetries is the number of HTTP 429 retries before giving up (default 5).
	MaxRetries int `json:"max_retries" yaml:"max_retries"`
}

// TrendsConfig holds settings for the trend-aggregation engine.
type TrendsConfig struct {
	// MaxProjects is the default number of projects analyzed when the
	// caller does not ask for a specific maximum (default 500).
	MaxProjects int `json:"max_projects" yaml:"max_projects"`
}

// ArchiveConfig holds settings for the SQLite project archive.
type ArchiveConfig struct {
	// DBPath is the SQLite database file (default archive/reporter.db).
	DBPath string `json:"db_path" yaml:"db_path"`
}

// ServerInfo describes the MCP server in the initialize handshake.
type ServerInfo struct {
	Name    string `json:"name" yaml:"name"`
	Version string `json:"version" yaml:"version"`
}

// Config groups all component configurations.
type Config struct {
	Reporter ReporterConfig `json:"reporter" yaml:"reporter"`
	Trends   TrendsConfig   `json:"trends" yaml:"trends"`
	Archive  ArchiveConfig  `json:"archive" yaml:"archive"`
	Server   ServerInfo     `json:"server" yaml:"server"`
}
