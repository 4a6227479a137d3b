package domain

import "time"

// Settings is the persisted runtime configuration of the scanner client.
type Settings struct {
	ApiUrl             string  `json:"apiUrl" mapstructure:"apiUrl"`
	ApiKey             string  `json:"apiKey" mapstructure:"apiKey"`
	ScanTimeoutSeconds float64 `json:"scanTimeoutSeconds" mapstructure:"scanTimeoutSeconds"` // bounds each lookup request
	MinScanLength      int     `json:"minScanLength" mapstructure:"minScanLength"`
	MaxScanLength      int     `json:"maxScanLength" mapstructure:"maxScanLength"`
	Language           string  `json:"language" mapstructure:"language"` // BCP 47 tag
}

// ScanTimeout returns the lookup request timeout as a duration.
func (s Settings) ScanTimeout() time.Duration {
	return time.Duration(s.ScanTimeoutSeconds * float64(time.Second))
}

// SettingsProvider gives read access to the settings currently in effect.
type SettingsProvider interface {
	Current() Settings
}

// StaticSettings is a fixed SettingsProvider.
type StaticSettings Settings

func (s StaticSettings) Current() Settings { return Settings(s) }
