// Package settings loads, validates and persists the scanner's runtime settings.
package settings

import (
	"errors"
	"fmt"
	"math"
	"net/url"
	"os"
	"strings"
	"sync"

	"github.com/mitchellh/mapstructure"
	"go.uber.org/zap"
	"golang.org/x/text/language"

	"github.com/Michaelcode2/pricechecker/internal/domain"
	"github.com/Michaelcode2/pricechecker/internal/events"
	"github.com/Michaelcode2/pricechecker/internal/storage"
)

const (
	DefaultApiUrl             = "http://127.0.0.1:8000"
	DefaultScanTimeoutSeconds = 1.0
	DefaultMinScanLength      = 6
	DefaultMaxScanLength      = 14
)

// ErrInvalidSettings is wrapped by every validation failure returned from Normalize and Save.
var ErrInvalidSettings = errors.New("invalid settings")

// Defaults returns the settings used when nothing has been saved yet.
func Defaults() domain.Settings {
	return domain.Settings{
		ApiUrl:             DefaultApiUrl,
		ScanTimeoutSeconds: DefaultScanTimeoutSeconds,
		MinScanLength:      DefaultMinScanLength,
		MaxScanLength:      DefaultMaxScanLength,
		Language:           DefaultLanguage(),
	}
}

// DefaultLanguage derives a BCP 47 tag from the process locale (LC_ALL, LANG), falling back to "en".
func DefaultLanguage() string {
	for _, key := range []string{"LC_ALL", "LANG"} {
		v := os.Getenv(key)
		if i := strings.IndexAny(v, ".@"); i >= 0 {
			v = v[:i]
		}
		v = strings.ReplaceAll(v, "_", "-")
		if v == "" || v == "C" || v == "POSIX" {
			continue
		}
		if tag, err := language.Parse(v); err == nil {
			return tag.String()
		}
	}
	return language.English.String()
}

// Normalize validates s as a whole and returns it in canonical form.
func Normalize(s domain.Settings) (domain.Settings, error) {
	s.ApiUrl = strings.TrimSpace(s.ApiUrl)
	u, err := url.Parse(s.ApiUrl)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return s, fmt.Errorf("%w: apiUrl %q must be an absolute http or https URL", ErrInvalidSettings, s.ApiUrl)
	}
	if math.IsNaN(s.ScanTimeoutSeconds) || math.IsInf(s.ScanTimeoutSeconds, 0) || s.ScanTimeoutSeconds <= 0 {
		return s, fmt.Errorf("%w: scanTimeoutSeconds must be positive", ErrInvalidSettings)
	}
	if s.MinScanLength < 1 {
		return s, fmt.Errorf("%w: minScanLength must be at least 1", ErrInvalidSettings)
	}
	if s.MaxScanLength < s.MinScanLength {
		return s, fmt.Errorf("%w: maxScanLength %d is below minScanLength %d", ErrInvalidSettings, s.MaxScanLength, s.MinScanLength)
	}
	tag, err := language.Parse(strings.TrimSpace(s.Language))
	if err != nil {
		return s, fmt.Errorf("%w: language %q: %v", ErrInvalidSettings, s.Language, err)
	}
	s.Language = tag.String()
	return s, nil
}

// Manager owns the settings in effect. It implements domain.SettingsProvider.
type Manager struct {
	kv     storage.KV
	events events.Publisher

	mu      sync.RWMutex
	current domain.Settings
}

var _ domain.SettingsProvider = (*Manager)(nil)

// NewManager returns a manager holding Defaults until Load is called.
func NewManager(kv storage.KV, pub events.Publisher) *Manager {
	return &Manager{kv: kv, events: events.OrNop(pub), current: Defaults()}
}

// Current returns the settings in effect.
func (m *Manager) Current() domain.Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.current
}

// Load reads app_settings, falling back to defaults for anything missing or invalid,
// and folds the legacy top-level language key into it.
func (m *Manager) Load() domain.Settings {
	defaults := Defaults()
	loaded := defaults

	var raw map[string]interface{}
	err := storage.GetJSON(m.kv, storage.KeyAppSettings, &raw)
	switch {
	case errors.Is(err, storage.ErrNotFound):
	case err != nil:
		zap.L().Warn("app settings unreadable, using defaults", zap.String("namespace", "settings"), zap.Error(err))
	default:
		if err := decode(raw, &loaded); err != nil {
			zap.L().Warn("app settings partially invalid", zap.String("namespace", "settings"), zap.Error(err))
		}
	}

	_, hasLanguage := raw["language"]
	migrated := m.migrateLegacyLanguage(&loaded, hasLanguage)

	loaded = sanitize(loaded, defaults)
	m.mu.Lock()
	m.current = loaded
	m.mu.Unlock()

	if migrated {
		if err := storage.PutJSON(m.kv, storage.KeyAppSettings, loaded); err != nil {
			zap.L().Warn("failed to persist migrated language", zap.String("namespace", "settings"), zap.Error(err))
		} else if err := m.kv.Delete(storage.KeyLanguage); err != nil {
			zap.L().Warn("failed to remove legacy language key", zap.String("namespace", "settings"), zap.Error(err))
		}
	}
	return loaded
}

// Save validates s as a whole, persists it and makes it current.
// Nothing changes when validation or the write fails.
func (m *Manager) Save(s domain.Settings) error {
	normalized, err := Normalize(s)
	if err != nil {
		return err
	}
	if err := storage.PutJSON(m.kv, storage.KeyAppSettings, normalized); err != nil {
		return &storage.Error{Op: "write", Key: storage.KeyAppSettings, Err: err}
	}
	m.mu.Lock()
	m.current = normalized
	m.mu.Unlock()

	zap.L().Info("settings saved",
		zap.String("namespace", "settings"),
		zap.String("api_url", normalized.ApiUrl),
		zap.Bool("api_key_set", normalized.ApiKey != ""),
		zap.Int("min_scan_length", normalized.MinScanLength),
		zap.Int("max_scan_length", normalized.MaxScanLength),
		zap.String("language", normalized.Language),
	)
	m.events.Publish(events.TopicSettingsChanged, normalized)
	return nil
}

// Update applies fn to a copy of the current settings and saves the result.
func (m *Manager) Update(fn func(*domain.Settings)) error {
	next := m.Current()
	fn(&next)
	return m.Save(next)
}

// migrateLegacyLanguage copies the old top-level language value into s when
// app_settings has none. It reports whether a legacy key was found.
func (m *Manager) migrateLegacyLanguage(s *domain.Settings, hasLanguage bool) bool {
	data, err := m.kv.Get(storage.KeyLanguage)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			zap.L().Warn("legacy language key unreadable", zap.String("namespace", "settings"), zap.Error(err))
		}
		return false
	}
	if hasLanguage {
		return true
	}
	var lang string
	if err := storage.GetJSON(m.kv, storage.KeyLanguage, &lang); err != nil {
		lang = strings.Trim(strings.TrimSpace(string(data)), `"`)
	}
	if lang != "" {
		s.Language = lang
	}
	return true
}

func decode(raw map[string]interface{}, out *domain.Settings) error {
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		Result:           out,
	})
	if err != nil {
		return err
	}
	return dec.Decode(raw)
}

// sanitize replaces every invalid field of s with its default.
func sanitize(s, defaults domain.Settings) domain.Settings {
	if u, err := url.Parse(strings.TrimSpace(s.ApiUrl)); err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		s.ApiUrl = defaults.ApiUrl
	}
	if math.IsNaN(s.ScanTimeoutSeconds) || math.IsInf(s.ScanTimeoutSeconds, 0) || s.ScanTimeoutSeconds <= 0 {
		s.ScanTimeoutSeconds = defaults.ScanTimeoutSeconds
	}
	if s.MinScanLength < 1 || s.MaxScanLength < s.MinScanLength {
		s.MinScanLength, s.MaxScanLength = defaults.MinScanLength, defaults.MaxScanLength
	}
	if tag, err := language.Parse(strings.TrimSpace(s.Language)); err != nil {
		s.Language = defaults.Language
	} else {
		s.Language = tag.String()
	}
	normalized, err := Normalize(s)
	if err != nil {
		return defaults
	}
	return normalized
}
