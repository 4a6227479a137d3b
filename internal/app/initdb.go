package app

import (
	"errors"

	"go.uber.org/zap"

	"github.com/Michaelcode2/pricechecker/internal/storage"
)

// checkSettings loads app_settings and writes the defaults on first start.
func (a *Application) checkSettings() {
	s := a.settings.Load()

	_, err := a.store.Get(storage.KeyAppSettings)
	switch {
	case errors.Is(err, storage.ErrNotFound):
		if err := a.settings.Save(s); err != nil {
			zap.L().Error("failed to initialize default settings", zap.Error(err))
			return
		}
		zap.L().Info("initialized default settings",
			zap.String("api_url", s.ApiUrl),
			zap.String("language", s.Language))
	case err != nil:
		zap.L().Error("failed to query settings", zap.Error(err))
	}
}

// checkHistory loads the persisted scan history into memory.
func (a *Application) checkHistory() {
	entries := a.history.Load()
	zap.L().Debug("scan history loaded", zap.Int("entries", len(entries)))
}
