package app

import (
	EventBus "github.com/asaskevich/EventBus"

	"github.com/Michaelcode2/pricechecker/config"
	"github.com/Michaelcode2/pricechecker/internal/checker"
	"github.com/Michaelcode2/pricechecker/internal/history"
	"github.com/Michaelcode2/pricechecker/internal/lookup"
	"github.com/Michaelcode2/pricechecker/internal/settings"
	"github.com/Michaelcode2/pricechecker/internal/storage"
)

// ConfigProvider provides application configuration
type ConfigProvider interface {
	Config() *config.AppConfig
}

// StoreProvider provides the key-value store
type StoreProvider interface {
	Store() storage.KV
}

// EventsProvider provides the event bus views subscribe to
type EventsProvider interface {
	Bus() EventBus.Bus
}

// SettingsProvider provides runtime settings access
type SettingsProvider interface {
	Settings() *settings.Manager
}

// HistoryProvider provides the scan history
type HistoryProvider interface {
	History() *history.Store
}

// CheckerProvider provides the scan pipeline and its lookup client
type CheckerProvider interface {
	Checker() *checker.Service
	Lookup() lookup.ProductClient
}

// AppContext combines all provider interfaces for full application context
// Commands should depend on specific providers or this combined interface
type AppContext interface {
	ConfigProvider
	StoreProvider
	EventsProvider
	SettingsProvider
	HistoryProvider
	CheckerProvider

	Release()
}
