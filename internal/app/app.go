package app

import (
	"os"
	"time"
	_ "time/tzdata"

	EventBus "github.com/asaskevich/EventBus"
	"github.com/bwmarrin/snowflake"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/Michaelcode2/pricechecker/config"
	"github.com/Michaelcode2/pricechecker/internal/checker"
	"github.com/Michaelcode2/pricechecker/internal/events"
	"github.com/Michaelcode2/pricechecker/internal/history"
	"github.com/Michaelcode2/pricechecker/internal/lookup"
	"github.com/Michaelcode2/pricechecker/internal/settings"
	"github.com/Michaelcode2/pricechecker/internal/storage"
)

const scanNodeID int64 = 1

type Application struct {
	appConfig *config.AppConfig
	store     *storage.BoltStore
	bus       EventBus.Bus
	settings  *settings.Manager
	history   *history.Store
	client    *lookup.Client
	checker   *checker.Service
}

// Ensure Application implements all interfaces
var (
	_ ConfigProvider   = (*Application)(nil)
	_ StoreProvider    = (*Application)(nil)
	_ EventsProvider   = (*Application)(nil)
	_ SettingsProvider = (*Application)(nil)
	_ HistoryProvider  = (*Application)(nil)
	_ CheckerProvider  = (*Application)(nil)
	_ AppContext       = (*Application)(nil)
)

func NewApplication(appConfig *config.AppConfig) *Application {
	return &Application{appConfig: appConfig}
}

func (a *Application) Config() *config.AppConfig {
	return a.appConfig
}

func (a *Application) Store() storage.KV {
	return a.store
}

func (a *Application) Bus() EventBus.Bus {
	return a.bus
}

func (a *Application) Settings() *settings.Manager {
	return a.settings
}

func (a *Application) History() *history.Store {
	return a.history
}

func (a *Application) Lookup() lookup.ProductClient {
	return a.client
}

func (a *Application) Checker() *checker.Service {
	return a.checker
}

// Init installs the global logger, opens the store and wires the scan pipeline.
func (a *Application) Init(cfg *config.AppConfig) error {
	a.appConfig = cfg
	if loc, err := time.LoadLocation(cfg.System.Location); err != nil {
		zap.S().Error("timezone config error")
	} else {
		time.Local = loc
	}

	if err := InitLogger(cfg); err != nil {
		return err
	}

	store, err := storage.Open(cfg.DBPath())
	if err != nil {
		zap.L().Error("failed to open store", zap.String("path", cfg.DBPath()), zap.Error(err))
		return err
	}
	a.store = store
	zap.S().Infof("Store opened: %s", cfg.DBPath())

	ids, err := snowflake.NewNode(scanNodeID)
	if err != nil {
		_ = store.Close()
		return err
	}

	a.bus = events.NewBus()
	a.settings = settings.NewManager(a.store, a.bus)
	a.history = history.NewStore(a.store, a.bus)
	a.client = lookup.NewClient(a.settings)
	a.checker = checker.NewService(a.settings, a.client, a.history, a.bus, ids)

	a.checkSettings()
	a.checkHistory()
	return nil
}

// InitLogger installs the global zap logger described by cfg.Logger.
// With file output enabled a rotated JSON file core is tee'd with the console core.
func InitLogger(cfg *config.AppConfig) error {
	var zapConfig zap.Config
	if cfg.Logger.Mode == "production" {
		zapConfig = zap.NewProductionConfig()
	} else {
		zapConfig = zap.NewDevelopmentConfig()
	}
	if cfg.System.Debug {
		zapConfig.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
	}

	// Interactive commands write results to stdout.
	zapConfig.OutputPaths = []string{"stderr"}

	var logger *zap.Logger
	if cfg.Logger.FileEnable {
		lumberJackLogger := &lumberjack.Logger{
			Filename:   cfg.Logger.Filename,
			MaxSize:    64,
			MaxBackups: 7,
			MaxAge:     7,
			Compress:   false,
		}

		core := zapcore.NewTee(
			zapcore.NewCore(
				zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig()),
				zapcore.AddSync(lumberJackLogger),
				zapConfig.Level,
			),
			zapcore.NewCore(
				zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig()),
				zapcore.AddSync(os.Stderr),
				zapConfig.Level,
			),
		)
		logger = zap.New(core, zap.AddCaller())
	} else {
		var err error
		logger, err = zapConfig.Build(zap.AddCaller())
		if err != nil {
			return err
		}
	}

	zap.ReplaceGlobals(logger)
	return nil
}

// Release releases application resources
func (a *Application) Release() {
	if a.store != nil {
		if err := a.store.Close(); err != nil {
			zap.L().Warn("failed to close store", zap.Error(err))
		}
		a.store = nil
	}
	_ = zap.L().Sync()
}
