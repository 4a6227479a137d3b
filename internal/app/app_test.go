package app

import (
	"context"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Michaelcode2/pricechecker/config"
	"github.com/Michaelcode2/pricechecker/internal/checker"
	"github.com/Michaelcode2/pricechecker/internal/domain"
	"github.com/Michaelcode2/pricechecker/internal/events"
	"github.com/Michaelcode2/pricechecker/internal/mockapi"
	"github.com/Michaelcode2/pricechecker/internal/settings"
	"github.com/Michaelcode2/pricechecker/internal/storage"
)

func testConfig(t *testing.T, workdir string) *config.AppConfig {
	t.Helper()
	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = workdir
	cfg.System.Location = "UTC"
	return &cfg
}

func newApp(t *testing.T, workdir string) *Application {
	t.Helper()
	a := NewApplication(nil)
	require.NoError(t, a.Init(testConfig(t, workdir)))
	return a
}

func TestInit_SeedsDefaultSettings(t *testing.T) {
	a := newApp(t, t.TempDir())
	defer a.Release()

	var stored domain.Settings
	require.NoError(t, storage.GetJSON(a.Store(), storage.KeyAppSettings, &stored))
	assert.Equal(t, settings.DefaultApiUrl, stored.ApiUrl)
	assert.Equal(t, a.Settings().Current(), stored)
	assert.Empty(t, a.History().Snapshot())
}

func TestApplication_ScanPersistsAcrossRestart(t *testing.T) {
	mock := httptest.NewServer(mockapi.New(mockapi.Config{}).Handler())
	defer mock.Close()
	workdir := t.TempDir()

	a := newApp(t, workdir)
	require.NoError(t, a.Settings().Update(func(s *domain.Settings) { s.ApiUrl = mock.URL }))

	var seen []checker.Outcome
	require.NoError(t, a.Bus().Subscribe(events.TopicScanOutcome, func(o checker.Outcome) {
		seen = append(seen, o)
	}))

	out := a.Checker().SubmitScan(context.Background(), "12345678900014\n")
	require.Equal(t, checker.Succeeded, out.Status, "%v", out.Err)
	require.Len(t, seen, 1)
	assert.Equal(t, out.ScanID, seen[0].ScanID)
	a.Release()

	b := newApp(t, workdir)
	defer b.Release()
	assert.Equal(t, mock.URL, b.Settings().Current().ApiUrl)
	hist := b.History().Snapshot()
	require.Len(t, hist, 1)
	assert.Equal(t, "Test Product 1", hist[0].Product.Name)
}

func TestInitLogger_FileOutput(t *testing.T) {
	prev := zap.L()
	defer zap.ReplaceGlobals(prev)

	cfg := testConfig(t, t.TempDir())
	cfg.Logger.Mode = "production"
	cfg.Logger.FileEnable = true
	cfg.Logger.Filename = filepath.Join(cfg.GetLogDir(), "pricechecker.log")
	require.NoError(t, InitLogger(cfg))

	zap.L().Info("logger file check", zap.String("namespace", "app"))
	_ = zap.L().Sync()

	data, err := os.ReadFile(cfg.Logger.Filename)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"logger file check"`)
	assert.Contains(t, string(data), `"namespace":"app"`)
}

func TestRelease_Idempotent(t *testing.T) {
	a := newApp(t, t.TempDir())
	a.Release()
	a.Release()
}
