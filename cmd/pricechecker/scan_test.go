package main

import (
	"bytes"
	"context"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Michaelcode2/pricechecker/config"
	"github.com/Michaelcode2/pricechecker/internal/app"
	"github.com/Michaelcode2/pricechecker/internal/domain"
	"github.com/Michaelcode2/pricechecker/internal/mockapi"
)

func TestScanLoop(t *testing.T) {
	mock := httptest.NewServer(mockapi.New(mockapi.Config{}).Handler())
	defer mock.Close()

	cfg := *config.DefaultAppConfig
	cfg.System.Workdir = t.TempDir()
	a := app.NewApplication(&cfg)
	require.NoError(t, a.Init(&cfg))
	defer a.Release()
	require.NoError(t, a.Settings().Update(func(s *domain.Settings) { s.ApiUrl = mock.URL }))

	in := strings.NewReader("12345678900014\r\n\n123\n")
	var out bytes.Buffer
	require.NoError(t, scanLoop(context.Background(), a, in, &out))

	text := out.String()
	assert.Contains(t, text, "Ready to scan")
	assert.Contains(t, text, "Test Product 1")
	assert.Contains(t, text, "9.99 / pcs")
	assert.Contains(t, text, "discount: 7.99")
	assert.Contains(t, text, "Scan successful")
	assert.Contains(t, text, "Error: Scan too short (minimum 6 characters)")
	assert.Len(t, a.History().Snapshot(), 1)
}

func TestApplySetting(t *testing.T) {
	var s domain.Settings
	require.NoError(t, applySetting(&s, "apiUrl=http://host:9000"))
	require.NoError(t, applySetting(&s, "scanTimeoutSeconds=2.5"))
	require.NoError(t, applySetting(&s, "minScanLength=8"))
	require.NoError(t, applySetting(&s, "language=uk"))
	assert.Equal(t, "http://host:9000", s.ApiUrl)
	assert.Equal(t, 2.5, s.ScanTimeoutSeconds)
	assert.Equal(t, 8, s.MinScanLength)
	assert.Equal(t, "uk", s.Language)

	require.NoError(t, applySetting(&s, "minScanLength=010"))
	assert.Equal(t, 10, s.MinScanLength)
	require.NoError(t, applySetting(&s, "maxScanLength=08"))
	assert.Equal(t, 8, s.MaxScanLength)
	require.NoError(t, applySetting(&s, "minScanLength=0"))
	assert.Equal(t, 0, s.MinScanLength)

	assert.Error(t, applySetting(&s, "maxScanLength=lots"))
	assert.Error(t, applySetting(&s, "maxScanLength="))
	assert.Error(t, applySetting(&s, "colour=red"))
	assert.Error(t, applySetting(&s, "apiUrl"))
}
