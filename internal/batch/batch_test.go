package batch

import (
	"context"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Michaelcode2/pricechecker/internal/domain"
	"github.com/Michaelcode2/pricechecker/internal/lookup"
	"github.com/Michaelcode2/pricechecker/internal/mockapi"
	"github.com/Michaelcode2/pricechecker/internal/scan"
)

func TestRun_AgainstMock(t *testing.T) {
	srv := httptest.NewServer(mockapi.New(mockapi.Config{Seed: 7}).Handler())
	defer srv.Close()

	settings := domain.Settings{ApiUrl: srv.URL, ScanTimeoutSeconds: 2, MinScanLength: 6, MaxScanLength: 14}
	client := lookup.NewClient(domain.StaticSettings(settings))

	codes := []string{"12345678900014", "123", " 98765432145555\n", "00000000000042"}
	results, err := Run(context.Background(), client, settings, codes, 2)
	require.NoError(t, err)
	require.Len(t, results, 4)

	assert.Equal(t, "Test Product 1", results[0].Product.Name)

	var verr *scan.ValidationError
	require.ErrorAs(t, results[1].Err, &verr)
	assert.Equal(t, scan.TooShort, verr.Kind)
	assert.Empty(t, results[1].Code)

	assert.Equal(t, " 98765432145555\n", results[2].Input)
	assert.Equal(t, "98765432145555", results[2].Code)
	assert.Equal(t, "Test Product 2", results[2].Product.Name)

	assert.True(t, results[3].OK())
	assert.Equal(t, "Random Product 0042", results[3].Product.Name)
}

type countingClient struct {
	inflight, peak atomic.Int32
}

func (c *countingClient) FetchProduct(ctx context.Context, code string) (domain.ProductInfo, error) {
	n := c.inflight.Add(1)
	defer c.inflight.Add(-1)
	for {
		p := c.peak.Load()
		if n <= p || c.peak.CompareAndSwap(p, n) {
			break
		}
	}
	time.Sleep(10 * time.Millisecond)
	return domain.NewProductInfo(code, "pcs", 1, nil), nil
}

func TestRun_BoundsConcurrency(t *testing.T) {
	client := &countingClient{}
	settings := domain.Settings{MinScanLength: 1, MaxScanLength: 20}
	codes := []string{"a1", "b2", "c3", "d4", "e5", "f6", "g7", "h8"}

	results, err := Run(context.Background(), client, settings, codes, 3)
	require.NoError(t, err)
	for i, r := range results {
		require.NoError(t, r.Err)
		assert.Equal(t, codes[i], r.Product.Name)
	}
	assert.LessOrEqual(t, client.peak.Load(), int32(3))
}

func TestRun_CancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := Run(ctx, &countingClient{}, domain.Settings{MinScanLength: 1, MaxScanLength: 20}, []string{"abc"}, 1)
	require.NoError(t, err)
	assert.ErrorIs(t, results[0].Err, context.Canceled)
}

func TestRun_Empty(t *testing.T) {
	results, err := Run(context.Background(), &countingClient{}, domain.Settings{}, nil, 0)
	require.NoError(t, err)
	assert.Empty(t, results)
}
