package lookup

import (
	"context"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/guonaihong/gout"
	jsoniter "github.com/json-iterator/go"
	"go.uber.org/zap"

	"github.com/Michaelcode2/pricechecker/internal/domain"
)

// ApiKeyHeader carries the shared secret expected by the lookup service.
const ApiKeyHeader = "x-api-key"

// Client performs product lookups against the configured service.
// Endpoint, key and timeout are read from the settings provider on every call,
// so saved settings take effect on the next lookup.
type Client struct {
	settings  domain.SettingsProvider
	transport http.RoundTripper
}

var _ ProductClient = (*Client)(nil)

// NewClient creates a lookup client. TLS certificates are always verified.
func NewClient(settings domain.SettingsProvider) *Client {
	return &Client{
		settings:  settings,
		transport: http.DefaultTransport.(*http.Transport).Clone(),
	}
}

// WithTransport replaces the HTTP transport (used in tests).
func (c *Client) WithTransport(rt http.RoundTripper) *Client {
	c.transport = rt
	return c
}

// ProductURL builds {apiUrl}/products/{code} with the code path-escaped as given.
func ProductURL(apiUrl, code string) string {
	return strings.TrimRight(apiUrl, "/") + "/products/" + url.PathEscape(code)
}

// FetchProduct issues a single GET for code. All failures are returned as *Error.
func (c *Client) FetchProduct(ctx context.Context, code string) (product domain.ProductInfo, err error) {
	defer func() {
		if r := recover(); r != nil {
			zap.L().Error("lookup panic", zap.String("namespace", "lookup"), zap.Any("panic", r))
			product, err = domain.ProductInfo{}, decodeError("unexpected failure: %v", r)
		}
	}()

	cfg := c.settings.Current()
	target := ProductURL(cfg.ApiUrl, code)

	hc := &http.Client{Transport: c.transport}
	if timeout := cfg.ScanTimeout(); timeout > 0 {
		hc.Timeout = timeout
	}

	var (
		body   []byte
		status int
	)
	df := gout.New(hc).GET(target).WithContext(ctx)
	if cfg.ApiKey != "" {
		df = df.SetHeader(gout.H{ApiKeyHeader: cfg.ApiKey})
	}

	start := time.Now()
	if err := df.Code(&status).BindBody(&body).Do(); err != nil {
		lerr := classifyTransport(err)
		zap.L().Warn("product lookup failed",
			zap.String("namespace", "lookup"),
			zap.String("url", target),
			zap.String("kind", lerr.Kind.String()),
			zap.Error(err),
		)
		return domain.ProductInfo{}, lerr
	}

	zap.L().Debug("product lookup response",
		zap.String("namespace", "lookup"),
		zap.String("url", target),
		zap.Int("status", status),
		zap.Duration("elapsed", time.Since(start)),
	)

	if status < 200 || status >= 300 {
		return domain.ProductInfo{}, &Error{
			Kind:       HttpError,
			StatusCode: status,
			Message:    errorDetail(status, body),
		}
	}

	product, err = DecodeProduct(body)
	if err != nil {
		zap.L().Warn("product lookup returned malformed data",
			zap.String("namespace", "lookup"),
			zap.String("code", code),
			zap.Error(err),
		)
		return domain.ProductInfo{}, err
	}
	return product, nil
}

// errorDetail extracts the service's {"detail": ...} message, falling back to the status text.
func errorDetail(status int, body []byte) string {
	if len(body) > 0 {
		if detail := jsoniter.Get(body, "detail").ToString(); detail != "" {
			return detail
		}
	}
	if text := http.StatusText(status); text != "" {
		return text
	}
	return "unexpected status"
}
