package mockapi

import (
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func get(t *testing.T, h http.Handler, path, key string) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if key != "" {
		req.Header.Set(apiKeyHeader, key)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), rec.Body.String())
	return rec, body
}

func TestGetProduct_Fixed(t *testing.T) {
	h := New(Config{Seed: 1}).Handler()

	rec, body := get(t, h, "/products/12345678900014", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Test Product 1", body["name"])
	assert.Equal(t, "pcs", body["measurement"])
	assert.Equal(t, 9.99, body["price"])
	assert.Equal(t, 7.99, body["discountPrice"])

	rec, body = get(t, h, "/products/98765432145555", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Test Product 2", body["name"])
	assert.Equal(t, "kg", body["measurement"])
	assert.Equal(t, 15.5, body["price"])
	v, present := body["discountPrice"]
	assert.True(t, present)
	assert.Nil(t, v)
}

func TestGetProduct_Random(t *testing.T) {
	h := New(Config{Seed: 42}).Handler()

	for i := 0; i < 50; i++ {
		rec, body := get(t, h, "/products/00000000000099", "")
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Random Product 0099", body["name"])
		assert.Contains(t, measurements, body["measurement"])

		p, ok := body["price"].(float64)
		require.True(t, ok)
		assert.GreaterOrEqual(t, p, 1.0)
		assert.LessOrEqual(t, p, 100.0)

		if d, ok := body["discountPrice"].(float64); ok {
			assert.GreaterOrEqual(t, d, 1.0)
			assert.LessOrEqual(t, d, 100.0)
		} else {
			assert.Nil(t, body["discountPrice"])
		}
	}

	_, body := get(t, h, "/products/ab", "")
	assert.Equal(t, "Random Product ab", body["name"])
}

func TestGetProduct_EscapedBarcode(t *testing.T) {
	h := New(Config{}).Handler()

	_, body := get(t, h, "/products/ABCD%2541", "")
	assert.Equal(t, "Random Product D%41", body["name"])

	_, body = get(t, h, "/products/12%2F34%2F5678", "")
	assert.Equal(t, "Random Product 5678", body["name"])

	_, body = get(t, h, "/products/ab%2Fcd", "")
	assert.Equal(t, "Random Product b/cd", body["name"])

	_, body = get(t, h, "/products/abc%20def", "")
	assert.Equal(t, "Random Product  def", body["name"])
}

func TestGenerator_Seeded(t *testing.T) {
	a, b := NewGenerator(7), NewGenerator(7)
	for i := 0; i < 10; i++ {
		assert.Equal(t, a.Product("123456"), b.Product("123456"))
	}
}

func TestApiKey(t *testing.T) {
	h := New(Config{ApiKey: "secret"}).Handler()

	rec, body := get(t, h, "/products/12345678900014", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "Invalid API key", body["detail"])

	rec, _ = get(t, h, "/products/12345678900014", "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec, body = get(t, h, "/products/12345678900014", "secret")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Test Product 1", body["name"])

	rec, body = get(t, h, "/health", "")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", body["status"])
}

func TestConcurrentClients(t *testing.T) {
	srv := httptest.NewServer(New(Config{}).Handler())
	defer srv.Close()

	var wg sync.WaitGroup
	for i := 0; i < 32; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			resp, err := http.Get(srv.URL + "/products/11112222333344")
			if !assert.NoError(t, err) {
				return
			}
			defer resp.Body.Close()
			var body productPayload
			assert.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
			assert.Equal(t, http.StatusOK, resp.StatusCode)
			assert.Equal(t, "Random Product 3344", body.Name)
		}()
	}
	wg.Wait()
}
