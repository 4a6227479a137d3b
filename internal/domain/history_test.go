package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProductInfo_PersistedRoundTrip(t *testing.T) {
	discount := 7.99
	for _, p := range []ProductInfo{
		NewProductInfo("Test Product 1", "pcs", 9.99, &discount),
		NewProductInfo("Test Product 2", "kg", 15.5, nil),
	} {
		data, err := json.Marshal(p)
		require.NoError(t, err)

		var got ProductInfo
		require.NoError(t, json.Unmarshal(data, &got))
		assert.True(t, p.Equal(got), "%s", data)
	}
}

func TestProductInfo_PersistedSchema(t *testing.T) {
	data, err := json.Marshal(NewProductInfo("Bread", "pcs", 2.5, nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"name":"Bread","measurement":"pcs","price":2.5,"discount_price":null}`, string(data))
}

func TestNewProductInfo_CopiesDiscount(t *testing.T) {
	discount := 1.0
	p := NewProductInfo("x", "pcs", 2, &discount)
	discount = 5
	d, ok := p.Discount()
	require.True(t, ok)
	assert.Equal(t, 1.0, d)
}

func TestHistoryEntry_RoundTrip(t *testing.T) {
	discount := 7.99
	entry := HistoryEntry{
		Barcode:   "12345678900014",
		Product:   NewProductInfo("Test Product 1", "pcs", 9.99, &discount),
		Timestamp: time.Date(2024, 5, 1, 10, 15, 30, 123456000, time.Local),
	}
	data, err := json.Marshal(entry)
	require.NoError(t, err)

	var got HistoryEntry
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, entry.Barcode, got.Barcode)
	assert.True(t, entry.Product.Equal(got.Product))
	assert.True(t, entry.Timestamp.Equal(got.Timestamp), "%v != %v", entry.Timestamp, got.Timestamp)
}

func TestHistoryEntry_LegacyTimestamp(t *testing.T) {
	var got HistoryEntry
	err := json.Unmarshal([]byte(`{"barcode":"123456","product":{"name":"a","measurement":"kg","price":1,"discount_price":null},"timestamp":"2024-05-01T10:15:30"}`), &got)
	require.NoError(t, err)
	want := time.Date(2024, 5, 1, 10, 15, 30, 0, time.Local)
	assert.True(t, want.Equal(got.Timestamp), "%v != %v", want, got.Timestamp)
	assert.Nil(t, got.Product.DiscountPrice)
}

func TestHistoryEntry_BadTimestamp(t *testing.T) {
	var got HistoryEntry
	err := json.Unmarshal([]byte(`{"barcode":"123456","timestamp":"??"}`), &got)
	assert.Error(t, err)
}

func TestValidPrice(t *testing.T) {
	assert.True(t, ValidPrice(0))
	assert.True(t, ValidPrice(9.99))
	assert.False(t, ValidPrice(-0.01))
}
