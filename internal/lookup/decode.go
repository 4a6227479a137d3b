package lookup

import (
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cast"

	"github.com/Michaelcode2/pricechecker/internal/domain"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// DecodeProduct converts a lookup response body into a ProductInfo.
// Every malformed input yields a DecodeError; it never panics.
func DecodeProduct(body []byte) (domain.ProductInfo, error) {
	var payload map[string]interface{}
	if err := json.Unmarshal(body, &payload); err != nil {
		return domain.ProductInfo{}, decodeError("response is not a JSON object: %v", err)
	}
	if payload == nil {
		return domain.ProductInfo{}, decodeError("response body is null")
	}

	name, err := stringField(payload, "name")
	if err != nil {
		return domain.ProductInfo{}, err
	}
	measurement, err := stringField(payload, "measurement")
	if err != nil {
		return domain.ProductInfo{}, err
	}
	price, err := priceField(payload, "price")
	if err != nil {
		return domain.ProductInfo{}, err
	}

	var discount *float64
	if v := payload["discountPrice"]; truthy(v) {
		d, err := toPrice("discountPrice", v)
		if err != nil {
			return domain.ProductInfo{}, err
		}
		discount = &d
	}
	return domain.NewProductInfo(name, measurement, price, discount), nil
}

// EncodeProduct renders p in the lookup wire format.
func EncodeProduct(p domain.ProductInfo) ([]byte, error) {
	return json.Marshal(WireProduct(p))
}

// WireProduct maps p onto the lookup wire schema.
func WireProduct(p domain.ProductInfo) map[string]interface{} {
	var discount interface{}
	if d, ok := p.Discount(); ok {
		discount = d
	}
	return map[string]interface{}{
		"name":          p.Name,
		"measurement":   p.Measurement,
		"price":         p.Price,
		"discountPrice": discount,
	}
}

func stringField(m map[string]interface{}, key string) (string, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return "", nil
	}
	switch v.(type) {
	case map[string]interface{}, []interface{}:
		return "", decodeError("field %q is not a scalar", key)
	}
	s, err := cast.ToStringE(v)
	if err != nil {
		return "", decodeError("field %q: %v", key, err)
	}
	return s, nil
}

func priceField(m map[string]interface{}, key string) (float64, error) {
	v, ok := m[key]
	if !ok || v == nil {
		return 0, nil
	}
	return toPrice(key, v)
}

func toPrice(key string, v interface{}) (float64, error) {
	switch t := v.(type) {
	case map[string]interface{}, []interface{}:
		return 0, decodeError("field %q is not a number", key)
	case string:
		v = strings.TrimSpace(t)
	}
	f, err := cast.ToFloat64E(v)
	if err != nil {
		return 0, decodeError("field %q: %v", key, err)
	}
	if !domain.ValidPrice(f) {
		return 0, decodeError("field %q: %v is not a valid price", key, f)
	}
	return f, nil
}

// truthy mirrors the loose truthiness the lookup service relies on for optional fields.
func truthy(v interface{}) bool {
	switch t := v.(type) {
	case nil:
		return false
	case bool:
		return t
	case float64:
		return t != 0
	case string:
		return t != ""
	case map[string]interface{}:
		return len(t) > 0
	case []interface{}:
		return len(t) > 0
	}
	return true
}
