package domain

import "math"

// ProductInfo is a product record resolved by the lookup service.
// Values are never modified after construction; a newer lookup replaces them.
type ProductInfo struct {
	Name          string   `json:"name"`
	Measurement   string   `json:"measurement"`    // unit label, e.g. "pcs", "kg"
	Price         float64  `json:"price"`          // price in main currency units
	DiscountPrice *float64 `json:"discount_price"` // nil when no discount applies
}

// NewProductInfo builds a ProductInfo that owns its own copy of the discount value.
func NewProductInfo(name, measurement string, price float64, discount *float64) ProductInfo {
	p := ProductInfo{Name: name, Measurement: measurement, Price: price}
	if discount != nil {
		d := *discount
		p.DiscountPrice = &d
	}
	return p
}

// Discount returns the discount price and whether one is present.
func (p ProductInfo) Discount() (float64, bool) {
	if p.DiscountPrice == nil {
		return 0, false
	}
	return *p.DiscountPrice, true
}

// Clone returns a copy that shares no memory with p.
func (p ProductInfo) Clone() ProductInfo {
	return NewProductInfo(p.Name, p.Measurement, p.Price, p.DiscountPrice)
}

// Equal compares two products by value, including the optional discount.
func (p ProductInfo) Equal(o ProductInfo) bool {
	if p.Name != o.Name || p.Measurement != o.Measurement || p.Price != o.Price {
		return false
	}
	d1, ok1 := p.Discount()
	d2, ok2 := o.Discount()
	if ok1 != ok2 {
		return false
	}
	return !ok1 || d1 == d2
}

// ValidPrice reports whether v can be used as a price: finite and non-negative.
func ValidPrice(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0) && v >= 0
}
