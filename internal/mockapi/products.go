package mockapi

import (
	"math"
	"math/rand"
	"sync"
	"time"
)

// productPayload is the wire shape of GET /products/{barcode}.
type productPayload struct {
	Name          string   `json:"name"`
	Measurement   string   `json:"measurement"`
	Price         float64  `json:"price"`
	DiscountPrice *float64 `json:"discountPrice"`
}

var measurements = []string{"pcs", "kg", "l", "m"}

func price(v float64) *float64 { return &v }

// fixedProducts are always answered the same way.
var fixedProducts = map[string]productPayload{
	"12345678900014": {Name: "Test Product 1", Measurement: "pcs", Price: 9.99, DiscountPrice: price(7.99)},
	"98765432145555": {Name: "Test Product 2", Measurement: "kg", Price: 15.50},
}

// Generator synthesises products for unknown barcodes. Safe for concurrent use.
type Generator struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// NewGenerator returns a generator seeded with seed, or with the clock when seed is 0.
func NewGenerator(seed int64) *Generator {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{rnd: rand.New(rand.NewSource(seed))}
}

// Product builds a random product named after the last four characters of barcode.
func (g *Generator) Product(barcode string) productPayload {
	g.mu.Lock()
	defer g.mu.Unlock()

	p := productPayload{
		Name:        "Random Product " + lastRunes(barcode, 4),
		Measurement: measurements[g.rnd.Intn(len(measurements))],
		Price:       g.randomPrice(),
	}
	if g.rnd.Intn(2) == 0 {
		p.DiscountPrice = price(g.randomPrice())
	}
	return p
}

// randomPrice is uniform in [1.0, 100.0], rounded to cents.
func (g *Generator) randomPrice() float64 {
	return math.Round((1+g.rnd.Float64()*99)*100) / 100
}

func lastRunes(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[len(r)-n:])
}
