package lookup

import (
	"context"

	"github.com/Michaelcode2/pricechecker/internal/domain"
)

// ProductClient resolves a scan code to a product record.
// Implementations return a *Error on failure and never retry.
type ProductClient interface {
	// FetchProduct issues one lookup for an already validated code.
	FetchProduct(ctx context.Context, code string) (domain.ProductInfo, error)
}
