package domain

import "context"

// ProductStore defines the interface for product persistence keyed by UPC.
// Upsert has insert-or-update-on-conflict semantics: the store holds at most
// one row per UPC and the last write wins.
type ProductStore interface {
	FindByUPC(ctx context.Context, upc string) (*Product, error)
	Upsert(ctx context.Context, product *Product) error
}

// LookupClient defines the interface for the external barcode lookup API.
type LookupClient interface {
	Lookup(ctx context.Context, barcode string) (*RawPayload, error)
}

// Classifier defines the language-model backed enrichment calls. Both are
// independent single-shot classifications with constrained outputs:
// InferCategory must return a member of the category set, and
// EstimateShelfLife returns a non-negative number of days until expiry
// (NonPerishableShelfLifeDays for non-perishable products).
type Classifier interface {
	InferCategory(ctx context.Context, product *Product) (Category, error)
	EstimateShelfLife(ctx context.Context, product *Product) (int, error)
}
