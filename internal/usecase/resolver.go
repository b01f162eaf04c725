package usecase

import (
	"context"
	"errors"
	"time"

	"github.com/shelfaware/backend/internal/domain"
	"github.com/shelfaware/backend/internal/infrastructure/upcdb"
	"go.uber.org/zap"
)

// ResolverConfig holds configuration for the resolver.
type ResolverConfig struct {
	// RefreshEnrichment re-runs category and shelf-life classification on
	// every cache hit instead of trusting the stored values. Off by default:
	// cache hits are terminal and stored enrichment is authoritative.
	RefreshEnrichment bool
}

// Resolution is the outcome of a successful barcode resolution.
type Resolution struct {
	Product *domain.Product
	Source  domain.Source

	// Warning carries non-fatal detail (currently only a failed best-effort
	// cache write); it never turns a success into a failure.
	Warning string
}

// Resolver ties the pipeline together: validate barcode → consult store →
// on miss, remote lookup → normalize → classify → upsert → return.
type Resolver struct {
	store             domain.ProductStore
	lookup            domain.LookupClient
	classifier        domain.Classifier
	refreshEnrichment bool
	logger            *zap.Logger
	now               func() time.Time
}

// NewResolver creates a resolver with its collaborators.
func NewResolver(
	store domain.ProductStore,
	lookup domain.LookupClient,
	classifier domain.Classifier,
	cfg ResolverConfig,
	logger *zap.Logger,
) *Resolver {
	return &Resolver{
		store:             store,
		lookup:            lookup,
		classifier:        classifier,
		refreshEnrichment: cfg.RefreshEnrichment,
		logger:            logger,
		now:               time.Now,
	}
}

// Resolve turns a raw barcode into a canonical product.
//
// Store read failures are fatal (ErrStoreUnavailable) — the resolver never
// masks a broken store by falling through to the remote API. A failed cache
// write after a successful remote lookup is the opposite: the product is
// still returned, with a warning attached.
//
// There is no transaction spanning the read and the write, so two concurrent
// misses for the same barcode may both call the remote API and both upsert;
// last-write-wins upserts keep that race harmless.
func (r *Resolver) Resolve(ctx context.Context, rawBarcode string) (*Resolution, error) {
	upc, err := domain.NormalizeBarcode(rawBarcode)
	if err != nil {
		return nil, err
	}

	cached, err := r.store.FindByUPC(ctx, upc)
	switch {
	case err == nil:
		if r.refreshEnrichment {
			r.enrich(ctx, cached)
		}
		return &Resolution{Product: cached, Source: domain.SourceCache}, nil
	case errors.Is(err, domain.ErrProductNotCached):
		// Miss: fall through to the remote lookup.
	default:
		return nil, err
	}

	payload, err := r.lookup.Lookup(ctx, upc)
	if err != nil {
		return nil, err
	}

	product := upcdb.Normalize(payload)
	product.UPC = upc
	product.PurchaseDate = r.now()
	r.enrich(ctx, product)

	resolution := &Resolution{Product: product, Source: domain.SourceRemote}
	if err := r.store.Upsert(ctx, product); err != nil {
		r.logger.Warn("failed to cache resolved product",
			zap.String("upc", upc), zap.Error(err))
		resolution.Warning = "product resolved but could not be cached"
	}
	return resolution, nil
}

// enrich attaches the classifier-derived fields. Classifier failures degrade
// to safe defaults (Other, non-perishable expiry) and are never surfaced to
// the caller; the two calls are independent and degrade independently.
func (r *Resolver) enrich(ctx context.Context, product *domain.Product) {
	category, err := r.classifier.InferCategory(ctx, product)
	if err != nil {
		r.logger.Warn("category inference degraded",
			zap.String("upc", product.UPC), zap.Error(err))
		category = domain.CategoryOther
	}
	product.Category = category

	days, err := r.classifier.EstimateShelfLife(ctx, product)
	if err != nil {
		r.logger.Warn("shelf-life estimate degraded",
			zap.String("upc", product.UPC), zap.Error(err))
		days = domain.NonPerishableShelfLifeDays
	}
	product.ExpiryDate = r.now().AddDate(0, 0, days)
}
