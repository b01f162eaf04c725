package upcdb

import (
	"strings"

	"github.com/shelfaware/backend/internal/domain"
)

// Normalize converts a raw provider payload into the canonical product model.
// It is total over the declared payload shapes: missing fields fall back to
// their documented defaults (empty strings, USD, zero prices) and it never
// fails. Category and expiry are left for the classifier; the caller owns the
// UPC key.
func Normalize(payload *domain.RawPayload) *domain.Product {
	product := &domain.Product{
		Category: domain.CategoryOther,
		Currency: "USD",
	}
	if payload == nil {
		return product
	}

	switch payload.Kind {
	case domain.SourceKindBarcodeSpider:
		if payload.Spider != nil && payload.Spider.Product != nil {
			mapSpiderProduct(product, payload.Spider.Product)
		}
	case domain.SourceKindUPCItemDB:
		if payload.ItemDB != nil && len(payload.ItemDB.Items) > 0 {
			mapItemDBItem(product, &payload.ItemDB.Items[0])
		}
	}

	return product
}

func mapItemDBItem(product *domain.Product, item *domain.ItemDBItem) {
	product.Title = item.Title
	product.Brand = item.Brand
	product.Description = item.Description
	product.Model = item.Model
	product.Color = item.Color
	product.Size = item.Size
	product.Dimension = item.Dimension
	product.Weight = item.Weight
	product.LowestPrice = clampPrice(item.LowestRecordedPrice)
	product.HighestPrice = clampPrice(item.HighestRecordedPrice)
	if item.Currency != "" {
		product.Currency = item.Currency
	}
	product.Images = append(product.Images, item.Images...)
}

func mapSpiderProduct(product *domain.Product, item *domain.SpiderProduct) {
	product.Title = item.Name
	product.Brand = item.Brand
	product.Description = item.Description
	product.Model = item.Model
	product.LowestPrice = clampPrice(item.LowestPrice)
	product.HighestPrice = clampPrice(item.HighestPrice)
	if item.Currency != "" {
		product.Currency = item.Currency
	}
	if item.ImageURL != "" {
		product.Images = append(product.Images, item.ImageURL)
	}
	product.Images = append(product.Images, item.Images...)
	applySpecs(product, item.Specs)
}

// specRule maps a set of label keywords onto one canonical field. Labels are
// matched case-insensitively by substring; the first spec entry matching a
// rule wins, later entries never overwrite.
type specRule struct {
	keywords []string
	assign   func(p *domain.Product, value string)
}

var specRules = []specRule{
	{
		keywords: []string{"weight"},
		assign: func(p *domain.Product, v string) {
			if p.Weight == "" {
				p.Weight = v
			}
		},
	},
	{
		keywords: []string{"height", "width", "length", "depth", "dimension"},
		assign: func(p *domain.Product, v string) {
			if p.Dimension == "" {
				p.Dimension = v
			}
		},
	},
	{
		keywords: []string{"color", "colour"},
		assign: func(p *domain.Product, v string) {
			if p.Color == "" {
				p.Color = v
			}
		},
	},
	{
		keywords: []string{"size"},
		assign: func(p *domain.Product, v string) {
			if p.Size == "" {
				p.Size = v
			}
		},
	},
}

func applySpecs(product *domain.Product, specs []domain.SpiderSpec) {
	for _, spec := range specs {
		label := strings.ToLower(spec.Label)
		value := strings.TrimSpace(spec.Value)
		if label == "" || value == "" {
			continue
		}
	rules:
		for _, rule := range specRules {
			for _, kw := range rule.keywords {
				if strings.Contains(label, kw) {
					rule.assign(product, value)
					break rules
				}
			}
		}
	}
}

func clampPrice(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
