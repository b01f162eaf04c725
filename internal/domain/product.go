package domain

import (
	"strings"
	"time"
)

// Category is the closed set of food categories a product can belong to.
// Every product carries exactly one of these values; free-text categories
// from upstream sources never survive normalization.
type Category string

const (
	CategoryProduce     Category = "Produce"
	CategoryDairyEggs   Category = "Dairy & Eggs"
	CategoryMeatSeafood Category = "Meat & Seafood"
	CategoryBakery      Category = "Bakery & Bread"
	CategoryPantry      Category = "Pantry Staples"
	CategoryFrozen      Category = "Frozen"
	CategoryBeverages   Category = "Beverages"
	CategorySnacks      Category = "Snacks"
	CategoryCondiments  Category = "Condiments & Sauces"
	CategoryOther       Category = "Other"
)

// NonPerishableShelfLifeDays is the expiry horizon assigned to products the
// classifier reports as non-perishable (shelf life of two years or more).
const NonPerishableShelfLifeDays = 730

// Categories returns the full category set in display order.
func Categories() []Category {
	return []Category{
		CategoryProduce,
		CategoryDairyEggs,
		CategoryMeatSeafood,
		CategoryBakery,
		CategoryPantry,
		CategoryFrozen,
		CategoryBeverages,
		CategorySnacks,
		CategoryCondiments,
		CategoryOther,
	}
}

// ParseCategory maps a string onto the category set. Matching is
// case-insensitive and ignores surrounding whitespace; anything that is not a
// member coerces to CategoryOther, so the result is always valid.
func ParseCategory(s string) Category {
	cleaned := strings.TrimSpace(s)
	for _, c := range Categories() {
		if strings.EqualFold(cleaned, string(c)) {
			return c
		}
	}
	return CategoryOther
}

// Source identifies where a resolved product came from.
type Source string

const (
	SourceCache  Source = "cache"
	SourceRemote Source = "remote"
)

// Product is the canonical, source-independent product record. All remote
// payload shapes and cache rows normalize into this one schema.
type Product struct {
	UPC          string    `json:"upc"`
	Title        string    `json:"title"`
	Brand        string    `json:"brand"`
	Description  string    `json:"description"`
	Model        string    `json:"model"`
	Color        string    `json:"color"`
	Size         string    `json:"size"`
	Dimension    string    `json:"dimension"`
	Weight       string    `json:"weight"`
	Category     Category  `json:"category"`
	LowestPrice  float64   `json:"lowestPrice"`
	HighestPrice float64   `json:"highestPrice"`
	Currency     string    `json:"currency"`
	Images       []string  `json:"images"`
	PurchaseDate time.Time `json:"purchaseDate"`
	ExpiryDate   time.Time `json:"expiryDate"`
}
