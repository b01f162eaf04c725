package domain

// SourceKind identifies which remote API shape a raw payload uses.
type SourceKind string

const (
	// SourceKindUPCItemDB is the upcitemdb.com lookup shape: an items array
	// with named metadata fields per item.
	SourceKindUPCItemDB SourceKind = "upcitemdb"

	// SourceKindBarcodeSpider is the barcodespider-style shape: a single
	// product object with a loose label/value specs list.
	SourceKindBarcodeSpider SourceKind = "barcodespider"
)

// RawPayload is a decoded remote lookup response, tagged with its source
// kind. Exactly one of the shape fields is populated.
type RawPayload struct {
	Kind   SourceKind
	ItemDB *ItemDBResponse
	Spider *SpiderResponse
}

// ItemDBResponse represents the upcitemdb lookup response.
type ItemDBResponse struct {
	Code    string       `json:"code"`
	Total   int          `json:"total"`
	Message string       `json:"message,omitempty"`
	Items   []ItemDBItem `json:"items"`
}

// ItemDBItem represents a single product entry from upcitemdb.
type ItemDBItem struct {
	EAN                  string   `json:"ean"`
	UPC                  string   `json:"upc"`
	Title                string   `json:"title"`
	Brand                string   `json:"brand"`
	Description          string   `json:"description"`
	Model                string   `json:"model"`
	Color                string   `json:"color"`
	Size                 string   `json:"size"`
	Dimension            string   `json:"dimension"`
	Weight               string   `json:"weight"`
	Currency             string   `json:"currency"`
	LowestRecordedPrice  float64  `json:"lowest_recorded_price"`
	HighestRecordedPrice float64  `json:"highest_recorded_price"`
	Images               []string `json:"images"`
}

// SpiderResponse represents the barcodespider-style lookup response.
type SpiderResponse struct {
	Code         string         `json:"code"`
	ItemResponse SpiderStatus   `json:"item_response"`
	Product      *SpiderProduct `json:"product"`
}

// SpiderStatus carries the provider's embedded status envelope.
type SpiderStatus struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// SpiderProduct represents a single product entry. Weight, dimensions, color
// and size arrive as an unstructured label/value specs list rather than named
// fields.
type SpiderProduct struct {
	Name         string       `json:"name"`
	Brand        string       `json:"brand"`
	Description  string       `json:"description"`
	Model        string       `json:"model"`
	Currency     string       `json:"currency"`
	LowestPrice  float64      `json:"lowest_price"`
	HighestPrice float64      `json:"highest_price"`
	ImageURL     string       `json:"image_url"`
	Images       []string     `json:"images"`
	Specs        []SpiderSpec `json:"specs"`
}

// SpiderSpec is one label/value pair from the specs list.
type SpiderSpec struct {
	Label string `json:"label"`
	Value string `json:"value"`
}
