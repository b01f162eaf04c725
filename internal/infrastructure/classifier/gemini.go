package classifier

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/shelfaware/backend/internal/domain"
	"go.uber.org/zap"
	"google.golang.org/genai"
)

const defaultModel = "gemini-2.0-flash"

// shelfLifeSentinel is the answer the model gives for non-perishable products
// (shelf life of two years or more).
const shelfLifeSentinel = "n/a"

// Config holds classifier settings.
type Config struct {
	APIKey string
	Model  string
}

// Gemini runs the two enrichment classifications against the Gemini API.
// Both calls use deterministic sampling (temperature 0) so the same product
// always classifies the same way.
type Gemini struct {
	client *genai.Client
	model  string
	logger *zap.Logger
}

// NewGemini creates a classifier backed by the Gemini API.
func NewGemini(ctx context.Context, cfg Config, logger *zap.Logger) (*Gemini, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("classifier API key is required")
	}

	model := cfg.Model
	if model == "" {
		model = defaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create genai client: %w", err)
	}

	return &Gemini{client: client, model: model, logger: logger}, nil
}

// InferCategory asks the model for the product's food category. The answer is
// validated against the closed category set; anything else coerces to Other,
// so the result is always a valid member regardless of what the model says.
func (g *Gemini) InferCategory(ctx context.Context, product *domain.Product) (domain.Category, error) {
	answer, err := g.generate(ctx, categoryPrompt(product))
	if err != nil {
		return domain.CategoryOther, err
	}

	category := domain.ParseCategory(answer)
	if category == domain.CategoryOther && !strings.EqualFold(strings.TrimSpace(answer), string(domain.CategoryOther)) {
		g.logger.Debug("category answer outside the category set, coerced to Other",
			zap.String("upc", product.UPC), zap.String("answer", answer))
	}
	return category, nil
}

// EstimateShelfLife asks the model how many days until the product expires.
// The model answers a non-negative integer of days, or "n/a" for
// non-perishable products. Malformed answers fall back to the non-perishable
// horizon rather than failing the resolution.
func (g *Gemini) EstimateShelfLife(ctx context.Context, product *domain.Product) (int, error) {
	answer, err := g.generate(ctx, shelfLifePrompt(product))
	if err != nil {
		return domain.NonPerishableShelfLifeDays, err
	}
	return ParseShelfLife(answer), nil
}

func (g *Gemini) generate(ctx context.Context, prompt string) (string, error) {
	resp, err := g.client.Models.GenerateContent(ctx, g.model, genai.Text(prompt),
		&genai.GenerateContentConfig{
			Temperature:    genai.Ptr(float32(0)),
			CandidateCount: 1,
		})
	if err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrClassifierUnavailable, err)
	}

	answer := strings.TrimSpace(resp.Text())
	if answer == "" {
		return "", fmt.Errorf("%w: empty completion", domain.ErrClassifierUnavailable)
	}
	return answer, nil
}

// ParseShelfLife converts a model answer into days until expiry. "n/a" and
// anything malformed (non-numeric, negative) resolve to the non-perishable
// horizon — a fail-safe, never a failure.
func ParseShelfLife(answer string) int {
	cleaned := strings.ToLower(strings.TrimSpace(answer))
	cleaned = strings.Trim(cleaned, `"'.`)
	if cleaned == "" || cleaned == shelfLifeSentinel || cleaned == "na" {
		return domain.NonPerishableShelfLifeDays
	}

	days, err := strconv.Atoi(cleaned)
	if err != nil || days < 0 {
		return domain.NonPerishableShelfLifeDays
	}
	return days
}

func categoryPrompt(product *domain.Product) string {
	var names []string
	for _, c := range domain.Categories() {
		names = append(names, string(c))
	}

	var b strings.Builder
	b.WriteString("Classify this grocery product into exactly one of the following categories:\n")
	b.WriteString(strings.Join(names, "\n"))
	b.WriteString("\n\nProduct title: ")
	b.WriteString(cleanTitle(product.Title))
	if product.Brand != "" {
		b.WriteString("\nBrand: ")
		b.WriteString(product.Brand)
	}
	if product.Description != "" {
		b.WriteString("\nDescription: ")
		b.WriteString(product.Description)
	}
	b.WriteString("\n\nAnswer with the category name only, nothing else.")
	return b.String()
}

func shelfLifePrompt(product *domain.Product) string {
	var b strings.Builder
	b.WriteString("Estimate how many days from purchase until this grocery product expires.\n")
	b.WriteString("Product title: ")
	b.WriteString(cleanTitle(product.Title))
	if product.Brand != "" {
		b.WriteString("\nBrand: ")
		b.WriteString(product.Brand)
	}
	if product.Description != "" {
		b.WriteString("\nDescription: ")
		b.WriteString(product.Description)
	}
	b.WriteString("\n\nAnswer with a single non-negative integer of days. ")
	b.WriteString(`If the product is non-perishable or keeps for two years or more, answer "n/a". No other text.`)
	return b.String()
}
