package generation

import (
	"errors"
	"strings"

	"github.com/example/artisan-market/internal/domain/catalog"
	"go.uber.org/zap"
)

var ErrEmptyDescription = errors.New("description text is required")

// ListingDraft is a synthesized product listing derived from free text.
type ListingDraft struct {
	Title       string           `json:"title"`
	Description string           `json:"description"`
	Category    catalog.Category `json:"category"`
	Materials   []string         `json:"materials"`
	Tags        []string         `json:"tags"`
	PriceMin    float64          `json:"price_min"`
	PriceMax    float64          `json:"price_max"`
	Currency    string           `json:"currency"`
	Confidence  float64          `json:"confidence"`
}

// rule maps trigger keywords found in a transcript to a draft listing.
type rule struct {
	keywords  []string
	category  catalog.Category
	title     string
	desc      string
	materials []string
	tags      []string
	priceMin  float64
	priceMax  float64
}

var rules = []rule{
	{
		keywords:  []string{"ceramic", "pottery", "vase", "clay", "terracotta"},
		category:  catalog.CategoryPottery,
		title:     "Handmade Ceramic Vase",
		desc:      "Hand-thrown ceramic piece with traditional patterns, shaped and glazed by the artisan.",
		materials: []string{"ceramic", "clay"},
		tags:      []string{"handmade", "traditional", "ceramic", "home-decor"},
		priceMin:  500, priceMax: 2000,
	},
	{
		keywords:  []string{"saree", "silk", "embroidery", "fabric", "weave", "loom"},
		category:  catalog.CategoryTextiles,
		title:     "Handwoven Silk Saree",
		desc:      "Handloom silk with golden borders and intricate embroidery, woven on a family loom.",
		materials: []string{"silk", "cotton"},
		tags:      []string{"handwoven", "silk", "traditional", "embroidery"},
		priceMin:  2000, priceMax: 8000,
	},
	{
		keywords:  []string{"wooden", "wood", "carve", "handicraft", "bowl"},
		category:  catalog.CategoryWoodwork,
		title:     "Carved Wooden Kitchen Set",
		desc:      "Set of hand-carved wooden bowls, spoons and decorative items from seasoned hardwood.",
		materials: []string{"wood"},
		tags:      []string{"handmade", "wooden", "kitchen", "eco-friendly"},
		priceMin:  800, priceMax: 3000,
	},
	{
		keywords:  []string{"silver", "jewelry", "jewellery", "earring", "necklace", "bangle"},
		category:  catalog.CategoryJewelry,
		title:     "Traditional Silver Jewelry Set",
		desc:      "Handcrafted silver pieces with traditional tribal designs.",
		materials: []string{"silver"},
		tags:      []string{"handmade", "silver", "jewelry", "traditional"},
		priceMin:  1500, priceMax: 6000,
	},
	{
		keywords:  []string{"leather", "bag", "hide", "tanned"},
		category:  catalog.CategoryLeather,
		title:     "Hand-Stitched Leather Bag",
		desc:      "Vegetable-tanned leather bag stitched by hand with ethnic patterns.",
		materials: []string{"leather"},
		tags:      []string{"handmade", "leather", "ethnic", "bag"},
		priceMin:  1200, priceMax: 4500,
	},
	{
		keywords:  []string{"bamboo", "basket", "cane", "wicker"},
		category:  catalog.CategoryBamboo,
		title:     "Woven Bamboo Homeware",
		desc:      "Bamboo furniture and storage baskets woven from locally harvested cane.",
		materials: []string{"bamboo", "cane"},
		tags:      []string{"handmade", "bamboo", "eco-friendly", "furniture"},
		priceMin:  600, priceMax: 5000,
	},
}

// stopwords excluded from keyword extraction.
var stopwords = map[string]bool{
	"the": true, "and": true, "for": true, "with": true, "from": true,
	"each": true, "one": true, "are": true, "this": true, "that": true,
	"these": true, "about": true, "make": true, "made": true, "takes": true,
	"have": true, "our": true, "its": true, "they": true,
}

// Service turns free text into listing drafts via keyword matching. It is a
// stand-in for a real content-generation model behind the same contract.
type Service struct {
	logger *zap.Logger
}

func NewService(logger *zap.Logger) *Service {
	return &Service{logger: logger.With(zap.String("component", "generation"))}
}

// GenerateListing matches the text against the keyword tables and returns
// one draft per matched craft, most keyword hits first. Text that matches
// nothing yields a single generic draft with low confidence.
func (s *Service) GenerateListing(text string) ([]ListingDraft, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyDescription
	}
	lower := strings.ToLower(text)

	type scored struct {
		draft ListingDraft
		hits  int
	}
	var matches []scored
	for _, r := range rules {
		hits := 0
		for _, kw := range r.keywords {
			if strings.Contains(lower, kw) {
				hits++
			}
		}
		if hits == 0 {
			continue
		}
		confidence := 0.6 + 0.1*float64(hits)
		if confidence > 0.95 {
			confidence = 0.95
		}
		matches = append(matches, scored{
			draft: ListingDraft{
				Title:       r.title,
				Description: r.desc,
				Category:    r.category,
				Materials:   r.materials,
				Tags:        appendKeywords(r.tags, ExtractKeywords(text)),
				PriceMin:    r.priceMin,
				PriceMax:    r.priceMax,
				Currency:    catalog.DefaultCurrency,
				Confidence:  confidence,
			},
			hits: hits,
		})
	}

	if len(matches) == 0 {
		s.logger.Debug("no craft keywords matched, returning generic draft")
		return []ListingDraft{{
			Title:       "Handcrafted Artisan Piece",
			Description: text,
			Category:    catalog.CategoryPainting,
			Tags:        append([]string{"handmade"}, ExtractKeywords(text)...),
			PriceMin:    500,
			PriceMax:    2000,
			Currency:    catalog.DefaultCurrency,
			Confidence:  0.4,
		}}, nil
	}

	// Most keyword hits first; ties keep rule order.
	for i := 1; i < len(matches); i++ {
		for j := i; j > 0 && matches[j].hits > matches[j-1].hits; j-- {
			matches[j], matches[j-1] = matches[j-1], matches[j]
		}
	}

	drafts := make([]ListingDraft, len(matches))
	for i, m := range matches {
		drafts[i] = m.draft
	}
	return drafts, nil
}

// ExtractKeywords pulls distinctive words (length > 3, not a stopword) out
// of free text, preserving first-seen order.
func ExtractKeywords(text string) []string {
	seen := make(map[string]bool)
	var keywords []string
	for _, word := range strings.Fields(strings.ToLower(text)) {
		word = strings.Trim(word, ".,!?;:\"'()")
		if len(word) <= 3 || stopwords[word] || seen[word] {
			continue
		}
		seen[word] = true
		keywords = append(keywords, word)
		if len(keywords) == 10 {
			break
		}
	}
	return keywords
}

func appendKeywords(tags, keywords []string) []string {
	seen := make(map[string]bool, len(tags))
	out := append([]string{}, tags...)
	for _, t := range tags {
		seen[t] = true
	}
	for _, kw := range keywords {
		if seen[kw] {
			continue
		}
		seen[kw] = true
		out = append(out, kw)
		if len(out) >= len(tags)+5 {
			break
		}
	}
	return out
}
