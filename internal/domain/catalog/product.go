package catalog

import (
	"errors"
	"time"
)

var (
	ErrProductNotFound = errors.New("product not found")
	ErrNotOwner        = errors.New("product belongs to another artisan")
	ErrInvalidCategory = errors.New("invalid product category")
	ErrInvalidStatus   = errors.New("invalid product status")
	ErrInvalidPrice    = errors.New("price must be positive")
	ErrInvalidStock    = errors.New("stock must not be negative")
	ErrTitleRequired   = errors.New("title is required")
	ErrTooManyImages   = errors.New("a product may have at most 10 images")
	ErrNoImages        = errors.New("an active product needs at least one image")
)

const maxImages = 10

// Category is the closed set of product categories.
type Category string

const (
	CategoryPottery   Category = "pottery"
	CategoryTextiles  Category = "textiles"
	CategoryWoodwork  Category = "woodwork"
	CategoryJewelry   Category = "jewelry"
	CategoryLeather   Category = "leather"
	CategoryBamboo    Category = "bamboo"
	CategoryMetalwork Category = "metalwork"
	CategoryPainting  Category = "painting"
)

var categories = map[Category]bool{
	CategoryPottery:   true,
	CategoryTextiles:  true,
	CategoryWoodwork:  true,
	CategoryJewelry:   true,
	CategoryLeather:   true,
	CategoryBamboo:    true,
	CategoryMetalwork: true,
	CategoryPainting:  true,
}

func ValidCategory(c Category) bool { return categories[c] }

type Status string

const (
	StatusDraft        Status = "draft"
	StatusActive       Status = "active"
	StatusInactive     Status = "inactive"
	StatusSoldOut      Status = "sold_out"
	StatusDiscontinued Status = "discontinued"
)

func ValidStatus(s Status) bool {
	switch s {
	case StatusDraft, StatusActive, StatusInactive, StatusSoldOut, StatusDiscontinued:
		return true
	}
	return false
}

// Product is a single artisan listing in the catalog.
type Product struct {
	ID          string    `json:"id"`
	ArtisanID   string    `json:"artisan_id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Category    Category  `json:"category"`
	Price       float64   `json:"price"`
	Currency    string    `json:"currency"`
	Stock       int       `json:"stock"`
	Sold        int       `json:"sold"`
	Status      Status    `json:"status"`
	Images      []string  `json:"images"`
	Materials   []string  `json:"materials,omitempty"`
	Tags        []string  `json:"tags,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Purchasable reports whether an order line may reference this product.
func (p *Product) Purchasable() bool {
	return p.Status == StatusActive || p.Status == StatusSoldOut
}
