package catalog

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const DefaultCurrency = "INR"

// Filter narrows and pages List results. Page is 1-based.
type Filter struct {
	Category  Category
	ArtisanID string
	Status    Status
	Search    string
	Page      int
	Limit     int
}

// Store is the persistence boundary for products.
type Store interface {
	Insert(ctx context.Context, p *Product) error
	Get(ctx context.Context, id string) (*Product, error)
	Update(ctx context.Context, p *Product) error
	List(ctx context.Context, f Filter) ([]*Product, int, error)
}

type Service struct {
	store  Store
	logger *zap.Logger
}

func NewService(store Store, logger *zap.Logger) *Service {
	return &Service{
		store:  store,
		logger: logger.With(zap.String("component", "catalog")),
	}
}

// CreateInput carries the owner-supplied fields for a new product.
type CreateInput struct {
	Title       string
	Description string
	Category    Category
	Price       float64
	Currency    string
	Stock       int
	Status      Status
	Images      []string
	Materials   []string
	Tags        []string
}

func (s *Service) Create(ctx context.Context, artisanID string, in CreateInput) (*Product, error) {
	if in.Status == "" {
		in.Status = StatusActive
	}
	if in.Currency == "" {
		in.Currency = DefaultCurrency
	}
	if err := validateListing(in); err != nil {
		return nil, err
	}

	now := time.Now()
	p := &Product{
		ID:          uuid.New().String(),
		ArtisanID:   artisanID,
		Title:       in.Title,
		Description: in.Description,
		Category:    in.Category,
		Price:       in.Price,
		Currency:    in.Currency,
		Stock:       in.Stock,
		Status:      in.Status,
		Images:      in.Images,
		Materials:   in.Materials,
		Tags:        in.Tags,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if p.Stock == 0 && p.Status == StatusActive {
		p.Status = StatusSoldOut
	}

	if err := s.store.Insert(ctx, p); err != nil {
		return nil, err
	}

	s.logger.Info("product created",
		zap.String("product_id", p.ID),
		zap.String("artisan_id", artisanID),
		zap.String("category", string(p.Category)))
	return p, nil
}

// UpdateInput carries optional field updates; nil pointers leave the field unchanged.
type UpdateInput struct {
	Title       *string
	Description *string
	Category    *Category
	Price       *float64
	Stock       *int
	Status      *Status
	Images      []string
	Materials   []string
	Tags        []string
}

func (s *Service) Update(ctx context.Context, artisanID, productID string, in UpdateInput) (*Product, error) {
	p, err := s.store.Get(ctx, productID)
	if err != nil {
		return nil, err
	}
	if p.ArtisanID != artisanID {
		return nil, ErrNotOwner
	}

	if in.Title != nil {
		if *in.Title == "" {
			return nil, ErrTitleRequired
		}
		p.Title = *in.Title
	}
	if in.Description != nil {
		p.Description = *in.Description
	}
	if in.Category != nil {
		if !ValidCategory(*in.Category) {
			return nil, ErrInvalidCategory
		}
		p.Category = *in.Category
	}
	if in.Price != nil {
		if *in.Price <= 0 {
			return nil, ErrInvalidPrice
		}
		p.Price = *in.Price
	}
	if in.Stock != nil {
		if *in.Stock < 0 {
			return nil, ErrInvalidStock
		}
		p.Stock = *in.Stock
	}
	if in.Status != nil {
		if !ValidStatus(*in.Status) {
			return nil, ErrInvalidStatus
		}
		p.Status = *in.Status
	}
	if in.Images != nil {
		if len(in.Images) > maxImages {
			return nil, ErrTooManyImages
		}
		p.Images = in.Images
	}
	if in.Materials != nil {
		p.Materials = in.Materials
	}
	if in.Tags != nil {
		p.Tags = in.Tags
	}

	// Keep the stock-driven status in sync with manual edits.
	if p.Status == StatusSoldOut && p.Stock > 0 {
		p.Status = StatusActive
	}
	if p.Status == StatusActive && p.Stock == 0 {
		p.Status = StatusSoldOut
	}
	if p.Status == StatusActive && len(p.Images) == 0 {
		return nil, ErrNoImages
	}

	p.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Delete soft-disables a listing. Products are never hard-deleted because
// order lines keep referencing them.
func (s *Service) Delete(ctx context.Context, artisanID, productID string) error {
	p, err := s.store.Get(ctx, productID)
	if err != nil {
		return err
	}
	if p.ArtisanID != artisanID {
		return ErrNotOwner
	}

	p.Status = StatusDiscontinued
	p.UpdatedAt = time.Now()
	if err := s.store.Update(ctx, p); err != nil {
		return err
	}

	s.logger.Info("product discontinued", zap.String("product_id", productID))
	return nil
}

func (s *Service) Get(ctx context.Context, productID string) (*Product, error) {
	return s.store.Get(ctx, productID)
}

func (s *Service) List(ctx context.Context, f Filter) ([]*Product, int, error) {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.Limit < 1 || f.Limit > 100 {
		f.Limit = 20
	}
	if f.Status == "" {
		f.Status = StatusActive
	}
	return s.store.List(ctx, f)
}

func validateListing(in CreateInput) error {
	if in.Title == "" {
		return ErrTitleRequired
	}
	if !ValidCategory(in.Category) {
		return ErrInvalidCategory
	}
	if in.Price <= 0 {
		return ErrInvalidPrice
	}
	if in.Stock < 0 {
		return ErrInvalidStock
	}
	if len(in.Images) > maxImages {
		return ErrTooManyImages
	}
	if in.Status == StatusActive && len(in.Images) == 0 {
		return ErrNoImages
	}
	return nil
}
