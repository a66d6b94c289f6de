package catalog_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/example/artisan-market/internal/domain/catalog"
	"github.com/example/artisan-market/internal/infrastructure/store/mocks"
)

func newTestCatalogService() (*catalog.Service, *mocks.MockProductStore) {
	store := mocks.NewMockProductStore()
	return catalog.NewService(store, zap.NewNop()), store
}

func validInput() catalog.CreateInput {
	return catalog.CreateInput{
		Title:       "Handmade Ceramic Vase",
		Description: "Blue vase with traditional patterns",
		Category:    catalog.CategoryPottery,
		Price:       450,
		Stock:       5,
		Images:      []string{"vase.jpg"},
		Materials:   []string{"ceramic", "clay"},
		Tags:        []string{"handmade", "pottery"},
	}
}

func TestCreate_Defaults(t *testing.T) {
	svc, _ := newTestCatalogService()

	p, err := svc.Create(context.Background(), "artisan-1", validInput())
	require.NoError(t, err)

	assert.NotEmpty(t, p.ID)
	assert.Equal(t, "artisan-1", p.ArtisanID)
	assert.Equal(t, catalog.StatusActive, p.Status)
	assert.Equal(t, "INR", p.Currency)
	assert.Equal(t, 5, p.Stock)
	assert.Zero(t, p.Sold)
}

func TestCreate_ZeroStockBecomesSoldOut(t *testing.T) {
	svc, _ := newTestCatalogService()

	in := validInput()
	in.Stock = 0
	p, err := svc.Create(context.Background(), "artisan-1", in)
	require.NoError(t, err)

	assert.Equal(t, catalog.StatusSoldOut, p.Status)
}

func TestCreate_Validation(t *testing.T) {
	svc, _ := newTestCatalogService()

	tests := []struct {
		name    string
		mutate  func(*catalog.CreateInput)
		wantErr error
	}{
		{"missing title", func(in *catalog.CreateInput) { in.Title = "" }, catalog.ErrTitleRequired},
		{"bad category", func(in *catalog.CreateInput) { in.Category = "plastics" }, catalog.ErrInvalidCategory},
		{"zero price", func(in *catalog.CreateInput) { in.Price = 0 }, catalog.ErrInvalidPrice},
		{"negative price", func(in *catalog.CreateInput) { in.Price = -10 }, catalog.ErrInvalidPrice},
		{"negative stock", func(in *catalog.CreateInput) { in.Stock = -1 }, catalog.ErrInvalidStock},
		{"active without images", func(in *catalog.CreateInput) { in.Images = nil }, catalog.ErrNoImages},
		{"too many images", func(in *catalog.CreateInput) {
			in.Images = make([]string, 11)
		}, catalog.ErrTooManyImages},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := validInput()
			tt.mutate(&in)
			_, err := svc.Create(context.Background(), "artisan-1", in)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCreate_DraftWithoutImagesAllowed(t *testing.T) {
	svc, _ := newTestCatalogService()

	in := validInput()
	in.Status = catalog.StatusDraft
	in.Images = nil

	p, err := svc.Create(context.Background(), "artisan-1", in)
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusDraft, p.Status)
}

func TestUpdate_OwnerOnly(t *testing.T) {
	svc, _ := newTestCatalogService()

	p, err := svc.Create(context.Background(), "artisan-1", validInput())
	require.NoError(t, err)

	title := "Renamed Vase"
	_, err = svc.Update(context.Background(), "artisan-2", p.ID, catalog.UpdateInput{Title: &title})
	assert.ErrorIs(t, err, catalog.ErrNotOwner)
}

func TestUpdate_PartialFields(t *testing.T) {
	svc, _ := newTestCatalogService()

	p, err := svc.Create(context.Background(), "artisan-1", validInput())
	require.NoError(t, err)

	price := 600.0
	updated, err := svc.Update(context.Background(), "artisan-1", p.ID, catalog.UpdateInput{Price: &price})
	require.NoError(t, err)

	assert.Equal(t, 600.0, updated.Price)
	// Untouched fields survive.
	assert.Equal(t, p.Title, updated.Title)
	assert.Equal(t, p.Stock, updated.Stock)
}

func TestUpdate_StockStatusSync(t *testing.T) {
	svc, _ := newTestCatalogService()

	in := validInput()
	in.Stock = 0
	p, err := svc.Create(context.Background(), "artisan-1", in)
	require.NoError(t, err)
	require.Equal(t, catalog.StatusSoldOut, p.Status)

	// Restocking a sold-out listing reactivates it.
	stock := 3
	updated, err := svc.Update(context.Background(), "artisan-1", p.ID, catalog.UpdateInput{Stock: &stock})
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusActive, updated.Status)

	// Draining stock flips it back.
	zero := 0
	updated, err = svc.Update(context.Background(), "artisan-1", p.ID, catalog.UpdateInput{Stock: &zero})
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusSoldOut, updated.Status)
}

func TestDelete_SoftDiscontinues(t *testing.T) {
	svc, store := newTestCatalogService()

	p, err := svc.Create(context.Background(), "artisan-1", validInput())
	require.NoError(t, err)

	require.NoError(t, svc.Delete(context.Background(), "artisan-1", p.ID))
	assert.Equal(t, catalog.StatusDiscontinued, store.Status(p.ID))

	// Still resolvable for order history.
	got, err := svc.Get(context.Background(), p.ID)
	require.NoError(t, err)
	assert.Equal(t, catalog.StatusDiscontinued, got.Status)
}

func TestDelete_OwnerOnly(t *testing.T) {
	svc, _ := newTestCatalogService()

	p, err := svc.Create(context.Background(), "artisan-1", validInput())
	require.NoError(t, err)

	err = svc.Delete(context.Background(), "artisan-2", p.ID)
	assert.ErrorIs(t, err, catalog.ErrNotOwner)
}

func TestList_DefaultsToActive(t *testing.T) {
	svc, _ := newTestCatalogService()

	_, err := svc.Create(context.Background(), "artisan-1", validInput())
	require.NoError(t, err)

	draft := validInput()
	draft.Status = catalog.StatusDraft
	draft.Images = nil
	_, err = svc.Create(context.Background(), "artisan-1", draft)
	require.NoError(t, err)

	products, total, err := svc.List(context.Background(), catalog.Filter{})
	require.NoError(t, err)
	assert.Equal(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, catalog.StatusActive, products[0].Status)
}

func TestList_FiltersAndPaginates(t *testing.T) {
	svc, _ := newTestCatalogService()

	for i := 0; i < 25; i++ {
		in := validInput()
		if i%2 == 0 {
			in.Category = catalog.CategoryTextiles
		}
		_, err := svc.Create(context.Background(), "artisan-1", in)
		require.NoError(t, err)
	}

	_, total, err := svc.List(context.Background(), catalog.Filter{Category: catalog.CategoryTextiles})
	require.NoError(t, err)
	assert.Equal(t, 13, total)

	page2, total, err := svc.List(context.Background(), catalog.Filter{Page: 2, Limit: 20})
	require.NoError(t, err)
	assert.Equal(t, 25, total)
	assert.Len(t, page2, 5)
}
