package service

import (
	"context"
	"fmt"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/internal/app/repository"
	"github.com/vendra/vendra-backend/internal/db"
	"gorm.io/gorm"
)

type fakeStorage struct {
	stored  []string
	failErr error
}

func (f *fakeStorage) Store(_ context.Context, file MediaFile, folder, baseName string) (string, error) {
	if f.failErr != nil {
		return "", f.failErr
	}
	url := fmt.Sprintf("https://cdn.test/%s/%s%s", folder, baseName, filepath.Ext(file.Filename))
	f.stored = append(f.stored, url)
	return url, nil
}

type publishedEvent struct {
	event     string
	productID uint
}

type fakePublisher struct {
	events []publishedEvent
}

func (f *fakePublisher) PublishProductEvent(event string, productID uint) {
	f.events = append(f.events, publishedEvent{event: event, productID: productID})
}

type catalogTestEnv struct {
	db      *gorm.DB
	storage *fakeStorage
	events  *fakePublisher
	svc     ProductService
}

func newCatalogTestEnv(t *testing.T) *catalogTestEnv {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	storage := &fakeStorage{}
	events := &fakePublisher{}

	svc := NewProductService(
		testDB,
		repository.NewProductRepository(testDB),
		repository.NewProductMediaRepository(testDB),
		repository.NewProductOptionRepository(testDB),
		repository.NewProductVariantRepository(testDB),
		repository.NewCollectionRepository(testDB),
		storage,
		nil,
		events,
	)

	return &catalogTestEnv{
		db:      testDB,
		storage: storage,
		events:  events,
		svc:     svc,
	}
}

func (e *catalogTestEnv) createProduct(t *testing.T, title string) *model.Product {
	product, err := e.svc.CreateProduct(ProductCreateInput{Title: title})
	require.NoError(t, err)
	return product
}

func (e *catalogTestEnv) createCollection(t *testing.T, title, handle string) *model.Collection {
	collection := &model.Collection{Title: title, Handle: handle}
	require.NoError(t, e.db.Create(collection).Error)
	return collection
}

func strPtr(s string) *string                   { return &s }
func intPtr(n int) *int                         { return &n }
func decPtr(d decimal.Decimal) *decimal.Decimal { return &d }

func TestProductService_CreateProduct(t *testing.T) {
	env := newCatalogTestEnv(t)

	product, err := env.svc.CreateProduct(ProductCreateInput{
		Title: "Classic Cotton Tee",
		Tags:  []string{"cotton", "basics"},
	})
	require.NoError(t, err)

	assert.Equal(t, "Classic Cotton Tee", product.Title)
	assert.Equal(t, "classic-cotton-tee", product.Handle)
	assert.Equal(t, model.StatusDraft, product.Status)
	assert.Equal(t, []string{"cotton", "basics"}, []string(product.Tags))

	require.Len(t, env.events.events, 1)
	assert.Equal(t, EventProductCreated, env.events.events[0].event)
}

func TestProductService_CreateProduct_HandleCollision(t *testing.T) {
	env := newCatalogTestEnv(t)

	first := env.createProduct(t, "Classic Tee")
	second := env.createProduct(t, "Classic Tee")
	third := env.createProduct(t, "Classic Tee")

	assert.Equal(t, "classic-tee", first.Handle)
	assert.Equal(t, "classic-tee-2", second.Handle)
	assert.Equal(t, "classic-tee-3", third.Handle)
}

func TestProductService_CreateProduct_ReusesDeletedHandle(t *testing.T) {
	env := newCatalogTestEnv(t)

	first := env.createProduct(t, "Classic Tee")
	require.NoError(t, env.svc.DeleteProduct(first.ID))

	// Handle uniqueness only spans non-deleted rows
	second := env.createProduct(t, "Classic Tee")
	assert.Equal(t, "classic-tee", second.Handle)
	assert.NotEqual(t, first.ID, second.ID)
}

func TestProductService_CreateProduct_ExplicitStatus(t *testing.T) {
	env := newCatalogTestEnv(t)

	active := model.StatusActive
	product, err := env.svc.CreateProduct(ProductCreateInput{
		Title:  "Launch Day Hoodie",
		Status: &active,
	})
	require.NoError(t, err)
	assert.Equal(t, model.StatusActive, product.Status)
}

func TestProductService_UpdateProduct_PartialScalars(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Heavyweight Hoodie")

	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Subtitle: strPtr("Brushed fleece interior"),
	})
	require.NoError(t, err)

	// Only the subtitle changed
	assert.Equal(t, "Brushed fleece interior", updated.Subtitle)
	assert.Equal(t, "Heavyweight Hoodie", updated.Title)
	assert.Equal(t, "heavyweight-hoodie", updated.Handle)
	assert.Equal(t, model.StatusDraft, updated.Status)
}

func TestProductService_UpdateProduct_TitleRegeneratesHandle(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Heavyweight Hoodie")

	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Title: strPtr("Midweight Hoodie"),
	})
	require.NoError(t, err)
	assert.Equal(t, "midweight-hoodie", updated.Handle)

	// Same title again leaves the handle alone
	updated, err = env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Title: strPtr("Midweight Hoodie"),
	})
	require.NoError(t, err)
	assert.Equal(t, "midweight-hoodie", updated.Handle)
}

func TestProductService_UpdateProduct_NotFound(t *testing.T) {
	env := newCatalogTestEnv(t)

	_, err := env.svc.UpdateProduct(9999, ProductUpdateInput{
		Subtitle: strPtr("nope"),
	})
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_UpdateProduct_EmptyPayloadIsNoOp(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Linen Camp Shirt")

	sizes := []string{"S", "M"}
	_, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Options: &[]OptionSyncItem{{Name: strPtr("Size"), Values: &sizes}},
	})
	require.NoError(t, err)

	// No child keys present: everything survives
	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{})
	require.NoError(t, err)
	require.Len(t, updated.Options, 1)
	assert.Len(t, updated.Options[0].Values, 2)
}

func TestProductService_GetProduct(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")

	found, err := env.svc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Equal(t, product.ID, found.ID)

	_, err = env.svc.GetProduct(9999)
	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestProductService_ListProducts(t *testing.T) {
	env := newCatalogTestEnv(t)

	active := model.StatusActive
	_, err := env.svc.CreateProduct(ProductCreateInput{Title: "Active Tee", Status: &active})
	require.NoError(t, err)
	env.createProduct(t, "Draft Tee")

	products, total, err := env.svc.ListProducts(ProductListOptions{})
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.EqualValues(t, 2, total)

	products, total, err = env.svc.ListProducts(ProductListOptions{Status: &active})
	require.NoError(t, err)
	require.Len(t, products, 1)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "Active Tee", products[0].Title)
}

func TestProductService_ListProducts_SearchAndPaging(t *testing.T) {
	env := newCatalogTestEnv(t)

	env.createProduct(t, "Cotton Crew Tee")
	env.createProduct(t, "Cotton V-Neck Tee")
	env.createProduct(t, "Wool Sweater")

	products, total, err := env.svc.ListProducts(ProductListOptions{Search: "Cotton"})
	require.NoError(t, err)
	assert.Len(t, products, 2)
	assert.EqualValues(t, 2, total)

	products, total, err = env.svc.ListProducts(ProductListOptions{
		Sort:          ProductSortTitle,
		SortAscending: true,
		Limit:         2,
		Offset:        2,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, products, 1)
	assert.Equal(t, "Wool Sweater", products[0].Title)
}

func TestProductService_DeleteProduct(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Doomed Tee")
	collection := env.createCollection(t, "Clearance", "clearance")

	sizes := []string{"S", "M"}
	price := decimal.NewFromInt(19)
	refs := []VariantOptionRef{{Value: "S"}}
	collectionIDs := []uint{collection.ID}
	_, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Options: &[]OptionSyncItem{{Name: strPtr("Size"), Values: &sizes}},
		Variants: &[]VariantSyncItem{
			{Name: strPtr("Small"), Price: decPtr(price), Options: &refs},
		},
		CollectionIDs: &collectionIDs,
	})
	require.NoError(t, err)

	require.NoError(t, env.svc.DeleteProduct(product.ID))

	_, err = env.svc.GetProduct(product.ID)
	assert.ErrorIs(t, err, ErrProductNotFound)

	// Owned children are gone
	var optionCount, valueCount, variantCount int64
	env.db.Model(&model.ProductOption{}).Where("product_id = ?", product.ID).Count(&optionCount)
	env.db.Model(&model.ProductVariant{}).Where("product_id = ?", product.ID).Count(&variantCount)
	env.db.Model(&model.ProductOptionValue{}).Count(&valueCount)
	assert.Zero(t, optionCount)
	assert.Zero(t, variantCount)
	assert.Zero(t, valueCount)

	// The collection itself survives, membership does not
	var collections []model.Collection
	require.NoError(t, env.db.Find(&collections).Error)
	assert.Len(t, collections, 1)
	var memberships int64
	env.db.Table("collection_products").Where("product_id = ?", product.ID).Count(&memberships)
	assert.Zero(t, memberships)
}

func TestProductService_DeleteProduct_NotFound(t *testing.T) {
	env := newCatalogTestEnv(t)
	assert.ErrorIs(t, env.svc.DeleteProduct(9999), ErrProductNotFound)
}

func TestProductService_UpdateProducts_SkipsUnknownIDs(t *testing.T) {
	env := newCatalogTestEnv(t)
	first := env.createProduct(t, "First Tee")
	second := env.createProduct(t, "Second Tee")

	results, err := env.svc.UpdateProducts([]ProductBulkUpdateItem{
		{ID: first.ID, ProductUpdateInput: ProductUpdateInput{Subtitle: strPtr("updated")}},
		{ID: second.ID, ProductUpdateInput: ProductUpdateInput{Subtitle: strPtr("updated")}},
		{ID: 9999, ProductUpdateInput: ProductUpdateInput{Subtitle: strPtr("ghost")}},
	})
	require.NoError(t, err)

	// Unknown IDs are skipped, not errors
	require.Len(t, results, 2)
	for _, product := range results {
		assert.Equal(t, "updated", product.Subtitle)
	}
}

func TestProductService_UpdateProducts_RollsBackWholeBatch(t *testing.T) {
	env := newCatalogTestEnv(t)
	first := env.createProduct(t, "First Tee")
	second := env.createProduct(t, "Second Tee")

	badCollections := []uint{777}
	_, err := env.svc.UpdateProducts([]ProductBulkUpdateItem{
		{ID: first.ID, ProductUpdateInput: ProductUpdateInput{Subtitle: strPtr("should not stick")}},
		{ID: second.ID, ProductUpdateInput: ProductUpdateInput{CollectionIDs: &badCollections}},
	})
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCollectionNotFound)

	// The first item's change rolled back with the batch
	reloaded, err := env.svc.GetProduct(first.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Subtitle)
}

func TestProductService_UpdateProduct_PublishesAfterCommit(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Event Tee")
	env.events.events = nil

	_, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Subtitle: strPtr("now with events"),
	})
	require.NoError(t, err)

	require.Len(t, env.events.events, 1)
	assert.Equal(t, EventProductUpdated, env.events.events[0].event)
	assert.Equal(t, product.ID, env.events.events[0].productID)

	// Failed updates publish nothing
	env.events.events = nil
	_, err = env.svc.UpdateProduct(9999, ProductUpdateInput{Subtitle: strPtr("x")})
	require.Error(t, err)
	assert.Empty(t, env.events.events)
}
