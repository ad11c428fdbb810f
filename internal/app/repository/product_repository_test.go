package repository

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/internal/db"
	"gorm.io/gorm"
)

func setupProductTest(t *testing.T) (*gorm.DB, ProductRepository) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	repo := NewProductRepository(testDB)
	return testDB, repo
}

func createTestProduct(t *testing.T, repo ProductRepository, title, handle string, status model.ProductStatus) *model.Product {
	product := &model.Product{
		Title:  title,
		Handle: handle,
		Status: status,
	}
	err := repo.Create(product)
	require.NoError(t, err)
	return product
}

func TestProductRepository_Create(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := &model.Product{
		Title:       "Classic Cotton Tee",
		Handle:      "classic-cotton-tee",
		Description: "Midweight cotton crew neck",
		Status:      model.StatusDraft,
	}

	err := repo.Create(product)
	assert.NoError(t, err)
	assert.NotZero(t, product.ID)
}

func TestProductRepository_FindByID(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := createTestProduct(t, repo, "Classic Tee", "classic-tee", model.StatusActive)

	tests := []struct {
		name    string
		id      uint
		wantErr bool
	}{
		{
			name:    "Existing product",
			id:      product.ID,
			wantErr: false,
		},
		{
			name:    "Non-existing product",
			id:      9999,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			found, err := repo.FindByID(tt.id)

			if tt.wantErr {
				assert.Error(t, err)
				assert.Nil(t, found)
			} else {
				require.NoError(t, err)
				require.NotNil(t, found)
				assert.Equal(t, product.Title, found.Title)
			}
		})
	}
}

func TestProductRepository_FindByID_PreloadsChildrenInOrder(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := createTestProduct(t, repo, "Classic Tee", "classic-tee", model.StatusActive)

	// Media inserted out of rank order
	for _, m := range []model.ProductMedia{
		{ProductID: product.ID, URL: "https://cdn.test/b.jpg", Rank: 2},
		{ProductID: product.ID, URL: "https://cdn.test/a.jpg", Rank: 0},
		{ProductID: product.ID, URL: "https://cdn.test/m.jpg", Rank: 1},
	} {
		media := m
		require.NoError(t, testDB.Create(&media).Error)
	}

	option := model.ProductOption{ProductID: product.ID, Name: "Size"}
	require.NoError(t, testDB.Create(&option).Error)
	require.NoError(t, testDB.Create(&model.ProductOptionValue{OptionID: option.ID, Value: "Small"}).Error)
	require.NoError(t, testDB.Create(&model.ProductOptionValue{OptionID: option.ID, Value: "Large"}).Error)

	found, err := repo.FindByID(product.ID)
	require.NoError(t, err)

	require.Len(t, found.Media, 3)
	assert.Equal(t, 0, found.Media[0].Rank)
	assert.Equal(t, 1, found.Media[1].Rank)
	assert.Equal(t, 2, found.Media[2].Rank)

	require.Len(t, found.Options, 1)
	require.Len(t, found.Options[0].Values, 2)
	assert.Equal(t, "Small", found.Options[0].Values[0].Value)
	assert.Equal(t, "Large", found.Options[0].Values[1].Value)
}

func TestProductRepository_FindWithFilter(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	createTestProduct(t, repo, "Classic Tee", "classic-tee", model.StatusActive)
	createTestProduct(t, repo, "Heavy Hoodie", "heavy-hoodie", model.StatusActive)
	createTestProduct(t, repo, "Draft Jacket", "draft-jacket", model.StatusDraft)

	active := model.StatusActive
	products, total, err := repo.FindWithFilter(ProductFilter{Status: &active})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	assert.Len(t, products, 2)

	// Search matches title substring regardless of status
	products, total, err = repo.FindWithFilter(ProductFilter{Search: "Jacket"})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, "Draft Jacket", products[0].Title)
}

func TestProductRepository_FindWithFilter_CollectionFilter(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	inCollection := createTestProduct(t, repo, "Classic Tee", "classic-tee", model.StatusActive)
	createTestProduct(t, repo, "Heavy Hoodie", "heavy-hoodie", model.StatusActive)

	collection := model.Collection{Title: "Summer", Handle: "summer"}
	require.NoError(t, testDB.Create(&collection).Error)
	require.NoError(t, testDB.Model(inCollection).Association("Collections").Append(&collection))

	products, total, err := repo.FindWithFilter(ProductFilter{CollectionID: &collection.ID})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, products, 1)
	assert.Equal(t, inCollection.ID, products[0].ID)
}

func TestProductRepository_FindWithFilter_SortAndPaging(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	for i, title := range []string{"Banana Shirt", "Apple Shirt", "Cherry Shirt", "Date Shirt"} {
		createTestProduct(t, repo, title, fmt.Sprintf("shirt-%d", i), model.StatusActive)
	}

	products, total, err := repo.FindWithFilter(ProductFilter{
		SortBy:        ProductSortTitle,
		SortAscending: true,
		Limit:         2,
		Offset:        1,
	})
	require.NoError(t, err)
	assert.EqualValues(t, 4, total, "total ignores paging")
	require.Len(t, products, 2)
	assert.Equal(t, "Banana Shirt", products[0].Title)
	assert.Equal(t, "Cherry Shirt", products[1].Title)
}

func TestProductRepository_FindByIDsInBatches(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	var ids []uint
	for i := 0; i < 5; i++ {
		product := createTestProduct(t, repo, fmt.Sprintf("Product %d", i), fmt.Sprintf("product-%d", i), model.StatusActive)
		ids = append(ids, product.ID)
	}

	var batchSizes []int
	var seen []uint
	err := repo.FindByIDsInBatches(ids[:4], 2, func(products []model.Product) error {
		batchSizes = append(batchSizes, len(products))
		for _, p := range products {
			seen = append(seen, p.ID)
		}
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 2}, batchSizes)
	assert.ElementsMatch(t, ids[:4], seen)

	// Empty input never touches the database
	err = repo.FindByIDsInBatches(nil, 2, func(products []model.Product) error {
		t.Fatal("callback must not run for empty input")
		return nil
	})
	assert.NoError(t, err)
}

func TestProductRepository_CountByHandle(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := createTestProduct(t, repo, "Classic Tee", "classic-tee", model.StatusActive)

	count, err := repo.CountByHandle("classic-tee", 0)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)

	// Excluding the owning row frees the handle for that row's own update
	count, err = repo.CountByHandle("classic-tee", product.ID)
	require.NoError(t, err)
	assert.Zero(t, count)

	count, err = repo.CountByHandle("unused-handle", 0)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestProductRepository_Save(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := createTestProduct(t, repo, "Classic Tee", "classic-tee", model.StatusDraft)

	product.Title = "Classic Tee v2"
	product.Status = model.StatusActive
	err := repo.Save(product)
	assert.NoError(t, err)

	updated, err := repo.FindByID(product.ID)
	require.NoError(t, err)
	assert.Equal(t, "Classic Tee v2", updated.Title)
	assert.Equal(t, model.StatusActive, updated.Status)
}

func TestProductRepository_Delete(t *testing.T) {
	testDB, repo := setupProductTest(t)
	defer db.CleanupTestDB(testDB)

	product := createTestProduct(t, repo, "Classic Tee", "classic-tee", model.StatusActive)

	err := repo.Delete(product.ID)
	assert.NoError(t, err)

	// Soft delete hides the row from reads
	_, err = repo.FindByID(product.ID)
	assert.Error(t, err)
}
