package repository

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/internal/db"
	"gorm.io/gorm"
)

func setupOptionTest(t *testing.T) (*gorm.DB, ProductOptionRepository, *model.Product) {
	testDB, err := db.SetupTestDB()
	require.NoError(t, err)

	product := &model.Product{Title: "Classic Tee", Handle: "classic-tee", Status: model.StatusActive}
	require.NoError(t, testDB.Create(product).Error)

	repo := NewProductOptionRepository(testDB)
	return testDB, repo, product
}

func TestProductOptionRepository_CreateValuesBackfillsIDs(t *testing.T) {
	testDB, repo, product := setupOptionTest(t)
	defer db.CleanupTestDB(testDB)

	option := &model.ProductOption{ProductID: product.ID, Name: "Size"}
	require.NoError(t, repo.Create(option))
	require.NotZero(t, option.ID)

	values := []model.ProductOptionValue{
		{OptionID: option.ID, Value: "Small"},
		{OptionID: option.ID, Value: "Large"},
	}
	err := repo.CreateValues(values)
	require.NoError(t, err)
	assert.NotZero(t, values[0].ID)
	assert.NotZero(t, values[1].ID)

	// Empty slice is a no-op
	assert.NoError(t, repo.CreateValues(nil))
}

func TestProductOptionRepository_FindByProductID(t *testing.T) {
	testDB, repo, product := setupOptionTest(t)
	defer db.CleanupTestDB(testDB)

	size := &model.ProductOption{ProductID: product.ID, Name: "Size"}
	color := &model.ProductOption{ProductID: product.ID, Name: "Color"}
	require.NoError(t, repo.Create(size))
	require.NoError(t, repo.Create(color))
	require.NoError(t, repo.CreateValues([]model.ProductOptionValue{
		{OptionID: size.ID, Value: "Small"},
		{OptionID: color.ID, Value: "Red"},
	}))

	options, err := repo.FindByProductID(product.ID)
	require.NoError(t, err)
	require.Len(t, options, 2)
	assert.Equal(t, "Size", options[0].Name)
	assert.Equal(t, "Color", options[1].Name)
	require.Len(t, options[0].Values, 1)
	assert.Equal(t, "Small", options[0].Values[0].Value)
}

func TestProductOptionRepository_FindValuesByProductID(t *testing.T) {
	testDB, repo, product := setupOptionTest(t)
	defer db.CleanupTestDB(testDB)

	other := &model.Product{Title: "Other", Handle: "other", Status: model.StatusActive}
	require.NoError(t, testDB.Create(other).Error)

	size := &model.ProductOption{ProductID: product.ID, Name: "Size"}
	color := &model.ProductOption{ProductID: product.ID, Name: "Color"}
	foreign := &model.ProductOption{ProductID: other.ID, Name: "Material"}
	require.NoError(t, repo.Create(size))
	require.NoError(t, repo.Create(color))
	require.NoError(t, repo.Create(foreign))
	require.NoError(t, repo.CreateValues([]model.ProductOptionValue{
		{OptionID: color.ID, Value: "Red"},
		{OptionID: size.ID, Value: "Small"},
		{OptionID: foreign.ID, Value: "Wool"},
	}))

	values, err := repo.FindValuesByProductID(product.ID)
	require.NoError(t, err)
	require.Len(t, values, 2)
	// Ordered by option, not by insertion
	assert.Equal(t, "Small", values[0].Value)
	assert.Equal(t, "Red", values[1].Value)
}

func TestProductOptionRepository_DeleteByIDsCascadesValues(t *testing.T) {
	testDB, repo, product := setupOptionTest(t)
	defer db.CleanupTestDB(testDB)

	size := &model.ProductOption{ProductID: product.ID, Name: "Size"}
	color := &model.ProductOption{ProductID: product.ID, Name: "Color"}
	require.NoError(t, repo.Create(size))
	require.NoError(t, repo.Create(color))
	require.NoError(t, repo.CreateValues([]model.ProductOptionValue{
		{OptionID: size.ID, Value: "Small"},
		{OptionID: size.ID, Value: "Large"},
		{OptionID: color.ID, Value: "Red"},
	}))

	err := repo.DeleteByIDs([]uint{size.ID})
	require.NoError(t, err)

	options, err := repo.FindByProductID(product.ID)
	require.NoError(t, err)
	require.Len(t, options, 1)
	assert.Equal(t, color.ID, options[0].ID)

	var valueCount int64
	testDB.Model(&model.ProductOptionValue{}).Count(&valueCount)
	assert.EqualValues(t, 1, valueCount)
}

func TestProductOptionRepository_DeleteByProductID(t *testing.T) {
	testDB, repo, product := setupOptionTest(t)
	defer db.CleanupTestDB(testDB)

	size := &model.ProductOption{ProductID: product.ID, Name: "Size"}
	require.NoError(t, repo.Create(size))
	require.NoError(t, repo.CreateValues([]model.ProductOptionValue{
		{OptionID: size.ID, Value: "Small"},
	}))

	err := repo.DeleteByProductID(product.ID)
	require.NoError(t, err)

	options, err := repo.FindByProductID(product.ID)
	require.NoError(t, err)
	assert.Empty(t, options)

	var valueCount int64
	testDB.Model(&model.ProductOptionValue{}).Count(&valueCount)
	assert.Zero(t, valueCount)
}
