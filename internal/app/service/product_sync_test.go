package service

import (
	"errors"
	"strings"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendra/vendra-backend/internal/app/model"
)

// seedOptions attaches Size(Small,Large) and Color(Red,Blue) to the product
// and returns the reloaded aggregate.
func seedOptions(t *testing.T, env *catalogTestEnv, productID uint) *model.Product {
	sizes := []string{"Small", "Large"}
	colors := []string{"Red", "Blue"}
	updated, err := env.svc.UpdateProduct(productID, ProductUpdateInput{
		Options: &[]OptionSyncItem{
			{Name: strPtr("Size"), Values: &sizes},
			{Name: strPtr("Color"), Values: &colors},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Options, 2)
	return updated
}

func optionValues(option model.ProductOption) []string {
	out := make([]string, 0, len(option.Values))
	for _, v := range option.Values {
		out = append(out, v.Value)
	}
	return out
}

func TestSyncOptions_CreateWithValues(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")

	updated := seedOptions(t, env, product.ID)

	assert.Equal(t, "Size", updated.Options[0].Name)
	assert.Equal(t, []string{"Small", "Large"}, optionValues(updated.Options[0]))
	assert.Equal(t, "Color", updated.Options[1].Name)
	assert.Equal(t, []string{"Red", "Blue"}, optionValues(updated.Options[1]))
}

func TestSyncOptions_DuplicateValuesCollapse(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")

	values := []string{"Small", "Small", "Large", "Small"}
	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Options: &[]OptionSyncItem{{Name: strPtr("Size"), Values: &values}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Options, 1)
	assert.Equal(t, []string{"Small", "Large"}, optionValues(updated.Options[0]))
}

func TestSyncOptionValues_IdempotentReapply(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")
	updated := seedOptions(t, env, product.ID)

	sizeOption := updated.Options[0]
	originalIDs := make([]uint, 0, len(sizeOption.Values))
	for _, v := range sizeOption.Values {
		originalIDs = append(originalIDs, v.ID)
	}

	// Reapplying the same value list keeps the same rows
	values := []string{"Small", "Large"}
	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Options: &[]OptionSyncItem{
			{ID: &sizeOption.ID, Values: &values},
			{ID: &updated.Options[1].ID},
		},
	})
	require.NoError(t, err)

	keptIDs := make([]uint, 0, 2)
	for _, v := range updated.Options[0].Values {
		keptIDs = append(keptIDs, v.ID)
	}
	assert.Equal(t, originalIDs, keptIDs)
}

func TestSyncOptionValues_ChangedValueIsDeleteAndCreate(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")
	updated := seedOptions(t, env, product.ID)

	sizeOption := updated.Options[0]
	smallID := sizeOption.Values[0].ID

	values := []string{"Medium", "Large"}
	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Options: &[]OptionSyncItem{
			{ID: &sizeOption.ID, Values: &values},
			{ID: &updated.Options[1].ID},
		},
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{"Medium", "Large"}, optionValues(updated.Options[0]))
	for _, v := range updated.Options[0].Values {
		assert.NotEqual(t, smallID, v.ID, "replaced value must not reuse the old row")
	}
}

func TestSyncOptions_Rename(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")
	updated := seedOptions(t, env, product.ID)

	sizeOption := updated.Options[0]
	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Options: &[]OptionSyncItem{
			{ID: &sizeOption.ID, Name: strPtr("Fit")},
			{ID: &updated.Options[1].ID},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "Fit", updated.Options[0].Name)
	// Values untouched when the payload carries no values list
	assert.Equal(t, []string{"Small", "Large"}, optionValues(updated.Options[0]))
}

func TestSyncOptions_EmptyListDeletesAll(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")
	seedOptions(t, env, product.ID)

	empty := []OptionSyncItem{}
	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Options: &empty,
	})
	require.NoError(t, err)
	assert.Empty(t, updated.Options)

	var valueCount int64
	env.db.Model(&model.ProductOptionValue{}).Count(&valueCount)
	assert.Zero(t, valueCount)
}

func TestSyncOptions_ForeignOptionRejected(t *testing.T) {
	env := newCatalogTestEnv(t)
	mine := env.createProduct(t, "My Tee")
	other := env.createProduct(t, "Other Tee")
	otherLoaded := seedOptions(t, env, other.ID)

	foreignID := otherLoaded.Options[0].ID
	_, err := env.svc.UpdateProduct(mine.ID, ProductUpdateInput{
		Options: &[]OptionSyncItem{{ID: &foreignID, Name: strPtr("Hijack")}},
	})
	assert.ErrorIs(t, err, ErrOptionNotFound)

	// The other product's option is untouched
	reloaded, err := env.svc.GetProduct(other.ID)
	require.NoError(t, err)
	assert.Equal(t, "Size", reloaded.Options[0].Name)
}

func TestSyncVariants_CreateResolvesOptionValues(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")
	seedOptions(t, env, product.ID)

	price := decimal.NewFromFloat(29.50)
	refs := []VariantOptionRef{{Value: "Small"}, {Value: "Red"}}
	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Variants: &[]VariantSyncItem{
			{
				Name:     strPtr("Small / Red"),
				Price:    decPtr(price),
				Quantity: intPtr(10),
				SKU:      strPtr("TEE-S-RED"),
				Options:  &refs,
			},
		},
	})
	require.NoError(t, err)

	require.Len(t, updated.Variants, 1)
	variant := updated.Variants[0]
	assert.Equal(t, "Small / Red", variant.Name)
	assert.True(t, price.Equal(variant.Price))
	assert.Equal(t, 10, variant.Quantity)

	values := make([]string, 0, len(variant.OptionValues))
	for _, v := range variant.OptionValues {
		values = append(values, v.Value)
	}
	assert.ElementsMatch(t, []string{"Small", "Red"}, values)
}

func TestSyncVariants_SameValueStringResolvesToFirstOption(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")

	// Both options define "One Size"; resolution picks the first row
	a := []string{"One Size"}
	b := []string{"One Size"}
	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Options: &[]OptionSyncItem{
			{Name: strPtr("Fit"), Values: &a},
			{Name: strPtr("Cut"), Values: &b},
		},
	})
	require.NoError(t, err)
	firstValueID := updated.Options[0].Values[0].ID

	refs := []VariantOptionRef{{Value: "One Size"}}
	updated, err = env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Variants: &[]VariantSyncItem{{Name: strPtr("Default"), Options: &refs}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Variants, 1)
	require.Len(t, updated.Variants[0].OptionValues, 1)
	assert.Equal(t, firstValueID, updated.Variants[0].OptionValues[0].ID)
}

func TestSyncVariants_UpdateReplacesOptionSelection(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")
	seedOptions(t, env, product.ID)

	refs := []VariantOptionRef{{Value: "Small"}, {Value: "Red"}}
	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Variants: &[]VariantSyncItem{{Name: strPtr("v1"), Options: &refs}},
	})
	require.NoError(t, err)
	variantID := updated.Variants[0].ID

	newRefs := []VariantOptionRef{{Value: "Large"}, {Value: "Blue"}}
	updated, err = env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Variants: &[]VariantSyncItem{{ID: &variantID, Options: &newRefs}},
	})
	require.NoError(t, err)

	values := make([]string, 0, 2)
	for _, v := range updated.Variants[0].OptionValues {
		values = append(values, v.Value)
	}
	assert.ElementsMatch(t, []string{"Large", "Blue"}, values)
}

func TestSyncVariants_ScalarOnlyUpdateKeepsSelection(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")
	seedOptions(t, env, product.ID)

	refs := []VariantOptionRef{{Value: "Small"}}
	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Variants: &[]VariantSyncItem{{Name: strPtr("v1"), Quantity: intPtr(5), Options: &refs}},
	})
	require.NoError(t, err)
	variantID := updated.Variants[0].ID

	updated, err = env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Variants: &[]VariantSyncItem{{ID: &variantID, Quantity: intPtr(42)}},
	})
	require.NoError(t, err)

	variant := updated.Variants[0]
	assert.Equal(t, 42, variant.Quantity)
	assert.Equal(t, "v1", variant.Name)
	require.Len(t, variant.OptionValues, 1)
	assert.Equal(t, "Small", variant.OptionValues[0].Value)
}

func TestSyncVariants_UnresolvedValueRollsBack(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")
	seedOptions(t, env, product.ID)

	good := []VariantOptionRef{{Value: "Small"}}
	bad := []VariantOptionRef{{Value: "XL"}}
	_, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Variants: &[]VariantSyncItem{
			{Name: strPtr("good"), Options: &good},
			{Name: strPtr("bad"), Options: &bad},
		},
	})
	assert.ErrorIs(t, err, ErrOptionValueNotFound)

	// Nothing from the failed payload persisted
	reloaded, err := env.svc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Variants)
}

func TestSyncVariants_CreateWithoutOptionsRejected(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")
	seedOptions(t, env, product.ID)

	_, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Variants: &[]VariantSyncItem{{Name: strPtr("no selection")}},
	})
	assert.ErrorIs(t, err, ErrVariantOptionsRequired)
}

func TestSyncVariants_OptionsAndVariantsInOneCall(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")

	// Variants may reference values created earlier in the same payload
	sizes := []string{"Small", "Large"}
	refs := []VariantOptionRef{{Value: "Large"}}
	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Options:  &[]OptionSyncItem{{Name: strPtr("Size"), Values: &sizes}},
		Variants: &[]VariantSyncItem{{Name: strPtr("Large"), Options: &refs}},
	})
	require.NoError(t, err)

	require.Len(t, updated.Variants, 1)
	require.Len(t, updated.Variants[0].OptionValues, 1)
	assert.Equal(t, "Large", updated.Variants[0].OptionValues[0].Value)
}

func TestSyncMedia_CreateUpdateDelete(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")

	file := func(name string) *MediaFile {
		return &MediaFile{
			Filename:    name,
			ContentType: "image/jpeg",
			Size:        4,
			Reader:      strings.NewReader("data"),
		}
	}

	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Media: &[]MediaSyncItem{
			{File: file("front.jpg"), Rank: 0},
			{File: file("back.jpg"), Rank: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Media, 2)
	assert.Len(t, env.storage.stored, 2)
	assert.Contains(t, updated.Media[0].URL, "products/")

	// Reorder: keep both, swap ranks
	first, second := updated.Media[0], updated.Media[1]
	updated, err = env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Media: &[]MediaSyncItem{
			{ID: &first.ID, Rank: 1},
			{ID: &second.ID, Rank: 0},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Media, 2)
	assert.Equal(t, second.ID, updated.Media[0].ID)
	assert.Len(t, env.storage.stored, 2, "rank updates never touch storage")

	// Drop one: the row goes, the stored object stays for the sweeper
	updated, err = env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Media: &[]MediaSyncItem{{ID: &second.ID, Rank: 0}},
	})
	require.NoError(t, err)
	require.Len(t, updated.Media, 1)
	assert.Equal(t, second.ID, updated.Media[0].ID)
	assert.Len(t, env.storage.stored, 2)
}

func TestSyncMedia_StorageKeysUniqueAcrossCalls(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")

	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Media: &[]MediaSyncItem{
			{File: &MediaFile{Filename: "front.jpg", Reader: strings.NewReader("x")}, Rank: 0},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Media, 1)
	firstID := updated.Media[0].ID

	// A later sync keeping the first item and adding another must not reuse
	// the first item's storage key
	updated, err = env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Media: &[]MediaSyncItem{
			{ID: &firstID, Rank: 0},
			{File: &MediaFile{Filename: "back.jpg", Reader: strings.NewReader("x")}, Rank: 1},
		},
	})
	require.NoError(t, err)
	require.Len(t, updated.Media, 2)
	assert.NotEqual(t, updated.Media[0].URL, updated.Media[1].URL)

	seen := make(map[string]struct{})
	for _, url := range env.storage.stored {
		_, dup := seen[url]
		assert.False(t, dup, "duplicate storage URL %s", url)
		seen[url] = struct{}{}
	}
}

func TestSyncMedia_CreateWithoutFileRejected(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")

	_, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Media: &[]MediaSyncItem{{Rank: 0}},
	})
	assert.ErrorIs(t, err, ErrMediaFileRequired)
}

func TestSyncMedia_StorageFailureRollsBack(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")
	env.storage.failErr = errors.New("bucket unavailable")

	_, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		Subtitle: strPtr("should roll back"),
		Media: &[]MediaSyncItem{
			{File: &MediaFile{Filename: "a.jpg", Reader: strings.NewReader("x")}, Rank: 0},
		},
	})
	assert.ErrorIs(t, err, ErrStorageFailure)

	reloaded, err := env.svc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Media)
	assert.Empty(t, reloaded.Subtitle)
}

func TestSyncMedia_ForeignMediaRejected(t *testing.T) {
	env := newCatalogTestEnv(t)
	mine := env.createProduct(t, "My Tee")
	other := env.createProduct(t, "Other Tee")

	updated, err := env.svc.UpdateProduct(other.ID, ProductUpdateInput{
		Media: &[]MediaSyncItem{
			{File: &MediaFile{Filename: "x.jpg", Reader: strings.NewReader("x")}, Rank: 0},
		},
	})
	require.NoError(t, err)
	foreignID := updated.Media[0].ID

	_, err = env.svc.UpdateProduct(mine.ID, ProductUpdateInput{
		Media: &[]MediaSyncItem{{ID: &foreignID, Rank: 5}},
	})
	assert.ErrorIs(t, err, ErrMediaNotFound)
}

func TestSyncCollections_ReplaceMemberships(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")
	summer := env.createCollection(t, "Summer", "summer")
	sale := env.createCollection(t, "Sale", "sale")
	archiveC := env.createCollection(t, "Archive", "archive")

	ids := []uint{summer.ID, sale.ID}
	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		CollectionIDs: &ids,
	})
	require.NoError(t, err)
	assert.Len(t, updated.Collections, 2)

	// Replacement is total: sale drops off, archive comes on
	ids = []uint{summer.ID, archiveC.ID}
	updated, err = env.svc.UpdateProduct(product.ID, ProductUpdateInput{
		CollectionIDs: &ids,
	})
	require.NoError(t, err)

	got := make([]uint, 0, 2)
	for _, c := range updated.Collections {
		got = append(got, c.ID)
	}
	assert.ElementsMatch(t, []uint{summer.ID, archiveC.ID}, got)
}

func TestSyncCollections_EmptyListDetachesAll(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")
	summer := env.createCollection(t, "Summer", "summer")

	ids := []uint{summer.ID}
	_, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{CollectionIDs: &ids})
	require.NoError(t, err)

	empty := []uint{}
	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{CollectionIDs: &empty})
	require.NoError(t, err)
	assert.Empty(t, updated.Collections)

	// Collection row itself survives detachment
	var count int64
	env.db.Model(&model.Collection{}).Count(&count)
	assert.EqualValues(t, 1, count)
}

func TestSyncCollections_UnknownIDRejected(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")
	summer := env.createCollection(t, "Summer", "summer")

	ids := []uint{summer.ID, 999}
	_, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{CollectionIDs: &ids})
	assert.ErrorIs(t, err, ErrCollectionNotFound)

	reloaded, err := env.svc.GetProduct(product.ID)
	require.NoError(t, err)
	assert.Empty(t, reloaded.Collections)
}

func TestSyncCollections_DuplicateIDsCollapse(t *testing.T) {
	env := newCatalogTestEnv(t)
	product := env.createProduct(t, "Classic Tee")
	summer := env.createCollection(t, "Summer", "summer")

	ids := []uint{summer.ID, summer.ID, summer.ID}
	updated, err := env.svc.UpdateProduct(product.ID, ProductUpdateInput{CollectionIDs: &ids})
	require.NoError(t, err)
	assert.Len(t, updated.Collections, 1)
}
