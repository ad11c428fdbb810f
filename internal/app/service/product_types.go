package service

import (
	"context"
	"io"

	"github.com/shopspring/decimal"
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/internal/app/repository"
)

// Payload types for the product orchestrator. Pointer fields distinguish
// "absent" from "zero": a nil child slice pointer leaves that child collection
// completely untouched, a pointer to an empty slice deletes every child of
// that type. Shape validation (required fields, types) happens upstream in the
// controllers; the service only checks referential integrity.

type ProductCreateInput struct {
	Title       string
	Subtitle    string
	Description string
	Status      *model.ProductStatus
	Tags        []string
	Metadata    map[string]interface{}
	CategoryID  *uint
	TypeID      *uint
	VendorID    *uint
}

type ProductUpdateInput struct {
	Title       *string
	Subtitle    *string
	Description *string
	Status      *model.ProductStatus
	Tags        *[]string
	Metadata    map[string]interface{}
	CategoryID  *uint
	TypeID      *uint
	VendorID    *uint

	Media         *[]MediaSyncItem
	Options       *[]OptionSyncItem
	Variants      *[]VariantSyncItem
	CollectionIDs *[]uint
}

// ProductBulkUpdateItem pairs a product ID with its update payload for
// UpdateProducts.
type ProductBulkUpdateItem struct {
	ID uint
	ProductUpdateInput
}

type MediaSyncItem struct {
	ID   *uint
	File *MediaFile
	Rank int
}

type OptionSyncItem struct {
	ID     *uint
	Name   *string
	Values *[]string
}

type VariantOptionRef struct {
	Value string
}

type VariantSyncItem struct {
	ID       *uint
	Name     *string
	Price    *decimal.Decimal
	Quantity *int
	SKU      *string
	Barcode  *string
	Options  *[]VariantOptionRef
}

// SyncResult reports what one synchronizer pass did, in row IDs of the child
// type it operated on.
type SyncResult struct {
	Attached []uint `json:"attached"`
	Detached []uint `json:"detached"`
	Updated  []uint `json:"updated"`
}

// MediaFile is an uploaded file handed to the media synchronizer.
type MediaFile struct {
	Filename    string
	ContentType string
	Size        int64
	Reader      io.Reader
}

// MediaStorage is the file-storage boundary used by the media synchronizer.
// Writes are not transactional with the database.
type MediaStorage interface {
	Store(ctx context.Context, file MediaFile, folder, baseName string) (string, error)
}

// ProductCache is an optional read cache for full product aggregates.
type ProductCache interface {
	GetProduct(id uint) (*model.Product, bool)
	SetProduct(product *model.Product)
	InvalidateProduct(id uint)
}

// CatalogEventPublisher receives change notifications after a catalog write
// commits. Implementations must not block.
type CatalogEventPublisher interface {
	PublishProductEvent(event string, productID uint)
}

type ProductSort string

const (
	ProductSortCreatedAt ProductSort = "created_at"
	ProductSortUpdatedAt ProductSort = "updated_at"
	ProductSortTitle     ProductSort = "title"
)

type ProductListOptions struct {
	Status        *model.ProductStatus
	CategoryID    *uint
	CollectionID  *uint
	Search        string
	Sort          ProductSort
	SortAscending bool
	Limit         int
	Offset        int
}

func (o ProductListOptions) toFilter() repository.ProductFilter {
	filter := repository.ProductFilter{
		Status:        o.Status,
		CategoryID:    o.CategoryID,
		CollectionID:  o.CollectionID,
		Search:        o.Search,
		SortAscending: o.SortAscending,
		Limit:         o.Limit,
		Offset:        o.Offset,
	}
	switch o.Sort {
	case ProductSortTitle:
		filter.SortBy = repository.ProductSortTitle
	case ProductSortUpdatedAt:
		filter.SortBy = repository.ProductSortUpdatedAt
	case ProductSortCreatedAt:
		fallthrough
	default:
		filter.SortBy = repository.ProductSortCreatedAt
	}
	return filter
}
