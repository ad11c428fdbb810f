package main

import (
	"fmt"
	"log"

	"github.com/shopspring/decimal"
	"github.com/vendra/vendra-backend/config"
	"github.com/vendra/vendra-backend/internal/app/model"
	"github.com/vendra/vendra-backend/internal/app/repository"
	"github.com/vendra/vendra-backend/internal/app/service"
	"github.com/vendra/vendra-backend/internal/db"
	"github.com/vendra/vendra-backend/pkg/util"
)

// Seeds a demo catalog: taxonomy, collections and a few products with
// options and variants, plus an admin account.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config:", err)
	}

	if err := db.Initialize(&cfg.Database); err != nil {
		log.Fatal("Failed to connect to database:", err)
	}
	defer db.Close()

	if err := db.Migrate(); err != nil {
		log.Fatal("Failed to run migrations:", err)
	}

	fmt.Print("This will insert demo data. Proceed? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Seed cancelled.")
		return
	}

	gormDB := db.GetDB()

	userRepo := repository.NewUserRepository(gormDB)
	productRepo := repository.NewProductRepository(gormDB)
	mediaRepo := repository.NewProductMediaRepository(gormDB)
	optionRepo := repository.NewProductOptionRepository(gormDB)
	variantRepo := repository.NewProductVariantRepository(gormDB)
	collectionRepo := repository.NewCollectionRepository(gormDB)
	taxonomyRepo := repository.NewTaxonomyRepository(gormDB)

	productService := service.NewProductService(
		gormDB, productRepo, mediaRepo, optionRepo, variantRepo, collectionRepo,
		nil, nil, nil,
	)
	collectionService := service.NewCollectionService(collectionRepo)
	taxonomyService := service.NewTaxonomyService(taxonomyRepo)

	// Admin account
	password, err := util.HashPassword("admin1234")
	if err != nil {
		log.Fatal("Failed to hash admin password:", err)
	}
	admin := &model.User{
		Email:     "admin@vendra.dev",
		Password:  password,
		FirstName: "Vendra",
		LastName:  "Admin",
		Role:      model.RoleAdmin,
	}
	if err := userRepo.Create(admin); err != nil {
		log.Println("Skipping admin account:", err)
	} else {
		fmt.Println("Created admin account admin@vendra.dev")
	}

	// Taxonomy
	apparel, err := taxonomyService.CreateCategory("Apparel", nil)
	if err != nil {
		log.Fatal("Failed to create category:", err)
	}
	if _, err := taxonomyService.CreateType("T-Shirt"); err != nil {
		log.Fatal("Failed to create product type:", err)
	}
	vendor, err := taxonomyService.CreateVendor("Acme Apparel Co.")
	if err != nil {
		log.Fatal("Failed to create vendor:", err)
	}

	// Collections
	summer, err := collectionService.CreateCollection("Summer Essentials")
	if err != nil {
		log.Fatal("Failed to create collection:", err)
	}
	newArrivals, err := collectionService.CreateCollection("New Arrivals")
	if err != nil {
		log.Fatal("Failed to create collection:", err)
	}

	// Demo products
	active := model.StatusActive
	for _, seed := range []struct {
		title string
		tags  []string
	}{
		{"Classic Cotton Tee", []string{"cotton", "basics"}},
		{"Heavyweight Hoodie", []string{"fleece", "winter"}},
		{"Linen Camp Shirt", []string{"linen", "summer"}},
	} {
		product, err := productService.CreateProduct(service.ProductCreateInput{
			Title:      seed.title,
			Status:     &active,
			Tags:       seed.tags,
			CategoryID: &apparel.ID,
			VendorID:   &vendor.ID,
		})
		if err != nil {
			log.Fatal("Failed to create product:", err)
		}

		sizeName := "Size"
		colorName := "Color"
		sizes := []string{"S", "M", "L"}
		colors := []string{"Black", "White"}
		options := []service.OptionSyncItem{
			{Name: &sizeName, Values: &sizes},
			{Name: &colorName, Values: &colors},
		}

		price := decimal.NewFromInt(29)
		quantity := 100
		variants := make([]service.VariantSyncItem, 0, len(sizes)*len(colors))
		for _, size := range sizes {
			for _, color := range colors {
				name := fmt.Sprintf("%s / %s", size, color)
				sku := fmt.Sprintf("%s-%s-%s", product.Handle, size, color)
				refs := []service.VariantOptionRef{{Value: size}, {Value: color}}
				variants = append(variants, service.VariantSyncItem{
					Name:     &name,
					Price:    &price,
					Quantity: &quantity,
					SKU:      &sku,
					Options:  &refs,
				})
			}
		}

		collectionIDs := []uint{summer.ID, newArrivals.ID}
		if _, err := productService.UpdateProduct(product.ID, service.ProductUpdateInput{
			Options:       &options,
			Variants:      &variants,
			CollectionIDs: &collectionIDs,
		}); err != nil {
			log.Fatal("Failed to populate product:", err)
		}

		fmt.Printf("Seeded product %q with %d variants\n", product.Title, len(variants))
	}

	fmt.Println("Seed completed.")
}
