package main

import (
	"fmt"

	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/config"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/constants"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/logger"
	"github.com/Fid-Arch/Jewellery-Store-sub001/internal/models"

	"github.com/shopspring/decimal"
)

type seedVariant struct {
	sku    string
	specs  models.JSON
	price  string
	stock  int
	weight int
}

type seedProduct struct {
	category    string
	slug        string
	name        string
	description string
	basePrice   string
	tags        []string
	variants    []seedVariant
}

func main() {
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	categories := []models.Category{
		{Slug: "rings", Name: "Rings", Description: "Engagement, wedding and dress rings", SortOrder: 1, IsActive: true},
		{Slug: "necklaces", Name: "Necklaces", Description: "Pendants and chains", SortOrder: 2, IsActive: true},
		{Slug: "earrings", Name: "Earrings", Description: "Studs, hoops and drops", SortOrder: 3, IsActive: true},
		{Slug: "bracelets", Name: "Bracelets", Description: "Bangles and tennis bracelets", SortOrder: 4, IsActive: true},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("slug = ?", cat.Slug).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Slug, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Slug)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Slug)
		}
	}

	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("slug IN ?", []string{"rings", "necklaces", "earrings", "bracelets"}).Find(&categoryList).Error; err != nil {
		stdLog.Fatalf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Slug] = cat.ID
	}

	products := []seedProduct{
		{
			category:    "rings",
			slug:        "aurora-solitaire-ring",
			name:        "Aurora Solitaire Ring",
			description: "Round brilliant solitaire in a four-claw setting.",
			basePrice:   "1299.00",
			tags:        []string{"engagement", "diamond"},
			variants: []seedVariant{
				{sku: "AUR-R-WG-6", specs: models.JSON{"metal": "white gold", "size": "M"}, price: "1299.00", stock: 5, weight: 4},
				{sku: "AUR-R-YG-6", specs: models.JSON{"metal": "yellow gold", "size": "M"}, price: "1299.00", stock: 3, weight: 4},
				{sku: "AUR-R-PT-6", specs: models.JSON{"metal": "platinum", "size": "M"}, price: "1649.00", stock: 2, weight: 5},
			},
		},
		{
			category:    "necklaces",
			slug:        "southern-cross-pendant",
			name:        "Southern Cross Pendant",
			description: "Sterling silver pendant on a 45cm chain.",
			basePrice:   "189.00",
			tags:        []string{"silver", "pendant"},
			variants: []seedVariant{
				{sku: "SCP-N-SS-45", specs: models.JSON{"metal": "sterling silver", "length_cm": 45}, price: "189.00", stock: 20, weight: 8},
				{sku: "SCP-N-YG-45", specs: models.JSON{"metal": "yellow gold", "length_cm": 45}, price: "549.00", stock: 6, weight: 9},
			},
		},
		{
			category:    "earrings",
			slug:        "opal-drop-earrings",
			name:        "Opal Drop Earrings",
			description: "Australian opal drops set in rose gold.",
			basePrice:   "429.00",
			tags:        []string{"opal", "rose gold"},
			variants: []seedVariant{
				{sku: "OPL-E-RG", specs: models.JSON{"metal": "rose gold", "stone": "opal"}, price: "429.00", stock: 8, weight: 3},
			},
		},
		{
			category:    "bracelets",
			slug:        "harbour-tennis-bracelet",
			name:        "Harbour Tennis Bracelet",
			description: "Channel-set cubic zirconia tennis bracelet.",
			basePrice:   "349.00",
			tags:        []string{"tennis", "gift"},
			variants: []seedVariant{
				{sku: "HTB-B-SS-17", specs: models.JSON{"metal": "sterling silver", "length_cm": 17}, price: "349.00", stock: 12, weight: 11},
				{sku: "HTB-B-SS-19", specs: models.JSON{"metal": "sterling silver", "length_cm": 19}, price: "349.00", stock: 9, weight: 12},
			},
		},
	}

	for _, item := range products {
		categoryID, ok := categoryIDs[item.category]
		if !ok {
			stdLog.Printf("Skipping product %s: category %s missing", item.slug, item.category)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("slug = ?", item.slug).First(&existing).Error; err == nil {
			stdLog.Printf("Product already exists: %s", item.slug)
			continue
		}
		basePrice, err := decimal.NewFromString(item.basePrice)
		if err != nil {
			stdLog.Printf("Skipping product %s: bad price %s", item.slug, item.basePrice)
			continue
		}
		product := models.Product{
			CategoryID:  categoryID,
			Slug:        item.slug,
			Name:        item.name,
			Description: item.description,
			Tags:        models.StringArray(item.tags),
			BasePrice:   models.NewMoneyFromDecimal(basePrice),
			IsActive:    true,
		}
		for _, v := range item.variants {
			price, err := decimal.NewFromString(v.price)
			if err != nil {
				stdLog.Printf("Skipping variant %s: bad price %s", v.sku, v.price)
				continue
			}
			product.Variants = append(product.Variants, models.ProductVariant{
				SKU:            v.sku,
				SpecValuesJSON: v.specs,
				Price:          models.NewMoneyFromDecimal(price),
				StockOnHand:    v.stock,
				WeightGrams:    v.weight,
				IsActive:       true,
			})
		}
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", item.slug, err)
			continue
		}
		// Seed stock enters through the ledger like any other stock, so
		// the movement sum matches stock_on_hand from day one.
		for _, variant := range product.Variants {
			if variant.StockOnHand <= 0 {
				continue
			}
			movement := models.StockMovement{
				VariantID:  variant.ID,
				Type:       constants.StockMovementAdjustment,
				Quantity:   variant.StockOnHand,
				StockAfter: variant.StockOnHand,
				Actor:      constants.StockActorSystem,
				Note:       "initial stock",
			}
			if err := models.DB.Create(&movement).Error; err != nil {
				stdLog.Printf("Failed to record initial stock for %s: %v", variant.SKU, err)
			}
		}
		stdLog.Printf("Created product: %s (%d variants)", item.slug, len(product.Variants))
	}

	fmt.Println("Seed complete.")
}
