package main

import (
	"errors"

	"github.com/trendsight-boutique/internal/config"
	"github.com/trendsight-boutique/internal/logger"
	"github.com/trendsight-boutique/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type seedProduct struct {
	Slug        string
	Name        string
	Description string
	Category    string
	Price       string
	Image       string
	Sizes       []string
	Colors      []string
	Rating      float64
	ReviewCount int
}

var catalog = []seedProduct{
	{
		Slug:        "prod-1",
		Name:        "Scarlet Evening Gown",
		Description: "A breathtaking evening gown in our signature deep scarlet. Perfect for making a statement at any formal event.",
		Category:    "Dresses",
		Price:       "299.99",
		Image:       "/images/dress-1.jpg",
		Sizes:       []string{"XS", "S", "M", "L", "XL"},
		Colors:      []string{"Deep Scarlet", "Midnight Blue"},
		Rating:      4.8,
		ReviewCount: 72,
	},
	{
		Slug:        "prod-2",
		Name:        "Beige Silk Blouse",
		Description: "An effortlessly chic blouse made from 100% pure silk. Its soft beige hue makes it a versatile wardrobe staple.",
		Category:    "Tops",
		Price:       "149.99",
		Image:       "/images/blouse-1.jpg",
		Sizes:       []string{"S", "M", "L"},
		Colors:      []string{"Soft Beige", "Ivory White"},
		Rating:      4.9,
		ReviewCount: 102,
	},
	{
		Slug:        "prod-3",
		Name:        "Classic High-Waisted Trousers",
		Description: "Tailored black high-waisted trousers with a flattering silhouette for both office and evening wear.",
		Category:    "Trousers",
		Price:       "189.99",
		Image:       "/images/trousers-1.jpg",
		Sizes:       []string{"XS", "S", "M", "L", "XL"},
		Colors:      []string{"Classic Black", "Navy"},
		Rating:      4.7,
		ReviewCount: 98,
	},
	{
		Slug:        "prod-4",
		Name:        "Modern Moto Jacket",
		Description: "Supple vegan leather moto jacket with modern details.",
		Category:    "Jackets",
		Price:       "249.99",
		Image:       "/images/jacket-1.jpg",
		Sizes:       []string{"S", "M", "L", "XL"},
		Colors:      []string{"Black", "Burgundy"},
		Rating:      4.8,
		ReviewCount: 85,
	},
	{
		Slug:        "prod-5",
		Name:        "Floral Midi Skirt",
		Description: "A light and flowy midi skirt with a delicate floral pattern.",
		Category:    "Skirts",
		Price:       "129.99",
		Image:       "/images/skirt-1.jpg",
		Sizes:       []string{"XS", "S", "M", "L"},
		Colors:      []string{"Multi-color Floral"},
		Rating:      4.6,
		ReviewCount: 65,
	},
	{
		Slug:        "prod-6",
		Name:        "Gold Statement Necklace",
		Description: "A gold-plated statement necklace.",
		Category:    "Accessories",
		Price:       "89.99",
		Image:       "/images/accessory-1.jpg",
		Sizes:       []string{"One Size"},
		Colors:      []string{"Gold"},
		Rating:      4.9,
		ReviewCount: 120,
	},
	{
		Slug:        "prod-7",
		Name:        "Linen Summer Dress",
		Description: "A breathable linen dress with a relaxed fit for warm summer days.",
		Category:    "Dresses",
		Price:       "159.99",
		Image:       "/images/dress-2.jpg",
		Sizes:       []string{"XS", "S", "M", "L"},
		Colors:      []string{"Natural Linen", "White", "Sky Blue"},
		Rating:      4.7,
		ReviewCount: 88,
	},
	{
		Slug:        "prod-8",
		Name:        "Slim-Fit Denim Jeans",
		Description: "Slim-fit jeans that combine comfort and style.",
		Category:    "Trousers",
		Price:       "179.99",
		Image:       "/images/jeans-1.jpg",
		Sizes:       []string{"26", "27", "28", "29", "30", "31", "32"},
		Colors:      []string{"Vintage Wash", "Dark Indigo"},
		Rating:      4.8,
		ReviewCount: 150,
	},
}

func main() {
	// 连接数据库
	cfg := config.Load()
	logger.Init(cfg.Server.Mode, cfg.Log.ToLoggerOptions())
	stdLog := logger.StdLogger()
	if err := models.InitDB(cfg.Database.Driver, cfg.Database.DSN, models.DBPoolConfig{
		MaxOpenConns:           cfg.Database.Pool.MaxOpenConns,
		MaxIdleConns:           cfg.Database.Pool.MaxIdleConns,
		ConnMaxLifetimeSeconds: cfg.Database.Pool.ConnMaxLifetimeSeconds,
		ConnMaxIdleTimeSeconds: cfg.Database.Pool.ConnMaxIdleTimeSeconds,
	}, false); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(models.DB); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	created := 0
	for i, item := range catalog {
		var existing models.Product
		err := models.DB.Where("slug = ?", item.Slug).First(&existing).Error
		if err == nil {
			stdLog.Printf("Product already exists: %s", item.Slug)
			continue
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			stdLog.Printf("Failed to query product %s: %v", item.Slug, err)
			continue
		}

		product := models.Product{
			Slug:        item.Slug,
			Name:        item.Name,
			Description: item.Description,
			Category:    item.Category,
			PriceAmount: models.NewMoneyFromDecimal(decimal.RequireFromString(item.Price)),
			Image:       item.Image,
			Sizes:       models.StringArray(item.Sizes),
			Colors:      models.StringArray(item.Colors),
			Rating:      item.Rating,
			ReviewCount: item.ReviewCount,
			IsActive:    true,
			SortOrder:   len(catalog) - i,
		}
		if err := models.DB.Create(&product).Error; err != nil {
			stdLog.Printf("Failed to create product %s: %v", item.Slug, err)
			continue
		}
		created++
		stdLog.Printf("Created product: %s", item.Slug)
	}

	stdLog.Printf("Seed completed: %d created, %d total", created, len(catalog))
}
