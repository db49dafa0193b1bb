package main

import (
	"fmt"
	"time"

	"github.com/aurora-mall/internal/config"
	"github.com/aurora-mall/internal/constants"
	"github.com/aurora-mall/internal/logger"
	"github.com/aurora-mall/internal/models"
)

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
	}); err != nil {
		stdLog.Fatalf("Failed to connect database: %v", err)
	}

	// 自动迁移
	if err := models.AutoMigrate(); err != nil {
		stdLog.Fatalf("Failed to migrate database: %v", err)
	}

	// 添加分类
	categories := []models.Category{
		{Name: "Electronics", Description: "Audio, wearables and smart devices"},
		{Name: "Clothing", Description: "Apparel for every season"},
		{Name: "Accessories", Description: "Bags, chargers and everyday carry"},
	}

	for _, cat := range categories {
		var existing models.Category
		if err := models.DB.Where("name = ?", cat.Name).First(&existing).Error; err != nil {
			if err := models.DB.Create(&cat).Error; err != nil {
				stdLog.Printf("Failed to create category %s: %v", cat.Name, err)
			} else {
				stdLog.Printf("Created category: %s", cat.Name)
			}
		} else {
			stdLog.Printf("Category already exists: %s", cat.Name)
		}
	}

	// 获取分类ID
	categoryIDs := map[string]uint{}
	var categoryList []models.Category
	if err := models.DB.Where("name IN ?", []string{"Electronics", "Clothing", "Accessories"}).Find(&categoryList).Error; err != nil {
		stdLog.Printf("Failed to load categories: %v", err)
	}
	for _, cat := range categoryList {
		categoryIDs[cat.Name] = cat.ID
	}
	electronicsID := categoryIDs["Electronics"]
	clothingID := categoryIDs["Clothing"]
	accessoriesID := categoryIDs["Accessories"]

	discount69 := models.NewMoneyFromFloat(69.99)
	discount159 := models.NewMoneyFromFloat(159.99)

	// 添加商品
	products := []models.Product{
		{
			CategoryID:    electronicsID,
			Title:         "Wireless Bluetooth Earphones",
			Description:   "High quality sound, long battery life, comfortable to wear",
			Price:         models.NewMoneyFromFloat(99.99),
			DiscountPrice: &discount69,
			Stock:         120,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1590658268037-6bf12165a8df?w=800",
			}),
			Colors:   models.StringArray([]string{"Black", "White"}),
			Featured: true,
			Status:   constants.ProductStatusActive,
		},
		{
			CategoryID:    electronicsID,
			Title:         "Smart Watch",
			Description:   "Health monitoring, fitness tracking, message notifications",
			Price:         models.NewMoneyFromFloat(199.99),
			DiscountPrice: &discount159,
			Stock:         60,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1579586337278-3befd40fd17a?w=800",
			}),
			Colors:   models.StringArray([]string{"Black", "Silver", "Rose Gold"}),
			Featured: true,
			Status:   constants.ProductStatusActive,
		},
		{
			CategoryID:  accessoriesID,
			Title:       "Portable Power Bank",
			Description: "High capacity, fast charging, multi-device compatible",
			Price:       models.NewMoneyFromFloat(49.99),
			Stock:       200,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1609091839311-d5365f9ff1c5?w=800",
			}),
			Status: constants.ProductStatusActive,
		},
		{
			CategoryID:  accessoriesID,
			Title:       "Multi-function Backpack",
			Description: "Large capacity, waterproof and anti-theft, USB charging port",
			Price:       models.NewMoneyFromFloat(79.99),
			Stock:       80,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1553062407-98eeb64c6a62?w=800",
			}),
			Colors: models.StringArray([]string{"Grey", "Navy"}),
			Status: constants.ProductStatusActive,
		},
		{
			CategoryID:  clothingID,
			Title:       "Classic Cotton T-Shirt",
			Description: "Soft combed cotton with a relaxed fit",
			Price:       models.NewMoneyFromFloat(24.99),
			Stock:       300,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1521572163474-6864f9cf17ab?w=800",
			}),
			Colors: models.StringArray([]string{"White", "Black", "Olive"}),
			Sizes:  models.StringArray([]string{"S", "M", "L", "XL"}),
			Status: constants.ProductStatusActive,
		},
		{
			CategoryID:  clothingID,
			Title:       "Water-Resistant Jacket",
			Description: "Lightweight shell for rainy commutes",
			Price:       models.NewMoneyFromFloat(129.99),
			Stock:       45,
			Images: models.StringArray([]string{
				"https://images.unsplash.com/photo-1551028719-00167b16eac5?w=800",
			}),
			Colors:   models.StringArray([]string{"Black", "Forest"}),
			Sizes:    models.StringArray([]string{"M", "L", "XL"}),
			Featured: true,
			Status:   constants.ProductStatusActive,
		},
	}

	for _, prod := range products {
		if prod.CategoryID == 0 {
			stdLog.Printf("Skip product %s: category_id missing", prod.Title)
			continue
		}
		var existing models.Product
		if err := models.DB.Where("title = ?", prod.Title).First(&existing).Error; err != nil {
			if err := models.DB.Create(&prod).Error; err != nil {
				stdLog.Printf("Failed to create product %s: %v", prod.Title, err)
			} else {
				stdLog.Printf("Created product: %s", prod.Title)
			}
		} else {
			existing.CategoryID = prod.CategoryID
			existing.Description = prod.Description
			existing.Price = prod.Price
			existing.DiscountPrice = prod.DiscountPrice
			existing.Stock = prod.Stock
			existing.Images = prod.Images
			existing.Colors = prod.Colors
			existing.Sizes = prod.Sizes
			existing.Featured = prod.Featured
			existing.Status = prod.Status
			if err := models.DB.Save(&existing).Error; err != nil {
				stdLog.Printf("Failed to update product %s: %v", prod.Title, err)
			} else {
				stdLog.Printf("Updated product: %s", prod.Title)
			}
		}
	}

	// 添加演示优惠券
	welcomeExpiry := time.Now().AddDate(0, 3, 0)
	coupons := []models.Coupon{
		{
			Code:        "WELCOME10",
			Type:        constants.CouponTypePercentage,
			Value:       models.NewMoneyFromFloat(10),
			MinAmount:   models.NewMoneyFromFloat(50),
			MaxDiscount: models.NewMoneyFromFloat(30),
			UsageLimit:  1000,
			IsActive:    true,
			ExpiresAt:   &welcomeExpiry,
		},
		{
			Code:      "SHIPFREE5",
			Type:      constants.CouponTypeFixed,
			Value:     models.NewMoneyFromFloat(5),
			MinAmount: models.NewMoneyFromFloat(25),
			IsActive:  true,
		},
	}

	for _, coupon := range coupons {
		var existing models.Coupon
		if err := models.DB.Where("code = ?", coupon.Code).First(&existing).Error; err != nil {
			if err := models.DB.Create(&coupon).Error; err != nil {
				stdLog.Printf("Failed to create coupon %s: %v", coupon.Code, err)
			} else {
				stdLog.Printf("Created coupon: %s", coupon.Code)
			}
		} else {
			stdLog.Printf("Coupon already exists: %s", coupon.Code)
		}
	}

	fmt.Println("\nSeed data created successfully!")
	fmt.Println("Summary:")
	fmt.Println("- 3 Categories")
	fmt.Println("- 6 Products")
	fmt.Println("- 2 Coupons")
}
