package main

import (
	"context"
	"time"

	"github.com/snaki-next/internal/cache"
	"github.com/snaki-next/internal/catalog"
	"github.com/snaki-next/internal/config"
	"github.com/snaki-next/internal/logger"
	"github.com/snaki-next/internal/models"
	"github.com/snaki-next/internal/repository"
	"github.com/snaki-next/internal/service"
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

	// Redis 可选，用于清理商品缓存
	if err := cache.InitRedis(&cfg.Redis); err != nil {
		stdLog.Printf("Redis unavailable, product cache not purged: %v", err)
	}

	productService := service.NewProductService(
		repository.NewProductRepository(models.DB),
		repository.NewCategoryRepository(models.DB),
	)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	categories := catalog.Categories()
	products := catalog.Products()
	if err := productService.SyncCatalog(ctx, categories, products); err != nil {
		stdLog.Fatalf("Failed to seed catalog: %v", err)
	}
	stdLog.Printf("Seeded %d categories and %d products", len(categories), len(products))
}
