package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"shopify-qr-codes/internal/config"
	"shopify-qr-codes/internal/domain/model"
	pg "shopify-qr-codes/internal/infra/db/postgres"
)

// Applies the schema and, in dev, a few sample QR codes to click through.
func main() {
	cfgPath := flag.String("config", "config.yaml", "path to YAML config file")
	schemaPath := flag.String("schema", "deploy/postgres/init.sql", "path to schema file")
	withSamples := flag.Bool("samples", false, "insert sample qr codes")
	flag.Parse()

	cfg, err := config.LoadConfig(*cfgPath, true)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pg.NewPgxPool(ctx, cfg.Database.URL, 4)
	if err != nil {
		log.Fatalf("postgres: %v", err)
	}
	defer pool.Close()

	schema, err := os.ReadFile(*schemaPath)
	if err != nil {
		log.Fatalf("read schema: %v", err)
	}
	if _, err := pool.Exec(ctx, string(schema)); err != nil {
		log.Fatalf("apply schema: %v", err)
	}
	fmt.Println("schema applied")

	if !*withSamples {
		return
	}

	repo := pg.NewPostgresQRCodeRepo(pool)

	// If records already exist, do nothing
	existing, err := repo.ListByShop(ctx, "dev-shop.myshopify.com")
	if err != nil {
		log.Fatalf("list qr codes: %v", err)
	}
	if len(existing) > 0 {
		fmt.Printf("%d qr codes already present. No changes.\n", len(existing))
		return
	}

	seed := []struct {
		Title     string
		ProductID string
		VariantID string
		Handle    string
	}{
		{"Coffee bag label", "gid://shopify/Product/101", "gid://shopify/ProductVariant/1001", "house-blend"},
		{"Poster reorder", "gid://shopify/Product/102", "gid://shopify/ProductVariant/1002", "gallery-poster"},
	}
	for _, s := range seed {
		qr, err := model.NewQRCode("dev-shop.myshopify.com", s.Title, s.ProductID, s.VariantID, s.Handle)
		if err != nil {
			log.Fatalf("build qr code %q: %v", s.Title, err)
		}
		if err := repo.Create(ctx, qr); err != nil {
			log.Fatalf("create qr code %q: %v", s.Title, err)
		}
		fmt.Printf("seeded: %s (id=%d, handle=%s)\n", qr.Title, qr.ID, qr.Handle)
	}
	fmt.Println("seeding complete")
}
