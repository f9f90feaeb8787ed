package main

import (
	"compress/gzip"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"

	"floralshop/internal/catalog"
	"floralshop/internal/model"

	"github.com/shopspring/decimal"
)

type productRecord struct {
	Kind string `json:"kind"`
	model.Product
}

type userRecord struct {
	Kind string `json:"kind"`
	catalog.SeedUser
}

// generateSampleCatalog writes a seed file with a small flower catalogue and
// three accounts:
//   - admin@example.com / admin123 (admin)
//   - john@example.com  / 123456
//   - jane@example.com  / 123456
func main() {
	dataDir := "data/catalog"

	if err := os.MkdirAll(dataDir, 0755); err != nil {
		log.Fatalf("Failed to create directory: %v", err)
	}

	products := []model.Product{
		product("P001", "red-roses", "Red Roses", "Cut Flowers", "12.50", "Bloom & Co", "red", 25),
		product("P002", "white-lilies", "White Lilies", "Cut Flowers", "30", "Bloom & Co", "white", 8),
		product("P003", "sunflower-bunch", "Sunflower Bunch", "Cut Flowers", "9.99", "Meadow", "yellow", 40),
		product("P004", "tulip-bulbs", "Tulip Bulbs", "Bulbs", "4.20", "Dutch Gardens", "mixed", 0),
		product("P005", "orchid-pot", "Potted Orchid", "Pot Plants", "45", "Greenhouse", "purple", 5),
		product("P006", "bridal-bouquet", "Bridal Bouquet", "Bouquets", "220", "Bloom & Co", "white", 2),
	}

	users := []catalog.SeedUser{
		{Name: "Admin", Email: "admin@example.com", Password: "admin123", IsAdmin: true},
		{Name: "John", Email: "john@example.com", Password: "123456"},
		{Name: "Jane", Email: "jane@example.com", Password: "123456"},
	}

	filePath := filepath.Join(dataDir, "products.jsonl.gz")
	if err := createSeedFile(filePath, products, users); err != nil {
		log.Fatalf("Failed to create %s: %v", filePath, err)
	}

	fmt.Printf("Created %s with %d products and %d users\n", filePath, len(products), len(users))
	fmt.Println("\nLoad it with CATALOG_SEED_ENABLED=true CATALOG_SEED_FILE=" + filePath)
}

func product(id, slug, name, category, price, brand, color string, stock int) model.Product {
	return model.Product{
		ID:           id,
		Slug:         slug,
		Name:         name,
		Category:     category,
		Image:        "/images/" + slug + ".jpg",
		Price:        decimal.RequireFromString(price),
		Brand:        brand,
		Color:        color,
		Description:  name + " delivered fresh.",
		CountInStock: stock,
	}
}

func createSeedFile(filePath string, products []model.Product, users []catalog.SeedUser) error {
	file, err := os.Create(filePath)
	if err != nil {
		return fmt.Errorf("failed to create file: %w", err)
	}
	defer file.Close()

	gzipWriter := gzip.NewWriter(file)
	defer gzipWriter.Close()

	enc := json.NewEncoder(gzipWriter)
	for _, p := range products {
		if err := enc.Encode(productRecord{Kind: catalog.KindProduct, Product: p}); err != nil {
			return fmt.Errorf("failed to write product %s: %w", p.ID, err)
		}
	}
	for _, u := range users {
		if err := enc.Encode(userRecord{Kind: catalog.KindUser, SeedUser: u}); err != nil {
			return fmt.Errorf("failed to write user %s: %w", u.Email, err)
		}
	}

	return nil
}
