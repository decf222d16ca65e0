package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"blendhouse/internal/auth"
	"blendhouse/internal/config"
	"blendhouse/internal/db"
	"blendhouse/internal/model"
	"blendhouse/internal/repository"
)

// SeedBlendData is the on-disk shape of a catalog entry.
type SeedBlendData struct {
	ID       uint   `json:"id"`
	Name     string `json:"name"`
	Type     string `json:"type"`
	Price    string `json:"price"`
	Stock    int    `json:"stock"`
	ImageURL string `json:"image_url"`
}

func main() {
	blendsPath := flag.String("blends", "seed/blends.json", "path to the blend catalog JSON file")
	flag.Parse()

	log.Println("Starting seed script...")

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	// Connect to database
	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	// Run migrations to ensure schema is up to date
	if err := gormDB.AutoMigrate(&model.User{}, &model.Blend{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	blendRepo := repository.NewBlendRepository(gormDB)

	// Bootstrap an admin account when the user table is empty and credentials
	// were provided.
	if email := os.Getenv("ADMIN_EMAIL"); email != "" {
		created, err := seedAdmin(ctx, userRepo, email, os.Getenv("ADMIN_PASSWORD"))
		if err != nil {
			log.Fatalf("Failed to seed admin: %v", err)
		}
		if created {
			log.Printf("Admin account created: %s", email)
		} else {
			log.Println("Users already present, admin bootstrap skipped")
		}
	}

	// Load blends from file
	log.Printf("Loading blends from: %s", *blendsPath)
	blends, err := loadBlendsFromFile(*blendsPath)
	if err != nil {
		log.Fatalf("Failed to load blends: %v", err)
	}
	log.Printf("Loaded %d blends from file", len(blends))

	// Convert to model.Blend
	modelBlends := make([]model.Blend, 0, len(blends))
	skipped := 0
	for _, item := range blends {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			log.Printf("Skipping blend %q with invalid price: %s", item.Name, item.Price)
			skipped++
			continue
		}

		blend := model.Blend{
			ID:       item.ID,
			Name:     item.Name,
			Type:     item.Type,
			Price:    price,
			Stock:    item.Stock,
			ImageURL: item.ImageURL,
		}
		modelBlends = append(modelBlends, blend)
	}

	if skipped > 0 {
		log.Printf("Skipped %d invalid blends", skipped)
	}

	log.Println("Seeding blends into database...")
	seeded, updated, err := seedBlends(ctx, blendRepo, modelBlends)
	if err != nil {
		log.Fatalf("Failed to seed blends: %v", err)
	}

	log.Printf("Seed completed successfully!")
	log.Printf("  - New blends created: %d", seeded)
	log.Printf("  - Existing blends updated: %d", updated)
	log.Printf("  - Total blends processed: %d", seeded+updated)
}

// seedAdmin creates the first admin account if no users exist yet.
func seedAdmin(ctx context.Context, repo repository.UserRepository, email, password string) (bool, error) {
	if password == "" {
		return false, fmt.Errorf("ADMIN_PASSWORD must be set when ADMIN_EMAIL is")
	}

	count, err := repo.Count(ctx)
	if err != nil {
		return false, fmt.Errorf("count users: %w", err)
	}
	if count > 0 {
		return false, nil
	}

	digest, salt, err := auth.HashPassword(password)
	if err != nil {
		return false, fmt.Errorf("hash password: %w", err)
	}

	admin := &model.User{
		Email:        email,
		PasswordHash: digest,
		PasswordSalt: salt,
		Role:         model.RoleAdmin,
		Active:       true,
	}
	if err := repo.Create(ctx, admin); err != nil {
		return false, fmt.Errorf("create admin: %w", err)
	}
	return true, nil
}

// loadBlendsFromFile reads the catalog seed file.
func loadBlendsFromFile(path string) ([]SeedBlendData, error) {
	body, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read seed file: %w", err)
	}

	var blends []SeedBlendData
	if err := json.Unmarshal(body, &blends); err != nil {
		return nil, fmt.Errorf("failed to parse JSON: %w", err)
	}

	return blends, nil
}

// seedBlends seeds blends into the database, creating new ones or updating existing ones.
func seedBlends(ctx context.Context, repo repository.BlendRepository, blends []model.Blend) (seeded int, updated int, err error) {
	for _, blend := range blends {
		existing, findErr := repo.FindByID(ctx, blend.ID)
		if findErr != nil && findErr != gorm.ErrRecordNotFound {
			return seeded, updated, fmt.Errorf("error checking blend %d: %w", blend.ID, findErr)
		}

		if existing != nil {
			// Update existing blend
			existing.Name = blend.Name
			existing.Type = blend.Type
			existing.Price = blend.Price
			existing.Stock = blend.Stock
			existing.ImageURL = blend.ImageURL
			if err := repo.Update(ctx, existing); err != nil {
				return seeded, updated, fmt.Errorf("error updating blend %d: %w", blend.ID, err)
			}
			updated++
		} else {
			// Create new blend
			if err := repo.Create(ctx, &blend); err != nil {
				return seeded, updated, fmt.Errorf("error creating blend %d: %w", blend.ID, err)
			}
			seeded++
		}
	}

	return seeded, updated, nil
}
