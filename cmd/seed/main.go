package main

import (
	"encoding/json"
	"log"
	"os"

	"trademini-be/internal/model"
	"trademini-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	seedPlans(db)
	seedPromoCodes(db)
	seedAdmin(db)

	color.Green("✅ Seeding completed!")
}

func featureList(features ...string) datatypes.JSON {
	raw, _ := json.Marshal(features)
	return datatypes.JSON(raw)
}

func seedPlans(db *gorm.DB) {
	color.Cyan("Seeding plan catalog...")

	plans := []model.Plan{
		{
			Name: "Starter", Slug: "starter", Price: 9.99, Currency: "USD",
			DurationDays: 30, SortOrder: 1, IsActive: true,
			Features: featureList("Trading signals", "Daily market digest"),
		},
		{
			Name: "Pro", Slug: "pro", Price: 24.99, Currency: "USD",
			DurationDays: 30, SortOrder: 2, IsActive: true,
			Features: featureList("Trading signals", "Daily market digest", "Priority alerts", "Portfolio tracking"),
		},
		{
			Name: "Lifetime", Slug: "lifetime", Price: 299.00, Currency: "USD",
			DurationDays: 0, IsLifetime: true, SortOrder: 3, IsActive: true,
			Features: featureList("Everything in Pro", "Lifetime access", "Early feature access"),
		},
	}

	for _, p := range plans {
		var existing model.Plan
		if err := db.Where("slug = ?", p.Slug).First(&existing).Error; err == nil {
			log.Printf("Plan '%s' already exists, skipping...", p.Slug)
			continue
		}

		if err := db.Create(&p).Error; err != nil {
			color.Red("Error creating plan '%s': %v", p.Slug, err)
		} else {
			log.Printf("Created plan: %s ($%.2f)", p.Name, p.Price)
		}
	}
}

func seedPromoCodes(db *gorm.DB) {
	color.Cyan("Seeding promo codes...")

	promos := []model.PromoCode{
		{Code: "WELCOME10", DiscountType: "percentage", DiscountValue: 10, MaxUses: -1, IsActive: true},
		{Code: "LAUNCH50", DiscountType: "percentage", DiscountValue: 50, MaxUses: 100, IsActive: true},
		{Code: "FLAT5", DiscountType: "fixed", DiscountValue: 5, MaxUses: -1, IsActive: true},
	}

	for _, p := range promos {
		var existing model.PromoCode
		if err := db.Where("code = ?", p.Code).First(&existing).Error; err == nil {
			log.Printf("Promo '%s' already exists, skipping...", p.Code)
			continue
		}

		if err := db.Create(&p).Error; err != nil {
			color.Red("Error creating promo '%s': %v", p.Code, err)
		} else {
			log.Printf("Created promo: %s", p.Code)
		}
	}
}

func seedAdmin(db *gorm.DB) {
	color.Cyan("Seeding admin account...")

	email := os.Getenv("SEED_ADMIN_EMAIL")
	password := os.Getenv("SEED_ADMIN_PASSWORD")
	if email == "" || password == "" {
		color.Yellow("SEED_ADMIN_EMAIL / SEED_ADMIN_PASSWORD not set, skipping admin seed")
		return
	}

	var existing model.User
	if err := db.Where("email = ?", email).First(&existing).Error; err == nil {
		log.Printf("Admin '%s' already exists, skipping...", email)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		color.Red("Error hashing admin password: %v", err)
		return
	}
	hashStr := string(hash)

	admin := model.User{
		Email:        &email,
		FullName:     "Console Admin",
		PasswordHash: &hashStr,
		Role:         "admin",
		Status:       "active",
	}

	if err := db.Create(&admin).Error; err != nil {
		color.Red("Error creating admin: %v", err)
	} else {
		log.Printf("Created admin: %s", email)
	}
}
