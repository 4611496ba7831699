package main

import (
	"fmt"
	"log"

	"github.com/marketloop/marketloop-backend/config"
	"github.com/marketloop/marketloop-backend/internal/app/model"
	"github.com/marketloop/marketloop-backend/internal/app/repository"
	"github.com/marketloop/marketloop-backend/internal/db"
	"github.com/marketloop/marketloop-backend/pkg/util"
)

// Seeds the database with demo users and listings for local development.
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

	userRepo := repository.NewUserRepository(db.GetDB())
	categoryRepo := repository.NewCategoryRepository(db.GetDB())
	productRepo := repository.NewProductRepository(db.GetDB())

	fmt.Print("This will insert demo users and listings. Proceed? (yes/no): ")
	var confirm string
	fmt.Scanln(&confirm)
	if confirm != "yes" && confirm != "y" {
		fmt.Println("Seed cancelled.")
		return
	}

	users := []struct {
		Email    string
		Username string
		Bio      string
	}{
		{"alice@example.com", "alice", "Clearing out my apartment, everything must go."},
		{"bob@example.com", "bob", "Collector of vintage electronics."},
		{"carol@example.com", "carol", ""},
	}

	var created []model.User
	for _, u := range users {
		if existing, err := userRepo.FindByEmail(u.Email); err == nil {
			fmt.Printf("User %s already exists, skipping\n", u.Email)
			created = append(created, *existing)
			continue
		}

		hash, err := util.HashPassword("password123")
		if err != nil {
			log.Fatal("Failed to hash password:", err)
		}

		user := model.User{
			Email:        u.Email,
			Username:     u.Username,
			PasswordHash: hash,
			Bio:          u.Bio,
		}
		if err := userRepo.Create(&user); err != nil {
			log.Fatal("Failed to create user:", err)
		}
		fmt.Printf("Created user %s (id=%d)\n", user.Email, user.ID)
		created = append(created, user)
	}

	categories, err := categoryRepo.FindAll()
	if err != nil {
		log.Fatal("Failed to load categories:", err)
	}
	if len(categories) == 0 {
		log.Fatal("No categories found; run migrations first")
	}

	titles := []string{
		"Mechanical keyboard, barely used",
		"Mid-century coffee table",
		"Paperback thriller bundle (5 books)",
		"Wireless headphones",
		"Winter jacket, size M",
		"Standing desk frame",
		"Retro game console with two controllers",
		"Ceramic plant pots, set of 3",
	}
	conditions := []string{"new", "like_new", "good", "fair"}
	locations := []string{"Brooklyn, NY", "Austin, TX", "Portland, OR", "Chicago, IL"}

	count := 0
	for i, title := range titles {
		owner := created[i%len(created)]
		category := categories[i%len(categories)]

		product := model.Product{
			OwnerID:     owner.ID,
			Title:       title,
			Description: fmt.Sprintf("Demo listing seeded for local development: %s", title),
			CategoryID:  &category.ID,
			PriceCents:  int64(util.GenerateRandomNumber(500, 25000)),
			Condition:   conditions[util.GenerateRandomNumber(0, len(conditions)-1)],
			Location:    locations[util.GenerateRandomNumber(0, len(locations)-1)],
			Status:      model.ProductStatusActive,
		}
		if err := productRepo.Create(&product); err != nil {
			log.Fatal("Failed to create listing:", err)
		}
		count++
	}

	fmt.Printf("Seed completed: %d users, %d listings\n", len(created), count)
}
