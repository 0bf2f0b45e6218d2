// Seed registers a handful of demo users and sample requests, then prints
// api keys for them. Development convenience only.
package main

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/carrylink/carrylink-backend/config"
	"github.com/carrylink/carrylink-backend/internal/auth"
	"github.com/carrylink/carrylink-backend/internal/bootstrap"
	"github.com/carrylink/carrylink-backend/internal/requests"
	"github.com/carrylink/carrylink-backend/internal/storage/postgres"
	"github.com/carrylink/carrylink-backend/internal/users"
)

type seedUser struct {
	name  string
	email string
}

var seedUsers = []seedUser{
	{"Amara Perera", "amara@example.com"},
	{"Nuwan Silva", "nuwan@example.com"},
	{"Ishara Fernando", "ishara@example.com"},
}

func strPtr(s string) *string { return &s }

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	ctx := context.Background()

	sqlDB, err := postgres.NewConnection(&cfg.Database)
	if err != nil {
		log.Fatalf("connect for schema setup: %v", err)
	}
	if err := postgres.EnsureSchema(sqlDB); err != nil {
		log.Fatalf("ensure schema: %v", err)
	}
	_ = sqlDB.Close()

	pool, err := bootstrap.OpenDB(ctx, bootstrap.DBOptions{DSN: postgres.DSN(&cfg.Database)})
	if err != nil {
		log.Fatalf("open db: %v", err)
	}
	defer pool.Close()

	userRepo := users.NewRepo(pool)
	requestRepo := requests.NewRepo(pool)

	var created []*users.User
	for _, su := range seedUsers {
		password, err := auth.GenerateRandomPassword(12)
		if err != nil {
			log.Fatalf("generate password: %v", err)
		}

		hash, err := auth.HashPassword(password, cfg.Auth.BcryptCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}

		u, err := userRepo.Create(ctx, users.NewUser{Email: su.email, Name: su.name, PasswordHash: hash})
		if err != nil {
			if errors.Is(err, users.ErrDuplicateEmail) {
				log.Printf("user %s already exists, skipping", su.email)
				existing, err := userRepo.GetByEmail(ctx, su.email)
				if err != nil {
					log.Fatalf("load existing user: %v", err)
				}
				created = append(created, existing)
				continue
			}
			log.Fatalf("create user %s: %v", su.email, err)
		}

		log.Printf("created user %s (password: %s)", u.Email, password)
		created = append(created, u)
	}

	samples := []requests.CreateInput{
		{
			Title:        "Ayurvedic balm from Colombo",
			Description:  strPtr("Two tins of Siddhalepa balm, any pharmacy near Pettah works"),
			Category:     requests.CategoryMedicine,
			Quantity:     2,
			SourceCity:   "Colombo",
			DeliveryCity: "Kandy",
			DueDate:      time.Now().AddDate(0, 0, 14),
		},
		{
			Title:        "Secondhand GCE A/L physics books",
			Category:     requests.CategoryBooks,
			Quantity:     3,
			SourceCity:   "Galle",
			DeliveryCity: "Jaffna",
			DueDate:      time.Now().AddDate(0, 1, 0),
		},
		{
			Title:        "Spice pack from the Matale market",
			Description:  strPtr("Cinnamon, cardamom and cloves, vacuum packed if possible"),
			Category:     requests.CategoryFood,
			Quantity:     1,
			SourceCity:   "Matale",
			DeliveryCity: "Mumbai",
			DueDate:      time.Now().AddDate(0, 0, 21),
		},
	}

	for i, in := range samples {
		owner := created[i%len(created)]
		req, err := requestRepo.Create(ctx, owner.ID, in)
		if err != nil {
			log.Fatalf("create sample request: %v", err)
		}
		log.Printf("created request %q (%s) for %s", req.Title, req.ID, owner.Email)
	}

	for _, u := range created {
		key, err := auth.EncodeAPIKey(auth.NewAPIKey(u.ID, u.Email, u.Name, 24*time.Hour))
		if err != nil {
			log.Fatalf("encode api key: %v", err)
		}
		log.Printf("api key for %s:\n%s", u.Email, key)
	}
}
