// seed inserts two test users and a handful of car listings into the local
// dev database. Run: go run ./cmd/seed
package main

import (
	"context"
	"log"
	"os"

	"github.com/askarbek/carvault/internal/infrastructure/postgres"
	"golang.org/x/crypto/bcrypt"
)

const seedPassword = "Passw0rd!"

type userSpec struct {
	username string
	email    string
}

type carSpec struct {
	owner       string // email of the owning user
	title       string
	tags        []string
	description string
	images      []string
}

var users = []userSpec{
	{"john", "john@test.local"},
	{"maria", "maria@test.local"},
}

var cars = []carSpec{
	{"john@test.local", "Honda Civic 2019", []string{"sedan", "reliable"}, "Single owner, full service history.", []string{}},
	{"john@test.local", "Mazda MX-5", []string{"roadster", "manual"}, "Weekend car, garage kept.", []string{}},
	{"john@test.local", "Toyota Hilux", []string{"pickup", "4x4"}, "Workhorse with a fresh set of tires.", []string{}},
	{"maria@test.local", "VW Golf GTI", []string{"hatchback", "hot-hatch"}, "Stage 1 tune, new clutch.", []string{}},
	{"maria@test.local", "Volvo V60", []string{"wagon", "family"}, "Spacious and safe daily driver.", []string{}},
}

func main() {
	ctx := context.Background()

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	if err := postgres.RunMigrations(ctx, dbURL); err != nil {
		log.Fatalf("migrations: %v", err)
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("hash password: %v", err)
	}

	userIDs := make(map[string]string, len(users))
	for _, u := range users {
		var id string
		err := pool.QueryRow(ctx, `
			INSERT INTO users (username, email, password_hash)
			VALUES ($1, $2, $3)
			ON CONFLICT (email) DO UPDATE SET updated_at = NOW()
			RETURNING id`,
			u.username, u.email, string(hash),
		).Scan(&id)
		if err != nil {
			log.Fatalf("seed user %s: %v", u.email, err)
		}
		userIDs[u.email] = id
		log.Printf("user %s (%s) — password %q", u.username, id, seedPassword)
	}

	inserted := 0
	for _, c := range cars {
		tag, err := pool.Exec(ctx, `
			INSERT INTO cars (user_id, title, tags, description, images)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, title) DO NOTHING`,
			userIDs[c.owner], c.title, c.tags, c.description, c.images,
		)
		if err != nil {
			log.Fatalf("seed car %q: %v", c.title, err)
		}
		inserted += int(tag.RowsAffected())
	}

	log.Printf("seeded %d cars for %d users", inserted, len(users))
}
