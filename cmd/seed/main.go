package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"taskvault/config"
	"taskvault/pkg/helpers"
)

// Seeds a demo account with a few tasks for local development.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	email := "demo@taskvault.local"
	password := "password123"
	hasher := helpers.NewPasswordHasher(cfg.BcryptCost)
	hash, err := hasher.Hash(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id string
	err = db.QueryRow(`
		INSERT INTO users (email, password_hash)
		VALUES ($1, $2)
		ON CONFLICT (email) DO UPDATE SET updated_at = now()
		RETURNING id
	`, email, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%s email=%s password=%s\n", id, email, password)

	tasks := []struct {
		title       string
		description string
		completed   bool
	}{
		{"Buy milk", "Semi-skimmed, two liters", false},
		{"Write weekly report", "", true},
		{"Book dentist appointment", "Ask for a morning slot", false},
	}
	for _, t := range tasks {
		if _, err := db.Exec(`
			INSERT INTO tasks (owner_id, title, description, completed)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (owner_id, title) DO NOTHING
		`, id, t.title, t.description, t.completed); err != nil {
			log.Fatalf("failed to seed task %q: %v", t.title, err)
		}
	}
	fmt.Printf("seeded %d tasks for %s\n", len(tasks), email)
}
