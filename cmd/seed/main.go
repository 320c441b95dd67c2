package main

import (
	"database/sql"
	"fmt"
	"log"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"

	"github.com/bankhub/banking-api/config"
	"github.com/bankhub/banking-api/internal/domain/entity"
	"github.com/bankhub/banking-api/pkg/helpers"
)

// Seeds a demo user with one default account per currency (balance 1),
// mirroring what user provisioning does at runtime.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	db, err := sql.Open("pgx", cfg.PostgresDSN())
	if err != nil {
		log.Fatalf("failed to open db: %v", err)
	}
	defer func() { _ = db.Close() }()

	username := "demo"
	password := "password123"
	hash, err := helpers.HashPassword(password)
	if err != nil {
		log.Fatalf("failed to hash password: %v", err)
	}

	var id int64
	err = db.QueryRow(`
		INSERT INTO users (username, password_hash, role)
		VALUES ($1, $2, 'user')
		ON CONFLICT (username) DO UPDATE SET updated_at = now()
		RETURNING id
	`, username, hash).Scan(&id)
	if err != nil {
		log.Fatalf("failed to seed user: %v", err)
	}
	fmt.Printf("seeded user: id=%d username=%s password=%s\n", id, username, password)

	for _, currency := range entity.Currencies() {
		var exists bool
		if err := db.QueryRow(`
			SELECT EXISTS (SELECT 1 FROM accounts WHERE user_id = $1 AND currency = $2)
		`, id, currency).Scan(&exists); err != nil {
			log.Fatalf("failed to check account: %v", err)
		}
		if exists {
			continue
		}
		if _, err := db.Exec(`
			INSERT INTO accounts (user_id, currency, balance)
			VALUES ($1, $2, 1)
		`, id, currency); err != nil {
			log.Fatalf("failed to seed %s account: %v", currency, err)
		}
		fmt.Printf("seeded %s account for user %d\n", currency, id)
	}
}
