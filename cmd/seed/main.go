package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"

	"user-access-service/config"
	"user-access-service/internal/domain/entity"
	"user-access-service/internal/domain/repository"
	pginfra "user-access-service/internal/infrastructure/postgres"
	"user-access-service/internal/principal"
)

// Seeds the protected super-admin account. Safe to run repeatedly: an
// existing account is left untouched.
func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), cfg.DBMaxConns, cfg.DBMinConns, cfg.DBMaxConnLife)
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	username := getenv("SEED_ADMIN_USERNAME", "admin")
	password := getenv("SEED_ADMIN_PASSWORD", "ChangeMe123!")
	email := getenv("SEED_ADMIN_EMAIL", "admin@example.com")

	store := pginfra.NewStore(pool)
	repo, uow := store.NewUnitOfWork()

	if existing, err := repo.FindByUsername(ctx, username); err == nil {
		fmt.Printf("admin already seeded: id=%s username=%s\n", existing.ID, existing.Username)
		return
	} else if !errors.Is(err, repository.ErrNotFound) {
		log.Fatalf("failed to check for existing admin: %v", err)
	}

	user, err := entity.CreateNew("Super", "Admin", username, email, password, entity.RoleAdmin, true, principal.SystemActor)
	if err != nil {
		log.Fatalf("failed to build admin account: %v", err)
	}

	repo.Insert(user)
	if err := uow.Save(ctx); err != nil {
		log.Fatalf("failed to seed admin: %v", err)
	}
	fmt.Printf("seeded admin: id=%s username=%s email=%s\n", user.ID, user.Username, user.Email)
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
