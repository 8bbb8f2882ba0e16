// Seeds (or reuses) an admin account and prints a login token for it.
// Expects DATABASE_URL, JWT_SECRET, ADMIN_EMAIL and ADMIN_PASSWORD; the name
// defaults to "Administrator" unless ADMIN_NAME is set.
package main

import (
	"context"
	"errors"
	"log"
	"os"

	"golang.org/x/crypto/bcrypt"

	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/db"
	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/domain"
	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/repository"
	"github.com/bhavishyasinghaniya07/Simple-Task-Management-App/internal/service"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		log.Fatal("DATABASE_URL not set")
	}
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		log.Fatal("ADMIN_EMAIL and ADMIN_PASSWORD must be set")
	}
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}

	pool := db.Connect(dsn)
	defer pool.Close()

	repo := repository.NewUserRepository(pool)
	ctx := context.Background()

	u, err := repo.GetByEmail(ctx, email)
	switch {
	case err == nil:
		log.Printf("admin already exists id=%d", u.ID)
	case errors.Is(err, domain.ErrNotFound):
		hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
		if err != nil {
			log.Fatalf("hash password: %v", err)
		}
		u = &domain.User{
			Name:         name,
			Email:        email,
			Role:         domain.RoleAdmin,
			PasswordHash: string(hash),
		}
		if err := repo.Create(ctx, u); err != nil {
			log.Fatalf("create admin: %v", err)
		}
		log.Printf("admin created id=%d", u.ID)
	default:
		log.Fatalf("lookup admin: %v", err)
	}

	service.InitJWT()
	token, err := service.GenerateJWT(u.ID, u.Role)
	if err != nil {
		log.Fatalf("generate token: %v", err)
	}
	log.Printf("token=%s", token)
}
