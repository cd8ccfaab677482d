package main

import (
	"context"
	"log"

	"golang.org/x/crypto/bcrypt"

	"prodflow/internal/config"
	"prodflow/internal/database"
	"prodflow/internal/domain"
	"prodflow/internal/repository"
)

type seedUser struct {
	email string
	name  string
	role  domain.UserRole
}

var seedUsers = []seedUser{
	{"designer@prodflow.local", "Dana Designer", domain.RoleDesigner},
	{"chief@prodflow.local", "Marat Chief", domain.RoleManufacturingChief},
	{"purchasing@prodflow.local", "Polina Purchasing", domain.RolePurchasing},
	{"warehouse@prodflow.local", "Wanda Warehouse", domain.RoleWarehouse},
	{"admin@prodflow.local", "Sasha Admin", domain.RoleSuperadmin},
}

const seedPassword = "changeme123"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("database: %v", err)
	}
	if err := database.Migrate(db); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	users := repository.NewUserRepository(db)
	ctx := context.Background()

	hash, err := bcrypt.GenerateFromPassword([]byte(seedPassword), bcrypt.DefaultCost)
	if err != nil {
		log.Fatalf("bcrypt: %v", err)
	}

	for _, su := range seedUsers {
		if _, err := users.GetByEmail(ctx, su.email); err == nil {
			log.Printf("skip %s: already exists", su.email)
			continue
		}

		u := &domain.User{
			Email:        su.email,
			PasswordHash: string(hash),
			Name:         su.name,
			Role:         su.role,
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatalf("create %s: %v", su.email, err)
		}
		log.Printf("created %s (%s)", su.email, su.role)
	}

	log.Printf("seed complete; password for all users: %s", seedPassword)
}
