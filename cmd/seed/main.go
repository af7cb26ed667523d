package main

import (
	"context"
	"flag"
	"log"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskbox/internal/config"
	"taskbox/internal/db"
	"taskbox/internal/model"
	"taskbox/internal/repository"
)

func main() {
	username := flag.String("username", "demo", "username for the seeded user")
	email := flag.String("email", "demo@example.com", "email for the seeded user")
	password := flag.String("password", "password123", "password for the seeded user")
	flag.Parse()

	log.Println("Starting seed script...")

	cfg := config.Load()

	gormDB, err := db.NewMySQL(cfg.MySQLDSN)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	log.Println("Connected to database")

	if err := gormDB.AutoMigrate(&model.User{}, &model.Task{}); err != nil {
		log.Fatalf("Failed to run migrations: %v", err)
	}
	log.Println("Database migrations completed")

	ctx := context.Background()
	userRepo := repository.NewUserRepository(gormDB)
	taskRepo := repository.NewTaskRepository(gormDB)

	if existing, err := userRepo.FindByUsername(ctx, *username); err == nil && existing != nil {
		log.Printf("User %q already exists (%s), nothing to do", *username, existing.ID)
		return
	} else if err != nil && err != gorm.ErrRecordNotFound {
		log.Fatalf("Failed to check existing user: %v", err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(*password), 10)
	if err != nil {
		log.Fatalf("Failed to hash password: %v", err)
	}

	user := &model.User{
		Username:     *username,
		Email:        *email,
		PasswordHash: string(hashed),
	}
	if err := userRepo.Create(ctx, user); err != nil {
		log.Fatalf("Failed to create user: %v", err)
	}
	log.Printf("Created user %q (%s)", user.Username, user.ID)

	for _, content := range []string{"buy groceries", "write weekly report"} {
		task := &model.Task{Content: content, UserID: user.ID}
		if err := taskRepo.Create(ctx, task); err != nil {
			log.Fatalf("Failed to create task: %v", err)
		}
		log.Printf("Created task %q (%s)", task.Content, task.ID)
	}

	log.Println("Seed completed")
}
