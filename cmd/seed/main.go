package main

import (
	"context"
	"log"

	"github.com/shopspring/decimal"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"taskmarket/internal/config"
	"taskmarket/internal/db"
	"taskmarket/internal/model"
	"taskmarket/internal/repository"
)

const (
	demoEmail    = "demo@taskmarket.local"
	demoPassword = "password123"
)

type seedTask struct {
	Title       string
	Description string
	Location    string
	Budget      string
	Date        string
}

var seedTasks = []seedTask{
	{"Assemble flat-pack wardrobe", "Two-door wardrobe, tools provided.", "Berlin", "45.00", "2026-09-12"},
	{"Weekend Gig photographer", "Shoot a two-hour set at a local venue.", "Hamburg", "120.00", "2026-09-19"},
	{"Garden cleanup", "Hedge trimming and leaf removal, small yard.", "Leipzig", "60.00", "2026-09-14"},
	{"Move a sofa across town", "Third floor, no elevator. Van needed.", "Berlin", "80.00", "2026-09-13"},
}

func main() {
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

	user, err := userRepo.FindByEmail(ctx, demoEmail)
	if err == gorm.ErrRecordNotFound {
		hash, herr := bcrypt.GenerateFromPassword([]byte(demoPassword), 10)
		if herr != nil {
			log.Fatalf("Failed to hash demo password: %v", herr)
		}
		user = &model.User{
			FirstName:    "Demo",
			LastName:     "User",
			Email:        demoEmail,
			PasswordHash: string(hash),
		}
		if err := userRepo.Create(ctx, user); err != nil {
			log.Fatalf("Failed to create demo user: %v", err)
		}
		log.Printf("Created demo user %s", demoEmail)
	} else if err != nil {
		log.Fatalf("Failed to look up demo user: %v", err)
	} else {
		log.Printf("Demo user %s already exists", demoEmail)
	}

	created := 0
	for _, item := range seedTasks {
		budget, err := decimal.NewFromString(item.Budget)
		if err != nil {
			log.Printf("Skipping task %q with invalid budget: %s", item.Title, item.Budget)
			continue
		}
		task := &model.Task{
			Title:       item.Title,
			Description: item.Description,
			Location:    item.Location,
			Budget:      budget,
			Date:        item.Date,
			Status:      model.TaskStatusPending,
			UserID:      user.ID,
		}
		if err := taskRepo.Create(ctx, task); err != nil {
			log.Fatalf("Failed to create task %q: %v", item.Title, err)
		}
		created++
	}

	log.Printf("Seed complete: %d tasks created for %s", created, demoEmail)
}
