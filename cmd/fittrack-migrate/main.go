package main

import (
	"fmt"
	"log"

	"github.com/TusharS004/AI-Fitness-Tracker/internal/config"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/infrastructure/auth"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/infrastructure/database"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/infrastructure/repositories"
	"github.com/TusharS004/AI-Fitness-Tracker/internal/services"
)

// fittrack-migrate prepares a SQL database: it creates the user tables,
// seeds the default route policies and reports what it found.
func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	if cfg.DBDriver == "mongo" {
		log.Fatalf("fittrack-migrate only handles SQL drivers; mongo indexes are created at startup")
	}

	fmt.Printf("Connecting with driver %s\n", cfg.DBDriver)
	db, err := database.Open(cfg.DBDriver, cfg.DSN, cfg.IsProduction())
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("Failed to get underlying sql.DB: %v", err)
	}
	defer sqlDB.Close()

	if err := sqlDB.Ping(); err != nil {
		log.Fatalf("Failed to ping database: %v", err)
	}
	fmt.Println("Database connection ok")

	if err := database.AutoMigrate(db); err != nil {
		log.Fatalf("Failed to run auto-migration: %v", err)
	}
	fmt.Println("AutoMigrate completed")

	cas, err := auth.NewCasbinService(db, cfg.CasbinModelPath)
	if err != nil {
		log.Fatalf("Failed to initialize casbin: %v", err)
	}
	policies := services.NewPolicyService(cas.E, true)
	if err := services.SeedPolicies(policies, auth.DefaultPolicies); err != nil {
		log.Fatalf("Failed to seed policies: %v", err)
	}

	var userCount, activityCount int64
	if err := db.Model(&repositories.DBUser{}).Count(&userCount).Error; err != nil {
		log.Fatalf("Failed to query users table: %v", err)
	}
	if err := db.Model(&repositories.DBActivity{}).Count(&activityCount).Error; err != nil {
		log.Fatalf("Failed to query activities table: %v", err)
	}
	fmt.Printf("Users: %d, activities: %d, policies: %d\n", userCount, activityCount, len(policies.GetPolicies()))
}
