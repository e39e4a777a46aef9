package main

import (
	"log"

	"github.com/frostlabs-io/avaxboard/internal/config"
	"github.com/frostlabs-io/avaxboard/internal/entity"
	"github.com/frostlabs-io/avaxboard/internal/server"
	"github.com/frostlabs-io/avaxboard/pkg/database"
	"github.com/frostlabs-io/avaxboard/pkg/validator"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ failed to load config: %v", err)
	}

	db := database.Connect()

	if err := db.AutoMigrate(
		&entity.User{},
		&entity.Project{},
		&entity.Vote{},
		&entity.NewsItem{},
	); err != nil {
		log.Fatalf("❌ failed to run migrations: %v", err)
	}
	log.Println("✅ database migrated")

	redisClient := database.ConnectRedis()
	if redisClient == nil {
		log.Println("⚠️ redis disabled, vote cooldown and live feed are off")
	}

	if err := validator.RegisterCustomRules(); err != nil {
		log.Fatalf("❌ failed to register validation rules: %v", err)
	}

	srv := server.NewServer(cfg, db, redisClient)

	log.Printf("🚀 avaxboard listening on :%s", cfg.Port)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("🛑 server stopped: %v", err)
	}
}
