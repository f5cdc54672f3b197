package main

import (
	"log"

	"github.com/redis/go-redis/v9"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"parastaran.ir/nursesforum/internal/config"
	"parastaran.ir/nursesforum/internal/entity"
	"parastaran.ir/nursesforum/internal/server"
	"parastaran.ir/nursesforum/pkg/database"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load configuration: %v", err)
	}

	db, err := database.Connect(database.Options{
		URL:      cfg.DatabaseURL,
		Host:     cfg.DBHost,
		User:     cfg.DBUser,
		Password: cfg.DBPassword,
		Name:     cfg.DBName,
		Port:     cfg.DBPort,
	})
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	if err := migrate(db); err != nil {
		log.Fatalf("migration failed: %v", err)
	}

	if cfg.AppEnv == "development" {
		if err := seedAdminUser(db); err != nil {
			log.Fatalf("failed to seed admin user: %v", err)
		}
	}

	var redisClient *redis.Client
	if cfg.RedisURL != "" {
		opts, err := redis.ParseURL(cfg.RedisURL)
		if err != nil {
			log.Fatalf("invalid REDIS_URL: %v", err)
		}
		redisClient = redis.NewClient(opts)
	} else {
		log.Println("REDIS_URL not set, rate limiting and realtime notifications disabled")
	}

	srv := server.NewServer(cfg, db, redisClient)
	if err := srv.Run(":" + cfg.Port); err != nil {
		log.Fatalf("server exited with error: %v", err)
	}
}

func migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&entity.User{},
		&entity.NurseProfile{},
		&entity.Category{},
		&entity.Thread{},
		&entity.Comment{},
		&entity.ThreadReaction{},
		&entity.CommentReaction{},
		&entity.ThreadFollow{},
		&entity.CategoryFollow{},
		&entity.UserFollow{},
		&entity.Conversation{},
		&entity.ConversationParticipant{},
		&entity.AnonymousIdentity{},
		&entity.Message{},
		&entity.Shift{},
		&entity.ShiftApplication{},
		&entity.Mentorship{},
		&entity.Event{},
		&entity.EventParticipant{},
		&entity.File{},
		&entity.Attachment{},
		&entity.Folder{},
		&entity.FolderFile{},
		&entity.Notification{},
		&entity.UserReport{},
		&entity.ContentReport{},
		&entity.PolicyUpdate{},
		&entity.EquipmentReview{},
		&entity.Resource{},
		&entity.ResourceTag{},
		&entity.ResourceToTag{},
	)
}

func seedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&entity.User{}).
		Where("email = ?", "admin@parastaran.ir").
		Count(&count).Error; err != nil {
		return err
	}

	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	if err != nil {
		return err
	}

	admin := entity.User{
		Username:     "admin",
		Email:        "admin@parastaran.ir",
		PasswordHash: string(hash),
		Role:         entity.RoleAdmin,
	}

	if err := db.Create(&admin).Error; err != nil {
		return err
	}

	log.Println("admin user seeded (admin@parastaran.ir / admin123)")
	return nil
}
