package cmd

import (
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
	gormPostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	userModel "github.com/frahmantamala/workflow-approval/internal/core/datamodel/user"
)

var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the database with sample users",
	Long:  `Seed the database with sample users for development and testing purposes.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		sqlDB, err := initDB(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer sqlDB.Close()

		db, err := gorm.Open(gormPostgres.New(gormPostgres.Config{Conn: sqlDB.DB}), &gorm.Config{})
		if err != nil {
			log.Fatalf("failed to init gorm: %v", err)
		}

		if clearData {
			if err := db.Exec("DELETE FROM users").Error; err != nil {
				log.Fatalf("failed to clear users: %v", err)
			}
			fmt.Println("Cleared existing users")
		}

		password := "password"
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cfg.Security.BCryptCost)
		if err != nil {
			log.Fatalf("failed to hash seed password: %v", err)
		}

		seedUsers := []userModel.User{
			{Username: "admin", Email: "admin@company.com", Role: "ADMIN", Department: "IT"},
			{Username: "manager", Email: "manager@company.com", Role: "MANAGER", Department: "Engineering"},
			{Username: "user", Email: "user@company.com", Role: "USER", Department: "Engineering"},
		}

		now := time.Now()
		for _, u := range seedUsers {
			var count int64
			if err := db.Model(&userModel.User{}).Where("username = ?", u.Username).Count(&count).Error; err != nil {
				log.Fatalf("failed to check existing user %s: %v", u.Username, err)
			}
			if count > 0 {
				fmt.Printf("user %s already exists; skipping\n", u.Username)
				continue
			}

			u.ID = uuid.NewString()
			u.PasswordHash = string(hash)
			u.CreatedAt = now
			u.UpdatedAt = now
			if err := db.Create(&u).Error; err != nil {
				log.Fatalf("failed to insert user %s: %v", u.Username, err)
			}
			fmt.Printf("Seeded user %s (%s, %s)\n", u.Username, u.Role, u.Department)
		}

		fmt.Println("Seeding complete")
	},
}
