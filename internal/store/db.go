// internal/store/db.go
package store

import (
	"fmt"
	"log"
	"strings"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Athycodz/CoMpliment-Walll/internal/config"
	"github.com/Athycodz/CoMpliment-Walll/pkg/models"
)

var db *gorm.DB

// InitDB connects and migrates. DATABASE_URL wins when set (postgres:// or
// sqlite:// prefix, the latter for local dev); otherwise the DSN is assembled
// from the discrete DB_* fields.
func InitDB(cfg *config.Config) {
	var dialector gorm.Dialector

	switch {
	case strings.HasPrefix(cfg.DatabaseURL, "sqlite://"):
		dsn := strings.TrimPrefix(cfg.DatabaseURL, "sqlite://")
		dialector = sqlite.Open(dsn)
		log.Printf("🗄️  Using SQLite database at %s", dsn)
	case cfg.DatabaseURL != "":
		dialector = postgres.Open(cfg.DatabaseURL)
	default:
		dsn := fmt.Sprintf(
			"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
			cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPass, cfg.DBName, cfg.DBSSLMode,
		)
		dialector = postgres.Open(dsn)
	}

	var err error
	db, err = gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		log.Fatalf("❌ Failed to connect to DB: %v", err)
	}

	// Auto-migrate (safe in dev; use migrations in prod)
	err = db.AutoMigrate(&models.User{}, &models.Compliment{}, &models.DeviceToken{})
	if err != nil {
		log.Fatalf("❌ Failed to migrate: %v", err)
	}

	log.Println("✅ Compliment DB connected & migrated")
}

func GetDB() *gorm.DB {
	return db
}
