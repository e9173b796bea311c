package database

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"lifestyle-dashboard/internal/config"
	"lifestyle-dashboard/internal/model"
)

func InitDB(cfg config.Config) *gorm.DB {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case "postgres":
		dsn := "host=" + cfg.DBHost + " user=" + cfg.DBUser + " password=" + cfg.DBPassword +
			" dbname=" + cfg.DBName + " port=" + cfg.DBPort + " sslmode=disable"
		dialector = postgres.Open(dsn)
	default:
		dialector = sqlite.Open(cfg.SQLitePath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		log.Fatal("Failed to connect to the database:", err)
	}

	// Auto-migrate the student records table
	if err := db.AutoMigrate(&model.StudentRecord{}); err != nil {
		log.Fatal("Failed to auto-migrate the database:", err)
	}

	return db
}
