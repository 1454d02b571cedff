package repositories

import (
	"fmt"

	"github.com/rohits-web03/codebox/internal/models"
	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"
)

// ConnectDatabase opens the postgres pool and runs migrations. The caller owns
// the returned handle and releases it with CloseDatabase.
func ConnectDatabase(dsn string, log *zap.Logger) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("connect to database: %w", err)
	}
	// Run migrations
	err = db.AutoMigrate(
		&models.User{},
		&models.ShareRecord{},
		&models.Container{},
		&models.FileEntry{},
	)
	if err != nil {
		_ = CloseDatabase(db)
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	log.Info("Successfully connected to database")
	return db, nil
}

func CloseDatabase(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
