package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/mailflow/mailflow/config"
	"github.com/mailflow/mailflow/internal/models"
)

type Repositories struct {
	EmailRepository      *EmailRepository
	RecipientRepository  *RecipientRepository
	FolderRepository     *FolderRepository
	LabelRepository      *LabelRepository
	EmailLabelRepository *EmailLabelRepository
	AttachmentRepository *AttachmentRepository
}

func InitRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		EmailRepository:      NewEmailRepository(db),
		RecipientRepository:  NewRecipientRepository(db),
		FolderRepository:     NewFolderRepository(db),
		LabelRepository:      NewLabelRepository(db),
		EmailLabelRepository: NewEmailLabelRepository(db),
		AttachmentRepository: NewAttachmentRepository(db),
	}
}

func MigrateDB(dbConfig *config.DatabaseConfig, gormDB *gorm.DB) error {
	db, err := gormDB.DB()
	if err != nil {
		return err
	}

	db.SetMaxOpenConns(5)

	err = gormDB.AutoMigrate(
		&models.Email{},
		&models.Recipient{},
		&models.Folder{},
		&models.Label{},
		&models.EmailLabel{},
		&models.Attachment{},
	)
	if err != nil {
		return err
	}

	db.SetMaxIdleConns(dbConfig.MaxIdleConn)
	db.SetMaxOpenConns(dbConfig.MaxConn)
	db.SetConnMaxLifetime(time.Duration(dbConfig.ConnMaxLifetime) * time.Minute)

	return nil
}

// SeedSystemFolders creates the built-in folders on an empty folders table.
// It is a no-op when any system folder already exists, so re-running
// migrations never duplicates them.
func SeedSystemFolders(ctx context.Context, gormDB *gorm.DB) error {
	var count int64
	if err := gormDB.WithContext(ctx).Model(&models.Folder{}).
		Where("is_system_folder = ?", true).
		Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}
	folders := models.SystemFolders()
	return gormDB.WithContext(ctx).Create(&folders).Error
}
