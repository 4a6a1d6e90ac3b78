package repository

import (
	"gorm.io/gorm"

	"github.com/mailflow/mailflow/internal/models"
)

type FolderRepository struct {
	Repository[models.Folder]
}

func NewFolderRepository(db *gorm.DB) *FolderRepository {
	return &FolderRepository{Repository: NewRepository[models.Folder](db, "FolderRepository")}
}

type RecipientRepository struct {
	Repository[models.Recipient]
}

func NewRecipientRepository(db *gorm.DB) *RecipientRepository {
	return &RecipientRepository{Repository: NewRepository[models.Recipient](db, "RecipientRepository")}
}

type LabelRepository struct {
	Repository[models.Label]
}

func NewLabelRepository(db *gorm.DB) *LabelRepository {
	return &LabelRepository{Repository: NewRepository[models.Label](db, "LabelRepository")}
}

type EmailLabelRepository struct {
	Repository[models.EmailLabel]
}

func NewEmailLabelRepository(db *gorm.DB) *EmailLabelRepository {
	return &EmailLabelRepository{Repository: NewRepository[models.EmailLabel](db, "EmailLabelRepository")}
}

type AttachmentRepository struct {
	Repository[models.Attachment]
}

func NewAttachmentRepository(db *gorm.DB) *AttachmentRepository {
	return &AttachmentRepository{Repository: NewRepository[models.Attachment](db, "AttachmentRepository")}
}
