package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/mailflow/mailflow/internal/utils"
)

// Attachment is a file attached to an email. EmailID is nil between upload
// and the send that links it. Payload bytes live in object storage under
// StorageBucket/StorageKey; StoragePath is the combined reference.
type Attachment struct {
	ID          string  `gorm:"column:id;type:varchar(50);primaryKey"`
	EmailID     *string `gorm:"column:email_id;type:varchar(50);index"`
	Filename    string  `gorm:"column:filename;type:varchar(500);not null"`
	ContentType string  `gorm:"column:content_type;type:varchar(255);not null"`
	Size        int64   `gorm:"column:size;default:0"`

	StorageBucket string `gorm:"column:storage_bucket;type:varchar(255)"`
	StorageKey    string `gorm:"column:storage_key;type:varchar(1000)"`
	StoragePath   string `gorm:"column:storage_path;type:varchar(1000);not null"`

	UploadedAt time.Time `gorm:"column:uploaded_at;type:timestamp;not null"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:current_timestamp"`
}

func (Attachment) TableName() string {
	return "attachments"
}

func (a Attachment) PrimaryID() string {
	return a.ID
}

func (a *Attachment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == "" {
		a.ID = utils.GenerateNanoIDWithPrefix("file", 12)
	}
	a.CreatedAt = utils.Now()
	return nil
}
