package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/mailflow/mailflow/internal/utils"
)

// EmailLabel is the association row linking one email and one label.
type EmailLabel struct {
	ID      string `gorm:"column:id;type:varchar(50);primaryKey"`
	EmailID string `gorm:"column:email_id;type:varchar(50);index;not null"`
	LabelID string `gorm:"column:label_id;type:varchar(50);index;not null"`

	Label *Label `gorm:"foreignKey:LabelID"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp"`
}

func (EmailLabel) TableName() string {
	return "email_labels"
}

func (el EmailLabel) PrimaryID() string {
	return el.ID
}

func (el *EmailLabel) BeforeCreate(tx *gorm.DB) error {
	if el.ID == "" {
		el.ID = utils.GenerateNanoIDWithPrefix("elbl", 16)
	}
	el.CreatedAt = utils.Now()
	return nil
}
