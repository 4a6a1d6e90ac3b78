package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/mailflow/mailflow/internal/enum"
	"github.com/mailflow/mailflow/internal/utils"
)

// Recipient links an email to one of its addressees. UserID is nil when the
// recipient is not a registered user; it is the back-reference used for
// authorization scoping.
type Recipient struct {
	ID           string             `gorm:"column:id;type:varchar(50);primaryKey"`
	EmailID      string             `gorm:"column:email_id;type:varchar(50);index;not null"`
	UserID       *string            `gorm:"column:user_id;type:varchar(50);index"`
	Name         string             `gorm:"column:name;type:varchar(255);not null"`
	EmailAddress string             `gorm:"column:email_address;type:varchar(255);not null"`
	Type         enum.RecipientType `gorm:"column:type;type:varchar(10);not null"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp"`
}

func (Recipient) TableName() string {
	return "recipients"
}

func (r Recipient) PrimaryID() string {
	return r.ID
}

func (r *Recipient) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = utils.GenerateNanoIDWithPrefix("rcpt", 16)
	}
	r.CreatedAt = utils.Now()
	return nil
}
