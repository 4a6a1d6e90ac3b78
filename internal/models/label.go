package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/mailflow/mailflow/internal/utils"
)

// Label is a user-owned tag, attached to emails through EmailLabel rows.
// A label is only visible to and mutable by its owning user.
type Label struct {
	ID     string `gorm:"column:id;type:varchar(50);primaryKey"`
	UserID string `gorm:"column:user_id;type:varchar(50);index;not null"`
	Name   string `gorm:"column:name;type:varchar(255);not null"`
	Color  string `gorm:"column:color;type:varchar(50)"`

	EmailLabels []EmailLabel `gorm:"foreignKey:LabelID"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:current_timestamp"`
}

func (Label) TableName() string {
	return "labels"
}

func (l Label) PrimaryID() string {
	return l.ID
}

func (l *Label) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = utils.GenerateNanoIDWithPrefix("labl", 16)
	}
	l.CreatedAt = utils.Now()
	return nil
}
