package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/mailflow/mailflow/internal/utils"
)

// Email represents a single mail message. An email belongs to exactly one
// folder at all times; soft deletion is a reassignment to the Trash folder.
type Email struct {
	ID       string `gorm:"column:id;type:varchar(50);primaryKey"`
	SenderID string `gorm:"column:sender_id;type:varchar(50);index;not null"`
	Subject  string `gorm:"column:subject;type:varchar(1000);not null"`
	Body     string `gorm:"column:body;type:text;not null"`
	// Preview is derived from Body at creation time and never edited independently
	Preview string `gorm:"column:preview;type:varchar(200);not null"`

	SentAt    time.Time `gorm:"column:sent_at;type:timestamp;index;not null"`
	IsRead    bool      `gorm:"column:is_read;default:false"`
	IsStarred bool      `gorm:"column:is_starred;default:false"`

	FolderID    string  `gorm:"column:folder_id;type:varchar(50);index;not null"`
	ReplyToID   *string `gorm:"column:reply_to_id;type:varchar(50);index"`
	ForwardOfID *string `gorm:"column:forward_of_id;type:varchar(50);index"`

	// Relations, loaded only when explicitly requested through include paths
	Folder      *Folder      `gorm:"foreignKey:FolderID"`
	Recipients  []Recipient  `gorm:"foreignKey:EmailID"`
	Labels      []EmailLabel `gorm:"foreignKey:EmailID"`
	Attachments []Attachment `gorm:"foreignKey:EmailID"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp"`
	UpdatedAt time.Time `gorm:"column:updated_at;type:timestamp;default:current_timestamp"`
}

func (Email) TableName() string {
	return "emails"
}

func (e Email) PrimaryID() string {
	return e.ID
}

func (e *Email) BeforeCreate(tx *gorm.DB) error {
	if e.ID == "" {
		e.ID = utils.GenerateNanoIDWithPrefix("email", 24)
	}
	e.CreatedAt = utils.Now()
	return nil
}

// VisibleTo reports whether a caller may act on this email: the caller is
// the sender, or appears among the recipients' user back-references.
// Recipients must already be loaded.
func (e *Email) VisibleTo(userID string) bool {
	if e.SenderID == userID {
		return true
	}
	for _, r := range e.Recipients {
		if r.UserID != nil && *r.UserID == userID {
			return true
		}
	}
	return false
}
