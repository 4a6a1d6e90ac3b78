package models

import (
	"time"

	"gorm.io/gorm"

	"github.com/mailflow/mailflow/internal/enum"
	"github.com/mailflow/mailflow/internal/utils"
)

// Folder groups emails. The six system folders are seeded at startup and are
// never user-created or deleted.
type Folder struct {
	ID             string `gorm:"column:id;type:varchar(50);primaryKey"`
	Name           string `gorm:"column:name;type:varchar(100);index;not null"`
	IsSystemFolder bool   `gorm:"column:is_system_folder;default:false"`

	Emails []Email `gorm:"foreignKey:FolderID"`

	CreatedAt time.Time `gorm:"column:created_at;type:timestamp;default:current_timestamp"`
}

func (Folder) TableName() string {
	return "folders"
}

func (f Folder) PrimaryID() string {
	return f.ID
}

func (f *Folder) BeforeCreate(tx *gorm.DB) error {
	if f.ID == "" {
		f.ID = utils.GenerateNanoIDWithPrefix("fold", 16)
	}
	f.CreatedAt = utils.Now()
	return nil
}

// SystemFolders builds the reserved folder rows seeded at startup.
func SystemFolders() []Folder {
	names := enum.SystemFolders()
	folders := make([]Folder, 0, len(names))
	for _, name := range names {
		folders = append(folders, Folder{
			Name:           name.String(),
			IsSystemFolder: true,
		})
	}
	return folders
}
