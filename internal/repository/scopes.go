package repository

import (
	"strings"
	"time"

	"gorm.io/gorm"
)

// And composes scopes left to right.
func And(scopes ...Scope) Scope {
	return func(db *gorm.DB) *gorm.DB {
		for _, s := range scopes {
			if s != nil {
				db = s(db)
			}
		}
		return db
	}
}

func ByID(id string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id = ?", id)
	}
}

func ByIDs(ids []string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN ?", ids)
	}
}

func EmailsInFolder(folderID string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("folder_id = ?", folderID)
	}
}

// EmailsVisibleTo keeps emails the user sent or received.
func EmailsVisibleTo(userID string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("sender_id = ? OR id IN (?)", userID,
			db.Session(&gorm.Session{NewDB: true}).
				Table("recipients").
				Select("email_id").
				Where("user_id = ?", userID))
	}
}

// EmailsMatching keeps emails whose subject, body or preview contains the
// term, case-insensitively. An empty term matches everything.
func EmailsMatching(term string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		if term == "" {
			return db
		}
		pattern := "%" + strings.ToLower(term) + "%"
		return db.Where(
			"LOWER(subject) LIKE ? OR LOWER(body) LIKE ? OR LOWER(preview) LIKE ?",
			pattern, pattern, pattern)
	}
}

func UnreadOnly() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_read = ?", false)
	}
}

func StarredOnly() Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("is_starred = ?", true)
	}
}

// FolderNamed matches a folder by name, case-insensitively.
func FolderNamed(name string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("LOWER(name) = ?", strings.ToLower(name))
	}
}

// SystemFolderNamed matches a system folder by exact name.
func SystemFolderNamed(name string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("name = ? AND is_system_folder = ?", name, true)
	}
}

func EmailsWithLabel(labelID string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("id IN (?)",
			db.Session(&gorm.Session{NewDB: true}).
				Table("email_labels").
				Select("email_id").
				Where("label_id = ?", labelID))
	}
}

func RecipientsOfEmail(emailID string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("email_id = ?", emailID)
	}
}

func LabelsOwnedBy(userID string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("user_id = ?", userID)
	}
}

func EmailLabelsOfEmail(emailID string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("email_id = ?", emailID)
	}
}

func EmailLabelsWithLabel(labelID string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("label_id = ?", labelID)
	}
}

func EmailLabelFor(emailID, labelID string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("email_id = ? AND label_id = ?", emailID, labelID)
	}
}

func AttachmentsOfEmail(emailID string) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("email_id = ?", emailID)
	}
}

// TrashedBefore keeps emails last touched before the cutoff. Moving an
// email to trash updates updated_at, so it doubles as the trash entry time.
func TrashedBefore(cutoff time.Time) Scope {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("updated_at < ?", cutoff)
	}
}
