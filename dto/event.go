package dto

import "time"

const (
	EventEmailSent    = "email.sent"
	EventEmailTrashed = "email.trashed"
	EventEmailDeleted = "email.deleted"
	EventTrashEmptied = "trash.emptied"
)

// EmailEvent is the message published after a lifecycle change. Count is
// only set for trash.emptied.
type EmailEvent struct {
	Event      string    `json:"event"`
	EmailID    string    `json:"emailId,omitempty"`
	UserID     string    `json:"userId,omitempty"`
	FolderID   string    `json:"folderId,omitempty"`
	Count      int64     `json:"count,omitempty"`
	OccurredAt time.Time `json:"occurredAt"`
}
