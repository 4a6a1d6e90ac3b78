package dto

import (
	"time"

	"github.com/mailflow/mailflow/internal/models"
)

type Attachment struct {
	ID          string    `json:"id"`
	Filename    string    `json:"filename"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	UploadedAt  time.Time `json:"uploadedAt"`
}

func AttachmentFromModel(a models.Attachment) Attachment {
	return Attachment{
		ID:          a.ID,
		Filename:    a.Filename,
		ContentType: a.ContentType,
		Size:        a.Size,
		UploadedAt:  a.UploadedAt,
	}
}
