package dto

import (
	"github.com/mailflow/mailflow/internal/enum"
	"github.com/mailflow/mailflow/internal/models"
)

type RecipientRequest struct {
	UserID       *string `json:"userId"`
	Name         string  `json:"name"`
	EmailAddress string  `json:"emailAddress" binding:"required"`
	Type         string  `json:"type"`
}

type CreateEmailRequest struct {
	Subject       string             `json:"subject" binding:"required"`
	Body          string             `json:"body"`
	Recipients    []RecipientRequest `json:"recipients" binding:"required,min=1"`
	LabelIDs      []string           `json:"labelIds"`
	AttachmentIDs []string           `json:"attachmentIds"`
}

type CreateReplyRequest struct {
	Body                 string             `json:"body" binding:"required"`
	AdditionalRecipients []RecipientRequest `json:"additionalRecipients"`
	LabelIDs             []string           `json:"labelIds"`
	AttachmentIDs        []string           `json:"attachmentIds"`
}

type CreateForwardRequest struct {
	Recipients        []RecipientRequest `json:"recipients" binding:"required,min=1"`
	AdditionalComment string             `json:"additionalComment"`
	LabelIDs          []string           `json:"labelIds"`
	AttachmentIDs     []string           `json:"attachmentIds"`
}

type MoveToFolderRequest struct {
	FolderName string `json:"folderName" binding:"required"`
}

type Recipient struct {
	ID           string  `json:"id"`
	UserID       *string `json:"userId,omitempty"`
	Name         string  `json:"name"`
	EmailAddress string  `json:"emailAddress"`
	Type         string  `json:"type"`
}

type Email struct {
	ID         string      `json:"id"`
	SenderID   string      `json:"senderId"`
	Subject    string      `json:"subject"`
	Preview    string      `json:"preview"`
	Time       string      `json:"time"`
	Date       string      `json:"date"`
	IsRead     bool        `json:"isRead"`
	IsStarred  bool        `json:"isStarred"`
	FolderID   string      `json:"folderId"`
	Recipients []Recipient `json:"recipients"`
	Labels     []Label     `json:"labels"`
}

type EmailDetails struct {
	Email
	Body        string       `json:"body"`
	ReplyToID   *string      `json:"replyToId,omitempty"`
	ForwardOfID *string      `json:"forwardOfId,omitempty"`
	Attachments []Attachment `json:"attachments"`
}

func RecipientFromModel(r models.Recipient) Recipient {
	return Recipient{
		ID:           r.ID,
		UserID:       r.UserID,
		Name:         r.Name,
		EmailAddress: r.EmailAddress,
		Type:         r.Type.String(),
	}
}

func EmailFromModel(e models.Email) Email {
	recipients := make([]Recipient, 0, len(e.Recipients))
	for _, r := range e.Recipients {
		recipients = append(recipients, RecipientFromModel(r))
	}
	labels := make([]Label, 0, len(e.Labels))
	for _, el := range e.Labels {
		if el.Label != nil {
			labels = append(labels, LabelFromModel(*el.Label))
		}
	}
	return Email{
		ID:         e.ID,
		SenderID:   e.SenderID,
		Subject:    e.Subject,
		Preview:    e.Preview,
		Time:       e.SentAt.Format("15:04"),
		Date:       e.SentAt.Format("2006-01-02"),
		IsRead:     e.IsRead,
		IsStarred:  e.IsStarred,
		FolderID:   e.FolderID,
		Recipients: recipients,
		Labels:     labels,
	}
}

func EmailDetailsFromModel(e models.Email) EmailDetails {
	attachments := make([]Attachment, 0, len(e.Attachments))
	for _, a := range e.Attachments {
		attachments = append(attachments, AttachmentFromModel(a))
	}
	return EmailDetails{
		Email:       EmailFromModel(e),
		Body:        e.Body,
		ReplyToID:   e.ReplyToID,
		ForwardOfID: e.ForwardOfID,
		Attachments: attachments,
	}
}

func (r RecipientRequest) ToModel(emailID string) models.Recipient {
	recipientType := enum.RecipientType(r.Type)
	if !recipientType.IsValid() {
		recipientType = enum.RecipientTypeTo
	}
	return models.Recipient{
		EmailID:      emailID,
		UserID:       r.UserID,
		Name:         r.Name,
		EmailAddress: r.EmailAddress,
		Type:         recipientType,
	}
}
