package handlers

import (
	"github.com/mailflow/mailflow/services"
)

type Handlers struct {
	Emails      *EmailsHandler
	Labels      *LabelsHandler
	Attachments *AttachmentsHandler
}

func InitHandlers(s *services.Services) *Handlers {
	return &Handlers{
		Emails:      NewEmailsHandler(s),
		Labels:      NewLabelsHandler(s),
		Attachments: NewAttachmentsHandler(s),
	}
}
