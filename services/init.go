package services

import (
	"github.com/mailflow/mailflow/config"
	"github.com/mailflow/mailflow/internal/logger"
	"github.com/mailflow/mailflow/internal/repository"
	"github.com/mailflow/mailflow/services/attachments"
	"github.com/mailflow/mailflow/services/email"
	"github.com/mailflow/mailflow/services/events"
	"github.com/mailflow/mailflow/services/label"
	"github.com/mailflow/mailflow/services/storage"
)

type Services struct {
	Publisher         events.Publisher
	StorageService    storage.StorageService
	EmailService      *email.EmailService
	LabelService      *label.LabelService
	AttachmentService *attachments.AttachmentService
}

func InitServices(cfg *config.Config, log logger.Logger, repos *repository.Repositories) (*Services, error) {
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.AppConfig.RabbitMQURL != "" {
		rabbitPublisher, err := events.NewRabbitMQPublisher(cfg.AppConfig.RabbitMQURL, log, nil)
		if err != nil {
			return nil, err
		}
		publisher = rabbitPublisher
	}

	storageService := storage.NewStorageServiceFromConfig(cfg.StorageConfig)

	services := Services{
		Publisher:         publisher,
		StorageService:    storageService,
		EmailService:      email.NewEmailService(repos, publisher, log),
		LabelService:      label.NewLabelService(repos, log),
		AttachmentService: attachments.NewAttachmentService(repos, storageService, log),
	}

	return &services, nil
}
