package attachments

import (
	"context"
	"fmt"

	"github.com/opentracing/opentracing-go"

	"github.com/mailflow/mailflow/dto"
	"github.com/mailflow/mailflow/internal/logger"
	"github.com/mailflow/mailflow/internal/models"
	"github.com/mailflow/mailflow/internal/repository"
	"github.com/mailflow/mailflow/internal/tracing"
	"github.com/mailflow/mailflow/internal/utils"
	"github.com/mailflow/mailflow/services/storage"
)

const (
	msgAttachmentNotFound = "Attachment not found"
	msgNoAccessPermission = "You do not have permission to access this email"
)

type AttachmentService struct {
	repositories *repository.Repositories
	storage      storage.StorageService
	log          logger.Logger
}

func NewAttachmentService(repositories *repository.Repositories, storageService storage.StorageService, log logger.Logger) *AttachmentService {
	return &AttachmentService{
		repositories: repositories,
		storage:      storageService,
		log:          log,
	}
}

// Upload stores the payload in object storage and records the attachment.
// The attachment stays unlinked until an email send references its ID.
func (s *AttachmentService) Upload(ctx context.Context, filename, contentType string, data []byte) repository.TypedResult[dto.Attachment] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AttachmentService.Upload")
	defer span.Finish()
	tracing.TagComponentService(span)

	key := fmt.Sprintf("attachments/%s/%s", utils.GenerateNanoIDWithPrefix("obj", 16), filename)
	if err := s.storage.Upload(ctx, key, data, contentType); err != nil {
		tracing.TraceErr(span, err)
		return repository.TypedResult[dto.Attachment]{Result: repository.InternalResult(err)}
	}

	attachment := models.Attachment{
		Filename:      filename,
		ContentType:   contentType,
		Size:          int64(len(data)),
		StorageBucket: s.storage.Bucket(),
		StorageKey:    key,
		StoragePath:   s.storage.Bucket() + "/" + key,
		UploadedAt:    utils.Now(),
	}
	if addResult := s.repositories.AttachmentRepository.Add(ctx, &attachment); !addResult.Succeeded {
		return repository.TypedResult[dto.Attachment]{Result: addResult}
	}

	return repository.TypedResult[dto.Attachment]{
		Result: repository.CreatedResult(),
		Data:   dto.AttachmentFromModel(attachment),
	}
}

// Download fetches the payload. Attachments linked to an email are only
// served to users who can see that email.
func (s *AttachmentService) Download(ctx context.Context, attachmentID string) (repository.TypedResult[dto.Attachment], []byte) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AttachmentService.Download")
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagEntity(span, attachmentID)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	attachmentResult := s.repositories.AttachmentRepository.Get(ctx, repository.ByID(attachmentID))
	if !attachmentResult.Succeeded {
		return repository.TypedResult[dto.Attachment]{Result: repository.NotFoundResult(msgAttachmentNotFound)}, nil
	}
	attachment := attachmentResult.Data

	if attachment.EmailID != nil {
		emailResult := s.repositories.EmailRepository.Get(ctx, repository.ByID(*attachment.EmailID), "Recipients")
		if !emailResult.Succeeded {
			return repository.TypedResult[dto.Attachment]{Result: emailResult.Result}, nil
		}
		if !emailResult.Data.VisibleTo(userID) {
			return repository.TypedResult[dto.Attachment]{Result: repository.ForbiddenResult(msgNoAccessPermission)}, nil
		}
	}

	data, err := s.storage.Download(ctx, attachment.StorageKey)
	if err != nil {
		tracing.TraceErr(span, err)
		return repository.TypedResult[dto.Attachment]{Result: repository.InternalResult(err)}, nil
	}

	return repository.TypedResult[dto.Attachment]{
		Result: repository.OkResult(),
		Data:   dto.AttachmentFromModel(*attachment),
	}, data
}

// Delete removes an unlinked attachment and its stored payload.
func (s *AttachmentService) Delete(ctx context.Context, attachmentID string) repository.Result {
	span, ctx := opentracing.StartSpanFromContext(ctx, "AttachmentService.Delete")
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagEntity(span, attachmentID)

	attachmentResult := s.repositories.AttachmentRepository.Get(ctx, repository.ByID(attachmentID))
	if !attachmentResult.Succeeded {
		return repository.NotFoundResult(msgAttachmentNotFound)
	}
	attachment := attachmentResult.Data

	if attachment.EmailID != nil {
		return repository.InvalidResult("Attachment is linked to an email")
	}

	if err := s.storage.Delete(ctx, attachment.StorageKey); err != nil {
		s.log.Errorf("Failed to delete stored payload %s: %v", attachment.StorageKey, err)
	}

	return s.repositories.AttachmentRepository.Delete(ctx, attachment)
}
