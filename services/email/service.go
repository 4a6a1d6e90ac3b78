package email

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"

	"github.com/mailflow/mailflow/dto"
	"github.com/mailflow/mailflow/internal/enum"
	"github.com/mailflow/mailflow/internal/logger"
	"github.com/mailflow/mailflow/internal/models"
	"github.com/mailflow/mailflow/internal/repository"
	"github.com/mailflow/mailflow/internal/tracing"
	"github.com/mailflow/mailflow/internal/utils"
	"github.com/mailflow/mailflow/services/events"
)

const (
	msgSentFolderMissing  = "Could not find Sent folder"
	msgTrashFolderMissing = "Trash folder not found"
	msgNoAccessPermission = "You do not have permission to access this email"
	msgNoMovePermission   = "You don't have permission to move this email."
	msgMovedToTrash       = "Email moved to trash"
	msgPermanentlyDeleted = "Email permanently deleted"
	msgTrashAlreadyEmpty  = "Trash is already empty"
)

type EmailService struct {
	repositories *repository.Repositories
	publisher    events.Publisher
	log          logger.Logger
}

func NewEmailService(repositories *repository.Repositories, publisher events.Publisher, log logger.Logger) *EmailService {
	return &EmailService{
		repositories: repositories,
		publisher:    publisher,
		log:          log,
	}
}

// CreateEmail stores a new outgoing email in the Sent folder together with
// its recipients, label links and attachment links. Nothing is persisted
// when the Sent folder cannot be resolved.
func (s *EmailService) CreateEmail(ctx context.Context, request dto.CreateEmailRequest) repository.TypedResult[dto.EmailDetails] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.CreateEmail")
	defer span.Finish()
	tracing.TagComponentService(span)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	recipients := make([]models.Recipient, 0, len(request.Recipients))
	for _, r := range request.Recipients {
		recipients = append(recipients, r.ToModel(""))
	}

	return s.createOutgoing(ctx, outgoingEmail{
		userID:        userID,
		subject:       request.Subject,
		body:          request.Body,
		recipients:    recipients,
		labelIDs:      request.LabelIDs,
		attachmentIDs: request.AttachmentIDs,
	})
}

// GetEmails lists a user's view of a folder, newest first. Search matches
// subject, body and preview case-insensitively.
func (s *EmailService) GetEmails(ctx context.Context, folderName, search string, unreadOnly bool) repository.ListResult[dto.Email] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.GetEmails")
	defer span.Finish()
	tracing.TagComponentService(span)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	folderResult := s.repositories.FolderRepository.Get(ctx, repository.FolderNamed(folderName))
	if !folderResult.Succeeded {
		return repository.ListResult[dto.Email]{
			Result: repository.NotFoundResult(fmt.Sprintf("Folder '%s' not found", folderName)),
		}
	}
	folder := *folderResult.Data

	filter := repository.And(
		repository.EmailsInFolder(folder.ID),
		repository.EmailsVisibleTo(userID),
		repository.EmailsMatching(search),
	)
	if unreadOnly {
		filter = repository.And(filter, repository.UnreadOnly())
	}

	listResult := s.repositories.EmailRepository.GetAll(ctx, repository.ListOptions{
		FilterBy:   filter,
		SortBy:     "sent_at",
		Descending: true,
		Includes:   []string{"Recipients", "Labels.Label"},
	})
	if !listResult.Succeeded {
		return repository.ListResult[dto.Email]{Result: listResult.Result}
	}

	total, unread, err := s.repositories.EmailRepository.CountInFolder(ctx, folder.ID, userID)
	if err != nil {
		tracing.TraceErr(span, err)
		return repository.ListResult[dto.Email]{Result: repository.InternalResult(err)}
	}

	items := make([]dto.Email, 0, len(listResult.Data))
	for _, e := range listResult.Data {
		items = append(items, dto.EmailFromModel(e))
	}

	return repository.ListResult[dto.Email]{
		Result:       repository.OkResult(),
		Items:        items,
		TotalCount:   total,
		UnreadCount:  unread,
		DisplayCount: repository.DisplayCount(unread),
	}
}

// GetEmailByID returns full email details and marks the email read on its
// first open. The read flip happens at most once.
func (s *EmailService) GetEmailByID(ctx context.Context, emailID string) repository.NavigationResult[dto.EmailDetails] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.GetEmailByID")
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagEntity(span, emailID)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	result := s.repositories.EmailRepository.Get(ctx, repository.ByID(emailID),
		"Recipients", "Labels.Label", "Attachments")
	if !result.Succeeded {
		return repository.NavigationResult[dto.EmailDetails]{Result: result.Result}
	}
	email := result.Data

	if !email.VisibleTo(userID) {
		return repository.NavigationResult[dto.EmailDetails]{
			Result: repository.ForbiddenResult(msgNoAccessPermission),
		}
	}

	if !email.IsRead {
		email.IsRead = true
		if updateResult := s.repositories.EmailRepository.Update(ctx, email); !updateResult.Succeeded {
			return repository.NavigationResult[dto.EmailDetails]{Result: updateResult}
		}
	}

	return repository.NavigationResult[dto.EmailDetails]{
		Result: repository.OkResult(),
		Data:   dto.EmailDetailsFromModel(*email),
	}
}

// SoftDeleteEmail moves an email to the Trash folder.
func (s *EmailService) SoftDeleteEmail(ctx context.Context, emailID string) repository.Result {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.SoftDeleteEmail")
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagEntity(span, emailID)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	result := s.repositories.EmailRepository.Get(ctx, repository.ByID(emailID), "Recipients")
	if !result.Succeeded {
		return result.Result
	}
	email := result.Data

	if !email.VisibleTo(userID) {
		return repository.ForbiddenResult(msgNoMovePermission)
	}

	trashResult := s.repositories.FolderRepository.Get(ctx,
		repository.SystemFolderNamed(enum.FolderTrash.String()))
	if !trashResult.Succeeded {
		return repository.InternalResult(errors.New(msgTrashFolderMissing))
	}

	email.FolderID = trashResult.Data.ID
	if updateResult := s.repositories.EmailRepository.Update(ctx, email); !updateResult.Succeeded {
		return updateResult
	}

	s.publishEvent(ctx, dto.EmailEvent{
		Event:    dto.EventEmailTrashed,
		EmailID:  email.ID,
		UserID:   userID,
		FolderID: email.FolderID,
	})

	return repository.OkMessageResult(msgMovedToTrash)
}

// HardDeleteEmail removes an email and its dependent rows permanently.
func (s *EmailService) HardDeleteEmail(ctx context.Context, emailID string) repository.Result {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.HardDeleteEmail")
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagEntity(span, emailID)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	result := s.repositories.EmailRepository.Get(ctx, repository.ByID(emailID), "Recipients")
	if !result.Succeeded {
		return result.Result
	}
	email := result.Data

	if !email.VisibleTo(userID) {
		return repository.ForbiddenResult(msgNoAccessPermission)
	}

	if deleteResult := s.deleteEmailCascade(ctx, email); !deleteResult.Succeeded {
		return deleteResult
	}

	s.publishEvent(ctx, dto.EmailEvent{
		Event:   dto.EventEmailDeleted,
		EmailID: email.ID,
		UserID:  userID,
	})

	return repository.OkMessageResult(msgPermanentlyDeleted)
}

// EmptyTrash permanently deletes every trashed email the user can see.
func (s *EmailService) EmptyTrash(ctx context.Context) repository.CountResult {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.EmptyTrash")
	defer span.Finish()
	tracing.TagComponentService(span)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	trashResult := s.repositories.FolderRepository.Get(ctx,
		repository.SystemFolderNamed(enum.FolderTrash.String()))
	if !trashResult.Succeeded {
		return repository.CountResult{Result: repository.InternalResult(errors.New(msgTrashFolderMissing))}
	}

	listResult := s.repositories.EmailRepository.GetAll(ctx, repository.ListOptions{
		FilterBy: repository.And(
			repository.EmailsInFolder(trashResult.Data.ID),
			repository.EmailsVisibleTo(userID),
		),
	})
	if !listResult.Succeeded {
		return repository.CountResult{Result: listResult.Result}
	}
	if len(listResult.Data) == 0 {
		return repository.CountResult{Result: repository.OkMessageResult(msgTrashAlreadyEmpty)}
	}

	for i := range listResult.Data {
		if deleteResult := s.deleteEmailCascade(ctx, &listResult.Data[i]); !deleteResult.Succeeded {
			return repository.CountResult{Result: deleteResult}
		}
	}

	count := int64(len(listResult.Data))
	s.publishEvent(ctx, dto.EmailEvent{
		Event:  dto.EventTrashEmptied,
		UserID: userID,
		Count:  count,
	})

	return repository.CountResult{
		Result: repository.OkMessageResult(fmt.Sprintf("%d emails permanently deleted", count)),
		Count:  count,
	}
}

// MarkAsRead flips the read flag on. Marking an already-read email is a
// no-op success.
func (s *EmailService) MarkAsRead(ctx context.Context, emailID string) repository.Result {
	return s.setReadFlag(ctx, "EmailService.MarkAsRead", emailID, true)
}

// MarkAsUnread flips the read flag off.
func (s *EmailService) MarkAsUnread(ctx context.Context, emailID string) repository.Result {
	return s.setReadFlag(ctx, "EmailService.MarkAsUnread", emailID, false)
}

func (s *EmailService) setReadFlag(ctx context.Context, operation, emailID string, read bool) repository.Result {
	span, ctx := opentracing.StartSpanFromContext(ctx, operation)
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagEntity(span, emailID)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	result := s.repositories.EmailRepository.Get(ctx, repository.ByID(emailID), "Recipients")
	if !result.Succeeded {
		return result.Result
	}
	email := result.Data

	if !email.VisibleTo(userID) {
		return repository.ForbiddenResult(msgNoAccessPermission)
	}

	if email.IsRead == read {
		return repository.OkResult()
	}

	email.IsRead = read
	return s.repositories.EmailRepository.Update(ctx, email)
}

// GetUnreadCount returns the unread badge count for a folder.
func (s *EmailService) GetUnreadCount(ctx context.Context, folderName string) repository.CountResult {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.GetUnreadCount")
	defer span.Finish()
	tracing.TagComponentService(span)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	folderResult := s.repositories.FolderRepository.Get(ctx, repository.FolderNamed(folderName))
	if !folderResult.Succeeded {
		return repository.CountResult{
			Result: repository.NotFoundResult(fmt.Sprintf("Folder '%s' not found", folderName)),
		}
	}

	return s.repositories.EmailRepository.Count(ctx, repository.And(
		repository.EmailsInFolder(folderResult.Data.ID),
		repository.EmailsVisibleTo(userID),
		repository.UnreadOnly(),
	))
}

// Reply creates a new outgoing email linked to the original through
// ReplyToID. The original sender becomes the primary recipient.
func (s *EmailService) Reply(ctx context.Context, emailID string, request dto.CreateReplyRequest) repository.TypedResult[dto.EmailDetails] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.Reply")
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagEntity(span, emailID)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	result := s.repositories.EmailRepository.Get(ctx, repository.ByID(emailID), "Recipients")
	if !result.Succeeded {
		return repository.TypedResult[dto.EmailDetails]{Result: result.Result}
	}
	original := result.Data

	if !original.VisibleTo(userID) {
		return repository.TypedResult[dto.EmailDetails]{
			Result: repository.ForbiddenResult(msgNoAccessPermission),
		}
	}

	recipients := []models.Recipient{{
		UserID: utils.Ptr(original.SenderID),
		Type:   enum.RecipientTypeTo,
	}}
	for _, r := range request.AdditionalRecipients {
		recipients = append(recipients, r.ToModel(""))
	}

	return s.createOutgoing(ctx, outgoingEmail{
		userID:        userID,
		subject:       prefixSubject("Re: ", original.Subject),
		body:          request.Body,
		recipients:    recipients,
		labelIDs:      request.LabelIDs,
		attachmentIDs: request.AttachmentIDs,
		replyToID:     utils.Ptr(original.ID),
	})
}

// Forward creates a new outgoing email linked to the original through
// ForwardOfID, with the original body quoted below the comment.
func (s *EmailService) Forward(ctx context.Context, emailID string, request dto.CreateForwardRequest) repository.TypedResult[dto.EmailDetails] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.Forward")
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagEntity(span, emailID)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	result := s.repositories.EmailRepository.Get(ctx, repository.ByID(emailID), "Recipients")
	if !result.Succeeded {
		return repository.TypedResult[dto.EmailDetails]{Result: result.Result}
	}
	original := result.Data

	if !original.VisibleTo(userID) {
		return repository.TypedResult[dto.EmailDetails]{
			Result: repository.ForbiddenResult(msgNoAccessPermission),
		}
	}

	recipients := make([]models.Recipient, 0, len(request.Recipients))
	for _, r := range request.Recipients {
		recipients = append(recipients, r.ToModel(""))
	}

	body := original.Body
	if request.AdditionalComment != "" {
		body = request.AdditionalComment + "\n\n---------- Forwarded message ----------\n" + original.Body
	}

	return s.createOutgoing(ctx, outgoingEmail{
		userID:        userID,
		subject:       prefixSubject("Fwd: ", original.Subject),
		body:          body,
		recipients:    recipients,
		labelIDs:      request.LabelIDs,
		attachmentIDs: request.AttachmentIDs,
		forwardOfID:   utils.Ptr(original.ID),
	})
}

// MoveToFolder relocates an email into the named folder.
func (s *EmailService) MoveToFolder(ctx context.Context, emailID, folderName string) repository.Result {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.MoveToFolder")
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagEntity(span, emailID)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	result := s.repositories.EmailRepository.Get(ctx, repository.ByID(emailID), "Recipients")
	if !result.Succeeded {
		return result.Result
	}
	email := result.Data

	if !email.VisibleTo(userID) {
		return repository.ForbiddenResult(msgNoMovePermission)
	}

	folderResult := s.repositories.FolderRepository.Get(ctx, repository.FolderNamed(folderName))
	if !folderResult.Succeeded {
		return repository.NotFoundResult(fmt.Sprintf("Folder '%s' not found", folderName))
	}

	email.FolderID = folderResult.Data.ID
	return s.repositories.EmailRepository.Update(ctx, email)
}

// StarEmail flags an email as starred. Starring is independent of folders.
func (s *EmailService) StarEmail(ctx context.Context, emailID string) repository.Result {
	return s.setStarFlag(ctx, "EmailService.StarEmail", emailID, true)
}

// UnstarEmail clears the starred flag.
func (s *EmailService) UnstarEmail(ctx context.Context, emailID string) repository.Result {
	return s.setStarFlag(ctx, "EmailService.UnstarEmail", emailID, false)
}

func (s *EmailService) setStarFlag(ctx context.Context, operation, emailID string, starred bool) repository.Result {
	span, ctx := opentracing.StartSpanFromContext(ctx, operation)
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagEntity(span, emailID)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	result := s.repositories.EmailRepository.Get(ctx, repository.ByID(emailID), "Recipients")
	if !result.Succeeded {
		return result.Result
	}
	email := result.Data

	if !email.VisibleTo(userID) {
		return repository.ForbiddenResult(msgNoAccessPermission)
	}

	if email.IsStarred == starred {
		return repository.OkResult()
	}

	email.IsStarred = starred
	return s.repositories.EmailRepository.Update(ctx, email)
}

// GetStarredEmails lists the user's starred emails across all folders.
func (s *EmailService) GetStarredEmails(ctx context.Context) repository.ListResult[dto.Email] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.GetStarredEmails")
	defer span.Finish()
	tracing.TagComponentService(span)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	listResult := s.repositories.EmailRepository.GetAll(ctx, repository.ListOptions{
		FilterBy: repository.And(
			repository.EmailsVisibleTo(userID),
			repository.StarredOnly(),
		),
		SortBy:     "sent_at",
		Descending: true,
		Includes:   []string{"Recipients", "Labels.Label"},
	})
	if !listResult.Succeeded {
		return repository.ListResult[dto.Email]{Result: listResult.Result}
	}

	items := make([]dto.Email, 0, len(listResult.Data))
	for _, e := range listResult.Data {
		items = append(items, dto.EmailFromModel(e))
	}

	return repository.ListResult[dto.Email]{
		Result:     repository.OkResult(),
		Items:      items,
		TotalCount: int64(len(items)),
	}
}

// PurgeTrashedBefore hard-deletes trashed emails last touched before the
// cutoff, regardless of owner. Used by the retention job.
func (s *EmailService) PurgeTrashedBefore(ctx context.Context, cutoff time.Time) repository.CountResult {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.PurgeTrashedBefore")
	defer span.Finish()
	tracing.TagComponentService(span)

	trashResult := s.repositories.FolderRepository.Get(ctx,
		repository.SystemFolderNamed(enum.FolderTrash.String()))
	if !trashResult.Succeeded {
		return repository.CountResult{Result: repository.InternalResult(errors.New(msgTrashFolderMissing))}
	}

	listResult := s.repositories.EmailRepository.GetAll(ctx, repository.ListOptions{
		FilterBy: repository.And(
			repository.EmailsInFolder(trashResult.Data.ID),
			repository.TrashedBefore(cutoff),
		),
	})
	if !listResult.Succeeded {
		return repository.CountResult{Result: listResult.Result}
	}

	for i := range listResult.Data {
		if deleteResult := s.deleteEmailCascade(ctx, &listResult.Data[i]); !deleteResult.Succeeded {
			return repository.CountResult{Result: deleteResult}
		}
	}

	return repository.CountResult{Result: repository.OkResult(), Count: int64(len(listResult.Data))}
}

type outgoingEmail struct {
	userID        string
	subject       string
	body          string
	recipients    []models.Recipient
	labelIDs      []string
	attachmentIDs []string
	replyToID     *string
	forwardOfID   *string
}

func (s *EmailService) createOutgoing(ctx context.Context, outgoing outgoingEmail) repository.TypedResult[dto.EmailDetails] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailService.createOutgoing")
	defer span.Finish()
	tracing.TagComponentService(span)

	sentResult := s.repositories.FolderRepository.Get(ctx,
		repository.SystemFolderNamed(enum.FolderSent.String()))
	if !sentResult.Succeeded {
		return repository.TypedResult[dto.EmailDetails]{
			Result: repository.InternalResult(errors.New(msgSentFolderMissing)),
		}
	}

	email := models.Email{
		SenderID:    outgoing.userID,
		Subject:     outgoing.subject,
		Body:        outgoing.body,
		Preview:     utils.GeneratePreview(outgoing.body),
		SentAt:      utils.Now(),
		IsRead:      true,
		FolderID:    sentResult.Data.ID,
		ReplyToID:   outgoing.replyToID,
		ForwardOfID: outgoing.forwardOfID,
	}
	if addResult := s.repositories.EmailRepository.Add(ctx, &email); !addResult.Succeeded {
		return repository.TypedResult[dto.EmailDetails]{Result: addResult}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	for i := range outgoing.recipients {
		recipient := outgoing.recipients[i]
		recipient.EmailID = email.ID
		group.Go(func() error {
			addResult := s.repositories.RecipientRepository.Add(groupCtx, &recipient)
			if !addResult.Succeeded {
				return errors.New(addResult.Error)
			}
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		tracing.TraceErr(span, err)
		return repository.TypedResult[dto.EmailDetails]{Result: repository.InternalResult(err)}
	}

	for _, labelID := range outgoing.labelIDs {
		link := models.EmailLabel{EmailID: email.ID, LabelID: labelID}
		if addResult := s.repositories.EmailLabelRepository.Add(ctx, &link); !addResult.Succeeded {
			return repository.TypedResult[dto.EmailDetails]{Result: addResult}
		}
	}

	for _, attachmentID := range outgoing.attachmentIDs {
		attachmentResult := s.repositories.AttachmentRepository.Get(ctx, repository.ByID(attachmentID))
		if !attachmentResult.Succeeded {
			return repository.TypedResult[dto.EmailDetails]{Result: attachmentResult.Result}
		}
		attachment := attachmentResult.Data
		attachment.EmailID = utils.Ptr(email.ID)
		if updateResult := s.repositories.AttachmentRepository.Update(ctx, attachment); !updateResult.Succeeded {
			return repository.TypedResult[dto.EmailDetails]{Result: updateResult}
		}
	}

	created := s.repositories.EmailRepository.Get(ctx, repository.ByID(email.ID),
		"Recipients", "Labels.Label", "Attachments")
	if !created.Succeeded {
		return repository.TypedResult[dto.EmailDetails]{Result: created.Result}
	}

	s.publishEvent(ctx, dto.EmailEvent{
		Event:    dto.EventEmailSent,
		EmailID:  email.ID,
		UserID:   outgoing.userID,
		FolderID: email.FolderID,
	})

	return repository.TypedResult[dto.EmailDetails]{
		Result: repository.CreatedResult(),
		Data:   dto.EmailDetailsFromModel(*created.Data),
	}
}

// deleteEmailCascade removes an email with its recipients, label links and
// attachment rows. Attachment payloads in object storage are left to the
// retention job.
func (s *EmailService) deleteEmailCascade(ctx context.Context, email *models.Email) repository.Result {
	recipientsResult := s.repositories.RecipientRepository.DeleteMany(ctx, repository.RecipientsOfEmail(email.ID))
	if !recipientsResult.Succeeded && recipientsResult.StatusCode != 404 {
		return recipientsResult.Result
	}
	labelsResult := s.repositories.EmailLabelRepository.DeleteMany(ctx, repository.EmailLabelsOfEmail(email.ID))
	if !labelsResult.Succeeded && labelsResult.StatusCode != 404 {
		return labelsResult.Result
	}
	attachmentsResult := s.repositories.AttachmentRepository.DeleteMany(ctx, repository.AttachmentsOfEmail(email.ID))
	if !attachmentsResult.Succeeded && attachmentsResult.StatusCode != 404 {
		return attachmentsResult.Result
	}
	return s.repositories.EmailRepository.Delete(ctx, email)
}

func (s *EmailService) publishEvent(ctx context.Context, event dto.EmailEvent) {
	if err := s.publisher.PublishEmailEvent(ctx, event); err != nil {
		s.log.Errorf("Failed to publish %s event for email %s: %v", event.Event, event.EmailID, err)
	}
}

func prefixSubject(prefix, subject string) string {
	if strings.HasPrefix(subject, prefix) {
		return subject
	}
	return prefix + subject
}
