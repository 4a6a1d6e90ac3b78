package label

import (
	"context"

	"github.com/opentracing/opentracing-go"

	"github.com/mailflow/mailflow/dto"
	"github.com/mailflow/mailflow/internal/logger"
	"github.com/mailflow/mailflow/internal/models"
	"github.com/mailflow/mailflow/internal/repository"
	"github.com/mailflow/mailflow/internal/tracing"
	"github.com/mailflow/mailflow/internal/utils"
)

const (
	msgLabelNotFound     = "Label not found"
	msgNoLabelPermission = "You do not have permission to access this label"
	msgEmailNotFound     = "Entity not found."
	msgNoEmailPermission = "You do not have permission to access this email"
	msgLabelNotAttached  = "Label is not attached to this email"
)

type LabelService struct {
	repositories *repository.Repositories
	log          logger.Logger
}

func NewLabelService(repositories *repository.Repositories, log logger.Logger) *LabelService {
	return &LabelService{
		repositories: repositories,
		log:          log,
	}
}

// CreateLabel stores a new label owned by the current user.
func (s *LabelService) CreateLabel(ctx context.Context, request dto.CreateLabelRequest) repository.TypedResult[dto.Label] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "LabelService.CreateLabel")
	defer span.Finish()
	tracing.TagComponentService(span)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	label := models.Label{
		UserID: userID,
		Name:   request.Name,
		Color:  request.Color,
	}
	if addResult := s.repositories.LabelRepository.Add(ctx, &label); !addResult.Succeeded {
		return repository.TypedResult[dto.Label]{Result: addResult}
	}

	return repository.TypedResult[dto.Label]{
		Result: repository.CreatedResult(),
		Data:   dto.LabelFromModel(label),
	}
}

// GetLabels lists the current user's labels.
func (s *LabelService) GetLabels(ctx context.Context) repository.ListResult[dto.Label] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "LabelService.GetLabels")
	defer span.Finish()
	tracing.TagComponentService(span)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	listResult := s.repositories.LabelRepository.GetAll(ctx, repository.ListOptions{
		FilterBy: repository.LabelsOwnedBy(userID),
		SortBy:   "name",
	})
	if !listResult.Succeeded {
		return repository.ListResult[dto.Label]{Result: listResult.Result}
	}

	items := make([]dto.Label, 0, len(listResult.Data))
	for _, l := range listResult.Data {
		items = append(items, dto.LabelFromModel(l))
	}

	return repository.ListResult[dto.Label]{
		Result:     repository.OkResult(),
		Items:      items,
		TotalCount: int64(len(items)),
	}
}

func (s *LabelService) GetLabelByID(ctx context.Context, labelID string) repository.TypedResult[dto.Label] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "LabelService.GetLabelByID")
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagEntity(span, labelID)

	labelResult := s.ownedLabel(ctx, labelID)
	if !labelResult.Succeeded {
		return repository.TypedResult[dto.Label]{Result: labelResult.Result}
	}

	return repository.TypedResult[dto.Label]{
		Result: repository.OkResult(),
		Data:   dto.LabelFromModel(*labelResult.Data),
	}
}

// UpdateLabel renames or recolors a label the user owns.
func (s *LabelService) UpdateLabel(ctx context.Context, labelID string, request dto.UpdateLabelRequest) repository.TypedResult[dto.Label] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "LabelService.UpdateLabel")
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagEntity(span, labelID)

	labelResult := s.ownedLabel(ctx, labelID)
	if !labelResult.Succeeded {
		return repository.TypedResult[dto.Label]{Result: labelResult.Result}
	}
	label := labelResult.Data

	label.Name = request.Name
	label.Color = request.Color
	if updateResult := s.repositories.LabelRepository.Update(ctx, label); !updateResult.Succeeded {
		return repository.TypedResult[dto.Label]{Result: updateResult}
	}

	return repository.TypedResult[dto.Label]{
		Result: repository.OkResult(),
		Data:   dto.LabelFromModel(*label),
	}
}

// DeleteLabel removes a label and detaches it from every email.
func (s *LabelService) DeleteLabel(ctx context.Context, labelID string) repository.Result {
	span, ctx := opentracing.StartSpanFromContext(ctx, "LabelService.DeleteLabel")
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagEntity(span, labelID)

	labelResult := s.ownedLabel(ctx, labelID)
	if !labelResult.Succeeded {
		return labelResult.Result
	}

	linksResult := s.repositories.EmailLabelRepository.DeleteMany(ctx, repository.EmailLabelsWithLabel(labelID))
	if !linksResult.Succeeded && linksResult.StatusCode != 404 {
		return linksResult.Result
	}

	return s.repositories.LabelRepository.Delete(ctx, labelResult.Data)
}

// AttachLabel links a label to an email. Attaching twice is a no-op.
func (s *LabelService) AttachLabel(ctx context.Context, emailID, labelID string) repository.Result {
	span, ctx := opentracing.StartSpanFromContext(ctx, "LabelService.AttachLabel")
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagEntity(span, emailID)

	labelResult := s.ownedLabel(ctx, labelID)
	if !labelResult.Succeeded {
		return labelResult.Result
	}
	emailResult := s.visibleEmail(ctx, emailID)
	if !emailResult.Succeeded {
		return emailResult.Result
	}

	existsResult := s.repositories.EmailLabelRepository.Exists(ctx, repository.EmailLabelFor(emailID, labelID))
	if existsResult.Succeeded {
		return repository.OkResult()
	}

	link := models.EmailLabel{EmailID: emailID, LabelID: labelID}
	return s.repositories.EmailLabelRepository.Add(ctx, &link)
}

// DetachLabel unlinks a label from an email.
func (s *LabelService) DetachLabel(ctx context.Context, emailID, labelID string) repository.Result {
	span, ctx := opentracing.StartSpanFromContext(ctx, "LabelService.DetachLabel")
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagEntity(span, emailID)

	labelResult := s.ownedLabel(ctx, labelID)
	if !labelResult.Succeeded {
		return labelResult.Result
	}
	emailResult := s.visibleEmail(ctx, emailID)
	if !emailResult.Succeeded {
		return emailResult.Result
	}

	linkResult := s.repositories.EmailLabelRepository.Get(ctx, repository.EmailLabelFor(emailID, labelID))
	if !linkResult.Succeeded {
		return repository.NotFoundResult(msgLabelNotAttached)
	}

	return s.repositories.EmailLabelRepository.Delete(ctx, linkResult.Data)
}

// GetEmailsByLabel lists the user's emails carrying the label, newest first.
func (s *LabelService) GetEmailsByLabel(ctx context.Context, labelID string) repository.ListResult[dto.Email] {
	span, ctx := opentracing.StartSpanFromContext(ctx, "LabelService.GetEmailsByLabel")
	defer span.Finish()
	tracing.TagComponentService(span)
	tracing.TagEntity(span, labelID)

	userID := utils.GetUserIdFromContext(ctx)
	tracing.TagUserId(span, userID)

	labelResult := s.ownedLabel(ctx, labelID)
	if !labelResult.Succeeded {
		return repository.ListResult[dto.Email]{Result: labelResult.Result}
	}

	listResult := s.repositories.EmailRepository.GetAll(ctx, repository.ListOptions{
		FilterBy: repository.And(
			repository.EmailsWithLabel(labelID),
			repository.EmailsVisibleTo(userID),
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

func (s *LabelService) ownedLabel(ctx context.Context, labelID string) repository.TypedResult[*models.Label] {
	labelResult := s.repositories.LabelRepository.Get(ctx, repository.ByID(labelID))
	if !labelResult.Succeeded {
		return repository.TypedResult[*models.Label]{Result: repository.NotFoundResult(msgLabelNotFound)}
	}
	if labelResult.Data.UserID != utils.GetUserIdFromContext(ctx) {
		return repository.TypedResult[*models.Label]{Result: repository.ForbiddenResult(msgNoLabelPermission)}
	}
	return repository.TypedResult[*models.Label]{Result: repository.OkResult(), Data: labelResult.Data}
}

func (s *LabelService) visibleEmail(ctx context.Context, emailID string) repository.TypedResult[*models.Email] {
	emailResult := s.repositories.EmailRepository.Get(ctx, repository.ByID(emailID), "Recipients")
	if !emailResult.Succeeded {
		return repository.TypedResult[*models.Email]{Result: repository.NotFoundResult(msgEmailNotFound)}
	}
	if !emailResult.Data.VisibleTo(utils.GetUserIdFromContext(ctx)) {
		return repository.TypedResult[*models.Email]{Result: repository.ForbiddenResult(msgNoEmailPermission)}
	}
	return repository.TypedResult[*models.Email]{Result: repository.OkResult(), Data: emailResult.Data}
}
