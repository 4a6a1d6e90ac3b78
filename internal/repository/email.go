package repository

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/mailflow/mailflow/internal/models"
	"github.com/mailflow/mailflow/internal/tracing"
)

type EmailRepository struct {
	Repository[models.Email]
}

func NewEmailRepository(db *gorm.DB) *EmailRepository {
	return &EmailRepository{Repository: NewRepository[models.Email](db, "EmailRepository")}
}

// CountInFolder returns total and unread counts for a user's view of a
// folder in one pass over the table.
func (r *EmailRepository) CountInFolder(ctx context.Context, folderID, userID string) (total int64, unread int64, err error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "EmailRepository.CountInFolder")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	visible := And(EmailsInFolder(folderID), EmailsVisibleTo(userID))
	if err = r.DB().WithContext(ctx).Model(&models.Email{}).Scopes(gormScope(visible)).Count(&total).Error; err != nil {
		tracing.TraceErr(span, err)
		return 0, 0, err
	}
	if err = r.DB().WithContext(ctx).Model(&models.Email{}).Scopes(gormScope(And(visible, UnreadOnly()))).Count(&unread).Error; err != nil {
		tracing.TraceErr(span, err)
		return 0, 0, err
	}
	return total, unread, nil
}
