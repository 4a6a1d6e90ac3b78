package email

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mailflow/mailflow/dto"
	"github.com/mailflow/mailflow/internal/enum"
	"github.com/mailflow/mailflow/internal/logger"
	"github.com/mailflow/mailflow/internal/models"
	"github.com/mailflow/mailflow/internal/repository"
	"github.com/mailflow/mailflow/internal/utils"
	"github.com/mailflow/mailflow/services/events"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err, "Failed to connect to in-memory database")

	// A pooled :memory: connection would open a second, empty database.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&models.Email{},
		&models.Recipient{},
		&models.Folder{},
		&models.Label{},
		&models.EmailLabel{},
		&models.Attachment{},
	)
	require.NoError(t, err, "Failed to migrate schema")

	return db
}

func setupService(t *testing.T) (*EmailService, *gorm.DB, map[string]models.Folder) {
	db := setupTestDB(t)
	require.NoError(t, repository.SeedSystemFolders(context.Background(), db))

	var seeded []models.Folder
	require.NoError(t, db.Find(&seeded).Error)
	folders := make(map[string]models.Folder, len(seeded))
	for _, f := range seeded {
		folders[f.Name] = f
	}

	repos := repository.InitRepositories(db)
	service := NewEmailService(repos, events.NoopPublisher{}, getLogger())
	return service, db, folders
}

func userContext(userID string) context.Context {
	return utils.WithCustomContext(context.Background(), &utils.CustomContext{
		AppSource: "test",
		UserId:    userID,
	})
}

func seedEmail(t *testing.T, db *gorm.DB, senderID, folderID, subject string, recipients ...string) models.Email {
	email := models.Email{
		SenderID: senderID,
		Subject:  subject,
		Body:     "body of " + subject,
		Preview:  utils.GeneratePreview("body of " + subject),
		SentAt:   utils.Now(),
		FolderID: folderID,
	}
	require.NoError(t, db.Create(&email).Error)
	for _, userID := range recipients {
		require.NoError(t, db.Create(&models.Recipient{
			EmailID:      email.ID,
			UserID:       utils.Ptr(userID),
			EmailAddress: userID + "@example.com",
		}).Error)
	}
	return email
}

func TestCreateEmail(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	result := service.CreateEmail(ctx, dto.CreateEmailRequest{
		Subject: "status update",
		Body:    "<p>All systems   green</p>",
		Recipients: []dto.RecipientRequest{
			{UserID: utils.Ptr("user-2"), Name: "Two", EmailAddress: "two@example.com", Type: "To"},
			{EmailAddress: "outside@example.com", Type: "CC"},
		},
	})

	require.True(t, result.Succeeded)
	assert.Equal(t, http.StatusCreated, result.StatusCode)
	assert.Equal(t, folders["Sent"].ID, result.Data.FolderID)
	assert.Equal(t, "All systems green", result.Data.Preview)
	assert.Len(t, result.Data.Recipients, 2)

	var recipientCount int64
	db.Model(&models.Recipient{}).Count(&recipientCount)
	assert.Equal(t, int64(2), recipientCount)
}

func TestCreateEmail_ManyRecipients(t *testing.T) {
	service, db, _ := setupService(t)
	ctx := userContext("user-1")

	// Wide fan-out so the concurrent recipient inserts overlap.
	recipients := make([]dto.RecipientRequest, 0, 8)
	for i := 0; i < 8; i++ {
		recipients = append(recipients, dto.RecipientRequest{
			EmailAddress: fmt.Sprintf("rcpt-%d@example.com", i),
			Type:         "To",
		})
	}

	result := service.CreateEmail(ctx, dto.CreateEmailRequest{
		Subject:    "broadcast",
		Body:       "hello all",
		Recipients: recipients,
	})

	require.True(t, result.Succeeded)
	assert.Equal(t, http.StatusCreated, result.StatusCode)
	assert.Len(t, result.Data.Recipients, 8)

	var recipientCount int64
	db.Model(&models.Recipient{}).Count(&recipientCount)
	assert.Equal(t, int64(8), recipientCount)
}

func TestCreateEmail_PreviewCapped(t *testing.T) {
	service, _, _ := setupService(t)
	ctx := userContext("user-1")

	result := service.CreateEmail(ctx, dto.CreateEmailRequest{
		Subject:    "long",
		Body:       "<div>" + strings.Repeat("x", 500) + "</div>",
		Recipients: []dto.RecipientRequest{{EmailAddress: "two@example.com"}},
	})

	require.True(t, result.Succeeded)
	assert.Len(t, result.Data.Preview, utils.PreviewMaxLength)
	assert.NotContains(t, result.Data.Preview, "<")
}

func TestCreateEmail_MissingSentFolder(t *testing.T) {
	db := setupTestDB(t)
	repos := repository.InitRepositories(db)
	service := NewEmailService(repos, events.NoopPublisher{}, getLogger())
	ctx := userContext("user-1")

	result := service.CreateEmail(ctx, dto.CreateEmailRequest{
		Subject:    "doomed",
		Body:       "body",
		Recipients: []dto.RecipientRequest{{EmailAddress: "two@example.com"}},
	})

	assert.False(t, result.Succeeded)
	assert.Equal(t, http.StatusInternalServerError, result.StatusCode)
	assert.Equal(t, "Could not find Sent folder", result.Error)

	var count int64
	db.Model(&models.Email{}).Count(&count)
	assert.Equal(t, int64(0), count)
}

func TestGetEmails(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	seedEmail(t, db, "user-2", folders["Inbox"].ID, "for me", "user-1")
	seedEmail(t, db, "user-1", folders["Inbox"].ID, "from me")
	seedEmail(t, db, "user-2", folders["Inbox"].ID, "for someone else", "user-3")

	result := service.GetEmails(ctx, "Inbox", "", false)

	require.True(t, result.Succeeded)
	assert.Len(t, result.Items, 2)
	assert.Equal(t, int64(2), result.TotalCount)
	assert.Equal(t, int64(2), result.UnreadCount)
	assert.Equal(t, "2", result.DisplayCount)
}

func TestGetEmails_FolderNameCaseInsensitive(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	seedEmail(t, db, "user-1", folders["Inbox"].ID, "anything")

	result := service.GetEmails(ctx, "inbox", "", false)
	assert.True(t, result.Succeeded)
	assert.Len(t, result.Items, 1)
}

func TestGetEmails_UnknownFolder(t *testing.T) {
	service, _, _ := setupService(t)
	ctx := userContext("user-1")

	result := service.GetEmails(ctx, "Archive", "", false)

	assert.False(t, result.Succeeded)
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
	assert.Equal(t, "Folder 'Archive' not found", result.Error)
}

func TestGetEmails_Search(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	seedEmail(t, db, "user-1", folders["Inbox"].ID, "Invoice attached")
	seedEmail(t, db, "user-1", folders["Inbox"].ID, "lunch plans")

	result := service.GetEmails(ctx, "Inbox", "INVOICE", false)
	require.True(t, result.Succeeded)
	require.Len(t, result.Items, 1)
	assert.Equal(t, "Invoice attached", result.Items[0].Subject)
}

func TestGetEmails_UnreadOnly(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	unread := seedEmail(t, db, "user-1", folders["Inbox"].ID, "unread one")
	read := seedEmail(t, db, "user-1", folders["Inbox"].ID, "read one")
	require.NoError(t, db.Model(&read).Update("is_read", true).Error)

	result := service.GetEmails(ctx, "Inbox", "", true)
	require.True(t, result.Succeeded)
	require.Len(t, result.Items, 1)
	assert.Equal(t, unread.ID, result.Items[0].ID)
	assert.Equal(t, int64(2), result.TotalCount)
	assert.Equal(t, int64(1), result.UnreadCount)
}

func TestGetEmails_SortedNewestFirst(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	older := models.Email{
		SenderID: "user-1",
		Subject:  "older",
		Body:     "x",
		Preview:  "x",
		SentAt:   utils.Now().Add(-time.Hour),
		FolderID: folders["Inbox"].ID,
	}
	require.NoError(t, db.Create(&older).Error)
	seedEmail(t, db, "user-1", folders["Inbox"].ID, "newer")

	result := service.GetEmails(ctx, "Inbox", "", false)
	require.True(t, result.Succeeded)
	require.Len(t, result.Items, 2)
	assert.Equal(t, "newer", result.Items[0].Subject)
	assert.Equal(t, "older", result.Items[1].Subject)
}

func TestGetEmailByID_MarksReadOnce(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	email := seedEmail(t, db, "user-2", folders["Inbox"].ID, "openable", "user-1")

	first := service.GetEmailByID(ctx, email.ID)
	require.True(t, first.Succeeded)
	assert.True(t, first.Data.IsRead)

	var stored models.Email
	require.NoError(t, db.First(&stored, "id = ?", email.ID).Error)
	assert.True(t, stored.IsRead)

	second := service.GetEmailByID(ctx, email.ID)
	require.True(t, second.Succeeded)
	assert.True(t, second.Data.IsRead)
}

func TestGetEmailByID_Forbidden(t *testing.T) {
	service, db, folders := setupService(t)

	email := seedEmail(t, db, "user-1", folders["Inbox"].ID, "private", "user-2")

	result := service.GetEmailByID(userContext("user-3"), email.ID)
	assert.Equal(t, http.StatusForbidden, result.StatusCode)
	assert.Equal(t, "You do not have permission to access this email", result.Error)

	// forbidden access must not flip the read flag
	var stored models.Email
	require.NoError(t, db.First(&stored, "id = ?", email.ID).Error)
	assert.False(t, stored.IsRead)
}

func TestGetEmailByID_NotFound(t *testing.T) {
	service, _, _ := setupService(t)

	result := service.GetEmailByID(userContext("user-1"), "missing")
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestSoftDeleteEmail(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	email := seedEmail(t, db, "user-1", folders["Inbox"].ID, "to trash")

	result := service.SoftDeleteEmail(ctx, email.ID)
	require.True(t, result.Succeeded)
	assert.Equal(t, "Email moved to trash", result.Error)

	var stored models.Email
	require.NoError(t, db.First(&stored, "id = ?", email.ID).Error)
	assert.Equal(t, folders["Trash"].ID, stored.FolderID)
}

func TestSoftDeleteEmail_Forbidden(t *testing.T) {
	service, db, folders := setupService(t)

	email := seedEmail(t, db, "user-1", folders["Inbox"].ID, "not yours", "user-2")

	result := service.SoftDeleteEmail(userContext("user-3"), email.ID)
	assert.Equal(t, http.StatusForbidden, result.StatusCode)
	assert.Equal(t, "You don't have permission to move this email.", result.Error)

	var stored models.Email
	require.NoError(t, db.First(&stored, "id = ?", email.ID).Error)
	assert.Equal(t, folders["Inbox"].ID, stored.FolderID)
}

func TestHardDeleteEmail(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	email := seedEmail(t, db, "user-1", folders["Trash"].ID, "gone forever", "user-2")

	result := service.HardDeleteEmail(ctx, email.ID)
	require.True(t, result.Succeeded)
	assert.Equal(t, "Email permanently deleted", result.Error)

	var emailCount, recipientCount int64
	db.Model(&models.Email{}).Count(&emailCount)
	db.Model(&models.Recipient{}).Count(&recipientCount)
	assert.Equal(t, int64(0), emailCount)
	assert.Equal(t, int64(0), recipientCount)
}

func TestEmptyTrash(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	seedEmail(t, db, "user-1", folders["Trash"].ID, "trash one")
	seedEmail(t, db, "user-1", folders["Trash"].ID, "trash two")
	other := seedEmail(t, db, "user-2", folders["Trash"].ID, "someone else's trash")
	kept := seedEmail(t, db, "user-1", folders["Inbox"].ID, "not trash")

	result := service.EmptyTrash(ctx)
	require.True(t, result.Succeeded)
	assert.Equal(t, int64(2), result.Count)
	assert.Equal(t, "2 emails permanently deleted", result.Error)

	var remaining []models.Email
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	ids := []string{remaining[0].ID, remaining[1].ID}
	assert.Contains(t, ids, other.ID)
	assert.Contains(t, ids, kept.ID)
}

func TestEmptyTrash_AlreadyEmpty(t *testing.T) {
	service, _, _ := setupService(t)

	result := service.EmptyTrash(userContext("user-1"))
	require.True(t, result.Succeeded)
	assert.Equal(t, int64(0), result.Count)
	assert.Equal(t, "Trash is already empty", result.Error)
}

func TestMarkAsReadAndUnread_Idempotent(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	email := seedEmail(t, db, "user-1", folders["Inbox"].ID, "toggle me")

	require.True(t, service.MarkAsRead(ctx, email.ID).Succeeded)
	require.True(t, service.MarkAsRead(ctx, email.ID).Succeeded)

	var stored models.Email
	require.NoError(t, db.First(&stored, "id = ?", email.ID).Error)
	assert.True(t, stored.IsRead)

	require.True(t, service.MarkAsUnread(ctx, email.ID).Succeeded)
	require.True(t, service.MarkAsUnread(ctx, email.ID).Succeeded)

	require.NoError(t, db.First(&stored, "id = ?", email.ID).Error)
	assert.False(t, stored.IsRead)
}

func TestGetUnreadCount(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	seedEmail(t, db, "user-1", folders["Inbox"].ID, "unread one")
	seedEmail(t, db, "user-1", folders["Inbox"].ID, "unread two")
	read := seedEmail(t, db, "user-1", folders["Inbox"].ID, "read one")
	require.NoError(t, db.Model(&read).Update("is_read", true).Error)
	seedEmail(t, db, "user-2", folders["Inbox"].ID, "not visible", "user-3")

	result := service.GetUnreadCount(ctx, "Inbox")
	require.True(t, result.Succeeded)
	assert.Equal(t, int64(2), result.Count)

	missing := service.GetUnreadCount(ctx, "Archive")
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
}

func TestReply(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	original := seedEmail(t, db, "user-2", folders["Inbox"].ID, "question", "user-1")

	result := service.Reply(ctx, original.ID, dto.CreateReplyRequest{Body: "answer"})

	require.True(t, result.Succeeded)
	assert.Equal(t, http.StatusCreated, result.StatusCode)
	assert.Equal(t, "Re: question", result.Data.Subject)
	require.NotNil(t, result.Data.ReplyToID)
	assert.Equal(t, original.ID, *result.Data.ReplyToID)
	assert.Equal(t, folders["Sent"].ID, result.Data.FolderID)

	require.Len(t, result.Data.Recipients, 1)
	require.NotNil(t, result.Data.Recipients[0].UserID)
	assert.Equal(t, "user-2", *result.Data.Recipients[0].UserID)
	assert.Equal(t, enum.RecipientTypeTo.String(), result.Data.Recipients[0].Type)
}

func TestReply_SubjectPrefixNotDoubled(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	original := seedEmail(t, db, "user-2", folders["Inbox"].ID, "Re: thread", "user-1")

	result := service.Reply(ctx, original.ID, dto.CreateReplyRequest{Body: "more"})
	require.True(t, result.Succeeded)
	assert.Equal(t, "Re: thread", result.Data.Subject)
}

func TestReply_Forbidden(t *testing.T) {
	service, db, folders := setupService(t)

	original := seedEmail(t, db, "user-1", folders["Inbox"].ID, "private", "user-2")

	result := service.Reply(userContext("user-3"), original.ID, dto.CreateReplyRequest{Body: "intrusion"})
	assert.Equal(t, http.StatusForbidden, result.StatusCode)
}

func TestForward(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	original := seedEmail(t, db, "user-2", folders["Inbox"].ID, "design draft", "user-1")

	result := service.Forward(ctx, original.ID, dto.CreateForwardRequest{
		Recipients:        []dto.RecipientRequest{{EmailAddress: "three@example.com"}},
		AdditionalComment: "FYI",
	})

	require.True(t, result.Succeeded)
	assert.Equal(t, "Fwd: design draft", result.Data.Subject)
	require.NotNil(t, result.Data.ForwardOfID)
	assert.Equal(t, original.ID, *result.Data.ForwardOfID)
	assert.Contains(t, result.Data.Body, "FYI")
	assert.Contains(t, result.Data.Body, original.Body)
}

func TestMoveToFolder(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	email := seedEmail(t, db, "user-1", folders["Inbox"].ID, "movable")

	result := service.MoveToFolder(ctx, email.ID, "spam")
	require.True(t, result.Succeeded)

	var stored models.Email
	require.NoError(t, db.First(&stored, "id = ?", email.ID).Error)
	assert.Equal(t, folders["Spam"].ID, stored.FolderID)

	missing := service.MoveToFolder(ctx, email.ID, "Archive")
	assert.Equal(t, http.StatusNotFound, missing.StatusCode)
	assert.Equal(t, "Folder 'Archive' not found", missing.Error)
}

func TestStarUnstarAndGetStarred(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := userContext("user-1")

	inInbox := seedEmail(t, db, "user-1", folders["Inbox"].ID, "starred in inbox")
	inSent := seedEmail(t, db, "user-1", folders["Sent"].ID, "starred in sent")
	seedEmail(t, db, "user-1", folders["Inbox"].ID, "plain")

	require.True(t, service.StarEmail(ctx, inInbox.ID).Succeeded)
	require.True(t, service.StarEmail(ctx, inInbox.ID).Succeeded) // idempotent
	require.True(t, service.StarEmail(ctx, inSent.ID).Succeeded)

	starred := service.GetStarredEmails(ctx)
	require.True(t, starred.Succeeded)
	assert.Len(t, starred.Items, 2)

	require.True(t, service.UnstarEmail(ctx, inSent.ID).Succeeded)
	starred = service.GetStarredEmails(ctx)
	require.Len(t, starred.Items, 1)
	assert.Equal(t, inInbox.ID, starred.Items[0].ID)
}

func TestPurgeTrashedBefore(t *testing.T) {
	service, db, folders := setupService(t)
	ctx := context.Background()

	expired := seedEmail(t, db, "user-1", folders["Trash"].ID, "expired")
	require.NoError(t, db.Model(&expired).Update("updated_at", utils.Now().Add(-40*24*time.Hour)).Error)
	recent := seedEmail(t, db, "user-1", folders["Trash"].ID, "recent")
	outside := seedEmail(t, db, "user-1", folders["Inbox"].ID, "old but not trashed")
	require.NoError(t, db.Model(&outside).Update("updated_at", utils.Now().Add(-40*24*time.Hour)).Error)

	result := service.PurgeTrashedBefore(ctx, utils.Now().Add(-30*24*time.Hour))
	require.True(t, result.Succeeded)
	assert.Equal(t, int64(1), result.Count)

	var remaining []models.Email
	require.NoError(t, db.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	ids := []string{remaining[0].ID, remaining[1].ID}
	assert.Contains(t, ids, recent.ID)
	assert.Contains(t, ids, outside.ID)
}
