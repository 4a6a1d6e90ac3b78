package label

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/mailflow/mailflow/dto"
	"github.com/mailflow/mailflow/internal/logger"
	"github.com/mailflow/mailflow/internal/models"
	"github.com/mailflow/mailflow/internal/repository"
	"github.com/mailflow/mailflow/internal/utils"
)

func getLogger() logger.Logger {
	appLogger := logger.NewAppLogger(&logger.Config{
		DevMode: true,
	})
	appLogger.InitLogger()
	return appLogger
}

func setupService(t *testing.T) (*LabelService, *gorm.DB, models.Folder) {
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
	require.NoError(t, repository.SeedSystemFolders(context.Background(), db))

	var inbox models.Folder
	require.NoError(t, db.First(&inbox, "name = ?", "Inbox").Error)

	repos := repository.InitRepositories(db)
	return NewLabelService(repos, getLogger()), db, inbox
}

func userContext(userID string) context.Context {
	return utils.WithCustomContext(context.Background(), &utils.CustomContext{
		AppSource: "test",
		UserId:    userID,
	})
}

func seedEmail(t *testing.T, db *gorm.DB, senderID, folderID, subject string) models.Email {
	email := models.Email{
		SenderID: senderID,
		Subject:  subject,
		Body:     "body",
		Preview:  "body",
		SentAt:   utils.Now(),
		FolderID: folderID,
	}
	require.NoError(t, db.Create(&email).Error)
	return email
}

func TestCreateAndGetLabels(t *testing.T) {
	service, _, _ := setupService(t)
	ctx := userContext("user-1")

	created := service.CreateLabel(ctx, dto.CreateLabelRequest{Name: "work", Color: "#ff0000"})
	require.True(t, created.Succeeded)
	assert.Equal(t, http.StatusCreated, created.StatusCode)
	assert.NotEmpty(t, created.Data.ID)

	service.CreateLabel(userContext("user-2"), dto.CreateLabelRequest{Name: "theirs"})

	list := service.GetLabels(ctx)
	require.True(t, list.Succeeded)
	require.Len(t, list.Items, 1)
	assert.Equal(t, "work", list.Items[0].Name)
}

func TestGetLabelByID(t *testing.T) {
	service, _, _ := setupService(t)
	ctx := userContext("user-1")

	created := service.CreateLabel(ctx, dto.CreateLabelRequest{Name: "travel", Color: "#00f"})
	require.True(t, created.Succeeded)

	fetched := service.GetLabelByID(ctx, created.Data.ID)
	require.True(t, fetched.Succeeded)
	assert.Equal(t, "travel", fetched.Data.Name)

	forbidden := service.GetLabelByID(userContext("user-2"), created.Data.ID)
	assert.Equal(t, http.StatusForbidden, forbidden.StatusCode)
}

func TestUpdateLabel(t *testing.T) {
	service, _, _ := setupService(t)
	ctx := userContext("user-1")

	created := service.CreateLabel(ctx, dto.CreateLabelRequest{Name: "draft", Color: "#aaa"})
	require.True(t, created.Succeeded)

	updated := service.UpdateLabel(ctx, created.Data.ID, dto.UpdateLabelRequest{Name: "final", Color: "#bbb"})
	require.True(t, updated.Succeeded)
	assert.Equal(t, "final", updated.Data.Name)
	assert.Equal(t, "#bbb", updated.Data.Color)
}

func TestUpdateLabel_NotOwner(t *testing.T) {
	service, _, _ := setupService(t)

	created := service.CreateLabel(userContext("user-1"), dto.CreateLabelRequest{Name: "mine"})
	require.True(t, created.Succeeded)

	result := service.UpdateLabel(userContext("user-2"), created.Data.ID, dto.UpdateLabelRequest{Name: "stolen"})
	assert.Equal(t, http.StatusForbidden, result.StatusCode)
}

func TestUpdateLabel_NotFound(t *testing.T) {
	service, _, _ := setupService(t)

	result := service.UpdateLabel(userContext("user-1"), "missing", dto.UpdateLabelRequest{Name: "x"})
	assert.Equal(t, http.StatusNotFound, result.StatusCode)
}

func TestDeleteLabel_DetachesFromEmails(t *testing.T) {
	service, db, inbox := setupService(t)
	ctx := userContext("user-1")

	created := service.CreateLabel(ctx, dto.CreateLabelRequest{Name: "short lived"})
	require.True(t, created.Succeeded)

	email := seedEmail(t, db, "user-1", inbox.ID, "labeled")
	require.True(t, service.AttachLabel(ctx, email.ID, created.Data.ID).Succeeded)

	result := service.DeleteLabel(ctx, created.Data.ID)
	require.True(t, result.Succeeded)

	var labelCount, linkCount int64
	db.Model(&models.Label{}).Count(&labelCount)
	db.Model(&models.EmailLabel{}).Count(&linkCount)
	assert.Equal(t, int64(0), labelCount)
	assert.Equal(t, int64(0), linkCount)
}

func TestAttachLabel_Idempotent(t *testing.T) {
	service, db, inbox := setupService(t)
	ctx := userContext("user-1")

	created := service.CreateLabel(ctx, dto.CreateLabelRequest{Name: "sticky"})
	require.True(t, created.Succeeded)
	email := seedEmail(t, db, "user-1", inbox.ID, "target")

	require.True(t, service.AttachLabel(ctx, email.ID, created.Data.ID).Succeeded)
	require.True(t, service.AttachLabel(ctx, email.ID, created.Data.ID).Succeeded)

	var linkCount int64
	db.Model(&models.EmailLabel{}).Count(&linkCount)
	assert.Equal(t, int64(1), linkCount)
}

func TestAttachLabel_EmailNotVisible(t *testing.T) {
	service, db, inbox := setupService(t)
	ctx := userContext("user-1")

	created := service.CreateLabel(ctx, dto.CreateLabelRequest{Name: "mine"})
	require.True(t, created.Succeeded)
	email := seedEmail(t, db, "user-2", inbox.ID, "someone else's")

	result := service.AttachLabel(ctx, email.ID, created.Data.ID)
	assert.Equal(t, http.StatusForbidden, result.StatusCode)
}

func TestDetachLabel(t *testing.T) {
	service, db, inbox := setupService(t)
	ctx := userContext("user-1")

	created := service.CreateLabel(ctx, dto.CreateLabelRequest{Name: "peel me"})
	require.True(t, created.Succeeded)
	email := seedEmail(t, db, "user-1", inbox.ID, "target")
	require.True(t, service.AttachLabel(ctx, email.ID, created.Data.ID).Succeeded)

	require.True(t, service.DetachLabel(ctx, email.ID, created.Data.ID).Succeeded)

	notAttached := service.DetachLabel(ctx, email.ID, created.Data.ID)
	assert.Equal(t, http.StatusNotFound, notAttached.StatusCode)
	assert.Equal(t, "Label is not attached to this email", notAttached.Error)
}

func TestGetEmailsByLabel(t *testing.T) {
	service, db, inbox := setupService(t)
	ctx := userContext("user-1")

	created := service.CreateLabel(ctx, dto.CreateLabelRequest{Name: "project"})
	require.True(t, created.Succeeded)

	labeled := seedEmail(t, db, "user-1", inbox.ID, "labeled")
	seedEmail(t, db, "user-1", inbox.ID, "plain")
	require.True(t, service.AttachLabel(ctx, labeled.ID, created.Data.ID).Succeeded)

	result := service.GetEmailsByLabel(ctx, created.Data.ID)
	require.True(t, result.Succeeded)
	require.Len(t, result.Items, 1)
	assert.Equal(t, labeled.ID, result.Items[0].ID)
}

func TestGetEmailsByLabel_NotOwner(t *testing.T) {
	service, _, _ := setupService(t)

	created := service.CreateLabel(userContext("user-1"), dto.CreateLabelRequest{Name: "mine"})
	require.True(t, created.Succeeded)

	result := service.GetEmailsByLabel(userContext("user-2"), created.Data.ID)
	assert.Equal(t, http.StatusForbidden, result.StatusCode)
}
