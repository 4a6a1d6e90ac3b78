package handlers

import (
	"context"
	"net/http"

	"github.com/customeros/mailsherpa/mailvalidate"
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	custom_err "github.com/mailflow/mailflow/api/errors"
	"github.com/mailflow/mailflow/dto"
	"github.com/mailflow/mailflow/internal/tracing"
	"github.com/mailflow/mailflow/internal/utils"
	"github.com/mailflow/mailflow/services"
)

type EmailsHandler struct {
	services *services.Services
}

func NewEmailsHandler(s *services.Services) *EmailsHandler {
	return &EmailsHandler{services: s}
}

// Create handles the HTTP request to compose a new email
func (h *EmailsHandler) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "EmailsHandler.Create")
		defer span.Finish()
		tracing.TagComponentRest(span)

		var request dto.CreateEmailRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			respondWithError(c, span, http.StatusBadRequest, "Invalid request format", err)
			return
		}

		errs := validateRecipients(ctx, "recipients", request.Recipients)
		if errs.HasErrors() {
			tracing.TraceErr(span, errs)
			c.JSON(http.StatusBadRequest, errs)
			return
		}

		result := h.services.EmailService.CreateEmail(ctx, request)
		c.JSON(result.StatusCode, result)
	}
}

// List handles the HTTP request to list a folder. Query parameters:
// folder (required), search, unreadOnly.
func (h *EmailsHandler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "EmailsHandler.List")
		defer span.Finish()
		tracing.TagComponentRest(span)

		folder := c.Query("folder")
		if folder == "" {
			respondWithError(c, span, http.StatusBadRequest, "Missing folder parameter", errors.New("folder is empty"))
			return
		}
		search := c.Query("search")
		unreadOnly := c.Query("unreadOnly") == "true"

		result := h.services.EmailService.GetEmails(ctx, folder, search, unreadOnly)
		c.JSON(result.StatusCode, result)
	}
}

func (h *EmailsHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "EmailsHandler.Get")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result := h.services.EmailService.GetEmailByID(ctx, c.Param("id"))
		c.JSON(result.StatusCode, result)
	}
}

// SoftDelete moves an email to trash.
func (h *EmailsHandler) SoftDelete() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "EmailsHandler.SoftDelete")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result := h.services.EmailService.SoftDeleteEmail(ctx, c.Param("id"))
		c.JSON(result.StatusCode, result)
	}
}

// HardDelete permanently removes an email.
func (h *EmailsHandler) HardDelete() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "EmailsHandler.HardDelete")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result := h.services.EmailService.HardDeleteEmail(ctx, c.Param("id"))
		c.JSON(result.StatusCode, result)
	}
}

func (h *EmailsHandler) EmptyTrash() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "EmailsHandler.EmptyTrash")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result := h.services.EmailService.EmptyTrash(ctx)
		c.JSON(result.StatusCode, result)
	}
}

func (h *EmailsHandler) MarkAsRead() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "EmailsHandler.MarkAsRead")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result := h.services.EmailService.MarkAsRead(ctx, c.Param("id"))
		c.JSON(result.StatusCode, result)
	}
}

func (h *EmailsHandler) MarkAsUnread() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "EmailsHandler.MarkAsUnread")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result := h.services.EmailService.MarkAsUnread(ctx, c.Param("id"))
		c.JSON(result.StatusCode, result)
	}
}

func (h *EmailsHandler) UnreadCount() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "EmailsHandler.UnreadCount")
		defer span.Finish()
		tracing.TagComponentRest(span)

		folder := c.Query("folder")
		if folder == "" {
			respondWithError(c, span, http.StatusBadRequest, "Missing folder parameter", errors.New("folder is empty"))
			return
		}

		result := h.services.EmailService.GetUnreadCount(ctx, folder)
		c.JSON(result.StatusCode, result)
	}
}

func (h *EmailsHandler) Reply() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "EmailsHandler.Reply")
		defer span.Finish()
		tracing.TagComponentRest(span)

		var request dto.CreateReplyRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			respondWithError(c, span, http.StatusBadRequest, "Invalid request format", err)
			return
		}

		errs := validateRecipients(ctx, "additionalRecipients", request.AdditionalRecipients)
		if errs.HasErrors() {
			tracing.TraceErr(span, errs)
			c.JSON(http.StatusBadRequest, errs)
			return
		}

		result := h.services.EmailService.Reply(ctx, c.Param("id"), request)
		c.JSON(result.StatusCode, result)
	}
}

func (h *EmailsHandler) Forward() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "EmailsHandler.Forward")
		defer span.Finish()
		tracing.TagComponentRest(span)

		var request dto.CreateForwardRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			respondWithError(c, span, http.StatusBadRequest, "Invalid request format", err)
			return
		}

		errs := validateRecipients(ctx, "recipients", request.Recipients)
		if errs.HasErrors() {
			tracing.TraceErr(span, errs)
			c.JSON(http.StatusBadRequest, errs)
			return
		}

		result := h.services.EmailService.Forward(ctx, c.Param("id"), request)
		c.JSON(result.StatusCode, result)
	}
}

func (h *EmailsHandler) MoveToFolder() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "EmailsHandler.MoveToFolder")
		defer span.Finish()
		tracing.TagComponentRest(span)

		var request dto.MoveToFolderRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			respondWithError(c, span, http.StatusBadRequest, "Invalid request format", err)
			return
		}

		result := h.services.EmailService.MoveToFolder(ctx, c.Param("id"), request.FolderName)
		c.JSON(result.StatusCode, result)
	}
}

func (h *EmailsHandler) Star() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "EmailsHandler.Star")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result := h.services.EmailService.StarEmail(ctx, c.Param("id"))
		c.JSON(result.StatusCode, result)
	}
}

func (h *EmailsHandler) Unstar() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "EmailsHandler.Unstar")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result := h.services.EmailService.UnstarEmail(ctx, c.Param("id"))
		c.JSON(result.StatusCode, result)
	}
}

func (h *EmailsHandler) Starred() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "EmailsHandler.Starred")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result := h.services.EmailService.GetStarredEmails(ctx)
		c.JSON(result.StatusCode, result)
	}
}

// validateRecipients checks address syntax and normalizes each address to
// its clean form.
func validateRecipients(ctx context.Context, field string, recipients []dto.RecipientRequest) *custom_err.MultiErrors {
	span, _ := opentracing.StartSpanFromContext(ctx, "validateRecipients")
	defer span.Finish()
	tracing.TagComponentRest(span)

	errs := custom_err.NewMultiErrors()
	seen := make([]string, 0, len(recipients))
	for i := range recipients {
		validate := mailvalidate.ValidateEmailSyntax(recipients[i].EmailAddress)
		if !validate.IsValid || validate.IsSystemGenerated {
			errs.Add(field, "invalid email address: "+recipients[i].EmailAddress, errors.New("invalid email address"))
			continue
		}
		if utils.IsStringInSlice(validate.CleanEmail, seen) {
			errs.Add(field, "duplicate email address: "+validate.CleanEmail, errors.New("duplicate email address"))
			continue
		}
		seen = append(seen, validate.CleanEmail)
		recipients[i].EmailAddress = validate.CleanEmail
	}
	return errs
}

func respondWithError(c *gin.Context, span opentracing.Span, statusCode int, message string, err error) {
	tracing.TraceErr(span, err)
	c.JSON(statusCode, gin.H{"error": message, "details": err.Error()})
}
