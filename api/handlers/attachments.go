package handlers

import (
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/mailflow/mailflow/internal/tracing"
	"github.com/mailflow/mailflow/services"
)

type AttachmentsHandler struct {
	services *services.Services
}

func NewAttachmentsHandler(s *services.Services) *AttachmentsHandler {
	return &AttachmentsHandler{services: s}
}

// Upload accepts a multipart file and returns the attachment id to
// reference when composing an email.
func (h *AttachmentsHandler) Upload() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "AttachmentsHandler.Upload")
		defer span.Finish()
		tracing.TagComponentRest(span)

		fileHeader, err := c.FormFile("file")
		if err != nil {
			respondWithError(c, span, http.StatusBadRequest, "Missing file", err)
			return
		}

		file, err := fileHeader.Open()
		if err != nil {
			respondWithError(c, span, http.StatusBadRequest, "Could not open file", err)
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			respondWithError(c, span, http.StatusInternalServerError, "Could not read file", err)
			return
		}
		if len(data) == 0 {
			respondWithError(c, span, http.StatusBadRequest, "Empty file", errors.New("file is empty"))
			return
		}

		contentType := fileHeader.Header.Get("Content-Type")
		if contentType == "" {
			contentType = "application/octet-stream"
		}

		result := h.services.AttachmentService.Upload(ctx, fileHeader.Filename, contentType, data)
		c.JSON(result.StatusCode, result)
	}
}

// Download streams the attachment payload.
func (h *AttachmentsHandler) Download() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "AttachmentsHandler.Download")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result, data := h.services.AttachmentService.Download(ctx, c.Param("id"))
		if !result.Succeeded {
			c.JSON(result.StatusCode, result)
			return
		}

		c.Header("Content-Disposition", `attachment; filename="`+result.Data.Filename+`"`)
		c.Data(http.StatusOK, result.Data.ContentType, data)
	}
}

func (h *AttachmentsHandler) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "AttachmentsHandler.Delete")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result := h.services.AttachmentService.Delete(ctx, c.Param("id"))
		c.JSON(result.StatusCode, result)
	}
}
