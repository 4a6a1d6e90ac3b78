package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/mailflow/mailflow/dto"
	"github.com/mailflow/mailflow/internal/tracing"
	"github.com/mailflow/mailflow/services"
)

type LabelsHandler struct {
	services *services.Services
}

func NewLabelsHandler(s *services.Services) *LabelsHandler {
	return &LabelsHandler{services: s}
}

func (h *LabelsHandler) Create() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "LabelsHandler.Create")
		defer span.Finish()
		tracing.TagComponentRest(span)

		var request dto.CreateLabelRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			respondWithError(c, span, http.StatusBadRequest, "Invalid request format", err)
			return
		}

		result := h.services.LabelService.CreateLabel(ctx, request)
		c.JSON(result.StatusCode, result)
	}
}

func (h *LabelsHandler) List() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "LabelsHandler.List")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result := h.services.LabelService.GetLabels(ctx)
		c.JSON(result.StatusCode, result)
	}
}

func (h *LabelsHandler) Get() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "LabelsHandler.Get")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result := h.services.LabelService.GetLabelByID(ctx, c.Param("id"))
		c.JSON(result.StatusCode, result)
	}
}

func (h *LabelsHandler) Update() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "LabelsHandler.Update")
		defer span.Finish()
		tracing.TagComponentRest(span)

		var request dto.UpdateLabelRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			respondWithError(c, span, http.StatusBadRequest, "Invalid request format", err)
			return
		}

		result := h.services.LabelService.UpdateLabel(ctx, c.Param("id"), request)
		c.JSON(result.StatusCode, result)
	}
}

func (h *LabelsHandler) Delete() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "LabelsHandler.Delete")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result := h.services.LabelService.DeleteLabel(ctx, c.Param("id"))
		c.JSON(result.StatusCode, result)
	}
}

// Emails lists the caller's emails carrying the label.
func (h *LabelsHandler) Emails() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "LabelsHandler.Emails")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result := h.services.LabelService.GetEmailsByLabel(ctx, c.Param("id"))
		c.JSON(result.StatusCode, result)
	}
}

func (h *LabelsHandler) Attach() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "LabelsHandler.Attach")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result := h.services.LabelService.AttachLabel(ctx, c.Param("id"), c.Param("labelId"))
		c.JSON(result.StatusCode, result)
	}
}

func (h *LabelsHandler) Detach() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := opentracing.StartSpanFromContext(ctx, "LabelsHandler.Detach")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result := h.services.LabelService.DetachLabel(ctx, c.Param("id"), c.Param("labelId"))
		c.JSON(result.StatusCode, result)
	}
}
