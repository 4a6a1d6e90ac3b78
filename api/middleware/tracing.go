package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go/log"
	"github.com/pkg/errors"

	"github.com/mailflow/mailflow/internal/tracing"
	"github.com/mailflow/mailflow/internal/utils"
)

// TracingMiddleware creates a new span for each request and adds common tags
func TracingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, span := tracing.StartHttpServerTracerSpanWithHeader(
			c.Request.Context(),
			c.Request.Method+" "+c.FullPath(),
			c.Request.Header,
		)
		defer span.Finish()

		tracing.TagComponentRest(span)

		if userId := utils.GetUserIdFromContext(ctx); userId != "" {
			tracing.TagUserId(span, userId)
		}

		if id := c.Param("id"); id != "" {
			tracing.TagEntity(span, id)
		}

		c.Request = c.Request.WithContext(ctx)

		c.Next()

		if status := c.Writer.Status(); status >= 400 {
			tracing.TraceErr(span, errors.Errorf("http %d", status), log.String("event", "error"))
		}
	}
}
