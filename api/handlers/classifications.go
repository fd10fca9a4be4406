package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/replyradar/replyradar/interfaces"
	"github.com/replyradar/replyradar/internal/tracing"
	"github.com/replyradar/replyradar/internal/utils"
)

// ListClassifications returns the caller's classification verdicts, newest
// first.
func ListClassifications(classificationRepository interfaces.ClassificationRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := tracing.StartTracerSpan(ctx, "ListClassifications")
		defer span.Finish()
		tracing.TagComponentRest(span)

		userID := utils.GetUserIdFromContext(ctx)
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
			return
		}

		limit, offset := pagination(c)
		classifications, total, err := classificationRepository.ListByUser(ctx, userID, limit, offset)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"classifications": classifications, "total": total})
	}
}
