package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/opentracing/opentracing-go"

	"github.com/replyradar/replyradar/interfaces"
	"github.com/replyradar/replyradar/internal/models"
	"github.com/replyradar/replyradar/internal/tracing"
	"github.com/replyradar/replyradar/internal/utils"
)

// ownedMailbox loads the mailbox from the :id param and verifies the caller
// owns it. Missing and foreign mailboxes both answer 404 so mailbox ids are
// not probeable across users.
func ownedMailbox(c *gin.Context, ctx context.Context, mailboxRepository interfaces.MailboxRepository, span opentracing.Span) (*models.Mailbox, bool) {
	userID := utils.GetUserIdFromContext(ctx)
	if userID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
		return nil, false
	}

	id := c.Param("id")
	tracing.TagEntity(span, id)

	record, err := mailboxRepository.GetByID(ctx, id)
	if err != nil {
		tracing.TraceErr(span, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return nil, false
	}
	if record == nil || record.UserID != userID {
		c.JSON(http.StatusNotFound, gin.H{"error": "mailbox not found"})
		return nil, false
	}

	return record, true
}
