package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/replyradar/replyradar/interfaces"
	"github.com/replyradar/replyradar/internal/tracing"
	"github.com/replyradar/replyradar/internal/utils"
)

const (
	defaultPageSize = 25
	maxPageSize     = 100
)

func pagination(c *gin.Context) (limit, offset int) {
	limit = defaultPageSize
	if v, err := strconv.Atoi(c.DefaultQuery("limit", "")); err == nil && v > 0 {
		limit = v
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	if v, err := strconv.Atoi(c.DefaultQuery("offset", "")); err == nil && v > 0 {
		offset = v
	}
	return limit, offset
}

// ListThreads returns the conversation threads of one mailbox, most recent
// activity first.
func ListThreads(threadRepository interfaces.ThreadRepository, mailboxRepository interfaces.MailboxRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := tracing.StartTracerSpan(ctx, "ListThreads")
		defer span.Finish()
		tracing.TagComponentRest(span)

		record, ok := ownedMailbox(c, ctx, mailboxRepository, span)
		if !ok {
			return
		}

		limit, offset := pagination(c)
		threads, total, err := threadRepository.ListByMailbox(ctx, record.ID, limit, offset)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"threads": threads, "total": total})
	}
}

// ListThreadMessages returns the messages of one thread owned by the caller.
func ListThreadMessages(threadRepository interfaces.ThreadRepository, messageRepository interfaces.MessageRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := tracing.StartTracerSpan(ctx, "ListThreadMessages")
		defer span.Finish()
		tracing.TagComponentRest(span)

		userID := utils.GetUserIdFromContext(ctx)
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
			return
		}

		id := c.Param("id")
		tracing.TagEntity(span, id)

		thread, err := threadRepository.GetByID(ctx, id)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		if thread == nil || thread.UserID != userID {
			c.JSON(http.StatusNotFound, gin.H{"error": "thread not found"})
			return
		}

		messages, err := messageRepository.ListByThread(ctx, thread.ID)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"messages": messages})
	}
}
