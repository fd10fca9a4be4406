package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/replyradar/replyradar/dto"
	"github.com/replyradar/replyradar/interfaces"
	"github.com/replyradar/replyradar/internal/tracing"
	"github.com/replyradar/replyradar/internal/utils"
	"github.com/replyradar/replyradar/services/mailbox"
)

// ConnectMailbox enrolls a Gmail account for polling
func ConnectMailbox(mailboxService interfaces.MailboxService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := tracing.StartTracerSpan(ctx, "ConnectMailbox")
		defer span.Finish()
		tracing.TagComponentRest(span)

		var request dto.ConnectMailboxRequest
		if err := c.ShouldBindJSON(&request); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}

		response, err := mailboxService.ConnectMailbox(ctx, request)
		if err != nil {
			tracing.TraceErr(span, err)
			switch err {
			case mailbox.ErrMissingOwner, mailbox.ErrMissingCredentials, mailbox.ErrInvalidEmailAddress:
				c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			case mailbox.ErrMailboxAlreadyExists, mailbox.ErrMailboxLookupConflict:
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
			default:
				c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			}
			return
		}

		c.JSON(http.StatusCreated, response)
	}
}

// ListMailboxes returns the caller's connected mailboxes
func ListMailboxes(mailboxRepository interfaces.MailboxRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := tracing.StartTracerSpan(ctx, "ListMailboxes")
		defer span.Finish()
		tracing.TagComponentRest(span)

		userID := utils.GetUserIdFromContext(ctx)
		if userID == "" {
			c.JSON(http.StatusBadRequest, gin.H{"error": "user id is required"})
			return
		}

		mailboxes, err := mailboxRepository.ListByUser(ctx, userID)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		responses := make([]*dto.MailboxResponse, 0, len(mailboxes))
		for _, m := range mailboxes {
			responses = append(responses, mailbox.ToMailboxResponse(m))
		}

		c.JSON(http.StatusOK, gin.H{"mailboxes": responses})
	}
}

// GetMailbox returns one mailbox owned by the caller
func GetMailbox(mailboxRepository interfaces.MailboxRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := tracing.StartTracerSpan(ctx, "GetMailbox")
		defer span.Finish()
		tracing.TagComponentRest(span)

		record, ok := ownedMailbox(c, ctx, mailboxRepository, span)
		if !ok {
			return
		}

		c.JSON(http.StatusOK, mailbox.ToMailboxResponse(record))
	}
}

// RemoveMailbox disconnects a mailbox and stops polling it
func RemoveMailbox(mailboxRepository interfaces.MailboxRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := tracing.StartTracerSpan(ctx, "RemoveMailbox")
		defer span.Finish()
		tracing.TagComponentRest(span)

		record, ok := ownedMailbox(c, ctx, mailboxRepository, span)
		if !ok {
			return
		}

		if err := mailboxRepository.Delete(ctx, record.ID); err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, gin.H{"status": "mailbox removed", "id": record.ID})
	}
}
