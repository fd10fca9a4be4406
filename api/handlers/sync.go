package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	replyradar_errors "github.com/replyradar/replyradar/errors"
	"github.com/replyradar/replyradar/interfaces"
	"github.com/replyradar/replyradar/internal/tracing"
)

// SyncMailbox runs a full sync pass for one mailbox and reports the
// per-message outcome counters.
func SyncMailbox(syncService interfaces.SyncService, mailboxRepository interfaces.MailboxRepository) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := tracing.StartTracerSpan(ctx, "SyncMailbox")
		defer span.Finish()
		tracing.TagComponentRest(span)

		record, ok := ownedMailbox(c, ctx, mailboxRepository, span)
		if !ok {
			return
		}

		result, err := syncService.SyncMailbox(ctx, record.ID)
		if err != nil {
			tracing.TraceErr(span, err)
			if err == replyradar_errors.ErrMailboxDisabled {
				c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
				return
			}
			// Listing failures still carry partial results worth returning.
			if result != nil {
				c.JSON(http.StatusBadGateway, result)
				return
			}
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}

// SyncAllMailboxes runs a fleet-wide sync pass. One mailbox failing does not
// stop the rest; per-mailbox outcomes are reported in the aggregate.
func SyncAllMailboxes(syncService interfaces.SyncService) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx := c.Request.Context()
		span, ctx := tracing.StartTracerSpan(ctx, "SyncAllMailboxes")
		defer span.Finish()
		tracing.TagComponentRest(span)

		result, err := syncService.SyncAllMailboxes(ctx)
		if err != nil {
			tracing.TraceErr(span, err)
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}

		c.JSON(http.StatusOK, result)
	}
}
