package ingestion

import (
	"context"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/replyradar/replyradar/dto"
	"github.com/replyradar/replyradar/interfaces"
	"github.com/replyradar/replyradar/internal/enum"
	"github.com/replyradar/replyradar/internal/logger"
	"github.com/replyradar/replyradar/internal/models"
	"github.com/replyradar/replyradar/internal/tracing"
	"github.com/replyradar/replyradar/internal/utils"
)

// UpsertEngine is the idempotent store step of ingestion. The provider
// message id is the dedup key; the engine also completes messages a prior
// run stored but failed to classify.
type UpsertEngine struct {
	log                logger.Logger
	threadRepo         interfaces.ThreadRepository
	messageRepo        interfaces.MessageRepository
	classificationRepo interfaces.ClassificationRepository
	classifier         interfaces.ClassifierService
	publisher          interfaces.EventPublisher
}

func NewUpsertEngine(
	log logger.Logger,
	threadRepo interfaces.ThreadRepository,
	messageRepo interfaces.MessageRepository,
	classificationRepo interfaces.ClassificationRepository,
	classifier interfaces.ClassifierService,
	publisher interfaces.EventPublisher,
) *UpsertEngine {
	return &UpsertEngine{
		log:                log,
		threadRepo:         threadRepo,
		messageRepo:        messageRepo,
		classificationRepo: classificationRepo,
		classifier:         classifier,
		publisher:          publisher,
	}
}

// UpsertMessage stores and classifies one normalized message. Write failures
// abort this message only; the caller logs and moves to the next one. A
// message stored without a classification is picked up and completed on the
// next sync pass.
func (e *UpsertEngine) UpsertMessage(ctx context.Context, mailbox *models.Mailbox, envelope *dto.InboundEnvelope) (*dto.MessageSyncResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "UpsertEngine.UpsertMessage")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("provider.message_id", envelope.ProviderMessageID)

	result := &dto.MessageSyncResult{
		ProviderMessageID: envelope.ProviderMessageID,
	}

	existing, err := e.messageRepo.GetByProviderMessageID(ctx, envelope.ProviderMessageID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "dedup lookup failed")
	}

	if existing != nil {
		classification, err := e.classificationRepo.GetByMessageID(ctx, existing.ID)
		if err != nil {
			tracing.TraceErr(span, err)
			return nil, errors.Wrap(err, "classification lookup failed")
		}
		if classification != nil {
			result.MessageID = existing.ID
			result.Status = dto.MessageAlreadyClassified
			result.Classified = true
			span.SetTag("upsert.status", string(result.Status))
			return result, nil
		}

		// Stored by a prior run that failed before classifying. Finish the job.
		result.MessageID = existing.ID
		result.Status = dto.MessageClassifiedNow
		result.Classified = e.classifyAndStore(ctx, mailbox, existing)
		span.SetTag("upsert.status", string(result.Status))
		return result, nil
	}

	thread, err := e.threadRepo.Upsert(ctx, &models.Thread{
		MailboxID:        mailbox.ID,
		UserID:           mailbox.UserID,
		ProviderThreadID: envelope.ProviderThreadID,
		Subject:          utils.NormalizeSubject(envelope.Subject),
		LeadAddress:      envelope.FromAddress,
		LastMessageAt:    utils.ToPtr(envelope.ReceivedAt),
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "thread upsert failed")
	}

	receivedAt := envelope.ReceivedAt
	message := &models.Message{
		MailboxID:         mailbox.ID,
		ThreadID:          thread.ID,
		UserID:            mailbox.UserID,
		ProviderMessageID: envelope.ProviderMessageID,
		ProviderThreadID:  envelope.ProviderThreadID,
		Direction:         enum.EmailInbound,
		FromAddress:       envelope.FromAddress,
		FromName:          envelope.FromName,
		ToAddresses:       envelope.To,
		CcAddresses:       envelope.Cc,
		Subject:           envelope.Subject,
		BodyText:          envelope.BodyText,
		BodyHTML:          envelope.BodyHTML,
		Snippet:           envelope.Snippet,
		IsRead:            envelope.IsRead,
		ReceivedAt:        &receivedAt,
	}
	if err := e.messageRepo.Create(ctx, message); err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "message insert failed")
	}

	if err := e.threadRepo.TouchLastMessageAt(ctx, thread.ID, receivedAt); err != nil {
		e.log.Warnf("failed to advance thread %s activity timestamp: %v", thread.ID, err)
	}

	result.MessageID = message.ID
	result.Status = dto.MessageInserted
	result.Classified = e.classifyAndStore(ctx, mailbox, message)
	span.SetTag("upsert.status", string(result.Status))
	return result, nil
}

// classifyAndStore produces and persists the verdict for a stored message.
// Classification is always the last write, so a crash can never leave a
// Classification without its Message. Failures leave the message stored and
// unclassified for the next pass.
func (e *UpsertEngine) classifyAndStore(ctx context.Context, mailbox *models.Mailbox, message *models.Message) bool {
	span, ctx := opentracing.StartSpanFromContext(ctx, "UpsertEngine.classifyAndStore")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("message.id", message.ID)

	verdict, err := e.classifier.ClassifyEmail(ctx, message)
	if err != nil {
		tracing.TraceErr(span, err)
		e.log.Warnf("classification failed for message %s, will retry on next sync: %v", message.ID, err)
		return false
	}

	classification := &models.Classification{
		MessageID:       message.ID,
		UserID:          mailbox.UserID,
		Sentiment:       verdict.Sentiment,
		InterestLevel:   verdict.InterestLevel,
		ConfidenceScore: verdict.ConfidenceScore,
		Summary:         verdict.Summary,
		SuggestedAction: verdict.SuggestedAction,
		Category:        verdict.Category,
		RawResponse:     models.JSONMap(verdict.Raw),
	}
	if err := e.classificationRepo.Create(ctx, classification); err != nil {
		tracing.TraceErr(span, err)
		e.log.Warnf("failed to store classification for message %s: %v", message.ID, err)
		return false
	}

	if err := e.messageRepo.MarkClassified(ctx, message.ID); err != nil {
		e.log.Warnf("failed to mark message %s classified: %v", message.ID, err)
	}

	if e.publisher != nil {
		event := dto.ReplyClassifiedEvent{
			MessageID:       message.ID,
			ThreadID:        message.ThreadID,
			MailboxID:       mailbox.ID,
			UserID:          mailbox.UserID,
			FromAddress:     message.FromAddress,
			Subject:         message.Subject,
			Sentiment:       verdict.Sentiment,
			InterestLevel:   verdict.InterestLevel,
			ConfidenceScore: verdict.ConfidenceScore,
			Summary:         verdict.Summary,
			SuggestedAction: verdict.SuggestedAction,
		}
		if err := e.publisher.PublishReplyClassified(ctx, event); err != nil {
			e.log.Warnf("failed to publish reply.classified for message %s: %v", message.ID, err)
		}
		e.publisher.PublishNotification(ctx, mailbox.UserID, message.ID, enum.CLASSIFICATION,
			utils.NewEventCompletedDetails().WithCreate())
	}

	return true
}
