package ingestion

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"

	"github.com/replyradar/replyradar/config"
	"github.com/replyradar/replyradar/dto"
	replyradar_errors "github.com/replyradar/replyradar/errors"
	"github.com/replyradar/replyradar/interfaces"
	"github.com/replyradar/replyradar/internal/enum"
	"github.com/replyradar/replyradar/internal/logger"
	"github.com/replyradar/replyradar/internal/models"
	"github.com/replyradar/replyradar/internal/tracing"
	"github.com/replyradar/replyradar/internal/utils"
)

type syncService struct {
	log             logger.Logger
	mailboxRepo     interfaces.MailboxRepository
	providerFactory interfaces.MailboxProviderFactory
	upsertEngine    *UpsertEngine
	syncConfig      *config.SyncConfig
}

func NewSyncService(
	log logger.Logger,
	mailboxRepo interfaces.MailboxRepository,
	providerFactory interfaces.MailboxProviderFactory,
	upsertEngine *UpsertEngine,
	syncConfig *config.SyncConfig,
) interfaces.SyncService {
	return &syncService{
		log:             log,
		mailboxRepo:     mailboxRepo,
		providerFactory: providerFactory,
		upsertEngine:    upsertEngine,
		syncConfig:      syncConfig,
	}
}

// SyncMailbox runs one full sync pass over a mailbox. Messages are handled
// strictly sequentially so the dedup existence check cannot race with
// itself. A listing failure aborts the pass; per-message failures are
// logged, counted, and skipped.
func (s *syncService) SyncMailbox(ctx context.Context, mailboxID string) (*dto.MailboxSyncResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SyncService.SyncMailbox")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("mailbox.id", mailboxID)

	mailbox, err := s.mailboxRepo.GetByID(ctx, mailboxID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if mailbox == nil {
		err := errors.New("mailbox not found")
		tracing.TraceErr(span, err)
		return nil, err
	}
	if mailbox.Status == enum.MailboxDisabled {
		tracing.TraceErr(span, replyradar_errors.ErrMailboxDisabled)
		return nil, replyradar_errors.ErrMailboxDisabled
	}

	deadline := time.Duration(s.syncConfig.SyncDeadlineMin) * time.Minute
	if deadline <= 0 {
		deadline = 10 * time.Minute
	}
	ctx, cancel := context.WithTimeout(ctx, deadline)
	defer cancel()

	return s.syncMailbox(ctx, mailbox)
}

func (s *syncService) syncMailbox(ctx context.Context, mailbox *models.Mailbox) (*dto.MailboxSyncResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SyncService.syncMailbox")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("mailbox.id", mailbox.ID)

	result := &dto.MailboxSyncResult{
		MailboxID:    mailbox.ID,
		EmailAddress: mailbox.EmailAddress,
		StartedAt:    utils.Now(),
	}

	provider, err := s.providerFactory.ProviderFor(ctx, mailbox)
	if err != nil {
		tracing.TraceErr(span, err)
		s.recordMailboxError(ctx, mailbox.ID, err)
		result.Error = err.Error()
		result.CompletedAt = utils.Now()
		return result, err
	}

	ids, err := provider.ListMessageIDs(ctx, s.syncConfig.MaxMessagesPerSync)
	if err != nil {
		tracing.TraceErr(span, err)
		s.recordMailboxError(ctx, mailbox.ID, err)
		result.Error = err.Error()
		result.CompletedAt = utils.Now()
		return result, err
	}
	span.SetTag("listing.count", len(ids))
	result.Total = len(ids)

	for _, providerMessageID := range ids {
		messageResult := s.processMessage(ctx, provider, mailbox, providerMessageID)
		result.Messages = append(result.Messages, *messageResult)

		switch messageResult.Status {
		case dto.MessageInserted:
			result.Processed++
			if messageResult.Classified {
				result.Classified++
			}
		case dto.MessageClassifiedNow:
			if messageResult.Classified {
				result.Classified++
			}
		case dto.MessageAlreadyClassified:
			result.Skipped++
		case dto.MessageFailed:
			result.Failed++
		}

		if messageResult.Status == dto.MessageInserted {
			result.Inserted++
		}
	}

	// The watermark reflects "sync attempted", not "sync fully succeeded",
	// so it advances even when individual messages failed.
	now := utils.Now()
	if err := s.mailboxRepo.UpdateLastSyncedAt(ctx, mailbox.ID, now); err != nil {
		s.log.Warnf("failed to update watermark for mailbox %s: %v", mailbox.ID, err)
	}
	if mailbox.Status != enum.MailboxConnected {
		if err := s.mailboxRepo.UpdateStatus(ctx, mailbox.ID, enum.MailboxConnected.String(), ""); err != nil {
			s.log.Warnf("failed to reset status for mailbox %s: %v", mailbox.ID, err)
		}
	}

	result.Success = true
	result.CompletedAt = now
	span.SetTag("result.processed", result.Processed)
	span.SetTag("result.classified", result.Classified)
	return result, nil
}

// processMessage handles a single candidate id. All failures are local to
// the message: the batch continues regardless.
func (s *syncService) processMessage(ctx context.Context, provider interfaces.MailboxProvider, mailbox *models.Mailbox, providerMessageID string) *dto.MessageSyncResult {
	envelope, err := provider.FetchMessage(ctx, providerMessageID)
	if err != nil {
		s.log.Warnf("fetch failed for message %s on mailbox %s, skipping: %v", providerMessageID, mailbox.ID, err)
		return &dto.MessageSyncResult{
			ProviderMessageID: providerMessageID,
			Status:            dto.MessageFailed,
			Error:             err.Error(),
		}
	}
	if envelope == nil {
		s.log.Warnf("empty fetch for message %s on mailbox %s, skipping", providerMessageID, mailbox.ID)
		return &dto.MessageSyncResult{
			ProviderMessageID: providerMessageID,
			Status:            dto.MessageFailed,
			Error:             "provider returned empty message",
		}
	}

	result, err := s.upsertEngine.UpsertMessage(ctx, mailbox, envelope)
	if err != nil {
		s.log.Warnf("upsert failed for message %s on mailbox %s, skipping: %v", providerMessageID, mailbox.ID, err)
		return &dto.MessageSyncResult{
			ProviderMessageID: providerMessageID,
			Status:            dto.MessageFailed,
			Error:             err.Error(),
		}
	}
	return result
}

// SyncAllMailboxes runs the per-mailbox algorithm over every active mailbox
// sequentially. One mailbox failing is recorded and never aborts the rest.
func (s *syncService) SyncAllMailboxes(ctx context.Context) (*dto.FleetSyncResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "SyncService.SyncAllMailboxes")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	mailboxes, err := s.mailboxRepo.ListActive(ctx)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	fleet := &dto.FleetSyncResult{
		StartedAt: utils.Now(),
	}

	for _, mailbox := range mailboxes {
		result, err := s.SyncMailbox(ctx, mailbox.ID)
		if err != nil {
			fleet.Failed++
			if result == nil {
				result = &dto.MailboxSyncResult{
					MailboxID:    mailbox.ID,
					EmailAddress: mailbox.EmailAddress,
					Error:        err.Error(),
				}
			}
			fleet.Mailboxes = append(fleet.Mailboxes, *result)
			continue
		}
		fleet.Succeeded++
		fleet.Mailboxes = append(fleet.Mailboxes, *result)
	}

	fleet.CompletedAt = utils.Now()
	span.SetTag("result.succeeded", fleet.Succeeded)
	span.SetTag("result.failed", fleet.Failed)
	return fleet, nil
}

func (s *syncService) recordMailboxError(ctx context.Context, mailboxID string, cause error) {
	if err := s.mailboxRepo.UpdateStatus(ctx, mailboxID, enum.MailboxError.String(), cause.Error()); err != nil {
		s.log.Warnf("failed to record error status for mailbox %s: %v", mailboxID, err)
	}
}
