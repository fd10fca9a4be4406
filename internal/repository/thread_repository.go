package repository

import (
	"context"
	"errors"
	"time"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/replyradar/replyradar/interfaces"
	"github.com/replyradar/replyradar/internal/models"
	"github.com/replyradar/replyradar/internal/tracing"
	"github.com/replyradar/replyradar/internal/utils"
)

type threadRepository struct {
	db *gorm.DB
}

func NewThreadRepository(db *gorm.DB) interfaces.ThreadRepository {
	return &threadRepository{
		db: db,
	}
}

func (r *threadRepository) GetByID(ctx context.Context, id string) (*models.Thread, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "threadRepository.GetByID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var thread models.Thread
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&thread).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &thread, nil
}

func (r *threadRepository) GetByProviderThreadID(ctx context.Context, mailboxID, providerThreadID string) (*models.Thread, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "threadRepository.GetByProviderThreadID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var thread models.Thread
	if err := r.db.WithContext(ctx).
		Where("mailbox_id = ? AND provider_thread_id = ?", mailboxID, providerThreadID).
		First(&thread).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &thread, nil
}

// ListByMailbox retrieves threads for a mailbox with pagination, newest
// activity first.
func (r *threadRepository) ListByMailbox(ctx context.Context, mailboxID string, limit, offset int) ([]*models.Thread, int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "threadRepository.ListByMailbox")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var threads []*models.Thread
	var count int64

	if err := r.db.WithContext(ctx).Model(&models.Thread{}).
		Where("mailbox_id = ?", mailboxID).
		Count(&count).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("mailbox_id = ?", mailboxID).
		Order("last_message_at DESC NULLS LAST").
		Limit(limit).
		Offset(offset).
		Find(&threads).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, 0, err
	}

	return threads, count, nil
}

// Upsert finds the thread by (mailbox_id, provider_thread_id) or creates it.
// A concurrent insert losing the race falls back to the winner's row.
func (r *threadRepository) Upsert(ctx context.Context, thread *models.Thread) (*models.Thread, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "threadRepository.Upsert")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if thread == nil || thread.MailboxID == "" || thread.ProviderThreadID == "" {
		err := ErrInvalidInput
		tracing.TraceErr(span, err)
		return nil, err
	}

	existing, err := r.GetByProviderThreadID(ctx, thread.MailboxID, thread.ProviderThreadID)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if existing != nil {
		span.SetTag("duplicate", true)
		return existing, nil
	}

	if err := r.db.WithContext(ctx).Create(thread).Error; err != nil {
		existing, lookupErr := r.GetByProviderThreadID(ctx, thread.MailboxID, thread.ProviderThreadID)
		if lookupErr == nil && existing != nil {
			span.SetTag("duplicate", true)
			return existing, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return thread, nil
}

// TouchLastMessageAt advances the thread's activity timestamp. Older values
// never overwrite newer ones.
func (r *threadRepository) TouchLastMessageAt(ctx context.Context, id string, lastMessageAt time.Time) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "threadRepository.TouchLastMessageAt")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	result := r.db.WithContext(ctx).
		Model(&models.Thread{}).
		Where("id = ? AND (last_message_at IS NULL OR last_message_at < ?)", id, lastMessageAt).
		Updates(map[string]interface{}{
			"last_message_at": lastMessageAt,
			"updated_at":      utils.Now(),
		})
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}
	return nil
}
