package repository

import (
	"context"
	"errors"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/replyradar/replyradar/interfaces"
	"github.com/replyradar/replyradar/internal/models"
	"github.com/replyradar/replyradar/internal/tracing"
	"github.com/replyradar/replyradar/internal/utils"
)

type messageRepository struct {
	db *gorm.DB
}

func NewMessageRepository(db *gorm.DB) interfaces.MessageRepository {
	return &messageRepository{
		db: db,
	}
}

func (r *messageRepository) Create(ctx context.Context, message *models.Message) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "messageRepository.Create")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if message == nil || message.ProviderMessageID == "" {
		err := ErrInvalidInput
		tracing.TraceErr(span, err)
		return err
	}

	if message.Subject != "" {
		message.Subject = utils.NormalizeSubject(message.Subject)
	}

	if err := r.db.WithContext(ctx).Create(message).Error; err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	span.SetTag("message.id", message.ID)
	return nil
}

func (r *messageRepository) GetByID(ctx context.Context, id string) (*models.Message, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "messageRepository.GetByID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var message models.Message
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &message, nil
}

// GetByProviderMessageID is the dedup lookup. Returns nil without error when
// the message has not been seen before.
func (r *messageRepository) GetByProviderMessageID(ctx context.Context, providerMessageID string) (*models.Message, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "messageRepository.GetByProviderMessageID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var message models.Message
	if err := r.db.WithContext(ctx).
		Where("provider_message_id = ?", providerMessageID).
		First(&message).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &message, nil
}

// ListByThread retrieves all messages in a conversation, oldest first.
func (r *messageRepository) ListByThread(ctx context.Context, threadID string) ([]*models.Message, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "messageRepository.ListByThread")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var messages []*models.Message
	if err := r.db.WithContext(ctx).
		Where("thread_id = ?", threadID).
		Order("received_at ASC").
		Find(&messages).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return messages, nil
}

func (r *messageRepository) ListByMailbox(ctx context.Context, mailboxID string, limit, offset int) ([]*models.Message, int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "messageRepository.ListByMailbox")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var messages []*models.Message
	var count int64

	if err := r.db.WithContext(ctx).Model(&models.Message{}).
		Where("mailbox_id = ?", mailboxID).
		Count(&count).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("mailbox_id = ?", mailboxID).
		Order("received_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&messages).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, 0, err
	}

	return messages, count, nil
}

// MarkClassified flips the classified flag once a verdict is stored.
func (r *messageRepository) MarkClassified(ctx context.Context, id string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "messageRepository.MarkClassified")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"classified": true,
			"updated_at": utils.Now(),
		})
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		tracing.TraceErr(span, ErrMessageNotFound)
		return ErrMessageNotFound
	}
	return nil
}

func (r *messageRepository) Update(ctx context.Context, message *models.Message) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "messageRepository.Update")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if message == nil || message.ID == "" {
		err := ErrInvalidInput
		tracing.TraceErr(span, err)
		return err
	}

	message.UpdatedAt = utils.Now()
	result := r.db.WithContext(ctx).
		Model(&models.Message{}).
		Where("id = ?", message.ID).
		Updates(map[string]interface{}{
			"thread_id":  message.ThreadID,
			"classified": message.Classified,
			"snippet":    message.Snippet,
			"updated_at": message.UpdatedAt,
		})
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		tracing.TraceErr(span, ErrMessageNotFound)
		return ErrMessageNotFound
	}
	return nil
}
