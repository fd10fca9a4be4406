package repository

import (
	"context"
	"errors"
	"time"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/replyradar/replyradar/interfaces"
	"github.com/replyradar/replyradar/internal/enum"
	"github.com/replyradar/replyradar/internal/models"
	"github.com/replyradar/replyradar/internal/tracing"
	"github.com/replyradar/replyradar/internal/utils"
)

type mailboxRepository struct {
	db *gorm.DB
}

func NewMailboxRepository(db *gorm.DB) interfaces.MailboxRepository {
	return &mailboxRepository{
		db: db,
	}
}

func (r *mailboxRepository) Create(ctx context.Context, mailbox *models.Mailbox) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailboxRepository.Create")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if mailbox == nil {
		err := ErrInvalidInput
		tracing.TraceErr(span, err)
		return err
	}

	if err := r.db.WithContext(ctx).Create(mailbox).Error; err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	span.SetTag("mailbox.id", mailbox.ID)
	return nil
}

// GetByID retrieves a mailbox by its ID
func (r *mailboxRepository) GetByID(ctx context.Context, id string) (*models.Mailbox, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailboxRepository.GetByID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var mailbox models.Mailbox
	if err := r.db.WithContext(ctx).Where("id = ?", id).First(&mailbox).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &mailbox, nil
}

// GetByEmailAddress retrieves a mailbox by the account's email address
func (r *mailboxRepository) GetByEmailAddress(ctx context.Context, emailAddress string) (*models.Mailbox, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailboxRepository.GetByEmailAddress")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var mailbox models.Mailbox
	if err := r.db.WithContext(ctx).Where("email_address = ?", emailAddress).First(&mailbox).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &mailbox, nil
}

// ListByUser retrieves all mailboxes owned by a user
func (r *mailboxRepository) ListByUser(ctx context.Context, userID string) ([]*models.Mailbox, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailboxRepository.ListByUser")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var mailboxes []*models.Mailbox
	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at ASC").
		Find(&mailboxes).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	return mailboxes, nil
}

// ListActive retrieves every mailbox eligible for a sync pass. Disabled
// mailboxes are excluded; errored ones are retried.
func (r *mailboxRepository) ListActive(ctx context.Context) ([]*models.Mailbox, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailboxRepository.ListActive")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var mailboxes []*models.Mailbox
	if err := r.db.WithContext(ctx).
		Where("status != ?", enum.MailboxDisabled).
		Order("created_at ASC").
		Find(&mailboxes).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	span.SetTag("result.count", len(mailboxes))
	return mailboxes, nil
}

func (r *mailboxRepository) Update(ctx context.Context, mailbox *models.Mailbox) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailboxRepository.Update")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if mailbox == nil || mailbox.ID == "" {
		err := ErrInvalidInput
		tracing.TraceErr(span, err)
		return err
	}

	mailbox.UpdatedAt = utils.Now()
	result := r.db.WithContext(ctx).Save(mailbox)
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}
	return nil
}

// UpdateStatus records the connection state and, for errors, the cause.
func (r *mailboxRepository) UpdateStatus(ctx context.Context, id string, status string, errorMessage string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailboxRepository.UpdateStatus")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)
	span.SetTag("mailbox.id", id)
	span.SetTag("mailbox.status", status)

	result := r.db.WithContext(ctx).
		Model(&models.Mailbox{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":        status,
			"error_message": errorMessage,
			"updated_at":    utils.Now(),
		})
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		tracing.TraceErr(span, ErrMailboxNotFound)
		return ErrMailboxNotFound
	}
	return nil
}

// UpdateLastSyncedAt moves the display watermark. Called at the end of every
// sync pass regardless of per-message outcomes.
func (r *mailboxRepository) UpdateLastSyncedAt(ctx context.Context, id string, syncedAt time.Time) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailboxRepository.UpdateLastSyncedAt")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	result := r.db.WithContext(ctx).
		Model(&models.Mailbox{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"last_synced_at": syncedAt,
			"updated_at":     utils.Now(),
		})
	if result.Error != nil {
		tracing.TraceErr(span, result.Error)
		return result.Error
	}
	if result.RowsAffected == 0 {
		tracing.TraceErr(span, ErrMailboxNotFound)
		return ErrMailboxNotFound
	}
	return nil
}

func (r *mailboxRepository) Delete(ctx context.Context, id string) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "mailboxRepository.Delete")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	// Owned rows go with the mailbox: threads, messages and their
	// classifications are never reachable without it.
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("id = ?", id).Delete(&models.Mailbox{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrMailboxNotFound
		}
		if err := tx.Where("message_id IN (?)",
			tx.Session(&gorm.Session{NewDB: true}).Model(&models.Message{}).Select("id").Where("mailbox_id = ?", id),
		).Delete(&models.Classification{}).Error; err != nil {
			return err
		}
		if err := tx.Where("mailbox_id = ?", id).Delete(&models.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("mailbox_id = ?", id).Delete(&models.Thread{}).Error
	})
	if err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	return nil
}
