package repository

import (
	"context"
	"errors"

	"github.com/opentracing/opentracing-go"
	"gorm.io/gorm"

	"github.com/replyradar/replyradar/interfaces"
	"github.com/replyradar/replyradar/internal/models"
	"github.com/replyradar/replyradar/internal/tracing"
)

type classificationRepository struct {
	db *gorm.DB
}

func NewClassificationRepository(db *gorm.DB) interfaces.ClassificationRepository {
	return &classificationRepository{
		db: db,
	}
}

// Create stores a verdict. The unique index on message_id guarantees at most
// one row per message; a duplicate insert surfaces as an error and the caller
// treats the existing row as authoritative.
func (r *classificationRepository) Create(ctx context.Context, classification *models.Classification) error {
	span, ctx := opentracing.StartSpanFromContext(ctx, "classificationRepository.Create")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	if classification == nil || classification.MessageID == "" {
		err := ErrInvalidInput
		tracing.TraceErr(span, err)
		return err
	}

	if err := r.db.WithContext(ctx).Create(classification).Error; err != nil {
		tracing.TraceErr(span, err)
		return err
	}
	span.SetTag("classification.id", classification.ID)
	return nil
}

func (r *classificationRepository) GetByMessageID(ctx context.Context, messageID string) (*models.Classification, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "classificationRepository.GetByMessageID")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var classification models.Classification
	if err := r.db.WithContext(ctx).
		Where("message_id = ?", messageID).
		First(&classification).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		tracing.TraceErr(span, err)
		return nil, err
	}
	return &classification, nil
}

func (r *classificationRepository) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Classification, int64, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "classificationRepository.ListByUser")
	defer span.Finish()
	tracing.TagComponentPostgresRepository(span)

	var classifications []*models.Classification
	var count int64

	if err := r.db.WithContext(ctx).Model(&models.Classification{}).
		Where("user_id = ?", userID).
		Count(&count).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, 0, err
	}

	if err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&classifications).Error; err != nil {
		tracing.TraceErr(span, err)
		return nil, 0, err
	}

	return classifications, count, nil
}
