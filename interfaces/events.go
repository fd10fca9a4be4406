package interfaces

import (
	"context"

	"github.com/replyradar/replyradar/dto"
	"github.com/replyradar/replyradar/internal/enum"
	"github.com/replyradar/replyradar/internal/utils"
)

type EventPublisher interface {
	PublishReplyClassified(ctx context.Context, event dto.ReplyClassifiedEvent) error
	PublishFanoutEvent(ctx context.Context, entityId string, entityType enum.EntityType, message interface{}) error
	PublishDirectEvent(ctx context.Context, entityId string, entityType enum.EntityType, message interface{}) error
	PublishNotification(ctx context.Context, userId string, entityId string, entityType enum.EntityType, details *utils.EventCompletedDetails)
	Close() error
}
