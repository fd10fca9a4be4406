package mailbox

import (
	"context"

	"github.com/customeros/mailsherpa/mailvalidate"
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

var (
	ErrInvalidEmailAddress   = errors.New("invalid email address")
	ErrMailboxAlreadyExists  = errors.New("mailbox already connected")
	ErrMissingCredentials    = errors.New("access and refresh tokens are required")
	ErrMissingOwner          = errors.New("user id is required")
	ErrMailboxLookupConflict = errors.New("mailbox belongs to another user")
)

type mailboxService struct {
	log         logger.Logger
	mailboxRepo interfaces.MailboxRepository
}

func NewMailboxService(log logger.Logger, mailboxRepo interfaces.MailboxRepository) interfaces.MailboxService {
	return &mailboxService{
		log:         log,
		mailboxRepo: mailboxRepo,
	}
}

// ConnectMailbox enrolls a provider account after OAuth authorization. The
// address must be syntactically valid and not already enrolled.
func (s *mailboxService) ConnectMailbox(ctx context.Context, request dto.ConnectMailboxRequest) (*dto.MailboxResponse, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "MailboxService.ConnectMailbox")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)

	userID := utils.GetUserIdFromContext(ctx)
	if userID == "" {
		tracing.TraceErr(span, ErrMissingOwner)
		return nil, ErrMissingOwner
	}
	if request.AccessToken == "" || request.RefreshToken == "" {
		tracing.TraceErr(span, ErrMissingCredentials)
		return nil, ErrMissingCredentials
	}

	validation := mailvalidate.ValidateEmailSyntax(request.EmailAddress)
	if !validation.IsValid {
		tracing.TraceErr(span, ErrInvalidEmailAddress)
		return nil, ErrInvalidEmailAddress
	}
	emailAddress := validation.CleanEmail

	existing, err := s.mailboxRepo.GetByEmailAddress(ctx, emailAddress)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}
	if existing != nil {
		if existing.UserID != userID {
			tracing.TraceErr(span, ErrMailboxLookupConflict)
			return nil, ErrMailboxLookupConflict
		}
		tracing.TraceErr(span, ErrMailboxAlreadyExists)
		return nil, ErrMailboxAlreadyExists
	}

	mailbox := &models.Mailbox{
		UserID:            userID,
		EmailAddress:      emailAddress,
		ProviderAccountID: request.ProviderAccountID,
		Status:            enum.MailboxConnected,
		AccessToken:       request.AccessToken,
		RefreshToken:      request.RefreshToken,
	}
	if err := s.mailboxRepo.Create(ctx, mailbox); err != nil {
		tracing.TraceErr(span, err)
		return nil, err
	}

	s.log.Infof("mailbox %s connected for user %s", mailbox.ID, userID)
	return ToMailboxResponse(mailbox), nil
}

func ToMailboxResponse(mailbox *models.Mailbox) *dto.MailboxResponse {
	response := &dto.MailboxResponse{
		ID:           mailbox.ID,
		EmailAddress: mailbox.EmailAddress,
		Status:       mailbox.Status.String(),
		ErrorMessage: mailbox.ErrorMessage,
	}
	if mailbox.LastSyncedAt != nil {
		response.LastSyncedAt = mailbox.LastSyncedAt.UTC().Format("2006-01-02T15:04:05Z07:00")
	}
	return response
}
