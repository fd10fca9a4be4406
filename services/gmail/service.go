package gmail

import (
	"context"
	"time"

	"github.com/opentracing/opentracing-go"
	"github.com/pkg/errors"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	gmailapi "google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"

	"github.com/replyradar/replyradar/config"
	"github.com/replyradar/replyradar/dto"
	"github.com/replyradar/replyradar/interfaces"
	"github.com/replyradar/replyradar/internal/logger"
	"github.com/replyradar/replyradar/internal/models"
	"github.com/replyradar/replyradar/internal/tracing"
)

type gmailProviderFactory struct {
	log         logger.Logger
	oauthConfig *oauth2.Config
	syncConfig  *config.SyncConfig
	mailboxRepo interfaces.MailboxRepository
}

func NewGmailProviderFactory(
	log logger.Logger,
	oauthCfg *config.GoogleOAuthConfig,
	syncCfg *config.SyncConfig,
	mailboxRepo interfaces.MailboxRepository,
) interfaces.MailboxProviderFactory {
	return &gmailProviderFactory{
		log: log,
		oauthConfig: &oauth2.Config{
			ClientID:     oauthCfg.ClientID,
			ClientSecret: oauthCfg.ClientSecret,
			Endpoint:     google.Endpoint,
			Scopes:       []string{gmailapi.GmailReadonlyScope},
		},
		syncConfig:  syncCfg,
		mailboxRepo: mailboxRepo,
	}
}

// ProviderFor builds a Gmail client from the mailbox's stored credentials.
// Token refresh happens inside the oauth2 transport; refreshed tokens are
// persisted back so the next sync starts from a live credential.
func (f *gmailProviderFactory) ProviderFor(ctx context.Context, mailbox *models.Mailbox) (interfaces.MailboxProvider, error) {
	// Expiry is not stored, so the access token is treated as stale and the
	// transport refreshes it on first use.
	token := &oauth2.Token{
		AccessToken:  mailbox.AccessToken,
		RefreshToken: mailbox.RefreshToken,
		Expiry:       time.Now().Add(-time.Minute),
	}

	source := &savingTokenSource{
		log:         f.log,
		mailboxRepo: f.mailboxRepo,
		mailboxID:   mailbox.ID,
		previous:    token,
		wrapped:     f.oauthConfig.TokenSource(ctx, token),
	}

	service, err := gmailapi.NewService(ctx, option.WithTokenSource(source))
	if err != nil {
		return nil, errors.Wrap(err, "failed to create gmail service")
	}

	return &gmailProvider{
		log:     f.log,
		service: service,
		query:   f.syncConfig.GmailQuery,
	}, nil
}

// savingTokenSource persists refreshed tokens. A persistence failure is
// logged, not fatal; the refreshed token still serves the current sync.
type savingTokenSource struct {
	log         logger.Logger
	mailboxRepo interfaces.MailboxRepository
	mailboxID   string
	previous    *oauth2.Token
	wrapped     oauth2.TokenSource
}

func (s *savingTokenSource) Token() (*oauth2.Token, error) {
	token, err := s.wrapped.Token()
	if err != nil {
		return nil, err
	}
	if token.AccessToken != s.previous.AccessToken {
		s.previous = token
		mailbox, lookupErr := s.mailboxRepo.GetByID(context.Background(), s.mailboxID)
		if lookupErr != nil || mailbox == nil {
			s.log.Warnf("could not load mailbox %s to persist refreshed token: %v", s.mailboxID, lookupErr)
			return token, nil
		}
		mailbox.AccessToken = token.AccessToken
		if token.RefreshToken != "" {
			mailbox.RefreshToken = token.RefreshToken
		}
		if updateErr := s.mailboxRepo.Update(context.Background(), mailbox); updateErr != nil {
			s.log.Warnf("could not persist refreshed token for mailbox %s: %v", s.mailboxID, updateErr)
		}
	}
	return token, nil
}

type gmailProvider struct {
	log     logger.Logger
	service *gmailapi.Service
	query   string
}

// ListMessageIDs returns candidate ids from the mailbox's inbox-scope query,
// newest first. The query is deliberately not restricted to unread mail so a
// re-sync revisits stored-but-unclassified messages.
func (p *gmailProvider) ListMessageIDs(ctx context.Context, maxResults int64) ([]string, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "GmailProvider.ListMessageIDs")
	defer span.Finish()
	tracing.TagComponentService(span)
	span.SetTag("gmail.query", p.query)

	response, err := p.service.Users.Messages.List("me").
		Q(p.query).
		MaxResults(maxResults).
		Context(ctx).
		Do()
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to list gmail messages")
	}

	ids := make([]string, 0, len(response.Messages))
	for _, message := range response.Messages {
		ids = append(ids, message.Id)
	}
	span.SetTag("result.count", len(ids))
	return ids, nil
}

// FetchMessage retrieves the full message and flattens it into a
// provider-neutral envelope.
func (p *gmailProvider) FetchMessage(ctx context.Context, providerMessageID string) (*dto.InboundEnvelope, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "GmailProvider.FetchMessage")
	defer span.Finish()
	tracing.TagComponentService(span)
	span.SetTag("gmail.message_id", providerMessageID)

	message, err := p.service.Users.Messages.Get("me", providerMessageID).
		Format("full").
		Context(ctx).
		Do()
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "failed to fetch gmail message")
	}

	return NormalizeMessage(message), nil
}
