package services

import (
	"github.com/replyradar/replyradar/config"
	"github.com/replyradar/replyradar/interfaces"
	"github.com/replyradar/replyradar/internal/logger"
	"github.com/replyradar/replyradar/internal/repository"
	"github.com/replyradar/replyradar/services/classifier"
	"github.com/replyradar/replyradar/services/events"
	"github.com/replyradar/replyradar/services/gmail"
	"github.com/replyradar/replyradar/services/ingestion"
	"github.com/replyradar/replyradar/services/mailbox"
	"github.com/replyradar/replyradar/services/spam_filter"
)

type Services struct {
	EventsService     *events.EventsService
	SpamFilterService interfaces.SpamFilterService
	ClassifierService interfaces.ClassifierService
	ProviderFactory   interfaces.MailboxProviderFactory
	MailboxService    interfaces.MailboxService
	SyncService       interfaces.SyncService
}

func InitServices(cfg *config.Config, log logger.Logger, repos *repository.Repositories) (*Services, error) {
	// events (optional, the pipeline runs without a broker)
	var eventsService *events.EventsService
	var publisher interfaces.EventPublisher
	if cfg.AppConfig.RabbitMQURL != "" {
		publisherConfig := &events.PublisherConfig{
			MessageTTL:          events.DefaultMessageTTL,
			MaxRetries:          events.DefaultMaxRetries,
			PublishTimeout:      events.DefaultPublishTimeout,
			ReconnectBackoff:    events.DefaultReconnectBackoff,
			MaxReconnectBackoff: events.DefaultMaxReconnectBackoff,
		}
		es, err := events.NewEventsService(cfg.AppConfig.RabbitMQURL, log, publisherConfig)
		if err != nil {
			return nil, err
		}
		eventsService = es
		publisher = es.Publisher
	} else {
		log.Warn("RABBITMQ_URL not set, classification events will not be published")
	}

	spamFilterService := spam_filter.NewSpamFilterService(cfg.SpamFilterConfig)
	classifierService := classifier.NewClassifierService(
		log,
		spamFilterService,
		classifier.NewGeminiBackend(cfg.ClassifierConfig),
		cfg.ClassifierConfig.MaxBodyChars,
	)

	providerFactory := gmail.NewGmailProviderFactory(
		log,
		cfg.GoogleOAuthConfig,
		cfg.SyncConfig,
		repos.MailboxRepository,
	)

	upsertEngine := ingestion.NewUpsertEngine(
		log,
		repos.ThreadRepository,
		repos.MessageRepository,
		repos.ClassificationRepository,
		classifierService,
		publisher,
	)

	services := Services{
		EventsService:     eventsService,
		SpamFilterService: spamFilterService,
		ClassifierService: classifierService,
		ProviderFactory:   providerFactory,
		MailboxService:    mailbox.NewMailboxService(log, repos.MailboxRepository),
		SyncService: ingestion.NewSyncService(
			log,
			repos.MailboxRepository,
			providerFactory,
			upsertEngine,
			cfg.SyncConfig,
		),
	}

	return &services, nil
}
