package classifier

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
)

type classifierService struct {
	log          logger.Logger
	spamFilter   interfaces.SpamFilterService
	backend      interfaces.ModelBackend
	maxBodyChars int
}

func NewClassifierService(
	log logger.Logger,
	spamFilter interfaces.SpamFilterService,
	backend interfaces.ModelBackend,
	maxBodyChars int,
) interfaces.ClassifierService {
	if maxBodyChars <= 0 {
		maxBodyChars = 4000
	}
	return &classifierService{
		log:          log,
		spamFilter:   spamFilter,
		backend:      backend,
		maxBodyChars: maxBodyChars,
	}
}

// ClassifyEmail produces a verdict for a stored message. The spam pre-filter
// short-circuits before any model call; model transport failures surface as
// errors; malformed model text degrades to a manual-review verdict.
func (s *classifierService) ClassifyEmail(ctx context.Context, message *models.Message) (*dto.ClassificationResult, error) {
	span, ctx := opentracing.StartSpanFromContext(ctx, "ClassifierService.ClassifyEmail")
	defer span.Finish()
	tracing.SetDefaultServiceSpanTags(ctx, span)
	span.SetTag("message.id", message.ID)

	body := classifiableBody(message)
	if len(body) > s.maxBodyChars {
		body = body[:s.maxBodyChars]
	}

	if spam, reason := s.spamFilter.Evaluate(message.Subject, body); spam {
		span.SetTag("spam.prefilter", true)
		s.log.Infof("message %s flagged by spam pre-filter: %s", message.ID, reason)
		return syntheticSpamResult(reason), nil
	}

	prompt := BuildClassificationPrompt(message.Subject, body)

	text, err := s.backend.GenerateContent(ctx, prompt)
	if err != nil {
		tracing.TraceErr(span, err)
		return nil, errors.Wrap(err, "classification model call failed")
	}

	result := parseClassificationText(text)
	span.SetTag("classification.sentiment", result.Sentiment.String())
	span.SetTag("classification.confidence", result.ConfidenceScore)
	return result, nil
}

// classifiableBody prefers the plain body, falls back to the snippet, and
// tolerates fully empty messages.
func classifiableBody(message *models.Message) string {
	if message.BodyText != "" {
		return message.BodyText
	}
	return message.Snippet
}

func syntheticSpamResult(reason string) *dto.ClassificationResult {
	return &dto.ClassificationResult{
		Sentiment:       enum.SentimentSpam,
		InterestLevel:   enum.InterestNone,
		ConfidenceScore: 0.95,
		Summary:         reason,
		SuggestedAction: "Mark as spam and ignore",
		Category:        "spam",
	}
}
