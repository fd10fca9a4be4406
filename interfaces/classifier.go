package interfaces

import (
	"context"

	"github.com/replyradar/replyradar/dto"
	"github.com/replyradar/replyradar/internal/models"
)

// ModelBackend generates a completion for a prompt. Implementations wrap a
// concrete LLM API.
type ModelBackend interface {
	GenerateContent(ctx context.Context, prompt string) (string, error)
}

type ClassifierService interface {
	// ClassifyEmail always returns a usable verdict. Model or parse failures
	// degrade to a low-confidence manual-review result rather than erroring.
	ClassifyEmail(ctx context.Context, message *models.Message) (*dto.ClassificationResult, error)
}

type SpamFilterService interface {
	// Evaluate reports whether the text looks like automated spam and, when
	// it does, a human-readable reason naming the triggering signals.
	Evaluate(subject, body string) (bool, string)
	IsLikelySpam(subject, body string) bool
}
