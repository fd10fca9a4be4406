package classifier

import "fmt"

// warmDisambiguationRule is carried verbatim into every prompt. Models
// routinely misread polite deferrals as rejections, which poisons downstream
// prioritization.
const warmDisambiguationRule = `language indicating "maybe later", "keep in touch", or "reach out if needed" must be classified as "warm", never "negative"`

const promptTemplate = `You are an assistant that classifies inbound replies to sales outreach emails.

Classify the email below using exactly this taxonomy:
- sentiment: one of {positive, warm, neutral, negative, auto_reply, out_of_office, spam}
- interest_level: one of {high, medium, low, none}

IMPORTANT: %s.

Respond with JSON only, no prose, using exactly these fields:
{
  "sentiment": "...",
  "interest_level": "...",
  "summary": "one sentence summary",
  "recommended_action": "what the sender should do next",
  "category": "short free-text tag",
  "confidence_score": 0.0
}

Subject: %s

Body:
%s`

// BuildClassificationPrompt renders the deterministic classification prompt
// for a single email.
func BuildClassificationPrompt(subject, body string) string {
	return fmt.Sprintf(promptTemplate, warmDisambiguationRule, subject, body)
}
