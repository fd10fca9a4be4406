package spam_filter

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	"github.com/replyradar/replyradar/config"
	"github.com/replyradar/replyradar/interfaces"
)

// genericInquiryPhrases are low-effort prospecting openers that, combined
// with a random code token, mark automated spam blasts.
var genericInquiryPhrases = []string{
	"who should i call",
	"who do i speak with",
	"who handles",
	"who is responsible for",
}

var codeTokenPattern = regexp.MustCompile(`\b[A-Za-z0-9]{6,8}\b`)

type spamFilterService struct {
	fullTextThreshold int
	subjectThreshold  int
}

func NewSpamFilterService(cfg *config.SpamFilterConfig) interfaces.SpamFilterService {
	fullText := 2
	subject := 1
	if cfg != nil {
		if cfg.FullTextThreshold > 0 {
			fullText = cfg.FullTextThreshold
		}
		if cfg.SubjectThreshold > 0 {
			subject = cfg.SubjectThreshold
		}
	}
	return &spamFilterService{
		fullTextThreshold: fullText,
		subjectThreshold:  subject,
	}
}

func (s *spamFilterService) IsLikelySpam(subject, body string) bool {
	spam, _ := s.Evaluate(subject, body)
	return spam
}

// Evaluate applies the heuristic rules in order, first match wins. Pure and
// deterministic, no I/O.
func (s *spamFilterService) Evaluate(subject, body string) (bool, string) {
	fullText := strings.ToLower(subject + " " + body)

	fullTextTokens := extractCodeTokens(subject + " " + body)
	if len(fullTextTokens) >= s.fullTextThreshold {
		named := fullTextTokens
		if len(named) > 2 {
			named = named[:2]
		}
		return true, fmt.Sprintf("random code tokens detected: %s", strings.Join(named, ", "))
	}

	subjectTokens := extractCodeTokens(subject)
	if len(subjectTokens) >= s.subjectThreshold {
		return true, fmt.Sprintf("random code token in subject: %s", subjectTokens[0])
	}

	if len(fullTextTokens) > 0 {
		for _, phrase := range genericInquiryPhrases {
			if strings.Contains(fullText, phrase) {
				return true, fmt.Sprintf("generic inquiry %q with code token %s", phrase, fullTextTokens[0])
			}
		}
	}

	return false, ""
}

// extractCodeTokens returns distinct 6-8 char tokens mixing letters and
// digits, in order of first appearance. Matching is case-insensitive, so
// J4C5BVX and j4c5bvx count as one token.
func extractCodeTokens(text string) []string {
	seen := make(map[string]struct{})
	var tokens []string
	for _, candidate := range codeTokenPattern.FindAllString(text, -1) {
		if !isMixedAlphanumeric(candidate) {
			continue
		}
		key := strings.ToLower(candidate)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		tokens = append(tokens, candidate)
	}
	return tokens
}

func isMixedAlphanumeric(token string) bool {
	hasLetter := false
	hasDigit := false
	for _, r := range token {
		switch {
		case unicode.IsLetter(r):
			hasLetter = true
		case unicode.IsDigit(r):
			hasDigit = true
		}
	}
	return hasLetter && hasDigit
}
