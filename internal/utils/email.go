package utils

import (
	"regexp"
	"strings"
)

func UniqueEmails(emails []string) []string {
	seen := make(map[string]struct{}, len(emails))
	unique := make([]string, 0, len(emails))

	for _, email := range emails {
		if _, exists := seen[email]; !exists {
			seen[email] = struct{}{}
			unique = append(unique, email)
		}
	}

	return unique
}

var subjectPrefixRe = regexp.MustCompile(`(?i)^(re|fwd|fw|aw|sv)(\s*\[\d+\])?\s*:\s*`)

// NormalizeSubject strips reply/forward prefixes so replies land on the
// same thread subject as the original outbound email.
func NormalizeSubject(subject string) string {
	normalized := strings.TrimSpace(subject)
	for subjectPrefixRe.MatchString(normalized) {
		normalized = subjectPrefixRe.ReplaceAllString(normalized, "")
	}
	return strings.TrimSpace(normalized)
}

func ExtractDomainFromEmail(email string) string {
	if email == "" {
		return ""
	}

	email = strings.TrimSpace(email)

	// Handle "Name <email@domain.com>" forms
	if strings.Contains(email, "<") && strings.Contains(email, ">") {
		startIdx := strings.LastIndex(email, "<") + 1
		endIdx := strings.LastIndex(email, ">")
		if startIdx > 0 && endIdx > startIdx {
			email = email[startIdx:endIdx]
		}
	}

	parts := strings.Split(email, "@")
	if len(parts) != 2 {
		return ""
	}

	return strings.ToLower(strings.TrimSpace(parts[1]))
}
