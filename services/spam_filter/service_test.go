package spam_filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replyradar/replyradar/config"
)

func newTestFilter() *spamFilterService {
	return NewSpamFilterService(&config.SpamFilterConfig{
		FullTextThreshold: 2,
		SubjectThreshold:  1,
	}).(*spamFilterService)
}

func TestEvaluate_TwoCodeTokensInFullText(t *testing.T) {
	filter := newTestFilter()

	spam, reason := filter.Evaluate("Quote J4C5BVX", "please reference 6PZGMYD in your reply")

	require.True(t, spam)
	assert.Contains(t, reason, "J4C5BVX")
}

func TestEvaluate_SingleCodeTokenInSubject(t *testing.T) {
	filter := newTestFilter()

	spam, reason := filter.Evaluate("Your code A1B2C3", "thanks for reaching out, happy to chat next week")

	require.True(t, spam)
	assert.Contains(t, reason, "A1B2C3")
}

func TestEvaluate_GenericInquiryWithCodeToken(t *testing.T) {
	filter := newTestFilter()

	spam, reason := filter.Evaluate("Question", "Who handles purchasing at your company? Ref X9Y8Z7A")

	require.True(t, spam)
	assert.Contains(t, reason, "who handles")
}

func TestEvaluate_GenericInquiryWithoutCodeTokenIsClean(t *testing.T) {
	filter := newTestFilter()

	spam, _ := filter.Evaluate("Question", "Who handles purchasing at your company?")

	assert.False(t, spam)
}

func TestEvaluate_LegitimateReplyIsClean(t *testing.T) {
	filter := newTestFilter()

	spam, _ := filter.Evaluate(
		"Re: Partnership opportunity",
		"Thanks for the note. We are interested, can you send pricing details?",
	)

	assert.False(t, spam)
}

func TestEvaluate_PureLettersOrDigitsAreNotCodeTokens(t *testing.T) {
	filter := newTestFilter()

	// 6-8 char runs of only letters or only digits must not count.
	spam, _ := filter.Evaluate("Meeting 12345678", "looking forward to chatting tomorrow morning")

	assert.False(t, spam)
}

func TestEvaluate_DuplicateTokenCountsOnce(t *testing.T) {
	filter := newTestFilter()

	spam, _ := filter.Evaluate("", "use code J4C5BVX, I repeat, j4c5bvx")

	assert.False(t, spam)
}

func TestEvaluate_CaseInsensitiveSubjectToken(t *testing.T) {
	filter := newTestFilter()

	spam, _ := filter.Evaluate("quote j4c5bvx", "")

	assert.True(t, spam)
}

func TestIsLikelySpam_MatchesEvaluate(t *testing.T) {
	filter := newTestFilter()

	assert.True(t, filter.IsLikelySpam("Quote J4C5BVX", "reference 6PZGMYD"))
	assert.False(t, filter.IsLikelySpam("Re: catching up", "see you thursday"))
}
