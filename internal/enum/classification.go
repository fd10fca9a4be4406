package enum

// Sentiment is the closed set of reply tones the classifier may emit.
type Sentiment string

const (
	SentimentPositive    Sentiment = "positive"
	SentimentWarm        Sentiment = "warm"
	SentimentNeutral     Sentiment = "neutral"
	SentimentNegative    Sentiment = "negative"
	SentimentAutoReply   Sentiment = "auto_reply"
	SentimentOutOfOffice Sentiment = "out_of_office"
	SentimentSpam        Sentiment = "spam"
)

func (t Sentiment) String() string {
	return string(t)
}

// DecodeSentiment maps an arbitrary string onto the closed sentiment set,
// falling back to neutral for anything unknown.
func DecodeSentiment(s string) Sentiment {
	switch Sentiment(s) {
	case SentimentPositive, SentimentWarm, SentimentNeutral, SentimentNegative,
		SentimentAutoReply, SentimentOutOfOffice, SentimentSpam:
		return Sentiment(s)
	default:
		return SentimentNeutral
	}
}

type InterestLevel string

const (
	InterestHigh   InterestLevel = "high"
	InterestMedium InterestLevel = "medium"
	InterestLow    InterestLevel = "low"
	InterestNone   InterestLevel = "none"
)

func (t InterestLevel) String() string {
	return string(t)
}

// DecodeInterestLevel maps an arbitrary string onto the closed interest set,
// falling back to none for anything unknown.
func DecodeInterestLevel(s string) InterestLevel {
	switch InterestLevel(s) {
	case InterestHigh, InterestMedium, InterestLow, InterestNone:
		return InterestLevel(s)
	default:
		return InterestNone
	}
}
