package ingestion

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replyradar/replyradar/dto"
	"github.com/replyradar/replyradar/internal/enum"
	"github.com/replyradar/replyradar/internal/logger"
	"github.com/replyradar/replyradar/internal/models"
)

func newTestLogger() logger.Logger {
	log := logger.NewAppLogger(&logger.Config{DevMode: true})
	log.InitLogger()
	return log
}

func testMailbox() *models.Mailbox {
	return &models.Mailbox{
		ID:           "mbox_1",
		UserID:       "user_1",
		EmailAddress: "sales@acme.io",
		Status:       enum.MailboxConnected,
	}
}

func testEnvelope(id string) *dto.InboundEnvelope {
	return &dto.InboundEnvelope{
		ProviderMessageID: id,
		ProviderThreadID:  "gt_" + id,
		Subject:           "Re: partnership",
		FromAddress:       "jane@example.com",
		FromName:          "Jane",
		To:                []string{"sales@acme.io"},
		BodyText:          "sounds interesting, send details",
		Snippet:           "sounds interesting",
		ReceivedAt:        time.Date(2026, 8, 1, 12, 0, 0, 0, time.UTC),
	}
}

type upsertFixture struct {
	engine             *UpsertEngine
	threadRepo         *fakeThreadRepo
	messageRepo        *fakeMessageRepo
	classificationRepo *fakeClassificationRepo
	classifier         *fakeClassifier
	publisher          *fakePublisher
}

func newUpsertFixture() *upsertFixture {
	f := &upsertFixture{
		threadRepo:         newFakeThreadRepo(),
		messageRepo:        newFakeMessageRepo(),
		classificationRepo: newFakeClassificationRepo(),
		classifier:         &fakeClassifier{},
		publisher:          &fakePublisher{},
	}
	f.engine = NewUpsertEngine(newTestLogger(), f.threadRepo, f.messageRepo, f.classificationRepo, f.classifier, f.publisher)
	return f
}

func TestUpsertMessage_NewMessageInsertedAndClassified(t *testing.T) {
	f := newUpsertFixture()

	result, err := f.engine.UpsertMessage(context.Background(), testMailbox(), testEnvelope("gm1"))

	require.NoError(t, err)
	assert.Equal(t, dto.MessageInserted, result.Status)
	assert.True(t, result.Classified)

	stored := f.messageRepo.messages["gm1"]
	require.NotNil(t, stored)
	assert.Equal(t, enum.EmailInbound, stored.Direction)
	assert.True(t, stored.Classified)
	assert.NotEmpty(t, stored.ThreadID)

	classification := f.classificationRepo.classifications[stored.ID]
	require.NotNil(t, classification)
	assert.Equal(t, enum.SentimentPositive, classification.Sentiment)

	require.Len(t, f.publisher.classified, 1)
	assert.Equal(t, stored.ID, f.publisher.classified[0].MessageID)
	assert.Equal(t, 1, f.publisher.notifications)
}

func TestUpsertMessage_SecondRunIsIdempotentNoOp(t *testing.T) {
	f := newUpsertFixture()
	mailbox := testMailbox()

	first, err := f.engine.UpsertMessage(context.Background(), mailbox, testEnvelope("gm1"))
	require.NoError(t, err)
	require.Equal(t, dto.MessageInserted, first.Status)

	second, err := f.engine.UpsertMessage(context.Background(), mailbox, testEnvelope("gm1"))

	require.NoError(t, err)
	assert.Equal(t, dto.MessageAlreadyClassified, second.Status)
	assert.True(t, second.Classified)
	assert.Equal(t, first.MessageID, second.MessageID)
	// No second model call, no second classification row.
	assert.Equal(t, 1, f.classifier.calls)
	assert.Len(t, f.classificationRepo.classifications, 1)
	assert.Len(t, f.messageRepo.messages, 1)
}

func TestUpsertMessage_RecoversStoredButUnclassifiedMessage(t *testing.T) {
	f := newUpsertFixture()
	mailbox := testMailbox()

	// First pass: classifier down, message stored without a verdict.
	f.classifier.err = assert.AnError
	first, err := f.engine.UpsertMessage(context.Background(), mailbox, testEnvelope("gm1"))
	require.NoError(t, err)
	assert.Equal(t, dto.MessageInserted, first.Status)
	assert.False(t, first.Classified)
	assert.Empty(t, f.classificationRepo.classifications)

	// Second pass: classifier recovered, the existing row gets its verdict.
	f.classifier.err = nil
	second, err := f.engine.UpsertMessage(context.Background(), mailbox, testEnvelope("gm1"))

	require.NoError(t, err)
	assert.Equal(t, dto.MessageClassifiedNow, second.Status)
	assert.True(t, second.Classified)
	assert.Equal(t, first.MessageID, second.MessageID)
	assert.Len(t, f.classificationRepo.classifications, 1)
	assert.Len(t, f.messageRepo.messages, 1)
}

func TestUpsertMessage_SameThreadReused(t *testing.T) {
	f := newUpsertFixture()
	mailbox := testMailbox()

	envelopeA := testEnvelope("gm1")
	envelopeB := testEnvelope("gm2")
	envelopeB.ProviderThreadID = envelopeA.ProviderThreadID

	_, err := f.engine.UpsertMessage(context.Background(), mailbox, envelopeA)
	require.NoError(t, err)
	_, err = f.engine.UpsertMessage(context.Background(), mailbox, envelopeB)
	require.NoError(t, err)

	assert.Len(t, f.threadRepo.threads, 1)
	assert.Equal(t, f.messageRepo.messages["gm1"].ThreadID, f.messageRepo.messages["gm2"].ThreadID)
}

func TestUpsertMessage_MessageInsertFailureAbortsWithoutClassification(t *testing.T) {
	f := newUpsertFixture()
	f.messageRepo.createErr = assert.AnError

	result, err := f.engine.UpsertMessage(context.Background(), testMailbox(), testEnvelope("gm1"))

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, 0, f.classifier.calls)
	assert.Empty(t, f.classificationRepo.classifications)
}

func TestUpsertMessage_ClassificationStoreFailureLeavesMessageRetryable(t *testing.T) {
	f := newUpsertFixture()
	f.classificationRepo.createErr = assert.AnError

	result, err := f.engine.UpsertMessage(context.Background(), testMailbox(), testEnvelope("gm1"))

	require.NoError(t, err)
	assert.Equal(t, dto.MessageInserted, result.Status)
	assert.False(t, result.Classified)
	// Message stays stored and unclassified so the next pass completes it.
	stored := f.messageRepo.messages["gm1"]
	require.NotNil(t, stored)
	assert.False(t, stored.Classified)
	assert.Empty(t, f.publisher.classified)
}
