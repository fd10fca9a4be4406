package ingestion

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/replyradar/replyradar/config"
	"github.com/replyradar/replyradar/dto"
	replyradar_errors "github.com/replyradar/replyradar/errors"
	"github.com/replyradar/replyradar/internal/enum"
	"github.com/replyradar/replyradar/internal/models"
)

type syncFixture struct {
	service     *syncService
	mailboxRepo *fakeMailboxRepo
	upsert      *upsertFixture
	factory     *fakeProviderFactory
}

func newSyncFixture(mailboxes ...*models.Mailbox) *syncFixture {
	upsert := newUpsertFixture()
	mailboxRepo := newFakeMailboxRepo(mailboxes...)
	factory := &fakeProviderFactory{providers: map[string]*fakeProvider{}}

	service := NewSyncService(newTestLogger(), mailboxRepo, factory, upsert.engine, &config.SyncConfig{
		MaxMessagesPerSync: 50,
		SyncDeadlineMin:    10,
	}).(*syncService)

	return &syncFixture{
		service:     service,
		mailboxRepo: mailboxRepo,
		upsert:      upsert,
		factory:     factory,
	}
}

func (f *syncFixture) withProvider(mailboxID string, ids ...string) *fakeProvider {
	provider := &fakeProvider{
		envelopes: map[string]*dto.InboundEnvelope{},
		fetchErr:  map[string]error{},
		order:     ids,
	}
	for _, id := range ids {
		provider.envelopes[id] = testEnvelope(id)
	}
	f.factory.providers[mailboxID] = provider
	return provider
}

func TestSyncMailbox_HappyPathCounts(t *testing.T) {
	mailbox := testMailbox()
	f := newSyncFixture(mailbox)
	f.withProvider(mailbox.ID, "gm1", "gm2", "gm3")

	result, err := f.service.SyncMailbox(context.Background(), mailbox.ID)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 3, result.Total)
	assert.Equal(t, 3, result.Processed)
	assert.Equal(t, 3, result.Inserted)
	assert.Equal(t, 3, result.Classified)
	assert.Zero(t, result.Failed)
	require.NotNil(t, mailbox.LastSyncedAt)
}

func TestSyncMailbox_SecondRunProcessesNothing(t *testing.T) {
	mailbox := testMailbox()
	f := newSyncFixture(mailbox)
	f.withProvider(mailbox.ID, "gm1", "gm2")

	first, err := f.service.SyncMailbox(context.Background(), mailbox.ID)
	require.NoError(t, err)
	require.Equal(t, 2, first.Processed)

	second, err := f.service.SyncMailbox(context.Background(), mailbox.ID)

	require.NoError(t, err)
	assert.Zero(t, second.Processed)
	assert.Zero(t, second.Classified)
	assert.Equal(t, 2, second.Skipped)
	// Dedup invariant: still one row per provider message id.
	assert.Len(t, f.upsert.messageRepo.messages, 2)
}

func TestSyncMailbox_FetchFailureSkipsMessageOnly(t *testing.T) {
	mailbox := testMailbox()
	f := newSyncFixture(mailbox)
	provider := f.withProvider(mailbox.ID, "gm1", "gm2", "gm3")
	provider.fetchErr["gm2"] = assert.AnError

	result, err := f.service.SyncMailbox(context.Background(), mailbox.ID)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, 2, result.Processed)
	assert.Equal(t, 1, result.Failed)
	// Watermark still advances after a partially failed pass.
	assert.NotNil(t, mailbox.LastSyncedAt)
}

func TestSyncMailbox_ListingFailureIsFatalForMailbox(t *testing.T) {
	mailbox := testMailbox()
	f := newSyncFixture(mailbox)
	provider := f.withProvider(mailbox.ID, "gm1")
	provider.listErr = assert.AnError

	result, err := f.service.SyncMailbox(context.Background(), mailbox.ID)

	require.Error(t, err)
	require.NotNil(t, result)
	assert.False(t, result.Success)
	assert.NotEmpty(t, result.Error)
	assert.Equal(t, enum.MailboxError, mailbox.Status)
	assert.Nil(t, mailbox.LastSyncedAt)
}

func TestSyncMailbox_DisabledMailboxRejected(t *testing.T) {
	mailbox := testMailbox()
	mailbox.Status = enum.MailboxDisabled
	f := newSyncFixture(mailbox)

	_, err := f.service.SyncMailbox(context.Background(), mailbox.ID)

	assert.ErrorIs(t, err, replyradar_errors.ErrMailboxDisabled)
}

func TestSyncMailbox_ErroredMailboxRecoversToConnected(t *testing.T) {
	mailbox := testMailbox()
	mailbox.Status = enum.MailboxError
	mailbox.ErrorMessage = "previous listing failure"
	f := newSyncFixture(mailbox)
	f.withProvider(mailbox.ID, "gm1")

	result, err := f.service.SyncMailbox(context.Background(), mailbox.ID)

	require.NoError(t, err)
	assert.True(t, result.Success)
	assert.Equal(t, enum.MailboxConnected, mailbox.Status)
}

func TestSyncAllMailboxes_IsolatesFailingMailbox(t *testing.T) {
	healthy := testMailbox()
	broken := &models.Mailbox{
		ID:           "mbox_2",
		UserID:       "user_1",
		EmailAddress: "other@acme.io",
		Status:       enum.MailboxConnected,
	}
	f := newSyncFixture(healthy, broken)
	f.withProvider(healthy.ID, "gm1", "gm2")
	brokenProvider := f.withProvider(broken.ID, "gm9")
	brokenProvider.listErr = assert.AnError

	fleet, err := f.service.SyncAllMailboxes(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, fleet.Succeeded)
	assert.Equal(t, 1, fleet.Failed)
	assert.Len(t, fleet.Mailboxes, 2)
	// The healthy mailbox's messages still landed.
	assert.Len(t, f.upsert.messageRepo.messages, 2)
}

func TestSyncAllMailboxes_SkipsDisabledMailboxes(t *testing.T) {
	active := testMailbox()
	disabled := &models.Mailbox{
		ID:     "mbox_2",
		UserID: "user_1",
		Status: enum.MailboxDisabled,
	}
	f := newSyncFixture(active, disabled)
	f.withProvider(active.ID, "gm1")

	fleet, err := f.service.SyncAllMailboxes(context.Background())

	require.NoError(t, err)
	assert.Len(t, fleet.Mailboxes, 1)
	assert.Equal(t, active.ID, fleet.Mailboxes[0].MailboxID)
}

func TestSyncMailbox_MaxResultsRespected(t *testing.T) {
	mailbox := testMailbox()
	f := newSyncFixture(mailbox)
	f.service.syncConfig.MaxMessagesPerSync = 2
	f.withProvider(mailbox.ID, "gm1", "gm2", "gm3")

	result, err := f.service.SyncMailbox(context.Background(), mailbox.ID)

	require.NoError(t, err)
	assert.Equal(t, 2, result.Processed)
}
