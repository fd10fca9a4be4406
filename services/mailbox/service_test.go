package mailbox

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
	"github.com/replyradar/replyradar/internal/utils"
)

type fakeMailboxRepo struct {
	byEmail map[string]*models.Mailbox
	created []*models.Mailbox
}

func newFakeMailboxRepo() *fakeMailboxRepo {
	return &fakeMailboxRepo{byEmail: make(map[string]*models.Mailbox)}
}

func (f *fakeMailboxRepo) Create(ctx context.Context, mailbox *models.Mailbox) error {
	if mailbox.ID == "" {
		mailbox.ID = utils.GenerateNanoIDWithPrefix("mbox", 16)
	}
	f.byEmail[mailbox.EmailAddress] = mailbox
	f.created = append(f.created, mailbox)
	return nil
}

func (f *fakeMailboxRepo) GetByID(ctx context.Context, id string) (*models.Mailbox, error) {
	for _, m := range f.byEmail {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (f *fakeMailboxRepo) GetByEmailAddress(ctx context.Context, emailAddress string) (*models.Mailbox, error) {
	return f.byEmail[emailAddress], nil
}

func (f *fakeMailboxRepo) ListByUser(ctx context.Context, userID string) ([]*models.Mailbox, error) {
	return nil, nil
}

func (f *fakeMailboxRepo) ListActive(ctx context.Context) ([]*models.Mailbox, error) {
	return nil, nil
}

func (f *fakeMailboxRepo) Update(ctx context.Context, mailbox *models.Mailbox) error { return nil }

func (f *fakeMailboxRepo) UpdateStatus(ctx context.Context, id string, status string, errorMessage string) error {
	return nil
}

func (f *fakeMailboxRepo) UpdateLastSyncedAt(ctx context.Context, id string, syncedAt time.Time) error {
	return nil
}

func (f *fakeMailboxRepo) Delete(ctx context.Context, id string) error { return nil }

func userContext(userID string) context.Context {
	return utils.WithCustomContext(context.Background(), &utils.CustomContext{UserId: userID})
}

func testLogger() logger.Logger {
	l := logger.NewAppLogger(&logger.Config{DevMode: true})
	l.InitLogger()
	return l
}

func validRequest() dto.ConnectMailboxRequest {
	return dto.ConnectMailboxRequest{
		EmailAddress: "sales@acme.com",
		AccessToken:  "access-token",
		RefreshToken: "refresh-token",
	}
}

func TestConnectMailbox_Success(t *testing.T) {
	repo := newFakeMailboxRepo()
	service := NewMailboxService(testLogger(), repo)

	response, err := service.ConnectMailbox(userContext("user_1"), validRequest())

	require.NoError(t, err)
	require.NotNil(t, response)
	assert.Equal(t, "sales@acme.com", response.EmailAddress)
	assert.Equal(t, enum.MailboxConnected.String(), response.Status)
	require.Len(t, repo.created, 1)
	assert.Equal(t, "user_1", repo.created[0].UserID)
	assert.Equal(t, "access-token", repo.created[0].AccessToken)
}

func TestConnectMailbox_RequiresUserID(t *testing.T) {
	service := NewMailboxService(testLogger(), newFakeMailboxRepo())

	_, err := service.ConnectMailbox(context.Background(), validRequest())

	assert.ErrorIs(t, err, ErrMissingOwner)
}

func TestConnectMailbox_RequiresCredentials(t *testing.T) {
	service := NewMailboxService(testLogger(), newFakeMailboxRepo())

	request := validRequest()
	request.RefreshToken = ""
	_, err := service.ConnectMailbox(userContext("user_1"), request)

	assert.ErrorIs(t, err, ErrMissingCredentials)
}

func TestConnectMailbox_RejectsInvalidAddress(t *testing.T) {
	service := NewMailboxService(testLogger(), newFakeMailboxRepo())

	request := validRequest()
	request.EmailAddress = "not-an-email"
	_, err := service.ConnectMailbox(userContext("user_1"), request)

	assert.ErrorIs(t, err, ErrInvalidEmailAddress)
}

func TestConnectMailbox_DuplicateAddress(t *testing.T) {
	repo := newFakeMailboxRepo()
	service := NewMailboxService(testLogger(), repo)

	_, err := service.ConnectMailbox(userContext("user_1"), validRequest())
	require.NoError(t, err)

	_, err = service.ConnectMailbox(userContext("user_1"), validRequest())
	assert.ErrorIs(t, err, ErrMailboxAlreadyExists)
}

func TestConnectMailbox_AddressOwnedByAnotherUser(t *testing.T) {
	repo := newFakeMailboxRepo()
	service := NewMailboxService(testLogger(), repo)

	_, err := service.ConnectMailbox(userContext("user_1"), validRequest())
	require.NoError(t, err)

	_, err = service.ConnectMailbox(userContext("user_2"), validRequest())
	assert.ErrorIs(t, err, ErrMailboxLookupConflict)
}
