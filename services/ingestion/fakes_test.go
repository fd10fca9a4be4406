package ingestion

import (
	"context"
	"fmt"
	"time"

	"github.com/pkg/errors"

	"github.com/replyradar/replyradar/dto"
	"github.com/replyradar/replyradar/interfaces"
	"github.com/replyradar/replyradar/internal/enum"
	"github.com/replyradar/replyradar/internal/models"
	"github.com/replyradar/replyradar/internal/utils"
)

type fakeMailboxRepo struct {
	mailboxes map[string]*models.Mailbox
}

func newFakeMailboxRepo(mailboxes ...*models.Mailbox) *fakeMailboxRepo {
	repo := &fakeMailboxRepo{mailboxes: map[string]*models.Mailbox{}}
	for _, m := range mailboxes {
		repo.mailboxes[m.ID] = m
	}
	return repo
}

func (r *fakeMailboxRepo) Create(ctx context.Context, mailbox *models.Mailbox) error {
	r.mailboxes[mailbox.ID] = mailbox
	return nil
}

func (r *fakeMailboxRepo) GetByID(ctx context.Context, id string) (*models.Mailbox, error) {
	return r.mailboxes[id], nil
}

func (r *fakeMailboxRepo) GetByEmailAddress(ctx context.Context, emailAddress string) (*models.Mailbox, error) {
	for _, m := range r.mailboxes {
		if m.EmailAddress == emailAddress {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMailboxRepo) ListByUser(ctx context.Context, userID string) ([]*models.Mailbox, error) {
	var out []*models.Mailbox
	for _, m := range r.mailboxes {
		if m.UserID == userID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMailboxRepo) ListActive(ctx context.Context) ([]*models.Mailbox, error) {
	var out []*models.Mailbox
	for _, m := range r.mailboxes {
		if m.Status != enum.MailboxDisabled {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMailboxRepo) Update(ctx context.Context, mailbox *models.Mailbox) error {
	r.mailboxes[mailbox.ID] = mailbox
	return nil
}

func (r *fakeMailboxRepo) UpdateStatus(ctx context.Context, id string, status string, errorMessage string) error {
	if m, ok := r.mailboxes[id]; ok {
		m.Status = enum.MailboxStatus(status)
		m.ErrorMessage = errorMessage
	}
	return nil
}

func (r *fakeMailboxRepo) UpdateLastSyncedAt(ctx context.Context, id string, syncedAt time.Time) error {
	if m, ok := r.mailboxes[id]; ok {
		m.LastSyncedAt = &syncedAt
	}
	return nil
}

func (r *fakeMailboxRepo) Delete(ctx context.Context, id string) error {
	delete(r.mailboxes, id)
	return nil
}

type fakeThreadRepo struct {
	threads map[string]*models.Thread
	seq     int
}

func newFakeThreadRepo() *fakeThreadRepo {
	return &fakeThreadRepo{threads: map[string]*models.Thread{}}
}

func (r *fakeThreadRepo) key(mailboxID, providerThreadID string) string {
	return mailboxID + "/" + providerThreadID
}

func (r *fakeThreadRepo) GetByID(ctx context.Context, id string) (*models.Thread, error) {
	for _, t := range r.threads {
		if t.ID == id {
			return t, nil
		}
	}
	return nil, nil
}

func (r *fakeThreadRepo) GetByProviderThreadID(ctx context.Context, mailboxID, providerThreadID string) (*models.Thread, error) {
	return r.threads[r.key(mailboxID, providerThreadID)], nil
}

func (r *fakeThreadRepo) ListByMailbox(ctx context.Context, mailboxID string, limit, offset int) ([]*models.Thread, int64, error) {
	var out []*models.Thread
	for _, t := range r.threads {
		if t.MailboxID == mailboxID {
			out = append(out, t)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeThreadRepo) Upsert(ctx context.Context, thread *models.Thread) (*models.Thread, error) {
	if existing, ok := r.threads[r.key(thread.MailboxID, thread.ProviderThreadID)]; ok {
		return existing, nil
	}
	r.seq++
	thread.ID = fmt.Sprintf("thrd_%d", r.seq)
	r.threads[r.key(thread.MailboxID, thread.ProviderThreadID)] = thread
	return thread, nil
}

func (r *fakeThreadRepo) TouchLastMessageAt(ctx context.Context, id string, lastMessageAt time.Time) error {
	return nil
}

type fakeMessageRepo struct {
	messages  map[string]*models.Message
	seq       int
	createErr error
}

func newFakeMessageRepo() *fakeMessageRepo {
	return &fakeMessageRepo{messages: map[string]*models.Message{}}
}

func (r *fakeMessageRepo) Create(ctx context.Context, message *models.Message) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.messages[message.ProviderMessageID]; exists {
		return errors.New("duplicate provider message id")
	}
	r.seq++
	message.ID = fmt.Sprintf("msg_%d", r.seq)
	r.messages[message.ProviderMessageID] = message
	return nil
}

func (r *fakeMessageRepo) GetByID(ctx context.Context, id string) (*models.Message, error) {
	for _, m := range r.messages {
		if m.ID == id {
			return m, nil
		}
	}
	return nil, nil
}

func (r *fakeMessageRepo) GetByProviderMessageID(ctx context.Context, providerMessageID string) (*models.Message, error) {
	return r.messages[providerMessageID], nil
}

func (r *fakeMessageRepo) ListByThread(ctx context.Context, threadID string) ([]*models.Message, error) {
	var out []*models.Message
	for _, m := range r.messages {
		if m.ThreadID == threadID {
			out = append(out, m)
		}
	}
	return out, nil
}

func (r *fakeMessageRepo) ListByMailbox(ctx context.Context, mailboxID string, limit, offset int) ([]*models.Message, int64, error) {
	var out []*models.Message
	for _, m := range r.messages {
		if m.MailboxID == mailboxID {
			out = append(out, m)
		}
	}
	return out, int64(len(out)), nil
}

func (r *fakeMessageRepo) MarkClassified(ctx context.Context, id string) error {
	for _, m := range r.messages {
		if m.ID == id {
			m.Classified = true
			return nil
		}
	}
	return errors.New("message not found")
}

func (r *fakeMessageRepo) Update(ctx context.Context, message *models.Message) error {
	return nil
}

type fakeClassificationRepo struct {
	classifications map[string]*models.Classification
	createErr       error
}

func newFakeClassificationRepo() *fakeClassificationRepo {
	return &fakeClassificationRepo{classifications: map[string]*models.Classification{}}
}

func (r *fakeClassificationRepo) Create(ctx context.Context, classification *models.Classification) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, exists := r.classifications[classification.MessageID]; exists {
		return errors.New("duplicate classification for message")
	}
	classification.ID = "clsf_" + classification.MessageID
	r.classifications[classification.MessageID] = classification
	return nil
}

func (r *fakeClassificationRepo) GetByMessageID(ctx context.Context, messageID string) (*models.Classification, error) {
	return r.classifications[messageID], nil
}

func (r *fakeClassificationRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]*models.Classification, int64, error) {
	var out []*models.Classification
	for _, c := range r.classifications {
		if c.UserID == userID {
			out = append(out, c)
		}
	}
	return out, int64(len(out)), nil
}

type fakeClassifier struct {
	calls int
	err   error
}

func (c *fakeClassifier) ClassifyEmail(ctx context.Context, message *models.Message) (*dto.ClassificationResult, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return &dto.ClassificationResult{
		Sentiment:       enum.SentimentPositive,
		InterestLevel:   enum.InterestHigh,
		ConfidenceScore: 0.9,
		Summary:         "interested reply",
		SuggestedAction: "Book a call",
		Category:        "interested",
	}, nil
}

type fakePublisher struct {
	classified    []dto.ReplyClassifiedEvent
	notifications int
}

func (p *fakePublisher) PublishReplyClassified(ctx context.Context, event dto.ReplyClassifiedEvent) error {
	p.classified = append(p.classified, event)
	return nil
}

func (p *fakePublisher) PublishFanoutEvent(ctx context.Context, entityId string, entityType enum.EntityType, message interface{}) error {
	return nil
}

func (p *fakePublisher) PublishDirectEvent(ctx context.Context, entityId string, entityType enum.EntityType, message interface{}) error {
	return nil
}

func (p *fakePublisher) PublishNotification(ctx context.Context, userId string, entityId string, entityType enum.EntityType, details *utils.EventCompletedDetails) {
	p.notifications++
}

func (p *fakePublisher) Close() error {
	return nil
}

type fakeProvider struct {
	envelopes map[string]*dto.InboundEnvelope
	order     []string
	listErr   error
	fetchErr  map[string]error
	listCalls int
}

func (p *fakeProvider) ListMessageIDs(ctx context.Context, maxResults int64) ([]string, error) {
	p.listCalls++
	if p.listErr != nil {
		return nil, p.listErr
	}
	if int64(len(p.order)) > maxResults {
		return p.order[:maxResults], nil
	}
	return p.order, nil
}

func (p *fakeProvider) FetchMessage(ctx context.Context, providerMessageID string) (*dto.InboundEnvelope, error) {
	if err, ok := p.fetchErr[providerMessageID]; ok {
		return nil, err
	}
	return p.envelopes[providerMessageID], nil
}

type fakeProviderFactory struct {
	providers map[string]*fakeProvider
	err       error
}

func (f *fakeProviderFactory) ProviderFor(ctx context.Context, mailbox *models.Mailbox) (interfaces.MailboxProvider, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.providers[mailbox.ID], nil
}
