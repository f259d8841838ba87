package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/fincoach/internal/core/domain"
)

// MockConversationStore is a mock implementation of driven.ConversationStore
type MockConversationStore struct {
	mock.Mock
}

func (m *MockConversationStore) Save(ctx context.Context, conv *domain.Conversation) error {
	args := m.Called(ctx, conv)
	return args.Error(0)
}

func (m *MockConversationStore) Get(ctx context.Context, id string) (*domain.Conversation, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Conversation), args.Error(1)
}

func (m *MockConversationStore) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

const testConversationID = "0b7f2c1e-6d1a-4a53-9f57-4f1c2b3a4d5e"

// MockDistributedLock is a mock implementation of driven.DistributedLock
type MockDistributedLock struct {
	mock.Mock
}

func (m *MockDistributedLock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	args := m.Called(ctx, name, ttl)
	return args.Bool(0), args.Error(1)
}

func (m *MockDistributedLock) Release(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

func newTestConversationService(store *MockConversationStore, now time.Time) *conversationService {
	svc := NewConversationService(store, nil).(*conversationService)
	svc.now = func() time.Time { return now }
	return svc
}

func TestConversationService_Create(t *testing.T) {
	store := new(MockConversationStore)
	now := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	svc := newTestConversationService(store, now)

	store.On("Save", mock.Anything, mock.AnythingOfType("*domain.Conversation")).Return(nil)

	conv, err := svc.Create(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, conv.ID)
	assert.Empty(t, conv.Messages)
	assert.Equal(t, now, conv.CreatedAt)
	assert.Equal(t, now, conv.UpdatedAt)
	store.AssertExpectations(t)
}

func TestConversationService_Create_StoreError(t *testing.T) {
	store := new(MockConversationStore)
	svc := newTestConversationService(store, time.Now())

	store.On("Save", mock.Anything, mock.Anything).Return(errors.New("redis down"))

	conv, err := svc.Create(context.Background())

	assert.Nil(t, conv)
	assert.Error(t, err)
}

func TestConversationService_Get_InvalidID(t *testing.T) {
	store := new(MockConversationStore)
	svc := newTestConversationService(store, time.Now())

	_, err := svc.Get(context.Background(), "not-a-uuid")

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestConversationService_Get_NotFound(t *testing.T) {
	store := new(MockConversationStore)
	svc := newTestConversationService(store, time.Now())

	store.On("Get", mock.Anything, testConversationID).Return(nil, domain.ErrNotFound)

	_, err := svc.Get(context.Background(), testConversationID)

	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestConversationService_Replace(t *testing.T) {
	store := new(MockConversationStore)
	created := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)
	now := created.Add(time.Hour)
	svc := newTestConversationService(store, now)

	existing := &domain.Conversation{
		ID:        testConversationID,
		Messages:  []domain.Message{{Speaker: "You", Text: "old"}},
		CreatedAt: created,
		UpdatedAt: created,
	}
	store.On("Get", mock.Anything, testConversationID).Return(existing, nil)
	store.On("Save", mock.Anything, mock.MatchedBy(func(c *domain.Conversation) bool {
		return len(c.Messages) == 2 && c.UpdatedAt.Equal(now)
	})).Return(nil)

	conv, err := svc.Replace(context.Background(), testConversationID, []domain.Message{
		{Speaker: "You", Text: "hello"},
		{Speaker: "FinCoach", Text: "hi"},
	})

	require.NoError(t, err)
	assert.Equal(t, created, conv.CreatedAt)
	assert.Equal(t, "hello", conv.Messages[0].Text)
	store.AssertExpectations(t)
}

func TestConversationService_Replace_RejectsMissingSpeaker(t *testing.T) {
	store := new(MockConversationStore)
	svc := newTestConversationService(store, time.Now())

	_, err := svc.Replace(context.Background(), testConversationID, []domain.Message{{Text: "who?"}})

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestConversationService_Append(t *testing.T) {
	store := new(MockConversationStore)
	svc := newTestConversationService(store, time.Now())

	existing := &domain.Conversation{
		ID:       testConversationID,
		Messages: []domain.Message{{Speaker: "You", Text: "first"}},
	}
	store.On("Get", mock.Anything, testConversationID).Return(existing, nil)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)

	conv, err := svc.Append(context.Background(), testConversationID, domain.Message{Speaker: "FinCoach", Text: "second"})

	require.NoError(t, err)
	require.Len(t, conv.Messages, 2)
	assert.Equal(t, "second", conv.Messages[1].Text)
}

func TestConversationService_Append_NoMessages(t *testing.T) {
	store := new(MockConversationStore)
	svc := newTestConversationService(store, time.Now())

	_, err := svc.Append(context.Background(), testConversationID)

	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestConversationService_Delete(t *testing.T) {
	store := new(MockConversationStore)
	svc := newTestConversationService(store, time.Now())

	store.On("Delete", mock.Anything, testConversationID).Return(nil)

	require.NoError(t, svc.Delete(context.Background(), testConversationID))
	store.AssertExpectations(t)
}

func TestConversationService_Append_HoldsLock(t *testing.T) {
	store := new(MockConversationStore)
	lock := new(MockDistributedLock)
	svc := NewConversationService(store, lock).(*conversationService)

	lockName := "conversation:" + testConversationID
	lock.On("Acquire", mock.Anything, lockName, conversationLockTTL).Return(true, nil).Once()
	lock.On("Release", mock.Anything, lockName).Return(nil).Once()
	store.On("Get", mock.Anything, testConversationID).Return(&domain.Conversation{ID: testConversationID}, nil)
	store.On("Save", mock.Anything, mock.Anything).Return(nil)

	_, err := svc.Append(context.Background(), testConversationID, domain.Message{Speaker: "You", Text: "hi"})

	require.NoError(t, err)
	lock.AssertExpectations(t)
	store.AssertExpectations(t)
}

func TestConversationService_Append_ReleasesLockOnError(t *testing.T) {
	store := new(MockConversationStore)
	lock := new(MockDistributedLock)
	svc := NewConversationService(store, lock).(*conversationService)

	lock.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(true, nil)
	lock.On("Release", mock.Anything, mock.Anything).Return(nil).Once()
	store.On("Get", mock.Anything, testConversationID).Return(nil, domain.ErrNotFound)

	_, err := svc.Append(context.Background(), testConversationID, domain.Message{Speaker: "You", Text: "hi"})

	assert.ErrorIs(t, err, domain.ErrNotFound)
	lock.AssertExpectations(t)
	store.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
}

func TestConversationService_Replace_LockContended(t *testing.T) {
	store := new(MockConversationStore)
	lock := new(MockDistributedLock)
	svc := NewConversationService(store, lock).(*conversationService)

	lock.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(false, nil)

	_, err := svc.Replace(context.Background(), testConversationID, []domain.Message{{Speaker: "You", Text: "x"}})

	assert.ErrorIs(t, err, domain.ErrConflict)
	lock.AssertNumberOfCalls(t, "Acquire", conversationLockTries)
	store.AssertNotCalled(t, "Get", mock.Anything, mock.Anything)
}

func TestConversationService_Replace_LockContendedCancelled(t *testing.T) {
	store := new(MockConversationStore)
	lock := new(MockDistributedLock)
	svc := NewConversationService(store, lock).(*conversationService)

	ctx, cancel := context.WithCancel(context.Background())
	lock.On("Acquire", mock.Anything, mock.Anything, mock.Anything).Return(false, nil).Run(func(mock.Arguments) {
		cancel()
	})

	_, err := svc.Replace(ctx, testConversationID, []domain.Message{{Speaker: "You", Text: "x"}})

	assert.ErrorIs(t, err, context.Canceled)
	lock.AssertNumberOfCalls(t, "Acquire", 1)
}
