package services

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/doruk/eduhub/internal/app/models"
	"github.com/doruk/eduhub/internal/pkg/apperrors"
)

// fakeProfileStore covers the social-graph slice of profileStore; the
// embedded interface panics on anything a test does not exercise.
type fakeProfileStore struct {
	profileStore
	connections map[string]bool
	requests    map[int64]*models.FriendRequest
	nextID      int64
	creates     int
}

func newFakeProfileStore() *fakeProfileStore {
	return &fakeProfileStore{
		connections: make(map[string]bool),
		requests:    make(map[int64]*models.FriendRequest),
		nextID:      1,
	}
}

func connKey(user1ID, user2ID int64) string {
	if user1ID > user2ID {
		user1ID, user2ID = user2ID, user1ID
	}
	return pairKey(user1ID, user2ID)
}

func (f *fakeProfileStore) ConnectionExists(_ context.Context, user1ID, user2ID int64) (bool, error) {
	return f.connections[connKey(user1ID, user2ID)], nil
}

func (f *fakeProfileStore) CreateConnectionTx(_ context.Context, _ pgx.Tx, user1ID, user2ID int64) error {
	f.connections[connKey(user1ID, user2ID)] = true
	return nil
}

func (f *fakeProfileStore) CreateFriendRequest(_ context.Context, fr *models.FriendRequest) (int64, error) {
	f.creates++
	fr.ID = f.nextID
	f.nextID++
	f.requests[fr.ID] = fr
	return fr.ID, nil
}

func (f *fakeProfileStore) GetFriendRequestByID(_ context.Context, id int64) (*models.FriendRequest, error) {
	if fr, ok := f.requests[id]; ok {
		return fr, nil
	}
	return nil, apperrors.ErrFriendRequestNotFound
}

func (f *fakeProfileStore) MarkFriendRequestAccepted(_ context.Context, _ pgx.Tx, id int64) error {
	fr, ok := f.requests[id]
	if !ok {
		return apperrors.ErrFriendRequestNotFound
	}
	fr.Accepted = true
	return nil
}

func newProfileServiceForTest() (ProfileService, *fakeProfileStore) {
	accounts := &fakeAccounts{users: map[int64]*models.User{
		3: {ID: 3, Role: models.RoleStudent},
		4: {ID: 4, Role: models.RoleStudent},
	}}
	store := newFakeProfileStore()
	svc := NewProfileService(store, accounts, fakeTransactor{}, zerolog.Nop())
	return svc, store
}

func TestSendFriendRequest(t *testing.T) {
	svc, store := newProfileServiceForTest()

	resp, err := svc.SendFriendRequest(context.Background(), 3, 4)
	require.NoError(t, err)
	assert.Equal(t, int64(3), resp.FromUserID)
	assert.Equal(t, int64(4), resp.ToUserID)
	assert.False(t, resp.Accepted)
	assert.Equal(t, 1, store.creates)
}

func TestSendFriendRequestToSelf(t *testing.T) {
	svc, store := newProfileServiceForTest()

	_, err := svc.SendFriendRequest(context.Background(), 3, 3)
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
	assert.Zero(t, store.creates)
}

func TestSendFriendRequestUnknownTarget(t *testing.T) {
	svc, _ := newProfileServiceForTest()

	_, err := svc.SendFriendRequest(context.Background(), 3, 999)
	assert.ErrorIs(t, err, apperrors.ErrUserNotFound)
}

func TestSendFriendRequestAlreadyConnected(t *testing.T) {
	svc, store := newProfileServiceForTest()
	store.connections[connKey(4, 3)] = true

	_, err := svc.SendFriendRequest(context.Background(), 3, 4)
	assert.ErrorIs(t, err, apperrors.ErrAlreadyConnected)
	assert.Zero(t, store.creates)
}

func TestAcceptFriendRequestEstablishesConnection(t *testing.T) {
	svc, store := newProfileServiceForTest()
	store.requests[1] = &models.FriendRequest{ID: 1, FromUserID: 3, ToUserID: 4}

	require.NoError(t, svc.AcceptFriendRequest(context.Background(), 4, 1))
	assert.True(t, store.requests[1].Accepted)
	assert.True(t, store.connections[connKey(3, 4)])
}

func TestAcceptFriendRequestOnlyRecipient(t *testing.T) {
	svc, store := newProfileServiceForTest()
	store.requests[1] = &models.FriendRequest{ID: 1, FromUserID: 3, ToUserID: 4}

	err := svc.AcceptFriendRequest(context.Background(), 3, 1)
	assert.ErrorIs(t, err, apperrors.ErrPermissionDenied)
	assert.False(t, store.requests[1].Accepted)
}
