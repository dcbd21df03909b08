package services

import (
	"testing"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/stretchr/testify/require"

	"github.com/mkrishnakr62/chatting-backend-app/internal/apperr"
	"github.com/mkrishnakr62/chatting-backend-app/internal/models"
)

func newChatFixture(t *testing.T, users ...models.User) (*ChatService, *memChats, *memMessages, *recordingRemover) {
	t.Helper()
	messages := &memMessages{}
	chats := newMemChats(messages)
	remover := &recordingRemover{}
	svc := NewChatService(chats, messages, newMemUsers(users...), remover, testDispatcher())
	return svc, chats, messages, remover
}

func TestNewGroupChat(t *testing.T) {
	alice, bob, carol := testUser("alice"), testUser("bob"), testUser("carol")
	svc, chats, _, _ := newChatFixture(t, alice, bob, carol)

	chat, err := svc.NewGroupChat(alice.ID, "book club", []uuid.UUID{bob.ID, carol.ID})
	require.NoError(t, err)

	stored, err := chats.Get(chat.ID)
	require.NoError(t, err)
	require.True(t, stored.GroupChat)
	require.Equal(t, "book club", stored.Name)
	require.Len(t, stored.Members, 3)
	require.Equal(t, alice.ID, stored.CreatorID)
	require.True(t, stored.HasMember(alice.ID), "creator must be in the roster")
}

func TestNewGroupChat_InsufficientMembers(t *testing.T) {
	alice, bob := testUser("alice"), testUser("bob")
	svc, _, _, _ := newChatFixture(t, alice, bob)

	_, err := svc.NewGroupChat(alice.ID, "too small", []uuid.UUID{bob.ID})
	require.ErrorIs(t, err, apperr.ErrInsufficientMembers)

	// Duplicated ids don't inflate the count.
	_, err = svc.NewGroupChat(alice.ID, "too small", []uuid.UUID{bob.ID, bob.ID, alice.ID})
	require.ErrorIs(t, err, apperr.ErrInsufficientMembers)
}

func TestAddMembers_DeduplicatesExisting(t *testing.T) {
	alice, bob, carol, dave := testUser("alice"), testUser("bob"), testUser("carol"), testUser("dave")
	svc, chats, _, _ := newChatFixture(t, alice, bob, carol, dave)

	chat, err := svc.NewGroupChat(alice.ID, "g", []uuid.UUID{bob.ID, carol.ID})
	require.NoError(t, err)

	// bob is already a member; only dave should be added.
	require.NoError(t, svc.AddMembers(chat.ID, alice.ID, []uuid.UUID{bob.ID, dave.ID}))

	stored, err := chats.Get(chat.ID)
	require.NoError(t, err)
	require.ElementsMatch(t,
		[]uuid.UUID{alice.ID, bob.ID, carol.ID, dave.ID},
		stored.MemberIDs())
}

func TestAddMembers_Authorization(t *testing.T) {
	alice, bob, carol, dave := testUser("alice"), testUser("bob"), testUser("carol"), testUser("dave")
	svc, _, _, _ := newChatFixture(t, alice, bob, carol, dave)

	chat, err := svc.NewGroupChat(alice.ID, "g", []uuid.UUID{bob.ID, carol.ID})
	require.NoError(t, err)

	err = svc.AddMembers(chat.ID, bob.ID, []uuid.UUID{dave.ID})
	require.ErrorIs(t, err, apperr.ErrNotAuthorized)
}

func TestAddMembers_MemberLimit(t *testing.T) {
	users := make([]models.User, 0, 101)
	for i := 0; i < 101; i++ {
		users = append(users, testUser("u"))
	}
	svc, _, _, _ := newChatFixture(t, users...)

	creator := users[0]
	initial := lo.Map(users[1:99], func(u models.User, _ int) uuid.UUID { return u.ID })
	chat, err := svc.NewGroupChat(creator.ID, "big", initial)
	require.NoError(t, err)

	// 99 members, adding two more would exceed 100.
	err = svc.AddMembers(chat.ID, creator.ID, []uuid.UUID{users[99].ID, users[100].ID})
	require.ErrorIs(t, err, apperr.ErrMemberLimitExceeded)

	// One more is fine.
	require.NoError(t, svc.AddMembers(chat.ID, creator.ID, []uuid.UUID{users[99].ID}))
}

func TestAddMembers_NotAGroup(t *testing.T) {
	alice, bob, carol := testUser("alice"), testUser("bob"), testUser("carol")
	messages := &memMessages{}
	chats := newMemChats(messages)
	svc := NewChatService(chats, messages, newMemUsers(alice, bob, carol), &recordingRemover{}, testDispatcher())

	direct := &models.Chat{Name: "alice-bob", Members: []models.User{alice, bob}}
	require.NoError(t, chats.Create(direct))

	err := svc.AddMembers(direct.ID, alice.ID, []uuid.UUID{carol.ID})
	require.ErrorIs(t, err, apperr.ErrNotAGroup)
}

func TestRemoveMember(t *testing.T) {
	alice, bob, carol, dave := testUser("alice"), testUser("bob"), testUser("carol"), testUser("dave")
	svc, chats, _, _ := newChatFixture(t, alice, bob, carol, dave)

	chat, err := svc.NewGroupChat(alice.ID, "g", []uuid.UUID{bob.ID, carol.ID, dave.ID})
	require.NoError(t, err)

	require.NoError(t, svc.RemoveMember(chat.ID, alice.ID, dave.ID))

	stored, err := chats.Get(chat.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []uuid.UUID{alice.ID, bob.ID, carol.ID}, stored.MemberIDs())
	require.True(t, stored.HasMember(stored.CreatorID))
}

func TestRemoveMember_MinimumSize(t *testing.T) {
	alice, bob, carol := testUser("alice"), testUser("bob"), testUser("carol")
	svc, _, _, _ := newChatFixture(t, alice, bob, carol)

	chat, err := svc.NewGroupChat(alice.ID, "g", []uuid.UUID{bob.ID, carol.ID})
	require.NoError(t, err)

	// A 3-member group cannot shrink further.
	err = svc.RemoveMember(chat.ID, alice.ID, carol.ID)
	require.ErrorIs(t, err, apperr.ErrMinimumSizeViolation)
}

func TestLeave_RejectedAtMinimumSize(t *testing.T) {
	alice, bob, carol := testUser("alice"), testUser("bob"), testUser("carol")
	svc, chats, _, _ := newChatFixture(t, alice, bob, carol)

	chat, err := svc.NewGroupChat(alice.ID, "g", []uuid.UUID{bob.ID, carol.ID})
	require.NoError(t, err)

	err = svc.Leave(chat.ID, alice.ID)
	require.ErrorIs(t, err, apperr.ErrMinimumSizeViolation)

	stored, err := chats.Get(chat.ID)
	require.NoError(t, err)
	require.Len(t, stored.Members, 3)
}

func TestLeave_CreatorSuccession(t *testing.T) {
	alice, bob, carol, dave := testUser("alice"), testUser("bob"), testUser("carol"), testUser("dave")
	svc, chats, _, _ := newChatFixture(t, alice, bob, carol, dave)

	chat, err := svc.NewGroupChat(alice.ID, "g", []uuid.UUID{bob.ID, carol.ID, dave.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Leave(chat.ID, alice.ID))

	stored, err := chats.Get(chat.ID)
	require.NoError(t, err)
	require.ElementsMatch(t, []uuid.UUID{bob.ID, carol.ID, dave.ID}, stored.MemberIDs())
	require.NotEqual(t, alice.ID, stored.CreatorID)
	require.True(t, stored.HasMember(stored.CreatorID), "new creator must come from the remaining members")
}

func TestLeave_NonMember(t *testing.T) {
	alice, bob, carol, eve := testUser("alice"), testUser("bob"), testUser("carol"), testUser("eve")
	svc, _, _, _ := newChatFixture(t, alice, bob, carol, eve)

	chat, err := svc.NewGroupChat(alice.ID, "g", []uuid.UUID{bob.ID, carol.ID})
	require.NoError(t, err)

	err = svc.Leave(chat.ID, eve.ID)
	require.ErrorIs(t, err, apperr.ErrNotAMember)
}

func TestRename(t *testing.T) {
	alice, bob, carol := testUser("alice"), testUser("bob"), testUser("carol")
	svc, chats, _, _ := newChatFixture(t, alice, bob, carol)

	chat, err := svc.NewGroupChat(alice.ID, "old", []uuid.UUID{bob.ID, carol.ID})
	require.NoError(t, err)

	require.ErrorIs(t, svc.Rename(chat.ID, bob.ID, "hijacked"), apperr.ErrNotAuthorized)
	require.NoError(t, svc.Rename(chat.ID, alice.ID, "new"))

	stored, err := chats.Get(chat.ID)
	require.NoError(t, err)
	require.Equal(t, "new", stored.Name)
}

func TestDelete_GroupCascades(t *testing.T) {
	alice, bob, carol := testUser("alice"), testUser("bob"), testUser("carol")
	svc, chats, messages, remover := newChatFixture(t, alice, bob, carol)

	chat, err := svc.NewGroupChat(alice.ID, "g", []uuid.UUID{bob.ID, carol.ID})
	require.NoError(t, err)

	require.NoError(t, messages.Save(&models.Message{ChatID: chat.ID, SenderID: bob.ID, Content: "hi"}))
	require.NoError(t, messages.Save(&models.Message{
		ChatID:      chat.ID,
		SenderID:    carol.ID,
		Attachments: models.Attachments{{PublicID: "pic-1", URL: "http://cdn/pic-1"}},
	}))

	require.ErrorIs(t, svc.Delete(chat.ID, bob.ID), apperr.ErrNotAuthorized)
	require.NoError(t, svc.Delete(chat.ID, alice.ID))

	_, err = chats.Get(chat.ID)
	require.ErrorIs(t, err, apperr.ErrChatNotFound)
	require.Empty(t, messages.msgs)
	require.Equal(t, [][]string{{"pic-1"}}, remover.removed)
}

func TestDelete_StorageFailureDoesNotBlock(t *testing.T) {
	alice, bob, carol := testUser("alice"), testUser("bob"), testUser("carol")
	messages := &memMessages{}
	chats := newMemChats(messages)
	remover := &recordingRemover{fail: errTest}
	svc := NewChatService(chats, messages, newMemUsers(alice, bob, carol), remover, testDispatcher())

	chat, err := svc.NewGroupChat(alice.ID, "g", []uuid.UUID{bob.ID, carol.ID})
	require.NoError(t, err)
	require.NoError(t, messages.Save(&models.Message{
		ChatID:      chat.ID,
		SenderID:    bob.ID,
		Attachments: models.Attachments{{PublicID: "pic-2", URL: "http://cdn/pic-2"}},
	}))

	require.NoError(t, svc.Delete(chat.ID, alice.ID))

	_, err = chats.Get(chat.ID)
	require.ErrorIs(t, err, apperr.ErrChatNotFound)
}

func TestDelete_DirectChatByMember(t *testing.T) {
	alice, bob, eve := testUser("alice"), testUser("bob"), testUser("eve")
	messages := &memMessages{}
	chats := newMemChats(messages)
	svc := NewChatService(chats, messages, newMemUsers(alice, bob, eve), &recordingRemover{}, testDispatcher())

	direct := &models.Chat{Name: "alice-bob", Members: []models.User{alice, bob}}
	require.NoError(t, chats.Create(direct))

	require.ErrorIs(t, svc.Delete(direct.ID, eve.ID), apperr.ErrNotAuthorized)
	require.NoError(t, svc.Delete(direct.ID, bob.ID))
}
