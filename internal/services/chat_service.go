package services

import (
	"fmt"
	"log"
	"math/rand"
	"strings"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/mkrishnakr62/chatting-backend-app/internal/apperr"
	"github.com/mkrishnakr62/chatting-backend-app/internal/events"
	"github.com/mkrishnakr62/chatting-backend-app/internal/models"
	"github.com/mkrishnakr62/chatting-backend-app/internal/storage"
)

const (
	// A group chat keeps between 3 and 100 members at all times.
	minGroupMembers = 3
	maxGroupMembers = 100
)

// ChatService enforces chat creation and membership invariants and
// notifies affected members over the fanout dispatcher.
type ChatService struct {
	chats       ChatRepository
	messages    MessageRepository
	users       UserRepository
	attachments storage.AttachmentRemover
	events      *events.Dispatcher
}

func NewChatService(chats ChatRepository, messages MessageRepository, users UserRepository, attachments storage.AttachmentRemover, dispatcher *events.Dispatcher) *ChatService {
	return &ChatService{
		chats:       chats,
		messages:    messages,
		users:       users,
		attachments: attachments,
		events:      dispatcher,
	}
}

// NewGroupChat creates a group chat with the creator plus the given
// members. The combined roster must have at least 3 members.
func (s *ChatService) NewGroupChat(creatorID uuid.UUID, name string, memberIDs []uuid.UUID) (*models.Chat, error) {
	allIDs := lo.Uniq(append([]uuid.UUID{creatorID}, memberIDs...))
	if len(allIDs) < minGroupMembers {
		return nil, apperr.ErrInsufficientMembers
	}
	if len(allIDs) > maxGroupMembers {
		return nil, apperr.ErrMemberLimitExceeded
	}

	members, err := s.users.GetMany(allIDs)
	if err != nil {
		return nil, err
	}
	if len(members) != len(allIDs) {
		return nil, apperr.ErrUserNotFound
	}

	chat := &models.Chat{
		Name:      name,
		GroupChat: true,
		CreatorID: creatorID,
		Members:   members,
	}
	if err := s.chats.Create(chat); err != nil {
		return nil, err
	}

	s.events.Emit(events.TypeAlert, allIDs, events.AlertPayload{
		ChatID:  chat.ID.String(),
		Message: fmt.Sprintf("Welcome to %s group", name),
	})
	s.events.Emit(events.TypeRefetchChats, lo.Without(allIDs, creatorID), nil)

	return chat, nil
}

// AddMembers adds candidates to a group roster. Only the creator may
// add; candidates already present are silently skipped.
func (s *ChatService) AddMembers(chatID, requesterID uuid.UUID, candidateIDs []uuid.UUID) error {
	chat, err := s.chats.Get(chatID)
	if err != nil {
		return err
	}
	if !chat.GroupChat {
		return apperr.ErrNotAGroup
	}
	if chat.CreatorID != requesterID {
		return apperr.ErrNotAuthorized
	}

	candidates, err := s.users.GetMany(lo.Uniq(candidateIDs))
	if err != nil {
		return err
	}
	if len(candidates) != len(lo.Uniq(candidateIDs)) {
		return apperr.ErrUserNotFound
	}

	newMembers := lo.Filter(candidates, func(u models.User, _ int) bool {
		return !chat.HasMember(u.ID)
	})
	if len(newMembers) == 0 {
		return nil
	}

	if len(chat.Members)+len(newMembers) > maxGroupMembers {
		return apperr.ErrMemberLimitExceeded
	}

	chat.Members = append(chat.Members, newMembers...)
	if err := s.chats.Update(chat); err != nil {
		return err
	}

	names := strings.Join(lo.Map(newMembers, func(u models.User, _ int) string {
		return u.Name
	}), ", ")
	roster := chat.MemberIDs()

	s.events.Emit(events.TypeAlert, roster, events.AlertPayload{
		ChatID:  chat.ID.String(),
		Message: fmt.Sprintf("%s has been added to the group", names),
	})
	s.events.Emit(events.TypeRefetchChats, roster, nil)

	return nil
}

// RemoveMember evicts a member from a group. The group, counting the
// member being removed, must have more than 3 members beforehand. The
// pre-removal roster gets the membership-changed push so the evicted
// member's own client refreshes and discovers the eviction.
func (s *ChatService) RemoveMember(chatID, requesterID, targetID uuid.UUID) error {
	chat, err := s.chats.Get(chatID)
	if err != nil {
		return err
	}
	if !chat.GroupChat {
		return apperr.ErrNotAGroup
	}
	if chat.CreatorID != requesterID {
		return apperr.ErrNotAuthorized
	}
	if len(chat.Members) <= minGroupMembers {
		return apperr.ErrMinimumSizeViolation
	}

	target, err := s.users.Get(targetID)
	if err != nil {
		return err
	}

	oldRoster := chat.MemberIDs()
	chat.Members = lo.Reject(chat.Members, func(u models.User, _ int) bool {
		return u.ID == targetID
	})
	if err := s.chats.Update(chat); err != nil {
		return err
	}

	s.events.Emit(events.TypeAlert, chat.MemberIDs(), events.AlertPayload{
		ChatID:  chat.ID.String(),
		Message: fmt.Sprintf("%s has been removed from the group", target.Name),
	})
	s.events.Emit(events.TypeRefetchChats, oldRoster, nil)

	return nil
}

// Leave removes the requester from a group. When the creator leaves, a
// new creator is picked uniformly at random from the remaining members.
func (s *ChatService) Leave(chatID, userID uuid.UUID) error {
	chat, err := s.chats.Get(chatID)
	if err != nil {
		return err
	}
	if !chat.GroupChat {
		return apperr.ErrNotAGroup
	}

	remaining := lo.Reject(chat.Members, func(u models.User, _ int) bool {
		return u.ID == userID
	})
	if len(remaining) == len(chat.Members) {
		return apperr.ErrNotAMember
	}
	if len(remaining) < minGroupMembers {
		return apperr.ErrMinimumSizeViolation
	}

	if chat.CreatorID == userID {
		chat.CreatorID = remaining[rand.Intn(len(remaining))].ID
	}
	chat.Members = remaining
	if err := s.chats.Update(chat); err != nil {
		return err
	}

	user, err := s.users.Get(userID)
	if err != nil {
		return err
	}

	s.events.Emit(events.TypeAlert, chat.MemberIDs(), events.AlertPayload{
		ChatID:  chat.ID.String(),
		Message: fmt.Sprintf("%s has left the group", user.Name),
	})

	return nil
}

// Rename changes a group's name. Creator only.
func (s *ChatService) Rename(chatID, requesterID uuid.UUID, name string) error {
	chat, err := s.chats.Get(chatID)
	if err != nil {
		return err
	}
	if !chat.GroupChat {
		return apperr.ErrNotAGroup
	}
	if chat.CreatorID != requesterID {
		return apperr.ErrNotAuthorized
	}

	chat.Name = name
	if err := s.chats.Update(chat); err != nil {
		return err
	}

	s.events.Emit(events.TypeRefetchChats, chat.MemberIDs(), nil)
	return nil
}

// Delete removes a chat and cascades to its messages. Attachment
// objects are cleaned up best-effort; a storage failure is logged and
// never blocks the deletion.
func (s *ChatService) Delete(chatID, requesterID uuid.UUID) error {
	chat, err := s.chats.Get(chatID)
	if err != nil {
		return err
	}

	if chat.GroupChat {
		if chat.CreatorID != requesterID {
			return apperr.ErrNotAuthorized
		}
	} else if !chat.HasMember(requesterID) {
		return apperr.ErrNotAuthorized
	}

	roster := chat.MemberIDs()

	withAttachments, err := s.messages.WithAttachments(chatID)
	if err != nil {
		return err
	}
	var publicIDs []string
	for _, msg := range withAttachments {
		for _, att := range msg.Attachments {
			publicIDs = append(publicIDs, att.PublicID)
		}
	}

	if err := s.chats.Delete(chatID); err != nil {
		return err
	}

	if len(publicIDs) > 0 {
		if err := s.attachments.Remove(publicIDs); err != nil {
			log.Printf("chat %s deleted but attachment cleanup failed: %v", chatID, err)
		}
	}

	s.events.Emit(events.TypeRefetchChats, roster, nil)
	return nil
}

// MyChats lists every chat the user belongs to.
func (s *ChatService) MyChats(userID uuid.UUID) ([]models.Chat, error) {
	return s.chats.ListByMember(userID)
}

// MyGroups lists the groups the user created.
func (s *ChatService) MyGroups(userID uuid.UUID) ([]models.Chat, error) {
	return s.chats.ListGroupsByCreator(userID)
}

// Details fetches one chat with its members loaded.
func (s *ChatService) Details(chatID uuid.UUID) (*models.Chat, error) {
	return s.chats.Get(chatID)
}
