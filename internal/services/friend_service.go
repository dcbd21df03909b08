package services

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/mkrishnakr62/chatting-backend-app/internal/apperr"
	"github.com/mkrishnakr62/chatting-backend-app/internal/events"
	"github.com/mkrishnakr62/chatting-backend-app/internal/models"
)

// FriendService manages the friend-request lifecycle. Acceptance is
// terminal: the request record is deleted and a direct chat between
// the two parties takes its place.
type FriendService struct {
	requests RequestRepository
	chats    ChatRepository
	users    UserRepository
	events   *events.Dispatcher
}

func NewFriendService(requests RequestRepository, chats ChatRepository, users UserRepository, dispatcher *events.Dispatcher) *FriendService {
	return &FriendService{
		requests: requests,
		chats:    chats,
		users:    users,
		events:   dispatcher,
	}
}

// SendRequest creates a pending request from sender to receiver. At
// most one pending request may exist per user pair, in either
// direction.
func (s *FriendService) SendRequest(senderID, receiverID uuid.UUID) error {
	if _, err := s.users.Get(receiverID); err != nil {
		return err
	}

	existing, err := s.requests.FindPending(senderID, receiverID)
	if err != nil {
		return err
	}
	if existing != nil {
		return apperr.ErrDuplicateRequest
	}

	req := &models.FriendRequest{
		SenderID:   senderID,
		ReceiverID: receiverID,
	}
	if err := s.requests.Create(req); err != nil {
		return err
	}

	s.events.Emit(events.TypeNewRequest, []uuid.UUID{receiverID}, nil)
	return nil
}

// Respond resolves a pending request. Only the receiver may respond.
// Rejecting deletes the request; accepting deletes it and creates the
// direct chat, which is returned.
func (s *FriendService) Respond(requestID, responderID uuid.UUID, accept bool) (*models.Chat, error) {
	req, err := s.requests.Get(requestID)
	if err != nil {
		return nil, err
	}
	if req.ReceiverID != responderID {
		return nil, apperr.ErrRequestNotYours
	}

	if !accept {
		return nil, s.requests.Delete(req.ID)
	}

	chat := &models.Chat{
		Name:      fmt.Sprintf("%s-%s", req.Sender.Name, req.Receiver.Name),
		GroupChat: false,
		Members:   []models.User{req.Sender, req.Receiver},
	}
	if err := s.chats.Create(chat); err != nil {
		return nil, err
	}
	if err := s.requests.Delete(req.ID); err != nil {
		return nil, err
	}

	s.events.Emit(events.TypeRefetchChats, []uuid.UUID{req.SenderID, req.ReceiverID}, nil)
	return chat, nil
}

// Notifications lists the user's pending incoming requests.
func (s *FriendService) Notifications(receiverID uuid.UUID) ([]models.FriendRequest, error) {
	return s.requests.ListByReceiver(receiverID)
}

// Friends returns the other party of each of the user's direct chats.
// When chatID is given, friends already in that chat are filtered out
// (used to offer candidates for adding to a group).
func (s *FriendService) Friends(userID uuid.UUID, chatID *uuid.UUID) ([]models.User, error) {
	directs, err := s.chats.ListDirectByMember(userID)
	if err != nil {
		return nil, err
	}

	friends := make([]models.User, 0, len(directs))
	for _, chat := range directs {
		for _, member := range chat.Members {
			if member.ID != userID {
				friends = append(friends, member)
			}
		}
	}

	if chatID == nil {
		return friends, nil
	}

	chat, err := s.chats.Get(*chatID)
	if err != nil {
		return nil, err
	}
	return lo.Reject(friends, func(u models.User, _ int) bool {
		return chat.HasMember(u.ID)
	}), nil
}
