package store

import (
	"context"
	"strings"

	"gorm.io/gorm"

	"github.com/mindnest/backend/internal/models"
)

// MessageStore owns Message rows and the derived conversation summaries.
type MessageStore struct {
	db *gorm.DB
}

func NewMessageStore(db *gorm.DB) *MessageStore {
	return &MessageStore{db: db}
}

// Send validates and persists one message. Both parties must exist; the
// foreign keys are resolved inside the insert transaction so a message never
// references a missing user.
func (s *MessageStore) Send(ctx context.Context, senderID, receiverID uint, content string) (*models.Message, error) {
	content = strings.TrimSpace(content)
	if content == "" {
		return nil, &ValidationError{Fields: []string{"content"}, Reason: "message content must not be empty"}
	}
	if senderID == receiverID {
		return nil, &ValidationError{Fields: []string{"receiverId"}, Reason: "cannot send a message to yourself"}
	}

	msg := &models.Message{SenderID: senderID, ReceiverID: receiverID, Content: content}
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var n int64
		if err := tx.Model(&models.User{}).Where("id IN ?", []uint{senderID, receiverID}).Count(&n).Error; err != nil {
			return err
		}
		if n != 2 {
			return gorm.ErrRecordNotFound
		}
		return tx.Create(msg).Error
	})
	if err != nil {
		return nil, translate(err)
	}

	if err := s.db.WithContext(ctx).Preload("Sender").Preload("Receiver").First(msg, msg.ID).Error; err != nil {
		return nil, translate(err)
	}
	return msg, nil
}

// History returns every message between the two users, both directions,
// oldest first. The id ordering breaks created_at ties deterministically.
func (s *MessageStore) History(ctx context.Context, userA, userB uint) ([]models.Message, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Where("(sender_id = ? AND receiver_id = ?) OR (sender_id = ? AND receiver_id = ?)",
			userA, userB, userB, userA).
		Preload("Sender").Preload("Receiver").
		Order("created_at asc, id asc").
		Find(&messages).Error
	if err != nil {
		return nil, translate(err)
	}
	return messages, nil
}

// Conversations rolls the full message set up into one summary per non-admin
// counterparty. Messages are walked newest first and the first message seen
// for a partner fixes that partner's row, so the summary always reflects the
// most recent exchange.
func (s *MessageStore) Conversations(ctx context.Context) ([]models.ConversationSummary, error) {
	var messages []models.Message
	err := s.db.WithContext(ctx).
		Preload("Sender").Preload("Receiver").
		Order("created_at desc, id desc").
		Find(&messages).Error
	if err != nil {
		return nil, translate(err)
	}

	seen := make(map[uint]bool)
	summaries := make([]models.ConversationSummary, 0, len(messages))
	for _, msg := range messages {
		var partner *models.User
		switch {
		case msg.Sender != nil && !msg.Sender.IsAdmin():
			partner = msg.Sender
		case msg.Receiver != nil && !msg.Receiver.IsAdmin():
			partner = msg.Receiver
		}
		if partner == nil || seen[partner.ID] {
			continue
		}
		seen[partner.ID] = true
		summaries = append(summaries, models.ConversationSummary{
			PartnerID:       partner.ID,
			PartnerName:     partner.Username,
			PartnerEmail:    partner.Email,
			LastMessage:     msg.Content,
			LastMessageTime: msg.CreatedAt,
			UnreadCount:     0,
		})
	}
	return summaries, nil
}
