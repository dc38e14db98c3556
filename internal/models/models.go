package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// Role values stored on User.Role.
const (
	RoleParticipant = "PARTICIPANT"
	RoleAdmin       = "ADMIN"
)

// Idea status values.
const (
	StatusUnderReview  = "under_review"
	StatusUnderFunding = "under_funding"
	StatusFunded       = "funded"
	StatusRejected     = "rejected"
)

// User is a platform account. Role is fixed at signup.
type User struct {
	ID           uint      `gorm:"primarykey" json:"id"`
	Username     string    `gorm:"size:255;uniqueIndex;not null" json:"username"`
	Email        string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	Role         string    `gorm:"size:50;not null;default:PARTICIPANT" json:"role"`
	CreatedAt    time.Time `json:"createdAt"`
}

func (u *User) IsAdmin() bool { return u.Role == RoleAdmin }

// StringSlice stores an ordered tag list as a JSON text column so it works
// the same on sqlite and postgres.
type StringSlice []string

func (s StringSlice) Value() (driver.Value, error) {
	if s == nil {
		s = StringSlice{}
	}
	b, err := json.Marshal(s)
	return string(b), err
}

func (s *StringSlice) Scan(value interface{}) error {
	if value == nil {
		*s = StringSlice{}
		return nil
	}
	switch v := value.(type) {
	case []byte:
		return json.Unmarshal(v, s)
	case string:
		return json.Unmarshal([]byte(v), s)
	default:
		return errors.New("unsupported type for StringSlice")
	}
}

// Idea is a participant-submitted proposal. The descriptive fields are
// immutable after creation; status, score, funding, note and tags are
// admin-mutable review fields.
type Idea struct {
	ID            string      `gorm:"primarykey;size:36" json:"id"`
	UserID        *uint       `gorm:"index" json:"userId"` // nil on legacy anonymous rows
	Title         string      `gorm:"size:255;not null" json:"title"`
	Pitch         string      `gorm:"type:text;not null" json:"pitch"`
	Description   string      `gorm:"type:text;not null" json:"description"`
	DemoLink      *string     `gorm:"size:512" json:"demoLink"`
	PitchDeckURL  *string     `gorm:"size:512" json:"pitchDeckUrl"`
	PptURL        *string     `gorm:"size:512" json:"ppt_Url"`
	Status        string      `gorm:"size:32;not null;default:under_review" json:"status"`
	Score         *int        `json:"score"`
	FundingAmount *int        `json:"fundingAmount"`
	Note          *string     `gorm:"type:text" json:"note"`
	Tags          StringSlice `gorm:"type:text" json:"tags"`
	CreatedAt     time.Time   `gorm:"index" json:"createdAt"`
}

// Message is a single chat message between two users. Immutable once written.
type Message struct {
	ID         uint      `gorm:"primarykey" json:"id"`
	SenderID   uint      `gorm:"index;not null" json:"senderId"`
	ReceiverID uint      `gorm:"index;not null" json:"receiverId"`
	Content    string    `gorm:"type:text;not null" json:"content"`
	CreatedAt  time.Time `gorm:"index" json:"createdAt"`

	Sender   *User `gorm:"foreignKey:SenderID" json:"sender,omitempty"`
	Receiver *User `gorm:"foreignKey:ReceiverID" json:"receiver,omitempty"`
}

// ConversationSummary is derived per non-admin counterparty, never persisted.
type ConversationSummary struct {
	PartnerID       uint      `json:"partnerId"`
	PartnerName     string    `json:"partnerName"`
	PartnerEmail    string    `json:"partnerEmail"`
	LastMessage     string    `json:"lastMessage"`
	LastMessageTime time.Time `json:"lastMessageTime"`
	UnreadCount     int       `json:"unreadCount"` // always 0, no read tracking yet
}
