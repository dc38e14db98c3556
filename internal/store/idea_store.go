package store

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/mindnest/backend/internal/models"
)

// CreateIdeaInput carries the participant-supplied fields of a new idea.
type CreateIdeaInput struct {
	Title        string
	Pitch        string
	Description  string
	DemoLink     *string
	PitchDeckURL *string
	PptURL       *string
}

// IdeaStore owns Idea rows. Review-field updates are single-column writes
// with last-writer-wins semantics; there is no cross-field transaction.
type IdeaStore struct {
	db *gorm.DB
}

func NewIdeaStore(db *gorm.DB) *IdeaStore {
	return &IdeaStore{db: db}
}

// Create validates the required descriptive fields and persists a new idea
// in the under_review state.
func (s *IdeaStore) Create(ctx context.Context, ownerID *uint, in CreateIdeaInput) (*models.Idea, error) {
	var missing []string
	if strings.TrimSpace(in.Title) == "" {
		missing = append(missing, "title")
	}
	if strings.TrimSpace(in.Pitch) == "" {
		missing = append(missing, "pitch")
	}
	if strings.TrimSpace(in.Description) == "" {
		missing = append(missing, "description")
	}
	if len(missing) > 0 {
		return nil, missingFields(missing)
	}

	idea := &models.Idea{
		ID:           uuid.NewString(),
		UserID:       ownerID,
		Title:        in.Title,
		Pitch:        in.Pitch,
		Description:  in.Description,
		DemoLink:     in.DemoLink,
		PitchDeckURL: in.PitchDeckURL,
		PptURL:       in.PptURL,
		Status:       models.StatusUnderReview,
		Tags:         models.StringSlice{},
	}
	if err := s.db.WithContext(ctx).Create(idea).Error; err != nil {
		return nil, translate(err)
	}
	return idea, nil
}

func (s *IdeaStore) Get(ctx context.Context, id string) (*models.Idea, error) {
	var idea models.Idea
	if err := s.db.WithContext(ctx).First(&idea, "id = ?", id).Error; err != nil {
		return nil, translate(err)
	}
	return &idea, nil
}

func (s *IdeaStore) ListAll(ctx context.Context) ([]models.Idea, error) {
	var ideas []models.Idea
	if err := s.db.WithContext(ctx).Order("created_at desc").Find(&ideas).Error; err != nil {
		return nil, translate(err)
	}
	return ideas, nil
}

func (s *IdeaStore) ListByOwner(ctx context.Context, ownerID uint) ([]models.Idea, error) {
	var ideas []models.Idea
	if err := s.db.WithContext(ctx).Where("user_id = ?", ownerID).Order("created_at desc").Find(&ideas).Error; err != nil {
		return nil, translate(err)
	}
	return ideas, nil
}

// updateColumn writes one review field, reporting NotFound when the idea
// does not exist.
func (s *IdeaStore) updateColumn(ctx context.Context, id, column string, value interface{}) (*models.Idea, error) {
	res := s.db.WithContext(ctx).Model(&models.Idea{}).Where("id = ?", id).Update(column, value)
	if res.Error != nil {
		return nil, translate(res.Error)
	}
	if res.RowsAffected == 0 {
		return nil, ErrNotFound
	}
	return s.Get(ctx, id)
}

func (s *IdeaStore) UpdateStatus(ctx context.Context, id, status string) (*models.Idea, error) {
	return s.updateColumn(ctx, id, "status", status)
}

func (s *IdeaStore) UpdateScore(ctx context.Context, id string, score int) (*models.Idea, error) {
	if score < 1 || score > 10 {
		return nil, &ValidationError{Fields: []string{"score"}, Reason: "score must be between 1 and 10"}
	}
	return s.updateColumn(ctx, id, "score", score)
}

func (s *IdeaStore) UpdateFundingAmount(ctx context.Context, id string, amount int) (*models.Idea, error) {
	if amount < 0 {
		return nil, &ValidationError{Fields: []string{"fundingAmount"}, Reason: "funding amount must not be negative"}
	}
	return s.updateColumn(ctx, id, "funding_amount", amount)
}

func (s *IdeaStore) UpdateNote(ctx context.Context, id, note string) (*models.Idea, error) {
	return s.updateColumn(ctx, id, "note", note)
}

func (s *IdeaStore) UpdateTags(ctx context.Context, id string, tags []string) (*models.Idea, error) {
	if tags == nil {
		tags = []string{}
	}
	return s.updateColumn(ctx, id, "tags", models.StringSlice(tags))
}
