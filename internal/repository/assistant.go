package repository

import (
	"context"

	"swipebite/internal/models"

	"gorm.io/gorm"
)

// AssistantRepository persists the assistant's query log.
type AssistantRepository interface {
	LogQuery(ctx context.Context, entry *models.AssistantQueryLog) error
	History(ctx context.Context, userID uint, conversationID string, limit int) ([]*models.AssistantQueryLog, error)
}

type assistantRepository struct {
	db *gorm.DB
}

// NewAssistantRepository creates a new assistant repository
func NewAssistantRepository(db *gorm.DB) AssistantRepository {
	return &assistantRepository{db: db}
}

func (r *assistantRepository) LogQuery(ctx context.Context, entry *models.AssistantQueryLog) error {
	return r.db.WithContext(ctx).Create(entry).Error
}

func (r *assistantRepository) History(ctx context.Context, userID uint, conversationID string, limit int) ([]*models.AssistantQueryLog, error) {
	var entries []*models.AssistantQueryLog
	q := r.db.WithContext(ctx).Where("user_id = ?", userID)
	if conversationID != "" {
		q = q.Where("conversation_id = ?", conversationID)
	}
	err := q.Order("created_at DESC").Limit(limit).Find(&entries).Error
	return entries, err
}
