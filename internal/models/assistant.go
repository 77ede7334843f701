package models

import (
	"time"
)

// Assistant query categories, used when logging exchanges.
const (
	QueryRecommendation = "recommendation"
	QueryNutrition      = "nutrition"
	QueryDietary        = "dietary"
	QueryGeneral        = "general"
)

// AssistantQueryLog records one exchange with the rule-based assistant.
type AssistantQueryLog struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"not null;index" json:"user_id"`

	QueryType      string `gorm:"size:20;default:general" json:"query_type"`
	UserMessage    string `gorm:"type:text" json:"user_message"`
	Reply          string `gorm:"type:text" json:"reply"`
	ConversationID string `gorm:"size:100;index" json:"conversation_id"`
	ResponseTimeMS int64  `json:"response_time_ms"`

	User User `gorm:"foreignKey:UserID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (AssistantQueryLog) TableName() string {
	return "assistant_query_logs"
}

// AssistantReply is what the assistant returns for a chat message.
type AssistantReply struct {
	ConversationID string `json:"conversation_id"`
	QueryType      string `json:"query_type"`
	Message        string `json:"message"`
	Suggestions    []Dish `json:"suggestions,omitempty"`
}

// Preferences are the structured filters accepted by the recommender.
// All set constraints are conjunctive.
type Preferences struct {
	Cuisine     string `json:"cuisine,omitempty"`
	Diet        string `json:"diet,omitempty"`
	MaxCalories int    `json:"max_calories,omitempty"`
	PriceTier   int    `json:"price_tier,omitempty"`
}
