package service

import (
	"context"
	"strings"
	"testing"

	"swipebite/internal/models"
	"swipebite/internal/repository"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAssistantForTest(dishRepo *dishRepoStub, reviewRepo *reviewRepoStub, rankingRepo *rankingRepoStub, userRepo *userRepoStub, assistantRepo *assistantRepoStub) *AssistantService {
	if dishRepo == nil {
		dishRepo = noopDishRepo()
	}
	if reviewRepo == nil {
		reviewRepo = noopReviewRepo()
	}
	if rankingRepo == nil {
		rankingRepo = noopRankingRepo()
	}
	if userRepo == nil {
		userRepo = noopUserRepo()
	}
	if assistantRepo == nil {
		assistantRepo = noopAssistantRepo()
	}
	return NewAssistantService(dishRepo, reviewRepo, rankingRepo, userRepo, assistantRepo, 5)
}

func TestAssistantService_Recommend_Ranking(t *testing.T) {
	t.Parallel()

	dishRepo := noopDishRepo()
	dishRepo.filterFn = func(_ context.Context, _ repository.DishFilter) ([]*models.Dish, error) {
		return []*models.Dish{{ID: 1}, {ID: 2}, {ID: 3}, {ID: 4}}, nil
	}
	reviewRepo := noopReviewRepo()
	reviewRepo.averagesByDishFn = func(_ context.Context, _ []uint) (map[uint]float64, error) {
		// Dishes 2 and 3 tie on rating; trending decides between them.
		return map[uint]float64{1: 3.0, 2: 4.5, 3: 4.5}, nil
	}
	rankingRepo := noopRankingRepo()
	rankingRepo.listTrendingFn = func(_ context.Context, _ int) ([]*models.TrendingDish, error) {
		return []*models.TrendingDish{
			{DishID: 3, Score: 9.0},
			{DishID: 2, Score: 1.0},
		}, nil
	}

	svc := newAssistantForTest(dishRepo, reviewRepo, rankingRepo, nil, nil)
	dishes, err := svc.Recommend(context.Background(), 1, "", models.Preferences{}, 3)
	require.NoError(t, err)
	require.Len(t, dishes, 3)
	assert.Equal(t, uint(3), dishes[0].ID, "higher trending wins the rating tie")
	assert.Equal(t, uint(2), dishes[1].ID)
	assert.Equal(t, uint(1), dishes[2].ID)
}

func TestAssistantService_Recommend_TieBreakByDishID(t *testing.T) {
	t.Parallel()

	dishRepo := noopDishRepo()
	dishRepo.filterFn = func(_ context.Context, _ repository.DishFilter) ([]*models.Dish, error) {
		return []*models.Dish{{ID: 8}, {ID: 2}, {ID: 5}}, nil
	}

	svc := newAssistantForTest(dishRepo, nil, nil, nil, nil)
	dishes, err := svc.Recommend(context.Background(), 1, "", models.Preferences{}, 10)
	require.NoError(t, err)
	require.Len(t, dishes, 3)
	assert.Equal(t, uint(2), dishes[0].ID)
	assert.Equal(t, uint(5), dishes[1].ID)
	assert.Equal(t, uint(8), dishes[2].ID)
}

func TestAssistantService_Recommend_KBounds(t *testing.T) {
	t.Parallel()

	many := make([]*models.Dish, 40)
	for i := range many {
		many[i] = &models.Dish{ID: uint(i + 1)}
	}
	dishRepo := noopDishRepo()
	dishRepo.filterFn = func(_ context.Context, _ repository.DishFilter) ([]*models.Dish, error) {
		return many, nil
	}

	svc := newAssistantForTest(dishRepo, nil, nil, nil, nil)
	ctx := context.Background()

	t.Run("zero k uses the default", func(t *testing.T) {
		t.Parallel()
		dishes, err := svc.Recommend(ctx, 1, "", models.Preferences{}, 0)
		require.NoError(t, err)
		assert.Len(t, dishes, 5)
	})

	t.Run("oversized k is capped", func(t *testing.T) {
		t.Parallel()
		dishes, err := svc.Recommend(ctx, 1, "", models.Preferences{}, 100)
		require.NoError(t, err)
		assert.Len(t, dishes, RecommendMaxK)
	})
}

func TestAssistantService_Recommend_Validation(t *testing.T) {
	t.Parallel()

	svc := newAssistantForTest(nil, nil, nil, nil, nil)
	ctx := context.Background()

	tests := []struct {
		name  string
		prefs models.Preferences
	}{
		{name: "unknown diet", prefs: models.Preferences{Diet: "carnivore"}},
		{name: "negative calories", prefs: models.Preferences{MaxCalories: -100}},
		{name: "price tier out of range", prefs: models.Preferences{PriceTier: 5}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := svc.Recommend(ctx, 1, "", tt.prefs, 5)
			assertValidationError(t, err)
		})
	}
}

func TestAssistantService_Recommend_NoMatches(t *testing.T) {
	t.Parallel()

	svc := newAssistantForTest(nil, nil, nil, nil, nil)
	dishes, err := svc.Recommend(context.Background(), 1, "", models.Preferences{Cuisine: "martian"}, 5)
	require.NoError(t, err)
	assert.NotNil(t, dishes)
	assert.Empty(t, dishes)
}

func TestAssistantService_Recommend_QueryKeywords(t *testing.T) {
	t.Parallel()

	newCapture := func() (*dishRepoStub, *repository.DishFilter) {
		dishRepo := noopDishRepo()
		dishRepo.cuisineNamesFn = func(_ context.Context) ([]string, error) {
			return []string{"Mexican", "Thai"}, nil
		}
		got := &repository.DishFilter{}
		dishRepo.filterFn = func(_ context.Context, f repository.DishFilter) ([]*models.Dish, error) {
			*got = f
			return nil, nil
		}
		return dishRepo, got
	}

	t.Run("every keyword narrows the filter together", func(t *testing.T) {
		t.Parallel()
		dishRepo, got := newCapture()
		svc := newAssistantForTest(dishRepo, nil, nil, nil, nil)

		_, err := svc.Recommend(context.Background(), 1,
			"Something spicy and vegan, maybe Thai, for dinner", models.Preferences{}, 5)
		require.NoError(t, err)
		assert.Equal(t, "Thai", got.CuisineName)
		assert.Equal(t, models.DietVegan, got.Diet)
		assert.Equal(t, models.MealDinner, got.MealType)
		assert.True(t, got.Spicy)
	})

	t.Run("budget and healthy words set caps", func(t *testing.T) {
		t.Parallel()
		dishRepo, got := newCapture()
		svc := newAssistantForTest(dishRepo, nil, nil, nil, nil)

		_, err := svc.Recommend(context.Background(), 1,
			"cheap but healthy lunch", models.Preferences{}, 5)
		require.NoError(t, err)
		assert.Equal(t, budgetPriceTier, got.PriceTier)
		assert.Equal(t, healthyMaxCalories, got.MaxCalories)
		assert.Equal(t, models.MealLunch, got.MealType)
	})

	t.Run("structured preferences win over query keywords", func(t *testing.T) {
		t.Parallel()
		dishRepo, got := newCapture()
		svc := newAssistantForTest(dishRepo, nil, nil, nil, nil)

		_, err := svc.Recommend(context.Background(), 1, "mexican vegetarian food",
			models.Preferences{Cuisine: "Thai", Diet: models.DietVegan}, 5)
		require.NoError(t, err)
		assert.Equal(t, "Thai", got.CuisineName)
		assert.Equal(t, models.DietVegan, got.Diet)
	})

	t.Run("gluten keyword maps to the gluten-free diet", func(t *testing.T) {
		t.Parallel()
		dishRepo, got := newCapture()
		svc := newAssistantForTest(dishRepo, nil, nil, nil, nil)

		_, err := svc.Recommend(context.Background(), 1,
			"gluten free breakfast please", models.Preferences{}, 5)
		require.NoError(t, err)
		assert.Equal(t, "gluten_free", got.Diet)
		assert.Equal(t, models.MealBreakfast, got.MealType)
	})
}

func TestAssistantService_Chat_Validation(t *testing.T) {
	t.Parallel()

	svc := newAssistantForTest(nil, nil, nil, nil, nil)
	ctx := context.Background()

	t.Run("empty message", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Chat(ctx, ChatInput{UserID: 1, Message: "   "})
		assertValidationError(t, err)
	})

	t.Run("message too long", func(t *testing.T) {
		t.Parallel()
		_, err := svc.Chat(ctx, ChatInput{UserID: 1, Message: strings.Repeat("x", 1001)})
		assertValidationError(t, err)
	})
}

func TestAssistantService_Chat_Classification(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		message   string
		queryType string
	}{
		{name: "greeting", message: "Hello!", queryType: models.QueryGeneral},
		{name: "recommendation", message: "Can you recommend something for dinner?", queryType: models.QueryRecommendation},
		{name: "calories", message: "How many calories should I eat?", queryType: models.QueryNutrition},
		{name: "allergies", message: "What about my allergies?", queryType: models.QueryDietary},
		{name: "fallback", message: "zxcvbnm", queryType: models.QueryGeneral},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var logged *models.AssistantQueryLog
			assistantRepo := noopAssistantRepo()
			assistantRepo.logQueryFn = func(_ context.Context, entry *models.AssistantQueryLog) error {
				logged = entry
				return nil
			}

			svc := newAssistantForTest(nil, nil, nil, nil, assistantRepo)
			reply, err := svc.Chat(context.Background(), ChatInput{UserID: 1, Message: tt.message})
			require.NoError(t, err)
			assert.Equal(t, tt.queryType, reply.QueryType)
			assert.NotEmpty(t, reply.Message)
			assert.NotEmpty(t, reply.ConversationID)

			require.NotNil(t, logged, "every exchange must be logged")
			assert.Equal(t, tt.queryType, logged.QueryType)
			assert.Equal(t, reply.ConversationID, logged.ConversationID)
		})
	}
}

func TestAssistantService_Chat_KeepsConversationID(t *testing.T) {
	t.Parallel()

	svc := newAssistantForTest(nil, nil, nil, nil, nil)
	reply, err := svc.Chat(context.Background(), ChatInput{
		UserID:         1,
		Message:        "hello",
		ConversationID: "conv-123",
	})
	require.NoError(t, err)
	assert.Equal(t, "conv-123", reply.ConversationID)
}

func TestAssistantService_Chat_RecommendationSuggestions(t *testing.T) {
	t.Parallel()

	dishRepo := noopDishRepo()
	dishRepo.filterFn = func(_ context.Context, _ repository.DishFilter) ([]*models.Dish, error) {
		return []*models.Dish{{ID: 1, Name: "Pad Thai"}, {ID: 2, Name: "Ramen"}}, nil
	}

	svc := newAssistantForTest(dishRepo, nil, nil, nil, nil)
	reply, err := svc.Chat(context.Background(), ChatInput{UserID: 1, Message: "suggest me dinner"})
	require.NoError(t, err)
	assert.Equal(t, models.QueryRecommendation, reply.QueryType)
	require.Len(t, reply.Suggestions, 2)
	assert.Equal(t, "Pad Thai", reply.Suggestions[0].Name)
}

func TestAssistantService_Chat_CombinesMessageKeywords(t *testing.T) {
	t.Parallel()

	// The first matching rule picks the reply, but every vocabulary word
	// in the message still constrains the suggestions.
	var got repository.DishFilter
	dishRepo := noopDishRepo()
	dishRepo.filterFn = func(_ context.Context, f repository.DishFilter) ([]*models.Dish, error) {
		got = f
		return []*models.Dish{{ID: 1, Name: "Vegan Curry"}}, nil
	}

	svc := newAssistantForTest(dishRepo, nil, nil, nil, nil)
	reply, err := svc.Chat(context.Background(), ChatInput{UserID: 1, Message: "I want something spicy and vegan"})
	require.NoError(t, err)
	assert.Equal(t, models.QueryDietary, reply.QueryType)
	assert.Equal(t, models.DietVegan, got.Diet)
	assert.True(t, got.Spicy, "spicy must apply alongside the vegan constraint")
}
