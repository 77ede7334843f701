package service

import (
	"context"
	"fmt"
	"os"
	"time"

	"swipebite/internal/models"
	"swipebite/internal/observability"
	"swipebite/internal/repository"

	"gopkg.in/yaml.v3"
)

// Counters badge rules can test against.
const (
	counterSwipes       = "total_swipes"
	counterReviews      = "reviews_written"
	counterCuisines     = "distinct_cuisines_liked"
	counterFavorites    = "favorites"
	counterHelpfulVotes = "helpful_votes_received"
)

// BadgeRule is one threshold predicate over a user's counters.
type BadgeRule struct {
	Type        string `yaml:"type"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`
	Icon        string `yaml:"icon"`
	Counter     string `yaml:"counter"`
	Threshold   int64  `yaml:"threshold"`
}

// DefaultBadgeRules are the built-in thresholds, used when no rules file
// is configured. Rules only ever add badges; dropping back below a
// threshold never revokes one.
func DefaultBadgeRules() []BadgeRule {
	return []BadgeRule{
		{
			Type:        models.BadgeSwiper,
			Name:        "Serial Swiper",
			Description: "Swiped on 50 dishes",
			Icon:        "🔥",
			Counter:     counterSwipes,
			Threshold:   50,
		},
		{
			Type:        models.BadgeReviewer,
			Name:        "Critic",
			Description: "Wrote 10 reviews",
			Icon:        "✍️",
			Counter:     counterReviews,
			Threshold:   10,
		},
		{
			Type:        models.BadgeExplorer,
			Name:        "Explorer",
			Description: "Liked dishes from 5 different cuisines",
			Icon:        "🧭",
			Counter:     counterCuisines,
			Threshold:   5,
		},
		{
			Type:        models.BadgeFoodie,
			Name:        "Foodie",
			Description: "Saved 20 favorites",
			Icon:        "🍽️",
			Counter:     counterFavorites,
			Threshold:   20,
		},
		{
			Type:        models.BadgeSocial,
			Name:        "Tastemaker",
			Description: "Received 25 helpful votes on reviews",
			Icon:        "⭐",
			Counter:     counterHelpfulVotes,
			Threshold:   25,
		},
	}
}

// LoadBadgeRules reads a rules file, validating that every rule names a
// known counter.
func LoadBadgeRules(path string) ([]BadgeRule, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading badge rules: %w", err)
	}
	var doc struct {
		Badges []BadgeRule `yaml:"badges"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parsing badge rules: %w", err)
	}
	if len(doc.Badges) == 0 {
		return nil, fmt.Errorf("badge rules file %s defines no badges", path)
	}
	for _, rule := range doc.Badges {
		if _, err := counterValue(&models.UserStats{}, rule.Counter); err != nil {
			return nil, fmt.Errorf("badge %q: %w", rule.Type, err)
		}
		if rule.Threshold <= 0 {
			return nil, fmt.Errorf("badge %q: threshold must be positive", rule.Type)
		}
	}
	return doc.Badges, nil
}

func counterValue(stats *models.UserStats, counter string) (int64, error) {
	switch counter {
	case counterSwipes:
		return stats.TotalSwipes, nil
	case counterReviews:
		return stats.ReviewsWritten, nil
	case counterCuisines:
		return stats.DistinctCuisinesLiked, nil
	case counterFavorites:
		return stats.Favorites, nil
	case counterHelpfulVotes:
		return stats.HelpfulVotesReceived, nil
	default:
		return 0, fmt.Errorf("unknown counter %q", counter)
	}
}

type BadgeService struct {
	badgeRepo repository.BadgeRepository
	userRepo  repository.UserRepository
	rules     []BadgeRule

	now func() time.Time
}

func NewBadgeService(badgeRepo repository.BadgeRepository, userRepo repository.UserRepository, rules []BadgeRule) *BadgeService {
	if len(rules) == 0 {
		rules = DefaultBadgeRules()
	}
	return &BadgeService{
		badgeRepo: badgeRepo,
		userRepo:  userRepo,
		rules:     rules,
		now:       time.Now,
	}
}

// Evaluate checks every badge rule against the user's current counters
// and grants the ones newly earned. Running it twice in a row grants
// nothing the second time.
func (s *BadgeService) Evaluate(ctx context.Context, userID uint) ([]*models.UserBadge, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("User", userID)
	}

	stats, err := s.userRepo.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	held, err := s.badgeRepo.TypesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	var granted []*models.UserBadge
	for _, rule := range s.rules {
		if held[rule.Type] {
			continue
		}
		value, err := counterValue(stats, rule.Counter)
		if err != nil {
			return nil, err
		}
		if value < rule.Threshold {
			continue
		}
		badge := &models.UserBadge{
			UserID:      userID,
			BadgeType:   rule.Type,
			Name:        rule.Name,
			Description: rule.Description,
			Icon:        rule.Icon,
			EarnedAt:    s.now(),
		}
		ok, err := s.badgeRepo.Grant(ctx, badge)
		if err != nil {
			return nil, err
		}
		// A concurrent evaluator may have granted it first; not ours then.
		if ok {
			observability.BadgesGrantedTotal.WithLabelValues(rule.Type).Inc()
			granted = append(granted, badge)
		}
	}
	return granted, nil
}

// Badges lists everything the user has earned so far.
func (s *BadgeService) Badges(ctx context.Context, userID uint) ([]*models.UserBadge, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("User", userID)
	}
	return s.badgeRepo.ListByUser(ctx, userID)
}

// BadgeProgress reports one rule alongside whether the user holds it and
// how far along they are, for the achievements screen.
type BadgeProgress struct {
	BadgeType   string `json:"badge_type"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Icon        string `json:"icon"`
	Earned      bool   `json:"earned"`
	Current     int64  `json:"current"`
	Threshold   int64  `json:"threshold"`
}

func (s *BadgeService) Progress(ctx context.Context, userID uint) ([]BadgeProgress, error) {
	exists, err := s.userRepo.Exists(ctx, userID)
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, models.NewNotFoundError("User", userID)
	}
	stats, err := s.userRepo.Stats(ctx, userID)
	if err != nil {
		return nil, err
	}
	held, err := s.badgeRepo.TypesByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := make([]BadgeProgress, 0, len(s.rules))
	for _, rule := range s.rules {
		value, err := counterValue(stats, rule.Counter)
		if err != nil {
			return nil, err
		}
		if value > rule.Threshold {
			value = rule.Threshold
		}
		out = append(out, BadgeProgress{
			BadgeType:   rule.Type,
			Name:        rule.Name,
			Description: rule.Description,
			Icon:        rule.Icon,
			Earned:      held[rule.Type],
			Current:     value,
			Threshold:   rule.Threshold,
		})
	}
	return out, nil
}
