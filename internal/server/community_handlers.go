package server

import (
	"time"

	"swipebite/internal/models"

	"github.com/gofiber/fiber/v2"
)

// GetTrending handles GET /api/dishes/trending
func (s *Server) GetTrending(c *fiber.Ctx) error {
	entries, err := s.trendingService.Trending(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"trending": entries})
}

// ComputeTrending handles POST /api/trending/compute (staff only).
// Optional window_hours and half_life_hours override the configured
// values for this run.
func (s *Server) ComputeTrending(c *fiber.Ctx) error {
	var req struct {
		WindowHours   int     `json:"window_hours"`
		HalfLifeHours float64 `json:"half_life_hours"`
	}
	// An empty body means "use the configured knobs".
	_ = c.BodyParser(&req)

	var (
		scores []models.DishScore
		err    error
	)
	if req.WindowHours > 0 || req.HalfLifeHours > 0 {
		window := req.WindowHours
		if window == 0 {
			window = s.config.TrendingWindowHours
		}
		halfLife := req.HalfLifeHours
		if halfLife == 0 {
			halfLife = s.config.TrendingHalfLifeHours
		}
		scores, err = s.trendingService.ComputeWith(c.Context(), window, halfLife)
	} else {
		scores, err = s.trendingService.Compute(c.Context())
	}
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"computed": len(scores),
		"scores":   scores,
	})
}

// parseWeekDate reads a "2006-01-02" date from the given route param.
func (s *Server) parseWeekDate(c *fiber.Ctx, param string) (time.Time, error) {
	raw := c.Params(param)
	day, err := time.Parse("2006-01-02", raw)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Date must be formatted YYYY-MM-DD"))
		return time.Time{}, errResponseWritten
	}
	return day, nil
}

// GetCurrentWeekRanking handles GET /api/rankings/weekly
func (s *Server) GetCurrentWeekRanking(c *fiber.Ctx) error {
	entries, err := s.rankingService.CurrentWeek(c.Context())
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"rankings": entries})
}

// GetWeekRanking handles GET /api/rankings/weekly/:date. Any date inside
// the week resolves to that week's snapshot.
func (s *Server) GetWeekRanking(c *fiber.Ctx) error {
	day, err := s.parseWeekDate(c, "date")
	if err != nil {
		return nil
	}

	entries, err := s.rankingService.Week(c.Context(), day)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"rankings": entries})
}

// GetRankedWeeks handles GET /api/rankings/weekly/weeks
func (s *Server) GetRankedWeeks(c *fiber.Ctx) error {
	weeks, err := s.rankingService.Weeks(c.Context(), c.QueryInt("limit", 0))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"weeks": weeks})
}

// BuildWeekRanking handles POST /api/rankings/weekly/build (staff only).
// Building an already-built week is refused; use rebuild to correct one.
func (s *Server) BuildWeekRanking(c *fiber.Ctx) error {
	weekOf, err := s.weekFromBody(c)
	if err != nil {
		return nil
	}

	entries, err := s.rankingService.BuildWeek(c.Context(), weekOf)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"rankings": entries})
}

// RebuildWeekRanking handles POST /api/rankings/weekly/rebuild (staff only)
func (s *Server) RebuildWeekRanking(c *fiber.Ctx) error {
	weekOf, err := s.weekFromBody(c)
	if err != nil {
		return nil
	}

	entries, err := s.rankingService.RebuildWeek(c.Context(), weekOf)
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"rankings": entries})
}

// weekFromBody reads an optional week_of date from the request body,
// defaulting to the previous (most recently closed) week.
func (s *Server) weekFromBody(c *fiber.Ctx) (time.Time, error) {
	var req struct {
		WeekOf string `json:"week_of"`
	}
	_ = c.BodyParser(&req)

	if req.WeekOf == "" {
		return time.Now().UTC().AddDate(0, 0, -7), nil
	}
	day, err := time.Parse("2006-01-02", req.WeekOf)
	if err != nil {
		_ = models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("week_of must be formatted YYYY-MM-DD"))
		return time.Time{}, errResponseWritten
	}
	return day, nil
}

// GetLeaderboard handles GET /api/leaderboard?category=reviewers|swipers|badges
func (s *Server) GetLeaderboard(c *fiber.Ctx) error {
	category := c.Query("category", "reviewers")
	entries, err := s.userService.Leaderboard(c.Context(), category, c.QueryInt("limit", 0))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{
		"category": category,
		"entries":  entries,
	})
}

// GetMyBadges handles GET /api/users/me/badges
func (s *Server) GetMyBadges(c *fiber.Ctx) error {
	badges, err := s.badgeService.Badges(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"badges": badges})
}

// GetMyBadgeProgress handles GET /api/users/me/badges/progress
func (s *Server) GetMyBadgeProgress(c *fiber.Ctx) error {
	progress, err := s.badgeService.Progress(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"progress": progress})
}

// EvaluateMyBadges handles POST /api/users/me/badges/evaluate. Returns
// only badges newly earned by this evaluation.
func (s *Server) EvaluateMyBadges(c *fiber.Ctx) error {
	earned, err := s.badgeService.Evaluate(c.Context(), currentUserID(c))
	if err != nil {
		return models.RespondWithAppError(c, err)
	}
	return c.JSON(fiber.Map{"earned": earned})
}
