package service

import (
	"context"
	"errors"
	"time"

	"swipebite/internal/models"
	"swipebite/internal/repository"

	"gorm.io/gorm"
)

// RankingService builds and serves the immutable weekly top-N snapshots.
type RankingService struct {
	rankingRepo repository.RankingRepository
	topN        int
	halfLife    float64

	now func() time.Time
}

func NewRankingService(rankingRepo repository.RankingRepository, topN int, halfLifeHours float64) *RankingService {
	return &RankingService{
		rankingRepo: rankingRepo,
		topN:        topN,
		halfLife:    halfLifeHours,
		now:         time.Now,
	}
}

// WeekStartFor normalizes any moment to the Monday 00:00 UTC that opens
// its calendar week.
func WeekStartFor(t time.Time) time.Time {
	t = t.UTC()
	daysSinceMonday := (int(t.Weekday()) + 6) % 7
	monday := t.AddDate(0, 0, -daysSinceMonday)
	return time.Date(monday.Year(), monday.Month(), monday.Day(), 0, 0, 0, 0, time.UTC)
}

// BuildWeek computes and persists the top-N ranking for the week
// containing weekOf. A week that already has a snapshot is rejected;
// rankings are write-once.
func (s *RankingService) BuildWeek(ctx context.Context, weekOf time.Time) ([]*models.WeeklyRanking, error) {
	weekStart := WeekStartFor(weekOf)
	weekEnd := weekStart.AddDate(0, 0, 7)

	exists, err := s.rankingRepo.WeekExists(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, models.NewAlreadyExistsError("Ranking for this week already exists")
	}

	entries, err := s.computeWeek(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return []*models.WeeklyRanking{}, nil
	}

	if err := s.rankingRepo.CreateWeek(ctx, entries); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, models.NewAlreadyExistsError("Ranking for this week already exists")
		}
		return nil, err
	}
	return entries, nil
}

// RebuildWeek recomputes a week and swaps its snapshot in one
// transaction. Reserved for staff; the normal path never mutates a
// closed week. The compute runs before anything is deleted, so a failed
// or empty recompute leaves the existing rows in place.
func (s *RankingService) RebuildWeek(ctx context.Context, weekOf time.Time) ([]*models.WeeklyRanking, error) {
	weekStart := WeekStartFor(weekOf)
	weekEnd := weekStart.AddDate(0, 0, 7)

	entries, err := s.computeWeek(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, models.NewValidationError("No interactions in this week; existing snapshot kept")
	}
	if err := s.rankingRepo.ReplaceWeek(ctx, weekStart, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (s *RankingService) computeWeek(ctx context.Context, weekStart, weekEnd time.Time) ([]*models.WeeklyRanking, error) {
	interactions, err := s.rankingRepo.RecentInteractions(ctx, weekStart)
	if err != nil {
		return nil, err
	}

	// Only events inside the week count; decay is anchored at week end so
	// rebuilding a past week yields identical scores.
	inWeek := interactions[:0]
	for _, in := range interactions {
		if in.CreatedAt.Before(weekEnd) {
			inWeek = append(inWeek, in)
		}
	}
	scores := ScoreInteractions(inWeek, weekEnd, s.halfLife)
	if len(scores) > s.topN {
		scores = scores[:s.topN]
	}
	if len(scores) == 0 {
		return nil, nil
	}

	weekStats, err := s.rankingRepo.WeekStats(ctx, weekStart, weekEnd)
	if err != nil {
		return nil, err
	}

	entries := make([]*models.WeeklyRanking, 0, len(scores))
	for i, sc := range scores {
		st := weekStats[sc.DishID]
		entries = append(entries, &models.WeeklyRanking{
			WeekStart:   weekStart,
			Rank:        i + 1,
			DishID:      sc.DishID,
			Score:       sc.Score,
			TotalSwipes: st.TotalSwipes,
			RightSwipes: st.RightSwipes,
			ReviewCount: st.ReviewCount,
			AvgRating:   st.AvgRating,
		})
	}
	return entries, nil
}

// Week returns the stored snapshot for the week containing weekOf.
func (s *RankingService) Week(ctx context.Context, weekOf time.Time) ([]*models.WeeklyRanking, error) {
	weekStart := WeekStartFor(weekOf)
	entries, err := s.rankingRepo.GetWeek(ctx, weekStart)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, models.NewNotFoundError("Weekly ranking", weekStart.Format("2006-01-02"))
	}
	return entries, nil
}

// CurrentWeek returns the snapshot for the running week, if built.
func (s *RankingService) CurrentWeek(ctx context.Context) ([]*models.WeeklyRanking, error) {
	return s.Week(ctx, s.now())
}

// Weeks lists the week-start dates that have snapshots, newest first.
func (s *RankingService) Weeks(ctx context.Context, limit int) ([]time.Time, error) {
	if limit <= 0 {
		limit = 12
	}
	return s.rankingRepo.ListWeeks(ctx, limit)
}
