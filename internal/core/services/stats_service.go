package services

import (
	"context"
	"fmt"
	"sort"

	"github.com/comitanigiacomo/presence-analyzer/internal/core/domain"
)

type StatsService struct {
	repo domain.PresenceRepository
}

func NewStatsService(repo domain.PresenceRepository) *StatsService {
	return &StatsService{
		repo: repo,
	}
}

// ListUsers returns every user present in the source, ordered by id.
func (s *StatsService) ListUsers(ctx context.Context) ([]domain.User, error) {
	idx, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	ids := make([]int, 0, len(idx))
	for id := range idx {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	users := make([]domain.User, 0, len(ids))
	for _, id := range ids {
		users = append(users, domain.NewUser(id))
	}
	return users, nil
}

func (s *StatsService) MeanTimeByWeekday(ctx context.Context, userID int) (domain.WeekdayReport, error) {
	records, err := s.userRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.MeanTimeByWeekday(records), nil
}

func (s *StatsService) PresenceByWeekday(ctx context.Context, userID int) (domain.PresenceReport, error) {
	records, err := s.userRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.PresenceByWeekday(records), nil
}

func (s *StatsService) StartEndByWeekday(ctx context.Context, userID int) (domain.StartEndReport, error) {
	records, err := s.userRecords(ctx, userID)
	if err != nil {
		return nil, err
	}
	return domain.StartEndByWeekday(records), nil
}

func (s *StatsService) userRecords(ctx context.Context, userID int) (map[domain.Date]domain.Interval, error) {
	idx, err := s.repo.Load(ctx)
	if err != nil {
		return nil, err
	}

	records, ok := idx.User(userID)
	if !ok {
		return nil, fmt.Errorf("user %d: %w", userID, domain.ErrUserNotFound)
	}
	return records, nil
}
