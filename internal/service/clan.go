package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/aliskhannn/batyr-bol/internal/domain/entities"
	"github.com/aliskhannn/batyr-bol/internal/repository"
)

// ClanService manages clans and the daily activity of their members.
type ClanService struct {
	clans    ClanRepository
	activity ActivityRepository
	users    UserRepository
	logger   *zap.Logger
	now      func() time.Time
}

// NewClanService creates a new ClanService.
func NewClanService(clans ClanRepository, activity ActivityRepository, users UserRepository, logger *zap.Logger) *ClanService {
	return &ClanService{
		clans:    clans,
		activity: activity,
		users:    users,
		logger:   logger,
		now:      time.Now,
	}
}

// Create makes a new clan led by the user with email.
func (s *ClanService) Create(ctx context.Context, name, email string) error {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return ErrMissingFields
	}

	clan := entities.Clan{
		Name:      name,
		Leader:    email,
		Members:   []string{email},
		CreatedAt: s.now().UTC(),
	}

	if err := s.clans.Create(ctx, clan); err != nil {
		if errors.Is(err, repository.ErrClanExists) {
			return ErrClanExists
		}
		return err
	}

	s.logger.Info("clan created", zap.String("clan", name))

	return nil
}

// Join adds the user to an existing clan.
func (s *ClanService) Join(ctx context.Context, name, email string) error {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))
	if name == "" || email == "" {
		return ErrMissingFields
	}

	if err := s.clans.AddMember(ctx, name, email, s.now().UTC()); err != nil {
		if errors.Is(err, repository.ErrClanNotFound) {
			return ErrClanNotFound
		}
		return err
	}

	return nil
}

func (s *ClanService) List(ctx context.Context) ([]entities.Clan, error) {
	return s.clans.List(ctx)
}

func (s *ClanService) Leaderboard(ctx context.Context) ([]entities.ClanStanding, error) {
	return s.clans.Leaderboard(ctx)
}

// TrackActivity records today's mission outcome for the user.
func (s *ClanService) TrackActivity(ctx context.Context, email string, completed, skipped bool) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return ErrMissingFields
	}

	now := s.now().UTC()
	return s.activity.Track(ctx, entities.DailyActivity{
		Email:            email,
		Day:              now,
		MissionCompleted: completed,
		MissionSkipped:   skipped && !completed,
		UpdatedAt:        now,
	})
}

// ClanStatus lists the members of a clan with their activity on Day.
type ClanStatus struct {
	ClanName string
	Members  []entities.MemberStatus
	Day      string
}

// MembersStatus returns today's activity of the clan the user belongs to.
func (s *ClanService) MembersStatus(ctx context.Context, email string) (*ClanStatus, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return nil, ErrMissingFields
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	if user.Clan == "" {
		return nil, ErrNotInClan
	}

	now := s.now().UTC()
	members, err := s.clans.MembersStatus(ctx, user.Clan, now)
	if err != nil {
		return nil, err
	}

	return &ClanStatus{
		ClanName: user.Clan,
		Members:  members,
		Day:      entities.FormatDay(now),
	}, nil
}
