package userservice

import (
	"context"
	"errors"
	"time"

	"github.com/GlebRadaev/adrewards/internal/config"
	"github.com/GlebRadaev/adrewards/internal/domain"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type Repo interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	Upsert(ctx context.Context, user *domain.User) (*domain.User, error)
	ResetDailyViews(ctx context.Context, id string, today time.Time) (*domain.User, error)
	RecordAdView(ctx context.Context, id string, reward int64, today time.Time, maxViews int) (*domain.User, error)
	ResetCounters(ctx context.Context, id string) (*domain.User, error)
}

var (
	ErrUserNotFound  = errors.New("user not found")
	ErrQuotaExceeded = errors.New("daily ad view quota exceeded")
	ErrNoIdentity    = errors.New("no identity provided")
)

// Identity is what the messaging platform hands us for a user: the stable
// numeric id plus display metadata.
type Identity struct {
	TelegramID int64
	Name       string
	Username   string
	PhotoURL   string
}

type Service struct {
	userRepo   Repo
	adReward   int64
	maxAdViews int
	fallback   *Identity
	now        func() time.Time
}

func New(userRepo Repo, cfg *config.Config) *Service {
	s := &Service{
		userRepo:   userRepo,
		adReward:   cfg.AdReward,
		maxAdViews: cfg.MaxAdViews,
		now:        time.Now,
	}
	if cfg.TestIdentity {
		s.fallback = &Identity{
			TelegramID: 12345678,
			Name:       "Test User",
			Username:   "testuser_local",
		}
	}
	return s
}

// today is the current UTC calendar date, the unit the quota watermark
// works in.
func (s *Service) today() time.Time {
	return dateOf(s.now().UTC())
}

func dateOf(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Resolve maps an external identity onto a durable user record, creating one
// with zeroed balance and counters on first contact. Keyed on the stable
// telegram id, so repeated calls never create duplicates and a renamed
// handle never collides.
func (s *Service) Resolve(ctx context.Context, identity Identity) (*domain.User, error) {
	if identity.TelegramID == 0 {
		if s.fallback == nil {
			return nil, ErrNoIdentity
		}
		identity = *s.fallback
	}

	user := &domain.User{
		ID:               uuid.NewString(),
		TelegramID:       identity.TelegramID,
		TelegramName:     identity.Name,
		TelegramUsername: identity.Username,
		PhotoURL:         identity.PhotoURL,
		LastAdViewDate:   s.today(),
	}

	saved, err := s.userRepo.Upsert(ctx, user)
	if err != nil {
		zap.L().Error("can't resolve user", zap.Error(err))
		return nil, err
	}
	return s.normalize(ctx, saved)
}

// GetUser returns the user snapshot, normalizing the daily counter first if
// the date rolled over since the last view.
func (s *Service) GetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		zap.L().Error("can't get user", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return s.normalize(ctx, user)
}

// RecordAdView credits one verified ad view: balance += reward, both
// counters advance, watermark set to today. The repository applies it as a
// single conditional statement, so concurrent views are never lost and the
// quota ceiling holds.
func (s *Service) RecordAdView(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.RecordAdView(ctx, id, s.adReward, s.today(), s.maxAdViews)
	if err != nil {
		zap.L().Error("can't record ad view", zap.Error(err))
		return nil, err
	}
	if user != nil {
		return user, nil
	}

	// No row qualified: either the user is unknown or the quota is spent.
	existing, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if existing == nil {
		return nil, ErrUserNotFound
	}
	return nil, ErrQuotaExceeded
}

// ResetUser zeroes balance and view counters. Administrative operation; the
// record itself stays.
func (s *Service) ResetUser(ctx context.Context, id string) (*domain.User, error) {
	user, err := s.userRepo.ResetCounters(ctx, id)
	if err != nil {
		zap.L().Error("can't reset user", zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	zap.L().Info("user counters reset", zap.String("userID", id))
	return user, nil
}

// normalize applies the daily quota reset when the stored watermark is not
// today. Calling it twice on the same day is a no-op after the first call.
func (s *Service) normalize(ctx context.Context, user *domain.User) (*domain.User, error) {
	today := s.today()
	if dateOf(user.LastAdViewDate).Equal(today) {
		return user, nil
	}

	reset, err := s.userRepo.ResetDailyViews(ctx, user.ID, today)
	if err != nil {
		zap.L().Error("can't normalize user counters", zap.Error(err))
		return nil, err
	}
	if reset == nil {
		// Lost the reset race: someone else already advanced the watermark.
		return s.userRepo.FindByID(ctx, user.ID)
	}
	return reset, nil
}
