package withdrawalservice

import (
	"context"
	"errors"
	"strings"

	"github.com/GlebRadaev/adrewards/internal/config"
	"github.com/GlebRadaev/adrewards/internal/domain"
	"github.com/GlebRadaev/adrewards/internal/pg"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type UserRepo interface {
	FindByID(ctx context.Context, id string) (*domain.User, error)
	FindByIDForUpdate(ctx context.Context, id string) (*domain.User, error)
	ApplyWithdrawal(ctx context.Context, id string, amount int64, danaNumber, danaName string) (*domain.User, error)
}

type WithdrawalRepo interface {
	CreateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error)
	GetWithdrawalsByUserID(ctx context.Context, userID string) ([]domain.Withdrawal, error)
	GetRecentWithUsers(ctx context.Context, limit int) ([]domain.WithdrawalWithUser, error)
	FindByID(ctx context.Context, id string) (*domain.Withdrawal, error)
	UpdateStatus(ctx context.Context, id, from, to string) (*domain.Withdrawal, error)
}

var (
	ErrInvalidAmount       = errors.New("withdrawal amount below minimum")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrUserNotFound        = errors.New("user not found")
	ErrWithdrawalNotFound  = errors.New("withdrawal not found")
	ErrInvalidStatus       = errors.New("unknown withdrawal status")
	ErrInvalidTransition   = errors.New("invalid status transition")
)

const (
	proofLimit  = 100
	exportLimit = 1000

	maskVisibleDigits = 4
)

type Service struct {
	userRepo       UserRepo
	withdrawalRepo WithdrawalRepo
	txManager      pg.TXManager
	minWithdrawal  int64
}

func New(userRepo UserRepo, withdrawalRepo WithdrawalRepo, txManager pg.TXManager, cfg *config.Config) *Service {
	return &Service{
		userRepo:       userRepo,
		withdrawalRepo: withdrawalRepo,
		txManager:      txManager,
		minWithdrawal:  cfg.MinWithdrawal,
	}
}

// RequestWithdrawal validates the amount against policy, then debits the
// balance and appends a PENDING withdrawal inside one transaction. The user
// row is locked for the duration, so two concurrent requests can never both
// pass the balance check against a stale value.
func (s *Service) RequestWithdrawal(ctx context.Context, userID, danaNumber, danaName string, amount int64) (int64, error) {
	if amount < s.minWithdrawal {
		return 0, ErrInvalidAmount
	}

	var remaining int64
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		user, err := s.userRepo.FindByIDForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if user == nil {
			return ErrUserNotFound
		}
		if user.Balance < amount {
			return ErrInsufficientBalance
		}

		updated, err := s.userRepo.ApplyWithdrawal(ctx, userID, amount, danaNumber, danaName)
		if err != nil {
			return err
		}
		if updated == nil {
			return ErrInsufficientBalance
		}

		withdrawal := &domain.Withdrawal{
			ID:               uuid.NewString(),
			UserID:           userID,
			Amount:           amount,
			RemainingBalance: updated.Balance,
			Status:           domain.WithdrawalStatusPending,
		}
		if _, err := s.withdrawalRepo.CreateWithdrawal(ctx, withdrawal); err != nil {
			return err
		}

		remaining = updated.Balance
		return nil
	})
	if err != nil {
		zap.L().Error("withdrawal request failed",
			zap.String("userID", userID), zap.Int64("amount", amount), zap.Error(err))
		return 0, err
	}

	zap.L().Info("withdrawal requested",
		zap.String("userID", userID), zap.Int64("amount", amount), zap.Int64("remaining", remaining))
	return remaining, nil
}

// GetHistory returns the user's withdrawals newest first, together with the
// user record carrying the payout destination fields.
func (s *Service) GetHistory(ctx context.Context, userID string) (*domain.User, []domain.Withdrawal, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, nil, err
	}
	if user == nil {
		return nil, nil, ErrUserNotFound
	}

	withdrawals, err := s.withdrawalRepo.GetWithdrawalsByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, nil, err
	}
	return user, withdrawals, nil
}

// GetProofOfPayment lists the most recent withdrawals across all users with
// payout numbers redacted down to the last four digits.
func (s *Service) GetProofOfPayment(ctx context.Context) ([]domain.WithdrawalWithUser, error) {
	withdrawals, err := s.withdrawalRepo.GetRecentWithUsers(ctx, proofLimit)
	if err != nil {
		zap.L().Error("failed to fetch proof of payment", zap.Error(err))
		return nil, err
	}
	for i := range withdrawals {
		withdrawals[i].DanaNumber = maskPayoutNumber(withdrawals[i].DanaNumber)
		if withdrawals[i].TelegramUsername == "" {
			withdrawals[i].TelegramUsername = "Unknown"
		}
	}
	return withdrawals, nil
}

// GetAllForExport returns recent withdrawals unmasked for the operator
// report.
func (s *Service) GetAllForExport(ctx context.Context) ([]domain.WithdrawalWithUser, error) {
	withdrawals, err := s.withdrawalRepo.GetRecentWithUsers(ctx, exportLimit)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals for export", zap.Error(err))
		return nil, err
	}
	return withdrawals, nil
}

// UpdateStatus advances a withdrawal through its lifecycle on behalf of the
// operator. The repository update is conditional on the observed status, so
// a concurrent transition makes this one fail instead of skipping a step.
func (s *Service) UpdateStatus(ctx context.Context, id, status string) (*domain.Withdrawal, error) {
	if !domain.IsValidWithdrawalStatus(status) {
		return nil, ErrInvalidStatus
	}

	withdrawal, err := s.withdrawalRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if withdrawal == nil {
		return nil, ErrWithdrawalNotFound
	}
	if !domain.CanTransitionWithdrawal(withdrawal.Status, status) {
		return nil, ErrInvalidTransition
	}

	updated, err := s.withdrawalRepo.UpdateStatus(ctx, id, withdrawal.Status, status)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrInvalidTransition
	}

	zap.L().Info("withdrawal status updated",
		zap.String("withdrawalID", id),
		zap.String("from", withdrawal.Status), zap.String("to", status))
	return updated, nil
}

func maskPayoutNumber(number string) string {
	if number == "" {
		return "N/A"
	}
	if len(number) <= maskVisibleDigits {
		return number
	}
	return strings.Repeat("*", len(number)-maskVisibleDigits) + number[len(number)-maskVisibleDigits:]
}
