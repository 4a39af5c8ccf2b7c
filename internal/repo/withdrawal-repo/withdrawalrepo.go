package withdrawalrepo

import (
	"context"

	"github.com/GlebRadaev/adrewards/internal/domain"
	"github.com/GlebRadaev/adrewards/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) CreateWithdrawal(ctx context.Context, withdrawal *domain.Withdrawal) (*domain.Withdrawal, error) {
	query := `
		INSERT INTO withdrawals (id, user_id, amount, remaining_balance, status)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query,
		withdrawal.ID, withdrawal.UserID, withdrawal.Amount,
		withdrawal.RemainingBalance, withdrawal.Status,
	).Scan(&withdrawal.CreatedAt, &withdrawal.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save withdrawal", zap.Error(err))
		return nil, err
	}
	return withdrawal, nil
}

func (r *Repository) GetWithdrawalsByUserID(ctx context.Context, userID string) ([]domain.Withdrawal, error) {
	query := `
        SELECT id, user_id, amount, remaining_balance, status, created_at, updated_at
        FROM withdrawals
        WHERE user_id = $1
        ORDER BY created_at DESC
    `
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		zap.L().Error("failed to fetch withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.Withdrawal
	for rows.Next() {
		var wd domain.Withdrawal
		err := rows.Scan(&wd.ID, &wd.UserID, &wd.Amount, &wd.RemainingBalance, &wd.Status, &wd.CreatedAt, &wd.UpdatedAt)
		if err != nil {
			zap.L().Error("failed to scan withdrawal row", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, wd)
	}

	return withdrawals, nil
}

// GetRecentWithUsers returns the latest withdrawals across all users, most
// recently updated first, joined with the owner's display and payout fields.
func (r *Repository) GetRecentWithUsers(ctx context.Context, limit int) ([]domain.WithdrawalWithUser, error) {
	query := `
        SELECT w.id, w.user_id, w.amount, w.remaining_balance, w.status, w.created_at, w.updated_at,
               u.telegram_username, u.dana_number
        FROM withdrawals w
        JOIN users u ON u.id = w.user_id
        ORDER BY w.updated_at DESC
        LIMIT $1
    `
	rows, err := r.db.Query(ctx, query, limit)
	if err != nil {
		zap.L().Error("failed to fetch recent withdrawals", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var withdrawals []domain.WithdrawalWithUser
	for rows.Next() {
		var wd domain.WithdrawalWithUser
		err := rows.Scan(
			&wd.ID, &wd.UserID, &wd.Amount, &wd.RemainingBalance, &wd.Status,
			&wd.CreatedAt, &wd.UpdatedAt, &wd.TelegramUsername, &wd.DanaNumber,
		)
		if err != nil {
			zap.L().Error("failed to scan recent withdrawal row", zap.Error(err))
			return nil, err
		}
		withdrawals = append(withdrawals, wd)
	}

	return withdrawals, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.Withdrawal, error) {
	query := `
        SELECT id, user_id, amount, remaining_balance, status, created_at, updated_at
        FROM withdrawals
        WHERE id = $1
    `
	var wd domain.Withdrawal
	err := r.db.QueryRow(ctx, query, id).Scan(
		&wd.ID, &wd.UserID, &wd.Amount, &wd.RemainingBalance, &wd.Status, &wd.CreatedAt, &wd.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find withdrawal", zap.Error(err))
		return nil, err
	}
	return &wd, nil
}

// UpdateStatus moves a withdrawal to a new status, but only from the
// expected current one, so concurrent operator actions can't skip steps.
func (r *Repository) UpdateStatus(ctx context.Context, id, from, to string) (*domain.Withdrawal, error) {
	query := `
        UPDATE withdrawals
        SET status = $3, updated_at = now()
        WHERE id = $1 AND status = $2
        RETURNING id, user_id, amount, remaining_balance, status, created_at, updated_at
    `
	var wd domain.Withdrawal
	err := r.db.QueryRow(ctx, query, id, from, to).Scan(
		&wd.ID, &wd.UserID, &wd.Amount, &wd.RemainingBalance, &wd.Status, &wd.CreatedAt, &wd.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't update withdrawal status", zap.Error(err))
		return nil, err
	}
	return &wd, nil
}
