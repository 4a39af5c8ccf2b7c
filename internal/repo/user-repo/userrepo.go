package userrepo

import (
	"context"
	"time"

	"github.com/GlebRadaev/adrewards/internal/domain"
	"github.com/GlebRadaev/adrewards/internal/pg"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"
)

const userColumns = `id, telegram_id, telegram_name, telegram_username, photo_url,
	dana_number, dana_name, balance, today_ad_views, total_ad_views,
	last_ad_view_date, created_at, updated_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(
		&user.ID, &user.TelegramID, &user.TelegramName, &user.TelegramUsername,
		&user.PhotoURL, &user.DanaNumber, &user.DanaName, &user.Balance,
		&user.TodayAdViews, &user.TotalAdViews, &user.LastAdViewDate,
		&user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) FindByID(ctx context.Context, id string) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1
    `
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't find user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// FindByIDForUpdate loads the user row under a row-level lock. Must be
// called inside a transaction; concurrent withdrawals serialize here.
func (r *Repository) FindByIDForUpdate(ctx context.Context, id string) (*domain.User, error) {
	query := `
        SELECT ` + userColumns + `
        FROM users
        WHERE id = $1
        FOR UPDATE
    `
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't lock user row", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// Upsert creates the user keyed on the stable telegram_id, or refreshes
// display metadata on conflict. Balance and counters are never touched for
// an existing user.
func (r *Repository) Upsert(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (id, telegram_id, telegram_name, telegram_username, photo_url, last_ad_view_date)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (telegram_id) DO UPDATE
        SET telegram_name = EXCLUDED.telegram_name,
            telegram_username = EXCLUDED.telegram_username,
            photo_url = EXCLUDED.photo_url,
            updated_at = now()
        RETURNING ` + userColumns + `
	`
	saved, err := scanUser(r.db.QueryRow(ctx, query,
		user.ID, user.TelegramID, user.TelegramName, user.TelegramUsername,
		user.PhotoURL, user.LastAdViewDate,
	))
	if err != nil {
		zap.L().Error("can't upsert user", zap.Error(err))
		return nil, err
	}
	return saved, nil
}

// ResetDailyViews zeroes today's counter and advances the watermark, but
// only when the stored date differs from today. Returns nil without error
// when another request already reset the row.
func (r *Repository) ResetDailyViews(ctx context.Context, id string, today time.Time) (*domain.User, error) {
	query := `
        UPDATE users
        SET today_ad_views = 0, last_ad_view_date = $2, updated_at = now()
        WHERE id = $1 AND last_ad_view_date <> $2
        RETURNING ` + userColumns + `
	`
	user, err := scanUser(r.db.QueryRow(ctx, query, id, today))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't reset daily views", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// RecordAdView credits one ad view as a single conditional statement:
// the balance, both counters and the watermark move together, and the
// increment only applies while today's count is below maxViews. Returns nil
// without error when no row qualified (unknown user or exhausted quota).
func (r *Repository) RecordAdView(ctx context.Context, id string, reward int64, today time.Time, maxViews int) (*domain.User, error) {
	query := `
        UPDATE users
        SET balance = balance + $2,
            today_ad_views = CASE WHEN last_ad_view_date = $3 THEN today_ad_views + 1 ELSE 1 END,
            total_ad_views = total_ad_views + 1,
            last_ad_view_date = $3,
            updated_at = now()
        WHERE id = $1
          AND (CASE WHEN last_ad_view_date = $3 THEN today_ad_views ELSE 0 END) < $4
        RETURNING ` + userColumns + `
	`
	user, err := scanUser(r.db.QueryRow(ctx, query, id, reward, today, maxViews))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't record ad view", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// ApplyWithdrawal debits the balance and stores the payout destination. The
// balance guard repeats in SQL so the row can never go negative even
// outside a lock. Returns nil without error when the guard rejects the row.
func (r *Repository) ApplyWithdrawal(ctx context.Context, id string, amount int64, danaNumber, danaName string) (*domain.User, error) {
	query := `
        UPDATE users
        SET balance = balance - $2, dana_number = $3, dana_name = $4, updated_at = now()
        WHERE id = $1 AND balance >= $2
        RETURNING ` + userColumns + `
	`
	user, err := scanUser(r.db.QueryRow(ctx, query, id, amount, danaNumber, danaName))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't apply withdrawal", zap.Error(err))
		return nil, err
	}
	return user, nil
}

// ResetCounters is the administrative reset: balance and both view counters
// back to zero. The user row itself is never deleted.
func (r *Repository) ResetCounters(ctx context.Context, id string) (*domain.User, error) {
	query := `
        UPDATE users
        SET balance = 0, today_ad_views = 0, total_ad_views = 0, updated_at = now()
        WHERE id = $1
        RETURNING ` + userColumns + `
	`
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		zap.L().Error("can't reset user counters", zap.Error(err))
		return nil, err
	}
	return user, nil
}
