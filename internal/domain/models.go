package domain

import "time"

type User struct {
	ID               string    `db:"id"`
	TelegramID       int64     `db:"telegram_id"`
	TelegramName     string    `db:"telegram_name"`
	TelegramUsername string    `db:"telegram_username"`
	PhotoURL         string    `db:"photo_url"`
	DanaNumber       string    `db:"dana_number"`
	DanaName         string    `db:"dana_name"`
	Balance          int64     `db:"balance"`
	TodayAdViews     int       `db:"today_ad_views"`
	TotalAdViews     int64     `db:"total_ad_views"`
	LastAdViewDate   time.Time `db:"last_ad_view_date"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

const (
	WithdrawalStatusPending    = "PENDING"
	WithdrawalStatusProcessing = "PROCESSING"
	WithdrawalStatusSuccess    = "SUCCESS"
	WithdrawalStatusFailed     = "FAILED"
)

type Withdrawal struct {
	ID               string    `db:"id"`
	UserID           string    `db:"user_id"`
	Amount           int64     `db:"amount"`
	RemainingBalance int64     `db:"remaining_balance"`
	Status           string    `db:"status"`
	CreatedAt        time.Time `db:"created_at"`
	UpdatedAt        time.Time `db:"updated_at"`
}

// WithdrawalWithUser is a withdrawal joined with the owning user's
// display and payout fields, used by the proof-of-payment listing.
type WithdrawalWithUser struct {
	Withdrawal
	TelegramUsername string `db:"telegram_username"`
	DanaNumber       string `db:"dana_number"`
}

var withdrawalTransitions = map[string][]string{
	WithdrawalStatusPending:    {WithdrawalStatusProcessing, WithdrawalStatusFailed},
	WithdrawalStatusProcessing: {WithdrawalStatusSuccess, WithdrawalStatusFailed},
}

// IsValidWithdrawalStatus reports whether s is a known lifecycle status.
func IsValidWithdrawalStatus(s string) bool {
	switch s {
	case WithdrawalStatusPending, WithdrawalStatusProcessing, WithdrawalStatusSuccess, WithdrawalStatusFailed:
		return true
	}
	return false
}

// CanTransitionWithdrawal reports whether a withdrawal may move from one
// status to another. SUCCESS and FAILED are terminal.
func CanTransitionWithdrawal(from, to string) bool {
	for _, next := range withdrawalTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}
