package withdrawalrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/GlebRadaev/adrewards/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
)

var withdrawalCols = []string{"id", "user_id", "amount", "remaining_balance", "status", "created_at", "updated_at"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func sampleWithdrawal() domain.Withdrawal {
	ts := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)
	return domain.Withdrawal{
		ID:               "wd-1",
		UserID:           "user-1",
		Amount:           3000,
		RemainingBalance: 2000,
		Status:           domain.WithdrawalStatusPending,
		CreatedAt:        ts,
		UpdatedAt:        ts,
	}
}

func TestRepository_CreateWithdrawal(t *testing.T) {
	repo, mock := NewMock(t)
	ts := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Create withdrawal successfully",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO withdrawals (id, user_id, amount, remaining_balance, status)")).
					WithArgs("wd-1", "user-1", int64(3000), int64(2000), domain.WithdrawalStatusPending).
					WillReturnRows(pgxmock.NewRows([]string{"created_at", "updated_at"}).AddRow(ts, ts))
			},
			expectErr: false,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO withdrawals (id, user_id, amount, remaining_balance, status)")).
					WithArgs("wd-1", "user-1", int64(3000), int64(2000), domain.WithdrawalStatusPending).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			wd := &domain.Withdrawal{
				ID:               "wd-1",
				UserID:           "user-1",
				Amount:           3000,
				RemainingBalance: 2000,
				Status:           domain.WithdrawalStatusPending,
			}
			result, err := repo.CreateWithdrawal(context.Background(), wd)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, ts, result.CreatedAt)
				assert.Equal(t, ts, result.UpdatedAt)
			}
		})
	}
}

func TestRepository_GetWithdrawalsByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	wd := sampleWithdrawal()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    []domain.Withdrawal
	}{
		{
			name: "Withdrawals found",
			mockSetup: func() {
				rows := pgxmock.NewRows(withdrawalCols).
					AddRow(wd.ID, wd.UserID, wd.Amount, wd.RemainingBalance, wd.Status, wd.CreatedAt, wd.UpdatedAt)
				mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
					WithArgs("user-1").
					WillReturnRows(rows)
			},
			expectErr: false,
			result:    []domain.Withdrawal{wd},
		},
		{
			name: "No withdrawals",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
					WithArgs("user-1").
					WillReturnRows(pgxmock.NewRows(withdrawalCols))
			},
			expectErr: false,
			result:    nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1")).
					WithArgs("user-1").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetWithdrawalsByUserID(context.Background(), "user-1")
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_GetRecentWithUsers(t *testing.T) {
	repo, mock := NewMock(t)
	wd := sampleWithdrawal()
	cols := []string{"id", "user_id", "amount", "remaining_balance", "status", "created_at", "updated_at", "telegram_username", "dana_number"}

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    []domain.WithdrawalWithUser
	}{
		{
			name: "Recent withdrawals joined with users",
			mockSetup: func() {
				rows := pgxmock.NewRows(cols).
					AddRow(wd.ID, wd.UserID, wd.Amount, wd.RemainingBalance, wd.Status,
						wd.CreatedAt, wd.UpdatedAt, "budi123", "081234567890")
				mock.ExpectQuery(regexp.QuoteMeta("JOIN users u ON u.id = w.user_id")).
					WithArgs(100).
					WillReturnRows(rows)
			},
			expectErr: false,
			result: []domain.WithdrawalWithUser{
				{
					Withdrawal:       wd,
					TelegramUsername: "budi123",
					DanaNumber:       "081234567890",
				},
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("JOIN users u ON u.id = w.user_id")).
					WithArgs(100).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.GetRecentWithUsers(context.Background(), 100)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_FindByID(t *testing.T) {
	repo, mock := NewMock(t)
	wd := sampleWithdrawal()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Withdrawal
	}{
		{
			name: "Withdrawal found",
			mockSetup: func() {
				rows := pgxmock.NewRows(withdrawalCols).
					AddRow(wd.ID, wd.UserID, wd.Amount, wd.RemainingBalance, wd.Status, wd.CreatedAt, wd.UpdatedAt)
				mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
					WithArgs("wd-1").
					WillReturnRows(rows)
			},
			expectErr: false,
			result:    &wd,
		},
		{
			name: "Withdrawal not found",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
					WithArgs("missing").
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1")).
					WithArgs("wd-1").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			id := "wd-1"
			if tt.result == nil && !tt.expectErr {
				id = "missing"
			}
			result, err := repo.FindByID(context.Background(), id)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}

func TestRepository_UpdateStatus(t *testing.T) {
	repo, mock := NewMock(t)
	updated := sampleWithdrawal()
	updated.Status = domain.WithdrawalStatusProcessing

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		result    *domain.Withdrawal
	}{
		{
			name: "Status advanced",
			mockSetup: func() {
				rows := pgxmock.NewRows(withdrawalCols).
					AddRow(updated.ID, updated.UserID, updated.Amount, updated.RemainingBalance,
						updated.Status, updated.CreatedAt, updated.UpdatedAt)
				mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND status = $2")).
					WithArgs("wd-1", domain.WithdrawalStatusPending, domain.WithdrawalStatusProcessing).
					WillReturnRows(rows)
			},
			expectErr: false,
			result:    &updated,
		},
		{
			name: "Current status no longer matches",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND status = $2")).
					WithArgs("wd-1", domain.WithdrawalStatusPending, domain.WithdrawalStatusProcessing).
					WillReturnError(pgx.ErrNoRows)
			},
			expectErr: false,
			result:    nil,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE id = $1 AND status = $2")).
					WithArgs("wd-1", domain.WithdrawalStatusPending, domain.WithdrawalStatusProcessing).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
			result:    nil,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.UpdateStatus(context.Background(), "wd-1",
				domain.WithdrawalStatusPending, domain.WithdrawalStatusProcessing)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, tt.result, result)
			}
		})
	}
}
