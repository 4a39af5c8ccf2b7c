package withdrawal

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlebRadaev/adrewards/internal/domain"
	"github.com/GlebRadaev/adrewards/internal/dto"
	withdrawalservice "github.com/GlebRadaev/adrewards/internal/service/withdrawalservice"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*WithdrawalHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestWithdrawHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful withdrawal",
			body: `{"userId":"user-1","danaNumber":"081234567890","danaName":"Budi Santoso","amount":3000}`,
			prepareMock: func() {
				service.EXPECT().
					RequestWithdrawal(gomock.Any(), "user-1", "081234567890", "Budi Santoso", int64(3000)).
					Return(int64(2000), nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:         "Invalid request body",
			body:         `{invalid`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Missing fields",
			body:         `{"userId":"user-1","amount":3000}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Payout number with letters",
			body:         `{"userId":"user-1","danaNumber":"0812abc7890","danaName":"Budi Santoso","amount":3000}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Negative amount",
			body:         `{"userId":"user-1","danaNumber":"081234567890","danaName":"Budi Santoso","amount":-3000}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:         "Non-numeric amount",
			body:         `{"userId":"user-1","danaNumber":"081234567890","danaName":"Budi Santoso","amount":"lots"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Amount below minimum",
			body: `{"userId":"user-1","danaNumber":"081234567890","danaName":"Budi Santoso","amount":2999}`,
			prepareMock: func() {
				service.EXPECT().
					RequestWithdrawal(gomock.Any(), "user-1", "081234567890", "Budi Santoso", int64(2999)).
					Return(int64(0), withdrawalservice.ErrInvalidAmount)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Insufficient balance",
			body: `{"userId":"user-1","danaNumber":"081234567890","danaName":"Budi Santoso","amount":3000}`,
			prepareMock: func() {
				service.EXPECT().
					RequestWithdrawal(gomock.Any(), "user-1", "081234567890", "Budi Santoso", int64(3000)).
					Return(int64(0), withdrawalservice.ErrInsufficientBalance)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "User not found",
			body: `{"userId":"missing","danaNumber":"081234567890","danaName":"Budi Santoso","amount":3000}`,
			prepareMock: func() {
				service.EXPECT().
					RequestWithdrawal(gomock.Any(), "missing", "081234567890", "Budi Santoso", int64(3000)).
					Return(int64(0), withdrawalservice.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Internal server error",
			body: `{"userId":"user-1","danaNumber":"081234567890","danaName":"Budi Santoso","amount":3000}`,
			prepareMock: func() {
				service.EXPECT().
					RequestWithdrawal(gomock.Any(), "user-1", "081234567890", "Budi Santoso", int64(3000)).
					Return(int64(0), errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/withdraw", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Withdraw(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.WithdrawResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, int64(2000), resp.RemainingBalance)
			}
		})
	}
}

func TestHistoryHandler(t *testing.T) {
	handler, service := NewMock(t)
	ts := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		url          string
		prepareMock  func()
		expectedCode int
		expectedBody *dto.WithdrawalHistoryResponseDTO
	}{
		{
			name: "History returned",
			url:  "/api/withdrawal-history?userId=user-1",
			prepareMock: func() {
				service.EXPECT().GetHistory(gomock.Any(), "user-1").Return(
					&domain.User{ID: "user-1", DanaNumber: "081234567890", DanaName: "Budi Santoso"},
					[]domain.Withdrawal{
						{ID: "wd-1", Amount: 3000, Status: domain.WithdrawalStatusPending, CreatedAt: ts},
					}, nil)
			},
			expectedCode: http.StatusOK,
			expectedBody: &dto.WithdrawalHistoryResponseDTO{
				DanaNumber: "081234567890",
				DanaName:   "Budi Santoso",
				Withdrawals: []dto.WithdrawalDTO{
					{ID: "wd-1", Amount: 3000, Status: domain.WithdrawalStatusPending, CreatedAt: ts},
				},
			},
		},
		{
			name:         "Missing user ID",
			url:          "/api/withdrawal-history",
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "User not found",
			url:  "/api/withdrawal-history?userId=missing",
			prepareMock: func() {
				service.EXPECT().GetHistory(gomock.Any(), "missing").
					Return(nil, nil, withdrawalservice.ErrUserNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Internal server error",
			url:  "/api/withdrawal-history?userId=user-1",
			prepareMock: func() {
				service.EXPECT().GetHistory(gomock.Any(), "user-1").
					Return(nil, nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, tt.url, nil)
			w := httptest.NewRecorder()

			handler.History(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedBody != nil {
				var resp dto.WithdrawalHistoryResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, *tt.expectedBody, resp)
			}
		})
	}
}

func TestProofHandler(t *testing.T) {
	handler, service := NewMock(t)
	ts := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Proof listing returned",
			prepareMock: func() {
				service.EXPECT().GetProofOfPayment(gomock.Any()).Return([]domain.WithdrawalWithUser{
					{
						Withdrawal:       domain.Withdrawal{ID: "wd-1", Amount: 3000, Status: domain.WithdrawalStatusSuccess, UpdatedAt: ts},
						TelegramUsername: "budi123",
						DanaNumber:       "********7890",
					},
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				service.EXPECT().GetProofOfPayment(gomock.Any()).Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/api/proof-of-payment", nil)
			w := httptest.NewRecorder()

			handler.Proof(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				var resp dto.ProofOfPaymentResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Len(t, resp.Withdrawals, 1)
				assert.Equal(t, "********7890", resp.Withdrawals[0].User.DanaNumber)
			}
		})
	}
}
