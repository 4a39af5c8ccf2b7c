package admin

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/GlebRadaev/adrewards/internal/domain"
	"github.com/GlebRadaev/adrewards/internal/dto"
	adminservice "github.com/GlebRadaev/adrewards/internal/service/adminservice"
	withdrawalservice "github.com/GlebRadaev/adrewards/internal/service/withdrawalservice"
	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*AdminHandler, *MockService, *MockWithdrawalService) {
	ctrl := gomock.NewController(t)
	adminService := NewMockService(ctrl)
	withdrawalService := NewMockWithdrawalService(ctrl)
	handler := New(adminService, withdrawalService)
	defer ctrl.Finish()
	return handler, adminService, withdrawalService
}

func withURLParam(r *http.Request, key, value string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(key, value)
	return r.WithContext(context.WithValue(r.Context(), chi.RouteCtxKey, rctx))
}

func TestLoginHandler(t *testing.T) {
	handler, adminService, _ := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Successful login",
			body: `{"password":"admin-secret"}`,
			prepareMock: func() {
				adminService.EXPECT().Login("admin-secret").Return("token", nil)
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
			name:         "Missing password",
			body:         `{}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Invalid credentials",
			body: `{"password":"guess"}`,
			prepareMock: func() {
				adminService.EXPECT().Login("guess").Return("", adminservice.ErrInvalidCredentials)
			},
			expectedCode: http.StatusUnauthorized,
		},
		{
			name: "Internal server error",
			body: `{"password":"admin-secret"}`,
			prepareMock: func() {
				adminService.EXPECT().Login("admin-secret").Return("", errors.New("signing error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPost, "/api/admin/login", bytes.NewBufferString(tt.body))
			w := httptest.NewRecorder()

			handler.Login(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, "Bearer token", w.Header().Get("Authorization"))
				var resp dto.AdminLoginResponseDTO
				assert.NoError(t, json.NewDecoder(w.Body).Decode(&resp))
				assert.Equal(t, "token", resp.Token)
			}
		})
	}
}

func TestUpdateStatusHandler(t *testing.T) {
	handler, _, withdrawalService := NewMock(t)

	tests := []struct {
		name         string
		body         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Status advanced",
			body: `{"status":"PROCESSING"}`,
			prepareMock: func() {
				withdrawalService.EXPECT().UpdateStatus(gomock.Any(), "wd-1", domain.WithdrawalStatusProcessing).
					Return(&domain.Withdrawal{ID: "wd-1", Amount: 3000, Status: domain.WithdrawalStatusProcessing}, nil)
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
			name: "Unknown status",
			body: `{"status":"SHIPPED"}`,
			prepareMock: func() {
				withdrawalService.EXPECT().UpdateStatus(gomock.Any(), "wd-1", "SHIPPED").
					Return(nil, withdrawalservice.ErrInvalidStatus)
			},
			expectedCode: http.StatusBadRequest,
		},
		{
			name: "Withdrawal not found",
			body: `{"status":"PROCESSING"}`,
			prepareMock: func() {
				withdrawalService.EXPECT().UpdateStatus(gomock.Any(), "wd-1", domain.WithdrawalStatusProcessing).
					Return(nil, withdrawalservice.ErrWithdrawalNotFound)
			},
			expectedCode: http.StatusNotFound,
		},
		{
			name: "Invalid transition",
			body: `{"status":"PENDING"}`,
			prepareMock: func() {
				withdrawalService.EXPECT().UpdateStatus(gomock.Any(), "wd-1", domain.WithdrawalStatusPending).
					Return(nil, withdrawalservice.ErrInvalidTransition)
			},
			expectedCode: http.StatusConflict,
		},
		{
			name: "Internal server error",
			body: `{"status":"PROCESSING"}`,
			prepareMock: func() {
				withdrawalService.EXPECT().UpdateStatus(gomock.Any(), "wd-1", domain.WithdrawalStatusProcessing).
					Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodPatch, "/api/admin/withdrawals/wd-1/status", bytes.NewBufferString(tt.body))
			r = withURLParam(r, "id", "wd-1")
			w := httptest.NewRecorder()

			handler.UpdateStatus(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
		})
	}
}

func TestExportHandler(t *testing.T) {
	handler, _, withdrawalService := NewMock(t)
	ts := time.Date(2024, 1, 2, 10, 0, 0, 0, time.UTC)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Report generated",
			prepareMock: func() {
				withdrawalService.EXPECT().GetAllForExport(gomock.Any()).Return([]domain.WithdrawalWithUser{
					{
						Withdrawal: domain.Withdrawal{
							ID: "wd-1", UserID: "user-1", Amount: 3000, RemainingBalance: 2000,
							Status: domain.WithdrawalStatusSuccess, CreatedAt: ts, UpdatedAt: ts,
						},
						TelegramUsername: "budi123",
						DanaNumber:       "081234567890",
					},
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Internal server error",
			prepareMock: func() {
				withdrawalService.EXPECT().GetAllForExport(gomock.Any()).Return(nil, errors.New("db error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			r := httptest.NewRequest(http.MethodGet, "/api/admin/withdrawals/export", nil)
			w := httptest.NewRecorder()

			handler.Export(w, r)

			assert.Equal(t, tt.expectedCode, w.Code)
			if tt.expectedCode == http.StatusOK {
				assert.Equal(t, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", w.Header().Get("Content-Type"))
				assert.Contains(t, w.Header().Get("Content-Disposition"), "attachment")
				assert.NotZero(t, w.Body.Len())
			}
		})
	}
}
