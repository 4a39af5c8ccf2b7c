package adminservice

import (
	"errors"
	"testing"
	"time"

	"github.com/GlebRadaev/adrewards/internal/config"
	"github.com/GlebRadaev/adrewards/pkg/auth"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"
)

func NewMock(t *testing.T) (*Service, *auth.MockHashServiceInterface, *auth.MockJWTServiceInterface) {
	ctrl := gomock.NewController(t)
	hashService := auth.NewMockHashServiceInterface(ctrl)
	jwtService := auth.NewMockJWTServiceInterface(ctrl)

	hashService.EXPECT().HashPassword("admin-secret").Return("hashed-secret", nil)
	service, err := New(&config.Config{AdminPassword: "admin-secret"}, hashService, jwtService)
	assert.NoError(t, err)
	defer ctrl.Finish()
	return service, hashService, jwtService
}

func TestNew(t *testing.T) {
	t.Run("Password hashed at startup", func(t *testing.T) {
		service, _, _ := NewMock(t)
		assert.NotNil(t, service)
		assert.Equal(t, "hashed-secret", service.passwordHash)
	})

	t.Run("Hashing failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		hashService := auth.NewMockHashServiceInterface(ctrl)
		jwtService := auth.NewMockJWTServiceInterface(ctrl)

		hashService.EXPECT().HashPassword("").Return("", errors.New("password cannot be empty"))

		service, err := New(&config.Config{AdminPassword: ""}, hashService, jwtService)
		assert.Error(t, err)
		assert.Nil(t, service)
	})
}

func TestLogin(t *testing.T) {
	service, hashService, jwtService := NewMock(t)

	tests := []struct {
		name          string
		password      string
		prepareMock   func()
		expectedToken string
		expectedError error
	}{
		{
			name:     "Successful login",
			password: "admin-secret",
			prepareMock: func() {
				hashService.EXPECT().ComparePassword("hashed-secret", "admin-secret").Return(true)
				jwtService.EXPECT().GenerateJWT(auth.RoleAdmin, gomock.Any()).Return("token", nil)
			},
			expectedToken: "token",
			expectedError: nil,
		},
		{
			name:     "Wrong password",
			password: "guess",
			prepareMock: func() {
				hashService.EXPECT().ComparePassword("hashed-secret", "guess").Return(false)
			},
			expectedToken: "",
			expectedError: ErrInvalidCredentials,
		},
		{
			name:     "Token generation failure",
			password: "admin-secret",
			prepareMock: func() {
				hashService.EXPECT().ComparePassword("hashed-secret", "admin-secret").Return(true)
				jwtService.EXPECT().GenerateJWT(auth.RoleAdmin, gomock.Any()).Return("", errors.New("signing error"))
			},
			expectedToken: "",
			expectedError: errors.New("signing error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()
			token, err := service.Login(tt.password)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.expectedToken, token)
		})
	}
}

func TestLoginTokenExpiry(t *testing.T) {
	service, hashService, jwtService := NewMock(t)

	hashService.EXPECT().ComparePassword("hashed-secret", "admin-secret").Return(true)
	jwtService.EXPECT().GenerateJWT(auth.RoleAdmin, gomock.Any()).DoAndReturn(
		func(_ string, expirationTime time.Time) (string, error) {
			assert.WithinDuration(t, time.Now().Add(tokenTTL), expirationTime, time.Minute)
			return "token", nil
		})

	_, err := service.Login("admin-secret")
	assert.NoError(t, err)
}
