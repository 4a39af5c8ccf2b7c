package service

import (
	"github.com/GlebRadaev/adrewards/internal/handlers/admin"
	"github.com/GlebRadaev/adrewards/internal/handlers/user"
	"github.com/GlebRadaev/adrewards/internal/handlers/withdrawal"

	pkgauth "github.com/GlebRadaev/adrewards/pkg/auth"

	"github.com/GlebRadaev/adrewards/internal/config"
	"github.com/GlebRadaev/adrewards/internal/pg"
	"github.com/GlebRadaev/adrewards/internal/repo"
	adminservice "github.com/GlebRadaev/adrewards/internal/service/adminservice"
	userservice "github.com/GlebRadaev/adrewards/internal/service/userservice"
	withdrawalservice "github.com/GlebRadaev/adrewards/internal/service/withdrawalservice"
)

type Services struct {
	UserService       user.Service
	WithdrawalService withdrawal.Service
	AdminService      admin.Service
	AdminWithdrawals  admin.WithdrawalService
}

func New(repo *repo.Repositories, txManager pg.TXManager, cfg *config.Config) (*Services, error) {
	userService := userservice.New(repo.UserRepo, cfg)
	withdrawalService := withdrawalservice.New(repo.UserRepo, repo.Withdrawal, txManager, cfg)
	adminService, err := adminservice.New(cfg, &pkgauth.HashService{}, &pkgauth.JWTService{})
	if err != nil {
		return nil, err
	}

	return &Services{
		UserService:       userService,
		WithdrawalService: withdrawalService,
		AdminService:      adminService,
		AdminWithdrawals:  withdrawalService,
	}, nil
}
